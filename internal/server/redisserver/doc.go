// Package redisserver serves the material registry over RESP2, so any
// Redis client can query it.
//
// The listener is read-only. Keys are material references in any form
// material.Parse accepts:
//
//	GET stone:diorite        JSON record, nil when unknown
//	MGET 1 35:14 nope        one reply per reference
//	HGET diamond_sword tool  one record field
//	HGETALL 64:6             every non-empty record field
//	EXISTS stone wool:red    number of references that resolve
//	KEYS DIAMOND_*           material names matching a glob
//	INDEX stone              palette index, assigned on first use
//	HOT [n]                  most used palette entries
//	DBSIZE, INFO, PING, ECHO, QUIT
package redisserver
