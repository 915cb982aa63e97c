// Package cmap provides a sharded map guarded by one RWMutex per shard.
//
// It suits short-lived, mutable per-key state such as per-client rate
// limiters, where entries are created on demand and swept in bulk. Keys
// are spread over shards with hash/maphash.
package cmap
