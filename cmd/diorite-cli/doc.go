// Package main provides the entry point for diorite-cli.
//
// The CLI looks up materials in the built-in registry or on a
// diorite-server, exports the registry and palettes as JSON, YAML or NBT,
// and manages registry snapshots.
//
// Usage:
//
//	diorite-cli lookup stone:diorite 35:14 minecraft:planks:2
//	diorite-cli -o json list --kind item --prefix diamond_
//	diorite-cli -s localhost:5090 variants wool
//	diorite-cli export --format nbt --out registry.nbt
//	diorite-cli snapshot diff
package main
