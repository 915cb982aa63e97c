// Package command defines the diorite-cli commands on urfave/cli/v2.
//
// Lookups run against the compiled-in registry, or against a
// diorite-server when --server is set. Snapshot commands work on a local
// Badger directory.
package command
