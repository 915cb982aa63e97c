// Package storage persists registry snapshots in Badger.
//
// BadgerEngine is a thin key/value layer with value log GC, backup and
// restore. SnapshotStore writes the compiled-in material registry as
// ULID-named generations on top of it, and Diff reports the id:meta
// entries that were added, removed or renamed between two generations.
package storage
