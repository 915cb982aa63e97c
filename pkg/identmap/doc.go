// Package identmap provides a concurrent hash map keyed by pointer identity.
//
// Two keys are the same key only when they are the same pointer. Key
// contents are never inspected, so keys need not be comparable and
// mutating a key's pointee does not affect lookups.
//
// Layout:
//
//   - Table: a power-of-two array of bins, created lazily on first insert
//   - Bins: a linked chain, converted to a red-black tree once a chain
//     reaches TreeifyThreshold entries and the table has at least
//     MinTreeifyCapacity bins; trees revert to chains at
//     UntreeifyThreshold entries or fewer
//   - Locking: an empty bin is filled with a single CAS; a non-empty bin
//     is updated under the mutex of its head node
//   - Resize: the table doubles once the count passes 3/4 of its
//     length; every writer that meets a forwarding bin helps move
//     the remaining bins in strides
//   - Counting: a base counter plus striped counter cells selected by a
//     random probe
//
// Reads never block. They follow forwarding bins into the next table and
// fall back to a linear scan of a tree bin that is being restructured.
// Size queries are estimates while writers are active and exact once they
// stop.
//
// Usage:
//
//	m := identmap.New[Material, int](identmap.WithCapacity(256))
//	m.Set(stone, 1)
//	n, ok := m.Get(stone)
//
// Keys must point to heap objects that stay reachable while mapped. K
// must have a non-zero size: pointers to distinct zero-size values may
// share an address, so maps over such types panic with ErrZeroSizeKey.
// Callbacks passed to Compute and friends run while the bin is locked and
// must not modify the same map.
package identmap
