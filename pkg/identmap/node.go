package identmap

import (
	"sync"
	"sync/atomic"
)

// Hash markers of special nodes. Ordinary nodes always carry a
// non-negative hash.
const (
	hashMoved    int32 = -1 // forwarding node
	hashTreeBin  int32 = -2 // head of a tree bin
	hashReserved int32 = -3 // placeholder while computing into an empty bin
)

// node is a single mapping. The same struct doubles as forwarding node,
// tree bin head, reservation placeholder and red-black tree node; hash
// tells them apart.
type node[K, V any] struct {
	hash int32
	key  *K
	val  atomic.Pointer[V]
	next atomic.Pointer[node[K, V]]

	// mu guards the bin while this node is its head.
	mu sync.Mutex

	fwd *table[K, V]   // hashMoved only
	tb  *treeBin[K, V] // hashTreeBin only

	// Tree links. parent/left/right/red are written only under the tree
	// bin's write lock; prev is touched by bin lock holders only.
	parent, left, right, prev *node[K, V]
	red                       bool
}

func newNode[K, V any](h int32, key *K, v V) *node[K, V] {
	n := &node[K, V]{hash: h, key: key}
	n.val.Store(&v)
	return n
}

func newForwardingNode[K, V any](next *table[K, V]) *node[K, V] {
	return &node[K, V]{hash: hashMoved, fwd: next}
}

func newReservationNode[K, V any]() *node[K, V] {
	return &node[K, V]{hash: hashReserved}
}

// find looks up key starting at this node, dispatching on special nodes.
func (n *node[K, V]) find(h int32, key *K) *node[K, V] {
	switch n.hash {
	case hashMoved:
		return findForwarded(n.fwd, h, key)
	case hashTreeBin:
		return n.tb.find(h, key)
	case hashReserved:
		return nil
	}
	for e := n; e != nil; e = e.next.Load() {
		if e.hash == h && e.key == key {
			return e
		}
	}
	return nil
}

// findForwarded searches the next table, following further forwarding
// nodes without recursion.
func findForwarded[K, V any](tab *table[K, V], h int32, key *K) *node[K, V] {
outer:
	for {
		if tab == nil || len(tab.bins) == 0 {
			return nil
		}
		e := tab.at(int(h) & (len(tab.bins) - 1))
		for e != nil {
			if e.hash == h && e.key == key {
				return e
			}
			if e.hash < 0 {
				if e.hash == hashMoved {
					tab = e.fwd
					continue outer
				}
				return e.find(h, key)
			}
			e = e.next.Load()
		}
		return nil
	}
}

// table is one generation of the bin array.
type table[K, V any] struct {
	bins []atomic.Pointer[node[K, V]]
}

func newTable[K, V any](n int) *table[K, V] {
	return &table[K, V]{bins: make([]atomic.Pointer[node[K, V]], n)}
}

func (t *table[K, V]) at(i int) *node[K, V] {
	return t.bins[i].Load()
}

func (t *table[K, V]) cas(i int, old, n *node[K, V]) bool {
	return t.bins[i].CompareAndSwap(old, n)
}

func (t *table[K, V]) set(i int, n *node[K, V]) {
	t.bins[i].Store(n)
}
