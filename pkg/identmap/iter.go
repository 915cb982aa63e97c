package identmap

// tableStack records where a traversal left a table when it followed a
// forwarding node.
type tableStack[K, V any] struct {
	length int
	index  int
	tab    *table[K, V]
	next   *tableStack[K, V]
}

// traverser walks every bin once, following forwarding nodes into the
// next table. When a bin was forwarded it visits both of its halves in
// the next table before moving on, so no entry is skipped during a
// resize. Entries present for the whole walk are seen exactly once;
// concurrent changes may or may not be seen.
type traverser[K, V any] struct {
	tab       *table[K, V]
	next      *node[K, V]
	stack     *tableStack[K, V]
	spare     *tableStack[K, V]
	index     int
	baseIndex int
	baseLimit int
	baseSize  int
}

func newTraverser[K, V any](tab *table[K, V]) *traverser[K, V] {
	n := 0
	if tab != nil {
		n = len(tab.bins)
	}
	return &traverser[K, V]{tab: tab, baseLimit: n, baseSize: n}
}

func (it *traverser[K, V]) advance() *node[K, V] {
	e := it.next
	if e != nil {
		e = e.next.Load()
	}
	for {
		if e != nil {
			it.next = e
			return e
		}
		t, i := it.tab, it.index
		if it.baseIndex >= it.baseLimit || t == nil || len(t.bins) <= i || i < 0 {
			it.next = nil
			return nil
		}
		n := len(t.bins)
		if e = t.at(i); e != nil && e.hash < 0 {
			switch e.hash {
			case hashMoved:
				it.tab = e.fwd
				e = nil
				it.pushState(t, i, n)
				continue
			case hashTreeBin:
				e = e.tb.first.Load()
			default:
				e = nil
			}
		}
		if it.stack != nil {
			it.recoverState(n)
		} else if it.index = i + it.baseSize; it.index >= n {
			it.baseIndex++
			it.index = it.baseIndex
		}
	}
}

func (it *traverser[K, V]) pushState(t *table[K, V], i, n int) {
	s := it.spare
	if s != nil {
		it.spare = s.next
	} else {
		s = &tableStack[K, V]{}
	}
	s.tab, s.length, s.index, s.next = t, n, i, it.stack
	it.stack = s
}

func (it *traverser[K, V]) recoverState(n int) {
	var s *tableStack[K, V]
	for {
		s = it.stack
		if s == nil {
			break
		}
		it.index += s.length
		if it.index < n {
			break
		}
		n = s.length
		it.index = s.index
		it.tab = s.tab
		s.tab = nil
		next := s.next
		s.next = it.spare
		it.stack = next
		it.spare = s
	}
	if s == nil {
		if it.index += it.baseSize; it.index >= n {
			it.baseIndex++
			it.index = it.baseIndex
		}
	}
}

// Range calls fn for each mapping until fn returns false. It never
// blocks writers and reflects some state of each bin at or after the
// moment it was visited.
func (m *Map[K, V]) Range(fn func(key *K, value V) bool) {
	it := newTraverser(m.table.Load())
	for e := it.advance(); e != nil; e = it.advance() {
		p := e.val.Load()
		if p == nil {
			continue
		}
		if !fn(e.key, *p) {
			return
		}
	}
}

// RangeWithLimit calls fn for at most limit mappings and returns how
// many were visited.
func (m *Map[K, V]) RangeWithLimit(limit int, fn func(key *K, value V) bool) int {
	count := 0
	if limit <= 0 {
		return 0
	}
	m.Range(func(key *K, value V) bool {
		count++
		return fn(key, value) && count < limit
	})
	return count
}

// Keys returns the mapped keys in table order.
func (m *Map[K, V]) Keys() []*K {
	keys := make([]*K, 0, m.Count())
	m.Range(func(key *K, _ V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Values returns the mapped values in table order.
func (m *Map[K, V]) Values() []V {
	values := make([]V, 0, m.Count())
	m.Range(func(_ *K, value V) bool {
		values = append(values, value)
		return true
	})
	return values
}

// Item is a single mapping returned by Items.
type Item[K, V any] struct {
	Key   *K
	Value V
}

// Items returns a snapshot of all mappings.
func (m *Map[K, V]) Items() []Item[K, V] {
	items := make([]Item[K, V], 0, m.Count())
	m.Range(func(key *K, value V) bool {
		items = append(items, Item[K, V]{Key: key, Value: value})
		return true
	})
	return items
}
