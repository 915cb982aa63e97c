package identmap

// remapOp is the outcome of a remapping callback.
type remapOp uint8

const (
	opKeep   remapOp = iota // leave the bin as it is
	opStore                 // store the returned value
	opDelete                // remove the mapping
)

// ComputeIfAbsent returns the value for key, computing and storing it
// with fn when key is not mapped. fn returns false to leave key
// unmapped. fn runs at most once per call, under the bin lock.
func (m *Map[K, V]) ComputeIfAbsent(key *K, fn func() (V, bool)) (V, bool) {
	if v, ok := m.Get(key); ok {
		return v, true
	}
	return m.remap(key, false, func(old V, loaded bool) (V, remapOp) {
		if loaded {
			return old, opKeep
		}
		if v, ok := fn(); ok {
			return v, opStore
		}
		return old, opKeep
	})
}

// ComputeIfPresent replaces the value of a mapped key with fn's result.
// fn returns false to remove the mapping.
func (m *Map[K, V]) ComputeIfPresent(key *K, fn func(old V) (V, bool)) (V, bool) {
	return m.remap(key, true, func(old V, loaded bool) (V, remapOp) {
		if !loaded {
			return old, opKeep
		}
		if v, ok := fn(old); ok {
			return v, opStore
		}
		return old, opDelete
	})
}

// Compute sets key to fn's result, or removes it when fn returns false.
// loaded tells fn whether old is a current value.
func (m *Map[K, V]) Compute(key *K, fn func(old V, loaded bool) (V, bool)) (V, bool) {
	return m.remap(key, false, func(old V, loaded bool) (V, remapOp) {
		v, ok := fn(old, loaded)
		switch {
		case ok:
			return v, opStore
		case loaded:
			return old, opDelete
		}
		return old, opKeep
	})
}

// Merge stores value if key is not mapped, and otherwise replaces the
// value with fn(old, value). fn returns false to remove the mapping.
func (m *Map[K, V]) Merge(key *K, value V, fn func(old, value V) (V, bool)) (V, bool) {
	return m.remap(key, false, func(old V, loaded bool) (V, remapOp) {
		if !loaded {
			return value, opStore
		}
		if v, ok := fn(old, value); ok {
			return v, opStore
		}
		return old, opDelete
	})
}

// Update sets key to fn(current, exists) and returns the new value.
func (m *Map[K, V]) Update(key *K, fn func(value V, exists bool) V) V {
	v, _ := m.Compute(key, func(old V, loaded bool) (V, bool) {
		return fn(old, loaded), true
	})
	return v
}

// Upsert stores value, or fn(existing, value) when key is already mapped,
// and returns what was stored.
func (m *Map[K, V]) Upsert(key *K, value V, fn func(existing, value V) V) V {
	v, _ := m.Merge(key, value, func(old, value V) (V, bool) {
		return fn(old, value), true
	})
	return v
}

// remap runs fn against the current mapping of key under the bin lock
// and applies the returned operation. presentOnly skips absent keys
// without calling fn. It returns the resulting mapping.
func (m *Map[K, V]) remap(key *K, presentOnly bool, fn func(old V, loaded bool) (V, remapOp)) (val V, present bool) {
	h := m.hash(key)
	var delta int64
	binCount := 0
	tab := m.table.Load()
	for {
		if tab == nil || len(tab.bins) == 0 {
			if presentOnly {
				return val, false
			}
			tab = m.initTable()
			continue
		}
		i := int(h) & (len(tab.bins) - 1)
		f := tab.at(i)

		if f == nil {
			if presentOnly {
				return val, false
			}
			var claimed bool
			claimed, val, present = m.remapEmpty(tab, i, h, key, fn)
			if !claimed {
				continue
			}
			if present {
				delta = 1
			}
			binCount = 1
			break
		}
		if f.hash == hashMoved {
			tab = m.helpTransfer(tab, f)
			continue
		}

		binCount, val, present, delta = m.remapLocked(tab, i, f, h, key, presentOnly, fn)
		if binCount == 0 {
			continue
		}
		if binCount >= TreeifyThreshold {
			m.treeifyBin(tab, i)
		}
		break
	}
	if delta != 0 {
		m.addCount(delta, binCount)
	}
	return val, present
}

// remapEmpty claims the empty bin i with a reservation node, runs fn and
// publishes the result. The reservation keeps other writers out of the
// bin while fn runs and is removed even if fn panics.
func (m *Map[K, V]) remapEmpty(tab *table[K, V], i int, h int32, key *K, fn func(V, bool) (V, remapOp)) (claimed bool, val V, present bool) {
	r := newReservationNode[K, V]()
	r.mu.Lock()
	defer r.mu.Unlock()
	if !tab.cas(i, nil, r) {
		return false, val, false
	}

	var nd *node[K, V]
	defer func() { tab.set(i, nd) }()
	var zero V
	if v, op := fn(zero, false); op == opStore {
		nd = newNode(h, key, v)
		return true, v, true
	}
	return true, val, false
}

func (m *Map[K, V]) remapLocked(tab *table[K, V], i int, f *node[K, V], h int32, key *K, presentOnly bool, fn func(V, bool) (V, remapOp)) (binCount int, val V, present bool, delta int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if tab.at(i) != f {
		return 0, val, false, 0
	}

	switch {
	case f.hash >= 0:
		binCount = 1
		var pred *node[K, V]
		for e := f; ; binCount++ {
			if e.hash == h && e.key == key {
				old := *e.val.Load()
				v, op := fn(old, true)
				switch op {
				case opKeep:
					return binCount, old, true, 0
				case opStore:
					e.val.Store(&v)
					return binCount, v, true, 0
				}
				if next := e.next.Load(); pred != nil {
					pred.next.Store(next)
				} else {
					tab.set(i, next)
				}
				return binCount, val, false, -1
			}
			pred = e
			if e = e.next.Load(); e == nil {
				if presentOnly {
					return binCount, val, false, 0
				}
				var zero V
				if v, op := fn(zero, false); op == opStore {
					pred.next.Store(newNode(h, key, v))
					return binCount, v, true, 1
				}
				return binCount, val, false, 0
			}
		}

	case f.hash == hashTreeBin:
		binCount = 2
		t := f.tb
		if p := findTreeNode(t.root, h, key); p != nil {
			old := *p.val.Load()
			v, op := fn(old, true)
			switch op {
			case opKeep:
				return binCount, old, true, 0
			case opStore:
				p.val.Store(&v)
				return binCount, v, true, 0
			}
			if t.removeTreeNode(p) {
				tab.set(i, untreeify(t.first.Load()))
				m.untreeifies.Add(1)
			}
			return binCount, val, false, -1
		}
		if presentOnly {
			return binCount, val, false, 0
		}
		var zero V
		if v, op := fn(zero, false); op == opStore {
			t.putTreeVal(h, key, v)
			return binCount, v, true, 1
		}
		return binCount, val, false, 0
	}
	return 0, val, false, 0
}
