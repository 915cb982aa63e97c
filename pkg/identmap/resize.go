package identmap

import (
	"runtime"
)

// initTable creates the table using the size recorded in sizeCtl.
func (m *Map[K, V]) initTable() *table[K, V] {
	checkKeySize[K]()
	for {
		if tab := m.table.Load(); tab != nil && len(tab.bins) > 0 {
			return tab
		}
		sc := m.sizeCtl.Load()
		if sc < 0 {
			runtime.Gosched()
			continue
		}
		if !m.sizeCtl.CompareAndSwap(sc, -1) {
			continue
		}
		tab := m.table.Load()
		if tab == nil || len(tab.bins) == 0 {
			n := DefaultCapacity
			if sc > 0 {
				n = int(sc)
			}
			tab = newTable[K, V](n)
			m.table.Store(tab)
			sc = int32(n - n>>2)
		}
		m.sizeCtl.Store(sc)
		return tab
	}
}

// helpTransfer joins a resize in progress and returns the table to retry
// against.
func (m *Map[K, V]) helpTransfer(tab *table[K, V], f *node[K, V]) *table[K, V] {
	nextTab := f.fwd
	if tab == nil || nextTab == nil {
		return m.table.Load()
	}
	rs := resizeStamp(len(tab.bins)) << resizeStampShift
	for nextTab == m.nextTable.Load() && tab == m.table.Load() {
		sc := m.sizeCtl.Load()
		if sc >= 0 || sc == rs+maxResizers || sc == rs+1 || m.transferIndex.Load() <= 0 {
			break
		}
		if m.sizeCtl.CompareAndSwap(sc, sc+1) {
			m.transfer(tab, nextTab)
			break
		}
	}
	return nextTab
}

// tryPresize grows the table to hold size mappings.
func (m *Map[K, V]) tryPresize(size int) {
	c := MaximumCapacity
	if size < MaximumCapacity>>1 {
		c = tableSizeFor(size + size>>1 + 1)
	}
	for {
		sc := m.sizeCtl.Load()
		if sc < 0 {
			return
		}
		tab := m.table.Load()
		if tab == nil || len(tab.bins) == 0 {
			n := c
			if int(sc) > c {
				n = int(sc)
			}
			if m.sizeCtl.CompareAndSwap(sc, -1) {
				if m.table.Load() == tab {
					m.table.Store(newTable[K, V](n))
					sc = int32(n - n>>2)
				}
				m.sizeCtl.Store(sc)
			}
			continue
		}
		n := len(tab.bins)
		if c <= int(sc) || n >= MaximumCapacity {
			return
		}
		if tab == m.table.Load() {
			rs := resizeStamp(n) << resizeStampShift
			if m.sizeCtl.CompareAndSwap(sc, rs+2) {
				m.transfer(tab, nil)
			}
		}
	}
}

// treeifyBin converts the chain at index into a tree, or grows a small
// table instead.
func (m *Map[K, V]) treeifyBin(tab *table[K, V], index int) {
	if n := len(tab.bins); n < MinTreeifyCapacity {
		m.tryPresize(n << 1)
		return
	}
	b := tab.at(index)
	if b == nil || b.hash < 0 {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if tab.at(index) != b {
		return
	}
	var hd, tl *node[K, V]
	for e := b; e != nil; e = e.next.Load() {
		p := newTreeNode[K, V](e.hash, e.key, e.val.Load(), nil, nil)
		p.prev = tl
		if tl == nil {
			hd = p
		} else {
			tl.next.Store(p)
		}
		tl = p
	}
	tab.set(index, newTreeBinNode(hd))
	m.treeifies.Add(1)
}

// transfer moves every bin of tab into nextTab, which is allocated when
// nil. Each participant claims strides of bins from transferIndex
// downwards; the last one out swaps the tables.
func (m *Map[K, V]) transfer(tab, nextTab *table[K, V]) {
	n := len(tab.bins)
	stride := n
	if ncpu := runtime.GOMAXPROCS(0); ncpu > 1 {
		stride = (n >> 3) / ncpu
	}
	if stride < MinTransferStride {
		stride = MinTransferStride
	}
	if nextTab == nil {
		nextTab = newTable[K, V](n << 1)
		m.nextTable.Store(nextTab)
		m.transferIndex.Store(int32(n))
	}
	nextn := len(nextTab.bins)
	fwd := newForwardingNode(nextTab)

	advance, finishing := true, false
	for i, bound := 0, 0; ; {
		for advance {
			i--
			if i >= bound || finishing {
				advance = false
				break
			}
			nextIndex := int(m.transferIndex.Load())
			if nextIndex <= 0 {
				i = -1
				advance = false
				break
			}
			nextBound := 0
			if nextIndex > stride {
				nextBound = nextIndex - stride
			}
			if m.transferIndex.CompareAndSwap(int32(nextIndex), int32(nextBound)) {
				bound = nextBound
				i = nextIndex - 1
				advance = false
			}
		}

		if i < 0 || i >= n || i+n >= nextn {
			if finishing {
				m.nextTable.Store(nil)
				m.table.Store(nextTab)
				m.sizeCtl.Store(int32(n<<1 - n>>1))
				m.resizes.Add(1)
				return
			}
			sc := m.sizeCtl.Load()
			if m.sizeCtl.CompareAndSwap(sc, sc-1) {
				if sc-2 != resizeStamp(n)<<resizeStampShift {
					return
				}
				finishing, advance = true, true
				i = n // recheck every bin before committing
			}
			continue
		}

		f := tab.at(i)
		switch {
		case f == nil:
			advance = tab.cas(i, nil, fwd)
		case f.hash == hashMoved:
			advance = true
		default:
			advance = splitBin(tab, nextTab, fwd, i, f)
		}
	}
}

// splitBin moves the bin at i into slots i and i+n of nextTab and marks
// the old slot as forwarded.
func splitBin[K, V any](tab, nextTab *table[K, V], fwd *node[K, V], i int, f *node[K, V]) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if tab.at(i) != f {
		return false
	}
	n := len(tab.bins)

	var ln, hn *node[K, V]
	switch {
	case f.hash >= 0:
		// Nodes from lastRun to the tail land in the same half and are
		// reused as is.
		runBit := int(f.hash) & n
		lastRun := f
		for p := f.next.Load(); p != nil; p = p.next.Load() {
			if b := int(p.hash) & n; b != runBit {
				runBit = b
				lastRun = p
			}
		}
		if runBit == 0 {
			ln = lastRun
		} else {
			hn = lastRun
		}
		for p := f; p != lastRun; p = p.next.Load() {
			q := &node[K, V]{hash: p.hash, key: p.key}
			q.val.Store(p.val.Load())
			if int(p.hash)&n == 0 {
				q.next.Store(ln)
				ln = q
			} else {
				q.next.Store(hn)
				hn = q
			}
		}
	case f.hash == hashTreeBin:
		var lo, loTail, hi, hiTail *node[K, V]
		lc, hc := 0, 0
		for e := f.tb.first.Load(); e != nil; e = e.next.Load() {
			p := newTreeNode[K, V](e.hash, e.key, e.val.Load(), nil, nil)
			if int(e.hash)&n == 0 {
				if p.prev = loTail; loTail == nil {
					lo = p
				} else {
					loTail.next.Store(p)
				}
				loTail = p
				lc++
			} else {
				if p.prev = hiTail; hiTail == nil {
					hi = p
				} else {
					hiTail.next.Store(p)
				}
				hiTail = p
				hc++
			}
		}
		ln = splitHalf(lo, lc, hc, f)
		hn = splitHalf(hi, hc, lc, f)
	default:
		return false
	}

	nextTab.set(i, ln)
	nextTab.set(i+n, hn)
	tab.set(i, fwd)
	return true
}

// splitHalf picks the bin for one half of a split tree: a chain when
// small, the old tree when nothing moved, a new tree otherwise.
func splitHalf[K, V any](half *node[K, V], count, other int, old *node[K, V]) *node[K, V] {
	switch {
	case count <= UntreeifyThreshold:
		return untreeify(half)
	case other != 0:
		return newTreeBinNode(half)
	default:
		return old
	}
}
