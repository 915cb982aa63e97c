package identmap

import (
	"math/rand/v2"
	"runtime"
	"sync/atomic"
)

// counterCell is one stripe of the size counter, padded to its own
// cache line.
type counterCell struct {
	value atomic.Int64
	_     [56]byte
}

// add makes a single CAS attempt.
func (c *counterCell) add(x int64) bool {
	v := c.value.Load()
	return c.value.CompareAndSwap(v, v+x)
}

type cellTable struct {
	cells []atomic.Pointer[counterCell]
}

// probe returns a non-zero random stripe selector.
func probe() uint32 {
	for {
		if h := rand.Uint32(); h != 0 {
			return h
		}
	}
}

// advanceProbe moves to another stripe after a collision (xorshift).
func advanceProbe(h uint32) uint32 {
	h ^= h << 13
	h ^= h >> 17
	h ^= h << 5
	return h
}

func (m *Map[K, V]) sumCount() int64 {
	sum := m.baseCount.Load()
	if ct := m.counterCells.Load(); ct != nil {
		for i := range ct.cells {
			if c := ct.cells[i].Load(); c != nil {
				sum += c.value.Load()
			}
		}
	}
	return sum
}

// addCount adds x to the count. If check is non-negative it also starts
// or helps a resize once the count passes sizeCtl. check <= 1 skips the
// resize check when the update was contended.
func (m *Map[K, V]) addCount(x int64, check int) {
	var s int64
	ct := m.counterCells.Load()
	if b := m.baseCount.Load(); ct != nil || !m.baseCount.CompareAndSwap(b, b+x) {
		h := probe()
		var c *counterCell
		if ct != nil && len(ct.cells) > 0 {
			c = ct.cells[int(h)&(len(ct.cells)-1)].Load()
		}
		if c == nil {
			m.fullAddCount(x, h, true)
			return
		}
		if !c.add(x) {
			m.fullAddCount(x, h, false)
			return
		}
		if check <= 1 {
			return
		}
		s = m.sumCount()
	} else {
		s = b + x
	}

	if check < 0 {
		return
	}
	for {
		sc := m.sizeCtl.Load()
		tab := m.table.Load()
		if s < int64(sc) || tab == nil {
			return
		}
		n := len(tab.bins)
		if n >= MaximumCapacity {
			return
		}
		rs := resizeStamp(n) << resizeStampShift
		if sc < 0 {
			nt := m.nextTable.Load()
			if sc == rs+maxResizers || sc == rs+1 || nt == nil || m.transferIndex.Load() <= 0 {
				return
			}
			if m.sizeCtl.CompareAndSwap(sc, sc+1) {
				m.transfer(tab, nt)
			}
		} else if m.sizeCtl.CompareAndSwap(sc, rs+2) {
			m.transfer(tab, nil)
		}
		s = m.sumCount()
	}
}

// fullAddCount handles a contended update: it creates, grows and probes
// counter cells, falling back to the base counter while cells are busy.
func (m *Map[K, V]) fullAddCount(x int64, h uint32, wasUncontended bool) {
	ncpu := runtime.GOMAXPROCS(0)
	collide := false
	for {
		ct := m.counterCells.Load()
		if ct != nil && len(ct.cells) > 0 {
			n := len(ct.cells)
			c := ct.cells[int(h)&(n-1)].Load()
			switch {
			case c == nil:
				if m.cellsBusy.Load() == 0 {
					r := &counterCell{}
					r.value.Store(x)
					if m.cellsBusy.CompareAndSwap(0, 1) {
						created := false
						if cur := m.counterCells.Load(); cur != nil && len(cur.cells) > 0 {
							if j := int(h) & (len(cur.cells) - 1); cur.cells[j].Load() == nil {
								cur.cells[j].Store(r)
								created = true
							}
						}
						m.cellsBusy.Store(0)
						if created {
							return
						}
						continue
					}
				}
				collide = false
			case !wasUncontended:
				wasUncontended = true
			case c.add(x):
				return
			case m.counterCells.Load() != ct || n >= ncpu:
				collide = false
			case !collide:
				collide = true
			case m.cellsBusy.Load() == 0 && m.cellsBusy.CompareAndSwap(0, 1):
				if m.counterCells.Load() == ct {
					grown := &cellTable{cells: make([]atomic.Pointer[counterCell], n<<1)}
					for i := range ct.cells {
						grown.cells[i].Store(ct.cells[i].Load())
					}
					m.counterCells.Store(grown)
				}
				m.cellsBusy.Store(0)
				collide = false
				continue
			}
			h = advanceProbe(h)
			continue
		}

		if m.cellsBusy.Load() == 0 && m.counterCells.Load() == ct && m.cellsBusy.CompareAndSwap(0, 1) {
			initialized := false
			if m.counterCells.Load() == ct {
				nt := &cellTable{cells: make([]atomic.Pointer[counterCell], 2)}
				c := &counterCell{}
				c.value.Store(x)
				nt.cells[h&1].Store(c)
				m.counterCells.Store(nt)
				initialized = true
			}
			m.cellsBusy.Store(0)
			if initialized {
				return
			}
			continue
		}

		if b := m.baseCount.Load(); m.baseCount.CompareAndSwap(b, b+x) {
			return
		}
	}
}
