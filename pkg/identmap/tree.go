package identmap

import (
	"runtime"
	"sync/atomic"
	"unsafe"
)

// Tree bin lock state bits.
const (
	lockWriter int32 = 1 // set while holding the write lock
	lockWaiter int32 = 2 // set when a writer waits for readers to drain
	lockReader int32 = 4 // increment per active reader
)

// treeBin is the red-black tree held by a bin once it grows past
// TreeifyThreshold. Nodes stay linked through next in insertion order so
// that readers can scan linearly while a writer restructures the tree.
//
// Writers already hold the bin mutex; the read-write lock here only keeps
// tree readers away from rotations.
type treeBin[K, V any] struct {
	root      *node[K, V]
	first     atomic.Pointer[node[K, V]]
	lockState atomic.Int32
}

// compareKey orders a key against a tree node: by hash first, then by key
// address. Distinct keys never compare equal.
func compareKey[K, V any](h int32, key *K, p *node[K, V]) int {
	switch {
	case p.hash > h:
		return -1
	case p.hash < h:
		return 1
	}
	a, b := uintptr(unsafe.Pointer(key)), uintptr(unsafe.Pointer(p.key))
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func findTreeNode[K, V any](p *node[K, V], h int32, key *K) *node[K, V] {
	for p != nil {
		c := compareKey(h, key, p)
		if c == 0 {
			return p
		}
		if c < 0 {
			p = p.left
		} else {
			p = p.right
		}
	}
	return nil
}

// newTreeBinNode builds a tree over the list starting at first and
// returns the bin head wrapping it. The list must not be published yet.
func newTreeBinNode[K, V any](first *node[K, V]) *node[K, V] {
	var r *node[K, V]
	for x := first; x != nil; x = x.next.Load() {
		x.left, x.right = nil, nil
		if r == nil {
			x.parent = nil
			x.red = false
			r = x
			continue
		}
		for p := r; ; {
			c := compareKey(x.hash, x.key, p)
			xp := p
			if c <= 0 {
				p = p.left
			} else {
				p = p.right
			}
			if p == nil {
				x.parent = xp
				if c <= 0 {
					xp.left = x
				} else {
					xp.right = x
				}
				r = balanceInsertion(r, x)
				break
			}
		}
	}
	tb := &treeBin[K, V]{root: r}
	tb.first.Store(first)
	return &node[K, V]{hash: hashTreeBin, tb: tb}
}

// newTreeNode allocates a tree node sharing the value pointer of an
// existing mapping.
func newTreeNode[K, V any](h int32, key *K, v *V, next, parent *node[K, V]) *node[K, V] {
	n := &node[K, V]{hash: h, key: key, parent: parent}
	n.val.Store(v)
	n.next.Store(next)
	return n
}

// untreeify returns a plain chain holding copies of the given nodes.
func untreeify[K, V any](b *node[K, V]) *node[K, V] {
	var hd, tl *node[K, V]
	for q := b; q != nil; q = q.next.Load() {
		p := &node[K, V]{hash: q.hash, key: q.key}
		p.val.Store(q.val.Load())
		if tl == nil {
			hd = p
		} else {
			tl.next.Store(p)
		}
		tl = p
	}
	return hd
}

func (t *treeBin[K, V]) lockRoot() {
	if !t.lockState.CompareAndSwap(0, lockWriter) {
		t.contendedLock()
	}
}

func (t *treeBin[K, V]) unlockRoot() {
	t.lockState.Store(0)
}

// contendedLock waits for active readers. Setting lockWaiter sends new
// readers down the linear path so the writer cannot starve.
func (t *treeBin[K, V]) contendedLock() {
	for {
		s := t.lockState.Load()
		switch {
		case s&^lockWaiter == 0:
			if t.lockState.CompareAndSwap(s, lockWriter) {
				return
			}
		case s&lockWaiter == 0:
			t.lockState.CompareAndSwap(s, s|lockWaiter)
		default:
			runtime.Gosched()
		}
	}
}

// find returns the node for key or nil. It walks the tree under a read
// lock when possible and scans the list otherwise.
func (t *treeBin[K, V]) find(h int32, key *K) *node[K, V] {
	for e := t.first.Load(); e != nil; {
		s := t.lockState.Load()
		if s&(lockWaiter|lockWriter) != 0 {
			if e.hash == h && e.key == key {
				return e
			}
			e = e.next.Load()
			continue
		}
		if t.lockState.CompareAndSwap(s, s+lockReader) {
			p := findTreeNode(t.root, h, key)
			t.lockState.Add(-lockReader)
			return p
		}
	}
	return nil
}

// putTreeVal returns the existing node for key, or inserts a new one and
// returns nil. Callers hold the bin mutex.
func (t *treeBin[K, V]) putTreeVal(h int32, key *K, v V) *node[K, V] {
	var xp *node[K, V]
	dir := 0
	for p := t.root; p != nil; {
		dir = compareKey(h, key, p)
		if dir == 0 {
			return p
		}
		xp = p
		if dir < 0 {
			p = p.left
		} else {
			p = p.right
		}
	}

	f := t.first.Load()
	x := newTreeNode(h, key, &v, f, xp)
	if f != nil {
		f.prev = x
	}

	t.lockRoot()
	switch {
	case xp == nil:
		t.root = x
	case dir < 0:
		xp.left = x
	default:
		xp.right = x
	}
	t.root = balanceInsertion(t.root, x)
	t.first.Store(x)
	t.unlockRoot()
	return nil
}

// removeTreeNode unlinks p. It reports true when the bin has become too
// small and should be replaced by untreeify(t.first); the tree itself is
// left untouched in that case. Callers hold the bin mutex.
func (t *treeBin[K, V]) removeTreeNode(p *node[K, V]) bool {
	next := p.next.Load()
	pred := p.prev
	if pred == nil {
		t.first.Store(next)
	} else {
		pred.next.Store(next)
	}
	if next != nil {
		next.prev = pred
	}
	if t.first.Load() == nil {
		t.lockRoot()
		t.root = nil
		t.unlockRoot()
		return true
	}
	r := t.root
	if r == nil || r.right == nil || r.left == nil || r.left.left == nil {
		return true
	}

	t.lockRoot()
	defer t.unlockRoot()

	var replacement *node[K, V]
	pl, pr := p.left, p.right
	switch {
	case pl != nil && pr != nil:
		s := pr
		for s.left != nil {
			s = s.left
		}
		s.red, p.red = p.red, s.red
		sr := s.right
		pp := p.parent
		if s == pr {
			p.parent = s
			s.right = p
		} else {
			sp := s.parent
			p.parent = sp
			if sp != nil {
				if s == sp.left {
					sp.left = p
				} else {
					sp.right = p
				}
			}
			s.right = pr
			pr.parent = s
		}
		p.left = nil
		p.right = sr
		if sr != nil {
			sr.parent = p
		}
		s.left = pl
		pl.parent = s
		s.parent = pp
		switch {
		case pp == nil:
			r = s
		case p == pp.left:
			pp.left = s
		default:
			pp.right = s
		}
		if sr != nil {
			replacement = sr
		} else {
			replacement = p
		}
	case pl != nil:
		replacement = pl
	case pr != nil:
		replacement = pr
	default:
		replacement = p
	}

	if replacement != p {
		pp := p.parent
		replacement.parent = pp
		switch {
		case pp == nil:
			r = replacement
		case p == pp.left:
			pp.left = replacement
		default:
			pp.right = replacement
		}
		p.left, p.right, p.parent = nil, nil, nil
	}

	if p.red {
		t.root = r
	} else {
		t.root = balanceDeletion(r, replacement)
	}

	if p == replacement {
		if pp := p.parent; pp != nil {
			if p == pp.left {
				pp.left = nil
			} else if p == pp.right {
				pp.right = nil
			}
			p.parent = nil
		}
	}
	return false
}

func rotateLeft[K, V any](root, p *node[K, V]) *node[K, V] {
	if p == nil || p.right == nil {
		return root
	}
	r := p.right
	rl := r.left
	p.right = rl
	if rl != nil {
		rl.parent = p
	}
	pp := p.parent
	r.parent = pp
	switch {
	case pp == nil:
		root = r
		r.red = false
	case pp.left == p:
		pp.left = r
	default:
		pp.right = r
	}
	r.left = p
	p.parent = r
	return root
}

func rotateRight[K, V any](root, p *node[K, V]) *node[K, V] {
	if p == nil || p.left == nil {
		return root
	}
	l := p.left
	lr := l.right
	p.left = lr
	if lr != nil {
		lr.parent = p
	}
	pp := p.parent
	l.parent = pp
	switch {
	case pp == nil:
		root = l
		l.red = false
	case pp.right == p:
		pp.right = l
	default:
		pp.left = l
	}
	l.right = p
	p.parent = l
	return root
}

func balanceInsertion[K, V any](root, x *node[K, V]) *node[K, V] {
	x.red = true
	for {
		xp := x.parent
		if xp == nil {
			x.red = false
			return x
		}
		xpp := xp.parent
		if !xp.red || xpp == nil {
			return root
		}
		if xppl := xpp.left; xp == xppl {
			if xppr := xpp.right; xppr != nil && xppr.red {
				xppr.red = false
				xp.red = false
				xpp.red = true
				x = xpp
				continue
			}
			if x == xp.right {
				x = xp
				root = rotateLeft(root, x)
				xp = x.parent
				xpp = nil
				if xp != nil {
					xpp = xp.parent
				}
			}
			if xp != nil {
				xp.red = false
				if xpp != nil {
					xpp.red = true
					root = rotateRight(root, xpp)
				}
			}
		} else {
			if xppl != nil && xppl.red {
				xppl.red = false
				xp.red = false
				xpp.red = true
				x = xpp
				continue
			}
			if x == xp.left {
				x = xp
				root = rotateRight(root, x)
				xp = x.parent
				xpp = nil
				if xp != nil {
					xpp = xp.parent
				}
			}
			if xp != nil {
				xp.red = false
				if xpp != nil {
					xpp.red = true
					root = rotateLeft(root, xpp)
				}
			}
		}
	}
}

func isRed[K, V any](n *node[K, V]) bool {
	return n != nil && n.red
}

func balanceDeletion[K, V any](root, x *node[K, V]) *node[K, V] {
	for {
		if x == nil || x == root {
			return root
		}
		xp := x.parent
		if xp == nil {
			x.red = false
			return x
		}
		if x.red {
			x.red = false
			return root
		}
		if xpl := xp.left; xpl == x {
			xpr := xp.right
			if isRed(xpr) {
				xpr.red = false
				xp.red = true
				root = rotateLeft(root, xp)
				xp = x.parent
				xpr = nil
				if xp != nil {
					xpr = xp.right
				}
			}
			if xpr == nil {
				x = xp
				continue
			}
			sl, sr := xpr.left, xpr.right
			if !isRed(sr) && !isRed(sl) {
				xpr.red = true
				x = xp
				continue
			}
			if !isRed(sr) {
				if sl != nil {
					sl.red = false
				}
				xpr.red = true
				root = rotateRight(root, xpr)
				xp = x.parent
				xpr = nil
				if xp != nil {
					xpr = xp.right
				}
			}
			if xpr != nil {
				xpr.red = xp != nil && xp.red
				if sr = xpr.right; sr != nil {
					sr.red = false
				}
			}
			if xp != nil {
				xp.red = false
				root = rotateLeft(root, xp)
			}
			x = root
		} else {
			if isRed(xpl) {
				xpl.red = false
				xp.red = true
				root = rotateRight(root, xp)
				xp = x.parent
				xpl = nil
				if xp != nil {
					xpl = xp.left
				}
			}
			if xpl == nil {
				x = xp
				continue
			}
			sl, sr := xpl.left, xpl.right
			if !isRed(sl) && !isRed(sr) {
				xpl.red = true
				x = xp
				continue
			}
			if !isRed(sl) {
				if sr != nil {
					sr.red = false
				}
				xpl.red = true
				root = rotateLeft(root, xpl)
				xp = x.parent
				xpl = nil
				if xp != nil {
					xpl = xp.left
				}
			}
			if xpl != nil {
				xpl.red = xp != nil && xp.red
				if sl = xpl.left; sl != nil {
					sl.red = false
				}
			}
			if xp != nil {
				xp.red = false
				root = rotateRight(root, xp)
			}
			x = root
		}
	}
}
