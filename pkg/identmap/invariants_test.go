package identmap

import (
	"errors"
	"fmt"
	"testing"
)

type testKey struct {
	id int
}

func newKeys(n int) []*testKey {
	keys := make([]*testKey, n)
	for i := range keys {
		keys[i] = &testKey{id: i}
	}
	return keys
}

// collidingKeys returns n keys whose hashes share their low bits with
// want under mask, taken from one backing array.
func collidingKeys(t *testing.T, m *Map[testKey, int], mask, want int32, n int) []*testKey {
	t.Helper()
	pool := make([]testKey, 1<<19)
	out := make([]*testKey, 0, n)
	for i := range pool {
		k := &pool[i]
		k.id = i
		if m.hash(k)&mask == want {
			out = append(out, k)
			if len(out) == n {
				return out
			}
		}
	}
	t.Fatalf("found %d of %d colliding keys", len(out), n)
	return nil
}

// checkTree verifies red-black and ordering invariants below p and
// returns its black height and node count.
func checkTree[K, V any](p *node[K, V]) (blackHeight, count int, err error) {
	if p == nil {
		return 1, 0, nil
	}
	if l := p.left; l != nil {
		if l.parent != p {
			return 0, 0, fmt.Errorf("left child of %p has wrong parent", p.key)
		}
		if compareKey(l.hash, l.key, p) >= 0 {
			return 0, 0, fmt.Errorf("left child of %p out of order", p.key)
		}
	}
	if r := p.right; r != nil {
		if r.parent != p {
			return 0, 0, fmt.Errorf("right child of %p has wrong parent", p.key)
		}
		if compareKey(r.hash, r.key, p) <= 0 {
			return 0, 0, fmt.Errorf("right child of %p out of order", p.key)
		}
	}
	if p.red && (isRed(p.left) || isRed(p.right)) {
		return 0, 0, fmt.Errorf("red node %p has a red child", p.key)
	}
	lh, lc, err := checkTree(p.left)
	if err != nil {
		return 0, 0, err
	}
	rh, rc, err := checkTree(p.right)
	if err != nil {
		return 0, 0, err
	}
	if lh != rh {
		return 0, 0, fmt.Errorf("black height mismatch at %p: %d vs %d", p.key, lh, rh)
	}
	if !p.red {
		lh++
	}
	return lh, lc + rc + 1, nil
}

func checkTreeBin[K, V any](tb *treeBin[K, V]) error {
	if tb.lockState.Load() != 0 {
		return errors.New("tree bin left locked")
	}
	root := tb.root
	if root != nil && (root.red || root.parent != nil) {
		return errors.New("root must be black and parentless")
	}
	_, count, err := checkTree(root)
	if err != nil {
		return err
	}
	listed := 0
	var prev *node[K, V]
	for e := tb.first.Load(); e != nil; e = e.next.Load() {
		if e.prev != prev {
			return fmt.Errorf("prev link broken at %p", e.key)
		}
		if findTreeNode(root, e.hash, e.key) != e {
			return fmt.Errorf("listed node %p missing from tree", e.key)
		}
		prev = e
		listed++
	}
	if listed != count {
		return fmt.Errorf("list holds %d nodes, tree holds %d", listed, count)
	}
	return nil
}

// checkInvariants verifies the whole map once writers have stopped.
func checkInvariants[K, V any](m *Map[K, V]) error {
	tab := m.table.Load()
	if tab == nil {
		if m.MappingCount() != 0 {
			return errors.New("count without table")
		}
		return nil
	}
	n := len(tab.bins)
	if n&(n-1) != 0 {
		return fmt.Errorf("table length %d is not a power of two", n)
	}
	if m.nextTable.Load() != nil {
		return errors.New("resize still in progress")
	}

	seen := make(map[*K]bool)
	for i := range tab.bins {
		f := tab.at(i)
		if f == nil {
			continue
		}
		var first *node[K, V]
		switch {
		case f.hash == hashTreeBin:
			if err := checkTreeBin(f.tb); err != nil {
				return fmt.Errorf("bin %d: %w", i, err)
			}
			first = f.tb.first.Load()
		case f.hash >= 0:
			first = f
		default:
			return fmt.Errorf("bin %d holds special node %d", i, f.hash)
		}
		for e := first; e != nil; e = e.next.Load() {
			if e.hash < 0 || int(e.hash)&(n-1) != i {
				return fmt.Errorf("bin %d holds node with hash %#x", i, e.hash)
			}
			if seen[e.key] {
				return fmt.Errorf("key %p mapped twice", e.key)
			}
			seen[e.key] = true
		}
	}
	if got := m.MappingCount(); got != int64(len(seen)) {
		return fmt.Errorf("MappingCount() = %d, table holds %d", got, len(seen))
	}
	return nil
}

func mustInvariants[K, V any](t *testing.T, m *Map[K, V]) {
	t.Helper()
	if err := checkInvariants(m); err != nil {
		t.Fatalf("invariants: %v", err)
	}
}
