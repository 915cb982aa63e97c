package identmap

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestTreeifyAndLookup(t *testing.T) {
	m := New[testKey, int](WithCapacity(64))
	keys := collidingKeys(t, m, 0x3ff, 0, 24)
	for i, k := range keys {
		m.Set(k, i)
	}

	st := m.Stats()
	if st.TableLength != 128 {
		t.Fatalf("TableLength = %d, want 128", st.TableLength)
	}
	if st.TreeBins != 1 || st.Treeifies != 1 {
		t.Errorf("TreeBins = %d, Treeifies = %d, want 1 and 1", st.TreeBins, st.Treeifies)
	}
	if st.MaxChainLength != len(keys) {
		t.Errorf("MaxChainLength = %d, want %d", st.MaxChainLength, len(keys))
	}
	for i, k := range keys {
		if v, ok := m.Get(k); !ok || v != i {
			t.Fatalf("Get(keys[%d]) = (%d, %v), want (%d, true)", i, v, ok, i)
		}
	}
	mustInvariants(t, m)

	for i, k := range keys {
		if old, loaded := m.Swap(k, i+100); !loaded || old != i {
			t.Fatalf("Swap(keys[%d]) = (%d, %v), want (%d, true)", i, old, loaded, i)
		}
	}
	if m.Count() != len(keys) {
		t.Errorf("Count() = %d, want %d", m.Count(), len(keys))
	}
	if !m.Has(keys[0]) || m.Has(&testKey{}) {
		t.Error("Has() wrong on tree bin")
	}
	mustInvariants(t, m)
}

func TestSmallTableResizesInsteadOfTreeify(t *testing.T) {
	m := New[testKey, int]()
	keys := collidingKeys(t, m, 0x3ff, 0, 12)
	for i, k := range keys {
		m.Set(k, i)
	}
	st := m.Stats()
	if st.TableLength < MinTreeifyCapacity {
		t.Errorf("TableLength = %d, want at least %d", st.TableLength, MinTreeifyCapacity)
	}
	if st.Resizes == 0 {
		t.Error("long chain in small table did not trigger a resize")
	}
	for i, k := range keys {
		if v, _ := m.Get(k); v != i {
			t.Fatalf("Get(keys[%d]) = %d, want %d", i, v, i)
		}
	}
	mustInvariants(t, m)
}

func TestUntreeifyOnRemoval(t *testing.T) {
	m := New[testKey, int](WithCapacity(64))
	keys := collidingKeys(t, m, 0x3ff, 0, 20)
	for i, k := range keys {
		m.Set(k, i)
	}
	if m.Stats().TreeBins != 1 {
		t.Fatal("bin was not treeified")
	}

	for i := 0; i < len(keys)-2; i++ {
		if v, ok := m.Pop(keys[i]); !ok || v != i {
			t.Fatalf("Pop(keys[%d]) = (%d, %v), want (%d, true)", i, v, ok, i)
		}
		mustInvariants(t, m)
	}

	st := m.Stats()
	if st.TreeBins != 0 {
		t.Errorf("TreeBins = %d after shrinking, want 0", st.TreeBins)
	}
	if st.Untreeifies == 0 {
		t.Error("Untreeifies = 0, want at least 1")
	}
	for i := len(keys) - 2; i < len(keys); i++ {
		if v, ok := m.Get(keys[i]); !ok || v != i {
			t.Errorf("Get(keys[%d]) = (%d, %v), want (%d, true)", i, v, ok, i)
		}
	}
}

func TestTreeRemovalKeepsBalance(t *testing.T) {
	m := New[testKey, int](WithCapacity(64))
	keys := collidingKeys(t, m, 0x3ff, 0, 64)
	for i, k := range keys {
		m.Set(k, i)
	}
	// Remove every other key so deletions hit inner nodes with two
	// children as well as leaves.
	for i := 0; i < len(keys); i += 2 {
		m.Delete(keys[i])
		mustInvariants(t, m)
	}
	if m.Stats().TreeBins != 1 {
		t.Error("tree bin with 32 entries was untreeified")
	}
	for i, k := range keys {
		_, ok := m.Get(k)
		if want := i%2 == 1; ok != want {
			t.Fatalf("Has(keys[%d]) = %v, want %v", i, ok, want)
		}
	}
}

func TestTreeBinSplitOnResize(t *testing.T) {
	m := New[testKey, int](WithCapacity(64))
	lo := collidingKeys(t, m, 0xff, 0, 10)
	hi := collidingKeys(t, m, 0xff, 0x80, 10)
	keys := append(append([]*testKey{}, lo...), hi...)
	for i, k := range keys {
		m.Set(k, i)
	}
	if st := m.Stats(); st.TableLength != 128 || st.TreeBins != 1 {
		t.Fatalf("before resize: TableLength = %d, TreeBins = %d", st.TableLength, st.TreeBins)
	}

	for _, k := range newKeys(100) {
		m.Set(k, -1)
	}

	tab := m.table.Load()
	if len(tab.bins) != 256 {
		t.Fatalf("TableLength = %d, want 256", len(tab.bins))
	}
	for _, i := range []int{0, 128} {
		if f := tab.at(i); f == nil || f.hash != hashTreeBin {
			t.Errorf("bin %d is not a tree bin after split", i)
		}
	}
	for i, k := range keys {
		if v, _ := m.Get(k); v != i {
			t.Fatalf("Get(keys[%d]) = %d, want %d", i, v, i)
		}
	}
	mustInvariants(t, m)
}

func TestTreeBinReusedWhenNothingMoves(t *testing.T) {
	m := New[testKey, int](WithCapacity(64))
	keys := collidingKeys(t, m, 0x3ff, 0, 12)
	for i, k := range keys {
		m.Set(k, i)
	}
	before := m.table.Load().at(0)
	if before.hash != hashTreeBin {
		t.Fatal("bin 0 is not a tree bin")
	}

	m.tryPresize(200)
	if after := m.table.Load().at(0); after != before {
		t.Error("unsplit tree bin was rebuilt on resize")
	}
	mustInvariants(t, m)
}

func TestConcurrentTreeReads(t *testing.T) {
	m := New[testKey, int](WithCapacity(64))
	keys := collidingKeys(t, m, 0x3ff, 0, 80)
	stable, churn := keys[:40], keys[40:]
	for i, k := range stable {
		m.Set(k, i)
	}

	var stop atomic.Bool
	var wg sync.WaitGroup
	var misses atomic.Int64
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for !stop.Load() {
				for i, k := range stable {
					if v, ok := m.Get(k); !ok || v != i {
						misses.Add(1)
					}
				}
			}
		}()
	}

	for round := 0; round < 200; round++ {
		for _, k := range churn {
			m.Set(k, round)
		}
		for _, k := range churn {
			m.Delete(k)
		}
	}
	stop.Store(true)
	wg.Wait()

	if n := misses.Load(); n != 0 {
		t.Errorf("readers missed stable keys %d times", n)
	}
	mustInvariants(t, m)
}

func TestConcurrentTreeChurnDuringResize(t *testing.T) {
	m := New[testKey, int](WithCapacity(64))
	keys := collidingKeys(t, m, 0x3ff, 0, 48)
	stable, churn := keys[:24], keys[24:]
	for i, k := range stable {
		m.Set(k, i)
	}

	rounds, fill := 300, 20000
	if raceEnabled {
		rounds, fill = 50, 4000
	}

	var stop atomic.Bool
	var misses atomic.Int64
	var readers sync.WaitGroup
	for r := 0; r < 2; r++ {
		readers.Add(1)
		go func() {
			defer readers.Done()
			for !stop.Load() {
				for i, k := range stable {
					if v, ok := m.Get(k); !ok || v != i {
						misses.Add(1)
					}
				}
			}
		}()
	}

	n := workers() / 2
	perWorker := fill / n
	var writers sync.WaitGroup
	writers.Add(1)
	go func() {
		defer writers.Done()
		for round := 0; round < rounds; round++ {
			for _, k := range churn {
				m.Set(k, round)
			}
			for _, k := range churn {
				m.Delete(k)
			}
		}
	}()
	for w := 0; w < n; w++ {
		writers.Add(1)
		go func() {
			defer writers.Done()
			for _, k := range newKeys(perWorker) {
				m.Set(k, -1)
			}
		}()
	}
	writers.Wait()
	stop.Store(true)
	readers.Wait()

	if got := misses.Load(); got != 0 {
		t.Errorf("readers missed stable keys %d times", got)
	}
	for i, k := range churn {
		if m.Has(k) {
			t.Errorf("churn key %d still present", i)
		}
	}
	if want := len(stable) + n*perWorker; m.Count() != want {
		t.Errorf("Count() = %d, want %d", m.Count(), want)
	}
	if m.Stats().Resizes == 0 {
		t.Error("no resize happened")
	}
	mustInvariants(t, m)
}
