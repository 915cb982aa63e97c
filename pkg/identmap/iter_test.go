package identmap

import (
	"sort"
	"testing"
)

func TestRange(t *testing.T) {
	m := New[testKey, int]()
	keys := newKeys(100)
	for i, k := range keys {
		m.Set(k, i)
	}

	seen := make(map[*testKey]int)
	m.Range(func(k *testKey, v int) bool {
		seen[k]++
		if v != k.id {
			t.Errorf("Range value for key %d = %d", k.id, v)
		}
		return true
	})
	if len(seen) != len(keys) {
		t.Fatalf("Range visited %d keys, want %d", len(seen), len(keys))
	}
	for k, n := range seen {
		if n != 1 {
			t.Errorf("key %d visited %d times", k.id, n)
		}
	}
}

func TestRangeEarlyStop(t *testing.T) {
	m := New[testKey, int]()
	for i, k := range newKeys(50) {
		m.Set(k, i)
	}
	count := 0
	m.Range(func(*testKey, int) bool {
		count++
		return count < 5
	})
	if count != 5 {
		t.Errorf("Range visited %d entries after stop, want 5", count)
	}
}

func TestRangeEmpty(t *testing.T) {
	var m Map[testKey, int]
	m.Range(func(*testKey, int) bool {
		t.Error("Range on empty map called fn")
		return true
	})
}

func TestRangeIncludesTreeBins(t *testing.T) {
	m := New[testKey, int](WithCapacity(64))
	keys := collidingKeys(t, m, 0x3ff, 0, 20)
	for i, k := range keys {
		m.Set(k, i)
	}
	for _, k := range newKeys(30) {
		m.Set(k, -1)
	}
	if got := len(m.Keys()); got != 50 {
		t.Errorf("Keys() returned %d keys, want 50", got)
	}
}

func TestKeysValuesItems(t *testing.T) {
	m := New[testKey, int]()
	keys := newKeys(10)
	for i, k := range keys {
		m.Set(k, i)
	}

	if got := len(m.Keys()); got != 10 {
		t.Errorf("len(Keys()) = %d, want 10", got)
	}

	values := m.Values()
	sort.Ints(values)
	for i, v := range values {
		if v != i {
			t.Fatalf("Values()[%d] = %d, want %d", i, v, i)
		}
	}

	for _, it := range m.Items() {
		if it.Value != it.Key.id {
			t.Errorf("Items() pair (%d, %d) mismatched", it.Key.id, it.Value)
		}
	}
}

func TestRangeWithLimit(t *testing.T) {
	m := New[testKey, int]()
	for i, k := range newKeys(20) {
		m.Set(k, i)
	}

	tests := []struct {
		limit int
		want  int
	}{
		{0, 0},
		{-1, 0},
		{5, 5},
		{20, 20},
		{100, 20},
	}
	for _, tt := range tests {
		got := m.RangeWithLimit(tt.limit, func(*testKey, int) bool { return true })
		if got != tt.want {
			t.Errorf("RangeWithLimit(%d) = %d, want %d", tt.limit, got, tt.want)
		}
	}
}

func TestRangeWithLimitEarlyStop(t *testing.T) {
	m := New[testKey, int]()
	for i, k := range newKeys(20) {
		m.Set(k, i)
	}
	n := 0
	got := m.RangeWithLimit(10, func(*testKey, int) bool {
		n++
		return n < 3
	})
	if got != 3 {
		t.Errorf("RangeWithLimit visited %d, want 3", got)
	}
}
