package identmap

import (
	"testing"
)

func BenchmarkGet(b *testing.B) {
	m := New[testKey, int]()
	keys := newKeys(4096)
	for i, k := range keys {
		m.Set(k, i)
	}
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			m.Get(keys[i&4095])
			i++
		}
	})
}

func BenchmarkSet(b *testing.B) {
	m := New[testKey, int]()
	keys := newKeys(4096)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			m.Set(keys[i&4095], i)
			i++
		}
	})
}

func BenchmarkComputeIfAbsent(b *testing.B) {
	m := New[testKey, int]()
	keys := newKeys(4096)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			m.ComputeIfAbsent(keys[i&4095], func() (int, bool) { return i, true })
			i++
		}
	})
}
