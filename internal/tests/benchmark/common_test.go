package benchmark

import (
	"fmt"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/dioritemc/diorite-go/pkg/material"
)

// Refs mixes every reference form Parse accepts.
var Refs = []string{
	"1", "1:3", "stone", "STONE:DIORITE", "minecraft:stone", "minecraft:planks:2",
	"35:14", "wool:red", "diamond_sword", "minecraft:diamond_sword", "162:9", "64:6",
}

// WorkerCounts are the parallelism levels for contention benchmarks.
var WorkerCounts = []int{1, 4, 16}

// allVariants returns every registered sub-type.
func allVariants(b *testing.B) []*material.Material {
	b.Helper()
	all := material.AllVariants()
	if len(all) == 0 {
		b.Fatal("registry is empty")
	}
	return all
}

// reportMemory reports heap in use after a forced GC.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
}

// runWithWorkers runs benchFn under RunParallel for each worker count.
func runWithWorkers(b *testing.B, benchFn func(pb *testing.PB, worker int)) {
	for _, n := range WorkerCounts {
		b.Run(fmt.Sprintf("workers_%d", n), func(b *testing.B) {
			b.SetParallelism(n)
			b.ReportAllocs()
			var next atomic.Int64
			b.RunParallel(func(pb *testing.PB) {
				benchFn(pb, int(next.Add(1)))
			})
		})
	}
}
