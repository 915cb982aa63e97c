package palette

import (
	"cmp"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/dioritemc/diorite-go/pkg/identmap"
	"github.com/dioritemc/diorite-go/pkg/material"
)

// Entry is a snapshot of one palette slot.
type Entry struct {
	Index    int
	Material *material.Material
	Hits     int64
}

type slot struct {
	index int
	hits  atomic.Int64
}

// Palette is safe for concurrent use.
type Palette struct {
	slots *identmap.Map[material.Material, *slot]

	mu     sync.RWMutex
	byIdx  []*material.Material
	hits   atomic.Int64
	misses atomic.Int64
}

type options struct {
	capacity int
	seed     uint32
	seeded   bool
	preload  []*material.Material
}

// Option configures a Palette.
type Option func(*options)

// WithCapacity sizes the backing map for n materials.
func WithCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

// WithSeed fixes the hash seed of the backing map.
func WithSeed(seed uint32) Option {
	return func(o *options) { o.seed, o.seeded = seed, true }
}

// WithPreload assigns indexes to ms in order before any lookup.
// Nil materials are skipped.
func WithPreload(ms ...*material.Material) Option {
	return func(o *options) { o.preload = append(o.preload, ms...) }
}

// New creates an empty palette.
func New(opts ...Option) *Palette {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	var mopts []identmap.Option
	if o.capacity > 0 {
		mopts = append(mopts, identmap.WithCapacity(o.capacity))
	}
	if o.seeded {
		mopts = append(mopts, identmap.WithSeed(o.seed))
	}
	p := &Palette{slots: identmap.New[material.Material, *slot](mopts...)}
	for _, m := range o.preload {
		if m != nil {
			p.slot(m)
		}
	}
	return p
}

func (p *Palette) slot(m *material.Material) *slot {
	s, _ := p.slots.ComputeIfAbsent(m, func() (*slot, bool) {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.byIdx = append(p.byIdx, m)
		return &slot{index: len(p.byIdx) - 1}, true
	})
	return s
}

// IndexOf returns the index of m, assigning one on first use. It does not
// count as a hit. Nil returns -1.
func (p *Palette) IndexOf(m *material.Material) int {
	if m == nil {
		return -1
	}
	return p.slot(m).index
}

// Hit is IndexOf plus a hit on the material's counter.
func (p *Palette) Hit(m *material.Material) int {
	if m == nil {
		p.misses.Add(1)
		return -1
	}
	s := p.slot(m)
	s.hits.Add(1)
	p.hits.Add(1)
	return s.index
}

// Lookup returns the entry of m without assigning an index.
func (p *Palette) Lookup(m *material.Material) (Entry, bool) {
	if m == nil {
		return Entry{}, false
	}
	s, ok := p.slots.Get(m)
	if !ok {
		return Entry{}, false
	}
	return Entry{Index: s.index, Material: m, Hits: s.hits.Load()}, true
}

// At returns the material at index, or nil when out of range.
func (p *Palette) At(index int) *material.Material {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if index < 0 || index >= len(p.byIdx) {
		return nil
	}
	return p.byIdx[index]
}

// Len returns the number of assigned indexes.
func (p *Palette) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.byIdx)
}

// Entries returns every slot ordered by index.
func (p *Palette) Entries() []Entry {
	out := make([]Entry, 0, p.slots.Count())
	p.slots.Range(func(m *material.Material, s *slot) bool {
		out = append(out, Entry{Index: s.index, Material: m, Hits: s.hits.Load()})
		return true
	})
	slices.SortFunc(out, func(a, b Entry) int { return cmp.Compare(a.Index, b.Index) })
	return out
}

// Hot returns up to n entries with the most hits, ties broken by index.
// Entries without hits are left out.
func (p *Palette) Hot(n int) []Entry {
	if n <= 0 {
		return nil
	}
	all := p.Entries()
	all = slices.DeleteFunc(all, func(e Entry) bool { return e.Hits == 0 })
	slices.SortStableFunc(all, func(a, b Entry) int { return cmp.Compare(b.Hits, a.Hits) })
	return all[:min(n, len(all))]
}

// Totals returns the palette-wide hit and miss counters.
func (p *Palette) Totals() (hits, misses int64) {
	return p.hits.Load(), p.misses.Load()
}

// Stats returns the layout of the backing identity map.
func (p *Palette) Stats() identmap.Stats {
	return p.slots.Stats()
}
