package identmap

import (
	"encoding/binary"
	"errors"
	"math/bits"
	"math/rand/v2"
	"sync/atomic"
	"unsafe"

	"github.com/spaolacci/murmur3"
)

const (
	// MaximumCapacity is the largest table length.
	MaximumCapacity = 1 << 30

	// DefaultCapacity is the table length used when none was requested.
	DefaultCapacity = 16

	// DefaultLoadFactor only affects initial sizing; resizes always
	// trigger at 3/4 of the table length.
	DefaultLoadFactor = 0.75

	// TreeifyThreshold is the chain length at which a bin becomes a tree.
	TreeifyThreshold = 8

	// UntreeifyThreshold is the size at or below which a tree bin split
	// during resize turns back into a chain.
	UntreeifyThreshold = 6

	// MinTreeifyCapacity is the smallest table that may hold tree bins.
	// Smaller tables are resized instead.
	MinTreeifyCapacity = 64

	// MinTransferStride is the minimum number of bins a resizer claims.
	MinTransferStride = 16

	resizeStampBits  = 16
	maxResizers      = (1 << (32 - resizeStampBits)) - 1
	resizeStampShift = 32 - resizeStampBits

	hashBits = 0x7fffffff
)

var (
	// ErrNilKey is the panic value raised when a nil key is used.
	ErrNilKey = errors.New("identmap: nil key")

	// ErrZeroSizeKey is the panic value raised when K has size zero.
	// Distinct zero-size allocations may share one address.
	ErrZeroSizeKey = errors.New("identmap: key type has zero size")
)

// Map is a concurrent map keyed by the identity of *K.
//
// K must have a non-zero size; New and the first insert panic with
// ErrZeroSizeKey otherwise. The zero value is an empty map ready to use.
// A Map must not be copied after first use.
type Map[K, V any] struct {
	table     atomic.Pointer[table[K, V]]
	nextTable atomic.Pointer[table[K, V]]

	// sizeCtl is -1 while the table is initialised, a negative resize
	// stamp plus (resizers+1) while resizing, the initial capacity
	// before the table exists, and the next resize threshold otherwise.
	sizeCtl       atomic.Int32
	transferIndex atomic.Int32

	baseCount    atomic.Int64
	cellsBusy    atomic.Int32
	counterCells atomic.Pointer[cellTable]

	seed uint32

	resizes     atomic.Int64
	treeifies   atomic.Int64
	untreeifies atomic.Int64
}

// Option configures a Map created by New.
type Option func(*options)

type options struct {
	capacity         int
	loadFactor       float64
	concurrencyLevel int
	seed             uint32
	seeded           bool
}

// WithCapacity presizes the table to hold n mappings without resizing.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.capacity = n
		}
	}
}

// WithLoadFactor sets the density used to size the initial table.
func WithLoadFactor(f float64) Option {
	return func(o *options) {
		if f > 0 {
			o.loadFactor = f
		}
	}
}

// WithConcurrencyLevel raises the initial capacity to at least n.
func WithConcurrencyLevel(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrencyLevel = n
		}
	}
}

// WithSeed fixes the hash seed. Maps normally draw a random one.
func WithSeed(seed uint32) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// New creates an empty map. Invalid option values fall back to defaults.
func New[K, V any](opts ...Option) *Map[K, V] {
	checkKeySize[K]()
	o := options{loadFactor: DefaultLoadFactor, concurrencyLevel: 1}
	for _, opt := range opts {
		opt(&o)
	}

	m := &Map[K, V]{seed: o.seed}
	if !o.seeded {
		m.seed = rand.Uint32()
	}

	if o.capacity > 0 {
		c := o.capacity
		if c < o.concurrencyLevel {
			c = o.concurrencyLevel
		}
		size := 1.0 + float64(c)/o.loadFactor
		n := MaximumCapacity
		if size < MaximumCapacity {
			n = tableSizeFor(int(size))
		}
		m.sizeCtl.Store(int32(n))
	}
	return m
}

// spread folds the high bits down and clears the sign bit, which is
// reserved for special nodes.
func spread(h uint32) int32 {
	return int32((h ^ h>>16) & hashBits)
}

func (m *Map[K, V]) hash(key *K) int32 {
	if key == nil {
		panic(ErrNilKey)
	}
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(uintptr(unsafe.Pointer(key))))
	// Not Sum32WithSeed: its uintptr arithmetic fails checkptr under -race.
	h := murmur3.Sum64WithSeed(b[:], m.seed)
	return spread(uint32(h ^ h>>32))
}

func checkKeySize[K any]() {
	var k K
	if unsafe.Sizeof(k) == 0 {
		panic(ErrZeroSizeKey)
	}
}

// tableSizeFor returns the smallest power of two >= c, clamped to
// [1, MaximumCapacity].
func tableSizeFor(c int) int {
	if c <= 1 {
		return 1
	}
	if c >= MaximumCapacity {
		return MaximumCapacity
	}
	return 1 << bits.Len(uint(c-1))
}

// resizeStamp marks a resize of a table of length n. Shifted left by
// resizeStampShift it is always negative.
func resizeStamp(n int) int32 {
	return int32(bits.LeadingZeros32(uint32(n))) | (1 << (resizeStampBits - 1))
}

func (m *Map[K, V]) getNode(key *K) *node[K, V] {
	h := m.hash(key)
	tab := m.table.Load()
	if tab == nil || len(tab.bins) == 0 {
		return nil
	}
	e := tab.at(int(h) & (len(tab.bins) - 1))
	if e == nil {
		return nil
	}
	if e.hash == h {
		if e.key == key {
			return e
		}
	} else if e.hash < 0 {
		return e.find(h, key)
	}
	for e = e.next.Load(); e != nil; e = e.next.Load() {
		if e.hash == h && e.key == key {
			return e
		}
	}
	return nil
}

// Get returns the value mapped to key.
func (m *Map[K, V]) Get(key *K) (V, bool) {
	if e := m.getNode(key); e != nil {
		if p := e.val.Load(); p != nil {
			return *p, true
		}
	}
	var zero V
	return zero, false
}

// GetOrDefault returns the value mapped to key, or def.
func (m *Map[K, V]) GetOrDefault(key *K, def V) V {
	if v, ok := m.Get(key); ok {
		return v
	}
	return def
}

// Has reports whether key is mapped.
func (m *Map[K, V]) Has(key *K) bool {
	_, ok := m.Get(key)
	return ok
}

// Set maps key to value.
func (m *Map[K, V]) Set(key *K, value V) {
	m.putVal(key, value, false)
}

// Swap maps key to value and returns the previous value, if any.
func (m *Map[K, V]) Swap(key *K, value V) (V, bool) {
	return m.putVal(key, value, false)
}

// GetOrSet returns the existing value for key, or stores value. loaded
// reports whether the value was already present.
func (m *Map[K, V]) GetOrSet(key *K, value V) (actual V, loaded bool) {
	if old, ok := m.putVal(key, value, true); ok {
		return old, true
	}
	return value, false
}

// SetIfAbsent stores value only if key is not mapped. It reports whether
// the value was stored.
func (m *Map[K, V]) SetIfAbsent(key *K, value V) bool {
	_, loaded := m.putVal(key, value, true)
	return !loaded
}

// SetIfPresent replaces the value only if key is mapped. It reports
// whether the value was stored.
func (m *Map[K, V]) SetIfPresent(key *K, value V) bool {
	_, ok := m.replaceNode(key, &value, nil)
	return ok
}

// Replace replaces the value for a mapped key and returns the old value.
func (m *Map[K, V]) Replace(key *K, value V) (V, bool) {
	return m.replaceNode(key, &value, nil)
}

// Delete removes key.
func (m *Map[K, V]) Delete(key *K) {
	m.replaceNode(key, nil, nil)
}

// Pop removes key and returns its value.
func (m *Map[K, V]) Pop(key *K) (V, bool) {
	return m.replaceNode(key, nil, nil)
}

// SetAll copies every entry of src into the map, presizing the table
// first.
func (m *Map[K, V]) SetAll(src map[*K]V) {
	m.tryPresize(len(src))
	for k, v := range src {
		m.putVal(k, v, false)
	}
}

// putVal implements Set and its variants. It returns the previous value
// when key was mapped.
func (m *Map[K, V]) putVal(key *K, value V, onlyIfAbsent bool) (old V, loaded bool) {
	h := m.hash(key)
	binCount := 0
	tab := m.table.Load()
	for {
		if tab == nil || len(tab.bins) == 0 {
			tab = m.initTable()
			continue
		}
		i := int(h) & (len(tab.bins) - 1)
		f := tab.at(i)
		switch {
		case f == nil:
			if tab.cas(i, nil, newNode(h, key, value)) {
				m.addCount(1, 0)
				return old, false
			}
			continue
		case f.hash == hashMoved:
			tab = m.helpTransfer(tab, f)
			continue
		case onlyIfAbsent && f.hash == h && f.key == key:
			if p := f.val.Load(); p != nil {
				return *p, true
			}
		}

		binCount, old, loaded = m.putLocked(tab, i, f, h, key, value, onlyIfAbsent)
		if binCount == 0 {
			continue
		}
		if binCount >= TreeifyThreshold {
			m.treeifyBin(tab, i)
		}
		if loaded {
			return old, true
		}
		m.addCount(1, binCount)
		return old, false
	}
}

// putLocked inserts into the non-empty bin headed by f. A zero binCount
// means the bin changed before the lock was taken.
func (m *Map[K, V]) putLocked(tab *table[K, V], i int, f *node[K, V], h int32, key *K, value V, onlyIfAbsent bool) (binCount int, old V, loaded bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if tab.at(i) != f {
		return 0, old, false
	}

	switch {
	case f.hash >= 0:
		binCount = 1
		for e := f; ; binCount++ {
			if e.hash == h && e.key == key {
				old, loaded = *e.val.Load(), true
				if !onlyIfAbsent {
					e.val.Store(&value)
				}
				return binCount, old, loaded
			}
			next := e.next.Load()
			if next == nil {
				e.next.Store(newNode(h, key, value))
				return binCount, old, false
			}
			e = next
		}
	case f.hash == hashTreeBin:
		if p := f.tb.putTreeVal(h, key, value); p != nil {
			old, loaded = *p.val.Load(), true
			if !onlyIfAbsent {
				p.val.Store(&value)
			}
		}
		return 2, old, loaded
	}
	return 0, old, false
}

// replaceNode replaces the value for key with *value, or removes the
// mapping when value is nil. match, when set, must accept the current
// value for the change to happen.
func (m *Map[K, V]) replaceNode(key *K, value *V, match func(V) bool) (old V, ok bool) {
	h := m.hash(key)
	tab := m.table.Load()
	for tab != nil && len(tab.bins) > 0 {
		i := int(h) & (len(tab.bins) - 1)
		f := tab.at(i)
		if f == nil {
			break
		}
		if f.hash == hashMoved {
			tab = m.helpTransfer(tab, f)
			continue
		}

		validated := false
		old, ok, validated = m.replaceLocked(tab, i, f, h, key, value, match)
		if !validated {
			continue
		}
		if ok && value == nil {
			m.addCount(-1, -1)
		}
		return old, ok
	}
	return old, false
}

func (m *Map[K, V]) replaceLocked(tab *table[K, V], i int, f *node[K, V], h int32, key *K, value *V, match func(V) bool) (old V, ok, validated bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if tab.at(i) != f {
		return old, false, false
	}

	switch {
	case f.hash >= 0:
		var pred *node[K, V]
		for e := f; e != nil; pred, e = e, e.next.Load() {
			if e.hash != h || e.key != key {
				continue
			}
			ev := *e.val.Load()
			if match != nil && !match(ev) {
				break
			}
			old, ok = ev, true
			switch {
			case value != nil:
				e.val.Store(value)
			case pred != nil:
				pred.next.Store(e.next.Load())
			default:
				tab.set(i, e.next.Load())
			}
			break
		}
		return old, ok, true
	case f.hash == hashTreeBin:
		t := f.tb
		p := findTreeNode(t.root, h, key)
		if p == nil {
			return old, false, true
		}
		pv := *p.val.Load()
		if match != nil && !match(pv) {
			return old, false, true
		}
		old, ok = pv, true
		if value != nil {
			p.val.Store(value)
		} else if t.removeTreeNode(p) {
			tab.set(i, untreeify(t.first.Load()))
			m.untreeifies.Add(1)
		}
		return old, ok, true
	}
	return old, false, false
}

// Clear removes every mapping. Mappings added concurrently may survive.
func (m *Map[K, V]) Clear() {
	var delta int64
	tab := m.table.Load()
	for i := 0; tab != nil && i < len(tab.bins); {
		f := tab.at(i)
		switch {
		case f == nil:
			i++
		case f.hash == hashMoved:
			tab = m.helpTransfer(tab, f)
			i = 0
		default:
			if n, cleared := clearBin(tab, i, f); cleared {
				delta -= n
				i++
			}
		}
	}
	if delta != 0 {
		m.addCount(delta, -1)
	}
}

func clearBin[K, V any](tab *table[K, V], i int, f *node[K, V]) (int64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if tab.at(i) != f {
		return 0, false
	}
	var p *node[K, V]
	switch {
	case f.hash >= 0:
		p = f
	case f.hash == hashTreeBin:
		p = f.tb.first.Load()
	}
	var n int64
	for ; p != nil; p = p.next.Load() {
		n++
	}
	tab.set(i, nil)
	return n, true
}

// Count returns the number of mappings, clamped to the int range.
func (m *Map[K, V]) Count() int {
	n := m.sumCount()
	if n < 0 {
		return 0
	}
	return int(n)
}

// MappingCount returns the number of mappings as an int64. It is an
// estimate while writers are active.
func (m *Map[K, V]) MappingCount() int64 {
	n := m.sumCount()
	if n < 0 {
		return 0
	}
	return n
}

// IsEmpty reports whether the map holds no mappings.
func (m *Map[K, V]) IsEmpty() bool {
	return m.sumCount() <= 0
}

// CompareAndSwap replaces the value for key with newValue only if the
// current value equals old.
func CompareAndSwap[K any, V comparable](m *Map[K, V], key *K, old, newValue V) bool {
	_, ok := m.replaceNode(key, &newValue, func(cur V) bool { return cur == old })
	return ok
}

// CompareAndDelete removes key only if its current value equals old.
func CompareAndDelete[K any, V comparable](m *Map[K, V], key *K, old V) bool {
	_, ok := m.replaceNode(key, nil, func(cur V) bool { return cur == old })
	return ok
}

// ContainsValue reports whether any key maps to v. It scans the whole
// table.
func ContainsValue[K any, V comparable](m *Map[K, V], v V) bool {
	found := false
	m.Range(func(_ *K, cur V) bool {
		found = cur == v
		return !found
	})
	return found
}
