package identmap

import (
	"fmt"
	"strings"
)

// Stats is a point-in-time view of a map's internal layout, intended for
// metrics and tests. It is gathered without locks and may be torn under
// concurrent writes.
type Stats struct {
	Size           int64 // MappingCount at the time of the call
	TableLength    int   // bins in the current table, 0 before first insert
	UsedBins       int   // non-empty bins
	TreeBins       int   // bins holding a red-black tree
	ForwardedBins  int   // bins already moved by an in-progress resize
	MaxChainLength int   // longest chain or tree bin
	CounterCells   int   // counter stripes allocated
	Resizes        int64 // completed table doublings
	Treeifies      int64 // chains converted to trees
	Untreeifies    int64 // trees converted back to chains on removal
}

// Stats returns layout statistics for the current table.
func (m *Map[K, V]) Stats() Stats {
	s := Stats{
		Size:        m.MappingCount(),
		Resizes:     m.resizes.Load(),
		Treeifies:   m.treeifies.Load(),
		Untreeifies: m.untreeifies.Load(),
	}
	if ct := m.counterCells.Load(); ct != nil {
		s.CounterCells = len(ct.cells)
	}
	tab := m.table.Load()
	if tab == nil {
		return s
	}
	s.TableLength = len(tab.bins)
	for i := range tab.bins {
		f := tab.at(i)
		if f == nil {
			continue
		}
		var first *node[K, V]
		switch {
		case f.hash == hashMoved:
			s.ForwardedBins++
			continue
		case f.hash == hashTreeBin:
			s.TreeBins++
			first = f.tb.first.Load()
		case f.hash >= 0:
			first = f
		default:
			continue
		}
		s.UsedBins++
		n := 0
		for e := first; e != nil; e = e.next.Load() {
			n++
		}
		if n > s.MaxChainLength {
			s.MaxChainLength = n
		}
	}
	return s
}

// String formats the map as map[0xc000010000:v ...] in table order.
func (m *Map[K, V]) String() string {
	var b strings.Builder
	b.WriteString("map[")
	first := true
	m.Range(func(key *K, value V) bool {
		if !first {
			b.WriteByte(' ')
		}
		first = false
		fmt.Fprintf(&b, "%p:%v", key, value)
		return true
	})
	b.WriteByte(']')
	return b.String()
}
