package storage

import "sort"

// Change pairs the stored and current form of one id:meta.
type Change struct {
	Old Entry `json:"old"`
	New Entry `json:"new"`
}

// Drift lists differences between two registry generations.
type Drift struct {
	Added   []Entry  `json:"added,omitempty"`
	Removed []Entry  `json:"removed,omitempty"`
	Changed []Change `json:"changed,omitempty"`
}

// Empty reports whether the generations are identical.
func (d Drift) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0 && len(d.Changed) == 0
}

// Breaking reports whether a stored id:meta was removed or renamed.
// Additions are compatible.
func (d Drift) Breaking() bool {
	return len(d.Removed) > 0 || len(d.Changed) > 0
}

// Diff compares old with cur by id:meta. Results are in id:meta order.
func Diff(old, cur []Entry) Drift {
	type key struct{ id, meta uint16 }
	prev := make(map[key]Entry, len(old))
	for _, e := range old {
		prev[key{e.ID, e.Meta}] = e
	}

	var d Drift
	for _, e := range cur {
		k := key{e.ID, e.Meta}
		p, ok := prev[k]
		if !ok {
			d.Added = append(d.Added, e)
			continue
		}
		delete(prev, k)
		if p != e {
			d.Changed = append(d.Changed, Change{Old: p, New: e})
		}
	}
	for _, e := range prev {
		d.Removed = append(d.Removed, e)
	}

	sortEntries(d.Added)
	sortEntries(d.Removed)
	sort.Slice(d.Changed, func(i, j int) bool { return entryLess(d.Changed[i].New, d.Changed[j].New) })
	return d
}
