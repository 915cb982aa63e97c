// Package palette assigns dense runtime indexes to materials.
//
// A Palette is keyed by material identity. The first lookup of a material
// gives it the next free index; later lookups return the same index and
// bump a hit counter. Indexes are never reused, so an exported palette stays
// valid for the lifetime of the process.
//
// Usage:
//
//	p := palette.New(palette.WithPreload(material.ByID(0)))
//	idx := p.Hit(material.MustParse("stone:diorite")) // 1
//	m := p.At(idx)
package palette
