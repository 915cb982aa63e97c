package material

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/dioritemc/diorite-go/pkg/simpleenum"
)

type variant struct {
	meta uint16
	name string
	set  func(*Material)
}

type familySpec struct {
	stack    int
	durable  Durable
	wood     *WoodType
	link     *itemLink
	noItem   bool
	variants []variant
}

// itemLink ties a block to the item that places it. The item meta is
// metaOf(blockMeta) when set, meta | blockMeta&mask otherwise.
type itemLink struct {
	block  *Family
	id     uint16
	meta   uint16
	mask   uint16
	metaOf func(uint16) uint16
}

type option func(*familySpec)

func stack(n int) option { return func(s *familySpec) { s.stack = n } }

func wood(w *WoodType) option { return func(s *familySpec) { s.wood = w } }

func noItem() option { return func(s *familySpec) { s.noItem = true } }

// places links every sub-type to a fixed item sub-type.
func places(id, meta uint16) option {
	return func(s *familySpec) { s.link = &itemLink{id: id, meta: meta} }
}

// placesMasked links each sub-type to the item that keeps the masked
// variant bits of the block meta.
func placesMasked(id, mask uint16) option {
	return func(s *familySpec) { s.link = &itemLink{id: id, mask: mask} }
}

// placesVia links each sub-type to the item sub-type metaOf picks, for
// blocks whose placement state is not a bit mask of the item meta.
func placesVia(id uint16, metaOf func(uint16) uint16) option {
	return func(s *familySpec) { s.link = &itemLink{id: id, metaOf: metaOf} }
}

func armor(m *ArmorMaterial, t *ArmorType, protection int) option {
	return func(s *familySpec) {
		s.durable = mustArmor(m, t, protection)
		s.stack = 1
	}
}

func tool(m *ToolMaterial, t *ToolType) option {
	return func(s *familySpec) {
		s.durable = mustTool(m, t)
		s.stack = 1
	}
}

func basicTool(durability int) option {
	return func(s *familySpec) {
		s.durable = mustBasicTool(durability)
		s.stack = 1
	}
}

// types names sub-types 0..n-1 in order.
func types(names ...string) option {
	return func(s *familySpec) {
		for i, n := range names {
			s.variants = append(s.variants, variant{meta: uint16(i), name: n})
		}
	}
}

// typeAt adds one sub-type at an explicit meta.
func typeAt(meta uint16, name string) option {
	return func(s *familySpec) {
		s.variants = append(s.variants, variant{meta: meta, name: name})
	}
}

// woods adds one sub-type per wood, numbered from 0 in the given order.
func woods(ws ...*WoodType) option {
	return func(s *familySpec) {
		for i, w := range ws {
			s.variants = append(s.variants, variant{
				meta: uint16(i),
				name: w.Name(),
				set:  func(m *Material) { m.wood = w },
			})
		}
	}
}

func logs(ws ...*WoodType) option {
	return func(s *familySpec) {
		for _, a := range LogAxes() {
			for i, w := range ws {
				name := w.Name()
				if a != AxisY {
					name += "_" + a.String()
				}
				s.variants = append(s.variants, variant{
					meta: uint16(i) | uint16(a),
					name: name,
					set: func(m *Material) {
						m.wood = w
						m.axis = a
						m.flags |= hasAxis
					},
				})
			}
		}
	}
}

func leaves(ws ...*WoodType) option {
	states := []struct {
		suffix string
		flags  uint16
	}{
		{"", 0},
		{"_NO_DECAY", leavesNoDecay},
		{"_CHECK_DECAY", leavesCheckDecay},
		{"_NO_DECAY_CHECK_DECAY", leavesNoDecay | leavesCheckDecay},
	}
	return func(s *familySpec) {
		for _, st := range states {
			for i, w := range ws {
				s.variants = append(s.variants, variant{
					meta: uint16(i) | st.flags,
					name: w.Name() + st.suffix,
					set:  func(m *Material) { m.wood = w },
				})
			}
		}
	}
}

func colored() option {
	return func(s *familySpec) {
		for _, c := range DyeColors() {
			s.variants = append(s.variants, variant{
				meta: uint16(c.WoolMeta()),
				name: c.Name(),
				set:  func(m *Material) { m.color = c },
			})
		}
	}
}

func dyes() option {
	return func(s *familySpec) {
		for _, c := range DyeColors() {
			s.variants = append(s.variants, variant{
				meta: uint16(c.DyeMeta()),
				name: c.Name(),
				set:  func(m *Material) { m.color = c },
			})
		}
	}
}

func setSlab(t SlabType) func(*Material) {
	return func(m *Material) {
		m.slab = t
		m.flags |= hasSlab
	}
}

// slabs adds bottom sub-types 0..n-1 and upper sub-types 8..8+n-1.
func slabs(names ...string) option {
	return func(s *familySpec) {
		for _, t := range []SlabType{SlabBottom, SlabUpper} {
			for i, n := range names {
				if t == SlabUpper {
					n += "_UPPER"
				}
				s.variants = append(s.variants, variant{
					meta: uint16(SlabMeta(uint8(i), t)),
					name: n,
					set:  setSlab(t),
				})
			}
		}
	}
}

// doubleSlabs adds full sub-types 0..n-1.
func doubleSlabs(names ...string) option {
	return func(s *familySpec) {
		for i, n := range names {
			s.variants = append(s.variants, variant{meta: uint16(i), name: n, set: setSlab(SlabFull)})
		}
	}
}

func slabAt(meta uint16, name string, t SlabType) option {
	return func(s *familySpec) {
		s.variants = append(s.variants, variant{meta: meta, name: name, set: setSlab(t)})
	}
}

func woodSlabs(t ...SlabType) option {
	return func(s *familySpec) {
		for _, st := range t {
			for _, w := range WoodTypes() {
				name := w.Name()
				if st == SlabUpper {
					name += "_UPPER"
				}
				s.variants = append(s.variants, variant{
					meta: uint16(SlabMeta(w.ID(), st)),
					name: name,
					set: func(m *Material) {
						m.wood = w
						m.slab = st
						m.flags |= hasSlab
					},
				})
			}
		}
	}
}

// doors adds the eight bottom-half and four top-half states.
func doors() option {
	return func(s *familySpec) {
		for meta := uint8(0); meta < 12; meta++ {
			st := ParseDoorMeta(meta)
			s.variants = append(s.variants, variant{
				meta: uint16(meta),
				name: st.String(),
				set: func(m *Material) {
					m.door = st
					m.flags |= hasDoor
				},
			})
		}
	}
}

func gates() option {
	return func(s *familySpec) {
		for meta := uint8(0); meta < 8; meta++ {
			st := ParseFenceGateMeta(meta)
			s.variants = append(s.variants, variant{
				meta: uint16(meta),
				name: st.String(),
				set: func(m *Material) {
					m.gate = st
					m.flags |= hasGate
				},
			})
		}
	}
}

func block(id uint16, name, mcid string, hardness, blast float32, opts ...option) *Family {
	return define(KindBlock, id, name, mcid, hardness, blast, opts)
}

func item(id uint16, name, mcid string, opts ...option) *Family {
	return define(KindItem, id, name, mcid, 0, 0, opts)
}

func define(kind Kind, id uint16, name, mcid string, hardness, blast float32, opts []option) *Family {
	spec := familySpec{stack: 64}
	for _, o := range opts {
		o(&spec)
	}
	if len(spec.variants) == 0 {
		spec.variants = []variant{{meta: 0, name: name}}
	}

	f := &Family{
		Base:   simpleenum.NewBase(name, families.Next()),
		id:     id,
		mcid:   mcid,
		kind:   kind,
		byMeta: make(map[uint16]*Material, len(spec.variants)),
		byType: make(map[string]*Material, len(spec.variants)),
	}
	for _, v := range spec.variants {
		m := &Material{
			family:          f,
			meta:            v.meta,
			typeName:        v.name,
			maxStack:        spec.stack,
			hardness:        hardness,
			blastResistance: blast,
			durable:         spec.durable,
			wood:            spec.wood,
		}
		if v.set != nil {
			v.set(m)
		}
		if _, dup := f.byMeta[v.meta]; dup {
			panic(fmt.Sprintf("material %s: duplicate meta %d", name, v.meta))
		}
		key := strings.ToUpper(v.name)
		if _, dup := f.byType[key]; dup {
			panic(fmt.Sprintf("material %s: duplicate type %s", name, v.name))
		}
		f.byMeta[v.meta] = m
		f.byType[key] = m
		f.variants = append(f.variants, m)
	}
	slices.SortFunc(f.variants, func(a, b *Material) int { return cmp.Compare(a.meta, b.meta) })

	if _, dup := byID[id]; dup {
		panic(fmt.Sprintf("material %s: duplicate id %d", name, id))
	}
	mc := mcIndex(kind)
	if _, dup := mc[mcid]; dup {
		panic(fmt.Sprintf("material %s: duplicate minecraft id %s", name, mcid))
	}
	families.MustRegister(f)
	byID[id] = f
	mc[mcid] = f
	variants += len(f.variants)

	switch {
	case kind != KindBlock || spec.noItem:
	case spec.link != nil:
		link := *spec.link
		link.block = f
		pending = append(pending, link)
	default:
		for _, m := range f.variants {
			m.itemForm = m
		}
	}
	return f
}

func mcIndex(k Kind) map[string]*Family {
	if k == KindItem {
		return itemMC
	}
	return blockMC
}

// resolveItemForms runs once every id is registered.
func resolveItemForms() {
	for _, l := range pending {
		for _, m := range l.block.variants {
			meta := l.meta | m.meta&l.mask
			if l.metaOf != nil {
				meta = l.metaOf(m.meta)
			}
			target := ByIDMeta(int(l.id), int(meta))
			if target == nil {
				panic(fmt.Sprintf("material %s: item form %d:%d not registered", m, l.id, meta))
			}
			m.itemForm = target
		}
	}
	pending = nil
}
