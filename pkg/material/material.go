package material

import (
	"fmt"
	"strings"

	"github.com/dioritemc/diorite-go/pkg/simpleenum"
)

// Kind tells blocks from items.
type Kind uint8

const (
	KindBlock Kind = iota
	KindItem
)

func (k Kind) String() string {
	switch k {
	case KindBlock:
		return "BLOCK"
	case KindItem:
		return "ITEM"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind accepts "block" or "item" in any case.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToUpper(s) {
	case "BLOCK":
		return KindBlock, true
	case "ITEM":
		return KindItem, true
	}
	return 0, false
}

// Family is one numeric id with all its sub-types. Families are simple
// enum constants; their ordinal is the registration index.
type Family struct {
	simpleenum.Base
	id       uint16
	mcid     string
	kind     Kind
	variants []*Material
	byMeta   map[uint16]*Material
	byType   map[string]*Material
}

// ID returns the numeric id.
func (f *Family) ID() uint16 { return f.id }

// MinecraftID returns the namespaced protocol id.
func (f *Family) MinecraftID() string { return namespace + f.mcid }

// Kind returns whether the family is a block or an item.
func (f *Family) Kind() Kind { return f.kind }

// Default returns the sub-type with the lowest meta.
func (f *Family) Default() *Material { return f.variants[0] }

// Variants returns every sub-type ordered by meta.
func (f *Family) Variants() []*Material {
	out := make([]*Material, len(f.variants))
	copy(out, f.variants)
	return out
}

// Len returns the number of sub-types.
func (f *Family) Len() int { return len(f.variants) }

// Variant returns the sub-type with the given meta, or nil.
func (f *Family) Variant(meta int) *Material {
	if meta < 0 || meta > 0xffff {
		return nil
	}
	return f.byMeta[uint16(meta)]
}

// VariantByName returns the sub-type with the given type name, or nil.
func (f *Family) VariantByName(name string) *Material {
	return f.byType[strings.ToUpper(name)]
}

const (
	hasSlab uint8 = 1 << iota
	hasDoor
	hasGate
	hasAxis
)

// Material is one sub-type of one numeric id. Values are created during
// package initialisation and compared by pointer.
type Material struct {
	family   *Family
	meta     uint16
	typeName string

	maxStack        int
	hardness        float32
	blastResistance float32
	durable         Durable
	wood            *WoodType
	color           *DyeColor

	flags uint8
	slab  SlabType
	door  DoorState
	gate  FenceGateState
	axis  LogAxis

	itemForm *Material
}

// Family returns the family the sub-type belongs to.
func (m *Material) Family() *Family { return m.family }

// ID returns the numeric id.
func (m *Material) ID() uint16 { return m.family.id }

// Meta returns the sub-type discriminator.
func (m *Material) Meta() uint16 { return m.meta }

// Name returns the family enum name, for example STONE.
func (m *Material) Name() string { return m.family.Name() }

// TypeName returns the sub-type name, for example GRANITE.
func (m *Material) TypeName() string { return m.typeName }

// MinecraftID returns the namespaced protocol id.
func (m *Material) MinecraftID() string { return m.family.MinecraftID() }

// Kind returns the family kind.
func (m *Material) Kind() Kind { return m.family.kind }

// IsBlock reports whether the material is a placed block.
func (m *Material) IsBlock() bool { return m.family.kind == KindBlock }

// IsItem reports whether the material can exist in an inventory under its
// own id.
func (m *Material) IsItem() bool { return m.family.kind == KindItem || m.itemForm == m }

// MaxStack returns the inventory stack limit.
func (m *Material) MaxStack() int { return m.maxStack }

// Hardness returns the mining hardness. Unbreakable blocks return -1.
func (m *Material) Hardness() float32 { return m.hardness }

// BlastResistance returns the explosion resistance.
func (m *Material) BlastResistance() float32 { return m.blastResistance }

// Durability returns the durability record, or nil for items that do not
// wear out.
func (m *Material) Durability() Durable { return m.durable }

// Armor returns the armor record of armor items.
func (m *Material) Armor() (ArmorData, bool) {
	a, ok := m.durable.(ArmorData)
	return a, ok
}

// Tool returns the tool record of tiered tools.
func (m *Material) Tool() (ToolData, bool) {
	t, ok := m.durable.(ToolData)
	return t, ok
}

// Wood returns the wood type, or nil.
func (m *Material) Wood() *WoodType { return m.wood }

// Color returns the dye colour, or nil.
func (m *Material) Color() *DyeColor { return m.color }

// Slab returns the slab half of slab blocks.
func (m *Material) Slab() (SlabType, bool) { return m.slab, m.flags&hasSlab != 0 }

// Door returns the door state of door blocks.
func (m *Material) Door() (DoorState, bool) { return m.door, m.flags&hasDoor != 0 }

// FenceGate returns the gate state of fence gate blocks.
func (m *Material) FenceGate() (FenceGateState, bool) { return m.gate, m.flags&hasGate != 0 }

// Axis returns the orientation of logs.
func (m *Material) Axis() (LogAxis, bool) { return m.axis, m.flags&hasAxis != 0 }

// Variants returns every sub-type of the same id.
func (m *Material) Variants() []*Material { return m.family.Variants() }

// Variant returns the sibling sub-type with the given meta, or nil.
func (m *Material) Variant(meta int) *Material { return m.family.Variant(meta) }

// VariantByName returns the sibling sub-type with the given type name, or nil.
func (m *Material) VariantByName(name string) *Material { return m.family.VariantByName(name) }

// Default returns the default sub-type of the same id.
func (m *Material) Default() *Material { return m.family.Default() }

// ItemForm returns the item that places this block. Items return
// themselves; blocks that cannot be held return nil.
func (m *Material) ItemForm() *Material {
	if m.family.kind == KindItem {
		return m
	}
	return m.itemForm
}

// Key returns "id:meta".
func (m *Material) Key() string { return fmt.Sprintf("%d:%d", m.family.id, m.meta) }

// String returns NAME for single-variant ids and NAME:TYPE otherwise.
func (m *Material) String() string {
	if len(m.family.variants) == 1 {
		return m.family.Name()
	}
	return m.family.Name() + ":" + m.typeName
}
