package domain

import (
	"fmt"
	"strings"

	"github.com/dioritemc/diorite-go/pkg/material"
)

// MaterialRecord is the serialisable view of one material sub-type.
//
// Block-only fields (Hardness, BlastResistance) are nil for items.
type MaterialRecord struct {
	Key             string      `json:"key" yaml:"key"`
	ID              uint16      `json:"id" yaml:"id"`
	Meta            uint16      `json:"meta" yaml:"meta"`
	Name            string      `json:"name" yaml:"name"`
	Type            string      `json:"type" yaml:"type"`
	MinecraftID     string      `json:"minecraft_id" yaml:"minecraft_id"`
	Kind            string      `json:"kind" yaml:"kind"`
	MaxStack        int         `json:"max_stack" yaml:"max_stack"`
	Hardness        *float32    `json:"hardness,omitempty" yaml:"hardness,omitempty"`
	BlastResistance *float32    `json:"blast_resistance,omitempty" yaml:"blast_resistance,omitempty"`
	Durability      int         `json:"durability,omitempty" yaml:"durability,omitempty"`
	Armor           *ArmorStats `json:"armor,omitempty" yaml:"armor,omitempty"`
	Tool            *ToolStats  `json:"tool,omitempty" yaml:"tool,omitempty"`
	Wood            string      `json:"wood,omitempty" yaml:"wood,omitempty"`
	Color           string      `json:"color,omitempty" yaml:"color,omitempty"`
	State           string      `json:"state,omitempty" yaml:"state,omitempty"`
	ItemForm        string      `json:"item_form,omitempty" yaml:"item_form,omitempty"`
}

// ArmorStats mirrors material.ArmorData.
type ArmorStats struct {
	Material   string `json:"material" yaml:"material"`
	Slot       string `json:"slot" yaml:"slot"`
	Protection int    `json:"protection" yaml:"protection"`
}

// ToolStats mirrors material.ToolData.
type ToolStats struct {
	Material     string `json:"material" yaml:"material"`
	Type         string `json:"type" yaml:"type"`
	AttackDamage int    `json:"attack_damage" yaml:"attack_damage"`
	HarvestLevel int    `json:"harvest_level" yaml:"harvest_level"`
}

// NewMaterialRecord flattens m. It returns the zero record for nil.
func NewMaterialRecord(m *material.Material) MaterialRecord {
	if m == nil {
		return MaterialRecord{}
	}
	r := MaterialRecord{
		Key:         m.Key(),
		ID:          m.ID(),
		Meta:        m.Meta(),
		Name:        m.Name(),
		Type:        m.TypeName(),
		MinecraftID: m.MinecraftID(),
		Kind:        m.Kind().String(),
		MaxStack:    m.MaxStack(),
	}
	if m.IsBlock() {
		h, b := m.Hardness(), m.BlastResistance()
		r.Hardness, r.BlastResistance = &h, &b
	}
	if d := m.Durability(); d != nil {
		r.Durability = d.MaxDurability()
	}
	if a, ok := m.Armor(); ok {
		r.Armor = &ArmorStats{Material: a.Material.Name(), Slot: a.Type.Name(), Protection: a.Protection}
	}
	if t, ok := m.Tool(); ok {
		r.Tool = &ToolStats{
			Material:     t.Material.Name(),
			Type:         t.Type.Name(),
			AttackDamage: t.AttackDamage(),
			HarvestLevel: t.Material.HarvestLevel(),
		}
	}
	if w := m.Wood(); w != nil {
		r.Wood = w.Name()
	}
	if c := m.Color(); c != nil {
		r.Color = c.Name()
	}
	r.State = stateOf(m)
	if f := m.ItemForm(); f != nil && f != m {
		r.ItemForm = f.String()
	}
	return r
}

func stateOf(m *material.Material) string {
	if s, ok := m.Slab(); ok {
		return s.String()
	}
	if d, ok := m.Door(); ok {
		return d.String()
	}
	if g, ok := m.FenceGate(); ok {
		return g.String()
	}
	if a, ok := m.Axis(); ok {
		return a.String()
	}
	return ""
}

// Query selects a single material.
type Query struct {
	// Ref is any form accepted by material.Parse.
	Ref string
	// Item resolves the item form of a block reference.
	Item bool
}

// Validate checks the query shape.
func (q Query) Validate() error {
	if strings.TrimSpace(q.Ref) == "" {
		return ErrMissingArgument.WithDetails("ref")
	}
	return nil
}

// Filter narrows a listing. Zero fields match everything.
type Filter struct {
	Kind     string // "block" or "item"
	Prefix   string // case-insensitive name prefix
	Wood     string
	Color    string
	Durable  bool // only materials with durability
	Variants bool // list every sub-type instead of defaults only
	Offset   int
	Limit    int // 0 means no limit
}

// Validate checks field ranges and enum names.
func (f Filter) Validate() error {
	if f.Kind != "" {
		if _, ok := material.ParseKind(f.Kind); !ok {
			return ErrInvalidArgument.WithDetails(fmt.Sprintf("kind %q", f.Kind))
		}
	}
	if f.Wood != "" && material.WoodByName(f.Wood) == nil {
		return ErrInvalidArgument.WithDetails(fmt.Sprintf("wood %q", f.Wood))
	}
	if f.Color != "" && material.ColorByName(f.Color) == nil {
		return ErrInvalidArgument.WithDetails(fmt.Sprintf("color %q", f.Color))
	}
	if f.Offset < 0 || f.Limit < 0 {
		return ErrInvalidArgument.WithDetails("offset and limit must not be negative")
	}
	return nil
}

// Match reports whether m passes the filter. Offset and Limit are applied
// by the caller.
func (f Filter) Match(m *material.Material) bool {
	if f.Kind != "" {
		if k, _ := material.ParseKind(f.Kind); m.Kind() != k {
			return false
		}
	}
	if f.Prefix != "" && !strings.HasPrefix(m.Name(), strings.ToUpper(f.Prefix)) {
		return false
	}
	if f.Wood != "" && m.Wood() != material.WoodByName(f.Wood) {
		return false
	}
	if f.Color != "" && m.Color() != material.ColorByName(f.Color) {
		return false
	}
	if f.Durable && m.Durability() == nil {
		return false
	}
	return true
}

// Page is one window of a listing.
type Page struct {
	Total int              `json:"total" yaml:"total"`
	Items []MaterialRecord `json:"items" yaml:"items"`
}

// PaletteRecord is the serialisable view of one palette slot.
type PaletteRecord struct {
	Index int    `json:"index" yaml:"index"`
	Key   string `json:"key" yaml:"key"`
	Name  string `json:"name" yaml:"name"`
	Hits  int64  `json:"hits" yaml:"hits"`
}
