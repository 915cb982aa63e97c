package material

import (
	"fmt"

	"github.com/dioritemc/diorite-go/pkg/simpleenum"
)

// ToolMaterial is the tier of a tool.
type ToolMaterial struct {
	simpleenum.Base
	uses           int
	harvestLevel   int
	efficiency     float32
	damage         int
	enchantability int
}

// Uses returns the durability of tools of this tier.
func (m *ToolMaterial) Uses() int { return m.uses }

// HarvestLevel returns the highest block tier this material can mine.
func (m *ToolMaterial) HarvestLevel() int { return m.harvestLevel }

// Efficiency returns the mining speed multiplier.
func (m *ToolMaterial) Efficiency() float32 { return m.efficiency }

// Damage returns the attack damage added by the material.
func (m *ToolMaterial) Damage() int { return m.damage }

// Enchantability returns the enchanting table weight.
func (m *ToolMaterial) Enchantability() int { return m.enchantability }

// ToolType is the shape of a tool.
type ToolType struct {
	simpleenum.Base
	damageBonus int
}

// DamageBonus returns the attack damage added by the tool shape.
func (t *ToolType) DamageBonus() int { return t.damageBonus }

var (
	toolMaterials = simpleenum.New[*ToolMaterial]("tool material")
	toolTypes     = simpleenum.New[*ToolType]("tool type")
)

func newToolMaterial(name string, uses, harvest int, efficiency float32, damage, enchantability int) *ToolMaterial {
	return toolMaterials.MustRegister(&ToolMaterial{
		Base:           simpleenum.NewBase(name, toolMaterials.Next()),
		uses:           uses,
		harvestLevel:   harvest,
		efficiency:     efficiency,
		damage:         damage,
		enchantability: enchantability,
	})
}

func newToolType(name string, bonus int) *ToolType {
	return toolTypes.MustRegister(&ToolType{
		Base:        simpleenum.NewBase(name, toolTypes.Next()),
		damageBonus: bonus,
	})
}

// Tool materials.
var (
	ToolWood    = newToolMaterial("WOOD", 59, 0, 2, 0, 15)
	ToolStone   = newToolMaterial("STONE", 131, 1, 4, 1, 5)
	ToolIron    = newToolMaterial("IRON", 250, 2, 6, 2, 14)
	ToolGold    = newToolMaterial("GOLD", 32, 0, 12, 0, 22)
	ToolDiamond = newToolMaterial("DIAMOND", 1561, 3, 8, 3, 10)
)

// Tool types. Hoes deal no extra damage.
var (
	Sword   = newToolType("SWORD", 4)
	Shovel  = newToolType("SHOVEL", 1)
	Pickaxe = newToolType("PICKAXE", 2)
	Axe     = newToolType("AXE", 3)
	Hoe     = newToolType("HOE", 0)
)

// ToolMaterials returns all tool materials in ordinal order.
func ToolMaterials() []*ToolMaterial { return toolMaterials.Values() }

// ToolTypes returns all tool types in ordinal order.
func ToolTypes() []*ToolType { return toolTypes.Values() }

// BasicToolData describes a damageable item that has no tier.
type BasicToolData struct {
	Durability int
}

// NewBasicToolData rejects a non-positive durability.
func NewBasicToolData(durability int) (BasicToolData, error) {
	if durability <= 0 {
		return BasicToolData{}, fmt.Errorf("basic tool data %d: %w", durability, ErrInvalidDurability)
	}
	return BasicToolData{Durability: durability}, nil
}

// MaxDurability implements Durable.
func (b BasicToolData) MaxDurability() int { return b.Durability }

func (b BasicToolData) String() string {
	return fmt.Sprintf("BasicToolData{durability=%d}", b.Durability)
}

// ToolData describes a tiered tool.
type ToolData struct {
	BasicToolData
	Material *ToolMaterial
	Type     *ToolType
}

// NewToolData validates the references. The durability is the material's
// uses.
func NewToolData(m *ToolMaterial, t *ToolType) (ToolData, error) {
	if m == nil || t == nil {
		return ToolData{}, fmt.Errorf("tool data: %w", ErrMissingReference)
	}
	return ToolData{BasicToolData: BasicToolData{Durability: m.uses}, Material: m, Type: t}, nil
}

// AttackDamage returns the bonus damage of the tool over a bare hand.
// Hoes add nothing regardless of material.
func (d ToolData) AttackDamage() int {
	if d.Material == nil || d.Type == nil || d.Type.damageBonus == 0 {
		return 0
	}
	return d.Type.damageBonus + d.Material.damage
}

func (d ToolData) String() string {
	return fmt.Sprintf("ToolData{%s %s durability=%d}",
		enumName(d.Material), enumName(d.Type), d.Durability)
}

func mustBasicTool(durability int) BasicToolData {
	b, err := NewBasicToolData(durability)
	if err != nil {
		panic(err)
	}
	return b
}

func mustTool(m *ToolMaterial, t *ToolType) ToolData {
	d, err := NewToolData(m, t)
	if err != nil {
		panic(err)
	}
	return d
}
