package material

import (
	"fmt"

	"github.com/dioritemc/diorite-go/pkg/simpleenum"
)

// Durable is implemented by every record that describes a damageable item.
type Durable interface {
	MaxDurability() int
}

// ArmorMaterial is the material an armor piece is made of.
type ArmorMaterial struct {
	simpleenum.Base
	multiplier     int
	enchantability int
}

// DurabilityMultiplier scales ArmorType.BaseDurability.
func (a *ArmorMaterial) DurabilityMultiplier() int { return a.multiplier }

// Enchantability returns the enchanting table weight.
func (a *ArmorMaterial) Enchantability() int { return a.enchantability }

// ArmorType is the equipment slot of an armor piece.
type ArmorType struct {
	simpleenum.Base
	baseDurability int
}

// BaseDurability is multiplied by ArmorMaterial.DurabilityMultiplier.
func (t *ArmorType) BaseDurability() int { return t.baseDurability }

var (
	armorMaterials = simpleenum.New[*ArmorMaterial]("armor material")
	armorTypes     = simpleenum.New[*ArmorType]("armor type")
)

func newArmorMaterial(name string, multiplier, enchantability int) *ArmorMaterial {
	return armorMaterials.MustRegister(&ArmorMaterial{
		Base:           simpleenum.NewBase(name, armorMaterials.Next()),
		multiplier:     multiplier,
		enchantability: enchantability,
	})
}

func newArmorType(name string, base int) *ArmorType {
	return armorTypes.MustRegister(&ArmorType{
		Base:           simpleenum.NewBase(name, armorTypes.Next()),
		baseDurability: base,
	})
}

// Armor materials.
var (
	ArmorLeather = newArmorMaterial("LEATHER", 5, 15)
	ArmorChain   = newArmorMaterial("CHAIN", 15, 12)
	ArmorIron    = newArmorMaterial("IRON", 15, 9)
	ArmorGold    = newArmorMaterial("GOLD", 7, 25)
	ArmorDiamond = newArmorMaterial("DIAMOND", 33, 10)
)

// Armor types.
var (
	Helmet     = newArmorType("HELMET", 11)
	Chestplate = newArmorType("CHESTPLATE", 16)
	Leggings   = newArmorType("LEGGINGS", 15)
	Boots      = newArmorType("BOOTS", 13)
)

// ArmorMaterials returns all armor materials in ordinal order.
func ArmorMaterials() []*ArmorMaterial { return armorMaterials.Values() }

// ArmorTypes returns all armor types in slot order.
func ArmorTypes() []*ArmorType { return armorTypes.Values() }

// ArmorData describes one armor item.
type ArmorData struct {
	Material   *ArmorMaterial
	Type       *ArmorType
	Protection int
	Durability int
}

// NewArmorData validates the references and fills in the default
// durability when durability is 0.
func NewArmorData(m *ArmorMaterial, t *ArmorType, protection, durability int) (ArmorData, error) {
	if m == nil || t == nil {
		return ArmorData{}, fmt.Errorf("armor data: %w", ErrMissingReference)
	}
	if durability < 0 {
		return ArmorData{}, fmt.Errorf("armor data %s %s: %w", m.Name(), t.Name(), ErrInvalidDurability)
	}
	if durability == 0 {
		durability = t.baseDurability * m.multiplier
	}
	return ArmorData{Material: m, Type: t, Protection: protection, Durability: durability}, nil
}

// MaxDurability implements Durable.
func (a ArmorData) MaxDurability() int { return a.Durability }

func (a ArmorData) String() string {
	return fmt.Sprintf("ArmorData{%s %s protection=%d durability=%d}",
		enumName(a.Material), enumName(a.Type), a.Protection, a.Durability)
}

func mustArmor(m *ArmorMaterial, t *ArmorType, protection int) ArmorData {
	a, err := NewArmorData(m, t, protection, 0)
	if err != nil {
		panic(err)
	}
	return a
}

func enumName[E any, P interface {
	*E
	simpleenum.Enum
}](p P) string {
	if p == nil {
		return "<nil>"
	}
	return p.Name()
}
