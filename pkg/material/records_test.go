package material

import (
	"errors"
	"testing"
)

func TestArmorDurability(t *testing.T) {
	tests := []struct {
		name       string
		protection int
		durability int
	}{
		{"LEATHER_HELMET", 1, 55},
		{"LEATHER_BOOTS", 1, 65},
		{"CHAINMAIL_CHESTPLATE", 5, 240},
		{"IRON_LEGGINGS", 5, 225},
		{"GOLDEN_HELMET", 2, 77},
		{"DIAMOND_CHESTPLATE", 8, 528},
		{"DIAMOND_BOOTS", 3, 429},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ByName(tt.name)
			if m == nil {
				t.Fatalf("ByName(%s) = nil", tt.name)
			}
			a, ok := m.Armor()
			if !ok {
				t.Fatalf("%s.Armor() ok = false", tt.name)
			}
			if a.Protection != tt.protection || a.MaxDurability() != tt.durability {
				t.Errorf("%s = %v, want protection %d durability %d", tt.name, a, tt.protection, tt.durability)
			}
			if m.MaxStack() != 1 {
				t.Errorf("%s.MaxStack() = %d, want 1", tt.name, m.MaxStack())
			}
			if _, ok := m.Tool(); ok {
				t.Errorf("%s.Tool() ok = true", tt.name)
			}
		})
	}
}

func TestNewArmorData(t *testing.T) {
	a, err := NewArmorData(ArmorIron, Helmet, 2, 0)
	if err != nil {
		t.Fatalf("NewArmorData() error = %v", err)
	}
	if a.Durability != 165 {
		t.Errorf("default durability = %d, want 165", a.Durability)
	}
	b, _ := NewArmorData(ArmorIron, Helmet, 2, 165)
	if a != b {
		t.Errorf("%v != %v", a, b)
	}
	set := map[ArmorData]bool{a: true}
	if !set[b] {
		t.Error("equal ArmorData values hash differently")
	}

	custom, _ := NewArmorData(ArmorIron, Helmet, 2, 500)
	if custom.Durability != 500 || custom == a {
		t.Errorf("custom durability = %v", custom)
	}

	tests := []struct {
		name string
		m    *ArmorMaterial
		typ  *ArmorType
		dur  int
		want error
	}{
		{"nil material", nil, Helmet, 0, ErrMissingReference},
		{"nil type", ArmorGold, nil, 0, ErrMissingReference},
		{"negative durability", ArmorGold, Boots, -1, ErrInvalidDurability},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewArmorData(tt.m, tt.typ, 1, tt.dur); !errors.Is(err, tt.want) {
				t.Errorf("NewArmorData() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestToolData(t *testing.T) {
	tests := []struct {
		name       string
		durability int
		damage     int
	}{
		{"WOODEN_SWORD", 59, 4},
		{"STONE_PICKAXE", 131, 3},
		{"IRON_AXE", 250, 5},
		{"GOLDEN_SHOVEL", 32, 1},
		{"DIAMOND_SWORD", 1561, 7},
		{"DIAMOND_HOE", 1561, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := ByName(tt.name).Tool()
			if !ok {
				t.Fatalf("%s.Tool() ok = false", tt.name)
			}
			if d.MaxDurability() != tt.durability || d.AttackDamage() != tt.damage {
				t.Errorf("%s = %v damage %d, want durability %d damage %d",
					tt.name, d, d.AttackDamage(), tt.durability, tt.damage)
			}
		})
	}

	if _, err := NewToolData(nil, Sword); !errors.Is(err, ErrMissingReference) {
		t.Errorf("NewToolData(nil, Sword) error = %v", err)
	}
	if _, err := NewToolData(ToolIron, nil); !errors.Is(err, ErrMissingReference) {
		t.Errorf("NewToolData(ToolIron, nil) error = %v", err)
	}
	if got := (ToolData{}).String(); got != "ToolData{<nil> <nil> durability=0}" {
		t.Errorf("zero ToolData String() = %q", got)
	}
}

func TestBasicToolData(t *testing.T) {
	tests := []struct {
		name       string
		durability int
	}{
		{"SHEARS", 238},
		{"FLINT_AND_STEEL", 64},
		{"FISHING_ROD", 64},
		{"BOW", 384},
		{"CARROT_ON_A_STICK", 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := ByName(tt.name)
			d := m.Durability()
			if d == nil || d.MaxDurability() != tt.durability {
				t.Fatalf("%s.Durability() = %v, want %d", tt.name, d, tt.durability)
			}
			if _, ok := d.(BasicToolData); !ok {
				t.Errorf("%s.Durability() is %T, want BasicToolData", tt.name, d)
			}
		})
	}

	for _, d := range []int{0, -5} {
		if _, err := NewBasicToolData(d); !errors.Is(err, ErrInvalidDurability) {
			t.Errorf("NewBasicToolData(%d) error = %v", d, err)
		}
	}
	if ByName("STICK").Durability() != nil {
		t.Error("STICK.Durability() != nil")
	}
}

func TestEnumOrdinals(t *testing.T) {
	for i, w := range WoodTypes() {
		if int(w.ID()) != i || WoodByID(i) != w {
			t.Errorf("wood %s id = %d at %d", w, w.ID(), i)
		}
	}
	if WoodByID(6) != nil || WoodByName("dark_oak") != DarkOak {
		t.Error("wood lookup mismatch")
	}

	for _, c := range DyeColors() {
		if ColorByWoolMeta(int(c.WoolMeta())) != c || ColorByDyeMeta(int(c.DyeMeta())) != c {
			t.Errorf("colour %s does not round-trip", c)
		}
		if c.WoolMeta()+c.DyeMeta() != 15 {
			t.Errorf("colour %s wool %d dye %d", c, c.WoolMeta(), c.DyeMeta())
		}
	}
	if ColorByDyeMeta(16) != nil || ColorByDyeMeta(-1) != nil || ColorByName("silver") != Silver {
		t.Error("colour lookup mismatch")
	}

	if n := len(ArmorMaterials()); n != 5 {
		t.Errorf("len(ArmorMaterials()) = %d, want 5", n)
	}
	if n := len(ToolTypes()); n != 5 {
		t.Errorf("len(ToolTypes()) = %d, want 5", n)
	}
}
