package material

import (
	"errors"
	"testing"
)

func TestRegistryCounts(t *testing.T) {
	if got := Count(); got != 385 {
		t.Errorf("Count() = %d, want 385", got)
	}
	if got := len(Blocks()); got != 198 {
		t.Errorf("len(Blocks()) = %d, want 198", got)
	}
	if got := len(Items()); got != 187 {
		t.Errorf("len(Items()) = %d, want 187", got)
	}
	if got, want := len(AllVariants()), VariantCount(); got != want {
		t.Errorf("len(AllVariants()) = %d, VariantCount() = %d", got, want)
	}
	if !families.Frozen() {
		t.Error("registry not frozen after init")
	}
}

func TestEveryVariantResolves(t *testing.T) {
	prev := -1
	for _, m := range Values() {
		if int(m.ID()) <= prev {
			t.Errorf("Values() not ordered by id at %s", m)
		}
		prev = int(m.ID())
		if m.Default() != m {
			t.Errorf("%s.Default() = %s", m, m.Default())
		}
	}

	for _, m := range AllVariants() {
		if got := ByIDMeta(int(m.ID()), int(m.Meta())); got != m {
			t.Errorf("ByIDMeta(%s) = %v", m.Key(), got)
		}
		if got := ByNameType(m.Name(), m.TypeName()); got != m {
			t.Errorf("ByNameType(%s, %s) = %v", m.Name(), m.TypeName(), got)
		}
		if got, err := Parse(m.String()); err != nil || got != m {
			t.Errorf("Parse(%q) = (%v, %v)", m.String(), got, err)
		}
		if m.IsBlock() && m.ItemForm() != nil && !m.ItemForm().IsItem() {
			t.Errorf("%s.ItemForm() = %s, which is not an item", m, m.ItemForm())
		}
	}
}

func TestLookups(t *testing.T) {
	tests := []struct {
		name string
		got  *Material
		want string
	}{
		{"ByID stone", ByID(1), "STONE:STONE"},
		{"ByID cobblestone", ByID(4), "COBBLESTONE"},
		{"ByIDMeta granite", ByIDMeta(1, 1), "STONE:GRANITE"},
		{"ByIDMeta red wool", ByIDMeta(35, 14), "WOOL:RED"},
		{"ByIDMeta red dye", ByIDMeta(351, 1), "DYE:RED"},
		{"ByIDMeta birch log x", ByIDMeta(17, 6), "LOG:BIRCH_X"},
		{"ByIDMeta dark oak upper slab", ByIDMeta(126, 13), "WOODEN_SLAB:DARK_OAK_UPPER"},
		{"ByIDMeta record", ByIDMeta(2256, 0), "RECORD_13"},
		{"ByName lower case", ByName("diamond_sword"), "DIAMOND_SWORD"},
		{"ByNameMeta", ByNameMeta("SAND", 1), "SAND:RED_SAND"},
		{"ByNameType", ByNameType("planks", "jungle"), "PLANKS:JUNGLE"},
		{"ByMinecraftID namespaced", ByMinecraftID("minecraft:stone"), "STONE:STONE"},
		{"ByMinecraftID bare", ByMinecraftID("GOLD_ORE"), "GOLD_ORE"},
		{"ByMinecraftIDMeta", ByMinecraftIDMeta("minecraft:dirt", 2), "DIRT:PODZOL"},
		{"ByMinecraftID shared prefers block", ByMinecraftID("minecraft:wheat"), "WHEAT_BLOCK"},
		{"ItemByMinecraftID shared prefers item", ItemByMinecraftID("minecraft:wheat"), "WHEAT"},
		{"ItemByMinecraftID block only", ItemByMinecraftID("stone"), "STONE:STONE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got == nil {
				t.Fatalf("got nil, want %s", tt.want)
			}
			if tt.got.String() != tt.want {
				t.Errorf("got %s, want %s", tt.got, tt.want)
			}
		})
	}
}

func TestLookupsUnknown(t *testing.T) {
	tests := []struct {
		name string
		got  *Material
	}{
		{"negative id", ByID(-1)},
		{"gap id", ByID(426)},
		{"huge id", ByID(1 << 20)},
		{"unknown meta", ByIDMeta(1, 7)},
		{"negative meta", ByIDMeta(1, -1)},
		{"unknown name", ByName("NOT_A_BLOCK")},
		{"empty name", ByName("")},
		{"unknown type", ByNameType("STONE", "MARBLE")},
		{"unknown mcid", ByMinecraftID("minecraft:copper_ore")},
		{"unknown mcid meta", ByMinecraftIDMeta("stone", 9)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != nil {
				t.Errorf("got %s, want nil", tt.got)
			}
		})
	}
}

func TestMaterialProperties(t *testing.T) {
	stone := ByID(1)
	if stone.Hardness() != 1.5 || stone.BlastResistance() != 30 || stone.MaxStack() != 64 {
		t.Errorf("STONE = hardness %v blast %v stack %d", stone.Hardness(), stone.BlastResistance(), stone.MaxStack())
	}
	if stone.MinecraftID() != "minecraft:stone" || stone.Kind() != KindBlock || !stone.IsItem() {
		t.Errorf("STONE = %s %s item %v", stone.MinecraftID(), stone.Kind(), stone.IsItem())
	}
	if ByID(7).Hardness() != -1 {
		t.Errorf("BEDROCK hardness = %v, want -1", ByID(7).Hardness())
	}
	if n := len(stone.Variants()); n != 7 {
		t.Errorf("len(STONE.Variants()) = %d, want 7", n)
	}
	if stone.Variant(3).TypeName() != "DIORITE" || stone.VariantByName("andesite").Meta() != 5 {
		t.Error("STONE sibling lookup mismatch")
	}

	log := ByIDMeta(162, 0x9)
	if log.Wood() != DarkOak {
		t.Errorf("%s.Wood() = %v, want DARK_OAK", log, log.Wood())
	}
	if a, ok := log.Axis(); !ok || a != AxisZ {
		t.Errorf("%s.Axis() = (%s, %v), want Z", log, a, ok)
	}

	door := ByIDMeta(64, 0x6)
	if d, ok := door.Door(); !ok || d.Facing != West || !d.Open || d.Top {
		t.Errorf("%s.Door() = (%+v, %v)", door, d, ok)
	}
	if door.Wood() != Oak {
		t.Errorf("%s.Wood() = %v", door, door.Wood())
	}
	if n := len(door.Variants()); n != 12 {
		t.Errorf("len(door variants) = %d, want 12", n)
	}

	gate := ByIDMeta(185, 0x5)
	if g, ok := gate.FenceGate(); !ok || g.Facing != West || !g.Open {
		t.Errorf("%s.FenceGate() = (%+v, %v)", gate, g, ok)
	}
	if gate.Wood() != Jungle {
		t.Errorf("%s.Wood() = %v", gate, gate.Wood())
	}

	slab := ByIDMeta(44, 0xC)
	if s, ok := slab.Slab(); !ok || s != SlabUpper || slab.TypeName() != "BRICK_UPPER" {
		t.Errorf("%s.Slab() = (%s, %v)", slab, s, ok)
	}
	full := ByIDMeta(43, 15)
	if s, ok := full.Slab(); !ok || s != SlabFull {
		t.Errorf("%s.Slab() = (%s, %v)", full, s, ok)
	}

	if c := ByIDMeta(171, 11).Color(); c != Blue {
		t.Errorf("CARPET:11 colour = %v, want BLUE", c)
	}
	if _, ok := stone.Slab(); ok {
		t.Error("STONE.Slab() ok = true")
	}
	if stone.Wood() != nil || stone.Color() != nil || stone.Durability() != nil {
		t.Error("STONE has unexpected properties")
	}
}

func TestItemForm(t *testing.T) {
	tests := []struct {
		block *Material
		want  string
	}{
		{ByID(1), "STONE:STONE"},
		{ByIDMeta(64, 9), "WOODEN_DOOR"},
		{ByIDMeta(197, 3), "DARK_OAK_DOOR"},
		{ByIDMeta(17, 0xD), "LOG:SPRUCE"},
		{ByIDMeta(18, 0xE), "LEAVES:BIRCH"},
		{ByIDMeta(43, 15), "STONE_SLAB:QUARTZ"},
		{ByIDMeta(44, 9), "STONE_SLAB:SANDSTONE"},
		{ByIDMeta(125, 4), "WOODEN_SLAB:ACACIA"},
		{ByID(127), "DYE:BROWN"},
		{ByID(59), "WHEAT_SEEDS"},
		{ByID(62), "FURNACE"},
		{ByIDMeta(186, 6), "DARK_OAK_FENCE_GATE:SOUTH"},
		{ByIDMeta(145, 0), "ANVIL:ANVIL"},
		{ByIDMeta(145, 4), "ANVIL:SLIGHTLY_DAMAGED_ITEM"},
		{ByIDMeta(145, 8), "ANVIL:VERY_DAMAGED_ITEM"},
		{ByIDMeta(145, 2), "ANVIL:VERY_DAMAGED_ITEM"},
		{ByIDMeta(155, 1), "QUARTZ_BLOCK:CHISELED"},
		{ByIDMeta(155, 3), "QUARTZ_BLOCK:PILLAR"},
		{ByIDMeta(155, 4), "QUARTZ_BLOCK:PILLAR"},
	}
	for _, tt := range tests {
		t.Run(tt.block.String(), func(t *testing.T) {
			got := tt.block.ItemForm()
			if got == nil || got.String() != tt.want {
				t.Errorf("%s.ItemForm() = %v, want %s", tt.block, got, tt.want)
			}
		})
	}

	for _, id := range []int{0, 8, 9, 10, 11, 34, 36, 51, 90, 119} {
		m := ByID(id)
		if m.ItemForm() != nil || m.IsItem() {
			t.Errorf("%s.ItemForm() = %v, want nil", m, m.ItemForm())
		}
	}
	apple := ByName("APPLE")
	if apple.ItemForm() != apple || !apple.IsItem() || apple.IsBlock() {
		t.Error("APPLE is not its own item form")
	}
	if ByName("WHEAT_BLOCK").IsItem() {
		t.Error("WHEAT_BLOCK.IsItem() = true")
	}

	for _, ref := range []string{"145:1", "145:2", "155:2"} {
		if m, err := Parse(ref); err != nil || !m.IsItem() {
			t.Errorf("Parse(%s) = %v, %v, want an item sub-type", ref, m, err)
		}
	}
	for _, ref := range []string{"145:4", "145:8", "155:3", "155:4"} {
		if m := MustParse(ref); m.IsItem() {
			t.Errorf("%s.IsItem() = true, want placement-only", m)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1", "STONE:STONE"},
		{"1:3", "STONE:DIORITE"},
		{"STONE", "STONE:STONE"},
		{"stone:granite", "STONE:GRANITE"},
		{"STONE:1", "STONE:GRANITE"},
		{"minecraft:stone", "STONE:STONE"},
		{"minecraft:stone:1", "STONE:GRANITE"},
		{"Minecraft:Wool:orange", "WOOL:ORANGE"},
		{"minecraft:wheat", "WHEAT_BLOCK"},
		{"lit_furnace", "LIT_FURNACE"},
		{" 35:14 ", "WOOL:RED"},
		{"RECORD_11", "RECORD_11"},
		{"2267", "RECORD_WAIT"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.in, err)
			}
			if got.String() != tt.want {
				t.Errorf("Parse(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		in   string
		want error
	}{
		{"", ErrInvalidSyntax},
		{"   ", ErrInvalidSyntax},
		{":1", ErrInvalidSyntax},
		{"STONE:", ErrInvalidSyntax},
		{"STONE:1:2", ErrInvalidSyntax},
		{"minecraft:", ErrInvalidSyntax},
		{"99999999", ErrInvalidSyntax},
		{"1:70000", ErrInvalidSyntax},
		{"426", ErrUnknownMaterial},
		{"NOT_A_BLOCK", ErrUnknownMaterial},
		{"minecraft:NOT_A_BLOCK", ErrUnknownMaterial},
		{"STONE:MARBLE", ErrUnknownMaterial},
		{"1:99", ErrUnknownMaterial},
		{"1:-1", ErrUnknownMaterial},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse(%q) = (%v, %v), want %v", tt.in, got, err, tt.want)
			}
			if got != nil {
				t.Errorf("Parse(%q) returned %s with an error", tt.in, got)
			}
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse did not panic")
		}
	}()
	MustParse("NOT_A_BLOCK")
}

func TestDuplicateRegistrationPanics(t *testing.T) {
	tests := []struct {
		name string
		reg  func()
	}{
		{"id", func() { block(1, "STONE_AGAIN", "stone_again", 0, 0) }},
		{"meta", func() { block(9999, "DUP_META", "dup_meta", 0, 0, typeAt(1, "A"), typeAt(1, "B")) }},
		{"type name", func() { block(9999, "DUP_TYPE", "dup_type", 0, 0, typeAt(1, "A"), typeAt(2, "a")) }},
		{"minecraft id", func() { item(9999, "DUP_MCID", "apple") }},
		{"frozen", func() { item(9999, "LATE_ITEM", "late_item") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("registering a duplicate %s did not panic", tt.name)
				}
			}()
			tt.reg()
		})
	}
	if FamilyByID(9999) != nil {
		t.Error("failed registration left an entry behind")
	}
}
