// Package material is the block and item taxonomy of Minecraft 1.8
// (protocol 47).
//
// Every numeric id is a Family, registered as a simple enum constant. A
// family has one or more sub-types, each a *Material identified by its
// meta value. Materials are created once during package initialisation and
// are compared by pointer.
//
// Features:
//   - Lookups by numeric id, enum name and minecraft: protocol id, each
//     optionally narrowed by meta or sub-type name
//   - Property records for armor and tools (ArmorData, ToolData,
//     BasicToolData) behind the Durable interface
//   - Sub-type enums (WoodType, DyeColor) and meta bit packing for slabs,
//     doors, fence gates and logs
//   - ItemForm links from placed-only blocks to the item that places them
//
// Usage:
//
//	m := material.ByIDMeta(1, 3)         // STONE:DIORITE
//	m, err := material.Parse("minecraft:wool:14")
//	if a, ok := material.ByName("IRON_HELMET").Armor(); ok {
//	    fmt.Println(a.Durability) // 165
//	}
//
// All lookups return nil for unknown keys. The tables are read-only after
// initialisation and safe for concurrent use.
package material
