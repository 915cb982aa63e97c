package material

const unbreakable = -1

// Block ids 0-197 of protocol 47.
func registerBlocks() {
	block(0, "AIR", "air", 0, 0, noItem())
	block(1, "STONE", "stone", 1.5, 30,
		types("STONE", "GRANITE", "POLISHED_GRANITE", "DIORITE", "POLISHED_DIORITE", "ANDESITE", "POLISHED_ANDESITE"))
	block(2, "GRASS", "grass", 0.6, 3)
	block(3, "DIRT", "dirt", 0.5, 2.5, types("DIRT", "COARSE_DIRT", "PODZOL"))
	block(4, "COBBLESTONE", "cobblestone", 2, 30)
	block(5, "PLANKS", "planks", 2, 15, woods(WoodTypes()...))
	block(6, "SAPLING", "sapling", 0, 0, woods(WoodTypes()...))
	block(7, "BEDROCK", "bedrock", unbreakable, 18000000)
	block(8, "FLOWING_WATER", "flowing_water", 100, 500, noItem())
	block(9, "WATER", "water", 100, 500, noItem())
	block(10, "FLOWING_LAVA", "flowing_lava", 100, 500, noItem())
	block(11, "LAVA", "lava", 100, 500, noItem())
	block(12, "SAND", "sand", 0.5, 2.5, types("SAND", "RED_SAND"))
	block(13, "GRAVEL", "gravel", 0.6, 3)
	block(14, "GOLD_ORE", "gold_ore", 3, 15)
	block(15, "IRON_ORE", "iron_ore", 3, 15)
	block(16, "COAL_ORE", "coal_ore", 3, 15)
	block(17, "LOG", "log", 2, 10, logs(Oak, Spruce, Birch, Jungle), placesMasked(17, 0x3))
	block(18, "LEAVES", "leaves", 0.2, 1, leaves(Oak, Spruce, Birch, Jungle), placesMasked(18, 0x3))
	block(19, "SPONGE", "sponge", 0.6, 3, types("SPONGE", "WET_SPONGE"))
	block(20, "GLASS", "glass", 0.3, 1.5)
	block(21, "LAPIS_ORE", "lapis_ore", 3, 15)
	block(22, "LAPIS_BLOCK", "lapis_block", 3, 15)
	block(23, "DISPENSER", "dispenser", 3.5, 17.5)
	block(24, "SANDSTONE", "sandstone", 0.8, 4, types("SANDSTONE", "CHISELED", "SMOOTH"))
	block(25, "NOTEBLOCK", "noteblock", 0.8, 4)
	block(26, "BED_BLOCK", "bed", 0.2, 1, places(355, 0))
	block(27, "GOLDEN_RAIL", "golden_rail", 0.7, 3.5)
	block(28, "DETECTOR_RAIL", "detector_rail", 0.7, 3.5)
	block(29, "STICKY_PISTON", "sticky_piston", 0.5, 2.5)
	block(30, "WEB", "web", 4, 20)
	block(31, "TALLGRASS", "tallgrass", 0, 0, types("SHRUB", "TALL_GRASS", "FERN"))
	block(32, "DEADBUSH", "deadbush", 0, 0)
	block(33, "PISTON", "piston", 0.5, 2.5)
	block(34, "PISTON_HEAD", "piston_head", 0.5, 2.5, noItem())
	block(35, "WOOL", "wool", 0.8, 4, colored())
	block(36, "PISTON_EXTENSION", "piston_extension", unbreakable, 0, noItem())
	block(37, "YELLOW_FLOWER", "yellow_flower", 0, 0, types("DANDELION"))
	block(38, "RED_FLOWER", "red_flower", 0, 0,
		types("POPPY", "BLUE_ORCHID", "ALLIUM", "AZURE_BLUET", "RED_TULIP", "ORANGE_TULIP", "WHITE_TULIP", "PINK_TULIP", "OXEYE_DAISY"))
	block(39, "BROWN_MUSHROOM", "brown_mushroom", 0, 0)
	block(40, "RED_MUSHROOM", "red_mushroom", 0, 0)
	block(41, "GOLD_BLOCK", "gold_block", 3, 30)
	block(42, "IRON_BLOCK", "iron_block", 5, 30)
	block(43, "DOUBLE_STONE_SLAB", "double_stone_slab", 2, 30,
		doubleSlabs("STONE", "SANDSTONE", "WOOD", "COBBLESTONE", "BRICK", "STONE_BRICK", "NETHER_BRICK", "QUARTZ"),
		slabAt(8, "SMOOTH_STONE", SlabFull),
		slabAt(9, "SMOOTH_SANDSTONE", SlabFull),
		slabAt(15, "TILE_QUARTZ", SlabFull),
		placesMasked(44, 0x7))
	block(44, "STONE_SLAB", "stone_slab", 2, 30,
		slabs("STONE", "SANDSTONE", "WOOD", "COBBLESTONE", "BRICK", "STONE_BRICK", "NETHER_BRICK", "QUARTZ"),
		placesMasked(44, 0x7))
	block(45, "BRICK_BLOCK", "brick_block", 2, 30)
	block(46, "TNT", "tnt", 0, 0)
	block(47, "BOOKSHELF", "bookshelf", 1.5, 7.5)
	block(48, "MOSSY_COBBLESTONE", "mossy_cobblestone", 2, 30)
	block(49, "OBSIDIAN", "obsidian", 50, 6000)
	block(50, "TORCH", "torch", 0, 0)
	block(51, "FIRE", "fire", 0, 0, noItem())
	block(52, "MOB_SPAWNER", "mob_spawner", 5, 25)
	block(53, "OAK_STAIRS", "oak_stairs", 2, 15, wood(Oak))
	block(54, "CHEST", "chest", 2.5, 12.5)
	block(55, "REDSTONE_WIRE", "redstone_wire", 0, 0, places(331, 0))
	block(56, "DIAMOND_ORE", "diamond_ore", 3, 15)
	block(57, "DIAMOND_BLOCK", "diamond_block", 5, 30)
	block(58, "CRAFTING_TABLE", "crafting_table", 2.5, 12.5)
	block(59, "WHEAT_BLOCK", "wheat", 0, 0, places(295, 0))
	block(60, "FARMLAND", "farmland", 0.6, 3)
	block(61, "FURNACE", "furnace", 3.5, 17.5)
	block(62, "LIT_FURNACE", "lit_furnace", 3.5, 17.5, places(61, 0))
	block(63, "STANDING_SIGN", "standing_sign", 1, 5, places(323, 0))
	block(64, "WOODEN_DOOR_BLOCK", "wooden_door", 3, 15, doors(), wood(Oak), places(324, 0))
	block(65, "LADDER", "ladder", 0.4, 2)
	block(66, "RAIL", "rail", 0.7, 3.5)
	block(67, "STONE_STAIRS", "stone_stairs", 2, 30)
	block(68, "WALL_SIGN", "wall_sign", 1, 5, places(323, 0))
	block(69, "LEVER", "lever", 0.5, 2.5)
	block(70, "STONE_PRESSURE_PLATE", "stone_pressure_plate", 0.5, 2.5)
	block(71, "IRON_DOOR_BLOCK", "iron_door", 5, 25, doors(), places(330, 0))
	block(72, "WOODEN_PRESSURE_PLATE", "wooden_pressure_plate", 0.5, 2.5)
	block(73, "REDSTONE_ORE", "redstone_ore", 3, 15)
	block(74, "LIT_REDSTONE_ORE", "lit_redstone_ore", 3, 15, places(73, 0))
	block(75, "UNLIT_REDSTONE_TORCH", "unlit_redstone_torch", 0, 0, places(76, 0))
	block(76, "REDSTONE_TORCH", "redstone_torch", 0, 0)
	block(77, "STONE_BUTTON", "stone_button", 0.5, 2.5)
	block(78, "SNOW_LAYER", "snow_layer", 0.1, 0.5)
	block(79, "ICE", "ice", 0.5, 2.5)
	block(80, "SNOW", "snow", 0.2, 1)
	block(81, "CACTUS", "cactus", 0.4, 2)
	block(82, "CLAY", "clay", 0.6, 3)
	block(83, "REEDS_BLOCK", "reeds", 0, 0, places(338, 0))
	block(84, "JUKEBOX", "jukebox", 2, 30)
	block(85, "FENCE", "fence", 2, 15, wood(Oak))
	block(86, "PUMPKIN", "pumpkin", 1, 5)
	block(87, "NETHERRACK", "netherrack", 0.4, 2)
	block(88, "SOUL_SAND", "soul_sand", 0.5, 2.5)
	block(89, "GLOWSTONE", "glowstone", 0.3, 1.5)
	block(90, "PORTAL", "portal", unbreakable, 0, noItem())
	block(91, "LIT_PUMPKIN", "lit_pumpkin", 1, 5)
	block(92, "CAKE_BLOCK", "cake", 0.5, 2.5, places(354, 0))
	block(93, "UNPOWERED_REPEATER", "unpowered_repeater", 0, 0, places(356, 0))
	block(94, "POWERED_REPEATER", "powered_repeater", 0, 0, places(356, 0))
	block(95, "STAINED_GLASS", "stained_glass", 0.3, 1.5, colored())
	block(96, "TRAPDOOR", "trapdoor", 3, 15, wood(Oak))
	block(97, "MONSTER_EGG", "monster_egg", 0.75, 3.75,
		types("STONE", "COBBLESTONE", "STONE_BRICK", "MOSSY_STONE_BRICK", "CRACKED_STONE_BRICK", "CHISELED_STONE_BRICK"))
	block(98, "STONEBRICK", "stonebrick", 1.5, 30, types("STONE_BRICK", "MOSSY", "CRACKED", "CHISELED"))
	block(99, "BROWN_MUSHROOM_BLOCK", "brown_mushroom_block", 0.2, 1)
	block(100, "RED_MUSHROOM_BLOCK", "red_mushroom_block", 0.2, 1)
	block(101, "IRON_BARS", "iron_bars", 5, 30)
	block(102, "GLASS_PANE", "glass_pane", 0.3, 1.5)
	block(103, "MELON_BLOCK", "melon_block", 1, 5)
	block(104, "PUMPKIN_STEM", "pumpkin_stem", 0, 0, places(361, 0))
	block(105, "MELON_STEM", "melon_stem", 0, 0, places(362, 0))
	block(106, "VINE", "vine", 0.2, 1)
	block(107, "FENCE_GATE", "fence_gate", 2, 15, gates(), wood(Oak), places(107, 0))
	block(108, "BRICK_STAIRS", "brick_stairs", 2, 30)
	block(109, "STONE_BRICK_STAIRS", "stone_brick_stairs", 1.5, 30)
	block(110, "MYCELIUM", "mycelium", 0.6, 3)
	block(111, "WATERLILY", "waterlily", 0, 0)
	block(112, "NETHER_BRICK", "nether_brick", 2, 30)
	block(113, "NETHER_BRICK_FENCE", "nether_brick_fence", 2, 30)
	block(114, "NETHER_BRICK_STAIRS", "nether_brick_stairs", 2, 30)
	block(115, "NETHER_WART_BLOCK", "nether_wart", 0, 0, places(372, 0))
	block(116, "ENCHANTING_TABLE", "enchanting_table", 5, 6000)
	block(117, "BREWING_STAND_BLOCK", "brewing_stand", 0.5, 2.5, places(379, 0))
	block(118, "CAULDRON_BLOCK", "cauldron", 2, 10, places(380, 0))
	block(119, "END_PORTAL", "end_portal", unbreakable, 18000000, noItem())
	block(120, "END_PORTAL_FRAME", "end_portal_frame", unbreakable, 18000000)
	block(121, "END_STONE", "end_stone", 3, 45)
	block(122, "DRAGON_EGG", "dragon_egg", 3, 45)
	block(123, "REDSTONE_LAMP", "redstone_lamp", 0.3, 1.5)
	block(124, "LIT_REDSTONE_LAMP", "lit_redstone_lamp", 0.3, 1.5, places(123, 0))
	block(125, "DOUBLE_WOODEN_SLAB", "double_wooden_slab", 2, 15, woodSlabs(SlabFull), placesMasked(126, 0x7))
	block(126, "WOODEN_SLAB", "wooden_slab", 2, 15, woodSlabs(SlabBottom, SlabUpper), placesMasked(126, 0x7))
	block(127, "COCOA", "cocoa", 0.2, 15, places(351, uint16(Brown.DyeMeta())))
	block(128, "SANDSTONE_STAIRS", "sandstone_stairs", 0.8, 4)
	block(129, "EMERALD_ORE", "emerald_ore", 3, 15)
	block(130, "ENDER_CHEST", "ender_chest", 22.5, 3000)
	block(131, "TRIPWIRE_HOOK", "tripwire_hook", 0, 0)
	block(132, "TRIPWIRE", "tripwire", 0, 0, places(287, 0))
	block(133, "EMERALD_BLOCK", "emerald_block", 5, 30)
	block(134, "SPRUCE_STAIRS", "spruce_stairs", 2, 15, wood(Spruce))
	block(135, "BIRCH_STAIRS", "birch_stairs", 2, 15, wood(Birch))
	block(136, "JUNGLE_STAIRS", "jungle_stairs", 2, 15, wood(Jungle))
	block(137, "COMMAND_BLOCK", "command_block", unbreakable, 18000000)
	block(138, "BEACON", "beacon", 3, 15)
	block(139, "COBBLESTONE_WALL", "cobblestone_wall", 2, 30, types("COBBLESTONE", "MOSSY"))
	block(140, "FLOWER_POT_BLOCK", "flower_pot", 0, 0, places(390, 0))
	block(141, "CARROTS", "carrots", 0, 0, places(391, 0))
	block(142, "POTATOES", "potatoes", 0, 0, places(392, 0))
	block(143, "WOODEN_BUTTON", "wooden_button", 0.5, 2.5)
	block(144, "SKULL_BLOCK", "skull", 1, 5, places(397, 0))
	// Placed anvils keep damage in bits 2-3; the item damage is 0-2.
	block(145, "ANVIL", "anvil", 5, 6000,
		typeAt(0, "ANVIL"), typeAt(1, "SLIGHTLY_DAMAGED_ITEM"), typeAt(2, "VERY_DAMAGED_ITEM"),
		typeAt(4, "SLIGHTLY_DAMAGED"), typeAt(8, "VERY_DAMAGED"),
		placesVia(145, func(meta uint16) uint16 {
			if meta < 4 {
				return meta
			}
			return meta >> 2
		}))
	block(146, "TRAPPED_CHEST", "trapped_chest", 2.5, 12.5)
	block(147, "LIGHT_WEIGHTED_PRESSURE_PLATE", "light_weighted_pressure_plate", 0.5, 2.5)
	block(148, "HEAVY_WEIGHTED_PRESSURE_PLATE", "heavy_weighted_pressure_plate", 0.5, 2.5)
	block(149, "UNPOWERED_COMPARATOR", "unpowered_comparator", 0, 0, places(404, 0))
	block(150, "POWERED_COMPARATOR", "powered_comparator", 0, 0, places(404, 0))
	block(151, "DAYLIGHT_DETECTOR", "daylight_detector", 0.2, 1)
	block(152, "REDSTONE_BLOCK", "redstone_block", 5, 30)
	block(153, "QUARTZ_ORE", "quartz_ore", 3, 15)
	block(154, "HOPPER", "hopper", 3, 24)
	block(155, "QUARTZ_BLOCK", "quartz_block", 0.8, 4,
		types("QUARTZ_BLOCK", "CHISELED", "PILLAR", "PILLAR_NORTH_SOUTH", "PILLAR_EAST_WEST"),
		placesVia(155, func(meta uint16) uint16 { return min(meta, 2) }))
	block(156, "QUARTZ_STAIRS", "quartz_stairs", 0.8, 4)
	block(157, "ACTIVATOR_RAIL", "activator_rail", 0.7, 3.5)
	block(158, "DROPPER", "dropper", 3.5, 17.5)
	block(159, "STAINED_HARDENED_CLAY", "stained_hardened_clay", 1.25, 21, colored())
	block(160, "STAINED_GLASS_PANE", "stained_glass_pane", 0.3, 1.5, colored())
	block(161, "LEAVES2", "leaves2", 0.2, 1, leaves(Acacia, DarkOak), placesMasked(161, 0x3))
	block(162, "LOG2", "log2", 2, 10, logs(Acacia, DarkOak), placesMasked(162, 0x3))
	block(163, "ACACIA_STAIRS", "acacia_stairs", 2, 15, wood(Acacia))
	block(164, "DARK_OAK_STAIRS", "dark_oak_stairs", 2, 15, wood(DarkOak))
	block(165, "SLIME", "slime", 0, 0)
	block(166, "BARRIER", "barrier", unbreakable, 18000003)
	block(167, "IRON_TRAPDOOR", "iron_trapdoor", 5, 25)
	block(168, "PRISMARINE", "prismarine", 1.5, 30, types("PRISMARINE", "BRICKS", "DARK"))
	block(169, "SEA_LANTERN", "sea_lantern", 0.3, 1.5)
	block(170, "HAY_BLOCK", "hay_block", 0.5, 2.5)
	block(171, "CARPET", "carpet", 0.1, 0.5, colored())
	block(172, "HARDENED_CLAY", "hardened_clay", 1.25, 21)
	block(173, "COAL_BLOCK", "coal_block", 5, 30)
	block(174, "PACKED_ICE", "packed_ice", 0.5, 2.5)
	block(175, "DOUBLE_PLANT", "double_plant", 0, 0,
		types("SUNFLOWER", "LILAC", "DOUBLE_TALLGRASS", "LARGE_FERN", "ROSE_BUSH", "PEONY"))
	block(176, "STANDING_BANNER", "standing_banner", 1, 5, places(425, 0))
	block(177, "WALL_BANNER", "wall_banner", 1, 5, places(425, 0))
	block(178, "DAYLIGHT_DETECTOR_INVERTED", "daylight_detector_inverted", 0.2, 1, places(151, 0))
	block(179, "RED_SANDSTONE", "red_sandstone", 0.8, 4, types("RED_SANDSTONE", "CHISELED", "SMOOTH"))
	block(180, "RED_SANDSTONE_STAIRS", "red_sandstone_stairs", 0.8, 4)
	block(181, "DOUBLE_STONE_SLAB2", "double_stone_slab2", 2, 30,
		doubleSlabs("RED_SANDSTONE"), slabAt(8, "SMOOTH_RED_SANDSTONE", SlabFull), placesMasked(182, 0x7))
	block(182, "STONE_SLAB2", "stone_slab2", 2, 30, slabs("RED_SANDSTONE"), placesMasked(182, 0x7))
	block(183, "SPRUCE_FENCE_GATE", "spruce_fence_gate", 2, 15, gates(), wood(Spruce), places(183, 0))
	block(184, "BIRCH_FENCE_GATE", "birch_fence_gate", 2, 15, gates(), wood(Birch), places(184, 0))
	block(185, "JUNGLE_FENCE_GATE", "jungle_fence_gate", 2, 15, gates(), wood(Jungle), places(185, 0))
	block(186, "DARK_OAK_FENCE_GATE", "dark_oak_fence_gate", 2, 15, gates(), wood(DarkOak), places(186, 0))
	block(187, "ACACIA_FENCE_GATE", "acacia_fence_gate", 2, 15, gates(), wood(Acacia), places(187, 0))
	block(188, "SPRUCE_FENCE", "spruce_fence", 2, 15, wood(Spruce))
	block(189, "BIRCH_FENCE", "birch_fence", 2, 15, wood(Birch))
	block(190, "JUNGLE_FENCE", "jungle_fence", 2, 15, wood(Jungle))
	block(191, "DARK_OAK_FENCE", "dark_oak_fence", 2, 15, wood(DarkOak))
	block(192, "ACACIA_FENCE", "acacia_fence", 2, 15, wood(Acacia))
	block(193, "SPRUCE_DOOR_BLOCK", "spruce_door", 3, 15, doors(), wood(Spruce), places(427, 0))
	block(194, "BIRCH_DOOR_BLOCK", "birch_door", 3, 15, doors(), wood(Birch), places(428, 0))
	block(195, "JUNGLE_DOOR_BLOCK", "jungle_door", 3, 15, doors(), wood(Jungle), places(429, 0))
	block(196, "ACACIA_DOOR_BLOCK", "acacia_door", 3, 15, doors(), wood(Acacia), places(430, 0))
	block(197, "DARK_OAK_DOOR_BLOCK", "dark_oak_door", 3, 15, doors(), wood(DarkOak), places(431, 0))
}
