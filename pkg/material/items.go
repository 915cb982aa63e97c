package material

import "strings"

// Item ids 256-431 and the music discs of protocol 47.
func registerItems() {
	item(256, "IRON_SHOVEL", "iron_shovel", tool(ToolIron, Shovel))
	item(257, "IRON_PICKAXE", "iron_pickaxe", tool(ToolIron, Pickaxe))
	item(258, "IRON_AXE", "iron_axe", tool(ToolIron, Axe))
	item(259, "FLINT_AND_STEEL", "flint_and_steel", basicTool(64))
	item(260, "APPLE", "apple")
	item(261, "BOW", "bow", basicTool(384))
	item(262, "ARROW", "arrow")
	item(263, "COAL", "coal", types("COAL", "CHARCOAL"))
	item(264, "DIAMOND", "diamond")
	item(265, "IRON_INGOT", "iron_ingot")
	item(266, "GOLD_INGOT", "gold_ingot")
	item(267, "IRON_SWORD", "iron_sword", tool(ToolIron, Sword))
	item(268, "WOODEN_SWORD", "wooden_sword", tool(ToolWood, Sword))
	item(269, "WOODEN_SHOVEL", "wooden_shovel", tool(ToolWood, Shovel))
	item(270, "WOODEN_PICKAXE", "wooden_pickaxe", tool(ToolWood, Pickaxe))
	item(271, "WOODEN_AXE", "wooden_axe", tool(ToolWood, Axe))
	item(272, "STONE_SWORD", "stone_sword", tool(ToolStone, Sword))
	item(273, "STONE_SHOVEL", "stone_shovel", tool(ToolStone, Shovel))
	item(274, "STONE_PICKAXE", "stone_pickaxe", tool(ToolStone, Pickaxe))
	item(275, "STONE_AXE", "stone_axe", tool(ToolStone, Axe))
	item(276, "DIAMOND_SWORD", "diamond_sword", tool(ToolDiamond, Sword))
	item(277, "DIAMOND_SHOVEL", "diamond_shovel", tool(ToolDiamond, Shovel))
	item(278, "DIAMOND_PICKAXE", "diamond_pickaxe", tool(ToolDiamond, Pickaxe))
	item(279, "DIAMOND_AXE", "diamond_axe", tool(ToolDiamond, Axe))
	item(280, "STICK", "stick")
	item(281, "BOWL", "bowl")
	item(282, "MUSHROOM_STEW", "mushroom_stew", stack(1))
	item(283, "GOLDEN_SWORD", "golden_sword", tool(ToolGold, Sword))
	item(284, "GOLDEN_SHOVEL", "golden_shovel", tool(ToolGold, Shovel))
	item(285, "GOLDEN_PICKAXE", "golden_pickaxe", tool(ToolGold, Pickaxe))
	item(286, "GOLDEN_AXE", "golden_axe", tool(ToolGold, Axe))
	item(287, "STRING", "string")
	item(288, "FEATHER", "feather")
	item(289, "GUNPOWDER", "gunpowder")
	item(290, "WOODEN_HOE", "wooden_hoe", tool(ToolWood, Hoe))
	item(291, "STONE_HOE", "stone_hoe", tool(ToolStone, Hoe))
	item(292, "IRON_HOE", "iron_hoe", tool(ToolIron, Hoe))
	item(293, "DIAMOND_HOE", "diamond_hoe", tool(ToolDiamond, Hoe))
	item(294, "GOLDEN_HOE", "golden_hoe", tool(ToolGold, Hoe))
	item(295, "WHEAT_SEEDS", "wheat_seeds")
	item(296, "WHEAT", "wheat")
	item(297, "BREAD", "bread")

	item(298, "LEATHER_HELMET", "leather_helmet", armor(ArmorLeather, Helmet, 1))
	item(299, "LEATHER_CHESTPLATE", "leather_chestplate", armor(ArmorLeather, Chestplate, 3))
	item(300, "LEATHER_LEGGINGS", "leather_leggings", armor(ArmorLeather, Leggings, 2))
	item(301, "LEATHER_BOOTS", "leather_boots", armor(ArmorLeather, Boots, 1))
	item(302, "CHAINMAIL_HELMET", "chainmail_helmet", armor(ArmorChain, Helmet, 2))
	item(303, "CHAINMAIL_CHESTPLATE", "chainmail_chestplate", armor(ArmorChain, Chestplate, 5))
	item(304, "CHAINMAIL_LEGGINGS", "chainmail_leggings", armor(ArmorChain, Leggings, 4))
	item(305, "CHAINMAIL_BOOTS", "chainmail_boots", armor(ArmorChain, Boots, 1))
	item(306, "IRON_HELMET", "iron_helmet", armor(ArmorIron, Helmet, 2))
	item(307, "IRON_CHESTPLATE", "iron_chestplate", armor(ArmorIron, Chestplate, 6))
	item(308, "IRON_LEGGINGS", "iron_leggings", armor(ArmorIron, Leggings, 5))
	item(309, "IRON_BOOTS", "iron_boots", armor(ArmorIron, Boots, 2))
	item(310, "DIAMOND_HELMET", "diamond_helmet", armor(ArmorDiamond, Helmet, 3))
	item(311, "DIAMOND_CHESTPLATE", "diamond_chestplate", armor(ArmorDiamond, Chestplate, 8))
	item(312, "DIAMOND_LEGGINGS", "diamond_leggings", armor(ArmorDiamond, Leggings, 6))
	item(313, "DIAMOND_BOOTS", "diamond_boots", armor(ArmorDiamond, Boots, 3))
	item(314, "GOLDEN_HELMET", "golden_helmet", armor(ArmorGold, Helmet, 2))
	item(315, "GOLDEN_CHESTPLATE", "golden_chestplate", armor(ArmorGold, Chestplate, 5))
	item(316, "GOLDEN_LEGGINGS", "golden_leggings", armor(ArmorGold, Leggings, 3))
	item(317, "GOLDEN_BOOTS", "golden_boots", armor(ArmorGold, Boots, 1))

	item(318, "FLINT", "flint")
	item(319, "PORKCHOP", "porkchop")
	item(320, "COOKED_PORKCHOP", "cooked_porkchop")
	item(321, "PAINTING", "painting")
	item(322, "GOLDEN_APPLE", "golden_apple", types("GOLDEN_APPLE", "ENCHANTED"))
	item(323, "SIGN", "sign", stack(16))
	item(324, "WOODEN_DOOR", "wooden_door", wood(Oak))
	item(325, "BUCKET", "bucket", stack(16))
	item(326, "WATER_BUCKET", "water_bucket", stack(1))
	item(327, "LAVA_BUCKET", "lava_bucket", stack(1))
	item(328, "MINECART", "minecart", stack(1))
	item(329, "SADDLE", "saddle", stack(1))
	item(330, "IRON_DOOR", "iron_door")
	item(331, "REDSTONE", "redstone")
	item(332, "SNOWBALL", "snowball", stack(16))
	item(333, "BOAT", "boat", stack(1))
	item(334, "LEATHER", "leather")
	item(335, "MILK_BUCKET", "milk_bucket", stack(1))
	item(336, "BRICK", "brick")
	item(337, "CLAY_BALL", "clay_ball")
	item(338, "REEDS", "reeds")
	item(339, "PAPER", "paper")
	item(340, "BOOK", "book")
	item(341, "SLIME_BALL", "slime_ball")
	item(342, "CHEST_MINECART", "chest_minecart", stack(1))
	item(343, "FURNACE_MINECART", "furnace_minecart", stack(1))
	item(344, "EGG", "egg", stack(16))
	item(345, "COMPASS", "compass")
	item(346, "FISHING_ROD", "fishing_rod", basicTool(64))
	item(347, "CLOCK", "clock")
	item(348, "GLOWSTONE_DUST", "glowstone_dust")
	item(349, "FISH", "fish", types("COD", "SALMON", "CLOWNFISH", "PUFFERFISH"))
	item(350, "COOKED_FISH", "cooked_fish", types("COD", "SALMON"))
	item(351, "DYE", "dye", dyes())
	item(352, "BONE", "bone")
	item(353, "SUGAR", "sugar")
	item(354, "CAKE", "cake", stack(1))
	item(355, "BED", "bed", stack(1))
	item(356, "REPEATER", "repeater")
	item(357, "COOKIE", "cookie")
	item(358, "FILLED_MAP", "filled_map")
	item(359, "SHEARS", "shears", basicTool(238))
	item(360, "MELON", "melon")
	item(361, "PUMPKIN_SEEDS", "pumpkin_seeds")
	item(362, "MELON_SEEDS", "melon_seeds")
	item(363, "BEEF", "beef")
	item(364, "COOKED_BEEF", "cooked_beef")
	item(365, "CHICKEN", "chicken")
	item(366, "COOKED_CHICKEN", "cooked_chicken")
	item(367, "ROTTEN_FLESH", "rotten_flesh")
	item(368, "ENDER_PEARL", "ender_pearl", stack(16))
	item(369, "BLAZE_ROD", "blaze_rod")
	item(370, "GHAST_TEAR", "ghast_tear")
	item(371, "GOLD_NUGGET", "gold_nugget")
	item(372, "NETHER_WART", "nether_wart")
	item(373, "POTION", "potion", stack(1))
	item(374, "GLASS_BOTTLE", "glass_bottle")
	item(375, "SPIDER_EYE", "spider_eye")
	item(376, "FERMENTED_SPIDER_EYE", "fermented_spider_eye")
	item(377, "BLAZE_POWDER", "blaze_powder")
	item(378, "MAGMA_CREAM", "magma_cream")
	item(379, "BREWING_STAND", "brewing_stand")
	item(380, "CAULDRON", "cauldron")
	item(381, "ENDER_EYE", "ender_eye")
	item(382, "SPECKLED_MELON", "speckled_melon")
	item(383, "SPAWN_EGG", "spawn_egg")
	item(384, "EXPERIENCE_BOTTLE", "experience_bottle")
	item(385, "FIRE_CHARGE", "fire_charge")
	item(386, "WRITABLE_BOOK", "writable_book", stack(1))
	item(387, "WRITTEN_BOOK", "written_book", stack(16))
	item(388, "EMERALD", "emerald")
	item(389, "ITEM_FRAME", "item_frame")
	item(390, "FLOWER_POT", "flower_pot")
	item(391, "CARROT", "carrot")
	item(392, "POTATO", "potato")
	item(393, "BAKED_POTATO", "baked_potato")
	item(394, "POISONOUS_POTATO", "poisonous_potato")
	item(395, "MAP", "map")
	item(396, "GOLDEN_CARROT", "golden_carrot")
	item(397, "SKULL", "skull", types("SKELETON", "WITHER_SKELETON", "ZOMBIE", "PLAYER", "CREEPER"))
	item(398, "CARROT_ON_A_STICK", "carrot_on_a_stick", basicTool(25))
	item(399, "NETHER_STAR", "nether_star")
	item(400, "PUMPKIN_PIE", "pumpkin_pie")
	item(401, "FIREWORKS", "fireworks")
	item(402, "FIREWORK_CHARGE", "firework_charge")
	item(403, "ENCHANTED_BOOK", "enchanted_book", stack(1))
	item(404, "COMPARATOR", "comparator")
	item(405, "NETHERBRICK", "netherbrick")
	item(406, "QUARTZ", "quartz")
	item(407, "TNT_MINECART", "tnt_minecart", stack(1))
	item(408, "HOPPER_MINECART", "hopper_minecart", stack(1))
	item(409, "PRISMARINE_SHARD", "prismarine_shard")
	item(410, "PRISMARINE_CRYSTALS", "prismarine_crystals")
	item(411, "RABBIT", "rabbit")
	item(412, "COOKED_RABBIT", "cooked_rabbit")
	item(413, "RABBIT_STEW", "rabbit_stew", stack(1))
	item(414, "RABBIT_FOOT", "rabbit_foot")
	item(415, "RABBIT_HIDE", "rabbit_hide")
	item(416, "ARMOR_STAND", "armor_stand", stack(16))
	item(417, "IRON_HORSE_ARMOR", "iron_horse_armor", stack(1))
	item(418, "GOLDEN_HORSE_ARMOR", "golden_horse_armor", stack(1))
	item(419, "DIAMOND_HORSE_ARMOR", "diamond_horse_armor", stack(1))
	item(420, "LEAD", "lead")
	item(421, "NAME_TAG", "name_tag")
	item(422, "COMMAND_BLOCK_MINECART", "command_block_minecart", stack(1))
	item(423, "MUTTON", "mutton")
	item(424, "COOKED_MUTTON", "cooked_mutton")
	item(425, "BANNER", "banner", stack(16))
	item(427, "SPRUCE_DOOR", "spruce_door", wood(Spruce))
	item(428, "BIRCH_DOOR", "birch_door", wood(Birch))
	item(429, "JUNGLE_DOOR", "jungle_door", wood(Jungle))
	item(430, "ACACIA_DOOR", "acacia_door", wood(Acacia))
	item(431, "DARK_OAK_DOOR", "dark_oak_door", wood(DarkOak))

	for i, disc := range []string{"13", "CAT", "BLOCKS", "CHIRP", "FAR", "MALL", "MELLOHI", "STAL", "STRAD", "WARD", "11", "WAIT"} {
		item(uint16(2256+i), "RECORD_"+disc, "record_"+strings.ToLower(disc), stack(1))
	}
}
