// Package gamenames centralizes display-name resolution so every adapter
// phrases goods, races and biomes the same way. The host exposes raw
// internal keys ("[Mat] Processed Wood"); players should hear "Wood".
package gamenames

import "strings"

var goodNames = map[string]string{
	"[Mat Raw] Wood":          "Wood",
	"[Mat Processed] Planks":  "Planks",
	"[Mat Processed] Fabric":  "Fabric",
	"[Mat Processed] Bricks":  "Bricks",
	"[Food Raw] Berries":      "Berries",
	"[Food Raw] Eggs":         "Eggs",
	"[Food Raw] Meat":         "Meat",
	"[Food Processed] Jerky":  "Jerky",
	"[Food Processed] Pie":    "Pie",
	"[Crafting] Coal":         "Coal",
	"[Crafting] Oil":          "Oil",
	"[Crafting] Sea Marrow":   "Sea Marrow",
	"[Valuable] Amber":        "Amber",
	"[Metal] Copper Bars":     "Copper Bars",
	"[Needs] Ale":             "Ale",
	"[Needs] Incense":         "Incense",
	"[Needs] Scrolls":         "Scrolls",
	"[Needs] Training Gear":   "Training Gear",
	"[Other] Pack of Goods":   "Pack of Goods",
	"[Other] Amber Shards":    "Amber Shards",
	"[Water] Clearance Water": "Clearance Water",
}

var raceNames = map[string]string{
	"Human":   "Humans",
	"Beaver":  "Beavers",
	"Lizard":  "Lizards",
	"Harpy":   "Harpies",
	"Fox":     "Foxes",
	"Frog":    "Frogs",
	"Bat":     "Bats",
	"Termite": "Termites",
}

var biomeNames = map[string]string{
	"Forest":         "Royal Woodlands",
	"Moorlands":      "Scarlet Orchard",
	"Wasteland":      "Cursed Royal Woodlands",
	"CapitalOutside": "The Smoldering City",
	"Marshlands":     "Marshlands",
	"Sealed":         "Sealed Forest",
	"Coral":          "Coral Forest",
	"Ashlands":       "Ashen Thicket",
}

// Good resolves a raw goods key to a spoken name, falling back to a
// cleaned version of the key itself.
func Good(key string) string {
	return resolve(goodNames, key)
}

// Race resolves a race key to its plural spoken name.
func Race(key string) string {
	return resolve(raceNames, key)
}

// Biome resolves a biome key to its spoken name.
func Biome(key string) string {
	return resolve(biomeNames, key)
}

func resolve(table map[string]string, key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	if name, ok := table[key]; ok {
		return name
	}
	return CleanKey(key)
}

// CleanKey strips bracketed category prefixes and underscores from a raw
// host key so an unmapped key still reads as words.
func CleanKey(key string) string {
	key = strings.TrimSpace(key)
	if i := strings.LastIndex(key, "]"); i >= 0 && i+1 < len(key) {
		key = key[i+1:]
	} else if i >= 0 {
		key = strings.TrimSuffix(strings.TrimPrefix(key, "["), "]")
	}
	key = strings.ReplaceAll(key, "_", " ")
	return strings.TrimSpace(key)
}
