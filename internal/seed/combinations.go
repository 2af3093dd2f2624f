package seed

// Combination is a canonical answer stored for every supported language.
// Result is a key of the translation table.
type Combination struct {
	Element1 string
	Element2 string
	Result   string
	Emoji    string
}

var combinations = []Combination{
	{Element1: "fire", Element2: "water", Result: "steam", Emoji: "💨"},
	{Element1: "earth", Element2: "water", Result: "mud", Emoji: "🟤"},
	{Element1: "earth", Element2: "fire", Result: "lava", Emoji: "🌋"},
	{Element1: "air", Element2: "water", Result: "cloud", Emoji: "☁️"},
	{Element1: "air", Element2: "earth", Result: "dust", Emoji: "🌫️"},
	{Element1: "lava", Element2: "water", Result: "obsidian", Emoji: "⚫"},
	{Element1: "air", Element2: "lava", Result: "stone", Emoji: "🪨"},
	{Element1: "steam", Element2: "steam", Result: "cloud", Emoji: "☁️"},
	{Element1: "dust", Element2: "water", Result: "clay", Emoji: "🏺"},
	{Element1: "stone", Element2: "stone", Result: "rock", Emoji: "🪨"},
	{Element1: "stone", Element2: "water", Result: "pebbles", Emoji: "🪨"},
	{Element1: "clay", Element2: "fire", Result: "brick", Emoji: "🧱"},
	{Element1: "fire", Element2: "stone", Result: "metal", Emoji: "🔩"},
	{Element1: "fire", Element2: "metal", Result: "steel", Emoji: "⛓️"},
	{Element1: "metal", Element2: "stone", Result: "sword", Emoji: "🗡️"},
	{Element1: "earth", Element2: "rain", Result: "plant", Emoji: "🌱"},
	{Element1: "plant", Element2: "plant", Result: "tree", Emoji: "🌳"},
	{Element1: "fire", Element2: "tree", Result: "ash", Emoji: "⚱️"},
	{Element1: "fire", Element2: "wood", Result: "ash", Emoji: "⚱️"},
	{Element1: "metal", Element2: "tree", Result: "axe", Emoji: "🪓"},
	{Element1: "metal", Element2: "wood", Result: "tool", Emoji: "🔧"},
	{Element1: "stone", Element2: "wood", Result: "pickaxe", Emoji: "⛏️"},
	{Element1: "axe", Element2: "tree", Result: "wood", Emoji: "🪵"},
	{Element1: "cloud", Element2: "cloud", Result: "storm", Emoji: "⛈️"},
	{Element1: "cloud", Element2: "fire", Result: "lightning", Emoji: "⚡"},
	{Element1: "cold", Element2: "water", Result: "ice", Emoji: "🧊"},
	{Element1: "fire", Element2: "ice", Result: "water", Emoji: "💧"},
	{Element1: "dust", Element2: "dust", Result: "sand", Emoji: "⏳"},
	{Element1: "sand", Element2: "sand", Result: "desert", Emoji: "🏜️"},
	{Element1: "fire", Element2: "sand", Result: "glass", Emoji: "🪟"},
	{Element1: "lightning", Element2: "metal", Result: "electricity", Emoji: "🔌"},
	{Element1: "electricity", Element2: "tool", Result: "machine", Emoji: "⚙️"},
	{Element1: "pressure", Element2: "stone", Result: "diamond", Emoji: "💎"},
	{Element1: "brick", Element2: "wood", Result: "house", Emoji: "🏠"},
	{Element1: "house", Element2: "stone", Result: "castle", Emoji: "🏰"},
	{Element1: "earth", Element2: "lava", Result: "volcano", Emoji: "🌋"},
	{Element1: "earth", Element2: "earth", Result: "mountain", Emoji: "⛰️"},
	{Element1: "tree", Element2: "tree", Result: "forest", Emoji: "🌲"},
	{Element1: "water", Element2: "water", Result: "ocean", Emoji: "🌊"},
	{Element1: "stemcell", Element2: "water", Result: "plant", Emoji: "🌱"},
}

// Combinations returns the canonical combinations. No two share a combination key.
func Combinations() []Combination {
	seeds := make([]Combination, len(combinations))
	copy(seeds, combinations)
	return seeds
}
