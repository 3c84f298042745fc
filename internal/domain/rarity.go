package domain

// Rarity is the ordered scarcity tier of a catalog item.
// The order drives drop probability, bonus rewards, and recycle value.
type Rarity string

const (
	RarityCommon    Rarity = "COMMON"
	RarityUncommon  Rarity = "UNCOMMON"
	RarityRare      Rarity = "RARE"
	RarityVeryRare  Rarity = "VERY_RARE"
	RarityLegendary Rarity = "LEGENDARY"
	RarityExotic    Rarity = "EXOTIC"
)

// Rarities lists every tier from most to least common.
// Iteration over tiers must use this slice so ordering stays deterministic.
var Rarities = []Rarity{
	RarityCommon,
	RarityUncommon,
	RarityRare,
	RarityVeryRare,
	RarityLegendary,
	RarityExotic,
}

// Order returns the position of the tier in the scarcity ordering,
// 0 for COMMON up to 5 for EXOTIC. Unknown tiers sort below COMMON.
func (r Rarity) Order() int {
	switch r {
	case RarityCommon:
		return 0
	case RarityUncommon:
		return 1
	case RarityRare:
		return 2
	case RarityVeryRare:
		return 3
	case RarityLegendary:
		return 4
	case RarityExotic:
		return 5
	default:
		return -1
	}
}

// Valid reports whether r is one of the defined tiers.
func (r Rarity) Valid() bool {
	return r.Order() >= 0
}

// BonusCoins returns the coin bonus credited when a case drop of this
// tier is opened. Total over the enum; unknown tiers get the COMMON bonus.
func (r Rarity) BonusCoins() int {
	switch r {
	case RarityCommon:
		return 10
	case RarityUncommon:
		return 25
	case RarityRare:
		return 50
	case RarityVeryRare:
		return 100
	case RarityLegendary:
		return 250
	case RarityExotic:
		return 500
	default:
		return 10
	}
}

// BonusXP returns the XP bonus credited when a case drop of this tier is opened.
func (r Rarity) BonusXP() int {
	switch r {
	case RarityCommon:
		return 5
	case RarityUncommon:
		return 15
	case RarityRare:
		return 30
	case RarityVeryRare:
		return 60
	case RarityLegendary:
		return 150
	case RarityExotic:
		return 300
	default:
		return 5
	}
}

// RecycleValue returns the base coin value paid out when an item of this
// tier is recycled, before any wear adjustment.
func (r Rarity) RecycleValue() int {
	switch r {
	case RarityCommon:
		return 10
	case RarityUncommon:
		return 50
	case RarityRare:
		return 150
	case RarityVeryRare:
		return 400
	case RarityLegendary:
		return 1000
	case RarityExotic:
		return 5000
	default:
		return 10
	}
}
