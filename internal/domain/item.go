package domain

import (
	"math"
	"time"
)

// ItemDefinition is an immutable catalog entry. Definitions are seeded
// from the case config files and never mutated at runtime.
type ItemDefinition struct {
	ID         int    `json:"item_def_id" db:"item_def_id"`
	Name       string `json:"name" db:"name"`
	Rarity     Rarity `json:"rarity" db:"rarity"`
	Weapon     string `json:"weapon" db:"weapon"`
	Skin       string `json:"skin" db:"skin"`
	Collection string `json:"collection" db:"collection"`
	IconURL    string `json:"icon_url,omitempty" db:"icon_url"`
}

// OwnedItem is a single item instance held by a user in a guild.
type OwnedItem struct {
	ID          int64     `json:"item_id" db:"item_id"`
	ItemDefID   int       `json:"item_def_id" db:"item_def_id"`
	OwnerID     string    `json:"owner_id" db:"owner_id"`
	GuildID     string    `json:"guild_id" db:"guild_id"`
	Wear        float64   `json:"wear" db:"wear"`
	Listed      bool      `json:"listed" db:"listed"`
	Locked      bool      `json:"locked" db:"locked"`
	ObtainedVia string    `json:"obtained_via" db:"obtained_via"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`

	// Def is populated by queries that join the catalog.
	Def *ItemDefinition `json:"def,omitempty"`
}

// Sources recorded on OwnedItem.ObtainedVia.
const (
	ObtainedViaCase   = "case"
	ObtainedViaMarket = "market"
	ObtainedViaGrant  = "grant"
)

// Wear band boundaries, matching marketplace float conventions.
const (
	WearFactoryNewMax  = 0.07
	WearMinimalWearMax = 0.15
	WearFieldTestedMax = 0.38
	WearWellWornMax    = 0.45
)

// WearCondition returns the display name of the wear band for a float value.
func WearCondition(wear float64) string {
	switch {
	case wear <= WearFactoryNewMax:
		return "Factory New"
	case wear <= WearMinimalWearMax:
		return "Minimal Wear"
	case wear <= WearFieldTestedMax:
		return "Field-Tested"
	case wear <= WearWellWornMax:
		return "Well-Worn"
	default:
		return "Battle-Scarred"
	}
}

// wearMultiplier returns the recycle value multiplier for a wear band.
func wearMultiplier(wear float64) float64 {
	switch {
	case wear <= WearFactoryNewMax:
		return 1.5
	case wear <= WearMinimalWearMax:
		return 1.25
	case wear <= WearFieldTestedMax:
		return 1.0
	case wear <= WearWellWornMax:
		return 0.75
	default:
		return 0.5
	}
}

// RecycleValue computes the coin payout for destroying an item of the
// given rarity and wear. Rounds down after the wear adjustment.
func RecycleValue(rarity Rarity, wear float64) int {
	return int(math.Floor(float64(rarity.RecycleValue()) * wearMultiplier(wear)))
}
