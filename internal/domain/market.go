package domain

import "time"

// ListingState is the lifecycle state of a market listing.
// ACTIVE is the only non-terminal state: a listing moves to SOLD or
// CANCELLED exactly once and never transitions out of either.
type ListingState string

const (
	ListingActive    ListingState = "ACTIVE"
	ListingSold      ListingState = "SOLD"
	ListingCancelled ListingState = "CANCELLED"
)

// MarketListing is a fixed-price offer to sell one owned item.
type MarketListing struct {
	ID         int64        `json:"listing_id" db:"listing_id"`
	SellerID   string       `json:"seller_id" db:"seller_id"`
	GuildID    string       `json:"guild_id" db:"guild_id"`
	ItemID     int64        `json:"item_id" db:"item_id"`
	Price      int          `json:"price" db:"price"`
	FeePercent int          `json:"fee_percent" db:"fee_percent"`
	State      ListingState `json:"state" db:"state"`
	BuyerID    *string      `json:"buyer_id,omitempty" db:"buyer_id"`
	SoldAt     *time.Time   `json:"sold_at,omitempty" db:"sold_at"`
	CreatedAt  time.Time    `json:"created_at" db:"created_at"`

	// Item is populated by queries that join the owned item and catalog.
	Item *OwnedItem `json:"item,omitempty"`
}

// SaleFee computes the burned fee for a sale price: floor(price * feePercent / 100).
func SaleFee(price, feePercent int) int {
	return price * feePercent / 100
}

// MarketFilter narrows market browse queries. Zero values mean "no filter".
type MarketFilter struct {
	GuildID  string
	MinPrice int
	MaxPrice int
	Rarity   Rarity
	Search   string
}

// MarketStats is an aggregate snapshot of market activity.
type MarketStats struct {
	ActiveListings int `json:"active_listings"`
	AveragePrice   int `json:"average_price"`
	SalesLast24h   int `json:"sales_last_24h"`
}
