package repository

import (
	"context"
	"time"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
)

// Market defines the interface for market persistence
type Market interface {
	GetListing(ctx context.Context, listingID int64) (*domain.MarketListing, error)
	CountActiveListings(ctx context.Context, sellerID, guildID string) (int, error)
	BrowseListings(ctx context.Context, filter domain.MarketFilter, limit, offset int) ([]domain.MarketListing, int, error)
	GetUserListings(ctx context.Context, sellerID, guildID string) ([]domain.MarketListing, error)
	GetMarketStats(ctx context.Context, guildID string) (*domain.MarketStats, error)
	BeginTx(ctx context.Context) (MarketTx, error)
}

// MarketTx defines the interface for market transactions
type MarketTx interface {
	Tx
	ProfileTx

	// GetOwnedItemForUpdate loads an item instance with a row lock.
	// Returns domain.ErrItemNotFound when absent.
	GetOwnedItemForUpdate(ctx context.Context, itemID int64) (*domain.OwnedItem, error)

	// GetListingForUpdate loads a listing with a row lock.
	GetListingForUpdate(ctx context.Context, listingID int64) (*domain.MarketListing, error)

	// SetItemListed flips the listed flag on an item.
	SetItemListed(ctx context.Context, itemID int64, listed bool) error

	// InsertListing creates an ACTIVE listing and returns its id.
	InsertListing(ctx context.Context, listing *domain.MarketListing) (int64, error)

	// MarkListingSold performs the atomic ACTIVE->SOLD compare-and-set.
	// Exactly one caller can win; losers get domain.ErrListingNotActive.
	MarkListingSold(ctx context.Context, listingID int64, buyerID string, soldAt time.Time) error

	// MarkListingCancelled performs the atomic ACTIVE->CANCELLED
	// compare-and-set with the same single-winner guarantee.
	MarkListingCancelled(ctx context.Context, listingID int64) error

	// TransferOwnedItem moves an item instance to a new owner and
	// clears the listed flag.
	TransferOwnedItem(ctx context.Context, itemID int64, newOwnerID, guildID string) error
}
