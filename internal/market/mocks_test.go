package market

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
	"github.com/mrivera/CaseVaultBot_Go/internal/repository"
)

// MockRepository implements repository.Market for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetListing(ctx context.Context, listingID int64) (*domain.MarketListing, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarketListing), args.Error(1)
}

func (m *MockRepository) CountActiveListings(ctx context.Context, sellerID, guildID string) (int, error) {
	args := m.Called(ctx, sellerID, guildID)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) BrowseListings(ctx context.Context, filter domain.MarketFilter, limit, offset int) ([]domain.MarketListing, int, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.MarketListing), args.Int(1), args.Error(2)
}

func (m *MockRepository) GetUserListings(ctx context.Context, sellerID, guildID string) ([]domain.MarketListing, error) {
	args := m.Called(ctx, sellerID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MarketListing), args.Error(1)
}

func (m *MockRepository) GetMarketStats(ctx context.Context, guildID string) (*domain.MarketStats, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarketStats), args.Error(1)
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.MarketTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.MarketTx), args.Error(1)
}

// MockTx implements repository.MarketTx for testing
type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTx) GetProfileForUpdate(ctx context.Context, userID, guildID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockTx) AdjustCoins(ctx context.Context, userID, guildID string, delta int) (int, error) {
	args := m.Called(ctx, userID, guildID, delta)
	return args.Int(0), args.Error(1)
}

func (m *MockTx) UpdateXPLevel(ctx context.Context, userID, guildID string, newXP int64, newLevel int) error {
	args := m.Called(ctx, userID, guildID, newXP, newLevel)
	return args.Error(0)
}

func (m *MockTx) AppendLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockTx) HasLedgerKind(ctx context.Context, userID, guildID string, kind domain.LedgerKind) (bool, error) {
	args := m.Called(ctx, userID, guildID, kind)
	return args.Bool(0), args.Error(1)
}

func (m *MockTx) GetOwnedItemForUpdate(ctx context.Context, itemID int64) (*domain.OwnedItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OwnedItem), args.Error(1)
}

func (m *MockTx) GetListingForUpdate(ctx context.Context, listingID int64) (*domain.MarketListing, error) {
	args := m.Called(ctx, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarketListing), args.Error(1)
}

func (m *MockTx) SetItemListed(ctx context.Context, itemID int64, listed bool) error {
	args := m.Called(ctx, itemID, listed)
	return args.Error(0)
}

func (m *MockTx) InsertListing(ctx context.Context, listing *domain.MarketListing) (int64, error) {
	args := m.Called(ctx, listing)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTx) MarkListingSold(ctx context.Context, listingID int64, buyerID string, soldAt time.Time) error {
	args := m.Called(ctx, listingID, buyerID, soldAt)
	return args.Error(0)
}

func (m *MockTx) MarkListingCancelled(ctx context.Context, listingID int64) error {
	args := m.Called(ctx, listingID)
	return args.Error(0)
}

func (m *MockTx) TransferOwnedItem(ctx context.Context, itemID int64, newOwnerID, guildID string) error {
	args := m.Called(ctx, itemID, newOwnerID, guildID)
	return args.Error(0)
}
