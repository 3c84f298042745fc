package handler

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/mrivera/CaseVaultBot_Go/internal/cases"
	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
	"github.com/mrivera/CaseVaultBot_Go/internal/inventory"
	"github.com/mrivera/CaseVaultBot_Go/internal/ledger"
	"github.com/mrivera/CaseVaultBot_Go/internal/market"
	"github.com/mrivera/CaseVaultBot_Go/internal/repository"
	"github.com/mrivera/CaseVaultBot_Go/internal/reward"
)

// MockCasesService is a mock implementation of cases.Service
type MockCasesService struct {
	mock.Mock
}

func (m *MockCasesService) OpenCase(ctx context.Context, userID, guildID string, caseID int) (*cases.OpenResult, error) {
	args := m.Called(ctx, userID, guildID, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cases.OpenResult), args.Error(1)
}

func (m *MockCasesService) GrantCase(ctx context.Context, userID, guildID string, caseID, qty int) error {
	args := m.Called(ctx, userID, guildID, caseID, qty)
	return args.Error(0)
}

func (m *MockCasesService) GrantKey(ctx context.Context, userID, guildID string, keyID, qty int) error {
	args := m.Called(ctx, userID, guildID, keyID, qty)
	return args.Error(0)
}

func (m *MockCasesService) GetUserCases(ctx context.Context, userID, guildID string) ([]domain.TokenStack, error) {
	args := m.Called(ctx, userID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TokenStack), args.Error(1)
}

func (m *MockCasesService) GetUserKeys(ctx context.Context, userID, guildID string) ([]domain.TokenStack, error) {
	args := m.Called(ctx, userID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TokenStack), args.Error(1)
}

func (m *MockCasesService) GetAvailableCases(ctx context.Context) ([]domain.CaseDefinition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CaseDefinition), args.Error(1)
}

func (m *MockCasesService) Purchase(ctx context.Context, userID, guildID string, kind domain.TokenKind, defID, qty int) (*cases.PurchaseResult, error) {
	args := m.Called(ctx, userID, guildID, kind, defID, qty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cases.PurchaseResult), args.Error(1)
}

func (m *MockCasesService) GetShop(ctx context.Context) (*cases.Shop, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cases.Shop), args.Error(1)
}

// MockMarketService is a mock implementation of market.Service
type MockMarketService struct {
	mock.Mock
}

func (m *MockMarketService) ListItem(ctx context.Context, sellerID, guildID string, itemID int64, price int) (*domain.MarketListing, error) {
	args := m.Called(ctx, sellerID, guildID, itemID, price)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarketListing), args.Error(1)
}

func (m *MockMarketService) CancelListing(ctx context.Context, sellerID, guildID string, listingID int64) error {
	args := m.Called(ctx, sellerID, guildID, listingID)
	return args.Error(0)
}

func (m *MockMarketService) BuyItem(ctx context.Context, buyerID, guildID string, listingID int64) (*market.PurchaseResult, error) {
	args := m.Called(ctx, buyerID, guildID, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*market.PurchaseResult), args.Error(1)
}

func (m *MockMarketService) Browse(ctx context.Context, filter domain.MarketFilter, page int) ([]domain.MarketListing, int, error) {
	args := m.Called(ctx, filter, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.MarketListing), args.Int(1), args.Error(2)
}

func (m *MockMarketService) GetUserListings(ctx context.Context, sellerID, guildID string) ([]domain.MarketListing, error) {
	args := m.Called(ctx, sellerID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MarketListing), args.Error(1)
}

func (m *MockMarketService) GetMarketStats(ctx context.Context, guildID string) (*domain.MarketStats, error) {
	args := m.Called(ctx, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MarketStats), args.Error(1)
}

// MockLedgerService is a mock implementation of ledger.Service
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetBalance(ctx context.Context, userID, guildID string) (int, error) {
	args := m.Called(ctx, userID, guildID)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerService) GetProfile(ctx context.Context, userID, guildID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockLedgerService) AddCoins(ctx context.Context, userID, guildID string, amount int, payload domain.LedgerPayload) (int, error) {
	args := m.Called(ctx, userID, guildID, amount, payload)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerService) RemoveCoins(ctx context.Context, userID, guildID string, amount int, payload domain.LedgerPayload) (int, error) {
	args := m.Called(ctx, userID, guildID, amount, payload)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerService) Transfer(ctx context.Context, fromID, toID, guildID string, amount int) error {
	args := m.Called(ctx, fromID, toID, guildID, amount)
	return args.Error(0)
}

func (m *MockLedgerService) AddXP(ctx context.Context, userID, guildID string, amount int) (*ledger.XPResult, error) {
	args := m.Called(ctx, userID, guildID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.XPResult), args.Error(1)
}

func (m *MockLedgerService) GetLevelProgress(ctx context.Context, userID, guildID string) (int, int64, int64, error) {
	args := m.Called(ctx, userID, guildID)
	return args.Int(0), args.Get(1).(int64), args.Get(2).(int64), args.Error(3)
}

func (m *MockLedgerService) GetLeaderboard(ctx context.Context, guildID string, limit, offset int) ([]domain.Profile, error) {
	args := m.Called(ctx, guildID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Profile), args.Error(1)
}

func (m *MockLedgerService) GetTransactionHistory(ctx context.Context, userID, guildID string, limit, offset int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, guildID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

// MockInventoryService is a mock implementation of inventory.Service
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) GetUserInventory(ctx context.Context, userID, guildID string, filter repository.InventoryFilter, page int) ([]domain.OwnedItem, int, error) {
	args := m.Called(ctx, userID, guildID, filter, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.OwnedItem), args.Int(1), args.Error(2)
}

func (m *MockInventoryService) GetItem(ctx context.Context, itemID int64) (*domain.OwnedItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OwnedItem), args.Error(1)
}

func (m *MockInventoryService) GetInventoryStats(ctx context.Context, userID, guildID string) (*inventory.Stats, error) {
	args := m.Called(ctx, userID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Stats), args.Error(1)
}

func (m *MockInventoryService) RecycleItem(ctx context.Context, userID, guildID string, itemID int64) (*inventory.RecycleResult, error) {
	args := m.Called(ctx, userID, guildID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.RecycleResult), args.Error(1)
}

// MockRewardService is a mock implementation of reward.Service
type MockRewardService struct {
	mock.Mock
}

func (m *MockRewardService) ClaimDaily(ctx context.Context, userID, guildID string) (*reward.DailyResult, error) {
	args := m.Called(ctx, userID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reward.DailyResult), args.Error(1)
}

func (m *MockRewardService) IsDailyAvailable(ctx context.Context, userID, guildID string) (bool, time.Time, error) {
	args := m.Called(ctx, userID, guildID)
	return args.Bool(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockRewardService) GrantStarterPack(ctx context.Context, userID, guildID string) (*reward.StarterPackResult, error) {
	args := m.Called(ctx, userID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reward.StarterPackResult), args.Error(1)
}

func (m *MockRewardService) GrantVoteReward(ctx context.Context, userID, guildID, source string) (int, error) {
	args := m.Called(ctx, userID, guildID, source)
	return args.Int(0), args.Error(1)
}
