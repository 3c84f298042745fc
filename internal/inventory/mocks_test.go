package inventory

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
	"github.com/mrivera/CaseVaultBot_Go/internal/repository"
)

// MockRepository implements repository.Inventory for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetOwnedItem(ctx context.Context, itemID int64) (*domain.OwnedItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OwnedItem), args.Error(1)
}

func (m *MockRepository) ListOwnedItems(ctx context.Context, userID, guildID string, filter repository.InventoryFilter, limit, offset int) ([]domain.OwnedItem, int, error) {
	args := m.Called(ctx, userID, guildID, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.OwnedItem), args.Int(1), args.Error(2)
}

func (m *MockRepository) CountByRarity(ctx context.Context, userID, guildID string) (map[domain.Rarity]int, error) {
	args := m.Called(ctx, userID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.Rarity]int), args.Error(1)
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.InventoryTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.InventoryTx), args.Error(1)
}

// MockTx implements repository.InventoryTx for testing
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

func (m *MockTx) DeleteOwnedItem(ctx context.Context, itemID int64) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}
