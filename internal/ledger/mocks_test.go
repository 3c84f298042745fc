package ledger

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
	"github.com/mrivera/CaseVaultBot_Go/internal/repository"
)

// MockRepository implements repository.Economy for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetProfile(ctx context.Context, userID, guildID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockRepository) EnsureProfile(ctx context.Context, userID, guildID string) (*domain.Profile, error) {
	args := m.Called(ctx, userID, guildID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockRepository) GetLedgerEntries(ctx context.Context, userID, guildID string, limit, offset int) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, userID, guildID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockRepository) GetLeaderboard(ctx context.Context, guildID string, limit, offset int) ([]domain.Profile, error) {
	args := m.Called(ctx, guildID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Profile), args.Error(1)
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.EconomyTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.EconomyTx), args.Error(1)
}

// MockTx implements repository.EconomyTx for testing
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

func (m *MockTx) SetLastDailyAt(ctx context.Context, userID, guildID string, at time.Time) error {
	args := m.Called(ctx, userID, guildID, at)
	return args.Error(0)
}
