package cases

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
	"github.com/mrivera/CaseVaultBot_Go/internal/repository"
)

// MockRepository implements repository.Cases for testing
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetTokenCount(ctx context.Context, userID, guildID string, kind domain.TokenKind, defID int) (int, error) {
	args := m.Called(ctx, userID, guildID, kind, defID)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) GetUserTokens(ctx context.Context, userID, guildID string, kind domain.TokenKind) ([]domain.TokenStack, error) {
	args := m.Called(ctx, userID, guildID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TokenStack), args.Error(1)
}

func (m *MockRepository) BeginTx(ctx context.Context) (repository.CasesTx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(repository.CasesTx), args.Error(1)
}

// MockTx implements repository.CasesTx for testing
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

func (m *MockTx) ConsumeToken(ctx context.Context, userID, guildID string, kind domain.TokenKind, defID int) error {
	args := m.Called(ctx, userID, guildID, kind, defID)
	return args.Error(0)
}

func (m *MockTx) GrantTokens(ctx context.Context, userID, guildID string, kind domain.TokenKind, defID, qty int) error {
	args := m.Called(ctx, userID, guildID, kind, defID, qty)
	return args.Error(0)
}

func (m *MockTx) IncrementOpenedToday(ctx context.Context, userID, guildID string, limit int) error {
	args := m.Called(ctx, userID, guildID, limit)
	return args.Error(0)
}

func (m *MockTx) InsertOwnedItem(ctx context.Context, item *domain.OwnedItem) (int64, error) {
	args := m.Called(ctx, item)
	return args.Get(0).(int64), args.Error(1)
}

// MockCatalog implements Catalog for testing
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetCase(ctx context.Context, caseID int) (*domain.CaseDefinition, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CaseDefinition), args.Error(1)
}

func (m *MockCatalog) GetItemDefinition(ctx context.Context, itemDefID int) (*domain.ItemDefinition, error) {
	args := m.Called(ctx, itemDefID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ItemDefinition), args.Error(1)
}

func (m *MockCatalog) GetAllCases(ctx context.Context) ([]domain.CaseDefinition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CaseDefinition), args.Error(1)
}

func (m *MockCatalog) GetKey(ctx context.Context, keyID int) (*domain.KeyDefinition, error) {
	args := m.Called(ctx, keyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.KeyDefinition), args.Error(1)
}

func (m *MockCatalog) GetAllKeys(ctx context.Context) ([]domain.KeyDefinition, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.KeyDefinition), args.Error(1)
}
