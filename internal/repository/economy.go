package repository

import (
	"context"
	"time"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
)

// Economy defines the interface for profile and ledger persistence
type Economy interface {
	GetProfile(ctx context.Context, userID, guildID string) (*domain.Profile, error)
	EnsureProfile(ctx context.Context, userID, guildID string) (*domain.Profile, error)
	GetLedgerEntries(ctx context.Context, userID, guildID string, limit, offset int) ([]domain.LedgerEntry, error)
	GetLeaderboard(ctx context.Context, guildID string, limit, offset int) ([]domain.Profile, error)
	BeginTx(ctx context.Context) (EconomyTx, error)
}

// EconomyTx defines the interface for economy transactions
type EconomyTx interface {
	Tx
	ProfileTx
	SetLastDailyAt(ctx context.Context, userID, guildID string, at time.Time) error
}
