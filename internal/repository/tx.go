package repository

import (
	"context"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
)

// Tx defines the interface for transactional operations
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// ProfileTx groups the profile and ledger mutations shared by every
// transactional flow. All methods operate on rows locked inside the
// surrounding transaction.
type ProfileTx interface {
	// GetProfileForUpdate loads a profile with a row lock, creating it
	// with zeroed balances on first touch.
	GetProfileForUpdate(ctx context.Context, userID, guildID string) (*domain.Profile, error)

	// AdjustCoins applies a signed delta to the coin balance and
	// returns the new balance. Fails with domain.ErrInsufficientFunds,
	// without mutating, when the result would be negative.
	AdjustCoins(ctx context.Context, userID, guildID string, delta int) (int, error)

	// UpdateXPLevel stores a recomputed XP total and level.
	UpdateXPLevel(ctx context.Context, userID, guildID string, newXP int64, newLevel int) error

	// AppendLedgerEntry writes one immutable audit row.
	AppendLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error

	// HasLedgerKind reports whether the user already has at least one
	// ledger entry of the given kind. Used for once-only grants; call
	// after GetProfileForUpdate so the check runs under the row lock.
	HasLedgerKind(ctx context.Context, userID, guildID string, kind domain.LedgerKind) (bool, error)
}
