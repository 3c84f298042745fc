package repository

import (
	"context"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
)

// Cases defines the interface for case-opening persistence
type Cases interface {
	GetTokenCount(ctx context.Context, userID, guildID string, kind domain.TokenKind, defID int) (int, error)
	GetUserTokens(ctx context.Context, userID, guildID string, kind domain.TokenKind) ([]domain.TokenStack, error)
	BeginTx(ctx context.Context) (CasesTx, error)
}

// CasesTx defines the interface for the atomic case-opening transaction
type CasesTx interface {
	Tx
	ProfileTx

	// ConsumeToken destroys exactly one token unit. Fails with
	// domain.ErrNoCaseOwned or domain.ErrNoKeyOwned (by kind) when the
	// user holds none; a unit is never consumed twice even under
	// concurrent opens.
	ConsumeToken(ctx context.Context, userID, guildID string, kind domain.TokenKind, defID int) error

	// GrantTokens creates qty token units for a user.
	GrantTokens(ctx context.Context, userID, guildID string, kind domain.TokenKind, defID, qty int) error

	// IncrementOpenedToday bumps the daily open counter, resetting it
	// on day rollover. Fails with domain.ErrDailyLimitReached, without
	// mutating, once the counter hits limit.
	IncrementOpenedToday(ctx context.Context, userID, guildID string, limit int) error

	// InsertOwnedItem creates a new item instance and returns its id.
	InsertOwnedItem(ctx context.Context, item *domain.OwnedItem) (int64, error)
}
