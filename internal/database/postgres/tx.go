package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
)

const profileColumns = `user_id, guild_id, coins, xp, level, cases_opened_today, last_open_day, last_daily_at, created_at`

// profileTx implements repository.ProfileTx over an open pgx
// transaction. Every per-service transaction type embeds it.
type profileTx struct {
	tx pgx.Tx
}

func (t *profileTx) Commit(ctx context.Context) error {
	return mapConflict(t.tx.Commit(ctx))
}

func (t *profileTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// GetProfileForUpdate locks the profile row, creating it with zeroed
// balances on first touch. The insert-then-lock order means two
// first-touch transactions serialize on the primary key.
func (t *profileTx) GetProfileForUpdate(ctx context.Context, userID, guildID string) (*domain.Profile, error) {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO profiles (user_id, guild_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, guild_id) DO NOTHING`,
		userID, guildID)
	if err != nil {
		return nil, mapConflict(err)
	}

	row := t.tx.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles
		 WHERE user_id = $1 AND guild_id = $2 FOR UPDATE`,
		userID, guildID)
	profile, err := scanProfile(row)
	if err != nil {
		return nil, mapConflict(err)
	}
	return profile, nil
}

// AdjustCoins applies a signed delta with the non-negative balance
// check folded into the WHERE clause. The profile row exists by the
// time this runs, so an empty update means the balance would go
// negative.
func (t *profileTx) AdjustCoins(ctx context.Context, userID, guildID string, delta int) (int, error) {
	var balance int
	err := t.tx.QueryRow(ctx,
		`UPDATE profiles SET coins = coins + $3
		 WHERE user_id = $1 AND guild_id = $2 AND coins + $3 >= 0
		 RETURNING coins`,
		userID, guildID, delta).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrInsufficientFunds
		}
		return 0, mapConflict(err)
	}
	return balance, nil
}

func (t *profileTx) UpdateXPLevel(ctx context.Context, userID, guildID string, newXP int64, newLevel int) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE profiles SET xp = $3, level = $4
		 WHERE user_id = $1 AND guild_id = $2`,
		userID, guildID, newXP, newLevel)
	if err != nil {
		return mapConflict(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}

func (t *profileTx) AppendLedgerEntry(ctx context.Context, entry domain.LedgerEntry) error {
	var payload []byte
	if entry.Payload != nil {
		raw, err := json.Marshal(entry.Payload)
		if err != nil {
			return fmt.Errorf("failed to marshal ledger payload: %w", err)
		}
		payload = raw
	}

	_, err := t.tx.Exec(ctx,
		`INSERT INTO ledger_entries (user_id, guild_id, kind, amount, xp_amount, payload)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		entry.UserID, entry.GuildID, string(entry.Kind), entry.Amount, entry.XPAmount, payload)
	return mapConflict(err)
}

func (t *profileTx) HasLedgerKind(ctx context.Context, userID, guildID string, kind domain.LedgerKind) (bool, error) {
	var exists bool
	err := t.tx.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM ledger_entries
		   WHERE user_id = $1 AND guild_id = $2 AND kind = $3
		 )`,
		userID, guildID, string(kind)).Scan(&exists)
	if err != nil {
		return false, mapConflict(err)
	}
	return exists, nil
}

// scanProfile reads one profile row from either a pool or tx query.
func scanProfile(row pgx.Row) (*domain.Profile, error) {
	var p domain.Profile
	err := row.Scan(
		&p.UserID,
		&p.GuildID,
		&p.Coins,
		&p.XP,
		&p.Level,
		&p.CasesOpenedToday,
		&p.LastOpenDay,
		&p.LastDailyAt,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf(ErrMsgScanFailed, err)
	}
	return &p, nil
}
