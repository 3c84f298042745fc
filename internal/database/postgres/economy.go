package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
	"github.com/mrivera/CaseVaultBot_Go/internal/repository"
)

// EconomyRepository implements repository.Economy for PostgreSQL
type EconomyRepository struct {
	db *pgxpool.Pool
}

// NewEconomyRepository creates a new EconomyRepository
func NewEconomyRepository(db *pgxpool.Pool) *EconomyRepository {
	return &EconomyRepository{db: db}
}

// EconomyTx implements repository.EconomyTx
type EconomyTx struct {
	profileTx
}

// BeginTx starts a new transaction
func (r *EconomyRepository) BeginTx(ctx context.Context) (repository.EconomyTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgFailedToBeginTx, err)
	}
	return &EconomyTx{profileTx{tx: tx}}, nil
}

func (r *EconomyRepository) GetProfile(ctx context.Context, userID, guildID string) (*domain.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles
		 WHERE user_id = $1 AND guild_id = $2`,
		userID, guildID)
	return scanProfile(row)
}

// EnsureProfile returns the profile, creating an empty one when absent.
func (r *EconomyRepository) EnsureProfile(ctx context.Context, userID, guildID string) (*domain.Profile, error) {
	profile, err := r.GetProfile(ctx, userID, guildID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, err
	}

	row := r.db.QueryRow(ctx,
		`INSERT INTO profiles (user_id, guild_id) VALUES ($1, $2)
		 ON CONFLICT (user_id, guild_id) DO UPDATE SET user_id = EXCLUDED.user_id
		 RETURNING `+profileColumns,
		userID, guildID)
	return scanProfile(row)
}

func (r *EconomyRepository) GetLedgerEntries(ctx context.Context, userID, guildID string, limit, offset int) ([]domain.LedgerEntry, error) {
	rows, err := r.db.Query(ctx,
		`SELECT ledger_id, user_id, guild_id, kind, amount, xp_amount, payload, created_at
		 FROM ledger_entries
		 WHERE user_id = $1 AND guild_id = $2
		 ORDER BY created_at DESC, ledger_id DESC
		 LIMIT $3 OFFSET $4`,
		userID, guildID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgQueryFailed, err)
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var (
			e    domain.LedgerEntry
			kind string
			raw  []byte
		)
		if err := rows.Scan(&e.ID, &e.UserID, &e.GuildID, &kind, &e.Amount, &e.XPAmount, &raw, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf(ErrMsgScanFailed, err)
		}
		e.Kind = domain.LedgerKind(kind)
		payload, err := domain.DecodeLedgerPayload(e.Kind, raw)
		if err != nil {
			return nil, err
		}
		e.Payload = payload
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *EconomyRepository) GetLeaderboard(ctx context.Context, guildID string, limit, offset int) ([]domain.Profile, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+profileColumns+` FROM profiles
		 WHERE guild_id = $1
		 ORDER BY level DESC, xp DESC, user_id
		 LIMIT $2 OFFSET $3`,
		guildID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgQueryFailed, err)
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.UserID, &p.GuildID, &p.Coins, &p.XP, &p.Level,
			&p.CasesOpenedToday, &p.LastOpenDay, &p.LastDailyAt, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf(ErrMsgScanFailed, err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// SetLastDailyAt stamps the daily reward cooldown inside a transaction.
func (t *EconomyTx) SetLastDailyAt(ctx context.Context, userID, guildID string, at time.Time) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE profiles SET last_daily_at = $3
		 WHERE user_id = $1 AND guild_id = $2`,
		userID, guildID, at)
	if err != nil {
		return mapConflict(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
