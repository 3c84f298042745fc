package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
	"github.com/mrivera/CaseVaultBot_Go/internal/repository"
)

// CasesRepository implements repository.Cases for PostgreSQL
type CasesRepository struct {
	db *pgxpool.Pool
}

// NewCasesRepository creates a new CasesRepository
func NewCasesRepository(db *pgxpool.Pool) *CasesRepository {
	return &CasesRepository{db: db}
}

// CasesTx implements repository.CasesTx
type CasesTx struct {
	profileTx
}

// BeginTx starts a new transaction
func (r *CasesRepository) BeginTx(ctx context.Context) (repository.CasesTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgFailedToBeginTx, err)
	}
	return &CasesTx{profileTx{tx: tx}}, nil
}

func (r *CasesRepository) GetTokenCount(ctx context.Context, userID, guildID string, kind domain.TokenKind, defID int) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM tokens
		 WHERE user_id = $1 AND guild_id = $2 AND kind = $3 AND def_id = $4`,
		userID, guildID, string(kind), defID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgQueryFailed, err)
	}
	return count, nil
}

// GetUserTokens returns token stacks with display names joined from the
// matching definition table.
func (r *CasesRepository) GetUserTokens(ctx context.Context, userID, guildID string, kind domain.TokenKind) ([]domain.TokenStack, error) {
	rows, err := r.db.Query(ctx,
		`SELECT t.def_id,
		        COALESCE(c.name, k.name, '') AS name,
		        COUNT(*) AS quantity
		 FROM tokens t
		 LEFT JOIN case_defs c ON t.kind = 'case' AND c.case_id = t.def_id
		 LEFT JOIN key_defs k ON t.kind = 'key' AND k.key_id = t.def_id
		 WHERE t.user_id = $1 AND t.guild_id = $2 AND t.kind = $3
		 GROUP BY t.def_id, c.name, k.name
		 ORDER BY t.def_id`,
		userID, guildID, string(kind))
	if err != nil {
		return nil, fmt.Errorf(ErrMsgQueryFailed, err)
	}
	defer rows.Close()

	var stacks []domain.TokenStack
	for rows.Next() {
		stack := domain.TokenStack{Kind: kind}
		if err := rows.Scan(&stack.DefID, &stack.Name, &stack.Quantity); err != nil {
			return nil, fmt.Errorf(ErrMsgScanFailed, err)
		}
		stacks = append(stacks, stack)
	}
	return stacks, rows.Err()
}

// ConsumeToken locks and deletes exactly one token row. SKIP LOCKED
// makes concurrent opens take distinct rows instead of blocking, so a
// unit is never spent twice.
func (t *CasesTx) ConsumeToken(ctx context.Context, userID, guildID string, kind domain.TokenKind, defID int) error {
	var tokenID int64
	err := t.tx.QueryRow(ctx,
		`DELETE FROM tokens WHERE token_id = (
		     SELECT token_id FROM tokens
		     WHERE user_id = $1 AND guild_id = $2 AND kind = $3 AND def_id = $4
		     ORDER BY token_id
		     LIMIT 1
		     FOR UPDATE SKIP LOCKED
		 )
		 RETURNING token_id`,
		userID, guildID, string(kind), defID).Scan(&tokenID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if kind == domain.TokenKindKey {
				return domain.ErrNoKeyOwned
			}
			return domain.ErrNoCaseOwned
		}
		return mapConflict(err)
	}
	return nil
}

func (t *CasesTx) GrantTokens(ctx context.Context, userID, guildID string, kind domain.TokenKind, defID, qty int) error {
	_, err := t.tx.Exec(ctx,
		`INSERT INTO tokens (user_id, guild_id, kind, def_id)
		 SELECT $1, $2, $3, $4 FROM generate_series(1, $5)`,
		userID, guildID, string(kind), defID, qty)
	return mapConflict(err)
}

// IncrementOpenedToday bumps the daily counter, resetting it when the
// stored day is not today (UTC). The WHERE clause refuses the bump once
// today's counter is at the limit, leaving the row untouched.
func (t *CasesTx) IncrementOpenedToday(ctx context.Context, userID, guildID string, limit int) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE profiles SET
		     cases_opened_today = CASE
		         WHEN last_open_day IS DISTINCT FROM (NOW() AT TIME ZONE 'UTC')::date THEN 1
		         ELSE cases_opened_today + 1
		     END,
		     last_open_day = (NOW() AT TIME ZONE 'UTC')::date
		 WHERE user_id = $1 AND guild_id = $2
		   AND (last_open_day IS DISTINCT FROM (NOW() AT TIME ZONE 'UTC')::date
		        OR cases_opened_today < $3)`,
		userID, guildID, limit)
	if err != nil {
		return mapConflict(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDailyLimitReached
	}
	return nil
}

func (t *CasesTx) InsertOwnedItem(ctx context.Context, item *domain.OwnedItem) (int64, error) {
	var itemID int64
	err := t.tx.QueryRow(ctx,
		`INSERT INTO owned_items (item_def_id, owner_id, guild_id, wear, obtained_via)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING item_id`,
		item.ItemDefID, item.OwnerID, item.GuildID, item.Wear, item.ObtainedVia).Scan(&itemID)
	if err != nil {
		return 0, mapConflict(err)
	}
	return itemID, nil
}
