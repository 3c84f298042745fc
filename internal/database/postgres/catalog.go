package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
)

// CatalogRepository implements repository.Catalog for PostgreSQL
type CatalogRepository struct {
	db *pgxpool.Pool
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) UpsertItemDefinition(ctx context.Context, def *domain.ItemDefinition) (int, error) {
	_, err := r.db.Exec(ctx, `
		INSERT INTO item_defs (item_def_id, name, rarity, weapon, skin, collection, icon_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (item_def_id) DO UPDATE SET
			name = EXCLUDED.name,
			rarity = EXCLUDED.rarity,
			weapon = EXCLUDED.weapon,
			skin = EXCLUDED.skin,
			collection = EXCLUDED.collection,
			icon_url = EXCLUDED.icon_url`,
		def.ID, def.Name, string(def.Rarity), def.Weapon, def.Skin, def.Collection, def.IconURL)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert item definition %d: %w", def.ID, err)
	}
	return def.ID, nil
}

func (r *CatalogRepository) UpsertCaseDefinition(ctx context.Context, def *domain.CaseDefinition) error {
	dropTable, err := json.Marshal(def.DropTable)
	if err != nil {
		return fmt.Errorf("failed to encode drop table for case %d: %w", def.ID, err)
	}
	pools, err := json.Marshal(def.Pools)
	if err != nil {
		return fmt.Errorf("failed to encode pools for case %d: %w", def.ID, err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO case_defs (case_id, name, description, collection, key_id, icon_url, price, drop_table, pools)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (case_id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			collection = EXCLUDED.collection,
			key_id = EXCLUDED.key_id,
			icon_url = EXCLUDED.icon_url,
			price = EXCLUDED.price,
			drop_table = EXCLUDED.drop_table,
			pools = EXCLUDED.pools`,
		def.ID, def.Name, def.Description, def.Collection, def.KeyID, def.IconURL, def.Price, dropTable, pools)
	if err != nil {
		return fmt.Errorf("failed to upsert case definition %d: %w", def.ID, err)
	}
	return nil
}

func (r *CatalogRepository) UpsertKeyDefinition(ctx context.Context, def *domain.KeyDefinition) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO key_defs (key_id, name, price)
		VALUES ($1, $2, $3)
		ON CONFLICT (key_id) DO UPDATE SET
			name = EXCLUDED.name,
			price = EXCLUDED.price`,
		def.ID, def.Name, def.Price)
	if err != nil {
		return fmt.Errorf("failed to upsert key definition %d: %w", def.ID, err)
	}
	return nil
}

func (r *CatalogRepository) GetItemDefinition(ctx context.Context, itemDefID int) (*domain.ItemDefinition, error) {
	var def domain.ItemDefinition
	err := r.db.QueryRow(ctx, `
		SELECT item_def_id, name, rarity, weapon, skin, collection, icon_url
		FROM item_defs WHERE item_def_id = $1`,
		itemDefID).Scan(
		&def.ID, &def.Name, &def.Rarity, &def.Weapon, &def.Skin, &def.Collection, &def.IconURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemDefNotFound
		}
		return nil, fmt.Errorf(ErrMsgScanFailed, err)
	}
	return &def, nil
}

func (r *CatalogRepository) GetCaseDefinition(ctx context.Context, caseID int) (*domain.CaseDefinition, error) {
	def, err := scanCaseDefinition(r.db.QueryRow(ctx, caseDefSelect+` WHERE case_id = $1`, caseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCaseNotFound
		}
		return nil, err
	}
	return def, nil
}

func (r *CatalogRepository) GetAllCaseDefinitions(ctx context.Context) ([]domain.CaseDefinition, error) {
	rows, err := r.db.Query(ctx, caseDefSelect+` ORDER BY case_id`)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgQueryFailed, err)
	}
	defer rows.Close()

	var defs []domain.CaseDefinition
	for rows.Next() {
		def, err := scanCaseDefinition(rows)
		if err != nil {
			return nil, err
		}
		defs = append(defs, *def)
	}
	return defs, rows.Err()
}

func (r *CatalogRepository) GetKeyDefinition(ctx context.Context, keyID int) (*domain.KeyDefinition, error) {
	var def domain.KeyDefinition
	err := r.db.QueryRow(ctx, `
		SELECT key_id, name, price FROM key_defs WHERE key_id = $1`,
		keyID).Scan(&def.ID, &def.Name, &def.Price)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, fmt.Errorf(ErrMsgScanFailed, err)
	}
	return &def, nil
}

func (r *CatalogRepository) GetAllKeyDefinitions(ctx context.Context) ([]domain.KeyDefinition, error) {
	rows, err := r.db.Query(ctx, `
		SELECT key_id, name, price FROM key_defs ORDER BY key_id`)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgQueryFailed, err)
	}
	defer rows.Close()

	var defs []domain.KeyDefinition
	for rows.Next() {
		var def domain.KeyDefinition
		if err := rows.Scan(&def.ID, &def.Name, &def.Price); err != nil {
			return nil, fmt.Errorf(ErrMsgScanFailed, err)
		}
		defs = append(defs, def)
	}
	return defs, rows.Err()
}

const caseDefSelect = `
	SELECT case_id, name, description, collection, key_id, icon_url, price, drop_table, pools
	FROM case_defs`

func scanCaseDefinition(row pgx.Row) (*domain.CaseDefinition, error) {
	var (
		def       domain.CaseDefinition
		dropTable []byte
		pools     []byte
	)
	err := row.Scan(&def.ID, &def.Name, &def.Description, &def.Collection,
		&def.KeyID, &def.IconURL, &def.Price, &dropTable, &pools)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf(ErrMsgScanFailed, err)
	}
	if err := json.Unmarshal(dropTable, &def.DropTable); err != nil {
		return nil, fmt.Errorf("failed to decode drop table for case %d: %w", def.ID, err)
	}
	if err := json.Unmarshal(pools, &def.Pools); err != nil {
		return nil, fmt.Errorf("failed to decode pools for case %d: %w", def.ID, err)
	}
	return &def, nil
}
