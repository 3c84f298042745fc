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

// InventoryRepository implements repository.Inventory for PostgreSQL
type InventoryRepository struct {
	db *pgxpool.Pool
}

// NewInventoryRepository creates a new InventoryRepository
func NewInventoryRepository(db *pgxpool.Pool) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// InventoryTx implements repository.InventoryTx
type InventoryTx struct {
	profileTx
}

// BeginTx starts a new transaction
func (r *InventoryRepository) BeginTx(ctx context.Context) (repository.InventoryTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgFailedToBeginTx, err)
	}
	return &InventoryTx{profileTx{tx: tx}}, nil
}

const ownedItemSelect = `
	SELECT oi.item_id, oi.item_def_id, oi.owner_id, oi.guild_id, oi.wear,
	       oi.listed, oi.locked, oi.obtained_via, oi.created_at,
	       d.name, d.rarity, d.weapon, d.skin, d.collection, d.icon_url
	FROM owned_items oi
	JOIN item_defs d ON d.item_def_id = oi.item_def_id`

func scanOwnedItem(row pgx.Row) (*domain.OwnedItem, error) {
	var (
		item domain.OwnedItem
		def  domain.ItemDefinition
	)
	err := row.Scan(
		&item.ID, &item.ItemDefID, &item.OwnerID, &item.GuildID, &item.Wear,
		&item.Listed, &item.Locked, &item.ObtainedVia, &item.CreatedAt,
		&def.Name, &def.Rarity, &def.Weapon, &def.Skin, &def.Collection, &def.IconURL,
	)
	if err != nil {
		return nil, err
	}
	def.ID = item.ItemDefID
	item.Def = &def
	return &item, nil
}

func (r *InventoryRepository) GetOwnedItem(ctx context.Context, itemID int64) (*domain.OwnedItem, error) {
	item, err := scanOwnedItem(r.db.QueryRow(ctx, ownedItemSelect+` WHERE oi.item_id = $1`, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf(ErrMsgScanFailed, err)
	}
	return item, nil
}

// ListOwnedItems pages a user's unlisted items, rarest first. The total
// matching count rides along via a window function.
func (r *InventoryRepository) ListOwnedItems(ctx context.Context, userID, guildID string, filter repository.InventoryFilter, limit, offset int) ([]domain.OwnedItem, int, error) {
	rows, err := r.db.Query(ctx, `
		SELECT oi.item_id, oi.item_def_id, oi.owner_id, oi.guild_id, oi.wear,
		       oi.listed, oi.locked, oi.obtained_via, oi.created_at,
		       d.name, d.rarity, d.weapon, d.skin, d.collection, d.icon_url,
		       COUNT(*) OVER() AS total
		FROM owned_items oi
		JOIN item_defs d ON d.item_def_id = oi.item_def_id
		WHERE oi.owner_id = $1 AND oi.guild_id = $2 AND NOT oi.listed
		  AND ($3 = '' OR d.rarity = $3)
		  AND ($4 = '' OR d.name ILIKE '%' || $4 || '%')
		ORDER BY CASE d.rarity
		             WHEN 'EXOTIC' THEN 5
		             WHEN 'LEGENDARY' THEN 4
		             WHEN 'VERY_RARE' THEN 3
		             WHEN 'RARE' THEN 2
		             WHEN 'UNCOMMON' THEN 1
		             ELSE 0
		         END DESC,
		         oi.created_at DESC, oi.item_id DESC
		LIMIT $5 OFFSET $6`,
		userID, guildID, string(filter.Rarity), filter.Search, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf(ErrMsgQueryFailed, err)
	}
	defer rows.Close()

	var (
		items []domain.OwnedItem
		total int
	)
	for rows.Next() {
		var (
			item domain.OwnedItem
			def  domain.ItemDefinition
		)
		err := rows.Scan(
			&item.ID, &item.ItemDefID, &item.OwnerID, &item.GuildID, &item.Wear,
			&item.Listed, &item.Locked, &item.ObtainedVia, &item.CreatedAt,
			&def.Name, &def.Rarity, &def.Weapon, &def.Skin, &def.Collection, &def.IconURL,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf(ErrMsgScanFailed, err)
		}
		def.ID = item.ItemDefID
		item.Def = &def
		items = append(items, item)
	}
	return items, total, rows.Err()
}

func (r *InventoryRepository) CountByRarity(ctx context.Context, userID, guildID string) (map[domain.Rarity]int, error) {
	rows, err := r.db.Query(ctx, `
		SELECT d.rarity, COUNT(*)
		FROM owned_items oi
		JOIN item_defs d ON d.item_def_id = oi.item_def_id
		WHERE oi.owner_id = $1 AND oi.guild_id = $2
		GROUP BY d.rarity`,
		userID, guildID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgQueryFailed, err)
	}
	defer rows.Close()

	counts := make(map[domain.Rarity]int)
	for rows.Next() {
		var (
			rarity string
			count  int
		)
		if err := rows.Scan(&rarity, &count); err != nil {
			return nil, fmt.Errorf(ErrMsgScanFailed, err)
		}
		counts[domain.Rarity(rarity)] = count
	}
	return counts, rows.Err()
}

// getOwnedItemForUpdate locks the item row, then joins its catalog
// definition in a second read. FOR UPDATE cannot lock through the join.
func getOwnedItemForUpdate(ctx context.Context, tx pgx.Tx, itemID int64) (*domain.OwnedItem, error) {
	var item domain.OwnedItem
	err := tx.QueryRow(ctx,
		`SELECT item_id, item_def_id, owner_id, guild_id, wear, listed, locked, obtained_via, created_at
		 FROM owned_items
		 WHERE item_id = $1
		 FOR UPDATE`,
		itemID).Scan(
		&item.ID, &item.ItemDefID, &item.OwnerID, &item.GuildID, &item.Wear,
		&item.Listed, &item.Locked, &item.ObtainedVia, &item.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, mapConflict(err)
	}

	var def domain.ItemDefinition
	err = tx.QueryRow(ctx,
		`SELECT item_def_id, name, rarity, weapon, skin, collection, icon_url
		 FROM item_defs WHERE item_def_id = $1`,
		item.ItemDefID).Scan(
		&def.ID, &def.Name, &def.Rarity, &def.Weapon, &def.Skin, &def.Collection, &def.IconURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemDefNotFound
		}
		return nil, mapConflict(err)
	}
	item.Def = &def
	return &item, nil
}

func (t *InventoryTx) GetOwnedItemForUpdate(ctx context.Context, itemID int64) (*domain.OwnedItem, error) {
	return getOwnedItemForUpdate(ctx, t.tx, itemID)
}

func (t *InventoryTx) DeleteOwnedItem(ctx context.Context, itemID int64) error {
	tag, err := t.tx.Exec(ctx, `DELETE FROM owned_items WHERE item_id = $1`, itemID)
	if err != nil {
		return mapConflict(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}
