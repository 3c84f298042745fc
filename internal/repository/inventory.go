package repository

import (
	"context"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
)

// InventoryFilter narrows inventory queries. Zero values mean "no filter".
type InventoryFilter struct {
	Rarity domain.Rarity
	Search string
}

// Inventory defines the interface for owned item persistence
type Inventory interface {
	GetOwnedItem(ctx context.Context, itemID int64) (*domain.OwnedItem, error)
	ListOwnedItems(ctx context.Context, userID, guildID string, filter InventoryFilter, limit, offset int) ([]domain.OwnedItem, int, error)
	CountByRarity(ctx context.Context, userID, guildID string) (map[domain.Rarity]int, error)
	BeginTx(ctx context.Context) (InventoryTx, error)
}

// InventoryTx defines the interface for inventory transactions
type InventoryTx interface {
	Tx
	ProfileTx

	GetOwnedItemForUpdate(ctx context.Context, itemID int64) (*domain.OwnedItem, error)

	// DeleteOwnedItem destroys an item instance (recycle/burn).
	DeleteOwnedItem(ctx context.Context, itemID int64) error
}
