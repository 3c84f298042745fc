package inventory

import (
	"context"
	"fmt"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
	"github.com/mrivera/CaseVaultBot_Go/internal/logger"
	"github.com/mrivera/CaseVaultBot_Go/internal/metrics"
	"github.com/mrivera/CaseVaultBot_Go/internal/repository"
)

// RecycleResult is the outcome of burning an item for coins.
type RecycleResult struct {
	ItemID     int64         `json:"item_id"`
	Rarity     domain.Rarity `json:"rarity"`
	Wear       float64       `json:"wear"`
	Payout     int           `json:"payout"`
	NewBalance int           `json:"new_balance"`
}

// Stats summarizes a user's item holdings.
type Stats struct {
	TotalItems int                   `json:"total_items"`
	ByRarity   map[domain.Rarity]int `json:"by_rarity"`
}

// Service exposes a user's item inventory.
type Service interface {
	// GetUserInventory pages through a user's unlisted items. Pages are
	// 1-based.
	GetUserInventory(ctx context.Context, userID, guildID string, filter repository.InventoryFilter, page int) ([]domain.OwnedItem, int, error)

	// GetItem returns one owned item with its catalog definition.
	GetItem(ctx context.Context, itemID int64) (*domain.OwnedItem, error)

	// GetInventoryStats returns per-rarity counts for a user.
	GetInventoryStats(ctx context.Context, userID, guildID string) (*Stats, error)

	// RecycleItem destroys an item for its wear-adjusted coin value.
	// Listed or locked items cannot be recycled.
	RecycleItem(ctx context.Context, userID, guildID string, itemID int64) (*RecycleResult, error)
}

type service struct {
	repo repository.Inventory
}

// NewService creates an inventory service.
func NewService(repo repository.Inventory) Service {
	return &service{repo: repo}
}

func (s *service) GetUserInventory(ctx context.Context, userID, guildID string, filter repository.InventoryFilter, page int) ([]domain.OwnedItem, int, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * DefaultPageSize
	return s.repo.ListOwnedItems(ctx, userID, guildID, filter, DefaultPageSize, offset)
}

func (s *service) GetItem(ctx context.Context, itemID int64) (*domain.OwnedItem, error) {
	return s.repo.GetOwnedItem(ctx, itemID)
}

func (s *service) GetInventoryStats(ctx context.Context, userID, guildID string) (*Stats, error) {
	counts, err := s.repo.CountByRarity(ctx, userID, guildID)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	return &Stats{TotalItems: total, ByRarity: counts}, nil
}

func (s *service) RecycleItem(ctx context.Context, userID, guildID string, itemID int64) (*RecycleResult, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	item, err := tx.GetOwnedItemForUpdate(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != userID || item.GuildID != guildID {
		return nil, domain.ErrNotOwner
	}
	if item.Listed {
		return nil, domain.ErrAlreadyListed
	}
	if item.Locked {
		return nil, domain.ErrItemLocked
	}
	if item.Def == nil {
		return nil, domain.ErrItemDefNotFound
	}

	payout := domain.RecycleValue(item.Def.Rarity, item.Wear)

	if err := tx.DeleteOwnedItem(ctx, itemID); err != nil {
		return nil, err
	}

	if _, err := tx.GetProfileForUpdate(ctx, userID, guildID); err != nil {
		return nil, err
	}
	newBalance, err := tx.AdjustCoins(ctx, userID, guildID, payout)
	if err != nil {
		return nil, err
	}

	entry := domain.LedgerEntry{
		UserID:  userID,
		GuildID: guildID,
		Kind:    domain.LedgerRecycle,
		Amount:  payout,
		Payload: domain.RecyclePayload{
			ItemID:    itemID,
			ItemDefID: item.ItemDefID,
			Rarity:    item.Def.Rarity,
			Wear:      item.Wear,
		},
	}
	if err := tx.AppendLedgerEntry(ctx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	metrics.RecordRecycle(string(item.Def.Rarity), payout)
	logger.FromContext(ctx).Info(LogMsgItemRecycled,
		"userID", userID, "itemID", itemID, "rarity", item.Def.Rarity, "payout", payout)

	return &RecycleResult{
		ItemID:     itemID,
		Rarity:     item.Def.Rarity,
		Wear:       item.Wear,
		Payout:     payout,
		NewBalance: newBalance,
	}, nil
}
