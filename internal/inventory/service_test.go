package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
	"github.com/mrivera/CaseVaultBot_Go/internal/repository"
)

const (
	testUserID  = "user-123"
	testGuildID = "guild-1"
)

func rareItem(itemID int64, wear float64) *domain.OwnedItem {
	return &domain.OwnedItem{
		ID:        itemID,
		ItemDefID: 201,
		OwnerID:   testUserID,
		GuildID:   testGuildID,
		Wear:      wear,
		Def: &domain.ItemDefinition{
			ID:     201,
			Name:   "AK-47 | Redline",
			Rarity: domain.RarityRare,
		},
	}
}

func TestGetUserInventory_PagesAreTenItems(t *testing.T) {
	mockRepo := &MockRepository{}
	service := NewService(mockRepo)
	ctx := context.Background()
	filter := repository.InventoryFilter{}

	mockRepo.On("ListOwnedItems", ctx, testUserID, testGuildID, filter, DefaultPageSize, 0).
		Return([]domain.OwnedItem{}, 0, nil)
	mockRepo.On("ListOwnedItems", ctx, testUserID, testGuildID, filter, DefaultPageSize, 20).
		Return([]domain.OwnedItem{}, 0, nil)

	_, _, err := service.GetUserInventory(ctx, testUserID, testGuildID, filter, 1)
	require.NoError(t, err)
	_, _, err = service.GetUserInventory(ctx, testUserID, testGuildID, filter, 3)
	require.NoError(t, err)

	mockRepo.AssertExpectations(t)
}

func TestGetInventoryStats(t *testing.T) {
	mockRepo := &MockRepository{}
	service := NewService(mockRepo)
	ctx := context.Background()

	mockRepo.On("CountByRarity", ctx, testUserID, testGuildID).Return(map[domain.Rarity]int{
		domain.RarityUncommon: 7,
		domain.RarityRare:     2,
		domain.RarityExotic:   1,
	}, nil)

	stats, err := service.GetInventoryStats(ctx, testUserID, testGuildID)

	require.NoError(t, err)
	assert.Equal(t, 10, stats.TotalItems)
	assert.Equal(t, 2, stats.ByRarity[domain.RarityRare])
}

func TestRecycleItem_Success(t *testing.T) {
	mockRepo := &MockRepository{}
	mockTx := &MockTx{}
	service := NewService(mockRepo)
	ctx := context.Background()

	// RARE base 150 at Factory New wear (<= 0.07) pays 150 * 1.5 = 225.
	mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockTx.On("GetOwnedItemForUpdate", ctx, int64(42)).Return(rareItem(42, 0.05), nil)
	mockTx.On("DeleteOwnedItem", ctx, int64(42)).Return(nil)
	mockTx.On("GetProfileForUpdate", ctx, testUserID, testGuildID).Return(&domain.Profile{
		UserID: testUserID, GuildID: testGuildID,
	}, nil)
	mockTx.On("AdjustCoins", ctx, testUserID, testGuildID, 225).Return(225, nil)
	mockTx.On("AppendLedgerEntry", ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.Kind == domain.LedgerRecycle && e.Amount == 225
	})).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)
	mockTx.On("Rollback", ctx).Return(nil).Maybe()

	result, err := service.RecycleItem(ctx, testUserID, testGuildID, 42)

	require.NoError(t, err)
	assert.Equal(t, 225, result.Payout)
	assert.Equal(t, domain.RarityRare, result.Rarity)
	mockTx.AssertExpectations(t)
}

func TestRecycleItem_BattleScarredHalvesValue(t *testing.T) {
	mockRepo := &MockRepository{}
	mockTx := &MockTx{}
	service := NewService(mockRepo)
	ctx := context.Background()

	// RARE base 150 at Battle-Scarred wear (> 0.45) pays 150 * 0.5 = 75.
	mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockTx.On("GetOwnedItemForUpdate", ctx, int64(42)).Return(rareItem(42, 0.80), nil)
	mockTx.On("DeleteOwnedItem", ctx, int64(42)).Return(nil)
	mockTx.On("GetProfileForUpdate", ctx, testUserID, testGuildID).Return(&domain.Profile{
		UserID: testUserID, GuildID: testGuildID,
	}, nil)
	mockTx.On("AdjustCoins", ctx, testUserID, testGuildID, 75).Return(75, nil)
	mockTx.On("AppendLedgerEntry", ctx, mock.Anything).Return(nil)
	mockTx.On("Commit", ctx).Return(nil)
	mockTx.On("Rollback", ctx).Return(nil).Maybe()

	result, err := service.RecycleItem(ctx, testUserID, testGuildID, 42)

	require.NoError(t, err)
	assert.Equal(t, 75, result.Payout)
}

func TestRecycleItem_ListedItemRefused(t *testing.T) {
	mockRepo := &MockRepository{}
	mockTx := &MockTx{}
	service := NewService(mockRepo)
	ctx := context.Background()

	item := rareItem(42, 0.2)
	item.Listed = true

	mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockTx.On("GetOwnedItemForUpdate", ctx, int64(42)).Return(item, nil)
	mockTx.On("Rollback", ctx).Return(nil)

	_, err := service.RecycleItem(ctx, testUserID, testGuildID, 42)

	assert.ErrorIs(t, err, domain.ErrAlreadyListed)
	mockTx.AssertNotCalled(t, "DeleteOwnedItem", mock.Anything, mock.Anything)
}

func TestRecycleItem_NotOwner(t *testing.T) {
	mockRepo := &MockRepository{}
	mockTx := &MockTx{}
	service := NewService(mockRepo)
	ctx := context.Background()

	item := rareItem(42, 0.2)
	item.OwnerID = "someone-else"

	mockRepo.On("BeginTx", ctx).Return(mockTx, nil)
	mockTx.On("GetOwnedItemForUpdate", ctx, int64(42)).Return(item, nil)
	mockTx.On("Rollback", ctx).Return(nil)

	_, err := service.RecycleItem(ctx, testUserID, testGuildID, 42)

	assert.ErrorIs(t, err, domain.ErrNotOwner)
}
