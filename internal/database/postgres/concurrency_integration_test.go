package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
	"github.com/mrivera/CaseVaultBot_Go/internal/market"
)

// Concurrency tests run the real service flows against Postgres to
// verify the single-winner and no-double-spend guarantees hold under
// actual row locking, not just against mocks.

func TestMarketBuy_ConcurrentBuyers_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	pool := startTestDB(t)
	seedCatalog(ctx, t, pool)

	const guildID = "guild-1"
	const price = 500

	itemID := insertTestItem(ctx, t, pool, "seller", guildID, 0.1)

	economy := NewEconomyRepository(pool)
	marketRepo := NewMarketRepository(pool)
	svc := market.NewService(marketRepo, market.Config{
		FeePercent:         5,
		MinPrice:           10,
		MaxPrice:           1_000_000,
		MaxListingsPerUser: 20,
	})

	listing, err := svc.ListItem(ctx, "seller", guildID, itemID, price)
	require.NoError(t, err)

	const buyers = 10
	fundBuyers(ctx, t, economy, guildID, buyers, price)

	start := make(chan struct{})
	var wins, losses, failures int32
	var wg sync.WaitGroup
	wg.Add(buyers)
	for i := 0; i < buyers; i++ {
		go func(n int) {
			defer wg.Done()
			<-start
			_, err := svc.BuyItem(ctx, fmt.Sprintf("buyer-%d", n), guildID, listing.ID)
			switch {
			case err == nil:
				atomic.AddInt32(&wins, 1)
			case errors.Is(err, domain.ErrListingNotActive):
				atomic.AddInt32(&losses, 1)
			default:
				atomic.AddInt32(&failures, 1)
				t.Errorf("buyer %d: unexpected error: %v", n, err)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), wins, "exactly one buyer must win")
	assert.Equal(t, int32(buyers-1), losses)
	assert.Equal(t, int32(0), failures)

	// The seller is credited the proceeds exactly once and the fee is
	// burned: total coins in the guild drop by the fee.
	seller, err := economy.GetProfile(ctx, "seller", guildID)
	require.NoError(t, err)
	fee := domain.SaleFee(price, 5)
	assert.Equal(t, price-fee, seller.Coins)

	total := seller.Coins
	for i := 0; i < buyers; i++ {
		p, err := economy.GetProfile(ctx, fmt.Sprintf("buyer-%d", i), guildID)
		require.NoError(t, err)
		total += p.Coins
	}
	assert.Equal(t, buyers*price-fee, total)
}

func TestConsumeToken_ConcurrentOpens_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	pool := startTestDB(t)
	caseID := seedCatalog(ctx, t, pool)

	const guildID = "guild-1"
	const granted = 3
	const attempts = 10

	cases := NewCasesRepository(pool)

	tx, err := cases.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.GrantTokens(ctx, "opener", guildID, domain.TokenKindCase, caseID, granted))
	require.NoError(t, tx.Commit(ctx))

	start := make(chan struct{})
	var consumed, refused int32
	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			<-start
			tx, err := cases.BeginTx(ctx)
			if err != nil {
				t.Errorf("begin tx: %v", err)
				return
			}
			err = tx.ConsumeToken(ctx, "opener", guildID, domain.TokenKindCase, caseID)
			switch {
			case err == nil:
				if err := tx.Commit(ctx); err != nil {
					t.Errorf("commit: %v", err)
					return
				}
				atomic.AddInt32(&consumed, 1)
			case errors.Is(err, domain.ErrNoCaseOwned):
				_ = tx.Rollback(ctx)
				atomic.AddInt32(&refused, 1)
			default:
				_ = tx.Rollback(ctx)
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(granted), consumed, "every granted token is consumed exactly once")
	assert.Equal(t, int32(attempts-granted), refused)

	left, err := cases.GetTokenCount(ctx, "opener", guildID, domain.TokenKindCase, caseID)
	require.NoError(t, err)
	assert.Equal(t, 0, left)
}

func TestAdjustCoins_ConcurrentDebits_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	pool := startTestDB(t)

	const guildID = "guild-1"
	const balance = 50
	const debit = 20
	const attempts = 10

	economy := NewEconomyRepository(pool)

	tx, err := economy.BeginTx(ctx)
	require.NoError(t, err)
	_, err = tx.GetProfileForUpdate(ctx, "spender", guildID)
	require.NoError(t, err)
	_, err = tx.AdjustCoins(ctx, "spender", guildID, balance)
	require.NoError(t, err)
	require.NoError(t, tx.Commit(ctx))

	start := make(chan struct{})
	var spent, refused int32
	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			<-start
			tx, err := economy.BeginTx(ctx)
			if err != nil {
				t.Errorf("begin tx: %v", err)
				return
			}
			_, err = tx.AdjustCoins(ctx, "spender", guildID, -debit)
			switch {
			case err == nil:
				if err := tx.Commit(ctx); err != nil {
					t.Errorf("commit: %v", err)
					return
				}
				atomic.AddInt32(&spent, 1)
			case errors.Is(err, domain.ErrInsufficientFunds):
				_ = tx.Rollback(ctx)
				atomic.AddInt32(&refused, 1)
			default:
				_ = tx.Rollback(ctx)
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(balance/debit), spent)
	assert.Equal(t, int32(attempts-balance/debit), refused)

	p, err := economy.GetProfile(ctx, "spender", guildID)
	require.NoError(t, err)
	assert.Equal(t, balance%debit, p.Coins)
	assert.GreaterOrEqual(t, p.Coins, 0)
}

func fundBuyers(ctx context.Context, t *testing.T, economy *EconomyRepository, guildID string, n, coins int) {
	t.Helper()
	for i := 0; i < n; i++ {
		tx, err := economy.BeginTx(ctx)
		require.NoError(t, err)
		userID := fmt.Sprintf("buyer-%d", i)
		_, err = tx.GetProfileForUpdate(ctx, userID, guildID)
		require.NoError(t, err)
		_, err = tx.AdjustCoins(ctx, userID, guildID, coins)
		require.NoError(t, err)
		require.NoError(t, tx.Commit(ctx))
	}
}
