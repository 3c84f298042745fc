package market

import (
	"context"
	"fmt"
	"time"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
	"github.com/mrivera/CaseVaultBot_Go/internal/logger"
	"github.com/mrivera/CaseVaultBot_Go/internal/metrics"
	"github.com/mrivera/CaseVaultBot_Go/internal/repository"
)

// Config carries the market tuning knobs.
type Config struct {
	FeePercent         int
	MinPrice           int
	MaxPrice           int
	MaxListingsPerUser int
}

// PurchaseResult is the outcome of a completed buy.
type PurchaseResult struct {
	Listing    *domain.MarketListing `json:"listing"`
	Price      int                   `json:"price"`
	Fee        int                   `json:"fee"`
	Proceeds   int                   `json:"proceeds"`
	NewBalance int                   `json:"new_balance"`
}

// Service is the player-to-player item market.
type Service interface {
	// ListItem puts an owned item up for sale at a fixed price. The
	// listing snapshots the fee percent in force at creation time.
	ListItem(ctx context.Context, sellerID, guildID string, itemID int64, price int) (*domain.MarketListing, error)

	// CancelListing withdraws an ACTIVE listing. Only the seller may
	// cancel; a SOLD or CANCELLED listing stays terminal.
	CancelListing(ctx context.Context, sellerID, guildID string, listingID int64) error

	// BuyItem purchases an ACTIVE listing. The buyer pays the full
	// price, the seller receives price minus the burned fee, and the
	// item changes owner, all atomically. Under concurrent buys exactly
	// one buyer wins; the rest get domain.ErrListingNotActive.
	BuyItem(ctx context.Context, buyerID, guildID string, listingID int64) (*PurchaseResult, error)

	// Browse pages through ACTIVE listings, newest first. Pages are
	// 1-based.
	Browse(ctx context.Context, filter domain.MarketFilter, page int) ([]domain.MarketListing, int, error)

	// GetUserListings returns a seller's listings in every state.
	GetUserListings(ctx context.Context, sellerID, guildID string) ([]domain.MarketListing, error)

	// GetMarketStats returns an aggregate snapshot for a guild.
	GetMarketStats(ctx context.Context, guildID string) (*domain.MarketStats, error)
}

type service struct {
	repo repository.Market
	cfg  Config
}

// NewService creates a market service.
func NewService(repo repository.Market, cfg Config) Service {
	return &service{repo: repo, cfg: cfg}
}

func (s *service) ListItem(ctx context.Context, sellerID, guildID string, itemID int64, price int) (*domain.MarketListing, error) {
	if price < s.cfg.MinPrice || price > s.cfg.MaxPrice {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", domain.ErrInvalidPrice, price, s.cfg.MinPrice, s.cfg.MaxPrice)
	}

	active, err := s.repo.CountActiveListings(ctx, sellerID, guildID)
	if err != nil {
		return nil, err
	}
	if active >= s.cfg.MaxListingsPerUser {
		return nil, domain.ErrMaxListingsReached
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	item, err := tx.GetOwnedItemForUpdate(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != sellerID || item.GuildID != guildID {
		return nil, domain.ErrNotOwner
	}
	if item.Listed {
		return nil, domain.ErrAlreadyListed
	}
	if item.Locked {
		return nil, domain.ErrItemLocked
	}

	if err := tx.SetItemListed(ctx, itemID, true); err != nil {
		return nil, err
	}

	listing := &domain.MarketListing{
		SellerID:   sellerID,
		GuildID:    guildID,
		ItemID:     itemID,
		Price:      price,
		FeePercent: s.cfg.FeePercent,
		State:      domain.ListingActive,
	}
	listingID, err := tx.InsertListing(ctx, listing)
	if err != nil {
		return nil, err
	}
	listing.ID = listingID
	listing.Item = item

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	metrics.RecordListingCreated()
	logger.FromContext(ctx).Info(LogMsgItemListed,
		"sellerID", sellerID, "itemID", itemID, "listingID", listingID, "price", price)
	return listing, nil
}

func (s *service) CancelListing(ctx context.Context, sellerID, guildID string, listingID int64) error {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	listing, err := tx.GetListingForUpdate(ctx, listingID)
	if err != nil {
		return err
	}
	if listing.SellerID != sellerID || listing.GuildID != guildID {
		return domain.ErrNotOwner
	}

	if err := tx.MarkListingCancelled(ctx, listingID); err != nil {
		return err
	}
	if err := tx.SetItemListed(ctx, listing.ItemID, false); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgListingCancelled,
		"sellerID", sellerID, "listingID", listingID)
	return nil
}

func (s *service) BuyItem(ctx context.Context, buyerID, guildID string, listingID int64) (*PurchaseResult, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	listing, err := tx.GetListingForUpdate(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if listing.State != domain.ListingActive {
		return nil, domain.ErrListingNotActive
	}
	if listing.SellerID == buyerID {
		return nil, domain.ErrCannotBuyOwnListing
	}
	if listing.GuildID != guildID {
		return nil, domain.ErrListingNotFound
	}

	// Lock both profiles in a fixed order so concurrent purchases
	// between the same pair cannot deadlock.
	first, second := buyerID, listing.SellerID
	if second < first {
		first, second = second, first
	}
	if _, err := tx.GetProfileForUpdate(ctx, first, guildID); err != nil {
		return nil, err
	}
	if _, err := tx.GetProfileForUpdate(ctx, second, guildID); err != nil {
		return nil, err
	}

	// The fee uses the percent snapshotted at listing time, not the
	// current configuration.
	fee := domain.SaleFee(listing.Price, listing.FeePercent)
	proceeds := listing.Price - fee

	newBalance, err := tx.AdjustCoins(ctx, buyerID, guildID, -listing.Price)
	if err != nil {
		return nil, err
	}
	if _, err := tx.AdjustCoins(ctx, listing.SellerID, guildID, proceeds); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := tx.MarkListingSold(ctx, listingID, buyerID, now); err != nil {
		return nil, err
	}
	if err := tx.TransferOwnedItem(ctx, listing.ItemID, buyerID, guildID); err != nil {
		return nil, err
	}

	buyEntry := domain.LedgerEntry{
		UserID:  buyerID,
		GuildID: guildID,
		Kind:    domain.LedgerMarketBuy,
		Amount:  -listing.Price,
		Payload: domain.MarketBuyPayload{
			ListingID: listingID,
			ItemID:    listing.ItemID,
			SellerID:  listing.SellerID,
		},
	}
	if err := tx.AppendLedgerEntry(ctx, buyEntry); err != nil {
		return nil, err
	}
	sellEntry := domain.LedgerEntry{
		UserID:  listing.SellerID,
		GuildID: guildID,
		Kind:    domain.LedgerMarketSell,
		Amount:  proceeds,
		Payload: domain.MarketSellPayload{
			ListingID: listingID,
			ItemID:    listing.ItemID,
			BuyerID:   buyerID,
			Fee:       fee,
		},
	}
	if err := tx.AppendLedgerEntry(ctx, sellEntry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	listing.State = domain.ListingSold
	listing.BuyerID = &buyerID
	listing.SoldAt = &now

	metrics.RecordSale(fee)
	logger.FromContext(ctx).Info(LogMsgListingSold,
		"listingID", listingID, "buyerID", buyerID, "sellerID", listing.SellerID,
		"price", listing.Price, "fee", fee)

	return &PurchaseResult{
		Listing:    listing,
		Price:      listing.Price,
		Fee:        fee,
		Proceeds:   proceeds,
		NewBalance: newBalance,
	}, nil
}

func (s *service) Browse(ctx context.Context, filter domain.MarketFilter, page int) ([]domain.MarketListing, int, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * DefaultPageSize
	return s.repo.BrowseListings(ctx, filter, DefaultPageSize, offset)
}

func (s *service) GetUserListings(ctx context.Context, sellerID, guildID string) ([]domain.MarketListing, error) {
	return s.repo.GetUserListings(ctx, sellerID, guildID)
}

func (s *service) GetMarketStats(ctx context.Context, guildID string) (*domain.MarketStats, error) {
	return s.repo.GetMarketStats(ctx, guildID)
}
