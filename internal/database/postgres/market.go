package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
	"github.com/mrivera/CaseVaultBot_Go/internal/repository"
)

// MarketRepository implements repository.Market for PostgreSQL
type MarketRepository struct {
	db *pgxpool.Pool
}

// NewMarketRepository creates a new MarketRepository
func NewMarketRepository(db *pgxpool.Pool) *MarketRepository {
	return &MarketRepository{db: db}
}

// MarketTx implements repository.MarketTx
type MarketTx struct {
	profileTx
}

// BeginTx starts a new transaction
func (r *MarketRepository) BeginTx(ctx context.Context) (repository.MarketTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgFailedToBeginTx, err)
	}
	return &MarketTx{profileTx{tx: tx}}, nil
}

const listingSelect = `
	SELECT l.listing_id, l.seller_id, l.guild_id, l.item_id, l.price, l.fee_percent,
	       l.state, l.buyer_id, l.sold_at, l.created_at,
	       oi.item_def_id, oi.owner_id, oi.wear, oi.listed, oi.locked, oi.obtained_via, oi.created_at,
	       d.name, d.rarity, d.weapon, d.skin, d.collection, d.icon_url
	FROM market_listings l
	JOIN owned_items oi ON oi.item_id = l.item_id
	JOIN item_defs d ON d.item_def_id = oi.item_def_id`

func scanListing(row pgx.Row) (*domain.MarketListing, error) {
	var (
		l     domain.MarketListing
		item  domain.OwnedItem
		def   domain.ItemDefinition
		state string
	)
	err := row.Scan(
		&l.ID, &l.SellerID, &l.GuildID, &l.ItemID, &l.Price, &l.FeePercent,
		&state, &l.BuyerID, &l.SoldAt, &l.CreatedAt,
		&item.ItemDefID, &item.OwnerID, &item.Wear, &item.Listed, &item.Locked, &item.ObtainedVia, &item.CreatedAt,
		&def.Name, &def.Rarity, &def.Weapon, &def.Skin, &def.Collection, &def.IconURL,
	)
	if err != nil {
		return nil, err
	}
	l.State = domain.ListingState(state)
	item.ID = l.ItemID
	item.GuildID = l.GuildID
	def.ID = item.ItemDefID
	item.Def = &def
	l.Item = &item
	return &l, nil
}

func (r *MarketRepository) GetListing(ctx context.Context, listingID int64) (*domain.MarketListing, error) {
	listing, err := scanListing(r.db.QueryRow(ctx, listingSelect+` WHERE l.listing_id = $1`, listingID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf(ErrMsgScanFailed, err)
	}
	return listing, nil
}

func (r *MarketRepository) CountActiveListings(ctx context.Context, sellerID, guildID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM market_listings
		 WHERE seller_id = $1 AND guild_id = $2 AND state = 'ACTIVE'`,
		sellerID, guildID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgQueryFailed, err)
	}
	return count, nil
}

// BrowseListings pages ACTIVE listings newest first, with optional
// price, rarity, and name filters. The total matching count rides along
// via a window function.
func (r *MarketRepository) BrowseListings(ctx context.Context, filter domain.MarketFilter, limit, offset int) ([]domain.MarketListing, int, error) {
	rows, err := r.db.Query(ctx, `
		SELECT l.listing_id, l.seller_id, l.guild_id, l.item_id, l.price, l.fee_percent,
		       l.state, l.buyer_id, l.sold_at, l.created_at,
		       oi.item_def_id, oi.owner_id, oi.wear, oi.listed, oi.locked, oi.obtained_via, oi.created_at,
		       d.name, d.rarity, d.weapon, d.skin, d.collection, d.icon_url,
		       COUNT(*) OVER() AS total
		FROM market_listings l
		JOIN owned_items oi ON oi.item_id = l.item_id
		JOIN item_defs d ON d.item_def_id = oi.item_def_id
		WHERE l.guild_id = $1 AND l.state = 'ACTIVE'
		  AND ($2 = 0 OR l.price >= $2)
		  AND ($3 = 0 OR l.price <= $3)
		  AND ($4 = '' OR d.rarity = $4)
		  AND ($5 = '' OR d.name ILIKE '%' || $5 || '%')
		ORDER BY l.created_at DESC, l.listing_id DESC
		LIMIT $6 OFFSET $7`,
		filter.GuildID, filter.MinPrice, filter.MaxPrice, string(filter.Rarity), filter.Search,
		limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf(ErrMsgQueryFailed, err)
	}
	defer rows.Close()

	var (
		listings []domain.MarketListing
		total    int
	)
	for rows.Next() {
		var (
			l     domain.MarketListing
			item  domain.OwnedItem
			def   domain.ItemDefinition
			state string
		)
		err := rows.Scan(
			&l.ID, &l.SellerID, &l.GuildID, &l.ItemID, &l.Price, &l.FeePercent,
			&state, &l.BuyerID, &l.SoldAt, &l.CreatedAt,
			&item.ItemDefID, &item.OwnerID, &item.Wear, &item.Listed, &item.Locked, &item.ObtainedVia, &item.CreatedAt,
			&def.Name, &def.Rarity, &def.Weapon, &def.Skin, &def.Collection, &def.IconURL,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf(ErrMsgScanFailed, err)
		}
		l.State = domain.ListingState(state)
		item.ID = l.ItemID
		item.GuildID = l.GuildID
		def.ID = item.ItemDefID
		item.Def = &def
		l.Item = &item
		listings = append(listings, l)
	}
	return listings, total, rows.Err()
}

func (r *MarketRepository) GetUserListings(ctx context.Context, sellerID, guildID string) ([]domain.MarketListing, error) {
	rows, err := r.db.Query(ctx,
		listingSelect+`
		 WHERE l.seller_id = $1 AND l.guild_id = $2
		 ORDER BY l.created_at DESC`,
		sellerID, guildID)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgQueryFailed, err)
	}
	defer rows.Close()

	var listings []domain.MarketListing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgScanFailed, err)
		}
		listings = append(listings, *listing)
	}
	return listings, rows.Err()
}

func (r *MarketRepository) GetMarketStats(ctx context.Context, guildID string) (*domain.MarketStats, error) {
	var stats domain.MarketStats
	err := r.db.QueryRow(ctx, `
		SELECT
		    COUNT(*) FILTER (WHERE state = 'ACTIVE'),
		    COALESCE(AVG(price) FILTER (WHERE state = 'ACTIVE'), 0)::int,
		    COUNT(*) FILTER (WHERE state = 'SOLD' AND sold_at > NOW() - INTERVAL '24 hours')
		FROM market_listings
		WHERE guild_id = $1`,
		guildID).Scan(&stats.ActiveListings, &stats.AveragePrice, &stats.SalesLast24h)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgQueryFailed, err)
	}
	return &stats, nil
}

func (t *MarketTx) GetOwnedItemForUpdate(ctx context.Context, itemID int64) (*domain.OwnedItem, error) {
	return getOwnedItemForUpdate(ctx, t.tx, itemID)
}

func (t *MarketTx) GetListingForUpdate(ctx context.Context, listingID int64) (*domain.MarketListing, error) {
	var (
		l     domain.MarketListing
		state string
	)
	err := t.tx.QueryRow(ctx,
		`SELECT listing_id, seller_id, guild_id, item_id, price, fee_percent,
		        state, buyer_id, sold_at, created_at
		 FROM market_listings
		 WHERE listing_id = $1
		 FOR UPDATE`,
		listingID).Scan(
		&l.ID, &l.SellerID, &l.GuildID, &l.ItemID, &l.Price, &l.FeePercent,
		&state, &l.BuyerID, &l.SoldAt, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrListingNotFound
		}
		return nil, mapConflict(err)
	}
	l.State = domain.ListingState(state)
	return &l, nil
}

func (t *MarketTx) SetItemListed(ctx context.Context, itemID int64, listed bool) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE owned_items SET listed = $2 WHERE item_id = $1`,
		itemID, listed)
	if err != nil {
		return mapConflict(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func (t *MarketTx) InsertListing(ctx context.Context, listing *domain.MarketListing) (int64, error) {
	var listingID int64
	err := t.tx.QueryRow(ctx,
		`INSERT INTO market_listings (seller_id, guild_id, item_id, price, fee_percent, state)
		 VALUES ($1, $2, $3, $4, $5, 'ACTIVE')
		 RETURNING listing_id`,
		listing.SellerID, listing.GuildID, listing.ItemID, listing.Price, listing.FeePercent).Scan(&listingID)
	if err != nil {
		return 0, mapConflict(err)
	}
	return listingID, nil
}

// MarkListingSold is the single-winner compare-and-set: the state
// predicate makes concurrent buyers race on one row, and everyone who
// finds it already flipped gets ErrListingNotActive.
func (t *MarketTx) MarkListingSold(ctx context.Context, listingID int64, buyerID string, soldAt time.Time) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE market_listings
		 SET state = 'SOLD', buyer_id = $2, sold_at = $3
		 WHERE listing_id = $1 AND state = 'ACTIVE'`,
		listingID, buyerID, soldAt)
	if err != nil {
		return mapConflict(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrListingNotActive
	}
	return nil
}

func (t *MarketTx) MarkListingCancelled(ctx context.Context, listingID int64) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE market_listings
		 SET state = 'CANCELLED'
		 WHERE listing_id = $1 AND state = 'ACTIVE'`,
		listingID)
	if err != nil {
		return mapConflict(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrListingNotActive
	}
	return nil
}

func (t *MarketTx) TransferOwnedItem(ctx context.Context, itemID int64, newOwnerID, guildID string) error {
	tag, err := t.tx.Exec(ctx,
		`UPDATE owned_items
		 SET owner_id = $2, listed = FALSE, obtained_via = 'market'
		 WHERE item_id = $1 AND guild_id = $3`,
		itemID, newOwnerID, guildID)
	if err != nil {
		return mapConflict(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}
