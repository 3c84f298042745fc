package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sethvargo/go-retry"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
	"github.com/mrivera/CaseVaultBot_Go/internal/logger"
	"github.com/mrivera/CaseVaultBot_Go/internal/market"
)

type ListItemRequest struct {
	UserID  string `json:"user_id" validate:"required,max=32"`
	GuildID string `json:"guild_id" validate:"required,max=32"`
	ItemID  int64  `json:"item_id" validate:"min=1"`
	Price   int    `json:"price" validate:"min=1"`
}

// HandleListItem puts an owned item up for sale.
func HandleListItem(svc market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ListItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "List item"); err != nil {
			return
		}

		listing, err := svc.ListItem(r.Context(), req.UserID, req.GuildID, req.ItemID, req.Price)
		if err != nil {
			log.Error("Failed to list item", "error", err, "user_id", req.UserID, "item_id", req.ItemID)
			respondServiceError(w, err)
			return
		}

		log.Info("Item listed", "user_id", req.UserID, "item_id", req.ItemID, "listing_id", listing.ID, "price", listing.Price)
		respondJSON(w, http.StatusCreated, listing)
	}
}

type BuyItemRequest struct {
	UserID  string `json:"user_id" validate:"required,max=32"`
	GuildID string `json:"guild_id" validate:"required,max=32"`
}

type BuyItemResponse struct {
	Listing    *domain.MarketListing `json:"listing"`
	Price      int                   `json:"price"`
	Fee        int                   `json:"fee"`
	NewBalance int                   `json:"new_balance"`
}

// HandleBuyItem purchases a listing. Serialization conflicts retry;
// losing the compare-and-set race does not, the listing is gone.
func HandleBuyItem(svc market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		listingID, ok := pathID(w, chi.URLParam(r, "listingID"), "listing ID")
		if !ok {
			return
		}

		var req BuyItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Buy item"); err != nil {
			return
		}

		var result *market.PurchaseResult
		backoff := retry.WithMaxRetries(3, retry.NewExponential(25*time.Millisecond))
		err := retry.Do(r.Context(), backoff, func(ctx context.Context) error {
			var err error
			result, err = svc.BuyItem(ctx, req.UserID, req.GuildID, listingID)
			if errors.Is(err, domain.ErrPersistenceConflict) {
				return retry.RetryableError(err)
			}
			return err
		})
		if err != nil {
			log.Warn("Failed to buy item", "error", err, "user_id", req.UserID, "listing_id", listingID)
			respondServiceError(w, err)
			return
		}

		log.Info("Item bought",
			"user_id", req.UserID,
			"listing_id", listingID,
			"price", result.Price,
			"fee", result.Fee)

		respondJSON(w, http.StatusOK, BuyItemResponse{
			Listing:    result.Listing,
			Price:      result.Price,
			Fee:        result.Fee,
			NewBalance: result.NewBalance,
		})
	}
}

type CancelListingRequest struct {
	UserID  string `json:"user_id" validate:"required,max=32"`
	GuildID string `json:"guild_id" validate:"required,max=32"`
}

// HandleCancelListing withdraws the caller's own ACTIVE listing.
func HandleCancelListing(svc market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		listingID, ok := pathID(w, chi.URLParam(r, "listingID"), "listing ID")
		if !ok {
			return
		}

		var req CancelListingRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Cancel listing"); err != nil {
			return
		}

		if err := svc.CancelListing(r.Context(), req.UserID, req.GuildID, listingID); err != nil {
			log.Warn("Failed to cancel listing", "error", err, "user_id", req.UserID, "listing_id", listingID)
			respondServiceError(w, err)
			return
		}

		log.Info("Listing cancelled", "user_id", req.UserID, "listing_id", listingID)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgListingCancelledOK})
	}
}

// HandleBrowseMarket pages the ACTIVE listings of a guild with optional
// price, rarity and name filters.
func HandleBrowseMarket(svc market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		params, ok := requireQueryParams(w, r, "guild_id")
		if !ok {
			return
		}

		filter := domain.MarketFilter{
			GuildID:  params["guild_id"],
			MinPrice: queryInt(r, "min_price", 0),
			MaxPrice: queryInt(r, "max_price", 0),
			Rarity:   domain.Rarity(strings.ToUpper(r.URL.Query().Get("rarity"))),
			Search:   r.URL.Query().Get("search"),
		}
		if filter.Rarity != "" && !filter.Rarity.Valid() {
			respondError(w, http.StatusBadRequest, "Invalid rarity filter")
			return
		}
		page := queryInt(r, "page", 1)

		listings, total, err := svc.Browse(r.Context(), filter, page)
		if err != nil {
			log.Error("Failed to browse market", "error", err, "guild_id", filter.GuildID)
			respondError(w, http.StatusInternalServerError, ErrMsgBrowseFailed)
			return
		}

		respondJSON(w, http.StatusOK, PageResponse{Data: listings, Page: page, Total: total})
	}
}

// HandleGetUserListings returns a seller's listings in every state.
func HandleGetUserListings(svc market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		params, ok := requireQueryParams(w, r, "user_id", "guild_id")
		if !ok {
			return
		}

		listings, err := svc.GetUserListings(r.Context(), params["user_id"], params["guild_id"])
		if err != nil {
			log.Error("Failed to get user listings", "error", err, "user_id", params["user_id"])
			respondError(w, http.StatusInternalServerError, ErrMsgGetListingsFailed)
			return
		}

		respondJSON(w, http.StatusOK, listings)
	}
}

// HandleGetMarketStats returns an aggregate market snapshot for a guild.
func HandleGetMarketStats(svc market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		params, ok := requireQueryParams(w, r, "guild_id")
		if !ok {
			return
		}

		stats, err := svc.GetMarketStats(r.Context(), params["guild_id"])
		if err != nil {
			log.Error("Failed to get market stats", "error", err, "guild_id", params["guild_id"])
			respondError(w, http.StatusInternalServerError, ErrMsgGetStatsFailed)
			return
		}

		respondJSON(w, http.StatusOK, stats)
	}
}
