package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
	"github.com/mrivera/CaseVaultBot_Go/internal/inventory"
	"github.com/mrivera/CaseVaultBot_Go/internal/logger"
	"github.com/mrivera/CaseVaultBot_Go/internal/repository"
)

// HandleGetInventory pages a user's unlisted items with optional rarity
// and name filters.
func HandleGetInventory(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		params, ok := requireQueryParams(w, r, "user_id", "guild_id")
		if !ok {
			return
		}

		filter := repository.InventoryFilter{
			Rarity: domain.Rarity(strings.ToUpper(r.URL.Query().Get("rarity"))),
			Search: r.URL.Query().Get("search"),
		}
		if filter.Rarity != "" && !filter.Rarity.Valid() {
			respondError(w, http.StatusBadRequest, "Invalid rarity filter")
			return
		}
		page := queryInt(r, "page", 1)

		items, total, err := svc.GetUserInventory(r.Context(), params["user_id"], params["guild_id"], filter, page)
		if err != nil {
			log.Error("Failed to get inventory", "error", err, "user_id", params["user_id"])
			respondError(w, http.StatusInternalServerError, ErrMsgGetInventoryFailed)
			return
		}

		respondJSON(w, http.StatusOK, PageResponse{Data: items, Page: page, Total: total})
	}
}

// HandleGetItem returns one owned item with its catalog definition.
func HandleGetItem(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		itemID, ok := pathID(w, chi.URLParam(r, "itemID"), "item ID")
		if !ok {
			return
		}

		item, err := svc.GetItem(r.Context(), itemID)
		if err != nil {
			log.Warn("Failed to get item", "error", err, "item_id", itemID)
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, item)
	}
}

// HandleGetInventoryStats returns per-rarity counts for a user.
func HandleGetInventoryStats(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		params, ok := requireQueryParams(w, r, "user_id", "guild_id")
		if !ok {
			return
		}

		stats, err := svc.GetInventoryStats(r.Context(), params["user_id"], params["guild_id"])
		if err != nil {
			log.Error("Failed to get inventory stats", "error", err, "user_id", params["user_id"])
			respondError(w, http.StatusInternalServerError, ErrMsgGetStatsFailed)
			return
		}

		respondJSON(w, http.StatusOK, stats)
	}
}

type RecycleItemRequest struct {
	UserID  string `json:"user_id" validate:"required,max=32"`
	GuildID string `json:"guild_id" validate:"required,max=32"`
}

// HandleRecycleItem destroys an item for its wear-adjusted coin value.
func HandleRecycleItem(svc inventory.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		itemID, ok := pathID(w, chi.URLParam(r, "itemID"), "item ID")
		if !ok {
			return
		}

		var req RecycleItemRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Recycle item"); err != nil {
			return
		}

		result, err := svc.RecycleItem(r.Context(), req.UserID, req.GuildID, itemID)
		if err != nil {
			log.Warn("Failed to recycle item", "error", err, "user_id", req.UserID, "item_id", itemID)
			respondServiceError(w, err)
			return
		}

		log.Info("Item recycled",
			"user_id", req.UserID,
			"item_id", itemID,
			"rarity", result.Rarity,
			"payout", result.Payout)

		respondJSON(w, http.StatusOK, result)
	}
}
