package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/mrivera/CaseVaultBot_Go/internal/cases"
	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
	"github.com/mrivera/CaseVaultBot_Go/internal/logger"
)

type ShopBuyRequest struct {
	UserID   string `json:"user_id" validate:"required,max=32"`
	GuildID  string `json:"guild_id" validate:"required,max=32"`
	Kind     string `json:"kind" validate:"required,oneof=case key"`
	DefID    int    `json:"def_id" validate:"min=1"`
	Quantity int    `json:"quantity" validate:"min=1,max=10"`
}

// HandleShopBuy purchases case or key tokens for coins. Transient
// serialization conflicts are retried with backoff.
func HandleShopBuy(svc cases.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ShopBuyRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Shop buy"); err != nil {
			return
		}

		var result *cases.PurchaseResult
		backoff := retry.WithMaxRetries(3, retry.NewExponential(25*time.Millisecond))
		err := retry.Do(r.Context(), backoff, func(ctx context.Context) error {
			var err error
			result, err = svc.Purchase(ctx, req.UserID, req.GuildID, domain.TokenKind(req.Kind), req.DefID, req.Quantity)
			if errors.Is(err, domain.ErrPersistenceConflict) {
				return retry.RetryableError(err)
			}
			return err
		})
		if err != nil {
			log.Warn("Failed shop purchase", "error", err, "user_id", req.UserID, "def_id", req.DefID)
			respondServiceError(w, err)
			return
		}

		log.Info("Shop purchase completed",
			"user_id", req.UserID,
			"kind", req.Kind,
			"def_id", req.DefID,
			"quantity", req.Quantity,
			"total", result.TotalPrice)
		respondJSON(w, http.StatusOK, result)
	}
}

// HandleGetShop lists everything purchasable with its price.
func HandleGetShop(svc cases.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		shop, err := svc.GetShop(r.Context())
		if err != nil {
			log.Error("Failed to get shop", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgGetShopFailed)
			return
		}

		respondJSON(w, http.StatusOK, shop)
	}
}
