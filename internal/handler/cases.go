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

type OpenCaseRequest struct {
	UserID  string `json:"user_id" validate:"required,max=32"`
	GuildID string `json:"guild_id" validate:"required,max=32"`
	CaseID  int    `json:"case_id" validate:"min=1"`
}

type OpenCaseResponse struct {
	Item       *domain.OwnedItem `json:"item"`
	Rarity     domain.Rarity     `json:"rarity"`
	BonusCoins int               `json:"bonus_coins"`
	BonusXP    int               `json:"bonus_xp"`
	NewBalance int               `json:"new_balance"`
	NewLevel   int               `json:"new_level"`
	LeveledUp  bool              `json:"leveled_up"`
}

// HandleOpenCase opens one case. Transient serialization conflicts are
// retried with backoff before surfacing to the client.
func HandleOpenCase(svc cases.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req OpenCaseRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Open case"); err != nil {
			return
		}

		var result *cases.OpenResult
		backoff := retry.WithMaxRetries(3, retry.NewExponential(25*time.Millisecond))
		err := retry.Do(r.Context(), backoff, func(ctx context.Context) error {
			var err error
			result, err = svc.OpenCase(ctx, req.UserID, req.GuildID, req.CaseID)
			if errors.Is(err, domain.ErrPersistenceConflict) {
				return retry.RetryableError(err)
			}
			return err
		})
		if err != nil {
			log.Error("Failed to open case", "error", err, "user_id", req.UserID, "case_id", req.CaseID)
			respondServiceError(w, err)
			return
		}

		log.Info("Case opened",
			"user_id", req.UserID,
			"case_id", req.CaseID,
			"rarity", result.Rarity,
			"item_id", result.Item.ID)

		resp := OpenCaseResponse{
			Item:       result.Item,
			Rarity:     result.Rarity,
			BonusCoins: result.BonusCoins,
			BonusXP:    result.BonusXP,
			NewBalance: result.NewBalance,
		}
		if result.XP != nil {
			resp.NewLevel = result.XP.NewLevel
			resp.LeveledUp = result.XP.LeveledUp
		}
		respondJSON(w, http.StatusOK, resp)
	}
}

type GrantTokensRequest struct {
	UserID   string `json:"user_id" validate:"required,max=32"`
	GuildID  string `json:"guild_id" validate:"required,max=32"`
	DefID    int    `json:"def_id" validate:"min=1"`
	Quantity int    `json:"quantity" validate:"min=1,max=1000"`
}

// HandleGrantCase grants case tokens (admin/system action).
func HandleGrantCase(svc cases.Service) http.HandlerFunc {
	return grantTokens("Grant case", func(r *http.Request, req GrantTokensRequest) error {
		return svc.GrantCase(r.Context(), req.UserID, req.GuildID, req.DefID, req.Quantity)
	})
}

// HandleGrantKey grants key tokens (admin/system action).
func HandleGrantKey(svc cases.Service) http.HandlerFunc {
	return grantTokens("Grant key", func(r *http.Request, req GrantTokensRequest) error {
		return svc.GrantKey(r.Context(), req.UserID, req.GuildID, req.DefID, req.Quantity)
	})
}

func grantTokens(action string, grant func(*http.Request, GrantTokensRequest) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req GrantTokensRequest
		if err := DecodeAndValidateRequest(r, w, &req, action); err != nil {
			return
		}

		if err := grant(r, req); err != nil {
			log.Error("Failed to grant tokens", "error", err, "user_id", req.UserID, "def_id", req.DefID)
			respondServiceError(w, err)
			return
		}

		log.Info("Tokens granted", "user_id", req.UserID, "def_id", req.DefID, "quantity", req.Quantity)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgTokensGrantedSuccess})
	}
}

type TokensResponse struct {
	Tokens []domain.TokenStack `json:"tokens"`
}

// HandleGetUserCases returns the case tokens a user holds.
func HandleGetUserCases(svc cases.Service) http.HandlerFunc {
	return userTokens(ErrMsgGetCasesFailed, func(r *http.Request, userID, guildID string) ([]domain.TokenStack, error) {
		return svc.GetUserCases(r.Context(), userID, guildID)
	})
}

// HandleGetUserKeys returns the key tokens a user holds.
func HandleGetUserKeys(svc cases.Service) http.HandlerFunc {
	return userTokens(ErrMsgGetKeysFailed, func(r *http.Request, userID, guildID string) ([]domain.TokenStack, error) {
		return svc.GetUserKeys(r.Context(), userID, guildID)
	})
}

func userTokens(failMsg string, fetch func(*http.Request, string, string) ([]domain.TokenStack, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		params, ok := requireQueryParams(w, r, "user_id", "guild_id")
		if !ok {
			return
		}

		tokens, err := fetch(r, params["user_id"], params["guild_id"])
		if err != nil {
			log.Error(failMsg, "error", err, "user_id", params["user_id"])
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, TokensResponse{Tokens: tokens})
	}
}

// HandleGetAvailableCases lists every openable case type.
func HandleGetAvailableCases(svc cases.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		defs, err := svc.GetAvailableCases(r.Context())
		if err != nil {
			log.Error("Failed to get available cases", "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgGetCatalogFailed)
			return
		}

		respondJSON(w, http.StatusOK, defs)
	}
}
