package handler

import (
	"net/http"
	"time"

	"github.com/mrivera/CaseVaultBot_Go/internal/logger"
	"github.com/mrivera/CaseVaultBot_Go/internal/reward"
)

type ClaimDailyRequest struct {
	UserID  string `json:"user_id" validate:"required,max=32"`
	GuildID string `json:"guild_id" validate:"required,max=32"`
}

// HandleClaimDaily grants the once-per-24h daily reward.
func HandleClaimDaily(svc reward.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ClaimDailyRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Claim daily"); err != nil {
			return
		}

		result, err := svc.ClaimDaily(r.Context(), req.UserID, req.GuildID)
		if err != nil {
			log.Warn("Failed to claim daily reward", "error", err, "user_id", req.UserID)
			respondServiceError(w, err)
			return
		}

		log.Info("Daily reward claimed", "user_id", req.UserID, "coins", result.Coins, "xp", result.XP)
		respondJSON(w, http.StatusOK, result)
	}
}

// DailyStatusResponse reports whether a daily claim would succeed.
type DailyStatusResponse struct {
	Available bool      `json:"available"`
	NextClaim time.Time `json:"next_claim"`
}

// HandleDailyStatus reports daily reward availability.
func HandleDailyStatus(svc reward.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		params, ok := requireQueryParams(w, r, "user_id", "guild_id")
		if !ok {
			return
		}

		available, next, err := svc.IsDailyAvailable(r.Context(), params["user_id"], params["guild_id"])
		if err != nil {
			log.Error("Failed to check daily availability", "error", err, "user_id", params["user_id"])
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, DailyStatusResponse{Available: available, NextClaim: next})
	}
}

type StarterPackRequest struct {
	UserID  string `json:"user_id" validate:"required,max=32"`
	GuildID string `json:"guild_id" validate:"required,max=32"`
}

type BalanceResponse struct {
	NewBalance int `json:"new_balance"`
}

// HandleStarterPack grants the one-time starter coins and tokens.
func HandleStarterPack(svc reward.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req StarterPackRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Starter pack"); err != nil {
			return
		}

		result, err := svc.GrantStarterPack(r.Context(), req.UserID, req.GuildID)
		if err != nil {
			log.Warn("Failed to grant starter pack", "error", err, "user_id", req.UserID)
			respondServiceError(w, err)
			return
		}

		log.Info("Starter pack granted", "user_id", req.UserID, "balance", result.NewBalance)
		respondJSON(w, http.StatusOK, result)
	}
}

type VoteRewardRequest struct {
	UserID  string `json:"user_id" validate:"required,max=32"`
	GuildID string `json:"guild_id" validate:"required,max=32"`
	Source  string `json:"source" validate:"required,max=50"`
}

// HandleVoteReward credits coins for an external vote callback.
func HandleVoteReward(svc reward.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req VoteRewardRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Vote reward"); err != nil {
			return
		}

		balance, err := svc.GrantVoteReward(r.Context(), req.UserID, req.GuildID, req.Source)
		if err != nil {
			log.Warn("Failed to grant vote reward", "error", err, "user_id", req.UserID, "source", req.Source)
			respondServiceError(w, err)
			return
		}

		log.Info("Vote reward granted", "user_id", req.UserID, "source", req.Source)
		respondJSON(w, http.StatusOK, BalanceResponse{NewBalance: balance})
	}
}
