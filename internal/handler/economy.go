package handler

import (
	"net/http"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
	"github.com/mrivera/CaseVaultBot_Go/internal/ledger"
	"github.com/mrivera/CaseVaultBot_Go/internal/logger"
)

// ProfileResponse is the public view of an economy profile.
type ProfileResponse struct {
	UserID      string `json:"user_id"`
	GuildID     string `json:"guild_id"`
	Coins       int    `json:"coins"`
	XP          int64  `json:"xp"`
	Level       int    `json:"level"`
	XPIntoLevel int64  `json:"xp_into_level"`
	XPNeeded    int64  `json:"xp_needed"`
}

// HandleGetProfile returns a user's profile with level progress.
func HandleGetProfile(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		params, ok := requireQueryParams(w, r, "user_id", "guild_id")
		if !ok {
			return
		}

		profile, err := svc.GetProfile(r.Context(), params["user_id"], params["guild_id"])
		if err != nil {
			log.Error("Failed to get profile", "error", err, "user_id", params["user_id"])
			respondServiceError(w, err)
			return
		}

		level, into, needed, err := svc.GetLevelProgress(r.Context(), params["user_id"], params["guild_id"])
		if err != nil {
			log.Error("Failed to get level progress", "error", err, "user_id", params["user_id"])
			respondServiceError(w, err)
			return
		}

		respondJSON(w, http.StatusOK, ProfileResponse{
			UserID:      profile.UserID,
			GuildID:     profile.GuildID,
			Coins:       profile.Coins,
			XP:          profile.XP,
			Level:       level,
			XPIntoLevel: into,
			XPNeeded:    needed,
		})
	}
}

type TransferRequest struct {
	FromID  string `json:"from_id" validate:"required,max=32"`
	ToID    string `json:"to_id" validate:"required,max=32"`
	GuildID string `json:"guild_id" validate:"required,max=32"`
	Amount  int    `json:"amount" validate:"min=1"`
}

// HandleTransfer moves coins between two users in the same guild.
func HandleTransfer(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req TransferRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Transfer"); err != nil {
			return
		}

		if err := svc.Transfer(r.Context(), req.FromID, req.ToID, req.GuildID, req.Amount); err != nil {
			log.Warn("Failed to transfer coins", "error", err, "from_id", req.FromID, "to_id", req.ToID)
			respondServiceError(w, err)
			return
		}

		log.Info("Coins transferred", "from_id", req.FromID, "to_id", req.ToID, "amount", req.Amount)
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgTransferSuccess})
	}
}

// LeaderboardEntry is one row of the guild leaderboard.
type LeaderboardEntry struct {
	Rank   int    `json:"rank"`
	UserID string `json:"user_id"`
	Level  int    `json:"level"`
	XP     int64  `json:"xp"`
	Coins  int    `json:"coins"`
}

// HandleGetLeaderboard returns profiles ordered by level then XP.
func HandleGetLeaderboard(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		params, ok := requireQueryParams(w, r, "guild_id")
		if !ok {
			return
		}
		limit := queryInt(r, "limit", ledger.DefaultLeaderboardTop)
		offset := queryInt(r, "offset", 0)

		profiles, err := svc.GetLeaderboard(r.Context(), params["guild_id"], limit, offset)
		if err != nil {
			log.Error("Failed to get leaderboard", "error", err, "guild_id", params["guild_id"])
			respondError(w, http.StatusInternalServerError, ErrMsgGetLeaderboardFailed)
			return
		}

		entries := make([]LeaderboardEntry, len(profiles))
		for i, p := range profiles {
			entries[i] = LeaderboardEntry{
				Rank:   offset + i + 1,
				UserID: p.UserID,
				Level:  p.Level,
				XP:     p.XP,
				Coins:  p.Coins,
			}
		}
		respondJSON(w, http.StatusOK, entries)
	}
}

// HistoryResponse pages ledger entries, newest first.
type HistoryResponse struct {
	Entries []domain.LedgerEntry `json:"entries"`
}

// HandleGetHistory returns a user's ledger entries.
func HandleGetHistory(svc ledger.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		params, ok := requireQueryParams(w, r, "user_id", "guild_id")
		if !ok {
			return
		}
		limit := queryInt(r, "limit", ledger.DefaultHistoryLimit)
		offset := queryInt(r, "offset", 0)

		entries, err := svc.GetTransactionHistory(r.Context(), params["user_id"], params["guild_id"], limit, offset)
		if err != nil {
			log.Error("Failed to get transaction history", "error", err, "user_id", params["user_id"])
			respondError(w, http.StatusInternalServerError, ErrMsgGetHistoryFailed)
			return
		}

		respondJSON(w, http.StatusOK, HistoryResponse{Entries: entries})
	}
}
