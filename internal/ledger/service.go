package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
	"github.com/mrivera/CaseVaultBot_Go/internal/logger"
	"github.com/mrivera/CaseVaultBot_Go/internal/repository"
)

// XPResult reports the outcome of an XP award.
type XPResult struct {
	NewXP     int64 `json:"new_xp"`
	OldLevel  int   `json:"old_level"`
	NewLevel  int   `json:"new_level"`
	LeveledUp bool  `json:"leveled_up"`
}

// Service manages coin balances, XP, and the append-only ledger.
type Service interface {
	// GetBalance returns the coin balance, zero for unknown profiles.
	GetBalance(ctx context.Context, userID, guildID string) (int, error)

	// GetProfile returns the full economy profile, creating it if absent.
	GetProfile(ctx context.Context, userID, guildID string) (*domain.Profile, error)

	// AddCoins credits coins and appends a ledger entry of the payload's
	// kind. Returns the new balance.
	AddCoins(ctx context.Context, userID, guildID string, amount int, payload domain.LedgerPayload) (int, error)

	// RemoveCoins debits coins and appends a ledger entry. Fails with
	// domain.ErrInsufficientFunds when the balance would go negative.
	RemoveCoins(ctx context.Context, userID, guildID string, amount int, payload domain.LedgerPayload) (int, error)

	// Transfer atomically moves coins between two users in the same
	// guild, writing a TRANSFER_OUT and a TRANSFER_IN entry. Either both
	// balances change or neither does.
	Transfer(ctx context.Context, fromID, toID, guildID string, amount int) error

	// AddXP grants XP and recomputes the stored level.
	AddXP(ctx context.Context, userID, guildID string, amount int) (*XPResult, error)

	// GetLevelProgress reports the level plus XP into it and XP needed
	// for the next one.
	GetLevelProgress(ctx context.Context, userID, guildID string) (level int, intoLevel, needed int64, err error)

	// GetLeaderboard returns profiles ordered by level then XP.
	GetLeaderboard(ctx context.Context, guildID string, limit, offset int) ([]domain.Profile, error)

	// GetTransactionHistory returns ledger entries, newest first.
	GetTransactionHistory(ctx context.Context, userID, guildID string, limit, offset int) ([]domain.LedgerEntry, error)
}

type service struct {
	repo repository.Economy
}

// NewService creates a ledger service backed by the given repository.
func NewService(repo repository.Economy) Service {
	return &service{repo: repo}
}

func (s *service) GetBalance(ctx context.Context, userID, guildID string) (int, error) {
	profile, err := s.repo.GetProfile(ctx, userID, guildID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return profile.Coins, nil
}

func (s *service) GetProfile(ctx context.Context, userID, guildID string) (*domain.Profile, error) {
	return s.repo.EnsureProfile(ctx, userID, guildID)
}

func (s *service) AddCoins(ctx context.Context, userID, guildID string, amount int, payload domain.LedgerPayload) (int, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	return s.adjustCoins(ctx, userID, guildID, amount, payload)
}

func (s *service) RemoveCoins(ctx context.Context, userID, guildID string, amount int, payload domain.LedgerPayload) (int, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidAmount
	}
	return s.adjustCoins(ctx, userID, guildID, -amount, payload)
}

// adjustCoins applies a signed delta and records it. Callers validate
// the magnitude; delta carries the sign.
func (s *service) adjustCoins(ctx context.Context, userID, guildID string, delta int, payload domain.LedgerPayload) (int, error) {
	if payload == nil {
		return 0, fmt.Errorf("ledger payload is required")
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if _, err := tx.GetProfileForUpdate(ctx, userID, guildID); err != nil {
		return 0, err
	}

	newBalance, err := tx.AdjustCoins(ctx, userID, guildID, delta)
	if err != nil {
		return 0, err
	}

	entry := domain.LedgerEntry{
		UserID:  userID,
		GuildID: guildID,
		Kind:    payload.LedgerKind(),
		Amount:  delta,
		Payload: payload,
	}
	if err := tx.AppendLedgerEntry(ctx, entry); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	logger.FromContext(ctx).Debug(LogMsgCoinsAdjusted,
		"userID", userID, "delta", delta, "kind", payload.LedgerKind(), "balance", newBalance)
	return newBalance, nil
}

func (s *service) Transfer(ctx context.Context, fromID, toID, guildID string, amount int) error {
	if amount <= 0 {
		return domain.ErrInvalidAmount
	}
	if fromID == toID {
		return domain.ErrInvalidAmount
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	// Lock both profiles in a fixed order so two opposite transfers
	// cannot deadlock.
	first, second := fromID, toID
	if second < first {
		first, second = second, first
	}
	if _, err := tx.GetProfileForUpdate(ctx, first, guildID); err != nil {
		return err
	}
	if _, err := tx.GetProfileForUpdate(ctx, second, guildID); err != nil {
		return err
	}

	if _, err := tx.AdjustCoins(ctx, fromID, guildID, -amount); err != nil {
		return err
	}
	if _, err := tx.AdjustCoins(ctx, toID, guildID, amount); err != nil {
		return err
	}

	out := domain.LedgerEntry{
		UserID:  fromID,
		GuildID: guildID,
		Kind:    domain.LedgerTransferOut,
		Amount:  -amount,
		Payload: domain.TransferPayload{CounterpartyID: toID, Outgoing: true},
	}
	if err := tx.AppendLedgerEntry(ctx, out); err != nil {
		return err
	}
	in := domain.LedgerEntry{
		UserID:  toID,
		GuildID: guildID,
		Kind:    domain.LedgerTransferIn,
		Amount:  amount,
		Payload: domain.TransferPayload{CounterpartyID: fromID},
	}
	if err := tx.AppendLedgerEntry(ctx, in); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgTransferred,
		"fromID", fromID, "toID", toID, "amount", amount)
	return nil
}

func (s *service) AddXP(ctx context.Context, userID, guildID string, amount int) (*XPResult, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	profile, err := tx.GetProfileForUpdate(ctx, userID, guildID)
	if err != nil {
		return nil, err
	}

	result, err := applyXP(ctx, tx, profile, amount)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}
	return result, nil
}

// applyXP recomputes XP and level inside an open transaction. It is
// shared with the case-opening and reward flows, which award XP as part
// of their own transactions.
func applyXP(ctx context.Context, tx repository.ProfileTx, profile *domain.Profile, amount int) (*XPResult, error) {
	newXP := profile.XP + int64(amount)
	oldLevel := profile.Level
	if oldLevel < 1 {
		oldLevel = CalculateLevel(profile.XP)
	}
	newLevel := CalculateLevel(newXP)

	if err := tx.UpdateXPLevel(ctx, profile.UserID, profile.GuildID, newXP, newLevel); err != nil {
		return nil, err
	}

	result := &XPResult{
		NewXP:     newXP,
		OldLevel:  oldLevel,
		NewLevel:  newLevel,
		LeveledUp: newLevel > oldLevel,
	}
	if result.LeveledUp {
		logger.FromContext(ctx).Info(LogMsgLeveledUp,
			"userID", profile.UserID, "oldLevel", oldLevel, "newLevel", newLevel)
	}
	return result, nil
}

// ApplyXPInTx awards XP within a transaction owned by another service.
func ApplyXPInTx(ctx context.Context, tx repository.ProfileTx, profile *domain.Profile, amount int) (*XPResult, error) {
	return applyXP(ctx, tx, profile, amount)
}

func (s *service) GetLevelProgress(ctx context.Context, userID, guildID string) (int, int64, int64, error) {
	profile, err := s.repo.GetProfile(ctx, userID, guildID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			level, into, needed := GetXPProgress(0)
			return level, into, needed, nil
		}
		return 0, 0, 0, err
	}
	level, into, needed := GetXPProgress(profile.XP)
	return level, into, needed, nil
}

func (s *service) GetLeaderboard(ctx context.Context, guildID string, limit, offset int) ([]domain.Profile, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardTop
	}
	return s.repo.GetLeaderboard(ctx, guildID, limit, offset)
}

func (s *service) GetTransactionHistory(ctx context.Context, userID, guildID string, limit, offset int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.repo.GetLedgerEntries(ctx, userID, guildID, limit, offset)
}
