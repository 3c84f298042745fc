package reward

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
	"github.com/mrivera/CaseVaultBot_Go/internal/ledger"
	"github.com/mrivera/CaseVaultBot_Go/internal/logger"
	"github.com/mrivera/CaseVaultBot_Go/internal/metrics"
	"github.com/mrivera/CaseVaultBot_Go/internal/repository"
)

// Config carries the reward amounts.
type Config struct {
	DailyCoins       int
	DailyXP          int
	StarterPackCoins int
	VoteCoins        int
}

// DailyResult is the outcome of a daily reward claim.
type DailyResult struct {
	Coins      int              `json:"coins"`
	XP         int              `json:"xp"`
	NewBalance int              `json:"new_balance"`
	XPResult   *ledger.XPResult `json:"xp_result"`
	NextClaim  time.Time        `json:"next_claim"`
}

// StarterPackResult is the outcome of a starter pack grant.
type StarterPackResult struct {
	Coins      int `json:"coins"`
	NewBalance int `json:"new_balance"`
	Cases      int `json:"cases"`
	Keys       int `json:"keys"`
}

// Service grants time-gated and one-shot rewards.
type Service interface {
	// ClaimDaily grants the daily coins and XP once per 24 hours.
	// Fails with domain.ErrDailyNotReady while the cooldown runs.
	ClaimDaily(ctx context.Context, userID, guildID string) (*DailyResult, error)

	// IsDailyAvailable reports whether a claim would succeed and when
	// the next one unlocks.
	IsDailyAvailable(ctx context.Context, userID, guildID string) (bool, time.Time, error)

	// GrantStarterPack credits the one-time starting balance plus the
	// starter case and key tokens. Fails with
	// domain.ErrStarterPackClaimed on any repeat claim.
	GrantStarterPack(ctx context.Context, userID, guildID string) (*StarterPackResult, error)

	// GrantVoteReward credits coins for an external vote.
	GrantVoteReward(ctx context.Context, userID, guildID, source string) (int, error)
}

type service struct {
	repo   repository.Economy
	tokens repository.Cases
	cfg    Config
	now    func() time.Time
}

// NewService creates a reward service. The tokens repository carries
// the starter pack's case and key grants.
func NewService(repo repository.Economy, tokens repository.Cases, cfg Config) Service {
	return NewServiceWithClock(repo, tokens, cfg, time.Now)
}

// NewServiceWithClock creates a reward service with an injected clock so
// tests can control cooldown timing.
func NewServiceWithClock(repo repository.Economy, tokens repository.Cases, cfg Config, now func() time.Time) Service {
	return &service{repo: repo, tokens: tokens, cfg: cfg, now: now}
}

func (s *service) ClaimDaily(ctx context.Context, userID, guildID string) (*DailyResult, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	profile, err := tx.GetProfileForUpdate(ctx, userID, guildID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if profile.LastDailyAt != nil {
		ready := profile.LastDailyAt.Add(DailyCooldown)
		if now.Before(ready) {
			return nil, fmt.Errorf("%w: next claim at %s", domain.ErrDailyNotReady, ready.Format(time.RFC3339))
		}
	}

	newBalance, err := tx.AdjustCoins(ctx, userID, guildID, s.cfg.DailyCoins)
	if err != nil {
		return nil, err
	}
	xpResult, err := ledger.ApplyXPInTx(ctx, tx, profile, s.cfg.DailyXP)
	if err != nil {
		return nil, err
	}
	if err := tx.SetLastDailyAt(ctx, userID, guildID, now); err != nil {
		return nil, err
	}

	entry := domain.LedgerEntry{
		UserID:   userID,
		GuildID:  guildID,
		Kind:     domain.LedgerDailyReward,
		Amount:   s.cfg.DailyCoins,
		XPAmount: s.cfg.DailyXP,
		Payload:  domain.RewardPayload{Kind: domain.LedgerDailyReward},
	}
	if err := tx.AppendLedgerEntry(ctx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	metrics.RecordDailyClaim(s.cfg.DailyCoins)
	logger.FromContext(ctx).Info(LogMsgDailyClaimed,
		"userID", userID, "coins", s.cfg.DailyCoins, "xp", s.cfg.DailyXP)

	return &DailyResult{
		Coins:      s.cfg.DailyCoins,
		XP:         s.cfg.DailyXP,
		NewBalance: newBalance,
		XPResult:   xpResult,
		NextClaim:  now.Add(DailyCooldown),
	}, nil
}

func (s *service) IsDailyAvailable(ctx context.Context, userID, guildID string) (bool, time.Time, error) {
	profile, err := s.repo.GetProfile(ctx, userID, guildID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return true, s.now().UTC(), nil
		}
		return false, time.Time{}, err
	}
	if profile.LastDailyAt == nil {
		return true, s.now().UTC(), nil
	}

	ready := profile.LastDailyAt.Add(DailyCooldown)
	return !s.now().UTC().Before(ready), ready, nil
}

// GrantStarterPack is once-only per user. The profile row lock
// serializes concurrent claims, so the ledger check below cannot race.
func (s *service) GrantStarterPack(ctx context.Context, userID, guildID string) (*StarterPackResult, error) {
	tx, err := s.tokens.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if _, err := tx.GetProfileForUpdate(ctx, userID, guildID); err != nil {
		return nil, err
	}
	claimed, err := tx.HasLedgerKind(ctx, userID, guildID, domain.LedgerStarterPack)
	if err != nil {
		return nil, err
	}
	if claimed {
		return nil, domain.ErrStarterPackClaimed
	}

	newBalance, err := tx.AdjustCoins(ctx, userID, guildID, s.cfg.StarterPackCoins)
	if err != nil {
		return nil, err
	}
	if err := tx.GrantTokens(ctx, userID, guildID, domain.TokenKindCase, StarterCaseID, StarterTokenQty); err != nil {
		return nil, err
	}
	if err := tx.GrantTokens(ctx, userID, guildID, domain.TokenKindKey, StarterKeyID, StarterTokenQty); err != nil {
		return nil, err
	}

	entry := domain.LedgerEntry{
		UserID:  userID,
		GuildID: guildID,
		Kind:    domain.LedgerStarterPack,
		Amount:  s.cfg.StarterPackCoins,
		Payload: domain.RewardPayload{Kind: domain.LedgerStarterPack},
	}
	if err := tx.AppendLedgerEntry(ctx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgStarterPackGranted,
		"userID", userID, "coins", s.cfg.StarterPackCoins, "cases", StarterTokenQty, "keys", StarterTokenQty)
	return &StarterPackResult{
		Coins:      s.cfg.StarterPackCoins,
		NewBalance: newBalance,
		Cases:      StarterTokenQty,
		Keys:       StarterTokenQty,
	}, nil
}

func (s *service) GrantVoteReward(ctx context.Context, userID, guildID, source string) (int, error) {
	balance, err := s.grant(ctx, userID, guildID, s.cfg.VoteCoins,
		domain.RewardPayload{Kind: domain.LedgerVoteReward, Source: source})
	if err != nil {
		return 0, err
	}
	logger.FromContext(ctx).Info(LogMsgVoteRewardGranted, "userID", userID, "source", source)
	return balance, nil
}

func (s *service) grant(ctx context.Context, userID, guildID string, coins int, payload domain.LedgerPayload) (int, error) {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return 0, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if _, err := tx.GetProfileForUpdate(ctx, userID, guildID); err != nil {
		return 0, err
	}
	newBalance, err := tx.AdjustCoins(ctx, userID, guildID, coins)
	if err != nil {
		return 0, err
	}

	entry := domain.LedgerEntry{
		UserID:  userID,
		GuildID: guildID,
		Kind:    payload.LedgerKind(),
		Amount:  coins,
		Payload: payload,
	}
	if err := tx.AppendLedgerEntry(ctx, entry); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}
	return newBalance, nil
}
