package cases

import (
	"context"
	"fmt"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
	"github.com/mrivera/CaseVaultBot_Go/internal/droptable"
	"github.com/mrivera/CaseVaultBot_Go/internal/ledger"
	"github.com/mrivera/CaseVaultBot_Go/internal/logger"
	"github.com/mrivera/CaseVaultBot_Go/internal/metrics"
	"github.com/mrivera/CaseVaultBot_Go/internal/repository"
	"github.com/mrivera/CaseVaultBot_Go/internal/utils"
)

// Catalog provides the read-only case and item definitions the opening
// flow needs. Implemented by the catalog service.
type Catalog interface {
	GetCase(ctx context.Context, caseID int) (*domain.CaseDefinition, error)
	GetItemDefinition(ctx context.Context, itemDefID int) (*domain.ItemDefinition, error)
	GetAllCases(ctx context.Context) ([]domain.CaseDefinition, error)
	GetKey(ctx context.Context, keyID int) (*domain.KeyDefinition, error)
	GetAllKeys(ctx context.Context) ([]domain.KeyDefinition, error)
}

// OpenResult is everything one case opening produced.
type OpenResult struct {
	Item       *domain.OwnedItem `json:"item"`
	Rarity     domain.Rarity     `json:"rarity"`
	BonusCoins int               `json:"bonus_coins"`
	BonusXP    int               `json:"bonus_xp"`
	NewBalance int               `json:"new_balance"`
	XP         *ledger.XPResult  `json:"xp"`
}

// Service opens cases and manages case/key token grants.
type Service interface {
	// OpenCase consumes one case token and one matching key token,
	// rolls a drop, and grants the item plus rarity bonuses. The whole
	// opening is atomic: on any failure no token is consumed and no
	// item or bonus is granted.
	OpenCase(ctx context.Context, userID, guildID string, caseID int) (*OpenResult, error)

	// GrantCase gives a user case tokens.
	GrantCase(ctx context.Context, userID, guildID string, caseID, qty int) error

	// GrantKey gives a user key tokens.
	GrantKey(ctx context.Context, userID, guildID string, keyID, qty int) error

	// GetUserCases returns the case tokens a user holds.
	GetUserCases(ctx context.Context, userID, guildID string) ([]domain.TokenStack, error)

	// GetUserKeys returns the key tokens a user holds.
	GetUserKeys(ctx context.Context, userID, guildID string) ([]domain.TokenStack, error)

	// GetAvailableCases lists every openable case type.
	GetAvailableCases(ctx context.Context) ([]domain.CaseDefinition, error)

	// Purchase buys case or key tokens from the shop for coins. The
	// debit, grant, and ledger entry are one atomic transaction.
	Purchase(ctx context.Context, userID, guildID string, kind domain.TokenKind, defID, qty int) (*PurchaseResult, error)

	// GetShop lists everything currently purchasable with its price.
	GetShop(ctx context.Context) (*Shop, error)
}

type service struct {
	repo       repository.Cases
	catalog    Catalog
	drops      droptable.Service
	dailyLimit int
	wear       func() float64
}

// NewService creates a case-opening service.
func NewService(repo repository.Cases, catalog Catalog, drops droptable.Service, dailyLimit int) Service {
	return NewServiceWithWear(repo, catalog, drops, dailyLimit, utils.RandomWear)
}

// NewServiceWithWear creates a case-opening service with an injected
// wear source so tests can fix item floats.
func NewServiceWithWear(repo repository.Cases, catalog Catalog, drops droptable.Service, dailyLimit int, wear func() float64) Service {
	return &service{
		repo:       repo,
		catalog:    catalog,
		drops:      drops,
		dailyLimit: dailyLimit,
		wear:       wear,
	}
}

func (s *service) OpenCase(ctx context.Context, userID, guildID string, caseID int) (*OpenResult, error) {
	caseDef, err := s.catalog.GetCase(ctx, caseID)
	if err != nil {
		return nil, err
	}

	// The roll is pure; doing it before the transaction keeps the
	// critical section short. Nothing is persisted until the tokens are
	// consumed below.
	drop, err := s.drops.Roll(ctx, caseDef)
	if err != nil {
		return nil, err
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	// Locking the profile first serializes concurrent opens by the same
	// user, so the daily counter and token consumes cannot interleave.
	profile, err := tx.GetProfileForUpdate(ctx, userID, guildID)
	if err != nil {
		return nil, err
	}

	if err := tx.IncrementOpenedToday(ctx, userID, guildID, s.dailyLimit); err != nil {
		return nil, err
	}

	if err := tx.ConsumeToken(ctx, userID, guildID, domain.TokenKindCase, caseDef.ID); err != nil {
		return nil, err
	}
	if err := tx.ConsumeToken(ctx, userID, guildID, domain.TokenKindKey, caseDef.KeyID); err != nil {
		return nil, err
	}

	item := &domain.OwnedItem{
		ItemDefID:   drop.ItemDefID,
		OwnerID:     userID,
		GuildID:     guildID,
		Wear:        s.wear(),
		ObtainedVia: domain.ObtainedViaCase,
	}
	itemID, err := tx.InsertOwnedItem(ctx, item)
	if err != nil {
		return nil, err
	}
	item.ID = itemID

	bonusCoins := drop.Rarity.BonusCoins()
	bonusXP := drop.Rarity.BonusXP()

	newBalance, err := tx.AdjustCoins(ctx, userID, guildID, bonusCoins)
	if err != nil {
		return nil, err
	}

	xpResult, err := ledger.ApplyXPInTx(ctx, tx, profile, bonusXP)
	if err != nil {
		return nil, err
	}

	entry := domain.LedgerEntry{
		UserID:   userID,
		GuildID:  guildID,
		Kind:     domain.LedgerCaseOpen,
		Amount:   bonusCoins,
		XPAmount: bonusXP,
		Payload: domain.CaseOpenPayload{
			CaseID:    caseDef.ID,
			KeyID:     caseDef.KeyID,
			ItemDefID: drop.ItemDefID,
			Rarity:    drop.Rarity,
		},
	}
	if err := tx.AppendLedgerEntry(ctx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	if def, defErr := s.catalog.GetItemDefinition(ctx, drop.ItemDefID); defErr == nil {
		item.Def = def
	}

	metrics.RecordCaseOpened(string(drop.Rarity))
	logger.FromContext(ctx).Info(LogMsgCaseOpened,
		"userID", userID, "caseID", caseDef.ID, "rarity", drop.Rarity, "itemID", itemID)

	return &OpenResult{
		Item:       item,
		Rarity:     drop.Rarity,
		BonusCoins: bonusCoins,
		BonusXP:    bonusXP,
		NewBalance: newBalance,
		XP:         xpResult,
	}, nil
}

func (s *service) GrantCase(ctx context.Context, userID, guildID string, caseID, qty int) error {
	if _, err := s.catalog.GetCase(ctx, caseID); err != nil {
		return err
	}
	return s.grantTokens(ctx, userID, guildID, domain.TokenKindCase, caseID, qty)
}

func (s *service) GrantKey(ctx context.Context, userID, guildID string, keyID, qty int) error {
	return s.grantTokens(ctx, userID, guildID, domain.TokenKindKey, keyID, qty)
}

func (s *service) grantTokens(ctx context.Context, userID, guildID string, kind domain.TokenKind, defID, qty int) error {
	if qty <= 0 {
		return domain.ErrInvalidAmount
	}

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if _, err := tx.GetProfileForUpdate(ctx, userID, guildID); err != nil {
		return err
	}
	if err := tx.GrantTokens(ctx, userID, guildID, kind, defID, qty); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	logger.FromContext(ctx).Info(LogMsgTokensGranted,
		"userID", userID, "kind", kind, "defID", defID, "qty", qty)
	return nil
}

func (s *service) GetUserCases(ctx context.Context, userID, guildID string) ([]domain.TokenStack, error) {
	return s.repo.GetUserTokens(ctx, userID, guildID, domain.TokenKindCase)
}

func (s *service) GetUserKeys(ctx context.Context, userID, guildID string) ([]domain.TokenStack, error) {
	return s.repo.GetUserTokens(ctx, userID, guildID, domain.TokenKindKey)
}

func (s *service) GetAvailableCases(ctx context.Context) ([]domain.CaseDefinition, error) {
	return s.catalog.GetAllCases(ctx)
}
