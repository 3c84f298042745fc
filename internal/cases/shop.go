package cases

import (
	"context"
	"fmt"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
	"github.com/mrivera/CaseVaultBot_Go/internal/logger"
	"github.com/mrivera/CaseVaultBot_Go/internal/metrics"
	"github.com/mrivera/CaseVaultBot_Go/internal/repository"
)

// PurchaseResult is the outcome of one shop purchase.
type PurchaseResult struct {
	Kind       domain.TokenKind `json:"kind"`
	DefID      int              `json:"def_id"`
	Name       string           `json:"name"`
	Quantity   int              `json:"quantity"`
	UnitPrice  int              `json:"unit_price"`
	TotalPrice int              `json:"total_price"`
	NewBalance int              `json:"new_balance"`
}

// ShopListing is one purchasable case or key with its coin price.
type ShopListing struct {
	Kind  domain.TokenKind `json:"kind"`
	DefID int              `json:"def_id"`
	Name  string           `json:"name"`
	Price int              `json:"price"`
}

// Shop is the full storefront.
type Shop struct {
	Cases []ShopListing `json:"cases"`
	Keys  []ShopListing `json:"keys"`
}

// shopPrice resolves the name and unit price for one purchasable
// definition. A zero price means the definition is not sold.
func (s *service) shopPrice(ctx context.Context, kind domain.TokenKind, defID int) (string, int, error) {
	switch kind {
	case domain.TokenKindCase:
		def, err := s.catalog.GetCase(ctx, defID)
		if err != nil {
			return "", 0, err
		}
		return def.Name, def.Price, nil
	case domain.TokenKindKey:
		def, err := s.catalog.GetKey(ctx, defID)
		if err != nil {
			return "", 0, err
		}
		return def.Name, def.Price, nil
	default:
		return "", 0, domain.ErrInvalidAmount
	}
}

func (s *service) Purchase(ctx context.Context, userID, guildID string, kind domain.TokenKind, defID, qty int) (*PurchaseResult, error) {
	if qty <= 0 || qty > MaxShopQuantity {
		return nil, domain.ErrInvalidAmount
	}

	name, price, err := s.shopPrice(ctx, kind, defID)
	if err != nil {
		return nil, err
	}
	if price <= 0 {
		return nil, domain.ErrNotForSale
	}
	total := price * qty

	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgBeginTransactionFailed, err)
	}
	defer repository.SafeRollback(ctx, tx)

	if _, err := tx.GetProfileForUpdate(ctx, userID, guildID); err != nil {
		return nil, err
	}

	// AdjustCoins refuses the debit when the balance cannot cover it.
	newBalance, err := tx.AdjustCoins(ctx, userID, guildID, -total)
	if err != nil {
		return nil, err
	}
	if err := tx.GrantTokens(ctx, userID, guildID, kind, defID, qty); err != nil {
		return nil, err
	}

	entry := domain.LedgerEntry{
		UserID:  userID,
		GuildID: guildID,
		Kind:    domain.LedgerShopBuy,
		Amount:  -total,
		Payload: domain.ShopBuyPayload{
			DefID:     defID,
			Kind:      kind,
			Quantity:  qty,
			UnitPrice: price,
		},
	}
	if err := tx.AppendLedgerEntry(ctx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf(ErrMsgCommitTransactionFailed, err)
	}

	metrics.RecordShopPurchase(string(kind), qty)
	logger.FromContext(ctx).Info(LogMsgShopPurchase,
		"userID", userID, "kind", kind, "defID", defID, "qty", qty, "total", total)

	return &PurchaseResult{
		Kind:       kind,
		DefID:      defID,
		Name:       name,
		Quantity:   qty,
		UnitPrice:  price,
		TotalPrice: total,
		NewBalance: newBalance,
	}, nil
}

func (s *service) GetShop(ctx context.Context) (*Shop, error) {
	caseDefs, err := s.catalog.GetAllCases(ctx)
	if err != nil {
		return nil, err
	}
	keyDefs, err := s.catalog.GetAllKeys(ctx)
	if err != nil {
		return nil, err
	}

	shop := &Shop{}
	for _, def := range caseDefs {
		if def.Price <= 0 {
			continue
		}
		shop.Cases = append(shop.Cases, ShopListing{
			Kind: domain.TokenKindCase, DefID: def.ID, Name: def.Name, Price: def.Price,
		})
	}
	for _, def := range keyDefs {
		if def.Price <= 0 {
			continue
		}
		shop.Keys = append(shop.Keys, ShopListing{
			Kind: domain.TokenKindKey, DefID: def.ID, Name: def.Name, Price: def.Price,
		})
	}
	return shop, nil
}
