package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// LedgerKind is the closed set of operations that may touch a balance.
type LedgerKind string

const (
	LedgerCaseOpen    LedgerKind = "CASE_OPEN"
	LedgerMarketBuy   LedgerKind = "MARKET_BUY"
	LedgerMarketSell  LedgerKind = "MARKET_SELL"
	LedgerTransferIn  LedgerKind = "TRANSFER_IN"
	LedgerTransferOut LedgerKind = "TRANSFER_OUT"
	LedgerDailyReward LedgerKind = "DAILY_REWARD"
	LedgerVoteReward  LedgerKind = "VOTE_REWARD"
	LedgerStarterPack LedgerKind = "STARTER_PACK"
	LedgerShopBuy     LedgerKind = "SHOP_BUY"
	LedgerRecycle     LedgerKind = "RECYCLE"
)

// LedgerPayload is the strongly-typed metadata variant carried by a
// ledger entry. Each kind has exactly one payload type.
type LedgerPayload interface {
	LedgerKind() LedgerKind
}

// CaseOpenPayload records the case, key, and item of one case opening.
type CaseOpenPayload struct {
	CaseID    int    `json:"case_id"`
	KeyID     int    `json:"key_id"`
	ItemDefID int    `json:"item_def_id"`
	Rarity    Rarity `json:"rarity"`
}

func (CaseOpenPayload) LedgerKind() LedgerKind { return LedgerCaseOpen }

// MarketBuyPayload is attached to the buyer's debit entry.
type MarketBuyPayload struct {
	ListingID int64  `json:"listing_id"`
	ItemID    int64  `json:"item_id"`
	SellerID  string `json:"seller_id"`
}

func (MarketBuyPayload) LedgerKind() LedgerKind { return LedgerMarketBuy }

// MarketSellPayload is attached to the seller's credit entry.
// Fee is the burned portion of the sale price.
type MarketSellPayload struct {
	ListingID int64  `json:"listing_id"`
	ItemID    int64  `json:"item_id"`
	BuyerID   string `json:"buyer_id"`
	Fee       int    `json:"fee"`
}

func (MarketSellPayload) LedgerKind() LedgerKind { return LedgerMarketSell }

// TransferPayload records the counterparty of a coin transfer.
type TransferPayload struct {
	CounterpartyID string `json:"counterparty_id"`
	Outgoing       bool   `json:"outgoing"`
}

func (p TransferPayload) LedgerKind() LedgerKind {
	if p.Outgoing {
		return LedgerTransferOut
	}
	return LedgerTransferIn
}

// RewardPayload records grant-layer credits (daily, vote, starter pack).
type RewardPayload struct {
	Kind   LedgerKind `json:"kind"`
	Source string     `json:"source,omitempty"`
}

func (p RewardPayload) LedgerKind() LedgerKind { return p.Kind }

// ShopBuyPayload records case or key tokens bought from the shop.
// UnitPrice is the catalog price at the time of purchase.
type ShopBuyPayload struct {
	DefID     int       `json:"def_id"`
	Kind      TokenKind `json:"token_kind"`
	Quantity  int       `json:"quantity"`
	UnitPrice int       `json:"unit_price"`
}

func (ShopBuyPayload) LedgerKind() LedgerKind { return LedgerShopBuy }

// RecyclePayload records an item burned for coins.
type RecyclePayload struct {
	ItemID    int64   `json:"item_id"`
	ItemDefID int     `json:"item_def_id"`
	Rarity    Rarity  `json:"rarity"`
	Wear      float64 `json:"wear"`
}

func (RecyclePayload) LedgerKind() LedgerKind { return LedgerRecycle }

// LedgerEntry is one immutable row of the append-only audit trail.
// Amount is signed coins; XPAmount is the XP granted alongside, if any.
type LedgerEntry struct {
	ID        int64         `json:"ledger_id" db:"ledger_id"`
	UserID    string        `json:"user_id" db:"user_id"`
	GuildID   string        `json:"guild_id" db:"guild_id"`
	Kind      LedgerKind    `json:"kind" db:"kind"`
	Amount    int           `json:"amount" db:"amount"`
	XPAmount  int           `json:"xp_amount" db:"xp_amount"`
	Payload   LedgerPayload `json:"payload,omitempty"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
}

// DecodeLedgerPayload unmarshals raw payload JSON into the typed
// variant for the given kind. Returns nil payload for empty input.
func DecodeLedgerPayload(kind LedgerKind, raw []byte) (LedgerPayload, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var (
		p   LedgerPayload
		err error
	)
	switch kind {
	case LedgerCaseOpen:
		var v CaseOpenPayload
		err = json.Unmarshal(raw, &v)
		p = v
	case LedgerMarketBuy:
		var v MarketBuyPayload
		err = json.Unmarshal(raw, &v)
		p = v
	case LedgerMarketSell:
		var v MarketSellPayload
		err = json.Unmarshal(raw, &v)
		p = v
	case LedgerTransferIn, LedgerTransferOut:
		var v TransferPayload
		err = json.Unmarshal(raw, &v)
		v.Outgoing = kind == LedgerTransferOut
		p = v
	case LedgerDailyReward, LedgerVoteReward, LedgerStarterPack:
		var v RewardPayload
		err = json.Unmarshal(raw, &v)
		v.Kind = kind
		p = v
	case LedgerShopBuy:
		var v ShopBuyPayload
		err = json.Unmarshal(raw, &v)
		p = v
	case LedgerRecycle:
		var v RecyclePayload
		err = json.Unmarshal(raw, &v)
		p = v
	default:
		return nil, fmt.Errorf("unknown ledger kind %q", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("decode ledger payload for %s: %w", kind, err)
	}
	return p, nil
}
