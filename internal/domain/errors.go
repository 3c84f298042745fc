package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User/profile errors
	ErrMsgUserNotFound    = "user not found"
	ErrMsgProfileNotFound = "profile not found"

	// Case-opening precondition errors
	ErrMsgNoCaseOwned       = "no case of this type owned"
	ErrMsgNoKeyOwned        = "no key of this type owned"
	ErrMsgDailyLimitReached = "daily case opening limit reached"

	// Content/configuration errors
	ErrMsgCorruptDropTable = "drop table probabilities do not sum to 1"
	ErrMsgEmptyRarityPool  = "rarity pool is empty"
	ErrMsgCaseNotFound     = "case definition not found"
	ErrMsgKeyNotFound      = "key definition not found"
	ErrMsgItemDefNotFound  = "item definition not found"

	// Economy errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgInvalidAmount     = "amount must be positive"

	// Inventory errors
	ErrMsgItemNotFound = "item not found"
	ErrMsgNotOwner     = "item not owned by user"
	ErrMsgItemLocked   = "item is locked"

	// Market errors
	ErrMsgAlreadyListed       = "item is already listed"
	ErrMsgListingNotFound     = "listing not found"
	ErrMsgListingNotActive    = "listing is not active"
	ErrMsgInvalidPrice        = "price out of allowed range"
	ErrMsgCannotBuyOwnListing = "cannot buy your own listing"
	ErrMsgMaxListingsReached  = "maximum active listings reached"

	// Reward errors
	ErrMsgDailyNotReady      = "daily reward already claimed"
	ErrMsgStarterPackClaimed = "starter pack already claimed"

	// Shop errors
	ErrMsgNotForSale = "not sold in the shop"

	// Persistence errors
	ErrMsgPersistenceConflict = "transaction conflict"
	ErrMsgTxClosed            = "tx is closed"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// User/profile errors
	ErrUserNotFound    = errors.New(ErrMsgUserNotFound)
	ErrProfileNotFound = errors.New(ErrMsgProfileNotFound)

	// Case-opening precondition errors
	ErrNoCaseOwned       = errors.New(ErrMsgNoCaseOwned)
	ErrNoKeyOwned        = errors.New(ErrMsgNoKeyOwned)
	ErrDailyLimitReached = errors.New(ErrMsgDailyLimitReached)

	// Content/configuration errors - bad catalog data, not user errors
	ErrCorruptDropTable = errors.New(ErrMsgCorruptDropTable)
	ErrEmptyRarityPool  = errors.New(ErrMsgEmptyRarityPool)
	ErrCaseNotFound     = errors.New(ErrMsgCaseNotFound)
	ErrKeyNotFound      = errors.New(ErrMsgKeyNotFound)
	ErrItemDefNotFound  = errors.New(ErrMsgItemDefNotFound)

	// Economy errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrInvalidAmount     = errors.New(ErrMsgInvalidAmount)

	// Inventory errors
	ErrItemNotFound = errors.New(ErrMsgItemNotFound)
	ErrNotOwner     = errors.New(ErrMsgNotOwner)
	ErrItemLocked   = errors.New(ErrMsgItemLocked)

	// Market errors
	ErrAlreadyListed       = errors.New(ErrMsgAlreadyListed)
	ErrListingNotFound     = errors.New(ErrMsgListingNotFound)
	ErrListingNotActive    = errors.New(ErrMsgListingNotActive)
	ErrInvalidPrice        = errors.New(ErrMsgInvalidPrice)
	ErrCannotBuyOwnListing = errors.New(ErrMsgCannotBuyOwnListing)
	ErrMaxListingsReached  = errors.New(ErrMsgMaxListingsReached)

	// Reward errors
	ErrDailyNotReady      = errors.New(ErrMsgDailyNotReady)
	ErrStarterPackClaimed = errors.New(ErrMsgStarterPackClaimed)

	// Shop errors
	ErrNotForSale = errors.New(ErrMsgNotForSale)

	// Persistence errors - transient, safe to retry the whole operation
	ErrPersistenceConflict = errors.New(ErrMsgPersistenceConflict)
)
