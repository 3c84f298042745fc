package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants.
const (
	ErrMsgMethodNotAllowed = "Method not allowed"
	ErrMsgInvalidRequest   = "Invalid request body"

	// Query/path parameter error messages
	ErrMsgMissingQueryParam = "Missing %s query parameter"
	ErrMsgInvalidID         = "Invalid %s"

	// Case operation error messages
	ErrMsgOpenCaseFailed     = "Failed to open case"
	ErrMsgGrantFailed        = "Failed to grant tokens"
	ErrMsgGetCasesFailed     = "Failed to retrieve cases"
	ErrMsgGetKeysFailed      = "Failed to retrieve keys"
	ErrMsgGetCatalogFailed   = "Failed to retrieve case catalog"
	ErrMsgGetShopFailed      = "Failed to retrieve shop"

	// Market operation error messages
	ErrMsgListItemFailed     = "Failed to list item"
	ErrMsgCancelFailed       = "Failed to cancel listing"
	ErrMsgBuyFailed          = "Failed to buy item"
	ErrMsgBrowseFailed       = "Failed to browse market"
	ErrMsgGetListingsFailed  = "Failed to retrieve listings"
	ErrMsgGetStatsFailed     = "Failed to retrieve stats"

	// Economy operation error messages
	ErrMsgGetProfileFailed     = "Failed to retrieve profile"
	ErrMsgTransferFailed       = "Failed to transfer coins"
	ErrMsgGetHistoryFailed     = "Failed to retrieve transaction history"
	ErrMsgGetLeaderboardFailed = "Failed to retrieve leaderboard"

	// Inventory operation error messages
	ErrMsgGetInventoryFailed = "Failed to get inventory"
	ErrMsgRecycleFailed      = "Failed to recycle item"

	// Reward operation error messages
	ErrMsgClaimDailyFailed  = "Failed to claim daily reward"
	ErrMsgStarterPackFailed = "Failed to grant starter pack"
	ErrMsgVoteRewardFailed  = "Failed to grant vote reward"
)

// Success messages for API responses
const (
	MsgTokensGrantedSuccess   = "Tokens granted successfully"
	MsgListingCancelledOK     = "Listing cancelled successfully"
	MsgTransferSuccess        = "Coins transferred successfully"
)
