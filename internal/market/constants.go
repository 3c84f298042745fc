package market

// Default page size for market browsing
const DefaultPageSize = 15

// Error context messages
const (
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
)

// Log messages
const (
	LogMsgItemListed       = "Item listed on market"
	LogMsgListingCancelled = "Listing cancelled"
	LogMsgListingSold      = "Listing sold"
)
