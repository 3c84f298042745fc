package inventory

// Default page size for inventory listings
const DefaultPageSize = 10

// Error context messages
const (
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
)

// Log messages
const (
	LogMsgItemRecycled = "Item recycled"
)
