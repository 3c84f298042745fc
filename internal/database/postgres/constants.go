package postgres

// Error message formats
const (
	ErrMsgFailedToBeginTx = "failed to begin transaction: %w"
	ErrMsgQueryFailed     = "query failed: %w"
	ErrMsgScanFailed      = "failed to scan row: %w"
)
