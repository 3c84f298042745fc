package cases

// MaxShopQuantity caps how many tokens one shop purchase may buy.
const MaxShopQuantity = 10

// Error context messages
const (
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
)

// Log messages
const (
	LogMsgCaseOpened    = "Case opened"
	LogMsgTokensGranted = "Tokens granted"
	LogMsgShopPurchase  = "Shop purchase completed"
)
