package ledger

// XP formula parameters: the XP required to climb from one level to the
// next is floor(BaseXP * level^LevelExponent).
const (
	// BaseXP is the base XP value used in level calculations
	BaseXP = 100

	// LevelExponent is the growth exponent of the level curve
	LevelExponent = 1.5

	// MaxIterationLevel is the maximum level to iterate to when calculating levels
	MaxIterationLevel = 1000
)

// Default paging for ledger history queries
const (
	DefaultHistoryLimit   = 20
	DefaultLeaderboardTop = 10
)

// Error context messages
const (
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
)

// Log messages
const (
	LogMsgCoinsAdjusted = "Coins adjusted"
	LogMsgXPAwarded     = "XP awarded"
	LogMsgLeveledUp     = "User leveled up"
	LogMsgTransferred   = "Coins transferred"
)
