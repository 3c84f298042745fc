package reward

import "time"

// DailyCooldown is the minimum interval between daily reward claims.
const DailyCooldown = 24 * time.Hour

// Starter pack token grants. The pack seeds a new user with enough to
// open their first cases alongside the coin credit.
const (
	StarterCaseID   = 1
	StarterKeyID    = 1
	StarterTokenQty = 2
)

// Error context messages
const (
	ErrMsgBeginTransactionFailed  = "failed to begin transaction: %w"
	ErrMsgCommitTransactionFailed = "failed to commit transaction: %w"
)

// Log messages
const (
	LogMsgDailyClaimed       = "Daily reward claimed"
	LogMsgStarterPackGranted = "Starter pack granted"
	LogMsgVoteRewardGranted  = "Vote reward granted"
)
