package config

const (
	// Configuration file paths
	ConfigPathCasesDir = "configs/cases"
)

// Default server settings
const (
	DefaultPort = 8080
)

// Default economy tuning values. Every one of these can be overridden
// through the environment variable of the same name.
const (
	DefaultMarketFeePercent   = 5
	DefaultMinMarketPrice     = 10
	DefaultMaxMarketPrice     = 1_000_000
	DefaultMaxListingsPerUser = 20
	DefaultCaseOpenDailyLimit = 10
	DefaultDailyRewardCoins   = 100
	DefaultDailyRewardXP      = 50
	DefaultStarterPackCoins   = 500
	DefaultVoteRewardCoins    = 50
)
