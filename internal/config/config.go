package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port           int
	LogLevel       string
	LogFormat      string
	Environment    string
	DBUser         string
	DBPassword     string
	DBHost         string
	DBPort         string
	DBName         string
	APIKey         string   // API key for authentication
	TrustedProxies []string // peers allowed to set X-Forwarded-For

	// Economy tuning
	MarketFeePercent   int
	MinMarketPrice     int
	MaxMarketPrice     int
	MaxListingsPerUser int
	CaseOpenDailyLimit int
	DailyRewardCoins   int
	DailyRewardXP      int
	StarterPackCoins   int
	VoteRewardCoins    int
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    getEnv("LOG_LEVEL", "INFO"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		Environment: getEnv("ENVIRONMENT", "dev"),
		DBUser:      getEnv("DB_USER", "postgres"),
		DBPassword:  getEnv("DB_PASSWORD", "postgres"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DBName:      getEnv("DB_NAME", "casevault"),
		APIKey:      getEnv("API_KEY", ""),
	}
	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		for _, p := range strings.Split(proxies, ",") {
			if p = strings.TrimSpace(p); p != "" {
				cfg.TrustedProxies = append(cfg.TrustedProxies, p)
			}
		}
	}

	var err error
	if cfg.Port, err = getEnvInt("PORT", DefaultPort); err != nil {
		return nil, err
	}
	if cfg.MarketFeePercent, err = getEnvInt("MARKET_FEE_PERCENT", DefaultMarketFeePercent); err != nil {
		return nil, err
	}
	if cfg.MinMarketPrice, err = getEnvInt("MIN_MARKET_PRICE", DefaultMinMarketPrice); err != nil {
		return nil, err
	}
	if cfg.MaxMarketPrice, err = getEnvInt("MAX_MARKET_PRICE", DefaultMaxMarketPrice); err != nil {
		return nil, err
	}
	if cfg.MaxListingsPerUser, err = getEnvInt("MAX_LISTINGS_PER_USER", DefaultMaxListingsPerUser); err != nil {
		return nil, err
	}
	if cfg.CaseOpenDailyLimit, err = getEnvInt("CASE_OPEN_DAILY_LIMIT", DefaultCaseOpenDailyLimit); err != nil {
		return nil, err
	}
	if cfg.DailyRewardCoins, err = getEnvInt("DAILY_REWARD_COINS", DefaultDailyRewardCoins); err != nil {
		return nil, err
	}
	if cfg.DailyRewardXP, err = getEnvInt("DAILY_REWARD_XP", DefaultDailyRewardXP); err != nil {
		return nil, err
	}
	if cfg.StarterPackCoins, err = getEnvInt("STARTER_PACK_COINS", DefaultStarterPackCoins); err != nil {
		return nil, err
	}
	if cfg.VoteRewardCoins, err = getEnvInt("VOTE_REWARD_COINS", DefaultVoteRewardCoins); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return n, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}
