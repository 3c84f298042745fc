package config

import (
	"fmt"
)

// Validate checks that loaded configuration values are internally consistent.
// Called by Load after all environment variables are resolved.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("API_KEY environment variable must be set for security")
	}

	if c.MarketFeePercent < 0 || c.MarketFeePercent > 100 {
		return fmt.Errorf("MARKET_FEE_PERCENT must be between 0 and 100, got %d", c.MarketFeePercent)
	}

	if c.MinMarketPrice <= 0 {
		return fmt.Errorf("MIN_MARKET_PRICE must be positive, got %d", c.MinMarketPrice)
	}

	if c.MaxMarketPrice < c.MinMarketPrice {
		return fmt.Errorf("MAX_MARKET_PRICE (%d) must not be below MIN_MARKET_PRICE (%d)", c.MaxMarketPrice, c.MinMarketPrice)
	}

	if c.MaxListingsPerUser <= 0 {
		return fmt.Errorf("MAX_LISTINGS_PER_USER must be positive, got %d", c.MaxListingsPerUser)
	}

	if c.CaseOpenDailyLimit <= 0 {
		return fmt.Errorf("CASE_OPEN_DAILY_LIMIT must be positive, got %d", c.CaseOpenDailyLimit)
	}

	return nil
}
