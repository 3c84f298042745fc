package main

import (
	"github.com/mrivera/CaseVaultBot_Go/internal/config"
	"github.com/mrivera/CaseVaultBot_Go/internal/handler"
	"github.com/mrivera/CaseVaultBot_Go/internal/logger"
)

// initLogger initializes the logger using centralized app configuration
func initLogger(cfg *config.Config) {
	// Source info only in dev
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	loggerConfig := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		logger.DefaultServiceName,
		handler.AppVersion(),
		cfg.Environment,
		addSource,
	)

	logger.InitLogger(loggerConfig)
}
