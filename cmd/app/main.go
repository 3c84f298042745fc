package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrivera/CaseVaultBot_Go/internal/cases"
	"github.com/mrivera/CaseVaultBot_Go/internal/catalog"
	"github.com/mrivera/CaseVaultBot_Go/internal/config"
	"github.com/mrivera/CaseVaultBot_Go/internal/database"
	"github.com/mrivera/CaseVaultBot_Go/internal/database/postgres"
	"github.com/mrivera/CaseVaultBot_Go/internal/droptable"
	"github.com/mrivera/CaseVaultBot_Go/internal/handler"
	"github.com/mrivera/CaseVaultBot_Go/internal/inventory"
	"github.com/mrivera/CaseVaultBot_Go/internal/ledger"
	"github.com/mrivera/CaseVaultBot_Go/internal/market"
	"github.com/mrivera/CaseVaultBot_Go/internal/reward"
	"github.com/mrivera/CaseVaultBot_Go/internal/server"
)

const (
	dbMaxConns       = 20
	dbMaxIdle        = 30 * time.Minute
	dbMaxLife        = time.Hour
	shutdownTimeout  = 10 * time.Second
	caseContentDir   = "configs/cases"
	contentSyncLimit = 30 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)
	handler.InitValidator()

	pool, err := database.NewPool(cfg.GetDBConnString(), dbMaxConns, dbMaxIdle, dbMaxLife)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	catalogService := catalog.NewService(postgres.NewCatalogRepository(pool))
	if err := syncCaseContent(catalogService); err != nil {
		slog.Error("Case content sync failed", "error", err)
		os.Exit(1)
	}

	casesRepo := postgres.NewCasesRepository(pool)
	casesService := cases.NewService(
		casesRepo,
		catalogService,
		droptable.NewService(),
		cfg.CaseOpenDailyLimit,
	)
	marketService := market.NewService(postgres.NewMarketRepository(pool), market.Config{
		FeePercent:         cfg.MarketFeePercent,
		MinPrice:           cfg.MinMarketPrice,
		MaxPrice:           cfg.MaxMarketPrice,
		MaxListingsPerUser: cfg.MaxListingsPerUser,
	})
	economyRepo := postgres.NewEconomyRepository(pool)
	ledgerService := ledger.NewService(economyRepo)
	inventoryService := inventory.NewService(postgres.NewInventoryRepository(pool))
	rewardService := reward.NewService(economyRepo, casesRepo, reward.Config{
		DailyCoins:       cfg.DailyRewardCoins,
		DailyXP:          cfg.DailyRewardXP,
		StarterPackCoins: cfg.StarterPackCoins,
		VoteCoins:        cfg.VoteRewardCoins,
	})

	srv := server.NewServer(cfg.Port, cfg.APIKey, cfg.TrustedProxies, pool,
		casesService, marketService, ledgerService, inventoryService, rewardService)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Stop(ctx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

// syncCaseContent loads case definitions from disk and upserts them so
// the catalog matches the shipped content files on every boot.
func syncCaseContent(svc catalog.Service) error {
	contents, err := catalog.LoadDir(caseContentDir)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), contentSyncLimit)
	defer cancel()

	return svc.SyncContent(ctx, contents)
}
