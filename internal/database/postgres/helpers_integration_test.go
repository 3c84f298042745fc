package postgres

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/mrivera/CaseVaultBot_Go/internal/database"
)

// startTestDB spins up a throwaway Postgres container, applies the
// migrations and returns a connected pool. Callers get cleanup via
// t.Cleanup.
func startTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	ctx := context.Background()

	var pgContainer *pgcontainer.PostgresContainer
	var err error

	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Skipf("Skipping integration test due to panic (likely Docker issue): %v", r)
			}
		}()
		pgContainer, err = pgcontainer.Run(ctx,
			"postgres:15-alpine",
			pgcontainer.WithDatabase("testdb"),
			pgcontainer.WithUsername("testuser"),
			pgcontainer.WithPassword("testpass"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(15*time.Second)),
		)
	}()
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	if pgContainer == nil {
		return nil
	}
	t.Cleanup(func() {
		_ = pgContainer.Terminate(ctx)
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	pool, err := database.NewPool(connStr, 20, 30*time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := applyMigrations(ctx, pool, "../../../migrations"); err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}
	return pool
}

// applyMigrations runs all migration files in order, stripping goose
// markers so plain Exec can run them.
func applyMigrations(ctx context.Context, pool *pgxpool.Pool, migrationsDir string) error {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to read migrations dir: %w", err)
	}

	var migrationFiles []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			migrationFiles = append(migrationFiles, filepath.Join(migrationsDir, entry.Name()))
		}
	}
	sort.Strings(migrationFiles)

	for _, file := range migrationFiles {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		contentStr := string(content)
		contentStr = strings.Replace(contentStr, "-- +goose Up", "", 1)
		if downIdx := strings.Index(contentStr, "-- +goose Down"); downIdx != -1 {
			contentStr = contentStr[:downIdx]
		}
		contentStr = strings.TrimSpace(contentStr)

		if _, err := pool.Exec(ctx, contentStr); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", file, err)
		}
	}
	return nil
}

// seedCatalog inserts a minimal key/case/item catalog for integration
// tests and returns the case ID.
func seedCatalog(ctx context.Context, t *testing.T, pool *pgxpool.Pool) int {
	t.Helper()

	_, err := pool.Exec(ctx, `INSERT INTO key_defs (key_id, name, price) VALUES (1, 'Test Key', 200)`)
	if err != nil {
		t.Fatalf("failed to seed key_defs: %v", err)
	}
	_, err = pool.Exec(ctx, `
		INSERT INTO item_defs (item_def_id, name, rarity, weapon, skin, collection, icon_url)
		VALUES (101, 'MP9 | Storm', 'UNCOMMON', 'MP9', 'Storm', 'Test Collection', '')`)
	if err != nil {
		t.Fatalf("failed to seed item_defs: %v", err)
	}
	_, err = pool.Exec(ctx, `
		INSERT INTO case_defs (case_id, name, description, collection, key_id, icon_url, price, drop_table, pools)
		VALUES (1, 'Test Case', '', 'Test Collection', 1, '', 500,
		        '[{"rarity":"UNCOMMON","probability":1.0}]',
		        '{"UNCOMMON":[{"item_def_id":101,"weapon":"MP9","skin":"Storm","weight":1}]}')`)
	if err != nil {
		t.Fatalf("failed to seed case_defs: %v", err)
	}
	return 1
}
