package repository

import (
	"context"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
)

// Catalog defines the interface for catalog persistence. Definitions
// are written once at startup by the catalog sync and read-only after.
type Catalog interface {
	UpsertItemDefinition(ctx context.Context, def *domain.ItemDefinition) (int, error)
	UpsertCaseDefinition(ctx context.Context, def *domain.CaseDefinition) error
	UpsertKeyDefinition(ctx context.Context, def *domain.KeyDefinition) error
	GetItemDefinition(ctx context.Context, itemDefID int) (*domain.ItemDefinition, error)
	GetCaseDefinition(ctx context.Context, caseID int) (*domain.CaseDefinition, error)
	GetAllCaseDefinitions(ctx context.Context) ([]domain.CaseDefinition, error)
	GetKeyDefinition(ctx context.Context, keyID int) (*domain.KeyDefinition, error)
	GetAllKeyDefinitions(ctx context.Context) ([]domain.KeyDefinition, error)
}
