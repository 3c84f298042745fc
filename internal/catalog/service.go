package catalog

import (
	"context"
	"time"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
	"github.com/mrivera/CaseVaultBot_Go/internal/logger"
	"github.com/mrivera/CaseVaultBot_Go/internal/repository"
)

// Service serves the item, case, and key catalog. Reads go through an
// expiring LRU cache; the backing rows only change on a content sync.
type Service interface {
	// GetCase returns one case definition with its drop table and pools.
	GetCase(ctx context.Context, caseID int) (*domain.CaseDefinition, error)

	// GetItemDefinition returns one catalog item.
	GetItemDefinition(ctx context.Context, itemDefID int) (*domain.ItemDefinition, error)

	// GetAllCases lists every case definition.
	GetAllCases(ctx context.Context) ([]domain.CaseDefinition, error)

	// GetKey returns one key definition.
	GetKey(ctx context.Context, keyID int) (*domain.KeyDefinition, error)

	// GetAllKeys lists every key definition.
	GetAllKeys(ctx context.Context) ([]domain.KeyDefinition, error)

	// SyncContent upserts loaded case content into the database and
	// drops the cache. Runs at startup after LoadDir.
	SyncContent(ctx context.Context, contents []CaseContent) error
}

type service struct {
	repo  repository.Catalog
	cache *defCache
}

// NewService creates a catalog service with default cache settings.
func NewService(repo repository.Catalog) Service {
	return NewServiceWithCache(repo, DefaultCacheSize, DefaultCacheTTL)
}

// NewServiceWithCache creates a catalog service with explicit cache
// size and TTL.
func NewServiceWithCache(repo repository.Catalog, cacheSize int, cacheTTL time.Duration) Service {
	return &service{
		repo:  repo,
		cache: newDefCache(cacheSize, cacheTTL),
	}
}

func (s *service) GetCase(ctx context.Context, caseID int) (*domain.CaseDefinition, error) {
	if def, ok := s.cache.GetCase(caseID); ok {
		return def, nil
	}

	def, err := s.repo.GetCaseDefinition(ctx, caseID)
	if err != nil {
		return nil, err
	}
	s.cache.SetCase(def)
	return def, nil
}

func (s *service) GetItemDefinition(ctx context.Context, itemDefID int) (*domain.ItemDefinition, error) {
	if def, ok := s.cache.GetItem(itemDefID); ok {
		return def, nil
	}

	def, err := s.repo.GetItemDefinition(ctx, itemDefID)
	if err != nil {
		return nil, err
	}
	s.cache.SetItem(def)
	return def, nil
}

func (s *service) GetAllCases(ctx context.Context) ([]domain.CaseDefinition, error) {
	return s.repo.GetAllCaseDefinitions(ctx)
}

func (s *service) GetKey(ctx context.Context, keyID int) (*domain.KeyDefinition, error) {
	if def, ok := s.cache.GetKey(keyID); ok {
		return def, nil
	}

	def, err := s.repo.GetKeyDefinition(ctx, keyID)
	if err != nil {
		return nil, err
	}
	s.cache.SetKey(def)
	return def, nil
}

func (s *service) GetAllKeys(ctx context.Context) ([]domain.KeyDefinition, error) {
	return s.repo.GetAllKeyDefinitions(ctx)
}

func (s *service) SyncContent(ctx context.Context, contents []CaseContent) error {
	for i := range contents {
		content := &contents[i]
		if err := s.repo.UpsertKeyDefinition(ctx, &content.Key); err != nil {
			return err
		}
		for j := range content.Items {
			if _, err := s.repo.UpsertItemDefinition(ctx, &content.Items[j]); err != nil {
				return err
			}
		}
		if err := s.repo.UpsertCaseDefinition(ctx, &content.Case); err != nil {
			return err
		}
	}

	s.cache.Clear()
	logger.FromContext(ctx).Info(LogMsgContentSynced, "cases", len(contents))
	return nil
}
