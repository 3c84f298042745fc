package droptable

import (
	"context"
	"fmt"
	"sync"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
	"github.com/mrivera/CaseVaultBot_Go/internal/logger"
	"github.com/mrivera/CaseVaultBot_Go/internal/utils"
)

// Drop is the outcome of one case roll.
type Drop struct {
	ItemDefID int
	Weapon    string
	Skin      string
	Rarity    domain.Rarity
}

// Service rolls drops against compiled case definitions.
type Service interface {
	Roll(ctx context.Context, caseDef *domain.CaseDefinition) (*Drop, error)
}

// compiledCase holds the compiled table and pools for one case type.
type compiledCase struct {
	table *Table
	pools map[domain.Rarity]*Pool
}

type service struct {
	rnd func() float64 // injectable random source

	mu    sync.RWMutex
	cache map[int]*compiledCase
}

// NewService creates a drop table service using the default random source.
func NewService() Service {
	return NewServiceWithRand(utils.RandomFloat)
}

// NewServiceWithRand creates a drop table service with an injected
// random source so tests can supply a seeded generator.
func NewServiceWithRand(rnd func() float64) Service {
	return &service{
		rnd:   rnd,
		cache: make(map[int]*compiledCase),
	}
}

// Roll selects a rarity then an item for one opening of the given case.
// Compilation happens once per case type; compiled forms are immutable
// and shared across concurrent rolls.
func (s *service) Roll(ctx context.Context, caseDef *domain.CaseDefinition) (*Drop, error) {
	cc, err := s.compiled(caseDef)
	if err != nil {
		return nil, err
	}

	rarity := cc.table.SelectRarity(s.rnd())
	pool, ok := cc.pools[rarity]
	if !ok {
		// Validated at compile time; reaching this means the definition
		// changed underneath us.
		return nil, fmt.Errorf("case %d rarity %s: %w", caseDef.ID, rarity, domain.ErrEmptyRarityPool)
	}

	entry := pool.SelectItem(s.rnd())

	logger.FromContext(ctx).Debug(LogMsgRolledDrop,
		LogFieldCase, caseDef.ID,
		LogFieldRarity, rarity,
		LogFieldItem, entry.ItemDefID)

	return &Drop{
		ItemDefID: entry.ItemDefID,
		Weapon:    entry.Weapon,
		Skin:      entry.Skin,
		Rarity:    rarity,
	}, nil
}

func (s *service) compiled(caseDef *domain.CaseDefinition) (*compiledCase, error) {
	s.mu.RLock()
	cc, ok := s.cache[caseDef.ID]
	s.mu.RUnlock()
	if ok {
		return cc, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cc, ok := s.cache[caseDef.ID]; ok {
		return cc, nil
	}

	cc, err := compile(caseDef)
	if err != nil {
		return nil, err
	}
	s.cache[caseDef.ID] = cc

	logger.Debug(LogMsgTableCompiled, LogFieldCase, caseDef.ID)
	return cc, nil
}

// Validate compiles a case definition and discards the result. Used by
// the catalog loader to reject bad content at startup rather than on
// the first open.
func Validate(caseDef *domain.CaseDefinition) error {
	_, err := compile(caseDef)
	return err
}

// compile validates and compiles a full case definition: its drop table
// and one pool per rarity the table references.
func compile(caseDef *domain.CaseDefinition) (*compiledCase, error) {
	table, err := CompileTable(caseDef.DropTable)
	if err != nil {
		return nil, fmt.Errorf("case %d: %w", caseDef.ID, err)
	}

	pools := make(map[domain.Rarity]*Pool, len(caseDef.Pools))
	for _, rarity := range table.Rarities() {
		pool, err := CompilePool(rarity, caseDef.Pools[rarity])
		if err != nil {
			return nil, fmt.Errorf("case %d: %w", caseDef.ID, err)
		}
		pools[rarity] = pool
	}

	return &compiledCase{table: table, pools: pools}, nil
}
