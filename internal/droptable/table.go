package droptable

import (
	"fmt"
	"math"
	"sort"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
)

// tableEntry is one rarity with its cumulative probability.
type tableEntry struct {
	Rarity     domain.Rarity
	CumulProb  float64
	Probability float64
}

// Table is the compiled, immutable form of a case's drop table.
// Entries are ordered by descending probability so selection order is
// deterministic regardless of how the source config was written.
type Table struct {
	entries []tableEntry
}

// CompileTable validates and compiles a drop table definition.
// Returns domain.ErrCorruptDropTable when the probabilities do not sum
// to 1.0 within ProbabilityEpsilon. This is a configuration error and
// is detected here, at load time, never per roll.
func CompileTable(def []domain.DropTableEntry) (*Table, error) {
	if len(def) == 0 {
		return nil, fmt.Errorf("%s: table has no entries: %w", ErrContextCompileDropTable, domain.ErrCorruptDropTable)
	}

	sum := 0.0
	for _, e := range def {
		if !e.Rarity.Valid() {
			return nil, fmt.Errorf("%s: unknown rarity %q: %w", ErrContextCompileDropTable, e.Rarity, domain.ErrCorruptDropTable)
		}
		if e.Probability < 0 {
			return nil, fmt.Errorf("%s: negative probability for %s: %w", ErrContextCompileDropTable, e.Rarity, domain.ErrCorruptDropTable)
		}
		sum += e.Probability
	}
	if math.Abs(sum-1.0) > ProbabilityEpsilon {
		return nil, fmt.Errorf("%s: probabilities sum to %g: %w", ErrContextCompileDropTable, sum, domain.ErrCorruptDropTable)
	}

	sorted := make([]domain.DropTableEntry, len(def))
	copy(sorted, def)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Probability > sorted[j].Probability
	})

	t := &Table{entries: make([]tableEntry, 0, len(sorted))}
	cumul := 0.0
	for _, e := range sorted {
		cumul += e.Probability
		t.entries = append(t.entries, tableEntry{
			Rarity:      e.Rarity,
			CumulProb:   cumul,
			Probability: e.Probability,
		})
	}
	return t, nil
}

// SelectRarity returns the first rarity whose cumulative probability
// covers the uniform draw r in [0,1); a draw landing exactly on a
// boundary belongs to the tier ending there. Float rounding can leave
// the final cumulative value fractionally below 1, so the last entry is
// the deterministic fallback; a compiled table never fails a selection.
func (t *Table) SelectRarity(r float64) domain.Rarity {
	for _, e := range t.entries {
		if r <= e.CumulProb {
			return e.Rarity
		}
	}
	return t.entries[len(t.entries)-1].Rarity
}

// Rarities returns the tiers present in the table, in selection order.
func (t *Table) Rarities() []domain.Rarity {
	out := make([]domain.Rarity, len(t.entries))
	for i, e := range t.entries {
		out[i] = e.Rarity
	}
	return out
}

// poolEntry is one resolved item entry with a cumulative weight.
type poolEntry struct {
	Entry       domain.PoolEntry
	CumulWeight int
}

// Pool is a compiled rarity pool with cumulative weights for selection.
type Pool struct {
	entries     []poolEntry
	totalWeight int
}

// CompilePool validates and compiles one rarity pool.
// Returns domain.ErrEmptyRarityPool when the pool has no entries or no
// positive weight - a content bug, surfaced distinctly from user errors.
func CompilePool(rarity domain.Rarity, def []domain.PoolEntry) (*Pool, error) {
	p := &Pool{}
	for _, e := range def {
		if e.Weight <= 0 {
			return nil, fmt.Errorf("%s: item %d has non-positive weight %d", ErrContextCompilePool, e.ItemDefID, e.Weight)
		}
		p.totalWeight += e.Weight
		p.entries = append(p.entries, poolEntry{Entry: e, CumulWeight: p.totalWeight})
	}

	if len(p.entries) == 0 || p.totalWeight == 0 {
		return nil, fmt.Errorf("%s: %s: %w", ErrContextCompilePool, rarity, domain.ErrEmptyRarityPool)
	}
	return p, nil
}

// SelectItem returns the pool entry chosen by a weighted roll. The draw
// r is uniform in [0,1) and is scaled to [0, totalWeight).
func (p *Pool) SelectItem(r float64) domain.PoolEntry {
	roll := int(r * float64(p.totalWeight))
	lo, hi := 0, len(p.entries)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if p.entries[mid].CumulWeight <= roll {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return p.entries[lo].Entry
}

// TotalWeight returns the summed weight of all entries.
func (p *Pool) TotalWeight() int {
	return p.totalWeight
}
