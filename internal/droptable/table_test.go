package droptable

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrivera/CaseVaultBot_Go/internal/domain"
)

// classicTable mirrors a production case drop table: heavily weighted
// toward UNCOMMON with a long rare tail.
func classicTable() []domain.DropTableEntry {
	return []domain.DropTableEntry{
		{Rarity: domain.RarityUncommon, Probability: 0.799},
		{Rarity: domain.RarityRare, Probability: 0.16},
		{Rarity: domain.RarityVeryRare, Probability: 0.032},
		{Rarity: domain.RarityLegendary, Probability: 0.0064},
		{Rarity: domain.RarityExotic, Probability: 0.0026},
	}
}

func TestCompileTable_Valid(t *testing.T) {
	table, err := CompileTable(classicTable())
	require.NoError(t, err)

	// Entries are ordered by descending probability
	assert.Equal(t, []domain.Rarity{
		domain.RarityUncommon,
		domain.RarityRare,
		domain.RarityVeryRare,
		domain.RarityLegendary,
		domain.RarityExotic,
	}, table.Rarities())
}

func TestCompileTable_CorruptSum(t *testing.T) {
	def := []domain.DropTableEntry{
		{Rarity: domain.RarityCommon, Probability: 0.5},
		{Rarity: domain.RarityRare, Probability: 0.4},
	}

	_, err := CompileTable(def)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCorruptDropTable)
	assert.Contains(t, err.Error(), "0.9")
}

func TestCompileTable_UnknownRarity(t *testing.T) {
	def := []domain.DropTableEntry{
		{Rarity: "MYTHIC", Probability: 1.0},
	}

	_, err := CompileTable(def)
	assert.ErrorIs(t, err, domain.ErrCorruptDropTable)
}

func TestCompileTable_Empty(t *testing.T) {
	_, err := CompileTable(nil)
	assert.ErrorIs(t, err, domain.ErrCorruptDropTable)
}

func TestSelectRarity_Boundary(t *testing.T) {
	table, err := CompileTable(classicTable())
	require.NoError(t, err)

	// r=0.5 falls inside the first (UNCOMMON) bucket whose cumulative
	// boundary is 0.799
	assert.Equal(t, domain.RarityUncommon, table.SelectRarity(0.5))

	// A draw exactly on a boundary belongs to the tier ending there.
	assert.Equal(t, domain.RarityUncommon, table.SelectRarity(0.799))

	// Just past the UNCOMMON boundary
	assert.Equal(t, domain.RarityRare, table.SelectRarity(math.Nextafter(0.799, 1)))

	// Deep in the tail
	assert.Equal(t, domain.RarityExotic, table.SelectRarity(0.9999))
}

func TestSelectRarity_RoundingFallback(t *testing.T) {
	// Probabilities that sum to 1 within epsilon but whose float
	// cumulative total lands fractionally below 1.
	def := []domain.DropTableEntry{
		{Rarity: domain.RarityCommon, Probability: 0.1},
		{Rarity: domain.RarityUncommon, Probability: 0.2},
		{Rarity: domain.RarityRare, Probability: 0.7},
	}
	table, err := CompileTable(def)
	require.NoError(t, err)

	// A draw at the extreme end must never fail on a well-formed table:
	// the last entry is the deterministic fallback.
	got := table.SelectRarity(math.Nextafter(1.0, 0))
	assert.True(t, got.Valid())
}

func TestSelectRarity_Distribution(t *testing.T) {
	table, err := CompileTable(classicTable())
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	const iterations = 100_000

	counts := make(map[domain.Rarity]int)
	for i := 0; i < iterations; i++ {
		counts[table.SelectRarity(rng.Float64())]++
	}

	expected := map[domain.Rarity]float64{
		domain.RarityUncommon:  0.799,
		domain.RarityRare:      0.16,
		domain.RarityVeryRare:  0.032,
		domain.RarityLegendary: 0.0064,
		domain.RarityExotic:    0.0026,
	}

	for rarity, prob := range expected {
		observed := float64(counts[rarity]) / float64(iterations)
		// Allow four standard deviations of binomial noise
		tolerance := 4 * math.Sqrt(prob*(1-prob)/float64(iterations))
		assert.InDeltaf(t, prob, observed, tolerance,
			"rarity %s: expected %.4f observed %.4f", rarity, prob, observed)
	}
}

func TestCompilePool_Empty(t *testing.T) {
	_, err := CompilePool(domain.RarityRare, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyRarityPool)
	assert.Contains(t, err.Error(), string(domain.RarityRare))
}

func TestCompilePool_NonPositiveWeight(t *testing.T) {
	_, err := CompilePool(domain.RarityRare, []domain.PoolEntry{
		{ItemDefID: 1, Weight: 0},
	})
	assert.Error(t, err)
}

func TestSelectItem_WeightedWalk(t *testing.T) {
	pool, err := CompilePool(domain.RarityUncommon, []domain.PoolEntry{
		{ItemDefID: 1, Weapon: "MP9", Skin: "Storm", Weight: 1},
		{ItemDefID: 2, Weapon: "P250", Skin: "Sand Dune", Weight: 3},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, pool.TotalWeight())

	// Rolls 0 in [0,0.25) select item 1; [0.25,1) select item 2
	assert.Equal(t, 1, pool.SelectItem(0.0).ItemDefID)
	assert.Equal(t, 1, pool.SelectItem(0.24).ItemDefID)
	assert.Equal(t, 2, pool.SelectItem(0.25).ItemDefID)
	assert.Equal(t, 2, pool.SelectItem(0.99).ItemDefID)
}

func TestSelectItem_Distribution(t *testing.T) {
	pool, err := CompilePool(domain.RarityUncommon, []domain.PoolEntry{
		{ItemDefID: 1, Weight: 1},
		{ItemDefID: 2, Weight: 2},
		{ItemDefID: 3, Weight: 7},
	})
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	const iterations = 100_000

	counts := make(map[int]int)
	for i := 0; i < iterations; i++ {
		counts[pool.SelectItem(rng.Float64()).ItemDefID]++
	}

	for id, weight := range map[int]float64{1: 0.1, 2: 0.2, 3: 0.7} {
		observed := float64(counts[id]) / float64(iterations)
		tolerance := 4 * math.Sqrt(weight*(1-weight)/float64(iterations))
		assert.InDelta(t, weight, observed, tolerance)
	}
}
