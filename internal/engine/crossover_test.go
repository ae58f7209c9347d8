package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cutplan/rebarcut/internal/model"
)

func samplePatterns(t *testing.T) (model.Chromosome, model.Chromosome) {
	t.Helper()
	p1, err := model.MakePattern(6, model.Standard, []model.Cut{{OrderID: "A", PieceLength: 2, CountInPattern: 3}})
	require.NoError(t, err)
	p2, err := model.MakePattern(9, model.Standard, []model.Cut{{OrderID: "B", PieceLength: 3, CountInPattern: 3}})
	require.NoError(t, err)
	p3, err := model.MakePattern(12, model.Standard, []model.Cut{{OrderID: "A", PieceLength: 2, CountInPattern: 6}})
	require.NoError(t, err)
	p4, err := model.MakePattern(6, model.Standard, []model.Cut{{OrderID: "B", PieceLength: 1.5, CountInPattern: 4}})
	require.NoError(t, err)

	a := model.Chromosome{Patterns: []model.Pattern{p1, p2}}
	b := model.Chromosome{Patterns: []model.Pattern{p3, p4}}
	return a, b
}

func TestOnePointCrossoverProducesValidChildren(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a, b := samplePatterns(t)
	cfg := model.DefaultEngineConfig()
	cfg.Crossover = model.CrossoverOnePoint

	c1, c2 := Crossover(rng, a, b, cfg)
	for _, p := range append(c1.Patterns, c2.Patterns...) {
		assert.True(t, p.Valid())
	}
}

func TestTwoPointCrossoverProducesValidChildren(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	a, b := samplePatterns(t)
	cfg := model.DefaultEngineConfig()
	cfg.Crossover = model.CrossoverTwoPoint

	c1, c2 := Crossover(rng, a, b, cfg)
	for _, p := range append(c1.Patterns, c2.Patterns...) {
		assert.True(t, p.Valid())
	}
}

func TestPieceAwareCrossoverProducesValidChildren(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a, b := samplePatterns(t)
	cfg := model.DefaultEngineConfig()
	cfg.Crossover = model.CrossoverPieceAware

	c1, c2 := Crossover(rng, a, b, cfg)
	for _, p := range append(c1.Patterns, c2.Patterns...) {
		assert.True(t, p.Valid())
	}
}

func TestCrossoverNeverMutatesParents(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	a, b := samplePatterns(t)
	aBefore := a.Clone()
	bBefore := b.Clone()

	Crossover(rng, a, b, model.DefaultEngineConfig())

	assert.Equal(t, aBefore, a)
	assert.Equal(t, bBefore, b)
}

func TestRepairChildFillsMissingDemand(t *testing.T) {
	p, err := model.MakePattern(6, model.Standard, []model.Cut{{OrderID: "A", PieceLength: 2, CountInPattern: 2}})
	require.NoError(t, err)
	chrom := model.Chromosome{Patterns: []model.Pattern{p}}
	demand := []model.Piece{{OrderID: "A", Length: 2, RequiredCount: 5}}

	repaired := RepairChild(chrom, demand, []float64{6, 9}, nil)
	completeness := model.CheckCompleteness(repaired, demand)
	assert.Empty(t, completeness.Missing)
}

func TestRepairChildTrimsSurplus(t *testing.T) {
	p, err := model.MakePattern(12, model.Standard, []model.Cut{{OrderID: "A", PieceLength: 2, CountInPattern: 6}})
	require.NoError(t, err)
	chrom := model.Chromosome{Patterns: []model.Pattern{p}}
	demand := []model.Piece{{OrderID: "A", Length: 2, RequiredCount: 3}}

	repaired := RepairChild(chrom, demand, []float64{6, 9, 12}, nil)
	completeness := model.CheckCompleteness(repaired, demand)
	assert.Empty(t, completeness.Surplus)
}
