package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cutplan/rebarcut/internal/model"
)

func twoPatternChromosome(t *testing.T) model.Chromosome {
	t.Helper()
	p1, err := model.MakePattern(6, model.Standard, []model.Cut{{OrderID: "A", PieceLength: 2, CountInPattern: 3}})
	require.NoError(t, err)
	p2, err := model.MakePattern(9, model.Standard, []model.Cut{{OrderID: "B", PieceLength: 3, CountInPattern: 2}})
	require.NoError(t, err)
	return model.Chromosome{Patterns: []model.Pattern{p1, p2}}
}

func TestMutateNeverInvalidatesPatterns(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	demand := []model.Piece{
		{OrderID: "A", Length: 2, RequiredCount: 3},
		{OrderID: "B", Length: 3, RequiredCount: 2},
	}
	cfg := model.DefaultEngineConfig()
	cfg.PMutIndividual = 1
	cfg.PMutGene = 1

	for i := 0; i < 50; i++ {
		chrom := twoPatternChromosome(t)
		Mutate(rng, &chrom, demand, []float64{6, 9, 12}, []float64{5}, cfg)
		for _, p := range chrom.Patterns {
			assert.True(t, p.Valid())
		}
	}
}

func TestMutateIsNoOpWhenPMutIndividualIsZero(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	chrom := twoPatternChromosome(t)
	before := chrom.Clone()
	cfg := model.DefaultEngineConfig()
	cfg.PMutIndividual = 0

	Mutate(rng, &chrom, nil, []float64{6, 9, 12}, nil, cfg)
	assert.Equal(t, before, chrom)
}

func TestChangeSourceKeepsPieceCoverage(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	chrom := twoPatternChromosome(t)
	before := chrom.Patterns[0].PieceCount()
	changeSource(rng, &chrom, 0, []float64{6, 9, 12}, []float64{7})
	assert.Equal(t, before, chrom.Patterns[0].PieceCount())
	assert.True(t, chrom.Patterns[0].Valid())
}

func TestMovePieceRelocatesWithinCapacity(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	p1, err := model.MakePattern(6, model.Standard, []model.Cut{{OrderID: "A", PieceLength: 2, CountInPattern: 3}})
	require.NoError(t, err)
	p2, err := model.MakePattern(12, model.Standard, nil)
	require.NoError(t, err)
	chrom := model.Chromosome{Patterns: []model.Pattern{p1, p2}}

	movePiece(rng, &chrom, 0)
	for _, p := range chrom.Patterns {
		assert.True(t, p.Valid())
	}
	assert.Equal(t, 3, chrom.Patterns[0].PieceCount()+chrom.Patterns[1].PieceCount())
}

func TestSplitPatternKeepsTotalPieceCount(t *testing.T) {
	p, err := model.MakePattern(12, model.Standard, []model.Cut{
		{OrderID: "A", PieceLength: 2, CountInPattern: 2},
		{OrderID: "B", PieceLength: 3, CountInPattern: 2},
	})
	require.NoError(t, err)
	chrom := model.Chromosome{Patterns: []model.Pattern{p}}
	before := chrom.Patterns[0].PieceCount()

	splitPattern(rand.New(rand.NewSource(1)), &chrom, []float64{6, 9, 12}, nil)

	total := 0
	for _, p := range chrom.Patterns {
		assert.True(t, p.Valid())
		total += p.PieceCount()
	}
	assert.Equal(t, before, total)
}
