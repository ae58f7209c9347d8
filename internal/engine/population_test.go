package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cutplan/rebarcut/internal/model"
)

func TestInitializePopulationSizeAndValidity(t *testing.T) {
	cfg := model.DefaultEngineConfig()
	cfg.PopulationSize = 12
	rng := rand.New(rand.NewSource(1))
	demand := []model.Piece{
		{OrderID: "A", Length: 2.5, RequiredCount: 4},
		{OrderID: "B", Length: 1.2, RequiredCount: 7},
	}
	pop := InitializePopulation(rng, demand, []float64{6, 9, 12}, nil, cfg)
	require.Len(t, pop, cfg.PopulationSize)
	for _, chrom := range pop {
		for _, p := range chrom.Patterns {
			assert.True(t, p.Valid())
		}
	}
}

func TestInitializePopulationRandomStrategySkipsHeuristics(t *testing.T) {
	cfg := model.DefaultEngineConfig()
	cfg.InitStrategy = model.InitRandom
	cfg.PopulationSize = 8
	rng := rand.New(rand.NewSource(2))
	demand := []model.Piece{{OrderID: "A", Length: 2, RequiredCount: 5}}
	pop := InitializePopulation(rng, demand, []float64{6}, nil, cfg)
	assert.Len(t, pop, cfg.PopulationSize)
}

func TestSeedFromAnalyzerMatchesWorkedExample(t *testing.T) {
	demand := []model.Piece{{OrderID: "A", Length: 1.08, RequiredCount: 459}}
	chrom, ok := seedFromAnalyzer(demand, []float64{6.0, 9.0, 12.0}, 10)
	require.True(t, ok)
	assert.InDelta(t, 5.28, chrom.TotalWaste(), 1e-6)
}

func TestSeedFromAnalyzerFallsThroughBelowThreshold(t *testing.T) {
	demand := []model.Piece{{OrderID: "A", Length: 1.08, RequiredCount: 3}}
	_, ok := seedFromAnalyzer(demand, []float64{6.0, 9.0, 12.0}, 10)
	assert.False(t, ok)
}
