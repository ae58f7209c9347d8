package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cutplan/rebarcut/internal/model"
)

func TestFitnessFeasibleDominatesInfeasible(t *testing.T) {
	demand := []model.Piece{{OrderID: "A", Length: 2, RequiredCount: 3}}
	weights := model.DefaultFitnessWeights()

	exactPattern, err := model.MakePattern(6, model.Standard, []model.Cut{{OrderID: "A", PieceLength: 2, CountInPattern: 3}})
	require.NoError(t, err)
	exact := model.Chromosome{Patterns: []model.Pattern{exactPattern}}

	shortPattern, err := model.MakePattern(6, model.Standard, []model.Cut{{OrderID: "A", PieceLength: 2, CountInPattern: 2}})
	require.NoError(t, err)
	short := model.Chromosome{Patterns: []model.Pattern{shortPattern}}

	assert.Less(t, Fitness(exact, demand, weights), Fitness(short, demand, weights))
}

func TestFitnessBreakdownSumsToTotal(t *testing.T) {
	demand := []model.Piece{{OrderID: "A", Length: 2, RequiredCount: 2}}
	p, err := model.MakePattern(5, model.Scrap, []model.Cut{{OrderID: "A", PieceLength: 2, CountInPattern: 2}})
	require.NoError(t, err)
	chrom := model.Chromosome{Patterns: []model.Pattern{p}}

	b := Evaluate(chrom, demand, model.DefaultFitnessWeights())
	assert.InDelta(t, b.Waste+b.Missing+b.Surplus+b.Bars-b.Reuse, b.Total, 1e-9)
}

func TestFitnessRewardsScrapReuse(t *testing.T) {
	demand := []model.Piece{{OrderID: "A", Length: 2, RequiredCount: 2}}
	weights := model.DefaultFitnessWeights()

	standardPattern, err := model.MakePattern(5, model.Standard, []model.Cut{{OrderID: "A", PieceLength: 2, CountInPattern: 2}})
	require.NoError(t, err)
	viaStandard := model.Chromosome{Patterns: []model.Pattern{standardPattern}}

	scrapPattern, err := model.MakePattern(5, model.Scrap, []model.Cut{{OrderID: "A", PieceLength: 2, CountInPattern: 2}})
	require.NoError(t, err)
	viaScrap := model.Chromosome{Patterns: []model.Pattern{scrapPattern}}

	assert.Less(t, Fitness(viaScrap, demand, weights), Fitness(viaStandard, demand, weights))
}
