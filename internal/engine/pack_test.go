package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cutplan/rebarcut/internal/model"
)

func demandCoverage(t *testing.T, patterns []model.Pattern, demand []model.Piece) {
	t.Helper()
	chrom := model.Chromosome{Patterns: patterns}
	completeness := model.CheckCompleteness(chrom, demand)
	assert.Empty(t, completeness.Missing, "expected all demand covered")
}

func TestFFDCoversDemandAndRespectsInvariants(t *testing.T) {
	demand := []model.Piece{
		{OrderID: "A", Length: 2.5, RequiredCount: 4},
		{OrderID: "B", Length: 1.2, RequiredCount: 7},
	}
	patterns := FFD(demand, []float64{6, 9, 12}, nil)
	require.NotEmpty(t, patterns)
	demandCoverage(t, patterns, demand)
	for _, p := range patterns {
		assert.True(t, p.Valid())
	}
}

func TestFFDUsesScrapBeforeStandard(t *testing.T) {
	demand := []model.Piece{{OrderID: "A", Length: 3, RequiredCount: 1}}
	patterns := FFD(demand, []float64{6, 9, 12}, []float64{4})
	require.Len(t, patterns, 1)
	assert.Equal(t, model.Scrap, patterns[0].SourceKind)
	assert.Equal(t, 4.0, patterns[0].SourceLength)
}

func TestBFDCoversDemandAndPicksTighterFit(t *testing.T) {
	demand := []model.Piece{
		{OrderID: "A", Length: 5, RequiredCount: 1},
		{OrderID: "B", Length: 5, RequiredCount: 1},
		{OrderID: "C", Length: 1, RequiredCount: 1},
	}
	patterns := BFD(demand, []float64{6, 10}, nil)
	demandCoverage(t, patterns, demand)
	for _, p := range patterns {
		assert.True(t, p.Valid())
	}

	// 7 opens the 12 m scrap (residual 5), 6 opens an 8 m bar (residual 2);
	// the 2 then goes to the tighter 8 m bar, where FFD would take the first.
	tight := BFD([]model.Piece{
		{OrderID: "D", Length: 7, RequiredCount: 1},
		{OrderID: "E", Length: 6, RequiredCount: 1},
		{OrderID: "F", Length: 2, RequiredCount: 1},
	}, []float64{8}, []float64{12})
	require.Len(t, tight, 2)
	assert.Equal(t, 8.0, tight[1].SourceLength)
	assert.Equal(t, 0.0, tight[1].Waste)
}

func TestRandomWithRepairCoversDemand(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	demand := []model.Piece{
		{OrderID: "A", Length: 2.5, RequiredCount: 5},
		{OrderID: "B", Length: 3.1, RequiredCount: 3},
	}
	patterns := RandomWithRepair(rng, demand, []float64{6, 9, 12}, []float64{4, 5})
	demandCoverage(t, patterns, demand)
	for _, p := range patterns {
		assert.True(t, p.Valid())
	}
}

func TestFFDLeavesOversizedPieceUnplaced(t *testing.T) {
	demand := []model.Piece{{OrderID: "A", Length: 20, RequiredCount: 1}}
	patterns := FFD(demand, []float64{6, 9, 12}, nil)
	chrom := model.Chromosome{Patterns: patterns}
	completeness := model.CheckCompleteness(chrom, demand)
	assert.NotEmpty(t, completeness.Missing)
}
