package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cutplan/rebarcut/internal/model"
)

func TestFallbackProducesValidCompleteChromosome(t *testing.T) {
	demand := []model.Piece{
		{OrderID: "A", Length: 2.5, RequiredCount: 4},
		{OrderID: "B", Length: 1.2, RequiredCount: 7},
	}
	chrom := Fallback(demand, []float64{6, 9, 12}, []float64{4})
	for _, p := range chrom.Patterns {
		assert.True(t, p.Valid())
	}
	completeness := model.CheckCompleteness(chrom, demand)
	assert.Empty(t, completeness.Missing)
}

func TestFallbackRecordsUnplaceablePiece(t *testing.T) {
	demand := []model.Piece{{OrderID: "A", Length: 20, RequiredCount: 1}}
	chrom := Fallback(demand, []float64{6, 9, 12}, nil)
	completeness := model.CheckCompleteness(chrom, demand)
	assert.NotEmpty(t, completeness.Missing)
}
