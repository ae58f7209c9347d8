package engine

import "github.com/cutplan/rebarcut/internal/model"

// Fallback runs the deterministic FFD packer, per spec.md §4.8: the driver
// invokes it when Run returns ErrEngineFailure (Run recovers panics into
// that error), so a result is always returned for a non-empty demand set.
func Fallback(demand []model.Piece, standardLengths []float64, scrapLengths []float64) model.Chromosome {
	return model.Chromosome{Patterns: FFD(demand, standardLengths, scrapLengths)}
}
