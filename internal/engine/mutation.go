package engine

import (
	"math/rand"

	"github.com/cutplan/rebarcut/internal/model"
)

// Mutate applies cfg's mutation operators to chrom in place, per
// spec.md §4.7: PMutIndividual gates whether the chromosome is touched at
// all, PMutGene gates each pattern independently for the per-pattern
// operators in cfg.MutationOps, and the chromosome-level operators
// (adjust-count, split, merge) each fire at their own low fixed
// probability regardless of PMutGene.
func Mutate(rng *rand.Rand, chrom *model.Chromosome, demand []model.Piece, standardLengths []float64, scrapLengths []float64, cfg model.EngineConfig) {
	if rng.Float64() > cfg.PMutIndividual {
		return
	}
	if len(cfg.MutationOps) == 0 || len(chrom.Patterns) == 0 {
		return
	}

	for i := range chrom.Patterns {
		if rng.Float64() > cfg.PMutGene {
			continue
		}
		op := cfg.MutationOps[rng.Intn(len(cfg.MutationOps))]
		applyPatternMutation(rng, chrom, i, op, standardLengths, scrapLengths)
	}

	const chromosomeOpRate = 0.05
	if rng.Float64() < chromosomeOpRate {
		adjustCount(rng, chrom, demand, standardLengths, scrapLengths)
	}
	if rng.Float64() < chromosomeOpRate {
		splitPattern(rng, chrom, standardLengths, scrapLengths)
	}
	if rng.Float64() < chromosomeOpRate {
		mergePatterns(rng, chrom, standardLengths, scrapLengths)
	}
}

func applyPatternMutation(rng *rand.Rand, chrom *model.Chromosome, idx int, op model.MutationOp, standardLengths []float64, scrapLengths []float64) {
	switch op {
	case model.MutationChangeSource:
		changeSource(rng, chrom, idx, standardLengths, scrapLengths)
	case model.MutationReoptimize:
		reoptimizePattern(chrom, idx, standardLengths, scrapLengths)
	case model.MutationMovePiece:
		movePiece(rng, chrom, idx)
	}
}

// changeSource swaps a pattern's source bar for a randomly chosen candidate
// (possibly the same length and kind) that still fits every existing cut,
// if one exists.
func changeSource(rng *rand.Rand, chrom *model.Chromosome, idx int, standardLengths []float64, scrapLengths []float64) {
	p := chrom.Patterns[idx]
	candidates := model.BuildCandidatePool(standardLengths, scrapLengths)
	var fitting []model.Bar
	for _, b := range candidates {
		if b.Length+model.LengthTolerance >= p.UsedLength {
			fitting = append(fitting, b)
		}
	}
	if len(fitting) == 0 {
		return
	}
	choice := fitting[rng.Intn(len(fitting))]
	replacement, err := model.MakePattern(choice.Length, choice.Kind, p.Cuts)
	if err != nil {
		return
	}
	chrom.Patterns[idx] = replacement
}

// reoptimizePattern re-packs a single pattern's own pieces via BFD,
// potentially splitting it across a tighter-fitting source (or the same
// one) and appending any resulting extra patterns to the chromosome.
func reoptimizePattern(chrom *model.Chromosome, idx int, standardLengths []float64, scrapLengths []float64) {
	p := chrom.Patterns[idx]
	repacked := BFDPieces(p.Cuts, standardLengths, scrapLengths)
	if len(repacked) == 0 {
		return
	}
	chrom.Patterns[idx] = repacked[0]
	if len(repacked) > 1 {
		chrom.Patterns = append(chrom.Patterns, repacked[1:]...)
	}
}

// movePiece relocates one copy of a randomly chosen cut from the mutated
// pattern to another pattern in the chromosome that has room for it, if any
// does.
func movePiece(rng *rand.Rand, chrom *model.Chromosome, idx int) {
	src := &chrom.Patterns[idx]
	if len(src.Cuts) == 0 {
		return
	}
	cutIdx := rng.Intn(len(src.Cuts))
	cut := src.Cuts[cutIdx]
	if cut.CountInPattern <= 0 {
		return
	}

	candidates := make([]int, 0, len(chrom.Patterns))
	for i, p := range chrom.Patterns {
		if i == idx {
			continue
		}
		if p.ResidualLength()+model.LengthTolerance >= cut.PieceLength {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return
	}
	dst := candidates[rng.Intn(len(candidates))]
	src.AddCut(cut.OrderID, cut.PieceLength, -1)
	chrom.Patterns[dst].AddCut(cut.OrderID, cut.PieceLength, 1)
}

// adjustCount nudges one randomly chosen demand piece's representation up
// or down by one copy, a coin flip picking the direction: it either packs
// one more copy in via BFD or removes one copy from the first pattern
// carrying it. The direction does not depend on whether that piece is
// currently missing or in surplus.
func adjustCount(rng *rand.Rand, chrom *model.Chromosome, demand []model.Piece, standardLengths []float64, scrapLengths []float64) {
	if len(demand) == 0 {
		return
	}
	piece := demand[rng.Intn(len(demand))]
	if rng.Intn(2) == 0 {
		added := BFD([]model.Piece{{OrderID: piece.OrderID, Length: piece.Length, RequiredCount: 1}}, standardLengths, scrapLengths)
		chrom.Patterns = append(chrom.Patterns, added...)
		return
	}
	for i := range chrom.Patterns {
		p := &chrom.Patterns[i]
		for _, c := range p.Cuts {
			if c.OrderID == piece.OrderID && c.PieceLength == piece.Length {
				p.AddCut(c.OrderID, c.PieceLength, -1)
				return
			}
		}
	}
}

// splitPattern breaks one randomly chosen multi-cut pattern apart by
// moving roughly half its distinct cut entries off it and re-packing them
// via BFD, which may place them on one or more new bars (scrap first).
func splitPattern(rng *rand.Rand, chrom *model.Chromosome, standardLengths []float64, scrapLengths []float64) {
	if len(chrom.Patterns) == 0 {
		return
	}
	idx := rng.Intn(len(chrom.Patterns))
	p := chrom.Patterns[idx]
	if len(p.Cuts) < 2 {
		return
	}
	half := len(p.Cuts) / 2
	moved := append([]model.Cut{}, p.Cuts[half:]...)
	kept := append([]model.Cut{}, p.Cuts[:half]...)

	keptPattern, err := model.MakePattern(p.SourceLength, p.SourceKind, kept)
	if err != nil {
		return
	}
	movedPatterns := BFDPieces(moved, standardLengths, scrapLengths)
	if len(movedPatterns) == 0 {
		return
	}
	chrom.Patterns[idx] = keptPattern
	chrom.Patterns = append(chrom.Patterns, movedPatterns...)
}

// mergePatterns combines two randomly chosen patterns' pieces onto a
// single re-packed source when their combined usage still fits one
// candidate bar, reducing bar count at the cost of re-optimizing layout.
func mergePatterns(rng *rand.Rand, chrom *model.Chromosome, standardLengths []float64, scrapLengths []float64) {
	if len(chrom.Patterns) < 2 {
		return
	}
	i := rng.Intn(len(chrom.Patterns))
	j := rng.Intn(len(chrom.Patterns))
	if i == j {
		return
	}
	combined := append(append([]model.Cut{}, chrom.Patterns[i].Cuts...), chrom.Patterns[j].Cuts...)
	repacked := BFDPieces(combined, standardLengths, scrapLengths)
	if len(repacked) == 0 || len(repacked) >= 2 {
		// Only accept the merge when it actually collapses onto fewer
		// bars than the two originals; otherwise leave the chromosome
		// untouched.
		return
	}
	lo, hi := i, j
	if lo > hi {
		lo, hi = hi, lo
	}
	chrom.Patterns[lo] = repacked[0]
	chrom.Patterns = append(chrom.Patterns[:hi], chrom.Patterns[hi+1:]...)
}
