package engine

import (
	"math/rand"
	"sort"

	"github.com/cutplan/rebarcut/internal/model"
)

// Crossover produces two children from two parents per cfg.Crossover.
// Parents are never mutated; children start as deep clones of pattern
// slices drawn from each parent.
func Crossover(rng *rand.Rand, a, b model.Chromosome, cfg model.EngineConfig) (model.Chromosome, model.Chromosome) {
	switch cfg.Crossover {
	case model.CrossoverTwoPoint:
		return twoPointCrossover(rng, a, b)
	case model.CrossoverPieceAware:
		return pieceAwareCrossover(rng, a, b)
	default:
		return onePointCrossover(rng, a, b)
	}
}

func clonePatterns(patterns []model.Pattern) []model.Pattern {
	out := make([]model.Pattern, len(patterns))
	for i, p := range patterns {
		out[i] = p.Clone()
	}
	return out
}

// onePointCrossover splits each parent's pattern list at one random index
// and swaps tails, the pattern-list analogue of single-point crossover.
func onePointCrossover(rng *rand.Rand, a, b model.Chromosome) (model.Chromosome, model.Chromosome) {
	if len(a.Patterns) == 0 || len(b.Patterns) == 0 {
		return a.Clone(), b.Clone()
	}
	cutA := rng.Intn(len(a.Patterns) + 1)
	cutB := rng.Intn(len(b.Patterns) + 1)

	child1 := append(clonePatterns(a.Patterns[:cutA]), clonePatterns(b.Patterns[cutB:])...)
	child2 := append(clonePatterns(b.Patterns[:cutB]), clonePatterns(a.Patterns[cutA:])...)
	return model.Chromosome{Patterns: child1}, model.Chromosome{Patterns: child2}
}

// twoPointCrossover swaps the middle segment between two cut points.
func twoPointCrossover(rng *rand.Rand, a, b model.Chromosome) (model.Chromosome, model.Chromosome) {
	if len(a.Patterns) < 2 || len(b.Patterns) < 2 {
		return onePointCrossover(rng, a, b)
	}
	a1, a2 := twoSortedCuts(rng, len(a.Patterns))
	b1, b2 := twoSortedCuts(rng, len(b.Patterns))

	var child1, child2 []model.Pattern
	child1 = append(child1, clonePatterns(a.Patterns[:a1])...)
	child1 = append(child1, clonePatterns(b.Patterns[b1:b2])...)
	child1 = append(child1, clonePatterns(a.Patterns[a2:])...)

	child2 = append(child2, clonePatterns(b.Patterns[:b1])...)
	child2 = append(child2, clonePatterns(a.Patterns[a1:a2])...)
	child2 = append(child2, clonePatterns(b.Patterns[b2:])...)

	return model.Chromosome{Patterns: child1}, model.Chromosome{Patterns: child2}
}

func twoSortedCuts(rng *rand.Rand, n int) (int, int) {
	c1 := rng.Intn(n + 1)
	c2 := rng.Intn(n + 1)
	if c1 > c2 {
		c1, c2 = c2, c1
	}
	return c1, c2
}

// pieceAwareCrossover ranks each parent's patterns by material efficiency
// descending, merges the two ranked lists into one, and greedily walks the
// merge to assemble each child: a pattern is kept if it introduces new
// (order_id, piece_length) coverage, or the child still has fewer than two
// patterns. Assembly stops once a child reaches max(|a|,|b|)+2 patterns.
// Two children are produced by running the same greedy walk with each
// parent taking the "primary" role in turn, so ties between equally
// efficient patterns resolve toward a's patterns in child1 and toward b's
// in child2. Repair happens afterwards via RepairChild when duplicated/
// missing pieces result.
func pieceAwareCrossover(rng *rand.Rand, a, b model.Chromosome) (model.Chromosome, model.Chromosome) {
	child1 := pieceAwareChild(a, b)
	child2 := pieceAwareChild(b, a)
	return model.Chromosome{Patterns: child1}, model.Chromosome{Patterns: child2}
}

// pieceAwareChild runs the greedy merged-ranked-list walk with primary's
// patterns favored on efficiency ties against secondary's.
func pieceAwareChild(primary, secondary model.Chromosome) []model.Pattern {
	merged := mergeByEfficiency(rankByEfficiency(primary.Patterns), rankByEfficiency(secondary.Patterns))

	capLimit := len(primary.Patterns)
	if len(secondary.Patterns) > capLimit {
		capLimit = len(secondary.Patterns)
	}
	capLimit += 2

	covered := make(map[model.PieceKey]bool)
	child := make([]model.Pattern, 0, capLimit)
	for _, p := range merged {
		if len(child) >= capLimit {
			break
		}
		if len(child) < 2 || introducesNewCoverage(p, covered) {
			child = append(child, p.Clone())
			markCoverage(p, covered)
		}
	}
	return child
}

// rankByEfficiency returns a clone of patterns sorted by Efficiency
// descending.
func rankByEfficiency(patterns []model.Pattern) []model.Pattern {
	out := clonePatterns(patterns)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Efficiency() > out[j].Efficiency() })
	return out
}

// mergeByEfficiency merges two already-ranked (descending) pattern lists
// into one ranked list, favoring a on ties.
func mergeByEfficiency(a, b []model.Pattern) []model.Pattern {
	merged := make([]model.Pattern, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if a[i].Efficiency() >= b[j].Efficiency() {
			merged = append(merged, a[i])
			i++
		} else {
			merged = append(merged, b[j])
			j++
		}
	}
	merged = append(merged, a[i:]...)
	merged = append(merged, b[j:]...)
	return merged
}

func introducesNewCoverage(p model.Pattern, covered map[model.PieceKey]bool) bool {
	for _, c := range p.Cuts {
		key := model.PieceKey{OrderID: c.OrderID, Length: c.PieceLength}
		if !covered[key] {
			return true
		}
	}
	return false
}

func markCoverage(p model.Pattern, covered map[model.PieceKey]bool) {
	for _, c := range p.Cuts {
		covered[model.PieceKey{OrderID: c.OrderID, Length: c.PieceLength}] = true
	}
}

// RepairChild fixes a post-crossover chromosome against demand: missing
// pieces are packed in (scrap first, then smallest fitting standard bar,
// opening new patterns as needed), and surplus copies beyond what demand
// requires are trimmed starting from the least efficient pattern that
// carries them, per spec.md §4.5's repair hook.
func RepairChild(chrom model.Chromosome, demand []model.Piece, standardLengths []float64, scrapLengths []float64) model.Chromosome {
	out := chrom.Clone()
	completeness := model.CheckCompleteness(out, demand)

	if len(completeness.Surplus) > 0 {
		trimSurplus(&out, completeness.Surplus)
	}
	if len(completeness.Missing) > 0 {
		addMissing(&out, completeness.Missing, standardLengths, scrapLengths)
	}
	return out
}

func trimSurplus(chrom *model.Chromosome, surplus map[model.PieceKey]int) {
	remaining := make(map[model.PieceKey]int, len(surplus))
	for k, v := range surplus {
		remaining[k] = v
	}
	// Trim starting from the least efficient patterns first so the
	// better-packed genes from crossover survive intact.
	order := make([]int, len(chrom.Patterns))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return chrom.Patterns[order[i]].Efficiency() < chrom.Patterns[order[j]].Efficiency()
	})

	for _, idx := range order {
		p := &chrom.Patterns[idx]
		for _, c := range append([]model.Cut{}, p.Cuts...) {
			key := model.PieceKey{OrderID: c.OrderID, Length: c.PieceLength}
			need, ok := remaining[key]
			if !ok || need <= 0 {
				continue
			}
			trim := c.CountInPattern
			if trim > need {
				trim = need
			}
			p.AddCut(c.OrderID, c.PieceLength, -trim)
			remaining[key] -= trim
		}
	}
}

func addMissing(chrom *model.Chromosome, missing map[model.PieceKey]int, standardLengths []float64, scrapLengths []float64) {
	var demand []model.Piece
	for k, count := range missing {
		if count <= 0 {
			continue
		}
		demand = append(demand, model.Piece{OrderID: k.OrderID, Length: k.Length, RequiredCount: count})
	}
	if len(demand) == 0 {
		return
	}
	added := BFD(demand, standardLengths, scrapLengths)
	chrom.Patterns = append(chrom.Patterns, added...)
}
