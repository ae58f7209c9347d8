package engine

import (
	"math/rand"

	"github.com/cutplan/rebarcut/internal/model"
)

// homogeneousGroup is one length bucket within the demand, used to decide
// whether the exact analyzer applies and to seed chromosomes from it.
type homogeneousGroup struct {
	orderID string
	length  float64
	count   int
}

func groupHomogeneous(demand []model.Piece) []homogeneousGroup {
	consolidated := model.ConsolidatePieces(demand)
	groups := make([]homogeneousGroup, 0, len(consolidated))
	for _, p := range consolidated {
		groups = append(groups, homogeneousGroup{orderID: p.OrderID, length: p.Length, count: p.RequiredCount})
	}
	return groups
}

// seedFromAnalyzer builds one chromosome by running the exact homogeneous
// analyzer independently over every length bucket in demand and
// concatenating the resulting patterns. It only fires per spec.md §4.2 when
// the whole demand set reduces to single-length buckets large enough to
// cross HomogeneousThreshold; for a genuinely mixed cartilla it degrades to
// nil so the caller falls back to heuristic seeding instead.
func seedFromAnalyzer(demand []model.Piece, standardLengths []float64, threshold int) (model.Chromosome, bool) {
	groups := groupHomogeneous(demand)
	if len(groups) == 0 {
		return model.Chromosome{}, false
	}
	var patterns []model.Pattern
	for _, g := range groups {
		if g.count < threshold {
			return model.Chromosome{}, false
		}
		mix, _, ok := AnalyzeHomogeneous(g.length, g.count, standardLengths)
		if !ok {
			return model.Chromosome{}, false
		}
		remaining := g.count
		for barLength, barCount := range mix {
			for i := 0; i < barCount; i++ {
				yield := int(barLength / g.length)
				if yield > remaining {
					yield = remaining
				}
				if yield <= 0 {
					continue
				}
				p, err := model.MakePattern(barLength, model.Standard, []model.Cut{{OrderID: g.orderID, PieceLength: g.length, CountInPattern: yield}})
				if err != nil {
					return model.Chromosome{}, false
				}
				patterns = append(patterns, p)
				remaining -= yield
			}
		}
	}
	return model.Chromosome{Patterns: patterns}, true
}

// InitializePopulation builds the starting population per spec.md §4.3: a
// HYBRID run seeds a handful of individuals from the exact homogeneous
// analyzer when the demand qualifies, splits the remainder between
// FFD/BFD heuristic packing and random-with-repair according to
// HeuristicRatio, and shuffles the result using the engine's single seeded
// random stream. HEURISTIC and RANDOM strategies skip analyzer seeding and
// always produce heuristic or random individuals respectively.
func InitializePopulation(rng *rand.Rand, demand []model.Piece, standardLengths []float64, scrapLengths []float64, cfg model.EngineConfig) []model.Chromosome {
	pop := make([]model.Chromosome, 0, cfg.PopulationSize)

	seedCount := 0
	if cfg.InitStrategy == model.InitHybrid {
		if chrom, ok := seedFromAnalyzer(demand, standardLengths, cfg.HomogeneousThreshold); ok {
			maxSeeds := cfg.PopulationSize / 4
			if maxSeeds > 3 {
				maxSeeds = 3
			}
			if maxSeeds < 1 {
				maxSeeds = 1
			}
			for i := 0; i < maxSeeds && len(pop) < cfg.PopulationSize; i++ {
				pop = append(pop, chrom.Clone())
				seedCount++
			}
		}
	}

	remaining := cfg.PopulationSize - len(pop)
	var heuristicCount int
	switch cfg.InitStrategy {
	case model.InitRandom:
		heuristicCount = 0
	case model.InitHeuristic:
		heuristicCount = remaining
	default: // HYBRID
		heuristicCount = int(float64(remaining) * cfg.HeuristicRatio)
	}
	randomCount := remaining - heuristicCount

	for i := 0; i < heuristicCount; i++ {
		var patterns []model.Pattern
		if i%2 == 0 {
			patterns = FFD(demand, standardLengths, scrapLengths)
		} else {
			patterns = BFD(demand, standardLengths, scrapLengths)
		}
		pop = append(pop, model.Chromosome{Patterns: patterns})
	}

	for i := 0; i < randomCount; i++ {
		patterns := RandomWithRepair(rng, demand, standardLengths, scrapLengths)
		pop = append(pop, model.Chromosome{Patterns: patterns})
	}

	rng.Shuffle(len(pop), func(i, j int) { pop[i], pop[j] = pop[j], pop[i] })
	return pop
}
