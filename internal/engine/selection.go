package engine

import (
	"math/rand"

	"github.com/cutplan/rebarcut/internal/model"
)

// Select picks one parent from pop (already fitness-scored, lower is
// better) according to cfg.Selection.
func Select(rng *rand.Rand, pop []model.Chromosome, cfg model.EngineConfig) model.Chromosome {
	switch cfg.Selection {
	case model.SelectionRoulette:
		return rouletteSelect(rng, pop)
	case model.SelectionElitist:
		return elitistSelect(rng, pop)
	default: // TOURNAMENT
		return tournamentSelect(rng, pop, cfg.TournamentSize)
	}
}

// tournamentSelect draws size distinct competitor indices (without
// replacement within this one draw) and returns the one with lowest
// fitness. Repeated calls may of course draw overlapping competitors again
// across draws.
func tournamentSelect(rng *rand.Rand, pop []model.Chromosome, size int) model.Chromosome {
	if size < 1 {
		size = 1
	}
	if size > len(pop) {
		size = len(pop)
	}
	idx := rng.Perm(len(pop))[:size]
	best := pop[idx[0]]
	for _, i := range idx[1:] {
		if pop[i].Fitness < best.Fitness {
			best = pop[i]
		}
	}
	return best
}

// rouletteSelect implements fitness-proportionate selection. Because
// fitness here is a cost to minimize, each chromosome's selection weight is
// derived by inverting it relative to the worst fitness in the population:
// weight = (worstFitness - fitness) + epsilon, so lower-cost chromosomes get
// larger slices of the wheel.
func rouletteSelect(rng *rand.Rand, pop []model.Chromosome) model.Chromosome {
	worst := pop[0].Fitness
	for _, c := range pop {
		if c.Fitness > worst {
			worst = c.Fitness
		}
	}
	const epsilon = 1e-6
	total := 0.0
	weights := make([]float64, len(pop))
	for i, c := range pop {
		w := (worst - c.Fitness) + epsilon
		weights[i] = w
		total += w
	}
	target := rng.Float64() * total
	running := 0.0
	for i, w := range weights {
		running += w
		if running >= target {
			return pop[i]
		}
	}
	return pop[len(pop)-1]
}

// elitistSelect always returns the single best chromosome in the
// population; used when cfg.Selection is ELITIST and only one parent is
// needed at a time.
func elitistSelect(rng *rand.Rand, pop []model.Chromosome) model.Chromosome {
	best := pop[0]
	for _, c := range pop[1:] {
		if c.Fitness < best.Fitness {
			best = c
		}
	}
	return best
}

// SelectParents builds the n parents needed for one generation's offspring
// according to cfg.Selection. Elitist truncation ranks the whole population
// once and takes the top n distinct chromosomes (spec's "deterministic
// sort ascending, take first n"), cycling back to the front if n exceeds
// the population size; every other mode draws n parents one at a time via
// Select, since each of those draws is already independent.
func SelectParents(rng *rand.Rand, pop []model.Chromosome, cfg model.EngineConfig, n int) []model.Chromosome {
	if cfg.Selection == model.SelectionElitist {
		return elitistTruncate(pop, n)
	}
	parents := make([]model.Chromosome, 0, n)
	for len(parents) < n {
		parents = append(parents, Select(rng, pop, cfg))
	}
	return parents
}

func elitistTruncate(pop []model.Chromosome, n int) []model.Chromosome {
	ranked := make([]model.Chromosome, len(pop))
	copy(ranked, pop)
	SortByFitness(ranked)
	parents := make([]model.Chromosome, n)
	for i := 0; i < n; i++ {
		parents[i] = ranked[i%len(ranked)]
	}
	return parents
}

// SortByFitness sorts pop ascending by Fitness (best first), in place.
func SortByFitness(pop []model.Chromosome) {
	for i := 1; i < len(pop); i++ {
		for j := i; j > 0 && pop[j].Fitness < pop[j-1].Fitness; j-- {
			pop[j], pop[j-1] = pop[j-1], pop[j]
		}
	}
}
