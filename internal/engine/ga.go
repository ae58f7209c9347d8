package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/cutplan/rebarcut/internal/model"
)

// Run executes the generational loop of spec.md §4.8 for one sub-problem
// and returns the best chromosome found, a diagnostic Report, and an error
// wrapping model.ErrDemandEmpty / model.ErrConfigInvalid / the recovered
// model.ErrEngineFailure. Callers (the driver) are expected to retry via
// Fallback when an ErrEngineFailure is returned.
func Run(demand []model.Piece, standardLengths []float64, scrapLengths []float64, cfg model.EngineConfig) (chrom model.Chromosome, report Report, err error) {
	if err = cfg.Validate(); err != nil {
		return model.Chromosome{}, Report{}, err
	}
	demand = model.CleanDemand(demand)
	if len(demand) == 0 {
		return model.Chromosome{}, Report{}, model.ErrDemandEmpty
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", model.ErrEngineFailure, r)
		}
	}()

	seed := time.Now().UnixNano()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	pop := InitializePopulation(rng, demand, standardLengths, scrapLengths, cfg)
	rec := newRecorder()
	start := time.Now()

	var best model.Chromosome
	bestSet := false
	reason := StopMaxGenerations
	gen := 0

	for gen = 0; gen < cfg.MaxGenerations; gen++ {
		for i := range pop {
			pop[i].Fitness = Fitness(pop[i], demand, cfg.Weights)
		}
		SortByFitness(pop)
		if !bestSet || pop[0].Fitness < best.Fitness {
			best = pop[0].Clone()
			best.Fitness = pop[0].Fitness
			bestSet = true
		}

		rec.record(gen, fitnessVector(pop))

		if stop, r := shouldStop(cfg, gen, start, best.Fitness, rec); stop {
			reason = r
			break
		}

		pop = nextGeneration(rng, pop, demand, standardLengths, scrapLengths, cfg)
	}

	report = Report{
		History:     rec.history,
		Generations: gen + 1,
		BestFitness: best.Fitness,
		StopReason:  reason,
		Converged:   rec.converged(cfg.ConvergenceWindow),
		ElapsedSecs: time.Since(start).Seconds(),
		Breakdown:   Evaluate(best, demand, cfg.Weights),
	}
	return best, report, nil
}

func fitnessVector(pop []model.Chromosome) []float64 {
	out := make([]float64, len(pop))
	for i, c := range pop {
		out[i] = c.Fitness
	}
	return out
}

func shouldStop(cfg model.EngineConfig, gen int, start time.Time, bestFitness float64, rec *recorder) (bool, StopReason) {
	if gen+1 >= cfg.MaxGenerations {
		return true, StopMaxGenerations
	}
	if cfg.TimeLimitSeconds > 0 && time.Since(start).Seconds() >= cfg.TimeLimitSeconds {
		return true, StopTimeLimit
	}
	if cfg.TargetFitness != nil && bestFitness <= *cfg.TargetFitness {
		return true, StopTargetFitness
	}
	if rec.converged(cfg.ConvergenceWindow) {
		return true, StopConvergence
	}
	return false, ""
}

// nextGeneration builds generation g+1 from the already fitness-sorted
// population g, per spec.md §4.8 steps 4-6.
func nextGeneration(rng *rand.Rand, pop []model.Chromosome, demand []model.Piece, standardLengths []float64, scrapLengths []float64, cfg model.EngineConfig) []model.Chromosome {
	eliteCount := 0
	if cfg.Elitism {
		eliteCount = cfg.EliteSize
		if eliteCount > len(pop) {
			eliteCount = len(pop)
		}
	}

	elites := make([]model.Chromosome, eliteCount)
	for i := 0; i < eliteCount; i++ {
		elites[i] = pop[i].Clone()
		elites[i].Fitness = pop[i].Fitness
	}

	offspringTarget := len(pop) - eliteCount
	parents := SelectParents(rng, pop, cfg, offspringTarget)
	rng.Shuffle(len(parents), func(i, j int) { parents[i], parents[j] = parents[j], parents[i] })

	offspring := make([]model.Chromosome, 0, offspringTarget)
	for i := 0; i < len(parents); i += 2 {
		if i+1 >= len(parents) {
			offspring = append(offspring, parents[i].Clone())
			continue
		}
		a, b := parents[i], parents[i+1]
		var c1, c2 model.Chromosome
		if rng.Float64() < cfg.PCross {
			c1, c2 = Crossover(rng, a, b, cfg)
		} else {
			c1, c2 = a.Clone(), b.Clone()
		}
		if cfg.RepairChildren {
			c1 = RepairChild(c1, demand, standardLengths, scrapLengths)
			c2 = RepairChild(c2, demand, standardLengths, scrapLengths)
		}
		Mutate(rng, &c1, demand, standardLengths, scrapLengths, cfg)
		Mutate(rng, &c2, demand, standardLengths, scrapLengths, cfg)
		offspring = append(offspring, c1, c2)
	}
	if len(offspring) > offspringTarget {
		offspring = offspring[:offspringTarget]
	}

	next := append(elites, offspring...)
	if len(next) > len(pop) {
		next = next[:len(pop)]
	}
	return next
}
