package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cutplan/rebarcut/internal/model"
)

func scoredPop(fitnesses ...float64) []model.Chromosome {
	pop := make([]model.Chromosome, len(fitnesses))
	for i, f := range fitnesses {
		pop[i] = model.Chromosome{Fitness: f}
	}
	return pop
}

func TestTournamentSelectPrefersLowerFitness(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pop := scoredPop(100, 1, 50)
	cfg := model.DefaultEngineConfig()
	cfg.Selection = model.SelectionTournament
	cfg.TournamentSize = 3

	for i := 0; i < 20; i++ {
		best := Select(rng, pop, cfg)
		assert.Equal(t, 1.0, best.Fitness)
	}
}

func TestElitistSelectAlwaysReturnsBest(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	pop := scoredPop(30, 5, 99)
	cfg := model.DefaultEngineConfig()
	cfg.Selection = model.SelectionElitist

	got := Select(rng, pop, cfg)
	assert.Equal(t, 5.0, got.Fitness)
}

func TestRouletteSelectFavorsLowerFitnessOverManyDraws(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	pop := scoredPop(1, 1000)
	cfg := model.DefaultEngineConfig()
	cfg.Selection = model.SelectionRoulette

	lowCount := 0
	for i := 0; i < 200; i++ {
		if Select(rng, pop, cfg).Fitness == 1 {
			lowCount++
		}
	}
	assert.Greater(t, lowCount, 150)
}

func TestSortByFitnessAscending(t *testing.T) {
	pop := scoredPop(5, 1, 3)
	SortByFitness(pop)
	assert.Equal(t, []float64{1, 3, 5}, []float64{pop[0].Fitness, pop[1].Fitness, pop[2].Fitness})
}
