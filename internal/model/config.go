package model

import "fmt"

// InitStrategy selects how the initial population is seeded.
type InitStrategy string

const (
	InitHeuristic InitStrategy = "HEURISTIC"
	InitRandom    InitStrategy = "RANDOM"
	InitHybrid    InitStrategy = "HYBRID"
)

// SelectionMethod selects the parent-selection operator.
type SelectionMethod string

const (
	SelectionTournament SelectionMethod = "TOURNAMENT"
	SelectionRoulette   SelectionMethod = "ROULETTE"
	SelectionElitist    SelectionMethod = "ELITIST"
)

// CrossoverMethod selects the crossover operator.
type CrossoverMethod string

const (
	CrossoverOnePoint   CrossoverMethod = "ONE_POINT"
	CrossoverTwoPoint   CrossoverMethod = "TWO_POINT"
	CrossoverPieceAware CrossoverMethod = "PIECE_AWARE"
)

// MutationOp identifies one per-pattern mutation operator (spec.md §4.7).
// Chromosome-level operators (adjust-count, split, merge) are applied
// unconditionally at their own low base probability and are not part of
// this closed set.
type MutationOp string

const (
	MutationChangeSource MutationOp = "CHANGE_SOURCE"
	MutationReoptimize   MutationOp = "REOPTIMIZE"
	MutationMovePiece    MutationOp = "MOVE_PIECE"
)

// FitnessWeights are the weighted-sum coefficients of spec.md §4.4.
// Components are tracked separately (see FitnessBreakdown) so
// diagnostics can report each term.
type FitnessWeights struct {
	Waste   float64
	Missing float64
	Surplus float64
	Bars    float64
	Reuse   float64
}

// DefaultFitnessWeights returns the weights named in spec.md §4.4.
func DefaultFitnessWeights() FitnessWeights {
	return FitnessWeights{Waste: 10, Missing: 10000, Surplus: 5000, Bars: 50, Reuse: 30}
}

// EngineConfig holds every option the engine recognizes (spec.md §6).
type EngineConfig struct {
	PopulationSize int
	MaxGenerations int

	InitStrategy   InitStrategy
	HeuristicRatio float64

	Selection      SelectionMethod
	TournamentSize int

	PCross    float64
	Crossover CrossoverMethod

	PMutIndividual float64
	PMutGene       float64
	MutationOps    []MutationOp

	Elitism   bool
	EliteSize int

	ConvergenceWindow int
	TimeLimitSeconds  float64
	TargetFitness     *float64

	RepairChildren bool
	Seed           *int64

	Weights FitnessWeights

	// HomogeneousThreshold is the minimum aggregated piece count at which
	// the homogeneous analyzer (spec.md §4.2) is attempted before falling
	// through to heuristic initialization. Kept configurable per spec.md
	// §9 (the source's threshold of 10 is treated as arbitrary).
	HomogeneousThreshold int

	// MinReusable, if non-zero, replaces model.MinReusable as the threshold
	// the driver uses when consolidating the scrap pool carried between
	// groups. Pattern.Reusable and Chromosome.ReusableScraps always use
	// model.MinReusable.
	MinReusable float64
}

// DefaultEngineConfig returns the BALANCED profile defaults named in
// spec.md §6.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		PopulationSize:       30,
		MaxGenerations:       50,
		InitStrategy:         InitHybrid,
		HeuristicRatio:       0.6,
		Selection:            SelectionTournament,
		TournamentSize:       3,
		PCross:               0.8,
		Crossover:            CrossoverOnePoint,
		PMutIndividual:       0.2,
		PMutGene:             0.1,
		MutationOps:          []MutationOp{MutationChangeSource, MutationReoptimize, MutationMovePiece},
		Elitism:              true,
		EliteSize:            2,
		ConvergenceWindow:    20,
		TimeLimitSeconds:     300,
		RepairChildren:       true,
		Weights:              DefaultFitnessWeights(),
		HomogeneousThreshold: 10,
		MinReusable:          MinReusable,
	}
}

// FastProfile favors speed over polish for quick previews.
func FastProfile() EngineConfig {
	c := DefaultEngineConfig()
	c.PopulationSize = 16
	c.MaxGenerations = 20
	c.TimeLimitSeconds = 30
	c.ConvergenceWindow = 8
	return c
}

// BalancedProfile is the named default.
func BalancedProfile() EngineConfig {
	return DefaultEngineConfig()
}

// IntensiveProfile trades runtime for a more thorough search.
func IntensiveProfile() EngineConfig {
	c := DefaultEngineConfig()
	c.PopulationSize = 80
	c.MaxGenerations = 300
	c.TimeLimitSeconds = 900
	c.EliteSize = 4
	c.ConvergenceWindow = 40
	return c
}

// ProfileByName resolves one of the three named profiles, defaulting to
// BALANCED for an unrecognized name.
func ProfileByName(name string) EngineConfig {
	switch name {
	case "FAST":
		return FastProfile()
	case "INTENSIVE":
		return IntensiveProfile()
	default:
		return BalancedProfile()
	}
}

// Validate rejects the configurations spec.md §7 names: population/
// generation bounds, rates outside [0,1], elite size, and unknown
// enumerated values. It returns an error wrapping ErrConfigInvalid.
func (c EngineConfig) Validate() error {
	if c.PopulationSize < 2 {
		return fmt.Errorf("%w: population_size must be >= 2, got %d", ErrConfigInvalid, c.PopulationSize)
	}
	if c.MaxGenerations < 1 {
		return fmt.Errorf("%w: max_generations must be >= 1, got %d", ErrConfigInvalid, c.MaxGenerations)
	}
	if err := rate(c.HeuristicRatio, "heuristic_ratio"); err != nil {
		return err
	}
	if err := rate(c.PCross, "p_cross"); err != nil {
		return err
	}
	if err := rate(c.PMutIndividual, "p_mut_ind"); err != nil {
		return err
	}
	if err := rate(c.PMutGene, "p_mut_gene"); err != nil {
		return err
	}
	if c.Elitism && c.EliteSize >= c.PopulationSize {
		return fmt.Errorf("%w: elite_size (%d) must be < population_size (%d)", ErrConfigInvalid, c.EliteSize, c.PopulationSize)
	}
	if c.Elitism && c.EliteSize < 1 {
		return fmt.Errorf("%w: elite_size must be >= 1 when elitism is enabled", ErrConfigInvalid)
	}
	switch c.InitStrategy {
	case InitHeuristic, InitRandom, InitHybrid:
	default:
		return fmt.Errorf("%w: unknown init_strategy %q", ErrConfigInvalid, c.InitStrategy)
	}
	switch c.Selection {
	case SelectionTournament, SelectionRoulette, SelectionElitist:
	default:
		return fmt.Errorf("%w: unknown selection %q", ErrConfigInvalid, c.Selection)
	}
	switch c.Crossover {
	case CrossoverOnePoint, CrossoverTwoPoint, CrossoverPieceAware:
	default:
		return fmt.Errorf("%w: unknown crossover %q", ErrConfigInvalid, c.Crossover)
	}
	for _, op := range c.MutationOps {
		switch op {
		case MutationChangeSource, MutationReoptimize, MutationMovePiece:
		default:
			return fmt.Errorf("%w: unknown mutation op %q", ErrConfigInvalid, op)
		}
	}
	return nil
}

func rate(v float64, name string) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%w: %s must be in [0,1], got %v", ErrConfigInvalid, name, v)
	}
	return nil
}

// EffectiveMinReusable returns c.MinReusable if set, else the package
// default.
func (c EngineConfig) EffectiveMinReusable() float64 {
	if c.MinReusable > 0 {
		return c.MinReusable
	}
	return MinReusable
}
