// Package driver implements the sequential, per-diameter driver of
// spec.md §4.11: it slices the full cartilla by (diameter, execution
// group), runs the engine (falling back to FFD on failure) for each
// sub-problem in order, and threads reusable off-cuts forward within a
// diameter only.
package driver

import (
	"errors"

	"github.com/cutplan/rebarcut/internal/engine"
	"github.com/cutplan/rebarcut/internal/model"
	"github.com/cutplan/rebarcut/internal/rlog"
)

var log = rlog.New("driver")

// SubProblemResult is the outcome of running one (diameter, group)
// sub-problem.
type SubProblemResult struct {
	Diameter       string
	ExecutionGroup int
	Chromosome     model.Chromosome
	Report         engine.Report
	UsedFallback   bool
	Skipped        bool
	SkipReason     string
}

// Run executes the full cartilla against the stock catalog, returning one
// SubProblemResult per (diameter, execution group) pair encountered, in
// the order spec.md §4.11 requires: diameters in first-seen order, groups
// ascending within a diameter. seedScrap, if non-nil, banks off-cuts
// carried in from outside this run (e.g. a persisted inventory) onto the
// first execution group of their diameter; a nil or empty map reproduces
// the plain spec.md §4.11 behavior of starting every diameter's
// carry-forward pool empty.
func Run(rows []model.DemandRow, catalog model.StockCatalog, cfg model.EngineConfig, seedScrap map[string][]float64) []SubProblemResult {
	rows = model.CleanCartilla(rows)
	var results []SubProblemResult

	for _, diameter := range model.DiameterOrder(rows) {
		standardLengths, ok := catalog[diameter]
		if !ok || len(standardLengths) == 0 {
			log.Warn("diameter %q absent from stock catalog, skipping its sub-problems", diameter)
			for _, group := range model.ExecutionGroups(rows, diameter) {
				results = append(results, SubProblemResult{
					Diameter:       diameter,
					ExecutionGroup: group,
					Skipped:        true,
					SkipReason:     "diameter not in stock catalog",
				})
			}
			continue
		}

		carryScrap := append([]float64{}, seedScrap[diameter]...)
		for _, group := range model.ExecutionGroups(rows, diameter) {
			demand := model.SubProblemDemand(rows, diameter, group)
			if len(demand) == 0 {
				results = append(results, SubProblemResult{
					Diameter:       diameter,
					ExecutionGroup: group,
					Skipped:        true,
					SkipReason:     "empty demand after cleaning",
				})
				continue
			}

			chrom, report, usedFallback, err := runSubProblem(demand, standardLengths, carryScrap, cfg)
			if err != nil {
				log.Warn("sub-problem diameter=%s group=%d produced no output: %v", diameter, group, err)
				results = append(results, SubProblemResult{
					Diameter:       diameter,
					ExecutionGroup: group,
					Skipped:        true,
					SkipReason:     err.Error(),
				})
				continue
			}

			carryScrap = append(carryScrap, chrom.ReusableScraps()...)
			carryScrap = consolidateScrap(carryScrap, cfg.EffectiveMinReusable())

			results = append(results, SubProblemResult{
				Diameter:       diameter,
				ExecutionGroup: group,
				Chromosome:     chrom,
				Report:         report,
				UsedFallback:   usedFallback,
			})
		}
	}

	return results
}

// runSubProblem runs the engine for one sub-problem, falling back to FFD
// per spec.md §4.10 when the engine reports EngineFailure. DemandEmpty
// never reaches here (callers skip empty demand before calling); any
// other error is surfaced to the driver loop, which records it as a
// skipped sub-problem rather than aborting the whole run.
func runSubProblem(demand []model.Piece, standardLengths []float64, scrapLengths []float64, cfg model.EngineConfig) (model.Chromosome, engine.Report, bool, error) {
	chrom, report, err := engine.Run(demand, standardLengths, scrapLengths, cfg)
	if err == nil {
		return chrom, report, false, nil
	}
	if errors.Is(err, model.ErrEngineFailure) {
		log.Error(err, "engine failed, retrying via deterministic fallback")
		return engine.Fallback(demand, standardLengths, scrapLengths), engine.Report{}, true, nil
	}
	return model.Chromosome{}, engine.Report{}, false, err
}

// consolidateScrap applies spec.md §4.11's consolidation rule: drop
// entries below minReusable, then for duplicates within tolerance
// (0.01 m) keep one representative, sorted descending.
func consolidateScrap(lengths []float64, minReusable float64) []float64 {
	const tolerance = 0.01

	filtered := make([]float64, 0, len(lengths))
	for _, l := range lengths {
		if l >= minReusable {
			filtered = append(filtered, l)
		}
	}

	for i := 1; i < len(filtered); i++ {
		for j := i; j > 0 && filtered[j] > filtered[j-1]; j-- {
			filtered[j], filtered[j-1] = filtered[j-1], filtered[j]
		}
	}

	out := make([]float64, 0, len(filtered))
	for _, l := range filtered {
		dup := false
		for _, kept := range out {
			if kept-l < tolerance && l-kept < tolerance {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, l)
		}
	}
	return out
}
