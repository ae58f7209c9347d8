package engine

import "github.com/cutplan/rebarcut/internal/model"

// Evaluate computes the weighted-sum fitness of a chromosome against a
// demand set, per spec.md §4.4. Fitness is minimized; components are
// returned separately for diagnostics alongside the combined Total.
func Evaluate(chrom model.Chromosome, demand []model.Piece, weights model.FitnessWeights) model.FitnessBreakdown {
	completeness := model.CheckCompleteness(chrom, demand)

	var missingLen, surplusLen float64
	for k, count := range completeness.Missing {
		missingLen += float64(count) * k.Length
	}
	for k, count := range completeness.Surplus {
		surplusLen += float64(count) * k.Length
	}

	waste := weights.Waste * chrom.TotalWaste()
	missing := weights.Missing * missingLen
	surplus := weights.Surplus * surplusLen
	bars := weights.Bars * float64(chrom.StandardUsed())
	reuse := weights.Reuse * chrom.ScrapSourceLength()

	return model.FitnessBreakdown{
		Waste:   waste,
		Missing: missing,
		Surplus: surplus,
		Bars:    bars,
		Reuse:   reuse,
		Total:   waste + missing + surplus + bars - reuse,
	}
}

// Fitness is a convenience wrapper returning only the scalar total.
func Fitness(chrom model.Chromosome, demand []model.Piece, weights model.FitnessWeights) float64 {
	return Evaluate(chrom, demand, weights).Total
}
