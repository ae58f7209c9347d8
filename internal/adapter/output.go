package adapter

import (
	"github.com/cutplan/rebarcut/internal/driver"
	"github.com/cutplan/rebarcut/internal/export"
	"github.com/cutplan/rebarcut/internal/model"
)

// BundleSummary is the external {source_length, cuts, pieces, waste}
// contract of spec.md §6, one entry per pattern in a sub-problem (pieces as
// PieceCount). It carries no off-cut lengths; FormatReportSections reports
// those per sub-problem.
type BundleSummary struct {
	Diameter       string
	ExecutionGroup int
	SourceLength   float64
	SourceKind     string
	Cuts           []model.Cut
	PieceCount     int
	Waste          float64
}

// FormatPatterns flattens every driver.SubProblemResult into the external
// bundle contract, skipping sub-problems the driver recorded as skipped.
func FormatPatterns(results []driver.SubProblemResult) []BundleSummary {
	var out []BundleSummary
	for _, r := range results {
		if r.Skipped {
			continue
		}
		for _, p := range r.Chromosome.Patterns {
			out = append(out, BundleSummary{
				Diameter:       r.Diameter,
				ExecutionGroup: r.ExecutionGroup,
				SourceLength:   p.SourceLength,
				SourceKind:     p.SourceKind.String(),
				Cuts:           p.Cuts,
				PieceCount:     p.PieceCount(),
				Waste:          p.Waste,
			})
		}
	}
	return out
}

// FormatReportSections turns driver output into the export package's
// per-sub-problem report sections, ready for export.ExportCuttingReport.
func FormatReportSections(results []driver.SubProblemResult) []export.ReportSection {
	sections := make([]export.ReportSection, 0, len(results))
	for _, r := range results {
		sections = append(sections, export.ReportSection{
			Diameter:       r.Diameter,
			ExecutionGroup: r.ExecutionGroup,
			Patterns:       r.Chromosome.Patterns,
			NewOffcuts:     r.Chromosome.ReusableScraps(),
			UsedFallback:   r.UsedFallback,
			Skipped:        r.Skipped,
			SkipReason:     r.SkipReason,
		})
	}
	return sections
}

// CollectAllTags builds the bundle tag set for every non-skipped
// sub-problem, ready for a single ExportBundleTags-style call per
// (diameter, group), or for a caller that wants every tag across a run.
func CollectAllTags(results []driver.SubProblemResult) []export.TagInfo {
	var tags []export.TagInfo
	for _, r := range results {
		if r.Skipped {
			continue
		}
		tags = append(tags, export.CollectTagInfos(r.Diameter, r.ExecutionGroup, r.Chromosome.Patterns)...)
	}
	return tags
}
