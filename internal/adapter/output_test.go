package adapter

import (
	"testing"

	"github.com/cutplan/rebarcut/internal/driver"
	"github.com/cutplan/rebarcut/internal/model"
)

func buildResults(t *testing.T) []driver.SubProblemResult {
	t.Helper()
	p1, err := model.MakePattern(12, model.Standard, []model.Cut{{OrderID: "O1", PieceLength: 2.5, CountInPattern: 4}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p2, err := model.MakePattern(6, model.Scrap, []model.Cut{{OrderID: "O2", PieceLength: 1.2, CountInPattern: 3}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return []driver.SubProblemResult{
		{
			Diameter:       "#4",
			ExecutionGroup: 1,
			Chromosome:     model.Chromosome{Patterns: []model.Pattern{p1, p2}},
		},
		{
			Diameter:       "#5",
			ExecutionGroup: 1,
			Skipped:        true,
			SkipReason:     "diameter not in stock catalog",
		},
	}
}

func TestFormatPatternsSkipsSkippedSubProblems(t *testing.T) {
	results := buildResults(t)
	bundles := FormatPatterns(results)
	if len(bundles) != 2 {
		t.Fatalf("expected 2 bundles from the non-skipped sub-problem, got %d", len(bundles))
	}
	for _, b := range bundles {
		if b.Diameter != "#4" {
			t.Fatalf("expected only #4 bundles, got %q", b.Diameter)
		}
	}
}

func TestFormatReportSectionsPreservesSkipReason(t *testing.T) {
	results := buildResults(t)
	sections := FormatReportSections(results)
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if !sections[1].Skipped || sections[1].SkipReason == "" {
		t.Fatalf("expected second section to carry its skip reason, got %+v", sections[1])
	}
}

func TestCollectAllTagsSkipsSkippedSubProblems(t *testing.T) {
	results := buildResults(t)
	tags := CollectAllTags(results)
	if len(tags) != 2 {
		t.Fatalf("expected 2 tags from the non-skipped sub-problem, got %d", len(tags))
	}
}
