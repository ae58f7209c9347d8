package driver

import (
	"testing"

	"github.com/cutplan/rebarcut/internal/model"
)

func sampleRows() []model.DemandRow {
	return []model.DemandRow{
		{OrderID: "O1", Diameter: "#4", PieceLength: 2.5, RequiredCount: 4, ExecutionGroup: 1},
		{OrderID: "O2", Diameter: "#4", PieceLength: 1.2, RequiredCount: 7, ExecutionGroup: 1},
		{OrderID: "O3", Diameter: "#4", PieceLength: 3.0, RequiredCount: 5, ExecutionGroup: 2},
		{OrderID: "O4", Diameter: "#5", PieceLength: 6.0, RequiredCount: 2, ExecutionGroup: 1},
	}
}

func fastTestConfig() model.EngineConfig {
	cfg := model.FastProfile()
	seed := int64(17)
	cfg.Seed = &seed
	return cfg
}

func TestRunProducesOneResultPerSubProblem(t *testing.T) {
	catalog := model.StockCatalog{"#4": {6, 9, 12}, "#5": {6, 9, 12}}
	results := Run(sampleRows(), catalog, fastTestConfig(), nil)
	if len(results) != 3 {
		t.Fatalf("expected 3 sub-problem results, got %d", len(results))
	}
}

func TestRunSkipsDiameterAbsentFromCatalog(t *testing.T) {
	catalog := model.StockCatalog{"#4": {6, 9, 12}}
	results := Run(sampleRows(), catalog, fastTestConfig(), nil)

	found := false
	for _, r := range results {
		if r.Diameter == "#5" {
			found = true
			if !r.Skipped {
				t.Fatalf("expected #5 sub-problem to be skipped")
			}
		}
	}
	if !found {
		t.Fatalf("expected a result entry for diameter #5")
	}
}

func TestRunThreadsScrapForwardWithinDiameter(t *testing.T) {
	// A generous off-cut from group 1 should let group 2 reuse scrap
	// rather than opening only fresh standard bars.
	rows := []model.DemandRow{
		{OrderID: "O1", Diameter: "#4", PieceLength: 5.9, RequiredCount: 1, ExecutionGroup: 1},
		{OrderID: "O2", Diameter: "#4", PieceLength: 2.0, RequiredCount: 1, ExecutionGroup: 2},
	}
	catalog := model.StockCatalog{"#4": {12}}
	results := Run(rows, catalog, fastTestConfig(), nil)

	var group2 *SubProblemResult
	for i := range results {
		if results[i].ExecutionGroup == 2 {
			group2 = &results[i]
		}
	}
	if group2 == nil {
		t.Fatalf("expected a group 2 result")
	}
	if group2.Skipped {
		t.Fatalf("expected group 2 to produce output, got skip reason %q", group2.SkipReason)
	}
	usedScrap := false
	for _, p := range group2.Chromosome.Patterns {
		if p.SourceKind == model.Scrap {
			usedScrap = true
		}
	}
	if !usedScrap {
		t.Fatalf("expected group 2 to reuse group 1's off-cut, got %+v", group2.Chromosome.Patterns)
	}
}

func TestRunNeverCrossesGroupsOfDifferentDiameters(t *testing.T) {
	rows := []model.DemandRow{
		{OrderID: "O1", Diameter: "#4", PieceLength: 5.9, RequiredCount: 1, ExecutionGroup: 1},
		{OrderID: "O2", Diameter: "#5", PieceLength: 2.0, RequiredCount: 1, ExecutionGroup: 1},
	}
	catalog := model.StockCatalog{"#4": {6, 12}, "#5": {6, 12}}
	results := Run(rows, catalog, fastTestConfig(), nil)

	for _, r := range results {
		if r.Diameter == "#5" && !r.Skipped {
			for _, p := range r.Chromosome.Patterns {
				if p.SourceKind == model.Scrap {
					t.Fatalf("diameter #5 sub-problem must never consume #4's off-cuts")
				}
			}
		}
	}
}

func TestRunSeedScrapFeedsFirstGroupOfItsDiameter(t *testing.T) {
	// With no seed, a 2.0m demand against only a 12m standard bar forces
	// a fresh bar to be opened. Seeding a matching off-cut should let the
	// first group consume it instead of a standard bar.
	rows := []model.DemandRow{
		{OrderID: "O1", Diameter: "#4", PieceLength: 2.0, RequiredCount: 1, ExecutionGroup: 1},
	}
	catalog := model.StockCatalog{"#4": {12}}
	seed := map[string][]float64{"#4": {2.1}}

	results := Run(rows, catalog, fastTestConfig(), seed)
	if len(results) != 1 {
		t.Fatalf("expected 1 sub-problem result, got %d", len(results))
	}
	if results[0].Skipped {
		t.Fatalf("expected sub-problem to produce output, got skip reason %q", results[0].SkipReason)
	}

	usedSeededScrap := false
	for _, p := range results[0].Chromosome.Patterns {
		if p.SourceKind == model.Scrap && p.SourceLength == 2.1 {
			usedSeededScrap = true
		}
	}
	if !usedSeededScrap {
		t.Fatalf("expected the seeded off-cut to be consumed, got patterns %+v", results[0].Chromosome.Patterns)
	}
}

func TestConsolidateScrapDropsBelowMinimumAndDeduplicates(t *testing.T) {
	got := consolidateScrap([]float64{0.3, 1.0, 1.005, 2.0, 0.49}, model.MinReusable)
	want := []float64{2.0, 1.005}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
