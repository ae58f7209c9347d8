package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/cutplan/rebarcut/internal/model"
)

func buildTestPatterns(t *testing.T) []model.Pattern {
	t.Helper()
	p1, err := model.MakePattern(12, model.Standard, []model.Cut{{OrderID: "O1", PieceLength: 2.5, CountInPattern: 4}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p2, err := model.MakePattern(6, model.Scrap, []model.Cut{{OrderID: "O2", PieceLength: 1.2, CountInPattern: 3}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return []model.Pattern{p1, p2}
}

func TestExportBundleTagsWritesFile(t *testing.T) {
	patterns := buildTestPatterns(t)
	path := filepath.Join(t.TempDir(), "tags.pdf")

	if err := ExportBundleTags(path, "#4", 1, patterns); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("expected output file: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected non-empty PDF")
	}
}

func TestExportBundleTagsRejectsEmptyPatterns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags.pdf")
	if err := ExportBundleTags(path, "#4", 1, nil); err == nil {
		t.Fatalf("expected an error for no patterns")
	}
}

func TestCollectTagInfosEncodesSourceAndWaste(t *testing.T) {
	patterns := buildTestPatterns(t)
	tags := CollectTagInfos("#4", 2, patterns)
	if len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(tags))
	}
	if tags[0].Diameter != "#4" || tags[0].ExecutionGroup != 2 || tags[0].BundleIndex != 1 {
		t.Fatalf("unexpected tag: %+v", tags[0])
	}
	if tags[1].SourceKind != "SCRAP" {
		t.Fatalf("expected second bundle sourced from scrap, got %+v", tags[1])
	}
	if tags[0].BundleID == "" || tags[1].BundleID == "" || tags[0].BundleID == tags[1].BundleID {
		t.Fatalf("expected each tag to carry its own non-empty bundle id, got %+v %+v", tags[0], tags[1])
	}

	data, err := json.Marshal(tags[0])
	if err != nil {
		t.Fatalf("unexpected marshal error: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected non-empty JSON payload")
	}
}
