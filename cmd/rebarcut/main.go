// Command rebarcut optimizes a cartilla (rebar cut list) against a stock
// catalog and writes a PDF cutting report.
//
// Usage:
//   rebarcut -cartilla cartilla.csv -catalog catalog.json -out report.pdf
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cutplan/rebarcut/internal/adapter"
	"github.com/cutplan/rebarcut/internal/driver"
	"github.com/cutplan/rebarcut/internal/export"
	"github.com/cutplan/rebarcut/internal/importer"
	"github.com/cutplan/rebarcut/internal/model"
	"github.com/cutplan/rebarcut/internal/project"
	"github.com/cutplan/rebarcut/internal/rlog"
)

var log = rlog.New("cmd")

func main() {
	os.Exit(run())
}

func run() int {
	cartillaPath := flag.String("cartilla", "", "path to the cartilla CSV or XLSX file")
	catalogPath := flag.String("catalog", "", "path to a JSON stock catalog ({\"#4\":[6,9,12]})")
	outPath := flag.String("out", "report.pdf", "path to write the PDF cutting report")
	tagsPath := flag.String("tags", "", "optional path to write a QR bundle-tag PDF")
	profile := flag.String("profile", "BALANCED", "engine profile: FAST, BALANCED, or INTENSIVE")
	seed := flag.Int64("seed", 0, "deterministic RNG seed (0 lets the engine pick one)")
	useInventory := flag.Bool("carry-inventory", false, "seed carry-forward scrap from the persisted inventory")
	flag.Parse()

	if *cartillaPath == "" || *catalogPath == "" {
		fmt.Println("Usage: rebarcut -cartilla <file> -catalog <file> [flags]")
		flag.PrintDefaults()
		return 1
	}

	rows, err := loadCartilla(*cartillaPath)
	if err != nil {
		log.Error(err, "failed to load cartilla")
		return 1
	}

	catalog, err := loadCatalog(*catalogPath)
	if err != nil {
		log.Error(err, "failed to load stock catalog")
		return 1
	}

	cfg := model.ProfileByName(*profile)
	if *seed != 0 {
		cfg.Seed = seed
	}

	var seedScrap map[string][]float64
	var inv model.ScrapInventory
	if *useInventory {
		loaded, _, err := project.LoadOrCreateInventory()
		if err != nil {
			log.Warn("failed to load scrap inventory, continuing with none: %v", err)
		} else {
			inv = loaded
			seedScrap = make(map[string][]float64)
			for _, d := range inv.Diameters() {
				seedScrap[d] = inv.LengthsFor(d)
			}
		}
	}

	results := driver.Run(rows, catalog, cfg, seedScrap)

	if err := export.ExportCuttingReport(*outPath, adapter.FormatReportSections(results)); err != nil {
		log.Error(err, "failed to write cutting report")
		return 1
	}
	log.Info("wrote cutting report to %s", *outPath)

	if *tagsPath != "" {
		if err := writeBundleTags(*tagsPath, results); err != nil {
			log.Error(err, "failed to write bundle tags")
			return 1
		}
		log.Info("wrote bundle tags to %s", *tagsPath)
	}

	if *useInventory {
		if err := bankLeftoverScrap(inv, results); err != nil {
			log.Warn("failed to persist updated scrap inventory: %v", err)
		}
	}

	return 0
}

func loadCartilla(path string) ([]model.DemandRow, error) {
	var result importer.ImportResult
	switch filepath.Ext(path) {
	case ".xlsx":
		result = importer.ImportExcel(path)
	default:
		result = importer.ImportCSV(path)
	}
	for _, w := range result.Warnings {
		log.Warn("%s", w)
	}
	return adapter.PrepareCartilla(result)
}

func loadCatalog(path string) (model.StockCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read catalog: %w", err)
	}
	var catalog model.StockCatalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("cannot parse catalog: %w", err)
	}
	return catalog, nil
}

// writeBundleTags writes one QR tag PDF per non-skipped sub-problem, named
// <path without extension>.<diameter>.g<group><extension>.
func writeBundleTags(path string, results []driver.SubProblemResult) error {
	for _, r := range results {
		if r.Skipped || len(r.Chromosome.Patterns) == 0 {
			continue
		}
		groupPath := fmt.Sprintf("%s.%s.g%d%s", trimExt(path), r.Diameter, r.ExecutionGroup, filepath.Ext(path))
		if err := export.ExportBundleTags(groupPath, r.Diameter, r.ExecutionGroup, r.Chromosome.Patterns); err != nil {
			return err
		}
	}
	return nil
}

func trimExt(path string) string {
	ext := filepath.Ext(path)
	return path[:len(path)-len(ext)]
}

// bankLeftoverScrap persists, per diameter, the banked scrap and every
// sub-problem's reusable off-cuts that weren't consumed by a later group
// within this run, so a later invocation with -carry-inventory can pick
// them up.
func bankLeftoverScrap(inv model.ScrapInventory, results []driver.SubProblemResult) error {
	byDiameter := make(map[string][]float64)
	for _, r := range results {
		if r.Skipped {
			continue
		}
		pool, seen := byDiameter[r.Diameter]
		if !seen {
			pool = inv.LengthsFor(r.Diameter)
		}
		for _, p := range r.Chromosome.Patterns {
			if p.SourceKind != model.Scrap {
				continue
			}
			for i, l := range pool {
				if l-p.SourceLength < model.LengthTolerance && p.SourceLength-l < model.LengthTolerance {
					pool = append(pool[:i:i], pool[i+1:]...)
					break
				}
			}
		}
		byDiameter[r.Diameter] = append(pool, r.Chromosome.ReusableScraps()...)
	}

	updated := inv
	for diameter, lengths := range byDiameter {
		updated = updated.WithoutDiameter(diameter).WithLengths(diameter, lengths)
	}

	path, err := project.DefaultInventoryPath()
	if err != nil {
		return err
	}
	return project.SaveInventory(path, updated)
}
