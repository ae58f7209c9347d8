// Package adapter normalizes importer/project-level input into the shapes
// the driver expects, and formats driver output into the external report
// contract of spec.md §6, keeping internal/driver free of any dependency
// on the importer or export packages.
package adapter

import (
	"fmt"

	"github.com/cutplan/rebarcut/internal/importer"
	"github.com/cutplan/rebarcut/internal/model"
)

// PrepareCartilla turns an importer.ImportResult into the cleaned demand
// rows the driver consumes. It rejects a result that carried hard parse
// errors even if some rows parsed successfully, since a partially-read
// cartilla silently under-counts demand.
func PrepareCartilla(result importer.ImportResult) ([]model.DemandRow, error) {
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("cartilla import reported %d error(s): %s", len(result.Errors), result.Errors[0])
	}
	rows := model.CleanCartilla(result.Rows)
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: cartilla has no usable rows", model.ErrDemandEmpty)
	}
	return rows, nil
}

// SeedCarryScrap returns the off-cut lengths a persisted model.ScrapInventory
// holds for diameter, ready to be prepended to the driver's first
// execution group for that diameter. The driver itself always starts a
// diameter's carry-forward pool empty (spec.md §4.11); this is how a
// caller opts into carrying banked scrap across separate cartilla runs.
func SeedCarryScrap(inv model.ScrapInventory, diameter string) []float64 {
	return inv.LengthsFor(diameter)
}
