package model

import (
	"sort"

	"github.com/google/uuid"
)

// ScrapEntry is one persisted reusable off-cut: a length of a given
// diameter left over from a prior run, available to seed the next run's
// carry-forward scrap pool for that diameter.
type ScrapEntry struct {
	ID       string  `json:"id"`
	Diameter string  `json:"diameter"`
	Length   float64 `json:"length_m"`
}

// NewScrapEntry builds a ScrapEntry with a fresh ID.
func NewScrapEntry(diameter string, length float64) ScrapEntry {
	return ScrapEntry{
		ID:       uuid.New().String()[:8],
		Diameter: diameter,
		Length:   length,
	}
}

// ScrapInventory is the persisted pool of reusable off-cuts across runs,
// grouped by diameter.
type ScrapInventory struct {
	Entries []ScrapEntry `json:"entries"`
}

// DefaultScrapInventory returns an empty inventory.
func DefaultScrapInventory() ScrapInventory {
	return ScrapInventory{Entries: []ScrapEntry{}}
}

// LengthsFor returns the off-cut lengths on hand for diameter, sorted
// descending, ready to seed a driver run's carry-forward scrap pool.
func (inv ScrapInventory) LengthsFor(diameter string) []float64 {
	var lengths []float64
	for _, e := range inv.Entries {
		if e.Diameter == diameter {
			lengths = append(lengths, e.Length)
		}
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(lengths)))
	return lengths
}

// Diameters returns the distinct diameters with entries on hand, sorted.
func (inv ScrapInventory) Diameters() []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range inv.Entries {
		if !seen[e.Diameter] {
			seen[e.Diameter] = true
			out = append(out, e.Diameter)
		}
	}
	sort.Strings(out)
	return out
}

// WithLengths returns a copy of inv with one new entry per length added
// under diameter, used to bank a run's unconsumed off-cuts for later reuse.
func (inv ScrapInventory) WithLengths(diameter string, lengths []float64) ScrapInventory {
	out := ScrapInventory{Entries: append([]ScrapEntry{}, inv.Entries...)}
	for _, l := range lengths {
		out.Entries = append(out.Entries, NewScrapEntry(diameter, l))
	}
	return out
}

// WithoutDiameter returns a copy of inv with every entry for diameter
// removed, used after a run consumes that diameter's banked off-cuts.
func (inv ScrapInventory) WithoutDiameter(diameter string) ScrapInventory {
	out := ScrapInventory{Entries: []ScrapEntry{}}
	for _, e := range inv.Entries {
		if e.Diameter != diameter {
			out.Entries = append(out.Entries, e)
		}
	}
	return out
}
