package model

import "encoding/json"

// Chromosome is a full cutting plan for one (diameter, execution group)
// sub-problem: an ordered sequence of patterns. Duplicate patterns are
// permitted; the algorithm routinely uses many identical bars.
type Chromosome struct {
	Patterns []Pattern
	Fitness  float64
}

// Clone deep-copies a chromosome, including every pattern. Mandatory for
// elitism: a mutated offspring must never share pattern storage with an
// elite clone.
func (c Chromosome) Clone() Chromosome {
	patterns := make([]Pattern, len(c.Patterns))
	for i, p := range c.Patterns {
		patterns[i] = p.Clone()
	}
	return Chromosome{Patterns: patterns, Fitness: c.Fitness}
}

// TotalWaste sums the waste of every pattern.
func (c Chromosome) TotalWaste() float64 {
	var total float64
	for _, p := range c.Patterns {
		total += p.Waste
	}
	return RoundLength(total)
}

// StandardUsed counts patterns sourced from a STANDARD bar.
func (c Chromosome) StandardUsed() int {
	n := 0
	for _, p := range c.Patterns {
		if p.SourceKind == Standard {
			n++
		}
	}
	return n
}

// ScrapUsed counts patterns sourced from a SCRAP bar.
func (c Chromosome) ScrapUsed() int {
	n := 0
	for _, p := range c.Patterns {
		if p.SourceKind == Scrap {
			n++
		}
	}
	return n
}

// ReusableScraps returns the waste of every pattern flagged reusable: the
// off-cuts this chromosome would hand forward to the next execution group.
func (c Chromosome) ReusableScraps() []float64 {
	var out []float64
	for _, p := range c.Patterns {
		if p.Reusable {
			out = append(out, p.Waste)
		}
	}
	return out
}

// ScrapSourceLength sums the length of every SCRAP bar consumed as a
// pattern's source, used by the fitness reuse bonus.
func (c Chromosome) ScrapSourceLength() float64 {
	var total float64
	for _, p := range c.Patterns {
		if p.SourceKind == Scrap {
			total += p.SourceLength
		}
	}
	return total
}

// Merge combines this chromosome's patterns with another's into a single
// chromosome, used to fold a partial or previously-saved plan into a fresh
// one without discarding either side. Patterns are cloned so neither input
// is aliased by the result.
func (c Chromosome) Merge(other Chromosome) Chromosome {
	patterns := make([]Pattern, 0, len(c.Patterns)+len(other.Patterns))
	for _, p := range c.Patterns {
		patterns = append(patterns, p.Clone())
	}
	for _, p := range other.Patterns {
		patterns = append(patterns, p.Clone())
	}
	return Chromosome{Patterns: patterns}
}

// Serialize encodes a chromosome as JSON, the same persistence idiom used
// throughout internal/project.
func (c Chromosome) Serialize() ([]byte, error) {
	return json.Marshal(c)
}

// DeserializeChromosome reconstructs a chromosome from Serialize's output.
func DeserializeChromosome(data []byte) (Chromosome, error) {
	var c Chromosome
	if err := json.Unmarshal(data, &c); err != nil {
		return Chromosome{}, err
	}
	return c, nil
}

// Summary builds the (order_id, piece_length) -> total count multiset
// produced by this chromosome, the primary signal for completeness checks
// and fitness. O(sum of |pattern.Cuts|).
func (c Chromosome) Summary() map[PieceKey]int {
	out := make(map[PieceKey]int)
	for _, p := range c.Patterns {
		for _, cut := range p.Cuts {
			k := PieceKey{OrderID: cut.OrderID, Length: cut.PieceLength}
			out[k] += cut.CountInPattern
		}
	}
	return out
}

// PieceKey identifies a demand line by (order_id, piece_length).
type PieceKey struct {
	OrderID string
	Length  float64
}

// Completeness compares a chromosome's produced summary against demand.
type Completeness struct {
	Missing  map[PieceKey]int
	Surplus  map[PieceKey]int
	Complete bool
	Excess   bool
}

// Exact reports whether both Missing and Surplus are empty.
func (c Completeness) Exact() bool {
	return len(c.Missing) == 0 && len(c.Surplus) == 0
}

// CheckCompleteness computes the completeness report of a chromosome
// against a demand set.
func CheckCompleteness(chrom Chromosome, demand []Piece) Completeness {
	produced := chrom.Summary()
	required := make(map[PieceKey]int, len(demand))
	for _, p := range demand {
		required[PieceKey{OrderID: p.OrderID, Length: p.Length}] += p.RequiredCount
	}

	missing := make(map[PieceKey]int)
	surplus := make(map[PieceKey]int)

	for k, need := range required {
		have := produced[k]
		if have < need {
			missing[k] = need - have
		} else if have > need {
			surplus[k] = have - need
		}
	}
	for k, have := range produced {
		if _, known := required[k]; !known && have > 0 {
			surplus[k] = have
		}
	}

	return Completeness{
		Missing:  missing,
		Surplus:  surplus,
		Complete: len(missing) == 0,
		Excess:   len(surplus) > 0,
	}
}
