package model

import "fmt"

// Cut is one piece-type assignment within a pattern: how many copies of a
// given (order_id, piece_length) are cut from the pattern's source bar.
type Cut struct {
	OrderID        string
	PieceLength    float64
	CountInPattern int
}

// Pattern is one gene: a source bar together with the ordered multiset of
// pieces cut from it.
type Pattern struct {
	SourceLength float64
	SourceKind   BarKind
	Cuts         []Cut

	// Derived, recomputed by Recalc/MakePattern; never written directly.
	UsedLength float64
	Waste      float64
	Reusable   bool
}

// MakePattern constructs a pattern, deriving UsedLength/Waste/Reusable.
// It returns ErrPatternOverflow if the cuts' combined length exceeds the
// source bar.
func MakePattern(sourceLength float64, sourceKind BarKind, cuts []Cut) (Pattern, error) {
	p := Pattern{SourceLength: sourceLength, SourceKind: sourceKind, Cuts: cloneCuts(cuts)}
	p.recalc()
	if p.UsedLength > p.SourceLength+LengthTolerance {
		return Pattern{}, fmt.Errorf("%w: used %.3f exceeds source %.3f", ErrPatternOverflow, p.UsedLength, p.SourceLength)
	}
	return p, nil
}

func cloneCuts(cuts []Cut) []Cut {
	out := make([]Cut, len(cuts))
	copy(out, cuts)
	return out
}

// recalc re-derives UsedLength, Waste and Reusable from Cuts and
// SourceLength. Waste is rounded to three digits as required by spec.
func (p *Pattern) recalc() {
	var used float64
	for _, c := range p.Cuts {
		used += c.PieceLength * float64(c.CountInPattern)
	}
	p.UsedLength = RoundLength(used)
	p.Waste = RoundLength(p.SourceLength - p.UsedLength)
	p.Reusable = p.Waste >= MinReusable
}

// Valid reports whether the pattern satisfies the core invariant: the cuts
// never exceed the source bar (waste >= 0), every count is positive, and
// every length is positive.
func (p Pattern) Valid() bool {
	if p.Waste < -LengthTolerance {
		return false
	}
	if p.SourceLength <= 0 {
		return false
	}
	for _, c := range p.Cuts {
		if c.CountInPattern <= 0 || c.PieceLength <= 0 {
			return false
		}
	}
	return true
}

// ValidatePattern re-derives waste/reusable from the pattern's own cuts and
// compares them against the stored values to within LengthTolerance. It
// detects patterns that were mutated without going through recalc.
func ValidatePattern(p Pattern) bool {
	check := p
	check.recalc()
	return floatsEqual(check.Waste, p.Waste) && check.Reusable == p.Reusable
}

func floatsEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= LengthTolerance
}

// Clone deep-copies a pattern so mutation of one copy can never be observed
// through another (mandatory for elitism).
func (p Pattern) Clone() Pattern {
	return Pattern{
		SourceLength: p.SourceLength,
		SourceKind:   p.SourceKind,
		Cuts:         cloneCuts(p.Cuts),
		UsedLength:   p.UsedLength,
		Waste:        p.Waste,
		Reusable:     p.Reusable,
	}
}

// PieceCount returns the total number of physical pieces in the pattern.
func (p Pattern) PieceCount() int {
	n := 0
	for _, c := range p.Cuts {
		n += c.CountInPattern
	}
	return n
}

// Efficiency returns 1 - waste/source_length, the material-efficiency
// metric used to rank patterns for piece-aware crossover. Returns 0 for a
// zero-length source.
func (p Pattern) Efficiency() float64 {
	if p.SourceLength <= 0 {
		return 0
	}
	return 1 - p.Waste/p.SourceLength
}

// AddCut increments (or creates) the cut entry for (orderID, length) by
// delta, recomputing derived fields. A resulting count <= 0 removes the
// entry entirely.
func (p *Pattern) AddCut(orderID string, length float64, delta int) {
	for i := range p.Cuts {
		if p.Cuts[i].OrderID == orderID && floatsEqual(p.Cuts[i].PieceLength, length) {
			p.Cuts[i].CountInPattern += delta
			if p.Cuts[i].CountInPattern <= 0 {
				p.Cuts = append(p.Cuts[:i], p.Cuts[i+1:]...)
			}
			p.recalc()
			return
		}
	}
	if delta > 0 {
		p.Cuts = append(p.Cuts, Cut{OrderID: orderID, PieceLength: length, CountInPattern: delta})
		p.recalc()
	}
}

// ResidualLength returns how much of the source bar is not yet used.
func (p Pattern) ResidualLength() float64 {
	return p.SourceLength - p.UsedLength
}

// Recalc exposes pattern derivation to callers outside the package (e.g.
// mutation operators) that build Cuts directly and then need Waste/
// Reusable/UsedLength refreshed.
func (p *Pattern) Recalc() { p.recalc() }
