package engine

import (
	"math/rand"
	"sort"

	"github.com/cutplan/rebarcut/internal/model"
)

// openBar tracks one bar that has been opened during FFD/BFD packing and
// the cuts placed on it so far.
type openBar struct {
	bar  model.Bar
	cuts []model.Cut
	used float64
}

func (o *openBar) residual() float64 { return o.bar.Length - o.used }

func (o *openBar) place(orderID string, length float64) {
	for i := range o.cuts {
		if o.cuts[i].OrderID == orderID && o.cuts[i].PieceLength == length {
			o.cuts[i].CountInPattern++
			o.used += length
			return
		}
	}
	o.cuts = append(o.cuts, model.Cut{OrderID: orderID, PieceLength: length, CountInPattern: 1})
	o.used += length
}

func (o openBar) toPattern() model.Pattern {
	p, err := model.MakePattern(o.bar.Length, o.bar.Kind, o.cuts)
	if err != nil {
		// Can only happen if a caller placed more than residual allowed,
		// which every placement helper below prevents; surfaced as a
		// pattern invariant violation rather than silently truncated.
		panic(err)
	}
	return p
}

// scrapPool tracks single-use SCRAP bars during packing: each entry can be
// opened as the source of at most one pattern.
type scrapPool struct {
	remaining []float64
}

func newScrapPool(lengths []float64) *scrapPool {
	out := make([]float64, len(lengths))
	copy(out, lengths)
	sort.Sort(sort.Reverse(sort.Float64Slice(out)))
	return &scrapPool{remaining: out}
}

// take removes and returns the smallest scrap bar >= required, if any.
func (s *scrapPool) take(required float64) (float64, bool) {
	bestIdx := -1
	for i, l := range s.remaining {
		if l+model.LengthTolerance < required {
			continue
		}
		if bestIdx == -1 || l < s.remaining[bestIdx] {
			bestIdx = i
		}
	}
	if bestIdx == -1 {
		return 0, false
	}
	l := s.remaining[bestIdx]
	s.remaining = append(s.remaining[:bestIdx], s.remaining[bestIdx+1:]...)
	return l, true
}

// packGreedy is the shared body of FFD and BFD: expand demand into
// individual pieces sorted descending by length, then place each piece
// into an open bar chosen by the supplied selection rule, opening a new
// bar (SCRAP first, smallest fitting STANDARD length otherwise) when no
// open bar has room.
func packGreedy(demand []model.Piece, standardLengths []float64, scrapLengths []float64, pickOpenBar func(open []*openBar, pieceLength float64) int) []model.Pattern {
	pieces := model.Expand(demand)
	sort.SliceStable(pieces, func(i, j int) bool { return pieces[i].Length > pieces[j].Length })

	scraps := newScrapPool(scrapLengths)
	var open []*openBar
	var unplaced []model.Piece

	for _, piece := range pieces {
		idx := pickOpenBar(open, piece.Length)
		if idx >= 0 {
			open[idx].place(piece.OrderID, piece.Length)
			continue
		}
		// No open bar fits: open a new one, scrap first, then the
		// smallest standard length that accommodates the piece.
		if l, ok := scraps.take(piece.Length); ok {
			ob := &openBar{bar: model.Bar{Length: l, Kind: model.Scrap}}
			ob.place(piece.OrderID, piece.Length)
			open = append(open, ob)
			continue
		}
		if l, ok := smallestStandardFitting(standardLengths, piece.Length); ok {
			ob := &openBar{bar: model.Bar{Length: l, Kind: model.Standard}}
			ob.place(piece.OrderID, piece.Length)
			open = append(open, ob)
			continue
		}
		unplaced = append(unplaced, piece)
	}

	patterns := make([]model.Pattern, 0, len(open))
	for _, ob := range open {
		patterns = append(patterns, ob.toPattern())
	}
	// Unplaced pieces (longer than every candidate bar, ErrNoBarFits) are
	// recorded via the completeness report downstream, not raised here.
	return patterns
}

func smallestStandardFitting(lengths []float64, required float64) (float64, bool) {
	best := 0.0
	found := false
	for _, l := range lengths {
		if l+model.LengthTolerance < required {
			continue
		}
		if !found || l < best {
			best = l
			found = true
		}
	}
	return best, found
}

// FFD packs demand using First-Fit-Decreasing: each piece goes into the
// first currently-open bar with enough residual length.
func FFD(demand []model.Piece, standardLengths []float64, scrapLengths []float64) []model.Pattern {
	return packGreedy(demand, standardLengths, scrapLengths, func(open []*openBar, pieceLength float64) int {
		for i, ob := range open {
			if ob.residual()+model.LengthTolerance >= pieceLength {
				return i
			}
		}
		return -1
	})
}

// BFD packs demand using Best-Fit-Decreasing: each piece goes into the
// open bar whose residual minus the piece length is smallest (tightest
// fit).
func BFD(demand []model.Piece, standardLengths []float64, scrapLengths []float64) []model.Pattern {
	return packGreedy(demand, standardLengths, scrapLengths, func(open []*openBar, pieceLength float64) int {
		best := -1
		bestSlack := 0.0
		for i, ob := range open {
			residual := ob.residual()
			if residual+model.LengthTolerance < pieceLength {
				continue
			}
			slack := residual - pieceLength
			if best == -1 || slack < bestSlack {
				best = i
				bestSlack = slack
			}
		}
		return best
	})
}

// BFDPieces runs BFD over an already-expanded (or arbitrary) set of cuts,
// used by mutation's re-optimize and split/merge operators which work on
// pieces already assigned to a pattern rather than on fresh demand.
func BFDPieces(cuts []model.Cut, standardLengths []float64, scrapLengths []float64) []model.Pattern {
	demand := make([]model.Piece, len(cuts))
	for i, c := range cuts {
		demand[i] = model.Piece{OrderID: c.OrderID, Length: c.PieceLength, RequiredCount: c.CountInPattern}
	}
	return BFD(demand, standardLengths, scrapLengths)
}

// RandomWithRepair assigns each piece to a uniformly random candidate bar
// (SCRAP entries single-use), falling back to the smallest STANDARD bar
// that fits when a piece can't be placed on its random draw; whatever the
// scatter genuinely could not place is then repaired via BFD. The random
// scatter's own bars are kept as-is, so the result actually reflects rng
// (distinct from a pure BFD individual) instead of being discarded.
func RandomWithRepair(rng *rand.Rand, demand []model.Piece, standardLengths []float64, scrapLengths []float64) []model.Pattern {
	pieces := model.Expand(demand)
	scraps := newScrapPool(scrapLengths)

	// First pass: scatter pieces across randomly chosen open bars (or
	// open fresh ones at random candidate lengths) with no regard for
	// efficiency; whatever falls out unplaced is repaired below.
	var open []*openBar
	var unplaced []model.Piece
	for _, piece := range pieces {
		placed := false
		if len(open) > 0 {
			// Try a handful of random open bars before giving up on reuse.
			attempts := len(open)
			if attempts > 5 {
				attempts = 5
			}
			for i := 0; i < attempts; i++ {
				idx := rng.Intn(len(open))
				if open[idx].residual()+model.LengthTolerance >= piece.Length {
					open[idx].place(piece.OrderID, piece.Length)
					placed = true
					break
				}
			}
		}
		if placed {
			continue
		}
		if l, ok := scraps.take(piece.Length); ok {
			if rng.Intn(2) == 0 {
				ob := &openBar{bar: model.Bar{Length: l, Kind: model.Scrap}}
				ob.place(piece.OrderID, piece.Length)
				open = append(open, ob)
				continue
			}
			scraps.remaining = append(scraps.remaining, l)
		}
		if len(standardLengths) > 0 {
			candidate := standardLengths[rng.Intn(len(standardLengths))]
			if candidate+model.LengthTolerance >= piece.Length {
				ob := &openBar{bar: model.Bar{Length: candidate, Kind: model.Standard}}
				ob.place(piece.OrderID, piece.Length)
				open = append(open, ob)
				continue
			}
		}
		if l, ok := smallestStandardFitting(standardLengths, piece.Length); ok {
			ob := &openBar{bar: model.Bar{Length: l, Kind: model.Standard}}
			ob.place(piece.OrderID, piece.Length)
			open = append(open, ob)
			continue
		}
		// Nothing in this scatter's reach fits it; hand it to the repair
		// pass below.
		unplaced = append(unplaced, piece)
	}

	patterns := make([]model.Pattern, 0, len(open)+1)
	for _, ob := range open {
		patterns = append(patterns, ob.toPattern())
	}

	// Repair: anything the scatter genuinely could not place gets a second,
	// deterministic chance via BFD, sourced from whatever SCRAP the scatter
	// didn't already consume. The scatter's own bars are left untouched, so
	// the individual still carries the structure rng produced.
	if len(unplaced) > 0 {
		patterns = append(patterns, BFD(unplaced, standardLengths, scraps.remaining)...)
	}

	return patterns
}
