// Package model holds the pure value types shared by the optimization core:
// demanded pieces, stock and scrap bars, cutting patterns, chromosomes, and
// the configuration and error taxonomy that govern them.
package model

import "math"

// LengthTolerance is the rounding/comparison tolerance (meters) used
// throughout the core for floating point length and waste comparisons.
const LengthTolerance = 1e-3

// RoundLength rounds a length to three fractional digits, per spec.
func RoundLength(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Piece is one consolidated demand row within a single (diameter, execution
// group) sub-problem: an order id, a required length, and how many are
// needed.
type Piece struct {
	OrderID       string
	Length        float64
	RequiredCount int
}

// CleanDemand applies the ingestion rules of the external-interface contract:
// coerce counts to positive integers, round lengths to three digits, and
// drop rows with non-positive count or length. Rows are NOT consolidated
// here; call ConsolidatePieces for that.
func CleanDemand(rows []Piece) []Piece {
	cleaned := make([]Piece, 0, len(rows))
	for _, r := range rows {
		length := RoundLength(r.Length)
		if length <= 0 || r.RequiredCount <= 0 {
			continue
		}
		cleaned = append(cleaned, Piece{OrderID: r.OrderID, Length: length, RequiredCount: r.RequiredCount})
	}
	return cleaned
}

// pieceKey identifies a consolidation bucket: identical (order_id,
// piece_length) rows are summed.
type pieceKey struct {
	OrderID string
	Length  float64
}

// ConsolidatePieces sums required counts for identical (order_id,
// piece_length) rows, preserving the order in which each key first appears.
func ConsolidatePieces(rows []Piece) []Piece {
	index := make(map[pieceKey]int, len(rows))
	out := make([]Piece, 0, len(rows))
	for _, r := range rows {
		key := pieceKey{OrderID: r.OrderID, Length: r.Length}
		if i, ok := index[key]; ok {
			out[i].RequiredCount += r.RequiredCount
			continue
		}
		index[key] = len(out)
		out = append(out, r)
	}
	return out
}

// TotalCount returns the sum of required counts across a demand set.
func TotalCount(pieces []Piece) int {
	total := 0
	for _, p := range pieces {
		total += p.RequiredCount
	}
	return total
}

// Expand turns consolidated demand into one entry per physical piece,
// preserving (order_id, length) on every copy. Used by the FFD/BFD
// heuristics and the fallback packer, which both operate on individual
// pieces rather than counts.
func Expand(pieces []Piece) []Piece {
	out := make([]Piece, 0, TotalCount(pieces))
	for _, p := range pieces {
		for i := 0; i < p.RequiredCount; i++ {
			out = append(out, Piece{OrderID: p.OrderID, Length: p.Length, RequiredCount: 1})
		}
	}
	return out
}
