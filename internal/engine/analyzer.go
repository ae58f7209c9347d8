package engine

import "math"

// AnalyzeHomogeneous solves the single-length sub-case of spec.md §4.2
// exactly: given one demanded length L, a required count N, and candidate
// stock lengths, it returns the stock-bar mix (length -> bar count) that
// covers at least N pieces at minimum waste, tie-breaking on fewest total
// bars.
//
// The spec frames this as enumerating every non-negative integer vector
// (n1..nk) with ni in [0, ceil(N/yi)] and scoring each by its waste. Because
// waste = sum(ni*bi) - N*L for every feasible combination (the per-bar
// residue ri = bi - yi*L, so sum(ni*ri) + (sum(ni*yi)-N)*L collapses to
// sum(ni*bi) - N*L), minimizing waste is exactly minimizing the total
// stock length used to reach yield >= N. That reduction turns the
// combinatorial enumeration into a bounded unbounded-knapsack / coin-change
// problem, solved here by dynamic programming over achievable yield counts
// instead of a literal cartesian product — the result is identical to
// exhaustive search, just tractable for counts in the hundreds.
func AnalyzeHomogeneous(length float64, count int, candidates []float64) (mix map[float64]int, waste float64, ok bool) {
	if length <= 0 || count <= 0 || len(candidates) == 0 {
		return nil, 0, false
	}

	type bar struct {
		length float64
		yield  int
	}
	var bars []bar
	maxYield := 0
	for _, b := range candidates {
		y := int(math.Floor(b/length + 1e-9))
		if y <= 0 {
			continue
		}
		bars = append(bars, bar{length: b, yield: y})
		if y > maxYield {
			maxYield = y
		}
	}
	if len(bars) == 0 {
		return nil, 0, false
	}

	// No combination needs to overshoot target yield by more than the
	// largest single bar's yield: once yield >= count, adding more bars
	// only adds waste, so the optimum never exceeds count + maxYield - 1.
	cap := count + maxYield - 1

	const inf = math.MaxInt64
	cost := make([]float64, cap+1)
	totalBars := make([]int, cap+1)
	choice := make([]int, cap+1) // index into bars used to reach t, -1 = unreached
	for t := range cost {
		cost[t] = math.Inf(1)
		totalBars[t] = int(inf)
		choice[t] = -1
	}
	cost[0] = 0
	totalBars[0] = 0

	better := func(costA float64, barsA int, costB float64, barsB int) bool {
		if costA != costB {
			return costA < costB
		}
		return barsA < barsB
	}

	for t := 1; t <= cap; t++ {
		for i, b := range bars {
			prev := t - b.yield
			if prev < 0 {
				continue
			}
			if math.IsInf(cost[prev], 1) {
				continue
			}
			candCost := cost[prev] + b.length
			candBars := totalBars[prev] + 1
			if better(candCost, candBars, cost[t], totalBars[t]) {
				cost[t] = candCost
				totalBars[t] = candBars
				choice[t] = i
			}
		}
	}

	bestT := -1
	for t := count; t <= cap; t++ {
		if math.IsInf(cost[t], 1) {
			continue
		}
		if bestT == -1 || better(cost[t], totalBars[t], cost[bestT], totalBars[bestT]) {
			bestT = t
		}
	}
	if bestT == -1 {
		return nil, 0, false
	}

	mix = make(map[float64]int)
	for t := bestT; t > 0; {
		i := choice[t]
		if i < 0 {
			break
		}
		mix[bars[i].length]++
		t -= bars[i].yield
	}

	totalLength := cost[bestT]
	waste = totalLength - float64(count)*length
	return mix, roundWaste(waste), true
}

func roundWaste(v float64) float64 {
	return math.Round(v*1000) / 1000
}
