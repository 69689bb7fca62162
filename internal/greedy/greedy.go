// Package greedy computes a fast, deterministic partition used to seed the
// search bound.
//
// Values are taken in working order (largest first) and each goes to the
// lightest group that still has room. A bounded swap refinement then trades
// values between the heaviest and the lightest group while that strictly
// lowers the amplitude.
package greedy

import (
	"github.com/hupe1980/collesort/internal/normalize"
	"github.com/hupe1980/collesort/model"
)

// DefaultRounds is the default number of swap refinement rounds.
const DefaultRounds = 32

// Options configures the estimator.
type Options struct {
	// Rounds bounds the swap refinement. Zero disables refinement.
	Rounds int
}

// DefaultOptions returns the default estimator options.
func DefaultOptions() Options {
	return Options{Rounds: DefaultRounds}
}

// Result is a complete equal-size partition in working order.
type Result struct {
	// Groups maps working positions to groups.
	Groups []model.GroupID
	// Sums holds per-group sums accumulated in working order.
	Sums []float64
	// Amplitude is max(Sums) - min(Sums).
	Amplitude float64
	// Swaps is the number of refinement swaps applied.
	Swaps int
}

// Estimate builds the greedy partition of in over k groups.
// The caller guarantees k > 0 and in.Len()%k == 0.
func Estimate(in *normalize.WorkingInput, k int, opts Options) Result {
	n := in.Len()
	capacity := n / k

	groups := make([]model.GroupID, n)
	sums := make([]float64, k)
	counts := make([]int, k)

	for i := 0; i < n; i++ {
		best := -1
		for g := 0; g < k; g++ {
			if counts[g] >= capacity {
				continue
			}
			if best < 0 || sums[g] < sums[best] {
				best = g
			}
		}
		groups[i] = model.GroupID(best)
		sums[best] += in.Value(i)
		counts[best]++
	}

	swaps := 0
	for round := 0; round < opts.Rounds; round++ {
		if !refine(in, groups, k) {
			break
		}
		swaps++
	}

	sums = groupSums(in, groups, k)
	return Result{
		Groups:    groups,
		Sums:      sums,
		Amplitude: model.Amplitude(sums),
		Swaps:     swaps,
	}
}

// refine applies the best single swap between the heaviest and the lightest
// group. It reports whether a strictly improving swap was applied.
func refine(in *normalize.WorkingInput, groups []model.GroupID, k int) bool {
	sums := groupSums(in, groups, k)
	hi, lo := extremes(sums)
	if hi == lo {
		return false
	}

	current := model.Amplitude(sums)
	bestAmp := current
	bi, bj := -1, -1
	trial := make([]float64, k)

	for i, gi := range groups {
		if int(gi) != hi {
			continue
		}
		for j, gj := range groups {
			if int(gj) != lo {
				continue
			}
			d := in.Value(i) - in.Value(j)
			if d <= 0 {
				continue
			}
			copy(trial, sums)
			trial[hi] -= d
			trial[lo] += d
			if a := model.Amplitude(trial); a < bestAmp {
				bestAmp, bi, bj = a, i, j
			}
		}
	}
	if bi < 0 {
		return false
	}

	groups[bi], groups[bj] = groups[bj], groups[bi]
	if model.Amplitude(groupSums(in, groups, k)) >= current {
		groups[bi], groups[bj] = groups[bj], groups[bi]
		return false
	}
	return true
}

func groupSums(in *normalize.WorkingInput, groups []model.GroupID, k int) []float64 {
	sums := make([]float64, k)
	for i, g := range groups {
		sums[g] += in.Value(i)
	}
	return sums
}

// extremes returns the heaviest and lightest group, ties by lowest id.
func extremes(sums []float64) (hi, lo int) {
	for g := 1; g < len(sums); g++ {
		if sums[g] > sums[hi] {
			hi = g
		}
		if sums[g] < sums[lo] {
			lo = g
		}
	}
	return hi, lo
}
