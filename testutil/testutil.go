package testutil

import (
	"math"
	"math/rand"
	"slices"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// IntStrengths returns n integer strengths in [lo, hi].
func (r *RNG) IntStrengths(n int, lo, hi int) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]float64, n)
	for i := range out {
		out[i] = float64(lo + r.rand.Intn(hi-lo+1))
	}
	return out
}

// Strengths returns n strengths in [lo, hi) rounded to two decimals.
func (r *RNG) Strengths(n int, lo, hi float64) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]float64, n)
	for i := range out {
		v := lo + r.rand.Float64()*(hi-lo)
		out[i] = math.Round(v*100) / 100
	}
	return out
}

// Teams returns a random supported team count and a size it divides, with
// size <= maxSize.
func (r *RNG) Teams(maxSize int) (teams, size int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for {
		teams = 2 + r.rand.Intn(4)
		if teams > maxSize {
			continue
		}
		size = teams * (1 + r.rand.Intn(maxSize/teams))
		return teams, size
	}
}

// BruteForce returns the minimum amplitude over every equal-size partition
// of values into k groups. It is exponential and meant for small inputs.
func BruteForce(values []float64, k int) float64 {
	n := len(values)
	if k <= 0 || n == 0 || n%k != 0 {
		return math.NaN()
	}

	capacity := n / k
	sums := make([]float64, k)
	counts := make([]int, k)
	best := math.Inf(1)

	var rec func(i int)
	rec = func(i int) {
		if i == n {
			lo, hi := slices.Min(sums), slices.Max(sums)
			best = min(best, hi-lo)
			return
		}
		emptyTried := false
		for g := 0; g < k; g++ {
			if counts[g] >= capacity {
				continue
			}
			if counts[g] == 0 {
				if emptyTried {
					continue
				}
				emptyTried = true
			}
			sums[g] += values[i]
			counts[g]++
			rec(i + 1)
			counts[g]--
			sums[g] -= values[i]
		}
	}
	rec(0)

	return best
}

// IsPermutation reports whether b holds exactly the values of a as a
// multiset.
func IsPermutation(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	x := slices.Clone(a)
	y := slices.Clone(b)
	slices.Sort(x)
	slices.Sort(y)
	return slices.Equal(x, y)
}
