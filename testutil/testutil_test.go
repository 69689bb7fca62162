package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntStrengths(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.IntStrengths(16, 1, 10)

	assert.Len(t, v, 16)
	for _, x := range v {
		assert.GreaterOrEqual(t, x, 1.0)
		assert.LessOrEqual(t, x, 10.0)
		assert.Equal(t, math.Trunc(x), x)
	}
}

func TestStrengths(t *testing.T) {
	rng := NewRNG(4711)

	v := rng.Strengths(8, -1, 1)

	assert.Len(t, v, 8)
	for _, x := range v {
		assert.GreaterOrEqual(t, x, -1.0)
		assert.LessOrEqual(t, x, 1.0)
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(7)
	a := rng.Strengths(4, 0, 1)
	rng.Reset()
	b := rng.Strengths(4, 0, 1)

	assert.Equal(t, a, b)
	assert.Equal(t, int64(7), rng.Seed())
}

func TestTeams(t *testing.T) {
	rng := NewRNG(1)
	for i := 0; i < 50; i++ {
		teams, size := rng.Teams(12)
		assert.GreaterOrEqual(t, teams, 2)
		assert.LessOrEqual(t, teams, 5)
		assert.LessOrEqual(t, size, 12)
		assert.Zero(t, size%teams)
	}
}

func TestBruteForce(t *testing.T) {
	assert.Equal(t, 0.0, BruteForce([]float64{1, 2, 3, 4}, 2))
	assert.Equal(t, 9.0, BruteForce([]float64{1, 1, 1, 10}, 2))
	assert.Equal(t, 8.0, BruteForce([]float64{4, -1, 7}, 3))
	assert.Equal(t, 1.0, BruteForce([]float64{1, 2, 3, 4, 5, 6}, 2))
	assert.True(t, math.IsNaN(BruteForce([]float64{1, 2, 3}, 2)))
}

func TestIsPermutation(t *testing.T) {
	assert.True(t, IsPermutation([]float64{1, 2, 2, 3}, []float64{2, 3, 1, 2}))
	assert.False(t, IsPermutation([]float64{1, 2, 2}, []float64{1, 1, 2}))
	assert.False(t, IsPermutation([]float64{1}, []float64{1, 1}))
}
