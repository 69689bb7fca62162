// Package testutil provides testing utilities for collesort.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating reproducible strengths and an
// exhaustive reference solver used as ground truth.
//
// # Random Strengths
//
//	rng := testutil.NewRNG(seed)
//	ints := rng.IntStrengths(12, 1, 100)       // integer ratings
//	vals := rng.Strengths(12, -5, 30)          // real-valued, 2 decimals
//
// # Ground Truth
//
//	best := testutil.BruteForce(values, k)     // minimum amplitude
//
// # Output Checks
//
//	ok := testutil.IsPermutation(input, output)
package testutil
