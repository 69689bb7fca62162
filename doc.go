// Package collesort splits a small set of player strengths into equal-size
// teams that are as balanced as possible.
//
// Given up to 24 values and a team count K between 2 and 5 that divides the
// number of values, collesort finds the assignment of values to K groups of
// equal size that minimizes the amplitude: the difference between the
// largest and the smallest group sum. The search is exact.
//
// # Quick Start
//
//	ctx := context.Background()
//	out, err := collesort.Sort(ctx, []float64{1, 2, 3, 4}, 2)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(out) // [1 4 2 3]
//
// The output holds the input values grouped contiguously: first the group
// containing values[0], then the group containing the first value not yet
// placed, and so on. Inside a group values keep their input order.
//
// Use Solve for the full result (groups, sums, amplitude, search effort):
//
//	res, err := collesort.Solve(ctx, values, 3, collesort.WithWorkers(4))
//	fmt.Println(res.Groups, res.Sums, res.Amplitude)
//
// # Enumerating Partitions
//
// Solutions yields partitions lazily in non-decreasing amplitude order. The
// first element is the optimum; breaking out of the loop stops the search.
//
//	for res, err := range collesort.Solutions(ctx, values, 2, collesort.WithExhaustive()) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(res.Amplitude, res.Groups)
//	}
//
// # How It Works
//
// A greedy largest-first partition, improved by pairwise swaps, provides an
// initial bound. A branch-and-bound search then places values largest first,
// tries groups in order of increasing sum, skips permutation-equivalent empty
// groups and prunes any subtree whose best possible amplitude cannot beat
// the bound. Ties are broken by search order, so results are deterministic.
//
// # Errors
//
// Every returned error matches one of ErrInvalidTeamCount, ErrSizeMismatch,
// ErrInvalidValue, ErrNoSolution or a context error under errors.Is.
package collesort
