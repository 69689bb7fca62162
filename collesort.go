package collesort

import (
	"context"
	"fmt"
	"iter"
	"math"
	"time"

	"github.com/hupe1980/collesort/internal/greedy"
	"github.com/hupe1980/collesort/internal/normalize"
	"github.com/hupe1980/collesort/internal/search"
	"github.com/hupe1980/collesort/model"
)

const (
	// MinTeams is the smallest supported team count.
	MinTeams = 2
	// MaxTeams is the largest supported team count.
	MaxTeams = search.MaxTeams
	// MinSize is the smallest supported number of values.
	MinSize = 2
	// MaxSize is the largest supported number of values.
	MaxSize = 24
)

// SearchStats reports the effort of one search.
type SearchStats struct {
	// Nodes is the number of expanded search nodes.
	Nodes int64
	// Leaves is the number of complete assignments evaluated.
	Leaves int64
	// Pruned is the number of subtrees cut by the bound.
	Pruned int64
	// Improvements is the number of incumbent updates.
	Improvements int64
}

func statsFrom(s search.Stats) SearchStats {
	return SearchStats{
		Nodes:        s.Nodes,
		Leaves:       s.Leaves,
		Pruned:       s.Pruned,
		Improvements: s.Improvements,
	}
}

// Result is a solved partition.
//
// Groups are labelled by first appearance in the input: the group holding
// values[0] is group 0, the group holding the first value outside group 0
// is group 1, and so on.
type Result struct {
	// Values holds the input values grouped contiguously by group, in input
	// order within each group.
	Values []float64
	// Groups holds the values of each group in input order.
	Groups [][]float64
	// Positions holds the input positions of each group.
	Positions [][]int
	// Sums holds the sum of each group.
	Sums []float64
	// Amplitude is the spread between the strongest and the weakest group.
	Amplitude float64
	// Bound is the amplitude of the greedy partition that seeded the search.
	Bound float64
	// Assignment maps every input position to its group.
	Assignment model.Assignment
	// Stats is the accumulated search effort.
	Stats SearchStats
}

// Sort partitions values into teams equal-size groups with the smallest
// possible amplitude and returns the values grouped contiguously (see
// Result.Values).
//
// Example:
//
//	out, err := collesort.Sort(ctx, []float64{1, 2, 3, 4}, 2)
//	// out == [1 4 2 3]
func Sort(ctx context.Context, values []float64, teams int, opts ...Option) ([]float64, error) {
	res, err := Solve(ctx, values, teams, opts...)
	if err != nil {
		return nil, err
	}
	return res.Values, nil
}

// Solve returns an optimal partition of values into teams equal-size groups.
//
// Among partitions of equal amplitude the first one in search order wins,
// so the result is deterministic. Solve returns ctx.Err() if ctx is
// canceled before the search completes.
func Solve(ctx context.Context, values []float64, teams int, opts ...Option) (res *Result, err error) {
	o := applyOptions(opts)
	log := o.logger.WithTeams(teams).WithSize(len(values))

	start := time.Now()
	defer func() {
		o.metricsCollector.RecordSolve(teams, time.Since(start), err)
		log.LogSolve(ctx, res, err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p, err := newProblem(values, teams, o)
	if err != nil {
		return nil, err
	}
	log.LogEstimate(ctx, p.estimate.Amplitude, p.estimate.Swaps)

	// The first solution of the sequence is optimal, so the greedy bound
	// is all Solve ever needs.
	return p.solve(ctx, p.estimate.Amplitude, log, o)
}

// solve runs the search under limit and returns its first solution.
func (p *problem) solve(ctx context.Context, limit float64, log *Logger, o options) (*Result, error) {
	cfg := p.config(ctx, log, o)

	var (
		sol   model.Solution
		stats search.Stats
		ok    bool
		err   error
	)
	if o.workers > 1 {
		sol, stats, ok, err = search.Parallel(ctx, p.in, p.teams, limit, o.workers, cfg)
		if err != nil {
			return nil, err
		}
	} else {
		c := search.NewCursor(p.in, p.teams, limit, cfg)
		sol, ok = c.Next()
		stats = c.Stats()
		if err := c.Err(); err != nil {
			return nil, err
		}
	}

	o.metricsCollector.RecordSearch(statsFrom(stats))
	if !ok {
		return nil, fmt.Errorf("%w: %d values, %d teams", ErrNoSolution, len(p.values), p.teams)
	}
	return p.result(sol, stats)
}

// Solutions returns the lazy sequence of partitions in non-decreasing
// amplitude order. The first element is what Solve returns. By default only
// partitions at least as good as the greedy partition are produced; see
// WithExhaustive.
//
// Each distinct partition appears once. Breaking out of the loop stops the
// search. A validation or context error is yielded as the last element.
//
// Example:
//
//	for res, err := range collesort.Solutions(ctx, values, 2) {
//	    if err != nil {
//	        return err
//	    }
//	    if res.Amplitude > 1 {
//	        break
//	    }
//	    fmt.Println(res.Values)
//	}
func Solutions(ctx context.Context, values []float64, teams int, opts ...Option) iter.Seq2[*Result, error] {
	return func(yield func(*Result, error) bool) {
		o := applyOptions(opts)
		log := o.logger.WithTeams(teams).WithSize(len(values))

		p, err := newProblem(values, teams, o)
		if err != nil {
			yield(nil, err)
			return
		}

		limit := p.estimate.Amplitude
		if o.exhaustive {
			limit = math.Inf(1)
		}

		c := search.NewCursor(p.in, teams, limit, p.config(ctx, log, o))
		for {
			sol, ok := c.Next()
			if !ok {
				if err := c.Err(); err != nil {
					yield(nil, err)
				}
				return
			}
			res, err := p.result(sol, c.Stats())
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(res, nil) {
				return
			}
		}
	}
}

// Validate checks values and teams the same way Sort does, without
// searching.
//
// Checks run in this order: zero teams, divisibility, team count range,
// size range, finite values.
func Validate(values []float64, teams int) error {
	size := len(values)
	if teams <= 0 {
		return &TeamCountError{Teams: teams}
	}
	if size%teams != 0 {
		return &SizeError{Size: size, Teams: teams}
	}
	if teams < MinTeams || teams > MaxTeams {
		return &TeamCountError{Teams: teams}
	}
	if size < MinSize || size > MaxSize {
		return &SizeError{Size: size, Teams: teams}
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %v at position %d", ErrInvalidValue, v, i)
		}
	}
	return nil
}

// problem is a validated input with its greedy bound.
type problem struct {
	teams    int
	values   []float64
	in       *normalize.WorkingInput
	estimate greedy.Result
}

func newProblem(values []float64, teams int, o options) (*problem, error) {
	if err := Validate(values, teams); err != nil {
		return nil, err
	}

	in, err := normalize.New(values, len(values))
	if err != nil {
		return nil, translateError(err)
	}

	return &problem{
		teams:    teams,
		values:   in.Input(),
		in:       in,
		estimate: greedy.Estimate(in, teams, greedy.Options{Rounds: o.rounds}),
	}, nil
}

func (p *problem) config(ctx context.Context, log *Logger, o options) search.Config {
	return search.Config{
		Context:          ctx,
		Logger:           log.Logger,
		ProgressInterval: o.progressInterval,
	}
}

// result builds the caller-facing view of sol. An assignment that is not
// a complete equal-size partition is never returned.
func (p *problem) result(sol model.Solution, stats search.Stats) (*Result, error) {
	a := sol.Assignment()
	if a.Len() != len(p.values) || a.Teams() != p.teams {
		return nil, fmt.Errorf("collesort: %w: %d positions over %d groups, want %d over %d",
			model.ErrInvalidAssignment, a.Len(), a.Teams(), len(p.values), p.teams)
	}
	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("collesort: %w", err)
	}
	a = a.Canonical()

	positions := a.Positions()
	groups := make([][]float64, len(positions))
	for g, pos := range positions {
		groups[g] = make([]float64, len(pos))
		for j, i := range pos {
			groups[g][j] = p.values[i]
		}
	}

	// Amplitude is taken from the reported sums so the two always agree.
	sums := a.Sums(p.values)

	return &Result{
		Values:     a.Arrange(p.values),
		Groups:     groups,
		Positions:  positions,
		Sums:       sums,
		Amplitude:  model.Amplitude(sums),
		Bound:      p.estimate.Amplitude,
		Assignment: a,
		Stats:      statsFrom(stats),
	}, nil
}
