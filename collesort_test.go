package collesort

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"testing"

	"github.com/hupe1980/collesort/internal/search"
	"github.com/hupe1980/collesort/model"
	"github.com/hupe1980/collesort/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSort(t *testing.T) {
	tests := []struct {
		name      string
		values    []float64
		teams     int
		want      []float64
		amplitude float64
	}{
		{"Balanced", []float64{1, 2, 3, 4}, 2, []float64{1, 4, 2, 3}, 0},
		{"Forced", []float64{1, 1, 1, 10}, 2, []float64{1, 1, 1, 10}, 9},
		{"OnePerTeam", []float64{4, -1, 7}, 3, []float64{4, -1, 7}, 8},
		{"Refined", []float64{1, 17, 8, 15, 16, 18}, 2, []float64{1, 17, 18, 8, 15, 16}, 3},
		{"FourTeams", []float64{5, 5, 3, 3, 2, 2, 9, 1}, 4, []float64{5, 2, 5, 2, 3, 3, 9, 1}, 4},
		{"ThreeTeams", []float64{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8}, 3, []float64{3, 1, 5, 8, 4, 5, 2, 6, 1, 9, 3, 5}, 1},
		{"Fractional", []float64{1.5, 2.25, 3.75, 0.5, 4.0, 2.0}, 3, []float64{1.5, 3.75, 2.25, 2.0, 0.5, 4.0}, 1},
		{"AllEqual", []float64{7, 7, 7, 7}, 2, []float64{7, 7, 7, 7}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Sort(context.Background(), tt.values, tt.teams)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)

			res, err := Solve(context.Background(), tt.values, tt.teams)
			require.NoError(t, err)
			assert.Equal(t, tt.amplitude, res.Amplitude)
			assert.LessOrEqual(t, res.Amplitude, res.Bound)
		})
	}
}

func TestSolve_Result(t *testing.T) {
	values := []float64{1, 17, 8, 15, 16, 18}
	res, err := Solve(context.Background(), values, 2)
	require.NoError(t, err)

	assert.Equal(t, [][]float64{{1, 17, 18}, {8, 15, 16}}, res.Groups)
	assert.Equal(t, [][]int{{0, 1, 5}, {2, 3, 4}}, res.Positions)
	assert.Equal(t, []float64{36, 39}, res.Sums)
	assert.Equal(t, 3.0, res.Amplitude)
	require.NoError(t, res.Assignment.Validate())
	assert.Positive(t, res.Stats.Nodes)

	// The caller's slice is never modified.
	assert.Equal(t, []float64{1, 17, 8, 15, 16, 18}, values)
}

func TestSolve_WithoutRefinement(t *testing.T) {
	values := []float64{1, 17, 8, 15, 16, 18}

	plain, err := Solve(context.Background(), values, 2, WithRefinement(0))
	require.NoError(t, err)
	refined, err := Solve(context.Background(), values, 2)
	require.NoError(t, err)

	assert.Equal(t, 7.0, plain.Bound)
	assert.Equal(t, 3.0, refined.Bound)
	assert.Equal(t, refined.Values, plain.Values)
}

func TestSolve_NoSolution(t *testing.T) {
	for _, workers := range []int{1, 3} {
		o := applyOptions([]Option{WithWorkers(workers)})
		p, err := newProblem([]float64{1, 1, 1, 10}, 2, o)
		require.NoError(t, err)

		// The optimum is 9, so nothing exists under 8.
		_, err = p.solve(context.Background(), 8, o.logger, o)
		require.ErrorIs(t, err, ErrNoSolution, "workers=%d", workers)
		assert.EqualError(t, err, "no solution found: 4 values, 2 teams")

		// The limit is inclusive.
		res, err := p.solve(context.Background(), 9, o.logger, o)
		require.NoError(t, err)
		assert.Equal(t, 9.0, res.Amplitude)
	}
}

func TestSolve_RejectsInvalidAssignment(t *testing.T) {
	p, err := newProblem([]float64{1, 2, 3, 4}, 2, applyOptions(nil))
	require.NoError(t, err)

	tests := []struct {
		name   string
		groups []model.GroupID
	}{
		{"Unequal", []model.GroupID{0, 0, 0, 1}},
		{"OutOfRange", []model.GroupID{0, 1, 2, 1}},
		{"Partial", []model.GroupID{0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sol := model.NewSolution(model.NewAssignment(tt.groups, 2), 0)
			res, err := p.result(sol, search.Stats{})
			assert.Nil(t, res)
			assert.ErrorIs(t, err, model.ErrInvalidAssignment)
		})
	}
}

func TestSolve_AmplitudeMatchesSums(t *testing.T) {
	rng := testutil.NewRNG(77)
	for i := 0; i < 30; i++ {
		teams, size := rng.Teams(12)
		values := rng.Strengths(size, -3.3, 7.7)

		res, err := Solve(context.Background(), values, teams)
		require.NoError(t, err)
		assert.Equal(t, model.Amplitude(res.Sums), res.Amplitude, "values=%v", values)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		teams  int
		want   error
	}{
		{"ZeroTeams", make([]float64, 5), 0, ErrInvalidTeamCount},
		{"NegativeTeams", make([]float64, 4), -2, ErrInvalidTeamCount},
		{"NotDivisible", make([]float64, 5), 2, ErrSizeMismatch},
		{"NotDivisibleBeforeRange", make([]float64, 5), 7, ErrSizeMismatch},
		{"OneTeam", make([]float64, 4), 1, ErrInvalidTeamCount},
		{"TooManyTeams", make([]float64, 12), 6, ErrInvalidTeamCount},
		{"TooLarge", make([]float64, 25), 5, ErrSizeMismatch},
		{"Empty", nil, 2, ErrSizeMismatch},
		{"NaN", []float64{1, math.NaN(), 3, 4}, 2, ErrInvalidValue},
		{"Inf", []float64{1, 2, math.Inf(-1), 4}, 2, ErrInvalidValue},
		{"Valid", make([]float64, 24), 4, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.values, tt.teams)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)

			_, err = Sort(context.Background(), tt.values, tt.teams)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestErrors(t *testing.T) {
	_, err := Sort(context.Background(), make([]float64, 5), 0)
	var tce *TeamCountError
	require.ErrorAs(t, err, &tce)
	assert.Equal(t, "number of teams must be greater than 0", err.Error())

	_, err = Sort(context.Background(), make([]float64, 5), 2)
	var se *SizeError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 5, se.Size)
	assert.Equal(t, 2, se.Teams)
	assert.Equal(t, "size 5 is not divisible by 2 teams", err.Error())
	assert.False(t, errors.Is(err, ErrInvalidTeamCount))

	_, err = Sort(context.Background(), make([]float64, 30), 5)
	assert.EqualError(t, err, "size 30 out of range (supported: 2-24)")

	_, err = Sort(context.Background(), make([]float64, 12), 6)
	assert.EqualError(t, err, "invalid team count: 6 (supported: 2-5)")
}

func TestSolve_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Solve(ctx, []float64{1, 2, 3, 4}, 2)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = Solve(ctx, []float64{1, 2, 3, 4}, 2, WithWorkers(4))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolve_Properties(t *testing.T) {
	rng := testutil.NewRNG(2024)

	for i := 0; i < 50; i++ {
		teams, size := rng.Teams(12)
		values := rng.Strengths(size, -10, 40)
		if i%2 == 0 {
			values = rng.IntStrengths(size, 0, 20)
		}

		res, err := Solve(context.Background(), values, teams)
		require.NoError(t, err, "values=%v teams=%d", values, teams)

		assert.True(t, testutil.IsPermutation(values, res.Values), "output is a permutation")
		assert.LessOrEqual(t, res.Amplitude, res.Bound)
		assert.InDelta(t, testutil.BruteForce(values, teams), res.Amplitude, 1e-9, "values=%v teams=%d", values, teams)

		for _, g := range res.Groups {
			assert.Len(t, g, size/teams)
		}

		again, err := Solve(context.Background(), values, teams)
		require.NoError(t, err)
		assert.Equal(t, res.Values, again.Values, "deterministic")

		par, err := Solve(context.Background(), values, teams, WithWorkers(3))
		require.NoError(t, err)
		assert.Equal(t, res.Values, par.Values, "parallel matches serial")
		assert.Equal(t, res.Amplitude, par.Amplitude)
	}
}

func TestSolve_OnePerTeamAmplitude(t *testing.T) {
	rng := testutil.NewRNG(5)
	for teams := MinTeams; teams <= MaxTeams; teams++ {
		values := rng.Strengths(teams, -50, 50)
		res, err := Solve(context.Background(), values, teams)
		require.NoError(t, err)

		lo, hi := values[0], values[0]
		for _, v := range values {
			lo, hi = min(lo, v), max(hi, v)
		}
		assert.Equal(t, hi-lo, res.Amplitude)
		assert.Equal(t, values, res.Values)
	}
}

func TestSolutions(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5, 6}

	t.Run("Bounded", func(t *testing.T) {
		var got [][]float64
		for res, err := range Solutions(context.Background(), values, 2) {
			require.NoError(t, err)
			assert.Equal(t, 1.0, res.Amplitude)
			got = append(got, res.Values)
		}
		assert.Equal(t, [][]float64{
			{1, 4, 5, 2, 3, 6},
			{1, 3, 6, 2, 4, 5},
			{1, 4, 6, 2, 3, 5},
		}, got)
	})

	t.Run("Exhaustive", func(t *testing.T) {
		var amps []float64
		for res, err := range Solutions(context.Background(), values, 2, WithExhaustive()) {
			require.NoError(t, err)
			amps = append(amps, res.Amplitude)
		}
		assert.Equal(t, []float64{1, 1, 1, 3, 3, 3, 5, 5, 7, 9}, amps)
	})

	t.Run("FirstMatchesSolve", func(t *testing.T) {
		res, err := Solve(context.Background(), values, 2)
		require.NoError(t, err)

		for first, err := range Solutions(context.Background(), values, 2) {
			require.NoError(t, err)
			assert.Equal(t, res.Values, first.Values)
			break
		}
	})

	t.Run("ValidationError", func(t *testing.T) {
		n := 0
		for res, err := range Solutions(context.Background(), values, 4) {
			assert.Nil(t, res)
			assert.ErrorIs(t, err, ErrSizeMismatch)
			n++
		}
		assert.Equal(t, 1, n)
	})
}

func TestMetricsCollector(t *testing.T) {
	mc := &BasicMetricsCollector{}

	_, err := Solve(context.Background(), []float64{1, 2, 3, 4}, 2, WithMetricsCollector(mc))
	require.NoError(t, err)
	_, err = Solve(context.Background(), []float64{1, 2, 3}, 2, WithMetricsCollector(mc))
	require.Error(t, err)

	stats := mc.GetStats()
	assert.Equal(t, int64(2), stats.SolveCount)
	assert.Equal(t, int64(1), stats.SolveErrors)
	assert.Equal(t, int64(1), stats.SearchCount)
	assert.Positive(t, stats.NodeCount)
	assert.Positive(t, stats.LeafCount)

	// nil falls back to the no-op collector.
	_, err = Solve(context.Background(), []float64{1, 2, 3, 4}, 2, WithMetricsCollector(nil))
	require.NoError(t, err)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Solve(context.Background(), []float64{1, 2, 3, 4}, 2, WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "greedy bound computed")
	assert.Contains(t, buf.String(), "solve completed")
	assert.Contains(t, buf.String(), "teams=2")
	assert.Contains(t, buf.String(), "size=4")

	buf.Reset()
	_, err = Solve(context.Background(), []float64{1, 2, 3}, 2, WithLogger(logger))
	require.Error(t, err)
	assert.Contains(t, buf.String(), "solve failed")

	buf.Reset()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Solve(ctx, []float64{1, 2, 3, 4}, 2, WithLogger(logger))
	require.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, buf.String(), "level=DEBUG msg=\"solve canceled\"")
	assert.NotContains(t, buf.String(), "solve failed")

	// Logging never changes the result.
	quiet, err := Sort(context.Background(), []float64{3, 1, 4, 1, 5, 9}, 3, WithLogger(nil))
	require.NoError(t, err)
	loud, err := Sort(context.Background(), []float64{3, 1, 4, 1, 5, 9}, 3, WithLogger(logger))
	require.NoError(t, err)
	assert.Equal(t, quiet, loud)
}
