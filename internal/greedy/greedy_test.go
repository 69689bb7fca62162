package greedy

import (
	"testing"

	"github.com/hupe1980/collesort/internal/normalize"
	"github.com/hupe1980/collesort/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func working(t *testing.T, values ...float64) *normalize.WorkingInput {
	t.Helper()
	w, err := normalize.New(values, len(values))
	require.NoError(t, err)
	return w
}

func TestEstimate(t *testing.T) {
	t.Run("Balanced", func(t *testing.T) {
		r := Estimate(working(t, 1, 2, 3, 4), 2, DefaultOptions())
		assert.Equal(t, []model.GroupID{0, 1, 1, 0}, r.Groups)
		assert.Equal(t, []float64{5, 5}, r.Sums)
		assert.Equal(t, 0.0, r.Amplitude)
	})

	t.Run("Forced", func(t *testing.T) {
		r := Estimate(working(t, 1, 1, 1, 10), 2, DefaultOptions())
		assert.Equal(t, 9.0, r.Amplitude)
		assert.Equal(t, 0, r.Swaps)
	})

	t.Run("RefinementImproves", func(t *testing.T) {
		in := working(t, 1, 17, 8, 15, 16, 18)

		plain := Estimate(in, 2, Options{})
		assert.Equal(t, 7.0, plain.Amplitude)
		assert.Equal(t, 0, plain.Swaps)

		refined := Estimate(in, 2, DefaultOptions())
		assert.Equal(t, 3.0, refined.Amplitude)
		assert.Equal(t, 1, refined.Swaps)
		assert.Equal(t, []model.GroupID{1, 1, 0, 0, 0, 1}, refined.Groups)
	})

	t.Run("OnePerGroup", func(t *testing.T) {
		r := Estimate(working(t, 4, -1, 7), 3, DefaultOptions())
		assert.Equal(t, 8.0, r.Amplitude)
	})

	t.Run("EqualSizes", func(t *testing.T) {
		values := []float64{9, 3, 7, 1, 8, 2, 6, 4, 5, 12, 11, 10}
		for _, k := range []int{2, 3, 4} {
			r := Estimate(working(t, values...), k, DefaultOptions())
			a := model.NewAssignment(r.Groups, k)
			require.NoError(t, a.Validate(), "k=%d", k)
			assert.Equal(t, model.Amplitude(r.Sums), r.Amplitude)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		in := working(t, 5, 5, 3, 3, 2, 2, 9, 1)
		assert.Equal(t, Estimate(in, 4, DefaultOptions()), Estimate(in, 4, DefaultOptions()))
	})
}
