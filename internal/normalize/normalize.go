package normalize

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

var (
	// ErrSizeMismatch is returned when the input length differs from the
	// expected size.
	ErrSizeMismatch = errors.New("size mismatch")

	// ErrInvalidValue is returned for NaN or infinite values.
	ErrInvalidValue = errors.New("invalid value")
)

// WorkingInput is the normalized, read-only view of the input values.
type WorkingInput struct {
	values []float64 // descending
	origin []int     // origin[i] is the input position of values[i]
	prefix []float64 // prefix[i] = values[0] + ... + values[i-1]
	input  []float64
	scale  float64 // sum of |v|

	integral bool
}

// maxExact is the largest magnitude up to which float64 sums of integers
// are exact.
const maxExact = 1 << 53

// New normalizes values. It fails with ErrSizeMismatch if len(values) != size
// and with ErrInvalidValue if a value is NaN or infinite.
func New(values []float64, size int) (*WorkingInput, error) {
	if len(values) != size {
		return nil, fmt.Errorf("%w: expected %d values, got %d", ErrSizeMismatch, size, len(values))
	}

	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: position %d is %v", ErrInvalidValue, i, v)
		}
	}

	input := make([]float64, size)
	copy(input, values)

	origin := make([]int, size)
	for i := range origin {
		origin[i] = i
	}
	sort.SliceStable(origin, func(i, j int) bool {
		return input[origin[i]] > input[origin[j]]
	})

	w := &WorkingInput{
		values: make([]float64, size),
		origin: origin,
		prefix: make([]float64, size+1),
		input:  input,
	}
	for i, p := range origin {
		v := input[p]
		w.values[i] = v
		w.prefix[i+1] = w.prefix[i] + v
		w.scale += math.Abs(v)
	}

	w.integral = w.scale <= maxExact
	for _, v := range w.values {
		if v != math.Trunc(v) {
			w.integral = false
			break
		}
	}
	return w, nil
}

// Len returns the number of values.
func (w *WorkingInput) Len() int { return len(w.values) }

// Value returns the i-th value in working order.
func (w *WorkingInput) Value(i int) float64 { return w.values[i] }

// Values returns a copy of the values in working order.
func (w *WorkingInput) Values() []float64 {
	out := make([]float64, len(w.values))
	copy(out, w.values)
	return out
}

// Origin returns the input position of the i-th working value.
func (w *WorkingInput) Origin(i int) int { return w.origin[i] }

// Input returns a copy of the values in input order.
func (w *WorkingInput) Input() []float64 {
	out := make([]float64, len(w.input))
	copy(out, w.input)
	return out
}

// RangeSum returns the sum of working values in [i, j).
func (w *WorkingInput) RangeSum(i, j int) float64 { return w.prefix[j] - w.prefix[i] }

// Total returns the sum of all values.
func (w *WorkingInput) Total() float64 { return w.prefix[len(w.values)] }

// Scale returns the sum of absolute values. Search uses it to size the
// tolerance applied to floating point bounds.
func (w *WorkingInput) Scale() float64 { return w.scale }

// Integral reports whether every value is an integer and all partial sums
// are exactly representable. Group sums and amplitudes are then integers.
func (w *WorkingInput) Integral() bool { return w.integral }
