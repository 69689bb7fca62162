package search

import (
	"math"
	"sync/atomic"
)

// Bound is an amplitude that only ever decreases. It is safe for concurrent
// use.
type Bound struct {
	bits atomic.Uint64
}

// NewBound creates a Bound initialized to v.
func NewBound(v float64) *Bound {
	b := &Bound{}
	b.bits.Store(math.Float64bits(v))
	return b
}

// Load returns the current bound.
func (b *Bound) Load() float64 {
	return math.Float64frombits(b.bits.Load())
}

// Tighten lowers the bound to v if v is strictly smaller.
// It reports whether the bound changed.
func (b *Bound) Tighten(v float64) bool {
	for {
		old := b.bits.Load()
		if v >= math.Float64frombits(old) {
			return false
		}
		if b.bits.CompareAndSwap(old, math.Float64bits(v)) {
			return true
		}
	}
}
