package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/bits-and-blooms/bitset"
)

// ErrInvalidAssignment is returned when an assignment violates the
// equal-size partition invariant.
var ErrInvalidAssignment = errors.New("invalid assignment")

// GroupID identifies one of the K teams.
type GroupID int

// Assignment maps each input position to a GroupID.
//
// Assignments are immutable; all methods return copies.
type Assignment struct {
	groups []GroupID
	teams  int
}

// NewAssignment creates an assignment of len(groups) positions over teams
// groups. The slice is copied.
func NewAssignment(groups []GroupID, teams int) Assignment {
	g := make([]GroupID, len(groups))
	copy(g, groups)
	return Assignment{groups: g, teams: teams}
}

// Len returns the number of assigned positions.
func (a Assignment) Len() int { return len(a.groups) }

// Teams returns the number of groups.
func (a Assignment) Teams() int { return a.teams }

// GroupSize returns the number of positions per group.
func (a Assignment) GroupSize() int {
	if a.teams == 0 {
		return 0
	}
	return len(a.groups) / a.teams
}

// Group returns the group of position i.
func (a Assignment) Group(i int) GroupID { return a.groups[i] }

// Groups returns a copy of the position-to-group mapping.
func (a Assignment) Groups() []GroupID {
	g := make([]GroupID, len(a.groups))
	copy(g, a.groups)
	return g
}

// Members returns the set of positions assigned to g.
func (a Assignment) Members(g GroupID) *bitset.BitSet {
	bs := bitset.New(uint(len(a.groups)))
	for i, gi := range a.groups {
		if gi == g {
			bs.Set(uint(i))
		}
	}
	return bs
}

// Positions returns the positions of every group in ascending order,
// indexed by GroupID.
func (a Assignment) Positions() [][]int {
	out := make([][]int, a.teams)
	for g := range out {
		m := a.Members(GroupID(g))
		pos := make([]int, 0, m.Count())
		for i, ok := m.NextSet(0); ok; i, ok = m.NextSet(i + 1) {
			pos = append(pos, int(i))
		}
		out[g] = pos
	}
	return out
}

// Validate checks that every position belongs to exactly one group in
// [0, Teams) and that all groups have the same size.
func (a Assignment) Validate() error {
	n := len(a.groups)
	if a.teams <= 0 || n == 0 || n%a.teams != 0 {
		return fmt.Errorf("%w: %d positions over %d groups", ErrInvalidAssignment, n, a.teams)
	}

	members := make([]*roaring.Bitmap, a.teams)
	for g := range members {
		members[g] = roaring.New()
	}
	for i, g := range a.groups {
		if g < 0 || int(g) >= a.teams {
			return fmt.Errorf("%w: position %d has group %d", ErrInvalidAssignment, i, g)
		}
		members[g].Add(uint32(i))
	}

	size := uint64(n / a.teams)
	for g, m := range members {
		if m.GetCardinality() != size {
			return fmt.Errorf("%w: group %d has %d members, want %d", ErrInvalidAssignment, g, m.GetCardinality(), size)
		}
		for h := g + 1; h < len(members); h++ {
			if m.Intersects(members[h]) {
				return fmt.Errorf("%w: groups %d and %d overlap", ErrInvalidAssignment, g, h)
			}
		}
	}

	full := roaring.New()
	full.AddRange(0, uint64(n))
	if !roaring.FastOr(members...).Equals(full) {
		return fmt.Errorf("%w: not every position is covered", ErrInvalidAssignment)
	}
	return nil
}

// Canonical relabels groups by first appearance in position order: the
// group of position 0 becomes group 0, the next unseen group becomes group 1,
// and so on. The partition itself is unchanged.
func (a Assignment) Canonical() Assignment {
	relabel := make([]GroupID, a.teams)
	for i := range relabel {
		relabel[i] = -1
	}
	next := GroupID(0)
	out := make([]GroupID, len(a.groups))
	for i, g := range a.groups {
		if relabel[g] < 0 {
			relabel[g] = next
			next++
		}
		out[i] = relabel[g]
	}
	return Assignment{groups: out, teams: a.teams}
}

// Sums returns the per-group sum of values, accumulated in position order.
func (a Assignment) Sums(values []float64) []float64 {
	sums := make([]float64, a.teams)
	for i, g := range a.groups {
		sums[g] += values[i]
	}
	return sums
}

// Arrange returns values grouped contiguously by ascending GroupID, keeping
// the original relative order inside each group.
func (a Assignment) Arrange(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, positions := range a.Positions() {
		for _, p := range positions {
			out = append(out, values[p])
		}
	}
	return out
}

// Amplitude returns max(sums) - min(sums). It returns 0 for no sums.
func Amplitude(sums []float64) float64 {
	if len(sums) == 0 {
		return 0
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range sums {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	return hi - lo
}
