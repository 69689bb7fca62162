package model

import (
	"cmp"
	"fmt"
)

// Solution pairs a complete Assignment with its Amplitude.
type Solution struct {
	assignment Assignment
	amplitude  float64
}

// NewSolution creates a solution.
func NewSolution(a Assignment, amplitude float64) Solution {
	return Solution{assignment: a, amplitude: amplitude}
}

// Assignment returns the solution's assignment.
func (s Solution) Assignment() Assignment { return s.assignment }

// Amplitude returns the spread between the strongest and weakest group.
func (s Solution) Amplitude() float64 { return s.amplitude }

// Less reports whether s has a strictly smaller amplitude than o.
func (s Solution) Less(o Solution) bool { return s.amplitude < o.amplitude }

// String returns a string representation of the Solution.
func (s Solution) String() string {
	return fmt.Sprintf("Solution(amplitude=%g, groups=%v)", s.amplitude, s.assignment.groups)
}

// Compare orders solutions by amplitude only.
// It can be used with slices.SortStableFunc and slices.MinFunc.
func Compare(a, b Solution) int {
	return cmp.Compare(a.amplitude, b.amplitude)
}
