// Package search implements the branch-and-bound partition engine.
//
// A Cursor enumerates complete equal-size K-way assignments of a
// normalize.WorkingInput in non-decreasing amplitude order. Each call to
// Next returns the solution with the smallest (amplitude, traversal path)
// key strictly greater than the previous one, so the first call yields an
// optimal solution and callers stop by simply not calling Next again.
//
// # Traversal
//
// Values are placed in working order (largest first). At every depth the
// candidate groups are those with remaining capacity, ordered by current
// sum ascending and then by group id. Only the first empty group is tried,
// since empty groups are interchangeable.
//
// # Pruning
//
// For a partial assignment, every group's final sum lies between its
// current sum plus the smallest and the largest possible fill of its
// remaining slots. Together with the global mean this yields an admissible
// lower bound on the final amplitude of the subtree. Bounds are lowered by
// a relative tolerance so that floating point rounding never discards a
// strictly better leaf. Integral inputs round bounds up instead.
//
// The initial bound (usually the greedy amplitude) is inclusive: a leaf
// equal to it is accepted. Once an incumbent exists, only strictly better
// leaves replace it, so the first leaf found wins ties.
//
// # State
//
// The search keeps an explicit stack of frames indexed by depth, plus
// per-depth snapshots of group sums and counts in fixed-size arrays. No
// recursion is used and a pass allocates nothing.
//
// # Parallel Search
//
// Parallel splits the tree into disjoint prefixes and searches them with an
// errgroup. Workers share a monotonically tightening Bound. Results are
// reduced by (amplitude, prefix index), which makes the output identical to
// the serial Cursor.
package search
