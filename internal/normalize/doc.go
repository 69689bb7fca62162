// Package normalize converts raw strengths into the immutable working
// representation used by the partition search.
//
// Values are reordered by descending magnitude (ties by ascending original
// position) so that the search places large values first. Every value keeps
// its original position, and prefix sums over the reordered values give
// O(1) range sums for bound computation.
package normalize
