// Package model defines the value types shared by the partition engine.
//
// # Types
//
//   - GroupID: team index in [0, K)
//   - Assignment: maps every input position to exactly one GroupID, with
//     every group holding the same number of positions
//   - Solution: a complete Assignment paired with its Amplitude
//
// Solutions are ordered by Amplitude only. Two solutions with the same
// Amplitude compare equal even if their assignments differ; the engine breaks
// such ties by discovery order.
//
//	sol := model.NewSolution(assignment, 0.5)
//	if model.Compare(sol, best) < 0 {
//	    best = sol
//	}
package model
