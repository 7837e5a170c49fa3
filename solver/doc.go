// Package solver implements an exact 0/1 knapsack optimizer.
//
// # Overview
//
// Solve computes the maximum total value achievable for a set of items
// with integer weights and values under an integer capacity bound, and
// writes the chosen items into a caller-owned selection buffer. The
// answer is an exact optimum computed by dynamic programming, never an
// approximation.
//
// # Determinism
//
// When several subsets reach the same optimal value, Solve always picks
// the same one: an item is included only when including it is strictly
// better than leaving it out at that residual capacity. Repeated calls
// with equal inputs produce identical selections, on every platform.
//
// # Limits
//
// Weights, values, and capacity are 31-bit non-negative integers. The DP
// table is bounded by MaxCapacity and MaxTableCells; instances beyond
// those bounds, or whose total value would not fit in an int32, fail
// with ErrOutOfRange rather than silently wrapping.
//
// Greedy provides a density-ordered heuristic baseline. It exists for
// comparison and as a lower-bound oracle; it is not a substitute for
// Solve.
package solver
