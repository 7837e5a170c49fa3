// Package optpack provides an exact 0/1 knapsack engine behind a stable,
// flat foreign-call contract that WASM guest modules can invoke directly.
//
// # Overview
//
// The solver computes the maximum achievable value for a bounded-capacity,
// integer-weight 0/1 knapsack instance and reports which items were chosen.
// Results are exact and deterministic: ties between equally valuable subsets
// always resolve toward excluding the item.
//
// # Basic Usage
//
//	selection := make([]int32, 5)
//	total, err := solver.Solve(
//	    []int32{2, 3, 4, 5, 9},  // weights
//	    []int32{3, 4, 5, 8, 10}, // values
//	    10,                      // capacity
//	    selection,
//	)
//
// # The Foreign-Call Boundary
//
// Guest WASM modules import a single host function with a fixed shape:
//
//	knapsack(n: i32, weights_ptr: i32, values_ptr: i32,
//	         capacity: i32, selection_ptr: i32) -> i32
//
// A non-negative return is the optimal total value; negative returns are
// status codes. Run guests with the boundary wired in:
//
//	r, _ := runner.New()
//	defer r.Close()
//	result := r.Run(ctx, "guest.wasm")
//
// See the [solver], [abi], [instance], and [runner] packages for detailed
// API documentation.
package optpack
