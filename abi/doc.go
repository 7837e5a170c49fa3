// Package abi exposes the solver through a fixed-shape, fixed-width
// foreign-call contract that WASM guest modules import from the "env"
// host module:
//
//	knapsack(n: i32, weights_ptr: i32, values_ptr: i32,
//	         capacity: i32, selection_ptr: i32) -> i32
//
//	knapsack_greedy(n: i32, weights_ptr: i32, values_ptr: i32,
//	                capacity: i32, selection_ptr: i32) -> i32
//
// Arrays are little-endian i32 sequences in guest linear memory. On a
// non-negative return the selection region is fully overwritten with 0/1
// flags; on a negative status nothing is written. Richer data structures
// never cross this boundary: flat arrays plus scalar length and capacity
// are the whole contract.
package abi
