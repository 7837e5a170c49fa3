package solver

import (
	"fmt"
	"math"
)

const (
	// MaxCapacity bounds the residual-capacity axis of the DP table.
	MaxCapacity int32 = 1 << 24

	// MaxTableCells bounds n*(capacity+1), the total DP work and the
	// size of the traceback bitset.
	MaxTableCells int64 = 1 << 30
)

// Solve computes the exact optimum for a 0/1 knapsack instance.
//
// The item count is len(weights); values and selection must have the same
// length. On success it returns the maximum total value achievable within
// capacity and overwrites every entry of selection with 0 or 1, where 1
// marks an included item. The caller owns the selection buffer; Solve
// never resizes or retains it.
//
// Ties resolve deterministically: an item is included only when inclusion
// strictly beats exclusion at that residual capacity. A consequence is
// that zero-weight items are included exactly when their value is
// positive. On error the selection buffer is left untouched.
//
// Runs in O(n*capacity) time and holds only call-local state, so
// independent calls are safe from concurrent goroutines.
func Solve(weights, values []int32, capacity int32, selection []int32) (int32, error) {
	if err := validate(weights, values, capacity, selection); err != nil {
		return 0, err
	}

	n := len(weights)
	if capacity > MaxCapacity {
		return 0, fmt.Errorf("%w: capacity %d exceeds %d", ErrOutOfRange, capacity, MaxCapacity)
	}
	if cells := int64(n) * (int64(capacity) + 1); cells > MaxTableCells {
		return 0, fmt.Errorf("%w: DP table of %d cells exceeds %d", ErrOutOfRange, cells, MaxTableCells)
	}

	for i := range selection {
		selection[i] = 0
	}
	if n == 0 {
		return 0, nil
	}

	// best[c] holds the optimal value over the processed item prefix with
	// total weight <= c. Capacities run in reverse so each item is used at
	// most once. keep records, per item, the residual capacities at which
	// including the item strictly improved the table; the traceback below
	// replays those decisions.
	best := make([]int32, capacity+1)
	words := (int(capacity) >> 6) + 1
	keep := make([]uint64, n*words)

	for i := 0; i < n; i++ {
		w, v := weights[i], values[i]
		row := keep[i*words : (i+1)*words]
		for c := capacity; c >= w; c-- {
			if cand := best[c-w] + v; cand > best[c] {
				best[c] = cand
				row[c>>6] |= 1 << (uint32(c) & 63)
			}
		}
	}

	c := capacity
	for i := n - 1; i >= 0; i-- {
		row := keep[i*words : (i+1)*words]
		if row[c>>6]&(1<<(uint32(c)&63)) != 0 {
			selection[i] = 1
			c -= weights[i]
		}
	}

	return best[capacity], nil
}

// validate enforces the input contract shared by Solve and Greedy. It also
// rejects instances whose total value cannot be represented in an int32,
// so the DP arithmetic can stay in 32 bits without wrapping.
func validate(weights, values []int32, capacity int32, selection []int32) error {
	n := len(weights)
	if len(values) != n {
		return fmt.Errorf("%w: %d values for %d weights", ErrInvalidArgument, len(values), n)
	}
	if len(selection) != n {
		return fmt.Errorf("%w: selection buffer holds %d entries, need %d", ErrInvalidArgument, len(selection), n)
	}
	if capacity < 0 {
		return fmt.Errorf("%w: negative capacity %d", ErrInvalidArgument, capacity)
	}

	var total int64
	for i := 0; i < n; i++ {
		if weights[i] < 0 {
			return fmt.Errorf("%w: negative weight %d at index %d", ErrInvalidArgument, weights[i], i)
		}
		if values[i] < 0 {
			return fmt.Errorf("%w: negative value %d at index %d", ErrInvalidArgument, values[i], i)
		}
		total += int64(values[i])
	}
	if total > math.MaxInt32 {
		return fmt.Errorf("%w: total value %d overflows int32", ErrOutOfRange, total)
	}
	return nil
}
