// Package instance defines knapsack problem instances and loads them from
// JSON, YAML, and CSV files.
package instance

import (
	"fmt"

	"github.com/optpack/optpack/solver"
)

// Instance is one concrete knapsack problem: parallel weight and value
// sequences plus a capacity bound. Instances are plain data; they carry
// no solver state and are safe to share read-only across goroutines.
type Instance struct {
	Weights  []int32 `json:"weights" yaml:"weights"`
	Values   []int32 `json:"values" yaml:"values"`
	Capacity int32   `json:"capacity" yaml:"capacity"`
}

// Len returns the item count.
func (in *Instance) Len() int { return len(in.Weights) }

// Validate checks the structural invariants shared with the solver:
// parallel sequences of equal length, no negative weight, value, or
// capacity.
func (in *Instance) Validate() error {
	if len(in.Values) != len(in.Weights) {
		return fmt.Errorf("%w: %d values for %d weights",
			solver.ErrInvalidArgument, len(in.Values), len(in.Weights))
	}
	if in.Capacity < 0 {
		return fmt.Errorf("%w: negative capacity %d", solver.ErrInvalidArgument, in.Capacity)
	}
	for i, w := range in.Weights {
		if w < 0 {
			return fmt.Errorf("%w: negative weight %d at index %d", solver.ErrInvalidArgument, w, i)
		}
	}
	for i, v := range in.Values {
		if v < 0 {
			return fmt.Errorf("%w: negative value %d at index %d", solver.ErrInvalidArgument, v, i)
		}
	}
	return nil
}

// TotalWeight sums all item weights.
func (in *Instance) TotalWeight() int64 {
	var sum int64
	for _, w := range in.Weights {
		sum += int64(w)
	}
	return sum
}

// TotalValue sums all item values.
func (in *Instance) TotalValue() int64 {
	var sum int64
	for _, v := range in.Values {
		sum += int64(v)
	}
	return sum
}

// Solve runs the exact solver on the instance and returns the optimal
// total value with a freshly allocated selection vector.
func (in *Instance) Solve() (int32, []int32, error) {
	selection := make([]int32, in.Len())
	total, err := solver.Solve(in.Weights, in.Values, in.Capacity, selection)
	if err != nil {
		return 0, nil, err
	}
	return total, selection, nil
}

// Greedy runs the density heuristic on the instance.
func (in *Instance) Greedy() (int32, []int32, error) {
	selection := make([]int32, in.Len())
	total, err := solver.Greedy(in.Weights, in.Values, in.Capacity, selection)
	if err != nil {
		return 0, nil, err
	}
	return total, selection, nil
}
