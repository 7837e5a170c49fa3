package solver

import "sort"

// Greedy fills the knapsack by descending value density (value per unit
// weight) and returns the total value packed. It shares Solve's input
// contract and selection-buffer semantics but only guarantees a feasible
// lower bound: Greedy(...) <= Solve(...) for every valid instance.
//
// Ordering is deterministic: densities compare by cross-multiplication so
// zero-weight items with positive value sort first, and equal densities
// fall back to ascending index.
func Greedy(weights, values []int32, capacity int32, selection []int32) (int32, error) {
	if err := validate(weights, values, capacity, selection); err != nil {
		return 0, err
	}

	n := len(weights)
	for i := range selection {
		selection[i] = 0
	}
	if n == 0 {
		return 0, nil
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		i, j := order[a], order[b]
		// values[i]/weights[i] > values[j]/weights[j], without division.
		return int64(values[i])*int64(weights[j]) > int64(values[j])*int64(weights[i])
	})

	var total int32
	remaining := capacity
	for _, i := range order {
		if weights[i] <= remaining {
			selection[i] = 1
			remaining -= weights[i]
			total += values[i]
		}
	}
	return total, nil
}
