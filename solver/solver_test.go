package solver_test

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/optpack/optpack/solver"
)

// bruteForce enumerates every subset. Only usable for small n; serves as
// the optimality oracle.
func bruteForce(weights, values []int32, capacity int32) int32 {
	n := len(weights)
	var best int32
	for mask := 0; mask < 1<<n; mask++ {
		var w, v int32
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				w += weights[i]
				v += values[i]
			}
		}
		if w <= capacity && v > best {
			best = v
		}
	}
	return best
}

func checkConsistency(t *testing.T, weights, values []int32, capacity int32, total int32, selection []int32) {
	t.Helper()

	var selWeight, selValue int32
	for i, s := range selection {
		if s != 0 && s != 1 {
			t.Fatalf("selection[%d] = %d, want 0 or 1", i, s)
		}
		if s == 1 {
			selWeight += weights[i]
			selValue += values[i]
		}
	}
	if selValue != total {
		t.Errorf("sum of selected values %d != returned total %d", selValue, total)
	}
	if selWeight > capacity {
		t.Errorf("selected weight %d exceeds capacity %d", selWeight, capacity)
	}
}

func TestSolveReferenceInstance(t *testing.T) {
	weights := []int32{2, 3, 4, 5, 9}
	values := []int32{3, 4, 5, 8, 10}
	capacity := int32(10)
	selection := make([]int32, 5)

	total, err := solver.Solve(weights, values, capacity, selection)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := bruteForce(weights, values, capacity); total != want {
		t.Errorf("total = %d, brute force says %d", total, want)
	}
	if total != 15 {
		t.Errorf("total = %d, want 15 (items 0,1,3: weight 2+3+5, value 3+4+8)", total)
	}
	if diff := cmp.Diff([]int32{1, 1, 0, 1, 0}, selection); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}
	checkConsistency(t, weights, values, capacity, total, selection)
}

func TestSolveEdgeCases(t *testing.T) {
	tests := []struct {
		name      string
		weights   []int32
		values    []int32
		capacity  int32
		wantTotal int32
		wantSel   []int32
	}{
		{
			name:      "single item fits",
			weights:   []int32{5},
			values:    []int32{10},
			capacity:  10,
			wantTotal: 10,
			wantSel:   []int32{1},
		},
		{
			name:      "single item too heavy",
			weights:   []int32{15},
			values:    []int32{10},
			capacity:  10,
			wantTotal: 0,
			wantSel:   []int32{0},
		},
		{
			name:      "zero capacity",
			weights:   []int32{1, 2, 3},
			values:    []int32{10, 20, 30},
			capacity:  0,
			wantTotal: 0,
			wantSel:   []int32{0, 0, 0},
		},
		{
			name:      "no items",
			weights:   nil,
			values:    nil,
			capacity:  100,
			wantTotal: 0,
			wantSel:   []int32{},
		},
		{
			name:      "exact fit beats denser partial",
			weights:   []int32{10, 20, 30},
			values:    []int32{60, 100, 120},
			capacity:  50,
			wantTotal: 220,
			wantSel:   []int32{0, 1, 1},
		},
		{
			name:      "zero weight positive value always included",
			weights:   []int32{0, 5},
			values:    []int32{7, 10},
			capacity:  0,
			wantTotal: 7,
			wantSel:   []int32{1, 0},
		},
		{
			name:      "zero weight zero value never included",
			weights:   []int32{0, 2},
			values:    []int32{0, 3},
			capacity:  5,
			wantTotal: 3,
			wantSel:   []int32{0, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selection := make([]int32, len(tt.weights))
			total, err := solver.Solve(tt.weights, tt.values, tt.capacity, selection)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if total != tt.wantTotal {
				t.Errorf("total = %d, want %d", total, tt.wantTotal)
			}
			if diff := cmp.Diff(tt.wantSel, selection); diff != "" {
				t.Errorf("selection mismatch (-want +got):\n%s", diff)
			}
			checkConsistency(t, tt.weights, tt.values, tt.capacity, total, selection)
		})
	}
}

func TestSolveMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(13)
		weights := make([]int32, n)
		values := make([]int32, n)
		for i := 0; i < n; i++ {
			weights[i] = int32(rng.Intn(25))
			values[i] = int32(rng.Intn(50))
		}
		capacity := int32(rng.Intn(60))
		selection := make([]int32, n)

		total, err := solver.Solve(weights, values, capacity, selection)
		if err != nil {
			t.Fatalf("trial %d: unexpected error: %v", trial, err)
		}
		if want := bruteForce(weights, values, capacity); total != want {
			t.Fatalf("trial %d: total = %d, brute force says %d (weights=%v values=%v capacity=%d)",
				trial, total, want, weights, values, capacity)
		}
		checkConsistency(t, weights, values, capacity, total, selection)
	}
}

func TestSolveCapacityMonotonicity(t *testing.T) {
	weights := []int32{4, 7, 2, 9, 5, 3}
	values := []int32{9, 12, 3, 20, 8, 5}
	selection := make([]int32, len(weights))

	var prev int32
	for capacity := int32(0); capacity <= 35; capacity++ {
		total, err := solver.Solve(weights, values, capacity, selection)
		if err != nil {
			t.Fatalf("capacity %d: unexpected error: %v", capacity, err)
		}
		if total < prev {
			t.Fatalf("total dropped from %d to %d when capacity grew to %d", prev, total, capacity)
		}
		prev = total
	}
}

func TestSolveDeterministic(t *testing.T) {
	weights := []int32{3, 3, 3, 3}
	values := []int32{5, 5, 5, 5} // every pair ties; the chosen pair must be stable
	first := make([]int32, 4)

	total, err := solver.Solve(weights, values, 6, first)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 10 {
		t.Fatalf("total = %d, want 10", total)
	}

	for i := 0; i < 10; i++ {
		again := make([]int32, 4)
		if _, err := solver.Solve(weights, values, 6, again); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if diff := cmp.Diff(first, again); diff != "" {
			t.Fatalf("selection changed between identical calls (-first +again):\n%s", diff)
		}
	}
}

func TestSolveInvalidArguments(t *testing.T) {
	tests := []struct {
		name     string
		weights  []int32
		values   []int32
		capacity int32
		selLen   int
	}{
		{"negative capacity", []int32{1}, []int32{1}, -1, 1},
		{"negative weight", []int32{-2, 3}, []int32{1, 1}, 10, 2},
		{"negative value", []int32{2, 3}, []int32{1, -1}, 10, 2},
		{"values length mismatch", []int32{1, 2}, []int32{1}, 10, 2},
		{"selection length mismatch", []int32{1, 2}, []int32{1, 2}, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selection := make([]int32, tt.selLen)
			for i := range selection {
				selection[i] = 7 // sentinel: must survive a failed call
			}

			_, err := solver.Solve(tt.weights, tt.values, tt.capacity, selection)
			if !errors.Is(err, solver.ErrInvalidArgument) {
				t.Fatalf("err = %v, want ErrInvalidArgument", err)
			}
			for i, s := range selection {
				if s != 7 {
					t.Errorf("selection[%d] = %d, buffer must be untouched on error", i, s)
				}
			}
		})
	}
}

func TestSolveOutOfRange(t *testing.T) {
	t.Run("total value overflows int32", func(t *testing.T) {
		weights := []int32{1, 1}
		values := []int32{math.MaxInt32, math.MaxInt32}
		selection := make([]int32, 2)
		_, err := solver.Solve(weights, values, 2, selection)
		if !errors.Is(err, solver.ErrOutOfRange) {
			t.Fatalf("err = %v, want ErrOutOfRange", err)
		}
	})

	t.Run("capacity above limit", func(t *testing.T) {
		selection := make([]int32, 1)
		_, err := solver.Solve([]int32{1}, []int32{1}, solver.MaxCapacity+1, selection)
		if !errors.Is(err, solver.ErrOutOfRange) {
			t.Fatalf("err = %v, want ErrOutOfRange", err)
		}
	})

	t.Run("table too large", func(t *testing.T) {
		n := int(solver.MaxTableCells/int64(solver.MaxCapacity)) + 1
		weights := make([]int32, n)
		values := make([]int32, n)
		for i := range weights {
			weights[i] = 1
			values[i] = 1
		}
		selection := make([]int32, n)
		_, err := solver.Solve(weights, values, solver.MaxCapacity, selection)
		if !errors.Is(err, solver.ErrOutOfRange) {
			t.Fatalf("err = %v, want ErrOutOfRange", err)
		}
	})
}

func TestSolveOverwritesStaleSelection(t *testing.T) {
	weights := []int32{2, 3, 4}
	values := []int32{3, 4, 5}
	selection := []int32{1, 1, 1} // stale flags from a previous call

	total, err := solver.Solve(weights, values, 5, selection)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 7 {
		t.Errorf("total = %d, want 7", total)
	}
	if diff := cmp.Diff([]int32{1, 1, 0}, selection); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}
}
