package solver_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/optpack/optpack/solver"
)

func TestGreedyDensityOrder(t *testing.T) {
	// Classic greedy trap: density favors item 0, but the optimum skips it.
	weights := []int32{10, 20, 30}
	values := []int32{60, 100, 120}
	capacity := int32(50)

	greedySel := make([]int32, 3)
	greedyTotal, err := solver.Greedy(weights, values, capacity, greedySel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if greedyTotal != 160 {
		t.Errorf("greedy total = %d, want 160 (items 0 and 1 by density)", greedyTotal)
	}
	if diff := cmp.Diff([]int32{1, 1, 0}, greedySel); diff != "" {
		t.Errorf("greedy selection mismatch (-want +got):\n%s", diff)
	}

	exactSel := make([]int32, 3)
	exactTotal, err := solver.Solve(weights, values, capacity, exactSel)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exactTotal <= greedyTotal {
		t.Errorf("expected exact (%d) to beat greedy (%d) on this instance", exactTotal, greedyTotal)
	}
}

func TestGreedyNeverBeatsExact(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(20)
		weights := make([]int32, n)
		values := make([]int32, n)
		for i := 0; i < n; i++ {
			weights[i] = int32(rng.Intn(30))
			values[i] = int32(rng.Intn(60))
		}
		capacity := int32(rng.Intn(100))

		greedySel := make([]int32, n)
		greedyTotal, err := solver.Greedy(weights, values, capacity, greedySel)
		if err != nil {
			t.Fatalf("trial %d: greedy error: %v", trial, err)
		}
		checkConsistency(t, weights, values, capacity, greedyTotal, greedySel)

		exactSel := make([]int32, n)
		exactTotal, err := solver.Solve(weights, values, capacity, exactSel)
		if err != nil {
			t.Fatalf("trial %d: solve error: %v", trial, err)
		}
		if greedyTotal > exactTotal {
			t.Fatalf("trial %d: greedy %d beats exact %d (weights=%v values=%v capacity=%d)",
				trial, greedyTotal, exactTotal, weights, values, capacity)
		}
	}
}

func TestGreedyZeroWeightFirst(t *testing.T) {
	weights := []int32{4, 0, 4}
	values := []int32{1, 3, 9}
	selection := make([]int32, 3)

	total, err := solver.Greedy(weights, values, 4, selection)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Zero-weight item packs first, then the densest that still fits.
	if total != 12 {
		t.Errorf("total = %d, want 12", total)
	}
	if diff := cmp.Diff([]int32{0, 1, 1}, selection); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}
}

func TestGreedySharesValidation(t *testing.T) {
	selection := []int32{7}
	_, err := solver.Greedy([]int32{-1}, []int32{1}, 10, selection)
	if !errors.Is(err, solver.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
	if selection[0] != 7 {
		t.Error("selection buffer must be untouched on error")
	}
}
