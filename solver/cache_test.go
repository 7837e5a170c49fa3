package solver_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/optpack/optpack/solver"
)

func TestCacheSolveMatchesDirect(t *testing.T) {
	cache := solver.NewCache()
	weights := []int32{2, 3, 4, 5, 9}
	values := []int32{3, 4, 5, 8, 10}

	direct := make([]int32, 5)
	directTotal, err := solver.Solve(weights, values, 10, direct)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for call := 0; call < 3; call++ {
		cached := make([]int32, 5)
		total, err := cache.Solve(weights, values, 10, cached)
		if err != nil {
			t.Fatalf("call %d: unexpected error: %v", call, err)
		}
		if total != directTotal {
			t.Errorf("call %d: total = %d, want %d", call, total, directTotal)
		}
		if diff := cmp.Diff(direct, cached); diff != "" {
			t.Errorf("call %d: selection mismatch (-want +got):\n%s", call, diff)
		}
	}

	if cache.Len() != 1 {
		t.Errorf("cache holds %d entries, want 1", cache.Len())
	}
}

func TestCacheDoesNotAliasSelection(t *testing.T) {
	cache := solver.NewCache()
	weights := []int32{5}
	values := []int32{10}

	first := make([]int32, 1)
	if _, err := cache.Solve(weights, values, 10, first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first[0] = 99 // caller scribbling on its buffer must not poison the cache

	second := make([]int32, 1)
	if _, err := cache.Solve(weights, values, 10, second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second[0] != 1 {
		t.Errorf("selection[0] = %d, want 1", second[0])
	}
}

func TestCacheBoundedEntries(t *testing.T) {
	cache := solver.NewCache(solver.WithMaxEntries(4))
	selection := make([]int32, 1)

	for c := int32(1); c <= 20; c++ {
		if _, err := cache.Solve([]int32{1}, []int32{1}, c, selection); err != nil {
			t.Fatalf("capacity %d: unexpected error: %v", c, err)
		}
	}
	if cache.Len() > 4 {
		t.Errorf("cache grew to %d entries, limit is 4", cache.Len())
	}
}

func TestCachePropagatesErrors(t *testing.T) {
	cache := solver.NewCache()
	selection := make([]int32, 1)
	_, err := cache.Solve([]int32{1}, []int32{-1}, 10, selection)
	if !errors.Is(err, solver.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
	if cache.Len() != 0 {
		t.Errorf("failed solves must not be cached, got %d entries", cache.Len())
	}
}
