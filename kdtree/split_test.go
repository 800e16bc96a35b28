package kdtree

import (
	"math/rand"
	"testing"
)

// splitFixture builds an unbuilt Index shell so split/planeSplit can be
// exercised directly on a known permutation.
func splitFixture(data []float32, dim int) *Index {
	src := NewFlatSource(data, dim)
	ix := &Index{
		cfg:    DefaultConfig(),
		src:    src,
		dim:    dim,
		count:  src.Count(),
		metric: newL2Metric(src, dim),
	}
	ix.indices = make([]uint32, ix.count)
	for i := range ix.indices {
		ix.indices[i] = uint32(i)
	}
	return ix
}

func TestPlaneSplit_Limits(t *testing.T) {
	data := []float32{5, 1, 3, 3, 9, 3, 7, 3, 2}
	ix := splitFixture(data, 1)

	lim1, lim2 := ix.planeSplit(0, 9, 0, 3)

	// lim1 values strictly below, lim1..lim2 equal, lim2.. above.
	if lim1 != 2 || lim2 != 6 {
		t.Fatalf("lim1, lim2 = %d, %d, want 2, 6", lim1, lim2)
	}
	for i := 0; i < lim1; i++ {
		if v := data[ix.indices[i]]; v >= 3 {
			t.Errorf("position %d: %g, want < 3", i, v)
		}
	}
	for i := lim1; i < lim2; i++ {
		if v := data[ix.indices[i]]; v != 3 {
			t.Errorf("position %d: %g, want == 3", i, v)
		}
	}
	for i := lim2; i < 9; i++ {
		if v := data[ix.indices[i]]; v <= 3 {
			t.Errorf("position %d: %g, want > 3", i, v)
		}
	}
}

func TestPlaneSplit_AllEqual(t *testing.T) {
	data := []float32{4, 4, 4, 4, 4}
	ix := splitFixture(data, 1)
	lim1, lim2 := ix.planeSplit(0, 5, 0, 4)
	if lim1 != 0 || lim2 != 5 {
		t.Errorf("lim1, lim2 = %d, %d, want 0, 5", lim1, lim2)
	}
}

func TestSplit_BothSidesNonEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	for trial := 0; trial < 50; trial++ {
		n := 2 + rng.Intn(64)
		dim := 1 + rng.Intn(4)
		data := make([]float32, n*dim)
		for i := range data {
			// Small value alphabet forces heavy duplication.
			data[i] = float32(rng.Intn(3))
		}
		ix := splitFixture(data, dim)
		bb := make(BoundingBox, dim)
		ix.computeBounds(0, n, bb)

		_, mid, _ := ix.split(0, n, bb)
		if mid <= 0 || mid >= n {
			t.Fatalf("trial %d (n=%d dim=%d): mid = %d, both sides must be non-empty", trial, n, dim, mid)
		}
	}
}

func TestSplit_ReorderAroundCut(t *testing.T) {
	data := randomCloud(128, 3, 77)
	ix := splitFixture(data, 3)
	bb := make(BoundingBox, 3)
	ix.computeBounds(0, 128, bb)

	cutDim, mid, cutVal := ix.split(0, 128, bb)
	for i := 0; i < mid; i++ {
		if v := ix.src.Coordinate(int(ix.indices[i]), cutDim); v > cutVal {
			t.Errorf("left side position %d: coord %g > cut %g", i, v, cutVal)
		}
	}
	for i := mid; i < 128; i++ {
		if v := ix.src.Coordinate(int(ix.indices[i]), cutDim); v < cutVal {
			t.Errorf("right side position %d: coord %g < cut %g", i, v, cutVal)
		}
	}
}
