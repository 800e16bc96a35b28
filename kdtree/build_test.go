package kdtree

import (
	"errors"
	"math/rand"
	"testing"
)

func randomCloud(n, dim int, seed int64) []float32 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float32, n*dim)
	for i := range out {
		out[i] = rng.Float32() * 10
	}
	return out
}

func buildFlat(t *testing.T, data []float32, dim int, cfg *Config) *Index {
	t.Helper()
	ix, err := Build(NewFlatSource(data, dim), dim, cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return ix
}

// checkPartition verifies the core structural invariant: leaf ranges are
// disjoint, contiguous in tree order, and the permutation is a bijection.
func checkPartition(t *testing.T, ix *Index) {
	t.Helper()
	seen := make(map[uint32]bool, ix.count)
	for _, v := range ix.indices {
		if int(v) >= ix.count {
			t.Fatalf("permutation contains out-of-range id %d", v)
		}
		if seen[v] {
			t.Fatalf("permutation contains duplicate id %d", v)
		}
		seen[v] = true
	}
	if len(seen) != ix.count {
		t.Fatalf("permutation covers %d ids, want %d", len(seen), ix.count)
	}

	covered := make([]bool, ix.count)
	for i := range ix.nodes {
		nd := &ix.nodes[i]
		if !nd.leaf() {
			continue
		}
		if nd.Begin >= nd.End {
			t.Fatalf("leaf %d has empty range [%d,%d)", i, nd.Begin, nd.End)
		}
		for p := nd.Begin; p < nd.End; p++ {
			if covered[p] {
				t.Fatalf("position %d covered by more than one leaf", p)
			}
			covered[p] = true
		}
	}
	for p, ok := range covered {
		if !ok {
			t.Fatalf("position %d not covered by any leaf", p)
		}
	}
}

func TestBuild_InvalidInput(t *testing.T) {
	if _, err := Build(nil, 3, nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("nil source: err = %v, want ErrInvalidInput", err)
	}
	if _, err := Build(NewFlatSource(nil, 3), 3, nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty dataset: err = %v, want ErrInvalidInput", err)
	}
	if _, err := Build(NewFlatSource([]float32{1, 2, 3}, 3), 0, nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("dim=0: err = %v, want ErrInvalidInput", err)
	}
	if _, err := Build(NewFlatSource([]float32{1, 2, 3}, 3), -2, nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("dim<0: err = %v, want ErrInvalidInput", err)
	}
}

func TestBuild_PartitionInvariant(t *testing.T) {
	for _, tc := range []struct {
		n, dim, leaf int
	}{
		{1, 2, 10},
		{2, 2, 1},
		{17, 3, 1},
		{100, 3, 10},
		{500, 5, 16},
		{1000, 2, 4},
	} {
		data := randomCloud(tc.n, tc.dim, int64(tc.n))
		ix := buildFlat(t, data, tc.dim, &Config{MaxLeafSize: tc.leaf})
		checkPartition(t, ix)
	}
}

func TestBuild_LeafSizeRespected(t *testing.T) {
	data := randomCloud(200, 3, 7)
	ix := buildFlat(t, data, 3, &Config{MaxLeafSize: 4})
	for i := range ix.nodes {
		nd := &ix.nodes[i]
		if nd.leaf() && int(nd.End-nd.Begin) > 4 {
			t.Errorf("leaf %d holds %d points, want <= 4", i, nd.End-nd.Begin)
		}
	}
}

func TestBuild_SinglePoint(t *testing.T) {
	ix := buildFlat(t, []float32{5, 5}, 2, nil)
	if ix.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", ix.NodeCount())
	}
	if !ix.nodes[0].leaf() {
		t.Error("root should be a leaf for a single point")
	}
	if got := ix.Bounds()[0]; got.Low != 5 || got.High != 5 {
		t.Errorf("single-point bounds = %+v, want min = max = 5", got)
	}
}

func TestBuild_LeafSizeLargerThanN(t *testing.T) {
	ix := buildFlat(t, randomCloud(5, 2, 1), 2, &Config{MaxLeafSize: 100})
	if ix.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1 (all points in the root leaf)", ix.NodeCount())
	}
}

func TestBuild_Deterministic(t *testing.T) {
	data := randomCloud(300, 3, 11)
	a := buildFlat(t, data, 3, &Config{MaxLeafSize: 8})
	b := buildFlat(t, data, 3, &Config{MaxLeafSize: 8})

	if len(a.nodes) != len(b.nodes) {
		t.Fatalf("node counts differ: %d vs %d", len(a.nodes), len(b.nodes))
	}
	for i := range a.nodes {
		if a.nodes[i] != b.nodes[i] {
			t.Fatalf("node %d differs: %+v vs %+v", i, a.nodes[i], b.nodes[i])
		}
	}
	for i := range a.indices {
		if a.indices[i] != b.indices[i] {
			t.Fatalf("permutation differs at %d: %d vs %d", i, a.indices[i], b.indices[i])
		}
	}
}

func TestBuild_ParallelMatchesSerial(t *testing.T) {
	data := randomCloud(20_000, 3, 23)
	serial := buildFlat(t, data, 3, &Config{MaxLeafSize: 10})
	parallel := buildFlat(t, data, 3, &Config{MaxLeafSize: 10, BuildWorkers: 4})

	if len(serial.nodes) != len(parallel.nodes) {
		t.Fatalf("node counts differ: serial %d, parallel %d", len(serial.nodes), len(parallel.nodes))
	}
	for i := range serial.nodes {
		if serial.nodes[i] != parallel.nodes[i] {
			t.Fatalf("node %d differs: serial %+v, parallel %+v", i, serial.nodes[i], parallel.nodes[i])
		}
	}
	for i := range serial.indices {
		if serial.indices[i] != parallel.indices[i] {
			t.Fatalf("permutation differs at %d", i)
		}
	}
	for d := range serial.bounds {
		if serial.bounds[d] != parallel.bounds[d] {
			t.Fatalf("bounds differ on dim %d", d)
		}
	}
}

func TestBuild_AllPointsIdentical(t *testing.T) {
	// Degenerate dataset: termination and invariant despite zero extent.
	n := 64
	data := make([]float32, n*3)
	for i := 0; i < n; i++ {
		data[i*3], data[i*3+1], data[i*3+2] = 1, 2, 3
	}
	ix := buildFlat(t, data, 3, &Config{MaxLeafSize: 4})
	checkPartition(t, ix)

	res, err := ix.KNN([]float32{1, 2, 3}, 5)
	if err != nil {
		t.Fatalf("KNN: %v", err)
	}
	for _, r := range res {
		if r.DistSq != 0 {
			t.Errorf("identical points: DistSq = %g, want 0", r.DistSq)
		}
	}
}

func TestBuild_CollinearPoints(t *testing.T) {
	// All points on the x axis; y and z extents are zero.
	n := 100
	data := make([]float32, n*3)
	for i := 0; i < n; i++ {
		data[i*3] = float32(i % 10) // heavy duplication on the split dimension
	}
	ix := buildFlat(t, data, 3, &Config{MaxLeafSize: 2})
	checkPartition(t, ix)
}

type boundedSource struct {
	*FlatSource
	bb    BoundingBox
	calls int
}

func (s *boundedSource) Bounds() (BoundingBox, bool) {
	s.calls++
	return s.bb, s.bb != nil
}

func TestBuild_BoundsProviderUsed(t *testing.T) {
	data := randomCloud(50, 2, 3)
	plain := buildFlat(t, data, 2, nil)

	src := &boundedSource{FlatSource: NewFlatSource(data, 2), bb: plain.Bounds().clone()}
	ix, err := Build(src, 2, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if src.calls == 0 {
		t.Error("Bounds() was never consulted")
	}
	for d := range plain.bounds {
		if plain.bounds[d] != ix.bounds[d] {
			t.Errorf("dim %d: bounds %+v, want %+v", d, ix.bounds[d], plain.bounds[d])
		}
	}

	// ok=false falls back to the standard scan.
	src = &boundedSource{FlatSource: NewFlatSource(data, 2)}
	if _, err := Build(src, 2, nil); err != nil {
		t.Fatalf("Build with declined bounds: %v", err)
	}
}
