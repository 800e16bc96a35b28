package kdtree

import (
	"fmt"
	"io"
	"sort"
	"sync"
)

// Index is a built k-d tree. It owns the node arena, the index permutation,
// and the root bounding box; coordinate data stays in the PointSource. Once
// built it is immutable: queries never mutate shared state, so any number
// may run concurrently from multiple goroutines.
type Index struct {
	cfg    *Config
	src    PointSource
	metric Metric
	dim    int
	count  int

	// indices is the point-identifier permutation; each leaf owns a
	// contiguous sub-range, and the leaf ranges partition [0, count).
	indices []uint32
	nodes   []node
	bounds  BoundingBox
	built   bool

	// scratch recycles per-query axis-distance vectors.
	scratch sync.Pool

	// store holds the mapped file for an Index produced by Load.
	store io.Closer
}

// Result is one query hit: the point identifier and its squared distance
// to the query point.
type Result struct {
	ID     int
	DistSq float64
}

// Count returns the number of indexed points.
func (ix *Index) Count() int { return ix.count }

// Dim returns the fixed dimensionality of the index.
func (ix *Index) Dim() int { return ix.dim }

// NodeCount returns the number of tree nodes in the arena.
func (ix *Index) NodeCount() int { return len(ix.nodes) }

// Bounds returns the root bounding box. The caller must not modify it.
func (ix *Index) Bounds() BoundingBox { return ix.bounds }

// Indices returns the point-identifier permutation. The caller must not
// modify it; leaf nodes reference contiguous sub-ranges of this slice.
func (ix *Index) Indices() []uint32 { return ix.indices }

// Close releases the mapped index file for an Index produced by Load.
// No-op for an Index built in memory.
func (ix *Index) Close() error {
	if ix.store != nil {
		err := ix.store.Close()
		ix.store = nil
		return err
	}
	return nil
}

// KNN returns the k nearest neighbors of query, ordered by ascending
// squared distance (ties keep first-accepted order). When k exceeds the
// dataset size, all points are returned. With Config.Eps > 0 the search is
// approximate: a subtree is skipped when its lower bound times (1+Eps)
// exceeds the current k-th best distance.
func (ix *Index) KNN(query []float32, k int) ([]Result, error) {
	if err := ix.checkQuery(query); err != nil {
		return nil, err
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", ErrInvalidInput, k)
	}
	if k > ix.count {
		k = ix.count
	}
	rs := newKNNResultSet(k)
	ix.search(rs, query)
	return rs.results(), nil
}

// Radius returns every point whose squared distance to query is at most
// radius*radius. Results are unordered unless Config.SortRadius is set.
func (ix *Index) Radius(query []float32, radius float64) ([]Result, error) {
	if err := ix.checkQuery(query); err != nil {
		return nil, err
	}
	if radius < 0 {
		return nil, fmt.Errorf("%w: radius must be non-negative, got %g", ErrInvalidInput, radius)
	}
	rs := &radiusResultSet{radiusSq: radius * radius}
	ix.search(rs, query)
	if ix.cfg.SortRadius {
		sort.SliceStable(rs.hits, func(i, j int) bool {
			return rs.hits[i].DistSq < rs.hits[j].DistSq
		})
	}
	return rs.hits, nil
}

func (ix *Index) checkQuery(query []float32) error {
	if ix == nil || !ix.built {
		return ErrNotBuilt
	}
	if len(query) != ix.dim {
		return fmt.Errorf("%w: query has %d dimensions, index has %d", ErrInvalidInput, len(query), ix.dim)
	}
	return nil
}

func (ix *Index) search(rs resultSet, query []float32) {
	dists, _ := ix.scratch.Get().([]float64)
	if len(dists) != ix.dim {
		dists = make([]float64, ix.dim)
	} else {
		for i := range dists {
			dists[i] = 0
		}
	}
	mindist := ix.initialDistances(query, dists)
	ix.searchLevel(rs, query, 0, mindist, dists, 1+ix.cfg.Eps)
	ix.scratch.Put(dists)
}
