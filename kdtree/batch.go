package kdtree

import (
	"fmt"
	"runtime"
	"sync"
)

// searchScratch holds per-worker reusable query state so concurrent batch
// workers never share buffers across cores.
type searchScratch struct {
	dists []float64
	knn   *knnResultSet
}

func newSearchScratch(dim, k int) *searchScratch {
	return &searchScratch{
		dists: make([]float64, dim),
		knn:   newKNNResultSet(k),
	}
}

func (s *searchScratch) reset() {
	for i := range s.dists {
		s.dists[i] = 0
	}
	s.knn.reset()
}

// KNNBatch answers many k-NN queries over a fixed worker pool and returns
// one result slice per query, aligned by position. Workers share the
// immutable index and nothing else; Config.SearchWorkers caps the pool
// (default NumCPU). Every query must match the index dimension.
func (ix *Index) KNNBatch(queries [][]float32, k int) ([][]Result, error) {
	if ix == nil || !ix.built {
		return nil, ErrNotBuilt
	}
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", ErrInvalidInput, k)
	}
	for qi, q := range queries {
		if len(q) != ix.dim {
			return nil, fmt.Errorf("%w: query %d has %d dimensions, index has %d", ErrInvalidInput, qi, len(q), ix.dim)
		}
	}
	if k > ix.count {
		k = ix.count
	}

	out := make([][]Result, len(queries))
	if len(queries) == 0 {
		return out, nil
	}

	workers := ix.cfg.SearchWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(queries) {
		workers = len(queries)
	}

	jobs := make(chan int, len(queries))
	for qi := range queries {
		jobs <- qi
	}
	close(jobs)

	epsFactor := 1 + ix.cfg.Eps
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			scratch := newSearchScratch(ix.dim, k)
			for qi := range jobs {
				scratch.reset()
				query := queries[qi]
				mindist := ix.initialDistances(query, scratch.dists)
				ix.searchLevel(scratch.knn, query, 0, mindist, scratch.dists, epsFactor)
				out[qi] = scratch.knn.results()
			}
		}()
	}
	wg.Wait()
	return out, nil
}
