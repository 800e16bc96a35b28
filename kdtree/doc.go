// Package kdtree provides a static, memory-compact k-d tree (SM-KDTREE) over
// fixed-dimension point data, supporting exact and approximate
// nearest-neighbor and radius queries.
//
// Quick start:
//
//	src := kdtree.NewFlatSource(data, 3) // flat row-major float32, dim 3
//	idx, err := kdtree.Build(src, 3, nil)
//	results, err := idx.KNN([]float32{1, 0, 0}, 5)
//
// The index never copies coordinate rows; it stores a reordered permutation
// of point identifiers into the source. Build once, query many: a built
// Index is immutable and any number of queries may run concurrently against
// it from multiple goroutines.
package kdtree
