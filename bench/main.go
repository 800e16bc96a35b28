// Benchmark entry: times k-d tree construction and nearest-neighbor lookup
// on random point clouds of increasing size.
package main

import "flag"

func main() {
	dim := flag.Int("dim", 3, "point dimensionality")
	maxLeaf := flag.Int("maxleaf", 10, "max points per leaf")
	k := flag.Int("k", 1, "neighbors per query")
	workers := flag.Int("workers", 0, "build workers (0 = serial)")
	csvOut := flag.Bool("csv", false, "write a dated CSV report under report/")
	flag.Parse()

	runRandom(randomOpts{
		dim:     *dim,
		maxLeaf: *maxLeaf,
		k:       *k,
		workers: *workers,
		csv:     *csvOut,
	})
}
