package main

import (
	"fmt"
	"time"

	"github.com/ic-timon/sm-kdtree/bench/gen"
	"github.com/ic-timon/sm-kdtree/bench/metrics"
	"github.com/ic-timon/sm-kdtree/kdtree"
)

type randomOpts struct {
	dim     int
	maxLeaf int
	k       int
	workers int
	csv     bool
}

// sizes follows the classic random-cloud sweep: build once per size, then
// query every point of a second cloud of the same size.
var sizes = []int{1_000, 5_000, 10_000, 50_000, 100_000, 200_000, 500_000, 700_000, 1_000_000, 2_000_000}

func runRandom(opts randomOpts) {
	const maxRange = 10

	cfg := kdtree.DefaultConfig()
	cfg.MaxLeafSize = opts.maxLeaf
	cfg.BuildWorkers = opts.workers

	var rows []metrics.Row
	buildTimes := make([]float64, 0, len(sizes))
	queryTimes := make([]float64, 0, len(sizes))

	for _, n := range sizes {
		fmt.Printf("n=%d dim=%d maxleaf=%d k=%d\n", n, opts.dim, opts.maxLeaf, opts.k)

		cloudS := gen.RandomCloud(n, opts.dim, maxRange, int64(n))
		cloudT := gen.RandomCloud(n, opts.dim, maxRange, int64(n)+1)

		metrics.GC()

		t0 := time.Now()
		idx, err := kdtree.Build(kdtree.NewFlatSource(cloudS, opts.dim), opts.dim, cfg)
		if err != nil {
			panic(err)
		}
		buildDur := time.Since(t0)

		durations := make([]time.Duration, n)
		for i := 0; i < n; i++ {
			query := cloudT[i*opts.dim : (i+1)*opts.dim]
			t1 := time.Now()
			if _, err := idx.KNN(query, opts.k); err != nil {
				panic(err)
			}
			durations[i] = time.Since(t1)
		}
		stats := metrics.LatencyStatsFromDurations(durations)
		after := metrics.Take()

		buildTimes = append(buildTimes, buildDur.Seconds())
		queryTimes = append(queryTimes, stats.AvgUs/1e6)
		rows = append(rows, metrics.Row{
			N:           n,
			Dim:         opts.dim,
			MaxLeafSize: opts.maxLeaf,
			BuildSec:    buildDur.Seconds(),
			QueryAvgUs:  stats.AvgUs,
			QueryP50Us:  stats.P50Us,
			QueryP99Us:  stats.P99Us,
			HeapAllocMB: float64(after.HeapAlloc) / 1024 / 1024,
		})
		fmt.Printf("  build=%.3fs query avg=%.2fus p50=%.2fus p99=%.2fus\n",
			buildDur.Seconds(), stats.AvgUs, stats.P50Us, stats.P99Us)
	}

	// Two summary lines: build seconds, then mean per-query seconds.
	for _, s := range buildTimes {
		fmt.Printf("%g ", s)
	}
	fmt.Println()
	for _, s := range queryTimes {
		fmt.Printf("%g ", s)
	}
	fmt.Println()

	if opts.csv {
		path := metrics.ReportPath("bench_random_")
		if err := metrics.WriteCSV(rows, path); err != nil {
			panic(err)
		}
		fmt.Printf("report written to %s\n", path)
	}
}
