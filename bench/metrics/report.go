package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// LatencyStats summarizes per-query latency.
type LatencyStats struct {
	P50Us float64
	P99Us float64
	AvgUs float64
	N     int
}

// Row is one dataset size in the random benchmark.
type Row struct {
	N           int
	Dim         int
	MaxLeafSize int
	BuildSec    float64
	QueryAvgUs  float64
	QueryP50Us  float64
	QueryP99Us  float64
	HeapAllocMB float64
}

// Percentile returns the p'th percentile (0-100) of sorted values.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[len(sorted)-1]
	}
	idx := int(float64(len(sorted)-1) * p / 100)
	return sorted[idx]
}

// LatencyStatsFromDurations computes P50/P99/avg from raw durations.
func LatencyStatsFromDurations(durations []time.Duration) LatencyStats {
	if len(durations) == 0 {
		return LatencyStats{}
	}
	us := make([]float64, len(durations))
	var sum float64
	for i, d := range durations {
		us[i] = float64(d.Nanoseconds()) / 1e3
		sum += us[i]
	}
	sort.Float64s(us)
	return LatencyStats{
		P50Us: Percentile(us, 50),
		P99Us: Percentile(us, 99),
		AvgUs: sum / float64(len(us)),
		N:     len(us),
	}
}

// WriteCSV writes the benchmark rows to path, creating parent directories.
func WriteCSV(rows []Row, path string) error {
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	w.Write([]string{"N", "Dim", "MaxLeafSize", "BuildSec", "QueryAvgUs", "QueryP50Us", "QueryP99Us", "HeapAllocMB"})
	for _, r := range rows {
		w.Write([]string{
			fmt.Sprintf("%d", r.N),
			fmt.Sprintf("%d", r.Dim),
			fmt.Sprintf("%d", r.MaxLeafSize),
			fmt.Sprintf("%.4f", r.BuildSec),
			fmt.Sprintf("%.3f", r.QueryAvgUs),
			fmt.Sprintf("%.3f", r.QueryP50Us),
			fmt.Sprintf("%.3f", r.QueryP99Us),
			fmt.Sprintf("%.2f", r.HeapAllocMB),
		})
	}
	w.Flush()
	return w.Error()
}

// ReportPath generates a dated report path under the report/ directory.
func ReportPath(prefix string) string {
	return filepath.Join("report", prefix+time.Now().Format("20060102")+".csv")
}
