package kdtree

import "github.com/ic-timon/sm-kdtree/simd"

// Metric computes squared distances on the query hot path. SquaredDistance
// is the exact distance between a query point and a stored point;
// AxisDistance is the contribution of a single-dimension offset, used to
// lower-bound the distance to a bounding box without visiting its points.
// Squared values are used throughout; callers take the square root only
// when presenting final distances.
type Metric interface {
	SquaredDistance(query []float32, i int) float64
	AxisDistance(delta float32) float64
}

// l2Metric is the default squared Euclidean metric. When the source exposes
// zero-copy rows, whole rows go through the simd kernels.
type l2Metric struct {
	src PointSource
	row func(i int) []float32
	dim int
}

func newL2Metric(src PointSource, dim int) l2Metric {
	m := l2Metric{src: src, dim: dim}
	if ra, ok := src.(RowAccessor); ok {
		m.row = ra.Point
	}
	return m
}

func (m l2Metric) SquaredDistance(query []float32, i int) float64 {
	if m.row != nil {
		return simd.SquaredL2(query, m.row(i))
	}
	var sum float64
	for d := 0; d < m.dim; d++ {
		df := float64(query[d]) - float64(m.src.Coordinate(i, d))
		sum += df * df
	}
	return sum
}

func (l2Metric) AxisDistance(delta float32) float64 {
	d := float64(delta)
	return d * d
}

// overrideMetric delegates point distances to a DistanceOverride source
// while keeping squared Euclidean per-axis contributions for pruning.
type overrideMetric struct {
	dist func(query []float32, i int) float64
}

func (m overrideMetric) SquaredDistance(query []float32, i int) float64 {
	return m.dist(query, i)
}

func (overrideMetric) AxisDistance(delta float32) float64 {
	d := float64(delta)
	return d * d
}
