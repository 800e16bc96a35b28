package kdtree

// PointSource supplies coordinate data to the index. The index stores only a
// reordered array of identifiers into the source, never a copy of the rows,
// so coordinates must not change between Build and any subsequent query.
type PointSource interface {
	// Count returns the number of points.
	Count() int
	// Coordinate returns the dim'th component of the i'th point.
	Coordinate(i, dim int) float32
}

// RowAccessor is an optional PointSource capability exposing a zero-copy row
// view. When present, leaf scans run whole rows through the simd kernels
// instead of fetching one coordinate at a time.
type RowAccessor interface {
	Point(i int) []float32
}

// BoundsProvider is an optional PointSource capability returning a
// precomputed root bounding box, skipping the initial extent scan in Build.
// Return ok=false to fall back to the standard computation.
type BoundsProvider interface {
	Bounds() (bb BoundingBox, ok bool)
}

// DistanceOverride is an optional PointSource capability replacing the
// default squared Euclidean distance to a stored point. The override must
// stay consistent with squared per-axis Euclidean contributions, or
// branch-and-bound pruning loses its lower-bound guarantee.
type DistanceOverride interface {
	SquaredDistance(query []float32, i int) float64
}

// FlatSource adapts flat row-major float32 data (count x dim) as a
// PointSource with zero-copy row access. len(Data) must be a multiple of Dim.
type FlatSource struct {
	Data []float32
	Dim  int
}

// NewFlatSource wraps flat row-major data of the given dimensionality.
func NewFlatSource(data []float32, dim int) *FlatSource {
	return &FlatSource{Data: data, Dim: dim}
}

// Count implements PointSource.
func (s *FlatSource) Count() int {
	if s.Dim <= 0 {
		return 0
	}
	return len(s.Data) / s.Dim
}

// Coordinate implements PointSource.
func (s *FlatSource) Coordinate(i, dim int) float32 {
	return s.Data[i*s.Dim+dim]
}

// Point implements RowAccessor. The returned slice aliases Data.
func (s *FlatSource) Point(i int) []float32 {
	return s.Data[i*s.Dim : (i+1)*s.Dim]
}
