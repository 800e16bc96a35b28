// Package simd provides AVX2, SSE4, and NEON accelerated squared Euclidean
// distance for float32 vectors of arbitrary dimension. Automatically selects
// the best implementation based on GOARCH and CGO availability.
package simd

var (
	squaredL2Impl     func(a, b []float32) float64
	squaredL2ImplDesc string
)

func init() {
	// Default; dispatch files override in init() based on GOARCH and CGO.
	if squaredL2Impl == nil {
		squaredL2Impl = squaredL2Go
		squaredL2ImplDesc = "Go"
	}
}

// SquaredL2 computes the squared Euclidean distance between two float32
// vectors of equal length. Uses the best available SIMD implementation
// (AVX2 > SSE4 on amd64; NEON on arm64).
func SquaredL2(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	if squaredL2Impl != nil {
		return squaredL2Impl(a, b)
	}
	return squaredL2Go(a, b)
}

// SquaredL2Desc returns a description of the current implementation (for logging).
func SquaredL2Desc() string {
	if squaredL2ImplDesc != "" {
		return squaredL2ImplDesc
	}
	return "Go"
}

// squaredL2Go is the pure Go implementation (4-way unroll plus scalar tail;
// dimensions are arbitrary, so the tail is required).
func squaredL2Go(a, b []float32) float64 {
	var sum float64
	i := 0
	for ; i+4 <= len(a); i += 4 {
		d0 := a[i+0] - b[i+0]
		d1 := a[i+1] - b[i+1]
		d2 := a[i+2] - b[i+2]
		d3 := a[i+3] - b[i+3]
		sum += float64(d0*d0+d1*d1) + float64(d2*d2+d3*d3)
	}
	for ; i < len(a); i++ {
		d := a[i] - b[i]
		sum += float64(d * d)
	}
	return sum
}
