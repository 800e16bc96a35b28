// Package gen provides random point-cloud generation for the benchmark,
// with no dependency on real datasets.
package gen

import "math/rand"

// RandomCloud generates n points of dimensionality dim as flat row-major
// float32 data, coordinates uniform in [0, maxRange). Seeded for
// reproducible runs.
func RandomCloud(n, dim int, maxRange float32, seed int64) []float32 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float32, n*dim)
	for i := range out {
		out[i] = maxRange * rng.Float32()
	}
	return out
}
