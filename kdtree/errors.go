package kdtree

import "errors"

var (
	// ErrInvalidInput reports a caller-contract violation: empty dataset,
	// non-positive dimension, zero k, negative radius, or a query point
	// whose length does not match the index dimension.
	ErrInvalidInput = errors.New("kdtree: invalid input")

	// ErrNotBuilt reports a query against an Index that was never built
	// (zero value, or left over from a failed construction).
	ErrNotBuilt = errors.New("kdtree: index not built")
)
