package kdtree

// Config holds index parameters.
type Config struct {
	MaxLeafSize   int     // max points per leaf, default 10
	Eps           float64 // approximate search slack; 0 = exact, default 0
	SortRadius    bool    // sort radius results ascending by distance, default false
	BuildWorkers  int     // when >1, parallelize build across disjoint subtrees
	SearchWorkers int     // workers for KNNBatch, default NumCPU
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		MaxLeafSize: 10,
	}
}

// OrDefault returns DefaultConfig if c is nil, otherwise normalizes c.
func (c *Config) OrDefault() *Config {
	if c == nil {
		return DefaultConfig()
	}
	if c.MaxLeafSize <= 0 {
		c.MaxLeafSize = 10
	}
	if c.Eps < 0 {
		c.Eps = 0
	}
	return c
}
