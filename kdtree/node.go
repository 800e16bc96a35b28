package kdtree

// node is one arena entry. Children are referenced by arena offset rather
// than pointer, keeping the tree relocatable and cache-dense. A node is a
// leaf when Left < 0; leaves hold the [Begin, End) range into the index
// permutation. Internal nodes hold the split dimension plus the extents of
// the two sides on that dimension: LoVal is the max coordinate of the left
// subtree, HiVal the min coordinate of the right subtree. The gap between
// them gives a tight lower bound for branch-and-bound pruning.
//
// The field layout is fixed-size little-endian serializable; changing it
// requires bumping store.FormatVersion.
type node struct {
	Left, Right  int32
	Begin, End   int32
	SplitDim     int32
	LoVal, HiVal float32
}

func (n *node) leaf() bool { return n.Left < 0 }

// arenaCap returns a capacity hint for the node arena: a tree over n points
// with the given leaf size has at most 2*ceil(n/leafSize)-1 nodes when every
// leaf is full, and sliding-midpoint splits keep leaves close to full.
func arenaCap(n, leafSize int) int {
	if n <= 0 {
		return 1
	}
	leaves := (n + leafSize - 1) / leafSize
	return 2*leaves - 1
}
