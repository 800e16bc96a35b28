package kdtree

import (
	"fmt"
	"sync"
)

// Build constructs an immutable index over src. dim is the fixed
// dimensionality of every point; cfg may be nil for defaults. The point
// data is not copied: src must stay unchanged for the life of the index.
//
// Build is deterministic — identical input order and parameters always
// yield an identical tree and permutation, with or without BuildWorkers.
func Build(src PointSource, dim int, cfg *Config) (*Index, error) {
	cfg = cfg.OrDefault()
	if src == nil {
		return nil, fmt.Errorf("%w: nil point source", ErrInvalidInput)
	}
	if dim <= 0 {
		return nil, fmt.Errorf("%w: dimension must be positive, got %d", ErrInvalidInput, dim)
	}
	count := src.Count()
	if count == 0 {
		return nil, fmt.Errorf("%w: empty dataset", ErrInvalidInput)
	}

	ix := &Index{
		cfg:   cfg,
		src:   src,
		dim:   dim,
		count: count,
	}
	if do, ok := src.(DistanceOverride); ok {
		ix.metric = overrideMetric{dist: do.SquaredDistance}
	} else {
		ix.metric = newL2Metric(src, dim)
	}

	ix.indices = make([]uint32, count)
	for i := range ix.indices {
		ix.indices[i] = uint32(i)
	}

	ix.bounds = ix.rootBounds()
	bb := ix.bounds.clone()
	if cfg.BuildWorkers > 1 {
		tokens := make(chan struct{}, cfg.BuildWorkers-1)
		ix.nodes = ix.buildSub(0, count, bb, tokens)
	} else {
		ix.nodes = make([]node, 0, arenaCap(count, cfg.MaxLeafSize))
		ix.buildNode(0, count, bb)
	}
	ix.bounds = bb
	ix.built = true
	return ix, nil
}

// rootBounds uses the source's precomputed bounding box when offered,
// falling back to a full scan.
func (ix *Index) rootBounds() BoundingBox {
	if bp, ok := ix.src.(BoundsProvider); ok {
		if bb, ok := bp.Bounds(); ok && len(bb) == ix.dim {
			return bb
		}
	}
	bb := make(BoundingBox, ix.dim)
	ix.computeBounds(0, ix.count, bb)
	return bb
}

// buildNode recursively builds the subtree over indices[begin:end) into
// ix.nodes in pre-order and returns its arena offset. bb is the cell of the
// range on entry and is tightened in place to the exact extent on return,
// so parents inherit true child bounds (and the loVal/hiVal pruning gap).
func (ix *Index) buildNode(begin, end int, bb BoundingBox) int32 {
	me := int32(len(ix.nodes))
	ix.nodes = append(ix.nodes, node{})

	if end-begin <= ix.cfg.MaxLeafSize {
		ix.computeBounds(begin, end, bb)
		ix.nodes[me] = node{Left: -1, Right: -1, Begin: int32(begin), End: int32(end)}
		return me
	}

	cutDim, mid, cutVal := ix.split(begin, end, bb)

	leftBox := bb.clone()
	leftBox[cutDim].High = cutVal
	rightBox := bb.clone()
	rightBox[cutDim].Low = cutVal

	left := ix.buildNode(begin, begin+mid, leftBox)
	right := ix.buildNode(begin+mid, end, rightBox)

	for d := 0; d < ix.dim; d++ {
		bb[d] = mergeIntervals(leftBox[d], rightBox[d])
	}
	ix.nodes[me] = node{
		Left:     left,
		Right:    right,
		SplitDim: int32(cutDim),
		LoVal:    leftBox[cutDim].High,
		HiVal:    rightBox[cutDim].Low,
	}
	return me
}

func mergeIntervals(a, b Interval) Interval {
	if b.Low < a.Low {
		a.Low = b.Low
	}
	if b.High > a.High {
		a.High = b.High
	}
	return a
}

// parallelCutoff is the smallest range worth handing to another goroutine.
const parallelCutoff = 4096

// buildSub is the parallel variant of buildNode. It returns the subtree as
// a pre-order arena with the root at offset 0; sibling subtrees operate on
// disjoint index ranges, so there is no shared mutable state. The splice
// order is fixed (left block, then right), keeping the result identical to
// the serial build regardless of goroutine completion order.
func (ix *Index) buildSub(begin, end int, bb BoundingBox, tokens chan struct{}) []node {
	if end-begin <= parallelCutoff {
		sub := &Index{
			cfg:     ix.cfg,
			src:     ix.src,
			dim:     ix.dim,
			count:   ix.count,
			indices: ix.indices,
			metric:  ix.metric,
			nodes:   make([]node, 0, arenaCap(end-begin, ix.cfg.MaxLeafSize)),
		}
		sub.buildNode(begin, end, bb)
		return sub.nodes
	}

	cutDim, mid, cutVal := ix.split(begin, end, bb)

	leftBox := bb.clone()
	leftBox[cutDim].High = cutVal
	rightBox := bb.clone()
	rightBox[cutDim].Low = cutVal

	var leftNodes, rightNodes []node
	select {
	case tokens <- struct{}{}:
		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			rightNodes = ix.buildSub(begin+mid, end, rightBox, tokens)
			<-tokens
		}()
		leftNodes = ix.buildSub(begin, begin+mid, leftBox, tokens)
		wg.Wait()
	default:
		leftNodes = ix.buildSub(begin, begin+mid, leftBox, tokens)
		rightNodes = ix.buildSub(begin+mid, end, rightBox, tokens)
	}

	for d := 0; d < ix.dim; d++ {
		bb[d] = mergeIntervals(leftBox[d], rightBox[d])
	}
	root := node{
		SplitDim: int32(cutDim),
		LoVal:    leftBox[cutDim].High,
		HiVal:    rightBox[cutDim].Low,
	}
	return spliceSubtrees(root, leftNodes, rightNodes)
}

// spliceSubtrees concatenates root + left + right into one pre-order arena,
// shifting the child offsets of every relocated internal node.
func spliceSubtrees(root node, left, right []node) []node {
	out := make([]node, 1, 1+len(left)+len(right))
	root.Left = 1
	root.Right = int32(1 + len(left))
	out[0] = root
	for _, nd := range left {
		if !nd.leaf() {
			nd.Left++
			nd.Right++
		}
		out = append(out, nd)
	}
	off := int32(1 + len(left))
	for _, nd := range right {
		if !nd.leaf() {
			nd.Left += off
			nd.Right += off
		}
		out = append(out, nd)
	}
	return out
}
