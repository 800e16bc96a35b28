package kdtree

// initialDistances seeds the per-dimension axis distances from the query to
// the root bounding box and returns their sum: the lower bound on the
// distance to anything inside the tree. dists must be zeroed, length dim.
func (ix *Index) initialDistances(query []float32, dists []float64) float64 {
	var distSq float64
	for d := 0; d < ix.dim; d++ {
		if query[d] < ix.bounds[d].Low {
			dists[d] = ix.metric.AxisDistance(query[d] - ix.bounds[d].Low)
			distSq += dists[d]
		} else if query[d] > ix.bounds[d].High {
			dists[d] = ix.metric.AxisDistance(query[d] - ix.bounds[d].High)
			distSq += dists[d]
		}
	}
	return distSq
}

// searchLevel is the depth-first branch-and-bound traversal. mindist is a
// lower bound on the squared distance from the query to the current node's
// cell, maintained incrementally through dists (one axis contribution per
// dimension). The nearer child is always descended first; the farther child
// is visited only if its bound, scaled by epsFactor = 1+Eps, does not
// exceed the accumulator's worst accepted distance. The bound is a true
// lower bound on any distance achievable inside the subtree's box, so with
// epsFactor == 1 no subtree that could contain a closer point is skipped.
func (ix *Index) searchLevel(rs resultSet, query []float32, nodeIdx int32, mindist float64, dists []float64, epsFactor float64) {
	nd := &ix.nodes[nodeIdx]

	if nd.leaf() {
		for i := nd.Begin; i < nd.End; i++ {
			id := ix.indices[i]
			rs.addPoint(ix.metric.SquaredDistance(query, int(id)), id)
		}
		return
	}

	d := int(nd.SplitDim)
	val := query[d]
	diffLo := val - nd.LoVal
	diffHi := val - nd.HiVal

	var near, far int32
	var cutDist float64
	if float64(diffLo)+float64(diffHi) < 0 {
		near, far = nd.Left, nd.Right
		cutDist = ix.metric.AxisDistance(diffHi)
	} else {
		near, far = nd.Right, nd.Left
		cutDist = ix.metric.AxisDistance(diffLo)
	}

	ix.searchLevel(rs, query, near, mindist, dists, epsFactor)

	prev := dists[d]
	mindist += cutDist - prev
	dists[d] = cutDist
	if mindist*epsFactor <= rs.worstDist() {
		ix.searchLevel(rs, query, far, mindist, dists, epsFactor)
	}
	dists[d] = prev
}
