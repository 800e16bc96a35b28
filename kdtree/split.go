package kdtree

// spanTolerance treats dimensions within this relative factor of the widest
// extent as split candidates, so the actual point spread can break near-ties.
const spanTolerance = 1e-5

// split selects a split dimension and value for indices[begin:end) and
// reorders the range in place so identifiers with coordinate <= cutVal on
// cutDim precede the rest. It returns the boundary offset relative to begin.
//
// Dimension: the bounding-box dimension of maximum extent (near-ties broken
// by actual point spread). Value: the midpoint of that extent, slid to the
// nearest point coordinate when the midpoint falls outside the occupied
// range, with a median-position fallback when every point lands on one side
// (heavily duplicated coordinates). Both sub-ranges are always non-empty,
// which bounds recursion on degenerate data.
func (ix *Index) split(begin, end int, bb BoundingBox) (cutDim, mid int, cutVal float32) {
	count := end - begin

	maxSpan := bb[0].High - bb[0].Low
	for d := 1; d < ix.dim; d++ {
		if span := bb[d].High - bb[d].Low; span > maxSpan {
			maxSpan = span
		}
	}

	cutDim = 0
	maxSpread := float32(-1)
	for d := 0; d < ix.dim; d++ {
		span := bb[d].High - bb[d].Low
		if span < (1-spanTolerance)*maxSpan {
			continue
		}
		lo, hi := ix.minMaxOnDim(begin, end, d)
		if spread := hi - lo; spread > maxSpread {
			maxSpread = spread
			cutDim = d
		}
	}

	cutVal = (bb[cutDim].Low + bb[cutDim].High) / 2
	lo, hi := ix.minMaxOnDim(begin, end, cutDim)
	if cutVal < lo {
		cutVal = lo
	}
	if cutVal > hi {
		cutVal = hi
	}

	lim1, lim2 := ix.planeSplit(begin, end, cutDim, cutVal)
	// Sliding rule: keep the split inside (0, count) even when many points
	// share cutVal; fall back to the median position between the two limits.
	switch {
	case lim1 > count/2:
		mid = lim1
	case lim2 < count/2:
		mid = lim2
	default:
		mid = count / 2
	}
	return cutDim, mid, cutVal
}

// planeSplit reorders indices[begin:end) around cutVal on cutDim and returns
// two boundary offsets relative to begin:
//
//	indices[begin : begin+lim1)        have coordinate < cutVal
//	indices[begin+lim1 : begin+lim2)   have coordinate == cutVal
//	indices[begin+lim2 : end)          have coordinate > cutVal
//
// Single linear pass per limit, no allocation.
func (ix *Index) planeSplit(begin, end, cutDim int, cutVal float32) (lim1, lim2 int) {
	idx := ix.indices
	coord := func(i int) float32 {
		return ix.src.Coordinate(int(idx[i]), cutDim)
	}

	left, right := begin, end-1
	for {
		for left <= right && coord(left) < cutVal {
			left++
		}
		for right > begin && left <= right && coord(right) >= cutVal {
			right--
		}
		if left > right || right == begin {
			break
		}
		idx[left], idx[right] = idx[right], idx[left]
		left++
		right--
	}
	lim1 = left - begin

	right = end - 1
	for {
		for left <= right && coord(left) <= cutVal {
			left++
		}
		for right > begin && left <= right && coord(right) > cutVal {
			right--
		}
		if left > right || right == begin {
			break
		}
		idx[left], idx[right] = idx[right], idx[left]
		left++
		right--
	}
	lim2 = left - begin
	return lim1, lim2
}
