package kdtree

// Interval is a closed [Low, High] extent on one dimension.
type Interval struct {
	Low  float32
	High float32
}

// BoundingBox holds one Interval per dimension.
type BoundingBox []Interval

// clone returns an independent copy.
func (bb BoundingBox) clone() BoundingBox {
	out := make(BoundingBox, len(bb))
	copy(out, bb)
	return out
}

// computeBounds writes the exact per-dimension min/max over
// indices[begin:end) into bb. The range must be non-empty.
func (ix *Index) computeBounds(begin, end int, bb BoundingBox) {
	first := int(ix.indices[begin])
	for d := 0; d < ix.dim; d++ {
		v := ix.src.Coordinate(first, d)
		bb[d] = Interval{Low: v, High: v}
	}
	for i := begin + 1; i < end; i++ {
		id := int(ix.indices[i])
		for d := 0; d < ix.dim; d++ {
			v := ix.src.Coordinate(id, d)
			if v < bb[d].Low {
				bb[d].Low = v
			}
			if v > bb[d].High {
				bb[d].High = v
			}
		}
	}
}

// minMaxOnDim returns the min and max coordinate on one dimension over
// indices[begin:end). The range must be non-empty.
func (ix *Index) minMaxOnDim(begin, end, dim int) (lo, hi float32) {
	lo = ix.src.Coordinate(int(ix.indices[begin]), dim)
	hi = lo
	for i := begin + 1; i < end; i++ {
		v := ix.src.Coordinate(int(ix.indices[i]), dim)
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
