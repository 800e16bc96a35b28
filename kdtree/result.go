package kdtree

import "math"

// resultSet accumulates candidate points during traversal. worstDist is the
// branch-and-bound prune threshold: a subtree whose lower bound exceeds it
// cannot contribute.
type resultSet interface {
	worstDist() float64
	addPoint(dist float64, id uint32)
}

// knnResultSet keeps the k best (id, distance) pairs in ascending order.
// While fewer than k entries are held it accepts everything (worstDist is
// +Inf); once full, a new point must beat the current maximum, which it
// evicts. Equal distances keep first-accepted order: a later point with the
// same distance inserts after the existing entries. Memory is O(k)
// regardless of dataset size.
type knnResultSet struct {
	ids   []uint32
	dists []float64
	count int
}

func newKNNResultSet(k int) *knnResultSet {
	return &knnResultSet{
		ids:   make([]uint32, k),
		dists: make([]float64, k),
	}
}

// reset prepares the set for reuse with the same capacity.
func (rs *knnResultSet) reset() {
	rs.count = 0
}

func (rs *knnResultSet) full() bool {
	return rs.count == len(rs.dists)
}

func (rs *knnResultSet) worstDist() float64 {
	if !rs.full() {
		return math.Inf(1)
	}
	return rs.dists[rs.count-1]
}

func (rs *knnResultSet) addPoint(dist float64, id uint32) {
	if rs.full() && dist >= rs.dists[rs.count-1] {
		return
	}
	i := rs.count
	if rs.full() {
		i--
	}
	for i > 0 && rs.dists[i-1] > dist {
		i--
	}
	if !rs.full() {
		rs.count++
	}
	copy(rs.dists[i+1:rs.count], rs.dists[i:rs.count-1])
	copy(rs.ids[i+1:rs.count], rs.ids[i:rs.count-1])
	rs.dists[i] = dist
	rs.ids[i] = id
}

func (rs *knnResultSet) results() []Result {
	out := make([]Result, rs.count)
	for i := 0; i < rs.count; i++ {
		out[i] = Result{ID: int(rs.ids[i]), DistSq: rs.dists[i]}
	}
	return out
}

// radiusResultSet collects every point within a fixed squared radius. The
// threshold never shrinks, so worstDist is constant and capacity unbounded.
type radiusResultSet struct {
	radiusSq float64
	hits     []Result
}

func (rs *radiusResultSet) worstDist() float64 {
	return rs.radiusSq
}

func (rs *radiusResultSet) addPoint(dist float64, id uint32) {
	if dist <= rs.radiusSq {
		rs.hits = append(rs.hits, Result{ID: int(id), DistSq: dist})
	}
}
