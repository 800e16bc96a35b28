package kdtree

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/ic-timon/sm-kdtree/kdtree/store"
)

const pageAlign = 4096

func alignUp(x, align int64) int64 {
	if x%align == 0 {
		return x
	}
	return (x/align + 1) * align
}

// SaveTo writes the built index to a file: header, node arena, permutation,
// root bounding box, then the point rows page-aligned so Load can serve
// coordinates straight from the mapping. Rows are written in identifier
// order, gathered through the source; the saved file is self-contained.
func (ix *Index) SaveTo(path string) error {
	if ix == nil || !ix.built {
		return ErrNotBuilt
	}

	nodeSize := int64(binary.Size(node{}))
	nodesOff := int64(store.HeaderSize)
	indicesOff := nodesOff + nodeSize*int64(len(ix.nodes))
	boundsOff := indicesOff + 4*int64(ix.count)
	pointsOff := alignUp(boundsOff+8*int64(ix.dim), pageAlign)

	h := &store.Header{
		Dim:           uint16(ix.dim),
		MaxLeafSize:   uint32(ix.cfg.MaxLeafSize),
		NodeCount:     uint32(len(ix.nodes)),
		Count:         uint64(ix.count),
		NodesOffset:   uint64(nodesOff),
		IndicesOffset: uint64(indicesOff),
		BoundsOffset:  uint64(boundsOff),
		PointsOffset:  uint64(pointsOff),
	}
	headerBytes, err := store.EncodeHeader(h)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)

	if _, err := w.Write(headerBytes); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, ix.nodes); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, ix.indices); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, []Interval(ix.bounds)); err != nil {
		return err
	}
	pad := make([]byte, pointsOff-(boundsOff+8*int64(ix.dim)))
	if _, err := w.Write(pad); err != nil {
		return err
	}

	if ra, ok := ix.src.(RowAccessor); ok {
		for i := 0; i < ix.count; i++ {
			if err := binary.Write(w, binary.LittleEndian, ra.Point(i)); err != nil {
				return err
			}
		}
	} else {
		row := make([]float32, ix.dim)
		for i := 0; i < ix.count; i++ {
			for d := 0; d < ix.dim; d++ {
				row[d] = ix.src.Coordinate(i, d)
			}
			if err := binary.Write(w, binary.LittleEndian, row); err != nil {
				return err
			}
		}
	}

	if err := w.Flush(); err != nil {
		return err
	}
	return f.Sync()
}

// SaveToAtomic writes the index to a file atomically (write to path+".tmp",
// then rename). On Windows, the target must not exist for Rename to
// succeed; remove it first.
func (ix *Index) SaveToAtomic(path string) error {
	tmp := path + ".tmp"
	if err := ix.SaveTo(tmp); err != nil {
		return err
	}
	_ = os.Remove(path) // ignore error if not exists
	return os.Rename(tmp, path)
}

// Load opens a saved index file (mmap, read-only). The tree structure is
// decoded onto the heap; coordinate rows are served zero-copy from the
// mapping, so the returned Index needs no external PointSource. Call Close
// when done. cfg may be nil; MaxLeafSize always comes from the file.
func Load(path string, cfg *Config) (*Index, error) {
	cfg = cfg.OrDefault()

	st, err := store.OpenMmap(path)
	if err != nil {
		return nil, err
	}
	data := st.Bytes()
	if len(data) < store.HeaderSize {
		st.Close()
		return nil, fmt.Errorf("kdtree: index file too small")
	}
	h, err := store.DecodeHeader(data[:store.HeaderSize])
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("kdtree: %w", err)
	}

	dim := int(h.Dim)
	count := int(h.Count)
	nodeSize := int64(binary.Size(node{}))
	nodesEnd := int64(h.NodesOffset) + nodeSize*int64(h.NodeCount)
	indicesEnd := int64(h.IndicesOffset) + 4*int64(count)
	boundsEnd := int64(h.BoundsOffset) + 8*int64(dim)
	pointsEnd := int64(h.PointsOffset) + 4*int64(count)*int64(dim)
	for _, end := range []int64{nodesEnd, indicesEnd, boundsEnd, pointsEnd} {
		if end > int64(len(data)) {
			st.Close()
			return nil, fmt.Errorf("kdtree: index file truncated")
		}
	}

	nodes := make([]node, h.NodeCount)
	if err := binary.Read(bytes.NewReader(data[h.NodesOffset:nodesEnd]), binary.LittleEndian, nodes); err != nil {
		st.Close()
		return nil, err
	}
	indices := make([]uint32, count)
	if err := binary.Read(bytes.NewReader(data[h.IndicesOffset:indicesEnd]), binary.LittleEndian, indices); err != nil {
		st.Close()
		return nil, err
	}
	bounds := make(BoundingBox, dim)
	if err := binary.Read(bytes.NewReader(data[h.BoundsOffset:boundsEnd]), binary.LittleEndian, bounds); err != nil {
		st.Close()
		return nil, err
	}

	pts := st.Float32View(int64(h.PointsOffset), count*dim)
	if pts == nil {
		st.Close()
		return nil, fmt.Errorf("kdtree: point section unavailable")
	}
	src := NewFlatSource(pts, dim)

	cfg.MaxLeafSize = int(h.MaxLeafSize)
	ix := &Index{
		cfg:     cfg,
		src:     src,
		metric:  newL2Metric(src, dim),
		dim:     dim,
		count:   count,
		indices: indices,
		nodes:   nodes,
		bounds:  bounds,
		built:   true,
		store:   st,
	}
	return ix, nil
}
