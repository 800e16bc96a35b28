// Package store provides the persist file format and mmap-backed store for
// the kdtree index. It is used internally by kdtree.SaveTo and kdtree.Load.
//
// The file format consists of:
//   - Header (64 bytes): magic, version, dimensions, section offsets
//   - Node arena: fixed-size little-endian node records
//   - Index permutation: one uint32 per point
//   - Root bounding box: dim (low, high) float32 pairs
//   - Point rows (page aligned): count x dim contiguous float32 values
package store
