package store

import (
	"os"
	"unsafe"

	"github.com/edsrzf/mmap-go"
)

// IndexStore provides read-only access to a persisted index file.
type IndexStore interface {
	// Bytes returns the full mapped file.
	Bytes() []byte
	// Float32View returns a []float32 view of n values at the given file
	// offset, or nil if out of range. The slice is valid until Close is
	// called. Caller must not modify it.
	Float32View(offset int64, n int) []float32
	// Close releases resources (e.g. unmaps the file).
	Close() error
}

// MmapIndexStore is an IndexStore backed by an mmap'd file.
type MmapIndexStore struct {
	f    *os.File
	data mmap.MMap
}

// OpenMmap opens a file and returns a read-only IndexStore.
func OpenMmap(path string) (IndexStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &MmapIndexStore{f: f, data: m}, nil
}

// Bytes returns the full mapped file.
func (s *MmapIndexStore) Bytes() []byte {
	return s.data
}

// Float32View returns a []float32 view of n values at offset.
func (s *MmapIndexStore) Float32View(offset int64, n int) []float32 {
	if s.data == nil || n <= 0 {
		return nil
	}
	if offset < 0 || offset+int64(n)*4 > int64(len(s.data)) {
		return nil
	}
	ptr := unsafe.Pointer(&s.data[offset])
	return unsafe.Slice((*float32)(ptr), n)
}

// Close unmaps the file and closes it.
func (s *MmapIndexStore) Close() error {
	if s.data != nil {
		if err := s.data.Unmap(); err != nil {
			return err
		}
		s.data = nil
	}
	if s.f != nil {
		err := s.f.Close()
		s.f = nil
		return err
	}
	return nil
}
