package inpaint

import (
	"raster-inpaint/internal/raster"
	"raster-inpaint/pkg/geometry"
)

// PatchStore maps image coordinates to reconstructed pixel values. It is
// populated once during the overlay's construction run, under the insert
// lock, and read-only afterwards. Restricted views share one store by
// reference.
//
// Conflicting inserts (overlapping defect windows) are last-writer-wins;
// inputs are assumed non-overlapping.
type PatchStore[T raster.Sample] struct {
	pixels map[geometry.PointInt][]T
}

// NewPatchStore creates an empty store.
func NewPatchStore[T raster.Sample]() *PatchStore[T] {
	return &PatchStore[T]{pixels: make(map[geometry.PointInt][]T)}
}

// Put records the reconstructed value for one coordinate. The value is not
// copied; callers hand over ownership.
func (s *PatchStore[T]) Put(pt geometry.PointInt, val []T) {
	s.pixels[pt] = val
}

// Get returns the reconstructed value at (x, y), if any.
func (s *PatchStore[T]) Get(x, y int) ([]T, bool) {
	v, ok := s.pixels[geometry.PointInt{X: x, Y: y}]
	return v, ok
}

// Contains reports whether a reconstructed value exists at (x, y).
func (s *PatchStore[T]) Contains(x, y int) bool {
	_, ok := s.pixels[geometry.PointInt{X: x, Y: y}]
	return ok
}

// Len returns the number of patched coordinates.
func (s *PatchStore[T]) Len() int {
	return len(s.pixels)
}
