// Package inpaint repairs localized defect regions in a raster image by
// synthesizing replacement pixel values, exposed as a lazy overlay view on
// top of the unmodified source.
package inpaint

import "raster-inpaint/internal/raster"

// Window margins around a defect's bounding box. Diffusion needs valid
// neighbor context well past the defect boundary; flat replacement only
// needs the box itself.
const (
	flatMargin      = 1
	diffusionMargin = 10
)

// Options configures overlay construction. The options are immutable for
// the overlay's lifetime.
type Options[T raster.Sample] struct {
	// UseDiffusion selects distance-ordered diffusion reconstruction.
	// When false every defect pixel is overwritten with DefaultFill.
	UseDiffusion bool

	// DefaultFill is the replacement value in flat mode. A single value is
	// broadcast across all channels; otherwise the length must match the
	// source channel count. Ignored in diffusion mode except as the
	// fallback for degenerate regions.
	DefaultFill []T

	// Workers is the worker pool size. 0 uses the host's CPU count.
	Workers int

	// Verbose enables per-task diagnostic logging.
	Verbose bool
}

// DefaultOptions returns flat-replacement defaults with a zero fill value.
func DefaultOptions[T raster.Sample]() Options[T] {
	return Options[T]{
		UseDiffusion: false,
		DefaultFill:  []T{0},
		Workers:      0,
	}
}
