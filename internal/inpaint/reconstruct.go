package inpaint

import (
	"math"

	"raster-inpaint/internal/raster"
	"raster-inpaint/pkg/geometry"
)

// Fixed-weight 8-neighbor convolution approximating an isotropic diffusion
// kernel. The eight weights sum to ~1.0, so filled values stay within the
// dynamic range of the surrounding valid pixels.
const (
	diagWeight  = 0.176765
	orthoWeight = 0.073235
)

// diffusionPassFactor scales the number of full sweeps per channel:
// passes = diffusionPassFactor * maxDist * maxDist. An empirical constant;
// the quadratic growth covers the propagation range of larger defects.
var diffusionPassFactor = 10

// toPlanes splits a cropped window into one float64 plane per channel.
func toPlanes[T raster.Sample](window *raster.Image[T]) [][]float64 {
	planes := make([][]float64, window.C)
	n := window.W * window.H
	for c := 0; c < window.C; c++ {
		planes[c] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for c := 0; c < window.C; c++ {
			planes[c][i] = float64(window.Pix[i*window.C+c])
		}
	}
	return planes
}

// diffuse runs the iterative weighted-neighbor fill on a single channel
// plane, in place. The order must come from processingOrder, so every pixel
// draws on values strictly closer to the valid boundary; repeated sweeps let
// the fill converge toward a smooth interpolation.
//
// Pixels in the order are never on the window border: the window margin is
// wider than any in-bounds defect can reach, so the 8-neighbor reads below
// stay inside the plane.
func diffuse(plane []float64, w int, order []geometry.PointInt, maxDist int32) {
	passes := diffusionPassFactor * int(maxDist) * int(maxDist)
	for pass := 0; pass < passes; pass++ {
		for _, p := range order {
			i := p.Y*w + p.X
			sum := diagWeight * plane[i-w-1]
			sum += diagWeight * plane[i-w+1]
			sum += diagWeight * plane[i+w-1]
			sum += diagWeight * plane[i+w+1]
			sum += orthoWeight * plane[i-1]
			sum += orthoWeight * plane[i+1]
			sum += orthoWeight * plane[i-w]
			sum += orthoWeight * plane[i+w]
			plane[i] = sum
		}
	}
}

// quantize converts a diffusion result back to the sample type, rounding
// for integer samples.
func quantize[T raster.Sample](v float64) T {
	var zero T
	switch any(zero).(type) {
	case float32, float64:
		return T(v)
	default:
		return T(math.Round(v))
	}
}
