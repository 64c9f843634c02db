package inpaint

import (
	"raster-inpaint/internal/blob"
	"raster-inpaint/internal/raster"

	"gonum.org/v1/gonum/stat"
)

// PatchSummary describes the outcome of one defect region's reconstruction,
// for diagnostic reporting.
type PatchSummary struct {
	ID      int
	Area    int
	Skipped bool // window left the image, no patch produced

	// First-channel intensity statistics over the one-pixel ring of valid
	// pixels around the bounding box, and the mean of the filled values.
	BoundaryMean   float64
	BoundaryStdDev float64
	FillMean       float64

	// Residual is |FillMean - BoundaryMean|; large values flag fills that
	// disagree with their surroundings.
	Residual float64
}

// Summarize computes a per-region report for a constructed overlay.
func Summarize[T raster.Sample](o *Overlay[T], catalog *blob.Catalog) []PatchSummary {
	summaries := make([]PatchSummary, 0, catalog.Count())
	bounds := o.Bounds()

	for i := 0; i < catalog.Count(); i++ {
		region := catalog.Region(i)
		interior := region.Decompress()
		s := PatchSummary{ID: i, Area: len(interior)}

		s.Skipped = true
		var fills []float64
		for _, p := range interior {
			if v, ok := o.store.Get(p.X, p.Y); ok {
				s.Skipped = false
				fills = append(fills, float64(v[0]))
			}
		}

		var ring []float64
		ringBox := region.BBox().Expand(1).Intersect(bounds)
		for y := ringBox.Y; y < ringBox.Y+ringBox.Height; y++ {
			for x := ringBox.X; x < ringBox.X+ringBox.Width; x++ {
				if region.Contains(x, y) {
					continue
				}
				ring = append(ring, float64(o.src.Pixel(x-o.origin.X, y-o.origin.Y)[0]))
			}
		}

		if len(ring) > 0 {
			s.BoundaryMean = stat.Mean(ring, nil)
		}
		if len(ring) > 1 {
			s.BoundaryStdDev = stat.StdDev(ring, nil)
		}
		if len(fills) > 0 {
			s.FillMean = stat.Mean(fills, nil)
			s.Residual = s.FillMean - s.BoundaryMean
			if s.Residual < 0 {
				s.Residual = -s.Residual
			}
		}
		summaries = append(summaries, s)
	}

	return summaries
}
