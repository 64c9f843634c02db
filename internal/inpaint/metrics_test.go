package inpaint

import (
	"testing"

	"github.com/stretchr/testify/require"

	"raster-inpaint/pkg/geometry"
)

func TestSummarizeFlatFill(t *testing.T) {
	src := uniformImage(t, 16, 16, 200)
	catalog := catalogOf(t,
		[]geometry.PointInt{{X: 8, Y: 8}},
		[]geometry.PointInt{{X: 0, Y: 0}}, // skipped: window leaves the image
	)

	overlay, err := New[uint8](src, catalog, DefaultOptions[uint8]())
	require.NoError(t, err)

	summaries := Summarize(overlay, catalog)
	require.Len(t, summaries, 2)

	filled := summaries[0]
	require.False(t, filled.Skipped)
	require.Equal(t, 1, filled.Area)
	require.InDelta(t, 200, filled.BoundaryMean, 1e-9)
	require.InDelta(t, 0, filled.BoundaryStdDev, 1e-9)
	require.InDelta(t, 0, filled.FillMean, 1e-9)
	require.InDelta(t, 200, filled.Residual, 1e-9)

	skipped := summaries[1]
	require.True(t, skipped.Skipped)
	require.Equal(t, 1, skipped.Area)
}

func TestSummarizeDiffusionResidualSmall(t *testing.T) {
	src := uniformImage(t, 32, 32, 150)
	var pts []geometry.PointInt
	for y := 15; y <= 16; y++ {
		for x := 15; x <= 16; x++ {
			pts = append(pts, geometry.PointInt{X: x, Y: y})
			src.SetPixel(x, y, []uint8{0})
		}
	}
	catalog := catalogOf(t, pts)

	overlay, err := New[uint8](src, catalog, Options[uint8]{UseDiffusion: true})
	require.NoError(t, err)

	summaries := Summarize(overlay, catalog)
	require.Len(t, summaries, 1)
	require.False(t, summaries[0].Skipped)
	require.Less(t, summaries[0].Residual, 1.5)
}
