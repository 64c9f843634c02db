package inpaint

import (
	"testing"

	"github.com/stretchr/testify/require"

	"raster-inpaint/internal/raster"
)

func TestQuantize(t *testing.T) {
	require.Equal(t, uint8(4), quantize[uint8](3.6))
	require.Equal(t, uint8(3), quantize[uint8](3.4))
	require.Equal(t, int32(-2), quantize[int32](-2.3))
	require.InDelta(t, 3.6, quantize[float64](3.6), 1e-12)
	require.InDelta(t, 3.6, float64(quantize[float32](3.6)), 1e-6)
}

func TestDiffuseUniformConverges(t *testing.T) {
	mask, w, h := maskFromStrings(t, []string{
		".......",
		".......",
		"..xxx..",
		"..xxx..",
		"..xxx..",
		".......",
		".......",
	})

	dist, maxDist, ok := grassfire(mask, w, h)
	require.True(t, ok)

	plane := make([]float64, w*h)
	for i := range plane {
		plane[i] = 100
	}
	// Corrupt the interior
	for i, m := range mask {
		if m {
			plane[i] = 0
		}
	}

	order := processingOrder(dist, w, h, maxDist)
	diffuse(plane, w, order, maxDist)

	// The kernel weights sum to 1.0, so a uniform surround is a fixed point.
	for i, m := range mask {
		if m {
			require.InDelta(t, 100, plane[i], 1e-6)
		}
	}
}

func TestDiffuseStaysWithinBoundaryRange(t *testing.T) {
	mask, w, h := maskFromStrings(t, []string{
		"........",
		"........",
		"..xxx...",
		"..xxx...",
		"........",
		"........",
	})

	dist, maxDist, ok := grassfire(mask, w, h)
	require.True(t, ok)

	// Gradient surround between 50 and 150
	plane := make([]float64, w*h)
	lo, hi := 50.0, 150.0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			plane[y*w+x] = lo + (hi-lo)*float64(x)/float64(w-1)
		}
	}
	for i, m := range mask {
		if m {
			plane[i] = 0
		}
	}

	order := processingOrder(dist, w, h, maxDist)
	diffuse(plane, w, order, maxDist)

	for i, m := range mask {
		if m {
			require.GreaterOrEqual(t, plane[i], lo-1e-9)
			require.LessOrEqual(t, plane[i], hi+1e-9)
		}
	}
}

func TestToPlanesSplitsChannels(t *testing.T) {
	im := raster.New[uint8](2, 1, 3)
	im.SetPixel(0, 0, []uint8{10, 20, 30})
	im.SetPixel(1, 0, []uint8{40, 50, 60})

	planes := toPlanes(im)
	require.Len(t, planes, 3)
	require.Equal(t, []float64{10, 40}, planes[0])
	require.Equal(t, []float64{20, 50}, planes[1])
	require.Equal(t, []float64{30, 60}, planes[2])
}
