package inpaint

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// maskFromStrings builds a mask from rows of '.' (valid) and 'x' (interior).
func maskFromStrings(t *testing.T, rows []string) ([]bool, int, int) {
	t.Helper()
	h := len(rows)
	w := len(rows[0])
	mask := make([]bool, w*h)
	for y, row := range rows {
		require.Len(t, row, w)
		for x, ch := range row {
			mask[y*w+x] = ch == 'x'
		}
	}
	return mask, w, h
}

func TestGrassfireSinglePixel(t *testing.T) {
	mask, w, h := maskFromStrings(t, []string{
		"...",
		".x.",
		"...",
	})

	dist, maxDist, ok := grassfire(mask, w, h)
	require.True(t, ok)
	require.Equal(t, int32(1), maxDist)
	require.Equal(t, int32(1), dist[1*w+1])

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x == 1 && y == 1 {
				continue
			}
			require.Equal(t, int32(0), dist[y*w+x], "valid pixel (%d,%d)", x, y)
		}
	}
}

func TestGrassfireBlock(t *testing.T) {
	mask, w, h := maskFromStrings(t, []string{
		".....",
		".xxx.",
		".xxx.",
		".xxx.",
		".....",
	})

	dist, maxDist, ok := grassfire(mask, w, h)
	require.True(t, ok)
	require.Equal(t, int32(2), maxDist)

	// Ring of the block touches valid pixels, center does not
	require.Equal(t, int32(2), dist[2*w+2])
	for _, p := range [][2]int{{1, 1}, {2, 1}, {3, 1}, {1, 2}, {3, 2}, {1, 3}, {2, 3}, {3, 3}} {
		require.Equal(t, int32(1), dist[p[1]*w+p[0]], "boundary-adjacent pixel (%d,%d)", p[0], p[1])
	}
}

func TestGrassfireDegenerate(t *testing.T) {
	mask, w, h := maskFromStrings(t, []string{
		"xx",
		"xx",
	})

	_, _, ok := grassfire(mask, w, h)
	require.False(t, ok)
}

func TestGrassfireEmptyMask(t *testing.T) {
	mask, w, h := maskFromStrings(t, []string{
		"..",
		"..",
	})

	_, maxDist, ok := grassfire(mask, w, h)
	require.True(t, ok)
	require.Equal(t, int32(0), maxDist)
}

func TestProcessingOrderAscending(t *testing.T) {
	mask, w, h := maskFromStrings(t, []string{
		".....",
		".xxx.",
		".xxx.",
		".xxx.",
		".....",
	})

	dist, maxDist, ok := grassfire(mask, w, h)
	require.True(t, ok)

	order := processingOrder(dist, w, h, maxDist)
	require.Len(t, order, 9)

	prev := int32(0)
	for _, p := range order {
		d := dist[p.Y*w+p.X]
		require.GreaterOrEqual(t, d, prev, "order must be ascending in distance")
		prev = d
	}
	// The deepest pixel comes last
	require.Equal(t, 2, order[len(order)-1].X)
	require.Equal(t, 2, order[len(order)-1].Y)
}
