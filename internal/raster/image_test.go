package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"

	"raster-inpaint/pkg/geometry"
)

func TestPixelAccess(t *testing.T) {
	im := New[uint8](4, 3, 2)
	im.SetPixel(2, 1, []uint8{10, 20})

	require.Equal(t, []uint8{10, 20}, im.Pixel(2, 1))
	require.Equal(t, []uint8{0, 0}, im.Pixel(0, 0))
	require.Equal(t, 4, im.Width())
	require.Equal(t, 3, im.Height())
	require.Equal(t, 2, im.Channels())
}

func TestCropMaterializes(t *testing.T) {
	im := New[uint8](6, 6, 1)
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			im.SetPixel(x, y, []uint8{uint8(10*y + x)})
		}
	}

	crop := im.Crop(geometry.NewRectInt(2, 3, 3, 2))
	require.Equal(t, 3, crop.W)
	require.Equal(t, 2, crop.H)
	require.Equal(t, uint8(32), crop.Pixel(0, 0)[0])
	require.Equal(t, uint8(44), crop.Pixel(2, 1)[0])

	// Crops are copies, not views
	crop.SetPixel(0, 0, []uint8{99})
	require.Equal(t, uint8(32), im.Pixel(2, 3)[0])
}

func TestCloneIsIndependent(t *testing.T) {
	im := New[float64](2, 2, 1)
	im.SetPixel(0, 0, []float64{1.5})

	cl := im.Clone()
	cl.SetPixel(0, 0, []float64{7})
	require.Equal(t, 1.5, im.Pixel(0, 0)[0])
	require.Equal(t, 7.0, cl.Pixel(0, 0)[0])
}

func TestFromImageRGB(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	src.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{R: 200, G: 100, B: 50, A: 255})

	im := FromImage(src)
	require.Equal(t, 3, im.C)
	require.Equal(t, []uint8{10, 20, 30}, im.Pixel(0, 0))
	require.Equal(t, []uint8{200, 100, 50}, im.Pixel(1, 0))
}

func TestFromImageGrayAndBack(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 2, 2))
	src.SetGray(0, 0, color.Gray{Y: 17})
	src.SetGray(1, 1, color.Gray{Y: 250})

	im := FromImageGray(src)
	require.Equal(t, 1, im.C)
	require.Equal(t, uint8(17), im.Pixel(0, 0)[0])
	require.Equal(t, uint8(250), im.Pixel(1, 1)[0])

	back := ToGray(im)
	require.Equal(t, uint8(17), back.GrayAt(0, 0).Y)
	require.Equal(t, uint8(250), back.GrayAt(1, 1).Y)
}

func TestToRGBAReplicatesGray(t *testing.T) {
	im := New[uint8](1, 1, 1)
	im.SetPixel(0, 0, []uint8{42})

	rgba := ToRGBA(im)
	require.Equal(t, color.RGBA{R: 42, G: 42, B: 42, A: 255}, rgba.RGBAAt(0, 0))
}

func TestIsSupportedFormat(t *testing.T) {
	require.True(t, IsSupportedFormat("scan.TIFF"))
	require.True(t, IsSupportedFormat("scan.png"))
	require.False(t, IsSupportedFormat("scan.gif"))
	require.False(t, IsSupportedFormat("scan"))
}
