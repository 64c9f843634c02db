// Package raster provides a generic in-memory raster image container with
// random pixel access and materialized cropping.
package raster

import (
	"image"
	"image/color"

	"raster-inpaint/pkg/geometry"
)

// Sample is the set of numeric types a raster channel can hold.
type Sample interface {
	uint8 | uint16 | uint32 | int32 | float32 | float64
}

// Image is a width x height raster with C interleaved channels per pixel,
// stored row-major in Pix.
type Image[T Sample] struct {
	W, H, C int
	Pix     []T
}

// New creates a zero-filled image with the given extent and channel count.
func New[T Sample](width, height, channels int) *Image[T] {
	return &Image[T]{
		W:   width,
		H:   height,
		C:   channels,
		Pix: make([]T, width*height*channels),
	}
}

// Width returns the image width in pixels.
func (im *Image[T]) Width() int { return im.W }

// Height returns the image height in pixels.
func (im *Image[T]) Height() int { return im.H }

// Channels returns the number of channels per pixel.
func (im *Image[T]) Channels() int { return im.C }

// Bounds returns the image extent as a rectangle anchored at the origin.
func (im *Image[T]) Bounds() geometry.RectInt {
	return geometry.RectInt{Width: im.W, Height: im.H}
}

// Pixel returns the channel values at (x, y). The returned slice aliases the
// image's backing store and is only valid for reading.
func (im *Image[T]) Pixel(x, y int) []T {
	off := (y*im.W + x) * im.C
	return im.Pix[off : off+im.C]
}

// SetPixel copies the given channel values into the pixel at (x, y).
func (im *Image[T]) SetPixel(x, y int, v []T) {
	copy(im.Pixel(x, y), v)
}

// Crop returns a materialized copy of the sub-image covered by box. The box
// must lie entirely within the image bounds.
func (im *Image[T]) Crop(box geometry.RectInt) *Image[T] {
	out := New[T](box.Width, box.Height, im.C)
	for y := 0; y < box.Height; y++ {
		srcOff := ((box.Y+y)*im.W + box.X) * im.C
		dstOff := y * box.Width * im.C
		copy(out.Pix[dstOff:dstOff+box.Width*im.C], im.Pix[srcOff:srcOff+box.Width*im.C])
	}
	return out
}

// Clone returns a deep copy of the image.
func (im *Image[T]) Clone() *Image[T] {
	out := New[T](im.W, im.H, im.C)
	copy(out.Pix, im.Pix)
	return out
}

// FromImage converts a decoded image to a 3-channel 8-bit RGB raster.
func FromImage(img image.Image) *Image[uint8] {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	out := New[uint8](w, h, 3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			off := (y*w + x) * 3
			out.Pix[off+0] = uint8(r >> 8)
			out.Pix[off+1] = uint8(g >> 8)
			out.Pix[off+2] = uint8(b >> 8)
		}
	}
	return out
}

// FromImageGray converts a decoded image to a single-channel 8-bit raster.
func FromImageGray(img image.Image) *Image[uint8] {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	out := New[uint8](w, h, 1)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
			out.Pix[y*w+x] = c.Y
		}
	}
	return out
}

// ToRGBA converts an 8-bit raster back to a standard RGBA image. Single
// channel rasters are replicated across R, G and B.
func ToRGBA(im *Image[uint8]) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, im.W, im.H))
	for y := 0; y < im.H; y++ {
		for x := 0; x < im.W; x++ {
			px := im.Pixel(x, y)
			var c color.RGBA
			switch im.C {
			case 1:
				c = color.RGBA{R: px[0], G: px[0], B: px[0], A: 255}
			default:
				c = color.RGBA{R: px[0], G: px[1], B: px[2], A: 255}
			}
			out.SetRGBA(x, y, c)
		}
	}
	return out
}

// ToGray converts a single-channel 8-bit raster to a standard grayscale
// image. Multi-channel rasters use the first channel.
func ToGray(im *Image[uint8]) *image.Gray {
	out := image.NewGray(image.Rect(0, 0, im.W, im.H))
	for y := 0; y < im.H; y++ {
		for x := 0; x < im.W; x++ {
			out.SetGray(x, y, color.Gray{Y: im.Pixel(x, y)[0]})
		}
	}
	return out
}
