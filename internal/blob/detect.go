package blob

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// DetectionParams configures invalid-pixel detection.
type DetectionParams struct {
	DarkThreshold     uint8 // Pixels at or below this intensity are invalid
	BrightThreshold   uint8 // Pixels at or above this intensity are invalid (255 disables)
	CleanupIterations int   // Morphological cleanup strength
}

// DefaultDetectionParams returns detection defaults tuned for sensor
// dropouts, which read as near-black in most captures.
func DefaultDetectionParams() DetectionParams {
	return DetectionParams{
		DarkThreshold:     3,
		BrightThreshold:   255,
		CleanupIterations: 1,
	}
}

// DetectInvalid builds an invalid-pixel mask from a BGR or grayscale Mat.
// Dropout (dark) and saturated (bright) pixels are flagged, then the mask is
// cleaned with morphological close/open passes.
func DetectInvalid(img gocv.Mat, params DetectionParams) (*Bitmap, error) {
	if img.Empty() {
		return nil, fmt.Errorf("empty image")
	}

	gray := gocv.NewMat()
	defer gray.Close()
	if img.Channels() > 1 {
		gocv.CvtColor(img, &gray, gocv.ColorBGRToGray)
	} else {
		img.CopyTo(&gray)
	}

	// Dark dropouts
	mask := gocv.NewMat()
	defer mask.Close()
	gocv.Threshold(gray, &mask, float32(params.DarkThreshold), 255, gocv.ThresholdBinaryInv)

	// Saturated pixels
	if params.BrightThreshold < 255 {
		bright := gocv.NewMat()
		defer bright.Close()
		gocv.Threshold(gray, &bright, float32(params.BrightThreshold)-1, 255, gocv.ThresholdBinary)
		gocv.BitwiseOr(mask, bright, &mask)
	}

	if params.CleanupIterations > 0 {
		kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{3, 3})
		defer kernel.Close()
		for i := 0; i < params.CleanupIterations; i++ {
			gocv.MorphologyEx(mask, &mask, gocv.MorphClose, kernel)
		}
	}

	return MatToBitmap(mask), nil
}

// MatToBitmap converts a single-channel binary Mat to a Bitmap. Non-zero
// pixels are marked invalid.
func MatToBitmap(mask gocv.Mat) *Bitmap {
	h, w := mask.Rows(), mask.Cols()
	m := NewBitmap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask.GetUCharAt(y, x) != 0 {
				m.bits[y*w+x] = true
			}
		}
	}
	return m
}

// ImageToMat converts a Go image.Image to a gocv.Mat in BGR format.
func ImageToMat(img image.Image) (gocv.Mat, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	mat := gocv.NewMatWithSize(h, w, gocv.MatTypeCV8UC3)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			mat.SetUCharAt(y, x*3+0, uint8(b>>8))
			mat.SetUCharAt(y, x*3+1, uint8(g>>8))
			mat.SetUCharAt(y, x*3+2, uint8(r>>8))
		}
	}

	return mat, nil
}
