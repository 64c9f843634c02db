// Command blobtest runs defect detection on an image and reports the
// resulting catalog, for tuning detection parameters before a batch run.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"

	"raster-inpaint/internal/blob"
	"raster-inpaint/internal/raster"
	"raster-inpaint/pkg/geometry"
)

// bitmapToGray renders a detection mask as a grayscale image, white where
// pixels are flagged invalid.
func bitmapToGray(m *blob.Bitmap) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.W, m.H))
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if m.Get(x, y) {
				img.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return img
}

func main() {
	imagePath := flag.String("image", "", "Path to image (TIFF, PNG, or JPEG)")
	darkThresh := flag.Int("threshold", 3, "Intensity at or below this is a dropout")
	brightThresh := flag.Int("bright", 255, "Intensity at or above this is saturated (255 disables)")
	cleanup := flag.Int("cleanup", 1, "Morphological cleanup iterations")
	minArea := flag.Int("min-area", 1, "Drop defects smaller than this many pixels")
	maxArea := flag.Int("max-area", 0, "Drop defects larger than this many pixels (0 = no limit)")
	outPath := flag.String("out", "", "Save the catalog to this path (.blobs.zst)")
	maskOut := flag.String("mask-out", "", "Save the detected mask as a PNG")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: blobtest -image <path> [-threshold 3] [-out defects.blobs.zst]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	f, err := raster.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %s image: %dx%d pixels\n", f.Format, f.Width(), f.Height())

	mat, err := blob.ImageToMat(f.Image)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to convert image: %v\n", err)
		os.Exit(1)
	}
	defer mat.Close()

	params := blob.DetectionParams{
		DarkThreshold:     uint8(*darkThresh),
		BrightThreshold:   uint8(*brightThresh),
		CleanupIterations: *cleanup,
	}
	fmt.Printf("Detection parameters: dark<=%d bright>=%d cleanup=%d\n",
		params.DarkThreshold, params.BrightThreshold, params.CleanupIterations)

	bitmap, err := blob.DetectInvalid(mat, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Detection failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Detected %d invalid pixels\n", bitmap.Count())

	catalog := blob.CatalogFromBitmap(bitmap, blob.LabelOptions{MinArea: *minArea, MaxArea: *maxArea})
	fmt.Printf("Labeled %d defect regions (min-area=%d, max-area=%d)\n",
		catalog.Count(), *minArea, *maxArea)

	for i := 0; i < catalog.Count(); i++ {
		b := catalog.Region(i)
		box := b.BBox()
		center := geometry.CentroidInt(b.Decompress())
		fmt.Printf("  region %3d: area=%4d bbox=(%d,%d %dx%d) center=(%.1f,%.1f)\n",
			i, b.Area(), box.X, box.Y, box.Width, box.Height, center.X, center.Y)
	}

	if *maskOut != "" {
		img := bitmapToGray(bitmap)
		if err := raster.SavePNG(*maskOut, img); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save mask: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote mask to %s\n", *maskOut)
	}

	if *outPath != "" {
		if err := blob.SaveCatalog(*outPath, catalog, f.Width(), f.Height()); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save catalog: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote catalog to %s\n", *outPath)
	}
}
