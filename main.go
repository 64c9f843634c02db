// Command raster-inpaint repairs localized defects in a raster image and
// writes the repaired result. Defect regions come from an external mask
// image, a previously saved catalog, or built-in dropout detection.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"time"

	"raster-inpaint/internal/blob"
	"raster-inpaint/internal/inpaint"
	"raster-inpaint/internal/raster"
)

func main() {
	imagePath := flag.String("image", "", "Path to source image (TIFF, PNG, or JPEG)")
	outPath := flag.String("out", "inpainted.png", "Path for the repaired PNG")
	maskPath := flag.String("mask", "", "Optional defect mask image (white = defect)")
	catalogPath := flag.String("catalog", "", "Optional saved defect catalog (.blobs.zst)")
	saveCatalog := flag.String("save-catalog", "", "Save the defect catalog to this path")
	darkThresh := flag.Int("threshold", 3, "Detection: intensity at or below this is a dropout")
	brightThresh := flag.Int("bright", 255, "Detection: intensity at or above this is saturated (255 disables)")
	minArea := flag.Int("min-area", 1, "Drop defects smaller than this many pixels")
	maxArea := flag.Int("max-area", 0, "Drop defects larger than this many pixels (0 = no limit)")
	useDiffusion := flag.Bool("diffusion", false, "Use diffusion reconstruction instead of flat fill")
	fillValue := flag.Int("fill", 0, "Flat fill intensity (0-255)")
	workers := flag.Int("workers", 0, "Worker pool size (0 = CPU count)")
	gray := flag.Bool("gray", false, "Process as single-channel grayscale")
	verbose := flag.Bool("verbose", false, "Print per-patch diagnostics")
	flag.Parse()

	if *imagePath == "" {
		fmt.Println("Usage: raster-inpaint -image <path> [-out repaired.png] [-diffusion] ...")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if !raster.IsSupportedFormat(*imagePath) {
		fmt.Fprintf(os.Stderr, "Unsupported image format: %s\n", *imagePath)
		os.Exit(1)
	}

	f, err := raster.Load(*imagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load image: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %s image: %dx%d pixels\n", f.Format, f.Width(), f.Height())
	if f.DPI > 0 {
		fmt.Printf("DPI: %.0f\n", f.DPI)
	}

	catalog, err := buildCatalog(f, *maskPath, *catalogPath, *darkThresh, *brightThresh, *minArea, *maxArea)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build defect catalog: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Defect catalog: %d regions, %d pixels total\n", catalog.Count(), catalog.TotalArea())

	if *saveCatalog != "" {
		if err := blob.SaveCatalog(*saveCatalog, catalog, f.Width(), f.Height()); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save catalog: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Saved catalog to %s\n", *saveCatalog)
	}

	var src *raster.Image[uint8]
	if *gray {
		src = raster.FromImageGray(f.Image)
	} else {
		src = raster.FromImage(f.Image)
	}

	opts := inpaint.Options[uint8]{
		UseDiffusion: *useDiffusion,
		DefaultFill:  []uint8{uint8(*fillValue)},
		Workers:      *workers,
		Verbose:      *verbose,
	}

	start := time.Now()
	overlay, err := inpaint.New(src, catalog, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to construct overlay: %v\n", err)
		os.Exit(1)
	}
	mode := "flat"
	if *useDiffusion {
		mode = "diffusion"
	}
	fmt.Printf("Inpainted %d pixels (%s mode) in %v\n", overlay.Patched(), mode, time.Since(start))

	if *verbose {
		for _, s := range inpaint.Summarize(overlay, catalog) {
			if s.Skipped {
				fmt.Printf("  region %d: area=%d skipped (window outside image)\n", s.ID, s.Area)
				continue
			}
			fmt.Printf("  region %d: area=%d boundary=%.1f±%.1f fill=%.1f residual=%.1f\n",
				s.ID, s.Area, s.BoundaryMean, s.BoundaryStdDev, s.FillMean, s.Residual)
		}
	}

	out := overlay.Render()
	var encoded image.Image
	if *gray {
		encoded = raster.ToGray(out)
	} else {
		encoded = raster.ToRGBA(out)
	}
	if err := raster.SavePNG(*outPath, encoded); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to save output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", *outPath)
}

// buildCatalog obtains the defect catalog from, in order of preference: a
// saved catalog file, an external mask image, or dropout detection on the
// source itself.
func buildCatalog(f *raster.File, maskPath, catalogPath string, darkThresh, brightThresh, minArea, maxArea int) (*blob.Catalog, error) {
	labelOpts := blob.LabelOptions{MinArea: minArea, MaxArea: maxArea}

	if catalogPath != "" {
		catalog, w, h, err := blob.LoadCatalog(catalogPath)
		if err != nil {
			return nil, err
		}
		if w != f.Width() || h != f.Height() {
			return nil, fmt.Errorf("catalog extent %dx%d does not match image %dx%d",
				w, h, f.Width(), f.Height())
		}
		return catalog, nil
	}

	if maskPath != "" {
		mf, err := raster.Load(maskPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load mask: %w", err)
		}
		if mf.Width() != f.Width() || mf.Height() != f.Height() {
			return nil, fmt.Errorf("mask extent %dx%d does not match image %dx%d",
				mf.Width(), mf.Height(), f.Width(), f.Height())
		}
		grayMask := raster.ToGray(raster.FromImageGray(mf.Image))
		return blob.CatalogFromBitmap(blob.BitmapFromGray(grayMask, 128), labelOpts), nil
	}

	mat, err := blob.ImageToMat(f.Image)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	params := blob.DefaultDetectionParams()
	params.DarkThreshold = uint8(darkThresh)
	params.BrightThreshold = uint8(brightThresh)

	bitmap, err := blob.DetectInvalid(mat, params)
	if err != nil {
		return nil, err
	}
	return blob.CatalogFromBitmap(bitmap, labelOpts), nil
}
