package blob

import (
	"image"

	"raster-inpaint/pkg/geometry"
)

// Bitmap is a binary mask over an image extent. Set bits mark invalid
// (defective) pixels.
type Bitmap struct {
	W, H int
	bits []bool
}

// NewBitmap creates an empty mask with the given extent.
func NewBitmap(width, height int) *Bitmap {
	return &Bitmap{W: width, H: height, bits: make([]bool, width*height)}
}

// Get reports whether the pixel (x, y) is marked. Out-of-extent pixels
// read as unmarked.
func (m *Bitmap) Get(x, y int) bool {
	if x < 0 || x >= m.W || y < 0 || y >= m.H {
		return false
	}
	return m.bits[y*m.W+x]
}

// Set marks or clears the pixel (x, y).
func (m *Bitmap) Set(x, y int, v bool) {
	if x < 0 || x >= m.W || y < 0 || y >= m.H {
		return
	}
	m.bits[y*m.W+x] = v
}

// Count returns the number of marked pixels.
func (m *Bitmap) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

// BitmapFromGray builds a mask from a grayscale image: pixels with intensity
// at or above threshold are marked invalid.
func BitmapFromGray(img *image.Gray, threshold uint8) *Bitmap {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	m := NewBitmap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if img.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y >= threshold {
				m.bits[y*w+x] = true
			}
		}
	}
	return m
}

// LabelOptions configures connected-component labeling.
type LabelOptions struct {
	MinArea int // Blobs smaller than this are dropped (0 = keep all)
	MaxArea int // Blobs larger than this are dropped (0 = no limit)
}

// DefaultLabelOptions returns default labeling options.
func DefaultLabelOptions() LabelOptions {
	return LabelOptions{
		MinArea: 1,
		MaxArea: 0,
	}
}

// Catalog is an immutable, indexable collection of defect regions.
type Catalog struct {
	blobs []*Blob
}

// NewCatalog builds a catalog from pre-compressed blobs.
func NewCatalog(blobs []*Blob) *Catalog {
	return &Catalog{blobs: blobs}
}

// Count returns the number of defect regions.
func (c *Catalog) Count() int {
	return len(c.blobs)
}

// Region returns the i-th defect region.
func (c *Catalog) Region(i int) *Blob {
	return c.blobs[i]
}

// TotalArea returns the summed interior area of all regions.
func (c *Catalog) TotalArea() int {
	area := 0
	for _, b := range c.blobs {
		area += b.Area()
	}
	return area
}

// CatalogFromBitmap labels the 4-connected components of the mask and
// compresses each into a Blob, filtering by the area gates in opts.
func CatalogFromBitmap(mask *Bitmap, opts LabelOptions) *Catalog {
	visited := make([]bool, mask.W*mask.H)
	var blobs []*Blob

	for sy := 0; sy < mask.H; sy++ {
		for sx := 0; sx < mask.W; sx++ {
			idx := sy*mask.W + sx
			if visited[idx] || !mask.bits[idx] {
				continue
			}

			// BFS flood over the component
			var points []geometry.PointInt
			queue := []geometry.PointInt{{X: sx, Y: sy}}
			visited[idx] = true
			for len(queue) > 0 {
				p := queue[0]
				queue = queue[1:]
				points = append(points, p)

				for _, n := range [4]geometry.PointInt{
					{X: p.X - 1, Y: p.Y},
					{X: p.X + 1, Y: p.Y},
					{X: p.X, Y: p.Y - 1},
					{X: p.X, Y: p.Y + 1},
				} {
					if n.X < 0 || n.X >= mask.W || n.Y < 0 || n.Y >= mask.H {
						continue
					}
					ni := n.Y*mask.W + n.X
					if visited[ni] || !mask.bits[ni] {
						continue
					}
					visited[ni] = true
					queue = append(queue, n)
				}
			}

			if opts.MinArea > 0 && len(points) < opts.MinArea {
				continue
			}
			if opts.MaxArea > 0 && len(points) > opts.MaxArea {
				continue
			}
			blobs = append(blobs, FromPoints(points))
		}
	}

	return &Catalog{blobs: blobs}
}
