package inpaint

import (
	"fmt"

	"raster-inpaint/internal/blob"
	"raster-inpaint/internal/raster"
	"raster-inpaint/pkg/geometry"
)

// Source is the pixel access surface the engine needs from a source image.
// *raster.Image[T] satisfies it.
type Source[T raster.Sample] interface {
	Width() int
	Height() int
	Channels() int

	// Pixel returns the channel values at (x, y). The result is only
	// valid for reading.
	Pixel(x, y int) []T

	// Crop returns a materialized copy of the sub-image covered by box.
	Crop(box geometry.RectInt) *raster.Image[T]
}

// Overlay is a read-only repaired view of a source image. Pixel queries
// return the reconstructed value where a defect was patched and the
// original source value everywhere else.
//
// All reconstruction work happens eagerly inside New; afterwards the
// overlay is safe for concurrent reads and never recomputes.
type Overlay[T raster.Sample] struct {
	src    Source[T]
	origin geometry.PointInt // image-space coordinate of src's (0, 0)
	store  *PatchStore[T]
}

// New constructs an overlay over src, running the full parallel
// reconstruction of every region in the catalog before returning. Defects
// whose expanded window leaves the image are skipped silently; the only
// errors are invalid construction inputs.
func New[T raster.Sample](src Source[T], catalog *blob.Catalog, opts Options[T]) (*Overlay[T], error) {
	if src == nil {
		return nil, fmt.Errorf("nil source")
	}
	if src.Width() <= 0 || src.Height() <= 0 {
		return nil, fmt.Errorf("empty source image %dx%d", src.Width(), src.Height())
	}
	if src.Channels() <= 0 {
		return nil, fmt.Errorf("source has no channels")
	}
	if opts.Workers < 0 {
		return nil, fmt.Errorf("invalid worker count %d", opts.Workers)
	}
	if catalog == nil {
		catalog = blob.NewCatalog(nil)
	}

	fill, err := resolveFill(opts.DefaultFill, src.Channels())
	if err != nil {
		return nil, err
	}

	o := &Overlay[T]{
		src:   src,
		store: NewPatchStore[T](),
	}
	runTasks(src, catalog, o.store, opts, fill)
	return o, nil
}

// resolveFill normalizes the configured fill value to the source channel
// count, broadcasting a single value across channels.
func resolveFill[T raster.Sample](fill []T, channels int) ([]T, error) {
	switch {
	case len(fill) == channels:
		return fill, nil
	case len(fill) == 1:
		out := make([]T, channels)
		for c := range out {
			out[c] = fill[0]
		}
		return out, nil
	case len(fill) == 0:
		return make([]T, channels), nil
	default:
		return nil, fmt.Errorf("fill value has %d channels, source has %d", len(fill), channels)
	}
}

// Width returns the view width in pixels.
func (o *Overlay[T]) Width() int { return o.src.Width() }

// Height returns the view height in pixels.
func (o *Overlay[T]) Height() int { return o.src.Height() }

// Channels returns the channel count of the view.
func (o *Overlay[T]) Channels() int { return o.src.Channels() }

// Bounds returns the region of image space this view answers for.
func (o *Overlay[T]) Bounds() geometry.RectInt {
	return geometry.RectInt{
		X:      o.origin.X,
		Y:      o.origin.Y,
		Width:  o.src.Width(),
		Height: o.src.Height(),
	}
}

// Patched returns the number of reconstructed pixels in the shared store.
func (o *Overlay[T]) Patched() int { return o.store.Len() }

// Pixel returns the repaired value at the image-space coordinate (x, y):
// the patch store's value if present, else the source pixel.
func (o *Overlay[T]) Pixel(x, y int) []T {
	if v, ok := o.store.Get(x, y); ok {
		return v
	}
	return o.src.Pixel(x-o.origin.X, y-o.origin.Y)
}

// Restrict returns an equivalent overlay scoped to the image-space region
// box. Only the necessary source crop is materialized; the patch store is
// shared by reference, so no reconstruction is redone and patches straddling
// the region boundary stay intact. The restricted view answers the same
// coordinates as the parent over box.
func (o *Overlay[T]) Restrict(box geometry.RectInt) (*Overlay[T], error) {
	if box.Empty() {
		return nil, fmt.Errorf("empty restriction %v", box)
	}
	bounds := o.Bounds()
	if box.Intersect(bounds) != box {
		return nil, fmt.Errorf("restriction %v outside view bounds %v", box, bounds)
	}

	local := geometry.RectInt{
		X:      box.X - o.origin.X,
		Y:      box.Y - o.origin.Y,
		Width:  box.Width,
		Height: box.Height,
	}
	return &Overlay[T]{
		src:    o.src.Crop(local),
		origin: box.Min(),
		store:  o.store,
	}, nil
}

// Render materializes the whole view into a new raster image.
func (o *Overlay[T]) Render() *raster.Image[T] {
	return o.RenderRegion(o.Bounds())
}

// RenderRegion materializes the image-space region box, which must lie
// within the view bounds. Row 0 of the result corresponds to box.Y.
func (o *Overlay[T]) RenderRegion(box geometry.RectInt) *raster.Image[T] {
	out := raster.New[T](box.Width, box.Height, o.src.Channels())
	for y := 0; y < box.Height; y++ {
		for x := 0; x < box.Width; x++ {
			out.SetPixel(x, y, o.Pixel(box.X+x, box.Y+y))
		}
	}
	return out
}
