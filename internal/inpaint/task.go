package inpaint

import (
	"fmt"
	"sync"

	"raster-inpaint/internal/blob"
	"raster-inpaint/internal/raster"
	"raster-inpaint/pkg/geometry"
)

// patchTask is the unit of concurrent work: it owns one defect region,
// crops a local window, reconstructs the interior and merges the result
// into the shared patch store.
//
// Two separate locks guard the two shared resources. cropMu serializes
// reads of the source image (its crop primitive is not assumed reentrant);
// insertMu serializes store mutation. The compute phase in between runs on
// task-local data with no locking.
type patchTask[T raster.Sample] struct {
	id           int
	region       *blob.Blob
	src          Source[T]
	useDiffusion bool
	fill         []T
	store        *PatchStore[T]
	cropMu       *sync.Mutex
	insertMu     *sync.Mutex
	verbose      bool
}

func (t *patchTask[T]) logf(format string, args ...any) {
	if t.verbose {
		fmt.Printf("inpaint: task %d: %s\n", t.id, fmt.Sprintf(format, args...))
	}
}

// run executes the task to completion. Every outcome, including the
// out-of-bounds early exit, is terminal and non-error.
func (t *patchTask[T]) run() {
	t.logf("started")

	margin := flatMargin
	if t.useDiffusion {
		margin = diffusionMargin
	}
	box := t.region.BBox().Expand(margin)

	// Defects whose window would extend past the image are skipped, not
	// clamped: clamping would leave the diffusion kernel without valid
	// neighbor context.
	if !box.Inside(t.src.Width(), t.src.Height()) {
		t.logf("early exit, window %v outside %dx%d", box, t.src.Width(), t.src.Height())
		return
	}

	t.cropMu.Lock()
	window := t.src.Crop(box)
	t.cropMu.Unlock()

	// Interior coordinates relative to the window origin
	interior := t.region.Decompress()
	local := make([]geometry.PointInt, len(interior))
	for i, p := range interior {
		local[i] = p.Sub(box.Min())
	}

	mask := make([]bool, box.Width*box.Height)
	for _, p := range local {
		mask[p.Y*box.Width+p.X] = true
	}

	if t.useDiffusion {
		if !t.reconstructDiffusion(window, mask, local) {
			t.logf("degenerate distance field, flat fallback")
			t.reconstructFlat(window, local)
		}
	} else {
		t.reconstructFlat(window, local)
	}

	// Copy values out so the store does not retain the window's backing
	// array after the task ends.
	values := make([]T, len(interior)*window.C)
	for i, p := range local {
		copy(values[i*window.C:(i+1)*window.C], window.Pixel(p.X, p.Y))
	}

	t.insertMu.Lock()
	for i, p := range interior {
		t.store.Put(p, values[i*window.C:(i+1)*window.C:(i+1)*window.C])
	}
	t.insertMu.Unlock()

	t.logf("finished, %d pixels", len(interior))
}

// reconstructFlat overwrites every interior pixel of the window with the
// configured default value.
func (t *patchTask[T]) reconstructFlat(window *raster.Image[T], local []geometry.PointInt) {
	for _, p := range local {
		window.SetPixel(p.X, p.Y, t.fill)
	}
}

// reconstructDiffusion fills the window's interior by distance-ordered
// weighted diffusion, one channel at a time. Returns false when the
// distance field is degenerate and nothing was reconstructed.
func (t *patchTask[T]) reconstructDiffusion(window *raster.Image[T], mask []bool, local []geometry.PointInt) bool {
	dist, maxDist, ok := grassfire(mask, window.W, window.H)
	if !ok {
		return false
	}
	if maxDist == 0 {
		return true
	}

	order := processingOrder(dist, window.W, window.H, maxDist)
	planes := toPlanes(window)
	for c := 0; c < window.C; c++ {
		diffuse(planes[c], window.W, order, maxDist)
	}

	for _, p := range local {
		i := p.Y*window.W + p.X
		px := window.Pixel(p.X, p.Y)
		for c := 0; c < window.C; c++ {
			px[c] = quantize[T](planes[c][i])
		}
	}
	return true
}
