package inpaint

import (
	"runtime"
	"sync"

	"raster-inpaint/internal/blob"
	"raster-inpaint/internal/raster"
)

// runTasks dispatches one patchTask per defect region onto a bounded worker
// pool and blocks until all of them complete. Tasks share the crop and
// insert mutexes; no ordering is guaranteed between them and none is needed,
// since defect regions are assumed independent.
func runTasks[T raster.Sample](src Source[T], catalog *blob.Catalog, store *PatchStore[T], opts Options[T], fill []T) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var cropMu, insertMu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)

	for i := 0; i < catalog.Count(); i++ {
		wg.Add(1)
		sem <- struct{}{}

		task := &patchTask[T]{
			id:           i,
			region:       catalog.Region(i),
			src:          src,
			useDiffusion: opts.UseDiffusion,
			fill:         fill,
			store:        store,
			cropMu:       &cropMu,
			insertMu:     &insertMu,
			verbose:      opts.Verbose,
		}

		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			task.run()
		}()
	}

	wg.Wait()
}
