package inpaint

import "raster-inpaint/pkg/geometry"

// grassfire computes the 4-connected grassfire distance transform of a
// validity mask over a w x h window. Set mask entries are defect interior;
// clear entries are valid pixels. Valid pixels hold distance 0, interior
// pixels hold their graph distance to the nearest valid pixel.
//
// Returns ok=false for the degenerate all-interior mask, where no distance
// is defined; callers are expected to fall back to flat replacement.
func grassfire(mask []bool, w, h int) (dist []int32, maxDist int32, ok bool) {
	dist = make([]int32, w*h)

	// Seed the frontier with valid pixels
	queue := make([]geometry.PointInt, 0, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !mask[y*w+x] {
				queue = append(queue, geometry.PointInt{X: x, Y: y})
			}
		}
	}
	if len(queue) == 0 {
		return nil, 0, false
	}

	// BFS propagation inward
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		d := dist[p.Y*w+p.X]

		for _, n := range [4]geometry.PointInt{
			{X: p.X - 1, Y: p.Y},
			{X: p.X + 1, Y: p.Y},
			{X: p.X, Y: p.Y - 1},
			{X: p.X, Y: p.Y + 1},
		} {
			if n.X < 0 || n.X >= w || n.Y < 0 || n.Y >= h {
				continue
			}
			ni := n.Y*w + n.X
			if !mask[ni] || dist[ni] != 0 {
				continue
			}
			dist[ni] = d + 1
			if d+1 > maxDist {
				maxDist = d + 1
			}
			queue = append(queue, n)
		}
	}

	return dist, maxDist, true
}

// processingOrder lists interior pixels in ascending distance order, row
// major within a distance level. Processing in this order guarantees that a
// pixel at distance d is filled from pixels strictly closer to the valid
// boundary.
func processingOrder(dist []int32, w, h int, maxDist int32) []geometry.PointInt {
	var order []geometry.PointInt
	for d := int32(1); d <= maxDist; d++ {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if dist[y*w+x] == d {
					order = append(order, geometry.PointInt{X: x, Y: y})
				}
			}
		}
	}
	return order
}
