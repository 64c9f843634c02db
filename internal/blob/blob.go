// Package blob provides the defect catalog: detection, connected-component
// labeling and a compact row-run representation of invalid pixel regions.
package blob

import (
	"sort"

	"raster-inpaint/pkg/geometry"
)

// Run is a half-open span [Start, End) of columns on a single row.
type Run struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Blob is a single defect region stored as row-run compressed coordinates.
// Rows[i] holds the runs on image row OriginY+i, with absolute column
// coordinates. Blobs are immutable once produced by the catalog.
type Blob struct {
	OriginY int     `json:"origin_y"`
	Rows    [][]Run `json:"rows"`
}

// Area returns the number of interior pixels.
func (b *Blob) Area() int {
	area := 0
	for _, runs := range b.Rows {
		for _, r := range runs {
			area += r.End - r.Start
		}
	}
	return area
}

// BBox returns the bounding box of the blob's interior pixels.
func (b *Blob) BBox() geometry.RectInt {
	if len(b.Rows) == 0 {
		return geometry.RectInt{}
	}
	minX, maxX := 0, 0
	first := true
	for _, runs := range b.Rows {
		for _, r := range runs {
			if first {
				minX, maxX = r.Start, r.End
				first = false
				continue
			}
			if r.Start < minX {
				minX = r.Start
			}
			if r.End > maxX {
				maxX = r.End
			}
		}
	}
	if first {
		return geometry.RectInt{}
	}
	return geometry.RectInt{
		X:      minX,
		Y:      b.OriginY,
		Width:  maxX - minX,
		Height: len(b.Rows),
	}
}

// Decompress expands the row-run representation into the full list of
// interior pixel coordinates, in image space.
func (b *Blob) Decompress() []geometry.PointInt {
	pts := make([]geometry.PointInt, 0, b.Area())
	for i, runs := range b.Rows {
		y := b.OriginY + i
		for _, r := range runs {
			for x := r.Start; x < r.End; x++ {
				pts = append(pts, geometry.PointInt{X: x, Y: y})
			}
		}
	}
	return pts
}

// Contains reports whether the pixel (x, y) is part of the blob interior.
func (b *Blob) Contains(x, y int) bool {
	i := y - b.OriginY
	if i < 0 || i >= len(b.Rows) {
		return false
	}
	for _, r := range b.Rows[i] {
		if x >= r.Start && x < r.End {
			return true
		}
	}
	return false
}

// FromPoints compresses a set of interior pixel coordinates into a Blob.
// Duplicate points are tolerated.
func FromPoints(points []geometry.PointInt) *Blob {
	if len(points) == 0 {
		return &Blob{}
	}

	byRow := make(map[int][]int)
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		byRow[p.Y] = append(byRow[p.Y], p.X)
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	b := &Blob{
		OriginY: minY,
		Rows:    make([][]Run, maxY-minY+1),
	}
	for y, cols := range byRow {
		sort.Ints(cols)
		var runs []Run
		start, prev := cols[0], cols[0]
		for _, x := range cols[1:] {
			if x == prev || x == prev+1 {
				prev = x
				continue
			}
			runs = append(runs, Run{Start: start, End: prev + 1})
			start, prev = x, x
		}
		runs = append(runs, Run{Start: start, End: prev + 1})
		b.Rows[y-minY] = runs
	}
	return b
}
