//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package planeslice intersects triangle meshes with horizontal planes
package planeslice

import (
	"github.com/ezrec/fdmslice/mesh"
	"github.com/ezrec/fdmslice/pathset"
)

// Segment is the intersection of one triangle with the plane
type Segment struct {
	A, B pathset.Point
}

// Segments returns the intersection of every triangle of the mesh with the
// plane at z.
//
// A vertex lying exactly on the plane counts as being above it, so a
// triangle touching the plane from below yields its on-plane edge, and a
// triangle resting on the plane from above yields nothing. Zero length
// segments are dropped.
func Segments(m *mesh.Mesh, z float64, scale pathset.Scale) (segments []Segment) {
	var v [3]mesh.Vertex
	var below [3]bool

	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.Triangle(t)
		v[0], v[1], v[2] = m.Vertex(a), m.Vertex(b), m.Vertex(c)

		count := 0
		for n := range v {
			below[n] = v[n][2] < z
			if below[n] {
				count++
			}
		}
		if count == 0 || count == 3 {
			continue
		}

		var points []pathset.Point
		for n := 0; n < 3; n++ {
			i, j := n, (n+1)%3
			if below[i] == below[j] {
				continue
			}
			lo, hi := v[i], v[j]
			if below[j] {
				lo, hi = hi, lo
			}
			points = append(points, crossing(lo, hi, z, scale))
		}

		if points[0] == points[1] {
			continue
		}

		segments = append(segments, Segment{A: points[0], B: points[1]})
	}

	return
}

// crossing is where the edge from lo (below the plane) to hi (on or above
// it) meets the plane. Edges shared between triangles always give the same
// point, regardless of the triangle winding.
func crossing(lo, hi mesh.Vertex, z float64, scale pathset.Scale) pathset.Point {
	t := (z - lo[2]) / (hi[2] - lo[2])
	x := lo[0] + (hi[0]-lo[0])*t
	y := lo[1] + (hi[1]-lo[1])*t
	return scale.Point(x, y)
}

// Slice intersects the mesh with the plane at z, and stitches the
// intersection into contours, oriented by nesting depth.
//
// The slice is sane only if there was at least one segment, and every
// segment was stitched into a closed contour. Contours that could not be
// closed are still returned, as open paths.
func Slice(m *mesh.Mesh, z float64, scale pathset.Scale) (ps pathset.PathSet, sane bool) {
	ps = pathset.New(scale)

	segments := Segments(m, z, scale)
	if len(segments) == 0 {
		return
	}

	paths, closed := Stitch(segments)
	ps.Paths = paths
	ps = ps.Orient()
	sane = closed

	return
}

// Stitch joins segments sharing end points into paths. Segments are
// undirected. closed is true if every path returned to its start.
//
// Closed loops without area (a segment doubled back on itself) are
// discarded.
func Stitch(segments []Segment) (paths []pathset.Path, closed bool) {
	closed = true

	ids := make(map[pathset.Point]int)
	var points []pathset.Point
	id := func(pt pathset.Point) int {
		n, found := ids[pt]
		if !found {
			n = len(points)
			ids[pt] = n
			points = append(points, pt)
		}
		return n
	}

	ends := make([][2]int, len(segments))
	for n, seg := range segments {
		ends[n] = [2]int{id(seg.A), id(seg.B)}
	}

	adjacent := make([][]int, len(points))
	for n, end := range ends {
		adjacent[end[0]] = append(adjacent[end[0]], n)
		adjacent[end[1]] = append(adjacent[end[1]], n)
	}

	used := make([]bool, len(segments))

	// next follows an unused segment from vertex, returning its other end
	next := func(vertex int) (other int, ok bool) {
		for _, n := range adjacent[vertex] {
			if used[n] {
				continue
			}
			used[n] = true
			other = ends[n][0]
			if other == vertex {
				other = ends[n][1]
			}
			ok = true
			return
		}
		return
	}

	for n := range segments {
		if used[n] {
			continue
		}
		used[n] = true

		start, cur := ends[n][0], ends[n][1]
		loop := []int{start, cur}

		for cur != start {
			other, ok := next(cur)
			if !ok {
				break
			}
			cur = other
			loop = append(loop, cur)
		}

		if cur != start {
			// Dead end; walk backwards from the start
			var head []int
			for at := start; ; {
				var ok bool
				at, ok = next(at)
				if !ok {
					break
				}
				head = append(head, at)
				if at == loop[len(loop)-1] {
					break
				}
			}
			for i, j := 0, len(head)-1; i < j; i, j = i+1, j-1 {
				head[i], head[j] = head[j], head[i]
			}
			loop = append(head, loop...)
		}

		path := make(pathset.Path, len(loop))
		for i, vertex := range loop {
			path[i] = points[vertex]
		}

		if !path.Closed() {
			closed = false
			paths = append(paths, path)
			continue
		}

		if len(path) < 4 || path.Area() == 0 {
			continue
		}

		paths = append(paths, path)
	}

	return
}
