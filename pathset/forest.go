//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package pathset

import (
	clipper "github.com/ctessum/go.clipper"
)

// Node is a contour in a Forest
type Node struct {
	Index  int // Index of the contour in the PathSet
	Parent int // Index of the enclosing contour, or -1
	Depth  int // Nesting depth; even depths are outlines, odd depths are holes
}

// Forest is the containment tree of the closed contours of a PathSet
type Forest []Node

// Forest computes the nesting of every closed contour of the set. Open and
// degenerate polygons get a Depth of 0 and no parent.
func (ps PathSet) Forest() (forest Forest) {
	forest = make(Forest, len(ps.Paths))

	polys := make([]clipper.Path, len(ps.Paths))
	areas := make([]float64, len(ps.Paths))
	for n, path := range ps.Paths {
		forest[n] = Node{Index: n, Parent: -1}
		if !path.Closed() || len(path) < 4 {
			continue
		}
		polys[n] = toClipperPath(path)
		areas[n] = path.Area()
		if areas[n] < 0 {
			areas[n] = -areas[n]
		}
	}

	for n := range ps.Paths {
		if polys[n] == nil {
			continue
		}
		for m := range ps.Paths {
			if m == n || polys[m] == nil {
				continue
			}
			if !contains(polys[m], areas[m], polys[n], areas[n], m < n) {
				continue
			}
			forest[n].Depth++
			// The smallest container is the direct parent
			if forest[n].Parent < 0 || areas[m] < areas[forest[n].Parent] {
				forest[n].Parent = m
			}
		}
	}

	return
}

// contains is true if inner lies within outer. Contours whose vertices all
// lie on the boundary of the other (duplicates) are ordered by index.
func contains(outer clipper.Path, outerArea float64, inner clipper.Path, innerArea float64, outerFirst bool) bool {
	if innerArea > outerArea {
		return false
	}

	for _, pt := range inner {
		switch clipper.PointInPolygon(pt, outer) {
		case 1:
			return true
		case 0:
			return false
		}
	}

	return outerFirst
}

// Orient returns a copy of the set where every closed contour is oriented
// by its nesting depth: outlines counter-clockwise, holes clockwise.
func (ps PathSet) Orient() (out PathSet) {
	out = ps.Clone()
	forest := ps.Forest()

	for n, path := range out.Paths {
		if !path.Closed() {
			continue
		}
		area := path.Area()
		hole := forest[n].Depth%2 == 1
		if (area < 0 && !hole) || (area > 0 && hole) {
			out.Paths[n] = path.Reversed()
		}
	}

	return
}

// toClipperPath converts a path, without its closing point
func toClipperPath(path Path) (cp clipper.Path) {
	if path.Closed() {
		path = path[:len(path)-1]
	}

	cp = make(clipper.Path, 0, len(path))
	for _, pt := range path {
		cp = append(cp, &clipper.IntPoint{X: clipper.CInt(pt.X), Y: clipper.CInt(pt.Y)})
	}

	return
}
