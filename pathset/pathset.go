//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package pathset handles sets of fixed-point 2D polygons
package pathset

import (
	"fmt"
	"math"
)

// Point is a fixed-point 2D coordinate, in Scale units
type Point struct {
	X, Y int64
}

// Vec returns the point as floating point units
func (p Point) Vec() Vec {
	return Vec{X: float64(p.X), Y: float64(p.Y)}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Vec is a floating point 2D coordinate, in Scale units
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec             { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec             { return Vec{v.X - o.X, v.Y - o.Y} }
func (v Vec) Mul(k float64) Vec         { return Vec{v.X * k, v.Y * k} }
func (v Vec) Dot(o Vec) float64         { return v.X*o.X + v.Y*o.Y }
func (v Vec) Cross(o Vec) float64       { return v.X*o.Y - v.Y*o.X }
func (v Vec) Length() float64           { return math.Hypot(v.X, v.Y) }
func (v Vec) Lerp(o Vec, t float64) Vec { return v.Add(o.Sub(v).Mul(t)) }

// Point rounds the vector to the nearest fixed-point unit
func (v Vec) Point() Point {
	return Point{X: int64(math.Round(v.X)), Y: int64(math.Round(v.Y))}
}

// Path is a single polygon. It is closed when the first point equals the last.
type Path []Point

// Closed is true if the path has at least two points, and the first and last are equal
func (p Path) Closed() bool {
	return len(p) >= 2 && p[0] == p[len(p)-1]
}

// Area is the signed area (in square units) of the path, treated as a polygon.
// Counter-clockwise paths have positive area.
func (p Path) Area() (area float64) {
	n := len(p)
	if n < 3 {
		return
	}

	for i := 0; i < n; i++ {
		a := p[i]
		b := p[(i+1)%n]
		area += float64(a.X)*float64(b.Y) - float64(b.X)*float64(a.Y)
	}

	area /= 2
	return
}

// Reversed returns a reversed copy of the path
func (p Path) Reversed() (out Path) {
	out = make(Path, len(p))
	for n, pt := range p {
		out[len(p)-1-n] = pt
	}
	return
}

// Clone returns a copy of the path
func (p Path) Clone() Path {
	return append(Path(nil), p...)
}

// PathSet is an ordered set of polygons, at a declared scale
type PathSet struct {
	Paths []Path
	Scale Scale
}

// New returns an empty PathSet at the given scale
func New(scale Scale) PathSet {
	return PathSet{Scale: scale}
}

// Len is the number of polygons in the set
func (ps PathSet) Len() int {
	return len(ps.Paths)
}

// Empty is true if no polygon has a point
func (ps PathSet) Empty() bool {
	for _, path := range ps.Paths {
		if len(path) > 0 {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the set
func (ps PathSet) Clone() (out PathSet) {
	out = PathSet{Scale: ps.Scale, Paths: make([]Path, 0, len(ps.Paths))}
	for _, path := range ps.Paths {
		out.Paths = append(out.Paths, path.Clone())
	}
	return
}

// ForEachSegment calls fn for each consecutive pair of points of every
// polygon with at least two points.
func (ps PathSet) ForEachSegment(fn func(a, b Point)) {
	for _, path := range ps.Paths {
		for n := 1; n < len(path); n++ {
			fn(path[n-1], path[n])
		}
	}
}

// Close returns a copy of the set where every open polygon has its first point appended
func (ps PathSet) Close() (out PathSet) {
	out = PathSet{Scale: ps.Scale, Paths: make([]Path, 0, len(ps.Paths))}
	for _, path := range ps.Paths {
		path = path.Clone()
		if len(path) > 0 && path[0] != path[len(path)-1] {
			path = append(path, path[0])
		}
		out.Paths = append(out.Paths, path)
	}
	return
}

// OpenContours returns the polygons whose first and last points differ
func (ps PathSet) OpenContours() (out PathSet) {
	out = PathSet{Scale: ps.Scale}
	for _, path := range ps.Paths {
		if len(path) >= 2 && !path.Closed() {
			out.Paths = append(out.Paths, path.Clone())
		}
	}
	return
}

// ClosedContours returns the polygons whose first and last points are equal
func (ps PathSet) ClosedContours() (out PathSet) {
	out = PathSet{Scale: ps.Scale}
	for _, path := range ps.Paths {
		if path.Closed() {
			out.Paths = append(out.Paths, path.Clone())
		}
	}
	return
}

// Area is the sum of the signed areas of all polygons, in square units
func (ps PathSet) Area() (area float64) {
	for _, path := range ps.Paths {
		area += path.Area()
	}
	return
}

// AreaMillimeters is the signed area of the set in mm^2
func (ps PathSet) AreaMillimeters() float64 {
	s := float64(ps.Scale)
	return ps.Area() / (s * s)
}

// Length is the total length of all segments, in mm
func (ps PathSet) Length() (mm float64) {
	ps.ForEachSegment(func(a, b Point) {
		mm += b.Vec().Sub(a.Vec()).Length()
	})
	mm = ps.Scale.Millimeters(mm)
	return
}

// Append merges the polygons of other into the receiver. Only the receiver
// is modified; the points of other are copied, and converted to the
// receiver's scale if needed.
func (ps *PathSet) Append(other PathSet) {
	if ps.Scale == 0 {
		ps.Scale = other.Scale
	}

	ratio := 1.0
	if other.Scale != ps.Scale && other.Scale.Valid() {
		ratio = float64(ps.Scale) / float64(other.Scale)
	}

	for _, path := range other.Paths {
		dup := make(Path, len(path))
		for n, pt := range path {
			if ratio == 1.0 {
				dup[n] = pt
			} else {
				dup[n] = pt.Vec().Mul(ratio).Point()
			}
		}
		ps.Paths = append(ps.Paths, dup)
	}
}

// Translate returns a copy of the set moved by (dx, dy) mm
func (ps PathSet) Translate(dx, dy float64) (out PathSet) {
	off := Point{X: ps.Scale.Units(dx), Y: ps.Scale.Units(dy)}
	out = ps.Clone()
	for _, path := range out.Paths {
		for n := range path {
			path[n].X += off.X
			path[n].Y += off.Y
		}
	}
	return
}
