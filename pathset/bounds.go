//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package pathset

import (
	"math"
)

// Bounds is an axis aligned bounding box, in Scale units.
// An empty Bounds has an infinite Min and a negative infinite Max.
type Bounds struct {
	Min, Max Vec
}

// EmptyBounds returns a Bounds containing nothing
func EmptyBounds() Bounds {
	return Bounds{
		Min: Vec{X: math.Inf(1), Y: math.Inf(1)},
		Max: Vec{X: math.Inf(-1), Y: math.Inf(-1)},
	}
}

// Empty is true if the bounds contain no point
func (b Bounds) Empty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y
}

func (b Bounds) Width() float64  { return b.Max.X - b.Min.X }
func (b Bounds) Height() float64 { return b.Max.Y - b.Min.Y }

// Center of the bounds
func (b Bounds) Center() Vec {
	return b.Min.Lerp(b.Max, 0.5)
}

// Extend grows the bounds to contain v
func (b *Bounds) Extend(v Vec) {
	b.Min.X = math.Min(b.Min.X, v.X)
	b.Min.Y = math.Min(b.Min.Y, v.Y)
	b.Max.X = math.Max(b.Max.X, v.X)
	b.Max.Y = math.Max(b.Max.Y, v.Y)
}

// Union returns bounds containing both b and o
func (b Bounds) Union(o Bounds) Bounds {
	if o.Empty() {
		return b
	}
	b.Extend(o.Min)
	b.Extend(o.Max)
	return b
}

// Millimeters converts the bounds from units to mm
func (b Bounds) Millimeters(scale Scale) Bounds {
	if b.Empty() {
		return b
	}
	s := float64(scale)
	return Bounds{
		Min: Vec{X: b.Min.X / s, Y: b.Min.Y / s},
		Max: Vec{X: b.Max.X / s, Y: b.Max.Y / s},
	}
}

// Bounds returns the bounding box of every segment endpoint of the set.
// The result is Empty() when no polygon has two or more points.
func (ps PathSet) Bounds() (b Bounds) {
	b = EmptyBounds()
	ps.ForEachSegment(func(p0, p1 Point) {
		b.Extend(p0.Vec())
		b.Extend(p1.Vec())
	})
	return
}
