//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package infill generates scan line fill strokes over polygon sets
package infill

import (
	"math"
	"sort"

	"github.com/ezrec/fdmslice/pathset"
)

// Vec is a 2D coordinate, in pathset units
type Vec = pathset.Vec

// parallelEpsilon is the relative cross product below which two lines are
// considered parallel
const parallelEpsilon = 1e-12

// LineIntersection finds the intersection of the line through a and b with
// the line through c and d.
//
// The returned t is the position of the intersection along a->b (0 at a, 1
// at b). Unless unbounded is set, the intersection must lie within both
// segments. Parallel and collinear lines, and zero length segments, never
// intersect.
func LineIntersection(a, b, c, d Vec, unbounded bool) (p Vec, t float64, ok bool) {
	r := b.Sub(a)
	s := d.Sub(c)

	den := r.Cross(s)
	if math.Abs(den) <= parallelEpsilon*r.Length()*s.Length() || den == 0 {
		return
	}

	ca := c.Sub(a)
	t = ca.Cross(s) / den
	u := ca.Cross(r) / den

	if math.IsNaN(t) || math.IsInf(t, 0) || math.IsNaN(u) || math.IsInf(u, 0) {
		t = 0
		return
	}

	if !unbounded && (t < 0 || t > 1 || u < 0 || u > 1) {
		t = 0
		return
	}

	p = a.Add(r.Mul(t))
	ok = true
	return
}

// Hit is a crossing of a scan line with a polygon edge
type Hit struct {
	Point Vec     // Crossing point
	T     float64 // Position along the scan line
}

// IntersectLine returns every crossing of the segment a->b with the edges of
// the polygons of ps, ordered by position along a->b.
//
// Edge endpoints lying exactly on the scan line count as being on its left,
// so a scan line passing through a polygon vertex is counted once, and an
// edge lying on the scan line is not counted at all.
func IntersectLine(ps pathset.PathSet, a, b Vec) (hits []Hit) {
	dir := b.Sub(a)

	ps.ForEachSegment(func(p0, p1 pathset.Point) {
		v0 := p0.Vec()
		v1 := p1.Vec()

		left0 := dir.Cross(v0.Sub(a)) >= 0
		left1 := dir.Cross(v1.Sub(a)) >= 0
		if left0 == left1 {
			return
		}

		pt, t, ok := LineIntersection(a, b, v0, v1, true)
		if !ok || t < 0 || t > 1 {
			return
		}

		hits = append(hits, Hit{Point: pt, T: t})
	})

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].T < hits[j].T
	})

	return
}
