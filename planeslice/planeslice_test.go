//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package planeslice

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ezrec/fdmslice/mesh"
	"github.com/ezrec/fdmslice/pathset"
)

func TestSliceCube(t *testing.T) {
	scale := pathset.DefaultScale
	cube := mesh.Box(10, 10, 10).Translate(0, 0, 5)

	for _, z := range []float64{0.1, 2.5, 5, 7.25, 9.9} {
		ps, sane := Slice(cube, z, scale)
		if !sane {
			t.Errorf("z=%v: not sane", z)
			continue
		}
		if ps.Len() != 1 {
			t.Errorf("z=%v: %d contours, want 1", z, ps.Len())
			continue
		}
		if !ps.Paths[0].Closed() {
			t.Errorf("z=%v: contour is open", z)
		}

		b := ps.Bounds().Millimeters(scale)
		want := pathset.Bounds{Min: pathset.Vec{X: -5, Y: -5}, Max: pathset.Vec{X: 5, Y: 5}}
		if diff := cmp.Diff(want, b); diff != "" {
			t.Errorf("z=%v: bounds (-want +got):\n%s", z, diff)
		}

		if area := ps.AreaMillimeters(); math.Abs(area-100) > 1e-6 {
			t.Errorf("z=%v: area %v, want 100 counter-clockwise", z, area)
		}
	}
}

func TestSliceFaces(t *testing.T) {
	scale := pathset.DefaultScale
	cube := mesh.Box(10, 10, 10)

	// The bottom face rests on the plane from above
	bottom, sane := Slice(cube, -5, scale)
	if sane || !bottom.Empty() {
		t.Errorf("bottom: sane=%v, %d contours; want nothing", sane, bottom.Len())
	}

	// The top face is reached from below
	top, sane := Slice(cube, 5, scale)
	if !sane || top.Len() != 1 {
		t.Fatalf("top: sane=%v, %d contours; want one", sane, top.Len())
	}
	if area := top.AreaMillimeters(); math.Abs(area-100) > 1e-6 {
		t.Errorf("top: area %v, want 100", area)
	}

	for _, z := range []float64{-6, 6} {
		if ps, sane := Slice(cube, z, scale); sane || !ps.Empty() {
			t.Errorf("z=%v: sane=%v, %d contours; want nothing", z, sane, ps.Len())
		}
	}
}

func TestSliceTwoParts(t *testing.T) {
	scale := pathset.DefaultScale
	parts := mesh.Box(4, 4, 4).Append(mesh.Box(2, 2, 2).Translate(10, 0, 0))

	ps, sane := Slice(parts, 0.5, scale)
	if !sane || ps.Len() != 2 {
		t.Fatalf("sane=%v, %d contours; want 2", sane, ps.Len())
	}

	for n, path := range ps.Paths {
		if path.Area() <= 0 {
			t.Errorf("contour %d is not counter-clockwise", n)
		}
	}
}

func TestSliceTube(t *testing.T) {
	scale := pathset.DefaultScale
	tube, err := mesh.Tube(10, 5, 2.5, 60)
	if err != nil {
		t.Fatalf("Tube: %v", err)
	}
	tube = tube.Prepare(mesh.DefaultWeldTolerance)

	ps, sane := Slice(tube, 0.123, scale)
	if !sane {
		t.Fatalf("not sane")
	}
	if ps.Len() != 2 {
		t.Fatalf("%d contours, want 2", ps.Len())
	}

	var outer, hole float64
	for _, path := range ps.Paths {
		area := path.Area() / float64(scale*scale)
		if area > 0 {
			outer = area
		} else {
			hole = -area
		}
	}

	if math.Abs(outer-math.Pi*25)/(math.Pi*25) > 0.1 {
		t.Errorf("outer area %v, want about %v", outer, math.Pi*25)
	}
	if math.Abs(hole-math.Pi*6.25)/(math.Pi*6.25) > 0.1 {
		t.Errorf("hole area %v, want about %v", hole, math.Pi*6.25)
	}
}

func TestSegments(t *testing.T) {
	scale := pathset.Scale(1)
	// One triangle, crossing the plane at z=1
	tri := &mesh.Mesh{
		Vertices: []float32{0, 0, 0, 4, 0, 0, 0, 0, 2},
		Indices:  []uint32{0, 1, 2},
	}

	got := Segments(tri, 1, scale)
	want := []Segment{{A: pathset.Point{X: 2, Y: 0}, B: pathset.Point{X: 0, Y: 0}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Segments (-want +got):\n%s", diff)
	}

	// A vertex on the plane, the others above: nothing
	if got := Segments(tri, 0, scale); len(got) != 0 {
		t.Errorf("z=0: %v, want none", got)
	}

	// Two vertices below, one on the plane: a single point, dropped
	if got := Segments(tri, 2, scale); len(got) != 0 {
		t.Errorf("z=2: %v, want none", got)
	}
}

func TestStitch(t *testing.T) {
	a := pathset.Point{X: 0, Y: 0}
	b := pathset.Point{X: 10, Y: 0}
	c := pathset.Point{X: 10, Y: 10}
	d := pathset.Point{X: 0, Y: 10}

	t.Run("closed", func(t *testing.T) {
		paths, closed := Stitch([]Segment{{a, b}, {c, d}, {c, b}, {a, d}})
		if !closed || len(paths) != 1 {
			t.Fatalf("closed=%v, %d paths", closed, len(paths))
		}
		want := pathset.Path{a, b, c, d, a}
		if diff := cmp.Diff(want, paths[0]); diff != "" {
			t.Errorf("loop (-want +got):\n%s", diff)
		}
	})

	t.Run("open", func(t *testing.T) {
		// The chain is whole no matter which segment it is found from
		table := [][]Segment{
			{{b, c}, {a, b}, {c, d}},
			{{a, b}, {b, c}, {c, d}},
			{{c, d}, {b, c}, {a, b}},
			{{b, c}, {a, b}, {d, c}},
		}

		want := pathset.Path{a, b, c, d}
		for n, segments := range table {
			paths, closed := Stitch(segments)
			if closed || len(paths) != 1 {
				t.Errorf("%d: closed=%v, %d paths", n, closed, len(paths))
				continue
			}
			if diff := cmp.Diff(want, paths[0]); diff != "" {
				t.Errorf("%d: chain (-want +got):\n%s", n, diff)
			}
		}
	})

	t.Run("doubled", func(t *testing.T) {
		paths, closed := Stitch([]Segment{{a, b}, {b, a}})
		if !closed || len(paths) != 0 {
			t.Errorf("closed=%v, %d paths; want a discarded sliver", closed, len(paths))
		}
	})
}
