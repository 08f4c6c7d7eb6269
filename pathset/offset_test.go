//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package pathset

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestInsetSquare(t *testing.T) {
	ps := PathSet{Scale: DefaultScale, Paths: []Path{square(DefaultScale, 0, 0, 20)}}

	table := []struct {
		delta float64
		width float64
	}{
		{delta: 0.2, width: 19.6},
		{delta: 1.0, width: 18.0},
		{delta: -0.2, width: 20.4},
	}

	for _, item := range table {
		inset := ps.Inset(item.delta)
		if inset.Len() != 1 {
			t.Errorf("Inset(%v): %d polygons, want 1", item.delta, inset.Len())
			continue
		}
		b := inset.Bounds().Millimeters(DefaultScale)
		if math.Abs(b.Width()-item.width) > 0.005 || math.Abs(b.Height()-item.width) > 0.005 {
			t.Errorf("Inset(%v): %vx%v, want %v", item.delta, b.Width(), b.Height(), item.width)
		}
		if !inset.Paths[0].Closed() {
			t.Errorf("Inset(%v): result not closed", item.delta)
		}
		if inset.Paths[0].Area() <= 0 {
			t.Errorf("Inset(%v): outline is not counter-clockwise", item.delta)
		}
	}
}

func TestInsetOffsetSymmetry(t *testing.T) {
	ps := PathSet{Scale: DefaultScale, Paths: []Path{square(DefaultScale, 3, -2, 12)}}

	a := ps.Offset(0.5).Bounds()
	b := ps.Inset(-0.5).Bounds()
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("Offset(d) != Inset(-d) (-offset +inset):\n%s", diff)
	}
}

func TestInsetMonotonic(t *testing.T) {
	ps := PathSet{Scale: DefaultScale, Paths: []Path{square(DefaultScale, 0, 0, 20)}}

	last := math.Inf(1)
	for _, delta := range []float64{0, 1, 2, 5, 9} {
		area := ps.Inset(delta).AreaMillimeters()
		if area <= 0 {
			t.Fatalf("Inset(%v): area %v, want positive", delta, area)
		}
		if area >= last {
			t.Errorf("Inset(%v): area %v did not shrink from %v", delta, area, last)
		}
		last = area
	}

	if gone := ps.Inset(10.5); !gone.Empty() {
		t.Errorf("Inset(10.5): got %d polygons, want none", gone.Len())
	}
}

func TestInsetZero(t *testing.T) {
	open := Path{
		DefaultScale.Point(0, 0),
		DefaultScale.Point(0, 5),
		DefaultScale.Point(5, 5),
		DefaultScale.Point(5, 0),
	}
	ps := PathSet{Scale: DefaultScale, Paths: []Path{open}}

	got := ps.Inset(0)
	want := ps.Close().Orient()

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Inset(0) mismatch (-want +got):\n%s", diff)
	}
	if got.Paths[0].Area() <= 0 {
		t.Errorf("Inset(0) did not orient the outline")
	}
}

func TestInsetHole(t *testing.T) {
	ps := PathSet{
		Scale: DefaultScale,
		Paths: []Path{
			square(DefaultScale, 0, 0, 20),
			square(DefaultScale, 0, 0, 10).Reversed(),
		},
	}

	inset := ps.Inset(1)
	if inset.Len() != 2 {
		t.Fatalf("Inset(1): %d polygons, want 2", inset.Len())
	}

	// 18x18 outline less a 12x12 hole, whose corners are chamfered by
	// the square joins
	for _, path := range inset.Paths {
		single := PathSet{Scale: inset.Scale, Paths: []Path{path}}
		bounds := single.Bounds().Millimeters(inset.Scale)
		side := 18.0
		if path.Area() < 0 {
			side = 12
		}
		want := Bounds{
			Min: Vec{X: -side / 2, Y: -side / 2},
			Max: Vec{X: side / 2, Y: side / 2},
		}
		if diff := cmp.Diff(want, bounds, cmpopts.EquateApprox(0, 1e-3)); diff != "" {
			t.Errorf("side %v bounds (-want +got):\n%s", side, diff)
		}
	}

	if got := inset.AreaMillimeters(); got < 18*18-12*12 || got > 18*18-12*12+1.5 {
		t.Errorf("Inset(1) area = %v, want %v..%v", got, 18*18-12*12, 18*18-12*12+1.5)
	}

	if gone := ps.Inset(5.5); !gone.Empty() {
		t.Errorf("Inset(5.5): ring should vanish, got %d polygons", gone.Len())
	}
}

func TestInsetEmpty(t *testing.T) {
	ps := New(DefaultScale)
	if got := ps.Inset(1); !got.Empty() || got.Scale != DefaultScale {
		t.Errorf("Inset of empty set = %+v", got)
	}

	line := PathSet{Scale: DefaultScale, Paths: []Path{{{0, 0}, {1000, 0}}}}
	if got := line.Inset(0.1); !got.Empty() {
		t.Errorf("Inset of degenerate line = %+v, want empty", got)
	}
}
