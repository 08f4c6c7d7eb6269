//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package mesh

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBox(t *testing.T) {
	m := Box(20, 10, 4)

	if m.VertexCount() != 8 || m.TriangleCount() != 12 {
		t.Fatalf("box: %d vertices, %d triangles", m.VertexCount(), m.TriangleCount())
	}

	if err := m.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	min, max := m.Bounds()
	if diff := cmp.Diff(Vertex{-10, -5, -2}, min); diff != "" {
		t.Errorf("min (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Vertex{10, 5, 2}, max); diff != "" {
		t.Errorf("max (-want +got):\n%s", diff)
	}

	// Every face normal points away from the center
	for n := 0; n < m.TriangleCount(); n++ {
		normal := m.FaceNormal(n)
		a, b, c := m.Triangle(n)
		va, vb, vc := m.Vertex(a), m.Vertex(b), m.Vertex(c)
		center := Vertex{(va[0] + vb[0] + vc[0]) / 3, (va[1] + vb[1] + vc[1]) / 3, (va[2] + vb[2] + vc[2]) / 3}
		if dot(normal, center) <= 0 {
			t.Errorf("triangle %d: normal %v points inward", n, normal)
		}
	}
}

func TestValidate(t *testing.T) {
	table := []struct {
		name string
		mesh *Mesh
		err  error
	}{
		{name: "nil", mesh: nil, err: ErrEmpty},
		{name: "empty", mesh: &Mesh{}, err: ErrEmpty},
		{name: "no-triangles", mesh: &Mesh{Vertices: []float32{0, 0, 0}}, err: ErrEmpty},
		{name: "ragged-vertices", mesh: &Mesh{Vertices: []float32{0, 0, 0, 1}, Indices: []uint32{0, 0, 0}}, err: ErrInvalid},
		{name: "ragged-indices", mesh: &Mesh{Vertices: []float32{0, 0, 0}, Indices: []uint32{0, 0}}, err: ErrInvalid},
		{name: "out-of-range", mesh: &Mesh{Vertices: []float32{0, 0, 0}, Indices: []uint32{0, 0, 1}}, err: ErrInvalid},
		{name: "nan", mesh: &Mesh{Vertices: []float32{0, float32(math.NaN()), 0}, Indices: []uint32{0, 0, 0}}, err: ErrInvalid},
		{name: "normals", mesh: &Mesh{Vertices: []float32{0, 0, 0}, Normals: []float32{0, 0}, Indices: []uint32{0, 0, 0}}, err: ErrInvalid},
		{name: "ok", mesh: &Mesh{Vertices: []float32{0, 0, 0}, Indices: []uint32{0, 0, 0}}},
	}

	for _, item := range table {
		t.Run(item.name, func(t *testing.T) {
			err := item.mesh.Validate()
			if !errors.Is(err, item.err) || (item.err == nil && err != nil) {
				t.Errorf("Validate() = %v, want %v", err, item.err)
			}
		})
	}
}

func TestPrepare(t *testing.T) {
	// Two triangles sharing an edge, in unindexed form, plus a sliver
	m := &Mesh{
		Vertices: []float32{
			0, 0, 0, 1, 0, 0, 0, 1, 0,
			1, 0, 0, 1, 1, 0, 0, 1.000001, 0,
			0, 0, 0, 0, 0, 0, 5, 5, 5,
		},
		Indices: []uint32{0, 1, 2, 3, 4, 5, 6, 7, 8},
	}

	p := m.Prepare(DefaultWeldTolerance)

	if p.VertexCount() != 5 {
		t.Errorf("welded to %d vertices, want 5", p.VertexCount())
	}
	if p.TriangleCount() != 2 {
		t.Errorf("%d triangles, want 2", p.TriangleCount())
	}
	if len(p.Normals) != len(p.Vertices) {
		t.Fatalf("%d normals for %d vertices", len(p.Normals)/3, p.VertexCount())
	}

	// Shared vertices agree on the index
	_, b0, c0 := p.Triangle(0)
	a1, _, c1 := p.Triangle(1)
	if b0 != a1 || c0 != c1 {
		t.Errorf("shared edge not welded: %v", p.Indices)
	}

	for n := 0; n < 4; n++ {
		if nz := p.Normals[n*3+2]; math.Abs(float64(nz)-1) > 1e-6 {
			t.Errorf("vertex %d normal z = %v, want 1", n, nz)
		}
	}

	// The input is left alone
	if m.VertexCount() != 9 || len(m.Normals) != 0 {
		t.Errorf("Prepare modified its input")
	}
}

func TestPrepareExact(t *testing.T) {
	m := &Mesh{
		Vertices: []float32{0, 0, 0, 1, 0, 0, 0, 1, 0, 1, 0, 0.0000001},
		Indices:  []uint32{0, 1, 2, 0, 3, 2},
	}

	if got := m.Prepare(0).VertexCount(); got != 4 {
		t.Errorf("exact weld: %d vertices, want 4", got)
	}
}

func TestTranslateAppend(t *testing.T) {
	a := Box(2, 2, 2)
	b := a.Translate(10, 0, 1)

	min, max := b.Bounds()
	if min != (Vertex{9, -1, 0}) || max != (Vertex{11, 1, 2}) {
		t.Errorf("Translate bounds %v..%v", min, max)
	}

	both := a.Append(b)
	if both.VertexCount() != 16 || both.TriangleCount() != 24 {
		t.Fatalf("Append: %d vertices, %d triangles", both.VertexCount(), both.TriangleCount())
	}
	if err := both.Validate(); err != nil {
		t.Errorf("Append: %v", err)
	}
	if x, _, _ := both.Triangle(12); x != boxFaces[0]+8 {
		t.Errorf("Append did not rebase indices: %d", x)
	}

	if min, _ := a.Bounds(); min != (Vertex{-1, -1, -1}) {
		t.Errorf("Translate modified its input")
	}
}

func TestCylinder(t *testing.T) {
	m, err := Cylinder(10, 5, 40)
	if err != nil {
		t.Fatalf("Cylinder: %v", err)
	}

	if err := m.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}

	min, max := m.Bounds()
	for axis, want := range []float64{5, 5, 5} {
		if math.Abs(max[axis]-want) > 0.5 || math.Abs(min[axis]+want) > 0.5 {
			t.Errorf("axis %d: bounds %v..%v, want ±%v", axis, min[axis], max[axis], want)
		}
	}

	p := m.Prepare(DefaultWeldTolerance)
	if p.VertexCount() >= m.VertexCount() {
		t.Errorf("Prepare welded nothing: %d vertices", p.VertexCount())
	}
}

func TestTube(t *testing.T) {
	if _, err := Tube(10, 5, 6, 40); err == nil {
		t.Errorf("Tube with inner > outer: no error")
	}

	m, err := Tube(10, 5, 2.5, 40)
	if err != nil {
		t.Fatalf("Tube: %v", err)
	}
	if m.IsEmpty() {
		t.Fatalf("Tube: empty mesh")
	}
}
