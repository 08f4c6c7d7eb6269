//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package stl

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ezrec/fdmslice"
	"github.com/ezrec/fdmslice/mesh"
)

const tetrahedron = `solid tetra
  facet normal 0 0 -1
    outer loop
      vertex 0 0 0
      vertex 0 10 0
      vertex 10 0 0
    endloop
  endfacet
  facet normal 0 -1 0
    outer loop
      vertex 0 0 0
      vertex 10 0 0
      vertex 0 0 10
    endloop
  endfacet
  facet normal -1 0 0
    outer loop
      vertex 0 0 0
      vertex 0 0 10
      vertex 0 10 0
    endloop
  endfacet
  facet normal 0.577 0.577 0.577
    outer loop
      vertex 10 0 0
      vertex 0 10 0
      vertex 0 0 10
    endloop
  endfacet
endsolid tetra
`

func encodeBox(t *testing.T, title string, x, y, z float64) []byte {
	var buff bytes.Buffer
	err := Encode(&buff, mesh.Box(x, y, z), title)
	if err != nil {
		t.Fatal(err)
	}
	return buff.Bytes()
}

func TestBinary(t *testing.T) {
	for _, title := range []string{"box", "solid box"} {
		t.Run(title, func(t *testing.T) {
			data := encodeBox(t, title, 10, 10, 10)
			if len(data) != 84+12*50 {
				t.Fatalf("%d bytes, want %d", len(data), 84+12*50)
			}

			m, err := Decode(data)
			if err != nil {
				t.Fatal(err)
			}

			if m.TriangleCount() != 12 || m.VertexCount() != 36 {
				t.Errorf("%d triangles, %d vertices", m.TriangleCount(), m.VertexCount())
			}

			prepared := m.Prepare(mesh.DefaultWeldTolerance)
			if prepared.VertexCount() != 8 {
				t.Errorf("%d welded vertices, want 8", prepared.VertexCount())
			}

			min, max := m.Bounds()
			if diff := cmp.Diff(mesh.Vertex{-5, -5, -5}, min); diff != "" {
				t.Errorf("min: %s", diff)
			}
			if diff := cmp.Diff(mesh.Vertex{5, 5, 5}, max); diff != "" {
				t.Errorf("max: %s", diff)
			}

			// Winding, and so the normals, survive the round trip
			box := mesh.Box(10, 10, 10)
			for n := 0; n < box.TriangleCount(); n++ {
				if diff := cmp.Diff(box.FaceNormal(n), m.FaceNormal(n)); diff != "" {
					t.Errorf("triangle %d: %s", n, diff)
				}
			}
		})
	}
}

func TestASCII(t *testing.T) {
	m, err := Decode([]byte(tetrahedron))
	if err != nil {
		t.Fatal(err)
	}

	if m.TriangleCount() != 4 {
		t.Fatalf("%d triangles, want 4", m.TriangleCount())
	}

	if err := m.Validate(); err != nil {
		t.Error(err)
	}

	_, max := m.Bounds()
	if max != (mesh.Vertex{10, 10, 10}) {
		t.Errorf("max %v", max)
	}
}

func TestDecodeErrors(t *testing.T) {
	data := encodeBox(t, "box", 10, 10, 10)

	table := map[string]struct {
		data []byte
		err  error
	}{
		"short":     {data[:40], ErrTruncated},
		"truncated": {data[:len(data)-10], ErrTruncated},
		"vertex":    {[]byte("solid x\nfacet normal 0 0 1\nouter loop\nvertex 0 0\n"), ErrSyntax},
		"number":    {[]byte("solid x\nfacet normal 0 0 1\nouter loop\nvertex 0 0 zero\n"), ErrSyntax},
		"corners":   {[]byte("solid x\nfacet normal 0 0 1\nouter loop\nvertex 0 0 0\nendloop\nendfacet\n"), ErrSyntax},
		"keyword":   {[]byte("solid x\nfacade\n"), ErrSyntax},
	}

	for name, item := range table {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(item.data)
			if !errors.Is(err, item.err) {
				t.Errorf("got %v, want %v", err, item.err)
			}
		})
	}
}

func TestFormatter(t *testing.T) {
	sf := NewSTLFormatter(".stl")
	err := sf.Parse([]string{"--layer-height", "1", "--shell", "1.2", "--top-bottom", "0", "--alternate=false"})
	if err != nil {
		t.Fatal(err)
	}

	data := encodeBox(t, "cube", 20, 20, 20)
	printable, err := sf.Decode(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatal(err)
	}

	prop := printable.Properties()
	if prop.Size.Layers != 20 {
		t.Fatalf("%d layers, want 20", prop.Size.Layers)
	}

	for n := 0; n < prop.Size.Layers; n++ {
		layer := printable.Layer(n)
		if !layer.Sane || len(layer.Inner) != 3 || layer.Infill.Empty() {
			t.Errorf("layer %d: sane %v, %d inner shells", n, layer.Sane, len(layer.Inner))
		}
	}

	var buff bytes.Buffer
	err = sf.Encode(&buff, printable)
	if _, ok := err.(fdmslice.ErrFormatReadOnly); !ok {
		t.Errorf("sliced printable encoded: %v", err)
	}
}

func TestFormatterLazy(t *testing.T) {
	sf := NewSTLFormatter(".stl")
	err := sf.Parse([]string{"--lazy", "--layer-height", "1", "--elephant-foot", "0.1"})
	if err != nil {
		t.Fatal(err)
	}

	data := encodeBox(t, "cube", 20, 20, 20)
	printable, err := sf.Decode(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatal(err)
	}

	layer := printable.Layer(0)
	b := layer.Outer.Bounds().Millimeters(layer.Outer.Scale)
	if b.Width() < 19.39 || b.Width() > 19.41 {
		t.Errorf("first layer outer width %v, want 19.4", b.Width())
	}

	var buff bytes.Buffer
	err = sf.Encode(&buff, printable)
	if err != nil {
		t.Fatal(err)
	}

	m, err := Decode(buff.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if m.TriangleCount() != 12 {
		t.Errorf("%d triangles written, want 12", m.TriangleCount())
	}
}

func TestFormatterProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	err := os.WriteFile(path, []byte("elephant_foot: 0.2\nslicing:\n  layer_height: 0.5\n  fill_density: 0.1\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	sf := NewSTLFormatter(".stl")
	err = sf.Parse([]string{"--profile", path, "--density", "0.3", "--fill-style", "PEN"})
	if err != nil {
		t.Fatal(err)
	}

	cfg, elephantFoot, err := sf.Config()
	if err != nil {
		t.Fatal(err)
	}

	want := fdmslice.DefaultConfig()
	want.LayerHeight = 0.5
	want.FillDensity = 0.3
	want.FillStyle = "pen"

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if elephantFoot != 0.2 {
		t.Errorf("elephant foot %v, want 0.2", elephantFoot)
	}

	sf = NewSTLFormatter(".stl")
	err = sf.Parse([]string{"--fill-style", "spiral"})
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := sf.Config(); err == nil {
		t.Errorf("unknown fill style accepted")
	}
}
