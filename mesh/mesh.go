//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package mesh holds triangle meshes to be sliced
package mesh

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrEmpty   = errors.New("mesh is empty")
	ErrInvalid = errors.New("mesh is invalid")
)

// Vertex is a 3D coordinate, in mm
type Vertex [3]float64

// Mesh is an indexed triangle mesh. A Mesh is not modified once built;
// every transformation returns a new Mesh.
type Mesh struct {
	Vertices []float32 // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 // [nx0,ny0,nz0, ...], per vertex, optional
	Indices  []uint32  // [i0,i1,i2, ...] triangles
}

// VertexCount returns the number of vertices
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry
func (m *Mesh) IsEmpty() bool {
	return m == nil || len(m.Vertices) == 0 || len(m.Indices) == 0
}

// Vertex returns the coordinates of a vertex
func (m *Mesh) Vertex(index uint32) Vertex {
	v := m.Vertices[index*3 : index*3+3]
	return Vertex{float64(v[0]), float64(v[1]), float64(v[2])}
}

// Triangle returns the vertex indices of a triangle
func (m *Mesh) Triangle(index int) (a, b, c uint32) {
	tri := m.Indices[index*3 : index*3+3]
	a, b, c = tri[0], tri[1], tri[2]
	return
}

// Validate checks that the mesh has geometry, and that every index refers
// to a finite vertex.
func (m *Mesh) Validate() (err error) {
	if m.IsEmpty() {
		err = ErrEmpty
		return
	}

	if len(m.Vertices)%3 != 0 {
		err = fmt.Errorf("%w: %d vertex coordinates", ErrInvalid, len(m.Vertices))
		return
	}

	if len(m.Indices)%3 != 0 {
		err = fmt.Errorf("%w: %d triangle indices", ErrInvalid, len(m.Indices))
		return
	}

	if len(m.Normals) != 0 && len(m.Normals) != len(m.Vertices) {
		err = fmt.Errorf("%w: %d normals for %d vertices", ErrInvalid, len(m.Normals)/3, m.VertexCount())
		return
	}

	for n, f := range m.Vertices {
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			err = fmt.Errorf("%w: vertex %d is not finite", ErrInvalid, n/3)
			return
		}
	}

	count := uint32(m.VertexCount())
	for n, index := range m.Indices {
		if index >= count {
			err = fmt.Errorf("%w: triangle %d refers to vertex %d of %d", ErrInvalid, n/3, index, count)
			return
		}
	}

	return
}

// Bounds returns the extent of the vertices of the mesh
func (m *Mesh) Bounds() (min, max Vertex) {
	for n := 0; n < 3; n++ {
		min[n] = math.Inf(1)
		max[n] = math.Inf(-1)
	}

	for n, f := range m.Vertices {
		axis := n % 3
		min[axis] = math.Min(min[axis], float64(f))
		max[axis] = math.Max(max[axis], float64(f))
	}

	return
}

// Translate returns a copy of the mesh moved by (dx, dy, dz) mm
func (m *Mesh) Translate(dx, dy, dz float64) (out *Mesh) {
	out = &Mesh{
		Vertices: make([]float32, len(m.Vertices)),
		Normals:  append([]float32(nil), m.Normals...),
		Indices:  append([]uint32(nil), m.Indices...),
	}

	off := [3]float32{float32(dx), float32(dy), float32(dz)}
	for n, f := range m.Vertices {
		out.Vertices[n] = f + off[n%3]
	}

	return
}

// Append returns a mesh with the triangles of both meshes
func (m *Mesh) Append(other *Mesh) (out *Mesh) {
	base := uint32(m.VertexCount())

	out = &Mesh{
		Vertices: append(append([]float32(nil), m.Vertices...), other.Vertices...),
		Indices:  append([]uint32(nil), m.Indices...),
	}

	for _, index := range other.Indices {
		out.Indices = append(out.Indices, index+base)
	}

	if len(m.Normals) == len(m.Vertices) && len(other.Normals) == len(other.Vertices) {
		out.Normals = append(append([]float32(nil), m.Normals...), other.Normals...)
	}

	return
}
