//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package mesh

import (
	"math"
)

// DefaultWeldTolerance is the distance, in mm, under which vertices are merged
const DefaultWeldTolerance = 1e-5

// Prepare returns a copy of the mesh ready for slicing: coincident
// vertices (within tolerance mm) are merged, triangles that collapse are
// dropped, and per vertex normals are computed.
//
// A tolerance of zero or less merges only identical vertices.
func (m *Mesh) Prepare(tolerance float64) (out *Mesh) {
	out = &Mesh{}

	type key [3]int64
	quantize := func(f float32) int64 {
		if tolerance <= 0 {
			return int64(math.Float32bits(f))
		}
		return int64(math.Round(float64(f) / tolerance))
	}

	welded := make(map[key]uint32, m.VertexCount())
	remap := make([]uint32, m.VertexCount())

	for n := 0; n < m.VertexCount(); n++ {
		v := m.Vertices[n*3 : n*3+3]
		k := key{quantize(v[0]), quantize(v[1]), quantize(v[2])}
		index, found := welded[k]
		if !found {
			index = uint32(out.VertexCount())
			out.Vertices = append(out.Vertices, v[0], v[1], v[2])
			welded[k] = index
		}
		remap[n] = index
	}

	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.Triangle(t)
		a, b, c = remap[a], remap[b], remap[c]
		if a == b || b == c || c == a {
			continue
		}
		out.Indices = append(out.Indices, a, b, c)
	}

	out.Normals = out.vertexNormals()

	return
}

// FaceNormal is the unit normal of a triangle, by its winding.
// Degenerate triangles have a zero normal.
func (m *Mesh) FaceNormal(index int) (normal Vertex) {
	a, b, c := m.Triangle(index)
	va, vb, vc := m.Vertex(a), m.Vertex(b), m.Vertex(c)

	normal = cross(sub(vb, va), sub(vc, va))
	length := math.Sqrt(dot(normal, normal))
	if length == 0 {
		normal = Vertex{}
		return
	}

	for n := range normal {
		normal[n] /= length
	}

	return
}

// vertexNormals averages the area weighted face normals around each vertex
func (m *Mesh) vertexNormals() (normals []float32) {
	sum := make([]Vertex, m.VertexCount())

	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.Triangle(t)
		va, vb, vc := m.Vertex(a), m.Vertex(b), m.Vertex(c)
		// Unnormalized, so larger faces weigh more
		fn := cross(sub(vb, va), sub(vc, va))
		for _, index := range []uint32{a, b, c} {
			for n := range fn {
				sum[index][n] += fn[n]
			}
		}
	}

	normals = make([]float32, 0, len(sum)*3)
	for _, v := range sum {
		length := math.Sqrt(dot(v, v))
		if length > 0 {
			for n := range v {
				v[n] /= length
			}
		}
		normals = append(normals, float32(v[0]), float32(v[1]), float32(v[2]))
	}

	return
}

func sub(a, b Vertex) Vertex {
	return Vertex{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func dot(a, b Vertex) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func cross(a, b Vertex) Vertex {
	return Vertex{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
