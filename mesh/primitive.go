//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package mesh

import (
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// DefaultCells is the marching cubes resolution along the longest axis
const DefaultCells = 100

// boxFaces are the outward wound triangles of a unit cube, whose corner n
// is at (n&1, (n>>1)&1, (n>>2)&1)
var boxFaces = []uint32{
	0, 2, 3, 0, 3, 1, // bottom
	4, 5, 7, 4, 7, 6, // top
	0, 1, 5, 0, 5, 4, // front
	2, 6, 7, 2, 7, 3, // back
	0, 4, 6, 0, 6, 2, // left
	1, 3, 7, 1, 7, 5, // right
}

// Box returns an exact 8 vertex, 12 triangle box centered at the origin
func Box(x, y, z float64) (m *Mesh) {
	m = &Mesh{
		Indices: append([]uint32(nil), boxFaces...),
	}

	size := [3]float64{x, y, z}
	for n := 0; n < 8; n++ {
		for axis := 0; axis < 3; axis++ {
			f := -size[axis] / 2
			if n&(1<<axis) != 0 {
				f = size[axis] / 2
			}
			m.Vertices = append(m.Vertices, float32(f))
		}
	}

	return
}

// FromSDF tessellates a signed distance field solid with marching cubes
func FromSDF(s sdf.SDF3, cells int) (m *Mesh) {
	if cells <= 0 {
		cells = DefaultCells
	}

	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(s, renderer)

	m = &Mesh{
		Vertices: make([]float32, 0, len(triangles)*9),
		Normals:  make([]float32, 0, len(triangles)*9),
		Indices:  make([]uint32, 0, len(triangles)*3),
	}

	for i, tri := range triangles {
		n := tri.Normal()
		for j := 0; j < 3; j++ {
			v := tri[j]
			m.Vertices = append(m.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
			m.Normals = append(m.Normals, float32(n.X), float32(n.Y), float32(n.Z))
			m.Indices = append(m.Indices, uint32(i*3+j))
		}
	}

	return
}

// Cylinder returns a tessellated cylinder along Z, centered at the origin
func Cylinder(height, radius float64, cells int) (m *Mesh, err error) {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		err = fmt.Errorf("cylinder: %w", err)
		return
	}

	m = FromSDF(s, cells)
	return
}

// Tube returns a tessellated hollow cylinder along Z, centered at the origin
func Tube(height, outer, inner float64, cells int) (m *Mesh, err error) {
	if inner <= 0 || inner >= outer {
		err = fmt.Errorf("tube: inner radius %v must be within (0, %v)", inner, outer)
		return
	}

	body, err := sdf.Cylinder3D(height, outer, 0)
	if err != nil {
		err = fmt.Errorf("tube: %w", err)
		return
	}

	// The bore overshoots the body so the ends are open
	bore, err := sdf.Cylinder3D(height*2, inner, 0)
	if err != nil {
		err = fmt.Errorf("tube: %w", err)
		return
	}

	m = FromSDF(sdf.Difference3D(body, bore), cells)
	return
}

// SolidBox returns a tessellated box, with its minimum corner at the
// origin. Unlike Box, the mesh has the vertex soup of a marching cubes
// tessellation, and needs Prepare() before slicing.
func SolidBox(x, y, z float64, cells int) (m *Mesh, err error) {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		err = fmt.Errorf("box: %w", err)
		return
	}

	s = sdf.Transform3D(s, sdf.Translate3d(v3.Vec{X: x / 2, Y: y / 2, Z: z / 2}))
	m = FromSDF(s, cells)
	return
}
