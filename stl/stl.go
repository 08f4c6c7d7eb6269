//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package stl reads and writes STL triangle meshes
package stl

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-restruct/restruct"

	"github.com/ezrec/fdmslice/mesh"
)

var (
	ErrTruncated = errors.New("stl: file truncated")
	ErrSyntax    = errors.New("stl: syntax error")
)

type stlHeader struct {
	Header    [80]byte // 00: Free form text
	Triangles uint32   // 50: Count of triangles
}

type stlTriangle struct {
	Normal    [3]float32    // 00:
	Vertex    [3][3]float32 // 0c:
	Attribute uint16        // 30: Attribute byte count, unused
}

var (
	headerSize, _   = restruct.SizeOf(&stlHeader{})
	triangleSize, _ = restruct.SizeOf(&stlTriangle{})
)

// Decode reads a binary or an ASCII STL file. Vertices are not shared
// between triangles; use mesh.Prepare to weld them.
func Decode(data []byte) (m *mesh.Mesh, err error) {
	if isASCII(data) {
		m, err = decodeASCII(data)
	} else {
		m, err = decodeBinary(data)
	}

	return
}

// isASCII is true when data starts with "solid", and is not sized as a
// binary file. Some binary writers start their header with "solid".
func isASCII(data []byte) bool {
	if !bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("solid")) {
		return false
	}

	if len(data) >= headerSize {
		count := binary.LittleEndian.Uint32(data[80:84])
		if int64(headerSize)+int64(count)*int64(triangleSize) == int64(len(data)) {
			return false
		}
	}

	return true
}

func decodeBinary(data []byte) (m *mesh.Mesh, err error) {
	if len(data) < headerSize {
		err = ErrTruncated
		return
	}

	header := stlHeader{}
	err = restruct.Unpack(data, binary.LittleEndian, &header)
	if err != nil {
		return
	}

	count := int(header.Triangles)
	if int64(len(data)) < int64(headerSize)+int64(count)*int64(triangleSize) {
		err = fmt.Errorf("%w: %d triangles declared, room for %d", ErrTruncated,
			count, (len(data)-headerSize)/triangleSize)
		return
	}

	m = &mesh.Mesh{
		Vertices: make([]float32, 0, count*9),
		Indices:  make([]uint32, 0, count*3),
	}

	var tri stlTriangle
	for n := 0; n < count; n++ {
		offset := headerSize + n*triangleSize
		err = restruct.Unpack(data[offset:offset+triangleSize], binary.LittleEndian, &tri)
		if err != nil {
			m = nil
			return
		}

		appendTriangle(m, tri.Vertex)
	}

	return
}

func decodeASCII(data []byte) (m *mesh.Mesh, err error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	m = &mesh.Mesh{}

	var corners [3][3]float32
	corner := 0
	line := 0

	fail := func(format string, args ...interface{}) {
		err = fmt.Errorf("%w: line %d: %s", ErrSyntax, line, fmt.Sprintf(format, args...))
		m = nil
	}

	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch strings.ToLower(fields[0]) {
		case "vertex":
			if len(fields) != 4 {
				fail("vertex needs 3 coordinates")
				return
			}
			if corner >= 3 {
				fail("more than 3 vertices in a facet")
				return
			}
			for axis := 0; axis < 3; axis++ {
				var value float64
				value, err = strconv.ParseFloat(fields[1+axis], 32)
				if err != nil {
					fail("%v", err)
					return
				}
				corners[corner][axis] = float32(value)
			}
			corner++
		case "facet":
			corner = 0
		case "endfacet":
			if corner != 3 {
				fail("facet has %d vertices", corner)
				return
			}
			appendTriangle(m, corners)
			corner = 0
		case "solid", "endsolid", "outer", "endloop":
		default:
			fail("unexpected %q", fields[0])
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		m = nil
		return
	}

	return
}

func appendTriangle(m *mesh.Mesh, corners [3][3]float32) {
	base := uint32(m.VertexCount())
	for _, corner := range corners {
		m.Vertices = append(m.Vertices, corner[0], corner[1], corner[2])
	}
	m.Indices = append(m.Indices, base, base+1, base+2)
}

// Encode writes the mesh as a binary STL file, with facet normals
func Encode(writer io.Writer, m *mesh.Mesh, title string) (err error) {
	header := stlHeader{
		Triangles: uint32(m.TriangleCount()),
	}
	copy(header.Header[:], title)

	data, err := restruct.Pack(binary.LittleEndian, &header)
	if err != nil {
		return
	}

	buff := bufio.NewWriter(writer)
	_, err = buff.Write(data)
	if err != nil {
		return
	}

	for n := 0; n < m.TriangleCount(); n++ {
		tri := stlTriangle{}

		normal := m.FaceNormal(n)
		for axis := 0; axis < 3; axis++ {
			tri.Normal[axis] = float32(normal[axis])
		}

		a, b, c := m.Triangle(n)
		for corner, index := range []uint32{a, b, c} {
			v := m.Vertex(index)
			for axis := 0; axis < 3; axis++ {
				tri.Vertex[corner][axis] = float32(v[axis])
			}
		}

		data, err = restruct.Pack(binary.LittleEndian, &tri)
		if err != nil {
			return
		}

		_, err = buff.Write(data)
		if err != nil {
			return
		}
	}

	err = buff.Flush()
	return
}
