//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package fdmslice

import (
	"github.com/ezrec/fdmslice/pathset"
)

// Everything needed to print a single layer
type Layer struct {
	Index  int     // Layer index
	Z      float64 // Z height of the bottom of the layer, in mm
	Height float64 // Layer height, in mm
	Sane   bool    // All contours of the layer closed

	Outer  pathset.PathSet   // Outer perimeter
	Inner  []pathset.PathSet // Inner perimeters, outermost first
	Infill pathset.PathSet   // Fill strokes, as two point paths
	Solid  bool              // Infill is a solid top or bottom skin
}

// Top is the Z height of the top of the layer, in mm
func (layer *Layer) Top() float64 {
	return layer.Z + layer.Height
}

// Perimeters returns the outer and inner perimeters, outermost first
func (layer *Layer) Perimeters() (shells []pathset.PathSet) {
	if layer.Outer.Empty() {
		return
	}

	shells = append(shells, layer.Outer)
	shells = append(shells, layer.Inner...)
	return
}

// Empty is true if the layer has nothing to print
func (layer *Layer) Empty() bool {
	return layer.Outer.Empty() && layer.Infill.Empty()
}

type Printable interface {
	Properties() (prop Properties)
	Layer(index int) (layer Layer)
}
