//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package fdmslice

import (
	"github.com/ezrec/fdmslice/pathset"
)

// Print is a Printable with properties, and no geometry
type Print struct {
	properties Properties
}

func NewPrint(prop Properties) (p *Print) {
	p = &Print{
		properties: prop,
	}

	return
}

func (p *Print) Properties() (prop Properties) {
	prop = p.properties

	return
}

// Layer returns an empty layer at the nominal Z height of index
func (p *Print) Layer(index int) (layer Layer) {
	prop := &p.properties
	cfg := &prop.Config

	layer.Index = index
	layer.Height = prop.Size.LayerHeight
	layer.Z = prop.Bounds.Min[2]
	if index > 0 {
		layer.Z += cfg.FirstLayerHeight() + float64(index-1)*prop.Size.LayerHeight
	} else {
		layer.Height = cfg.FirstLayerHeight()
	}

	layer.Outer = pathset.New(cfg.Scale)
	layer.Infill = pathset.New(cfg.Scale)

	return
}

// Sliced is the result of slicing a mesh: every sane layer, in Z order
type Sliced struct {
	Print
	Layers []Layer
}

// NewSliced creates a Printable from a set of layers
func NewSliced(prop Properties, layers []Layer) (sl *Sliced) {
	prop.Size.Layers = len(layers)

	sl = &Sliced{
		Print:  Print{properties: prop},
		Layers: layers,
	}

	return
}

func (sl *Sliced) Layer(index int) (layer Layer) {
	layer = sl.Layers[index]
	return
}
