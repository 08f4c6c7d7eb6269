//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package fdmslice

import (
	"fmt"
)

// Volume is an axis aligned box, in mm
type Volume struct {
	Min, Max [3]float64
}

// Size is the extent of the volume along each axis
func (vol Volume) Size() (size [3]float64) {
	for n := range size {
		size[n] = vol.Max[n] - vol.Min[n]
	}
	return
}

func (vol Volume) String() string {
	size := vol.Size()
	return fmt.Sprintf("%.2f x %.2f x %.2f mm", size[0], size[1], size[2])
}

type Size struct {
	Layers      int     // Number of layers
	LayerHeight float64 // Nominal height of an individual layer
}

type Properties struct {
	Size     Size
	Bounds   Volume                   // Extent of the sliced model
	Config   Config                   // Slicing configuration
	Metadata map[string](interface{}) `json:",omitempty"`
}

// Get metadata
func (prop *Properties) GetMetadataString(attr string, defValue string) (value string) {
	value = defValue

	tmp, found := prop.Metadata[attr]
	if found {
		str, ok := tmp.(string)
		if ok {
			value = str
		}
	}

	return
}

// SetMetadata sets a metadata attribute
func (prop *Properties) SetMetadata(attr string, value interface{}) {
	if prop.Metadata == nil {
		prop.Metadata = make(map[string](interface{}))
	}

	prop.Metadata[attr] = value
}

// Height returns total print height
func (prop *Properties) Height() (height float64) {
	if prop.Size.Layers == 0 {
		return
	}

	cfg := &prop.Config
	height = cfg.FirstLayerHeight() + float64(prop.Size.Layers-1)*prop.Size.LayerHeight

	return
}
