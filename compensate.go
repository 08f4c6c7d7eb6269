//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package fdmslice

import (
	"github.com/ezrec/fdmslice/pathset"
)

// CompensatedPrintable shrinks the perimeters of a range of layers, and
// refills them. Used on the first layers to counter the squish of the
// bed against the nozzle ("elephant foot").
type CompensatedPrintable struct {
	Printable
	Amount     float64 // Inset of every perimeter, in mm
	FirstLayer int     // First layer to compensate
	Layers     int     // Count of layers to compensate
}

func NewCompensatedPrintable(printable Printable) (cp *CompensatedPrintable) {
	cp = &CompensatedPrintable{
		Printable:  printable,
		FirstLayer: 0,
		Layers:     1,
	}

	return
}

func (cp *CompensatedPrintable) Layer(index int) (layer Layer) {
	layer = cp.Printable.Layer(index)

	if cp.Amount == 0 || index < cp.FirstLayer || (index-cp.FirstLayer) >= cp.Layers {
		return
	}

	if layer.Outer.Empty() {
		return
	}

	prop := cp.Properties()
	layer = compensateLayer(&prop.Config, layer, cp.Amount)

	return
}

// compensateLayer insets every perimeter of layer by amount, and refills
// the innermost
func compensateLayer(cfg *Config, layer Layer, amount float64) (out Layer) {
	out = layer
	out.Outer = layer.Outer.Inset(amount)
	out.Inner = nil
	out.Infill = pathset.New(layer.Infill.Scale)

	if out.Outer.Empty() {
		return
	}

	region := out.Outer
	for _, inner := range layer.Inner {
		shell := inner.Inset(amount)
		if shell.Empty() {
			break
		}
		out.Inner = append(out.Inner, shell)
		region = shell
	}

	if layer.Infill.Empty() {
		return
	}

	out.Infill = cfg.Infill(region, layer.Index, layer.Solid)

	return
}
