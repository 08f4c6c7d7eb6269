//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package raster

import (
	"fmt"
	"image"
	"image/png"

	"github.com/spf13/pflag"

	"github.com/ezrec/fdmslice"
)

type PNGFormat struct {
	*pflag.FlagSet

	Layer      int     // Layer to draw; negative counts from the top
	Resolution float64 // Pixels per mm
	Section    bool    // Draw the cross section instead of the toolpaths
	MaxSize    int     // Largest width or height of the image; 0 for no limit
}

func NewPNGFormatter(suffix string) (pf *PNGFormat) {
	flagSet := pflag.NewFlagSet(suffix, pflag.ContinueOnError)
	flagSet.SetInterspersed(false)

	pf = &PNGFormat{
		FlagSet: flagSet,
	}

	pf.IntVarP(&pf.Layer, "layer", "l", 0, "Layer to draw; negative counts from the top layer")
	pf.Float64VarP(&pf.Resolution, "resolution", "r", DefaultResolution, "Pixels per mm")
	pf.BoolVarP(&pf.Section, "section", "s", false, "Draw the cross section instead of the toolpaths")
	pf.IntVarP(&pf.MaxSize, "max-size", "m", 0, "Largest width or height of the image, in pixels")

	return
}

// Image renders the selected layer of a printable
func (pf *PNGFormat) Image(printable fdmslice.Printable) (gray *image.Gray, err error) {
	prop := printable.Properties()

	index := pf.Layer
	if index < 0 {
		index += prop.Size.Layers
	}
	if index < 0 || index >= prop.Size.Layers {
		err = fmt.Errorf("layer %d: out of range 0..%d", pf.Layer, prop.Size.Layers-1)
		return
	}

	r := NewRasterizer(prop.Bounds, pf.Resolution)
	layer := printable.Layer(index)

	if pf.Section {
		gray = r.Section(layer)
	} else {
		gray = r.Toolpaths(layer, prop.Config.NozzleSize)
	}

	size := gray.Bounds().Size()
	if pf.MaxSize > 0 && (size.X > pf.MaxSize || size.Y > pf.MaxSize) {
		gray = Scale(gray, pf.MaxSize, pf.MaxSize)
	}

	return
}

func (pf *PNGFormat) Encode(writer fdmslice.Writer, printable fdmslice.Printable) (err error) {
	gray, err := pf.Image(printable)
	if err != nil {
		return
	}

	err = png.Encode(writer, gray)
	return
}

func (pf *PNGFormat) Decode(reader fdmslice.Reader, filesize int64) (printable fdmslice.Printable, err error) {
	err = fmt.Errorf("png: layer images can not be sliced")
	return
}
