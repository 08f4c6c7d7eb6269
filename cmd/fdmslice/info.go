//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/pflag"

	"github.com/ezrec/fdmslice"
)

type InfoCommand struct {
	*pflag.FlagSet

	SizeSummary   bool
	ConfigSummary bool
	LayerDetail   bool

	out io.Writer
}

func NewInfoCommand() (info *InfoCommand) {
	flagSet := pflag.NewFlagSet("info", pflag.ContinueOnError)

	info = &InfoCommand{
		FlagSet: flagSet,
		out:     os.Stdout,
	}

	info.SetInterspersed(false)
	info.BoolVarP(&info.SizeSummary, "size", "s", true, "Show size summary")
	info.BoolVarP(&info.ConfigSummary, "config", "c", true, "Show summary of the slicing settings")
	info.BoolVarP(&info.LayerDetail, "layer", "l", false, "Show layer detail")

	return
}

func (info *InfoCommand) Filter(input fdmslice.Printable) (output fdmslice.Printable, err error) {
	prop := input.Properties()
	out := info.out

	if info.SizeSummary {
		fmt.Fprintf(out, "Layers: %v, %.3g mm high, %v\n",
			prop.Size.Layers, prop.Height(), prop.Bounds)
	}

	if info.ConfigSummary {
		cfg := &prop.Config
		fmt.Fprintf(out, "Nozzle: %v mm, layers %v mm", cfg.NozzleSize, prop.Size.LayerHeight)
		if cfg.InitialLayerHeight > 0 {
			fmt.Fprintf(out, " (first %v mm)", cfg.InitialLayerHeight)
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Shells: %v mm (%v inner), top/bottom %v mm (%v layers)\n",
			cfg.ShellThickness, cfg.InnerShells(), cfg.TopBottomThickness, cfg.SolidLayers())
		fmt.Fprintf(out, "Infill: %.0f%% %v at %v degrees", cfg.FillDensity*100, cfg.FillStyle, cfg.FillAngle)
		if cfg.AlternateFill {
			fmt.Fprintf(out, ", alternating")
		}
		fmt.Fprintln(out)

		keys := []string{}
		for k := range prop.Metadata {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		for _, k := range keys {
			fmt.Fprintf(out, "%v: %v\n", k, prop.Metadata[k])
		}
	}

	if info.LayerDetail {
		for n := 0; n < prop.Size.Layers; n++ {
			layer := input.Layer(n)
			var shells float64
			for _, shell := range layer.Perimeters() {
				shells += shell.Length()
			}
			fmt.Fprintf(out, "%d: @%.2f +%.2f, %d contours, %d shells (%.1f mm), %d strokes (%.1f mm)",
				n, layer.Z, layer.Height, layer.Outer.Len(), len(layer.Perimeters()), shells,
				layer.Infill.Len(), layer.Infill.Length())
			if layer.Solid {
				fmt.Fprintf(out, ", solid")
			}
			if !layer.Sane {
				fmt.Fprintf(out, ", not sane")
			}
			fmt.Fprintln(out)
		}
	}

	output = input

	return
}
