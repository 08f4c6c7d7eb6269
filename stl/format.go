//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package stl

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ezrec/fdmslice"
	"github.com/ezrec/fdmslice/infill"
	"github.com/ezrec/fdmslice/internal/profile"
	"github.com/ezrec/fdmslice/mesh"
)

const (
	defaultLayerCache = 16
)

type meshed interface {
	Mesh() *mesh.Mesh
}

type STLFormat struct {
	*pflag.FlagSet

	Profile      string
	Lazy         bool
	ElephantFoot float64

	config    fdmslice.Config
	fillStyle string
}

func NewSTLFormatter(suffix string) (sf *STLFormat) {
	flagSet := pflag.NewFlagSet(suffix, pflag.ContinueOnError)
	flagSet.SetInterspersed(false)

	sf = &STLFormat{
		FlagSet: flagSet,
		config:  fdmslice.DefaultConfig(),
	}

	cfg := &sf.config

	sf.StringVarP(&sf.Profile, "profile", "p", "", "YAML slicing profile; flags override its settings")
	sf.BoolVar(&sf.Lazy, "lazy", false, "Slice layers on demand, instead of all at once")
	sf.Float64Var(&sf.ElephantFoot, "elephant-foot", 0.0, "Inset of the first layer perimeters, in mm")

	sf.Float64VarP(&cfg.NozzleSize, "nozzle", "n", cfg.NozzleSize, "Nozzle diameter, in mm")
	sf.Float64VarP(&cfg.LayerHeight, "layer-height", "l", cfg.LayerHeight, "Layer height, in mm")
	sf.Float64Var(&cfg.InitialLayerHeight, "initial-layer-height", cfg.InitialLayerHeight, "First layer height, in mm (0 for the layer height)")
	sf.Float64VarP(&cfg.ShellThickness, "shell", "s", cfg.ShellThickness, "Shell thickness, in mm")
	sf.Float64VarP(&cfg.TopBottomThickness, "top-bottom", "t", cfg.TopBottomThickness, "Top and bottom solid skin thickness, in mm")
	sf.Float64VarP(&cfg.FillDensity, "density", "d", cfg.FillDensity, "Infill density, 0.0 to 1.0")
	sf.Float64VarP(&cfg.FillAngle, "fill-angle", "a", cfg.FillAngle, "Infill angle, in degrees from the X axis")
	sf.StringVar(&sf.fillStyle, "fill-style", string(cfg.FillStyle), "Infill stroke order: 'raster' or 'pen'")
	sf.BoolVar(&cfg.AlternateFill, "alternate", cfg.AlternateFill, "Rotate the infill by 90 degrees on odd layers")
	sf.IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "Slicing goroutines (0 for one per CPU)")

	return
}

// Config returns the slicing configuration: the defaults, overridden by the
// profile, overridden by the flags set on the command line.
func (sf *STLFormat) Config() (cfg fdmslice.Config, elephantFoot float64, err error) {
	prof := profile.Default()
	if sf.Profile != "" {
		prof, err = profile.Load(sf.Profile)
		if err != nil {
			return
		}
	}

	cfg = prof.Slicing
	elephantFoot = prof.ElephantFoot

	sf.Visit(func(flag *pflag.Flag) {
		switch flag.Name {
		case "elephant-foot":
			elephantFoot = sf.ElephantFoot
		case "nozzle":
			cfg.NozzleSize = sf.config.NozzleSize
		case "layer-height":
			cfg.LayerHeight = sf.config.LayerHeight
		case "initial-layer-height":
			cfg.InitialLayerHeight = sf.config.InitialLayerHeight
		case "shell":
			cfg.ShellThickness = sf.config.ShellThickness
		case "top-bottom":
			cfg.TopBottomThickness = sf.config.TopBottomThickness
		case "density":
			cfg.FillDensity = sf.config.FillDensity
		case "fill-angle":
			cfg.FillAngle = sf.config.FillAngle
		case "fill-style":
			cfg.FillStyle = infill.Style(strings.ToLower(sf.fillStyle))
		case "alternate":
			cfg.AlternateFill = sf.config.AlternateFill
		case "workers":
			cfg.Workers = sf.config.Workers
		}
	})

	err = cfg.Validate()
	return
}

// Encode writes the mesh of a printable read from an STL file
func (sf *STLFormat) Encode(writer fdmslice.Writer, printable fdmslice.Printable) (err error) {
	for {
		switch p := printable.(type) {
		case meshed:
			err = Encode(writer, p.Mesh(), "fdmslice")
			return
		case *fdmslice.CachedPrintable:
			printable = p.Printable
		case *fdmslice.CompensatedPrintable:
			printable = p.Printable
		default:
			err = fdmslice.ErrFormatReadOnly(".stl")
			return
		}
	}
}

// Decode reads an STL mesh, and slices it
func (sf *STLFormat) Decode(reader fdmslice.Reader, filesize int64) (printable fdmslice.Printable, err error) {
	cfg, elephantFoot, err := sf.Config()
	if err != nil {
		return
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return
	}

	m, err := Decode(data)
	if err != nil {
		return
	}

	slicer, err := fdmslice.NewSlicer(cfg, fdmslice.WithLogger(zap.L()))
	if err != nil {
		return
	}

	if sf.Lazy {
		var mp *fdmslice.MeshPrintable
		mp, err = fdmslice.NewMeshPrintable(slicer, m)
		if err != nil {
			return
		}
		printable = fdmslice.NewCachedPrintable(mp, defaultLayerCache)
	} else {
		var sliced *fdmslice.Sliced
		sliced, err = slicer.Slice(context.Background(), m)
		if err != nil {
			return
		}
		if sliced.Properties().Size.Layers == 0 {
			err = fmt.Errorf("no printable layers in %d triangles", m.TriangleCount())
			return
		}
		printable = sliced
	}

	if elephantFoot != 0 {
		cp := fdmslice.NewCompensatedPrintable(printable)
		cp.Amount = elephantFoot
		printable = cp
	}

	return
}
