//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package fdmslice

import (
	"fmt"
	"math"

	"github.com/ezrec/fdmslice/infill"
	"github.com/ezrec/fdmslice/pathset"
)

type ErrConfigInvalid string

func (e ErrConfigInvalid) Error() string {
	return fmt.Sprintf("config: Parameter '%s' invalid", string(e))
}

// Config holds the slicing parameters. All lengths are in mm.
type Config struct {
	NozzleSize  float64 `json:"nozzle_size" yaml:"nozzle_size"`
	LayerHeight float64 `json:"layer_height" yaml:"layer_height"`
	// Height of the first layer; 0 for LayerHeight
	InitialLayerHeight float64 `json:"initial_layer_height,omitempty" yaml:"initial_layer_height,omitempty"`
	ShellThickness     float64 `json:"shell_thickness" yaml:"shell_thickness"`
	TopBottomThickness float64 `json:"top_bottom_thickness" yaml:"top_bottom_thickness"`

	FillDensity float64      `json:"fill_density" yaml:"fill_density"` // 0.0 .. 1.0
	FillAngle   float64      `json:"fill_angle" yaml:"fill_angle"`     // Degrees from the X axis
	FillStyle   infill.Style `json:"fill_style" yaml:"fill_style"`     // "raster" or "pen"
	// Rotate the fill by 90 degrees on odd layers
	AlternateFill bool `json:"alternate_fill" yaml:"alternate_fill"`

	Scale   pathset.Scale `json:"scale" yaml:"scale"`                         // Polygon units per mm
	Workers int           `json:"workers,omitempty" yaml:"workers,omitempty"` // 0 for GOMAXPROCS
}

// DefaultConfig is a 0.4mm nozzle, 0.2mm layer profile
func DefaultConfig() Config {
	return Config{
		NozzleSize:         0.4,
		LayerHeight:        0.2,
		ShellThickness:     0.8,
		TopBottomThickness: 0.8,
		FillDensity:        0.2,
		FillAngle:          45,
		FillStyle:          infill.StyleRaster,
		AlternateFill:      true,
		Scale:              pathset.DefaultScale,
	}
}

// Validate checks the configuration, returning ErrConfigInvalid naming the
// first bad parameter.
func (cfg *Config) Validate() (err error) {
	positive := func(f float64) bool {
		return f > 0 && !math.IsInf(f, 0)
	}

	nonNegative := func(f float64) bool {
		return f >= 0 && !math.IsInf(f, 0)
	}

	switch {
	case !positive(cfg.NozzleSize):
		err = ErrConfigInvalid("NozzleSize")
	case !positive(cfg.LayerHeight):
		err = ErrConfigInvalid("LayerHeight")
	case !nonNegative(cfg.InitialLayerHeight):
		err = ErrConfigInvalid("InitialLayerHeight")
	case !positive(cfg.ShellThickness):
		err = ErrConfigInvalid("ShellThickness")
	case !nonNegative(cfg.TopBottomThickness):
		err = ErrConfigInvalid("TopBottomThickness")
	case !(cfg.FillDensity >= 0 && cfg.FillDensity <= 1):
		err = ErrConfigInvalid("FillDensity")
	case math.IsNaN(cfg.FillAngle) || math.IsInf(cfg.FillAngle, 0):
		err = ErrConfigInvalid("FillAngle")
	case !cfg.Scale.Valid():
		err = ErrConfigInvalid("Scale")
	}
	if err != nil {
		return
	}

	if _, serr := cfg.FillStyle.New(); serr != nil {
		err = ErrConfigInvalid("FillStyle")
		return
	}

	return
}

// FirstLayerHeight is the height of layer 0
func (cfg *Config) FirstLayerHeight() float64 {
	if cfg.InitialLayerHeight > 0 {
		return cfg.InitialLayerHeight
	}
	return cfg.LayerHeight
}

// SolidLayers is the number of solid layers at the top and the bottom
func (cfg *Config) SolidLayers() int {
	if cfg.TopBottomThickness <= 0 {
		return 0
	}
	return int(math.Ceil(cfg.TopBottomThickness/cfg.LayerHeight - 1e-9))
}

// InnerShells is the number of perimeters inside the outer shell
func (cfg *Config) InnerShells() int {
	return int(math.Floor(cfg.ShellThickness/cfg.NozzleSize + 1e-9))
}

// Infill fills region with the strokes of layer index. Solid layers are
// filled at full density.
func (cfg *Config) Infill(region pathset.PathSet, index int, solid bool) pathset.PathSet {
	density := cfg.FillDensity
	if solid {
		density = 1
	}

	angle := cfg.FillAngle
	if cfg.AlternateFill && index%2 == 1 {
		angle += 90
	}

	style, _ := cfg.FillStyle.New()
	return infill.SlantedInfillAt(region, cfg.NozzleSize, density, angle, style)
}
