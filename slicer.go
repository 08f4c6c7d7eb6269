//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package fdmslice slices triangle meshes into perimeters and infill for
// fused filament 3D printers
package fdmslice

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ezrec/fdmslice/mesh"
	"github.com/ezrec/fdmslice/pathset"
	"github.com/ezrec/fdmslice/planeslice"
)

var (
	ErrMeshEmpty   = mesh.ErrEmpty
	ErrMeshInvalid = mesh.ErrInvalid
)

// Slicer turns meshes into layers. A Slicer holds no state besides its
// configuration, and may be used from several goroutines.
type Slicer struct {
	config Config
	logger *zap.Logger
}

type Option func(s *Slicer)

// WithLogger sets the logger used to report skipped layers and timing
func WithLogger(logger *zap.Logger) Option {
	return func(s *Slicer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSlicer validates the configuration, and creates a Slicer
func NewSlicer(cfg Config, opts ...Option) (s *Slicer, err error) {
	err = cfg.Validate()
	if err != nil {
		return
	}

	s = &Slicer{
		config: cfg,
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return
}

// Config returns the configuration of the slicer
func (s *Slicer) Config() Config {
	return s.config
}

// Heights returns the Z of the bottom of every layer of the mesh, in mm.
// The first layer is InitialLayerHeight tall, the others LayerHeight.
func (s *Slicer) Heights(m *mesh.Mesh) (heights []float64) {
	if m.IsEmpty() {
		return
	}

	min, max := m.Bounds()
	bottom, top := min[2], max[2]
	if !(top > bottom) {
		return
	}

	cfg := &s.config
	first := cfg.FirstLayerHeight()

	count := 1
	if rest := top - bottom - first; rest > 0 {
		count += int(math.Ceil(rest/cfg.LayerHeight - 1e-9))
	}

	heights = make([]float64, count)
	heights[0] = bottom
	for n := 1; n < count; n++ {
		heights[n] = bottom + first + float64(n-1)*cfg.LayerHeight
	}

	return
}

// Layer slices a single layer of the mesh. The mesh should be prepared
// with mesh.Prepare() first.
func (s *Slicer) Layer(m *mesh.Mesh, index int) (layer Layer) {
	heights := s.Heights(m)
	if index < 0 || index >= len(heights) {
		layer = Layer{
			Index:  index,
			Outer:  pathset.New(s.config.Scale),
			Infill: pathset.New(s.config.Scale),
		}
		return
	}

	_, max := m.Bounds()
	layer = s.layer(m, index, heights, max[2])
	return
}

// layer slices the layer at heights[index], of a mesh whose top is at top
func (s *Slicer) layer(m *mesh.Mesh, index int, heights []float64, top float64) (layer Layer) {
	cfg := &s.config
	scale := cfg.Scale

	layer = Layer{
		Index:  index,
		Z:      heights[index],
		Height: cfg.LayerHeight,
		Outer:  pathset.New(scale),
		Infill: pathset.New(scale),
	}
	if index == 0 {
		layer.Height = cfg.FirstLayerHeight()
	}

	// Sample at the middle of the layer, or of what remains of the mesh
	z := layer.Z + math.Min(layer.Height, top-layer.Z)/2

	contours, sane := planeslice.Slice(m, z, scale)
	layer.Sane = sane
	if !sane {
		return
	}

	closed := contours.Close()
	layer.Outer = closed.Inset(cfg.NozzleSize / 2)

	region := layer.Outer
	for n := 1; n <= cfg.InnerShells(); n++ {
		shell := closed.Inset(cfg.NozzleSize/2 + float64(n)*cfg.NozzleSize)
		if shell.Empty() {
			break
		}
		layer.Inner = append(layer.Inner, shell)
		region = shell
	}

	if region.Empty() {
		return
	}

	solid := cfg.SolidLayers()
	layer.Solid = index < solid || index >= len(heights)-solid
	layer.Infill = cfg.Infill(region, index, layer.Solid)

	return
}

// Slice validates and prepares the mesh, then slices every layer on a pool
// of workers. Layers that are not sane are logged and left out of the
// result. Cancelling ctx stops the slicing between layers.
func (s *Slicer) Slice(ctx context.Context, m *mesh.Mesh) (sliced *Sliced, err error) {
	err = m.Validate()
	if err != nil {
		err = fmt.Errorf("slice: %w", err)
		return
	}

	prepared := m.Prepare(mesh.DefaultWeldTolerance)
	if prepared.TriangleCount() == 0 {
		err = fmt.Errorf("slice: %w: all triangles are degenerate", ErrMeshEmpty)
		return
	}

	heights := s.Heights(prepared)
	if len(heights) == 0 {
		err = fmt.Errorf("slice: %w: mesh has no height", ErrMeshEmpty)
		return
	}

	min, max := prepared.Bounds()

	workers := s.config.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	started := time.Now()
	s.logger.Info("slicing",
		zap.Int("triangles", prepared.TriangleCount()),
		zap.Int("layers", len(heights)),
		zap.Int("workers", workers))

	slots := make([]Layer, len(heights))
	done := make([]bool, len(heights))

	prog := NewProgress(len(heights))

	indices := make(chan int)
	var wg sync.WaitGroup
	for n := 0; n < workers; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range indices {
				if ctx.Err() != nil {
					continue
				}
				when := time.Now()
				slots[index] = s.layer(prepared, index, heights, max[2])
				done[index] = true
				s.logger.Debug("layer",
					zap.Int("index", index),
					zap.Float64("z", heights[index]),
					zap.Duration("elapsed", time.Since(when)))
				prog.Indicate()
			}
		}()
	}

feed:
	for index := range heights {
		select {
		case <-ctx.Done():
			break feed
		case indices <- index:
		}
	}
	close(indices)

	wg.Wait()
	prog.Close()

	err = ctx.Err()
	if err != nil {
		return
	}

	layers := make([]Layer, 0, len(slots))
	for index, layer := range slots {
		if !done[index] {
			continue
		}
		if !layer.Sane {
			s.logger.Warn("skipping layer, contours do not close",
				zap.Int("index", index),
				zap.Float64("z", layer.Z))
			continue
		}
		layers = append(layers, layer)
	}

	prop := Properties{
		Size: Size{
			LayerHeight: s.config.LayerHeight,
		},
		Bounds: Volume{Min: min, Max: max},
		Config: s.config,
	}
	prop.SetMetadata("triangles", prepared.TriangleCount())
	prop.SetMetadata("skipped", len(heights)-len(layers))

	sliced = NewSliced(prop, layers)

	s.logger.Info("sliced",
		zap.Int("layers", len(layers)),
		zap.Int("skipped", len(heights)-len(layers)),
		zap.Duration("elapsed", time.Since(started)))

	return
}

// MeshPrintable slices layers of a mesh on demand. Layers that are not
// sane are returned with Sane set to false.
type MeshPrintable struct {
	slicer  *Slicer
	mesh    *mesh.Mesh
	heights []float64
	prop    Properties
}

// NewMeshPrintable validates and prepares the mesh for slicing by s
func NewMeshPrintable(s *Slicer, m *mesh.Mesh) (mp *MeshPrintable, err error) {
	err = m.Validate()
	if err != nil {
		err = fmt.Errorf("slice: %w", err)
		return
	}

	prepared := m.Prepare(mesh.DefaultWeldTolerance)
	heights := s.Heights(prepared)
	if len(heights) == 0 {
		err = fmt.Errorf("slice: %w: mesh has no height", ErrMeshEmpty)
		return
	}

	min, max := prepared.Bounds()

	mp = &MeshPrintable{
		slicer:  s,
		mesh:    prepared,
		heights: heights,
		prop: Properties{
			Size: Size{
				Layers:      len(heights),
				LayerHeight: s.config.LayerHeight,
			},
			Bounds: Volume{Min: min, Max: max},
			Config: s.config,
		},
	}
	mp.prop.SetMetadata("triangles", prepared.TriangleCount())

	return
}

func (mp *MeshPrintable) Properties() (prop Properties) {
	prop = mp.prop
	return
}

// Mesh returns the prepared mesh being sliced
func (mp *MeshPrintable) Mesh() *mesh.Mesh {
	return mp.mesh
}

func (mp *MeshPrintable) Layer(index int) (layer Layer) {
	if index < 0 || index >= len(mp.heights) {
		scale := mp.prop.Config.Scale
		layer = Layer{
			Index:  index,
			Outer:  pathset.New(scale),
			Infill: pathset.New(scale),
		}
		return
	}

	layer = mp.slicer.layer(mp.mesh, index, mp.heights, mp.prop.Bounds.Max[2])
	return
}
