//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package fdz

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"io"
	"sync"

	"github.com/spf13/pflag"

	"github.com/ezrec/fdmslice"
	"github.com/ezrec/fdmslice/pathset"
	"github.com/ezrec/fdmslice/raster"
)

var (
	ErrConfigMissing = errors.New("config.json not found in archive")
)

// Paths is a set of polygons, each a flat list of X, Y fixed-point units
type Paths [][]int64

func toPaths(ps pathset.PathSet) (paths Paths) {
	for _, path := range ps.Paths {
		flat := make([]int64, 0, len(path)*2)
		for _, p := range path {
			flat = append(flat, p.X, p.Y)
		}
		paths = append(paths, flat)
	}
	return
}

func (paths Paths) PathSet(scale pathset.Scale) (ps pathset.PathSet, err error) {
	ps = pathset.New(scale)
	for n, flat := range paths {
		if len(flat)%2 != 0 {
			err = fmt.Errorf("path %d: odd count of coordinates", n)
			return
		}
		path := make(pathset.Path, len(flat)/2)
		for i := range path {
			path[i] = pathset.Point{X: flat[i*2], Y: flat[i*2+1]}
		}
		ps.Paths = append(ps.Paths, path)
	}
	return
}

// FDZLayer is the summary of a layer, stored in config.json
type FDZLayer struct {
	Index  int
	Z      float64
	Height float64
	Solid  bool `json:",omitempty"`
	// Layers that did not slice cleanly
	Insane bool `json:",omitempty"`
}

// FDZGeometry is the toolpath geometry of a layer, in layer/%08d.json
type FDZGeometry struct {
	Outer  Paths
	Inner  []Paths `json:",omitempty"`
	Infill Paths   `json:",omitempty"`
}

type FDZConfig struct {
	Properties fdmslice.Properties
	Layers     []FDZLayer
}

type FDZ struct {
	fdmslice.Print
	Layers   []FDZLayer
	geometry []([]byte)
}

type FDZFormat struct {
	*pflag.FlagSet

	Images     bool    // Include a PNG image of each layer
	Resolution float64 // Pixels per mm of the images
}

func NewFDZFormatter(suffix string) (sf *FDZFormat) {
	flagSet := pflag.NewFlagSet(suffix, pflag.ContinueOnError)

	sf = &FDZFormat{
		FlagSet: flagSet,
	}

	sf.SetInterspersed(false)

	sf.BoolVarP(&sf.Images, "images", "i", true, "Include a toolpath image of each layer")
	sf.Float64VarP(&sf.Resolution, "resolution", "r", raster.DefaultResolution, "Pixels per mm of the layer images")

	return
}

func geometryName(index int) string {
	return fmt.Sprintf("layer/%08d.json", index)
}

func sliceName(index int) string {
	return fmt.Sprintf("slice/%08d.png", index)
}

func (sf *FDZFormat) Encode(writer fdmslice.Writer, printable fdmslice.Printable) (err error) {
	archive := zip.NewWriter(writer)
	defer func() {
		cerr := archive.Close()
		if err == nil {
			err = cerr
		}
	}()

	prop := printable.Properties()

	config := FDZConfig{
		Properties: prop,
		Layers:     make([]FDZLayer, prop.Size.Layers),
	}

	geometry := make([]([]byte), prop.Size.Layers)
	images := make([]([]byte), prop.Size.Layers)

	var rast *raster.Rasterizer
	if sf.Images {
		rast = raster.NewRasterizer(prop.Bounds, sf.Resolution)
	}

	var errMutex sync.Mutex
	setErr := func(lerr error) {
		errMutex.Lock()
		if err == nil {
			err = lerr
		}
		errMutex.Unlock()
	}

	// Render every layer, then write them in order
	fdmslice.WithEachLayer(printable, func(p fdmslice.Printable, n int) {
		layer := p.Layer(n)

		config.Layers[n] = FDZLayer{
			Index:  layer.Index,
			Z:      layer.Z,
			Height: layer.Height,
			Solid:  layer.Solid,
			Insane: !layer.Sane,
		}

		geom := FDZGeometry{
			Outer:  toPaths(layer.Outer),
			Infill: toPaths(layer.Infill),
		}
		for _, inner := range layer.Inner {
			geom.Inner = append(geom.Inner, toPaths(inner))
		}

		data, lerr := json.Marshal(&geom)
		if lerr != nil {
			setErr(fmt.Errorf("layer %d: %w", n, lerr))
			return
		}
		geometry[n] = data

		if rast != nil {
			var buff bytes.Buffer
			lerr = png.Encode(&buff, rast.Toolpaths(layer, prop.Config.NozzleSize))
			if lerr != nil {
				setErr(fmt.Errorf("layer %d: %w", n, lerr))
				return
			}
			images[n] = buff.Bytes()
		}
	})
	if err != nil {
		return
	}

	for n := range geometry {
		var fw io.Writer
		fw, err = archive.Create(geometryName(n))
		if err != nil {
			return
		}

		_, err = fw.Write(geometry[n])
		if err != nil {
			return
		}

		if images[n] == nil {
			continue
		}

		fw, err = archive.Create(sliceName(n))
		if err != nil {
			return
		}

		_, err = fw.Write(images[n])
		if err != nil {
			return
		}
	}

	// Create the config file
	fileConfig, err := archive.Create("config.json")
	if err != nil {
		return
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return
	}

	_, err = fileConfig.Write(append(data, '\n'))
	return
}

func readFile(file *zip.File) (data []byte, err error) {
	reader, err := file.Open()
	if err != nil {
		return
	}
	defer func() { reader.Close() }()

	data, err = io.ReadAll(reader)
	return
}

func (sf *FDZFormat) Decode(reader fdmslice.Reader, filesize int64) (printable fdmslice.Printable, err error) {
	archive, err := zip.NewReader(reader, filesize)
	if err != nil {
		return
	}

	fileMap := make(map[string](*zip.File))

	for _, file := range archive.File {
		fileMap[file.Name] = file
	}

	cfg, found := fileMap["config.json"]
	if !found {
		err = ErrConfigMissing
		return
	}

	data, err := readFile(cfg)
	if err != nil {
		return
	}

	var config FDZConfig

	err = json.Unmarshal(data, &config)
	if err != nil {
		err = fmt.Errorf("config.json: %w", err)
		return
	}

	if len(config.Layers) != config.Properties.Size.Layers {
		err = fmt.Errorf("config.json: expected %v layers, found %v layers", config.Properties.Size.Layers, len(config.Layers))
		return
	}

	err = config.Properties.Config.Validate()
	if err != nil {
		err = fmt.Errorf("config.json: %w", err)
		return
	}

	// Collect the layer files
	geometry := make([]([]byte), config.Properties.Size.Layers)
	for n := range geometry {
		name := geometryName(n)
		file, ok := fileMap[name]
		if !ok {
			err = fmt.Errorf("%s: Missing from archive", name)
			return
		}

		geometry[n], err = readFile(file)
		if err != nil {
			return
		}
	}

	fdz := &FDZ{
		Print:    *fdmslice.NewPrint(config.Properties),
		Layers:   config.Layers,
		geometry: geometry,
	}

	printable = fdz

	return
}

// Layer decodes the geometry of a layer. Layers that fail to decode are
// returned with Sane set to false.
func (fdz *FDZ) Layer(index int) (layer fdmslice.Layer) {
	prop := fdz.Properties()
	scale := prop.Config.Scale

	info := fdz.Layers[index]
	layer = fdmslice.Layer{
		Index:  info.Index,
		Z:      info.Z,
		Height: info.Height,
		Solid:  info.Solid,
		Outer:  pathset.New(scale),
		Infill: pathset.New(scale),
	}

	var geom FDZGeometry
	err := json.Unmarshal(fdz.geometry[index], &geom)
	if err != nil {
		return
	}

	layer.Outer, err = geom.Outer.PathSet(scale)
	if err != nil {
		return
	}

	for _, paths := range geom.Inner {
		var inner pathset.PathSet
		inner, err = paths.PathSet(scale)
		if err != nil {
			return
		}
		layer.Inner = append(layer.Inner, inner)
	}

	layer.Infill, err = geom.Infill.PathSet(scale)
	if err != nil {
		return
	}

	layer.Sane = !info.Insane

	return
}
