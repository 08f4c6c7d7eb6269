//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package raster draws layer geometry into grayscale images
package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/vector"

	"github.com/ezrec/fdmslice"
	"github.com/ezrec/fdmslice/pathset"
)

const (
	DefaultResolution = 10.0 // Pixels per mm
	DefaultMargin     = 2    // Pixels around the print bounds
)

// Gray levels of the parts of a rendered layer
var (
	LevelOuter  = color.Gray{Y: 0xff}
	LevelInner  = color.Gray{Y: 0xc0}
	LevelInfill = color.Gray{Y: 0x80}
	LevelSolid  = color.Gray{Y: 0xa0}
)

// Rasterizer maps the XY plane of a print, in mm, to image pixels. Y grows
// up in the print, and down in the image.
type Rasterizer struct {
	Resolution float64 // Pixels per mm
	Rect       image.Rectangle

	minX, maxY float64
	margin     int
}

// NewRasterizer covers the XY extent of bounds
func NewRasterizer(bounds fdmslice.Volume, resolution float64) (r *Rasterizer) {
	if !(resolution > 0) {
		resolution = DefaultResolution
	}

	size := bounds.Size()
	width := int(math.Ceil(size[0]*resolution)) + 2*DefaultMargin
	height := int(math.Ceil(size[1]*resolution)) + 2*DefaultMargin

	r = &Rasterizer{
		Resolution: resolution,
		Rect:       image.Rect(0, 0, width, height),
		minX:       bounds.Min[0],
		maxY:       bounds.Max[1],
		margin:     DefaultMargin,
	}

	return
}

// Pixel returns the image position of the point (x, y), in mm
func (r *Rasterizer) Pixel(x, y float64) (px, py float32) {
	px = float32((x-r.minX)*r.Resolution) + float32(r.margin)
	py = float32((r.maxY-y)*r.Resolution) + float32(r.margin)
	return
}

func (r *Rasterizer) pixelOf(scale pathset.Scale, p pathset.Point) (px, py float32) {
	return r.Pixel(scale.Millimeters(float64(p.X)), scale.Millimeters(float64(p.Y)))
}

func (r *Rasterizer) newVector() *vector.Rasterizer {
	size := r.Rect.Size()
	return vector.NewRasterizer(size.X, size.Y)
}

// Fill draws the area enclosed by the closed contours of ps. Holes must
// be wound against their outline, as PathSet.Orient() does.
func (r *Rasterizer) Fill(dst draw.Image, ps pathset.PathSet, level color.Gray) {
	vr := r.newVector()

	for _, path := range ps.ClosedContours().Paths {
		x, y := r.pixelOf(ps.Scale, path[0])
		vr.MoveTo(x, y)
		for _, p := range path[1:] {
			x, y = r.pixelOf(ps.Scale, p)
			vr.LineTo(x, y)
		}
		vr.ClosePath()
	}

	vr.Draw(dst, r.Rect, image.NewUniform(level), image.Point{})
}

// Stroke draws every segment of ps as a line of the given width, in mm,
// with square caps
func (r *Rasterizer) Stroke(dst draw.Image, ps pathset.PathSet, width float64, level color.Gray) {
	vr := r.newVector()
	half := float32(width * r.Resolution / 2)

	ps.ForEachSegment(func(p0, p1 pathset.Point) {
		x0, y0 := r.pixelOf(ps.Scale, p0)
		x1, y1 := r.pixelOf(ps.Scale, p1)

		dx, dy := x1-x0, y1-y0
		length := float32(math.Hypot(float64(dx), float64(dy)))
		if length == 0 {
			dx, dy = 1, 0
		} else {
			dx, dy = dx/length, dy/length
		}

		// Along the segment, and to its left
		ax, ay := dx*half, dy*half
		nx, ny := -ay, ax

		vr.MoveTo(x0-ax+nx, y0-ay+ny)
		vr.LineTo(x0-ax-nx, y0-ay-ny)
		vr.LineTo(x1+ax-nx, y1+ay-ny)
		vr.LineTo(x1+ax+nx, y1+ay+ny)
		vr.ClosePath()
	})

	vr.Draw(dst, r.Rect, image.NewUniform(level), image.Point{})
}

// Section draws the area inside the outer perimeter of a layer
func (r *Rasterizer) Section(layer fdmslice.Layer) (gray *image.Gray) {
	gray = image.NewGray(r.Rect)
	if !layer.Outer.Empty() {
		r.Fill(gray, layer.Outer, LevelOuter)
	}
	return
}

// Toolpaths draws the extrusions of a layer at the nozzle width: infill
// first, then the inner perimeters, then the outer perimeter.
func (r *Rasterizer) Toolpaths(layer fdmslice.Layer, nozzle float64) (gray *image.Gray) {
	gray = image.NewGray(r.Rect)

	if !layer.Infill.Empty() {
		level := LevelInfill
		if layer.Solid {
			level = LevelSolid
		}
		r.Stroke(gray, layer.Infill, nozzle, level)
	}

	for n := len(layer.Inner) - 1; n >= 0; n-- {
		r.Stroke(gray, layer.Inner[n], nozzle, LevelInner)
	}

	if !layer.Outer.Empty() {
		r.Stroke(gray, layer.Outer, nozzle, LevelOuter)
	}

	return
}

// Scale resamples an image to fit within width x height, keeping its
// aspect ratio
func Scale(src image.Image, width, height int) (gray *image.Gray) {
	bounds := src.Bounds()
	sx := float64(width) / float64(bounds.Dx())
	sy := float64(height) / float64(bounds.Dy())
	ratio := math.Min(sx, sy)

	rect := image.Rect(0, 0,
		int(math.Max(1, math.Round(float64(bounds.Dx())*ratio))),
		int(math.Max(1, math.Round(float64(bounds.Dy())*ratio))))

	gray = image.NewGray(rect)
	draw.ApproxBiLinear.Scale(gray, rect, src, bounds, draw.Src, nil)

	return
}
