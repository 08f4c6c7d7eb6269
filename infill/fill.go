//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package infill

import (
	"fmt"
	"math"
	"sort"

	"github.com/ezrec/fdmslice/pathset"
)

// Segment is a single fill stroke
type Segment struct {
	A, B Vec
	Row  int // Scan row that produced the stroke
}

// FillStyle collects fill strokes, and decides their final order
type FillStyle interface {
	AddSegment(row int, a, b Vec)
	Segments() []Segment
}

// RasterFill emits strokes in the order they were found
type RasterFill struct {
	segments []Segment
}

func (rf *RasterFill) AddSegment(row int, a, b Vec) {
	rf.segments = append(rf.segments, Segment{A: a, B: b, Row: row})
}

func (rf *RasterFill) Segments() []Segment {
	return rf.segments
}

// PenFill orders strokes by row, alternating the stroke direction on
// every other row to reduce travel between strokes.
type PenFill struct {
	rows map[int][]Segment
}

func (pf *PenFill) AddSegment(row int, a, b Vec) {
	if pf.rows == nil {
		pf.rows = make(map[int][]Segment)
	}
	pf.rows[row] = append(pf.rows[row], Segment{A: a, B: b, Row: row})
}

func (pf *PenFill) Segments() (segments []Segment) {
	keys := make([]int, 0, len(pf.rows))
	for row := range pf.rows {
		keys = append(keys, row)
	}
	sort.Ints(keys)

	for _, row := range keys {
		bucket := pf.rows[row]
		if row%2 == 0 {
			segments = append(segments, bucket...)
			continue
		}
		for n := len(bucket) - 1; n >= 0; n-- {
			seg := bucket[n]
			seg.A, seg.B = seg.B, seg.A
			segments = append(segments, seg)
		}
	}

	return
}

// Style names a FillStyle
type Style string

const (
	StyleRaster = Style("raster")
	StylePen    = Style("pen")
)

// ErrStyleUnknown is returned for an unrecognized fill style name
type ErrStyleUnknown string

func (e ErrStyleUnknown) Error() string {
	return fmt.Sprintf("unknown fill style %q", string(e))
}

// New creates an empty FillStyle of the named kind
func (style Style) New() (fs FillStyle, err error) {
	switch style {
	case StyleRaster, "":
		fs = &RasterFill{}
	case StylePen:
		fs = &PenFill{}
	default:
		err = ErrStyleUnknown(style)
	}
	return
}

// PolyFill scans ps with parallel lines spacing units apart, at angle
// degrees from the X axis, and passes every stroke inside the polygons to
// style. Strokes are found with the even-odd rule.
//
// Rows are laid out across the bounds in the direction normal to the scan
// lines, centered on the bounds, so that rows*spacing covers the full extent
// of the bounds.
func PolyFill(ps pathset.PathSet, bounds pathset.Bounds, spacing float64, angle float64, style FillStyle) (rows int) {
	if bounds.Empty() || !(spacing > 0) || math.IsInf(spacing, 0) {
		return
	}

	rad := angle * math.Pi / 180
	dir := Vec{X: math.Cos(rad), Y: math.Sin(rad)}
	normal := Vec{X: -dir.Y, Y: dir.X}

	corners := []Vec{
		bounds.Min,
		{X: bounds.Max.X, Y: bounds.Min.Y},
		bounds.Max,
		{X: bounds.Min.X, Y: bounds.Max.Y},
	}

	nMin, nMax := math.Inf(1), math.Inf(-1)
	dMin, dMax := math.Inf(1), math.Inf(-1)
	for _, c := range corners {
		n := c.Dot(normal)
		d := c.Dot(dir)
		nMin, nMax = math.Min(nMin, n), math.Max(nMax, n)
		dMin, dMax = math.Min(dMin, d), math.Max(dMax, d)
	}

	extent := nMax - nMin
	if extent <= 0 {
		return
	}

	// Scan lines overhang the bounds by a unit on each end
	dMin--
	dMax++

	rows = int(math.Ceil(extent / spacing))
	start := nMin + (extent-float64(rows-1)*spacing)/2
	closed := ps.Close()

	for row := 0; row < rows; row++ {
		base := normal.Mul(start + float64(row)*spacing)
		a := base.Add(dir.Mul(dMin))
		b := base.Add(dir.Mul(dMax))

		hits := IntersectLine(closed, a, b)
		for n := 0; n+1 < len(hits); n += 2 {
			pa, pb := hits[n].Point, hits[n+1].Point
			if pb.Sub(pa).Length() < 1 {
				continue
			}
			style.AddSegment(row, pa, pb)
		}
	}

	return
}

// Spacing is the distance between fill lines of width nozzle that covers
// density of the filled area.
//
// A density of zero or less has an infinite spacing, and a density of one
// or more is solid.
func Spacing(nozzle, density float64) float64 {
	switch {
	case density <= 0:
		return math.Inf(1)
	case density >= 1:
		return nozzle
	}

	n2 := nozzle * nozzle
	return nozzle/density + math.Sqrt((n2-density*n2)/(density*density))
}

// SlantedInfill fills ps at 45 degrees, with a spacing from Spacing()
func SlantedInfill(ps pathset.PathSet, nozzle, density float64, style FillStyle) pathset.PathSet {
	return SlantedInfillAt(ps, nozzle, density, 45, style)
}

// SlantedInfillAt fills ps at the given angle, with a spacing from
// Spacing(). The strokes are returned as two point paths, in the order
// decided by style. A nil style is a RasterFill.
func SlantedInfillAt(ps pathset.PathSet, nozzle, density, angle float64, style FillStyle) (out pathset.PathSet) {
	out = pathset.New(ps.Scale)

	spacing := Spacing(nozzle, density)
	if math.IsInf(spacing, 0) || !(spacing > 0) {
		return
	}

	if style == nil {
		style = &RasterFill{}
	}

	PolyFill(ps, ps.Bounds(), ps.Scale.UnitsF(spacing), angle, style)

	out = ToPathSet(style.Segments(), ps.Scale)
	return
}

// ToPathSet converts strokes into a set of two point paths
func ToPathSet(segments []Segment, scale pathset.Scale) (out pathset.PathSet) {
	out = pathset.New(scale)
	for _, seg := range segments {
		out.Paths = append(out.Paths, pathset.Path{seg.A.Point(), seg.B.Point()})
	}
	return
}
