//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package pathset

import (
	clipper "github.com/ctessum/go.clipper"
)

// ArcTolerance is the maximum deviation, in units, of offset arcs
const ArcTolerance = 2.0

// Inset moves every boundary of the closed contours of the set inward by
// delta mm. A negative delta grows the contours.
func (ps PathSet) Inset(delta float64) PathSet {
	return ps.Offset(-delta)
}

// Offset moves every boundary of the closed contours of the set outward by
// delta mm. A negative delta shrinks the contours; contours that collapse
// are removed.
func (ps PathSet) Offset(delta float64) (out PathSet) {
	out = PathSet{Scale: ps.Scale}

	closed := ps.Close().ClosedContours().Orient()
	if delta == 0 {
		out = closed
		return
	}

	var paths clipper.Paths
	for _, path := range closed.Paths {
		if len(path) < 4 {
			continue
		}
		paths = append(paths, toClipperPath(path))
	}

	if len(paths) == 0 {
		return
	}

	solution := offsetPaths(paths, ps.Scale.UnitsF(delta))

	for _, cp := range solution {
		if len(cp) < 3 {
			continue
		}
		path := make(Path, 0, len(cp)+1)
		for _, ip := range cp {
			path = append(path, Point{X: int64(ip.X), Y: int64(ip.Y)})
		}
		out.Paths = append(out.Paths, path)
	}

	out = out.Close().Orient()
	return
}

// offsetPaths runs the clipper offset. Clipper panics on some degenerate
// input; that is reported as an empty solution.
func offsetPaths(paths clipper.Paths, delta float64) (solution clipper.Paths) {
	defer func() {
		if r := recover(); r != nil {
			solution = nil
		}
	}()

	co := clipper.NewClipperOffset()
	co.ArcTolerance = ArcTolerance
	co.AddPaths(paths, clipper.JtSquare, clipper.EtClosedPolygon)

	solution = co.Execute(delta)
	return
}
