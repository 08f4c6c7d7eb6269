//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package pathset

import (
	"math"
)

// DefaultScale is one unit per micron
const DefaultScale = Scale(1000.0)

// Scale relates fixed-point polygon units to millimeters, in units per mm.
type Scale float64

// Units converts millimeters to the nearest fixed-point unit
func (s Scale) Units(mm float64) (units int64) {
	units = int64(math.Round(mm * float64(s)))
	return
}

// UnitsF converts millimeters to (unrounded) units
func (s Scale) UnitsF(mm float64) float64 {
	return mm * float64(s)
}

// Millimeters converts fixed-point units to millimeters
func (s Scale) Millimeters(units float64) float64 {
	return units / float64(s)
}

// Point returns the fixed-point point nearest to (x, y), given in mm
func (s Scale) Point(x, y float64) Point {
	return Point{X: s.Units(x), Y: s.Units(y)}
}

// Valid is true for finite, positive scales
func (s Scale) Valid() bool {
	return s > 0 && !math.IsInf(float64(s), 0) && !math.IsNaN(float64(s))
}
