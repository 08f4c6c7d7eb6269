//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package raster

import (
	"github.com/ezrec/fdmslice"
)

func init() {
	newFormatter := func(suffix string) fdmslice.Formatter { return NewPNGFormatter(suffix) }

	fdmslice.RegisterFormatter(".png", newFormatter)
}
