//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package stl

import (
	"github.com/ezrec/fdmslice"
)

func init() {
	newFormatter := func(suffix string) fdmslice.Formatter { return NewSTLFormatter(suffix) }

	fdmslice.RegisterFormatter(".stl", newFormatter)
}
