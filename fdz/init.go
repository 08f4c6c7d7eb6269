//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package fdz handles input and output of sliced layer archives (JSON
// toolpath geometry, and layer images, in a zip file)
package fdz

import (
	"github.com/ezrec/fdmslice"
)

func init() {
	newFormatter := func(suffix string) fdmslice.Formatter { return NewFDZFormatter(suffix) }

	fdmslice.RegisterFormatter(".fdz", newFormatter)
}
