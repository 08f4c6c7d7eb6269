//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"fmt"
	"io"
	"strings"
)

const barWidth = 40

// barProgress draws a text progress bar
type barProgress struct {
	out  io.Writer
	last int
}

func newBarProgress(out io.Writer) *barProgress {
	return &barProgress{out: out, last: -1}
}

func (bp *barProgress) Show(percent float32) {
	filled := int(percent) * barWidth / 100
	if filled == bp.last {
		return
	}
	bp.last = filled

	fmt.Fprintf(bp.out, "\r[%s%s] %3.0f%%",
		strings.Repeat("#", filled), strings.Repeat(".", barWidth-filled), percent)
}

func (bp *barProgress) Stop() {
	fmt.Fprintln(bp.out)
	bp.last = -1
}
