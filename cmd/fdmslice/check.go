//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"fmt"
	"sort"
	"sync"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ezrec/fdmslice"
	"github.com/ezrec/fdmslice/internal/logger"
)

type CheckCommand struct {
	*pflag.FlagSet

	Machine string
	Sane    bool
}

func NewCheckCommand() (cmd *CheckCommand) {
	flagSet := pflag.NewFlagSet("check", pflag.ContinueOnError)
	flagSet.SetInterspersed(false)

	cmd = &CheckCommand{
		FlagSet: flagSet,
	}

	cmd.StringVarP(&cmd.Machine, "machine", "M", "", "Check the print fits on the bed of the machine")
	cmd.BoolVarP(&cmd.Sane, "sane", "s", true, "Fail on layers whose contours do not close")

	return
}

// problems lists what is wrong with the layers of a printable
func (cmd *CheckCommand) problems(input fdmslice.Printable) (list []string) {
	prop := input.Properties()

	var mutex sync.Mutex
	fdmslice.WithEachLayer(input, func(p fdmslice.Printable, n int) {
		layer := p.Layer(n)

		var problem string
		switch {
		case cmd.Sane && !layer.Sane:
			problem = fmt.Sprintf("layer %d: contours at %.2f mm do not close", n, layer.Z)
		case !(layer.Height > 0):
			problem = fmt.Sprintf("layer %d: height of %.2f mm", n, layer.Height)
		case n > 0:
			prev := p.Layer(n - 1)
			if layer.Z < prev.Top()-1e-6 {
				problem = fmt.Sprintf("layer %d: Z of %.2f mm is below the top of the previous layer at %.2f mm", n, layer.Z, prev.Top())
			}
		}

		if problem != "" {
			mutex.Lock()
			list = append(list, problem)
			mutex.Unlock()
		}
	})

	sort.Strings(list)

	if cmd.Machine != "" {
		machine := fdmslice.Machines[cmd.Machine]
		if !machine.Fits(prop.Bounds) {
			list = append(list, fmt.Sprintf("%v does not fit the %v x %v x %v mm bed of the %s %s",
				prop.Bounds, machine.Size.X, machine.Size.Y, machine.Size.Z, machine.Vendor, machine.Model))
		}
	}

	return
}

func (cmd *CheckCommand) Filter(input fdmslice.Printable) (output fdmslice.Printable, err error) {
	if cmd.Machine != "" {
		if _, found := fdmslice.Machines[cmd.Machine]; !found {
			err = fmt.Errorf("check: machine %q unknown", cmd.Machine)
			return
		}
	}

	list := cmd.problems(input)
	for _, problem := range list {
		logger.Log.Warn("check", zap.String("problem", problem))
	}

	if len(list) > 0 {
		err = fmt.Errorf("check: %d problems, first: %s", len(list), list[0])
		return
	}

	output = input

	return
}
