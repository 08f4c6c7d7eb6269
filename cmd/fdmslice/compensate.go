//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"github.com/spf13/pflag"

	"github.com/ezrec/fdmslice"
)

type CompensateCommand struct {
	*pflag.FlagSet

	Amount float64
	First  int
	Layers int
}

func NewCompensateCommand() (cmd *CompensateCommand) {
	flagSet := pflag.NewFlagSet("compensate", pflag.ContinueOnError)
	flagSet.SetInterspersed(false)

	cmd = &CompensateCommand{
		FlagSet: flagSet,
	}

	cmd.Float64VarP(&cmd.Amount, "amount", "a", 0.2, "Perimeter inset, in mm")
	cmd.IntVarP(&cmd.First, "first", "f", 0, "First layer to compensate")
	cmd.IntVarP(&cmd.Layers, "layers", "l", 1, "Count of layers to compensate")

	return
}

func (cmd *CompensateCommand) Filter(input fdmslice.Printable) (output fdmslice.Printable, err error) {
	cp := fdmslice.NewCompensatedPrintable(input)
	cp.Amount = cmd.Amount
	cp.FirstLayer = cmd.First
	cp.Layers = cmd.Layers

	output = cp

	return
}
