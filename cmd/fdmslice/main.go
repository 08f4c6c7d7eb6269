//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ezrec/fdmslice"
	"github.com/ezrec/fdmslice/internal/logger"

	_ "github.com/ezrec/fdmslice/fdz"
	_ "github.com/ezrec/fdmslice/raster"
	_ "github.com/ezrec/fdmslice/stl"
)

const (
	defaultCachedLayers = 64
)

type Verb struct {
	NewVerber   func() (verber Verber)
	Description string
}

type Verber interface {
	Parse(args []string) (err error)
	Args() (args []string)
	PrintDefaults()
	Filter(input fdmslice.Printable) (output fdmslice.Printable, err error)
}

var VerbMap = map[string]Verb{
	"info": {
		NewVerber:   func() Verber { return NewInfoCommand() },
		Description: "Dumps information about the printable",
	},
	"select": {
		NewVerber:   func() Verber { return NewSelectCommand() },
		Description: "Select a range of layers",
	},
	"check": {
		NewVerber:   func() Verber { return NewCheckCommand() },
		Description: "Fails on unclosed layers, or prints that do not fit a machine",
	},
	"compensate": {
		NewVerber:   func() Verber { return NewCompensateCommand() },
		Description: "Insets the perimeters of the first layers",
	},
}

var param struct {
	verbose  bool
	logLevel string
	logFile  string
}

func init() {
	pflag.BoolVarP(&param.verbose, "verbose", "v", false, "Show a progress bar")
	pflag.StringVar(&param.logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	pflag.StringVar(&param.logFile, "log-file", "", "Also log to this file, rotating it as it grows")

	pflag.CommandLine.SetInterspersed(false)
	pflag.Usage = Usage
}

func Usage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "  fdmslice [options...] input.stl [input options...] [command [command options...]]... [output [output options...]]")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Arguments of the form '@file' are replaced by the words of the file.")
	fmt.Fprintln(os.Stderr)
	pflag.PrintDefaults()
	fmt.Fprintln(os.Stderr)

	keys := []string{}
	for key := range VerbMap {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr)
	for _, key := range keys {
		fmt.Fprintf(os.Stderr, "  %-12s %s\n", key, VerbMap[key].Description)
	}

	for _, key := range keys {
		fmt.Fprintln(os.Stderr)
		fmt.Fprintf(os.Stderr, "Options for '%s':\n", key)
		fmt.Fprintln(os.Stderr)
		VerbMap[key].NewVerber().PrintDefaults()
	}

	fdmslice.FormatterUsage()

	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Known machines:")
	fmt.Fprintln(os.Stderr)
	for _, name := range fdmslice.MachineNames() {
		machine := fdmslice.Machines[name]
		size := &machine.Size
		fmt.Fprintf(os.Stderr, "  %-14s %s %s, %gx%gx%g mm, %g mm nozzle\n",
			name, machine.Vendor, machine.Model, size.X, size.Y, size.Z, machine.Nozzle)
	}
}

// Evaluate runs the pipeline described by args: an input file, then
// commands, then output files
func Evaluate(args []string) (err error) {
	if len(args) == 0 {
		err = fmt.Errorf("no input file")
		return
	}

	input, err := fdmslice.NewFormat(args[0], args[1:])
	if err != nil {
		return
	}

	logger.Log.Info("reading", zap.String("file", input.Filename))

	printable, err := input.Printable()
	if err != nil {
		return
	}

	printable = fdmslice.NewCachedPrintable(printable, defaultCachedLayers)

	args = input.Args()
	for len(args) > 0 {
		verb, found := VerbMap[args[0]]
		if !found {
			var output *fdmslice.Format
			output, err = fdmslice.NewFormat(args[0], args[1:])
			if err != nil {
				return
			}

			logger.Log.Info("writing", zap.String("file", output.Filename))

			err = output.SetPrintable(printable)
			if err != nil {
				return
			}

			args = output.Args()
			continue
		}

		verber := verb.NewVerber()
		err = verber.Parse(args[1:])
		if err != nil {
			err = fmt.Errorf("%s: %w", args[0], err)
			return
		}

		printable, err = verber.Filter(printable)
		if err != nil {
			return
		}

		args = verber.Args()
	}

	return
}

func main() {
	pflag.Parse()

	err := logger.Init(param.logLevel, param.logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "--log-level: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if param.verbose {
		fdmslice.SetProgress(newBarProgress(os.Stderr))
	}

	args, err := ExpandArgs(pflag.Args())
	if err != nil {
		logger.Log.Error("arguments", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		pflag.Usage()
		os.Exit(1)
	}

	err = Evaluate(args)
	if err != nil {
		logger.Log.Error("failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
