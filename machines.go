//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package fdmslice

import (
	"fmt"
	"sort"
)

// MachineSize is the build volume of a machine, in mm
type MachineSize struct {
	X, Y, Z float64
}

type Machine struct {
	Vendor string
	Model  string
	Size   MachineSize
	Nozzle float64 // Installed nozzle diameter, in mm
}

// Fits is true if a print of the given volume fits on the machine
func (machine *Machine) Fits(vol Volume) bool {
	size := vol.Size()
	return size[0] <= machine.Size.X && size[1] <= machine.Size.Y && size[2] <= machine.Size.Z
}

// Config returns the default configuration, adjusted for the machine's nozzle
func (machine *Machine) Config() (cfg Config) {
	cfg = DefaultConfig()
	if machine.Nozzle > 0 {
		ratio := machine.Nozzle / cfg.NozzleSize
		cfg.NozzleSize = machine.Nozzle
		cfg.LayerHeight *= ratio
		cfg.ShellThickness *= ratio
		cfg.TopBottomThickness *= ratio
	}
	return
}

var (
	Machines = map[string](*Machine){}
)

func RegisterMachine(name string, machine Machine) (err error) {
	_, ok := Machines[name]
	if ok {
		err = fmt.Errorf("%s: name already exists in Machine list", name)
		return
	}

	Machines[name] = &machine

	return
}

func RegisterMachines(machineMap map[string]Machine) (err error) {
	for name, machine := range machineMap {
		err = RegisterMachine(name, machine)
		if err != nil {
			return
		}
	}

	return
}

// MachineNames returns the names of all registered machines, sorted
func MachineNames() (names []string) {
	for name := range Machines {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

func init() {
	RegisterMachines(map[string]Machine{
		"ender3": {
			Vendor: "Creality",
			Model:  "Ender 3",
			Size:   MachineSize{X: 220, Y: 220, Z: 250},
			Nozzle: 0.4,
		},
		"cr10": {
			Vendor: "Creality",
			Model:  "CR-10",
			Size:   MachineSize{X: 300, Y: 300, Z: 400},
			Nozzle: 0.4,
		},
		"mk3s": {
			Vendor: "Prusa Research",
			Model:  "Original Prusa i3 MK3S",
			Size:   MachineSize{X: 250, Y: 210, Z: 210},
			Nozzle: 0.4,
		},
		"mini": {
			Vendor: "Prusa Research",
			Model:  "Original Prusa MINI",
			Size:   MachineSize{X: 180, Y: 180, Z: 180},
			Nozzle: 0.4,
		},
		"voron24-350": {
			Vendor: "Voron Design",
			Model:  "Voron 2.4 350",
			Size:   MachineSize{X: 350, Y: 350, Z: 340},
			Nozzle: 0.4,
		},
		"ultimaker3": {
			Vendor: "Ultimaker",
			Model:  "Ultimaker 3",
			Size:   MachineSize{X: 215, Y: 215, Z: 200},
			Nozzle: 0.4,
		},
	})
}
