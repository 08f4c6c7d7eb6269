//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package fdmslice

import (
	"math"
	"testing"
)

func TestMachines(t *testing.T) {
	names := MachineNames()
	if len(names) == 0 {
		t.Fatal("no machines registered")
	}
	for n := 1; n < len(names); n++ {
		if names[n-1] >= names[n] {
			t.Errorf("names not sorted: %v", names)
		}
	}

	err := RegisterMachine(names[0], Machine{})
	if err == nil {
		t.Errorf("duplicate machine %q registered", names[0])
	}
}

func TestMachineFits(t *testing.T) {
	machine := Machine{Size: MachineSize{X: 100, Y: 50, Z: 80}, Nozzle: 0.6}

	table := []struct {
		vol  Volume
		fits bool
	}{
		{Volume{Max: [3]float64{100, 50, 80}}, true},
		{Volume{Min: [3]float64{-10, -10, 0}, Max: [3]float64{10, 10, 10}}, true},
		{Volume{Max: [3]float64{100.5, 50, 80}}, false},
		{Volume{Max: [3]float64{10, 10, 81}}, false},
	}

	for n, item := range table {
		if got := machine.Fits(item.vol); got != item.fits {
			t.Errorf("%d: %v fits %v, want %v", n, item.vol, got, item.fits)
		}
	}

	cfg := machine.Config()
	if cfg.NozzleSize != 0.6 || math.Abs(cfg.LayerHeight-0.3) > 1e-9 {
		t.Errorf("config not scaled to the nozzle: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Error(err)
	}
}
