//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package profile loads and saves YAML slicing profiles
package profile

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ezrec/fdmslice"
)

// Profile is a named machine, and the slicing settings to use with it
type Profile struct {
	// Machine name, from fdmslice.Machines. Its nozzle sets the
	// defaults of the slicing settings.
	Machine string `yaml:"machine,omitempty"`
	// First layer perimeter inset, in mm
	ElephantFoot float64         `yaml:"elephant_foot,omitempty"`
	Slicing      fdmslice.Config `yaml:"slicing"`
}

// Default returns the profile of no particular machine
func Default() *Profile {
	return &Profile{
		Slicing: fdmslice.DefaultConfig(),
	}
}

// Parse decodes a profile from YAML. Settings missing from the YAML keep
// the defaults of the named machine, or DefaultConfig().
func Parse(data []byte) (prof *Profile, err error) {
	var head struct {
		Machine string `yaml:"machine"`
	}

	err = yaml.Unmarshal(data, &head)
	if err != nil {
		return
	}

	prof = Default()
	if head.Machine != "" {
		machine, found := fdmslice.Machines[head.Machine]
		if !found {
			err = fmt.Errorf("machine %q unknown", head.Machine)
			prof = nil
			return
		}
		prof.Slicing = machine.Config()
	}

	err = yaml.Unmarshal(data, prof)
	if err != nil {
		prof = nil
		return
	}

	err = prof.Slicing.Validate()
	if err != nil {
		prof = nil
		return
	}

	return
}

// Load reads a profile from the YAML file at path
func Load(path string) (prof *Profile, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	prof, err = Parse(data)
	if err != nil {
		err = fmt.Errorf("loading profile from %s: %w", path, err)
		return
	}

	return
}

// SaveTo writes the profile to path as YAML
func (prof *Profile) SaveTo(path string) (err error) {
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return
	}

	data, err := yaml.Marshal(prof)
	if err != nil {
		return
	}

	err = os.WriteFile(path, data, 0644)
	return
}
