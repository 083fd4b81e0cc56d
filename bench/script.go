// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package bench drives a door controller with stimulus scripts and samples its
// outputs after every clock tick.
//
// A script is a YAML document:
//
//	name: lock then close
//	expect: error
//	steps:
//	  - reset: true
//	    ticks: 2
//	  - commands: [close]
//	    ticks: 2
//	  - commands: [lock]
//	    ticks: 2
//	  - commands: [close]
//	    ticks: 2
//	  - ticks: 2
//
// reset is the asserted state of the active low reset line.
//
package bench

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/db47h/doorsim/door"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Engine names the implementation a script runs on.
//
type Engine string

// Available engines.
//
const (
	// EngineModel runs the script on a door.Controller.
	EngineModel Engine = "model"
	// EngineCircuit runs the script on the gate-level controller mounted in a
	// circuit simulation.
	EngineCircuit Engine = "circuit"
)

// A Step holds the raw inputs for a number of consecutive ticks.
//
type Step struct {
	Reset    bool     `yaml:"reset,omitempty"`
	Commands []string `yaml:"commands,omitempty"`
	// Ticks defaults to 1.
	Ticks int `yaml:"ticks,omitempty"`

	cmd door.Command
}

// Inputs returns the controller inputs for the step. Only valid after the
// script has been validated.
//
func (s *Step) Inputs() door.Inputs {
	return door.Inputs{ResetN: !s.Reset, Command: s.cmd}
}

// A Script is a named sequence of steps with an optional expected final state.
//
// The circuit engine reports every transition one tick after the model does.
// A script whose last effective command is consumed on its final tick passes
// Expect on the model and fails with ErrMismatch on the circuit; end scripts
// with at least one idle tick to make them engine independent.
//
type Script struct {
	Name   string `yaml:"name"`
	Expect string `yaml:"expect,omitempty"`
	Engine Engine `yaml:"engine,omitempty"`
	Steps  []Step `yaml:"steps"`

	expect    door.State
	hasExpect bool
}

// Ticks returns the total number of ticks in the script.
//
func (s *Script) Ticks() int {
	n := 0
	for i := range s.Steps {
		n += s.Steps[i].Ticks
	}
	return n
}

// Expected returns the expected final state, if any.
//
func (s *Script) Expected() (door.State, bool) {
	return s.expect, s.hasExpect
}

// Load reads and validates a script file.
//
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.Wrap(err, "read script")
	}
	s, err := Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	if s.Name == "" {
		s.Name = filepath.Base(path)
	}
	return s, nil
}

// Parse decodes and validates a script. Unknown fields are rejected.
//
func Parse(data []byte) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Wrap(err, "decode script")
	}
	if err := Validate(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks a script, resolves command and state names and fills in
// defaults.
//
func Validate(s *Script) error {
	if s == nil {
		return errors.New("script is not set")
	}
	switch s.Engine {
	case "":
		s.Engine = EngineModel
	case EngineModel, EngineCircuit:
	default:
		return errors.Errorf("unknown engine %q", s.Engine)
	}
	if len(s.Steps) == 0 {
		return errors.New("script has no steps")
	}
	s.hasExpect = s.Expect != ""
	if s.hasExpect {
		st, err := door.ParseState(s.Expect)
		if err != nil {
			return errors.Wrap(err, "expect")
		}
		s.expect = st
	}
	for i := range s.Steps {
		st := &s.Steps[i]
		switch {
		case st.Ticks < 0:
			return errors.Errorf("step %d: negative tick count %d", i+1, st.Ticks)
		case st.Ticks == 0:
			st.Ticks = 1
		}
		st.cmd = 0
		for _, n := range st.Commands {
			c, err := door.ParseCommand(n)
			if err != nil {
				return errors.Wrapf(err, "step %d", i+1)
			}
			st.cmd |= c
		}
	}
	return nil
}
