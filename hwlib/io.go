// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/doorsim"
	"github.com/db47h/doorsim/door"
)

// Int64 reads pins as an unsigned value, pins[0] being the lsb.
//
func Int64(c *doorsim.Circuit, pins []int) int64 {
	var v int64
	for i := len(pins) - 1; i >= 0; i-- {
		v <<= 1
		if c.Get(pins[i]) {
			v |= 1
		}
	}
	return v
}

// SetInt64 drives pins with the low bits of v, pins[0] getting the lsb.
//
func SetInt64(c *doorsim.Circuit, pins []int, v int64) {
	for _, p := range pins {
		c.Set(p, v&1 != 0)
		v >>= 1
	}
}

// source returns a part with no inputs and a single component built by mount.
func source(name string, outputs []string, mount func(s *doorsim.Socket) doorsim.Component) doorsim.NewPartFn {
	return (&doorsim.PartSpec{
		Name:    name,
		Outputs: outputs,
		Mount: func(s *doorsim.Socket) []doorsim.Component {
			return []doorsim.Component{mount(s)}
		},
	}).NewPart
}

// sink returns a part with no outputs and a single component built by mount.
func sink(name string, inputs []string, mount func(s *doorsim.Socket) doorsim.Component) doorsim.NewPartFn {
	return (&doorsim.PartSpec{
		Name:   name,
		Inputs: inputs,
		Mount: func(s *doorsim.Socket) []doorsim.Component {
			return []doorsim.Component{mount(s)}
		},
	}).NewPart
}

// Input drives its output with f on every step.
//
//	Outputs: out
//
func Input(f func() bool) doorsim.NewPartFn {
	return source("Input", []string{pOut}, func(s *doorsim.Socket) doorsim.Component {
		out := s.Pin(pOut)
		return func(c *doorsim.Circuit) { c.Set(out, f()) }
	})
}

// Output passes the state of its input to f on every step.
//
//	Inputs: in
//
func Output(f func(bool)) doorsim.NewPartFn {
	return sink("Output", []string{pIn}, func(s *doorsim.Socket) doorsim.Component {
		in := s.Pin(pIn)
		return func(c *doorsim.Circuit) { f(c.Get(in)) }
	})
}

// InputN is a bits wide Input.
//
//	Outputs: out[bits]
//
func InputN(bits int, f func() int64) doorsim.NewPartFn {
	return source("INPUT"+strconv.Itoa(bits), bus(bits, pOut), func(s *doorsim.Socket) doorsim.Component {
		out := s.Bus(pOut, bits)
		return func(c *doorsim.Circuit) { SetInt64(c, out, f()) }
	})
}

// OutputN is a bits wide Output.
//
//	Inputs: in[bits]
//
func OutputN(bits int, f func(int64)) doorsim.NewPartFn {
	return sink("OUTPUT"+strconv.Itoa(bits), bus(bits, pIn), func(s *doorsim.Socket) doorsim.Component {
		in := s.Bus(pIn, bits)
		return func(c *doorsim.Circuit) { f(Int64(c, in)) }
	})
}

// DoorInputs drives the input pins of a door controller from f.
//
//	Outputs: reset_n, command[4]
//
func DoorInputs(f func() door.Inputs) doorsim.NewPartFn {
	pins := append([]string{pResetN}, bus(door.CommandBits, pCommand)...)
	return source("DOORIN", pins, func(s *doorsim.Socket) doorsim.Component {
		rstN, cmd := s.Pin(pResetN), s.Bus(pCommand, door.CommandBits)
		return func(c *doorsim.Circuit) {
			in := f()
			c.Set(rstN, in.ResetN)
			SetInt64(c, cmd, int64(in.Command))
		}
	})
}

// DoorOutputs samples the output pins of a door controller and passes them to
// f on every step.
//
//	Inputs: indicator[3], state_code[2]
//
func DoorOutputs(f func(door.Outputs)) doorsim.NewPartFn {
	pins := append(bus(door.IndicatorBits, pIndicator), bus(door.CodeBits, pStateCode)...)
	return sink("DOOROUT", pins, func(s *doorsim.Socket) doorsim.Component {
		ind, code := s.Bus(pIndicator, door.IndicatorBits), s.Bus(pStateCode, door.CodeBits)
		return func(c *doorsim.Circuit) {
			f(door.Outputs{Indicator: uint8(Int64(c, ind)), StateCode: uint8(Int64(c, code))})
		}
	})
}

// Connection strings for DoorInputs, DoorOutputs and a door controller
// mounted side by side, the wires being named after the controller pins.
//
const (
	DoorInWiring  = "reset_n=reset_n, command[0..3]=command[0..3]"
	DoorOutWiring = "indicator[0..2]=indicator[0..2], state_code[0..1]=state_code[0..1]"
	DoorWiring    = DoorInWiring + ", " + DoorOutWiring
)
