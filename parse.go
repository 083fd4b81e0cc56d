// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package doorsim

import (
	"github.com/db47h/doorsim/internal/hdl"
	"github.com/pkg/errors"
)

// A Connection connects the pin PP of a part to the pin CP of its host chip.
//
type Connection struct {
	PP string
	CP string
}

// ParseConnections parses a connection configuration like "partPin1=chipPin1,
// partPin2=chipPin2". Buses can be connected with ranges, "a[0..3]=b[4..7]",
// which expand to one connection per bit. Both sides of a range must have the
// same width.
//
// The chip pins "true", "false" and "clk" are the constant true and false wires
// and the clock signal.
//
func ParseConnections(c string) ([]Connection, error) {
	as, err := hdl.ParseAssignments(c)
	if err != nil {
		return nil, err
	}
	var conns []Connection
	for _, a := range as {
		pp, cp := a.Part.Expand(), a.Chip.Expand()
		if len(pp) != len(cp) {
			return nil, errors.Errorf("in %q: pin count mismatch in %s=%s", c, a.Part.Name, a.Chip.Name)
		}
		for i := range pp {
			conns = append(conns, Connection{pp[i], cp[i]})
		}
	}
	return conns, nil
}

// ParseIO parses an i/o spec like "a, b, bus[4]" and expands bus declarations
// to individual pin names.
//
func ParseIO(spec string) ([]string, error) {
	return hdl.ParseIO(spec)
}

// IO is like ParseIO but panics on error. It is meant for static part
// declarations.
//
func IO(spec string) []string {
	pins, err := ParseIO(spec)
	if err != nil {
		panic(err)
	}
	return pins
}

// BusPinName returns the pin name for the n-th bit of the named bus.
//
func BusPinName(bus string, bit int) string {
	return hdl.BusPinName(bus, bit)
}
