// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import "github.com/db47h/doorsim"

var dff = &doorsim.PartSpec{
	Name:    "DFF",
	Inputs:  []string{pIn},
	Outputs: []string{pOut},
	Mount: func(s *doorsim.Socket) []doorsim.Component {
		in, out := s.Pin(pIn), s.Pin(pOut)
		var curOut bool
		return []doorsim.Component{
			func(c *doorsim.Circuit) {
				// raising edge?
				if c.AtTick() {
					curOut = c.Get(in)
				}
				c.Set(out, curOut)
			}}
	}}

// DFF returns a clocked data flip flop.
//
//	Inputs: in
//	Outputs: out
//	Function: out(t) = in(t-1) // where t is the current clock cycle.
//
func DFF(w string) doorsim.Part { return dff.NewPart(w) }

var dffc = &doorsim.PartSpec{
	Name:    "DFFC",
	Inputs:  []string{pIn, pClr},
	Outputs: []string{pOut},
	Mount: func(s *doorsim.Socket) []doorsim.Component {
		in, clr, out := s.Pin(pIn), s.Pin(pClr), s.Pin(pOut)
		var curOut bool
		return []doorsim.Component{
			func(c *doorsim.Circuit) {
				// clear is not clocked
				if c.Get(clr) {
					curOut = false
				} else if c.AtTick() {
					curOut = c.Get(in)
				}
				c.Set(out, curOut)
			}}
	}}

// DFFC returns a clocked data flip flop with asynchronous clear.
//
//	Inputs: in, clr
//	Outputs: out
//	Function: if clr { out = 0 } else { out(t) = in(t-1) }
//
func DFFC(w string) doorsim.Part { return dffc.NewPart(w) }
