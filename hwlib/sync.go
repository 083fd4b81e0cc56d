// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/doorsim"
	"github.com/db47h/doorsim/door"
)

// the second stage only loads when the line is still high, so a low raw input
// clears both stages at the clock edge.
var synchronizer = mustChip("SYNC", pIn, pOut,
	DFF("in=in, out=stage1"),
	And("a=stage1, b=in, out=load"),
	DFF("in=load, out=out"),
)

// Synchronizer returns a two stage command line synchronizer.
//
//	Inputs: in
//	Outputs: out
//	Function: out(t) = in(t-2) && in(t-1)
//
// A low input clears both stages at the next clock edge.
//
func Synchronizer(w string) doorsim.Part { return synchronizer(w) }

var resetSynchronizer = mustChip("RSYNC", pIn, pOut,
	Not("in=in, out=clr"),
	DFFC("in=in, clr=clr, out=stage1"),
	DFFC("in=stage1, clr=clr, out=out"),
)

// ResetSynchronizer returns a two stage synchronizer for an active low reset
// line. A low input clears both stages without waiting for a clock edge, a
// high input reaches the output after two clock cycles.
//
//	Inputs: in
//	Outputs: out
//
func ResetSynchronizer(w string) doorsim.Part { return resetSynchronizer(w) }

var syncRef = &doorsim.PartSpec{
	Name:    "SYNCREF",
	Inputs:  []string{pIn},
	Outputs: []string{pOut},
	Mount: func(s *doorsim.Socket) []doorsim.Component {
		in, out := s.Pin(pIn), s.Pin(pOut)
		var sy door.Synchronizer
		return []doorsim.Component{
			func(c *doorsim.Circuit) {
				if c.AtTick() {
					sy.Clock(c.Get(in))
				}
				c.Set(out, sy.Out())
			}}
	}}

// SynchronizerRef is the behavioural equivalent of Synchronizer.
//
func SynchronizerRef(w string) doorsim.Part { return syncRef.NewPart(w) }

var resetSyncRef = &doorsim.PartSpec{
	Name:    "RSYNCREF",
	Inputs:  []string{pIn},
	Outputs: []string{pOut},
	Mount: func(s *doorsim.Socket) []doorsim.Component {
		in, out := s.Pin(pIn), s.Pin(pOut)
		var sy door.Synchronizer
		return []doorsim.Component{
			func(c *doorsim.Circuit) {
				if !c.Get(in) {
					sy.Clear()
				} else if c.AtTick() {
					sy.Clock(true)
				}
				c.Set(out, sy.Out())
			}}
	}}

// ResetSynchronizerRef is the behavioural equivalent of ResetSynchronizer.
//
func ResetSynchronizerRef(w string) doorsim.Part { return resetSyncRef.NewPart(w) }
