// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"github.com/db47h/doorsim"
	"github.com/db47h/doorsim/door"
)

// door controller pin names
const (
	pResetN    = "reset_n"
	pCode      = "code"
	pIndicator = "indicator"
	pCommand   = "command"
	pStateCode = "state_code"
)

func setBits(c *doorsim.Circuit, pins []int, v uint8) {
	SetInt64(c, pins, int64(v))
}

type fsmPart struct {
	Rst    int                `hw:"in"`
	Close  int                `hw:"in"`
	Open   int                `hw:"in"`
	Lock   int                `hw:"in"`
	Unlock int                `hw:"in"`
	Code   [door.CodeBits]int `hw:"out"`

	st door.State
}

func (f *fsmPart) Update(c *doorsim.Circuit) {
	if c.Get(f.Rst) {
		f.st = door.Open
	} else if c.AtTick() {
		var cmd door.Command
		for i, p := range [...]int{f.Close, f.Open, f.Lock, f.Unlock} {
			if c.Get(p) {
				cmd |= 1 << uint(i)
			}
		}
		f.st = door.Next(f.st, false, cmd)
	}
	setBits(c, f.Code[:], f.st.Code())
}

var fsm = func() *doorsim.PartSpec {
	p := doorsim.MakePart((*fsmPart)(nil))
	p.Name = "FSM"
	return p
}()

// FSM returns the door state register with its transition logic.
//
//	Inputs: rst, close, open, lock, unlock
//	Outputs: code[2]
//
// rst is active high and asynchronous. Command inputs are sampled on the rising
// edge of the clock.
//
func FSM(w string) doorsim.Part { return fsm.NewPart(w) }

var encoder = mustChip("ENCODER", "code[2]", "indicator[3]",
	Not("in=code[0], out=n0"),
	Not("in=code[1], out=n1"),
	And("a=n0, b=n1, out=isOpen"),
	And("a=code[0], b=n1, out=isClosed"),
	And("a=n0, b=code[1], out=isLocked"),
	And("a=code[0], b=code[1], out=isError"),
	Or("a=isOpen, b=isError, out=indicator[0]"),
	Or("a=isClosed, b=isError, out=indicator[1]"),
	Or("a=isLocked, b=isError, out=indicator[2]"),
)

// Encoder returns a state code to indicator decoder.
//
//	Inputs: code[2]
//	Outputs: indicator[3]
//	Function: indicator = 001, 010, 100, 111 for code = 00, 01, 10, 11
//
func Encoder(w string) doorsim.Part { return encoder(w) }

var encoderRef = &doorsim.PartSpec{
	Name:    "ENCODER",
	Inputs:  bus(door.CodeBits, pCode),
	Outputs: bus(door.IndicatorBits, pIndicator),
	Mount: func(s *doorsim.Socket) []doorsim.Component {
		code, ind := s.Bus(pCode, door.CodeBits), s.Bus(pIndicator, door.IndicatorBits)
		return []doorsim.Component{
			func(c *doorsim.Circuit) {
				setBits(c, ind, door.Decode(uint8(Int64(c, code))).Indicator())
			}}
	}}

// EncoderRef is the behavioural equivalent of Encoder.
//
func EncoderRef(w string) doorsim.Part { return encoderRef.NewPart(w) }

var doorController = mustChip("DOOR", "reset_n, command[4]", "indicator[3], state_code[2]",
	ResetSynchronizer("in=reset_n, out=rst_n"),
	Synchronizer("in=command[0], out=close"),
	Synchronizer("in=command[1], out=open"),
	Synchronizer("in=command[2], out=lock"),
	Synchronizer("in=command[3], out=unlock"),
	Not("in=rst_n, out=rst"),
	FSM("rst=rst, close=close, open=open, lock=lock, unlock=unlock, code[0..1]=state_code[0..1]"),
	Encoder("code[0..1]=state_code[0..1], indicator[0..2]=indicator[0..2]"),
)

// DoorController returns the door controller.
//
//	Inputs: reset_n, command[4]
//	Outputs: indicator[3], state_code[2]
//
// command bits are close, open, lock and unlock, lsb first. reset_n is active
// low. The longest path, from reset_n to indicator, is 8 steps long: the circuit
// needs at least 16 steps per cycle.
//
func DoorController(w string) doorsim.Part { return doorController(w) }

var doorControllerRef = &doorsim.PartSpec{
	Name:    "DOOR",
	Inputs:  append([]string{pResetN}, bus(door.CommandBits, pCommand)...),
	Outputs: append(bus(door.IndicatorBits, pIndicator), bus(door.CodeBits, pStateCode)...),
	Mount: func(s *doorsim.Socket) []doorsim.Component {
		rstN := s.Pin(pResetN)
		cmd := s.Bus(pCommand, door.CommandBits)
		ind, code := s.Bus(pIndicator, door.IndicatorBits), s.Bus(pStateCode, door.CodeBits)
		ctl := door.NewController()
		return []doorsim.Component{
			func(c *doorsim.Circuit) {
				in := door.Inputs{ResetN: c.Get(rstN), Command: door.Command(Int64(c, cmd))}
				if c.AtTick() {
					ctl.Tick(in)
				} else if !in.ResetN {
					ctl.AssertReset()
				}
				out := ctl.Outputs()
				setBits(c, ind, out.Indicator)
				setBits(c, code, out.StateCode)
			}}
	}}

// DoorControllerRef is the behavioural equivalent of DoorController, built
// around a door.Controller.
//
func DoorControllerRef(w string) doorsim.Part { return doorControllerRef.NewPart(w) }
