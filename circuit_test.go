// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package doorsim_test

import (
	"testing"

	hw "github.com/db47h/doorsim"
	hl "github.com/db47h/doorsim/hwlib"
	"github.com/db47h/doorsim/hwtest"
	"github.com/pkg/errors"
)

const testTPC = 16

func trace(t *testing.T, err error) {
	t.Helper()
	if err, ok := err.(interface {
		StackTrace() errors.StackTrace
	}); ok {
		for _, f := range err.StackTrace() {
			t.Logf("%+v ", f)
		}
	}
}

func Test_gate_custom(t *testing.T) {
	and, err := hw.Chip("AND", "a, b", "out",
		hl.Nand("a=a, b=b, out=nand"),
		hl.Nand("a=nand, b=nand, out=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	or, err := hw.Chip("OR", "a, b", "out",
		hl.Nand("a=a, b=a, out=notA"),
		hl.Nand("a=b, b=b, out=notB"),
		hl.Nand("a=notA, b=notB, out=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	nor, err := hw.Chip("NOR", "a, b", "out",
		or("a=a, b=b, out=orAB"),
		hl.Nand("a=orAB, b=orAB, out=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	xor, err := hw.Chip("XOR", "a, b", "out",
		hl.Nand("a=a, b=b, out=nandAB"),
		hl.Nand("a=a, b=nandAB, out=w0"),
		hl.Nand("a=b, b=nandAB, out=w1"),
		hl.Nand("a=w0, b=w1, out=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	xnor, err := hw.Chip("XNOR", "a, b", "out",
		or("a=a, b=b, out=or"),
		hl.Nand("a=a, b=b, out=nand"),
		hl.Nand("a=or, b=nand, out=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	not, err := hw.Chip("NOT", "in", "out",
		hl.Nand("a=in, b=in, out=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	td := []struct {
		name string
		ref  hw.NewPartFn
		gate hw.NewPartFn
	}{
		{"AND", hl.And, and},
		{"OR", hl.Or, or},
		{"NOR", hl.Nor, nor},
		{"XOR", hl.Xor, xor},
		{"XNOR", hl.Xnor, xnor},
		{"NOT", hl.Not, not},
	}
	for _, d := range td {
		d := d
		t.Run(d.name, func(t *testing.T) {
			hwtest.ComparePart(t, testTPC, d.ref, d.gate)
		})
	}
}

// Test a basic clock with a Nor gate.
//
// The purpose of this test is to catch changes in propagation delays
// from Inputs and Outputs as well as testing loops between input and outputs.
//
func Test_clock(t *testing.T) {
	var disable, tick bool

	check := func(v bool) {
		t.Helper()
		if tick != v {
			t.Errorf("expected %v, got %v", v, tick)
		}
	}
	// wrap the Nor into a stand-alone chip in order to add a layer of
	// complexity for testing purposes.
	clk, err := hw.Chip("CLK", "disable", "tick",
		hl.Nor("a=disable, b=tick, out=tick"),
	)
	if err != nil {
		t.Fatal(err)
	}
	c, err := hw.NewCircuit(0, testTPC,
		hl.Input(func() bool { return disable })("out=disable"),
		clk("disable=disable, tick=out"),
		hl.Output(func(out bool) { tick = out })("in=out"),
	)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	// we have two wires: "disable" and "out".
	// note that Output("out", ...) is delayed by one step after the Nor updates it.

	disable = true
	c.Step()
	check(false)
	c.Step()
	// expected signal change in the first couple of steps due to propagation delay
	check(true)
	c.Step()
	check(false)
	c.Step()
	check(false)

	disable = false
	c.Step()
	check(false)
	c.Step()
	check(false)
	c.Step()
	// the clock starts ticking now.
	check(true)
	c.Step()
	check(false)
	c.Step()
	check(true)
	disable = true
	c.Step()
	check(false)
	c.Step()
	check(true)
	c.Step()
	// the clock stops ticking now.
	check(false)
	c.Step()
	check(false)
}

func TestCircuit_clock(t *testing.T) {
	var clk bool
	var ticks, tocks int
	sampler := (&hw.PartSpec{
		Name:   "sampler",
		Inputs: hw.IO("in"),
		Mount: func(s *hw.Socket) []hw.Component {
			in := s.Pin("in")
			return []hw.Component{func(c *hw.Circuit) {
				clk = c.Get(in)
				if c.AtTick() {
					ticks++
				}
				if c.AtTock() {
					tocks++
				}
			}}
		}}).NewPart

	c, err := hw.NewCircuit(1, 5, sampler("in=clk"))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	if c.SPC() != 8 {
		t.Fatalf("SPC() = %d, expected 8", c.SPC())
	}
	for i := 0; i < 4; i++ {
		c.Step()
		if !clk {
			t.Fatalf("step %d: clk low in first half of the cycle", i)
		}
	}
	// the clock is already low: nothing to do.
	c.Tick()
	if c.Steps() != 4 {
		t.Fatalf("Tick after half a cycle: steps = %d, expected 4", c.Steps())
	}
	c.Tock()
	if clk || c.Steps() != 8 {
		t.Fatalf("Tock: clk = %v, steps = %d, expected 8", clk, c.Steps())
	}
	for i := 0; i < 3; i++ {
		c.TickTock()
	}
	if c.Steps() != 32 || ticks != 4 || tocks != 4 {
		t.Fatalf("steps = %d, ticks = %d, tocks = %d", c.Steps(), ticks, tocks)
	}
	if c.Cycles() != 4 {
		t.Fatalf("Cycles() = %d, expected 4", c.Cycles())
	}
}

func TestNewCircuit_spc(t *testing.T) {
	for _, d := range []struct{ in, want uint }{
		{0, 2}, {1, 2}, {2, 2}, {3, 4}, {8, 8}, {9, 16}, {16, 16},
	} {
		c, err := hw.NewCircuit(1, d.in, hl.Not("in=true, out=x"))
		if err != nil {
			t.Fatal(err)
		}
		if c.SPC() != d.want {
			t.Errorf("NewCircuit(%d).SPC() = %d, expected %d", d.in, c.SPC(), d.want)
		}
		c.Dispose()
	}
}

func TestNewCircuit_errors(t *testing.T) {
	if _, err := hw.NewCircuit(0, testTPC); err == nil {
		t.Fatal("expected error on empty part list")
	}
	_, err := hw.NewCircuit(0, testTPC,
		hl.Not("in=x, out=y"),
	)
	if err == nil || err.Error() != "failed to create chip wrapper: pin x not connected to any output" {
		t.Fatalf("unexpected error %v", err)
	}
	if errors.Cause(err).Error() != "pin x not connected to any output" {
		t.Fatalf("unexpected cause %v", errors.Cause(err))
	}
}
