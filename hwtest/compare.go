// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides utility functions for testing circuits.
//
package hwtest

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/db47h/doorsim"
	"github.com/db47h/doorsim/hwlib"
	"github.com/pkg/errors"
)

// A Stimulus sets the input pins of the parts under test for the given clock
// cycle. in is indexed like the parts' Inputs.
//
type Stimulus func(cycle int, in []bool)

// Random drives all inputs low on cycle 0, all high on cycle 1 and with random
// values after that.
//
func Random(seed int64) Stimulus {
	r := rand.New(rand.NewSource(seed))
	return func(cycle int, in []bool) {
		for i := range in {
			switch cycle {
			case 0:
				in[i] = false
			case 1:
				in[i] = true
			default:
				in[i] = r.Int63()&(1<<62) != 0
			}
		}
	}
}

// Held keeps each input at a random value for 1 to maxHold cycles before
// drawing a new one. Unlike Random, it lets a command stay asserted long
// enough to cross a synchronizer.
//
func Held(seed int64, maxHold int) Stimulus {
	r := rand.New(rand.NewSource(seed))
	var left []int
	return func(_ int, in []bool) {
		if left == nil {
			left = make([]int, len(in))
		}
		for i := range in {
			if left[i] == 0 {
				in[i] = r.Intn(2) == 1
				left[i] = 1 + r.Intn(maxHold)
			}
			left[i]--
		}
	}
}

type config struct {
	stim   Stimulus
	cycles int
	lag    int
}

// An Option changes the way ComparePart drives the parts.
//
type Option func(*config)

// WithStimulus replaces the default Random(1) stimulus.
//
func WithStimulus(s Stimulus) Option { return func(c *config) { c.stim = s } }

// WithCycles sets the number of clock cycles to run. The default is 2 plus
// 2^n, n being the number of inputs capped to 12.
//
func WithCycles(n int) Option { return func(c *config) { c.cycles = n } }

// WithLag declares that the first part trails the second one by n clock
// cycles: the outputs of the first part are compared with the outputs the
// second one had n cycles earlier. The first n cycles are not checked.
//
func WithLag(n int) Option { return func(c *config) { c.lag = n } }

// ComparePart runs two parts side by side on the same inputs and fails t as
// soon as their outputs differ. Both parts must have the same pins.
//
// Inputs change once per clock cycle, halfway between two rising edges, and
// outputs are compared half a cycle after the next rising edge. tpc must leave
// enough steps for the slowest part to settle.
//
func ComparePart(t *testing.T, tpc uint, part1, part2 doorsim.NewPartFn, opts ...Option) {
	t.Helper()

	ps1 := part1("")
	wires := selfWiring(ps1.Inputs, ps1.Outputs)
	ps1, ps2 := part1(wires), part2(wires)
	if err := samePins("input", ps1.Inputs, ps2.Inputs); err != nil {
		t.Fatal(err)
	}
	if err := samePins("output", ps1.Outputs, ps2.Outputs); err != nil {
		t.Fatal(err)
	}

	cfg := config{stim: Random(1), cycles: 2 + 1<<uint(min(len(ps1.Inputs), 12))}
	for _, o := range opts {
		o(&cfg)
	}

	in := make([]bool, len(ps1.Inputs))
	out := [2][]bool{make([]bool, len(ps1.Outputs)), make([]bool, len(ps1.Outputs))}

	parts := make(doorsim.Parts, 0, len(in)+2)
	for i, n := range ps1.Inputs {
		i := i
		parts = append(parts, hwlib.Input(func() bool { return in[i] })("out="+n))
	}
	inWires := selfWiring(ps1.Inputs, nil)
	for k, ps := range []doorsim.Part{ps1, ps2} {
		w, err := harness("harness"+strconv.Itoa(k+1), ps, out[k])
		if err != nil {
			t.Fatal(err)
		}
		parts = append(parts, w(inWires))
	}

	c, err := doorsim.NewCircuit(0, tpc, parts...)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	// outputs of the second part for the last lag+1 cycles
	hist := make([][]bool, cfg.lag+1)
	for i := range hist {
		hist[i] = make([]bool, len(ps2.Outputs))
	}

	start := time.Now()
	c.Tick()
	for cycle := 0; cycle < cfg.cycles; cycle++ {
		cfg.stim(cycle, in)
		c.Tock()
		c.Tick()

		ref := hist[cycle%len(hist)]
		copy(ref, out[1])
		if cycle < cfg.lag {
			continue
		}
		ref = hist[(cycle-cfg.lag)%len(hist)]
		for o := range out[0] {
			if out[0][o] != ref[o] {
				t.Fatalf("cycle %d: %s\nexpected %s=%v\ngot %v", cycle, pinState(ps1.Inputs, in), ps1.Outputs[o], ref[o], out[0][o])
			}
		}
	}

	elapsed := time.Since(start)
	t.Logf("%d components. %d steps in %v. %d clock cycles => %.2f Hz", c.Size(), c.Steps(), elapsed, c.Cycles(), float64(c.Cycles())/elapsed.Seconds())
}

// harness wraps ps in a chip that copies its outputs to out on every step.
func harness(name string, ps doorsim.Part, out []bool) (doorsim.NewPartFn, error) {
	parts := doorsim.Parts{ps}
	for i, o := range ps.Outputs {
		i := i
		parts = append(parts, hwlib.Output(func(b bool) { out[i] = b })("in="+o))
	}
	return doorsim.Chip(name, busList(ps.Inputs), "", parts...)
}

// selfWiring connects every pin to a wire of the same name.
func selfWiring(groups ...[]string) string {
	var conns []string
	for _, g := range groups {
		for _, n := range g {
			conns = append(conns, n+"="+n)
		}
	}
	return strings.Join(conns, ",")
}

// busList folds the expanded pin names of a part back into an IO declaration:
// a[0], a[1], b gives a[2], b.
func busList(pins []string) string {
	width := make(map[string]int)
	var names []string
	for _, n := range pins {
		b := strings.IndexByte(n, '[')
		if b < 0 {
			names = append(names, n)
			continue
		}
		idx, err := strconv.Atoi(n[b+1 : strings.IndexByte(n, ']')])
		if err != nil {
			panic(err)
		}
		bn := n[:b]
		if _, ok := width[bn]; !ok {
			names = append(names, bn)
		}
		if idx+1 > width[bn] {
			width[bn] = idx + 1
		}
	}
	for i, n := range names {
		if w, ok := width[n]; ok {
			names[i] = n + "[" + strconv.Itoa(w) + "]"
		}
	}
	return strings.Join(names, ",")
}

func samePins(kind string, p1, p2 []string) error {
	if len(p1) != len(p2) {
		return errors.Errorf("%s pin count: %d != %d", kind, len(p1), len(p2))
	}
	for i := range p1 {
		if p1[i] != p2[i] {
			return errors.Errorf("%s pin %d: %q != %q", kind, i, p1[i], p2[i])
		}
	}
	return nil
}

func pinState(pins []string, in []bool) string {
	s := make([]string, len(pins))
	for i, n := range pins {
		s[i] = n + "=" + strconv.FormatBool(in[i])
	}
	return strings.Join(s, ", ")
}
