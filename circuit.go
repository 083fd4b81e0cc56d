// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package doorsim

import (
	"math/bits"
	"runtime"
	"sync"

	"github.com/pkg/errors"
)

// Circuit is a running simulation of a set of parts. Wire states live in two
// frames: components read the current frame and write the next one, and the
// frames are swapped once every component has run. A step therefore costs one
// unit of propagation delay per gate.
//
type Circuit struct {
	cur   []bool
	next  []bool
	wires int
	cs    []Component

	spc   uint // steps per clock cycle, a power of two
	steps uint

	pool pool
}

// NewCircuit mounts parts and starts the simulation workers.
//
// workers sets how many goroutines update the components on each step; 0 or
// less means GOMAXPROCS.
//
// stepsPerCycle is the length of one period of the Clk wire in simulation
// steps. It is rounded up to a power of two, 2 at least, and must exceed the
// deepest gate path between two clocked parts or their inputs will not have
// settled on the rising edge.
//
// Dispose must be called to stop the workers.
//
func NewCircuit(workers int, stepsPerCycle uint, parts ...Part) (*Circuit, error) {
	if len(parts) == 0 {
		return nil, errors.New("empty part list")
	}
	c := &Circuit{wires: cstCount, spc: cyclePow2(stepsPerCycle)}
	top, err := Chip("CIRCUIT", "", "", parts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create chip wrapper")
	}
	c.cs = append(top("").Mount(newSocket(c)), (*Circuit).clock)
	c.cur = make([]bool, c.wires)
	c.next = make([]bool, c.wires)
	c.cur[cstTrue], c.next[cstTrue] = true, true
	c.cur[cstClk] = true

	c.pool.start(c, workers)
	return c, nil
}

func cyclePow2(n uint) uint {
	if n <= 2 {
		return 2
	}
	return 1 << uint(bits.Len(n-1))
}

// clock drives the Clk wire: high for the first half of each cycle, low for
// the second.
func (c *Circuit) clock() {
	if c.cur[cstFalse] || !c.cur[cstTrue] {
		panic("true or false constants have been overwritten")
	}
	c.next[cstClk] = (c.steps+1)&(c.spc/2) == 0
}

func (c *Circuit) allocPin() int {
	c.wires++
	return c.wires - 1
}

// Dispose stops the worker goroutines.
//
func (c *Circuit) Dispose() {
	c.pool.stop()
}

// Steps returns the number of steps run so far.
//
func (c *Circuit) Steps() uint { return c.steps }

// SPC returns the number of steps per clock cycle.
//
func (c *Circuit) SPC() uint { return c.spc }

// Cycles returns the number of completed clock cycles.
//
func (c *Circuit) Cycles() uint { return c.steps / c.spc }

// AtTick reports whether the current step is a rising edge of Clk.
//
func (c *Circuit) AtTick() bool {
	return c.steps&(c.spc-1) == 0
}

// AtTock reports whether the current step is a falling edge of Clk.
//
func (c *Circuit) AtTock() bool {
	return c.steps&(c.spc-1) == c.spc/2
}

// Get returns the state of wire n in the current frame. n comes from one of
// the Socket methods.
//
func (c *Circuit) Get(n int) bool { return c.cur[n] }

// Set sets the state of wire n in the next frame. n comes from one of the
// Socket methods.
//
func (c *Circuit) Set(n int, s bool) { c.next[n] = s }

// Step runs every component once and swaps the frames.
//
func (c *Circuit) Step() {
	c.pool.run()
	c.steps++
	c.cur, c.next = c.next, c.cur
}

// Tick steps until Clk is low, i.e. to the middle of the current cycle.
//
func (c *Circuit) Tick() {
	for c.Get(cstClk) {
		c.Step()
	}
}

// Tock steps until Clk is high, i.e. to the start of the next cycle. Clocked
// parts have latched their inputs once it returns.
//
func (c *Circuit) Tock() {
	for !c.Get(cstClk) {
		c.Step()
	}
}

// TickTock runs one full clock cycle.
//
func (c *Circuit) TickTock() {
	c.Tick()
	c.Tock()
}

// Size returns the number of mounted components, the clock included.
//
func (c *Circuit) Size() int { return len(c.cs) }

// pool splits the components of a circuit into even batches, one goroutine
// per batch, and runs all of them once per step.
type pool struct {
	wc []chan struct{}
	wg sync.WaitGroup
}

func (p *pool) start(c *Circuit, workers int) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(-1)
	}
	cs := c.cs
	size := (len(cs) + workers - 1) / workers
	for len(cs) > 0 {
		n := size
		if n > len(cs) {
			n = len(cs)
		}
		wc := make(chan struct{}, 1)
		p.wc = append(p.wc, wc)
		go p.work(c, cs[:n], wc)
		cs = cs[n:]
	}
}

func (p *pool) work(c *Circuit, cs []Component, wc <-chan struct{}) {
	defer p.wg.Done()
	for range wc {
		for _, f := range cs {
			f(c)
		}
		p.wg.Done()
	}
}

func (p *pool) run() {
	p.wg.Add(len(p.wc))
	for _, wc := range p.wc {
		wc <- struct{}{}
	}
	p.wg.Wait()
}

func (p *pool) stop() {
	p.wg.Add(len(p.wc))
	for _, wc := range p.wc {
		close(wc)
	}
	p.wg.Wait()
}
