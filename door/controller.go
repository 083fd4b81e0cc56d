// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package door

import "go.uber.org/zap"

// An Observer is notified of every state change of a Controller.
//
type Observer interface {
	// Transition is called after the state changed from "from" to "to".
	// tick is the number of clock ticks applied so far; asynchronous resets
	// report the current tick count.
	Transition(tick uint64, from, to State)
}

// Option configures a Controller.
//
type Option func(*Controller)

// WithLogger sets the logger used to trace state transitions at debug level.
//
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithObserver registers an observer for state transitions.
//
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		if o != nil {
			c.obs = append(c.obs, o)
		}
	}
}

// Controller is a door controller instance. It exclusively owns the current
// state and the five synchronizers.
//
// A Controller starts in OPEN with all synchronizers cleared, which holds it
// in reset until the reset line has been released for two ticks.
//
// Controller is not safe for concurrent use.
//
type Controller struct {
	reset Synchronizer
	cmd   [CommandBits]Synchronizer
	state State
	ticks uint64

	log *zap.SugaredLogger
	obs []Observer
}

// NewController returns a new Controller in OPEN state.
//
func NewController(opts ...Option) *Controller {
	c := &Controller{state: Open, log: zap.NewNop().Sugar()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Tick applies one rising clock edge with the given raw inputs and returns the
// resulting outputs.
//
// An engaged reset is asynchronous and takes effect before the edge. Then all
// reads observe pre-tick values: the synchronized lines are sampled before the
// synchronizers shift.
//
func (c *Controller) Tick(in Inputs) Outputs {
	if !in.ResetN {
		c.AssertReset()
	}

	reset := !c.reset.Out()
	var cmd Command
	for i := range c.cmd {
		if c.cmd[i].Out() {
			cmd |= 1 << uint(i)
		}
	}

	c.reset.Clock(in.ResetN)
	for i := range c.cmd {
		c.cmd[i].Clock(in.Command.Bit(i))
	}

	c.ticks++
	c.setState(Next(c.state, reset, cmd))
	return c.Outputs()
}

// AssertReset applies the asynchronous part of an engaged reset line: the reset
// synchronizer is cleared and the state is forced to OPEN without waiting for a
// clock edge.
//
func (c *Controller) AssertReset() {
	c.reset.Clear()
	c.setState(Open)
}

func (c *Controller) setState(s State) {
	from := c.state
	c.state = s
	if from == s {
		return
	}
	c.log.Debugw("state transition", "tick", c.ticks, "from", from, "to", s)
	for _, o := range c.obs {
		o.Transition(c.ticks, from, s)
	}
}

// State returns the current state.
//
func (c *Controller) State() State { return c.state }

// Outputs returns the encoded current state.
//
func (c *Controller) Outputs() Outputs { return Encode(c.state) }

// Ticks returns the number of clock ticks applied so far.
//
func (c *Controller) Ticks() uint64 { return c.ticks }

// InReset returns true while the synchronized reset line is engaged.
//
func (c *Controller) InReset() bool { return !c.reset.Out() }
