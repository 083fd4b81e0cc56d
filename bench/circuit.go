// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bench

import (
	"github.com/db47h/doorsim"
	"github.com/db47h/doorsim/door"
	"github.com/db47h/doorsim/hwlib"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// the reset path of the controller is 8 gates deep.
const circuitSPC = 16

// circuitEngine runs the gate-level controller. Its inputs are sampled on the
// rising edge that ends the tick they were applied in, so it trails the model
// by one tick.
type circuitEngine struct {
	c     *doorsim.Circuit
	in    door.Inputs
	out   door.Outputs
	state door.State

	log *zap.SugaredLogger
	obs []door.Observer
}

func newCircuitEngine(log *zap.SugaredLogger, obs []door.Observer) (*circuitEngine, error) {
	e := &circuitEngine{state: door.Open, log: log, obs: obs}
	c, err := doorsim.NewCircuit(0, circuitSPC,
		hwlib.DoorInputs(func() door.Inputs { return e.in })(hwlib.DoorInWiring),
		hwlib.DoorController(hwlib.DoorWiring),
		hwlib.DoorOutputs(func(o door.Outputs) { e.out = o })(hwlib.DoorOutWiring),
	)
	if err != nil {
		return nil, errors.Wrap(err, "build circuit")
	}
	e.c = c
	return e, nil
}

func (e *circuitEngine) tick(in door.Inputs) (door.State, door.Outputs) {
	e.in = in
	e.c.TickTock()
	n := uint64(e.c.Cycles())
	if st := door.Decode(e.out.StateCode); st != e.state {
		from := e.state
		e.state = st
		e.log.Debugw("state transition", "tick", n, "from", from, "to", st)
		for _, o := range e.obs {
			o.Transition(n, from, st)
		}
	}
	return e.state, e.out
}

func (e *circuitEngine) ticks() uint64 { return uint64(e.c.Cycles()) }
func (e *circuitEngine) close()        { e.c.Dispose() }
