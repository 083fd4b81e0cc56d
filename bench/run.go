// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bench

import (
	"context"

	"github.com/db47h/doorsim/door"
	"github.com/db47h/doorsim/internal/logger"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"go.uber.org/zap"
)

// ErrMismatch is the cause of the error returned by Run when the final state
// differs from the one expected by the script.
//
var ErrMismatch = errors.New("final state mismatch")

// A Sample is the controller state after one tick.
//
type Sample struct {
	Tick    uint64
	Inputs  door.Inputs
	State   door.State
	Outputs door.Outputs
}

// Result is the outcome of a script run.
//
type Result struct {
	ID      xid.ID
	Name    string
	Engine  Engine
	Samples []Sample
	Final   door.State
}

type config struct {
	engine Engine
	obs    []door.Observer
}

// Option configures a run.
//
type Option func(*config)

// WithObserver registers an observer for state transitions.
//
func WithObserver(o door.Observer) Option {
	return func(c *config) {
		if o != nil {
			c.obs = append(c.obs, o)
		}
	}
}

// WithEngine overrides the engine requested by the script.
//
func WithEngine(e Engine) Option {
	return func(c *config) { c.engine = e }
}

// an engine applies one clock tick and reports the resulting state.
type engine interface {
	tick(in door.Inputs) (door.State, door.Outputs)
	ticks() uint64
	close()
}

type modelEngine struct {
	c *door.Controller
}

func newModelEngine(log *zap.SugaredLogger, obs []door.Observer) *modelEngine {
	opts := []door.Option{door.WithLogger(log)}
	for _, o := range obs {
		opts = append(opts, door.WithObserver(o))
	}
	return &modelEngine{door.NewController(opts...)}
}

func (e *modelEngine) tick(in door.Inputs) (door.State, door.Outputs) {
	out := e.c.Tick(in)
	return e.c.State(), out
}

func (e *modelEngine) ticks() uint64 { return e.c.Ticks() }
func (e *modelEngine) close()        {}

// Run runs the script s on a fresh controller. Every run gets a unique id that
// tags its log entries. The context is checked between steps.
//
// If the script expects a final state and the run ends in another one, Run
// returns the result together with an error whose cause is ErrMismatch.
//
func Run(ctx context.Context, s *Script, opts ...Option) (*Result, error) {
	if err := Validate(s); err != nil {
		return nil, err
	}
	cfg := config{engine: s.Engine}
	for _, o := range opts {
		o(&cfg)
	}

	id := xid.New()
	ctx = logger.WithKV(logger.WithName(ctx, "bench"), "run", id.String())
	log := logger.FromContext(ctx)

	var e engine
	switch cfg.engine {
	case EngineModel:
		e = newModelEngine(log, cfg.obs)
	case EngineCircuit:
		ce, err := newCircuitEngine(log, cfg.obs)
		if err != nil {
			return nil, err
		}
		e = ce
	default:
		return nil, errors.Errorf("unknown engine %q", cfg.engine)
	}
	defer e.close()

	logger.InfoKV(ctx, "run started", "script", s.Name, "engine", cfg.engine, "ticks", s.Ticks())

	r := &Result{ID: id, Name: s.Name, Engine: cfg.engine, Final: door.Open}
	r.Samples = make([]Sample, 0, s.Ticks())
	for i := range s.Steps {
		if err := ctx.Err(); err != nil {
			return r, errors.Wrapf(err, "step %d", i+1)
		}
		in := s.Steps[i].Inputs()
		for n := 0; n < s.Steps[i].Ticks; n++ {
			st, out := e.tick(in)
			r.Samples = append(r.Samples, Sample{Tick: e.ticks(), Inputs: in, State: st, Outputs: out})
			r.Final = st
		}
	}

	logger.InfoKV(ctx, "run finished", "ticks", e.ticks(), "state", r.Final)

	if exp, ok := s.Expected(); ok && exp != r.Final {
		logger.WarnKV(ctx, "unexpected final state", "expected", exp, "got", r.Final)
		return r, errors.Wrapf(ErrMismatch, "%s: expected %v, got %v", s.Name, exp, r.Final)
	}
	return r, nil
}
