// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package doorsim

import (
	"github.com/pkg/errors"
)

type chip struct {
	parts Parts
}

func (c *chip) mount(s *Socket) []Component {
	var updaters []Component

	for _, p := range c.parts {
		// make a sub-socket
		sub := newSocket(s.c)
		for _, cn := range p.Conns {
			sub.m[cn.PP] = s.PinOrNew(cn.CP)
		}
		// wire unknown pins: inputs to False, outputs to a dangling wire.
		// Chip() makes sure that all connected inputs are driven.
		for _, n := range p.Inputs {
			if _, ok := sub.m[n]; !ok {
				sub.m[n] = cstFalse
			}
		}
		for _, n := range p.Outputs {
			if _, ok := sub.m[n]; !ok {
				sub.m[n] = s.c.allocPin()
			}
		}
		updaters = append(updaters, p.Mount(sub)...)
	}
	return updaters
}

// Chip composes existing parts into a new part packaged into a chip.
// The pin names specified as inputs and outputs will be the inputs
// and outputs of the chip.
//
// An Xor gate could be created like this:
//
//	xor, err := Chip("XOR", "a, b", "out",
//		hwlib.Nand("a=a, b=b, out=nandAB"),
//		hwlib.Nand("a=a, b=nandAB, out=w0"),
//		hwlib.Nand("a=b, b=nandAB, out=w1"),
//		hwlib.Nand("a=w0, b=w1, out=out"),
//	)
//
// The returned value is a function of type NewPartFn that can be used to
// compose the new part with others into other chips:
//
//	xnor, err := Chip("XNOR", "a, b", "out",
//		xor("a=a, b=b, out=xorAB"),
//		hwlib.Not("in=xorAB, out=out"),
//	)
//
// Any wire that is neither a chip pin nor a constant is internal to the chip.
// Chip reports unknown part pin names, part pins connected twice, outputs
// wired to constants, to chip inputs or to an already driven wire, and inputs
// wired to a wire that nothing drives.
//
func Chip(name string, inputs string, outputs string, parts ...Part) (NewPartFn, error) {
	ins, err := ParseIO(inputs)
	if err != nil {
		return nil, errors.Wrap(err, name+" inputs")
	}
	outs, err := ParseIO(outputs)
	if err != nil {
		return nil, errors.Wrap(err, name+" outputs")
	}

	chipIns := make(map[string]bool, len(ins))
	for _, i := range ins {
		chipIns[i] = true
	}
	// wire name -> driving part
	drivers := make(map[string]*PartSpec)

	for _, p := range parts {
		seen := make(map[string]bool, len(p.Conns))
		for _, cn := range p.Conns {
			if seen[cn.PP] {
				return nil, errors.New(p.Name + "." + cn.PP + ": pin connected more than once")
			}
			seen[cn.PP] = true
			switch {
			case p.isOutput(cn.PP):
				pn := p.Name + "." + cn.PP + ":" + cn.CP
				switch {
				case isConstant(cn.CP):
					return nil, errors.New(pn + ": output pin connected to constant " + cn.CP + " input")
				case chipIns[cn.CP]:
					return nil, errors.New(pn + ": chip input pin used as output")
				case drivers[cn.CP] != nil:
					return nil, errors.New(pn + ": output pin already used as output")
				}
				drivers[cn.CP] = p.PartSpec
			case p.isInput(cn.PP):
			default:
				return nil, errors.New("invalid pin name " + cn.PP + " for part " + p.Name)
			}
		}
	}
	for _, p := range parts {
		for _, cn := range p.Conns {
			if !p.isInput(cn.PP) || isConstant(cn.CP) || chipIns[cn.CP] || drivers[cn.CP] != nil {
				continue
			}
			return nil, errors.New("pin " + cn.CP + " not connected to any output")
		}
	}

	c := &chip{parts: append(Parts(nil), parts...)}
	spec := &PartSpec{
		Name:    name,
		Inputs:  ins,
		Outputs: outs,
		Mount:   c.mount,
	}
	return spec.NewPart, nil
}
