// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdl

import (
	"strconv"

	"github.com/pkg/errors"
)

// Pin is a pin reference: a plain name, an indexed pin name[index] or a pin
// range name[start..end].
//
type Pin struct {
	Name  string
	Pos   int
	Start int // -1 for plain pins
	End   int // same as Start for indexed pins
}

// Expand returns the individual pin names referenced by p.
//
func (p *Pin) Expand() []string {
	if p.Start < 0 {
		return []string{p.Name}
	}
	step := 1
	if p.End < p.Start {
		step = -1
	}
	r := make([]string, 0, (p.End-p.Start)*step+1)
	for i := p.Start; ; i += step {
		r = append(r, BusPinName(p.Name, i))
		if i == p.End {
			break
		}
	}
	return r
}

// BusPinName returns the pin name for the n-th bit of the named bus.
//
func BusPinName(bus string, bit int) string {
	return bus + "[" + strconv.Itoa(bit) + "]"
}

// Assignment is a part pin to chip pin assignment: pp=pc
//
type Assignment struct {
	Part Pin
	Chip Pin
}

type parser struct {
	in string
	l  *Lexer
	i  Item
}

func newParser(in string) *parser {
	p := &parser{in: in, l: NewLexer(in)}
	p.next()
	return p
}

func (p *parser) next() { p.i = p.l.Lex() }

func (p *parser) errorf(msg string) error {
	return parseError(p.in, p.i.Pos, msg)
}

// pin parses name, name[i] or name[i..j].
func (p *parser) pin() (Pin, error) {
	if p.i.Type != Ident {
		return Pin{}, p.errorf("expected pin name, got " + p.i.String())
	}
	pin := Pin{Name: p.i.Value, Pos: p.i.Pos, Start: -1, End: -1}
	p.next()
	if p.i.Type != BracketOpen {
		return pin, nil
	}
	p.next()
	if p.i.Type != Int {
		return Pin{}, p.errorf("integer value expected after '['")
	}
	pin.Start = p.i.Int()
	pin.End = pin.Start
	p.next()
	if p.i.Type == Range {
		p.next()
		if p.i.Type != Int {
			return Pin{}, p.errorf("integer value expected after '..'")
		}
		pin.End = p.i.Int()
		p.next()
	}
	if p.i.Type != BracketClose {
		return Pin{}, p.errorf("closing ']' expected after index or range")
	}
	p.next()
	return pin, nil
}

// sep consumes a list separator. It returns false at the end of the input.
func (p *parser) sep() (bool, error) {
	switch p.i.Type {
	case EOF:
		return false, nil
	case Comma:
		p.next()
		return true, nil
	}
	return false, p.errorf("expected comma or end of input, got " + p.i.String())
}

// ParseIO parses an i/o spec like "a, b, bus[4]" and returns the individual pin
// names, bus declarations being expanded to one pin per bit:
//
//	ParseIO("in[2], sel") // returns []string{"in[0]", "in[1]", "sel"}
//
func ParseIO(spec string) ([]string, error) {
	var out []string
	p := newParser(spec)
	if p.i.Type == EOF {
		return nil, nil
	}
	for {
		pin, err := p.pin()
		if err != nil {
			return nil, err
		}
		switch {
		case pin.Start < 0:
			out = append(out, pin.Name)
		case pin.Start != pin.End:
			return nil, parseError(spec, pin.Pos, "bus ranges are not allowed in i/o specs")
		case pin.Start == 0:
			return nil, parseError(spec, pin.Pos, "invalid bus size 0")
		default:
			for i := 0; i < pin.Start; i++ {
				out = append(out, BusPinName(pin.Name, i))
			}
		}
		more, err := p.sep()
		if err != nil {
			return nil, err
		}
		if !more {
			return out, nil
		}
	}
}

// ParseAssignments parses a connection description like
// "a=x, b[0..3]=bus[4..7]".
//
func ParseAssignments(conns string) ([]Assignment, error) {
	var out []Assignment
	p := newParser(conns)
	if p.i.Type == EOF {
		return nil, nil
	}
	for {
		lhs, err := p.pin()
		if err != nil {
			return nil, err
		}
		if p.i.Type != Equal {
			return nil, p.errorf("expected '=', got " + p.i.String())
		}
		p.next()
		rhs, err := p.pin()
		if err != nil {
			return nil, err
		}
		out = append(out, Assignment{lhs, rhs})
		more, err := p.sep()
		if err != nil {
			return nil, err
		}
		if !more {
			return out, nil
		}
	}
}

func parseError(in string, pos int, msg string) error {
	return errors.Errorf("in %q at pos %d: %s", in, pos+1, msg)
}
