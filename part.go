// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package doorsim

// A Component is a component in a circuit that can Get and Set states.
//
type Component func(c *Circuit)

// A MountFn mounts a part into socket s. MountFn's should query
// the socket for assigned pin numbers and return closures around
// these pin numbers.
//
// For example, a Not gate can be defined like this:
//
//	not := &PartSpec{
//		Name: "Not",
//		Inputs: IO("in"),
//		Outputs: IO("out"),
//		Mount: func (s *Socket) []Component {
//			in, out := s.Pin("in"), s.Pin("out")
//			return []Component{
//				func (c *Circuit) { c.Set(out, !c.Get(in)) },
//			}
//		}}
//
// State held by a part instance must be allocated inside the MountFn, never in
// the PartSpec, so that every mounted instance owns its own.
//
type MountFn func(s *Socket) []Component

// A PartSpec wraps a part specification (its blueprint).
//
type PartSpec struct {
	// Part name.
	Name string
	// Input pin names. Must be distinct pin names.
	// Use the IO() function to expand an input description like
	// "a, b, bus[2]" to []string{"a", "b", "bus[0]", "bus[1]"}
	Inputs []string
	// Output pin names. Must be distinct pin names.
	Outputs []string

	// Mount function (see MountFn).
	Mount MountFn
}

// NewPart is a NewPartFn that wraps p with the given connections into a Part.
// It panics if the connection string cannot be parsed.
//
func (p *PartSpec) NewPart(connections string) Part {
	conns, err := ParseConnections(connections)
	if err != nil {
		panic(err)
	}
	return Part{p, conns}
}

// A NewPartFn is a function that takes a connection configuration and returns a
// new Part. See ParseConnections for the syntax of the connection configuration
// string.
//
type NewPartFn func(c string) Part

// A Part wraps a part specification together with its connections within a host
// chip.
//
type Part struct {
	*PartSpec
	Conns []Connection
}

// Parts is a convenience wrapper for []Part.
//
type Parts []Part

func (p *PartSpec) isInput(name string) bool {
	for _, n := range p.Inputs {
		if n == name {
			return true
		}
	}
	return false
}

func (p *PartSpec) isOutput(name string) bool {
	for _, n := range p.Outputs {
		if n == name {
			return true
		}
	}
	return false
}
