// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package door

import (
	"strings"

	"github.com/pkg/errors"
)

// Command is the 4 bit command bus. Several bits may be set at once.
//
type Command uint8

// Command bits, in bus order.
//
const (
	CmdClose Command = 1 << iota
	CmdOpen
	CmdLock
	CmdUnlock

	// CommandBits is the width of the command bus.
	CommandBits = 4
)

var commandNames = [CommandBits]string{"close", "open", "lock", "unlock"}

// Has returns true if all the bits of x are set in c.
//
func (c Command) Has(x Command) bool {
	return c&x == x
}

// Bit returns the state of command bus line i.
//
func (c Command) Bit(i int) bool {
	return c&(1<<uint(i)) != 0
}

func (c Command) String() string {
	var b strings.Builder
	for i, n := range commandNames {
		if !c.Bit(i) {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		b.WriteString(n)
	}
	if b.Len() == 0 {
		return "none"
	}
	return b.String()
}

// ParseCommand returns the command bit for the given name: close, open, lock
// or unlock.
//
func ParseCommand(name string) (Command, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, cn := range commandNames {
		if cn == n {
			return 1 << uint(i), nil
		}
	}
	return 0, errors.Errorf("unknown command %q", name)
}

// Inputs is the set of raw external inputs sampled on a clock tick.
//
type Inputs struct {
	// ResetN is the active low reset line: false means reset is engaged.
	ResetN  bool
	Command Command
}
