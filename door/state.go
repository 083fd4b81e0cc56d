// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package door

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// State is the door controller state.
//
type State uint8

// Controller states. Error is absorbing: only a reset leaves it.
//
const (
	Open State = iota
	Closed
	Locked
	Error
)

var stateNames = [...]string{
	Open:   "OPEN",
	Closed: "CLOSED",
	Locked: "LOCKED",
	Error:  "ERROR",
}

// Valid reports whether s is one of the four defined states.
//
func (s State) Valid() bool {
	return s <= Error
}

func (s State) String() string {
	if !s.Valid() {
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
	return stateNames[s]
}

// ParseState returns the state with the given name. Names are case
// insensitive.
//
func ParseState(name string) (State, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	for s, sn := range stateNames {
		if sn == n {
			return State(s), nil
		}
	}
	return Open, errors.Errorf("unknown state %q", name)
}
