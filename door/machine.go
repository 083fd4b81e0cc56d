// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package door

// Next returns the state following cur given the synchronized reset and
// command lines.
//
// Reset dominates. From CLOSED, OPEN wins over LOCK. From LOCKED, UNLOCK wins
// over OPEN or CLOSE; OPEN or CLOSE alone is an invalid operation and leads to
// ERROR. ERROR only leaves on reset. Undefined states fall back to OPEN.
//
func Next(cur State, reset bool, cmd Command) State {
	if reset {
		return Open
	}
	switch cur {
	case Open:
		if cmd.Has(CmdClose) {
			return Closed
		}
	case Closed:
		if cmd.Has(CmdOpen) {
			return Open
		}
		if cmd.Has(CmdLock) {
			return Locked
		}
	case Locked:
		if cmd.Has(CmdUnlock) {
			return Closed
		}
		if cmd.Has(CmdClose) || cmd.Has(CmdOpen) {
			return Error
		}
	case Error:
	default:
		return Open
	}
	return cur
}
