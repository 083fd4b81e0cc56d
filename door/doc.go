// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package door is the behavioural model of a synchronous automatic door
controller.

Five raw lines (the active low reset and the four command bits CLOSE, OPEN, LOCK
and UNLOCK) each go through their own two stage Synchronizer. On every clock
tick the state machine reads the synchronized lines as they were before the
tick, the synchronizers shift in the raw lines, and the new state is computed
by Next. Outputs are a pure function of the state:

	state    state_code  indicator
	OPEN     00          001
	CLOSED   01          010
	LOCKED   10          100
	ERROR    11          111

ERROR is entered when OPEN or CLOSE is requested while LOCKED and is only left
through reset.

A Controller holds all the mutable state; a harness creates one and drives it
with Tick. The hwlib package provides the same controller as circuit parts.
*/
package door
