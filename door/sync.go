// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package door

// A Synchronizer is a two stage shift register that brings an asynchronous
// line into the clock domain.
//
//	Function: out(t) = in(t-2), cleared whenever in is low.
//
// The zero value is a cleared synchronizer.
//
type Synchronizer struct {
	stage1 bool
	stage2 bool
}

// Clock applies one rising clock edge with raw as the line state. A low line
// clears both stages; this check has priority over the shift.
//
func (s *Synchronizer) Clock(raw bool) {
	if !raw {
		s.Clear()
		return
	}
	s.stage2, s.stage1 = s.stage1, raw
}

// Clear forces both stages low.
//
func (s *Synchronizer) Clear() {
	s.stage1, s.stage2 = false, false
}

// Out returns the synchronized value (stage 2).
//
func (s *Synchronizer) Out() bool {
	return s.stage2
}

// Stages returns the content of both stages.
//
func (s *Synchronizer) Stages() (stage1, stage2 bool) {
	return s.stage1, s.stage2
}
