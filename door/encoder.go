// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package door

// Indicator lamp bits.
//
const (
	IndOpen   uint8 = 1 << iota // bit 0
	IndClosed                   // bit 1
	IndLocked                   // bit 2

	// IndicatorBits is the width of the indicator bus.
	IndicatorBits = 3
	// CodeBits is the width of the state code bus.
	CodeBits = 2
)

var (
	codes      = [...]uint8{Open: 0b00, Closed: 0b01, Locked: 0b10, Error: 0b11}
	indicators = [...]uint8{
		Open:   IndOpen,
		Closed: IndClosed,
		Locked: IndLocked,
		Error:  IndOpen | IndClosed | IndLocked,
	}
)

// Outputs is the encoded view of a state.
//
type Outputs struct {
	Indicator uint8 // indicator[3]
	StateCode uint8 // state_code[2]
}

// Code returns the 2 bit state code of s. Undefined states encode as ERROR.
//
func (s State) Code() uint8 {
	if !s.Valid() {
		return codes[Error]
	}
	return codes[s]
}

// Indicator returns the 3 bit indicator mask of s. Undefined states light all
// lamps, like ERROR.
//
func (s State) Indicator() uint8 {
	if !s.Valid() {
		return indicators[Error]
	}
	return indicators[s]
}

// Encode returns both output views of s.
//
func Encode(s State) Outputs {
	return Outputs{Indicator: s.Indicator(), StateCode: s.Code()}
}

// Decode returns the state for a 2 bit state code.
//
func Decode(code uint8) State {
	return State(code & 0b11)
}
