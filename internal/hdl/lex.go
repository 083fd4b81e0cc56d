// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hdl implements a lexer and parser for i/o specs and connection
// descriptions.
//
package hdl

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Type is a token type.
//
type Type int

// Tokens
const (
	EOF Type = iota
	Raw
	Ident
	BracketOpen
	BracketClose
	Comma
	Int
	Range
	Equal
)

var typeNames = [...]string{
	EOF:          "end of input",
	Raw:          "character",
	Ident:        "identifier",
	BracketOpen:  "'['",
	BracketClose: "']'",
	Comma:        "','",
	Int:          "integer",
	Range:        "'..'",
	Equal:        "'='",
}

func (t Type) String() string { return typeNames[t] }

// Item is a lexed token.
//
type Item struct {
	Type  Type
	Pos   int // byte offset in the input
	Value string
}

// Int returns the value of an Int token.
//
func (i Item) Int() int {
	n, _ := strconv.Atoi(i.Value)
	return n
}

func (i Item) String() string {
	switch i.Type {
	case EOF, BracketOpen, BracketClose, Comma, Range, Equal:
		return i.Type.String()
	}
	return i.Type.String() + " " + strconv.Quote(i.Value)
}

// Lexer splits an input string into tokens.
//
type Lexer struct {
	in  string
	pos int
}

// NewLexer returns a new lexer for i/o specs and connection descriptions.
//
func NewLexer(input string) *Lexer {
	return &Lexer{in: input}
}

// Lex returns the next token. Once the end of the input is reached, it only
// returns EOF.
//
func (l *Lexer) Lex() Item {
	for l.pos < len(l.in) {
		r, sz := utf8.DecodeRuneInString(l.in[l.pos:])
		if !unicode.IsSpace(r) {
			break
		}
		l.pos += sz
	}
	if l.pos >= len(l.in) {
		return Item{EOF, l.pos, ""}
	}

	start := l.pos
	r, sz := utf8.DecodeRuneInString(l.in[l.pos:])
	l.pos += sz
	switch {
	case unicode.IsLetter(r) || r == '_':
		l.acceptWhile(func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' })
		return Item{Ident, start, l.in[start:l.pos]}
	case '0' <= r && r <= '9':
		l.acceptWhile(func(r rune) bool { return '0' <= r && r <= '9' })
		return Item{Int, start, l.in[start:l.pos]}
	case r == '[':
		return Item{BracketOpen, start, "["}
	case r == ']':
		return Item{BracketClose, start, "]"}
	case r == ',':
		return Item{Comma, start, ","}
	case r == '=':
		return Item{Equal, start, "="}
	case r == '.' && l.pos < len(l.in) && l.in[l.pos] == '.':
		l.pos++
		return Item{Range, start, ".."}
	}
	return Item{Raw, start, string(r)}
}

func (l *Lexer) acceptWhile(f func(rune) bool) {
	for l.pos < len(l.in) {
		r, sz := utf8.DecodeRuneInString(l.in[l.pos:])
		if !f(r) {
			return
		}
		l.pos += sz
	}
}
