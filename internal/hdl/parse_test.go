// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hdl_test

import (
	"reflect"
	"testing"

	"github.com/db47h/doorsim/internal/hdl"
)

func TestParseIO(t *testing.T) {
	td := []struct {
		in  string
		out []string
		err string
	}{
		{"", nil, ""},
		{"  ", nil, ""},
		{"a", []string{"a"}, ""},
		{"reset_n, command[4]", []string{"reset_n", "command[0]", "command[1]", "command[2]", "command[3]"}, ""},
		{"in[2] , sel", []string{"in[0]", "in[1]", "sel"}, ""},
		{"a,", nil, `in "a," at pos 3: expected pin name, got end of input`},
		{"a b", nil, `in "a b" at pos 3: expected comma or end of input, got identifier "b"`},
		{"bus[]", nil, `in "bus[]" at pos 5: integer value expected after '['`},
		{"bus[0]", nil, `in "bus[0]" at pos 1: invalid bus size 0`},
		{"bus[2..3]", nil, `in "bus[2..3]" at pos 1: bus ranges are not allowed in i/o specs`},
		{"bus[4", nil, `in "bus[4" at pos 6: closing ']' expected after index or range`},
		{"a, %", nil, `in "a, %" at pos 4: expected pin name, got character "%"`},
	}
	for _, d := range td {
		t.Run(d.in, func(t *testing.T) {
			out, err := hdl.ParseIO(d.in)
			if err != nil {
				if d.err == "" {
					t.Fatalf("unexpected error: %v", err)
				}
				if err.Error() != d.err {
					t.Fatalf("expected error %q, got %q", d.err, err.Error())
				}
				return
			}
			if d.err != "" {
				t.Fatalf("expected error %q", d.err)
			}
			if !reflect.DeepEqual(out, d.out) {
				t.Fatalf("expected %v, got %v", d.out, out)
			}
		})
	}
}

func TestParseAssignments(t *testing.T) {
	as, err := hdl.ParseAssignments("in=reset_n, code[0..1]=state_code[0..1], b=bus[3], x[2..0]=y[0..2]")
	if err != nil {
		t.Fatal(err)
	}
	exp := [][2][]string{
		{{"in"}, {"reset_n"}},
		{{"code[0]", "code[1]"}, {"state_code[0]", "state_code[1]"}},
		{{"b"}, {"bus[3]"}},
		{{"x[2]", "x[1]", "x[0]"}, {"y[0]", "y[1]", "y[2]"}},
	}
	if len(as) != len(exp) {
		t.Fatalf("expected %d assignments, got %d", len(exp), len(as))
	}
	for i, a := range as {
		if l := a.Part.Expand(); !reflect.DeepEqual(l, exp[i][0]) {
			t.Errorf("assignment %d: expected lhs %v, got %v", i, exp[i][0], l)
		}
		if r := a.Chip.Expand(); !reflect.DeepEqual(r, exp[i][1]) {
			t.Errorf("assignment %d: expected rhs %v, got %v", i, exp[i][1], r)
		}
	}

	for _, bad := range []string{"a", "a=", "=b", "a=b c=d", "a[0..]=b", "a=b[1..2"} {
		if _, err := hdl.ParseAssignments(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
