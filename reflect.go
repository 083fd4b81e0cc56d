// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package doorsim

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// Updater is the interface that custom components built using reflection must implement.
// See MakePart.
//
type Updater interface {
	Update(*Circuit)
}

// MakePart wraps an Updater into a custom component.
// Input/output pins are identified by field tags.
//
// The field tag must be `hw:"in"` or `hw:"out"` to identify input and output
// pins. By default, the pin name is the field name in lowercase. A specific
// field name can be forced by adding it in the tag: `hw:"in,pin_name"`.
//
// Pins must be of type int, buses arrays of int. The pin fields of a mounted
// instance hold pin numbers to be used with Circuit.Get and Circuit.Set.
// Untagged fields are private to each mounted instance and can hold state.
//
func MakePart(t Updater) *PartSpec {
	typ := reflect.TypeOf(t)
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if k := typ.Kind(); k != reflect.Struct {
		panic(errors.Errorf("unsupported type %q for %q", k, typ.Name()))
	}

	pins := structPins(typ)
	sp := &PartSpec{Name: typ.Name()}
	for _, p := range pins {
		names := p.names()
		if p.input {
			sp.Inputs = append(sp.Inputs, names...)
		} else {
			sp.Outputs = append(sp.Outputs, names...)
		}
	}
	sp.Mount = func(s *Socket) []Component {
		v := reflect.New(typ)
		e := v.Elem()
		for _, p := range pins {
			fv := e.Field(p.field)
			if p.bus < 0 {
				fv.SetInt(int64(s.Pin(p.name)))
				continue
			}
			for i := 0; i < p.bus; i++ {
				fv.Index(i).SetInt(int64(s.Pin(BusPinName(p.name, i))))
			}
		}
		return []Component{v.Interface().(Updater).Update}
	}
	return sp
}

type fieldPin struct {
	field int
	name  string
	input bool
	bus   int // bus width, -1 for single pins
}

func (p *fieldPin) names() []string {
	if p.bus < 0 {
		return []string{p.name}
	}
	ns := make([]string, p.bus)
	for i := range ns {
		ns[i] = BusPinName(p.name, i)
	}
	return ns
}

func structPins(typ reflect.Type) []fieldPin {
	var pins []fieldPin
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		tag, ok := f.Tag.Lookup("hw")
		if !ok {
			continue
		}
		p := fieldPin{field: i, name: strings.ToLower(f.Name), bus: -1}
		tv := strings.Split(tag, ",")
		if len(tv) > 2 {
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}
		if len(tv) == 2 && tv[1] != "" {
			p.name = tv[1]
		}
		switch tv[0] {
		case "in":
			p.input = true
		case "out":
		default:
			panic(errors.Errorf("unsupported tag %q for field %q in %q", tag, f.Name, typ.Name()))
		}

		ft := f.Type
		switch k := ft.Kind(); {
		case k == reflect.Array && ft.Elem().Kind() == reflect.Int:
			p.bus = ft.Len()
		case k == reflect.Int:
		default:
			panic(errors.Errorf("unsupported type %q for field %q in %q", k, f.Name, typ.Name()))
		}
		pins = append(pins, p)
	}
	return pins
}
