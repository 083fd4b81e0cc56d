// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package doorsim_test

import (
	"testing"

	hw "github.com/db47h/doorsim"
	"github.com/db47h/doorsim/door"
	hl "github.com/db47h/doorsim/hwlib"
	"github.com/db47h/doorsim/hwtest"
)

type indicatorDecoder struct {
	Code      [door.CodeBits]int      `hw:"in"`
	Indicator [door.IndicatorBits]int `hw:"out"`
}

func (d *indicatorDecoder) Update(c *hw.Circuit) {
	st := door.Decode(uint8(hl.Int64(c, d.Code[:])))
	hl.SetInt64(c, d.Indicator[:], int64(st.Indicator()))
}

func Test_MakePart(t *testing.T) {
	p := hw.MakePart((*indicatorDecoder)(nil))
	if p.Name != "indicatorDecoder" {
		t.Fatalf("Name = %q", p.Name)
	}
	hwtest.ComparePart(t, testTPC, hl.Encoder, p.NewPart)
}

type badTag struct {
	In int `hw:"inout"`
}

func (*badTag) Update(*hw.Circuit) {}

type badType struct {
	In bool `hw:"in"`
}

func (*badType) Update(*hw.Circuit) {}

type updaterFunc func(*hw.Circuit)

func (f updaterFunc) Update(c *hw.Circuit) { f(c) }

func Test_MakePart_panics(t *testing.T) {
	td := []struct {
		name string
		u    hw.Updater
	}{
		{"tag", (*badTag)(nil)},
		{"type", (*badType)(nil)},
		{"kind", updaterFunc(nil)},
	}
	for _, d := range td {
		d := d
		t.Run(d.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("MakePart did not panic")
				}
			}()
			hw.MakePart(d.u)
		})
	}
}
