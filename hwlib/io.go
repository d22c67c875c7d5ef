// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/ttsim"
)

// source returns the spec of a part driving the value returned by read on
// its output pins. A width of 0 means a single pin named out, otherwise a bus
// out[width].
func source(name string, width int, read func() int64) *ttsim.PartSpec {
	pins := []string{pOut}
	if width > 0 {
		pins = bus(width, pOut)
	}
	return &ttsim.PartSpec{
		Name:    name,
		Outputs: pins,
		Mount: func(s *ttsim.Socket) []ttsim.Component {
			b := make(ttsim.Bus, len(pins))
			for i, p := range pins {
				b[i] = s.Pin(p)
			}
			return []ttsim.Component{func(c *ttsim.Circuit) { b.SetInt64(c, read()) }}
		},
	}
}

// sink is the converse of source: it passes the value on its input pins to
// write.
func sink(name string, width int, write func(int64)) *ttsim.PartSpec {
	pins := []string{pIn}
	if width > 0 {
		pins = bus(width, pIn)
	}
	return &ttsim.PartSpec{
		Name:   name,
		Inputs: pins,
		Mount: func(s *ttsim.Socket) []ttsim.Component {
			b := make(ttsim.Bus, len(pins))
			for i, p := range pins {
				b[i] = s.Pin(p)
			}
			return []ttsim.Component{func(c *ttsim.Circuit) { write(b.GetInt64(c)) }}
		},
	}
}

// Input returns a part driving its out pin with the value returned by f. f
// is called once per step.
//
func Input(f func() bool) ttsim.NewPartFn {
	return source("Input", 0, func() int64 {
		if f() {
			return 1
		}
		return 0
	}).NewPart
}

// Output returns a part calling f with the state of its in pin on every step.
//
func Output(f func(bool)) ttsim.NewPartFn {
	return sink("Output", 0, func(v int64) { f(v != 0) }).NewPart
}

// InputN is the bus version of Input.
//
//	Outputs: out[bits]
//
func InputN(bits int, f func() int64) ttsim.NewPartFn {
	return source("INPUT"+strconv.Itoa(bits), bits, f).NewPart
}

// OutputN is the bus version of Output.
//
//	Inputs: in[bits]
//
func OutputN(bits int, f func(int64)) ttsim.NewPartFn {
	return sink("OUTPUT"+strconv.Itoa(bits), bits, f).NewPart
}
