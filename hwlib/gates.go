// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwlib provides the built-in parts used by the counter designs and
// the test bench. Every built-in part updates its outputs in a single step.
//
package hwlib

import (
	"github.com/db47h/ttsim"
)

// common pin names
const (
	pA   = "a"
	pB   = "b"
	pIn  = "in"
	pSel = "sel"
	pOut = "out"
)

// bus returns the pin names of buses name[0..bits-1], in order.
func bus(bits int, names ...string) []string {
	var pins []string
	for _, n := range names {
		for i := 0; i < bits; i++ {
			pins = append(pins, ttsim.BusPinName(n, i))
		}
	}
	return pins
}

// logic2 returns the spec of a two input gate computing fn(a, b).
func logic2(name string, fn func(a, b bool) bool) *ttsim.PartSpec {
	return &ttsim.PartSpec{
		Name:    name,
		Inputs:  ttsim.Inputs{pA, pB},
		Outputs: ttsim.Outputs{pOut},
		Mount: func(s *ttsim.Socket) []ttsim.Component {
			a, b, out := s.Pin(pA), s.Pin(pB), s.Pin(pOut)
			return []ttsim.Component{func(c *ttsim.Circuit) {
				c.Set(out, fn(c.Get(a), c.Get(b)))
			}}
		},
	}
}

var (
	inverter = &ttsim.PartSpec{
		Name:    "NOT",
		Inputs:  ttsim.Inputs{pIn},
		Outputs: ttsim.Outputs{pOut},
		Mount: func(s *ttsim.Socket) []ttsim.Component {
			in, out := s.Pin(pIn), s.Pin(pOut)
			return []ttsim.Component{func(c *ttsim.Circuit) { c.Set(out, !c.Get(in)) }}
		},
	}
	and2  = logic2("AND", func(a, b bool) bool { return a && b })
	nand2 = logic2("NAND", func(a, b bool) bool { return !(a && b) })
)

// Not returns an inverter: out = !in.
//
func Not(w string) ttsim.Part { return inverter.NewPart(w) }

// And returns a two input AND gate: out = a && b.
//
func And(w string) ttsim.Part { return and2.NewPart(w) }

// Nand returns a two input NAND gate: out = !(a && b).
//
func Nand(w string) ttsim.Part { return nand2.NewPart(w) }
