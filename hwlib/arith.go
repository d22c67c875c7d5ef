// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/ttsim"
)

const (
	pSum   = "s"
	pCarry = "c"
)

var halfAdder = &ttsim.PartSpec{
	Name:    "HalfAdder",
	Inputs:  ttsim.Inputs{pA, pB},
	Outputs: ttsim.Outputs{pSum, pCarry},
	Mount: func(s *ttsim.Socket) []ttsim.Component {
		a, b := s.Pin(pA), s.Pin(pB)
		sum, carry := s.Pin(pSum), s.Pin(pCarry)
		return []ttsim.Component{func(c *ttsim.Circuit) {
			x, y := c.Get(a), c.Get(b)
			c.Set(sum, x != y)
			c.Set(carry, x && y)
		}}
	},
}

// HalfAdder returns a one bit adder. s and c are the low and high bits of
// a + b.
//
//	Inputs: a, b
//	Outputs: s, c
//
func HalfAdder(w string) ttsim.Part { return halfAdder.NewPart(w) }

// IncN returns a N-bits incrementer. c is set when out wraps around to 0.
//
//	Inputs: in[bits]
//	Outputs: out[bits], c
//	Function: out = in + 1 mod 2^bits
//
func IncN(bits int) ttsim.NewPartFn {
	top := int64(1)<<uint(bits) - 1
	return (&ttsim.PartSpec{
		Name:    "Inc" + strconv.Itoa(bits),
		Inputs:  bus(bits, pIn),
		Outputs: append(bus(bits, pOut), pCarry),
		Mount: func(s *ttsim.Socket) []ttsim.Component {
			in, out, carry := s.Bus(pIn, bits), s.Bus(pOut, bits), s.Pin(pCarry)
			return []ttsim.Component{func(c *ttsim.Circuit) {
				v := in.GetInt64(c)
				c.Set(carry, v == top)
				out.SetInt64(c, (v+1)&top)
			}}
		},
	}).NewPart
}
