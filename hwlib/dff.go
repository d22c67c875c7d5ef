// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/ttsim"
)

// register returns the spec of a register latching in on every rising edge
// of clk. width 0 is a single bit register with pins in and out.
func register(name string, width int, init int64) *ttsim.PartSpec {
	in, out := []string{pIn}, []string{pOut}
	if width > 0 {
		in, out = bus(width, pIn), bus(width, pOut)
	}
	return &ttsim.PartSpec{
		Name:    name,
		Inputs:  in,
		Outputs: out,
		Mount: func(s *ttsim.Socket) []ttsim.Component {
			d, q := make(ttsim.Bus, len(in)), make(ttsim.Bus, len(out))
			for i := range in {
				d[i], q[i] = s.Pin(in[i]), s.Pin(out[i])
			}
			state := init
			return []ttsim.Component{func(c *ttsim.Circuit) {
				if c.AtTick() {
					state = d.GetInt64(c)
				}
				q.SetInt64(c, state)
			}}
		},
	}
}

var dff = register("DFF", 0, 0)

// DFF returns a D flip flop. It powers on low and latches in on every rising
// edge of clk: out(t) = in(t-1), where t is the clock cycle.
//
func DFF(w string) ttsim.Part { return dff.NewPart(w) }

// RegisterN returns a N-bits register. It holds init until the first rising
// edge of clk, which simulates arbitrary power-on contents.
//
//	Inputs: in[bits]
//	Outputs: out[bits]
//	Function: out(t) = in(t-1)
//
func RegisterN(bits int, init int64) ttsim.NewPartFn {
	return register("REG"+strconv.Itoa(bits), bits, init).NewPart
}
