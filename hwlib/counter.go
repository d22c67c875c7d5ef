// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/ttsim"
)

// Reset pin name of clocked parts with a synchronous reset.
const pRstN = "rst_n"

// CounterN returns a behavioral N-bits free running counter with a
// synchronous active-low reset. init is the power-on value of the counter,
// visible until the first rising edge of the clock.
//
//	Inputs: rst_n
//	Outputs: out[bits]
//	Function: on each rising edge: if !rst_n { out = 0 } else { out = out + 1 mod 2^bits }
//
func CounterN(bits int, init int64) ttsim.NewPartFn {
	mask := int64(1)<<uint(bits) - 1
	return (&ttsim.PartSpec{
		Name:    "Counter" + strconv.Itoa(bits),
		Inputs:  ttsim.Inputs{pRstN},
		Outputs: bus(bits, pOut),
		Mount: func(s *ttsim.Socket) []ttsim.Component {
			rst, out := s.Pin(pRstN), s.Bus(pOut, bits)
			q := init & mask
			return []ttsim.Component{
				func(c *ttsim.Circuit) {
					if c.AtTick() {
						if c.Get(rst) {
							q = (q + 1) & mask
						} else {
							q = 0
						}
					}
					out.SetInt64(c, q)
				}}
		}}).NewPart
}
