// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package hwlib

import (
	"strconv"

	"github.com/db47h/ttsim"
)

// MuxN returns a bus multiplexer selecting a when sel is low and b when sel
// is high.
//
//	Inputs: a[bits], b[bits], sel
//	Outputs: out[bits]
//
func MuxN(bits int) ttsim.NewPartFn {
	return (&ttsim.PartSpec{
		Name:    "MUX" + strconv.Itoa(bits),
		Inputs:  append(bus(bits, pA, pB), pSel),
		Outputs: bus(bits, pOut),
		Mount: func(s *ttsim.Socket) []ttsim.Component {
			in := [2]ttsim.Bus{s.Bus(pA, bits), s.Bus(pB, bits)}
			sel, out := s.Pin(pSel), s.Bus(pOut, bits)
			return []ttsim.Component{func(c *ttsim.Circuit) {
				i := 0
				if c.Get(sel) {
					i = 1
				}
				out.SetInt64(c, in[i].GetInt64(c))
			}}
		},
	}).NewPart
}
