// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ttsim

import (
	"strings"
)

// A MountFn mounts a part into a socket. It resolves the part's pins to wire
// numbers once, and returns the components that update these wires on every
// step.
//
type MountFn func(s *Socket) []Component

// A PartSpec describes a part: its pins and how it is mounted into a circuit.
//
// A buffer part for example:
//
//	var buf = &ttsim.PartSpec{
//		Name:    "BUF",
//		Inputs:  ttsim.In("in"),
//		Outputs: ttsim.Out("out"),
//		Mount: func(s *ttsim.Socket) []ttsim.Component {
//			in, out := s.Pin("in"), s.Pin("out")
//			return []ttsim.Component{func(c *ttsim.Circuit) { c.Set(out, c.Get(in)) }}
//		},
//	}
//
// buf.NewPart is then a NewPartFn usable in a Chip part list:
//
//	buf.NewPart("in=rst_n, out=rst_n_buf")
//
type PartSpec struct {
	Name string
	// Distinct input pin names. In expands a description like "a, bus[2]".
	Inputs Inputs
	// Distinct output pin names, see Out.
	Outputs Outputs
	Mount   MountFn
}

// NewPart returns a Part for p with the given connections.
//
// It panics if the connection string is malformed. Connections to unknown
// pins are reported by Chip.
//
func (p *PartSpec) NewPart(connections string) Part {
	cs, err := ParseConnections(connections)
	if err != nil {
		panic(err)
	}
	return Part{p, p.expandBuses(cs)}
}

// hasPin returns true if name is one of p's input or output pins.
//
func (p *PartSpec) hasPin(name string) bool {
	return p.isInput(name) || p.isOutput(name)
}

func (p *PartSpec) isInput(name string) bool {
	for _, n := range p.Inputs {
		if n == name {
			return true
		}
	}
	return false
}

func (p *PartSpec) isOutput(name string) bool {
	for _, n := range p.Outputs {
		if n == name {
			return true
		}
	}
	return false
}

// busWidth returns the number of pins in the named bus, 0 if there is no such
// bus.
//
func (p *PartSpec) busWidth(name string) int {
	n := 0
	for p.hasPin(BusPinName(name, n)) {
		n++
	}
	return n
}

// expandBuses resolves whole bus connections like "out=result" into
// individual pin connections.
//
func (p *PartSpec) expandBuses(cs []Connection) []Connection {
	var out []Connection
	for _, c := range cs {
		if p.hasPin(c.PP) || strings.IndexByte(c.PP, '[') >= 0 || strings.IndexByte(c.CP, '[') >= 0 {
			out = append(out, c)
			continue
		}
		w := p.busWidth(c.PP)
		if w == 0 {
			// unknown, reported by Chip.
			out = append(out, c)
			continue
		}
		for i := 0; i < w; i++ {
			cp := c.CP
			if !isConstant(cp) {
				cp = BusPinName(cp, i)
			}
			out = append(out, Connection{BusPinName(c.PP, i), cp})
		}
	}
	return out
}

// A NewPartFn returns a Part connected as described by c, in the syntax of
// ParseConnections.
//
type NewPartFn func(c string) Part

// A Part is a PartSpec together with its connections in the enclosing chip.
//
type Part struct {
	*PartSpec
	Conns []Connection
}

// Parts is the part list of a chip.
//
type Parts []Part
