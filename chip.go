// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ttsim

import (
	"github.com/pkg/errors"
)

type chip struct {
	PartSpec
	parts []Part
}

// mount gives every part its own socket. Internal wire names are resolved in
// the chip's socket, so each chip instance gets its own internal wires.
func (c *chip) mount(s *Socket) []Component {
	var cs []Component
	for _, p := range c.parts {
		ps := newSocket(s.c)
		for _, cn := range p.Conns {
			ps.wires[cn.PP] = s.PinOrNew(cn.CP)
		}
		// unconnected inputs read false, unconnected outputs drive a wire of
		// their own.
		for _, in := range p.Inputs {
			if _, ok := ps.wires[in]; !ok {
				ps.wires[in] = cstFalse
			}
		}
		for _, out := range p.Outputs {
			if _, ok := ps.wires[out]; !ok {
				ps.wires[out] = s.c.allocPin()
			}
		}
		cs = append(cs, p.Mount(ps)...)
	}
	return cs
}

// Chip packages parts into a new part with the given input and output pins.
// Wires that are neither inputs nor outputs are internal to the chip.
//
// For example, a half adder built from NAND gates:
//
//	ha, err := Chip("HA", In("a, b"), Out("s, c"), Parts{
//		hwlib.Nand("a=a, b=b, out=n"),
//		hwlib.Nand("a=a, b=n, out=x0"),
//		hwlib.Nand("a=b, b=n, out=x1"),
//		hwlib.Nand("a=x0, b=x1, out=s"),
//		hwlib.Not("in=n, out=c"),
//	})
//
// The returned NewPartFn can in turn be used in other chips:
//
//	ha("a=q, b=cin, s=d, c=cout")
//
func Chip(name string, inputs Inputs, outputs Outputs, parts Parts) (NewPartFn, error) {
	chipIn := make(map[string]bool, len(inputs))
	for _, n := range inputs {
		chipIn[n] = true
	}
	chipOut := make(map[string]bool, len(outputs))
	for _, n := range outputs {
		if chipIn[n] {
			return nil, errors.Errorf("pin %s declared as both input and output", n)
		}
		chipOut[n] = true
	}

	drivers := make(map[string]string) // wire -> driving part pin
	readers := make(map[string]string) // wire -> (one of the) reading part pin

	for _, p := range parts {
		seen := make(map[string]bool, len(p.Conns))
		for _, cn := range p.Conns {
			pn := p.Name + "." + cn.PP
			if !p.hasPin(cn.PP) {
				return nil, errors.New("invalid pin name " + cn.PP + " for part " + p.Name)
			}
			if seen[cn.PP] {
				return nil, errors.New(pn + ": pin connected more than once")
			}
			seen[cn.PP] = true
			if p.isInput(cn.PP) {
				readers[cn.CP] = pn
				continue
			}
			switch {
			case isConstant(cn.CP):
				return nil, errors.New(pn + ":" + cn.CP + ": output pin connected to constant " + cn.CP + " input")
			case chipIn[cn.CP]:
				return nil, errors.New(pn + ":" + cn.CP + ": chip input pin used as output")
			case drivers[cn.CP] != "":
				return nil, errors.New(pn + ":" + cn.CP + ": output pin already used as output")
			}
			drivers[cn.CP] = pn
		}
	}

	for w := range readers {
		if drivers[w] == "" && !chipIn[w] && !isConstant(w) {
			return nil, errors.New("pin " + w + " not connected to any output")
		}
	}
	for w := range drivers {
		if readers[w] == "" && !chipOut[w] {
			return nil, errors.New("pin " + w + " not connected to any input")
		}
	}

	c := &chip{
		PartSpec{
			Name:    name,
			Inputs:  inputs,
			Outputs: outputs,
		},
		parts,
	}
	c.PartSpec.Mount = c.mount
	return c.PartSpec.NewPart, nil
}
