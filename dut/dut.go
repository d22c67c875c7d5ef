// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package dut provides 8-bit counter designs with the Tiny Tapeout user
// module pinout:
//
//	Inputs: ena, rst_n, ui_in[8], uio_in[8]
//	Outputs: uo_out[8], uio_out[8], uio_oe[8]
//
// The clock is the circuit's built-in clk signal. All designs count on uo_out,
// reset synchronously while rst_n is low, and drive uio_out and uio_oe low.
// ena, ui_in and uio_in are ignored.
//
package dut

import (
	"sort"
	"strings"

	"github.com/db47h/ttsim"
	"github.com/db47h/ttsim/hwlib"
	"github.com/pkg/errors"
)

// Pin and bus names of the user module.
const (
	Ena    = "ena"
	RstN   = "rst_n"
	UIIn   = "ui_in"
	UIOIn  = "uio_in"
	UOOut  = "uo_out"
	UIOOut = "uio_out"
	UIOOE  = "uio_oe"
)

// Width of every bus in the user module.
const Width = 8

var (
	pinIn  = ttsim.In("ena, rst_n, ui_in[8], uio_in[8]")
	pinOut = ttsim.Out("uo_out[8], uio_out[8], uio_oe[8]")
)

// Pinout returns the user module input and output pin names.
//
func Pinout() (ttsim.Inputs, ttsim.Outputs) {
	return append(ttsim.Inputs(nil), pinIn...), append(ttsim.Outputs(nil), pinOut...)
}

// A Design is a counter implementation.
//
type Design struct {
	Name string
	// Depth is the number of built-in parts on the longest path from the
	// register outputs or rst_n to the register inputs.
	Depth uint
	// Build returns the design with the given power-on register contents.
	Build func(powerOn uint8) (ttsim.NewPartFn, error)
}

// MinStepsPerCycle returns the lowest number of simulation steps per clock
// cycle for which the register inputs settle before the next rising edge. The
// registers take one step to drive their outputs after an edge.
//
func (d Design) MinStepsPerCycle() uint {
	if d.Depth == 0 {
		return 2
	}
	return d.Depth + 1
}

// The available designs.
var (
	// Behavioral is a counter described by its behavior: an 8 bits register
	// updated by a Go closure on every rising edge.
	Behavioral = Design{Name: "behavioral", Depth: 0, Build: behavioral}
	// RTL is a register transfer level counter: an incrementer, a reset
	// multiplexer and a register.
	RTL = Design{Name: "rtl", Depth: 2, Build: rtl}
	// Gates is a ripple carry counter built from half adders, AND gates and
	// D flip flops. It can only power on with 0.
	Gates = Design{Name: "gates", Depth: Width + 1, Build: gates}
	// NAND is the same ripple carry counter built from NAND gates and
	// inverters only. It can only power on with 0.
	NAND = Design{Name: "nand", Depth: 2*Width + 3, Build: nandGates}
)

var designs = map[string]Design{}

func init() {
	for _, d := range []Design{Behavioral, RTL, Gates, NAND} {
		designs[d.Name] = d
	}
}

func behavioral(powerOn uint8) (ttsim.NewPartFn, error) {
	return ttsim.Chip("tt_um_counter", pinIn, pinOut, ttsim.Parts{
		hwlib.CounterN(Width, int64(powerOn))("rst_n=rst_n, out=uo_out"),
	})
}

func rtl(powerOn uint8) (ttsim.NewPartFn, error) {
	return ttsim.Chip("tt_um_counter_rtl", pinIn, pinOut, ttsim.Parts{
		hwlib.IncN(Width)("in=uo_out, out=next"),
		hwlib.MuxN(Width)("a=false, b=next, sel=rst_n, out=d"),
		hwlib.RegisterN(Width, int64(powerOn))("in=d, out=uo_out"),
	})
}

// gateBit is the combinational logic of one counter bit:
//
//	d = rst_n && (q xor cin)
//	cout = q && cin
//
func gateBit() (ttsim.NewPartFn, error) {
	return ttsim.Chip("CounterBit", ttsim.In("q, cin, rst_n"), ttsim.Out("d, cout"), ttsim.Parts{
		hwlib.HalfAdder("a=q, b=cin, s=s, c=cout"),
		hwlib.And("a=s, b=rst_n, out=d"),
	})
}

// nandBit is gateBit with NAND gates and inverters.
func nandBit() (ttsim.NewPartFn, error) {
	return ttsim.Chip("NandCounterBit", ttsim.In("q, cin, rst_n"), ttsim.Out("d, cout"), ttsim.Parts{
		hwlib.Nand("a=q, b=cin, out=n"),
		hwlib.Nand("a=q, b=n, out=x0"),
		hwlib.Nand("a=cin, b=n, out=x1"),
		hwlib.Nand("a=x0, b=x1, out=s"),
		hwlib.Nand("a=s, b=rst_n, out=nd"),
		hwlib.Not("in=nd, out=d"),
		hwlib.Not("in=n, out=cout"),
	})
}

func gates(powerOn uint8) (ttsim.NewPartFn, error) {
	return ripple("tt_um_counter_gates", gateBit, powerOn)
}

func nandGates(powerOn uint8) (ttsim.NewPartFn, error) {
	return ripple("tt_um_counter_nand", nandBit, powerOn)
}

// ripple chains Width counter bits by their carry and latches each bit in a
// D flip flop. D flip flops power on low, so powerOn must be 0.
func ripple(name string, newBit func() (ttsim.NewPartFn, error), powerOn uint8) (ttsim.NewPartFn, error) {
	if powerOn != 0 {
		return nil, errors.Errorf("gate level counter cannot power on with value %d", powerOn)
	}
	bit, err := newBit()
	if err != nil {
		return nil, errors.Wrap(err, "counter bit")
	}
	var parts ttsim.Parts
	for i := 0; i < Width; i++ {
		q, d := ttsim.BusPinName(UOOut, i), ttsim.BusPinName("d", i)
		cin := ttsim.BusPinName("c", i)
		if i == 0 {
			cin = ttsim.True
		}
		conns := "q=" + q + ", cin=" + cin + ", rst_n=rst_n, d=" + d
		if i < Width-1 {
			conns += ", cout=" + ttsim.BusPinName("c", i+1)
		}
		parts = append(parts,
			bit(conns),
			hwlib.DFF("in="+d+", out="+q))
	}
	return ttsim.Chip(name, pinIn, pinOut, parts)
}

// Lookup returns the design registered under name.
//
func Lookup(name string) (Design, error) {
	d, ok := designs[name]
	if !ok {
		return Design{}, errors.Errorf("unknown design %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return d, nil
}

// Names returns the names of the available designs, sorted.
//
func Names() []string {
	ns := make([]string, 0, len(designs))
	for n := range designs {
		ns = append(ns, n)
	}
	sort.Strings(ns)
	return ns
}
