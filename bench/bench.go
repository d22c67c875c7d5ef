// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package bench is a testbench for 8-bit counter designs with the Tiny Tapeout
// user module pinout (see package dut).
//
// A Bench is a simulation context: it owns a circuit made of the design under
// test, inputs driving ena, rst_n, ui_in and uio_in, and probes on the design
// outputs. Waiting for a clock edge is a blocking call that steps the circuit
// up to the next rising edge of clk and returns a snapshot of the signals
// sampled at that edge:
//
//	b, err := bench.New(bench.DefaultConfig(), design)
//	if err != nil {
//		return err
//	}
//	defer b.Close()
//	if err = b.HoldReset(2); err != nil {
//		return err
//	}
//	b.Release()
//	s := b.Edge() // s.UOOut == 0
//
// Scenarios combine a Bench with a Checker, see ResetAndIncrement and
// Wraparound.
//
package bench

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/db47h/ttsim"
	"github.com/db47h/ttsim/dut"
	"github.com/db47h/ttsim/hwlib"
	"github.com/pkg/errors"
)

// Signals is a snapshot of the design signals.
//
type Signals struct {
	Edge   int           // rising edges since the bench was created
	Time   time.Duration // simulated time
	Clk    bool
	RstN   bool
	Ena    bool
	UIIn   uint8
	UIOIn  uint8
	UOOut  uint8
	UIOOut uint8
	UIOOE  uint8
}

func (s Signals) String() string {
	return fmt.Sprintf("edge %d @%v: clk=%d rst_n=%d ena=%d ui_in=%#04x uio_in=%#04x uo_out=%d uio_out=%#04x uio_oe=%#04x",
		s.Edge, s.Time, b2i(s.Clk), b2i(s.RstN), b2i(s.Ena), s.UIIn, s.UIOIn, s.UOOut, s.UIOOut, s.UIOOE)
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Bench is a simulation context for a design under test.
//
type Bench struct {
	cfg Config
	c   *ttsim.Circuit
	log *log.Logger
	vcd *vcdWriter

	// driven inputs, only modified between simulation steps.
	rstN, ena   bool
	uiIn, uioIn int64

	// probed outputs, updated by the circuit on every step.
	uoOut, uioOut, uioOE int64

	edges int
}

// New creates a new simulation context for the given design. Reset is
// asserted, ena is held high and ui_in and uio_in are held at 0.
//
// Callers must call Close once done with the bench.
//
func New(cfg Config, design ttsim.NewPartFn) (*Bench, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	b := &Bench{
		cfg: cfg,
		log: cfg.logger(),
		ena: true,
	}
	conns := "ena=ena, rst_n=rst_n, ui_in=ui_in, uio_in=uio_in, uo_out=uo_out, uio_out=uio_out, uio_oe=uio_oe"
	c, err := ttsim.NewCircuit(cfg.Workers, cfg.StepsPerCycle, ttsim.Parts{
		hwlib.Input(func() bool { return b.ena })("out=" + dut.Ena),
		hwlib.Input(func() bool { return b.rstN })("out=" + dut.RstN),
		hwlib.InputN(dut.Width, func() int64 { return b.uiIn })("out=" + dut.UIIn),
		hwlib.InputN(dut.Width, func() int64 { return b.uioIn })("out=" + dut.UIOIn),
		design(conns),
		hwlib.OutputN(dut.Width, func(v int64) { b.uoOut = v })("in=" + dut.UOOut),
		hwlib.OutputN(dut.Width, func(v int64) { b.uioOut = v })("in=" + dut.UIOOut),
		hwlib.OutputN(dut.Width, func(v int64) { b.uioOE = v })("in=" + dut.UIOOE),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to build circuit")
	}
	b.c = c
	return b, nil
}

// Close releases the circuit resources and flushes the trace, if any.
//
func (b *Bench) Close() error {
	b.c.Dispose()
	if b.vcd != nil {
		err := b.vcd.Close()
		b.vcd = nil
		return errors.Wrap(err, "vcd trace")
	}
	return nil
}

// TraceTo starts writing a VCD trace of all signals to w, sampled twice per
// clock cycle (on rising and falling edges of clk).
//
func (b *Bench) TraceTo(w io.Writer) error {
	if b.vcd != nil {
		return errors.New("trace already enabled")
	}
	b.vcd = newVCDWriter(w, "tt_um_counter")
	b.vcd.sample(b.tracePS(), b.Snapshot())
	return nil
}

// Config returns the bench configuration.
//
func (b *Bench) Config() Config { return b.cfg }

// Now returns the current simulated time.
//
func (b *Bench) Now() time.Duration {
	return time.Duration(b.c.Steps()) * b.cfg.Period / time.Duration(b.c.SPC())
}

// tracePS returns the current simulated time in picoseconds, rounded down to
// the last half clock cycle.
func (b *Bench) tracePS() uint64 {
	half := uint64(b.c.Steps() / (b.c.SPC() / 2))
	return half * uint64(b.cfg.Period.Nanoseconds()) * 1000 / 2
}

// EdgeCount returns the number of rising edges since the bench was created.
//
func (b *Bench) EdgeCount() int { return b.edges }

// Snapshot returns the current state of the design signals.
//
func (b *Bench) Snapshot() Signals {
	return Signals{
		Edge:   b.edges,
		Time:   b.Now(),
		Clk:    b.c.Clk(),
		RstN:   b.rstN,
		Ena:    b.ena,
		UIIn:   uint8(b.uiIn),
		UIOIn:  uint8(b.uioIn),
		UOOut:  uint8(b.uoOut),
		UIOOut: uint8(b.uioOut),
		UIOOE:  uint8(b.uioOE),
	}
}

// Edge advances the simulation to the next rising edge of clk and returns the
// signals sampled at that edge. Outputs of clocked parts reflect the state
// latched on the previous edge.
//
func (b *Bench) Edge() Signals {
	b.c.Tick()
	if b.vcd != nil {
		b.vcd.sample(b.tracePS(), b.Snapshot())
	}
	b.c.Tock()
	b.edges++
	s := b.Snapshot()
	if b.vcd != nil {
		b.vcd.sample(b.tracePS(), s)
	}
	b.log.Print(s)
	return s
}

// Edges advances the simulation by n rising edges and returns the signals
// sampled at the last one. If n <= 0, it returns the current snapshot.
//
func (b *Bench) Edges(n int) Signals {
	s := b.Snapshot()
	for i := 0; i < n; i++ {
		s = b.Edge()
	}
	return s
}

// HoldReset drives rst_n low for n rising edges. n must be at least
// MinResetEdges.
//
func (b *Bench) HoldReset(n int) error {
	if n < MinResetEdges {
		return errors.Errorf("reset must be held for at least %d edges, got %d", MinResetEdges, n)
	}
	b.rstN = false
	b.Edges(n)
	return nil
}

// Release drives rst_n high.
//
func (b *Bench) Release() {
	b.rstN = true
	b.log.Printf("reset released after edge %d", b.edges)
}

// ResetSequence holds reset for the configured number of edges then releases
// it.
//
func (b *Bench) ResetSequence() error {
	if err := b.HoldReset(b.cfg.ResetEdges); err != nil {
		return err
	}
	b.Release()
	return nil
}
