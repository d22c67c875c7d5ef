// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ttsim

import (
	"runtime"
	"sync"

	"github.com/pkg/errors"
)

// A Component updates the state of some wires of a circuit. It reads its
// inputs with Circuit.Get and drives its outputs with Circuit.Set.
//
type Component func(c *Circuit)

// Circuit is a runnable circuit simulation.
//
// Wire states are double buffered: during a step, components read the states
// of the previous step and write the states of the next one. A signal
// therefore takes one step to go through a built-in part.
//
type Circuit struct {
	cur, next []bool
	updaters  []Component
	wires     int
	spc       uint // steps per clock cycle, a power of two
	step      uint

	batches []chan struct{}
	pending sync.WaitGroup
}

// NewCircuit builds a new circuit based on the given parts.
//
// The components of the circuit are split in batches, each updated by its own
// goroutine. workers is the number of batches. If less or equal to 0, the value
// of GOMAXPROCS is used.
//
// stepsPerCycle is the number of simulation steps per cycle of the clk signal,
// rounded up by StepsPerCycle. The longest combinational path of the circuit
// must settle within a single cycle.
//
// Dispose must be called once the circuit is no longer needed.
//
func NewCircuit(workers int, stepsPerCycle uint, parts Parts) (*Circuit, error) {
	if len(parts) == 0 {
		return nil, errors.New("empty part list")
	}

	c := &Circuit{wires: cstCount, spc: StepsPerCycle(stepsPerCycle)}
	top, err := Chip("CIRCUIT", nil, nil, parts)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create chip wrapper")
	}
	c.updaters = append(top("").Mount(newSocket(c)), driveConstants)
	c.cur = make([]bool, c.wires)
	c.next = make([]bool, c.wires)
	// clk is high on power on and true stays true in both frames.
	c.cur[cstClk] = true
	c.cur[cstTrue], c.next[cstTrue] = true, true

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(-1)
	}
	size := (len(c.updaters) + workers - 1) / workers
	for rest := c.updaters; len(rest) > 0; {
		n := size
		if n > len(rest) {
			n = len(rest)
		}
		ch := make(chan struct{}, 1)
		c.batches = append(c.batches, ch)
		go c.run(rest[:n], ch)
		rest = rest[n:]
	}
	return c, nil
}

// StepsPerCycle returns the number of steps per clock cycle of a circuit
// created with the given stepsPerCycle argument: n rounded up to a power of
// two, and at least 2.
//
func StepsPerCycle(n uint) uint {
	p := uint(2)
	for p < n {
		p <<= 1
	}
	return p
}

// driveConstants keeps clk running and checks that no part drives the
// constant wires.
func driveConstants(c *Circuit) {
	if c.cur[cstFalse] || !c.cur[cstTrue] {
		panic("true or false constants have been overwritten")
	}
	// high during the first half of a cycle
	c.next[cstClk] = (c.step+1)%c.spc < c.spc/2
}

func (c *Circuit) run(batch []Component, ch <-chan struct{}) {
	for range ch {
		for _, u := range batch {
			u(c)
		}
		c.pending.Done()
	}
	c.pending.Done()
}

// Dispose stops the worker goroutines of the circuit. It is safe to call it
// more than once.
//
func (c *Circuit) Dispose() {
	c.pending.Add(len(c.batches))
	for _, ch := range c.batches {
		close(ch)
	}
	c.pending.Wait()
	c.batches = nil
}

func (c *Circuit) allocPin() int {
	c.wires++
	return c.wires - 1
}

// Steps returns the number of steps run since power on.
//
func (c *Circuit) Steps() uint { return c.step }

// SPC returns the number of steps per clock cycle.
//
func (c *Circuit) SPC() uint { return c.spc }

// Cycles returns the number of rising edges of clk since power on. The
// power on state does not count as an edge.
//
func (c *Circuit) Cycles() uint { return c.step / c.spc }

// AtTick reports whether the current step is a rising edge of clk. Clocked
// parts latch their inputs when it returns true. It is false on power on even
// though clk is high.
//
func (c *Circuit) AtTick() bool {
	return c.step > 0 && c.step%c.spc == 0
}

// Clk returns the current state of the clock signal.
//
func (c *Circuit) Clk() bool { return c.cur[cstClk] }

// Get returns the state of wire n as of the previous step. Wire numbers are
// obtained from a Socket in a MountFn.
//
func (c *Circuit) Get(n int) bool { return c.cur[n] }

// Set drives wire n to s for the next step.
//
func (c *Circuit) Set(n int, s bool) { c.next[n] = s }

// Step runs all components once and swaps the wire state frames.
//
func (c *Circuit) Step() {
	c.pending.Add(len(c.batches))
	for _, ch := range c.batches {
		ch <- struct{}{}
	}
	c.pending.Wait()
	c.step++
	c.cur, c.next = c.next, c.cur
}

// Tick steps the simulation up to the next falling edge of clk. It returns
// immediately if clk is low.
//
func (c *Circuit) Tick() {
	for c.Clk() {
		c.Step()
	}
}

// Tock steps the simulation up to the next rising edge of clk. Once it
// returns, AtTick is true and clocked parts latch their inputs on the next
// Step.
//
func (c *Circuit) Tock() {
	for !c.Clk() {
		c.Step()
	}
}

// Size returns the number of components in the circuit.
//
func (c *Circuit) Size() int { return len(c.updaters) }
