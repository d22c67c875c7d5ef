// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bench

import (
	"io"
	"log"
	"time"

	"github.com/db47h/ttsim"
	"github.com/db47h/ttsim/dut"
	"github.com/pkg/errors"
)

// MinResetEdges is the minimum number of clock edges reset must be held for.
const MinResetEdges = 2

// Config holds the simulation parameters of a Bench.
//
type Config struct {
	// Clock period. Only used to timestamp snapshots and traces.
	Period time.Duration
	// Number of rising edges rst_n is held low at the start of a scenario.
	ResetEdges int
	// Simulation steps per clock cycle, see ttsim.NewCircuit.
	StepsPerCycle uint
	// Worker goroutines, see ttsim.NewCircuit.
	Workers int
	// Maximum number of scenarios run concurrently by Run. Values < 1 mean 1.
	Parallel int
	// Power-on contents of the counter register.
	PowerOn uint8
	// If not empty, a VCD trace of each scenario is written to
	// TraceDir/<scenario>.vcd.
	TraceDir string
	// Logger for per-edge tracing. May be nil.
	Logger *log.Logger
}

// DefaultConfig returns the default configuration: a 10ns clock (100 MHz),
// reset held for 2 edges, 32 steps per cycle and a single worker.
//
func DefaultConfig() Config {
	return Config{
		Period:        10 * time.Nanosecond,
		ResetEdges:    MinResetEdges,
		StepsPerCycle: 32,
		Workers:       1,
		Parallel:      1,
	}
}

// Validate checks the configuration values.
//
func (c *Config) Validate() error {
	if c.Period <= 0 {
		return errors.Errorf("invalid clock period %v", c.Period)
	}
	if c.ResetEdges < MinResetEdges {
		return errors.Errorf("reset must be held for at least %d edges, got %d", MinResetEdges, c.ResetEdges)
	}
	if c.StepsPerCycle < 2 {
		return errors.Errorf("at least 2 steps per cycle are required, got %d", c.StepsPerCycle)
	}
	return nil
}

// ValidateFor checks the configuration values and that the simulation runs
// enough steps per clock cycle for design d to settle. Steps per cycle are
// compared after rounding by ttsim.StepsPerCycle.
//
func (c *Config) ValidateFor(d dut.Design) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if spc, need := ttsim.StepsPerCycle(c.StepsPerCycle), d.MinStepsPerCycle(); spc < need {
		return errors.Errorf("design %s needs at least %d steps per cycle, got %d", d.Name, need, spc)
	}
	return nil
}

func (c *Config) logger() *log.Logger {
	if c.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return c.Logger
}
