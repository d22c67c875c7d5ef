// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bench

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/db47h/ttsim/dut"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of a scenario run.
//
type Result struct {
	Scenario string
	Err      error         // nil if the scenario passed
	Edges    int           // rising edges simulated
	SimTime  time.Duration // simulated time
	Elapsed  time.Duration // wall time
}

// Passed returns true if the scenario passed.
//
func (r *Result) Passed() bool { return r.Err == nil }

func (r *Result) String() string {
	status := "PASS"
	if r.Err != nil {
		status = "FAIL"
	}
	s := fmt.Sprintf("%-4s %-28s %6d edges %12v sim %12v", status, r.Scenario, r.Edges, r.SimTime, r.Elapsed.Round(time.Microsecond))
	if r.Err != nil {
		s += ": " + r.Err.Error()
	}
	return s
}

// Select returns the scenarios whose name matches the regular expression
// pattern. An empty pattern matches all scenarios.
//
func Select(scenarios []Scenario, pattern string) ([]Scenario, error) {
	if pattern == "" {
		return scenarios, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrap(err, "invalid scenario filter")
	}
	var out []Scenario
	for _, s := range scenarios {
		if re.MatchString(s.Name) {
			out = append(out, s)
		}
	}
	return out, nil
}

// Run runs each scenario against a fresh instance of the design, built with
// the configured power-on value, and returns one Result per scenario, in the
// order of scenarios. Up to cfg.Parallel scenarios run concurrently. A failed
// scenario does not stop the others.
//
// Run returns an error without running any scenario if cfg is not valid for
// design, see Config.ValidateFor. It stops scheduling scenarios once ctx is
// cancelled and returns ctx.Err() together with the results of the scenarios
// that did run.
//
func Run(ctx context.Context, cfg Config, design dut.Design, scenarios ...Scenario) ([]Result, error) {
	if err := cfg.ValidateFor(design); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	limit := cfg.Parallel
	if limit < 1 {
		limit = 1
	}
	results := make([]Result, len(scenarios))
	var g errgroup.Group
	g.SetLimit(limit)
	var err error
	n := 0
	for ; n < len(scenarios); n++ {
		if err = ctx.Err(); err != nil {
			break
		}
		i := n
		g.Go(func() error {
			results[i] = runOne(cfg, design, scenarios[i])
			return nil
		})
	}
	_ = g.Wait()
	return results[:n], err
}

func runOne(cfg Config, design dut.Design, s Scenario) (r Result) {
	r.Scenario = s.Name
	start := time.Now()
	defer func() { r.Elapsed = time.Since(start) }()
	defer func() {
		if v := recover(); v != nil {
			r.Err = errors.Errorf("scenario panicked: %v", v)
		}
	}()

	part, err := design.Build(cfg.PowerOn)
	if err != nil {
		r.Err = errors.Wrap(err, "failed to build design")
		return r
	}
	b, err := New(cfg, part)
	if err != nil {
		r.Err = err
		return r
	}
	defer func() {
		r.Edges, r.SimTime = b.EdgeCount(), b.Now()
		if err := b.Close(); err != nil && r.Err == nil {
			r.Err = err
		}
	}()

	if cfg.TraceDir != "" {
		f, err := os.Create(filepath.Join(cfg.TraceDir, s.Name+".vcd"))
		if err != nil {
			r.Err = errors.Wrap(err, "failed to create trace file")
			return r
		}
		// the trace owns f from now on and closes it in b.Close.
		if err = b.TraceTo(f); err != nil {
			f.Close()
			r.Err = err
			return r
		}
	}

	r.Err = s.Run(b)
	return r
}
