// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Command ttbench runs the counter testbench scenarios against one of the
// counter designs and reports pass/fail per scenario.
//
// Usage:
//
//	ttbench [flags]
//
// The exit status is 1 if any scenario failed and 2 on usage errors.
//
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/db47h/ttsim/bench"
	"github.com/db47h/ttsim/dut"
	"golang.org/x/term"
)

// ANSI colors for result lines.
const (
	green = "\x1b[32m"
	red   = "\x1b[31m"
	reset = "\x1b[0m"
)

// exit codes
const (
	exitOK = iota
	exitFail
	exitUsage
)

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "ttbench: ", 0)
	fs := flag.NewFlagSet("ttbench", flag.ContinueOnError)
	fs.SetOutput(stderr)

	cfg := bench.DefaultConfig()
	var (
		design  = fs.String("design", "behavioral", "counter design: "+strings.Join(dut.Names(), ", "))
		filter  = fs.String("run", "", "run only the scenarios matching this regular `expression`")
		list    = fs.Bool("list", false, "list scenarios and exit")
		verbose = fs.Bool("v", false, "log every clock edge")
		powerOn = fs.Uint("poweron", 0, "power-on `value` of the counter register (0-255)")
		color   = fs.Bool("color", isTerminal(stdout), "colorize results")
	)
	fs.DurationVar(&cfg.Period, "period", cfg.Period, "clock period")
	fs.IntVar(&cfg.ResetEdges, "reset", cfg.ResetEdges, "number of clock edges reset is held for")
	fs.UintVar(&cfg.StepsPerCycle, "spc", cfg.StepsPerCycle, "simulation steps per clock cycle")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "simulation worker goroutines (0 = GOMAXPROCS)")
	fs.IntVar(&cfg.Parallel, "parallel", cfg.Parallel, "maximum number of scenarios run concurrently")
	fs.StringVar(&cfg.TraceDir, "vcd", "", "write a VCD trace of each scenario to `dir`/<scenario>.vcd")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return exitOK
		}
		return exitUsage
	}

	scenarios, err := bench.Select(bench.Scenarios(), *filter)
	if err != nil {
		logger.Print(err)
		return exitUsage
	}
	if *list {
		for _, s := range scenarios {
			fmt.Fprintf(stdout, "%-28s %s\n", s.Name, s.Doc)
		}
		return exitOK
	}
	if *powerOn > 255 {
		logger.Printf("invalid power-on value %d", *powerOn)
		return exitUsage
	}
	cfg.PowerOn = uint8(*powerOn)
	if *verbose {
		cfg.Logger = log.New(stderr, "", log.Lmicroseconds)
	}
	d, err := dut.Lookup(*design)
	if err != nil {
		logger.Print(err)
		return exitUsage
	}
	if err = cfg.ValidateFor(d); err != nil {
		logger.Print(err)
		return exitUsage
	}

	logger.Printf("design %s, clock %v, reset %d edges, %d steps/cycle", d.Name, cfg.Period, cfg.ResetEdges, cfg.StepsPerCycle)
	results, err := bench.Run(ctx, cfg, d, scenarios...)
	failed := 0
	for i := range results {
		r := &results[i]
		line := r.String()
		if *color {
			c := green
			if !r.Passed() {
				c = red
			}
			line = c + line + reset
		}
		fmt.Fprintln(stdout, line)
		if !r.Passed() {
			failed++
			if *verbose {
				logger.Printf("%+v", r.Err)
			}
		}
	}
	if err != nil {
		logger.Print(err)
		return exitFail
	}
	fmt.Fprintf(stdout, "TESTS=%d PASS=%d FAIL=%d\n", len(results), len(results)-failed, failed)
	if failed > 0 {
		return exitFail
	}
	return exitOK
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
