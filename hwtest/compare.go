// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package hwtest provides helpers to check parts against reference parts.
//
package hwtest

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/db47h/ttsim"
	"github.com/db47h/ttsim/hwlib"
)

// A DriveFn sets the input values of the parts under comparison for the given
// clock cycle. inputs has the same order as the part's input pin names.
//
type DriveFn func(cycle int, inputs []bool)

// Random is a DriveFn that sets all inputs to random values.
//
func Random(rnd *rand.Rand) DriveFn {
	return func(_ int, inputs []bool) {
		for i := range inputs {
			inputs[i] = rnd.Intn(2) == 1
		}
	}
}

// identity returns a connection string connecting every pin to a wire of the
// same name.
func identity(pins ...[]string) string {
	var cs []string
	for _, ps := range pins {
		for _, p := range ps {
			cs = append(cs, p+"="+p)
		}
	}
	return strings.Join(cs, ", ")
}

// ComparePart checks that two parts with the same pins compute the same
// outputs. Both are driven with all inputs low, then all high, then
// 2^min(12, inputs) cycles of random values.
//
func ComparePart(t testing.TB, tpc uint, part1 ttsim.NewPartFn, part2 ttsim.NewPartFn) {
	t.Helper()
	seed := time.Now().UnixNano()
	random := Random(rand.New(rand.NewSource(seed)))

	n := len(part1("").Inputs)
	if n > 12 {
		n = 12
	}
	CompareSequence(t, tpc, 2+1<<uint(n), part1, part2, func(cycle int, inputs []bool) {
		if cycle > 1 {
			random(cycle, inputs)
			return
		}
		for i := range inputs {
			inputs[i] = cycle == 1
		}
	})
	if t.Failed() {
		t.Logf("random seed: %d", seed)
	}
}

func samePins(kind string, p1, p2 []string) error {
	if len(p1) != len(p2) {
		return fmt.Errorf("%s: %d pins vs %d", kind, len(p1), len(p2))
	}
	for i := range p1 {
		if p1[i] != p2[i] {
			return fmt.Errorf("%s #%d: %q vs %q", kind, i, p1[i], p2[i])
		}
	}
	return nil
}

// CompareSequence runs two parts side by side for the given number of clock
// cycles. drive sets the inputs at the middle of each cycle, and outputs are
// compared at the middle of the next one, which leaves tpc steps for the
// outputs to settle.
//
func CompareSequence(t testing.TB, tpc uint, cycles int, part1 ttsim.NewPartFn, part2 ttsim.NewPartFn, drive DriveFn) {
	t.Helper()

	spec1, spec2 := part1("").PartSpec, part2("").PartSpec
	if err := samePins("input", spec1.Inputs, spec2.Inputs); err != nil {
		t.Fatal(err)
	}
	if err := samePins("output", spec1.Outputs, spec2.Outputs); err != nil {
		t.Fatal(err)
	}

	inputs := make([]bool, len(spec1.Inputs))
	outputs := make([][2]bool, len(spec1.Outputs))

	// each part is wrapped in a chip together with probes on its outputs, so
	// that both can use the same output wire names.
	all := identity(spec1.Inputs, spec1.Outputs)
	var parts ttsim.Parts
	for k, part := range []ttsim.NewPartFn{part1, part2} {
		k := k
		wp := ttsim.Parts{part(all)}
		for i, o := range spec1.Outputs {
			i := i
			wp = append(wp, hwlib.Output(func(b bool) { outputs[i][k] = b })("in="+o))
		}
		w, err := ttsim.Chip(fmt.Sprintf("harness%d", k+1), spec1.Inputs, nil, wp)
		if err != nil {
			t.Fatal(err)
		}
		parts = append(parts, w(identity(spec1.Inputs)))
	}
	for i, n := range spec1.Inputs {
		i := i
		parts = append(parts, hwlib.Input(func() bool { return inputs[i] })("out="+n))
	}

	c, err := ttsim.NewCircuit(0, tpc, parts)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()

	mismatch := func(cycle int, o int) string {
		in := make([]string, len(inputs))
		for i, n := range spec1.Inputs {
			in[i] = fmt.Sprintf("%s=%v", n, inputs[i])
		}
		return fmt.Sprintf("\ncycle %d: expected %s => %s=%v\nGot %v",
			cycle, strings.Join(in, ", "), spec1.Outputs[o], outputs[o][0], outputs[o][1])
	}

	start := time.Now()
	c.Tick()
	for i := 0; i < cycles; i++ {
		drive(i, inputs)
		c.Tock()
		c.Tick()
		for o := range outputs {
			if outputs[o][0] != outputs[o][1] {
				t.Fatal(mismatch(i, o))
			}
		}
	}
	elapsed := time.Since(start)
	t.Logf("%d components. %d steps in %v. %d cycles => %.2f Hz",
		c.Size(), c.Steps(), elapsed, c.Cycles(), float64(c.Cycles())/elapsed.Seconds())
}
