// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bench

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/db47h/ttsim/dut"
	"github.com/pkg/errors"
)

type vcdVar struct {
	id    string
	name  string
	width int
	value func(s *Signals) uint64
	last  uint64
}

// vcdWriter writes a Value Change Dump of bench signals. Write errors are
// sticky and returned by Close.
//
type vcdWriter struct {
	w     *bufio.Writer
	c     io.Closer
	vars  []*vcdVar
	first bool
	err   error
}

func bit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

func newVCDWriter(w io.Writer, scope string) *vcdWriter {
	v := &vcdWriter{w: bufio.NewWriter(w), first: true}
	if c, ok := w.(io.Closer); ok {
		v.c = c
	}
	v.vars = []*vcdVar{
		{name: "clk", width: 1, value: func(s *Signals) uint64 { return bit(s.Clk) }},
		{name: dut.RstN, width: 1, value: func(s *Signals) uint64 { return bit(s.RstN) }},
		{name: dut.Ena, width: 1, value: func(s *Signals) uint64 { return bit(s.Ena) }},
		{name: dut.UIIn, width: dut.Width, value: func(s *Signals) uint64 { return uint64(s.UIIn) }},
		{name: dut.UIOIn, width: dut.Width, value: func(s *Signals) uint64 { return uint64(s.UIOIn) }},
		{name: dut.UOOut, width: dut.Width, value: func(s *Signals) uint64 { return uint64(s.UOOut) }},
		{name: dut.UIOOut, width: dut.Width, value: func(s *Signals) uint64 { return uint64(s.UIOOut) }},
		{name: dut.UIOOE, width: dut.Width, value: func(s *Signals) uint64 { return uint64(s.UIOOE) }},
	}
	v.printf("$version ttsim $end\n$timescale 1ps $end\n$scope module %s $end\n", scope)
	for i, vv := range v.vars {
		// identifiers are printable ASCII characters starting at '!'
		vv.id = string(rune('!' + i))
		v.printf("$var wire %d %s %s $end\n", vv.width, vv.id, vv.name)
	}
	v.printf("$upscope $end\n$enddefinitions $end\n")
	return v
}

func (v *vcdWriter) printf(format string, args ...interface{}) {
	if v.err != nil {
		return
	}
	_, v.err = fmt.Fprintf(v.w, format, args...)
}

func (v *vcdWriter) value(vv *vcdVar, x uint64) {
	if vv.width == 1 {
		v.printf("%d%s\n", x, vv.id)
		return
	}
	s := strconv.FormatUint(x, 2)
	for len(s) < vv.width {
		s = "0" + s
	}
	v.printf("b%s %s\n", s, vv.id)
}

// sample dumps the signals at time t in picoseconds. Only changed values are
// written, except for the first sample which dumps all variables.
//
func (v *vcdWriter) sample(t uint64, s Signals) {
	if v.first {
		v.printf("#%d\n$dumpvars\n", t)
		for _, vv := range v.vars {
			vv.last = vv.value(&s)
			v.value(vv, vv.last)
		}
		v.printf("$end\n")
		v.first = false
		return
	}
	ts := false
	for _, vv := range v.vars {
		x := vv.value(&s)
		if x == vv.last {
			continue
		}
		if !ts {
			v.printf("#%d\n", t)
			ts = true
		}
		vv.last = x
		v.value(vv, x)
	}
}

// Close flushes the trace and closes the underlying writer if it
// implements io.Closer.
//
func (v *vcdWriter) Close() error {
	if v.err == nil {
		v.err = v.w.Flush()
	}
	if v.c != nil {
		if err := v.c.Close(); err != nil && v.err == nil {
			v.err = err
		}
	}
	return errors.Wrap(v.err, "write failed")
}
