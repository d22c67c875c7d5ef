// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ttsim

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// Inputs is a slice of input pin names.
//
type Inputs []string

// Outputs is a slice of output pin names.
//
type Outputs []string

// In expands an input description like "a, b, bus[2]" into a slice of pin
// names: Inputs{"a", "b", "bus[0]", "bus[1]"}. See IO.
//
func In(names string) Inputs { return Inputs(IO(names)) }

// Out is the Outputs counterpart of In.
//
func Out(names string) Outputs { return Outputs(IO(names)) }

// IO expands a comma separated list of pin names and bus declarations into
// individual pin names. A bus declaration like "bus[4]" expands to
// "bus[0]", "bus[1]", "bus[2]", "bus[3]".
//
// IO panics if the description is malformed.
//
func IO(names string) []string {
	out, err := ParseIO(names)
	if err != nil {
		panic(err)
	}
	return out
}

// ParseIO is like IO but returns an error instead of panicking.
//
func ParseIO(names string) ([]string, error) {
	var out []string
	sc := &scanner{in: names}
	if sc.eof() {
		return nil, nil
	}
	for {
		name, err := sc.ident()
		if err != nil {
			return nil, err
		}
		if sc.accept('[') {
			n, err := sc.number()
			if err != nil {
				return nil, err
			}
			if n <= 0 {
				return nil, sc.errorf("invalid bus size %d", n)
			}
			if !sc.accept(']') {
				return nil, sc.errorf("missing close bracket")
			}
			for i := 0; i < n; i++ {
				out = append(out, BusPinName(name, i))
			}
		} else {
			out = append(out, name)
		}
		if sc.eof() {
			return out, nil
		}
		if !sc.accept(',') {
			return nil, sc.errorf("expected comma or end of input")
		}
	}
}

// BusPinName returns the pin name for the n-th bit of the named bus.
//
func BusPinName(bus string, n int) string {
	return bus + "[" + strconv.Itoa(n) + "]"
}

// A Connection represents a connection between the pin PP of a part and
// the pin CP in its host chip.
//
type Connection struct {
	PP string
	CP string
}

// ParseConnections parses a connection configuration like "partPin1=chipPin1,
// partPin2=chipPin2" into a []Connection{{PP: "partPin1", CP: "chipPin1"},
// {PP: "partPin2", CP: "chipPin2"}}.
//
// Individual bus pins are written "bus[3]" and pin ranges "bus[0..3]". Ranges
// on both sides of a connection must have the same size, unless the right hand
// side is a single pin, in which case all the part pins are connected to it:
//
//	"a[0..3]=x[4..7], b[0..3]=false, c=bus[2]"
//
// A bare bus name like "out=result" is resolved against the part's pin names
// by PartSpec.NewPart.
//
func ParseConnections(c string) ([]Connection, error) {
	var conns []Connection
	sc := &scanner{in: c}
	if sc.eof() {
		return nil, nil
	}
	for {
		pp, err := sc.pinRange()
		if err != nil {
			return nil, err
		}
		if !sc.accept('=') {
			return nil, sc.errorf("expected '='")
		}
		cp, err := sc.pinRange()
		if err != nil {
			return nil, err
		}
		switch {
		case len(pp) == len(cp):
			for i := range pp {
				conns = append(conns, Connection{pp[i], cp[i]})
			}
		case len(cp) == 1:
			for i := range pp {
				conns = append(conns, Connection{pp[i], cp[0]})
			}
		default:
			return nil, sc.errorf("pin count mismatch in connection (%d vs %d pins)", len(pp), len(cp))
		}
		if sc.eof() {
			return conns, nil
		}
		if !sc.accept(',') {
			return nil, sc.errorf("expected comma or end of input")
		}
	}
}

type scanner struct {
	in  string
	pos int
}

func (s *scanner) skipSpace() {
	for s.pos < len(s.in) && unicode.IsSpace(rune(s.in[s.pos])) {
		s.pos++
	}
}

func (s *scanner) eof() bool {
	s.skipSpace()
	return s.pos >= len(s.in)
}

func (s *scanner) accept(b byte) bool {
	s.skipSpace()
	if s.pos < len(s.in) && s.in[s.pos] == b {
		s.pos++
		return true
	}
	return false
}

func (s *scanner) acceptString(t string) bool {
	s.skipSpace()
	if strings.HasPrefix(s.in[s.pos:], t) {
		s.pos += len(t)
		return true
	}
	return false
}

func (s *scanner) errorf(format string, args ...interface{}) error {
	return errors.Errorf("in %q at pos %d: %s", s.in, s.pos+1, fmt.Sprintf(format, args...))
}

func isIdentByte(b byte, first bool) bool {
	switch {
	case b == '_' || 'a' <= b && b <= 'z' || 'A' <= b && b <= 'Z':
		return true
	case '0' <= b && b <= '9':
		return !first
	}
	return false
}

func (s *scanner) ident() (string, error) {
	s.skipSpace()
	start := s.pos
	for s.pos < len(s.in) && isIdentByte(s.in[s.pos], s.pos == start) {
		s.pos++
	}
	if s.pos == start {
		return "", s.errorf("expected pin name")
	}
	return s.in[start:s.pos], nil
}

func (s *scanner) number() (int, error) {
	s.skipSpace()
	start := s.pos
	for s.pos < len(s.in) && '0' <= s.in[s.pos] && s.in[s.pos] <= '9' {
		s.pos++
	}
	if s.pos == start {
		return 0, s.errorf("expected integer")
	}
	return strconv.Atoi(s.in[start:s.pos])
}

// pinRange parses "name", "name[i]" or "name[i..j]".
func (s *scanner) pinRange() ([]string, error) {
	name, err := s.ident()
	if err != nil {
		return nil, err
	}
	if !s.accept('[') {
		return []string{name}, nil
	}
	lo, err := s.number()
	if err != nil {
		return nil, err
	}
	hi := lo
	if s.acceptString("..") {
		if hi, err = s.number(); err != nil {
			return nil, err
		}
	}
	if !s.accept(']') {
		return nil, s.errorf("missing close bracket")
	}
	if hi < lo {
		return nil, s.errorf("invalid range %d..%d", lo, hi)
	}
	out := make([]string, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		out = append(out, BusPinName(name, i))
	}
	return out, nil
}
