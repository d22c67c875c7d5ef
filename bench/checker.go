// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bench

import (
	"fmt"

	"github.com/pkg/errors"
)

// State is the state of a Checker.
//
type State int

// Checker states.
const (
	ResetHeld         State = iota // reset asserted, outputs are not meaningful
	AwaitingFirstEdge              // reset released, the next edge must read 0
	Counting                       // every edge must read the previous value + 1
)

var stateNames = [...]string{"RESET_HELD", "RESET_RELEASED_AWAITING_FIRST_EDGE", "COUNTING"}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// CheckError reports an observed counter value that differs from the
// expected one.
//
type CheckError struct {
	Msg      string // checkpoint description, e.g. "Cycle 3: expected 4"
	Cycle    int    // edges since the first post-reset edge
	Expected uint8
	Actual   uint8
}

func (e *CheckError) Error() string {
	return fmt.Sprintf("%s, got %d", e.Msg, e.Actual)
}

// AsCheckError returns the *CheckError wrapped by err, if any.
//
func AsCheckError(err error) (*CheckError, bool) {
	e, ok := errors.Cause(err).(*CheckError)
	return e, ok
}

// Checker is the counter oracle. It tracks the expected value of the counter
// output in lockstep with the observed edges.
//
// A Checker starts in the ResetHeld state, moves to AwaitingFirstEdge when
// Released is called, and to Counting on the next observed edge, where the
// counter must read 0. Counting is terminal.
//
type Checker struct {
	state    State
	expected uint8
	cycle    int
}

// NewChecker returns a new Checker in the ResetHeld state.
//
func NewChecker() *Checker {
	return &Checker{}
}

// State returns the current checker state.
//
func (k *Checker) State() State { return k.state }

// Expected returns the value expected at the last observed edge.
//
func (k *Checker) Expected() uint8 { return k.expected }

// Cycle returns the number of edges observed since the first post-reset edge.
//
func (k *Checker) Cycle() int { return k.cycle }

// Released notifies the checker that reset has been deasserted.
//
func (k *Checker) Released() error {
	if k.state != ResetHeld {
		return errors.Errorf("reset released in state %v", k.state)
	}
	k.state = AwaitingFirstEdge
	return nil
}

func (k *Checker) fail(msg string, want, got uint8) error {
	return errors.WithStack(&CheckError{Msg: msg, Cycle: k.cycle, Expected: want, Actual: got})
}

// Observe checks the counter value v read on a rising edge.
//
// While reset is held, v is ignored. On the first edge after reset is released
// v must be 0. Then each value must be the previous one plus 1, modulo 256.
//
func (k *Checker) Observe(v uint8) error {
	switch k.state {
	case AwaitingFirstEdge:
		k.state = Counting
		k.cycle = 0
		k.expected = 0
		if v != 0 {
			return k.fail("Counter after reset should be 0", 0, v)
		}
	case Counting:
		k.cycle++
		k.expected++
		if v != k.expected {
			return k.fail(fmt.Sprintf("Cycle %d: expected %d", k.cycle, k.expected), k.expected, v)
		}
		k.expected = v
	}
	return nil
}

// Skip advances the expected value by n edges without checking anything.
//
func (k *Checker) Skip(n int) {
	if k.state != Counting || n <= 0 {
		return
	}
	k.cycle += n
	k.expected += uint8(n)
}

// Expect checks the value v against an absolute expected value. msg
// describes the checkpoint, e.g. "Expected 255". In the Counting state, the
// value must also agree with the tracked expected value.
//
func (k *Checker) Expect(v, want uint8, msg string) error {
	if v != want {
		return k.fail(msg, want, v)
	}
	if k.state == Counting && v != k.expected {
		return k.fail(fmt.Sprintf("Cycle %d: expected %d", k.cycle, k.expected), k.expected, v)
	}
	return nil
}
