// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package bench

// A Scenario is a test sequence run against a fresh Bench.
//
type Scenario struct {
	Name string
	Doc  string
	Run  func(b *Bench) error
}

// startup runs the reset sequence and notifies k.
func startup(b *Bench, k *Checker) error {
	if err := b.ResetSequence(); err != nil {
		return err
	}
	return k.Released()
}

// ResetAndIncrement checks that after reset deasserts, the counter starts at
// 0 and increments by 1 each cycle for 10 cycles.
//
var ResetAndIncrement = Scenario{
	Name: "test_reset_and_increment",
	Doc:  "After reset deasserts, counter should start at 0 and increment by 1 each cycle.",
	Run: func(b *Bench) error {
		k := NewChecker()
		if err := startup(b, k); err != nil {
			return err
		}
		for i := 0; i < 10; i++ {
			if err := k.Observe(b.Edge().UOOut); err != nil {
				return err
			}
		}
		return nil
	},
}

// Wraparound checks that the counter wraps from 255 to 0.
//
var Wraparound = Scenario{
	Name: "test_wraparound",
	Doc:  "Counter must wrap from 255 to 0.",
	Run: func(b *Bench) error {
		k := NewChecker()
		if err := startup(b, k); err != nil {
			return err
		}
		if err := k.Observe(b.Edge().UOOut); err != nil {
			return err
		}

		checks := []struct {
			edges int
			want  uint8
			msg   string
		}{
			{254, 254, "Expected 254 before wrap sequence"},
			{1, 255, "Expected 255"},
			{1, 0, "Expected wrap to 0"},
			{1, 1, "Expected 1 after wrap"},
		}
		for _, c := range checks {
			k.Skip(c.edges)
			if err := k.Expect(b.Edges(c.edges).UOOut, c.want, c.msg); err != nil {
				return err
			}
		}
		return nil
	},
}

// Scenarios returns all the scenarios, in run order.
//
func Scenarios() []Scenario {
	return []Scenario{ResetAndIncrement, Wraparound}
}
