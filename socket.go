// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ttsim

// Names of the constant wires. They can be connected to any input pin.
//
var (
	True  = "true"
	False = "false"
	GND   = "false"
	Clk   = "clk"
)

// wire numbers of the constants
const (
	cstFalse = iota
	cstTrue
	cstClk
	cstCount
)

func isConstant(name string) bool {
	switch name {
	case True, False, Clk:
		return true
	}
	return false
}

// A Socket resolves the pin names of a part being mounted to wire numbers.
//
type Socket struct {
	wires map[string]int
	c     *Circuit
}

func newSocket(c *Circuit) *Socket {
	return &Socket{
		wires: map[string]int{False: cstFalse, True: cstTrue, Clk: cstClk},
		c:     c,
	}
}

// Pin returns the wire number of the named pin. It panics if the part has no
// such pin.
//
func (s *Socket) Pin(name string) int {
	if w, ok := s.wires[name]; ok {
		return w
	}
	panic("pin " + name + " does not exist")
}

// PinOrNew is like Pin but allocates a new wire for unknown pin names.
//
func (s *Socket) PinOrNew(name string) int {
	w, ok := s.wires[name]
	if !ok {
		w = s.c.allocPin()
		s.wires[name] = w
	}
	return w
}

// Bus returns the wire numbers of name[0] to name[bits-1]. It panics if any of
// them does not exist.
//
func (s *Socket) Bus(name string, bits int) Bus {
	b := make(Bus, 0, bits)
	for i := 0; i < bits; i++ {
		b = append(b, s.Pin(BusPinName(name, i)))
	}
	return b
}

// A Bus is a list of wire numbers, least significant bit first.
//
type Bus []int

// GetInt64 returns the value on the bus.
//
func (b Bus) GetInt64(c *Circuit) int64 {
	var v int64
	for i := len(b) - 1; i >= 0; i-- {
		v <<= 1
		if c.Get(b[i]) {
			v |= 1
		}
	}
	return v
}

// SetInt64 drives the low len(b) bits of v on the bus.
//
func (b Bus) SetInt64(c *Circuit, v int64) {
	for _, w := range b {
		c.Set(w, v&1 != 0)
		v >>= 1
	}
}
