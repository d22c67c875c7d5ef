// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

/*
Package ttsim is a cycle based digital logic simulator. Parts are described in
Go, composed into chips and mounted into a Circuit, which is the engine behind
a testbench for Tiny Tapeout style user modules (see packages dut and bench).

Every step of the simulation, each component reads the wire states of the
previous step and writes the new ones: a built-in part takes exactly one step
to update its outputs. The circuit drives a built-in clock, clk, with a
configurable number of steps per cycle, which must cover the longest
combinational path of the circuit. Clocked parts latch their inputs when
Circuit.AtTick returns true (rising edge of clk).

Components are closures over the wire numbers their part was given when
mounted, see PartSpec.
*/
package ttsim
