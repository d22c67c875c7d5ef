package ttsim_test

import (
	"strings"
	"testing"

	hw "github.com/db47h/ttsim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIO(t *testing.T) {
	data := []struct {
		in  string
		out []string
		err string
	}{
		{"", nil, ""},
		{"a", []string{"a"}, ""},
		{" a , b_2,c ", []string{"a", "b_2", "c"}, ""},
		{"rst_n, ui_in[3]", []string{"rst_n", "ui_in[0]", "ui_in[1]", "ui_in[2]"}, ""},
		{"a,", nil, "expected pin name"},
		{"a b", nil, "expected comma or end of input"},
		{"bus[0]", nil, "invalid bus size 0"},
		{"bus[", nil, "expected integer"},
		{"bus[2", nil, "missing close bracket"},
		{"2a", nil, "expected pin name"},
	}
	for _, d := range data {
		out, err := hw.ParseIO(d.in)
		if d.err != "" {
			if assert.Error(t, err, "ParseIO(%q)", d.in) {
				assert.True(t, strings.HasSuffix(err.Error(), d.err), "ParseIO(%q): got error %q, expected %q", d.in, err, d.err)
			}
			continue
		}
		require.NoError(t, err, "ParseIO(%q)", d.in)
		assert.Equal(t, d.out, out, "ParseIO(%q)", d.in)
	}
}

func TestIO_panics(t *testing.T) {
	assert.Panics(t, func() { hw.In("a,,b") })
	assert.Panics(t, func() { hw.Out("q[") })
	spec := &hw.PartSpec{
		Name:   "x",
		Inputs: hw.In("a"),
		Mount:  func(*hw.Socket) []hw.Component { return nil },
	}
	assert.Panics(t, func() { spec.NewPart("a=") })
	assert.NotPanics(t, func() { spec.NewPart("a=b") })
}

func TestParseConnections(t *testing.T) {
	c := func(pp, cp string) hw.Connection { return hw.Connection{PP: pp, CP: cp} }
	data := []struct {
		in  string
		out []hw.Connection
		err string
	}{
		{"", nil, ""},
		{"a=b", []hw.Connection{c("a", "b")}, ""},
		{"a = x, out=true", []hw.Connection{c("a", "x"), c("out", "true")}, ""},
		{"in[2]=bus[0]", []hw.Connection{c("in[2]", "bus[0]")}, ""},
		{"a[0..2]=x[5..7]", []hw.Connection{c("a[0]", "x[5]"), c("a[1]", "x[6]"), c("a[2]", "x[7]")}, ""},
		{"b[1..2]=false", []hw.Connection{c("b[1]", "false"), c("b[2]", "false")}, ""},
		{"a", nil, "expected '='"},
		{"a=b c=d", nil, "expected comma or end of input"},
		{"a[0..3]=x[0..1]", nil, "pin count mismatch in connection (4 vs 2 pins)"},
		{"a[3..1]=x", nil, "invalid range 3..1"},
		{"a[1..=x", nil, "expected integer"},
		{"=x", nil, "expected pin name"},
	}
	for _, d := range data {
		out, err := hw.ParseConnections(d.in)
		if d.err != "" {
			if assert.Error(t, err, "ParseConnections(%q)", d.in) {
				assert.True(t, strings.HasSuffix(err.Error(), d.err), "ParseConnections(%q): got error %q, expected %q", d.in, err, d.err)
			}
			continue
		}
		require.NoError(t, err, "ParseConnections(%q)", d.in)
		assert.Equal(t, d.out, out, "ParseConnections(%q)", d.in)
	}
}

func TestPartSpec_NewPart_buses(t *testing.T) {
	spec := &hw.PartSpec{
		Name:    "dummy",
		Inputs:  hw.In("a[2], en"),
		Outputs: hw.Out("out[2]"),
	}
	p := spec.NewPart("a=x, en=true, out=y")
	assert.Equal(t, []hw.Connection{
		{PP: "a[0]", CP: "x[0]"},
		{PP: "a[1]", CP: "x[1]"},
		{PP: "en", CP: "true"},
		{PP: "out[0]", CP: "y[0]"},
		{PP: "out[1]", CP: "y[1]"},
	}, p.Conns)

	// constants are not indexed
	p = spec.NewPart("a=false")
	assert.Equal(t, []hw.Connection{{PP: "a[0]", CP: "false"}, {PP: "a[1]", CP: "false"}}, p.Conns)

	// unknown names are left as is
	p = spec.NewPart("b=x")
	assert.Equal(t, []hw.Connection{{PP: "b", CP: "x"}}, p.Conns)
}

func TestBusPinName(t *testing.T) {
	assert.Equal(t, "uo_out[7]", hw.BusPinName("uo_out", 7))
}
