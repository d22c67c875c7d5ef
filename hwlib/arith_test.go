package hwlib_test

import (
	"testing"

	hw "github.com/db47h/ttsim"
	hl "github.com/db47h/ttsim/hwlib"
	"github.com/db47h/ttsim/hwtest"
)

func TestHalfAdder(t *testing.T) {
	ha, err := hw.Chip("NAND_HA", hw.In("a, b"), hw.Out("s, c"), hw.Parts{
		hl.Nand("a=a, b=b, out=n"),
		hl.Nand("a=a, b=n, out=x0"),
		hl.Nand("a=b, b=n, out=x1"),
		hl.Nand("a=x0, b=x1, out=s"),
		hl.Not("in=n, out=c"),
	})
	if err != nil {
		t.Fatal(err)
	}
	hwtest.ComparePart(t, testTPC, hl.HalfAdder, ha)
}

func TestIncN(t *testing.T) {
	// ripple carry incrementer
	inc4, err := hw.Chip("HA_INC4", hw.In("in[4]"), hw.Out("out[4], c"), hw.Parts{
		hl.HalfAdder("a=in[0], b=true, s=out[0], c=c1"),
		hl.HalfAdder("a=in[1], b=c1, s=out[1], c=c2"),
		hl.HalfAdder("a=in[2], b=c2, s=out[2], c=c3"),
		hl.HalfAdder("a=in[3], b=c3, s=out[3], c=c"),
	})
	if err != nil {
		t.Fatal(err)
	}
	hwtest.ComparePart(t, 16, hl.IncN(4), inc4)

	var in, out int64
	var carry bool
	c, err := hw.NewCircuit(0, testTPC, hw.Parts{
		hl.InputN(8, func() int64 { return in })("out=x"),
		hl.IncN(8)("in=x, out=y, c=cy"),
		hl.OutputN(8, func(v int64) { out = v })("in=y"),
		hl.Output(func(v bool) { carry = v })("in=cy"),
	})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Dispose()
	for in = 0; in < 256; in++ {
		c.Tick()
		c.Tock()
		if want := (in + 1) % 256; out != want || carry != (want == 0) {
			t.Fatalf("%d + 1 = %d carry %v, expected %d carry %v", in, out, carry, want, want == 0)
		}
	}
}
