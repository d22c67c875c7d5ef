package hwtest_test

import (
	"math/rand"
	"runtime"
	"sync"
	"testing"

	hw "github.com/db47h/ttsim"
	hl "github.com/db47h/ttsim/hwlib"
	"github.com/db47h/ttsim/hwtest"
)

func TestComparePart(t *testing.T) {
	// two levels of NAND gates. With 4 steps per cycle, the output settles
	// exactly when it is compared: one step for the inputs, one per gate and
	// one for the probes.
	and, err := hw.Chip("NAND_AND", hw.In("a, b"), hw.Out("out"), hw.Parts{
		hl.Nand("a=a, b=b, out=nab"),
		hl.Nand("a=nab, b=nab, out=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	hwtest.ComparePart(t, 4, hl.And, and)
}

func TestCompareSequence_firstCycle(t *testing.T) {
	// the output of a chain of 3 inverters settles 4 steps after its input
	// goes high, which leaves no margin in a half cycle.
	not3, err := hw.Chip("NOT3", hw.In("in"), hw.Out("out"), hw.Parts{
		hl.Not("in=in, out=n1"),
		hl.Not("in=n1, out=n2"),
		hl.Not("in=n2, out=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	hwtest.CompareSequence(t, 8, 1, hl.Not, not3, func(_ int, in []bool) { in[0] = true })
}

// fakeTB records failures. Fatal stops the calling goroutine like testing.T.
type fakeTB struct {
	testing.TB
	mu     sync.Mutex
	failed bool
}

func (f *fakeTB) Helper() {}

func (f *fakeTB) Log(args ...interface{}) {}

func (f *fakeTB) Logf(format string, args ...interface{}) {}

func (f *fakeTB) Errorf(format string, args ...interface{}) { f.fail() }

func (f *fakeTB) Fatal(args ...interface{}) {
	f.fail()
	runtime.Goexit()
}

func (f *fakeTB) Fatalf(format string, args ...interface{}) {
	f.fail()
	runtime.Goexit()
}

func (f *fakeTB) Failed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failed
}

func (f *fakeTB) fail() {
	f.mu.Lock()
	f.failed = true
	f.mu.Unlock()
}

func runFake(fn func(tb testing.TB)) bool {
	tb := &fakeTB{}
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn(tb)
	}()
	<-done
	return tb.Failed()
}

func TestComparePart_mismatch(t *testing.T) {
	if !runFake(func(tb testing.TB) { hwtest.ComparePart(tb, 4, hl.And, hl.Nand) }) {
		t.Fatal("AND and NAND compared equal")
	}
	if runFake(func(tb testing.TB) { hwtest.ComparePart(tb, 4, hl.Nand, hl.Nand) }) {
		t.Fatal("NAND and NAND compared different")
	}
}

func TestCompareSequence_clocked(t *testing.T) {
	// a DFF built from a 1 bit register.
	reg, err := hw.Chip("REG", hw.In("in"), hw.Out("out"), hw.Parts{
		hl.RegisterN(1, 0)("in[0]=in, out[0]=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	rnd := rand.New(rand.NewSource(42))
	hwtest.CompareSequence(t, 8, 200, hl.DFF, reg, hwtest.Random(rnd))

	// two flip flops in series delay their input by one more cycle.
	dff2, err := hw.Chip("DFF2", hw.In("in"), hw.Out("out"), hw.Parts{
		hl.DFF("in=in, out=x"),
		hl.DFF("in=x, out=out"),
	})
	if err != nil {
		t.Fatal(err)
	}
	failed := runFake(func(tb testing.TB) {
		hwtest.CompareSequence(tb, 8, 200, hl.DFF, dff2, hwtest.Random(rand.New(rand.NewSource(42))))
	})
	if !failed {
		t.Fatal("DFF and DFF2 compared equal")
	}
}
