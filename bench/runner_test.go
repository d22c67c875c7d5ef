package bench_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/db47h/ttsim/bench"
	"github.com/db47h/ttsim/dut"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	all := bench.Scenarios()
	s, err := bench.Select(all, "")
	require.NoError(t, err)
	assert.Len(t, s, 2)

	s, err = bench.Select(all, "wrap")
	require.NoError(t, err)
	require.Len(t, s, 1)
	assert.Equal(t, "test_wraparound", s[0].Name)

	s, err = bench.Select(all, "^nothing$")
	require.NoError(t, err)
	assert.Empty(t, s)

	_, err = bench.Select(all, "[")
	assert.Error(t, err)
}

func TestRun(t *testing.T) {
	for _, name := range dut.Names() {
		t.Run(name, func(t *testing.T) {
			d, _ := dut.Lookup(name)
			res, err := bench.Run(context.Background(), bench.DefaultConfig(), d, bench.Scenarios()...)
			require.NoError(t, err)
			require.Len(t, res, 2)
			for _, r := range res {
				assert.True(t, r.Passed(), r.String())
				assert.True(t, strings.HasPrefix(r.String(), "PASS "), r.String())
			}
			// 2 reset edges + 10 checks
			assert.Equal(t, 12, res[0].Edges)
			assert.Equal(t, 2+1+254+3, res[1].Edges)
			assert.Equal(t, bench.DefaultConfig().Period*12, res[0].SimTime)
		})
	}
}

func TestRun_failures(t *testing.T) {
	cfg := bench.DefaultConfig()
	res, err := bench.Run(context.Background(), cfg, saturating, bench.Scenarios()...)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.True(t, res[0].Passed())
	assert.False(t, res[1].Passed())
	assert.True(t, strings.HasPrefix(res[1].String(), "FAIL test_wraparound"), res[1].String())
	assert.True(t, strings.HasSuffix(res[1].String(), ": Expected wrap to 0, got 255"), res[1].String())

	// design errors and panics are reported per scenario
	cfg.PowerOn = 1
	res, err = bench.Run(context.Background(), cfg, dut.Gates, bench.ResetAndIncrement)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.EqualError(t, res[0].Err, "failed to build design: gate level counter cannot power on with value 1")

	boom := bench.Scenario{Name: "boom", Run: func(b *bench.Bench) error { panic("boom") }}
	res, err = bench.Run(context.Background(), bench.DefaultConfig(), dut.Behavioral, boom, bench.ResetAndIncrement)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.EqualError(t, res[0].Err, "scenario panicked: boom")
	assert.NoError(t, res[1].Err)

	cfg = bench.DefaultConfig()
	cfg.ResetEdges = 0
	_, err = bench.Run(context.Background(), cfg, dut.Behavioral)
	assert.EqualError(t, err, "invalid configuration: reset must be held for at least 2 edges, got 0")
}

// TestRun_stepsPerCycle checks that a simulation too coarse for a design is
// rejected up front instead of reporting failed scenarios.
func TestRun_stepsPerCycle(t *testing.T) {
	cfg := bench.DefaultConfig()
	cfg.StepsPerCycle = 8
	res, err := bench.Run(context.Background(), cfg, dut.Gates, bench.Scenarios()...)
	assert.EqualError(t, err, "invalid configuration: design gates needs at least 10 steps per cycle, got 8")
	assert.Empty(t, res)

	for _, d := range []dut.Design{dut.Behavioral, dut.RTL, dut.Gates, dut.NAND} {
		cfg.StepsPerCycle = d.MinStepsPerCycle()
		res, err = bench.Run(context.Background(), cfg, d, bench.Scenarios()...)
		require.NoError(t, err, d.Name)
		for _, r := range res {
			assert.True(t, r.Passed(), "%s at %d steps per cycle: %s", d.Name, cfg.StepsPerCycle, r.String())
		}
	}
}

func TestRun_cancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := bench.Run(ctx, bench.DefaultConfig(), dut.Behavioral, bench.Scenarios()...)
	assert.Equal(t, context.Canceled, err)
	assert.Empty(t, res)
}

func TestRun_trace(t *testing.T) {
	cfg := bench.DefaultConfig()
	cfg.TraceDir = t.TempDir()
	res, err := bench.Run(context.Background(), cfg, dut.RTL, bench.Scenarios()...)
	require.NoError(t, err)
	for _, r := range res {
		require.NoError(t, r.Err)
		data, err := os.ReadFile(filepath.Join(cfg.TraceDir, r.Scenario+".vcd"))
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(data, []byte("$version ttsim $end\n")), r.Scenario)
	}

	cfg.TraceDir = filepath.Join(cfg.TraceDir, "missing")
	res, err = bench.Run(context.Background(), cfg, dut.RTL, bench.ResetAndIncrement)
	require.NoError(t, err)
	assert.Error(t, res[0].Err)
}

func TestRun_parallel(t *testing.T) {
	cfg := bench.DefaultConfig()
	cfg.Parallel = 4
	var scenarios []bench.Scenario
	for i := 0; i < 8; i++ {
		scenarios = append(scenarios, bench.Scenarios()...)
	}
	scenarios = append(scenarios, bench.Scenario{Name: "fail", Run: func(b *bench.Bench) error {
		return bench.NewChecker().Expect(b.Edge().UOOut, 1, "Expected 1")
	}})
	res, err := bench.Run(context.Background(), cfg, dut.Gates, scenarios...)
	require.NoError(t, err)
	require.Len(t, res, len(scenarios))
	for i, r := range res {
		assert.Equal(t, scenarios[i].Name, r.Scenario)
		if i < len(res)-1 {
			assert.NoError(t, r.Err)
		}
	}
	assert.EqualError(t, res[len(res)-1].Err, "Expected 1, got 0")
}
