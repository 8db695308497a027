package check_test

import (
	"bytes"
	"context"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/teenjuna/vec/internal/check"
	"github.com/teenjuna/vec/internal/testing/require"
)

var cases = []check.Case{
	{
		Name: "pass",
		Func: func(t *check.T) {
			t.Assert(1+1 == 2, "math is broken")
		},
	},
	{
		Name: "fail",
		Func: func(t *check.T) {
			t.Assert(false, "first %d", 1)
			t.Assert(false, "second %d", 2)
		},
	},
	{
		Name: "panic",
		Func: func(t *check.T) {
			var m map[string]int
			m["x"] = 1
		},
	},
	{
		Name: "require",
		Func: func(t *check.T) {
			t.Require(false, "stop here")
			panic("unreachable")
		},
	},
}

func TestRun(t *testing.T) {
	report, err := check.NewRunner().Run(t.Context(), cases)
	require.Nil(t, err)
	require.Equal(t, report.Total(), 4)
	require.Equal(t, report.Passed, 1)
	require.False(t, report.OK())

	res := report.Results
	require.Equal(t, res[0].Index, 1)
	require.Equal(t, res[0].Name, "pass")
	require.True(t, res[0].Passed)
	require.Equal(t, res[0].Message, "")

	require.False(t, res[1].Passed)
	require.Equal(t, res[1].Message, "first 1")

	require.False(t, res[2].Passed)
	require.True(t, strings.HasPrefix(res[2].Message, "panic: "))

	require.False(t, res[3].Passed)
	require.Equal(t, res[3].Message, "stop here")

	require.Equal(t, len(report.Failures()), 3)
}

func TestRunKeepsGoingAfterAssert(t *testing.T) {
	var reached, failed bool
	report, err := check.NewRunner().Run(t.Context(), []check.Case{{
		Name: "continue",
		Func: func(t *check.T) {
			t.Assert(false, "failed")
			reached = true
			failed = t.Failed()
		},
	}})
	require.Nil(t, err)
	require.True(t, reached)
	require.True(t, failed)
	require.Equal(t, report.Passed, 0)
}

func TestRunFilter(t *testing.T) {
	report, err := check.NewRunner(check.WithFilter("pa")).Run(t.Context(), cases)
	require.Nil(t, err)
	require.Equal(t, report.Total(), 2)
	require.Equal(t, report.Results[0].Name, "pass")
	require.Equal(t, report.Results[1].Name, "panic")
	require.Equal(t, report.Results[1].Index, 2)
}

func TestRunParallel(t *testing.T) {
	var (
		running atomic.Int64
		peak    atomic.Int64
		many    []check.Case
	)
	for range 50 {
		many = append(many, check.Case{
			Name: "case",
			Func: func(t *check.T) {
				n := running.Add(1)
				defer running.Add(-1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
			},
		})
	}

	report, err := check.NewRunner(check.WithParallelism(4)).Run(t.Context(), many)
	require.Nil(t, err)
	require.True(t, report.OK())
	require.Equal(t, report.Total(), 50)
	require.True(t, peak.Load() <= 4)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	report, err := check.NewRunner().Run(ctx, cases)
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, report)
}

func TestMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	runner := check.NewRunner(check.WithPrometheus(registry, "vec", "check"))

	_, err := runner.Run(t.Context(), cases)
	require.Nil(t, err)

	families, err := registry.Gather()
	require.Nil(t, err)
	require.Equal(t, len(families), 3)

	expected := `
# HELP vec_check_cases_total Number of executed check cases
# TYPE vec_check_cases_total counter
vec_check_cases_total{component="veccheck",result="fail"} 3
vec_check_cases_total{component="veccheck",result="pass"} 1
`
	require.Nil(t, testutil.GatherAndCompare(
		registry,
		strings.NewReader(expected),
		"vec_check_cases_total",
	))
}

func TestPrint(t *testing.T) {
	report, err := check.NewRunner().Run(t.Context(), cases[:2])
	require.Nil(t, err)

	var out bytes.Buffer
	require.Nil(t, report.Print(&out, false))
	require.Equal(t, out.String(), ""+
		"Start testing\n\n"+
		"Test 1: pass                 ... OK\n\n"+
		"Test 2: fail                 ... FAIL\n"+
		"first 1\n\n"+
		"\nResults:\n"+
		"  - passed: 1/2\n",
	)

	out.Reset()
	require.Nil(t, report.Print(&out, true))
	require.True(t, strings.Contains(out.String(), "\x1b[32mOK\x1b[0m"))
	require.True(t, strings.Contains(out.String(), "\x1b[31mFAIL\x1b[0m"))
}

func TestOptionValidation(t *testing.T) {
	require.PanicWithError(t, "parallelism can't be < 1", func() {
		check.WithParallelism(0)
	})
}
