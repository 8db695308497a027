package check

import (
	"io"
	"time"

	"github.com/teenjuna/vec/str"
)

const (
	colorGreen = "\x1b[32m"
	colorRed   = "\x1b[31m"
	colorReset = "\x1b[0m"
)

// Report is the outcome of a run.
type Report struct {
	// Results in the order the cases were given.
	Results []Result
	// Passed is the number of passed cases.
	Passed int
	// Started is when the run began.
	Started time.Time
	// Duration of the whole run.
	Duration time.Duration
}

// Total returns the number of cases in the run.
func (r *Report) Total() int {
	return len(r.Results)
}

// OK reports whether all cases passed.
func (r *Report) OK() bool {
	return r.Passed == r.Total()
}

// Failures returns the results of the failed cases.
func (r *Report) Failures() []Result {
	var failures []Result
	for _, res := range r.Results {
		if !res.Passed {
			failures = append(failures, res)
		}
	}
	return failures
}

// Print writes a line per case followed by the summary. With color, the verdicts are wrapped in
// ANSI color codes.
func (r *Report) Print(w io.Writer, color bool) error {
	var out str.String
	out.PushString("Start testing\n\n")

	for _, res := range r.Results {
		out.Printf("Test %d: %-20s ... ", res.Index, res.Name)
		switch {
		case res.Passed && color:
			out.PushString(colorGreen + "OK" + colorReset + "\n")
		case res.Passed:
			out.PushString("OK\n")
		case color:
			out.PushString(colorRed + "FAIL" + colorReset + "\n")
		default:
			out.PushString("FAIL\n")
		}
		if !res.Passed {
			out.Printf("%s\n", res.Message)
		}
		out.Push('\n')
	}

	out.PushString("\nResults:\n")
	out.Printf("  - passed: %d/%d\n", r.Passed, r.Total())

	_, err := out.WriteTo(w)
	return err
}
