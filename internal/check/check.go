// Package check runs named self-check cases, records their assertion failures and reports a
// pass/fail summary.
package check

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// errStop is panicked by [T.Require] to end a case early.
var errStop = errors.New("case stopped")

// Case is a named check.
type Case struct {
	Name string
	Func func(t *T)
}

// T is passed to a running case. It keeps the first failure message of the case.
//
// A T belongs to a single case and must not be shared between goroutines.
type T struct {
	name    string
	failed  bool
	message string
	logger  zerolog.Logger
}

// Assert records a failure with the formatted message when cond is false. The case keeps running.
// It returns cond.
func (t *T) Assert(cond bool, format string, args ...any) bool {
	if !cond {
		t.fail(fmt.Sprintf(format, args...))
	}
	return cond
}

// Require is like [T.Assert], but ends the case on failure.
func (t *T) Require(cond bool, format string, args ...any) {
	if !t.Assert(cond, format, args...) {
		panic(errStop)
	}
}

// Failed reports whether an assertion of the case has failed.
func (t *T) Failed() bool {
	return t.failed
}

// Name returns the name of the case.
func (t *T) Name() string {
	return t.name
}

// Logger returns the logger of the run with the case name attached.
func (t *T) Logger() *zerolog.Logger {
	return &t.logger
}

func (t *T) fail(message string) {
	if !t.failed {
		t.failed = true
		t.message = message
	}
	t.logger.Debug().Str("message", message).Msg("assertion failed")
}

// Result is the outcome of a single case.
type Result struct {
	// Index is the 1-based position of the case in the run.
	Index int
	// Name of the case.
	Name string
	// Passed is true when no assertion failed and the case didn't panic.
	Passed bool
	// Message is the first failure message, empty for a passed case.
	Message string
	// Duration of the case.
	Duration time.Duration
}
