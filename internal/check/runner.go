package check

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/teenjuna/vec"
)

// Runner runs cases and collects their results.
type Runner struct {
	cfg *config
}

func NewRunner(options ...Option) *Runner {
	return &Runner{cfg: newConfig(options...)}
}

// Run runs the cases matching the filter, at most parallelism of them at once. Every case gets
// its own [T], so cases must not share mutable state.
//
// A failing case doesn't stop the run. An error is returned only if ctx is done before all
// cases have run.
func (r *Runner) Run(ctx context.Context, cases []Case) (*Report, error) {
	selected := vec.New[Case]()
	for _, c := range cases {
		if strings.Contains(c.Name, r.cfg.filter) {
			selected.Push(c)
		}
	}

	var (
		started = time.Now()
		results = make([]Result, selected.Len())
		group   = new(errgroup.Group)
	)
	group.SetLimit(r.cfg.parallelism)

	r.cfg.logger.Info().
		Int("cases", selected.Len()).
		Int("parallelism", r.cfg.parallelism).
		Msg("start run")

	for i, c := range selected.All() {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = r.runCase(i+1, c)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("run cases: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("run cases: %w", err)
	}

	report := Report{
		Results:  results,
		Started:  started,
		Duration: time.Since(started),
	}
	for _, res := range results {
		if res.Passed {
			report.Passed++
		}
	}

	r.cfg.metrics.runs.Inc()
	r.cfg.logger.Info().
		Int("passed", report.Passed).
		Int("total", report.Total()).
		Dur("duration", report.Duration).
		Msg("finish run")

	return &report, nil
}

func (r *Runner) runCase(index int, c Case) (res Result) {
	t := &T{
		name:   c.Name,
		logger: r.cfg.logger.With().Str("case", c.Name).Logger(),
	}
	start := time.Now()

	defer func() {
		if p := recover(); p != nil {
			if err, ok := p.(error); !ok || !errors.Is(err, errStop) {
				t.fail(fmt.Sprintf("panic: %v", p))
			}
		}

		res = Result{
			Index:    index,
			Name:     c.Name,
			Passed:   !t.failed,
			Message:  t.message,
			Duration: time.Since(start),
		}
		r.cfg.metrics.observe(res)

		if res.Passed {
			t.logger.Debug().Dur("duration", res.Duration).Msg("case passed")
		} else {
			t.logger.Warn().Str("message", res.Message).Msg("case failed")
		}
	}()

	c.Func(t)

	return
}
