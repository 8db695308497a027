// Command veccheck runs the self-check suite of vec and str.
//
// It prints a line per case and a summary, and exits with code 1 when any case fails. Runs can be
// recorded in a SQLite database and inspected later with the history subcommand.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/teenjuna/vec/internal/check"
	"github.com/teenjuna/vec/internal/sqlite"
	"github.com/teenjuna/vec/internal/suite"
	"github.com/teenjuna/vec/str"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "path to the yaml config file (default: ./veccheck.yaml if present)",
	}

	// Flags that override config keys. The key is the flag name with dashes replaced by
	// underscores.
	runFlags = []cli.Flag{
		&cli.IntFlag{
			Name:    "parallel",
			Aliases: []string{"p"},
			Usage:   "number of cases to run at once",
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "run only cases whose name contains this",
		},
		&cli.IntFlag{
			Name:  "stress",
			Usage: "number of elements used by the stress cases",
		},
		&cli.Uint64Flag{
			Name:  "seed",
			Usage: "seed of the random inputs",
		},
		&cli.StringFlag{
			Name:  "db",
			Usage: "SQLite file to record runs in",
		},
		&cli.StringFlag{
			Name:  "codec",
			Usage: "encoding of the recorded case results: json or gob",
		},
		&cli.StringFlag{
			Name:  "metrics-file",
			Usage: "write prometheus metrics to this file after the run",
		},
		&cli.BoolFlag{
			Name:  "no-color",
			Usage: "don't color the output",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "trace, debug, info, warn or error",
		},
	}

	historyCommand = &cli.Command{
		Name:      "history",
		Usage:     "print the most recent recorded runs",
		UsageText: "veccheck history --db FILE [--codec NAME] [--limit N | --run ID]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "db",
				Usage:    "SQLite file the runs were recorded in",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "codec",
				Value: "json",
				Usage: "encoding the runs were recorded with: json or gob",
			},
			&cli.StringFlag{
				Name:  "run",
				Usage: "print only the failed cases of the run with this ID",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Value:   10,
				Usage:   "number of runs to print",
			},
		},
		Action: historyCmd,
	}
)

func main() {
	app := &cli.App{
		Name:     "veccheck",
		Usage:    "run the self-check suite of vec and str",
		Flags:    append([]cli.Flag{configFlag}, runFlags...),
		Action:   runCmd,
		Commands: []*cli.Command{historyCommand},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "veccheck: %v\n", err)
		os.Exit(2)
	}
}

func runCmd(c *cli.Context) error {
	cfg, err := loadConfig(c.String(configFlag.Name), overrides(c))
	if err != nil {
		return err
	}

	logger := newLogger(os.Stderr, cfg)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry := prometheus.NewRegistry()
	runner := check.NewRunner(
		check.WithParallelism(cfg.Parallel),
		check.WithFilter(cfg.Filter),
		check.WithLogger(logger),
		check.WithPrometheus(registry, "vec", "check"),
	)

	report, err := runner.Run(ctx, suite.Cases(suite.Config{
		Size: cfg.Stress,
		Seed: cfg.Seed,
	}))
	if err != nil {
		return err
	}

	if err := report.Print(c.App.Writer, !cfg.NoColor); err != nil {
		return fmt.Errorf("print report: %w", err)
	}

	if cfg.DB != "" {
		id, err := record(cfg, report)
		if err != nil {
			return fmt.Errorf("record run: %w", err)
		}
		logger.Info().Str("id", id).Str("db", cfg.DB).Msg("recorded run")
	}

	if cfg.MetricsFile != "" {
		if err := prometheus.WriteToTextfile(cfg.MetricsFile, registry); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		logger.Debug().Str("file", cfg.MetricsFile).Msg("wrote metrics")
	}

	if !report.OK() {
		return cli.Exit("", 1)
	}

	return nil
}

func historyCmd(c *cli.Context) error {
	codec, err := newCodec(c.String("codec"))
	if err != nil {
		return cli.Exit(err.Error(), 2)
	}

	storage, err := sqlite.New(
		sqlite.WithFile(c.String("db")),
		sqlite.WithCodec(codec),
	)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer storage.Close()

	if id := c.String("run"); id != "" {
		failures, err := storage.Failures(id)
		if err != nil {
			return fmt.Errorf("read failures of run %s: %w", id, err)
		}
		_, err = writeFailures(c.App.Writer, failures)
		return err
	}

	runs, err := storage.Runs(max(1, c.Int("limit")))
	if err != nil {
		return fmt.Errorf("read runs: %w", err)
	}
	stats, err := storage.Stats()
	if err != nil {
		return fmt.Errorf("read stats: %w", err)
	}

	_, err = writeHistory(c.App.Writer, runs, stats)
	return err
}

func writeHistory(w io.Writer, runs []sqlite.Run, stats *sqlite.Stats) (int64, error) {
	var out str.String
	defer out.Release()

	for _, run := range runs {
		out.Printf(
			"%s  %s  passed %d/%d  %s\n",
			run.ID,
			run.StartedAt.Format(time.DateTime),
			len(run.Cases)-run.Failed(),
			len(run.Cases),
			run.Duration.Round(time.Millisecond),
		)
		for _, c := range run.Cases {
			if !c.Passed {
				printFailure(&out, c)
			}
		}
	}
	out.Printf(
		"\nRuns: %d (%d failed), cases: %d (%d failed)\n",
		stats.Runs, stats.FailedRuns, stats.Cases, stats.FailedCases,
	)

	return out.WriteTo(w)
}

func writeFailures(w io.Writer, failures []sqlite.CaseResult) (int64, error) {
	var out str.String
	defer out.Release()

	if len(failures) == 0 {
		out.PushString("No failed cases\n")
	}
	for _, c := range failures {
		printFailure(&out, c)
	}

	return out.WriteTo(w)
}

func printFailure(out *str.String, c sqlite.CaseResult) {
	out.Printf("    %s: %s\n", c.Name, c.Message)
}

func record(cfg *Config, report *check.Report) (sqlite.RunID, error) {
	codec, err := newCodec(cfg.Codec)
	if err != nil {
		return "", err
	}

	storage, err := sqlite.New(
		sqlite.WithFile(cfg.DB),
		sqlite.WithCodec(codec),
	)
	if err != nil {
		return "", err
	}
	defer storage.Close()

	return storage.Record(toRun(report))
}

func toRun(report *check.Report) sqlite.Run {
	cases := make([]sqlite.CaseResult, len(report.Results))
	for i, res := range report.Results {
		cases[i] = sqlite.CaseResult{
			Name:     res.Name,
			Passed:   res.Passed,
			Message:  res.Message,
			Duration: res.Duration,
		}
	}
	return sqlite.Run{
		StartedAt: report.Started,
		Duration:  report.Duration,
		Cases:     cases,
	}
}

func overrides(c *cli.Context) map[string]any {
	values := map[string]any{}
	for _, flag := range runFlags {
		name := flag.Names()[0]
		if c.IsSet(name) {
			values[strings.ReplaceAll(name, "-", "_")] = c.Value(name)
		}
	}
	return values
}

func newLogger(w io.Writer, cfg *Config) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
		NoColor:    cfg.NoColor,
	}).
		Level(cfg.level()).
		With().
		Timestamp().
		Logger()
}
