package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/url"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/teenjuna/vec"
	"github.com/teenjuna/vec/codec/json"
	"github.com/teenjuna/vec/codec/zstd"
	"github.com/teenjuna/vec/str"
)

var (
	// ErrClosed is returned by Storage methods when the storage has been closed.
	ErrClosed = errors.New("storage is closed")
	// ErrNotFound is returned when there's no run with the requested ID.
	ErrNotFound = errors.New("run not found")
)

const (
	memory = ":memory:"
)

// Storage keeps the history of check runs in SQLite.
//
// The case results of a run are stored as a single blob encoded by the configured codec. Storage
// is safe for concurrent use: every call works with its own instance derived from the codec.
type Storage struct {
	cfg *Config
	db  *sql.DB
}

// New creates a new Storage with the provided configuration functions.
//
// Default configuration:
//   - File: ":memory:" (in-memory database)
//   - Codec: JSON compressed with zstd
//
// Returns an error if the SQLite database cannot be opened or initialized.
func New(configFuncs ...ConfigFunc) (*Storage, error) {
	cfg := &Config{}
	cfg.File(memory)
	cfg.Codec(zstd.Wrap[CaseResult](json.New[CaseResult]()))
	for _, cf := range configFuncs {
		cf(cfg)
	}

	db, err := open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}

	if err := setup(db); err != nil {
		return nil, errors.Join(fmt.Errorf("setup: %w", err), db.Close())
	}

	storage := Storage{
		cfg: cfg,
		db:  db,
	}

	return &storage, nil
}

// Record stores a run with its case results and returns the ID assigned to it.
//
// Returns [ErrClosed] if the storage has been closed.
func (s *Storage) Record(run Run) (RunID, error) {
	results, err := s.cfg.codec.Derive().Encode(vec.Of(run.Cases...).Values())
	if err != nil {
		return "", fmt.Errorf("encode results: %w", err)
	}

	id := generateID()
	_, err = s.db.Exec(
		`
		insert into run (
			id,
			started_at,
			duration,
			total,
			failed,
			results
		) values (
			:id,
			:started_at,
			:duration,
			:total,
			:failed,
			:results
		)
		`,
		sql.Named("id", id),
		sql.Named("started_at", toTimestamp(run.StartedAt)),
		sql.Named("duration", int64(run.Duration)),
		sql.Named("total", len(run.Cases)),
		sql.Named("failed", run.Failed()),
		sql.Named("results", results),
	)
	if isClosed(err) {
		return "", ErrClosed
	} else if err != nil {
		return "", err
	}

	return id, nil
}

// Runs returns up to limit most recent runs, newest first.
func (s *Storage) Runs(limit int) ([]Run, error) {
	if limit < 1 {
		panic("limit can't be < 1")
	}

	rows, err := s.db.Query(
		`
		select id, started_at, duration, results
		from run
		order by started_at desc, rowid desc
		limit :limit
		`,
		sql.Named("limit", limit),
	)
	if isClosed(err) {
		return nil, ErrClosed
	} else if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var (
		runs  = vec.New[Run]()
		codec = s.cfg.codec.Derive()
	)
	for rows.Next() {
		var (
			run       Run
			startedAt int64
			duration  int64
			results   []byte
		)
		if err := rows.Scan(&run.ID, &startedAt, &duration, &results); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}

		cases := vec.New[CaseResult]()
		if err := codec.Decode(results, cases.Push); err != nil {
			return nil, fmt.Errorf("decode results of run %s: %w", run.ID, err)
		}

		run.StartedAt = fromTimestamp(startedAt)
		run.Duration = time.Duration(duration)
		run.Cases = cases.Slice()
		runs.Push(run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	return runs.Slice(), nil
}

// Stats returns aggregated numbers over all stored runs.
func (s *Storage) Stats() (*Stats, error) {
	var stats Stats
	err := s.db.QueryRow(
		`
		select
			coalesce(count(*), 0) as runs,
			coalesce(sum(failed > 0), 0) as failed_runs,
			coalesce(sum(total), 0) as cases,
			coalesce(sum(failed), 0) as failed_cases
		from
			run
		`,
	).Scan(
		&stats.Runs,
		&stats.FailedRuns,
		&stats.Cases,
		&stats.FailedCases,
	)
	if isClosed(err) {
		return nil, ErrClosed
	} else if err != nil {
		return nil, err
	}

	return &stats, nil
}

// Failures returns the failed cases of the run with the given ID in execution order.
//
// Returns [ErrNotFound] if there's no such run and [ErrClosed] if the storage has been closed.
func (s *Storage) Failures(id RunID) ([]CaseResult, error) {
	var results []byte
	err := s.db.QueryRow(
		`
		select results
		from run
		where id = :id
		`,
		sql.Named("id", id),
	).Scan(&results)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if isClosed(err) {
		return nil, ErrClosed
	} else if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}

	failures := vec.New[CaseResult]()
	err = s.cfg.codec.Derive().Decode(results, func(c CaseResult) {
		if !c.Passed {
			failures.Push(c)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("decode results of run %s: %w", id, err)
	}

	return failures.Slice(), nil
}

// Close closes the underlying SQLite database.
//
// After closing, all methods on Storage will return [ErrClosed].
func (s *Storage) Close() error {
	return s.db.Close()
}

// Run is a stored check run.
type Run struct {
	// ID is the unique identifier of this run. It's assigned by [Storage.Record].
	ID RunID
	// StartedAt is the time the run began.
	StartedAt time.Time
	// Duration of the whole run.
	Duration time.Duration
	// Cases are the results of the run's cases in execution order.
	Cases []CaseResult
}

// Failed returns the number of failed cases.
func (r *Run) Failed() int {
	var n int
	for _, c := range r.Cases {
		if !c.Passed {
			n++
		}
	}
	return n
}

// CaseResult is the stored outcome of a single case.
type CaseResult struct {
	Name     string        `json:"name"`
	Passed   bool          `json:"passed"`
	Message  string        `json:"message,omitempty"`
	Duration time.Duration `json:"duration"`
}

type RunID = string

// Stats represents statistics about the stored runs.
type Stats struct {
	// Runs is the total number of runs.
	Runs int
	// FailedRuns is the number of runs with at least one failed case.
	FailedRuns int
	// Cases is the total number of cases over all runs.
	Cases int
	// FailedCases is the number of failed cases over all runs.
	FailedCases int
}

func isClosed(err error) bool {
	return err != nil && err.Error() == "sql: database is closed"
}

func open(cfg *Config) (*sql.DB, error) {
	name := cfg.file

	params := url.Values{}
	params.Add("_txlock", "immediate")
	params.Add("_timeout", "5000") // 5s
	if name == memory {
		name = generateID()
		params.Add("mode", "memory")
		params.Add("cache", "shared")
	} else {
		params.Add("_journal", "wal")
		params.Add("_sync", "normal")
	}

	db, err := sql.Open("sqlite3", "file:"+name+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	db.SetConnMaxIdleTime(0)
	db.SetConnMaxLifetime(0)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return db, nil
}

func setup(db *sql.DB) error {
	if _, err := db.Exec(
		`
		create table if not exists run (
			id         text primary key,
			started_at int not null,
			duration   int not null,
			total      int not null,
			failed     int not null,
			results    blob not null
		) strict
		`,
	); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(
		`
		create index if not exists idx_run_started_at
		on run (started_at)
		`,
	); err != nil {
		return fmt.Errorf("create index: %w", err)
	}

	return nil
}

func generateID() string {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	const n = 10
	b := str.New()
	for range n {
		b.Push(charset[rand.IntN(len(charset))])
	}
	return b.String()
}

func toTimestamp(time time.Time) int64 {
	return time.UnixNano()
}

func fromTimestamp(timestamp int64) time.Time {
	return time.Unix(0, timestamp)
}
