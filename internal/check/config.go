package check

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

type Option = func(*config)

func WithParallelism(parallelism int) Option {
	if parallelism < 1 {
		panic("parallelism can't be < 1")
	}
	return func(c *config) {
		c.parallelism = parallelism
	}
}

// WithFilter keeps only the cases whose name contains filter. An empty filter keeps all of them.
func WithFilter(filter string) Option {
	return func(c *config) {
		c.filter = filter
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithPrometheus registers the metrics of the runner. If registerer is nil, metrics are collected
// but not registered.
func WithPrometheus(
	registerer prometheus.Registerer,
	namespace, subsystem string,
) Option {
	return func(c *config) {
		c.metrics = newMetrics(registerer, namespace, subsystem)
	}
}

type config struct {
	parallelism int
	filter      string
	logger      zerolog.Logger
	metrics     *metrics
}

func newConfig(options ...Option) *config {
	options = append([]Option{
		WithParallelism(1),
		WithLogger(zerolog.Nop()),
		WithPrometheus(nil, "vec", "check"),
	}, options...)

	cfg := config{}
	for _, opt := range options {
		opt(&cfg)
	}

	return &cfg
}
