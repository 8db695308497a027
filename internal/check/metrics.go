package check

import (
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	runs         prometheus.Counter
	cases        *prometheus.CounterVec
	caseDuration prometheus.Histogram
}

func newMetrics(registerer prometheus.Registerer, namespace, subsystem string) *metrics {
	m := metrics{
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "runs_total",
			Help:      "Number of check runs",
		}),
		cases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cases_total",
			Help:      "Number of executed check cases",
		}, []string{"result"}),
		caseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "case_duration_seconds",
			Help:      "Duration of check cases",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}

	if registerer != nil {
		registerer = prometheus.WrapRegistererWith(
			prometheus.Labels{"component": "veccheck"},
			registerer,
		)
		registerer.MustRegister(
			m.runs,
			m.cases,
			m.caseDuration,
		)
	}

	return &m
}

func (m *metrics) observe(result Result) {
	label := "pass"
	if !result.Passed {
		label = "fail"
	}
	m.cases.WithLabelValues(label).Inc()
	m.caseDuration.Observe(result.Duration.Seconds())
}
