// Copyright 2023 Canonical Ltd.

// The servermon package is used to update statistics used
// for monitoring the API server.
package servermon

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DBQueryDurationHistogram = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "rhub",
		Subsystem: "db",
		Name:      "query_duration_seconds",
		Help:      "Histogram of database query time in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"method"})
	DBQueryErrorCount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "rhub",
		Subsystem: "db",
		Name:      "error_total",
		Help:      "The number of database errors.",
	}, []string{"method"})
	RequestDurationHistogram = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "rhub",
		Subsystem: "handler",
		Name:      "request_duration_seconds",
		Help:      "Histogram of request handling time in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"route"})
)

// DurationObserver returns a function that, when called, observes the
// time elapsed since the call to DurationObserver in the given histogram
// vector. It is intended to be used in a defer statement.
func DurationObserver(histogram *prometheus.HistogramVec, labels ...string) func() {
	start := time.Now()
	return func() {
		histogram.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
	}
}

// ErrorCounter increments the given counter vector if *err is non-nil.
// It is intended to be used in a defer statement with a named error
// return value.
func ErrorCounter(counter *prometheus.CounterVec, err *error, labels ...string) {
	if err != nil && *err != nil {
		counter.WithLabelValues(labels...).Inc()
	}
}
