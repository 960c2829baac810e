// Package metrics provides Prometheus metrics for the alloy service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SeederRowsInserted counts rows written by the dataset seeder per table
	SeederRowsInserted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "alloy",
			Subsystem: "seeder",
			Name:      "rows_inserted_total",
			Help:      "Total number of dataset rows inserted by the seeder",
		},
		[]string{"table"},
	)

	// SeederDuration tracks seeding runs by outcome (seeded, skipped, failed)
	SeederDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "alloy",
			Subsystem: "seeder",
			Name:      "duration_seconds",
			Help:      "Duration of dataset seeding runs in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"outcome"},
	)

	// HTTPRequestsTotal tracks inbound HTTP requests
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "alloy",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of inbound HTTP requests",
		},
		[]string{"method", "route", "status_code"},
	)

	// HTTPRequestDuration tracks inbound HTTP request duration
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "alloy",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of inbound HTTP requests in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	// CacheLookupsTotal tracks response cache lookups by result (hit, miss, error)
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "alloy",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Total number of response cache lookups",
		},
		[]string{"result"},
	)
)
