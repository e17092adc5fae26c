// Package metrics registers the prometheus instruments the HTTP layer
// and the domain services report into.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Metrics struct {
	AdmissionsIssued    prometheus.Counter
	AdjustmentsCreated  *prometheus.CounterVec
	AdjustmentsCanceled prometheus.Counter
	OverridesApplied    prometheus.Counter
	ReceiptsCreated     prometheus.Counter
	HTTPRequests        *prometheus.CounterVec
	HTTPDuration        *prometheus.HistogramVec
}

func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		AdmissionsIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mirai_admissions_issued_total",
			Help: "Admissions issued.",
		}),
		AdjustmentsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mirai_fee_adjustments_created_total",
			Help: "Fee adjustments created, by type.",
		}, []string{"type"}),
		AdjustmentsCanceled: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mirai_fee_adjustments_cancelled_total",
			Help: "Fee adjustments cancelled.",
		}),
		OverridesApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mirai_fee_overrides_applied_total",
			Help: "Fee overrides applied or rewritten.",
		}),
		ReceiptsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mirai_fee_receipts_created_total",
			Help: "Fee receipts created.",
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mirai_http_requests_total",
			Help: "HTTP requests, by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mirai_http_request_duration_seconds",
			Help:    "HTTP request latency, by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	registry.MustRegister(
		m.AdmissionsIssued,
		m.AdjustmentsCreated,
		m.AdjustmentsCanceled,
		m.OverridesApplied,
		m.ReceiptsCreated,
		m.HTTPRequests,
		m.HTTPDuration,
	)
	return m
}

func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	return registry
}
