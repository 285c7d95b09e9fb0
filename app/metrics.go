// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package app

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics are the Prometheus metrics exported by an App.
type Metrics struct {
	Requests *prometheus.CounterVec   // by handler and code
	Duration *prometheus.HistogramVec // by handler
	Appended *prometheus.CounterVec   // entries appended, by suite

	reg *prometheus.Registry
}

// NewMetrics creates the metrics on a fresh registry that also
// collects Go runtime and process metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "benchdata_http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"handler", "code"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "benchdata_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"handler"},
		),
		Appended: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "benchdata_entries_appended_total",
				Help: "Benchmark entries appended to the history.",
			},
			[]string{"suite"},
		),
		reg: prometheus.NewRegistry(),
	}
	m.reg.MustRegister(
		m.Requests,
		m.Duration,
		m.Appended,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// instrument counts and times requests to h. A nil m returns h.
func (m *Metrics) instrument(name string, h http.Handler) http.Handler {
	if m == nil {
		return h
	}
	labels := prometheus.Labels{"handler": name}
	h = promhttp.InstrumentHandlerCounter(m.Requests.MustCurryWith(labels), h)
	return promhttp.InstrumentHandlerDuration(m.Duration.MustCurryWith(labels), h)
}

func (m *Metrics) appended(suite string) {
	if m != nil {
		m.Appended.WithLabelValues(suite).Inc()
	}
}
