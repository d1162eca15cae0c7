// © 2025 Eric Lim
//
// SPDX-License-Identifier: MIT

package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	Compares        *prometheus.CounterVec
	CompareDuration prometheus.Histogram
	DiffLines       *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Compares: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sjd_compares_total",
			Help: "Comparison requests, by outcome.",
		}, []string{"outcome"}),
		CompareDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "sjd_compare_duration_seconds",
			Help:    "Wall time of the canonicalize-diff-chunk pipeline.",
			Buckets: prometheus.DefBuckets,
		}),
		DiffLines: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sjd_diff_lines_total",
			Help: "Diffed lines, by op type.",
		}, []string{"type"}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
