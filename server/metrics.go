package server

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/hupe1980/collesort"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusCollector exports solve metrics to a Prometheus registry.
// It implements collesort.MetricsCollector.
type PrometheusCollector struct {
	solves        *prometheus.CounterVec
	solveDuration *prometheus.HistogramVec
	searchNodes   prometheus.Histogram
	searchPruned  prometheus.Counter
}

var _ collesort.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheusCollector registers the solve metrics with reg.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	f := promauto.With(reg)
	return &PrometheusCollector{
		solves: f.NewCounterVec(prometheus.CounterOpts{
			Name: "collesort_solves_total",
			Help: "Number of solves by team count and result",
		}, []string{"teams", "result"}),

		solveDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "collesort_solve_duration_seconds",
			Help:    "Time to solve a partition",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 10, 60},
		}, []string{"teams"}),

		searchNodes: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "collesort_search_nodes",
			Help:    "Search nodes expanded per solve",
			Buckets: prometheus.ExponentialBuckets(10, 10, 9),
		}),

		searchPruned: f.NewCounter(prometheus.CounterOpts{
			Name: "collesort_search_pruned_total",
			Help: "Subtrees cut by the bound",
		}),
	}
}

// RecordSolve implements collesort.MetricsCollector.
func (p *PrometheusCollector) RecordSolve(teams int, duration time.Duration, err error) {
	label := teamsLabel(teams)
	p.solves.WithLabelValues(label, resultLabel(err)).Inc()
	p.solveDuration.WithLabelValues(label).Observe(duration.Seconds())
}

// RecordSearch implements collesort.MetricsCollector.
func (p *PrometheusCollector) RecordSearch(stats collesort.SearchStats) {
	p.searchNodes.Observe(float64(stats.Nodes))
	p.searchPruned.Add(float64(stats.Pruned))
}

// teamsLabel keeps the label set bounded: request-supplied team counts
// outside the supported range share one series.
func teamsLabel(teams int) string {
	if teams < collesort.MinTeams || teams > collesort.MaxTeams {
		return "invalid"
	}
	return strconv.Itoa(teams)
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, collesort.ErrNoSolution):
		return "no_solution"
	case isValidation(err):
		return "invalid"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "error"
	}
}
