package collesort

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    solveCounter   prometheus.Counter
//	    solveHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordSolve(teams int, duration time.Duration, err error) {
//	    p.solveCounter.Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordSolve is called after each Sort or Solve call.
	// duration is the total time taken, err is nil if successful.
	RecordSolve(teams int, duration time.Duration, err error)

	// RecordSearch is called after each completed search with the effort
	// it took.
	RecordSearch(stats SearchStats)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordSolve(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordSearch(SearchStats)              {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	SolveCount      atomic.Int64
	SolveErrors     atomic.Int64
	SolveTotalNanos atomic.Int64
	SearchCount     atomic.Int64
	NodeCount       atomic.Int64
	LeafCount       atomic.Int64
	PrunedCount     atomic.Int64
}

// RecordSolve implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSolve(teams int, duration time.Duration, err error) {
	b.SolveCount.Add(1)
	b.SolveTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SolveErrors.Add(1)
	}
}

// RecordSearch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSearch(stats SearchStats) {
	b.SearchCount.Add(1)
	b.NodeCount.Add(stats.Nodes)
	b.LeafCount.Add(stats.Leaves)
	b.PrunedCount.Add(stats.Pruned)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		SolveCount:    b.SolveCount.Load(),
		SolveErrors:   b.SolveErrors.Load(),
		SolveAvgNanos: b.getAvgSolveNanos(),
		SearchCount:   b.SearchCount.Load(),
		NodeCount:     b.NodeCount.Load(),
		LeafCount:     b.LeafCount.Load(),
		PrunedCount:   b.PrunedCount.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgSolveNanos() int64 {
	count := b.SolveCount.Load()
	if count == 0 {
		return 0
	}
	return b.SolveTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	SolveCount    int64
	SolveErrors   int64
	SolveAvgNanos int64
	SearchCount   int64
	NodeCount     int64
	LeafCount     int64
	PrunedCount   int64
}
