package collesort

import (
	"log/slog"
	"time"

	"github.com/hupe1980/collesort/internal/greedy"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	workers          int
	rounds           int
	progressInterval time.Duration
	exhaustive       bool
}

// Option configures Sort, Solve and Solutions.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring solves.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &collesort.BasicMetricsCollector{}
//	res, _ := collesort.Solve(ctx, values, 3, collesort.WithMetricsCollector(metrics))
//	stats := metrics.GetStats()
//	fmt.Printf("Solves: %d, Avg latency: %dns\n", stats.SolveCount, stats.SolveAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for solves.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := collesort.NewJSONLogger(slog.LevelDebug)
//	out, _ := collesort.Sort(ctx, values, 2, collesort.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithWorkers searches disjoint subtrees on up to n goroutines.
//
// The result is identical to the single-threaded search; only the wall
// time changes. Values n <= 1 select the single-threaded search (default).
// Solutions always enumerates on a single goroutine.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithRefinement sets the number of swap rounds used to tighten the greedy
// bound before the search starts. Zero disables refinement.
//
// The bound affects only speed, never the result.
func WithRefinement(rounds int) Option {
	return func(o *options) {
		if rounds < 0 {
			rounds = 0
		}
		o.rounds = rounds
	}
}

// WithProgressInterval sets the minimum time between debug progress
// records emitted during long searches. Default: 1s.
func WithProgressInterval(d time.Duration) Option {
	return func(o *options) {
		o.progressInterval = d
	}
}

// WithExhaustive drops the greedy bound so Solutions enumerates every
// distinct partition instead of only those at least as good as the greedy
// one. It has no effect on the result of Sort and Solve.
func WithExhaustive() Option {
	return func(o *options) {
		o.exhaustive = true
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		workers:          1,
		rounds:           greedy.DefaultRounds,
		progressInterval: time.Second,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
