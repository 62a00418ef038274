package experiment

import (
	"log/slog"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/ragsweep/retrieval"
	"github.com/poiesic/ragsweep/scoring"
)

// Option configures a Runner.
type Option func(*Runner) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithConcurrency evaluates up to n testing rows of a combination at once.
// Default is 1, which runs rows sequentially without a pool.
// Row scores keep testing-split order regardless of n.
func WithConcurrency(n int) Option {
	return func(r *Runner) error {
		if n < 1 {
			n = 1
		}

		if r.pool != nil {
			r.pool.Release()
			r.pool = nil
		}
		if n == 1 {
			return nil
		}

		pool, err := ants.NewPool(n)
		if err != nil {
			return err
		}
		r.pool = pool
		return nil
	}
}

// WithSeed makes the train/test split reproducible. It overrides the
// seed in the experiment config.
func WithSeed(seed int64) Option {
	return func(r *Runner) error {
		r.seed = &seed
		return nil
	}
}

// WithShuffle replaces the split permutation entirely.
// It takes precedence over any seed. A nil shuffle keeps input order.
func WithShuffle(shuffle ShuffleFunc) Option {
	return func(r *Runner) error {
		r.shuffle = shuffle
		r.shuffleSet = true
		return nil
	}
}

// WithMonitor registers a run observer.
func WithMonitor(m Monitor) Option {
	return func(r *Runner) error {
		if m == nil {
			m = noopMonitor{}
		}
		r.monitor = m
		return nil
	}
}

// WithMetrics records run metrics on m.
func WithMetrics(m *Metrics) Option {
	return func(r *Runner) error {
		r.metrics = m
		return nil
	}
}

// WithScorer fixes the scorer used for every run, bypassing the
// engine selected in the experiment config.
func WithScorer(s scoring.Scorer) Option {
	return func(r *Runner) error {
		r.scorer = s
		return nil
	}
}

// WithBatchSize sets how many training texts are embedded per provider call.
func WithBatchSize(n int) Option {
	return func(r *Runner) error {
		r.retrievalOpts = append(r.retrievalOpts, retrieval.WithBatchSize(n))
		return nil
	}
}

// WithRetry sets retry behavior for embedding calls.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(r *Runner) error {
		r.retrievalOpts = append(r.retrievalOpts, retrieval.WithRetry(maxAttempts, baseDelay))
		return nil
	}
}
