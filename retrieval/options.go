package retrieval

import (
	"log/slog"
	"time"

	"github.com/poiesic/ragsweep/ai"
)

const (
	// DefaultBatchSize is the number of texts sent to the embedder per call.
	DefaultBatchSize = 64
	// DefaultMaxAttempts is the number of embedding attempts per batch.
	DefaultMaxAttempts = 3
	// DefaultRetryDelay is the base backoff delay between attempts.
	DefaultRetryDelay = 200 * time.Millisecond
)

type settings struct {
	logger      *slog.Logger
	batchSize   int
	maxAttempts int
	retryDelay  time.Duration
}

func defaultSettings() settings {
	return settings{
		logger:      slog.Default(),
		batchSize:   DefaultBatchSize,
		maxAttempts: DefaultMaxAttempts,
		retryDelay:  DefaultRetryDelay,
	}
}

// Option configures a Builder or Matcher.
type Option func(*settings) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithBatchSize sets how many texts are embedded per provider call.
// Default is DefaultBatchSize.
func WithBatchSize(n int) Option {
	return func(s *settings) error {
		if n < 1 {
			return ErrInvalidBatchSize
		}
		s.batchSize = n
		return nil
	}
}

// WithRetry sets the attempts and base backoff delay for provider calls.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(s *settings) error {
		if maxAttempts < 1 {
			return ai.ErrInvalidMaxAttempts
		}
		s.maxAttempts = maxAttempts
		s.retryDelay = baseDelay
		return nil
	}
}

func applyOptions(opts []Option) (settings, error) {
	s := defaultSettings()
	for _, opt := range opts {
		if err := opt(&s); err != nil {
			return s, err
		}
	}
	return s, nil
}
