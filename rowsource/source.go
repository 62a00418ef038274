package rowsource

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/poiesic/ragsweep/core"
)

// Driver names accepted by Open.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverJSON     = "json"
)

// Source supplies the rows an experiment runs over.
type Source interface {
	// Tables lists the tables the source can read, sorted by name.
	Tables(ctx context.Context) ([]string, error)
	// Rows reads every row of table.
	Rows(ctx context.Context, table string) ([]core.Row, error)
	// Close releases the underlying connection or file handles.
	Close() error
}

// Config selects and locates a row source.
type Config struct {
	Driver  string `yaml:"driver"`
	DSN     string `yaml:"dsn,omitempty"`  // SQL connection string
	Path    string `yaml:"path,omitempty"` // JSON file or directory
	Table   string `yaml:"table"`
	MaxRows int    `yaml:"max_rows,omitempty"` // 0 reads every row
}

// Normalize lowercases the driver name.
func (c *Config) Normalize() {
	c.Driver = strings.ToLower(strings.TrimSpace(c.Driver))
	c.Table = strings.TrimSpace(c.Table)
}

// Validate checks that the driver is known and located.
// The table is not required; listing tables needs none.
func (c *Config) Validate() error {
	switch c.Driver {
	case DriverPostgres, DriverSQLite:
		if c.DSN == "" {
			return fmt.Errorf("%s: %w", c.Driver, ErrDSNRequired)
		}
	case DriverJSON:
		if c.Path == "" {
			return ErrPathRequired
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Driver)
	}
	if c.MaxRows < 0 {
		return fmt.Errorf("max_rows must be non-negative, got %d", c.MaxRows)
	}
	return nil
}

type settings struct {
	logger  *slog.Logger
	maxRows int
}

// Option configures a Source.
type Option func(*settings)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// WithMaxRows caps the rows read per table. Zero means no cap.
func WithMaxRows(n int) Option {
	return func(s *settings) {
		s.maxRows = max(0, n)
	}
}

func applyOptions(opts []Option) settings {
	s := settings{logger: slog.Default()}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Open connects to the source described by cfg.
// cfg.MaxRows is applied before opts.
func Open(ctx context.Context, cfg Config, opts ...Option) (Source, error) {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts = append([]Option{WithMaxRows(cfg.MaxRows)}, opts...)
	switch cfg.Driver {
	case DriverJSON:
		return NewJSONSource(cfg.Path, opts...)
	default:
		return OpenSQL(ctx, cfg.Driver, cfg.DSN, opts...)
	}
}
