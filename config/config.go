// Package config loads ragsweep experiment files.
//
// An experiment file is YAML. Environment variables in the file are
// expanded before parsing, so secrets such as API tokens can be written
// as ${OPENAI_API_KEY}. Unknown keys are rejected.
//
//	experiment:
//	  name: orders
//	  candidate_fields: [title, description]
//	  target_field: sql
//	  query_field: question
//	  answer_field: gold_sql
//	  scoring_engine: structured-query
//	  training_ratio: 0.8
//	  seed: 42
//	source:
//	  driver: postgres
//	  dsn: postgres://localhost/evals?sslmode=disable
//	  table: public.questions
//	embedding:
//	  provider: openai
//	  host: http://localhost:11434
//	  model: embeddinggemma
//	cache:
//	  path: ./.ragsweep-cache
//	runner:
//	  concurrency: 4
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/poiesic/ragsweep/ai"
	"github.com/poiesic/ragsweep/core"
	"github.com/poiesic/ragsweep/retrieval"
	"github.com/poiesic/ragsweep/rowsource"
	"github.com/poiesic/ragsweep/scoring/docscore"
	"github.com/poiesic/ragsweep/scoring/sqlscore"
)

// Defaults applied before the file is decoded.
const (
	DefaultTrainingRatio = 0.8
	DefaultConcurrency   = 1
	DefaultLogLevel      = "info"
)

// ErrTableRequired is returned when an experiment names no source table.
var ErrTableRequired = errors.New("source table required")

// Config is a complete experiment file.
type Config struct {
	Experiment core.ExperimentConfig `yaml:"experiment"`
	Source     rowsource.Config      `yaml:"source"`
	Embedding  ai.Config             `yaml:"embedding"`
	Cache      CacheConfig           `yaml:"cache"`
	Scoring    ScoringConfig         `yaml:"scoring"`
	Runner     RunnerConfig          `yaml:"runner"`
	Logging    LoggingConfig         `yaml:"logging"`
}

// CacheConfig locates the persistent embedding cache.
type CacheConfig struct {
	// Path is the Badger directory. Empty disables the cache.
	Path string `yaml:"path"`
}

// ScoringConfig overrides engine weights. Nil sections keep the defaults.
type ScoringConfig struct {
	StructuredQuery *sqlscore.Weights `yaml:"structured_query,omitempty"`
	DomainDocument  *docscore.Weights `yaml:"domain_document,omitempty"`
}

// RunnerConfig tunes execution.
type RunnerConfig struct {
	Concurrency int           `yaml:"concurrency"`
	BatchSize   int           `yaml:"batch_size"`
	MaxAttempts int           `yaml:"max_attempts"`
	RetryDelay  time.Duration `yaml:"retry_delay"`
}

// LoggingConfig sets the log level: debug, info, warn or error.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns a Config with every default filled in.
func Default() *Config {
	return &Config{
		Experiment: core.ExperimentConfig{
			ScoringEngine: core.EngineStructuredQuery,
			TrainingRatio: DefaultTrainingRatio,
		},
		Embedding: *ai.DefaultConfig(),
		Runner: RunnerConfig{
			Concurrency: DefaultConcurrency,
			BatchSize:   retrieval.DefaultBatchSize,
			MaxAttempts: retrieval.DefaultMaxAttempts,
			RetryDelay:  retrieval.DefaultRetryDelay,
		},
		Logging: LoggingConfig{Level: DefaultLogLevel},
	}
}

// Load reads and parses the experiment file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes an experiment file over the defaults.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader([]byte(expanded)))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.Normalize()
	return cfg, nil
}

// Normalize canonicalizes names and derives the experiment's embedding
// provider label from the embedding section when unset.
func (c *Config) Normalize() {
	c.Embedding.Normalize()
	c.Source.Normalize()
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Experiment.EmbeddingProvider == "" {
		c.Experiment.EmbeddingProvider = c.Embedding.CacheNamespace()
	}
}

// Validate checks every section needed to run the experiment.
func (c *Config) Validate() error {
	if err := core.ValidateExperimentConfig(&c.Experiment); err != nil {
		return err
	}
	if err := c.Source.Validate(); err != nil {
		return fmt.Errorf("source: %w", err)
	}
	if c.Source.Table == "" {
		return fmt.Errorf("source: %w", ErrTableRequired)
	}
	if err := c.Embedding.Validate(); err != nil {
		return fmt.Errorf("embedding: %w", err)
	}
	if err := c.Runner.Validate(); err != nil {
		return fmt.Errorf("runner: %w", err)
	}
	if _, err := ParseLogLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

// Validate checks the runner settings.
func (r RunnerConfig) Validate() error {
	if r.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", r.Concurrency)
	}
	if r.BatchSize < 1 {
		return fmt.Errorf("batch_size must be at least 1, got %d", r.BatchSize)
	}
	if r.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be at least 1, got %d", r.MaxAttempts)
	}
	if r.RetryDelay < 0 {
		return fmt.Errorf("retry_delay must be non-negative, got %s", r.RetryDelay)
	}
	return nil
}
