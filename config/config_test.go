package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/ragsweep/ai"
	"github.com/poiesic/ragsweep/core"
	"github.com/poiesic/ragsweep/retrieval"
)

const fullConfig = `
experiment:
  name: orders
  candidate_fields: [title, description]
  target_field: sql
  query_field: question
  answer_field: gold_sql
  scoring_engine: domain-document
  training_ratio: 0.75
  seed: 42
source:
  driver: Postgres
  dsn: postgres://localhost/evals
  table: public.questions
  max_rows: 500
embedding:
  provider: openai
  host: http://embed.internal:8080/
  model: text-embedding-3-small
  api_token: ${RAGSWEEP_TEST_TOKEN}
cache:
  path: /var/cache/ragsweep
scoring:
  domain_document:
    semantic: 0.5
    coherence: 0.5
runner:
  concurrency: 4
  batch_size: 16
  max_attempts: 5
  retry_delay: 1s
logging:
  level: DEBUG
`

func TestParse_Full(t *testing.T) {
	t.Setenv("RAGSWEEP_TEST_TOKEN", "sk-test")

	cfg, err := Parse([]byte(fullConfig))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	exp := cfg.Experiment
	assert.Equal(t, "orders", exp.Name)
	assert.Equal(t, core.FieldSet{"title", "description"}, exp.CandidateFields)
	assert.Equal(t, core.EngineDomainDocument, exp.ScoringEngine)
	assert.Equal(t, 0.75, exp.TrainingRatio)
	require.NotNil(t, exp.Seed)
	assert.Equal(t, int64(42), *exp.Seed)
	assert.Equal(t, "openai:text-embedding-3-small", exp.EmbeddingProvider)

	assert.Equal(t, "postgres", cfg.Source.Driver)
	assert.Equal(t, "public.questions", cfg.Source.Table)
	assert.Equal(t, 500, cfg.Source.MaxRows)

	assert.Equal(t, "http://embed.internal:8080/v1", cfg.Embedding.EmbeddingHost)
	assert.Equal(t, "sk-test", cfg.Embedding.APIToken)
	assert.Equal(t, "/var/cache/ragsweep", cfg.Cache.Path)

	require.NotNil(t, cfg.Scoring.DomainDocument)
	assert.Equal(t, 0.5, cfg.Scoring.DomainDocument.Semantic)
	assert.Zero(t, cfg.Scoring.DomainDocument.Topics, "omitted weights are zero, not defaults")
	assert.Nil(t, cfg.Scoring.StructuredQuery)

	assert.Equal(t, RunnerConfig{Concurrency: 4, BatchSize: 16, MaxAttempts: 5, RetryDelay: time.Second}, cfg.Runner)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(`
experiment:
  candidate_fields: [title]
  target_field: sql
  query_field: question
  answer_field: gold
source:
  driver: json
  path: rows.json
  table: rows
`))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, DefaultTrainingRatio, cfg.Experiment.TrainingRatio)
	assert.Equal(t, core.EngineStructuredQuery, cfg.Experiment.ScoringEngine)
	assert.Nil(t, cfg.Experiment.Seed)
	assert.Equal(t, ai.ProviderOpenAI, cfg.Embedding.Provider)
	assert.Equal(t, "embeddinggemma", cfg.Embedding.EmbeddingModel)
	assert.Equal(t, retrieval.DefaultBatchSize, cfg.Runner.BatchSize)
	assert.Equal(t, DefaultConcurrency, cfg.Runner.Concurrency)
	assert.Equal(t, retrieval.DefaultRetryDelay, cfg.Runner.RetryDelay)
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	assert.Empty(t, cfg.Cache.Path)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultTrainingRatio, cfg.Experiment.TrainingRatio)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "unknown key", input: "experiment:\n  colour: blue\n"},
		{name: "bad duration", input: "runner:\n  retry_delay: soon\n"},
		{name: "not yaml", input: "experiment: [unclosed\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.Experiment.CandidateFields = core.FieldSet{"title"}
		cfg.Experiment.TargetField = "sql"
		cfg.Experiment.QueryField = "question"
		cfg.Experiment.AnswerField = "gold"
		cfg.Source.Driver = "json"
		cfg.Source.Path = "rows.json"
		cfg.Source.Table = "rows"
		return cfg
	}
	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{name: "experiment", mutate: func(c *Config) { c.Experiment.TrainingRatio = 0 }, target: core.ErrInvalidConfig},
		{name: "missing table", mutate: func(c *Config) { c.Source.Table = "" }, target: ErrTableRequired},
		{name: "source driver", mutate: func(c *Config) { c.Source.Driver = "csv" }},
		{name: "embedding", mutate: func(c *Config) { c.Embedding.Provider = "nope" }},
		{name: "concurrency", mutate: func(c *Config) { c.Runner.Concurrency = 0 }},
		{name: "batch size", mutate: func(c *Config) { c.Runner.BatchSize = 0 }},
		{name: "attempts", mutate: func(c *Config) { c.Runner.MaxAttempts = 0 }},
		{name: "retry delay", mutate: func(c *Config) { c.Runner.RetryDelay = -time.Second }},
		{name: "log level", mutate: func(c *Config) { c.Logging.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			if tt.target != nil {
				assert.ErrorIs(t, err, tt.target)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "experiment.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: warn\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "", want: slog.LevelInfo},
		{input: "info", want: slog.LevelInfo},
		{input: "warning", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "trace", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLogLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
