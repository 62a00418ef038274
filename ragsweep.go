// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package ragsweep wires an experiment file into a runnable workbench:
// a row source, an embedding provider behind an optional persistent
// cache, and an experiment runner configured from the file.
package ragsweep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/poiesic/ragsweep/ai"
	"github.com/poiesic/ragsweep/ai/hashing"
	"github.com/poiesic/ragsweep/ai/openai"
	"github.com/poiesic/ragsweep/config"
	"github.com/poiesic/ragsweep/core"
	"github.com/poiesic/ragsweep/experiment"
	"github.com/poiesic/ragsweep/rowsource"
	"github.com/poiesic/ragsweep/storage"
	"github.com/poiesic/ragsweep/storage/badger"
)

// ErrConfigRequired is returned when Open receives a nil config.
var ErrConfigRequired = errors.New("config required")

// Workbench owns the collaborators of one experiment file.
type Workbench struct {
	config     *config.Config
	source     rowsource.Source
	provider   ai.Provider
	backend    *badger.Backend
	cache      storage.VectorRepository
	embedder   ai.Embedder
	rootLogger *slog.Logger
	logger     *slog.Logger
}

// WorkbenchOption configures a Workbench.
type WorkbenchOption func(*workbenchOptions)

type workbenchOptions struct {
	logger   *slog.Logger
	provider ai.Provider
	source   rowsource.Source
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) WorkbenchOption {
	return func(o *workbenchOptions) {
		o.logger = logger
	}
}

// WithProvider uses provider instead of building one from the embedding
// section. The Workbench takes ownership and closes it.
func WithProvider(provider ai.Provider) WorkbenchOption {
	return func(o *workbenchOptions) {
		o.provider = provider
	}
}

// WithSource uses src instead of opening the configured source.
// The Workbench takes ownership and closes it.
func WithSource(src rowsource.Source) WorkbenchOption {
	return func(o *workbenchOptions) {
		o.source = src
	}
}

// NewProvider builds the embedding provider selected by cfg.Provider.
func NewProvider(cfg *ai.Config) (ai.Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Provider {
	case ai.ProviderHashing:
		return hashing.NewProvider(cfg)
	default:
		return openai.NewProvider(cfg)
	}
}

// Open connects the source, provider and cache described by cfg.
// The experiment section is not validated here; Run does that, so a
// partially written file is enough to list tables.
func Open(ctx context.Context, cfg *config.Config, opts ...WorkbenchOption) (*Workbench, error) {
	if cfg == nil {
		return nil, ErrConfigRequired
	}

	options := &workbenchOptions{}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}

	w := &Workbench{
		config:     cfg,
		rootLogger: options.logger,
		logger:     options.logger.With("component", "workbench"),
	}

	source := options.source
	if source == nil {
		var err error
		source, err = rowsource.Open(ctx, cfg.Source, rowsource.WithLogger(options.logger))
		if err != nil {
			return nil, fmt.Errorf("failed to open row source: %w", err)
		}
	}
	w.source = source

	provider := options.provider
	if provider == nil {
		var err error
		provider, err = NewProvider(&cfg.Embedding)
		if err != nil {
			w.Close()
			return nil, fmt.Errorf("failed to create embedding provider: %w", err)
		}
	}
	w.provider = provider
	w.embedder = provider.Embedder()

	if cfg.Cache.Path != "" {
		if err := w.openCache(cfg.Cache.Path); err != nil {
			w.Close()
			return nil, err
		}
	}

	return w, nil
}

func (w *Workbench) openCache(path string) error {
	backend, err := badger.OpenBackend(path, badger.WithLogger(w.rootLogger))
	if err != nil {
		return fmt.Errorf("failed to open embedding cache: %w", err)
	}
	w.backend = backend

	repo, err := badger.NewVectorRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to open embedding cache: %w", err)
	}
	w.cache = repo

	cached, err := ai.NewCachedEmbedder(w.provider.Embedder(), repo, w.provider.Name())
	if err != nil {
		return err
	}
	w.embedder = cached
	w.logger.Debug("embedding cache enabled", "path", path, "namespace", w.provider.Name())
	return nil
}

// Close releases the provider, cache and source. Every collaborator is
// closed; the first error is returned.
func (w *Workbench) Close() error {
	var errs []error
	if w.provider != nil {
		if err := w.provider.Close(); err != nil {
			w.logger.Error("error closing embedding provider", "err", err)
			errs = append(errs, err)
		}
	}
	if w.cache != nil {
		if err := w.cache.Close(); err != nil {
			w.logger.Error("error closing embedding cache", "err", err)
			errs = append(errs, err)
		}
	}
	if w.backend != nil {
		if err := w.backend.Close(); err != nil {
			w.logger.Error("error closing cache backend", "err", err)
			errs = append(errs, err)
		}
	}
	if w.source != nil {
		if err := w.source.Close(); err != nil {
			w.logger.Error("error closing row source", "err", err)
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// Config returns the configuration the Workbench was opened with.
func (w *Workbench) Config() *config.Config {
	return w.config
}

// Embedder returns the embedder experiments use, cached when a cache
// path is configured.
func (w *Workbench) Embedder() ai.Embedder {
	return w.embedder
}

// Tables lists the tables of the row source.
func (w *Workbench) Tables(ctx context.Context) ([]string, error) {
	return w.source.Tables(ctx)
}

// Rows reads the configured table.
func (w *Workbench) Rows(ctx context.Context) ([]core.Row, error) {
	if w.config.Source.Table == "" {
		return nil, config.ErrTableRequired
	}
	return w.source.Rows(ctx, w.config.Source.Table)
}

// NewRunner builds a Runner from the runner and scoring sections.
// opts are applied after the configured options and override them.
// Callers must Release the Runner.
func (w *Workbench) NewRunner(opts ...experiment.Option) (*experiment.Runner, error) {
	cfg := w.config
	scorer, err := experiment.NewScorer(cfg.Experiment.ScoringEngine, cfg.Scoring.StructuredQuery, cfg.Scoring.DomainDocument)
	if err != nil {
		return nil, err
	}

	base := []experiment.Option{
		experiment.WithLogger(w.rootLogger),
		experiment.WithConcurrency(cfg.Runner.Concurrency),
		experiment.WithBatchSize(cfg.Runner.BatchSize),
		experiment.WithRetry(cfg.Runner.MaxAttempts, cfg.Runner.RetryDelay),
		experiment.WithScorer(scorer),
	}
	return experiment.NewRunner(w.embedder, append(base, opts...)...)
}

// Run validates the configuration, loads the configured table and runs
// the experiment over it.
func (w *Workbench) Run(ctx context.Context, opts ...experiment.Option) (*core.ExperimentResult, error) {
	if err := w.config.Validate(); err != nil {
		return nil, err
	}

	rows, err := w.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load rows: %w", err)
	}

	runner, err := w.NewRunner(opts...)
	if err != nil {
		return nil, err
	}
	defer runner.Release()

	w.logger.Info("loaded rows", "table", w.config.Source.Table, "rows", len(rows))
	return runner.Run(ctx, &w.config.Experiment, rows)
}

// CacheSize returns the number of cached vectors, or 0 without a cache.
func (w *Workbench) CacheSize(ctx context.Context) (int, error) {
	if w.cache == nil {
		return 0, nil
	}
	return w.cache.Count(ctx)
}

// PurgeCache removes every cached vector.
func (w *Workbench) PurgeCache(ctx context.Context) error {
	if w.cache == nil {
		return nil
	}
	return w.cache.Purge(ctx)
}
