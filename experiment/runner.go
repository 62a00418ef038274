package experiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/ragsweep/ai"
	"github.com/poiesic/ragsweep/combination"
	"github.com/poiesic/ragsweep/core"
	"github.com/poiesic/ragsweep/retrieval"
	"github.com/poiesic/ragsweep/scoring"
)

// Runner evaluates every field combination of an experiment.
// A Runner executes one Run at a time.
type Runner struct {
	embedder      ai.Embedder
	builder       *retrieval.Builder
	matcher       *retrieval.Matcher
	retrievalOpts []retrieval.Option
	pool          *ants.Pool
	scorer        scoring.Scorer
	shuffle       ShuffleFunc
	shuffleSet    bool
	seed          *int64
	monitor       Monitor
	metrics       *Metrics
	logger        *slog.Logger

	runMu sync.Mutex
	mu    sync.Mutex
	state State
}

// NewRunner creates a Runner that embeds with embedder.
func NewRunner(embedder ai.Embedder, opts ...Option) (*Runner, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	r := &Runner{
		embedder: embedder,
		monitor:  noopMonitor{},
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			r.Release()
			return nil, err
		}
	}

	retrievalOpts := append([]retrieval.Option{retrieval.WithLogger(r.logger)}, r.retrievalOpts...)
	builder, err := retrieval.NewBuilder(embedder, retrievalOpts...)
	if err != nil {
		r.Release()
		return nil, err
	}
	matcher, err := retrieval.NewMatcher(embedder, retrievalOpts...)
	if err != nil {
		r.Release()
		return nil, err
	}
	r.builder = builder
	r.matcher = matcher
	r.logger = r.logger.With("component", "experiment")
	return r, nil
}

// Release frees the row worker pool. The Runner should not be used after
// calling Release.
func (r *Runner) Release() {
	if r.pool != nil {
		r.pool.Release()
		r.pool = nil
	}
}

// State returns the stage of the current or most recent run.
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

func (r *Runner) setState(s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
	r.monitor.StateChanged(s)
}

// Run evaluates every non-empty subset of cfg.CandidateFields against rows.
//
// Configuration problems and an empty row set fail the run before any
// embedding happens. Provider failures and degenerate combinations are
// recorded on their CombinationResult and the run continues. ctx is
// checked before each combination; a canceled run returns ctx.Err().
func (r *Runner) Run(ctx context.Context, cfg *core.ExperimentConfig, rows []core.Row) (*core.ExperimentResult, error) {
	r.runMu.Lock()
	defer r.runMu.Unlock()

	start := time.Now()
	r.setState(StateValidating)
	scorer, err := r.validate(cfg, rows)
	if err != nil {
		return nil, err
	}

	combos, err := combination.Generate(cfg.CandidateFields)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrInvalidConfig, err)
	}

	r.setState(StateSplitting)
	train, test := Split(rows, cfg.TrainingRatio, r.shuffleFor(cfg))

	logger := r.logger.With("experiment", cfg.Name)
	logger.Info("starting experiment",
		"rows", len(rows), "training", len(train), "testing", len(test),
		"combinations", len(combos), "engine", cfg.ScoringEngine)
	r.monitor.RunStarted(cfg.Name, len(combos))

	results := make([]core.CombinationResult, 0, len(combos))
	for _, combo := range combos {
		if err := ctx.Err(); err != nil {
			logger.Warn("experiment canceled", "completed", len(results), "err", err)
			return nil, err
		}

		res := r.evaluate(ctx, logger, cfg, scorer, combo, train, test)
		r.metrics.combinationFinished(res)
		r.monitor.CombinationFinished(res)
		results = append(results, res)
	}

	r.setState(StateAggregating)
	result := &core.ExperimentResult{
		RunID:                 uuid.NewString(),
		ExperimentName:        cfg.Name,
		ScoringEngine:         cfg.ScoringEngine,
		Combinations:          results,
		Summary:               Summarize(results),
		TotalProcessingTimeMs: time.Since(start).Milliseconds(),
	}

	r.setState(StateDone)
	logger.Info("experiment complete",
		"best", result.Summary.BestCombination, "bestScore", result.Summary.BestScore,
		"elapsed", time.Since(start))
	r.monitor.RunFinished(result)
	return result, nil
}

func (r *Runner) validate(cfg *core.ExperimentConfig, rows []core.Row) (scoring.Scorer, error) {
	if err := core.ValidateExperimentConfig(cfg); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}

	for _, field := range cfg.ReferencedFields() {
		if !anyRowHas(rows, field) {
			return nil, fmt.Errorf("%w: %w: %q", core.ErrInvalidConfig, ErrUnknownField, field)
		}
	}

	if r.scorer != nil {
		return r.scorer, nil
	}
	scorer, err := NewScorer(cfg.ScoringEngine, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrInvalidConfig, err)
	}
	return scorer, nil
}

func anyRowHas(rows []core.Row, field string) bool {
	for _, row := range rows {
		if _, ok := row.Lookup(field); ok {
			return true
		}
	}
	return false
}

func (r *Runner) shuffleFor(cfg *core.ExperimentConfig) ShuffleFunc {
	switch {
	case r.shuffleSet:
		return r.shuffle
	case r.seed != nil:
		return SeededShuffle(*r.seed)
	case cfg.Seed != nil:
		return SeededShuffle(*cfg.Seed)
	default:
		return RandomShuffle
	}
}

// evaluate builds one combination's index and scores every testing row
// against it.
func (r *Runner) evaluate(
	ctx context.Context,
	logger *slog.Logger,
	cfg *core.ExperimentConfig,
	scorer scoring.Scorer,
	combo core.Combination,
	train, test []core.Row,
) core.CombinationResult {
	start := time.Now()
	logger = logger.With("combination", combo.Name)

	res := core.CombinationResult{
		Name:      combo.Name,
		Fields:    combo.Fields,
		TestRows:  len(test),
		RowScores: []core.RowScore{},
	}
	r.monitor.CombinationStarted(combo, len(test))

	r.setState(StateBuildingIndex)
	idx, err := r.builder.Build(ctx, train, combo, cfg.TargetField)
	if err != nil {
		if errors.Is(err, retrieval.ErrEmptyIndex) {
			logger.Warn("combination has no usable training rows", "err", err)
		} else {
			logger.Error("index build failed", "err", err)
			res.Failed = true
		}
		res.Error = err.Error()
		res.SkippedRows = len(test)
		res.ProcessingTimeMs = time.Since(start).Milliseconds()
		return res
	}
	res.IndexSize = idx.Len()

	r.setState(StateRetrieving)
	matches := make([]*retrieval.Match, len(test))
	r.forEach(len(test), func(i int) {
		matches[i] = r.retrieve(ctx, logger, cfg, idx, i, test[i])
	})

	r.setState(StateScoring)
	slots := make([]*core.RowScore, len(test))
	r.forEach(len(test), func(i int) {
		if matches[i] == nil {
			r.metrics.rowSkipped()
			return
		}
		slots[i] = r.score(ctx, logger, cfg, scorer, i, test[i], matches[i])
		if slots[i] == nil {
			r.metrics.rowSkipped()
			return
		}
		r.metrics.rowScored()
		r.monitor.RowScored(combo, *slots[i])
	})

	var scoreSum, simSum float64
	for _, rs := range slots {
		if rs == nil {
			continue
		}
		res.RowScores = append(res.RowScores, *rs)
		scoreSum += rs.Score
		simSum += rs.Similarity
	}
	res.RowCount = len(res.RowScores)
	res.SkippedRows = res.TestRows - res.RowCount

	if res.RowCount == 0 {
		logger.Warn("no testing rows scored", "testRows", len(test))
		res.Error = ErrNoScorableRows.Error()
	} else {
		res.MeanScore = scoreSum / float64(res.RowCount)
		res.MeanSimilarity = simSum / float64(res.RowCount)
	}

	res.ProcessingTimeMs = time.Since(start).Milliseconds()
	logger.Debug("combination evaluated",
		"meanScore", res.MeanScore, "rows", res.RowCount, "skipped", res.SkippedRows)
	return res
}

func (r *Runner) retrieve(
	ctx context.Context,
	logger *slog.Logger,
	cfg *core.ExperimentConfig,
	idx *retrieval.Index,
	pos int,
	row core.Row,
) *retrieval.Match {
	query, ok := row.Lookup(cfg.QueryField)
	if !ok {
		logger.Warn("skipping testing row without query field", "row", pos, "field", cfg.QueryField)
		return nil
	}
	if _, ok := row.Lookup(cfg.AnswerField); !ok {
		logger.Warn("skipping testing row without answer field", "row", pos, "field", cfg.AnswerField)
		return nil
	}

	hits, err := r.matcher.Query(ctx, query.String(), idx, 1)
	if err != nil {
		logger.Warn("skipping testing row after retrieval error", "row", pos, "err", err)
		return nil
	}
	if len(hits) == 0 {
		return nil
	}
	return &hits[0]
}

func (r *Runner) score(
	ctx context.Context,
	logger *slog.Logger,
	cfg *core.ExperimentConfig,
	scorer scoring.Scorer,
	pos int,
	row core.Row,
	match *retrieval.Match,
) *core.RowScore {
	query, _ := row.Lookup(cfg.QueryField)
	answer, _ := row.Lookup(cfg.AnswerField)
	expected := answer.String()
	retrieved := match.Record.Target.String()

	result, err := scorer.Score(ctx, expected, retrieved)
	if err != nil {
		logger.Warn("skipping testing row after scoring error", "row", pos, "err", err)
		return nil
	}

	return &core.RowScore{
		Index:      pos,
		Query:      query.String(),
		Expected:   expected,
		Retrieved:  retrieved,
		Similarity: match.Similarity,
		Score:      result.Score,
		Breakdown:  result.Breakdown,
	}
}

// forEach calls fn for 0..n-1, on the worker pool when one is configured.
// It returns once every call has finished.
func (r *Runner) forEach(n int, fn func(i int)) {
	if r.pool == nil {
		for i := range n {
			fn(i)
		}
		return
	}

	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			fn(i)
		}
		if err := r.pool.Submit(task); err != nil {
			r.logger.Debug("pool submit failed, running inline", "err", err)
			task()
		}
	}
	wg.Wait()
}
