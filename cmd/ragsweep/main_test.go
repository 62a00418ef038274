package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/ragsweep/experiment"
)

// writeExperiment writes a JSON dataset and an experiment file using the
// hashing provider, and returns the experiment file path.
func writeExperiment(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()

	docs := make([]map[string]any, 30)
	for i := range docs {
		intent := i % 3
		docs[i] = map[string]any{
			"title":    fmt.Sprintf("monthly revenue %d", intent),
			"notes":    fmt.Sprintf("requested by team %d", i),
			"question": fmt.Sprintf("monthly revenue %d", intent),
			"sql":      fmt.Sprintf("SELECT SUM(amount) FROM revenue_%d", intent),
		}
	}
	data, err := json.Marshal(docs)
	require.NoError(t, err)
	dataPath := filepath.Join(dir, "questions.json")
	require.NoError(t, os.WriteFile(dataPath, data, 0o644))

	yaml := fmt.Sprintf(`
experiment:
  name: revenue
  candidate_fields: [title, notes]
  target_field: sql
  query_field: question
  answer_field: sql
  training_ratio: 0.8
  seed: 5
source:
  driver: json
  path: %s
  table: questions
embedding:
  provider: hashing
  dimensions: 128
logging:
  level: error
%s`, dataPath, extra)

	path := filepath.Join(dir, "experiment.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	return path
}

func runApp(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &errOut
	err = app.Run(append([]string{"ragsweep"}, args...))
	return out.String(), errOut.String(), err
}

func TestRunCommand(t *testing.T) {
	cfgPath := writeExperiment(t, "")
	dir := t.TempDir()
	output := filepath.Join(dir, "result.json")
	metrics := filepath.Join(dir, "metrics.prom")

	_, stderr, err := runApp(t, "run", "--config", cfgPath,
		"--output", output, "--metrics-file", metrics, "--seed", "9", "--concurrency", "2")
	require.NoError(t, err)

	result, err := experiment.LoadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "revenue", result.ExperimentName)
	assert.Len(t, result.Combinations, 3)
	assert.Equal(t, "title", result.Summary.BestCombination)
	assert.InDelta(t, 1.0, result.Summary.BestScore, 1e-9)

	assert.Contains(t, stderr, `Experiment "revenue": 3 combinations`)
	assert.Contains(t, stderr, "RANK")

	prom, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `ragsweep_combinations_total{outcome="scored"} 3`)
	assert.Contains(t, string(prom), "ragsweep_rows_scored_total 18")
}

func TestRunCommand_StdoutQuiet(t *testing.T) {
	cfgPath := writeExperiment(t, "")

	stdout, stderr, err := runApp(t, "run", "-c", cfgPath, "--quiet")
	require.NoError(t, err)
	assert.NotContains(t, stderr, "RANK")

	result, err := experiment.Import(bytes.NewReader([]byte(stdout)))
	require.NoError(t, err)
	assert.Equal(t, "title", result.Summary.BestCombination)
}

func TestRunCommand_InvalidExperiment(t *testing.T) {
	cfgPath := writeExperiment(t, "runner:\n  concurrency: 0\n")

	_, _, err := runApp(t, "run", "--config", cfgPath, "--quiet")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "concurrency")

	_, _, err = runApp(t, "run", "--config", writeExperiment(t, ""), "--provider", "nope", "--quiet")
	assert.Error(t, err)
}

func TestShowCommand(t *testing.T) {
	cfgPath := writeExperiment(t, "")
	output := filepath.Join(t.TempDir(), "result.json")
	_, _, err := runApp(t, "run", "--config", cfgPath, "--output", output, "--quiet")
	require.NoError(t, err)

	stdout, _, err := runApp(t, "show", "--rows", "2", output)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Experiment: revenue")
	assert.Contains(t, stdout, "RANK")
	assert.Contains(t, stdout, "title + notes")
	assert.Contains(t, stdout, "Lowest scoring rows for title:")

	_, _, err = runApp(t, "show")
	assert.Error(t, err)

	_, _, err = runApp(t, "show", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	stdout, _, err := runApp(t, "validate", "--config", writeExperiment(t, ""))
	require.NoError(t, err)
	assert.Contains(t, stdout, "Experiment: revenue")
	assert.Contains(t, stdout, "Embedding: hashing:128")
	assert.Contains(t, stdout, "Combinations (3):")
	assert.Contains(t, stdout, "  title + notes\n")

	_, _, err = runApp(t, "validate", "--config", writeExperiment(t, "scoring:\n  structured_query:\n    tables: 1\n  unknown: 2\n"))
	assert.Error(t, err)
}

func TestTablesCommand(t *testing.T) {
	stdout, _, err := runApp(t, "tables", "--config", writeExperiment(t, ""))
	require.NoError(t, err)
	assert.Equal(t, "questions\n", stdout)
}

func TestCacheCommand(t *testing.T) {
	cachePath := filepath.Join(t.TempDir(), "cache")
	cfgPath := writeExperiment(t, fmt.Sprintf("cache:\n  path: %s\n", cachePath))

	_, _, err := runApp(t, "run", "--config", cfgPath, "--quiet")
	require.NoError(t, err)

	stdout, _, err := runApp(t, "cache", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, cachePath+": ")
	assert.NotContains(t, stdout, ": 0 vectors")

	stdout, _, err = runApp(t, "cache", "--config", cfgPath, "--purge")
	require.NoError(t, err)
	assert.Contains(t, stdout, ": 0 vectors")

	_, _, err = runApp(t, "cache", "--config", writeExperiment(t, ""))
	assert.Error(t, err, "cache requires a configured path")
}

func TestConfigFlagRequired(t *testing.T) {
	for _, cmd := range []string{"tables", "validate", "run", "cache"} {
		t.Run(cmd, func(t *testing.T) {
			_, _, err := runApp(t, cmd)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config")
		})
	}
}

func TestSetupLogger(t *testing.T) {
	t.Run("valid and case insensitive log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "DEBUG", "WaRn"} {
			t.Run(level, func(t *testing.T) {
				app := &cli.App{
					Name: "test",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "log-level", Value: "info"},
					},
					Before: setupLogger,
					Action: func(c *cli.Context) error { return nil },
				}
				require.NoError(t, app.Run([]string{"test", "--log-level", level}))
			})
		}
	})

	t.Run("invalid log level", func(t *testing.T) {
		_, _, err := runApp(t, "--log-level", "loud", "tables", "--config", "x.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})
}
