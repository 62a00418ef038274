package experiment

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/ragsweep/core"
)

func sampleResult() *core.ExperimentResult {
	return &core.ExperimentResult{
		RunID:          "5b0c8d7e-4f1a-4b8e-9d2c-2a7f3e1c9b10",
		ExperimentName: "orders",
		ScoringEngine:  core.EngineStructuredQuery,
		Combinations: []core.CombinationResult{
			{
				Name:             "title",
				Fields:           []string{"title"},
				MeanScore:        0.8125,
				MeanSimilarity:   0.9321,
				RowCount:         1,
				TestRows:         2,
				SkippedRows:      1,
				IndexSize:        8,
				ProcessingTimeMs: 14,
				RowScores: []core.RowScore{
					{
						Index:      0,
						Query:      "open orders",
						Expected:   "SELECT * FROM orders WHERE open",
						Retrieved:  "SELECT * FROM orders",
						Similarity: 0.9321,
						Score:      0.8125,
						Breakdown:  map[string]float64{"tables": 1, "keywords": 0.5},
					},
				},
			},
			{
				Name:      "title + body",
				Fields:    []string{"title", "body"},
				TestRows:  2,
				Failed:    true,
				Error:     "embedding provider failure: timeout",
				RowScores: []core.RowScore{},
			},
		},
		Summary: core.Summary{
			BestCombination:  "title",
			BestScore:        0.8125,
			WorstCombination: "title + body",
			MeanScore:        0.40625,
			CombinationCount: 2,
		},
		TotalProcessingTimeMs: 31,
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	want := sampleResult()

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, want))
	assert.Contains(t, buf.String(), `"bestCombination": "title"`)

	got, err := Import(&buf)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestImport_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not json", input: "combinations: []"},
		{name: "truncated", input: `{"runId": "x", "combinations": [`},
		{name: "unknown field", input: `{"runId": "x", "color": "blue"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Import(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	want := sampleResult()

	require.NoError(t, SaveFile(path, want))
	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
