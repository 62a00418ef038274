package experiment

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poiesic/ragsweep/core"
)

func TestProgressMonitor(t *testing.T) {
	var buf bytes.Buffer
	mon := NewProgressMonitor(&buf).WithReportInterval(2)
	combo := core.NewCombination("title", "body")

	mon.RunStarted("orders", 3)
	mon.CombinationStarted(combo, 4)
	for range 3 {
		mon.RowScored(combo, core.RowScore{})
	}
	assert.Contains(t, buf.String(), `Experiment "orders": 3 combinations`)
	assert.Contains(t, buf.String(), "[1/3] title + body: 2/4 (50.0%)")
	assert.NotContains(t, buf.String(), "3/4")

	mon.CombinationFinished(core.CombinationResult{Name: combo.Name, MeanScore: 0.75})
	assert.Contains(t, buf.String(), "3/4 (75.0%)")
	assert.Contains(t, buf.String(), "mean 0.7500\n")
}

func TestProgressMonitor_Outcomes(t *testing.T) {
	tests := []struct {
		name   string
		result core.CombinationResult
		want   string
	}{
		{name: "failed", result: core.CombinationResult{Failed: true, Error: "timeout"}, want: " failed: timeout\n"},
		{name: "degenerate", result: core.CombinationResult{Error: "empty index"}, want: " no score: empty index\n"},
		{name: "scored", result: core.CombinationResult{MeanScore: 0.5}, want: " mean 0.5000\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			mon := NewProgressMonitor(&buf)
			mon.CombinationStarted(core.NewCombination("a"), 0)
			mon.CombinationFinished(tt.result)
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestProgressMonitor_RunFinished(t *testing.T) {
	var buf bytes.Buffer
	NewProgressMonitor(&buf).RunFinished(&core.ExperimentResult{
		Summary:               core.Summary{BestCombination: "title", BestScore: 0.9},
		TotalProcessingTimeMs: 1500,
	})
	assert.Equal(t, "Best: title (0.9000) in 1.5s\n", buf.String())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "building-index", StateBuildingIndex.String())
	assert.Equal(t, "done", StateDone.String())
	assert.Equal(t, "unknown", State(99).String())
}
