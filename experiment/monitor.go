package experiment

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/poiesic/ragsweep/core"
)

// Monitor observes a run. Row callbacks may arrive from several goroutines
// when concurrency is enabled, so implementations must be safe for
// concurrent use.
type Monitor interface {
	RunStarted(name string, combinations int)
	StateChanged(state State)
	CombinationStarted(combo core.Combination, testRows int)
	RowScored(combo core.Combination, score core.RowScore)
	CombinationFinished(result core.CombinationResult)
	RunFinished(result *core.ExperimentResult)
}

type noopMonitor struct{}

func (noopMonitor) RunStarted(string, int)                     {}
func (noopMonitor) StateChanged(State)                         {}
func (noopMonitor) CombinationStarted(core.Combination, int)   {}
func (noopMonitor) RowScored(core.Combination, core.RowScore)  {}
func (noopMonitor) CombinationFinished(core.CombinationResult) {}
func (noopMonitor) RunFinished(*core.ExperimentResult)         {}

// ProgressMonitor writes a single updating progress line per combination
// and a one-line outcome when each combination finishes.
type ProgressMonitor struct {
	writer         io.Writer
	reportInterval int

	mu           sync.Mutex
	combos       int
	comboIndex   int
	current      string
	total        int
	scored       int
	lastReported int
	startTime    time.Time
}

// NewProgressMonitor creates a monitor that reports to writer,
// typically os.Stderr.
func NewProgressMonitor(writer io.Writer) *ProgressMonitor {
	return &ProgressMonitor{writer: writer, reportInterval: 1}
}

// WithReportInterval reports every n scored rows instead of every row.
func (p *ProgressMonitor) WithReportInterval(n int) *ProgressMonitor {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reportInterval = max(1, n)
	return p
}

func (p *ProgressMonitor) RunStarted(name string, combinations int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.combos = combinations
	p.comboIndex = 0
	fmt.Fprintf(p.writer, "Experiment %q: %d combinations\n", name, combinations)
}

func (p *ProgressMonitor) StateChanged(State) {}

func (p *ProgressMonitor) CombinationStarted(combo core.Combination, testRows int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.comboIndex++
	p.current = combo.Name
	p.total = testRows
	p.scored = 0
	p.lastReported = 0
	p.startTime = time.Now()
}

func (p *ProgressMonitor) RowScored(core.Combination, core.RowScore) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.scored++
	if p.scored-p.lastReported >= p.reportInterval {
		p.report()
		p.lastReported = p.scored
	}
}

func (p *ProgressMonitor) CombinationFinished(result core.CombinationResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.report()
	switch {
	case result.Failed:
		fmt.Fprintf(p.writer, " failed: %s\n", result.Error)
	case result.Error != "":
		fmt.Fprintf(p.writer, " no score: %s\n", result.Error)
	default:
		fmt.Fprintf(p.writer, " mean %.4f\n", result.MeanScore)
	}
}

func (p *ProgressMonitor) RunFinished(result *core.ExperimentResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.writer, "Best: %s (%.4f) in %s\n",
		result.Summary.BestCombination, result.Summary.BestScore,
		time.Duration(result.TotalProcessingTimeMs)*time.Millisecond)
}

// report prints the current progress. Must be called with lock held.
func (p *ProgressMonitor) report() {
	elapsed := time.Since(p.startTime)
	rate := 0.0
	if elapsed > 0 {
		rate = float64(p.scored) / elapsed.Seconds()
	}

	percentage := 0.0
	if p.total > 0 {
		percentage = float64(p.scored) / float64(p.total) * 100.0
	}

	fmt.Fprintf(p.writer, "\r[%d/%d] %s: %d/%d (%.1f%%) - %.1f rows/s",
		p.comboIndex, p.combos, p.current, p.scored, p.total, percentage, rate)
}
