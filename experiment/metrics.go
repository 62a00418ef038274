package experiment

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/poiesic/ragsweep/core"
)

// Combination outcome label values.
const (
	OutcomeScored     = "scored"
	OutcomeDegenerate = "degenerate"
	OutcomeFailed     = "failed"
)

// Metrics holds the Prometheus collectors updated by a Runner.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	CombinationsTotal  *prometheus.CounterVec
	RowsScored         prometheus.Counter
	RowsSkipped        prometheus.Counter
	CombinationSeconds prometheus.Histogram
	MeanScore          *prometheus.GaugeVec
}

// NewMetrics creates the run collectors and registers them with reg.
// Use a dedicated registry per process; registering twice on the same
// registry panics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CombinationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ragsweep_combinations_total",
				Help: "Combinations evaluated by outcome",
			},
			[]string{"outcome"},
		),

		RowsScored: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "ragsweep_rows_scored_total",
				Help: "Testing rows retrieved and scored",
			},
		),

		RowsSkipped: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "ragsweep_rows_skipped_total",
				Help: "Testing rows skipped during retrieval or scoring",
			},
		),

		CombinationSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "ragsweep_combination_duration_seconds",
				Help:    "Wall time to evaluate one combination",
				Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 15, 60, 300},
			},
		),

		MeanScore: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "ragsweep_combination_mean_score",
				Help: "Mean score of the most recent evaluation of a combination",
			},
			[]string{"combination"},
		),
	}
}

func (m *Metrics) rowScored() {
	if m == nil {
		return
	}
	m.RowsScored.Inc()
}

func (m *Metrics) rowSkipped() {
	if m == nil {
		return
	}
	m.RowsSkipped.Inc()
}

func (m *Metrics) combinationFinished(res core.CombinationResult) {
	if m == nil {
		return
	}
	outcome := OutcomeScored
	switch {
	case res.Failed:
		outcome = OutcomeFailed
	case res.Error != "":
		outcome = OutcomeDegenerate
	}
	m.CombinationsTotal.WithLabelValues(outcome).Inc()
	m.CombinationSeconds.Observe((time.Duration(res.ProcessingTimeMs) * time.Millisecond).Seconds())
	m.MeanScore.WithLabelValues(res.Name).Set(res.MeanScore)
}
