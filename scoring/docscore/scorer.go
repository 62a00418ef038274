package docscore

import (
	"context"

	"github.com/poiesic/ragsweep/scoring"
	"github.com/poiesic/ragsweep/similarity"
)

// Name is the engine identifier.
const Name = "domain-document"

// Criterion keys reported in scoring.Result.Breakdown.
const (
	CriterionSemantic       = "semantic"
	CriterionDocumentType   = "document_type"
	CriterionConcepts       = "concepts"
	CriterionTopics         = "topics"
	CriterionKeywords       = "keywords"
	CriterionComplianceRisk = "compliance_risk"
	CriterionCoherence      = "coherence"
)

// Blend of the semantic criterion.
const (
	semanticConceptShare = 0.4
	semanticTopicShare   = 0.4
	semanticKeywordShare = 0.2
)

// Blend of the document-type criterion.
const (
	documentTypeShare = 0.7
	referenceShare    = 0.3
)

// mismatchedClassCoherence is the coherence score when semantic classes differ.
const mismatchedClassCoherence = 0.5

// Weights sets the contribution of each criterion to the overall score.
// They are not required to sum to 1; the overall score is clamped.
type Weights struct {
	Semantic       float64 `yaml:"semantic" json:"semantic"`
	DocumentType   float64 `yaml:"document_type" json:"documentType"`
	Concepts       float64 `yaml:"concepts" json:"concepts"`
	Topics         float64 `yaml:"topics" json:"topics"`
	Keywords       float64 `yaml:"keywords" json:"keywords"`
	ComplianceRisk float64 `yaml:"compliance_risk" json:"complianceRisk"`
	Coherence      float64 `yaml:"coherence" json:"coherence"`
}

// DefaultWeights returns the standard weighting.
func DefaultWeights() Weights {
	return Weights{
		Semantic:       0.20,
		DocumentType:   0.15,
		Concepts:       0.15,
		Topics:         0.15,
		Keywords:       0.10,
		ComplianceRisk: 0.15,
		Coherence:      0.10,
	}
}

// Scorer implements scoring.Scorer for regulatory and procedural text.
type Scorer struct {
	weights Weights
}

var _ scoring.Scorer = (*Scorer)(nil)

// Option configures a Scorer.
type Option func(*Scorer)

// WithWeights overrides DefaultWeights.
func WithWeights(w Weights) Option {
	return func(s *Scorer) {
		s.weights = w
	}
}

// NewScorer creates a domain-document Scorer.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{weights: DefaultWeights()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns "domain-document".
func (s *Scorer) Name() string {
	return Name
}

// Weights returns the weights in use.
func (s *Scorer) Weights() Weights {
	return s.weights
}

// Score compares the expected text with the retrieved one.
func (s *Scorer) Score(ctx context.Context, expected, actual string) (scoring.Result, error) {
	if err := ctx.Err(); err != nil {
		return scoring.Result{}, err
	}
	return s.Compare(Analyze(expected), Analyze(actual)), nil
}

// Compare scores two analyses.
func (s *Scorer) Compare(expected, actual Analysis) scoring.Result {
	concepts := similarity.CompareSets(expected.Concepts, actual.Concepts).Score
	topics := similarity.CompareSets(expected.Topics, actual.Topics).Score
	keywords := similarity.CompareSets(expected.Keywords, actual.Keywords).Score

	semantic := semanticConceptShare*concepts + semanticTopicShare*topics + semanticKeywordShare*keywords

	docTypes := similarity.CompareSets(expected.DocumentTypes, actual.DocumentTypes).Score
	refs := similarity.CompareSets(expected.References, actual.References).Score
	documentType := documentTypeShare*docTypes + referenceShare*refs

	compliance := similarity.CompareSets(expected.ComplianceTerms, actual.ComplianceTerms).Score
	risk := similarity.CompareSets(expected.RiskTerms, actual.RiskTerms).Score
	complianceRisk := (compliance + risk) / 2

	coherence := mismatchedClassCoherence
	if expected.Class == actual.Class {
		coherence = 1
	}

	w := s.weights
	return scoring.Combine(
		scoring.Criterion{Name: CriterionSemantic, Weight: w.Semantic, Score: semantic},
		scoring.Criterion{Name: CriterionDocumentType, Weight: w.DocumentType, Score: documentType},
		scoring.Criterion{Name: CriterionConcepts, Weight: w.Concepts, Score: concepts},
		scoring.Criterion{Name: CriterionTopics, Weight: w.Topics, Score: topics},
		scoring.Criterion{Name: CriterionKeywords, Weight: w.Keywords, Score: keywords},
		scoring.Criterion{Name: CriterionComplianceRisk, Weight: w.ComplianceRisk, Score: complianceRisk},
		scoring.Criterion{Name: CriterionCoherence, Weight: w.Coherence, Score: coherence},
	)
}
