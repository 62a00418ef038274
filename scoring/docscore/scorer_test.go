package docscore

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	regulatoryText    = "The regulation shall apply. This directive and the law impose an obligation."
	informationalText = "The weather is nice today."
)

func TestScorer_IdenticalText(t *testing.T) {
	text := "Under GDPR Article 33 the data controller must report a personal data breach within 72 hours as part of incident response."

	res, err := NewScorer().Score(context.Background(), text, text)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, res.Score, 1e-9)
	for _, key := range []string{
		CriterionSemantic, CriterionDocumentType, CriterionConcepts, CriterionTopics,
		CriterionKeywords, CriterionComplianceRisk, CriterionCoherence,
	} {
		assert.InDelta(t, 1.0, res.Breakdown[key], 1e-9, key)
	}
}

func TestScorer_Coherence(t *testing.T) {
	s := NewScorer(WithWeights(Weights{Coherence: 1}))

	res, err := s.Score(context.Background(), regulatoryText, informationalText)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, res.Score, 1e-9)
	assert.InDelta(t, 0.5, res.Breakdown[CriterionCoherence], 1e-9)

	res, err = s.Score(context.Background(), regulatoryText, regulatoryText)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.Score, 1e-9)
}

func TestScorer_SemanticBlend(t *testing.T) {
	expected := Analysis{Concepts: []string{"consent"}, Topics: []string{"data protection"}, Keywords: []string{"consent"}}
	actual := Analysis{Concepts: []string{"consent"}, Topics: []string{"supply chain"}, Keywords: []string{"vendor"}}

	res := NewScorer().Compare(expected, actual)
	assert.InDelta(t, 0.4, res.Breakdown[CriterionSemantic], 1e-9)
	assert.InDelta(t, 1.0, res.Breakdown[CriterionConcepts], 1e-9)
	assert.InDelta(t, 0.0, res.Breakdown[CriterionTopics], 1e-9)
}

func TestScorer_DocumentTypeBlend(t *testing.T) {
	expected := Analysis{DocumentTypes: []string{"policy"}, References: []string{"iso 27001"}}
	actual := Analysis{DocumentTypes: []string{"policy"}, References: []string{"iso 9001"}}

	res := NewScorer().Compare(expected, actual)
	assert.InDelta(t, 0.7, res.Breakdown[CriterionDocumentType], 1e-9)
}

func TestScorer_ComplianceRiskAverage(t *testing.T) {
	expected := Analysis{ComplianceTerms: []string{"must"}, RiskTerms: []string{"risk"}}
	actual := Analysis{ComplianceTerms: []string{"must"}, RiskTerms: []string{"hazard"}}

	res := NewScorer().Compare(expected, actual)
	assert.InDelta(t, 0.5, res.Breakdown[CriterionComplianceRisk], 1e-9)
}

func TestScorer_Defaults(t *testing.T) {
	s := NewScorer()
	assert.Equal(t, Name, s.Name())
	assert.Equal(t, DefaultWeights(), s.Weights())
}

func TestScorer_ScoreBounds(t *testing.T) {
	s := NewScorer()
	rng := rand.New(rand.NewPCG(3, 5))
	vocab := []string{
		"regulation", "shall", "personal", "data", "risk", "ISO", "27001",
		"Article", "5", "procedure", "review", "server", "the", "of", "",
		"incident", "response", "audit", "-", "compliance", "é", "\t",
	}
	randomText := func() string {
		n := rng.IntN(30)
		parts := make([]string, n)
		for i := range parts {
			parts[i] = vocab[rng.IntN(len(vocab))]
		}
		return strings.Join(parts, " ")
	}

	for i := 0; i < 200; i++ {
		res, err := s.Score(context.Background(), randomText(), randomText())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Score, 0.0)
		assert.LessOrEqual(t, res.Score, 1.0)
	}

	res, err := s.Score(context.Background(), "", "")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, res.Score, 1e-9)
}

func TestScorer_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewScorer().Score(ctx, "a", "b")
	assert.ErrorIs(t, err, context.Canceled)
}
