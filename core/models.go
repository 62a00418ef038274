package core

import (
	"encoding/binary"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// MaxFields bounds the size of a FieldSet. Five fields yield 31 combinations.
const MaxFields = 5

// CombinationSeparator joins field names into a combination's display name.
const CombinationSeparator = " + "

// ID is a content-derived identifier.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// FieldSet is an ordered, de-duplicated list of candidate field names.
type FieldSet []string

// NewFieldSet builds a FieldSet from names, dropping repeats while keeping
// first-seen order.
func NewFieldSet(names ...string) (FieldSet, error) {
	seen := make(map[string]bool, len(names))
	fs := make(FieldSet, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, ErrEmptyFieldName
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		fs = append(fs, name)
	}
	if err := ValidateFieldSet(fs); err != nil {
		return nil, err
	}
	return fs, nil
}

// Contains reports whether name is a member of the set.
func (fs FieldSet) Contains(name string) bool {
	for _, f := range fs {
		if f == name {
			return true
		}
	}
	return false
}

// Combination is one non-empty subset of a FieldSet under evaluation.
type Combination struct {
	Name   string
	Fields []string
}

// NewCombination names a subset of fields, preserving their order.
func NewCombination(fields ...string) Combination {
	cp := make([]string, len(fields))
	copy(cp, fields)
	return Combination{
		Name:   strings.Join(cp, CombinationSeparator),
		Fields: cp,
	}
}

// ScoringEngine selects how retrieved target values are compared to expected answers.
type ScoringEngine string

const (
	// EngineStructuredQuery compares query-language statements.
	EngineStructuredQuery ScoringEngine = "structured-query"
	// EngineDomainDocument compares regulatory/document-style free text.
	EngineDomainDocument ScoringEngine = "domain-document"
)

// ExperimentConfig describes one experiment invocation.
// It is read-only once a run starts.
type ExperimentConfig struct {
	Name              string        `yaml:"name" json:"name"`
	CandidateFields   FieldSet      `yaml:"candidate_fields" json:"candidateFields"`
	TargetField       string        `yaml:"target_field" json:"targetField"`
	QueryField        string        `yaml:"query_field" json:"queryField"`
	AnswerField       string        `yaml:"answer_field" json:"answerField"`
	EmbeddingProvider string        `yaml:"embedding_provider" json:"embeddingProvider"`
	ScoringEngine     ScoringEngine `yaml:"scoring_engine" json:"scoringEngine"`
	TrainingRatio     float64       `yaml:"training_ratio" json:"trainingRatio"`
	Seed              *int64        `yaml:"seed,omitempty" json:"seed,omitempty"`
}

// ReferencedFields returns every field a row must carry for the experiment,
// candidates first, without duplicates.
func (c *ExperimentConfig) ReferencedFields() []string {
	seen := make(map[string]bool)
	var out []string
	add := func(f string) {
		if f != "" && !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	for _, f := range c.CandidateFields {
		add(f)
	}
	add(c.TargetField)
	add(c.QueryField)
	add(c.AnswerField)
	return out
}
