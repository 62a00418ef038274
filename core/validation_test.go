package core

import (
	"errors"
	"testing"
)

func validConfig() *ExperimentConfig {
	return &ExperimentConfig{
		Name:            "titles",
		CandidateFields: FieldSet{"title", "description"},
		TargetField:     "category",
		QueryField:      "question",
		AnswerField:     "answer",
		ScoringEngine:   EngineDomainDocument,
		TrainingRatio:   0.8,
	}
}

func TestValidateExperimentConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ExperimentConfig)
		wantErr error
	}{
		{
			name:    "valid config",
			mutate:  func(c *ExperimentConfig) {},
			wantErr: nil,
		},
		{
			name:    "empty candidate set",
			mutate:  func(c *ExperimentConfig) { c.CandidateFields = nil },
			wantErr: ErrEmptyFieldSet,
		},
		{
			name:    "too many candidates",
			mutate:  func(c *ExperimentConfig) { c.CandidateFields = FieldSet{"a", "b", "c", "d", "e", "f"} },
			wantErr: ErrFieldSetTooLarge,
		},
		{
			name:    "target among candidates",
			mutate:  func(c *ExperimentConfig) { c.TargetField = "title" },
			wantErr: ErrTargetInCandidates,
		},
		{
			name:    "ratio zero",
			mutate:  func(c *ExperimentConfig) { c.TrainingRatio = 0 },
			wantErr: ErrInvalidTrainingRatio,
		},
		{
			name:    "ratio one",
			mutate:  func(c *ExperimentConfig) { c.TrainingRatio = 1 },
			wantErr: ErrInvalidTrainingRatio,
		},
		{
			name:    "missing query field",
			mutate:  func(c *ExperimentConfig) { c.QueryField = "" },
			wantErr: ErrMissingField,
		},
		{
			name:    "unknown engine",
			mutate:  func(c *ExperimentConfig) { c.ScoringEngine = "bleu" },
			wantErr: ErrUnknownScoringEngine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := ValidateExperimentConfig(cfg)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateExperimentConfig() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateExperimentConfig() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("ValidateExperimentConfig() error = %v, want wrapped %v", err, ErrInvalidConfig)
			}
		})
	}
}

func TestValidateExperimentConfig_Nil(t *testing.T) {
	if err := ValidateExperimentConfig(nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ValidateExperimentConfig(nil) error = %v, want %v", err, ErrInvalidConfig)
	}
}

func TestNewFieldSet(t *testing.T) {
	t.Run("deduplicates keeping order", func(t *testing.T) {
		fs, err := NewFieldSet("b", "a", "b", " c ")
		if err != nil {
			t.Fatalf("NewFieldSet() error = %v", err)
		}
		want := FieldSet{"b", "a", "c"}
		if len(fs) != len(want) {
			t.Fatalf("NewFieldSet() = %v, want %v", fs, want)
		}
		for i := range want {
			if fs[i] != want[i] {
				t.Errorf("NewFieldSet()[%d] = %q, want %q", i, fs[i], want[i])
			}
		}
	})

	t.Run("blank name", func(t *testing.T) {
		if _, err := NewFieldSet("a", " "); !errors.Is(err, ErrEmptyFieldName) {
			t.Errorf("NewFieldSet() error = %v, want %v", err, ErrEmptyFieldName)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if _, err := NewFieldSet(); !errors.Is(err, ErrInvalidFieldSet) {
			t.Errorf("NewFieldSet() error = %v, want %v", err, ErrInvalidFieldSet)
		}
	})

	t.Run("six fields after dedupe", func(t *testing.T) {
		if _, err := NewFieldSet("a", "b", "c", "d", "e", "f", "a"); !errors.Is(err, ErrFieldSetTooLarge) {
			t.Errorf("NewFieldSet() error = %v, want %v", err, ErrFieldSetTooLarge)
		}
	})
}
