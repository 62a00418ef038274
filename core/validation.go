// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"fmt"
	"strings"
)

// ValidateFieldSet validates a FieldSet according to domain rules.
//
// Validation rules:
//   - At least one field
//   - At most MaxFields fields
//   - No blank field names
func ValidateFieldSet(fs FieldSet) error {
	if len(fs) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidFieldSet, ErrEmptyFieldSet)
	}
	if len(fs) > MaxFields {
		return fmt.Errorf("%w: %w: %d > %d", ErrInvalidFieldSet, ErrFieldSetTooLarge, len(fs), MaxFields)
	}
	for _, f := range fs {
		if strings.TrimSpace(f) == "" {
			return fmt.Errorf("%w: %w", ErrInvalidFieldSet, ErrEmptyFieldName)
		}
	}
	return nil
}

// ValidateExperimentConfig validates an ExperimentConfig according to domain rules.
//
// Validation rules:
//   - CandidateFields is a valid FieldSet
//   - TargetField, QueryField and AnswerField are set
//   - TargetField is not a candidate field
//   - TrainingRatio is strictly between 0 and 1
//   - ScoringEngine is a known engine
//
// NOT validated (depends on the dataset):
//   - Whether referenced fields exist in the rows
func ValidateExperimentConfig(cfg *ExperimentConfig) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if err := ValidateFieldSet(cfg.CandidateFields); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := requireField("target", cfg.TargetField); err != nil {
		return err
	}
	if err := requireField("query", cfg.QueryField); err != nil {
		return err
	}
	if err := requireField("answer", cfg.AnswerField); err != nil {
		return err
	}

	if cfg.CandidateFields.Contains(cfg.TargetField) {
		return fmt.Errorf("%w: %w: %q", ErrInvalidConfig, ErrTargetInCandidates, cfg.TargetField)
	}

	if !(cfg.TrainingRatio > 0 && cfg.TrainingRatio < 1) {
		return fmt.Errorf("%w: %w: got %v", ErrInvalidConfig, ErrInvalidTrainingRatio, cfg.TrainingRatio)
	}

	if err := ValidateScoringEngine(cfg.ScoringEngine); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// ValidateScoringEngine validates that a ScoringEngine has a known value.
func ValidateScoringEngine(engine ScoringEngine) error {
	if engine != EngineStructuredQuery && engine != EngineDomainDocument {
		return fmt.Errorf("%w: %q", ErrUnknownScoringEngine, engine)
	}
	return nil
}

func requireField(role, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: %w: %s field", ErrInvalidConfig, ErrMissingField, role)
	}
	return nil
}
