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

import "errors"

// Domain validation errors
var (
	// ErrInvalidFieldSet indicates a FieldSet failed validation.
	ErrInvalidFieldSet = errors.New("invalid field set")

	// ErrEmptyFieldSet indicates a FieldSet has no fields.
	ErrEmptyFieldSet = errors.New("field set cannot be empty")

	// ErrFieldSetTooLarge indicates a FieldSet exceeds MaxFields entries.
	ErrFieldSetTooLarge = errors.New("field set has too many fields")

	// ErrEmptyFieldName indicates a blank field name.
	ErrEmptyFieldName = errors.New("field name cannot be empty")

	// ErrInvalidConfig indicates an ExperimentConfig failed validation.
	ErrInvalidConfig = errors.New("invalid experiment configuration")

	// ErrTargetInCandidates indicates the target field is also a candidate field.
	ErrTargetInCandidates = errors.New("target field cannot be a candidate field")

	// ErrInvalidTrainingRatio indicates a training ratio outside (0,1).
	ErrInvalidTrainingRatio = errors.New("training ratio must be strictly between 0 and 1")

	// ErrMissingField indicates a required field reference is blank.
	ErrMissingField = errors.New("required field is not set")

	// ErrUnknownScoringEngine indicates an unsupported scoring engine selector.
	ErrUnknownScoringEngine = errors.New("unknown scoring engine")
)
