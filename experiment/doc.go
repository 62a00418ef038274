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


// Package experiment runs field-combination retrieval experiments.
//
// A Runner takes an ExperimentConfig and a materialized set of rows and
// moves through a fixed sequence of states:
//
//	Idle → Validating → Splitting → (BuildingIndex → Retrieving → Scoring)* → Aggregating → Done
//
// Validation failures abort the run before any row is touched. Rows are
// shuffled and cut into a training and a testing split. For every
// combination of candidate fields the training rows are embedded into an
// index, each testing row's query retrieves its single nearest training
// record, and the retrieved target is scored against the row's expected
// answer. Combinations are evaluated one at a time; cancellation is honoured
// between combinations.
//
// Failures are contained at the smallest scope that makes sense:
//
//   - A testing row that cannot be retrieved or scored is skipped and counted.
//   - A combination with an empty index, or with no scorable rows, yields a
//     zero-score result.
//   - An embedding provider failure while building an index marks that
//     combination failed and the run moves on.
//
// Results are exported and imported as JSON (Export, Import). Progress can
// be observed through a Monitor and recorded as prometheus metrics.
//
// # Usage
//
//	runner, err := experiment.NewRunner(embedder,
//	    experiment.WithSeed(42),
//	    experiment.WithConcurrency(4),
//	    experiment.WithMonitor(experiment.NewProgressMonitor(os.Stderr)),
//	)
//	if err != nil {
//	    return err
//	}
//	defer runner.Release()
//
//	result, err := runner.Run(ctx, cfg, rows)
package experiment
