// Package combination enumerates the candidate field subsets evaluated by an
// experiment.
//
// Every non-empty subset of a FieldSet becomes one core.Combination. Subsets
// are produced in bitmask order, so for {"title", "description"} the result is
// {"title"}, {"description"}, {"title", "description"}. Member fields keep
// their FieldSet order, which makes combination names stable across runs.
package combination
