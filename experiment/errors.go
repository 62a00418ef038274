package experiment

import "errors"

var (
	// ErrEmbedderRequired is returned when a nil embedder is supplied.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrNoRows is returned when a run receives zero input rows.
	ErrNoRows = errors.New("no input rows")

	// ErrUnknownField is returned when a configured field appears in no input row.
	ErrUnknownField = errors.New("field not present in data")

	// ErrNoScorableRows is recorded on a combination whose every testing row was skipped.
	ErrNoScorableRows = errors.New("no testing row could be retrieved and scored")
)
