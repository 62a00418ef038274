// Package retrieval builds per-combination embedding indexes and answers
// nearest-neighbour queries against them.
//
// A Builder turns training rows into an Index: the values of the
// combination's fields are joined with RecordSeparator, embedded in batches
// and stored with the row's target value. A Matcher embeds a query with the
// same embedder and ranks the Index's records by cosine similarity.
//
// Rows missing a combination field or the target field are skipped and
// counted; an Index that ends up empty is reported as ErrEmptyIndex.
package retrieval
