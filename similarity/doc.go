// Package similarity provides the comparison primitives shared by retrieval
// and scoring.
//
//   - CompareSets: case-insensitive Jaccard comparison of two term sets
//   - Cosine: cosine similarity of two embedding vectors
//   - NormalizeText / Tokenize: text clean-up used by the feature extractors
package similarity
