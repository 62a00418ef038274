// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder and ai.Provider
// for use in unit tests. The mocks allow tests to run without external
// embedding services and enable controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	embedder := mock.NewMockEmbedder()
//	vector, err := embedder.EmbedText(ctx, "test")
//
//	// Pin vectors for specific texts
//	embedder := mock.NewMockEmbedder().
//	    WithVector("a", []float32{1, 0}).
//	    WithVector("b", []float32{0, 1})
//
//	// Check call counts
//	count := embedder.CallCount()
//
// # Default Behavior
//
// MockEmbedder returns unit vectors derived from an FNV hash of the text, so
// identical text always yields identical vectors.
package mock
