package experiment

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/poiesic/ragsweep/core"
)

// Export writes result as indented JSON.
func Export(w io.Writer, result *core.ExperimentResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode experiment result: %w", err)
	}
	return nil
}

// Import reads a result previously written by Export.
func Import(r io.Reader) (*core.ExperimentResult, error) {
	var result core.ExperimentResult
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode experiment result: %w", err)
	}
	return &result, nil
}

// SaveFile exports result to path, replacing any existing file.
func SaveFile(path string, result *core.ExperimentResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := Export(f, result); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// LoadFile imports a result from path.
func LoadFile(path string) (*core.ExperimentResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return Import(f)
}
