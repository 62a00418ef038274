package rowsource

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/poiesic/ragsweep/core"
)

// JSONSource reads rows from JSON files. A file path exposes one table named
// after the file stem; a directory exposes one table per *.json file.
type JSONSource struct {
	files   map[string]string // table name -> file path
	maxRows int
	logger  *slog.Logger
}

// NewJSONSource indexes the tables found at path.
func NewJSONSource(path string, opts ...Option) (*JSONSource, error) {
	if path == "" {
		return nil, ErrPathRequired
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	files := make(map[string]string)
	if info.IsDir() {
		matches, err := filepath.Glob(filepath.Join(path, "*.json"))
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", path, err)
		}
		for _, m := range matches {
			files[tableName(m)] = m
		}
	} else {
		files[tableName(path)] = path
	}

	s := applyOptions(opts)
	return &JSONSource{
		files:   files,
		maxRows: s.maxRows,
		logger:  s.logger.With("component", "json-source"),
	}, nil
}

func tableName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Tables lists the table names, sorted.
func (s *JSONSource) Tables(context.Context) ([]string, error) {
	tables := make([]string, 0, len(s.files))
	for name := range s.files {
		tables = append(tables, name)
	}
	slices.Sort(tables)
	return tables, nil
}

// Rows decodes the file backing table. Numbers keep their exact decimal
// form until converted to core values.
func (s *JSONSource) Rows(ctx context.Context, table string) ([]core.Row, error) {
	table = strings.TrimSpace(table)
	if table == "" {
		return nil, ErrTableRequired
	}
	path, ok := s.files[table]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrTableNotFound, table)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.UseNumber()

	var docs []map[string]any
	if err := dec.Decode(&docs); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDocument, path, err)
	}

	if s.maxRows > 0 && len(docs) > s.maxRows {
		docs = docs[:s.maxRows]
	}

	out := make([]core.Row, 0, len(docs))
	for i, doc := range docs {
		if doc == nil {
			return nil, fmt.Errorf("%w: %s: element %d is null", ErrInvalidDocument, path, i)
		}
		out = append(out, core.RowFromMap(doc))
	}

	s.logger.Debug("loaded rows", "table", table, "rows", len(out))
	return out, nil
}

// Close is a no-op; files are opened per read.
func (s *JSONSource) Close() error {
	return nil
}
