package rowsource

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/ragsweep/core"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestJSONSource_File(t *testing.T) {
	path := writeFile(t, t.TempDir(), "orders.json", `[
		{"title": "first", "total": 12.50, "tags": ["a", "b"], "paid": true, "note": null},
		{"title": "second", "total": 3}
	]`)

	src, err := NewJSONSource(path)
	require.NoError(t, err)

	tables, err := src.Tables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"orders"}, tables)

	rows, err := src.Rows(context.Background(), "orders")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, core.Text("first"), rows[0]["title"])
	assert.Equal(t, core.Number(12.5), rows[0]["total"])
	assert.Equal(t, core.KindStructured, rows[0]["tags"].Kind)
	assert.Equal(t, `["a","b"]`, rows[0]["tags"].String())
	assert.Equal(t, core.Bool(true), rows[0]["paid"])
	assert.True(t, rows[0]["note"].IsNull())

	assert.False(t, rows[1].Has("note"), "absent keys stay missing")
	assert.Equal(t, "3", rows[1]["total"].String())
	assert.NoError(t, src.Close())
}

func TestJSONSource_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "users.json", `[{"name": "ada"}]`)
	writeFile(t, dir, "orders.json", `[{"id": 1}, {"id": 2}, {"id": 3}]`)
	writeFile(t, dir, "readme.txt", `not a table`)

	src, err := NewJSONSource(dir, WithMaxRows(2))
	require.NoError(t, err)

	tables, err := src.Tables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"orders", "users"}, tables)

	rows, err := src.Rows(context.Background(), "orders")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestJSONSource_Errors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "object.json", `{"title": "not an array"}`)
	writeFile(t, dir, "scalars.json", `[1, 2]`)
	writeFile(t, dir, "nulls.json", `[{"a": 1}, null]`)

	_, err := NewJSONSource("")
	assert.ErrorIs(t, err, ErrPathRequired)

	_, err = NewJSONSource(filepath.Join(dir, "missing"))
	assert.Error(t, err)

	src, err := NewJSONSource(dir)
	require.NoError(t, err)

	tests := []struct {
		table string
		want  error
	}{
		{table: "", want: ErrTableRequired},
		{table: "absent", want: ErrTableNotFound},
		{table: "object", want: ErrInvalidDocument},
		{table: "scalars", want: ErrInvalidDocument},
		{table: "nulls", want: ErrInvalidDocument},
	}
	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			_, err := src.Rows(context.Background(), tt.table)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{name: "postgres", cfg: Config{Driver: "postgres", DSN: "postgres://localhost/db"}},
		{name: "json", cfg: Config{Driver: "json", Path: "rows.json"}},
		{name: "postgres without dsn", cfg: Config{Driver: "postgres"}, wantErr: ErrDSNRequired},
		{name: "json without path", cfg: Config{Driver: "json"}, wantErr: ErrPathRequired},
		{name: "unknown driver", cfg: Config{Driver: "csv", Path: "x"}, wantErr: ErrUnknownDriver},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}

	assert.Error(t, (&Config{Driver: "json", Path: "x", MaxRows: -1}).Validate())
}

func TestOpen_JSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "rows.json", `[{"a": 1}, {"a": 2}]`)

	src, err := Open(context.Background(), Config{Driver: "JSON", Path: path, MaxRows: 1})
	require.NoError(t, err)
	defer src.Close()

	rows, err := src.Rows(context.Background(), "rows")
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = Open(context.Background(), Config{Driver: "oracle", DSN: "x"})
	assert.ErrorIs(t, err, ErrUnknownDriver)
}
