package rowsource

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lib/pq"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/poiesic/ragsweep/core"
)

const (
	postgresTablesQuery = `SELECT table_name FROM information_schema.tables
		WHERE table_schema = current_schema() AND table_type = 'BASE TABLE'
		ORDER BY table_name`

	sqliteTablesQuery = `SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name`
)

// SQLSource reads rows from a Postgres or SQLite database.
type SQLSource struct {
	db      *sql.DB
	driver  string
	maxRows int
	logger  *slog.Logger
}

// OpenSQL opens and pings a database for driver ("postgres" or "sqlite").
func OpenSQL(ctx context.Context, driver, dsn string, opts ...Option) (*SQLSource, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
	if dsn == "" {
		return nil, ErrDSNRequired
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w", driver, err)
	}

	return NewSQLSource(db, driver, opts...)
}

// NewSQLSource wraps an already open database. driver selects the catalog
// query used by Tables. The source takes ownership of db.
func NewSQLSource(db *sql.DB, driver string, opts ...Option) (*SQLSource, error) {
	if db == nil {
		return nil, ErrDatabaseRequired
	}
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}

	s := applyOptions(opts)
	return &SQLSource{
		db:      db,
		driver:  driver,
		maxRows: s.maxRows,
		logger:  s.logger.With("component", "sql-source", "driver", driver),
	}, nil
}

// Tables lists the user tables of the database.
func (s *SQLSource) Tables(ctx context.Context) ([]string, error) {
	query := postgresTablesQuery
	if s.driver == DriverSQLite {
		query = sqliteTablesQuery
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	tables := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	return tables, nil
}

// Rows reads every row of table. A schema-qualified name such as
// "public.orders" is quoted part by part.
func (s *SQLSource) Rows(ctx context.Context, table string) ([]core.Row, error) {
	table = strings.TrimSpace(table)
	if table == "" {
		return nil, ErrTableRequired
	}

	query := "SELECT * FROM " + quoteTable(table)
	if s.maxRows > 0 {
		query += fmt.Sprintf(" LIMIT %d", s.maxRows)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}

	var out []core.Row
	values := make([]any, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row %d of %s: %w", len(out), table, err)
		}
		row := make(core.Row, len(columns))
		for i, col := range columns {
			row[col] = core.ValueOf(values[i])
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", table, err)
	}

	s.logger.Debug("loaded rows", "table", table, "rows", len(out), "columns", len(columns))
	return out, nil
}

// Close closes the database.
func (s *SQLSource) Close() error {
	return s.db.Close()
}

func quoteTable(table string) string {
	parts := strings.Split(table, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}
