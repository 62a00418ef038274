package rowsource

import "errors"

var (
	// ErrUnknownDriver is returned for an unsupported source driver.
	ErrUnknownDriver = errors.New("unknown row source driver")

	// ErrDSNRequired is returned when a SQL source has no connection string.
	ErrDSNRequired = errors.New("data source name required")

	// ErrPathRequired is returned when a JSON source has no path.
	ErrPathRequired = errors.New("json source path required")

	// ErrTableRequired is returned when no table is named.
	ErrTableRequired = errors.New("table name required")

	// ErrTableNotFound is returned when a JSON source has no such table.
	ErrTableNotFound = errors.New("table not found")

	// ErrInvalidDocument is returned when a JSON table is not an array of objects.
	ErrInvalidDocument = errors.New("json table must be an array of objects")

	// ErrDatabaseRequired is returned when a nil *sql.DB is supplied.
	ErrDatabaseRequired = errors.New("database handle required")
)
