package database

import "context"

// Driver defines the interface for database operations.
// A Driver holds at most one open session; calls are expected to be sequential.
type Driver interface {
	// Connect opens the session. It fails if a session is already open.
	Connect(ctx context.Context, dsn string) error

	// Close releases the session. Calling it more than once is a no-op.
	Close() error

	// ListTables returns the names of all tables and views in a schema, ordered by name.
	ListTables(ctx context.Context, schema string) ([]string, error)

	// GetColumns returns all columns for a table in ordinal order.
	// An unknown table yields no columns and no error.
	GetColumns(ctx context.Context, schema, table string) ([]Column, error)

	// GetTableData returns up to limit rows starting at offset, unordered.
	GetTableData(ctx context.Context, schema, table string, limit, offset int) (*QueryResult, error)

	// GetTableRowCount returns the exact row count for a table.
	GetTableRowCount(ctx context.Context, schema, table string) (int64, error)

	// ExecuteQuery runs a SQL statement with bound parameters and returns any rows.
	ExecuteQuery(ctx context.Context, query string, args ...any) (*QueryResult, error)

	// DatabaseName returns the name of the connected database.
	DatabaseName() string
}
