package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgconn/ctxwatch"
	"github.com/joacominatel/dbnav/internal/database"
)

// deadlineGrace is how long a cancelled statement may take to stop before
// the connection is torn down.
const deadlineGrace = 5 * time.Second

// Driver implements the database.Driver interface for PostgreSQL over a single
// pgx connection. It is not safe for concurrent use.
type Driver struct {
	conn   *pgx.Conn
	dbName string
}

var _ database.Driver = (*Driver)(nil)

// New creates a new PostgreSQL driver.
func New() *Driver {
	return &Driver{}
}

// Connect opens one connection to PostgreSQL and verifies it with a ping.
func (d *Driver) Connect(ctx context.Context, dsn string) error {
	if d.conn != nil {
		return fmt.Errorf("connect: already connected to %s", d.dbName)
	}

	cfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("parse dsn: %w", err)
	}
	// On context expiry the server cancels the statement; the socket stays open.
	cfg.BuildContextWatcherHandler = func(pgConn *pgconn.PgConn) ctxwatch.Handler {
		return &pgconn.CancelRequestContextWatcherHandler{
			Conn:          pgConn,
			DeadlineDelay: deadlineGrace,
		}
	}

	conn, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		return wrap("connect", err)
	}

	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close(context.Background())
		return wrap("ping", err)
	}

	d.conn = conn
	d.dbName = cfg.Database
	return nil
}

// Close closes the connection. It is safe to call more than once.
func (d *Driver) Close() error {
	if d.conn == nil {
		return nil
	}
	conn := d.conn
	d.conn = nil
	return conn.Close(context.Background())
}

// ListTables returns the names of all tables and views in a schema.
func (d *Driver) ListTables(ctx context.Context, schema string) ([]string, error) {
	if d.conn == nil {
		return nil, wrap("list tables", database.ErrNotConnected)
	}
	rows, err := d.conn.Query(ctx, queryListTables, schema)
	if err != nil {
		return nil, d.wrap("list tables", err)
	}
	defer rows.Close()

	tables := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, d.wrap("scan table", err)
		}
		tables = append(tables, name)
	}
	return tables, d.wrap("list tables", rows.Err())
}

// GetColumns returns column metadata for a table.
func (d *Driver) GetColumns(ctx context.Context, schema, table string) ([]database.Column, error) {
	if d.conn == nil {
		return nil, wrap("get columns", database.ErrNotConnected)
	}
	rows, err := d.conn.Query(ctx, queryGetColumns, schema, table)
	if err != nil {
		return nil, d.wrap("get columns", err)
	}
	defer rows.Close()

	columns := []database.Column{}
	for rows.Next() {
		var col database.Column
		var nullable string
		if err := rows.Scan(&col.Name, &col.DataType, &col.MaxLength, &col.Default, &nullable, &col.OrdinalPos); err != nil {
			return nil, d.wrap("scan column", err)
		}
		col.IsNullable = nullable == "YES"
		columns = append(columns, col)
	}
	return columns, d.wrap("get columns", rows.Err())
}

// GetTableData returns one page of rows from a table.
func (d *Driver) GetTableData(ctx context.Context, schema, table string, limit, offset int) (*database.QueryResult, error) {
	result, err := d.query(ctx, queryTableData(schema, table), limit, offset)
	if err != nil {
		return nil, d.wrap("table data", err)
	}
	return result, nil
}

// GetTableRowCount returns the exact row count of a table.
func (d *Driver) GetTableRowCount(ctx context.Context, schema, table string) (int64, error) {
	if d.conn == nil {
		return 0, wrap("row count", database.ErrNotConnected)
	}
	var count int64
	if err := d.conn.QueryRow(ctx, queryTableCount(schema, table)).Scan(&count); err != nil {
		return 0, d.wrap("row count", err)
	}
	return count, nil
}

// ExecuteQuery runs a SQL statement and returns the results.
func (d *Driver) ExecuteQuery(ctx context.Context, query string, args ...any) (*database.QueryResult, error) {
	result, err := d.query(ctx, query, args...)
	if err != nil {
		return nil, d.wrap("execute", err)
	}
	return result, nil
}

// DatabaseName returns the name of the connected database.
func (d *Driver) DatabaseName() string {
	return d.dbName
}

// wrap classifies err and reports a connection failure when the statement
// left the connection closed.
func (d *Driver) wrap(op string, err error) error {
	wrapped := wrap(op, err)
	var dbErr *database.Error
	if errors.As(wrapped, &dbErr) && d.conn != nil && d.conn.IsClosed() {
		dbErr.Kind = database.KindConnection
	}
	return wrapped
}

func (d *Driver) query(ctx context.Context, query string, args ...any) (*database.QueryResult, error) {
	if d.conn == nil {
		return nil, database.ErrNotConnected
	}
	start := time.Now()

	rows, err := d.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}

	records := []database.Record{}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		rec := database.Record{Fields: make([]database.Field, len(values))}
		for i, v := range values {
			rec.Fields[i] = database.Field{Name: columns[i], Value: v}
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &database.QueryResult{
		Columns:  columns,
		Records:  records,
		Duration: time.Since(start),
	}, nil
}
