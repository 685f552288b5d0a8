package app

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/joacominatel/dbnav/internal/config"
	"github.com/joacominatel/dbnav/internal/database"
)

// Defaults for GetTableData.
const (
	DefaultLimit  = 10
	DefaultOffset = 0
)

// Service coordinates application-level operations between the UI and the
// database. It owns the single session; every query operation returns a
// Result instead of an error.
type Service struct {
	driver    database.Driver
	logger    *slog.Logger
	schema    string
	timeout   time.Duration
	sessionID string
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithSchema sets the schema tables are listed and described from.
func WithSchema(schema string) Option {
	return func(s *Service) {
		if schema != "" {
			s.schema = schema
		}
	}
}

// WithQueryTimeout bounds every query. Zero means no timeout.
func WithQueryTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// NewService creates a new application service.
func NewService(driver database.Driver, opts ...Option) *Service {
	s := &Service{
		driver: driver,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		schema: config.DefaultSchema,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connect opens the session from connection parameters.
func (s *Service) Connect(ctx context.Context, conn config.Connection) error {
	return s.connect(ctx, conn.DSN(), conn.DisplayString())
}

// ConnectDSN opens the session from a connection string.
func (s *Service) ConnectDSN(ctx context.Context, dsn string) error {
	target := ""
	if conn, err := config.ParseDSN(dsn); err == nil {
		target = conn.DisplayString()
	}
	return s.connect(ctx, dsn, target)
}

func (s *Service) connect(ctx context.Context, dsn, target string) error {
	if err := s.driver.Connect(ctx, dsn); err != nil {
		s.logger.Error("connect failed", "target", target, "error", err)
		return &ErrConnection{Target: target, Cause: err}
	}
	s.sessionID = uuid.NewString()
	s.logger = s.logger.With("session", s.sessionID)
	s.logger.Info("connected", "target", target, "database", s.driver.DatabaseName())
	return nil
}

// Disconnect closes the session. Calling it again is harmless.
func (s *Service) Disconnect() error {
	if err := s.driver.Close(); err != nil {
		s.logger.Warn("disconnect", "error", err)
		return err
	}
	s.logger.Info("disconnected")
	return nil
}

// SessionID identifies the current session in logs. Empty before Connect.
func (s *Service) SessionID() string {
	return s.sessionID
}

// DatabaseName returns the current database name.
func (s *Service) DatabaseName() string {
	return s.driver.DatabaseName()
}

// ListTables returns every table and view name in the schema, ordered by name.
func (s *Service) ListTables(ctx context.Context) Result[string] {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tables, err := s.driver.ListTables(ctx, s.schema)
	if err != nil {
		s.logger.Error("error fetching tables", "error", err)
		return fail[string](err)
	}
	return ok(tables)
}

// DescribeTable returns the columns of a table in declaration order. An unknown
// table is a success with no columns.
func (s *Service) DescribeTable(ctx context.Context, table string) Result[database.Column] {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	columns, err := s.driver.GetColumns(ctx, s.schema, table)
	if err != nil {
		s.logger.Error("error describing table", "table", table, "error", err)
		return fail[database.Column](err)
	}
	return ok(columns)
}

// GetTableData returns up to limit rows of table starting at offset, in the
// database's natural order. Negative values are passed through unchecked.
func (s *Service) GetTableData(ctx context.Context, table string, limit, offset int) Result[database.Record] {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.driver.GetTableData(ctx, s.schema, table, limit, offset)
	if err != nil {
		s.logger.Error("error fetching table data", "table", table, "limit", limit, "offset", offset, "error", err)
		return fail[database.Record](err)
	}
	return rowsResult(res)
}

// GetTableDataDefault is GetTableData with DefaultLimit and DefaultOffset.
func (s *Service) GetTableDataDefault(ctx context.Context, table string) Result[database.Record] {
	return s.GetTableData(ctx, table, DefaultLimit, DefaultOffset)
}

// GetTableCount returns the number of rows in table, or 0 if the count fails.
// Callers cannot tell an empty table from a failed count; use CountTable when
// the difference matters.
func (s *Service) GetTableCount(ctx context.Context, table string) int64 {
	n, _ := s.CountTable(ctx, table).First()
	return n
}

// CountTable returns the number of rows in table as a one-element Result.
func (s *Service) CountTable(ctx context.Context, table string) Result[int64] {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	n, err := s.driver.GetTableRowCount(ctx, s.schema, table)
	if err != nil {
		s.logger.Warn("error counting records", "table", table, "error", err)
		return fail[int64](err)
	}
	return ok([]int64{n})
}

// ExecuteQuery runs an arbitrary statement with bound parameters. Nothing
// restricts the statement type.
func (s *Service) ExecuteQuery(ctx context.Context, query string, params ...any) Result[database.Record] {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	s.logger.Debug("execute query", "query", query, "params", len(params))
	res, err := s.driver.ExecuteQuery(ctx, query, params...)
	if err != nil {
		qerr := &ErrQuery{Query: query, Cause: err}
		s.logger.Error("error executing query", "error", err, "kind", database.KindOf(err).String())
		return fail[database.Record](qerr)
	}
	s.logger.Debug("query done", "rows", res.RowCount(), "duration", res.Duration)
	return rowsResult(res)
}

func rowsResult(res *database.QueryResult) Result[database.Record] {
	r := ok(res.Records)
	r.Columns = res.Columns
	if r.Columns == nil {
		r.Columns = []string{}
	}
	return r
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}
