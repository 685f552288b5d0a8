package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/joacominatel/dbnav/internal/database"
	"github.com/stretchr/testify/assert"
)

func TestQuoteTable(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `"public"."users"`, quoteTable("public", "users"))
	assert.Equal(t, `"users"`, quoteTable("", "users"))
	assert.Equal(t, `"Mixed Case"`, quoteTable("", "Mixed Case"))
	assert.Equal(t, `"public"."x"";DROP TABLE users;--"`, quoteTable("public", `x";DROP TABLE users;--`))
}

func TestTableQueries(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `SELECT * FROM "public"."orders" LIMIT $1 OFFSET $2`, queryTableData("public", "orders"))
	assert.Equal(t, `SELECT COUNT(*) FROM "public"."orders"`, queryTableCount("public", "orders"))
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want database.ErrorKind
	}{
		{"syntax", &pgconn.PgError{Code: "42601"}, database.KindSyntax},
		{"permission", &pgconn.PgError{Code: "42501"}, database.KindPermission},
		{"undefined table", &pgconn.PgError{Code: "42P01"}, database.KindUndefinedTable},
		{"connection failure", &pgconn.PgError{Code: "08006"}, database.KindConnection},
		{"bad password", &pgconn.PgError{Code: "28P01"}, database.KindAuth},
		{"wrapped bad password", fmt.Errorf("connect: %w", &pgconn.PgError{Code: "28000"}), database.KindAuth},
		{"admin shutdown", &pgconn.PgError{Code: "57P01"}, database.KindConnection},
		{"statement timeout", &pgconn.PgError{Code: "57014"}, database.KindQuery},
		{"unique violation", &pgconn.PgError{Code: "23505"}, database.KindQuery},
		{"wrapped pg error", fmt.Errorf("x: %w", &pgconn.PgError{Code: "42601"}), database.KindSyntax},
		{"not connected", database.ErrNotConnected, database.KindConnection},
		{"deadline", context.DeadlineExceeded, database.KindQuery},
		{"cancelled", fmt.Errorf("execute: %w", context.Canceled), database.KindQuery},
		{"closed conn", errors.New("conn closed"), database.KindConnection},
		{"other", errors.New("boom"), database.KindQuery},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.err))
		})
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()

	assert.NoError(t, wrap("execute", nil))

	err := wrap("execute", &pgconn.PgError{Code: "42601", Message: "syntax error"})
	var dbErr *database.Error
	assert.ErrorAs(t, err, &dbErr)
	assert.Equal(t, "execute", dbErr.Op)
	assert.Equal(t, database.KindSyntax, database.KindOf(err))
}

func TestDriver_NotConnected(t *testing.T) {
	t.Parallel()

	d := New()
	ctx := context.Background()

	assert.NoError(t, d.Close())

	_, err := d.ListTables(ctx, "public")
	assert.Equal(t, database.KindConnection, database.KindOf(err))

	_, err = d.ExecuteQuery(ctx, "SELECT 1")
	assert.ErrorIs(t, err, database.ErrNotConnected)

	_, err = d.GetTableRowCount(ctx, "public", "users")
	assert.Equal(t, database.KindConnection, database.KindOf(err))
}
