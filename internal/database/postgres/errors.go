package postgres

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/joacominatel/dbnav/internal/database"
)

// SQLSTATE codes used for classification.
const (
	codeSyntaxError      = "42601"
	codeInsufficientPriv = "42501"
	codeUndefinedTable   = "42P01"
	codeQueryCanceled    = "57014"
	classConnection      = "08"
	classInvalidAuth     = "28"
	classAdminShutdown   = "57P"
)

// wrap classifies err and attaches the operation name.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &database.Error{Op: op, Kind: classify(err), Err: err}
}

func classify(err error) database.ErrorKind {
	var pgErr *pgconn.PgError
	hasPgErr := errors.As(err, &pgErr)
	if hasPgErr && strings.HasPrefix(pgErr.Code, classInvalidAuth) {
		return database.KindAuth
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return database.KindConnection
	}

	if hasPgErr {
		switch {
		case pgErr.Code == codeSyntaxError:
			return database.KindSyntax
		case pgErr.Code == codeInsufficientPriv:
			return database.KindPermission
		case pgErr.Code == codeUndefinedTable:
			return database.KindUndefinedTable
		case pgErr.Code == codeQueryCanceled:
			return database.KindQuery
		case strings.HasPrefix(pgErr.Code, classConnection),
			strings.HasPrefix(pgErr.Code, classAdminShutdown):
			return database.KindConnection
		}
		return database.KindQuery
	}

	if errors.Is(err, database.ErrNotConnected) {
		return database.KindConnection
	}
	// A cancelled statement leaves the session usable; the driver reports a
	// closed connection separately.
	if pgconn.Timeout(err) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return database.KindQuery
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return database.KindConnection
	}
	if strings.Contains(err.Error(), "conn closed") {
		return database.KindConnection
	}
	return database.KindQuery
}
