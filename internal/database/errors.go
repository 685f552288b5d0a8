package database

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed database operation.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindQuery
	KindConnection
	KindSyntax
	KindPermission
	KindUndefinedTable
	KindAuth
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindQuery:
		return "query"
	case KindConnection:
		return "connection"
	case KindSyntax:
		return "syntax"
	case KindPermission:
		return "permission"
	case KindUndefinedTable:
		return "undefined table"
	case KindAuth:
		return "authentication"
	default:
		return "unknown"
	}
}

// ErrNotConnected is returned by drivers used before Connect or after Close.
var ErrNotConnected = errors.New("not connected")

// Error is a classified driver error.
type Error struct {
	Op   string
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, or KindQuery for unclassified errors.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var dbErr *Error
	if errors.As(err, &dbErr) {
		return dbErr.Kind
	}
	if errors.Is(err, ErrNotConnected) {
		return KindConnection
	}
	return KindQuery
}
