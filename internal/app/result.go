package app

import "github.com/joacominatel/dbnav/internal/database"

// Result is the envelope every query service operation returns. On success
// Data holds the rows; on failure Error holds a message and Data is empty.
type Result[T any] struct {
	Success bool
	Data    []T
	Columns []string // column order of row-returning operations
	Error   string
	Kind    database.ErrorKind
}

func ok[T any](data []T) Result[T] {
	if data == nil {
		data = []T{}
	}
	return Result[T]{Success: true, Data: data}
}

func fail[T any](err error) Result[T] {
	return Result[T]{
		Success: false,
		Data:    []T{},
		Error:   err.Error(),
		Kind:    database.KindOf(err),
	}
}

// First returns the first element of a successful result.
func (r Result[T]) First() (T, bool) {
	var zero T
	if !r.Success || len(r.Data) == 0 {
		return zero, false
	}
	return r.Data[0], true
}

// Lost reports whether the failure means the session is gone.
func (r Result[T]) Lost() bool {
	return !r.Success && r.Kind == database.KindConnection
}
