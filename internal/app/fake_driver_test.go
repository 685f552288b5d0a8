package app

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/joacominatel/dbnav/internal/database"
)

// fakeDriver is an in-memory database.Driver for behavioral tests.
type fakeDriver struct {
	tables    map[string]*fakeTable
	connected bool
	closes    int
	failCount bool
}

type fakeTable struct {
	columns []database.Column
	rows    []database.Record
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{tables: map[string]*fakeTable{}, connected: true}
}

func (f *fakeDriver) addTable(name string, types ...string) *fakeTable {
	t := &fakeTable{}
	for i, typ := range types {
		t.columns = append(t.columns, database.Column{
			Name:       fmt.Sprintf("c%d", i+1),
			DataType:   typ,
			IsNullable: true,
			OrdinalPos: i + 1,
		})
	}
	f.tables[name] = t
	return t
}

func (t *fakeTable) addRows(n int) {
	for i := 0; i < n; i++ {
		rec := database.Record{}
		for _, c := range t.columns {
			rec.Fields = append(rec.Fields, database.Field{Name: c.Name, Value: len(t.rows)})
		}
		t.rows = append(t.rows, rec)
	}
}

func (f *fakeDriver) Connect(context.Context, string) error {
	if f.connected {
		return errors.New("already connected")
	}
	f.connected = true
	return nil
}

func (f *fakeDriver) Close() error {
	if f.connected {
		f.closes++
	}
	f.connected = false
	return nil
}

func (f *fakeDriver) check(op string) error {
	if !f.connected {
		return &database.Error{Op: op, Kind: database.KindConnection, Err: database.ErrNotConnected}
	}
	return nil
}

func (f *fakeDriver) ListTables(_ context.Context, _ string) ([]string, error) {
	if err := f.check("list tables"); err != nil {
		return nil, err
	}
	names := []string{}
	for name := range f.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (f *fakeDriver) GetColumns(_ context.Context, _, table string) ([]database.Column, error) {
	if err := f.check("get columns"); err != nil {
		return nil, err
	}
	t, ok := f.tables[table]
	if !ok {
		return []database.Column{}, nil
	}
	return t.columns, nil
}

func (f *fakeDriver) GetTableData(_ context.Context, _, table string, limit, offset int) (*database.QueryResult, error) {
	if err := f.check("table data"); err != nil {
		return nil, err
	}
	t, ok := f.tables[table]
	if !ok {
		return nil, undefinedTable(table)
	}
	if limit < 0 || offset < 0 {
		return nil, &database.Error{Op: "table data", Kind: database.KindQuery, Err: errors.New("LIMIT must not be negative")}
	}
	start := min(offset, len(t.rows))
	end := min(start+limit, len(t.rows))
	return &database.QueryResult{Columns: columnNames(t), Records: t.rows[start:end]}, nil
}

func (f *fakeDriver) GetTableRowCount(_ context.Context, _, table string) (int64, error) {
	if err := f.check("row count"); err != nil {
		return 0, err
	}
	if f.failCount {
		return 0, &database.Error{Op: "row count", Kind: database.KindPermission, Err: errors.New("permission denied")}
	}
	t, ok := f.tables[table]
	if !ok {
		return 0, undefinedTable(table)
	}
	return int64(len(t.rows)), nil
}

func (f *fakeDriver) ExecuteQuery(_ context.Context, query string, _ ...any) (*database.QueryResult, error) {
	if err := f.check("execute"); err != nil {
		return nil, err
	}
	name, ok := strings.CutPrefix(query, "SELECT * FROM ")
	if !ok {
		return nil, &database.Error{Op: "execute", Kind: database.KindSyntax, Err: errors.New(`syntax error at or near "SELEC"`)}
	}
	t, ok := f.tables[name]
	if !ok {
		return nil, undefinedTable(name)
	}
	return &database.QueryResult{Columns: columnNames(t), Records: t.rows}, nil
}

func (f *fakeDriver) DatabaseName() string { return "fake" }

func undefinedTable(name string) error {
	return &database.Error{Op: "query", Kind: database.KindUndefinedTable, Err: fmt.Errorf("relation %q does not exist", name)}
}

func columnNames(t *fakeTable) []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}
