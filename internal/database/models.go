package database

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Column represents a table column with its metadata.
type Column struct {
	Name       string
	DataType   string
	MaxLength  *int64 // character_maximum_length, nil when not applicable
	Default    *string
	IsNullable bool
	OrdinalPos int
}

// Field is a single named value inside a Record.
type Field struct {
	Name  string
	Value any
}

// Record is one result row, keyed by column name and kept in column order.
type Record struct {
	Fields []Field
}

// Get returns the value of the first field with the given name.
func (r Record) Get(name string) (any, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Map returns the record as a map. Duplicate column names keep the last value.
func (r Record) Map() map[string]any {
	m := make(map[string]any, len(r.Fields))
	for _, f := range r.Fields {
		m[f.Name] = f.Value
	}
	return m
}

// Strings formats every value for display.
func (r Record) Strings() []string {
	out := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		out[i] = FormatValue(f.Value)
	}
	return out
}

// FormatValue renders a driver value the way the results table shows it.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return fmt.Sprintf("\\x%x", t)
	case time.Time:
		return t.Format(time.RFC3339)
	case [16]byte:
		return uuid.UUID(t).String()
	case driver.Valuer:
		// pgtype values such as Numeric render through their driver value.
		dv, err := t.Value()
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return FormatValue(dv)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

// QueryResult holds the result of a SQL query execution.
type QueryResult struct {
	Columns  []string
	Records  []Record
	Duration time.Duration
}

// RowCount returns the number of records.
func (r *QueryResult) RowCount() int {
	return len(r.Records)
}
