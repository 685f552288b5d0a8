package results

import (
	"strconv"

	"github.com/joacominatel/dbnav/internal/app"
	"github.com/joacominatel/dbnav/internal/database"
)

// Table is a rectangular block of display strings.
type Table struct {
	Columns []string
	Rows    [][]string
}

// FromRecords converts query rows into a Table. When columns is empty the
// first record's field names are used.
func FromRecords(columns []string, records []database.Record) Table {
	if len(columns) == 0 && len(records) > 0 {
		for _, f := range records[0].Fields {
			columns = append(columns, f.Name)
		}
	}
	t := Table{Columns: columns, Rows: make([][]string, len(records))}
	for i, rec := range records {
		t.Rows[i] = rec.Strings()
	}
	return t
}

// FromColumns renders table structure the way information_schema names it.
func FromColumns(cols []database.Column) Table {
	t := Table{
		Columns: []string{"column_name", "data_type", "character_maximum_length", "column_default", "is_nullable"},
		Rows:    make([][]string, len(cols)),
	}
	for i, c := range cols {
		maxLen := "NULL"
		if c.MaxLength != nil {
			maxLen = strconv.FormatInt(*c.MaxLength, 10)
		}
		def := "NULL"
		if c.Default != nil {
			def = *c.Default
		}
		nullable := "NO"
		if c.IsNullable {
			nullable = "YES"
		}
		t.Rows[i] = []string{c.Name, c.DataType, maxLen, def, nullable}
	}
	return t
}

// FromColumnTypes renders the type distribution of a table.
func FromColumnTypes(stats app.TableStats) Table {
	t := Table{Columns: []string{"type", "count"}}
	for _, name := range stats.TypeNames() {
		t.Rows = append(t.Rows, []string{name, strconv.Itoa(stats.ColumnTypes[name])})
	}
	return t
}
