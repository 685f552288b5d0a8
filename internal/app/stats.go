package app

import (
	"context"
	"sort"

	"github.com/joacominatel/dbnav/internal/database"
)

// TableStats summarizes a table. ColumnCount always equals the sum of
// ColumnTypes.
type TableStats struct {
	Table        string
	TotalRecords int64
	ColumnCount  int
	ColumnTypes  map[string]int
}

// TypeNames returns the keys of ColumnTypes sorted by name.
func (t TableStats) TypeNames() []string {
	names := make([]string, 0, len(t.ColumnTypes))
	for name := range t.ColumnTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TallyColumnTypes counts how many columns share each data type.
func TallyColumnTypes(columns []database.Column) map[string]int {
	types := make(map[string]int)
	for _, c := range columns {
		types[c.DataType]++
	}
	return types
}

// TableStatistics counts the rows of table and tallies its column types.
func (s *Service) TableStatistics(ctx context.Context, table string) Result[TableStats] {
	count := s.CountTable(ctx, table)
	if !count.Success {
		return Result[TableStats]{Data: []TableStats{}, Error: count.Error, Kind: count.Kind}
	}
	columns := s.DescribeTable(ctx, table)
	if !columns.Success {
		return Result[TableStats]{Data: []TableStats{}, Error: columns.Error, Kind: columns.Kind}
	}

	total, _ := count.First()
	return ok([]TableStats{{
		Table:        table,
		TotalRecords: total,
		ColumnCount:  len(columns.Data),
		ColumnTypes:  TallyColumnTypes(columns.Data),
	}})
}
