package postgres

import "github.com/jackc/pgx/v5"

// SQL queries for PostgreSQL metadata introspection.
const (
	queryListTables = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = $1
		ORDER BY table_name`

	queryGetColumns = `
		SELECT
			column_name,
			data_type,
			character_maximum_length,
			column_default,
			is_nullable,
			ordinal_position
		FROM information_schema.columns
		WHERE table_schema = $1
		  AND table_name = $2
		ORDER BY ordinal_position`
)

// Table names cannot be bound as parameters, so they are quoted as identifiers.

func queryTableData(schema, table string) string {
	return "SELECT * FROM " + quoteTable(schema, table) + " LIMIT $1 OFFSET $2"
}

func queryTableCount(schema, table string) string {
	return "SELECT COUNT(*) FROM " + quoteTable(schema, table)
}

func quoteTable(schema, table string) string {
	if schema == "" {
		return pgx.Identifier{table}.Sanitize()
	}
	return pgx.Identifier{schema, table}.Sanitize()
}
