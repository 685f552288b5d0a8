package editor

import (
	"strings"
	"unicode"
)

var sqlKeywords = map[string]bool{
	"select": true, "from": true, "where": true, "and": true, "or": true,
	"insert": true, "into": true, "update": true, "delete": true,
	"create": true, "drop": true, "alter": true, "table": true,
	"index": true, "join": true, "inner": true, "outer": true,
	"left": true, "right": true, "cross": true, "on": true,
	"not": true, "in": true, "is": true, "null": true, "like": true,
	"order": true, "by": true, "group": true, "having": true,
	"limit": true, "offset": true, "as": true, "distinct": true,
	"count": true, "sum": true, "avg": true, "min": true, "max": true,
	"between": true, "exists": true, "case": true, "when": true,
	"then": true, "else": true, "end": true, "values": true,
	"set": true, "begin": true, "commit": true, "rollback": true,
	"union": true, "all": true, "asc": true, "desc": true,
	"primary": true, "key": true, "foreign": true, "references": true,
	"cascade": true, "default": true, "true": true, "false": true,
	"ilike": true, "returning": true, "truncate": true, "with": true,
}

// FormatKeywords uppercases SQL keywords outside of quoted strings and
// identifiers.
func FormatKeywords(sql string) string {
	var out, word strings.Builder
	flush := func() {
		w := word.String()
		if sqlKeywords[strings.ToLower(w)] {
			w = strings.ToUpper(w)
		}
		out.WriteString(w)
		word.Reset()
	}

	var quote rune
	for _, ch := range sql {
		switch {
		case quote != 0:
			out.WriteRune(ch)
			if ch == quote {
				quote = 0
			}
		case ch == '\'' || ch == '"':
			flush()
			quote = ch
			out.WriteRune(ch)
		case unicode.IsLetter(ch) || ch == '_' || unicode.IsDigit(ch) && word.Len() > 0:
			word.WriteRune(ch)
		default:
			flush()
			out.WriteRune(ch)
		}
	}
	flush()
	return out.String()
}

// CompleteTable returns the table names that extend the last word of sql,
// but only where a table name can appear.
func CompleteTable(sql string, tables []string) []string {
	partial := lastWord(sql)
	if partial == "" || len(tables) == 0 {
		return nil
	}

	upper := strings.ToUpper(sql)
	if !strings.Contains(upper, "FROM") &&
		!strings.Contains(upper, "JOIN") &&
		!strings.Contains(upper, "TABLE") &&
		!strings.Contains(upper, "INTO") &&
		!strings.Contains(upper, "UPDATE") {
		return nil
	}

	lower := strings.ToLower(partial)
	var matches []string
	for _, name := range tables {
		if strings.HasPrefix(strings.ToLower(name), lower) {
			matches = append(matches, name)
		}
	}
	return matches
}

// lastWord returns the trailing identifier-like token of s.
func lastWord(s string) string {
	s = strings.TrimRight(s, " \t\n\r")
	i := len(s)
	for i > 0 && isIdentChar(s[i-1]) {
		i--
	}
	return s[i:]
}

func isIdentChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') || c == '_' || c == '.'
}
