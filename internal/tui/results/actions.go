package results

import (
	"encoding/csv"
	"encoding/json"
	"strings"

	"github.com/atotto/clipboard"
)

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

func (m Model) selectedRow() ([]string, bool) {
	if m.table == nil || m.cursorY < 0 || m.cursorY >= len(m.table.Rows) {
		return nil, false
	}
	return m.table.Rows[m.cursorY], true
}

func (m Model) selectedCell() string {
	row, ok := m.selectedRow()
	if !ok || m.cursorX < 0 || m.cursorX >= len(row) {
		return ""
	}
	return row[m.cursorX]
}

func (m *Model) copy(text, status string) {
	if err := writeClipboard(text); err != nil {
		m.statusMessage = "Copy failed: " + err.Error()
		return
	}
	m.statusMessage = status
}

func (m *Model) doCopyCell() {
	val := m.selectedCell()
	if val == "" {
		m.statusMessage = "Nothing to copy"
		return
	}
	m.copy(val, "Copied: "+truncateStatus(val, 40))
}

func (m *Model) doCopyRowJSON() {
	row, ok := m.selectedRow()
	if !ok {
		m.statusMessage = "No row to copy"
		return
	}
	m.copy(rowToJSON(m.table.Columns, row), "Copied row as JSON")
}

func (m *Model) doCopyRowCSV() {
	row, ok := m.selectedRow()
	if !ok {
		m.statusMessage = "No row to copy"
		return
	}
	m.copy(rowToCSV(m.table.Columns, row), "Copied row as CSV")
}

func (m *Model) doCopyRowText() {
	row, ok := m.selectedRow()
	if !ok {
		m.statusMessage = "No row to copy"
		return
	}
	m.copy(strings.Join(row, "\t"), "Copied row as text")
}

func rowToCSV(columns, row []string) string {
	var b strings.Builder
	w := csv.NewWriter(&b)
	_ = w.Write(columns)
	_ = w.Write(row)
	w.Flush()
	return b.String()
}

// rowToJSON keeps column order, which map marshaling would not.
func rowToJSON(columns, row []string) string {
	var b strings.Builder
	b.WriteString("{")
	for i, col := range columns {
		if i > 0 {
			b.WriteString(", ")
		}
		key, _ := json.Marshal(col)
		b.Write(key)
		b.WriteString(": ")
		if i >= len(row) || row[i] == "NULL" {
			b.WriteString("null")
			continue
		}
		val, _ := json.Marshal(row[i])
		b.Write(val)
	}
	b.WriteString("}")
	return b.String()
}

func truncateStatus(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
