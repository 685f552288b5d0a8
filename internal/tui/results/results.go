package results

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joacominatel/dbnav/internal/tui/theme"
)

const maxColWidth = 40

// Model renders handler output: a title, info lines, and an optional table
// with a movable cell cursor.
type Model struct {
	title   string
	info    []string
	table   *Table
	err     string
	width   int
	height  int
	scrollY int
	cursorY int
	cursorX int

	colWidths     []int
	statusMessage string
}

// New creates a new results model.
func New() Model {
	return Model{}
}

// SetSize updates the component dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// Show replaces the content. table may be nil for text-only output.
func (m *Model) Show(title string, info []string, table *Table) {
	m.title = title
	m.info = info
	m.table = table
	m.err = ""
	m.scrollY, m.cursorY, m.cursorX = 0, 0, 0
	m.statusMessage = ""
	m.calculateColumnWidths()
}

// ShowError replaces the content with an error message.
func (m *Model) ShowError(title, msg string) {
	m.Show(title, nil, nil)
	m.err = msg
}

// StatusMessage returns the result of the last copy action.
func (m Model) StatusMessage() string {
	return m.statusMessage
}

func (m *Model) calculateColumnWidths() {
	if m.table == nil || len(m.table.Columns) == 0 {
		m.colWidths = nil
		return
	}

	m.colWidths = make([]int, len(m.table.Columns))
	for i, col := range m.table.Columns {
		m.colWidths[i] = lipgloss.Width(col)
	}
	for _, row := range m.table.Rows {
		for i, cell := range row {
			if i < len(m.colWidths) {
				m.colWidths[i] = max(m.colWidths[i], lipgloss.Width(cell))
			}
		}
	}
	for i := range m.colWidths {
		m.colWidths[i] = min(max(m.colWidths[i], 1), maxColWidth)
	}
}

func (m Model) rowCount() int {
	if m.table == nil {
		return 0
	}
	return len(m.table.Rows)
}

func (m Model) visibleRows() int {
	// title, info, header, separator, footer
	v := m.height - len(m.info) - 5
	return max(v, 1)
}

// Init returns the initial command (none).
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles scrolling and copy keys.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		m.moveRow(-1)
	case "down", "j":
		m.moveRow(1)
	case "pgup":
		m.moveRow(-m.visibleRows())
	case "pgdown":
		m.moveRow(m.visibleRows())
	case "left", "h":
		if m.cursorX > 0 {
			m.cursorX--
		}
	case "right", "l":
		if m.table != nil && m.cursorX < len(m.table.Columns)-1 {
			m.cursorX++
		}
	case "y":
		m.doCopyCell()
	case "Y":
		m.doCopyRowJSON()
	case "c":
		m.doCopyRowCSV()
	case "t":
		m.doCopyRowText()
	}

	return m, nil
}

func (m *Model) moveRow(delta int) {
	n := m.rowCount()
	if n == 0 {
		return
	}
	m.cursorY = min(max(m.cursorY+delta, 0), n-1)

	visible := m.visibleRows()
	if m.cursorY < m.scrollY {
		m.scrollY = m.cursorY
	}
	if m.cursorY >= m.scrollY+visible {
		m.scrollY = m.cursorY - visible + 1
	}
}

// View renders the output.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(theme.StyleHeading.Render(m.title))

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(theme.StyleError.Render("Error: " + m.err))
		return b.String()
	}

	for _, line := range m.info {
		b.WriteString("\n")
		b.WriteString(theme.StyleItem.Render(line))
	}

	if m.table == nil {
		return b.String()
	}

	if len(m.table.Columns) == 0 {
		b.WriteString("\n")
		b.WriteString(theme.StyleSuccess.Render("Query executed successfully"))
		return b.String()
	}

	b.WriteString("\n")
	b.WriteString(m.renderRow(m.table.Columns, true, -1))
	b.WriteString("\n")
	b.WriteString(m.renderSeparator())

	if len(m.table.Rows) == 0 {
		b.WriteString("\n")
		b.WriteString(theme.StyleMuted.Render("  (0 rows)"))
		return b.String()
	}

	end := min(m.scrollY+m.visibleRows(), len(m.table.Rows))
	for i := m.scrollY; i < end; i++ {
		b.WriteString("\n")
		selected := -1
		if i == m.cursorY {
			selected = m.cursorX
		}
		b.WriteString(m.renderRow(m.table.Rows[i], false, selected))
	}

	footer := theme.StyleMuted.Render(
		"  " + plural(len(m.table.Rows), "row") + " • y: copy cell • Y: row JSON • c: row CSV • t: row text")
	if m.statusMessage != "" {
		footer = theme.StyleMuted.Render("  " + m.statusMessage)
	}
	b.WriteString("\n")
	b.WriteString(footer)

	return b.String()
}

func (m Model) renderRow(cells []string, isHeader bool, selectedCol int) string {
	parts := make([]string, len(cells))
	for i, cell := range cells {
		width := 10
		if i < len(m.colWidths) {
			width = m.colWidths[i]
		}
		display := fit(cell, width)

		switch {
		case isHeader:
			parts[i] = lipgloss.NewStyle().Bold(true).Foreground(theme.ColorPrimary).Render(display)
		case i == selectedCol:
			parts[i] = theme.StyleSelected.Render(display)
		default:
			parts[i] = display
		}
	}
	return "  " + strings.Join(parts, " │ ")
}

func (m Model) renderSeparator() string {
	parts := make([]string, len(m.colWidths))
	for i, w := range m.colWidths {
		parts[i] = strings.Repeat("─", w)
	}
	return "  " + lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(strings.Join(parts, "─┼─"))
}

// fit truncates or pads s to exactly width display cells.
func fit(s string, width int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if lipgloss.Width(s) > width {
		runes := []rune(s)
		for len(runes) > 0 && lipgloss.Width(string(runes)) >= width {
			runes = runes[:len(runes)-1]
		}
		s = string(runes) + "…"
	}
	if pad := width - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
