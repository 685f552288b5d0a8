package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joacominatel/dbnav/internal/tui/theme"
)

// SubmitMsg is sent when the user runs the query.
type SubmitMsg struct {
	Query string
}

// CancelMsg is sent when the user leaves the editor without running anything.
type CancelMsg struct{}

// Model is the custom query prompt.
type Model struct {
	textarea textarea.Model
	width    int
	height   int

	tableNames  []string
	completions []string // candidates while cycling with tab
	compIndex   int
}

// New creates a new editor model.
func New() Model {
	ta := textarea.New()
	ta.Placeholder = "Enter your SQL query..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0 // unlimited
	ta.Prompt = "│ "
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle()
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(theme.ColorMuted)
	ta.FocusedStyle.Prompt = lipgloss.NewStyle().Foreground(theme.ColorPrimary)
	ta.SetHeight(6)
	ta.Focus()

	return Model{textarea: ta}
}

// SetSize updates the component dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.textarea.SetWidth(max(w-2, 10))
	m.textarea.SetHeight(max(h-3, 3))
}

// Value returns the current editor content.
func (m Model) Value() string {
	return m.textarea.Value()
}

// SetQuery replaces the editor content.
func (m *Model) SetQuery(query string) {
	m.textarea.SetValue(query)
}

// SetTableNames sets the names offered by tab completion.
func (m *Model) SetTableNames(names []string) {
	m.tableNames = names
}

// Reset empties the editor.
func (m *Model) Reset() {
	m.textarea.Reset()
	m.completions = nil
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles messages for the editor.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+e", "f5":
			query := strings.TrimSpace(m.textarea.Value())
			if query == "" {
				return m, nil
			}
			m.completions = nil
			return m, func() tea.Msg { return SubmitMsg{Query: query} }

		case "esc":
			if m.completions != nil {
				m.completions = nil
				return m, nil
			}
			return m, func() tea.Msg { return CancelMsg{} }

		case "ctrl+k":
			m.Reset()
			return m, nil

		case "ctrl+l":
			m.textarea.SetValue(FormatKeywords(m.textarea.Value()))
			return m, nil

		case "tab":
			if m.complete() {
				return m, nil
			}
		}

		if key.String() != "tab" {
			m.completions = nil
		}
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// complete replaces the trailing word with the next table name candidate.
func (m *Model) complete() bool {
	val := m.textarea.Value()
	if m.completions == nil {
		m.completions = CompleteTable(val, m.tableNames)
		m.compIndex = 0
		if len(m.completions) == 0 {
			m.completions = nil
			return false
		}
	} else {
		m.compIndex = (m.compIndex + 1) % len(m.completions)
	}

	base := strings.TrimSuffix(val, lastWord(val))
	m.textarea.SetValue(base + m.completions[m.compIndex])
	return true
}

// View renders the editor.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(theme.StyleTitle.Render("Enter your SQL query:"))
	b.WriteString("\n")
	b.WriteString(m.textarea.View())

	if len(m.completions) > 1 {
		hint := make([]string, len(m.completions))
		for i, c := range m.completions {
			if i == m.compIndex {
				hint[i] = theme.StyleSelected.Render(c)
			} else {
				hint[i] = theme.StyleMuted.Render(c)
			}
		}
		b.WriteString("\n")
		b.WriteString(theme.StyleMuted.Render("Tab: ") + strings.Join(hint, " │ "))
	}

	b.WriteString("\n")
	b.WriteString(theme.StyleMuted.Render("Ctrl+E/F5: run • Tab: complete table • Ctrl+L: format • Ctrl+K: clear • Esc: back"))
	return b.String()
}
