package picker

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joacominatel/dbnav/internal/tui/theme"
)

// ChosenMsg is sent when the user presses enter on an item.
type ChosenMsg struct {
	ID    string
	Index int
	Value string
}

// CancelMsg is sent when the user backs out of the picker.
type CancelMsg struct {
	ID string
}

// Model is a vertical single-choice list.
type Model struct {
	id      string
	title   string
	items   []string
	cursor  int
	width   int
	height  int
	focused bool
}

// New creates a picker. id is echoed back in ChosenMsg and CancelMsg.
func New(id, title string, items []string) Model {
	return Model{
		id:      id,
		title:   title,
		items:   items,
		focused: true,
	}
}

// ID returns the picker id.
func (m Model) ID() string {
	return m.id
}

// SetItems replaces the items and keeps the cursor in range.
func (m *Model) SetItems(items []string) {
	m.items = items
	if m.cursor >= len(m.items) {
		m.cursor = max(0, len(m.items)-1)
	}
}

// Items returns the current items.
func (m Model) Items() []string {
	return m.items
}

// SetSize updates the component dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetFocused sets the focus state.
func (m *Model) SetFocused(f bool) {
	m.focused = f
}

// Selected returns the item under the cursor.
func (m Model) Selected() (int, string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return 0, "", false
	}
	return m.cursor, m.items[m.cursor], true
}

// Init returns the initial command (none).
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = max(0, len(m.items)-1)
	case "enter":
		idx, val, ok := m.Selected()
		if !ok {
			return m, nil
		}
		id := m.id
		return m, func() tea.Msg {
			return ChosenMsg{ID: id, Index: idx, Value: val}
		}
	case "esc":
		id := m.id
		return m, func() tea.Msg {
			return CancelMsg{ID: id}
		}
	}

	return m, nil
}

// View renders the picker.
func (m Model) View() string {
	var b strings.Builder
	if m.title != "" {
		b.WriteString(theme.StyleTitle.Render(m.title))
		b.WriteString("\n")
	}

	if len(m.items) == 0 {
		b.WriteString(theme.StyleMuted.Render("  (nothing to choose)"))
		return b.String()
	}

	visible := len(m.items)
	if m.height > 1 {
		visible = min(visible, m.height-1)
	}

	// Scroll offset to keep cursor visible
	offset := 0
	if m.cursor >= visible {
		offset = m.cursor - visible + 1
	}

	for i := offset; i < len(m.items) && i < offset+visible; i++ {
		b.WriteString(m.renderItem(m.items[i], i == m.cursor))
		if i < offset+visible-1 && i < len(m.items)-1 {
			b.WriteString("\n")
		}
	}

	if rest := len(m.items) - (offset + visible); rest > 0 {
		b.WriteString("\n")
		b.WriteString(theme.StyleMuted.Render("  ↓ more"))
	}

	return b.String()
}

func (m Model) renderItem(item string, selected bool) string {
	line := "  " + item
	if selected {
		line = "> " + item
	}

	if m.width > 4 && lipgloss.Width(line) > m.width {
		runes := []rune(line)
		for len(runes) > 0 && lipgloss.Width(string(runes))+1 > m.width {
			runes = runes[:len(runes)-1]
		}
		line = string(runes) + "…"
	}

	if selected && m.focused {
		return theme.StyleSelected.Render(line)
	}
	return line
}
