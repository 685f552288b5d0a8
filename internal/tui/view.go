package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/joacominatel/dbnav/internal/tui/theme"
)

func hintsFor(md mode) string {
	switch md {
	case modeConnect:
		return "Enter: next │ Esc: cancel"
	case modeMenu:
		return "↑/↓: navigate │ Enter: select │ Ctrl+C: exit"
	case modePickTable:
		return "↑/↓: navigate │ Enter: select │ Esc: back"
	case modeQuery:
		return "Ctrl+E: run │ Esc: back"
	case modeOutput:
		return "Enter: continue │ y/Y/c/t: copy"
	case modeBrowse:
		return "↑/↓ Enter: navigate pages │ ←/→ y: copy cell"
	default:
		return ""
	}
}

// View renders the entire application.
func (m Model) View() string {
	var body string
	switch m.mode {
	case modeConnect:
		return m.viewConnect()
	case modeMenu:
		body = m.viewMenu()
	case modePickTable:
		body = m.tablePick.View()
	case modeQuery:
		body = m.editor.View()
	case modeOutput:
		body = m.results.View() + "\n\n" + theme.StyleMuted.Render("Press Enter to continue...")
	case modeBrowse:
		body = m.results.View() + "\n\n" + m.nav.View()
	}

	if m.notice != "" {
		body = theme.StyleError.Render(m.notice) + "\n\n" + body
	}

	height := max(m.height-1, 0)
	content := lipgloss.NewStyle().Padding(0, 1).Height(height).MaxHeight(height).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, content, m.statusbar.View())
}

func (m Model) viewConnect() string {
	content := m.form.View()
	if m.statusbar.Busy() {
		msg := m.statusbar.Message()
		if msg == "" {
			msg = "Connecting..."
		}
		content = theme.StyleTitle.Render("Welcome to Database Navigator!") + "\n\n" + msg
	}

	placed := lipgloss.Place(m.width, max(m.height-1, 0),
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return lipgloss.JoinVertical(lipgloss.Left, placed, m.statusbar.View())
}

// maxListedTables caps the table list above the menu so the menu stays on
// screen.
func (m Model) maxListedTables() int {
	if m.height == 0 {
		return 20
	}
	// status bar, heading, blank lines, menu title and items
	return max(m.height-len(MenuActions)-6, 3)
}

func (m Model) viewMenu() string {
	var b strings.Builder
	b.WriteString(theme.StyleHeading.Render("Available tables:"))
	b.WriteString("\n")

	switch {
	case !m.tables.Success:
		b.WriteString(theme.StyleError.Render("Error: " + m.tables.Error))
		b.WriteString("\n")
	case len(m.tables.Data) == 0:
		b.WriteString(theme.StyleMuted.Render("(no tables)"))
		b.WriteString("\n")
	default:
		limit := m.maxListedTables()
		for i, name := range m.tables.Data {
			if i == limit {
				b.WriteString(theme.StyleMuted.Render(fmt.Sprintf("... and %d more", len(m.tables.Data)-limit)))
				b.WriteString("\n")
				break
			}
			b.WriteString(theme.StyleItem.Render(fmt.Sprintf("%d. %s", i+1, name)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.menu.View())
	return b.String()
}
