package statusbar

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joacominatel/dbnav/internal/tui/theme"
)

// Model is the status bar component.
type Model struct {
	width     int
	connected bool
	connName  string
	hints     string
	message   string
	busy      bool
	spinner   spinner.Model
}

// New creates a new status bar model.
func New() Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.ColorPrimary)
	return Model{spinner: s}
}

// SetWidth updates the component width.
func (m *Model) SetWidth(w int) {
	m.width = w
}

// SetConnected updates the connection status display.
func (m *Model) SetConnected(connected bool, name string) {
	m.connected = connected
	m.connName = name
}

// SetHints sets the key hints for the current screen.
func (m *Model) SetHints(hints string) {
	m.hints = hints
}

// SetMessage sets a temporary status message, shown instead of the hints.
func (m *Model) SetMessage(msg string) {
	m.message = msg
}

// Message returns the current status message.
func (m Model) Message() string {
	return m.message
}

// SetBusy toggles the activity spinner. The returned command starts it.
func (m *Model) SetBusy(busy bool) tea.Cmd {
	m.busy = busy
	if busy {
		return m.spinner.Tick
	}
	return nil
}

// Busy reports whether an operation is in flight.
func (m Model) Busy() bool {
	return m.busy
}

// Init returns the initial command (none).
func (m Model) Init() tea.Cmd {
	return nil
}

// Update advances the spinner while busy.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); !ok || !m.busy {
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// View renders the status bar.
func (m Model) View() string {
	style := theme.StyleStatusBar.Width(m.width)

	var left string
	if m.connected {
		left = lipgloss.NewStyle().
			Foreground(theme.ColorSuccess).
			Render("●") + " " + m.connName
	} else {
		left = lipgloss.NewStyle().
			Foreground(theme.ColorError).
			Render("●") + " disconnected"
	}
	if m.busy {
		left = m.spinner.View() + " " + left
	}

	right := m.hints
	if m.message != "" {
		right = m.message
	}

	padding := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 4 // borders + spacing
	if padding < 1 {
		padding = 1
	}

	return style.Render(left + strings.Repeat(" ", padding) + right)
}
