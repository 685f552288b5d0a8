package connform

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joacominatel/dbnav/internal/config"
	"github.com/joacominatel/dbnav/internal/tui/theme"
)

// ErrCancelled is reported when the user aborts the form.
var ErrCancelled = errors.New("connection prompt cancelled")

// SubmitMsg carries the collected parameters. Err is set when the answers
// cannot be turned into connection parameters.
type SubmitMsg struct {
	Conn config.Connection
	Err  error
}

// CancelMsg is sent when the user aborts the form.
type CancelMsg struct{}

// field indexes, in prompt order
const (
	fieldHost = iota
	fieldPort
	fieldUser
	fieldPassword
	fieldDatabase
	fieldCount
)

var labels = [fieldCount]string{
	"Enter database host:",
	"Enter database port:",
	"Enter database user:",
	"Enter database password:",
	"Enter database name:",
}

// Model is the credential prompt form.
type Model struct {
	inputs   []textinput.Model
	focused  int
	defaults config.Connection
	keyring  bool
}

// New creates the form. Empty answers fall back to the defaults' host, port
// and username. With useKeyring an empty password means "look it up".
func New(defaults config.Connection, useKeyring bool) Model {
	inputs := make([]textinput.Model, fieldCount)

	inputs[fieldHost] = textinput.New()
	inputs[fieldHost].Placeholder = defaults.Host
	inputs[fieldHost].CharLimit = 256

	inputs[fieldPort] = textinput.New()
	if defaults.Port > 0 {
		inputs[fieldPort].Placeholder = strconv.Itoa(defaults.Port)
	}
	inputs[fieldPort].CharLimit = 5

	inputs[fieldUser] = textinput.New()
	inputs[fieldUser].Placeholder = defaults.Username
	inputs[fieldUser].CharLimit = 128

	inputs[fieldPassword] = textinput.New()
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldPassword].EchoCharacter = '*'
	inputs[fieldPassword].CharLimit = 256
	if useKeyring {
		inputs[fieldPassword].Placeholder = "(keyring)"
	}

	inputs[fieldDatabase] = textinput.New()
	inputs[fieldDatabase].Placeholder = defaults.Database
	inputs[fieldDatabase].CharLimit = 128

	inputs[fieldHost].Focus()

	return Model{
		inputs:   inputs,
		focused:  fieldHost,
		defaults: defaults,
		keyring:  useKeyring,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key input for the focused field.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			return m, func() tea.Msg { return CancelMsg{} }

		case "tab", "down":
			return m, m.focus(min(m.focused+1, fieldCount-1))

		case "shift+tab", "up":
			return m, m.focus(max(m.focused-1, 0))

		case "enter":
			if m.focused == fieldCount-1 {
				conn, err := m.Connection()
				return m, func() tea.Msg { return SubmitMsg{Conn: conn, Err: err} }
			}
			return m, m.focus(m.focused + 1)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focused], cmd = m.inputs[m.focused].Update(msg)
	return m, cmd
}

func (m *Model) focus(i int) tea.Cmd {
	m.focused = i
	var cmd tea.Cmd
	for j := range m.inputs {
		if j == i {
			cmd = m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	return cmd
}

// Connection builds connection parameters from the answers.
func (m Model) Connection() (config.Connection, error) {
	value := func(i int) string {
		return strings.TrimSpace(m.inputs[i].Value())
	}

	conn := config.Connection{
		Host:     orDefault(value(fieldHost), m.defaults.Host),
		Username: orDefault(value(fieldUser), m.defaults.Username),
		Password: m.inputs[fieldPassword].Value(),
		Database: orDefault(value(fieldDatabase), m.defaults.Database),
		SSLMode:  m.defaults.SSLMode,
	}

	portStr := value(fieldPort)
	if portStr == "" && m.defaults.Port > 0 {
		portStr = strconv.Itoa(m.defaults.Port)
	}
	port, err := config.ParsePort(portStr)
	if err != nil {
		return conn, fmt.Errorf("port: %w", err)
	}
	conn.Port = port

	return conn, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// View renders the form.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(theme.StyleTitle.Render("Welcome to Database Navigator!"))
	b.WriteString("\n\n")

	for i, in := range m.inputs {
		cursor := "  "
		if i == m.focused {
			cursor = theme.StyleSelected.Render("? ")
		}
		b.WriteString(cursor + labels[i] + " " + in.View() + "\n")
	}

	b.WriteString("\n")
	hint := "Enter: next field • Enter on last field: connect • Esc: cancel"
	if m.keyring {
		hint += " • empty password uses the keyring"
	}
	b.WriteString(theme.StyleMuted.Render(hint))

	return b.String()
}
