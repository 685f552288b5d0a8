package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joacominatel/dbnav/internal/app"
	"github.com/joacominatel/dbnav/internal/config"
	"github.com/joacominatel/dbnav/internal/credentials"
	"github.com/joacominatel/dbnav/internal/database"
	"github.com/joacominatel/dbnav/internal/tui/connform"
	"github.com/joacominatel/dbnav/internal/tui/editor"
	"github.com/joacominatel/dbnav/internal/tui/picker"
	"github.com/joacominatel/dbnav/internal/tui/results"
	"github.com/joacominatel/dbnav/internal/tui/statusbar"
)

// Menu actions, in display order.
const (
	ActionShowTables = "Show all tables"
	ActionDescribe   = "Describe a table"
	ActionBrowse     = "Browse table data"
	ActionQuery      = "Execute custom query"
	ActionStatistics = "Show table statistics"
	ActionExit       = "Disconnect and exit"
)

// MenuActions is the fixed main menu.
var MenuActions = []string{
	ActionShowTables,
	ActionDescribe,
	ActionBrowse,
	ActionQuery,
	ActionStatistics,
	ActionExit,
}

const connectTimeout = 10 * time.Second

// picker ids
const (
	pickMenu  = "menu"
	pickTable = "table"
	pickNav   = "nav"
)

// Service is what the UI needs from the query service.
type Service interface {
	Connect(ctx context.Context, conn config.Connection) error
	ConnectDSN(ctx context.Context, dsn string) error
	Disconnect() error
	DatabaseName() string
	ListTables(ctx context.Context) app.Result[string]
	DescribeTable(ctx context.Context, table string) app.Result[database.Column]
	GetTableData(ctx context.Context, table string, limit, offset int) app.Result[database.Record]
	GetTableCount(ctx context.Context, table string) int64
	ExecuteQuery(ctx context.Context, query string, params ...any) app.Result[database.Record]
	TableStatistics(ctx context.Context, table string) app.Result[app.TableStats]
}

var _ Service = (*app.Service)(nil)

// mode tracks the current screen.
type mode int

const (
	modeConnect mode = iota
	modeMenu
	modePickTable
	modeQuery
	modeOutput
	modeBrowse
)

func (m mode) String() string {
	switch m {
	case modeConnect:
		return "connect"
	case modeMenu:
		return "menu"
	case modePickTable:
		return "pick-table"
	case modeQuery:
		return "query"
	case modeOutput:
		return "output"
	case modeBrowse:
		return "browse"
	default:
		return "unknown"
	}
}

// Custom messages for async operations.
type (
	connectedMsg struct {
		err     error
		warning string
	}

	disconnectedMsg struct{}

	tablesLoadedMsg struct {
		res app.Result[string]
	}

	describedMsg struct {
		table string
		res   app.Result[database.Column]
	}

	statsMsg struct {
		table string
		res   app.Result[app.TableStats]
	}

	queryDoneMsg struct {
		res app.Result[database.Record]
	}

	browseCountedMsg struct {
		table string
		total int64
	}

	pageLoadedMsg struct {
		res app.Result[database.Record]
	}
)

// Options configures the top-level model.
type Options struct {
	Defaults    config.Connection
	DSN         string // connect directly, skipping the form
	PageSize    int
	UseKeyring  bool
	Credentials credentials.Store
	Logger      *slog.Logger
}

// Model is the top-level bubbletea model orchestrating all components.
type Model struct {
	service Service
	opts    Options
	logger  *slog.Logger

	form      connform.Model
	menu      picker.Model
	tablePick picker.Model
	nav       picker.Model
	editor    editor.Model
	results   results.Model
	statusbar statusbar.Model

	mode   mode
	width  int
	height int

	tables    app.Result[string]
	action    string // menu action waiting for a table
	browsing  string
	page      app.Pagination
	notice    string // shown above the output, e.g. a lost session
	connected bool
	exiting   bool // disconnect requested; sent once nothing is in flight
	err       error
}

// NewModel creates the top-level model.
func NewModel(service Service, opts Options) Model {
	if opts.Credentials == nil {
		opts.Credentials = credentials.Disabled{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.PageSize <= 0 {
		opts.PageSize = config.DefaultPageSize
	}

	m := Model{
		service:   service,
		opts:      opts,
		logger:    opts.Logger,
		form:      connform.New(opts.Defaults, opts.UseKeyring),
		menu:      picker.New(pickMenu, "What would you like to do?", MenuActions),
		tablePick: picker.New(pickTable, "Select a table:", nil),
		nav:       picker.New(pickNav, "Navigation:", nil),
		editor:    editor.New(),
		results:   results.New(),
		statusbar: statusbar.New(),
		mode:      modeConnect,
	}
	m.statusbar.SetHints(hintsFor(modeConnect))
	if opts.DSN != "" {
		m.statusbar.SetBusy(true)
	}
	return m
}

// Err returns the startup-fatal error that ended the program, if any.
func (m Model) Err() error {
	return m.err
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	if m.opts.DSN != "" {
		return tea.Batch(m.statusbar.SetBusy(true), m.connectDSNCmd(m.opts.DSN))
	}
	return m.form.Init()
}

// Update handles all messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.exiting {
		switch msg.(type) {
		case tablesLoadedMsg, describedMsg, statsMsg, queryDoneMsg, browseCountedMsg, pageLoadedMsg:
			m.logger.Debug("result dropped on exit", "msg", fmt.Sprintf("%T", msg))
			return m, m.disconnectCmd()
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m.interrupt()
		}
		if m.statusbar.Busy() {
			return m, nil
		}
		if m.connected {
			m.statusbar.SetMessage("")
		}
		return m.updateKeys(msg)

	case connform.SubmitMsg:
		if msg.Err != nil {
			return m.fatal(msg.Err)
		}
		m.statusbar.SetMessage("Connecting to " + msg.Conn.DisplayString() + "...")
		next := m.start(m.connectCmd(msg.Conn))
		return m, next

	case connform.CancelMsg:
		return m.fatal(connform.ErrCancelled)

	case connectedMsg:
		if m.exiting {
			return m.connectedAfterInterrupt(msg)
		}
		m.statusbar.SetBusy(false)
		if msg.err != nil {
			return m.fatal(msg.err)
		}
		m.connected = true
		m.statusbar.SetConnected(true, m.service.DatabaseName())
		m.statusbar.SetMessage(msg.warning)
		return m.showMenu()

	case disconnectedMsg:
		m.connected = false
		return m, tea.Quit

	case tablesLoadedMsg:
		m.statusbar.SetBusy(false)
		m.tables = msg.res
		m.noteLost(msg.res.Lost())
		m.editor.SetTableNames(msg.res.Data)
		m.setMode(modeMenu)
		return m, nil

	case describedMsg:
		m.statusbar.SetBusy(false)
		title := fmt.Sprintf("Structure of table '%s':", msg.table)
		if !msg.res.Success {
			m.showFailure(title, msg.res.Error, msg.res.Lost())
			return m, nil
		}
		tbl := results.FromColumns(msg.res.Data)
		m.results.Show(title, nil, &tbl)
		m.setMode(modeOutput)
		return m, nil

	case statsMsg:
		m.statusbar.SetBusy(false)
		title := fmt.Sprintf("Statistics for table '%s':", msg.table)
		stats, ok := msg.res.First()
		if !ok {
			m.showFailure(title, msg.res.Error, msg.res.Lost())
			return m, nil
		}
		info := []string{
			fmt.Sprintf("Total records: %d", stats.TotalRecords),
			fmt.Sprintf("Number of columns: %d", stats.ColumnCount),
			"",
			"Column type distribution:",
		}
		tbl := results.FromColumnTypes(stats)
		m.results.Show(title, info, &tbl)
		m.setMode(modeOutput)
		return m, nil

	case queryDoneMsg:
		m.statusbar.SetBusy(false)
		if !msg.res.Success {
			m.showFailure("Query results:", msg.res.Error, msg.res.Lost())
			return m, nil
		}
		tbl := results.FromRecords(msg.res.Columns, msg.res.Data)
		m.results.Show("Query results:", nil, &tbl)
		m.setMode(modeOutput)
		return m, nil

	case browseCountedMsg:
		m.browsing = msg.table
		m.page = app.NewPagination(msg.total, m.opts.PageSize)
		return m, m.loadPageCmd()

	case pageLoadedMsg:
		m.statusbar.SetBusy(false)
		title := fmt.Sprintf("Browsing '%s' (Page %d/%d):", m.browsing, m.page.Page+1, max(m.page.TotalPages(), 1))
		if !msg.res.Success {
			m.results.ShowError(title, msg.res.Error)
			m.noteLost(msg.res.Lost())
		} else {
			tbl := results.FromRecords(msg.res.Columns, msg.res.Data)
			m.results.Show(title, nil, &tbl)
		}
		m.nav = picker.New(pickNav, "Navigation:", m.page.Options())
		m.setMode(modeBrowse)
		return m, nil

	case picker.ChosenMsg:
		return m.chosen(msg)

	case picker.CancelMsg:
		if msg.ID == pickMenu {
			return m, nil
		}
		return m.showMenu()

	case editor.SubmitMsg:
		m.logger.Debug("execute query", "query", msg.Query)
		next := m.start(m.executeCmd(msg.Query))
		return m, next

	case editor.CancelMsg:
		return m.showMenu()
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.statusbar, cmd = m.statusbar.Update(msg)
	cmds = append(cmds, cmd)
	if m.mode == modeConnect {
		m.form, cmd = m.form.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.mode == modeQuery {
		m.editor, cmd = m.editor.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.mode {
	case modeConnect:
		m.form, cmd = m.form.Update(msg)
	case modeMenu:
		m.menu, cmd = m.menu.Update(msg)
	case modePickTable:
		m.tablePick, cmd = m.tablePick.Update(msg)
	case modeQuery:
		m.editor, cmd = m.editor.Update(msg)
	case modeOutput:
		if msg.String() == "enter" || msg.String() == "esc" {
			return m.showMenu()
		}
		m.results, cmd = m.results.Update(msg)
	case modeBrowse:
		switch msg.String() {
		case "left", "right", "h", "l", "pgup", "pgdown", "y", "Y", "c", "t":
			m.results, cmd = m.results.Update(msg)
		default:
			m.nav, cmd = m.nav.Update(msg)
		}
	}
	return m, cmd
}

func (m Model) chosen(msg picker.ChosenMsg) (tea.Model, tea.Cmd) {
	switch msg.ID {
	case pickMenu:
		m.logger.Debug("menu action", "action", msg.Value)
		switch msg.Value {
		case ActionShowTables:
			return m.showMenu()
		case ActionQuery:
			m.editor.Reset()
			m.setMode(modeQuery)
			return m, m.editor.Init()
		case ActionExit:
			m.exiting = true
			m.statusbar.SetMessage("Disconnecting...")
			next := m.start(m.disconnectCmd())
			return m, next
		}
		if len(m.tables.Data) == 0 {
			m.results.ShowError(msg.Value, "no tables to choose from")
			m.setMode(modeOutput)
			return m, nil
		}
		m.action = msg.Value
		m.tablePick = picker.New(pickTable, "Select a table:", m.tables.Data)
		m.setMode(modePickTable)
		return m, nil

	case pickTable:
		var cmd tea.Cmd
		switch m.action {
		case ActionDescribe:
			cmd = m.describeCmd(msg.Value)
		case ActionBrowse:
			cmd = m.browseCmd(msg.Value)
		case ActionStatistics:
			cmd = m.statsCmd(msg.Value)
		default:
			return m.showMenu()
		}
		next := m.start(cmd)
		return m, next

	case pickNav:
		switch msg.Value {
		case app.OptionPrevPage:
			m.page = m.page.Prev()
		case app.OptionNextPage:
			m.page = m.page.Next()
		default:
			return m.showMenu()
		}
		next := m.start(m.loadPageCmd())
		return m, next
	}
	return m, nil
}

// start marks an operation in flight. Input is ignored until its result
// arrives.
func (m *Model) start(cmd tea.Cmd) tea.Cmd {
	return tea.Batch(m.statusbar.SetBusy(true), cmd)
}

// showMenu refreshes the table list and returns to the main menu.
func (m Model) showMenu() (tea.Model, tea.Cmd) {
	m.action = ""
	m.browsing = ""
	next := m.start(m.loadTablesCmd())
	return m, next
}

// interrupt handles ctrl+c. Before a session exists it is fatal; afterwards
// it behaves like "Disconnect and exit". While an operation is in flight the
// disconnect waits for its result.
func (m Model) interrupt() (tea.Model, tea.Cmd) {
	if m.exiting {
		return m, nil
	}
	busy := m.statusbar.Busy()
	if !m.connected && !busy {
		return m.fatal(connform.ErrCancelled)
	}
	m.exiting = true
	m.statusbar.SetMessage("Disconnecting...")
	if busy {
		return m, nil
	}
	next := m.start(m.disconnectCmd())
	return m, next
}

// connectedAfterInterrupt finishes a connect attempt the user already
// aborted with ctrl+c.
func (m Model) connectedAfterInterrupt(msg connectedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.logger.Warn("connect after interrupt", "error", msg.err)
		return m.fatal(connform.ErrCancelled)
	}
	m.err = connform.ErrCancelled
	return m, m.disconnectCmd()
}

func (m Model) fatal(err error) (tea.Model, tea.Cmd) {
	m.logger.Error("startup failed", "error", err)
	m.err = err
	return m, tea.Quit
}

func (m *Model) showFailure(title, msg string, lost bool) {
	m.results.ShowError(title, msg)
	m.noteLost(lost)
	m.setMode(modeOutput)
}

func (m *Model) noteLost(lost bool) {
	if lost {
		m.notice = "The database connection was lost. Choose \"Disconnect and exit\" and restart dbnav."
	}
}

func (m *Model) setMode(md mode) {
	if md != m.mode {
		m.logger.Debug("screen", "from", m.mode.String(), "to", md.String())
	}
	m.mode = md
	m.statusbar.SetHints(hintsFor(md))
	m.layout()
}

func (m *Model) layout() {
	if m.width == 0 || m.height == 0 {
		return
	}

	content := max(m.height-1, 3)
	w := m.width - 2

	m.menu.SetSize(w, len(MenuActions)+1)
	m.tablePick.SetSize(w, content-1)
	m.editor.SetSize(w, content-1)
	m.nav.SetSize(w, 4)
	if m.mode == modeBrowse {
		m.results.SetSize(w, content-5)
	} else {
		m.results.SetSize(w, content-2)
	}
	m.statusbar.SetWidth(m.width)
}

// Async commands

func (m Model) connectCmd(conn config.Connection) tea.Cmd {
	service, store, useKeyring, logger := m.service, m.opts.Credentials, m.opts.UseKeyring, m.logger
	return func() tea.Msg {
		fromKeyring := false
		if useKeyring && conn.Password == "" {
			pw, found, err := store.Password(conn.KeyringAccount())
			if err != nil {
				logger.Warn("keyring lookup", "error", err)
			}
			if found {
				conn.Password = pw
				fromKeyring = true
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		if err := service.Connect(ctx, conn); err != nil {
			if fromKeyring && database.KindOf(err) == database.KindAuth {
				if err := store.Forget(conn.KeyringAccount()); err != nil {
					logger.Warn("keyring forget", "error", err)
				}
			}
			return connectedMsg{err: err}
		}

		var warning string
		if useKeyring && !fromKeyring && conn.Password != "" {
			if err := store.SavePassword(conn.KeyringAccount(), conn.Password); err != nil {
				logger.Warn("keyring save", "error", err)
				warning = "Warning: could not save password to keyring"
			}
		}
		return connectedMsg{warning: warning}
	}
}

func (m Model) connectDSNCmd(dsn string) tea.Cmd {
	service := m.service
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()
		return connectedMsg{err: service.ConnectDSN(ctx, dsn)}
	}
}

func (m Model) disconnectCmd() tea.Cmd {
	service, logger := m.service, m.logger
	return func() tea.Msg {
		if err := service.Disconnect(); err != nil {
			logger.Warn("disconnect", "error", err)
		}
		return disconnectedMsg{}
	}
}

func (m Model) loadTablesCmd() tea.Cmd {
	service := m.service
	return func() tea.Msg {
		return tablesLoadedMsg{res: service.ListTables(context.Background())}
	}
}

func (m Model) describeCmd(table string) tea.Cmd {
	service := m.service
	return func() tea.Msg {
		return describedMsg{table: table, res: service.DescribeTable(context.Background(), table)}
	}
}

func (m Model) statsCmd(table string) tea.Cmd {
	service := m.service
	return func() tea.Msg {
		return statsMsg{table: table, res: service.TableStatistics(context.Background(), table)}
	}
}

func (m Model) executeCmd(query string) tea.Cmd {
	service := m.service
	return func() tea.Msg {
		return queryDoneMsg{res: service.ExecuteQuery(context.Background(), query)}
	}
}

// browseCmd counts the table once; pages are fetched as the user moves.
func (m Model) browseCmd(table string) tea.Cmd {
	service := m.service
	return func() tea.Msg {
		return browseCountedMsg{table: table, total: service.GetTableCount(context.Background(), table)}
	}
}

func (m Model) loadPageCmd() tea.Cmd {
	service, table := m.service, m.browsing
	limit, offset := m.page.PageSize, m.page.Offset()
	return func() tea.Msg {
		return pageLoadedMsg{res: service.GetTableData(context.Background(), table, limit, offset)}
	}
}
