// Package ui implements the Bubble Tea terminal interface for rezdesk.
package ui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tomvoss/rezdesk/internal/backend"
	"github.com/tomvoss/rezdesk/internal/config"
	"github.com/tomvoss/rezdesk/internal/editbuf"
	"github.com/tomvoss/rezdesk/internal/fetch"
	"github.com/tomvoss/rezdesk/internal/logtail"
	"github.com/tomvoss/rezdesk/internal/prefs"
	"github.com/tomvoss/rezdesk/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewBookings View = iota
	ViewLog
)

const (
	defaultUITick = time.Second
	logViewLines  = 500
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Service   backend.Service
	Fetcher   *fetch.Fetcher
	Store     *state.Store
	Edits     *editbuf.Buffer
	Config    config.Config
	ConfigErr error
	Logger    *slog.Logger
	UITick    time.Duration
	ThemeName string
	PrefsPath string
	UserPrefs prefs.Prefs
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Wiring
	ctx       context.Context
	svc       backend.Service
	fetcher   *fetch.Fetcher
	store     *state.Store
	edits     *editbuf.Buffer
	config    config.Config
	configErr error
	logger    *slog.Logger
	prefsPath string
	uiTick    time.Duration

	// UI state
	keys       keyMap
	theme      Theme
	view       View
	width      int
	height     int
	ready      bool
	showHelp   bool
	showDetail bool

	// Data state
	snapshot     state.Snapshot
	lastRevision uint64
	fetching     bool
	saving       bool

	// Bookings view
	selectedRow int
	filter      Filter

	// Detail pane
	detailViewport viewport.Model

	// Toasts
	toasts []toast

	// Log view
	logEntries []logtail.Entry
	logErr     error
}

// New creates the root model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	uiTick := opts.UITick
	if uiTick <= 0 {
		uiTick = defaultUITick
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = opts.UserPrefs.Theme
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	return Model{
		ctx:        ctx,
		svc:        opts.Service,
		fetcher:    opts.Fetcher,
		store:      opts.Store,
		edits:      opts.Edits,
		config:     opts.Config,
		configErr:  opts.ConfigErr,
		logger:     logger,
		prefsPath:  prefsPath,
		uiTick:     uiTick,
		keys:       defaultKeyMap(),
		theme:      GetTheme(themeName),
		view:       ViewBookings,
		showDetail: opts.UserPrefs.ShowDetail,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tickCmd(m.uiTick),
	}
	if m.store != nil {
		cmds = append(cmds, snapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.detailViewport = viewport.New(msg.Width, detailHeight)
		}
		m.ready = true
		m.detailViewport.Width = msg.Width
		m.updateDetailViewport()
		return m, nil

	case tea.FocusMsg:
		// Terminal regained focus: refresh immediately, outside the
		// scheduled cadence.
		return m.startRefresh()

	case tickMsg:
		return m.handleTick(time.Time(msg))

	case snapshotMsg:
		return m.handleSnapshot(state.Snapshot(msg))

	case fetchDoneMsg:
		m.fetching = false
		if msg.err != nil {
			m.pushToast(toastDanger, "Refresh failed: "+shortError(msg.err)+" (r to retry)")
		}
		return m, snapshotCmd(m.store)

	case saveDoneMsg:
		return m.handleSaveDone(msg)

	case logEntriesMsg:
		m.logEntries = msg.entries
		m.logErr = msg.err
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.configErr != nil {
		return m.renderConfigError()
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help.
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil
	}

	// Everything below needs working configuration.
	if m.configErr != nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Escape):
		m.view = ViewBookings
		return m, nil

	case key.Matches(msg, m.keys.ViewLog):
		m.view = ViewLog
		return m, loadLogCmd(m.config.LogPath())

	case key.Matches(msg, m.keys.ToggleDetail):
		m.showDetail = !m.showDetail
		m.savePrefs()
		m.updateDetailViewport()
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m.startRefresh()

	case key.Matches(msg, m.keys.CycleFilter):
		m.filter = m.filter.next()
		m.clampSelection()
		return m, nil
	}

	if m.view == ViewBookings {
		return m.handleBookingsKey(msg)
	}
	return m, nil
}

// handleBookingsKey processes keys for the bookings table.
func (m Model) handleBookingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.CycleStatus):
		m.cycleField(fieldStatus)
		return m, nil

	case key.Matches(msg, m.keys.CyclePayment):
		m.cycleField(fieldPayment)
		return m, nil

	case key.Matches(msg, m.keys.Save):
		return m.startSave()

	case key.Matches(msg, m.keys.DiscardRow):
		if row := m.selectedBooking(); row != nil && m.edits.Has(row.ID) {
			m.edits.Discard(row.ID)
			m.pushToast(toastInfo, "Discarded edit for "+row.GuestName)
			m.clampSelection()
		}
		return m, nil

	case key.Matches(msg, m.keys.DiscardAll):
		if n := m.edits.Len(); n > 0 {
			m.edits.DiscardAll()
			m.pushToast(toastInfo, plural(n, "edit")+" discarded")
			m.clampSelection()
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if rows := m.visibleRows(); m.selectedRow < len(rows)-1 {
			m.selectedRow++
			m.updateDetailViewport()
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
			m.updateDetailViewport()
		}
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0
		m.updateDetailViewport()
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		if rows := m.visibleRows(); len(rows) > 0 {
			m.selectedRow = len(rows) - 1
			m.updateDetailViewport()
		}
		return m, nil
	}

	return m, nil
}

// handleTick runs once per UI tick: refresh the snapshot, expire toasts, and
// re-arm the tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.pruneToasts(now)

	cmds := []tea.Cmd{tickCmd(m.uiTick)}
	if m.store != nil {
		cmds = append(cmds, snapshotCmd(m.store))
	}
	if m.view == ViewLog {
		cmds = append(cmds, loadLogCmd(m.config.LogPath()))
	}
	return m, tea.Batch(cmds...)
}

// handleSnapshot folds a fresh store snapshot into the model. The new-row
// toast fires once per revision, whichever fetch produced it. Snapshots are
// sampled once per tick, so a revision overwritten between ticks is never
// observed and its new-row count is dropped with it; the count is
// best-effort either way.
func (m Model) handleSnapshot(snap state.Snapshot) (tea.Model, tea.Cmd) {
	fresh := snap.Revision != m.lastRevision
	m.snapshot = snap
	m.lastRevision = snap.Revision

	if fresh && snap.NewRows > 0 {
		m.pushToast(toastSuccess, plural(snap.NewRows, "new booking"))
	}

	m.preserveSelection()
	m.updateDetailViewport()
	return m, nil
}

func (m Model) handleSaveDone(msg saveDoneMsg) (tea.Model, tea.Cmd) {
	m.saving = false
	if msg.err != nil {
		m.logger.Warn("save failed", "saved", msg.summary.Saved, "error", msg.err.Error())
		m.pushToast(toastDanger, "Save failed: "+shortError(msg.err))
		if msg.summary.Saved > 0 {
			// Some rows did persist; refresh so the table shows them.
			return m.startRefresh()
		}
		return m, nil
	}
	m.logger.Info("saved bookings", "count", msg.summary.Saved)
	m.pushToast(toastSuccess, "Saved "+plural(msg.summary.Saved, "booking"))
	// Successful save: pull fresh rows so the view reflects the backend.
	return m.startRefresh()
}

// startRefresh launches a foreground (non-silent) fetch unless one is already
// running or configuration is broken.
func (m Model) startRefresh() (tea.Model, tea.Cmd) {
	if m.configErr != nil || m.fetching || m.fetcher == nil {
		return m, nil
	}
	m.fetching = true
	return m, refreshCmd(m.ctx, m.fetcher, m.store, m.logger)
}

// startSave launches the batch save unless nothing is pending or a save is
// already in flight.
func (m Model) startSave() (tea.Model, tea.Cmd) {
	if m.saving || m.edits == nil || m.edits.Len() == 0 {
		return m, nil
	}
	m.saving = true
	return m, saveCmd(m.ctx, m.edits, m.svc, m.config.Table)
}

// savePrefs persists the current theme and detail-pane choice. Failures are
// ignored; prefs are never worth interrupting the session over.
func (m *Model) savePrefs() {
	_ = prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name, ShowDetail: m.showDetail})
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type fetchDoneMsg struct {
	err error
}

type saveDoneMsg struct {
	summary editbuf.Summary
	err     error
}

type logEntriesMsg struct {
	entries []logtail.Entry
	err     error
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func snapshotCmd(store *state.Store) tea.Cmd {
	return func() tea.Msg {
		return snapshotMsg(store.Snapshot())
	}
}

func refreshCmd(ctx context.Context, fetcher *fetch.Fetcher, store *state.Store, logger *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		result, err := fetcher.Fetch(ctx, fetch.Options{})
		if err != nil {
			logger.Warn("manual fetch failed", "error", err.Error())
			store.Update(nil, err)
			return fetchDoneMsg{err: err}
		}
		logger.Info("manual fetch ok", "rows", len(result.Rows), "new", result.NewRows)
		store.Update(&result, nil)
		return fetchDoneMsg{}
	}
}

func saveCmd(ctx context.Context, edits *editbuf.Buffer, svc backend.Service, table string) tea.Cmd {
	return func() tea.Msg {
		summary, err := edits.Save(ctx, svc, table)
		return saveDoneMsg{summary: summary, err: err}
	}
}

func loadLogCmd(path string) tea.Cmd {
	return func() tea.Msg {
		entries, err := logtail.Tail(path, logViewLines)
		return logEntriesMsg{entries: entries, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until exit.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithReportFocus())
	_, err := p.Run()
	return err
}
