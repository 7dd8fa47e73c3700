package tui

import (
	"context"
	"errors"
	"strconv"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/schoolconsole/internal/console"
	"github.com/rshade/schoolconsole/internal/lifecycle"
	"github.com/rshade/schoolconsole/internal/liststate"
	"github.com/rshade/schoolconsole/internal/pagination"
)

// ViewState is the input mode of the console.
type ViewState int

const (
	// ViewStateList handles navigation keys.
	ViewStateList ViewState = iota
	// ViewStateSearch routes keys to the search input.
	ViewStateSearch
	// ViewStateConfirm shows a confirmation modal.
	ViewStateConfirm
	// ViewStateQuitting is terminal.
	ViewStateQuitting
)

const (
	defaultWidth         = 100
	searchInputCharLimit = 64
	searchInputWidth     = 40
	noticeBuffer         = 8
	noCategory           = -1
)

// ErrNoModules is returned when the registry is empty.
var ErrNoModules = errors.New("no modules registered")

// Options configures the console.
type Options struct {
	Registry *console.Registry
	// Start is the module shown first; nil selects the first registered one.
	Start console.Module
	// Env supplies the backend client and list settings. Its Gateway and
	// Notifier are replaced by the console's own.
	Env        console.Env
	MaxVisible int
}

type loadedMsg struct {
	session console.Session
	err     error
}

type actionDoneMsg struct {
	session console.Session
	action  lifecycle.Action
	outcome lifecycle.Outcome
	err     error
}

// Model is the Bubble Tea model of the console.
type Model struct {
	ctx  context.Context
	opts Options

	modules []console.Module
	active  int
	session console.Session
	snap    console.Snapshot

	state    ViewState
	cursor   int
	category int
	pending  int
	busy     bool

	search  textinput.Model
	spinner spinner.Model

	gateway *Gateway
	notices chan lifecycle.Notice
	notice  *lifecycle.Notice
	prompt  *Prompt

	width int
}

// New creates the console model. ctx bounds every backend call it makes.
func New(ctx context.Context, opts Options) (*Model, error) {
	if opts.Registry == nil || len(opts.Registry.All()) == 0 {
		return nil, ErrNoModules
	}
	if opts.MaxVisible <= 0 {
		opts.MaxVisible = pagination.DefaultMaxVisible
	}

	m := &Model{
		ctx:      ctx,
		opts:     opts,
		modules:  opts.Registry.All(),
		category: noCategory,
		search:   newSearchInput(),
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		gateway:  NewGateway(),
		notices:  make(chan lifecycle.Notice, noticeBuffer),
		width:    defaultWidth,
	}
	if opts.Start != nil {
		if i := opts.Registry.Index(opts.Start); i >= 0 {
			m.active = i
		}
	}
	m.open()
	return m, nil
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Search..."
	ti.CharLimit = searchInputCharLimit
	ti.Width = searchInputWidth
	return ti
}

// open starts a fresh session for the active module.
func (m *Model) open() {
	env := m.opts.Env
	env.Gateway = m.gateway
	env.Notifier = lifecycle.NotifierFunc(func(n lifecycle.Notice) {
		select {
		case m.notices <- n:
		default:
		}
	})
	m.session = m.modules[m.active].Open(env)
	m.snap = m.session.Snapshot(m.opts.MaxVisible)
	m.cursor = 0
	m.category = noCategory
	m.pending = 0
	m.notice = nil
	m.search.SetValue("")
}

// Module returns the module currently shown.
func (m *Model) Module() console.Module {
	return m.modules[m.active]
}

// Snapshot returns the last rendered list state.
func (m *Model) Snapshot() console.Snapshot {
	return m.snap
}

// Notice returns the last action notice, or nil.
func (m *Model) Notice() *lifecycle.Notice {
	return m.notice
}

// Init loads the first module and starts listening for confirmations.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load(m.session.Reload), m.gateway.Wait(m.ctx))
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case loadedMsg:
		return m.handleLoaded(msg)
	case actionDoneMsg:
		return m.handleActionDone(msg)
	case promptMsg:
		p := msg.prompt
		m.prompt = &p
		m.state = ViewStateConfirm
		return m, nil
	}

	switch m.state {
	case ViewStateConfirm:
		return m.handleConfirmUpdate(msg)
	case ViewStateSearch:
		return m.handleSearchUpdate(msg)
	case ViewStateList:
		return m.handleListUpdate(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleLoaded(msg loadedMsg) (tea.Model, tea.Cmd) {
	if msg.session != m.session {
		return m, nil
	}
	if m.pending > 0 {
		m.pending--
	}
	m.refresh()
	return m, nil
}

func (m *Model) handleActionDone(msg actionDoneMsg) (tea.Model, tea.Cmd) {
	if msg.session != m.session {
		return m, nil
	}
	m.busy = false
	m.drainNotices()
	if m.notice == nil && msg.err != nil && msg.outcome == lifecycle.OutcomeFailed {
		// Lookup failures happen before the controller and carry no notice.
		m.notice = &lifecycle.Notice{Level: lifecycle.LevelError, Action: msg.action, Message: msg.err.Error(), Err: msg.err}
	}
	m.refresh()
	return m, nil
}

func (m *Model) drainNotices() {
	for {
		select {
		case n := <-m.notices:
			m.notice = &n
		default:
			return
		}
	}
}

func (m *Model) handleConfirmUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.prompt == nil {
		return m, nil
	}
	switch keyMsg.String() {
	case keyYes, keyYesUpper, keyEnter:
		return m.answer(true)
	case keyNo, keyNoUpper, keyEsc, keyQuit:
		return m.answer(false)
	case keyCtrlC:
		m.prompt.Answer(false)
		m.prompt = nil
		m.state = ViewStateQuitting
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) answer(ok bool) (tea.Model, tea.Cmd) {
	m.prompt.Answer(ok)
	m.prompt = nil
	m.state = ViewStateList
	return m, m.gateway.Wait(m.ctx)
}

func (m *Model) handleSearchUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case keyEnter:
			m.state = ViewStateList
			m.search.Blur()
			return m, nil
		case keyEsc:
			m.state = ViewStateList
			m.search.Blur()
			m.search.SetValue("")
			m.applyFilter()
			return m, nil
		case keyCtrlC:
			m.state = ViewStateQuitting
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *Model) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := keyMsg.String(); key {
	case keyQuit, keyCtrlC:
		m.state = ViewStateQuitting
		return m, tea.Quit
	case keyLeft, keyH:
		m.session.Previous()
		m.refresh()
	case keyRight, keyL:
		m.session.Next()
		m.refresh()
	case keyFirstPage:
		m.session.GoToPage(1)
		m.refresh()
	case keyLastPage:
		m.session.GoToPage(m.snap.Meta.TotalPages)
		m.refresh()
	case keyUp, keyK:
		if m.cursor > 0 {
			m.cursor--
		}
	case keyDown, keyJ:
		if m.cursor < len(m.snap.Rows)-1 {
			m.cursor++
		}
	case keySlash:
		m.state = ViewStateSearch
		m.search.Focus()
		return m, textinput.Blink
	case keyEsc:
		if m.search.Value() != "" || m.category != noCategory {
			m.search.SetValue("")
			m.category = noCategory
			m.applyFilter()
		}
	case keyCategory:
		m.cycleCategory()
	case keyToggle:
		m.notice = nil
		return m, m.load(m.session.ToggleVisibility)
	case keyReload:
		return m, m.load(m.session.Reload)
	case keyDelete:
		return m, m.act(lifecycle.ActionDelete)
	case keyRestore:
		return m, m.act(lifecycle.ActionRestore)
	case keyTab:
		return m, m.switchModule(1)
	case keyShiftTab:
		return m, m.switchModule(-1)
	default:
		if n, err := strconv.Atoi(key); err == nil {
			m.session.GoToPage(n)
			m.refresh()
		}
	}
	return m, nil
}

// load runs fn against the current session in the background.
func (m *Model) load(fn func(context.Context) error) tea.Cmd {
	m.pending++
	session, ctx := m.session, m.ctx
	return func() tea.Msg {
		return loadedMsg{session: session, err: fn(ctx)}
	}
}

// act runs a lifecycle action on the selected row. The controller asks the
// gateway for confirmation, which surfaces as a promptMsg.
func (m *Model) act(action lifecycle.Action) tea.Cmd {
	if m.busy || m.cursor >= len(m.snap.Rows) {
		return nil
	}
	m.busy = true
	m.notice = nil
	session, ctx, id := m.session, m.ctx, m.snap.Rows[m.cursor].ID

	return func() tea.Msg {
		var (
			outcome lifecycle.Outcome
			err     error
		)
		if action == lifecycle.ActionRestore {
			outcome, err = session.Restore(ctx, id)
		} else {
			outcome, err = session.Delete(ctx, id)
		}
		return actionDoneMsg{session: session, action: action, outcome: outcome, err: err}
	}
}

func (m *Model) switchModule(step int) tea.Cmd {
	if m.busy {
		return nil
	}
	n := len(m.modules)
	m.active = ((m.active+step)%n + n) % n
	m.open()
	return m.load(m.session.Reload)
}

func (m *Model) cycleCategory() {
	categories := m.session.Categories()
	if len(categories) == 0 {
		m.category = noCategory
		return
	}
	m.category++
	if m.category >= len(categories) {
		m.category = noCategory
	}
	m.applyFilter()
}

func (m *Model) currentCategory() string {
	categories := m.session.Categories()
	if m.category < 0 || m.category >= len(categories) {
		return ""
	}
	return categories[m.category]
}

func (m *Model) applyFilter() {
	m.session.SetFilter(liststate.Filter{
		Search:   m.search.Value(),
		Category: m.currentCategory(),
	})
	m.refresh()
}

// refresh re-reads the session snapshot and keeps the cursor on the page.
func (m *Model) refresh() {
	m.snap = m.session.Snapshot(m.opts.MaxVisible)
	if m.cursor >= len(m.snap.Rows) {
		m.cursor = max(len(m.snap.Rows)-1, 0)
	}
}

// Loading reports whether a reload is in flight.
func (m *Model) Loading() bool {
	return m.pending > 0 || m.snap.Loading
}
