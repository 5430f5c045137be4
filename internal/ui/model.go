package ui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"seekterm/internal/controller"
	"seekterm/internal/domain"
	"seekterm/internal/eventbus"
	"seekterm/internal/ui/views"
)

// Searcher runs one search to completion
type Searcher interface {
	RunSearch(ctx context.Context, raw string) error
}

// Copier copies an identifier and reports the result as a notification
type Copier interface {
	CopyIdentifier(ctx context.Context, id string) error
}

// Deps are the collaborators of the UI model
type Deps struct {
	Searcher Searcher
	Copier   Copier
	Pager    Pager // defaults to the ov pager once SetProgram is called
	Endpoint string
	Log      *zap.Logger
	// Query pre-fills the input and is submitted on start
	Query string
}

// Model represents the UI state
type Model struct {
	ctx      context.Context
	searcher Searcher
	copier   Copier
	pager    Pager
	log      *zap.Logger
	endpoint string
	initial  string

	width  int
	height int

	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	inputFocused bool
	searching    bool
	inPagerMode  bool

	statusText     string
	statusProgress int
	statusVisible  bool

	tree     domain.PresentationTree
	selected int
	offset   int

	notification *domain.Notification
	health       *domain.EndpointHealth
	healthErr    error

	renderer *views.Renderer
	docs     *HelpRenderer

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(ctx context.Context, deps Deps) *Model {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}

	ti := textinput.New()
	ti.Placeholder = "Search title, year, resolution…"
	ti.Prompt = "› "
	ti.CharLimit = 256
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model{
		ctx:          ctx,
		searcher:     deps.Searcher,
		copier:       deps.Copier,
		pager:        deps.Pager,
		log:          log.Named("ui"),
		endpoint:     deps.Endpoint,
		initial:      deps.Query,
		input:        ti,
		spinner:      sp,
		help:         help.New(),
		keys:         defaultKeyMap(),
		inputFocused: true,
		renderer:     views.NewRenderer(),
		docs:         NewHelpRenderer(),
	}
	if deps.Query != "" {
		m.input.SetValue(deps.Query)
	}
	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	if m.pager == nil {
		m.pager = NewPagerOps(p)
	}
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.initial != "" {
		cmds = append(cmds, m.submit(m.initial))
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = msg.Width - 12
		m.ensureSelectedVisible()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.inputFocused {
			return m.handleInputKey(msg)
		}
		return m.handleResultKey(msg)

	case EventMsg:
		return m.handleEvent(msg.Event)

	case searchDoneMsg:
		if errors.Is(msg.err, controller.ErrSearchInProgress) {
			return m, nil
		}
		m.searching = false
		if msg.err != nil {
			m.log.Debug("search returned", zap.String("query", msg.query), zap.Error(msg.err))
		}
		return m, nil

	case copyDoneMsg:
		if msg.err != nil {
			m.log.Debug("copy failed", zap.Error(msg.err))
		}
		return m, nil

	case pagerMsg:
		if msg.err != nil {
			// Pager failed: log only; do not surface in status bar
			m.log.Warn("pager failed", zap.String("what", msg.what), zap.Error(msg.err))
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case spinner.TickMsg:
		if !m.searching {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.inputFocused {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m, m.submit(m.input.Value())
	case key.Matches(msg, m.keys.Blur):
		m.blurInput()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleResultKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	records := m.tree.Records()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Focus):
		return m, m.focusInput()
	case key.Matches(msg, m.keys.Help):
		return m, m.showInPager("help", m.docs.RenderHelpContent())
	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveSelection(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveSelection(-views.VisibleCards(m.resultsHeight()))
	case key.Matches(msg, m.keys.PageDn):
		m.moveSelection(views.VisibleCards(m.resultsHeight()))
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
		m.ensureSelectedVisible()
	case key.Matches(msg, m.keys.Bottom):
		m.selected = len(records) - 1
		m.ensureSelectedVisible()
	case key.Matches(msg, m.keys.Copy):
		if u, ok := m.selectedRecord(); ok {
			return m, m.copy(u.Identifier)
		}
	case key.Matches(msg, m.keys.Details):
		if u, ok := m.selectedRecord(); ok {
			return m, m.showInPager("details", m.docs.RenderDetails(u))
		}
	}
	return m, nil
}

// handleEvent processes domain events
func (m *Model) handleEvent(event eventbus.DomainEvent) (tea.Model, tea.Cmd) {
	switch e := event.(type) {
	case eventbus.SearchStartedEvent:
		m.searching = true
		return m, m.spinner.Tick

	case eventbus.LifecycleChangedEvent:
		if e.State.Phase.Terminal() {
			m.searching = false
		}

	case eventbus.StatusChangedEvent:
		m.statusText = e.Text
		m.statusProgress = e.Progress
		m.statusVisible = e.Visible

	case eventbus.ResultsClearedEvent:
		m.tree = domain.PresentationTree{}
		m.selected, m.offset = 0, 0

	case eventbus.ResultsPresentedEvent:
		m.tree = e.Tree
		m.selected, m.offset = 0, 0
		if len(m.tree.Records()) > 0 {
			m.blurInput()
		}

	case eventbus.NotificationChangedEvent:
		m.notification = e.Notification

	case eventbus.HealthCheckedEvent:
		if e.Err != nil {
			m.health, m.healthErr = nil, e.Err
		} else {
			h := e.Health
			m.health, m.healthErr = &h, nil
		}
	}
	return m, nil
}

// submit starts a search unless one is already running
func (m *Model) submit(raw string) tea.Cmd {
	if m.searching || m.searcher == nil {
		return nil
	}
	// the controller confirms with SearchStartedEvent; this only blocks
	// double submits until it arrives
	m.searching = true
	ctx := m.ctx
	s := m.searcher
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return searchDoneMsg{query: raw, err: s.RunSearch(ctx, raw)}
	})
}

func (m *Model) copy(id string) tea.Cmd {
	if m.copier == nil {
		return nil
	}
	ctx := m.ctx
	c := m.copier
	return func() tea.Msg {
		return copyDoneMsg{err: c.CopyIdentifier(ctx, id)}
	}
}

// showInPager returns a command that shows content in the pager
func (m *Model) showInPager(what, content string) tea.Cmd {
	if m.pager == nil {
		return nil
	}
	pager := m.pager
	program := m.program
	return func() tea.Msg {
		if program != nil {
			// Send pause message to stop rendering
			program.Send(pauseRenderingMsg{})
		}
		err := pager.Show(content)
		if program != nil {
			// Send resume message to restart rendering
			program.Send(resumeRenderingMsg{})
		}
		return pagerMsg{what: what, err: err}
	}
}

func (m *Model) focusInput() tea.Cmd {
	m.inputFocused = true
	return m.input.Focus()
}

func (m *Model) blurInput() {
	m.inputFocused = false
	m.input.Blur()
}

func (m *Model) selectedRecord() (domain.PresentationUnit, bool) {
	records := m.tree.Records()
	if m.selected < 0 || m.selected >= len(records) {
		return domain.PresentationUnit{}, false
	}
	return records[m.selected], true
}

func (m *Model) moveSelection(delta int) {
	n := len(m.tree.Records())
	if n == 0 {
		return
	}
	m.selected += delta
	if m.selected < 0 {
		m.selected = 0
	}
	if m.selected >= n {
		m.selected = n - 1
	}
	m.ensureSelectedVisible()
}

// ensureSelectedVisible scrolls the viewport so the selection is on screen
func (m *Model) ensureSelectedVisible() {
	if m.selected < 0 {
		m.selected = 0
	}
	visible := views.VisibleCards(m.resultsHeight())
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+visible {
		m.offset = m.selected - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// resultsHeight approximates the lines left for result cards
func (m *Model) resultsHeight() int {
	// header, input box, status, spacing and footer
	const chrome = 9
	return m.height - chrome
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.inPagerMode {
		return ""
	}

	var km help.KeyMap = resultKeys{m.keys}
	if m.inputFocused {
		km = inputKeys{m.keys}
	}

	return m.renderer.Render(views.ViewState{
		Width:          m.width,
		Height:         m.height,
		InputView:      m.input.View(),
		InputFocused:   m.inputFocused,
		Searching:      m.searching,
		SpinnerView:    m.spinner.View(),
		StatusText:     m.statusText,
		StatusProgress: m.statusProgress,
		StatusVisible:  m.statusVisible,
		Tree:           m.tree,
		SelectedIndex:  m.selected,
		ViewportOffset: m.offset,
		Notification:   m.notification,
		Health:         m.health,
		HealthErr:      m.healthErr,
		Endpoint:       m.endpoint,
		HelpModel:      m.help,
		KeyMap:         km,
	})
}
