package ui

import (
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"storefinder/internal/config"
	"storefinder/internal/search"
	"storefinder/internal/ui/input"
	inputtypes "storefinder/internal/ui/input/types"
	"storefinder/internal/ui/viewmodels"
	"storefinder/internal/ui/views"
)

// reservedLines is the number of screen lines outside the result list
const reservedLines = 17

// Searcher is the part of search.Dispatcher the UI drives
type Searcher interface {
	QueryChanged(query string) search.Snapshot
	LoadMore() (search.Snapshot, error)
	Retry() (search.Snapshot, error)
	Snapshot() search.Snapshot
}

// Model represents the UI state
type Model struct {
	searcher Searcher
	snap     search.Snapshot // last adopted snapshot
	config   *config.Config
	logger   *slog.Logger

	width  int
	height int

	selectedIndex  int
	viewportOffset int
	viewportHeight int

	showHelp         bool
	helpScrollOffset int
	statusMessage    string
	inPagerMode      bool

	spinner      spinner.Model
	inputHandler *input.Handler
	renderer     *views.Renderer
	viewModel    *viewmodels.ViewModel
	helpOps      *HelpOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(s Searcher, cfg *config.Config, logger *slog.Logger) *Model {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	inputHandler := input.New()
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return &Model{
		searcher:       s,
		snap:           s.Snapshot(),
		config:         cfg,
		logger:         logger,
		viewportHeight: 10, // Will be updated on first WindowSizeMsg
		spinner:        sp,
		inputHandler:   inputHandler,
		renderer:       views.NewRenderer(cfg.UI.NoColor),
		viewModel:      viewmodels.NewViewModel(cfg, inputHandler.Keys()),
		helpOps:        NewHelpOps(),
	}
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	m.helpOps.SetProgram(p)
}

// SetQuery pre-fills the query input and starts a search for it
func (m *Model) SetQuery(query string) {
	m.inputHandler.SetValue(query)
	m.adopt(m.searcher.QueryChanged(query))
}

// Snapshot returns the last snapshot the model rendered from
func (m *Model) Snapshot() search.Snapshot {
	return m.snap
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.inputHandler.Init(), m.spinner.Tick)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewModel.SetDimensions(msg.Width, msg.Height)
		m.updateViewportHeight()
		return m, nil

	case tea.KeyMsg:
		if m.inPagerMode {
			return m, nil
		}
		if m.showHelp {
			return m, m.handleHelpKey(msg)
		}

		ctx := &input.ModelContext{
			Index:     m.selectedIndex,
			Items:     len(m.snap.Results),
			Text:      m.inputHandler.Value(),
			More:      m.snap.MoreAvailable(),
			HasFailed: m.snap.Err != nil,
		}
		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		for _, action := range actions {
			if actionCmd := m.processAction(action); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}
		return m, tea.Batch(cmds...)

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.inPagerMode {
		return ""
	}

	state := m.viewModel.BuildViewState(m.snap, viewmodels.UIState{
		Input:            m.inputHandler.TextInput().View(),
		Browsing:         m.inputHandler.CurrentMode() == inputtypes.ModeBrowse,
		SelectedIndex:    m.selectedIndex,
		ViewportOffset:   m.viewportOffset,
		ViewportHeight:   m.viewportHeight,
		Spinner:          m.spinner.View(),
		StatusMessage:    m.statusMessage,
		ShowHelp:         m.showHelp,
		HelpScrollOffset: m.helpScrollOffset,
	})
	return m.renderer.Render(state)
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.UpdateTextAction:
		m.adopt(m.searcher.QueryChanged(a.Text))

	case inputtypes.LoadMoreAction:
		snap, err := m.searcher.LoadMore()
		m.adopt(snap)
		if err != nil {
			m.logger.Debug("load more refused", slog.String("reason", err.Error()))
		}

	case inputtypes.RetryAction:
		snap, err := m.searcher.Retry()
		m.adopt(snap)
		if err != nil && !errors.Is(err, search.ErrNothingToRetry) {
			return m.setStatus("Retry is not possible right now")
		}

	case inputtypes.NavigateAction:
		m.navigate(a.Direction)

	case inputtypes.ToggleHelpAction:
		m.showHelp = !m.showHelp
		m.helpScrollOffset = 0

	case inputtypes.OpenHelpPagerAction:
		if m.program == nil {
			m.showHelp = true
			return nil
		}
		return m.fetchHelpPager(views.RenderHelpContent(m.renderer.Styles()))

	case inputtypes.QuitAction:
		return tea.Quit
	}
	return nil
}

func (m *Model) handleHelpKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc", "?", "f1", "q":
		m.showHelp = false
		m.helpScrollOffset = 0
	case "up", "k":
		m.helpScrollOffset = max(0, m.helpScrollOffset-1)
	case "down", "j":
		m.helpScrollOffset++
	case "H":
		m.showHelp = false
		if m.program != nil {
			return m.fetchHelpPager(views.RenderHelpContent(m.renderer.Styles()))
		}
	}
	return nil
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SnapshotMsg:
		m.adopt(msg.Snapshot)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case helpPagerMsg:
		if msg.err != nil {
			// Pager failed, fall back to the popup
			m.logger.Warn("help pager failed", slog.String("error", msg.err.Error()))
			m.showHelp = true
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, nil

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil

	default:
		// Cursor blink for the query input
		return m, m.inputHandler.Update(msg)
	}
}

// adopt replaces the rendered snapshot when snap is newer
func (m *Model) adopt(snap search.Snapshot) {
	if !snap.Newer(m.snap) {
		return
	}
	prev := m.snap
	m.snap = snap

	// A replaced list starts again at the top; appended pages keep the cursor
	if snap.Query != prev.Query || len(snap.Results) < len(prev.Results) {
		m.selectedIndex = 0
		m.viewportOffset = 0
	}
	if n := len(snap.Results); m.selectedIndex >= n {
		m.selectedIndex = max(0, n-1)
	}
	m.ensureSelectedVisible()
}

func (m *Model) navigate(direction string) {
	n := len(m.snap.Results)
	if n == 0 {
		return
	}
	switch direction {
	case "up":
		m.selectedIndex--
	case "down":
		m.selectedIndex++
	case "pageup":
		m.selectedIndex -= m.viewportHeight
	case "pagedown":
		m.selectedIndex += m.viewportHeight
	case "home":
		m.selectedIndex = 0
	case "end":
		m.selectedIndex = n - 1
	}
	m.selectedIndex = max(0, min(m.selectedIndex, n-1))
	m.ensureSelectedVisible()
}

func (m *Model) updateViewportHeight() {
	m.viewportHeight = max(3, m.height-reservedLines)
	m.ensureSelectedVisible()
}

func (m *Model) ensureSelectedVisible() {
	if m.selectedIndex < m.viewportOffset {
		m.viewportOffset = m.selectedIndex
	} else if m.selectedIndex >= m.viewportOffset+m.viewportHeight {
		m.viewportOffset = m.selectedIndex - m.viewportHeight + 1
	}
	m.viewportOffset = max(0, m.viewportOffset)
}

func (m *Model) setStatus(message string) tea.Cmd {
	m.statusMessage = message
	return tea.Tick(3*time.Second, func(t time.Time) tea.Msg { return clearStatusMsg{} })
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	return func() tea.Msg {
		// Send pause message to stop rendering
		m.program.Send(pauseRenderingMsg{})

		err := m.helpOps.ShowHelpInPager(helpContent)

		// Send resume message to restart rendering
		m.program.Send(resumeRenderingMsg{})

		return helpPagerMsg{err: err}
	}
}
