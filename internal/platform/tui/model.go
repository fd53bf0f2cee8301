package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/bubble-pop/internal/core"
	"github.com/vovakirdan/bubble-pop/internal/leaderboard"
	"github.com/vovakirdan/bubble-pop/internal/round"
)

type screenID int

const (
	screenMenu screenID = iota
	screenName
	screenPlay
	screenScores
	screenSettings
)

// Options wires a session to the game.
type Options struct {
	// NewController builds the session's controller around the ticker the
	// model drives from its own tick messages.
	NewController func(ticker round.TickSource) *round.Controller

	Board        *leaderboard.Board
	History      HistorySource // May be nil
	TickInterval time.Duration
	PlayerName   string // Prefilled name
	Width        int
	Height       int

	// ScreenshotDir receives ctrl+s dumps of the play screen. Empty disables them.
	ScreenshotDir string

	Logger *log.Logger
}

// Model is the Bubble Tea model for one player session: menu, name entry,
// play, scores and settings.
type Model struct {
	ctrl      *round.Controller
	ticker    *round.ManualTicker
	board     *leaderboard.Board
	history   HistorySource
	interval  time.Duration
	shotDir   string
	logger    *log.Logger
	keyMapper *KeyMapper

	screen    screenID
	menu      MenuModel
	nameInput textinput.Model
	scores    ScoreboardModel
	settings  SettingsModel
	canvas    *core.Screen
	snap      round.Snapshot
	errMsg    string

	width, height int

	tickGen int

	mouse    core.Point
	hasMouse bool
	hover    int
	preview  int

	quitting bool
}

// NewModel creates a session model.
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ticker := round.NewManualTicker()
	ctrl := opts.NewController(ticker)

	input := textinput.New()
	input.Placeholder = "your name"
	input.CharLimit = 16
	input.Width = 20
	input.SetValue(strings.TrimSpace(opts.PlayerName))
	input.Focus()

	m := Model{
		ctrl:      ctrl,
		ticker:    ticker,
		board:     opts.Board,
		history:   opts.History,
		interval:  opts.TickInterval,
		shotDir:   opts.ScreenshotDir,
		logger:    logger,
		keyMapper: NewKeyMapper(),
		screen:    screenMenu,
		menu:      NewMenuModel(opts.Width, opts.Height, ""),
		nameInput: input,
		canvas:    core.NewScreen(opts.Width, opts.Height),
		hover:     -1,
	}
	m.resize(opts.Width, opts.Height)
	m.snap = ctrl.Snapshot()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize(wsm.Width, wsm.Height)
	}

	switch m.screen {
	case screenPlay:
		return m.updatePlay(msg)
	case screenScores:
		return m.updateScores(msg)
	case screenSettings:
		return m.updateSettings(msg)
	case screenName:
		return m.updateName(msg)
	default:
		return m.updateMenu(msg)
	}
}

// resize updates the canvas and tells the controller the new field size.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.menu.width, m.menu.height = width, height
	m.canvas.Resize(width, height)
	size := fieldSize(fieldArea(width, height))
	m.snap = m.ctrl.Resize(size.W, size.H)
}

func (m Model) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.menu.Update(msg)
	if mm, ok := updated.(MenuModel); ok {
		m.menu = mm
	}

	choice := m.menu.Selected()
	m.menu.selected = MenuNone
	switch choice {
	case MenuPlay:
		m.screen = screenName
		m.errMsg = ""
		return m, textinput.Blink
	case MenuScores:
		m.showScores()
	case MenuSettings:
		m.screen = screenSettings
		m.settings = NewSettingsModel(m.ctrl, m.width, m.height)
	case MenuQuit:
		m.quitting = true
		return m, tea.Quit
	}
	return m, cmd
}

func (m *Model) showScores() {
	m.screen = screenScores
	m.scores = NewScoreboardModel(m.board, m.history, m.width, m.height)
}

func (m Model) updateName(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "esc":
			m.screen = screenMenu
			return m, nil
		case "enter":
			return m.startRound(m.nameInput.Value())
		case "tab":
			m.showScores()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// startRound begins a round and a fresh tick loop.
func (m Model) startRound(name string) (tea.Model, tea.Cmd) {
	snap, err := m.ctrl.StartRound(name)
	m.snap = snap
	if err != nil {
		if errors.Is(err, round.ErrInvalidInput) {
			m.errMsg = "Enter a name to play"
		} else {
			m.errMsg = err.Error()
		}
		return m, nil
	}

	m.errMsg = ""
	m.screen = screenPlay
	m.hover = -1
	m.tickGen++
	return m, tickCmd(m.interval, m.tickGen)
}

func (m Model) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case TickMsg:
		if msg.Gen != m.tickGen {
			return m, nil
		}
		m.ticker.Fire()
		if m.ticker.Running() {
			cmd = tickCmd(m.interval, m.tickGen)
		}

	case tea.KeyMsg:
		var done bool
		m, cmd, done = m.handlePlayKey(msg)
		if done {
			return m, cmd
		}

	case tea.MouseMsg:
		m.handleMouse(msg)
	}

	m.snap = m.ctrl.Snapshot()
	m.updateHover()
	return m, cmd
}

// handlePlayKey processes keyboard input on the play screen. done reports
// that the model already left the play screen.
func (m Model) handlePlayKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil, false
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		if running(m.snap.State) {
			//nolint:errcheck // Records the partial round before leaving
			m.ctrl.EndRound()
		}
		m.quitting = true
		return m, tea.Quit, true
	}

	switch m.snap.State {
	case round.StateCountdown, round.StateActive:
		if action == core.ActionBack {
			//nolint:errcheck // State was checked above
			m.ctrl.EndRound()
			return m, nil, false
		}
		if i, ok := m.keyMapper.BubbleIndex(msg); ok {
			// Letters past the live bubbles are ignored.
			//nolint:errcheck
			m.ctrl.Pop(i)
		}

	case round.StateOver:
		switch {
		case action == core.ActionRestart:
			name := m.snap.PlayerName
			//nolint:errcheck // Over -> Idle cannot fail
			m.ctrl.Reset()
			model, cmd := m.startRound(name)
			return model.(Model), cmd, true
		case msg.String() == "n":
			//nolint:errcheck // Over -> Idle cannot fail
			m.ctrl.Reset()
			m.screen = screenName
			m.snap = m.ctrl.Snapshot()
			return m, textinput.Blink, true
		case action == core.ActionBack:
			//nolint:errcheck
			m.ctrl.Reset()
			m.screen = screenMenu
			m.snap = m.ctrl.Snapshot()
			return m, nil, true
		case msg.String() == "tab":
			//nolint:errcheck
			m.ctrl.Reset()
			m.showScores()
			m.snap = m.ctrl.Snapshot()
			return m, nil, true
		}
	}
	return m, nil, false
}

// handleMouse tracks the pointer and pops on left click.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	p, ok := cellToField(fieldArea(m.width, m.height), msg.X, msg.Y)
	m.mouse, m.hasMouse = p, ok
	if !ok {
		return
	}
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		//nolint:errcheck // Clicks on empty space are ignored
		m.ctrl.PopAt(p)
	}
}

// updateHover recomputes which bubble is under the pointer and its value.
func (m *Model) updateHover() {
	m.hover = -1
	if !m.hasMouse || m.snap.State != round.StateActive {
		return
	}
	for i := len(m.snap.Bubbles) - 1; i >= 0; i-- {
		if m.snap.Bubbles[i].Contains(m.mouse) {
			m.hover = i
			break
		}
	}
	if m.hover < 0 {
		return
	}
	points, err := m.ctrl.Preview(m.hover)
	if err != nil {
		m.hover = -1
		return
	}
	m.preview = points
}

func (m Model) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.scores.Update(msg)
	if sm, ok := updated.(ScoreboardModel); ok {
		m.scores = sm
	}
	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		m.screen = screenMenu
	}
	return m, cmd
}

func (m Model) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.settings.Update(msg)
	if sm, ok := updated.(SettingsModel); ok {
		m.settings = sm
	}
	if m.settings.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.settings.IsBack() {
		m.screen = screenMenu
		m.snap = m.ctrl.Snapshot()
	}
	return m, cmd
}

// saveScreenshot saves the current play screen to a file.
func (m *Model) saveScreenshot() {
	if m.shotDir == "" {
		return
	}
	drawPlay(m.canvas, m.snap, m.hover, m.preview)

	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "error", err)
		return
	}
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(m.shotDir, fmt.Sprintf("bubblepop_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.canvas.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
	}
}

// View renders the current screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenPlay:
		drawPlay(m.canvas, m.snap, m.hover, m.preview)
		return RenderScreen(m.canvas)
	case screenScores:
		return m.scores.View()
	case screenSettings:
		return m.settings.View()
	case screenName:
		return m.viewName()
	default:
		menu := m.menu
		cfg := m.snap.Settings
		menu.subtitle = fmt.Sprintf("%ds rounds, up to %d bubbles", cfg.GameDuration, cfg.MaxBubbles)
		return menu.View()
	}
}

func (m Model) viewName() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("B U B B L E   P O P"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Who's playing?", m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.nameInput.View(), m.width))
	b.WriteString("\n")
	if m.errMsg != "" {
		b.WriteString(centerText(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(m.errMsg), m.width))
	}
	b.WriteString("\n\n")

	cfg := m.snap.Settings
	b.WriteString(centerText(dimStyle.Render(fmt.Sprintf("%ds rounds, up to %d bubbles", cfg.GameDuration, cfg.MaxBubbles)), m.width))
	b.WriteString("\n\n")

	if len(m.snap.Leaderboard) > 0 {
		b.WriteString(centerText("Top scores", m.width))
		b.WriteString("\n")
		for i, e := range m.snap.Leaderboard[:min(3, len(m.snap.Leaderboard))] {
			b.WriteString(centerText(fmt.Sprintf("%d. %-16s %6d", i+1, e.Name, e.Score), m.width))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	controls := "Enter: Play  |  Tab: Scores  |  Esc: Menu"
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Controller returns the session's controller.
func (m Model) Controller() *round.Controller {
	return m.ctrl
}

// Snapshot returns the last snapshot the model rendered from.
func (m Model) Snapshot() round.Snapshot {
	return m.snap
}

// IsQuitting returns true if user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

func running(s round.State) bool {
	return s == round.StateCountdown || s == round.StateActive
}

// Run starts a local session in the current terminal.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // Hover previews need motion events
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	// The program can also stop on a signal mid-round.
	if m, ok := final.(Model); ok && running(m.ctrl.Snapshot().State) {
		//nolint:errcheck
		m.ctrl.EndRound()
	}
	return nil
}
