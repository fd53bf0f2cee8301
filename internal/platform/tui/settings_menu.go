package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bubble-pop/internal/core"
	"github.com/vovakirdan/bubble-pop/internal/round"
	"github.com/vovakirdan/bubble-pop/internal/settings"
)

// Settings menu rows.
const (
	settingsRowDuration = iota
	settingsRowMaxBubbles
	settingsRowApply
	settingsRowSave
	settingsRowCount
)

// SettingsModel edits the round settings of a controller.
type SettingsModel struct {
	ctrl      *round.Controller
	draft     settings.Settings
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	status    string
	statusErr bool
	quitting  bool
	back      bool
}

// NewSettingsModel creates a settings editor seeded with the controller's
// current settings.
func NewSettingsModel(ctrl *round.Controller, width, height int) SettingsModel {
	return SettingsModel{
		ctrl:      ctrl,
		draft:     ctrl.Snapshot().Settings,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m SettingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m SettingsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < settingsRowCount-1 {
			m.cursor++
		}
	case MenuActionLeft:
		m.adjust(-1)
	case MenuActionRight:
		m.adjust(1)
	case MenuActionSelect:
		switch m.cursor {
		case settingsRowApply:
			m.apply(false)
		case settingsRowSave:
			m.apply(true)
		}
	}
	return m, nil
}

func (m *SettingsModel) adjust(delta int) {
	switch m.cursor {
	case settingsRowDuration:
		m.draft.GameDuration = core.Clamp(m.draft.GameDuration+delta, settings.MinDuration, settings.MaxDuration)
	case settingsRowMaxBubbles:
		m.draft.MaxBubbles = core.Clamp(m.draft.MaxBubbles+delta, settings.MinMaxBubbles, settings.MaxMaxBubbles)
	default:
		return
	}
	m.status = ""
}

func (m *SettingsModel) apply(persist bool) {
	if _, err := m.ctrl.UpdateSettings(m.draft.GameDuration, m.draft.MaxBubbles); err != nil {
		m.status, m.statusErr = err.Error(), true
		return
	}
	if !persist {
		m.status, m.statusErr = "Applied for this session", false
		return
	}
	if err := m.ctrl.SaveSettings(); err != nil {
		m.status, m.statusErr = "Applied, but saving failed: "+err.Error(), true
		return
	}
	m.status, m.statusErr = "Saved", false
}

// View renders the settings editor.
func (m SettingsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("SETTINGS"), m.width))
	b.WriteString("\n\n")

	rows := []string{
		fmt.Sprintf("Round length   < %2d s >", m.draft.GameDuration),
		fmt.Sprintf("Max bubbles    < %2d >  ", m.draft.MaxBubbles),
		"Apply                  ",
		"Save                   ",
	}
	for i, row := range rows {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		b.WriteString(centerText(style.Render(cursor+row), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.status != "" {
		color := lipgloss.Color("10")
		if m.statusErr {
			color = lipgloss.Color("9")
		}
		b.WriteString(centerText(lipgloss.NewStyle().Foreground(color).Render(m.status), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Select  |  Left/Right: Change  |  Enter: Apply/Save  |  Esc: Back"
	b.WriteString(centerText(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// IsBack returns true if the user left the editor.
func (m SettingsModel) IsBack() bool {
	return m.back
}

// IsQuitting returns true if user requested to quit.
func (m SettingsModel) IsQuitting() bool {
	return m.quitting
}
