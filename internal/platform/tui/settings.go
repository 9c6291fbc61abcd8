package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blast/internal/config"
	"github.com/vovakirdan/tui-blast/internal/games/blast/engine"
	"github.com/vovakirdan/tui-blast/internal/storage"
)

// Settings form fields, in display order.
const (
	fieldRows = iota
	fieldColumns
	fieldColors
	fieldA
	fieldB
	fieldC
	fieldMoves
	fieldCount
)

var fieldLabels = [fieldCount]string{"Rows", "Columns", "Colors", "A", "B", "C", "Moves"}

// msgNotANumber is shown when any field fails to parse.
const msgNotANumber = "Invalid Input: Please enter numbers only."

type settingsKeys struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Cancel key.Binding
}

var defaultSettingsKeys = settingsKeys{
	Next:   key.NewBinding(key.WithKeys("tab", "down")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab", "up")),
	Submit: key.NewBinding(key.WithKeys("enter", "ctrl+s")),
	Cancel: key.NewBinding(key.WithKeys("esc", "ctrl+c")),
}

// SettingsModel edits the board size, palette, tier thresholds and move
// budget. Submitting a valid form stores it for the profile.
type SettingsModel struct {
	inputs  [fieldCount]textinput.Model
	focus   int
	base    config.BlastConfig
	result  config.BlastConfig
	store   *storage.Store
	profile string
	keys    settingsKeys
	errMsg  string
	width   int
	saved   bool
	done    bool
}

// NewSettingsModel creates a form prefilled from cfg.
func NewSettingsModel(store *storage.Store, profile string, cfg config.BlastConfig, width int) SettingsModel {
	m := SettingsModel{
		base:    cfg,
		result:  cfg,
		store:   store,
		profile: profile,
		keys:    defaultSettingsKeys,
		width:   width,
	}

	values := [fieldCount]int{
		cfg.Board.Rows, cfg.Board.Columns, cfg.Board.Colors,
		cfg.Board.Thresholds.A, cfg.Board.Thresholds.B, cfg.Board.Thresholds.C,
		cfg.Gameplay.Moves,
	}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 4
		ti.Width = 6
		ti.SetValue(strconv.Itoa(values[i]))
		m.inputs[i] = ti
	}
	m.inputs[0].Focus()
	return m
}

// ParseSettings builds a config from the raw field values, in the order
// rows, columns, colors, A, B, C, moves. On failure it returns the message
// to show under the form.
func ParseSettings(values []string, base config.BlastConfig) (config.BlastConfig, string) {
	if len(values) != fieldCount {
		return base, msgNotANumber
	}

	var n [fieldCount]int
	for i, v := range values {
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return base, msgNotANumber
		}
		n[i] = parsed
	}

	cfg := base
	cfg.Board = config.BoardConfig{
		Rows:       n[fieldRows],
		Columns:    n[fieldColumns],
		Colors:     n[fieldColors],
		Thresholds: config.ThresholdsConfig{A: n[fieldA], B: n[fieldB], C: n[fieldC]},
	}
	cfg.Gameplay.Moves = n[fieldMoves]

	if err := cfg.Validate(); err != nil {
		var cerr *engine.ConfigError
		if errors.As(err, &cerr) {
			return base, cerr.Message
		}
		return base, err.Error()
	}
	return cfg, ""
}

// Init starts the cursor blink.
func (m SettingsModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the form.
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			m.done = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			return m, m.setFocus(m.focus + 1)
		case key.Matches(msg, m.keys.Prev):
			return m, m.setFocus(m.focus - 1)
		case key.Matches(msg, m.keys.Submit):
			if msg.String() == "enter" && m.focus < fieldCount-1 {
				return m, m.setFocus(m.focus + 1)
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// setFocus moves focus to field i, wrapping around.
func (m *SettingsModel) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = (i + fieldCount) % fieldCount
	return m.inputs[m.focus].Focus()
}

// Values returns the raw text of every field.
func (m SettingsModel) Values() []string {
	out := make([]string, fieldCount)
	for i, ti := range m.inputs {
		out[i] = ti.Value()
	}
	return out
}

func (m SettingsModel) submit() (tea.Model, tea.Cmd) {
	cfg, errMsg := ParseSettings(m.Values(), m.base)
	if errMsg != "" {
		m.errMsg = errMsg
		return m, nil
	}

	if m.store != nil {
		if err := m.store.SaveSettings(m.profile, cfg); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
	}

	m.errMsg = ""
	m.result = cfg
	m.saved = true
	m.done = true
	return m, tea.Quit
}

// View renders the form.
func (m SettingsModel) View() string {
	if m.done {
		return ""
	}

	labelStyle := lipgloss.NewStyle().Width(10)
	focusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	var form strings.Builder
	for i, ti := range m.inputs {
		label := labelStyle.Render(fieldLabels[i])
		if i == m.focus {
			label = focusStyle.Render(labelStyle.Render(fieldLabels[i]))
		}
		form.WriteString(fmt.Sprintf("%s %s\n", label, ti.View()))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 2).
		Render(strings.TrimRight(form.String(), "\n"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText("S E T T I N G S", m.width))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(m.width, lipgloss.Center, box))
	b.WriteString("\n\n")
	if m.errMsg != "" {
		b.WriteString(errStyle.Render(centerText(m.errMsg, m.width)))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render(centerText("Tab: Next field  |  Ctrl+S: Save & Restart  |  Esc: Cancel", m.width)))
	b.WriteString("\n")
	return b.String()
}

// Saved reports whether the form was submitted successfully.
func (m SettingsModel) Saved() bool {
	return m.saved
}

// Result returns the submitted config, or the original one if cancelled.
func (m SettingsModel) Result() config.BlastConfig {
	return m.result
}

// Error returns the validation message currently shown, if any.
func (m SettingsModel) Error() string {
	return m.errMsg
}

// RunSettings shows the settings form and returns the resulting config.
// saved is false when the user cancelled.
func RunSettings(store *storage.Store, profile string, cfg config.BlastConfig, width int) (result config.BlastConfig, saved bool, err error) {
	p := tea.NewProgram(
		NewSettingsModel(store, profile, cfg, width),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return cfg, false, err
	}

	m, ok := finalModel.(SettingsModel)
	if !ok {
		return cfg, false, nil
	}
	return m.Result(), m.Saved(), nil
}
