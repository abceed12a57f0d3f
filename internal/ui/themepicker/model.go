// Package themepicker is a small overlay for choosing the board
// background. The choice is persisted by the app layer.
package themepicker

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"opsboard/internal/keys"
	"opsboard/internal/theme"
)

// ThemeChosenMsg is dispatched when a background is selected.
type ThemeChosenMsg struct {
	Background theme.Background
}

// CancelMsg is dispatched when the picker is dismissed.
type CancelMsg struct{}

// Model is the theme picker overlay.
type Model struct {
	keys   *keys.KeyMap
	cursor int
}

// New creates a picker preselecting the current background.
func New(k *keys.KeyMap, current string) Model {
	cursor := 0
	for i, bg := range theme.Backgrounds {
		if bg.Name == current {
			cursor = i
			break
		}
	}
	return Model{keys: k, cursor: cursor}
}

// Update handles messages for the theme picker.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Back):
		return m, func() tea.Msg { return CancelMsg{} }

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(theme.Backgrounds)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Select):
		bg := theme.Backgrounds[m.cursor]
		return m, func() tea.Msg { return ThemeChosenMsg{Background: bg} }
	}

	return m, nil
}

// View renders the picker list with a color swatch per background.
func (m Model) View() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBlue).Render("Board Theme")

	lines := []string{title, ""}
	for i, bg := range theme.Backgrounds {
		swatch := lipgloss.NewStyle().Background(bg.Color).Render("  ")
		line := swatch + " " + bg.Name
		if i == m.cursor {
			line = lipgloss.NewStyle().Bold(true).Foreground(theme.ColorYellow).Render("▌") + line
		} else {
			line = " " + line
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", theme.HelpStyle.Render("enter select · esc cancel"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ColorBorder).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
}
