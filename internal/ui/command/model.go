// Package command is the palette view: a one-line prompt over the
// board's named actions, with prefix matching against the known set.
package command

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"opsboard/internal/theme"
)

// CommandMsg is emitted when the user executes a command.
type CommandMsg string

// entry pairs a palette command with its hint line.
type entry struct {
	name string
	hint string
}

// entries is the known command set, in display order. Unknown input is
// still submitted; the app layer reports it.
var entries = []entry{
	{"reload", "refetch the board and member directory"},
	{"theme", "open the backdrop picker"},
	{"member", "register a collaborator"},
	{"delete", "permanently delete the selected card"},
	{"help", "show keyboard shortcuts"},
	{"quit", "exit"},
}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	width  int
	height int
}

// New creates a new command palette model.
func New(width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "type a command..."
	ti.Prompt = ": "
	ti.Focus()
	ti.Width = width - 6

	return Model{
		input:  ti,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			cmd := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if cmd != "" {
				return m, func() tea.Msg {
					return CommandMsg(cmd)
				}
			}
			return m, nil

		case "tab":
			// Complete to the first command matching the typed prefix.
			typed := strings.TrimSpace(m.input.Value())
			if typed != "" {
				for _, e := range entries {
					if strings.HasPrefix(e.name, typed) {
						m.input.SetValue(e.name)
						m.input.CursorEnd()
						break
					}
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the prompt with the matching commands listed below it.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	lines := []string{
		titleStyle.Render("Command Palette"),
		m.input.View(),
		"",
	}

	typed := strings.TrimSpace(m.input.Value())
	for _, e := range entries {
		if typed != "" && !strings.HasPrefix(e.name, typed) {
			continue
		}
		lines = append(lines, "  "+e.name+"  "+theme.DimmedStyle.Render(e.hint))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}
