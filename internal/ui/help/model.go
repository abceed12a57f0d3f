// Package help renders the shortcut overlay: the bound key map plus
// the single-key board actions that live outside it.
package help

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"opsboard/internal/keys"
	"opsboard/internal/theme"
)

// extras lists the raw-key actions not carried by the key map: board
// and card-detail keys matched by their literal string.
var extras = [][2]string{
	{"G", "grab column (board)"},
	{"R", "rename column (board)"},
	{"y", "duplicate card (board)"},
	{"f", "full create form (board)"},
	{"M", "register member (board)"},
	{"L", "attach link (card)"},
	{"U", "upload file (card)"},
	{":", "command palette"},
}

// Model is the help overlay view.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

// New creates a new help view model.
func New(keys *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.Width = width
	return Model{
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the help overlay.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	title := titleStyle.Render("Keyboard Shortcuts")

	m.help.Width = m.width - 4
	m.help.ShowAll = true
	helpText := m.help.View(m.keys)

	keyStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)
	extraLines := []string{""}
	for _, e := range extras {
		extraLines = append(extraLines,
			keyStyle.Render(e[0])+" "+theme.DimmedStyle.Render(e[1]))
	}
	extraText := lipgloss.JoinVertical(lipgloss.Left, extraLines...)

	content := lipgloss.JoinVertical(lipgloss.Left, title, helpText, extraText)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(content)
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
