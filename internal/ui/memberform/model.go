// Package memberform is the quick-registration form for adding a
// member to the directory without leaving the board.
package memberform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"opsboard/internal/model"
	"opsboard/internal/theme"
)

// MemberSubmittedMsg is dispatched when the form is submitted.
type MemberSubmittedMsg struct {
	Username    string
	DisplayName string
	Password    string
}

// CancelMsg is dispatched when the user aborts the form.
type CancelMsg struct{}

type formBindings struct {
	username    string
	displayName string
	password    string
}

// Model is the Bubble Tea model for the member registration form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	width  int
	height int
}

// New creates a member form.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{},
		width:  width,
		height: height,
	}
}

// Start initializes an empty registration form.
func (m *Model) Start() tea.Cmd {
	m.fb.username = ""
	m.fb.displayName = ""
	m.fb.password = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update handles messages for the member form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		username := strings.TrimSpace(m.fb.username)
		displayName := strings.TrimSpace(m.fb.displayName)
		password := m.fb.password
		return m, func() tea.Msg {
			return MemberSubmittedMsg{
				Username:    username,
				DisplayName: displayName,
				Password:    password,
			}
		}
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the member form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render("Register Member") + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Placeholder("jdoe").
				Value(&m.fb.username).
				Validate(validateUsername),
			huh.NewInput().
				Title("Display Name").
				Placeholder("Jane Doe (optional)").
				Value(&m.fb.displayName),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.password).
				Validate(validatePassword),
			huh.NewNote().
				Title("Role").
				Description("New members join with the " + model.RoleMember + " role."),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 80 {
		w = 80
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateUsername(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("Username is required")
	}
	if strings.ContainsAny(s, " \t") {
		return fmt.Errorf("Username must not contain spaces")
	}
	return nil
}

func validatePassword(s string) error {
	if len(s) < 8 {
		return fmt.Errorf("Password must be at least 8 characters")
	}
	return nil
}
