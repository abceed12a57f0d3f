// Package cardform is the create/edit form for a card: title,
// description, due date, and the label multi-select over the fixed
// color palette.
package cardform

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"opsboard/internal/board"
	"opsboard/internal/model"
	"opsboard/internal/theme"
)

// CardCreatedMsg is dispatched when a new card is submitted.
type CardCreatedMsg struct {
	ColumnID string
	Card     model.Card
}

// CardUpdatedMsg is dispatched when an edit is submitted. Only the
// form-backed fields of Card are meaningful.
type CardUpdatedMsg struct {
	Card model.Card
}

// CancelMsg is dispatched when the user aborts the form.
type CancelMsg struct{}

// formBindings holds field values on the heap so huh's Value()
// pointers stay valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	dueDate     string
	cover       string
	columnID    string
	labels      []string
}

// Model is the Bubble Tea model for the card create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	catalog  *board.Catalog
	columns  []model.Column
	editMode bool
	editID   string
	width    int
	height   int
}

// New creates a card form.
func New(catalog *board.Catalog, width, height int) Model {
	return Model{
		fb:      &formBindings{},
		catalog: catalog,
		width:   width,
		height:  height,
	}
}

// SetColumns sets the columns available in the create-mode selector.
func (m *Model) SetColumns(columns []model.Column) {
	m.columns = columns
}

// StartCreate initializes the form for a new card in the given column.
func (m *Model) StartCreate(columnID string) tea.Cmd {
	m.editMode = false
	m.editID = ""
	m.fb.title = ""
	m.fb.description = ""
	m.fb.dueDate = ""
	m.fb.cover = ""
	m.fb.columnID = columnID
	m.fb.labels = nil
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form with an existing card's fields.
func (m *Model) StartEdit(card model.Card) tea.Cmd {
	m.editMode = true
	m.editID = card.ID
	m.fb.title = card.Title
	m.fb.description = card.Description
	m.fb.columnID = card.ColumnID
	if card.DueDate != nil {
		m.fb.dueDate = card.DueDate.Format("2006-01-02")
	} else {
		m.fb.dueDate = ""
	}
	m.fb.cover = card.Cover
	m.fb.labels = nil
	for _, l := range card.Labels {
		m.fb.labels = append(m.fb.labels, string(l.Color))
	}
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the card form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the card form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Card"
	if m.editMode {
		titleText = "Edit Card"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	fields := []huh.Field{
		huh.NewInput().
			Title("Title").
			Placeholder("What needs doing?").
			Value(&m.fb.title).
			Validate(validateRequired("Title")),
		huh.NewText().
			Title("Description").
			Placeholder("Optional details...").
			Value(&m.fb.description),
		huh.NewInput().
			Title("Due Date").
			Placeholder("YYYY-MM-DD (optional)").
			Value(&m.fb.dueDate).
			Validate(validateOptionalDate),
		huh.NewInput().
			Title("Cover").
			Placeholder("image URL (optional)").
			Value(&m.fb.cover),
		m.labelField(),
	}
	if !m.editMode && len(m.columns) > 0 {
		fields = append(fields, m.columnField())
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

// labelField offers the full fixed palette; option names come from the
// board-wide catalog so renamed labels show their custom names here too.
func (m *Model) labelField() huh.Field {
	opts := make([]huh.Option[string], len(model.LabelColors))
	for i, color := range model.LabelColors {
		opts[i] = huh.NewOption(m.catalog.NameFor(color), string(color))
	}
	return huh.NewMultiSelect[string]().
		Title("Labels").
		Options(opts...).
		Value(&m.fb.labels)
}

func (m *Model) columnField() huh.Field {
	opts := make([]huh.Option[string], len(m.columns))
	for i, c := range m.columns {
		opts[i] = huh.NewOption(c.Title, c.ID)
	}
	return huh.NewSelect[string]().
		Title("Column").
		Options(opts...).
		Value(&m.fb.columnID)
}

func (m Model) handleSubmit() tea.Cmd {
	card := model.Card{
		Title:       strings.TrimSpace(m.fb.title),
		Description: m.fb.description,
		Cover:       strings.TrimSpace(m.fb.cover),
	}

	if m.fb.dueDate != "" {
		t, err := time.Parse("2006-01-02", strings.TrimSpace(m.fb.dueDate))
		if err == nil {
			card.DueDate = &t
		}
	}

	for _, raw := range m.fb.labels {
		card.Labels = append(card.Labels, model.Label{Color: model.LabelColor(raw)})
	}

	if m.editMode {
		card.ID = m.editID
		return func() tea.Msg { return CardUpdatedMsg{Card: card} }
	}

	columnID := m.fb.columnID
	return func() tea.Msg { return CardCreatedMsg{ColumnID: columnID, Card: card} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
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

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}
