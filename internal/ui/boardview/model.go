// Package boardview renders the board's columns and cards and turns
// keyboard interaction into reorder and CRUD intents for the app layer.
package boardview

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"opsboard/internal/board"
	"opsboard/internal/keys"
	"opsboard/internal/model"
	"opsboard/internal/theme"
)

// OpenCardMsg asks the parent to open the card detail view.
type OpenCardMsg struct {
	CardID string
}

// MoveCardMsg reports an optimistic card move the parent must persist.
type MoveCardMsg struct {
	Move board.CardMove
}

// MoveColumnMsg reports an optimistic column move; Order is the full
// ordered id list, the wire format for a column reorder.
type MoveColumnMsg struct {
	Order []string
}

// CreateCardMsg asks the parent to quick-create a card (title only).
type CreateCardMsg struct {
	ColumnID string
	Title    string
}

// CreateColumnMsg asks the parent to quick-create a column.
type CreateColumnMsg struct {
	Title string
}

// ArchiveCardMsg asks the parent to archive the card.
type ArchiveCardMsg struct {
	CardID string
}

// DeleteColumnMsg asks the parent to delete the focused column and,
// by cascade, its cards.
type DeleteColumnMsg struct {
	ColumnID string
}

// RenameColumnMsg asks the parent to retitle the focused column.
type RenameColumnMsg struct {
	ColumnID string
	Title    string
}

// CopyCardMsg asks the parent to duplicate the card into a column.
type CopyCardMsg struct {
	CardID     string
	ToColumnID string
}

// ValidationMsg surfaces an input error before any request is sent.
type ValidationMsg struct {
	Text string
}

// inputTarget says what the inline text input is collecting.
type inputTarget int

const (
	inputNone inputTarget = iota
	inputNewCard
	inputNewColumn
	inputRenameColumn
)

// Model is the board columns view.
type Model struct {
	session *board.Session
	keys    *keys.KeyMap

	colIdx  int
	cardIdx int

	// grabbing marks move mode: navigation keys carry the grabbed
	// card (or column) instead of moving the cursor.
	grabbing    bool
	grabbingCol bool

	input  textinput.Model
	target inputTarget

	now    time.Time
	width  int
	height int
}

// New creates a board view over the shared session.
func New(s *board.Session, k *keys.KeyMap, width, height int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 120

	return Model{
		session: s,
		keys:    k,
		input:   ti,
		now:     time.Now(),
		width:   width,
		height:  height,
	}
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// SetNow updates the wall clock used for fuel gauges.
func (m *Model) SetNow(now time.Time) {
	m.now = now
}

// ClampCursor keeps the cursor valid after the session changed
// underneath the view (reload, reorder confirmation, card removal).
func (m *Model) ClampCursor() {
	cols := m.session.Columns()
	if len(cols) == 0 {
		m.colIdx, m.cardIdx = 0, 0
		m.grabbing, m.grabbingCol = false, false
		return
	}
	if m.colIdx >= len(cols) {
		m.colIdx = len(cols) - 1
	}
	cards := m.session.CardsFor(cols[m.colIdx].ID)
	if m.cardIdx >= len(cards) {
		m.cardIdx = len(cards) - 1
	}
	if m.cardIdx < 0 {
		m.cardIdx = 0
	}
}

// InputActive reports whether the inline quick-create input is
// capturing keystrokes.
func (m Model) InputActive() bool {
	return m.target != inputNone
}

// SelectedCard returns the card under the cursor.
func (m Model) SelectedCard() (model.Card, bool) {
	cols := m.session.Columns()
	if m.colIdx >= len(cols) {
		return model.Card{}, false
	}
	cards := m.session.CardsFor(cols[m.colIdx].ID)
	if m.cardIdx >= len(cards) {
		return model.Card{}, false
	}
	return cards[m.cardIdx], true
}

// Update handles messages for the board view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.target != inputNone {
		return m.handleInputKeys(keyMsg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Left):
		return m.moveFocus(-1, 0)
	case key.Matches(keyMsg, m.keys.Right):
		return m.moveFocus(1, 0)
	case key.Matches(keyMsg, m.keys.Up):
		return m.moveFocus(0, -1)
	case key.Matches(keyMsg, m.keys.Down):
		return m.moveFocus(0, 1)

	case key.Matches(keyMsg, m.keys.Grab):
		if m.grabbing || m.grabbingCol {
			m.grabbing, m.grabbingCol = false, false
			return m, nil
		}
		if _, ok := m.SelectedCard(); ok {
			m.grabbing = true
		}
		return m, nil

	case keyMsg.String() == "G":
		// Grab the whole column for reordering.
		if m.grabbingCol {
			m.grabbingCol = false
			return m, nil
		}
		if len(m.session.Columns()) > 0 {
			m.grabbingCol = true
			m.grabbing = false
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Select):
		if card, ok := m.SelectedCard(); ok {
			id := card.ID
			return m, func() tea.Msg { return OpenCardMsg{CardID: id} }
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.NewCard):
		if len(m.session.Columns()) == 0 {
			return m, notify("Create a column first")
		}
		m.target = inputNewCard
		m.input.Placeholder = "card title"
		m.input.Reset()
		return m, m.input.Focus()

	case key.Matches(keyMsg, m.keys.NewColumn):
		m.target = inputNewColumn
		m.input.Placeholder = "column title"
		m.input.Reset()
		return m, m.input.Focus()

	case key.Matches(keyMsg, m.keys.Archive):
		if card, ok := m.SelectedCard(); ok {
			id := card.ID
			return m, func() tea.Msg { return ArchiveCardMsg{CardID: id} }
		}
		return m, nil

	case key.Matches(keyMsg, m.keys.Delete):
		cols := m.session.Columns()
		if m.colIdx < len(cols) {
			id := cols[m.colIdx].ID
			return m, func() tea.Msg { return DeleteColumnMsg{ColumnID: id} }
		}
		return m, nil

	case keyMsg.String() == "R":
		cols := m.session.Columns()
		if m.colIdx < len(cols) {
			m.target = inputRenameColumn
			m.input.Placeholder = "column title"
			m.input.SetValue(cols[m.colIdx].Title)
			return m, m.input.Focus()
		}
		return m, nil

	case keyMsg.String() == "y":
		if card, ok := m.SelectedCard(); ok {
			id, colID := card.ID, card.ColumnID
			return m, func() tea.Msg {
				return CopyCardMsg{CardID: id, ToColumnID: colID}
			}
		}
		return m, nil
	}

	return m, nil
}

// handleInputKeys processes the inline quick-create input.
func (m Model) handleInputKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		title := strings.TrimSpace(m.input.Value())
		target := m.target
		m.target = inputNone
		m.input.Blur()

		if title == "" {
			return m, notify("Title must not be empty")
		}

		if target == inputNewColumn {
			return m, func() tea.Msg { return CreateColumnMsg{Title: title} }
		}

		cols := m.session.Columns()
		if target == inputRenameColumn {
			if m.colIdx >= len(cols) {
				return m, nil
			}
			colID := cols[m.colIdx].ID
			return m, func() tea.Msg {
				return RenameColumnMsg{ColumnID: colID, Title: title}
			}
		}

		if m.colIdx >= len(cols) {
			return m, nil
		}
		colID := cols[m.colIdx].ID
		return m, func() tea.Msg {
			return CreateCardMsg{ColumnID: colID, Title: title}
		}

	case "esc":
		m.target = inputNone
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// moveFocus moves the cursor, or carries the grabbed card/column when
// move mode is active. Carrying applies the reorder optimistically to
// the session and emits the persistence intent.
func (m Model) moveFocus(dx, dy int) (Model, tea.Cmd) {
	cols := m.session.Columns()
	if len(cols) == 0 {
		return m, nil
	}

	if m.grabbingCol && dx != 0 {
		return m.carryColumn(dx)
	}
	if m.grabbing {
		return m.carryCard(dx, dy)
	}

	if dx != 0 {
		m.colIdx += dx
		if m.colIdx < 0 {
			m.colIdx = 0
		}
		if m.colIdx >= len(cols) {
			m.colIdx = len(cols) - 1
		}
		m.ClampCursor()
		return m, nil
	}

	cards := m.session.CardsFor(cols[m.colIdx].ID)
	if len(cards) == 0 {
		return m, nil
	}
	m.cardIdx += dy
	if m.cardIdx < 0 {
		m.cardIdx = 0
	}
	if m.cardIdx >= len(cards) {
		m.cardIdx = len(cards) - 1
	}
	return m, nil
}

// carryCard moves the grabbed card one step and reports the delta.
func (m Model) carryCard(dx, dy int) (Model, tea.Cmd) {
	card, ok := m.SelectedCard()
	if !ok {
		m.grabbing = false
		return m, nil
	}

	cols := m.session.Columns()
	toCol := m.colIdx + dx
	if toCol < 0 || toCol >= len(cols) {
		return m, nil
	}

	toIdx := m.cardIdx + dy
	if dx != 0 {
		// Crossing columns keeps the same visual row where possible.
		toIdx = m.cardIdx
	}
	if toIdx < 0 {
		return m, nil
	}

	move, err := m.session.MoveCard(card.ID, cols[toCol].ID, toIdx)
	if err != nil {
		return m, notify(err.Error())
	}

	m.colIdx = toCol
	m.cardIdx = move.ToIndex
	m.ClampCursor()

	return m, func() tea.Msg { return MoveCardMsg{Move: move} }
}

// carryColumn moves the grabbed column one step and reports the new order.
func (m Model) carryColumn(dx int) (Model, tea.Cmd) {
	to := m.colIdx + dx
	order, err := m.session.MoveColumn(m.colIdx, to)
	if err != nil {
		return m, nil
	}

	m.colIdx = to
	return m, func() tea.Msg { return MoveColumnMsg{Order: order} }
}

// notify wraps a validation message into a command.
func notify(text string) tea.Cmd {
	return func() tea.Msg { return ValidationMsg{Text: text} }
}

// View renders the columns side by side.
func (m Model) View() string {
	cols := m.session.Columns()
	if len(cols) == 0 {
		return m.renderEmptyState()
	}

	colWidth := m.columnWidth(len(cols))

	rendered := make([]string, 0, len(cols))
	for i, col := range cols {
		rendered = append(rendered, m.renderColumn(col, i, colWidth))
	}
	boardRow := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	if m.target != inputNone {
		inputBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.input.View())
		return lipgloss.JoinVertical(lipgloss.Left, inputBar, boardRow)
	}

	return boardRow
}

// columnWidth divides the available width across visible columns.
func (m Model) columnWidth(n int) int {
	w := m.width/n - 2
	if w < 18 {
		w = 18
	}
	if w > 40 {
		w = 40
	}
	return w
}

// renderColumn draws one column with its header and cards.
func (m Model) renderColumn(col model.Column, idx int, width int) string {
	catalog := m.session.Catalog()
	cards := m.session.CardsFor(col.ID)

	header := theme.ColumnTitleStyle.Render(
		truncate(col.Title, width-6) + countBadge(len(cards)),
	)

	lines := []string{header}
	for i, card := range cards {
		lines = append(lines, m.renderCard(card, catalog, idx == m.colIdx && i == m.cardIdx, width))
	}
	if len(cards) == 0 {
		lines = append(lines, theme.DimmedStyle.Render("(empty)"))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, lines...)

	style := theme.ColumnStyle
	if idx == m.colIdx {
		style = theme.FocusedColumnStyle
		if m.grabbingCol {
			style = style.BorderForeground(theme.ColorOrange)
		}
	}
	return style.Width(width).Render(body)
}

// renderCard draws a single card row: title, label chips, fuel
// countdown, and checklist badge.
func (m Model) renderCard(card model.Card, catalog *board.Catalog, selected bool, width int) string {
	title := truncate(card.Title, width-4)

	var parts []string
	parts = append(parts, title)

	if chips := labelChips(card.Labels, catalog); chips != "" {
		parts = append(parts, chips)
	}

	var meta []string
	if card.DueDate != nil {
		g := board.Fuel(card.DueDate, m.now)
		meta = append(meta, theme.FuelStyle(g.ColorClass).Render(g.Label))
	}
	if done, total := board.ChecklistSummary(card); total > 0 {
		meta = append(meta, theme.DimmedStyle.Render(checkBadge(done, total)))
	}
	if open := board.OpenQuestionCount(card); open > 0 {
		meta = append(meta, theme.DimmedStyle.Render(questionBadge(open)))
	}
	if len(meta) > 0 {
		parts = append(parts, strings.Join(meta, " "))
	}

	content := strings.Join(parts, "\n")

	switch {
	case selected && m.grabbing:
		return theme.GrabbedCardStyle.Width(width - 2).Render(content)
	case selected:
		return theme.SelectedCardStyle.Width(width - 2).Render(content)
	default:
		return theme.CardStyle.Width(width - 2).Render(content)
	}
}

// renderEmptyState shows guidance text when the board has no columns.
func (m Model) renderEmptyState() string {
	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if m.target == inputNewColumn {
		return lipgloss.JoinVertical(lipgloss.Left, m.input.View())
	}

	return style.Render("Empty board.\n\nPress N to create the first column.")
}
