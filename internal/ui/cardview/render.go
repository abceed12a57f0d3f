package cardview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"opsboard/internal/board"
	"opsboard/internal/model"
	"opsboard/internal/theme"
)

// rowKind identifies what an interactive row points at.
type rowKind int

const (
	rowLabel rowKind = iota
	rowChecklistItem
	rowSubtask
	rowSubSubtask
	rowQuestionsHeader
	rowQuestion
	rowAnswer
	rowAttachment
	rowComment
)

// row is one selectable line of the detail panel. line is its index in
// the rendered viewport content, used to keep the cursor visible.
type row struct {
	kind rowKind
	line int

	itemID       string
	subtaskID    string
	subsubID     string
	questionID   string
	answerID     string
	attachmentID string
	labelColor   model.LabelColor
}

var (
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(theme.ColorBlue)
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(theme.ColorYellow)
	doneStyle    = lipgloss.NewStyle().Strikethrough(true).Foreground(theme.ColorGray)
)

// layout rebuilds m.rows and returns the rendered panel content. Rows
// and lines are produced in a single pass so row.line always matches
// the content.
func (m *Model) layout(card model.Card) string {
	m.rows = m.rows[:0]
	var lines []string

	push := func(r row, text string) {
		r.line = len(lines)
		if len(m.rows) == m.cursor {
			text = cursorStyle.Render("▌") + text
		} else {
			text = " " + text
		}
		m.rows = append(m.rows, r)
		lines = append(lines, text)
	}
	plain := func(text string) {
		lines = append(lines, " "+text)
	}

	// Header block: title, assignee, due-date gauge.
	plain(lipgloss.NewStyle().Bold(true).Render(card.Title))
	if len(card.Assignees) > 0 {
		plain(theme.DimmedStyle.Render("assigned to " + card.Assignees[0].Display()))
	}
	g := board.Fuel(card.DueDate, m.now)
	plain(theme.FuelStyle(g.ColorClass).Render(fuelBar(g)))
	plain("")

	if len(card.Labels) > 0 {
		plain(sectionStyle.Render("Labels"))
		catalog := m.session.Catalog()
		for _, l := range card.Labels {
			text := theme.LabelStyle(l.Color).Render(catalog.DisplayName(l))
			if l.Assignee != nil {
				text += theme.DimmedStyle.Render(" @" + l.Assignee.Username)
			}
			push(row{kind: rowLabel, labelColor: l.Color}, text)
		}
		plain("")
	}

	if card.Description != "" {
		plain(sectionStyle.Render("Description"))
		for _, dl := range strings.Split(card.Description, "\n") {
			plain(dl)
		}
		plain("")
	}

	if len(card.Checklist) > 0 {
		done, total := board.ChecklistSummary(card)
		plain(sectionStyle.Render(fmt.Sprintf("Checklist %d/%d", done, total)))
		for _, item := range card.Checklist {
			m.layoutChecklistItem(push, plain, item)
		}
		plain("")
	}

	push(row{kind: rowQuestionsHeader},
		sectionStyle.Render(fmt.Sprintf("Questions (%d open)", board.OpenQuestionCount(card))))
	for _, q := range card.Questions {
		m.layoutQuestion(push, plain, q)
	}
	plain("")

	if len(card.Attachments) > 0 {
		plain(sectionStyle.Render("Attachments"))
		for _, a := range card.Attachments {
			push(row{kind: rowAttachment, attachmentID: a.ID}, attachmentLine(a))
		}
		plain("")
	}

	if len(card.Comments) > 0 {
		plain(sectionStyle.Render("Comments"))
		for _, c := range card.Comments {
			push(row{kind: rowComment},
				theme.DimmedStyle.Render(c.Author+" · "+c.CreatedAt.Format("Jan 2 15:04")))
			for _, cl := range strings.Split(c.Text, "\n") {
				plain("  " + cl)
			}
		}
	}

	return strings.Join(lines, "\n")
}

// layoutChecklistItem renders a checklist item and its two nested
// levels. The item line carries its immediate-children progress.
func (m *Model) layoutChecklistItem(push func(row, string), plain func(string), item model.ChecklistItem) {
	text := checkbox(item.Done) + " " + item.Text
	if item.Done {
		text = checkbox(true) + " " + doneStyle.Render(item.Text)
	}
	if len(item.Subtasks) > 0 {
		text += theme.DimmedStyle.Render(fmt.Sprintf(" %d%%", board.Progress(item)))
	}
	if item.Assignee != nil {
		text += theme.DimmedStyle.Render(" @" + item.Assignee.Username)
	}
	push(row{kind: rowChecklistItem, itemID: item.ID}, text)

	for _, st := range item.Subtasks {
		stText := "  " + checkbox(st.Done) + " " + st.Text
		if st.Done {
			stText = "  " + checkbox(true) + " " + doneStyle.Render(st.Text)
		}
		if len(st.SubSubtasks) > 0 {
			stText += theme.DimmedStyle.Render(fmt.Sprintf(" %d%%", board.SubtaskProgress(st)))
		}
		push(row{kind: rowSubtask, itemID: item.ID, subtaskID: st.ID}, stText)

		for _, ss := range st.SubSubtasks {
			ssText := "    " + checkbox(ss.Done) + " " + ss.Text
			if ss.Done {
				ssText = "    " + checkbox(true) + " " + doneStyle.Render(ss.Text)
			}
			push(row{kind: rowSubSubtask, itemID: item.ID, subtaskID: st.ID, subsubID: ss.ID}, ssText)
		}
	}
}

// layoutQuestion renders a question and its answers.
func (m *Model) layoutQuestion(push func(row, string), plain func(string), q model.Question) {
	marker := "?"
	text := q.Text
	if q.Resolved {
		marker = "✓"
		text = doneStyle.Render(q.Text)
	}
	line := marker + " " + text
	if q.Assignee != nil {
		line += theme.DimmedStyle.Render(" @" + q.Assignee.Username)
	}
	push(row{kind: rowQuestion, questionID: q.ID}, line)

	for _, a := range q.Answers {
		push(row{kind: rowAnswer, questionID: q.ID, answerID: a.ID},
			"  ↳ "+a.Text+theme.DimmedStyle.Render(" — "+a.Author))
	}
}

// View renders the detail panel, overlaying the member picker or the
// inline input when one is active.
func (m Model) View() string {
	if _, ok := m.session.Card(m.cardID); !ok {
		return theme.DimmedStyle.Render("Card is gone.")
	}

	body := theme.DetailPanelStyle.Width(m.width - 2).Render(m.vp.View())

	var footer string
	switch {
	case m.picking != assignNone:
		footer = m.renderPicker()
	case m.target != inputNone:
		footer = lipgloss.NewStyle().Padding(0, 1).Render(m.input.View())
	default:
		footer = theme.HelpStyle.Render(
			"x toggle · a add · @ assign · c comment · e edit · L link · U upload · D delete · esc back")
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

// renderPicker draws the member selection list. Index 0 clears the
// assignment.
func (m Model) renderPicker() string {
	members := m.session.Members()
	lines := []string{sectionStyle.Render("Assign to")}

	options := make([]string, 0, len(members)+1)
	options = append(options, "(nobody)")
	for _, member := range members {
		options = append(options, member.Display())
	}

	for i, opt := range options {
		if i == m.memberIdx {
			lines = append(lines, cursorStyle.Render("▌"+opt))
		} else {
			lines = append(lines, " "+opt)
		}
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.ColorBorder).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// attachmentLine renders one attachment entry.
func attachmentLine(a model.Attachment) string {
	icon := "🔗"
	if a.Kind == model.AttachmentFile {
		icon = "📄"
	}
	line := icon + " " + a.Name
	if a.Kind == model.AttachmentLink && a.URL != "" {
		line += theme.DimmedStyle.Render(" " + a.URL)
	}
	return line
}

// checkbox renders a done marker.
func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// fuelBar renders the gauge as a filled bar plus its label.
func fuelBar(g board.Gauge) string {
	const width = 20
	filled := g.Level * width / 100
	if filled > width {
		filled = width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return bar + " " + g.Label
}
