// Package cardview renders a single card's detail panel: description,
// labels, due-date gauge, the three-level checklist, decision thread,
// attachments, and comments. Every mutation is emitted as an intent
// message for the app layer to apply and persist.
package cardview

import (
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"opsboard/internal/board"
	"opsboard/internal/keys"
	"opsboard/internal/model"
)

// CloseMsg asks the parent to return to the board view.
type CloseMsg struct{}

// EditCardMsg asks the parent to open the card form for this card.
type EditCardMsg struct {
	CardID string
}

// ToggleChecklistItemMsg flips a checklist item's done state.
type ToggleChecklistItemMsg struct {
	CardID string
	ItemID string
}

// ToggleSubtaskMsg flips a subtask's done state.
type ToggleSubtaskMsg struct {
	CardID    string
	ItemID    string
	SubtaskID string
}

// ToggleSubSubtaskMsg flips a sub-subtask's done state.
type ToggleSubSubtaskMsg struct {
	CardID       string
	ItemID       string
	SubtaskID    string
	SubSubtaskID string
}

// AddChecklistItemMsg appends a top-level checklist item.
type AddChecklistItemMsg struct {
	CardID string
	Text   string
}

// AddSubtaskMsg appends a subtask under a checklist item.
type AddSubtaskMsg struct {
	CardID string
	ItemID string
	Text   string
}

// AddSubSubtaskMsg appends a sub-subtask under a subtask.
type AddSubSubtaskMsg struct {
	CardID    string
	ItemID    string
	SubtaskID string
	Text      string
}

// AddQuestionMsg opens a new question on the card.
type AddQuestionMsg struct {
	CardID string
	Text   string
}

// AddAnswerMsg appends an answer to a question. Answers are immutable
// once posted.
type AddAnswerMsg struct {
	CardID     string
	QuestionID string
	Text       string
}

// DeleteAnswerMsg removes an answer from a question.
type DeleteAnswerMsg struct {
	CardID     string
	QuestionID string
	AnswerID   string
}

// ResolveQuestionMsg marks a question resolved.
type ResolveQuestionMsg struct {
	CardID     string
	QuestionID string
}

// AssignChecklistItemMsg sets or clears a checklist item's assignee.
// A nil Member clears it.
type AssignChecklistItemMsg struct {
	CardID string
	ItemID string
	Member *model.Member
}

// AssignQuestionMsg routes a question to a member.
type AssignQuestionMsg struct {
	CardID     string
	QuestionID string
	Member     *model.Member
}

// AssignLabelMsg sets the collaborator for the label of the given
// color on the card. Assignment is overwrite semantics with at most
// one assignee; nil clears.
type AssignLabelMsg struct {
	CardID string
	Color  model.LabelColor
	Member *model.Member
}

// AddCommentMsg appends a comment to the card's log.
type AddCommentMsg struct {
	CardID string
	Text   string
}

// AttachLinkMsg attaches a URL to the card. Name is derived from the
// URL for display in the attachment list.
type AttachLinkMsg struct {
	CardID string
	Name   string
	URL    string
}

// UploadAttachmentMsg uploads a local file to the card. The app layer
// reads the file; the view only collects the path.
type UploadAttachmentMsg struct {
	CardID string
	Path   string
}

// DeleteAttachmentMsg removes an attachment.
type DeleteAttachmentMsg struct {
	CardID       string
	AttachmentID string
}

// RenameLabelMsg sets the board-wide display name for a label color.
type RenameLabelMsg struct {
	Color model.LabelColor
	Name  string
}

// ValidationMsg surfaces an input error before any request is sent.
type ValidationMsg struct {
	Text string
}

// inputTarget says what the inline text input is collecting.
type inputTarget int

const (
	inputNone inputTarget = iota
	inputChecklistItem
	inputSubtask
	inputSubSubtask
	inputQuestion
	inputAnswer
	inputComment
	inputLink
	inputUpload
	inputLabelName
)

// assignTarget says what the member picker will assign to.
type assignTarget int

const (
	assignNone assignTarget = iota
	assignLabel
	assignChecklistItem
	assignQuestion
)

// Model is the card detail view.
type Model struct {
	session *board.Session
	keys    *keys.KeyMap
	cardID  string

	rows   []row
	cursor int

	vp      viewport.Model
	input   textinput.Model
	target  inputTarget
	inputAt row

	picking   assignTarget
	pickAt    row
	memberIdx int

	now    time.Time
	width  int
	height int
}

// New creates a detail view for the given card.
func New(s *board.Session, k *keys.KeyMap, cardID string, width, height int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 500

	vp := viewport.New(width-4, height-4)

	m := Model{
		session: s,
		keys:    k,
		cardID:  cardID,
		vp:      vp,
		input:   ti,
		now:     time.Now(),
		width:   width,
		height:  height,
	}
	m.Rebuild()
	return m
}

// CardID returns the card this view is showing.
func (m Model) CardID() string {
	return m.cardID
}

// InputActive reports whether the inline input or the member picker is
// capturing keystrokes.
func (m Model) InputActive() bool {
	return m.target != inputNone || m.picking != assignNone
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.vp.Width = width - 4
	m.vp.Height = height - 4
	m.input.Width = width - 8
	m.Rebuild()
}

// SetNow updates the wall clock used for the fuel gauge.
func (m *Model) SetNow(now time.Time) {
	m.now = now
	m.Rebuild()
}

// Rebuild recomputes the row list and viewport content from the
// session's current copy of the card. Called after every reconciliation
// so optimistic and confirmed state both render from one source.
func (m *Model) Rebuild() {
	card, ok := m.session.Card(m.cardID)
	if !ok {
		m.rows = nil
		m.vp.SetContent("")
		return
	}

	m.session.Catalog().Observe(card.Labels)
	content := m.layout(card)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.vp.SetContent(content)
	m.scrollToCursor()
}

// Gone reports whether the card no longer exists in the session, for
// example after an archive confirmation.
func (m Model) Gone() bool {
	_, ok := m.session.Card(m.cardID)
	return !ok
}

// Update handles messages for the card detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.target != inputNone {
		return m.handleInputKeys(keyMsg)
	}
	if m.picking != assignNone {
		return m.handlePickerKeys(keyMsg)
	}

	if _, ok := m.session.Card(m.cardID); !ok {
		return m, closeView()
	}

	switch {
	case key.Matches(keyMsg, m.keys.Back):
		return m, closeView()

	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.scrollToCursor()
		return m, nil

	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		m.scrollToCursor()
		return m, nil

	case key.Matches(keyMsg, m.keys.Toggle):
		return m.toggleAtCursor()

	case key.Matches(keyMsg, m.keys.Add):
		return m.startAddAtCursor()

	case key.Matches(keyMsg, m.keys.Assign):
		return m.startAssignAtCursor()

	case key.Matches(keyMsg, m.keys.Comment):
		return m.startInput(inputComment, "write a comment", row{})

	case key.Matches(keyMsg, m.keys.Edit):
		return m.editAtCursor()

	case key.Matches(keyMsg, m.keys.Delete):
		return m.deleteAtCursor()

	case keyMsg.String() == "L":
		return m.startInput(inputLink, "https://", row{})

	case keyMsg.String() == "U":
		return m.startInput(inputUpload, "path to file", row{})
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// toggleAtCursor flips the done/resolved state of the selected row.
func (m Model) toggleAtCursor() (Model, tea.Cmd) {
	r, ok := m.currentRow()
	if !ok {
		return m, nil
	}
	cardID := m.cardID

	switch r.kind {
	case rowChecklistItem:
		return m, func() tea.Msg {
			return ToggleChecklistItemMsg{CardID: cardID, ItemID: r.itemID}
		}
	case rowSubtask:
		return m, func() tea.Msg {
			return ToggleSubtaskMsg{CardID: cardID, ItemID: r.itemID, SubtaskID: r.subtaskID}
		}
	case rowSubSubtask:
		return m, func() tea.Msg {
			return ToggleSubSubtaskMsg{
				CardID: cardID, ItemID: r.itemID,
				SubtaskID: r.subtaskID, SubSubtaskID: r.subsubID,
			}
		}
	case rowQuestion:
		return m, func() tea.Msg {
			return ResolveQuestionMsg{CardID: cardID, QuestionID: r.questionID}
		}
	}
	return m, nil
}

// startAddAtCursor opens the inline input for the entry kind the
// cursor context implies: a subtask under a checklist item, a
// sub-subtask under a subtask, an answer under a question, otherwise a
// new top-level checklist entry.
func (m Model) startAddAtCursor() (Model, tea.Cmd) {
	r, _ := m.currentRow()

	switch r.kind {
	case rowChecklistItem:
		return m.startInput(inputSubtask, "subtask", r)
	case rowSubtask, rowSubSubtask:
		if r.kind == rowSubSubtask {
			// Siblings, not children: sub-subtasks are the last level.
			r = row{kind: rowSubtask, itemID: r.itemID, subtaskID: r.subtaskID}
		}
		return m.startInput(inputSubSubtask, "sub-subtask", r)
	case rowQuestion, rowAnswer:
		return m.startInput(inputAnswer, "answer", r)
	case rowQuestionsHeader:
		return m.startInput(inputQuestion, "question", r)
	default:
		return m.startInput(inputChecklistItem, "checklist entry", r)
	}
}

// startAssignAtCursor opens the member picker for the cursor context:
// a checklist item, a question, or the card itself.
func (m Model) startAssignAtCursor() (Model, tea.Cmd) {
	if len(m.session.Members()) == 0 {
		return m, notifyText("No members registered")
	}

	r, _ := m.currentRow()
	switch r.kind {
	case rowChecklistItem:
		m.picking = assignChecklistItem
	case rowQuestion:
		m.picking = assignQuestion
	case rowLabel:
		m.picking = assignLabel
	default:
		return m, notifyText("Select a label, checklist entry, or question to assign")
	}
	m.pickAt = r
	m.memberIdx = 0
	return m, nil
}

// editAtCursor opens the card form, or the label rename input when the
// cursor sits on a label row.
func (m Model) editAtCursor() (Model, tea.Cmd) {
	r, _ := m.currentRow()
	if r.kind == rowLabel {
		mm, cmd := m.startInput(inputLabelName, "label name", r)
		mm.input.SetValue(m.session.Catalog().NameFor(r.labelColor))
		return mm, cmd
	}
	cardID := m.cardID
	return m, func() tea.Msg { return EditCardMsg{CardID: cardID} }
}

// deleteAtCursor removes the selected answer or attachment.
func (m Model) deleteAtCursor() (Model, tea.Cmd) {
	r, ok := m.currentRow()
	if !ok {
		return m, nil
	}
	cardID := m.cardID

	switch r.kind {
	case rowAnswer:
		return m, func() tea.Msg {
			return DeleteAnswerMsg{CardID: cardID, QuestionID: r.questionID, AnswerID: r.answerID}
		}
	case rowAttachment:
		return m, func() tea.Msg {
			return DeleteAttachmentMsg{CardID: cardID, AttachmentID: r.attachmentID}
		}
	}
	return m, nil
}

// startInput focuses the inline input for the given target.
func (m Model) startInput(target inputTarget, placeholder string, at row) (Model, tea.Cmd) {
	m.target = target
	m.inputAt = at
	m.input.Placeholder = placeholder
	m.input.Reset()
	return m, m.input.Focus()
}

// handleInputKeys processes the inline input and emits the collected
// intent on enter.
func (m Model) handleInputKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.target = inputNone
		m.input.Blur()
		return m, nil

	case "enter":
		text := strings.TrimSpace(m.input.Value())
		target := m.target
		at := m.inputAt
		m.target = inputNone
		m.input.Blur()

		if text == "" && target != inputLabelName {
			return m, notifyText("Entry must not be empty")
		}
		return m, m.submitInput(target, at, text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submitInput turns a finished input into its intent message.
func (m Model) submitInput(target inputTarget, at row, text string) tea.Cmd {
	cardID := m.cardID

	switch target {
	case inputChecklistItem:
		return func() tea.Msg { return AddChecklistItemMsg{CardID: cardID, Text: text} }
	case inputSubtask:
		return func() tea.Msg {
			return AddSubtaskMsg{CardID: cardID, ItemID: at.itemID, Text: text}
		}
	case inputSubSubtask:
		return func() tea.Msg {
			return AddSubSubtaskMsg{
				CardID: cardID, ItemID: at.itemID,
				SubtaskID: at.subtaskID, Text: text,
			}
		}
	case inputQuestion:
		return func() tea.Msg { return AddQuestionMsg{CardID: cardID, Text: text} }
	case inputAnswer:
		return func() tea.Msg {
			return AddAnswerMsg{CardID: cardID, QuestionID: at.questionID, Text: text}
		}
	case inputComment:
		return func() tea.Msg { return AddCommentMsg{CardID: cardID, Text: text} }
	case inputLink:
		if !strings.HasPrefix(text, "http://") && !strings.HasPrefix(text, "https://") {
			return notifyText("Link must start with http:// or https://")
		}
		return func() tea.Msg {
			return AttachLinkMsg{CardID: cardID, Name: linkTitle(text), URL: text}
		}
	case inputUpload:
		return func() tea.Msg { return UploadAttachmentMsg{CardID: cardID, Path: text} }
	case inputLabelName:
		color := at.labelColor
		return func() tea.Msg { return RenameLabelMsg{Color: color, Name: text} }
	}
	return nil
}

// handlePickerKeys drives the member picker. Index 0 is "unassign".
func (m Model) handlePickerKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	members := m.session.Members()

	switch {
	case key.Matches(msg, m.keys.Back):
		m.picking = assignNone
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.memberIdx > 0 {
			m.memberIdx--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.memberIdx < len(members) {
			m.memberIdx++
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		var member *model.Member
		if m.memberIdx > 0 && m.memberIdx <= len(members) {
			picked := members[m.memberIdx-1]
			member = &picked
		}

		target := m.picking
		at := m.pickAt
		cardID := m.cardID
		m.picking = assignNone

		switch target {
		case assignLabel:
			return m, func() tea.Msg {
				return AssignLabelMsg{CardID: cardID, Color: at.labelColor, Member: member}
			}
		case assignChecklistItem:
			return m, func() tea.Msg {
				return AssignChecklistItemMsg{CardID: cardID, ItemID: at.itemID, Member: member}
			}
		case assignQuestion:
			return m, func() tea.Msg {
				return AssignQuestionMsg{CardID: cardID, QuestionID: at.questionID, Member: member}
			}
		}
		return m, nil
	}
	return m, nil
}

// currentRow returns the row under the cursor.
func (m Model) currentRow() (row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return row{}, false
	}
	return m.rows[m.cursor], true
}

// scrollToCursor keeps the selected row inside the viewport.
func (m *Model) scrollToCursor() {
	r, ok := m.currentRow()
	if !ok {
		return
	}
	top := m.vp.YOffset
	bottom := top + m.vp.Height - 1
	if r.line < top {
		m.vp.SetYOffset(r.line)
	} else if r.line > bottom {
		m.vp.SetYOffset(r.line - m.vp.Height + 1)
	}
}

// linkTitle derives a display name for a link attachment: the host
// plus the last path segment, falling back to the raw URL.
func linkTitle(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	if base := path.Base(u.Path); base != "" && base != "/" && base != "." {
		return u.Host + "/" + base
	}
	return u.Host
}

// closeView wraps CloseMsg into a command.
func closeView() tea.Cmd {
	return func() tea.Msg { return CloseMsg{} }
}

// notifyText wraps a validation message into a command.
func notifyText(text string) tea.Cmd {
	return func() tea.Msg { return ValidationMsg{Text: text} }
}
