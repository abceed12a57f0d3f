package cardview

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"opsboard/internal/board"
	"opsboard/internal/keys"
	"opsboard/internal/model"
)

func testModel(t *testing.T) (Model, *board.Session) {
	t.Helper()

	s := board.NewSession()
	s.Load(
		[]model.Column{{ID: "col-a", Title: "Todo", Position: 0}},
		[]model.Card{{
			ID:       "c1",
			ColumnID: "col-a",
			Title:    "ship the release",
			Position: 0,
			Checklist: []model.ChecklistItem{
				{
					ID: "i1", Text: "pack",
					Subtasks: []model.Subtask{{ID: "s1", Text: "label boxes"}},
				},
			},
			Questions: []model.Question{
				{ID: "q1", Text: "which carrier?", Answers: []model.Answer{
					{ID: "a1", Text: "the usual", Author: "ops"},
				}},
			},
		}},
	)
	return New(s, keys.DefaultKeyMap(), "c1", 100, 40), s
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestRowsCoverChecklistAndThread(t *testing.T) {
	m, _ := testModel(t)

	var kinds []rowKind
	for _, r := range m.rows {
		kinds = append(kinds, r.kind)
	}

	want := []rowKind{rowChecklistItem, rowSubtask, rowQuestionsHeader, rowQuestion, rowAnswer}
	if len(kinds) != len(want) {
		t.Fatalf("row kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("row kinds = %v, want %v", kinds, want)
		}
	}
}

func TestToggleEmitsChecklistIntent(t *testing.T) {
	m, _ := testModel(t)

	m, cmd := m.Update(keyPress('x'))
	if cmd == nil {
		t.Fatal("toggle on a checklist row must emit an intent")
	}
	msg, ok := cmd().(ToggleChecklistItemMsg)
	if !ok {
		t.Fatalf("command produced %T, want ToggleChecklistItemMsg", cmd())
	}
	if msg.CardID != "c1" || msg.ItemID != "i1" {
		t.Fatalf("intent = %+v", msg)
	}
}

func TestAddUnderSubtaskTargetsSubSubtask(t *testing.T) {
	m, _ := testModel(t)

	// Move to the subtask row, open the add input, submit.
	m, _ = m.Update(keyPress('j'))
	m, _ = m.Update(keyPress('a'))
	if m.target != inputSubSubtask {
		t.Fatalf("input target = %v, want sub-subtask", m.target)
	}

	for _, r := range "wrap" {
		m, _ = m.Update(keyPress(r))
	}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg, ok := cmd().(AddSubSubtaskMsg)
	if !ok {
		t.Fatalf("command produced %T, want AddSubSubtaskMsg", cmd())
	}
	if msg.SubtaskID != "s1" || msg.Text != "wrap" {
		t.Fatalf("intent = %+v", msg)
	}
}

func TestResolveIntentOnQuestionRow(t *testing.T) {
	m, _ := testModel(t)

	// checklist item, subtask, questions header, question.
	for i := 0; i < 3; i++ {
		m, _ = m.Update(keyPress('j'))
	}
	m, cmd := m.Update(keyPress('x'))
	msg, ok := cmd().(ResolveQuestionMsg)
	if !ok {
		t.Fatalf("command produced %T, want ResolveQuestionMsg", cmd())
	}
	if msg.QuestionID != "q1" {
		t.Fatalf("intent = %+v", msg)
	}
}

func TestDeleteOnAnswerRow(t *testing.T) {
	m, _ := testModel(t)

	for i := 0; i < 4; i++ {
		m, _ = m.Update(keyPress('j'))
	}
	m, cmd := m.Update(keyPress('D'))
	msg, ok := cmd().(DeleteAnswerMsg)
	if !ok {
		t.Fatalf("command produced %T, want DeleteAnswerMsg", cmd())
	}
	if msg.QuestionID != "q1" || msg.AnswerID != "a1" {
		t.Fatalf("intent = %+v", msg)
	}
}

func TestAssignRequiresMembers(t *testing.T) {
	m, s := testModel(t)

	m, cmd := m.Update(keyPress('@'))
	if _, ok := cmd().(ValidationMsg); !ok {
		t.Fatal("assign with an empty directory should notify")
	}

	s.SetMembers([]model.Member{{ID: "m1", Username: "jdoe"}})
	m, _ = m.Update(keyPress('@'))
	if m.picking != assignChecklistItem {
		t.Fatalf("picking = %v, want checklist item", m.picking)
	}
}

func TestLinkAttachmentCarriesDerivedName(t *testing.T) {
	m, _ := testModel(t)

	m, _ = m.Update(keyPress('L'))
	if m.target != inputLink {
		t.Fatal("L should open the link input")
	}

	for _, r := range "https://wiki.corp.example.com/runbooks/failover" {
		m, _ = m.Update(keyPress(r))
	}
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg, ok := cmd().(AttachLinkMsg)
	if !ok {
		t.Fatalf("command produced %T, want AttachLinkMsg", cmd())
	}
	if msg.URL != "https://wiki.corp.example.com/runbooks/failover" {
		t.Fatalf("url = %q", msg.URL)
	}
	if msg.Name != "wiki.corp.example.com/failover" {
		t.Fatalf("name = %q, want host plus last segment", msg.Name)
	}
}

func TestLinkTitleFallsBackToHost(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"https://status.example.com", "status.example.com"},
		{"https://status.example.com/", "status.example.com"},
		{"https://example.com/incident/4521", "example.com/4521"},
		{"not a url", "not a url"},
	}
	for _, tc := range cases {
		if got := linkTitle(tc.raw); got != tc.want {
			t.Errorf("linkTitle(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}
