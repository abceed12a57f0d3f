package boardview

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
		[]model.Column{
			{ID: "col-a", Title: "Todo", Position: 0},
			{ID: "col-b", Title: "Doing", Position: 1},
		},
		[]model.Card{
			{ID: "c1", ColumnID: "col-a", Title: "one", Position: 0},
			{ID: "c2", ColumnID: "col-a", Title: "two", Position: 1},
			{ID: "c3", ColumnID: "col-b", Title: "three", Position: 0},
		},
	)
	return New(s, keys.DefaultKeyMap(), 120, 40), s
}

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestGrabCarryAcrossColumns(t *testing.T) {
	m, s := testModel(t)

	// Grab the first card and carry it one column right.
	m, _ = m.Update(keyPress(' '))
	if !m.grabbing {
		t.Fatal("space should enter grab mode on a card")
	}

	m, cmd := m.Update(keyPress('l'))
	if cmd == nil {
		t.Fatal("carry must emit a move command")
	}
	msg, ok := cmd().(MoveCardMsg)
	if !ok {
		t.Fatalf("command produced %T, want MoveCardMsg", cmd())
	}
	if msg.Move.CardID != "c1" || msg.Move.ToColumnID != "col-b" {
		t.Fatalf("move = %+v", msg.Move)
	}

	// The session was updated optimistically before the command ran.
	if got := len(s.CardsFor("col-a")); got != 1 {
		t.Fatalf("source column has %d cards, want 1", got)
	}
	if got := len(s.CardsFor("col-b")); got != 2 {
		t.Fatalf("target column has %d cards, want 2", got)
	}
	if err := s.CheckInvariants(); err != nil {
		t.Fatalf("invariants violated after carry: %v", err)
	}
}

func TestGrabTogglesOff(t *testing.T) {
	m, _ := testModel(t)

	m, _ = m.Update(keyPress(' '))
	m, _ = m.Update(keyPress(' '))
	if m.grabbing {
		t.Fatal("second space should drop the card")
	}
}

func TestColumnCarryEmitsFullOrder(t *testing.T) {
	m, _ := testModel(t)

	m, _ = m.Update(keyPress('G'))
	if !m.grabbingCol {
		t.Fatal("G should grab the focused column")
	}

	m, cmd := m.Update(keyPress('l'))
	if cmd == nil {
		t.Fatal("column carry must emit an order command")
	}
	msg, ok := cmd().(MoveColumnMsg)
	if !ok {
		t.Fatalf("command produced %T, want MoveColumnMsg", cmd())
	}
	want := []string{"col-b", "col-a"}
	if len(msg.Order) != 2 || msg.Order[0] != want[0] || msg.Order[1] != want[1] {
		t.Fatalf("order = %v, want %v", msg.Order, want)
	}
}

func TestQuickCreateRejectsEmptyTitle(t *testing.T) {
	m, _ := testModel(t)

	m, _ = m.Update(keyPress('n'))
	if m.target != inputNewCard {
		t.Fatal("n should open the quick-create input")
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("empty submit should emit a validation notice")
	}
	if _, ok := cmd().(ValidationMsg); !ok {
		t.Fatalf("command produced %T, want ValidationMsg", cmd())
	}
	if m.target != inputNone {
		t.Fatal("input should close after submit")
	}
}

func TestCursorClampAfterColumnShrinks(t *testing.T) {
	m, s := testModel(t)

	// Cursor to the second card of column A.
	m, _ = m.Update(keyPress('j'))
	if m.cardIdx != 1 {
		t.Fatalf("cardIdx = %d, want 1", m.cardIdx)
	}

	s.DropCard("c2")
	m.ClampCursor()
	if m.cardIdx != 0 {
		t.Fatalf("cardIdx after clamp = %d, want 0", m.cardIdx)
	}
}

func TestCopyEmitsIntentForSelectedCard(t *testing.T) {
	m, _ := testModel(t)

	m, cmd := m.Update(keyPress('y'))
	if cmd == nil {
		t.Fatal("y must emit a copy command")
	}
	msg, ok := cmd().(CopyCardMsg)
	if !ok {
		t.Fatalf("command produced %T, want CopyCardMsg", cmd())
	}
	if msg.CardID != "c1" || msg.ToColumnID != "col-a" {
		t.Fatalf("copy = %+v", msg)
	}
}

func TestRenameColumnPrefillsAndSubmits(t *testing.T) {
	m, _ := testModel(t)

	m, _ = m.Update(keyPress('R'))
	if m.target != inputRenameColumn {
		t.Fatal("R should open the rename input")
	}
	if got := m.input.Value(); got != "Todo" {
		t.Fatalf("input prefill = %q, want current title", got)
	}

	m.input.SetValue("Backlog")
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg, ok := cmd().(RenameColumnMsg)
	if !ok {
		t.Fatalf("command produced %T, want RenameColumnMsg", cmd())
	}
	if msg.ColumnID != "col-a" || msg.Title != "Backlog" {
		t.Fatalf("rename = %+v", msg)
	}
}

func TestCursorNavigation(t *testing.T) {
	m, _ := testModel(t)

	m, cmd := m.Update(keyPress('l'))
	if m.colIdx != 1 {
		t.Fatalf("colIdx after l = %d, want 1", m.colIdx)
	}
	if cmd != nil {
		t.Fatal("plain navigation must not emit a command")
	}

	m, _ = m.Update(keyPress('h'))
	if m.colIdx != 0 {
		t.Fatalf("colIdx after h = %d, want 0", m.colIdx)
	}

	m, _ = m.Update(keyPress('j'))
	if m.cardIdx != 1 {
		t.Fatalf("cardIdx after j = %d, want 1", m.cardIdx)
	}

	m, _ = m.Update(keyPress('k'))
	if m.cardIdx != 0 {
		t.Fatalf("cardIdx after k = %d, want 0", m.cardIdx)
	}
}
