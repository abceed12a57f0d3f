package board

import (
	"testing"

	"opsboard/internal/model"
)

func testSession(t *testing.T, cardsPerColumn map[string][]string) *Session {
	t.Helper()

	var columns []model.Column
	var cards []model.Card

	// Deterministic column order: positions assigned by caller key order
	// would be map-random, so columns are named a, b, c... and sorted.
	order := []string{"a", "b", "c", "d"}
	pos := 0
	for _, colID := range order {
		titles, ok := cardsPerColumn[colID]
		if !ok {
			continue
		}
		columns = append(columns, model.Column{ID: colID, Title: colID, Position: pos})
		for i, id := range titles {
			cards = append(cards, model.Card{
				ID:       id,
				ColumnID: colID,
				Title:    id,
				Position: i,
			})
		}
		pos++
	}

	s := NewSession()
	s.Load(columns, cards)
	return s
}

func cardIDs(cards []model.Card) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}

func assertOrder(t *testing.T, got []model.Card, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", cardIDs(got), want)
	}
	for i, c := range got {
		if c.ID != want[i] {
			t.Fatalf("got %v, want %v", cardIDs(got), want)
		}
		if c.Position != i {
			t.Fatalf("card %s: position %d, want %d", c.ID, c.Position, i)
		}
	}
}

func TestMoveCardAcrossColumns(t *testing.T) {
	// Moving c from A=[c,d] to B=[e] at index 0 must yield
	// A=[d] and B=[c,e], both dense.
	s := testSession(t, map[string][]string{
		"a": {"c", "d"},
		"b": {"e"},
	})

	delta, err := s.MoveCard("c", "b", 0)
	if err != nil {
		t.Fatalf("MoveCard: %v", err)
	}

	assertOrder(t, s.CardsFor("a"), []string{"d"})
	assertOrder(t, s.CardsFor("b"), []string{"c", "e"})

	if delta.CardID != "c" || delta.ToColumnID != "b" || delta.ToIndex != 0 {
		t.Fatalf("unexpected move delta: %+v", delta)
	}
	if err := s.CheckInvariants(); err != nil {
		t.Fatalf("invariant violated: %v", err)
	}
}

func TestMoveCardWithinColumn(t *testing.T) {
	tests := []struct {
		name    string
		card    string
		toIndex int
		want    []string
	}{
		{"to front", "z", 0, []string{"z", "x", "y"}},
		{"to back", "x", 2, []string{"y", "z", "x"}},
		{"to middle", "x", 1, []string{"y", "x", "z"}},
		{"no-op", "x", 0, []string{"x", "y", "z"}},
		{"index clamped", "x", 99, []string{"y", "z", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSession(t, map[string][]string{
				"a": {"x", "y", "z"},
			})
			if _, err := s.MoveCard(tt.card, "a", tt.toIndex); err != nil {
				t.Fatalf("MoveCard: %v", err)
			}
			assertOrder(t, s.CardsFor("a"), tt.want)
			if err := s.CheckInvariants(); err != nil {
				t.Fatalf("invariant violated: %v", err)
			}
		})
	}
}

func TestMoveCardErrors(t *testing.T) {
	s := testSession(t, map[string][]string{
		"a": {"x"},
	})

	if _, err := s.MoveCard("missing", "a", 0); err == nil {
		t.Fatal("expected error for unknown card")
	}
	if _, err := s.MoveCard("x", "nope", 0); err == nil {
		t.Fatal("expected error for unknown destination column")
	}

	// Failed moves must not disturb the board.
	assertOrder(t, s.CardsFor("a"), []string{"x"})
}

func TestMoveCardSequenceKeepsPositionsDense(t *testing.T) {
	s := testSession(t, map[string][]string{
		"a": {"c1", "c2", "c3"},
		"b": {"c4", "c5"},
		"c": {},
	})

	moves := []struct {
		card  string
		toCol string
		toIdx int
	}{
		{"c1", "b", 1},
		{"c5", "a", 0},
		{"c2", "c", 0},
		{"c4", "c", 1},
		{"c3", "a", 5},
		{"c1", "a", 2},
	}

	for _, mv := range moves {
		if _, err := s.MoveCard(mv.card, mv.toCol, mv.toIdx); err != nil {
			t.Fatalf("MoveCard(%s -> %s@%d): %v", mv.card, mv.toCol, mv.toIdx, err)
		}
		if err := s.CheckInvariants(); err != nil {
			t.Fatalf("after %s -> %s@%d: %v", mv.card, mv.toCol, mv.toIdx, err)
		}
	}

	// Every card still on the board exactly once.
	seen := make(map[string]int)
	for _, colID := range []string{"a", "b", "c"} {
		for _, c := range s.CardsFor(colID) {
			seen[c.ID]++
		}
	}
	if len(seen) != 5 {
		t.Fatalf("expected 5 distinct cards, got %d: %v", len(seen), seen)
	}
	for id, n := range seen {
		if n != 1 {
			t.Fatalf("card %s appears %d times", id, n)
		}
	}
}

func TestMoveColumn(t *testing.T) {
	s := testSession(t, map[string][]string{
		"a": {}, "b": {}, "c": {},
	})

	order, err := s.MoveColumn(0, 2)
	if err != nil {
		t.Fatalf("MoveColumn: %v", err)
	}

	want := []string{"b", "c", "a"}
	for i, id := range want {
		if order[i] != id {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}

	cols := s.Columns()
	for i, col := range cols {
		if col.ID != want[i] || col.Position != i {
			t.Fatalf("columns = %+v, want order %v", cols, want)
		}
	}
}

func TestMoveColumnOutOfRange(t *testing.T) {
	s := testSession(t, map[string][]string{"a": {}, "b": {}})

	if _, err := s.MoveColumn(-1, 0); err == nil {
		t.Fatal("expected error for negative source index")
	}
	if _, err := s.MoveColumn(0, 2); err == nil {
		t.Fatal("expected error for destination index past the end")
	}
}
