package board

import (
	"testing"
	"time"

	"opsboard/internal/model"
)

func TestLoadPartitionsAndSortsCards(t *testing.T) {
	columns := []model.Column{
		{ID: "b", Title: "Doing", Position: 1},
		{ID: "a", Title: "Todo", Position: 0},
	}
	cards := []model.Card{
		{ID: "c2", ColumnID: "a", Position: 1},
		{ID: "c1", ColumnID: "a", Position: 0},
		{ID: "c3", ColumnID: "b", Position: 0},
		{ID: "c4", ColumnID: "a", Position: 2, Archived: true},
	}

	s := NewSession()
	s.Load(columns, cards)

	cols := s.Columns()
	if cols[0].ID != "a" || cols[1].ID != "b" {
		t.Fatalf("columns not sorted by position: %+v", cols)
	}

	assertOrder(t, s.CardsFor("a"), []string{"c1", "c2"})
	assertOrder(t, s.CardsFor("b"), []string{"c3"})

	// Archived cards are excluded from the rendered ordering.
	if _, ok := s.Card("c4"); ok {
		t.Fatal("archived card should not be visible")
	}
	if err := s.CheckInvariants(); err != nil {
		t.Fatalf("invariant violated after load: %v", err)
	}
}

func TestLoadClosesPositionGaps(t *testing.T) {
	// Archival on the server can leave position gaps; load renumbers.
	columns := []model.Column{{ID: "a", Position: 0}}
	cards := []model.Card{
		{ID: "c1", ColumnID: "a", Position: 3},
		{ID: "c2", ColumnID: "a", Position: 7},
	}

	s := NewSession()
	s.Load(columns, cards)

	assertOrder(t, s.CardsFor("a"), []string{"c1", "c2"})
}

func TestReplaceCardReconciles(t *testing.T) {
	s := testSession(t, map[string][]string{"a": {"c1", "c2"}})

	rev := s.BumpCard("c1")
	updated, _ := s.Card("c1")
	updated.Title = "renamed"
	due := time.Now().Add(48 * time.Hour)
	updated.DueDate = &due

	if !s.ReplaceCard(updated, rev) {
		t.Fatal("reconciliation with current revision should apply")
	}

	got, ok := s.Card("c1")
	if !ok || got.Title != "renamed" || got.DueDate == nil {
		t.Fatalf("card not replaced: %+v", got)
	}
	assertOrder(t, s.CardsFor("a"), []string{"c1", "c2"})
}

func TestReplaceCardDiscardsStaleResponse(t *testing.T) {
	s := testSession(t, map[string][]string{"a": {"c1"}})

	staleRev := s.BumpCard("c1")

	// A later mutation bumps the revision before the first refetch lands.
	s.BumpCard("c1")

	stale, _ := s.Card("c1")
	stale.Title = "stale server copy"
	if s.ReplaceCard(stale, staleRev) {
		t.Fatal("stale reconciliation must be discarded")
	}

	got, _ := s.Card("c1")
	if got.Title == "stale server copy" {
		t.Fatal("stale data overwrote newer local state")
	}
}

func TestReplaceCardArchivedRemovesFromView(t *testing.T) {
	s := testSession(t, map[string][]string{"a": {"c1", "c2", "c3"}})

	rev := s.BumpCard("c2")
	archived, _ := s.Card("c2")
	archived.Archived = true

	if !s.ReplaceCard(archived, rev) {
		t.Fatal("reconciliation should apply")
	}

	assertOrder(t, s.CardsFor("a"), []string{"c1", "c3"})
}

func TestReplaceCardMovesAcrossColumns(t *testing.T) {
	s := testSession(t, map[string][]string{"a": {"c1"}, "b": {"c2"}})

	rev := s.BumpCard("c1")
	moved, _ := s.Card("c1")
	moved.ColumnID = "b"
	moved.Position = 1

	if !s.ReplaceCard(moved, rev) {
		t.Fatal("reconciliation should apply")
	}

	assertOrder(t, s.CardsFor("a"), nil)
	assertOrder(t, s.CardsFor("b"), []string{"c2", "c1"})
}

func TestInsertAndDropCard(t *testing.T) {
	s := testSession(t, map[string][]string{"a": {"c1"}})

	s.InsertCard(model.Card{ID: "c2", ColumnID: "a", Title: "new"})
	assertOrder(t, s.CardsFor("a"), []string{"c1", "c2"})

	s.DropCard("c1")
	assertOrder(t, s.CardsFor("a"), []string{"c2"})
	if err := s.CheckInvariants(); err != nil {
		t.Fatalf("invariant violated: %v", err)
	}
}

func TestRemoveColumnCascades(t *testing.T) {
	s := testSession(t, map[string][]string{"a": {"c1"}, "b": {"c2"}})

	s.RemoveColumn("a")

	cols := s.Columns()
	if len(cols) != 1 || cols[0].ID != "b" || cols[0].Position != 0 {
		t.Fatalf("unexpected columns after delete: %+v", cols)
	}
	if _, ok := s.Card("c1"); ok {
		t.Fatal("cards of a deleted column must disappear with it")
	}
}

func TestRenameLabelPropagatesToCards(t *testing.T) {
	columns := []model.Column{{ID: "a", Position: 0}}
	cards := []model.Card{
		{ID: "c1", ColumnID: "a", Position: 0, Labels: []model.Label{{Color: model.ColorRed}}},
		{ID: "c2", ColumnID: "a", Position: 1, Labels: []model.Label{{Color: model.ColorRed}, {Color: model.ColorBlue}}},
	}

	s := NewSession()
	s.Load(columns, cards)
	s.RenameLabel(model.ColorRed, "Blocker")

	for _, id := range []string{"c1", "c2"} {
		c, _ := s.Card(id)
		for _, l := range c.Labels {
			if l.Color == model.ColorRed && l.Name != "Blocker" {
				t.Fatalf("card %s: red label name = %q, want Blocker", id, l.Name)
			}
			if l.Color == model.ColorBlue && l.Name != "" {
				t.Fatalf("card %s: blue label name should be untouched", id)
			}
		}
	}

	if s.Catalog().NameFor(model.ColorRed) != "Blocker" {
		t.Fatal("catalog override not recorded")
	}
}
