package app

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"opsboard/internal/board"
	"opsboard/internal/model"
	"opsboard/internal/ui/boardview"
	"opsboard/internal/ui/cardview"
	"opsboard/tests/testutil"
)

func testConfig() *model.AppConfig {
	return &model.AppConfig{
		Remote:  model.RemoteConfig{Username: "tester", TimeoutSec: 30},
		Display: model.DisplayConfig{Theme: "default", FuelTickSec: 60},
	}
}

// newTestApp builds a root model over the fake service and pumps the
// initial board load through Update.
func newTestApp(t *testing.T, svc *testutil.FakeService) Model {
	t.Helper()

	m := New(svc, testutil.NewTestPrefs(t), testConfig())

	mdl, _ := m.Update(m.loadBoard()())
	return mdl.(Model)
}

func TestLoadBoardPopulatesSession(t *testing.T) {
	svc := testutil.NewFakeService()
	colID := svc.SeedColumn("Todo")
	svc.SeedCard(colID, "first")
	svc.SeedCard(colID, "second")

	m := newTestApp(t, svc)

	if !m.session.Loaded() {
		t.Fatal("session not loaded after boardLoadedMsg")
	}
	if got := len(m.session.CardsFor(colID)); got != 2 {
		t.Fatalf("cards in column = %d, want 2", got)
	}
	if err := m.session.CheckInvariants(); err != nil {
		t.Fatalf("invariants violated: %v", err)
	}
}

func TestToggleChecklistItemRoundTrip(t *testing.T) {
	svc := testutil.NewFakeService()
	colID := svc.SeedColumn("Todo")
	cardID := svc.SeedCard(colID, "ship it")
	m := newTestApp(t, svc)

	// Seed a checklist entry through the same op flow the UI uses.
	mdl, cmd := m.Update(cardview.AddChecklistItemMsg{CardID: cardID, Text: "pack"})
	m = mdl.(Model)
	mdl, _ = m.Update(cmd())
	m = mdl.(Model)

	card, ok := m.session.Card(cardID)
	if !ok || len(card.Checklist) != 1 {
		t.Fatalf("checklist not reconciled: %+v", card.Checklist)
	}

	itemID := card.Checklist[0].ID
	mdl, cmd = m.Update(cardview.ToggleChecklistItemMsg{CardID: cardID, ItemID: itemID})
	m = mdl.(Model)
	mdl, _ = m.Update(cmd())
	m = mdl.(Model)

	card, _ = m.session.Card(cardID)
	if !card.Checklist[0].Done {
		t.Fatal("toggle did not reconcile into the session")
	}
}

func TestStaleRefreshIsDiscarded(t *testing.T) {
	svc := testutil.NewFakeService()
	colID := svc.SeedColumn("Todo")
	cardID := svc.SeedCard(colID, "server title")
	m := newTestApp(t, svc)

	staleRev := m.session.CardRev(cardID)

	// A newer mutation lands first.
	newer, _ := m.session.Card(cardID)
	newer.Title = "newer title"
	m.session.ReplaceCard(newer, m.session.BumpCard(cardID))

	stale := newer
	stale.Title = "stale title"
	mdl, _ := m.Update(cardRefreshedMsg{card: &stale, rev: staleRev})
	m = mdl.(Model)

	card, _ := m.session.Card(cardID)
	if card.Title != "newer title" {
		t.Fatalf("stale refresh applied: title = %q", card.Title)
	}
}

func TestReorderFailureTriggersReload(t *testing.T) {
	svc := testutil.NewFakeService()
	colID := svc.SeedColumn("Todo")
	cardID := svc.SeedCard(colID, "a")
	m := newTestApp(t, svc)

	svc.FailNext = errors.New("conflict")
	cmd := m.persistCardMove(board.CardMove{CardID: cardID, ToColumnID: colID, ToIndex: 0})

	msg := cmd()
	if _, ok := msg.(reorderFailedMsg); !ok {
		t.Fatalf("message = %T, want reorderFailedMsg", msg)
	}

	mdl, _ := m.Update(msg)
	m = mdl.(Model)
	if !m.loading {
		t.Fatal("rejected reorder must put the board back into loading")
	}
	if m.notice == "" {
		t.Fatal("rejected reorder should surface a notice")
	}
}

func TestArchiveCardLeavesBoardView(t *testing.T) {
	svc := testutil.NewFakeService()
	colID := svc.SeedColumn("Todo")
	cardID := svc.SeedCard(colID, "done soon")
	m := newTestApp(t, svc)

	mdl, cmd := m.Update(boardview.ArchiveCardMsg{CardID: cardID})
	m = mdl.(Model)
	mdl, _ = m.Update(cmd())
	m = mdl.(Model)

	if _, ok := m.session.Card(cardID); ok {
		t.Fatal("archived card still visible on the board")
	}
	if !svc.Cards[cardID].Archived {
		t.Fatal("archive not persisted to the service")
	}
}

func TestCreateCardAppendsToColumn(t *testing.T) {
	svc := testutil.NewFakeService()
	colID := svc.SeedColumn("Todo")
	m := newTestApp(t, svc)

	mdl, cmd := m.Update(boardview.CreateCardMsg{ColumnID: colID, Title: "fresh"})
	m = mdl.(Model)
	mdl, _ = m.Update(cmd())
	m = mdl.(Model)

	cards := m.session.CardsFor(colID)
	if len(cards) != 1 || cards[0].Title != "fresh" {
		t.Fatalf("created card missing: %+v", cards)
	}
	if cards[0].Position != 0 {
		t.Fatalf("position = %d, want 0", cards[0].Position)
	}
}

func TestRegisterMemberRefreshesDirectory(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.SeedColumn("Todo")
	m := newTestApp(t, svc)

	cmd := m.registerMember("jdoe", "Jane Doe", "hunter22222")
	mdl, batched := m.Update(cmd())
	m = mdl.(Model)

	if batched == nil {
		t.Fatal("registration should schedule a member reload")
	}
	if len(svc.Members) != 1 || svc.Members[0].Username != "jdoe" {
		t.Fatalf("member not registered: %+v", svc.Members)
	}
}

func TestAnswersCarryConfiguredAuthor(t *testing.T) {
	svc := testutil.NewFakeService()
	colID := svc.SeedColumn("Todo")
	cardID := svc.SeedCard(colID, "decide")
	m := newTestApp(t, svc)

	mdl, cmd := m.Update(cardview.AddQuestionMsg{CardID: cardID, Text: "blue or green?"})
	m = mdl.(Model)
	mdl, _ = m.Update(cmd())
	m = mdl.(Model)

	card, _ := m.session.Card(cardID)
	qID := card.Questions[0].ID

	mdl, cmd = m.Update(cardview.AddAnswerMsg{CardID: cardID, QuestionID: qID, Text: "green"})
	m = mdl.(Model)
	mdl, _ = m.Update(cmd())
	m = mdl.(Model)

	card, _ = m.session.Card(cardID)
	answers := card.Questions[0].Answers
	if len(answers) != 1 || answers[0].Author != "tester" {
		t.Fatalf("answer author = %+v, want tester", answers)
	}
}

func TestDuplicateCardLandsAtColumnTail(t *testing.T) {
	svc := testutil.NewFakeService()
	colID := svc.SeedColumn("Todo")
	cardID := svc.SeedCard(colID, "runbook")
	m := newTestApp(t, svc)

	mdl, cmd := m.Update(boardview.CopyCardMsg{CardID: cardID, ToColumnID: colID})
	m = mdl.(Model)
	mdl, _ = m.Update(cmd())
	m = mdl.(Model)

	cards := m.session.CardsFor(colID)
	if len(cards) != 2 {
		t.Fatalf("column has %d cards after duplicate, want 2", len(cards))
	}
	if cards[1].Title != "runbook" || cards[1].ID == cardID {
		t.Fatalf("duplicate = %+v", cards[1])
	}
	if err := m.session.CheckInvariants(); err != nil {
		t.Fatalf("invariants violated: %v", err)
	}
}

func TestPaletteDeleteRemovesCard(t *testing.T) {
	svc := testutil.NewFakeService()
	colID := svc.SeedColumn("Todo")
	cardID := svc.SeedCard(colID, "stale")
	m := newTestApp(t, svc)

	cmd := m.deleteCard(cardID)
	mdl, _ := m.Update(cmd())
	m = mdl.(Model)

	if len(m.session.CardsFor(colID)) != 0 {
		t.Fatal("deleted card still on the board")
	}
	if _, err := svc.GetCard(context.Background(), cardID); err == nil {
		t.Fatal("card still present in the service")
	}
}

func typeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestGlobalKeysYieldToQuickCreateInput(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.SeedColumn("Todo")
	m := newTestApp(t, svc)

	mdl, _ := m.Update(typeKey('n'))
	m = mdl.(Model)
	if !m.boardView.InputActive() {
		t.Fatal("n should open the quick-create input")
	}

	// 'q' is part of the title being typed, not a quit request.
	mdl, cmd := m.Update(typeKey('q'))
	m = mdl.(Model)
	if cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Fatal("typing into the quick-create input must not quit")
		}
	}
	if !m.boardView.InputActive() {
		t.Fatal("input lost focus to a global shortcut")
	}
	if m.currentView != ViewBoard {
		t.Fatalf("view = %v, want board", m.currentView)
	}
}

func TestGlobalKeysYieldToCardInputs(t *testing.T) {
	svc := testutil.NewFakeService()
	colID := svc.SeedColumn("Todo")
	cardID := svc.SeedCard(colID, "ship it")
	m := newTestApp(t, svc)

	mdl, _ := m.Update(boardview.OpenCardMsg{CardID: cardID})
	m = mdl.(Model)
	mdl, _ = m.Update(typeKey('c'))
	m = mdl.(Model)
	if !m.cardView.InputActive() {
		t.Fatal("c should open the comment input")
	}

	// '?' belongs to the comment text, not the help toggle.
	mdl, _ = m.Update(typeKey('?'))
	m = mdl.(Model)
	if m.currentView != ViewCard {
		t.Fatalf("view = %v, want card detail", m.currentView)
	}
	if !m.cardView.InputActive() {
		t.Fatal("comment input lost focus to a global shortcut")
	}
}

func TestOpFailureReconcilesExactlyOnce(t *testing.T) {
	svc := testutil.NewFakeService()
	colID := svc.SeedColumn("Todo")
	cardID := svc.SeedCard(colID, "ghost")
	m := newTestApp(t, svc)

	// The card disappears server-side, so every reconciliation fetch
	// will fail too.
	if err := svc.DeleteCard(context.Background(), cardID); err != nil {
		t.Fatal(err)
	}

	saved := noticeDuration
	noticeDuration = time.Millisecond
	defer func() { noticeDuration = saved }()

	// Drive the message loop the way the runtime would, bounded so a
	// reintroduced failure→refetch→failure cycle cannot spin forever.
	queue := []tea.Msg{opFailedMsg{cardID: cardID, err: errors.New("boom")}}
	for steps := 0; len(queue) > 0 && steps < 32; steps++ {
		msg := queue[0]
		queue = queue[1:]
		if batch, ok := msg.(tea.BatchMsg); ok {
			for _, c := range batch {
				if c != nil {
					queue = append(queue, c())
				}
			}
			continue
		}
		mdl, cmd := m.Update(msg)
		m = mdl.(Model)
		if cmd != nil {
			queue = append(queue, cmd())
		}
	}

	fetches := 0
	for _, call := range svc.Calls {
		if call == "GetCard" {
			fetches++
		}
	}
	if fetches != 1 {
		t.Fatalf("failed op fetched the card %d times, want exactly 1 (calls: %v)", fetches, svc.Calls)
	}
}

func TestStaleBoardSnapshotIsDiscarded(t *testing.T) {
	svc := testutil.NewFakeService()
	colID := svc.SeedColumn("Todo")
	firstID := svc.SeedCard(colID, "a")
	secondID := svc.SeedCard(colID, "b")
	m := newTestApp(t, svc)

	// Dispatch a reload, then reorder locally before the snapshot
	// arrives. The snapshot predates the reorder and must not revert it.
	cmd := m.loadBoard()
	if _, err := m.session.MoveCard(secondID, colID, 0); err != nil {
		t.Fatalf("MoveCard: %v", err)
	}

	mdl, _ := m.Update(cmd())
	m = mdl.(Model)

	cards := m.session.CardsFor(colID)
	if len(cards) != 2 || cards[0].ID != secondID || cards[1].ID != firstID {
		t.Fatalf("local reorder reverted by stale snapshot: %+v", cards)
	}
}
