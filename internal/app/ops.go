package app

import (
	"context"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"opsboard/internal/board"
	"opsboard/internal/model"
	"opsboard/internal/remote"
	"opsboard/internal/ui/cardview"
)

// boardLoadedMsg carries a full board snapshot from the service. rev
// is the session board revision stamped when the fetch was dispatched;
// a snapshot that raced a local structural change is discarded.
type boardLoadedMsg struct {
	columns []model.Column
	cards   []model.Card
	rev     uint64
	err     error
}

// membersLoadedMsg carries the member directory.
type membersLoadedMsg struct {
	members []model.Member
	err     error
}

// cardRefreshedMsg carries the authoritative card state fetched after
// a field-scoped mutation. rev is the session revision stamped when
// the mutation was dispatched; the session discards the refresh if a
// newer mutation has bumped the card since.
type cardRefreshedMsg struct {
	card *model.Card
	rev  uint64
}

// opFailedMsg reports a failed field-scoped mutation. retried marks a
// failure of the follow-up reconciliation fetch itself; those get a
// notice but no further fetch, so a dead card or service cannot spin
// the refetch cycle forever.
type opFailedMsg struct {
	cardID  string
	err     error
	retried bool
}

// reorderFailedMsg reports a rejected card or column reorder. The
// optimistic local ordering is stale and the board must be reloaded.
type reorderFailedMsg struct {
	err error
}

// cardCreatedMsg carries a newly created card.
type cardCreatedMsg struct {
	card *model.Card
	err  error
}

// columnChangedMsg reports a column create/update/delete result.
type columnChangedMsg struct {
	err error
}

// cardDeletedMsg reports a permanent card deletion.
type cardDeletedMsg struct {
	cardID string
}

// memberRegisteredMsg reports a member registration result.
type memberRegisteredMsg struct {
	member model.Member
	err    error
}

// themeSavedMsg reports the theme persistence result.
type themeSavedMsg struct {
	err error
}

// loadBoard fetches columns and cards and replaces the session state.
func (m Model) loadBoard() tea.Cmd {
	svc := m.svc
	rev := m.session.BoardRev()
	return func() tea.Msg {
		ctx := context.Background()

		columns, err := svc.ListColumns(ctx)
		if err != nil {
			return boardLoadedMsg{rev: rev, err: err}
		}
		cards, err := svc.ListCards(ctx)
		if err != nil {
			return boardLoadedMsg{rev: rev, err: err}
		}
		return boardLoadedMsg{columns: columns, cards: cards, rev: rev}
	}
}

// loadMembers fetches the member directory for assignment pickers.
func (m Model) loadMembers() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		members, err := svc.ListMembers(context.Background())
		return membersLoadedMsg{members: members, err: err}
	}
}

// cardOp runs a field-scoped mutation, then refetches the card so the
// session can reconcile against the server's authoritative state. The
// revision is stamped before the request goes out; see Session.ReplaceCard.
func (m *Model) cardOp(cardID string, op func(ctx context.Context) error) tea.Cmd {
	rev := m.session.BumpCard(cardID)
	svc := m.svc
	return func() tea.Msg {
		ctx := context.Background()
		if err := op(ctx); err != nil {
			return opFailedMsg{cardID: cardID, err: err}
		}
		card, err := svc.GetCard(ctx, cardID)
		if err != nil {
			return opFailedMsg{cardID: cardID, err: err}
		}
		return cardRefreshedMsg{card: card, rev: rev}
	}
}

// refreshCard refetches a card without a mutation, reconciling at the
// card's current revision.
func (m *Model) refreshCard(cardID string) tea.Cmd {
	rev := m.session.CardRev(cardID)
	svc := m.svc
	return func() tea.Msg {
		card, err := svc.GetCard(context.Background(), cardID)
		if err != nil {
			return opFailedMsg{cardID: cardID, err: err, retried: true}
		}
		return cardRefreshedMsg{card: card, rev: rev}
	}
}

// persistCardMove sends an already-applied optimistic card move to the
// service. The local state stands on success; failure reloads.
func (m Model) persistCardMove(move board.CardMove) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		err := svc.MoveCard(context.Background(), move.CardID, move.ToColumnID, move.ToIndex)
		if err != nil {
			return reorderFailedMsg{err: err}
		}
		return nil
	}
}

// persistColumnOrder sends an already-applied optimistic column order.
func (m Model) persistColumnOrder(order []string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		if err := svc.ReorderColumns(context.Background(), order); err != nil {
			return reorderFailedMsg{err: err}
		}
		return nil
	}
}

// createCard creates a card from a quick-create title or a full form.
func (m Model) createCard(columnID string, card model.Card) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx := context.Background()
		created, err := svc.CreateCard(ctx, columnID, card.Title, card.Description, card.Labels)
		if err != nil {
			return cardCreatedMsg{err: err}
		}
		if card.DueDate != nil {
			if err := svc.SetDueDate(ctx, created.ID, card.DueDate); err != nil {
				return cardCreatedMsg{err: err}
			}
			created.DueDate = card.DueDate
		}
		if card.Cover != "" {
			if err := svc.SetCover(ctx, created.ID, card.Cover); err != nil {
				return cardCreatedMsg{err: err}
			}
			created.Cover = card.Cover
		}
		return cardCreatedMsg{card: created}
	}
}

// applyCardEdit persists the form-backed fields of an edited card.
// Each field is its own request; one refetch reconciles them all.
func (m *Model) applyCardEdit(card model.Card) tea.Cmd {
	svc := m.svc
	return m.cardOp(card.ID, func(ctx context.Context) error {
		if err := svc.UpdateCardTitle(ctx, card.ID, card.Title); err != nil {
			return err
		}
		if err := svc.SetDescription(ctx, card.ID, card.Description); err != nil {
			return err
		}
		if err := svc.SetDueDate(ctx, card.ID, card.DueDate); err != nil {
			return err
		}
		if err := svc.SetCover(ctx, card.ID, card.Cover); err != nil {
			return err
		}
		return svc.SetLabels(ctx, card.ID, card.Labels)
	})
}

// archiveCard archives a card and drops it from the visible board.
func (m Model) archiveCard(cardID string) tea.Cmd {
	svc := m.svc
	return m.cardOp(cardID, func(ctx context.Context) error {
		return svc.ArchiveCard(ctx, cardID, true)
	})
}

// createColumn appends a new column to the board.
func (m Model) createColumn(title string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		_, err := svc.CreateColumn(context.Background(), title, "")
		return columnChangedMsg{err: err}
	}
}

// renameColumn retitles a column in place.
func (m Model) renameColumn(columnID, title string) tea.Cmd {
	col, ok := m.session.Column(columnID)
	if !ok {
		return nil
	}
	col.Title = title
	svc := m.svc
	return func() tea.Msg {
		err := svc.UpdateColumn(context.Background(), col)
		return columnChangedMsg{err: err}
	}
}

// copyCard duplicates a card into the tail of the target column. The
// copy carries the source's fields but none of its activity history.
func (m Model) copyCard(cardID, toColumnID string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		card, err := svc.CopyCard(context.Background(), cardID, toColumnID)
		if err != nil {
			return cardCreatedMsg{err: err}
		}
		return cardCreatedMsg{card: card}
	}
}

// deleteCard permanently removes a card, unlike archiving.
func (m Model) deleteCard(cardID string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		if err := svc.DeleteCard(context.Background(), cardID); err != nil {
			return opFailedMsg{cardID: cardID, err: err}
		}
		return cardDeletedMsg{cardID: cardID}
	}
}

// deleteColumn removes a column; the service cascade-deletes its cards.
func (m Model) deleteColumn(columnID string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		err := svc.DeleteColumn(context.Background(), columnID)
		return columnChangedMsg{err: err}
	}
}

// registerMember creates a directory entry.
func (m Model) registerMember(username, displayName, password string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		member, err := svc.RegisterMember(
			context.Background(),
			username, displayName, password, model.RoleMember,
		)
		if err != nil {
			return memberRegisteredMsg{err: err}
		}
		return memberRegisteredMsg{member: *member}
	}
}

// saveTheme persists the chosen background name in the prefs store.
func (m Model) saveTheme(name string) tea.Cmd {
	p := m.prefs
	return func() tea.Msg {
		err := p.SetTheme(context.Background(), name)
		return themeSavedMsg{err: err}
	}
}

// handleBoardLoaded replaces the session with the loaded snapshot.
func (m Model) handleBoardLoaded(msg boardLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false

	if msg.err != nil {
		if remote.IsAuthError(msg.err) {
			m.authError = "Authentication failed: check the stored API token"
			return m, nil
		}
		mm, cmd := m.setNotice("Load failed: " + msg.err.Error())
		return mm, cmd
	}

	m.authError = ""
	if m.session.BoardRev() != msg.rev {
		// The board mutated locally while the fetch was in flight;
		// the snapshot predates the mutation. Keep the local state.
		return m, nil
	}
	m.session.Load(msg.columns, msg.cards)
	m.boardView.ClampCursor()

	if m.currentView == ViewCard {
		if m.cardView.Gone() {
			m.currentView = ViewBoard
		} else {
			m.cardView.Rebuild()
		}
	}
	return m, nil
}

// handleCardRefreshed reconciles a refetched card into the session.
func (m Model) handleCardRefreshed(msg cardRefreshedMsg) (tea.Model, tea.Cmd) {
	if msg.card == nil {
		return m, nil
	}
	m.session.ReplaceCard(*msg.card, msg.rev)
	return m.rebuildCardView(), nil
}

// handleOpFailed surfaces the error and refetches the card once so
// the view drops any stale optimistic state. A failure of that fetch
// itself only notifies: reconciliation is one attempt, never a loop.
func (m Model) handleOpFailed(msg opFailedMsg) (tea.Model, tea.Cmd) {
	if remote.IsAuthError(msg.err) {
		m.authError = "Authentication failed: check the stored API token"
		return m, nil
	}
	mm, cmd := m.setNotice(msg.err.Error())
	if msg.retried {
		return mm, cmd
	}
	return mm, tea.Batch(cmd, mm.refreshCard(msg.cardID))
}

// handleCardCreated inserts a created card at the tail of its column.
func (m Model) handleCardCreated(msg cardCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		mm, cmd := m.setNotice("Create failed: " + msg.err.Error())
		return mm, cmd
	}
	m.session.InsertCard(*msg.card)
	m.boardView.ClampCursor()
	return m, nil
}

// dispatchCardOp maps card detail intents to their field-scoped
// service calls. Returns false when the message is not a card op.
func (m *Model) dispatchCardOp(msg tea.Msg) (tea.Cmd, bool) {
	svc := m.svc

	switch msg := msg.(type) {
	case cardview.ToggleChecklistItemMsg:
		return m.cardOp(msg.CardID, func(ctx context.Context) error {
			return svc.ToggleChecklistItem(ctx, msg.CardID, msg.ItemID)
		}), true

	case cardview.ToggleSubtaskMsg:
		return m.cardOp(msg.CardID, func(ctx context.Context) error {
			return svc.ToggleSubtask(ctx, msg.CardID, msg.SubtaskID)
		}), true

	case cardview.ToggleSubSubtaskMsg:
		return m.cardOp(msg.CardID, func(ctx context.Context) error {
			return svc.ToggleSubSubtask(ctx, msg.CardID, msg.SubSubtaskID)
		}), true

	case cardview.AddChecklistItemMsg:
		return m.cardOp(msg.CardID, func(ctx context.Context) error {
			return svc.AddChecklistItem(ctx, msg.CardID, msg.Text, nil)
		}), true

	case cardview.AddSubtaskMsg:
		return m.cardOp(msg.CardID, func(ctx context.Context) error {
			return svc.AddSubtask(ctx, msg.CardID, msg.ItemID, msg.Text)
		}), true

	case cardview.AddSubSubtaskMsg:
		return m.cardOp(msg.CardID, func(ctx context.Context) error {
			return svc.AddSubSubtask(ctx, msg.CardID, msg.SubtaskID, msg.Text)
		}), true

	case cardview.AssignChecklistItemMsg:
		return m.cardOp(msg.CardID, func(ctx context.Context) error {
			return svc.AssignChecklistItem(ctx, msg.CardID, msg.ItemID, msg.Member)
		}), true

	case cardview.AssignLabelMsg:
		return m.cardOp(msg.CardID, func(ctx context.Context) error {
			return svc.AssignLabel(ctx, msg.CardID, msg.Color, msg.Member)
		}), true

	case cardview.AddQuestionMsg:
		return m.cardOp(msg.CardID, func(ctx context.Context) error {
			return svc.AddQuestion(ctx, msg.CardID, msg.Text)
		}), true

	case cardview.ResolveQuestionMsg:
		resolved := true
		if card, ok := m.session.Card(msg.CardID); ok {
			for _, q := range card.Questions {
				if q.ID == msg.QuestionID {
					resolved = !q.Resolved
					break
				}
			}
		}
		return m.cardOp(msg.CardID, func(ctx context.Context) error {
			return svc.ResolveQuestion(ctx, msg.CardID, msg.QuestionID, resolved)
		}), true

	case cardview.AssignQuestionMsg:
		return m.cardOp(msg.CardID, func(ctx context.Context) error {
			return svc.AssignQuestion(ctx, msg.CardID, msg.QuestionID, msg.Member)
		}), true

	case cardview.AddAnswerMsg:
		author := m.username
		return m.cardOp(msg.CardID, func(ctx context.Context) error {
			return svc.AddAnswer(ctx, msg.CardID, msg.QuestionID, msg.Text, author)
		}), true

	case cardview.DeleteAnswerMsg:
		return m.cardOp(msg.CardID, func(ctx context.Context) error {
			return svc.DeleteAnswer(ctx, msg.CardID, msg.QuestionID, msg.AnswerID)
		}), true

	case cardview.AddCommentMsg:
		author := m.username
		return m.cardOp(msg.CardID, func(ctx context.Context) error {
			return svc.AddComment(ctx, msg.CardID, author, msg.Text)
		}), true

	case cardview.AttachLinkMsg:
		return m.cardOp(msg.CardID, func(ctx context.Context) error {
			return svc.AttachLink(ctx, msg.CardID, msg.Name, msg.URL)
		}), true

	case cardview.UploadAttachmentMsg:
		return m.cardOp(msg.CardID, func(ctx context.Context) error {
			data, err := os.ReadFile(msg.Path)
			if err != nil {
				return err
			}
			return svc.UploadAttachment(ctx, msg.CardID, filepath.Base(msg.Path), data)
		}), true

	case cardview.DeleteAttachmentMsg:
		return m.cardOp(msg.CardID, func(ctx context.Context) error {
			return svc.DeleteAttachment(ctx, msg.CardID, msg.AttachmentID)
		}), true
	}

	return nil, false
}
