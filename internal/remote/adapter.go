package remote

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"opsboard/internal/model"
)

// Adapter implements Service against the board data service REST API.
// All paths are scoped to a single board.
type Adapter struct {
	client  *Client
	boardID string
}

// NewAdapter creates a Service implementation for the given board.
func NewAdapter(baseURL, token, boardID string, timeout time.Duration) *Adapter {
	return &Adapter{
		client:  NewClient(baseURL, token, timeout),
		boardID: boardID,
	}
}

func (a *Adapter) boardPath(suffix string) string {
	return fmt.Sprintf("/api/v1/boards/%s%s", url.PathEscape(a.boardID), suffix)
}

func (a *Adapter) cardPath(cardID, suffix string) string {
	return a.boardPath(fmt.Sprintf("/cards/%s%s", url.PathEscape(cardID), suffix))
}

// ListColumns returns all columns of the board ordered by position.
func (a *Adapter) ListColumns(ctx context.Context) ([]model.Column, error) {
	var columns []model.Column
	if err := a.client.get(ctx, a.boardPath("/columns"), &columns); err != nil {
		return nil, fmt.Errorf("listing columns: %w", err)
	}
	return columns, nil
}

// ListCards returns every card on the board, archived ones included.
func (a *Adapter) ListCards(ctx context.Context) ([]model.Card, error) {
	var cards []model.Card
	if err := a.client.get(ctx, a.boardPath("/cards"), &cards); err != nil {
		return nil, fmt.Errorf("listing cards: %w", err)
	}
	return cards, nil
}

// GetCard fetches the full, authoritative state of a single card.
func (a *Adapter) GetCard(ctx context.Context, cardID string) (*model.Card, error) {
	var card model.Card
	if err := a.client.get(ctx, a.cardPath(cardID, ""), &card); err != nil {
		return nil, fmt.Errorf("fetching card %s: %w", cardID, err)
	}
	return &card, nil
}

func (a *Adapter) CreateColumn(ctx context.Context, title, color string) (*model.Column, error) {
	body := map[string]string{"title": title, "color": color}
	var col model.Column
	if err := a.client.post(ctx, a.boardPath("/columns"), body, &col); err != nil {
		return nil, fmt.Errorf("creating column: %w", err)
	}
	return &col, nil
}

func (a *Adapter) UpdateColumn(ctx context.Context, col model.Column) error {
	path := a.boardPath("/columns/" + url.PathEscape(col.ID))
	if err := a.client.put(ctx, path, col, nil); err != nil {
		return fmt.Errorf("updating column %s: %w", col.ID, err)
	}
	return nil
}

func (a *Adapter) DeleteColumn(ctx context.Context, columnID string) error {
	path := a.boardPath("/columns/" + url.PathEscape(columnID))
	if err := a.client.delete(ctx, path); err != nil {
		return fmt.Errorf("deleting column %s: %w", columnID, err)
	}
	return nil
}

func (a *Adapter) ReorderColumns(ctx context.Context, orderedIDs []string) error {
	body := map[string][]string{"column_ids": orderedIDs}
	if err := a.client.put(ctx, a.boardPath("/columns/order"), body, nil); err != nil {
		return fmt.Errorf("reordering columns: %w", err)
	}
	return nil
}

func (a *Adapter) CreateCard(
	ctx context.Context,
	columnID, title, description string,
	labels []model.Label,
) (*model.Card, error) {
	body := map[string]interface{}{
		"column_id":   columnID,
		"title":       title,
		"description": description,
	}
	if len(labels) > 0 {
		body["labels"] = labels
	}
	var card model.Card
	if err := a.client.post(ctx, a.boardPath("/cards"), body, &card); err != nil {
		return nil, fmt.Errorf("creating card: %w", err)
	}
	return &card, nil
}

func (a *Adapter) UpdateCardTitle(ctx context.Context, cardID, title string) error {
	body := map[string]string{"title": title}
	if err := a.client.put(ctx, a.cardPath(cardID, "/title"), body, nil); err != nil {
		return fmt.Errorf("updating title of card %s: %w", cardID, err)
	}
	return nil
}

func (a *Adapter) SetDescription(ctx context.Context, cardID, text string) error {
	body := map[string]string{"description": text}
	if err := a.client.put(ctx, a.cardPath(cardID, "/description"), body, nil); err != nil {
		return fmt.Errorf("updating description of card %s: %w", cardID, err)
	}
	return nil
}

func (a *Adapter) SetDueDate(ctx context.Context, cardID string, due *time.Time) error {
	body := map[string]interface{}{"due_date": due}
	if err := a.client.put(ctx, a.cardPath(cardID, "/due-date"), body, nil); err != nil {
		return fmt.Errorf("updating due date of card %s: %w", cardID, err)
	}
	return nil
}

func (a *Adapter) SetCover(ctx context.Context, cardID, cover string) error {
	body := map[string]string{"cover": cover}
	if err := a.client.put(ctx, a.cardPath(cardID, "/cover"), body, nil); err != nil {
		return fmt.Errorf("updating cover of card %s: %w", cardID, err)
	}
	return nil
}

func (a *Adapter) SetLabels(ctx context.Context, cardID string, labels []model.Label) error {
	body := map[string]interface{}{"labels": labels}
	if err := a.client.put(ctx, a.cardPath(cardID, "/labels"), body, nil); err != nil {
		return fmt.Errorf("updating labels of card %s: %w", cardID, err)
	}
	return nil
}

func (a *Adapter) MoveCard(ctx context.Context, cardID, toColumnID string, toIndex int) error {
	body := map[string]interface{}{
		"column_id": toColumnID,
		"position":  toIndex,
	}
	if err := a.client.put(ctx, a.cardPath(cardID, "/move"), body, nil); err != nil {
		return fmt.Errorf("moving card %s: %w", cardID, err)
	}
	return nil
}

func (a *Adapter) CopyCard(ctx context.Context, cardID, toColumnID string) (*model.Card, error) {
	body := map[string]string{"column_id": toColumnID}
	var card model.Card
	if err := a.client.post(ctx, a.cardPath(cardID, "/copy"), body, &card); err != nil {
		return nil, fmt.Errorf("copying card %s: %w", cardID, err)
	}
	return &card, nil
}

func (a *Adapter) ArchiveCard(ctx context.Context, cardID string, archived bool) error {
	body := map[string]bool{"archived": archived}
	if err := a.client.put(ctx, a.cardPath(cardID, "/archive"), body, nil); err != nil {
		return fmt.Errorf("archiving card %s: %w", cardID, err)
	}
	return nil
}

func (a *Adapter) DeleteCard(ctx context.Context, cardID string) error {
	if err := a.client.delete(ctx, a.cardPath(cardID, "")); err != nil {
		return fmt.Errorf("deleting card %s: %w", cardID, err)
	}
	return nil
}

func (a *Adapter) AddChecklistItem(
	ctx context.Context,
	cardID, text string,
	assignee *model.Member,
) error {
	body := map[string]interface{}{"text": text}
	if assignee != nil {
		body["assignee_id"] = assignee.ID
	}
	if err := a.client.post(ctx, a.cardPath(cardID, "/checklist"), body, nil); err != nil {
		return fmt.Errorf("adding checklist item to card %s: %w", cardID, err)
	}
	return nil
}

func (a *Adapter) ToggleChecklistItem(ctx context.Context, cardID, itemID string) error {
	path := a.cardPath(cardID, "/checklist/"+url.PathEscape(itemID)+"/toggle")
	if err := a.client.put(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("toggling checklist item %s: %w", itemID, err)
	}
	return nil
}

func (a *Adapter) AssignChecklistItem(
	ctx context.Context,
	cardID, itemID string,
	m *model.Member,
) error {
	path := a.cardPath(cardID, "/checklist/"+url.PathEscape(itemID)+"/assignee")
	if m == nil {
		if err := a.client.delete(ctx, path); err != nil {
			return fmt.Errorf("unassigning checklist item %s: %w", itemID, err)
		}
		return nil
	}
	body := map[string]string{"member_id": m.ID}
	if err := a.client.put(ctx, path, body, nil); err != nil {
		return fmt.Errorf("assigning checklist item %s: %w", itemID, err)
	}
	return nil
}

func (a *Adapter) AddSubtask(ctx context.Context, cardID, itemID, text string) error {
	path := a.cardPath(cardID, "/checklist/"+url.PathEscape(itemID)+"/subtasks")
	body := map[string]string{"text": text}
	if err := a.client.post(ctx, path, body, nil); err != nil {
		return fmt.Errorf("adding subtask to item %s: %w", itemID, err)
	}
	return nil
}

func (a *Adapter) ToggleSubtask(ctx context.Context, cardID, subtaskID string) error {
	path := a.cardPath(cardID, "/subtasks/"+url.PathEscape(subtaskID)+"/toggle")
	if err := a.client.put(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("toggling subtask %s: %w", subtaskID, err)
	}
	return nil
}

func (a *Adapter) AddSubSubtask(ctx context.Context, cardID, subtaskID, text string) error {
	path := a.cardPath(cardID, "/subtasks/"+url.PathEscape(subtaskID)+"/subsubtasks")
	body := map[string]string{"text": text}
	if err := a.client.post(ctx, path, body, nil); err != nil {
		return fmt.Errorf("adding sub-subtask to subtask %s: %w", subtaskID, err)
	}
	return nil
}

func (a *Adapter) ToggleSubSubtask(ctx context.Context, cardID, subSubtaskID string) error {
	path := a.cardPath(cardID, "/subsubtasks/"+url.PathEscape(subSubtaskID)+"/toggle")
	if err := a.client.put(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("toggling sub-subtask %s: %w", subSubtaskID, err)
	}
	return nil
}

func (a *Adapter) AssignLabel(
	ctx context.Context,
	cardID string,
	color model.LabelColor,
	m *model.Member,
) error {
	path := a.cardPath(cardID, "/labels/"+url.PathEscape(string(color))+"/assignee")
	if m == nil {
		if err := a.client.delete(ctx, path); err != nil {
			return fmt.Errorf("unassigning label %s on card %s: %w", color, cardID, err)
		}
		return nil
	}
	body := map[string]string{"member_id": m.ID}
	if err := a.client.put(ctx, path, body, nil); err != nil {
		return fmt.Errorf("assigning label %s on card %s: %w", color, cardID, err)
	}
	return nil
}

func (a *Adapter) AddQuestion(ctx context.Context, cardID, text string) error {
	body := map[string]string{"text": text}
	if err := a.client.post(ctx, a.cardPath(cardID, "/questions"), body, nil); err != nil {
		return fmt.Errorf("adding question to card %s: %w", cardID, err)
	}
	return nil
}

func (a *Adapter) ResolveQuestion(
	ctx context.Context,
	cardID, questionID string,
	resolved bool,
) error {
	path := a.cardPath(cardID, "/questions/"+url.PathEscape(questionID)+"/resolve")
	body := map[string]bool{"resolved": resolved}
	if err := a.client.put(ctx, path, body, nil); err != nil {
		return fmt.Errorf("resolving question %s: %w", questionID, err)
	}
	return nil
}

func (a *Adapter) AssignQuestion(
	ctx context.Context,
	cardID, questionID string,
	m *model.Member,
) error {
	path := a.cardPath(cardID, "/questions/"+url.PathEscape(questionID)+"/assignee")
	if m == nil {
		if err := a.client.delete(ctx, path); err != nil {
			return fmt.Errorf("unassigning question %s: %w", questionID, err)
		}
		return nil
	}
	body := map[string]string{"member_id": m.ID}
	if err := a.client.put(ctx, path, body, nil); err != nil {
		return fmt.Errorf("assigning question %s: %w", questionID, err)
	}
	return nil
}

func (a *Adapter) AddAnswer(
	ctx context.Context,
	cardID, questionID, text, author string,
) error {
	path := a.cardPath(cardID, "/questions/"+url.PathEscape(questionID)+"/answers")
	body := map[string]string{"text": text, "author": author}
	if err := a.client.post(ctx, path, body, nil); err != nil {
		return fmt.Errorf("adding answer to question %s: %w", questionID, err)
	}
	return nil
}

func (a *Adapter) DeleteAnswer(
	ctx context.Context,
	cardID, questionID, answerID string,
) error {
	path := a.cardPath(
		cardID,
		"/questions/"+url.PathEscape(questionID)+"/answers/"+url.PathEscape(answerID),
	)
	if err := a.client.delete(ctx, path); err != nil {
		return fmt.Errorf("deleting answer %s: %w", answerID, err)
	}
	return nil
}

func (a *Adapter) AttachLink(ctx context.Context, cardID, name, linkURL string) error {
	body := map[string]string{"name": name, "url": linkURL, "kind": model.AttachmentLink}
	if err := a.client.post(ctx, a.cardPath(cardID, "/attachments"), body, nil); err != nil {
		return fmt.Errorf("attaching link to card %s: %w", cardID, err)
	}
	return nil
}

func (a *Adapter) UploadAttachment(
	ctx context.Context,
	cardID, filename string,
	data []byte,
) error {
	path := a.cardPath(cardID, "/attachments/upload")
	if err := a.client.upload(ctx, path, filename, data, nil); err != nil {
		return fmt.Errorf("uploading attachment to card %s: %w", cardID, err)
	}
	return nil
}

func (a *Adapter) DeleteAttachment(ctx context.Context, cardID, attachmentID string) error {
	path := a.cardPath(cardID, "/attachments/"+url.PathEscape(attachmentID))
	if err := a.client.delete(ctx, path); err != nil {
		return fmt.Errorf("deleting attachment %s: %w", attachmentID, err)
	}
	return nil
}

func (a *Adapter) AddComment(ctx context.Context, cardID, author, text string) error {
	body := map[string]string{"author": author, "text": text}
	if err := a.client.post(ctx, a.cardPath(cardID, "/comments"), body, nil); err != nil {
		return fmt.Errorf("adding comment to card %s: %w", cardID, err)
	}
	return nil
}

func (a *Adapter) ListMembers(ctx context.Context) ([]model.Member, error) {
	var members []model.Member
	if err := a.client.get(ctx, "/api/v1/members", &members); err != nil {
		return nil, fmt.Errorf("fetching member directory: %w", err)
	}
	return members, nil
}

func (a *Adapter) RegisterMember(
	ctx context.Context,
	username, displayName, password, role string,
) (*model.Member, error) {
	if role == "" {
		role = model.RoleMember
	}
	body := map[string]string{
		"username":     username,
		"display_name": displayName,
		"password":     password,
		"role":         role,
	}
	var member model.Member
	if err := a.client.post(ctx, "/api/v1/members", body, &member); err != nil {
		return nil, fmt.Errorf("registering member %s: %w", username, err)
	}
	return &member, nil
}
