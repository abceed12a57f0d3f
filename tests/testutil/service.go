// Package testutil provides in-memory doubles for tests: a fake board
// data service and a throwaway prefs store.
package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"opsboard/internal/model"
)

// FakeService is an in-memory implementation of remote.Service. It
// applies every mutation to its own state so tests can verify the
// refetch-and-reconcile flow end to end. FailNext makes the next
// mutating call return that error once.
type FakeService struct {
	mu sync.Mutex

	Columns []model.Column
	Cards   map[string]*model.Card
	Members []model.Member

	// FailNext is returned by the next mutating call, then cleared.
	FailNext error

	// Calls records method names in invocation order.
	Calls []string
}

// NewFakeService creates an empty fake service.
func NewFakeService() *FakeService {
	return &FakeService{Cards: make(map[string]*model.Card)}
}

// SeedColumn adds a column and returns its id.
func (f *FakeService) SeedColumn(title string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	col := model.Column{ID: uuid.NewString(), Title: title, Position: len(f.Columns)}
	f.Columns = append(f.Columns, col)
	return col.ID
}

// SeedCard adds a card to a column and returns its id.
func (f *FakeService) SeedCard(columnID, title string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	pos := 0
	for _, c := range f.Cards {
		if c.ColumnID == columnID {
			pos++
		}
	}
	card := &model.Card{
		ID:       uuid.NewString(),
		ColumnID: columnID,
		Title:    title,
		Position: pos,
	}
	f.Cards[card.ID] = card
	return card.ID
}

func (f *FakeService) record(name string) error {
	f.Calls = append(f.Calls, name)
	if f.FailNext != nil {
		err := f.FailNext
		f.FailNext = nil
		return err
	}
	return nil
}

func (f *FakeService) card(cardID string) (*model.Card, error) {
	c, ok := f.Cards[cardID]
	if !ok {
		return nil, fmt.Errorf("card %s not found", cardID)
	}
	return c, nil
}

func (f *FakeService) ListColumns(ctx context.Context) ([]model.Column, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListColumns"); err != nil {
		return nil, err
	}
	return append([]model.Column(nil), f.Columns...), nil
}

func (f *FakeService) ListCards(ctx context.Context) ([]model.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListCards"); err != nil {
		return nil, err
	}
	cards := make([]model.Card, 0, len(f.Cards))
	for _, c := range f.Cards {
		cards = append(cards, *c)
	}
	return cards, nil
}

func (f *FakeService) GetCard(ctx context.Context, cardID string) (*model.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetCard"); err != nil {
		return nil, err
	}
	c, err := f.card(cardID)
	if err != nil {
		return nil, err
	}
	copied := *c
	return &copied, nil
}

func (f *FakeService) CreateColumn(ctx context.Context, title, color string) (*model.Column, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateColumn"); err != nil {
		return nil, err
	}
	col := model.Column{ID: uuid.NewString(), Title: title, Color: color, Position: len(f.Columns)}
	f.Columns = append(f.Columns, col)
	return &col, nil
}

func (f *FakeService) UpdateColumn(ctx context.Context, col model.Column) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("UpdateColumn"); err != nil {
		return err
	}
	for i := range f.Columns {
		if f.Columns[i].ID == col.ID {
			f.Columns[i] = col
			return nil
		}
	}
	return fmt.Errorf("column %s not found", col.ID)
}

func (f *FakeService) DeleteColumn(ctx context.Context, columnID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteColumn"); err != nil {
		return err
	}
	for i := range f.Columns {
		if f.Columns[i].ID == columnID {
			f.Columns = append(f.Columns[:i], f.Columns[i+1:]...)
			break
		}
	}
	for id, c := range f.Cards {
		if c.ColumnID == columnID {
			delete(f.Cards, id)
		}
	}
	return nil
}

func (f *FakeService) ReorderColumns(ctx context.Context, orderedIDs []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ReorderColumns"); err != nil {
		return err
	}
	byID := make(map[string]model.Column, len(f.Columns))
	for _, c := range f.Columns {
		byID[c.ID] = c
	}
	ordered := make([]model.Column, 0, len(orderedIDs))
	for i, id := range orderedIDs {
		col, ok := byID[id]
		if !ok {
			return fmt.Errorf("column %s not found", id)
		}
		col.Position = i
		ordered = append(ordered, col)
	}
	f.Columns = ordered
	return nil
}

func (f *FakeService) CreateCard(
	ctx context.Context,
	columnID, title, description string,
	labels []model.Label,
) (*model.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateCard"); err != nil {
		return nil, err
	}
	pos := 0
	for _, c := range f.Cards {
		if c.ColumnID == columnID && !c.Archived {
			pos++
		}
	}
	card := &model.Card{
		ID:          uuid.NewString(),
		ColumnID:    columnID,
		Title:       title,
		Description: description,
		Labels:      labels,
		Position:    pos,
		CreatedAt:   time.Now(),
	}
	f.Cards[card.ID] = card
	copied := *card
	return &copied, nil
}

func (f *FakeService) UpdateCardTitle(ctx context.Context, cardID, title string) error {
	return f.mutateCard("UpdateCardTitle", cardID, func(c *model.Card) { c.Title = title })
}

func (f *FakeService) SetDescription(ctx context.Context, cardID, text string) error {
	return f.mutateCard("SetDescription", cardID, func(c *model.Card) { c.Description = text })
}

func (f *FakeService) SetDueDate(ctx context.Context, cardID string, due *time.Time) error {
	return f.mutateCard("SetDueDate", cardID, func(c *model.Card) { c.DueDate = due })
}

func (f *FakeService) SetCover(ctx context.Context, cardID, cover string) error {
	return f.mutateCard("SetCover", cardID, func(c *model.Card) { c.Cover = cover })
}

func (f *FakeService) SetLabels(ctx context.Context, cardID string, labels []model.Label) error {
	return f.mutateCard("SetLabels", cardID, func(c *model.Card) { c.Labels = labels })
}

func (f *FakeService) MoveCard(ctx context.Context, cardID, toColumnID string, toIndex int) error {
	return f.mutateCard("MoveCard", cardID, func(c *model.Card) {
		c.ColumnID = toColumnID
		c.Position = toIndex
	})
}

func (f *FakeService) CopyCard(ctx context.Context, cardID, toColumnID string) (*model.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CopyCard"); err != nil {
		return nil, err
	}
	src, err := f.card(cardID)
	if err != nil {
		return nil, err
	}
	dup := *src
	dup.ID = uuid.NewString()
	dup.ColumnID = toColumnID
	f.Cards[dup.ID] = &dup
	copied := dup
	return &copied, nil
}

func (f *FakeService) ArchiveCard(ctx context.Context, cardID string, archived bool) error {
	return f.mutateCard("ArchiveCard", cardID, func(c *model.Card) { c.Archived = archived })
}

func (f *FakeService) DeleteCard(ctx context.Context, cardID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("DeleteCard"); err != nil {
		return err
	}
	delete(f.Cards, cardID)
	return nil
}

func (f *FakeService) AddChecklistItem(
	ctx context.Context,
	cardID, text string,
	assignee *model.Member,
) error {
	return f.mutateCard("AddChecklistItem", cardID, func(c *model.Card) {
		c.Checklist = append(c.Checklist, model.ChecklistItem{
			ID: uuid.NewString(), Text: text, Assignee: assignee,
		})
	})
}

func (f *FakeService) ToggleChecklistItem(ctx context.Context, cardID, itemID string) error {
	return f.mutateCard("ToggleChecklistItem", cardID, func(c *model.Card) {
		for i := range c.Checklist {
			if c.Checklist[i].ID == itemID {
				c.Checklist[i].Done = !c.Checklist[i].Done
			}
		}
	})
}

func (f *FakeService) AssignChecklistItem(
	ctx context.Context,
	cardID, itemID string,
	member *model.Member,
) error {
	return f.mutateCard("AssignChecklistItem", cardID, func(c *model.Card) {
		for i := range c.Checklist {
			if c.Checklist[i].ID == itemID {
				c.Checklist[i].Assignee = member
			}
		}
	})
}

func (f *FakeService) AddSubtask(ctx context.Context, cardID, itemID, text string) error {
	return f.mutateCard("AddSubtask", cardID, func(c *model.Card) {
		for i := range c.Checklist {
			if c.Checklist[i].ID == itemID {
				c.Checklist[i].Subtasks = append(c.Checklist[i].Subtasks, model.Subtask{
					ID: uuid.NewString(), Text: text,
				})
			}
		}
	})
}

func (f *FakeService) ToggleSubtask(ctx context.Context, cardID, subtaskID string) error {
	return f.mutateCard("ToggleSubtask", cardID, func(c *model.Card) {
		for i := range c.Checklist {
			for j := range c.Checklist[i].Subtasks {
				if c.Checklist[i].Subtasks[j].ID == subtaskID {
					c.Checklist[i].Subtasks[j].Done = !c.Checklist[i].Subtasks[j].Done
				}
			}
		}
	})
}

func (f *FakeService) AddSubSubtask(ctx context.Context, cardID, subtaskID, text string) error {
	return f.mutateCard("AddSubSubtask", cardID, func(c *model.Card) {
		for i := range c.Checklist {
			for j := range c.Checklist[i].Subtasks {
				if c.Checklist[i].Subtasks[j].ID == subtaskID {
					c.Checklist[i].Subtasks[j].SubSubtasks = append(
						c.Checklist[i].Subtasks[j].SubSubtasks,
						model.SubSubtask{ID: uuid.NewString(), Text: text},
					)
				}
			}
		}
	})
}

func (f *FakeService) ToggleSubSubtask(ctx context.Context, cardID, subSubtaskID string) error {
	return f.mutateCard("ToggleSubSubtask", cardID, func(c *model.Card) {
		for i := range c.Checklist {
			for j := range c.Checklist[i].Subtasks {
				for k := range c.Checklist[i].Subtasks[j].SubSubtasks {
					if c.Checklist[i].Subtasks[j].SubSubtasks[k].ID == subSubtaskID {
						ss := &c.Checklist[i].Subtasks[j].SubSubtasks[k]
						ss.Done = !ss.Done
					}
				}
			}
		}
	})
}

func (f *FakeService) AssignLabel(
	ctx context.Context,
	cardID string,
	color model.LabelColor,
	member *model.Member,
) error {
	return f.mutateCard("AssignLabel", cardID, func(c *model.Card) {
		for i := range c.Labels {
			if c.Labels[i].Color == color {
				c.Labels[i].Assignee = member
			}
		}
	})
}

func (f *FakeService) AddQuestion(ctx context.Context, cardID, text string) error {
	return f.mutateCard("AddQuestion", cardID, func(c *model.Card) {
		c.Questions = append(c.Questions, model.Question{ID: uuid.NewString(), Text: text})
	})
}

func (f *FakeService) ResolveQuestion(
	ctx context.Context,
	cardID, questionID string,
	resolved bool,
) error {
	return f.mutateCard("ResolveQuestion", cardID, func(c *model.Card) {
		for i := range c.Questions {
			if c.Questions[i].ID == questionID {
				c.Questions[i].Resolved = resolved
			}
		}
	})
}

func (f *FakeService) AssignQuestion(
	ctx context.Context,
	cardID, questionID string,
	member *model.Member,
) error {
	return f.mutateCard("AssignQuestion", cardID, func(c *model.Card) {
		for i := range c.Questions {
			if c.Questions[i].ID == questionID {
				c.Questions[i].Assignee = member
			}
		}
	})
}

func (f *FakeService) AddAnswer(ctx context.Context, cardID, questionID, text, author string) error {
	return f.mutateCard("AddAnswer", cardID, func(c *model.Card) {
		for i := range c.Questions {
			if c.Questions[i].ID == questionID {
				c.Questions[i].Answers = append(c.Questions[i].Answers, model.Answer{
					ID: uuid.NewString(), Text: text, Author: author, CreatedAt: time.Now(),
				})
			}
		}
	})
}

func (f *FakeService) DeleteAnswer(ctx context.Context, cardID, questionID, answerID string) error {
	return f.mutateCard("DeleteAnswer", cardID, func(c *model.Card) {
		for i := range c.Questions {
			if c.Questions[i].ID != questionID {
				continue
			}
			answers := c.Questions[i].Answers
			for j := range answers {
				if answers[j].ID == answerID {
					c.Questions[i].Answers = append(answers[:j], answers[j+1:]...)
					return
				}
			}
		}
	})
}

func (f *FakeService) AttachLink(ctx context.Context, cardID, name, url string) error {
	return f.mutateCard("AttachLink", cardID, func(c *model.Card) {
		c.Attachments = append(c.Attachments, model.Attachment{
			ID: uuid.NewString(), Name: name, URL: url, Kind: model.AttachmentLink,
		})
	})
}

func (f *FakeService) UploadAttachment(
	ctx context.Context,
	cardID, filename string,
	data []byte,
) error {
	return f.mutateCard("UploadAttachment", cardID, func(c *model.Card) {
		c.Attachments = append(c.Attachments, model.Attachment{
			ID: uuid.NewString(), Name: filename, Kind: model.AttachmentFile,
		})
	})
}

func (f *FakeService) DeleteAttachment(ctx context.Context, cardID, attachmentID string) error {
	return f.mutateCard("DeleteAttachment", cardID, func(c *model.Card) {
		for i := range c.Attachments {
			if c.Attachments[i].ID == attachmentID {
				c.Attachments = append(c.Attachments[:i], c.Attachments[i+1:]...)
				return
			}
		}
	})
}

func (f *FakeService) AddComment(ctx context.Context, cardID, author, text string) error {
	return f.mutateCard("AddComment", cardID, func(c *model.Card) {
		c.Comments = append(c.Comments, model.Comment{
			ID: uuid.NewString(), Author: author, Text: text, CreatedAt: time.Now(),
		})
	})
}

func (f *FakeService) ListMembers(ctx context.Context) ([]model.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListMembers"); err != nil {
		return nil, err
	}
	return append([]model.Member(nil), f.Members...), nil
}

func (f *FakeService) RegisterMember(
	ctx context.Context,
	username, displayName, password, role string,
) (*model.Member, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("RegisterMember"); err != nil {
		return nil, err
	}
	member := model.Member{
		ID: uuid.NewString(), Username: username, DisplayName: displayName, Role: role,
	}
	f.Members = append(f.Members, member)
	return &member, nil
}

// mutateCard locks, records the call, and applies fn to the card.
func (f *FakeService) mutateCard(name, cardID string, fn func(*model.Card)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(name); err != nil {
		return err
	}
	c, err := f.card(cardID)
	if err != nil {
		return err
	}
	fn(c)
	c.UpdatedAt = time.Now()
	return nil
}
