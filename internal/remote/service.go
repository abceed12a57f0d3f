package remote

import (
	"context"
	"time"

	"opsboard/internal/model"
)

// Service is the contract the board engine consumes from the data
// service. Persistence, auth sessions, and file storage live behind it;
// the client only sees request/response semantics. Every mutating call
// is field-scoped: it changes exactly one aspect of one entity, and the
// caller refetches the affected card afterwards to reconcile.
type Service interface {
	// Board load.

	// ListColumns returns all columns of the board ordered by position.
	ListColumns(ctx context.Context) ([]model.Column, error)

	// ListCards returns every card on the board, archived ones included.
	ListCards(ctx context.Context) ([]model.Card, error)

	// GetCard fetches the full, authoritative state of a single card.
	GetCard(ctx context.Context, cardID string) (*model.Card, error)

	// Columns.

	CreateColumn(ctx context.Context, title, color string) (*model.Column, error)
	UpdateColumn(ctx context.Context, col model.Column) error

	// DeleteColumn removes a column; the service cascade-deletes its cards.
	DeleteColumn(ctx context.Context, columnID string) error

	// ReorderColumns replaces the board's column ordering with the
	// given full ordered id list.
	ReorderColumns(ctx context.Context, orderedIDs []string) error

	// Cards.

	CreateCard(
		ctx context.Context,
		columnID, title, description string,
		labels []model.Label,
	) (*model.Card, error)

	UpdateCardTitle(ctx context.Context, cardID, title string) error
	SetDescription(ctx context.Context, cardID, text string) error
	SetDueDate(ctx context.Context, cardID string, due *time.Time) error
	SetCover(ctx context.Context, cardID, cover string) error
	SetLabels(ctx context.Context, cardID string, labels []model.Label) error

	// MoveCard places the card into toColumnID at toIndex. This is the
	// minimal delta for a card reorder; the service renumbers both
	// affected columns.
	MoveCard(ctx context.Context, cardID, toColumnID string, toIndex int) error

	CopyCard(ctx context.Context, cardID, toColumnID string) (*model.Card, error)
	ArchiveCard(ctx context.Context, cardID string, archived bool) error
	DeleteCard(ctx context.Context, cardID string) error

	// Checklist hierarchy.

	AddChecklistItem(ctx context.Context, cardID, text string, assignee *model.Member) error
	ToggleChecklistItem(ctx context.Context, cardID, itemID string) error

	// AssignChecklistItem sets the item's single assignee; nil unassigns.
	AssignChecklistItem(ctx context.Context, cardID, itemID string, m *model.Member) error

	AddSubtask(ctx context.Context, cardID, itemID, text string) error
	ToggleSubtask(ctx context.Context, cardID, subtaskID string) error
	AddSubSubtask(ctx context.Context, cardID, subtaskID, text string) error
	ToggleSubSubtask(ctx context.Context, cardID, subSubtaskID string) error

	// Label assignment on a specific card.

	// AssignLabel sets the single collaborator for the label of the
	// given color on the card; nil unassigns.
	AssignLabel(ctx context.Context, cardID string, color model.LabelColor, m *model.Member) error

	// Decision thread.

	AddQuestion(ctx context.Context, cardID, text string) error
	ResolveQuestion(ctx context.Context, cardID, questionID string, resolved bool) error
	AssignQuestion(ctx context.Context, cardID, questionID string, m *model.Member) error
	AddAnswer(ctx context.Context, cardID, questionID, text, author string) error
	DeleteAnswer(ctx context.Context, cardID, questionID, answerID string) error

	// Attachments and comments.

	AttachLink(ctx context.Context, cardID, name, url string) error
	UploadAttachment(ctx context.Context, cardID, filename string, data []byte) error
	DeleteAttachment(ctx context.Context, cardID, attachmentID string) error
	AddComment(ctx context.Context, cardID, author, text string) error

	// Member directory.

	ListMembers(ctx context.Context) ([]model.Member, error)

	// RegisterMember creates a directory entry from within the board UI.
	RegisterMember(
		ctx context.Context,
		username, displayName, password, role string,
	) (*model.Member, error)
}
