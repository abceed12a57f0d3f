package model

import "time"

// Column is a named, ordered lane of cards on the board.
// Position is a dense zero-based index unique within the board.
type Column struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Color    string `json:"color,omitempty"`
	Position int    `json:"position"`
}

// Card is a single task unit on the board. Position is dense within
// its column. Archived cards stay in the store but are excluded from
// every rendered column.
type Card struct {
	ID          string `json:"id"`
	ColumnID    string `json:"column_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Position    int    `json:"position"`

	Labels    []Label    `json:"labels,omitempty"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	Assignees []Member   `json:"assignees,omitempty"`

	Checklist   []ChecklistItem `json:"checklist,omitempty"`
	Questions   []Question      `json:"questions,omitempty"`
	Attachments []Attachment    `json:"attachments,omitempty"`
	Comments    []Comment       `json:"comments,omitempty"`

	Cover    string `json:"cover,omitempty"`
	Archived bool   `json:"archived"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Attachment kinds. Link attachments carry a URL; file attachments
// reference an upload stored by the data service.
const (
	AttachmentLink = "link"
	AttachmentFile = "file"
)

// Attachment is a link or uploaded file attached to a card.
type Attachment struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	URL       string    `json:"url,omitempty"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is a single entry in a card's comment log.
type Comment struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
