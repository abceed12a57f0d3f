package model

// ChecklistItem is the top level of a card's three-level task
// decomposition. Progress is derived from its immediate subtasks only;
// sub-subtask completion does not roll up past its own parent.
type ChecklistItem struct {
	ID       string    `json:"id"`
	Text     string    `json:"text"`
	Done     bool      `json:"done"`
	Assignee *Member   `json:"assignee,omitempty"`
	Subtasks []Subtask `json:"subtasks,omitempty"`
}

// Subtask is the middle decomposition level under a checklist item.
type Subtask struct {
	ID          string       `json:"id"`
	Text        string       `json:"text"`
	Done        bool         `json:"done"`
	SubSubtasks []SubSubtask `json:"subsubtasks,omitempty"`
}

// SubSubtask is the deepest decomposition level. It has no children.
type SubSubtask struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	Done bool   `json:"done"`
}
