package model

import "time"

// Question is a single entry in a card's decision thread: an open
// point that collaborators answer and eventually mark resolved.
// Resolution is independent of whether any answers exist.
type Question struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Resolved bool     `json:"resolved"`
	Assignee *Member  `json:"assignee,omitempty"`
	Answers  []Answer `json:"answers,omitempty"`
}

// Answer is immutable once created; whole-answer deletion is the only
// supported mutation.
type Answer struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	CreatedAt time.Time `json:"created_at"`
}
