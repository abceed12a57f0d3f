package board

import (
	"math"

	"opsboard/internal/model"
)

// Progress computes the completion percentage of a checklist item from
// its immediate subtasks only: sub-subtask state never rolls up past
// its own parent. The result is a rounded integer in [0,100]; an item
// with no subtasks reports 0. Recomputed on every render, never cached.
func Progress(item model.ChecklistItem) int {
	total := len(item.Subtasks)
	if total == 0 {
		return 0
	}

	done := 0
	for _, st := range item.Subtasks {
		if st.Done {
			done++
		}
	}

	return int(math.Round(float64(done) / float64(total) * 100))
}

// SubtaskProgress computes the completion percentage of a subtask from
// its sub-subtasks, with the same rounding and empty-child rules.
func SubtaskProgress(st model.Subtask) int {
	total := len(st.SubSubtasks)
	if total == 0 {
		return 0
	}

	done := 0
	for _, ss := range st.SubSubtasks {
		if ss.Done {
			done++
		}
	}

	return int(math.Round(float64(done) / float64(total) * 100))
}

// ChecklistSummary returns the done/total counts of a card's top-level
// checklist items, for compact card badges.
func ChecklistSummary(card model.Card) (done, total int) {
	total = len(card.Checklist)
	for _, item := range card.Checklist {
		if item.Done {
			done++
		}
	}
	return done, total
}

// OpenQuestionCount returns how many questions on the card are still
// unresolved.
func OpenQuestionCount(card model.Card) int {
	open := 0
	for _, q := range card.Questions {
		if !q.Resolved {
			open++
		}
	}
	return open
}
