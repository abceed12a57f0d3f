package board

import (
	"testing"

	"opsboard/internal/model"
)

func item(done ...bool) model.ChecklistItem {
	it := model.ChecklistItem{ID: "i", Text: "item"}
	for i, d := range done {
		it.Subtasks = append(it.Subtasks, model.Subtask{
			ID:   string(rune('a' + i)),
			Done: d,
		})
	}
	return it
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name string
		item model.ChecklistItem
		want int
	}{
		{"no subtasks", item(), 0},
		{"none done", item(false, false), 0},
		{"half done", item(true, false), 50},
		{"all done", item(true, true), 100},
		{"one third rounds", item(true, false, false), 33},
		{"two thirds rounds", item(true, true, false), 67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Progress(tt.item)
			if got != tt.want {
				t.Fatalf("Progress() = %d, want %d", got, tt.want)
			}
			if got < 0 || got > 100 {
				t.Fatalf("Progress() = %d outside [0,100]", got)
			}
		})
	}
}

func TestProgressIgnoresSubSubtasks(t *testing.T) {
	// Sub-subtask completion never rolls up to the checklist item:
	// only immediate children count.
	it := item(true, false)
	it.Subtasks[1].SubSubtasks = []model.SubSubtask{
		{ID: "s1", Done: true},
		{ID: "s2", Done: true},
	}

	if got := Progress(it); got != 50 {
		t.Fatalf("Progress() = %d, want 50 (sub-subtasks must not count)", got)
	}

	if got := SubtaskProgress(it.Subtasks[1]); got != 100 {
		t.Fatalf("SubtaskProgress() = %d, want 100", got)
	}
}

func TestToggleIdempotence(t *testing.T) {
	it := item(true, false)
	before := Progress(it)

	it.Subtasks[1].Done = !it.Subtasks[1].Done
	it.Subtasks[1].Done = !it.Subtasks[1].Done

	if got := Progress(it); got != before {
		t.Fatalf("double toggle changed progress: %d -> %d", before, got)
	}
	if it.Subtasks[1].Done {
		t.Fatal("double toggle changed done state")
	}
}

func TestChecklistScenario(t *testing.T) {
	// Create "Ship order" with 2 subtasks; completing them one at a
	// time reports 50 then 100, regardless of sub-subtasks.
	it := model.ChecklistItem{
		ID:   "ship",
		Text: "Ship order",
		Subtasks: []model.Subtask{
			{ID: "pack", Text: "Pack boxes"},
			{ID: "mail", Text: "Hand to courier", SubSubtasks: []model.SubSubtask{
				{ID: "print", Text: "Print waybill"},
			}},
		},
	}

	if got := Progress(it); got != 0 {
		t.Fatalf("initial progress = %d, want 0", got)
	}

	it.Subtasks[0].Done = true
	if got := Progress(it); got != 50 {
		t.Fatalf("progress after first subtask = %d, want 50", got)
	}

	it.Subtasks[1].Done = true
	if got := Progress(it); got != 100 {
		t.Fatalf("progress after both subtasks = %d, want 100", got)
	}
}

func TestChecklistSummary(t *testing.T) {
	card := model.Card{Checklist: []model.ChecklistItem{
		{ID: "1", Done: true},
		{ID: "2"},
		{ID: "3", Done: true},
	}}

	done, total := ChecklistSummary(card)
	if done != 2 || total != 3 {
		t.Fatalf("ChecklistSummary() = %d/%d, want 2/3", done, total)
	}
}

func TestOpenQuestionCount(t *testing.T) {
	card := model.Card{Questions: []model.Question{
		{ID: "1", Resolved: true},
		{ID: "2"},
		{ID: "3"},
	}}

	if got := OpenQuestionCount(card); got != 2 {
		t.Fatalf("OpenQuestionCount() = %d, want 2", got)
	}
}
