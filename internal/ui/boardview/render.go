package boardview

import (
	"fmt"
	"strings"

	"opsboard/internal/board"
	"opsboard/internal/model"
	"opsboard/internal/theme"
)

// truncate shortens s to max runes, keeping an ellipsis.
func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// countBadge renders a card counter next to the column title.
func countBadge(n int) string {
	return theme.DimmedStyle.Render(fmt.Sprintf(" %d", n))
}

// labelChips renders a card's labels as colored chips, resolving
// display names through the board catalog.
func labelChips(labels []model.Label, catalog *board.Catalog) string {
	if len(labels) == 0 {
		return ""
	}
	chips := make([]string, 0, len(labels))
	for _, l := range labels {
		name := catalog.DisplayName(l)
		chips = append(chips, theme.LabelStyle(l.Color).Render(name))
	}
	return strings.Join(chips, " ")
}

// checkBadge renders checklist progress as done/total.
func checkBadge(done, total int) string {
	return fmt.Sprintf("☑ %d/%d", done, total)
}

// questionBadge renders the open-question count.
func questionBadge(open int) string {
	return fmt.Sprintf("? %d", open)
}
