package board

import "opsboard/internal/model"

// Catalog is the board-wide label name override table: color -> custom
// display name. It is an explicit value owned by the Session and passed
// to every card view, never ambient package state. Entries are
// populated lazily from card labels and survive removal and re-addition
// of a label on any card.
type Catalog struct {
	overrides map[model.LabelColor]string
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{overrides: make(map[model.LabelColor]string)}
}

// Observe copies every non-empty custom label name into the override
// table, keyed by color. Called whenever a card's labels are inspected.
func (c *Catalog) Observe(labels []model.Label) {
	for _, l := range labels {
		if l.Name != "" {
			c.overrides[l.Color] = l.Name
		}
	}
}

// SetName records a board-wide override for a color. An empty name
// clears the override, falling back to the palette default.
func (c *Catalog) SetName(color model.LabelColor, name string) {
	if name == "" {
		delete(c.overrides, color)
		return
	}
	c.overrides[color] = name
}

// DisplayName resolves a label's display name: board-wide override for
// its color, else the label's own stored name, else the color's
// palette default.
func (c *Catalog) DisplayName(l model.Label) string {
	if name, ok := c.overrides[l.Color]; ok {
		return name
	}
	if l.Name != "" {
		return l.Name
	}
	return l.Color.DefaultName()
}

// NameFor resolves the display name for a bare color, used by the
// label picker where no per-card label exists yet.
func (c *Catalog) NameFor(color model.LabelColor) string {
	if name, ok := c.overrides[color]; ok {
		return name
	}
	return color.DefaultName()
}

// HasOverride reports whether the color carries a board-wide override.
func (c *Catalog) HasOverride(color model.LabelColor) bool {
	_, ok := c.overrides[color]
	return ok
}
