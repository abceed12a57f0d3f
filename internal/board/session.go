// Package board holds the in-memory board engine: the column/card
// state manager, the drag-reorder algorithm, checklist progress,
// the due-date fuel gauge, and the label catalog. Everything here is
// pure in-memory state; all I/O stays in the app layer.
package board

import (
	"fmt"
	"sort"

	"opsboard/internal/model"
)

// Session owns the board state for one editing session: the ordered
// column list, the per-column card slices, the label catalog, and the
// member directory. The Bubble Tea runtime delivers messages on a
// single goroutine, so Session needs no locking; revisions exist to
// reject stale reconciliation responses, not to guard against races.
type Session struct {
	columns []model.Column
	cards   map[string][]model.Card
	catalog *Catalog
	members []model.Member

	// cardRevs tracks a monotonically increasing revision per card.
	// Every optimistic mutation bumps the revision; a reconciliation
	// carrying an older revision is discarded.
	cardRevs map[string]uint64

	// boardRev covers whole-board structure (columns, reorders).
	boardRev uint64

	loaded bool
}

// NewSession creates an empty session with a fresh label catalog.
func NewSession() *Session {
	return &Session{
		cards:    make(map[string][]model.Card),
		catalog:  NewCatalog(),
		cardRevs: make(map[string]uint64),
	}
}

// Load replaces the session state with freshly fetched columns and
// cards: cards are partitioned by column, archived ones dropped from
// the visible slices, and every sequence renumbered dense. Callers
// invoke Load only with a successful fetch; a failed load never
// reaches the session, so prior state stays untouched.
func (s *Session) Load(columns []model.Column, cards []model.Card) {
	cols := make([]model.Column, len(columns))
	copy(cols, columns)
	sort.SliceStable(cols, func(i, j int) bool {
		return cols[i].Position < cols[j].Position
	})

	partitioned := make(map[string][]model.Card, len(cols))
	for _, card := range cards {
		s.catalog.Observe(card.Labels)
		if card.Archived {
			continue
		}
		partitioned[card.ColumnID] = append(partitioned[card.ColumnID], card)
	}
	for colID := range partitioned {
		colCards := partitioned[colID]
		sort.SliceStable(colCards, func(i, j int) bool {
			return colCards[i].Position < colCards[j].Position
		})
		renumberCards(colCards)
		partitioned[colID] = colCards
	}

	renumberColumns(cols)
	s.columns = cols
	s.cards = partitioned
	s.boardRev++
	s.loaded = true
}

// Loaded reports whether the session holds a successfully loaded board.
func (s *Session) Loaded() bool {
	return s.loaded
}

// Columns returns the board's columns in position order.
func (s *Session) Columns() []model.Column {
	out := make([]model.Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// CardsFor returns the visible cards of a column in position order.
func (s *Session) CardsFor(columnID string) []model.Card {
	src := s.cards[columnID]
	out := make([]model.Card, len(src))
	copy(out, src)
	return out
}

// Column looks up a column by id.
func (s *Session) Column(columnID string) (model.Column, bool) {
	for _, c := range s.columns {
		if c.ID == columnID {
			return c, true
		}
	}
	return model.Column{}, false
}

// Card looks up a visible card by id.
func (s *Session) Card(cardID string) (model.Card, bool) {
	for _, colCards := range s.cards {
		for _, c := range colCards {
			if c.ID == cardID {
				return c, true
			}
		}
	}
	return model.Card{}, false
}

// Catalog returns the session's label catalog.
func (s *Session) Catalog() *Catalog {
	return s.catalog
}

// SetMembers replaces the cached member directory.
func (s *Session) SetMembers(members []model.Member) {
	s.members = members
}

// Members returns the cached member directory.
func (s *Session) Members() []model.Member {
	out := make([]model.Member, len(s.members))
	copy(out, s.members)
	return out
}

// CardRev returns the current revision of a card.
func (s *Session) CardRev(cardID string) uint64 {
	return s.cardRevs[cardID]
}

// BoardRev returns the current whole-board revision.
func (s *Session) BoardRev() uint64 {
	return s.boardRev
}

// BumpCard records an optimistic mutation of a card and returns the
// new revision. Reconciliation responses dispatched before this bump
// will be rejected by ReplaceCard.
func (s *Session) BumpCard(cardID string) uint64 {
	s.cardRevs[cardID]++
	return s.cardRevs[cardID]
}

// ReplaceCard reconciles a card with the authoritative state fetched
// from the store. The rev argument is the revision observed when the
// refetch was dispatched; if the card has been mutated again since,
// the response is stale and is discarded. Returns whether the card
// was applied.
func (s *Session) ReplaceCard(card model.Card, rev uint64) bool {
	if rev < s.cardRevs[card.ID] {
		return false
	}

	s.catalog.Observe(card.Labels)
	s.removeCard(card.ID)

	if !card.Archived {
		colCards := s.cards[card.ColumnID]
		idx := card.Position
		if idx < 0 {
			idx = 0
		}
		if idx > len(colCards) {
			idx = len(colCards)
		}
		colCards = append(colCards, model.Card{})
		copy(colCards[idx+1:], colCards[idx:])
		colCards[idx] = card
		renumberCards(colCards)
		s.cards[card.ColumnID] = colCards
	}

	return true
}

// InsertCard places a newly created card at the end of its column.
func (s *Session) InsertCard(card model.Card) {
	if card.Archived {
		return
	}
	s.catalog.Observe(card.Labels)
	colCards := append(s.cards[card.ColumnID], card)
	renumberCards(colCards)
	s.cards[card.ColumnID] = colCards
	s.BumpCard(card.ID)
}

// DropCard removes a card from the visible board (deletion or
// archival) and renumbers its column.
func (s *Session) DropCard(cardID string) {
	s.removeCard(cardID)
	s.BumpCard(cardID)
}

// SetColumns replaces the column list, keeping positions dense.
func (s *Session) SetColumns(columns []model.Column) {
	cols := make([]model.Column, len(columns))
	copy(cols, columns)
	sort.SliceStable(cols, func(i, j int) bool {
		return cols[i].Position < cols[j].Position
	})
	renumberColumns(cols)
	s.columns = cols
	s.boardRev++
}

// RemoveColumn drops a column and its cards (mirror of the service's
// cascade delete) and renumbers the remaining columns.
func (s *Session) RemoveColumn(columnID string) {
	for i, col := range s.columns {
		if col.ID == columnID {
			s.columns = append(s.columns[:i], s.columns[i+1:]...)
			break
		}
	}
	delete(s.cards, columnID)
	renumberColumns(s.columns)
	s.boardRev++
}

// RenameLabel sets the board-wide override name for a color and
// propagates the new text to every in-memory card using that color.
func (s *Session) RenameLabel(color model.LabelColor, name string) {
	s.catalog.SetName(color, name)
	for colID, colCards := range s.cards {
		for i := range colCards {
			for j := range colCards[i].Labels {
				if colCards[i].Labels[j].Color == color {
					colCards[i].Labels[j].Name = name
				}
			}
		}
		s.cards[colID] = colCards
	}
}

// CheckInvariants verifies the dense-position invariant on every
// sequence. It exists for tests and debug assertions.
func (s *Session) CheckInvariants() error {
	for i, col := range s.columns {
		if col.Position != i {
			return fmt.Errorf(
				"column %s: position %d, want %d", col.ID, col.Position, i,
			)
		}
	}
	for colID, colCards := range s.cards {
		for i, c := range colCards {
			if c.Position != i {
				return fmt.Errorf(
					"card %s in column %s: position %d, want %d",
					c.ID, colID, c.Position, i,
				)
			}
			if c.ColumnID != colID {
				return fmt.Errorf(
					"card %s: column_id %s, stored under %s",
					c.ID, c.ColumnID, colID,
				)
			}
		}
	}
	return nil
}

// removeCard deletes a card from whichever column holds it and
// renumbers that column.
func (s *Session) removeCard(cardID string) {
	for colID, colCards := range s.cards {
		for i, c := range colCards {
			if c.ID == cardID {
				colCards = append(colCards[:i], colCards[i+1:]...)
				renumberCards(colCards)
				s.cards[colID] = colCards
				return
			}
		}
	}
}

// renumberCards rewrites positions to a dense 0..n-1 sequence.
func renumberCards(cards []model.Card) {
	for i := range cards {
		cards[i].Position = i
	}
}

// renumberColumns rewrites positions to a dense 0..n-1 sequence.
func renumberColumns(columns []model.Column) {
	for i := range columns {
		columns[i].Position = i
	}
}
