package board

import (
	"fmt"

	"opsboard/internal/model"
)

// CardMove is the minimal delta describing a card reorder, sent to the
// data service after the optimistic local apply.
type CardMove struct {
	CardID     string
	ToColumnID string
	ToIndex    int
}

// MoveColumn moves the column at index from to index to and renumbers
// the column list dense. It returns the full ordered id list, which is
// the wire format for a column reorder.
func (s *Session) MoveColumn(from, to int) ([]string, error) {
	n := len(s.columns)
	if from < 0 || from >= n {
		return nil, fmt.Errorf("column reorder: source index %d out of range [0,%d)", from, n)
	}
	if to < 0 || to >= n {
		return nil, fmt.Errorf("column reorder: destination index %d out of range [0,%d)", to, n)
	}

	moved := s.columns[from]
	s.columns = append(s.columns[:from], s.columns[from+1:]...)

	s.columns = append(s.columns, model.Column{})
	copy(s.columns[to+1:], s.columns[to:])
	s.columns[to] = moved

	renumberColumns(s.columns)
	s.boardRev++

	order := make([]string, len(s.columns))
	for i, col := range s.columns {
		order[i] = col.ID
	}
	return order, nil
}

// MoveCard moves a card within its column or across two columns:
// remove from the source sequence, insert at the destination index,
// then renumber both affected sequences dense. The destination index
// is clamped to the destination column's length. Returns the minimal
// delta for the follow-up request.
func (s *Session) MoveCard(cardID, toColumnID string, toIndex int) (CardMove, error) {
	srcColID, srcIdx := s.locate(cardID)
	if srcColID == "" {
		return CardMove{}, fmt.Errorf("card reorder: card %s not on the board", cardID)
	}
	if !s.hasColumn(toColumnID) {
		return CardMove{}, fmt.Errorf("card reorder: destination column %s not on the board", toColumnID)
	}

	srcCards := s.cards[srcColID]
	moved := srcCards[srcIdx]
	srcCards = append(srcCards[:srcIdx], srcCards[srcIdx+1:]...)
	s.cards[srcColID] = srcCards

	dstCards := s.cards[toColumnID]
	if toIndex < 0 {
		toIndex = 0
	}
	if toIndex > len(dstCards) {
		toIndex = len(dstCards)
	}

	moved.ColumnID = toColumnID
	dstCards = append(dstCards, model.Card{})
	copy(dstCards[toIndex+1:], dstCards[toIndex:])
	dstCards[toIndex] = moved
	s.cards[toColumnID] = dstCards

	renumberCards(s.cards[srcColID])
	renumberCards(s.cards[toColumnID])
	s.BumpCard(cardID)
	s.boardRev++

	return CardMove{
		CardID:     cardID,
		ToColumnID: toColumnID,
		ToIndex:    toIndex,
	}, nil
}

// locate finds the column and index currently holding the card.
func (s *Session) locate(cardID string) (string, int) {
	for colID, colCards := range s.cards {
		for i, c := range colCards {
			if c.ID == cardID {
				return colID, i
			}
		}
	}
	return "", -1
}

// hasColumn reports whether a column id is part of the board.
func (s *Session) hasColumn(columnID string) bool {
	for _, col := range s.columns {
		if col.ID == columnID {
			return true
		}
	}
	return false
}
