package domain

import (
	"errors"
	"fmt"
)

// ErrCategoryFilled is returned when a category already holds a score.
var ErrCategoryFilled = errors.New("category already filled")

// ScoreSheet records which categories a player has filled and with what score.
// A filled category never changes again.
type ScoreSheet struct {
	scores [CategoryCount]int
	filled [CategoryCount]bool
	total  int
}

// SheetEntry is one row of a score sheet for display.
type SheetEntry struct {
	Category Category `json:"category"`
	Score    int      `json:"score"`
	Filled   bool     `json:"filled"`
}

// IsFilled reports whether c already holds a score.
func (s *ScoreSheet) IsFilled(c Category) bool {
	return c.Valid() && s.filled[c]
}

// Score returns the recorded score of c and whether it was filled.
func (s *ScoreSheet) Score(c Category) (int, bool) {
	if !s.IsFilled(c) {
		return 0, false
	}
	return s.scores[c], true
}

// Record fills c with score. It fails without side effects when c is invalid or already filled.
func (s *ScoreSheet) Record(c Category, score int) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	if s.filled[c] {
		return fmt.Errorf("%w: %s", ErrCategoryFilled, c)
	}
	s.scores[c] = score
	s.filled[c] = true
	s.total += score
	return nil
}

// Total is the sum of all recorded scores.
func (s *ScoreSheet) Total() int {
	return s.total
}

// FilledCount returns how many categories hold a score.
func (s *ScoreSheet) FilledCount() int {
	n := 0
	for _, f := range s.filled {
		if f {
			n++
		}
	}
	return n
}

// Complete reports whether all twelve categories are filled.
func (s *ScoreSheet) Complete() bool {
	return s.FilledCount() == CategoryCount
}

// Entries lists every category in display order with its recorded score.
func (s *ScoreSheet) Entries() []SheetEntry {
	out := make([]SheetEntry, 0, CategoryCount)
	for _, c := range Categories() {
		out = append(out, SheetEntry{Category: c, Score: s.scores[c], Filled: s.filled[c]})
	}
	return out
}
