// Package solve tracks a player's progress through one puzzle: the letters
// entered per cell, the active word and the input cursor.
//
// A Session is not safe for concurrent use.
package solve

import (
	"maps"
	"slices"
	"strings"

	"github.com/bodul/xwlevels/internal/grid"
	"github.com/bodul/xwlevels/internal/puzzle"
)

// Session is the solve state of one level attempt.
type Session struct {
	puzzle *puzzle.Puzzle

	filled      map[grid.Coord]byte
	active      int
	activeCells []grid.Coord
	cursor      *grid.Coord
}

// New starts an attempt with an empty grid and the first placed word
// selected.
func New(p *puzzle.Puzzle) *Session {
	s := &Session{
		puzzle: p,
		filled: make(map[grid.Coord]byte),
	}
	if len(p.Words) > 0 {
		s.SelectWord(p.Words[0].Number)
	}
	return s
}

// Puzzle returns the puzzle being solved.
func (s *Session) Puzzle() *puzzle.Puzzle {
	return s.puzzle
}

// SelectWord activates word n and puts the cursor on its first empty cell,
// or on its first cell when the word is full. Unknown numbers are ignored.
func (s *Session) SelectWord(n int) bool {
	w, ok := s.puzzle.Word(n)
	if !ok {
		return false
	}
	s.activate(w)
	cur := s.activeCells[0]
	for _, c := range s.activeCells {
		if s.filled[c] == 0 {
			cur = c
			break
		}
	}
	s.cursor = &cur
	return true
}

func (s *Session) activate(w grid.Word) {
	s.active = w.Number
	s.activeCells = w.Cells()
}

// SelectCell moves the cursor to (row, col). A cell of another word makes
// that word active without moving the cursor off the clicked cell; a cell
// outside every word only moves the cursor.
func (s *Session) SelectCell(row, col int) {
	c := grid.Coord{Row: row, Col: col}
	if s.puzzle.Index.Occupied[c] && !slices.Contains(s.activeCells, c) {
		if w, ok := s.puzzle.Owner(c); ok {
			s.activate(w)
		}
	}
	s.cursor = &c
}

// SetLetter writes letter at the cursor and steps forward within the active
// word. The cursor stays on the word's last cell. Anything other than a
// single A–Z letter is ignored.
func (s *Session) SetLetter(letter byte) bool {
	if s.cursor == nil || letter < 'A' || letter > 'Z' {
		return false
	}
	s.filled[*s.cursor] = letter
	if i := slices.Index(s.activeCells, *s.cursor); i >= 0 && i+1 < len(s.activeCells) {
		next := s.activeCells[i+1]
		s.cursor = &next
	}
	return true
}

// Input applies a burst of typed text: only its last character counts, and
// only if it is a letter.
func (s *Session) Input(text string) bool {
	ch, ok := LastLetter(text)
	if !ok {
		return false
	}
	return s.SetLetter(ch)
}

// Backspace clears the cursor cell, or, when it is already empty, steps back
// one cell in the active word and clears that one.
func (s *Session) Backspace() bool {
	if s.cursor == nil {
		return false
	}
	if s.filled[*s.cursor] != 0 {
		delete(s.filled, *s.cursor)
		return true
	}
	i := slices.Index(s.activeCells, *s.cursor)
	if i <= 0 {
		return false
	}
	prev := s.activeCells[i-1]
	s.cursor = &prev
	delete(s.filled, prev)
	return true
}

// IsWordCorrect reports whether every cell of word n holds its expected
// letter.
func (s *Session) IsWordCorrect(n int) bool {
	w, ok := s.puzzle.Word(n)
	if !ok {
		return false
	}
	for _, c := range w.Cells() {
		if s.filled[c] == 0 || s.filled[c] != s.puzzle.Index.Expected[c] {
			return false
		}
	}
	return true
}

// IsComplete reports whether the puzzle has words and all are correct.
func (s *Session) IsComplete() bool {
	if len(s.puzzle.Words) == 0 {
		return false
	}
	for _, e := range s.puzzle.Words {
		if !s.IsWordCorrect(e.Number) {
			return false
		}
	}
	return true
}

// Letter returns the letter entered at c, or 0.
func (s *Session) Letter(c grid.Coord) byte {
	return s.filled[c]
}

// Cursor returns the cursor cell, if any.
func (s *Session) Cursor() (grid.Coord, bool) {
	if s.cursor == nil {
		return grid.Coord{}, false
	}
	return *s.cursor, true
}

// Active returns the active word number and its cells.
func (s *Session) Active() (int, []grid.Coord) {
	return s.active, slices.Clone(s.activeCells)
}

// Filled returns a copy of the entered letters.
func (s *Session) Filled() map[grid.Coord]byte {
	return maps.Clone(s.filled)
}

// LastLetter upper-cases text and returns its last character when that is
// an A–Z letter.
func LastLetter(text string) (byte, bool) {
	up := strings.ToUpper(text)
	if up == "" {
		return 0, false
	}
	ch := up[len(up)-1]
	if ch < 'A' || ch > 'Z' {
		return 0, false
	}
	return ch, true
}
