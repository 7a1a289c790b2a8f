package solve

import (
	"cmp"
	"slices"

	"github.com/bodul/xwlevels/internal/grid"
)

// FilledCell is one entered letter.
type FilledCell struct {
	grid.Coord
	Letter string `json:"letter"`
}

// Snapshot is a read-only copy of a session, ready for encoding.
type Snapshot struct {
	Filled      []FilledCell `json:"filled"`
	Active      int          `json:"active"`
	ActiveCells []grid.Coord `json:"active_cells"`
	Cursor      *grid.Coord  `json:"cursor,omitempty"`
	Solved      []int        `json:"solved"`
	Complete    bool         `json:"complete"`
}

// Snapshot copies the current state. Filled cells are in row-major order.
func (s *Session) Snapshot() Snapshot {
	snap := Snapshot{
		Filled:      make([]FilledCell, 0, len(s.filled)),
		Active:      s.active,
		ActiveCells: slices.Clone(s.activeCells),
		Solved:      []int{},
		Complete:    s.IsComplete(),
	}
	for c, ch := range s.filled {
		snap.Filled = append(snap.Filled, FilledCell{Coord: c, Letter: string(ch)})
	}
	slices.SortFunc(snap.Filled, func(a, b FilledCell) int {
		return cmp.Or(cmp.Compare(a.Row, b.Row), cmp.Compare(a.Col, b.Col))
	})
	if c, ok := s.Cursor(); ok {
		snap.Cursor = &c
	}
	for _, e := range s.puzzle.Words {
		if s.IsWordCorrect(e.Number) {
			snap.Solved = append(snap.Solved, e.Number)
		}
	}
	return snap
}
