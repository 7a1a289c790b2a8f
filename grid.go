package main

import (
	"github.com/bodul/xwlevels/internal/grid"
	"github.com/bodul/xwlevels/internal/progress"
	"github.com/bodul/xwlevels/internal/puzzle"
	"github.com/bodul/xwlevels/internal/solve"
)

// wordView is a placed word as shown to the player. Answers stay server-side.
type wordView struct {
	Number      int              `json:"number"`
	Orientation grid.Orientation `json:"orientation"`
	Row         int              `json:"row"`
	Col         int              `json:"col"`
	Length      int              `json:"length"`
	Clue        string           `json:"clue"`
}

// numberView labels an origin cell.
type numberView struct {
	grid.Coord
	Number int `json:"number"`
}

// conflictView warns about a cell two words disagree on.
type conflictView struct {
	grid.Coord
	Expected    string `json:"expected"`
	Conflicting string `json:"conflicting"`
}

// puzzleView is the static part of a level: grid size, words and numbering.
type puzzleView struct {
	LevelID   int            `json:"level_id"`
	Title     string         `json:"title"`
	Size      int            `json:"size"`
	Words     []wordView     `json:"words"`
	Cells     []grid.Coord   `json:"cells"`
	Numbers   []numberView   `json:"numbers"`
	Conflicts []conflictView `json:"conflicts,omitempty"`
}

func newPuzzleView(p *puzzle.Puzzle) puzzleView {
	v := puzzleView{
		LevelID: p.LevelID,
		Title:   p.Title,
		Size:    p.Size,
		Words:   make([]wordView, len(p.Words)),
		Cells:   make([]grid.Coord, 0, len(p.Index.Occupied)),
		Numbers: make([]numberView, 0, len(p.Index.NumberAt)),
	}
	for i, w := range p.Words {
		v.Words[i] = wordView{
			Number:      w.Number,
			Orientation: w.Orientation,
			Row:         w.Row,
			Col:         w.Col,
			Length:      len(w.Answer),
			Clue:        w.Clue,
		}
	}
	// Walk the grid row by row so the output is stable.
	for r := range p.Size {
		for c := range p.Size {
			cell := grid.Coord{Row: r, Col: c}
			if p.Index.Occupied[cell] {
				v.Cells = append(v.Cells, cell)
			}
			if n, ok := p.Index.NumberAt[cell]; ok {
				v.Numbers = append(v.Numbers, numberView{Coord: cell, Number: n})
			}
		}
	}
	for _, c := range p.Index.Conflicts {
		v.Conflicts = append(v.Conflicts, conflictView{
			Coord:       c.Cell,
			Expected:    string(c.Expected),
			Conflicting: string(c.Conflicting),
		})
	}
	return v
}

// levelSummary is one entry of the level list.
type levelSummary struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Words    int    `json:"words"`
	Unlocked bool   `json:"unlocked"`
	Done     bool   `json:"done"`
}

type levelsView struct {
	Levels   []levelSummary    `json:"levels"`
	Progress progress.Progress `json:"progress"`
}

type sessionView struct {
	ID      string          `json:"id"`
	Status  string          `json:"status"`
	LevelID int             `json:"level_id"`
	Puzzle  *puzzleView     `json:"puzzle,omitempty"`
	Solve   *solve.Snapshot `json:"solve,omitempty"`
}
