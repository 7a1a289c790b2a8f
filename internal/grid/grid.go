package grid

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Orientation is the direction a word runs in, either Across or Down.
type Orientation int

const (
	Across Orientation = iota
	Down
)

func (o Orientation) String() string {
	if o == Down {
		return "down"
	}
	return "across"
}

// Opposite returns the crossing orientation.
func (o Orientation) Opposite() Orientation {
	if o == Down {
		return Across
	}
	return Down
}

func (o Orientation) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

func (o *Orientation) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch strings.ToLower(s) {
	case "across":
		*o = Across
	case "down":
		*o = Down
	default:
		return fmt.Errorf("unknown orientation %q", s)
	}
	return nil
}

// Coord identifies a cell on the grid.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.Row, c.Col)
}

// Step returns the cell i positions away from c in orientation o.
func (c Coord) Step(o Orientation, i int) Coord {
	if o == Down {
		return Coord{Row: c.Row + i, Col: c.Col}
	}
	return Coord{Row: c.Row, Col: c.Col + i}
}

// Word is a placed answer: its number, orientation and origin cell.
type Word struct {
	Number      int         `json:"number"`
	Orientation Orientation `json:"orientation"`
	Row         int         `json:"row"`
	Col         int         `json:"col"`
	Answer      string      `json:"answer"`
}

// Origin returns the first cell of the word.
func (w Word) Origin() Coord {
	return Coord{Row: w.Row, Col: w.Col}
}

// Cells returns the footprint of the word, origin first.
func (w Word) Cells() []Coord {
	cells := make([]Coord, len(w.Answer))
	for i := range cells {
		cells[i] = w.Origin().Step(w.Orientation, i)
	}
	return cells
}

// IndexOf returns the position of c within the word, or -1.
func (w Word) IndexOf(c Coord) int {
	var d int
	switch w.Orientation {
	case Across:
		if c.Row != w.Row {
			return -1
		}
		d = c.Col - w.Col
	default:
		if c.Col != w.Col {
			return -1
		}
		d = c.Row - w.Row
	}
	if d < 0 || d >= len(w.Answer) {
		return -1
	}
	return d
}

// Contains reports whether c is part of the word's footprint.
func (w Word) Contains(c Coord) bool {
	return w.IndexOf(c) >= 0
}
