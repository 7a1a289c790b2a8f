package grid

import "strings"

// Conflict records two words that need different letters in the same cell.
type Conflict struct {
	Cell        Coord `json:"cell"`
	Expected    byte  `json:"-"`
	Conflicting byte  `json:"-"`
}

// Index holds the lookup tables derived from a placement.
type Index struct {
	Occupied  map[Coord]bool
	NumberAt  map[Coord]int
	Expected  map[Coord]byte
	Conflicts []Conflict
}

// Build derives the occupied set, origin numbering and expected letters from
// words, in order. The first word to claim a cell decides its letter; any
// later disagreement is appended to Conflicts and the map is left as is.
func Build(words []Word) Index {
	idx := Index{
		Occupied: make(map[Coord]bool),
		NumberAt: make(map[Coord]int, len(words)),
		Expected: make(map[Coord]byte),
	}
	for _, w := range words {
		idx.NumberAt[w.Origin()] = w.Number
		for i, c := range w.Cells() {
			idx.Occupied[c] = true
			ch := w.Answer[i]
			existing, ok := idx.Expected[c]
			switch {
			case !ok:
				idx.Expected[c] = ch
			case existing != ch:
				idx.Conflicts = append(idx.Conflicts, Conflict{Cell: c, Expected: existing, Conflicting: ch})
			}
		}
	}
	return idx
}

// Render draws a size×size grid: '#' for cells no word uses, the filled
// letter where there is one and '.' for open cells still empty.
func (idx Index) Render(size int, filled map[Coord]byte) string {
	lines := make([]string, size)
	row := make([]byte, size)
	for r := range size {
		for c := range size {
			cell := Coord{Row: r, Col: c}
			switch {
			case !idx.Occupied[cell]:
				row[c] = '#'
			case filled[cell] != 0:
				row[c] = filled[cell]
			default:
				row[c] = '.'
			}
		}
		lines[r] = string(row)
	}
	return strings.Join(lines, "\n")
}
