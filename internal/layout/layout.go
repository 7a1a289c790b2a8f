// Package layout places a level's answers on a square grid.
//
// Placement is greedy and deterministic: words go down longest first, each
// one crossing the first compatible letter of a word already on the grid.
// Words that cross nothing are parked below the rest of the grid.
package layout

import (
	"slices"
	"strings"

	"github.com/bodul/xwlevels/internal/grid"
)

const (
	MinSize = 7
	MaxSize = 13
	Padding = 1
)

// Layout is a placement of words on a Size×Size grid.
type Layout struct {
	Size  int         `json:"size"`
	Words []grid.Word `json:"words"`
}

// Normalize upper-cases s and drops everything outside A–Z.
func Normalize(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' {
			return r - 'a' + 'A'
		}
		if r >= 'A' && r <= 'Z' {
			return r
		}
		return -1
	}, s)
}

// placement tracks the letters laid down so far, in grid-local coordinates
// which may be negative until the final translation.
type placement struct {
	cells  map[grid.Coord]byte
	placed []grid.Word
}

func (p *placement) fits(w grid.Word) bool {
	for i, c := range w.Cells() {
		if existing, ok := p.cells[c]; ok && existing != w.Answer[i] {
			return false
		}
	}
	return true
}

func (p *placement) put(w grid.Word) {
	for i, c := range w.Cells() {
		p.cells[c] = w.Answer[i]
	}
	p.placed = append(p.placed, w)
}

// crossing returns the first position where w crosses an already placed
// word on a shared letter without clashing with any occupied cell.
func (p *placement) crossing(w grid.Word) (grid.Word, bool) {
	for _, other := range p.placed {
		for a := 0; a < len(w.Answer); a++ {
			for b := 0; b < len(other.Answer); b++ {
				if other.Answer[b] != w.Answer[a] {
					continue
				}
				shared := other.Origin().Step(other.Orientation, b)
				cand := w
				cand.Orientation = other.Orientation.Opposite()
				origin := shared.Step(cand.Orientation, -a)
				cand.Row, cand.Col = origin.Row, origin.Col
				if p.fits(cand) {
					return cand, true
				}
			}
		}
	}
	return grid.Word{}, false
}

func (p *placement) maxRow() int {
	m := 0
	for c := range p.cells {
		m = max(m, c.Row)
	}
	return m
}

// Generate places answers on a grid. Word numbers are the 1-based positions
// in answers; answers with no letters left after Normalize are skipped.
// Generate never fails: words that cannot cross anything are placed
// disconnected, and very large inputs may overflow Size.
func Generate(answers []string) Layout {
	var words []grid.Word
	for i, a := range answers {
		if n := Normalize(a); n != "" {
			words = append(words, grid.Word{Number: i + 1, Answer: n})
		}
	}
	if len(words) == 0 {
		return Layout{Size: MinSize}
	}

	slices.SortStableFunc(words, func(a, b grid.Word) int {
		return len(b.Answer) - len(a.Answer)
	})

	p := &placement{cells: make(map[grid.Coord]byte)}
	first := words[0]
	first.Orientation = grid.Down
	p.put(first)

	for _, w := range words[1:] {
		if cand, ok := p.crossing(w); ok {
			p.put(cand)
			continue
		}
		w.Orientation = grid.Across
		w.Row, w.Col = p.maxRow()+2, 0
		p.put(w)
	}

	return p.normalize()
}

// normalize translates the placement so the bounding box starts at
// (Padding, Padding) and derives the clamped grid size.
func (p *placement) normalize() Layout {
	first := true
	var minR, minC, maxR, maxC int
	for c := range p.cells {
		if first {
			minR, minC, maxR, maxC = c.Row, c.Col, c.Row, c.Col
			first = false
			continue
		}
		minR, minC = min(minR, c.Row), min(minC, c.Col)
		maxR, maxC = max(maxR, c.Row), max(maxC, c.Col)
	}

	size := max(maxR-minR+1, maxC-minC+1) + 2*Padding
	out := Layout{
		Size:  min(MaxSize, max(MinSize, size)),
		Words: make([]grid.Word, len(p.placed)),
	}
	for i, w := range p.placed {
		w.Row = w.Row - minR + Padding
		w.Col = w.Col - minC + Padding
		out.Words[i] = w
	}
	return out
}
