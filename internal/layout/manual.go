package layout

import (
	"strings"

	"github.com/bodul/xwlevels/internal/grid"
)

// Slot is one hand-placed word of a manual layout. The answer comes from
// the level's clue list, looked up by Number.
type Slot struct {
	Number      int              `json:"number"`
	Orientation grid.Orientation `json:"orientation"`
	Row         int              `json:"row"`
	Col         int              `json:"col"`
}

// Manual is a hand-authored layout used instead of Generate.
type Manual struct {
	Size  int    `json:"size"`
	Slots []Slot `json:"slots"`
}

// Resolve places the manual slots verbatim. answers holds the level's
// answers in clue order, so slot n takes answers[n-1]. Slots without a
// matching answer are dropped.
func (m Manual) Resolve(answers []string) Layout {
	out := Layout{Size: m.Size}
	for _, s := range m.Slots {
		if s.Number < 1 || s.Number > len(answers) {
			continue
		}
		a := strings.ToUpper(answers[s.Number-1])
		if a == "" {
			continue
		}
		out.Words = append(out.Words, grid.Word{
			Number:      s.Number,
			Orientation: s.Orientation,
			Row:         s.Row,
			Col:         s.Col,
			Answer:      a,
		})
	}
	return out
}
