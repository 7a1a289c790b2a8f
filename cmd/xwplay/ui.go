package main

import (
	"fmt"
	"slices"

	"github.com/gdamore/tcell/v2"

	"github.com/bodul/xwlevels/internal/grid"
	"github.com/bodul/xwlevels/internal/play"
	"github.com/bodul/xwlevels/internal/puzzle"
)

const (
	gridX = 2
	gridY = 2
	cellW = 3
)

var (
	styleBase     = tcell.StyleDefault
	styleOpen     = tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
	styleActive   = tcell.StyleDefault.Background(tcell.ColorLightBlue).Foreground(tcell.ColorBlack)
	styleCursor   = tcell.StyleDefault.Background(tcell.ColorYellow).Foreground(tcell.ColorBlack).Bold(true)
	styleSolved   = tcell.StyleDefault.Background(tcell.ColorLightGreen).Foreground(tcell.ColorBlack)
	styleConflict = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleTitle    = tcell.StyleDefault.Bold(true)
)

// player drives one play.Game from a terminal.
type player struct {
	screen tcell.Screen
	game   *play.Game
	total  int
	chime  *chime

	message string
	fruits  int
}

func newPlayer(screen tcell.Screen, game *play.Game, total int, c *chime) *player {
	screen.EnableMouse()
	return &player{screen: screen, game: game, total: total, chime: c}
}

func (p *player) close() {
	p.game.Reset()
	p.chime.close()
	p.screen.Fini()
}

func (p *player) run(events <-chan play.Event) {
	input := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := p.screen.PollEvent()
			if ev == nil {
				return
			}
			input <- ev
		}
	}()

	p.draw()
	for {
		select {
		case ev := <-input:
			if !p.handleInput(ev) {
				return
			}
		case ev := <-events:
			p.handleEvent(ev)
		}
		p.draw()
	}
}

// handleEvent updates the status line from a lifecycle event.
func (p *player) handleEvent(ev play.Event) {
	switch ev.Type {
	case play.EventLevelStarted:
		p.message = ""
	case play.EventLevelComplete:
		if ev.Progress != nil {
			p.fruits = ev.Progress.Fruits
		}
		p.message = "Solved!"
		p.chime.play()
	case play.EventLevelSetComplete:
		p.message = "Every level is solved. Esc to quit."
	}
}

// handleInput applies a terminal event. It returns false to quit.
func (p *player) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyTab, tcell.KeyDown, tcell.KeyRight:
			p.cycleWord(1)
		case tcell.KeyBacktab, tcell.KeyUp, tcell.KeyLeft:
			p.cycleWord(-1)
		case tcell.KeyBackspace, tcell.KeyBackspace2, tcell.KeyDelete:
			p.game.Backspace()
		case tcell.KeyRune:
			p.game.Input(string(ev.Rune()))
		}
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 == 0 {
			break
		}
		st := p.game.State()
		if st.Puzzle == nil {
			break
		}
		x, y := ev.Position()
		if c, ok := cellAt(x, y, st.Puzzle.Size); ok {
			p.game.SelectCell(c.Row, c.Col)
		}
	case *tcell.EventResize:
		p.screen.Sync()
	}
	return true
}

// cycleWord activates the word delta places away from the active one, in
// placement order.
func (p *player) cycleWord(delta int) {
	st := p.game.State()
	if st.Puzzle == nil || st.Solve == nil || len(st.Puzzle.Words) == 0 {
		return
	}
	words := st.Puzzle.Words
	i := slices.IndexFunc(words, func(e puzzle.Entry) bool { return e.Number == st.Solve.Active })
	n := len(words)
	next := ((i+delta)%n + n) % n
	p.game.SelectWord(words[next].Number)
}

// cellAt maps a screen position to a cell of a size×size grid.
func cellAt(x, y, size int) (grid.Coord, bool) {
	if x < gridX || y < gridY {
		return grid.Coord{}, false
	}
	c := grid.Coord{Row: y - gridY, Col: (x - gridX) / cellW}
	if c.Row >= size || c.Col >= size {
		return grid.Coord{}, false
	}
	return c, true
}

func (p *player) draw() {
	s := p.screen
	s.Clear()
	st := p.game.State()

	switch {
	case st.Status == play.LevelSetComplete:
		drawText(s, gridX, 0, styleTitle, "All done!")
	case st.Puzzle == nil:
		drawText(s, gridX, 0, styleTitle, fmt.Sprintf("Level %d unavailable (%s)", st.LevelID, st.Status))
	default:
		drawText(s, gridX, 0, styleTitle, fmt.Sprintf("Level %d/%d  %s", st.LevelID, p.total, st.Puzzle.Title))
		p.drawGrid(st)
		p.drawClues(st)
	}

	_, h := s.Size()
	status := fmt.Sprintf("fruits: %d   Tab/arrows: next word   Backspace: erase   Esc: quit", p.fruits)
	if p.message != "" {
		status = p.message + "   " + status
	}
	drawText(s, gridX, h-1, styleDim, status)
	s.Show()
}

func (p *player) drawGrid(st play.State) {
	scr := p.screen
	pz, snap := st.Puzzle, st.Solve

	active := make(map[grid.Coord]bool, len(snap.ActiveCells))
	for _, c := range snap.ActiveCells {
		active[c] = true
	}
	solved := make(map[grid.Coord]bool)
	for _, n := range snap.Solved {
		if w, ok := pz.Word(n); ok {
			for _, c := range w.Cells() {
				solved[c] = true
			}
		}
	}
	filled := make(map[grid.Coord]string, len(snap.Filled))
	for _, f := range snap.Filled {
		filled[f.Coord] = f.Letter
	}

	for r := range pz.Size {
		for c := range pz.Size {
			cell := grid.Coord{Row: r, Col: c}
			x, y := gridX+c*cellW, gridY+r
			if !pz.Index.Occupied[cell] {
				drawText(scr, x, y, styleDim, " · ")
				continue
			}
			style := styleOpen
			switch {
			case snap.Cursor != nil && *snap.Cursor == cell:
				style = styleCursor
			case active[cell]:
				style = styleActive
			case solved[cell]:
				style = styleSolved
			}
			letter := filled[cell]
			if letter == "" {
				letter = " "
			}
			drawText(scr, x, y, style, " "+letter+" ")
		}
	}
}

func (p *player) drawClues(st play.State) {
	scr := p.screen
	pz, snap := st.Puzzle, st.Solve
	x := gridX + pz.Size*cellW + 3
	y := gridY

	for _, e := range pz.Words {
		arrow := "→"
		if e.Orientation == grid.Down {
			arrow = "↓"
		}
		style := styleBase
		mark := " "
		if slices.Contains(snap.Solved, e.Number) {
			style, mark = styleDim, "✓"
		}
		if e.Number == snap.Active {
			style = styleTitle
		}
		drawText(scr, x, y, style, fmt.Sprintf("%s %2d%s %s (%d)", mark, e.Number, arrow, e.Clue, len(e.Answer)))
		y++
	}

	if len(pz.Index.Conflicts) > 0 {
		y++
		drawText(scr, x, y, styleConflict, fmt.Sprintf("%d conflicting cell(s) in this layout", len(pz.Index.Conflicts)))
	}
}

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
