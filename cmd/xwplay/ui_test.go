package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/bodul/xwlevels/internal/catalog"
	"github.com/bodul/xwlevels/internal/grid"
	"github.com/bodul/xwlevels/internal/play"
	"github.com/bodul/xwlevels/internal/progress"
	"github.com/bodul/xwlevels/internal/puzzle"
)

func newTestPlayer(t *testing.T) (*player, tcell.SimulationScreen) {
	t.Helper()
	levels := catalog.Default()
	game := play.New(play.Config{
		Puzzles:     puzzle.NewCache(levels, catalog.ManualLayouts()),
		Tracker:     progress.NewTracker(progress.NewMemory(), levels.Len(), nil),
		SettleDelay: time.Hour,
	})
	if err := game.Start(context.Background(), 1); err != nil {
		t.Fatalf("start: %v", err)
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen: %v", err)
	}
	screen.SetSize(100, 30)

	p := newPlayer(screen, game, levels.Len(), &chime{})
	t.Cleanup(p.close)
	return p, screen
}

func key(k tcell.Key, r rune) *tcell.EventKey {
	return tcell.NewEventKey(k, r, tcell.ModNone)
}

func TestCellAt(t *testing.T) {
	cases := []struct {
		x, y int
		want grid.Coord
		ok   bool
	}{
		{gridX, gridY, grid.Coord{Row: 0, Col: 0}, true},
		{gridX + cellW - 1, gridY, grid.Coord{Row: 0, Col: 0}, true},
		{gridX + 2*cellW, gridY + 3, grid.Coord{Row: 3, Col: 2}, true},
		{gridX - 1, gridY, grid.Coord{}, false},
		{gridX, gridY + 7, grid.Coord{}, false},
		{gridX + 7*cellW, gridY, grid.Coord{}, false},
	}
	for _, tc := range cases {
		got, ok := cellAt(tc.x, tc.y, 7)
		if ok != tc.ok || got != tc.want {
			t.Errorf("cellAt(%d,%d) = %v,%v, want %v,%v", tc.x, tc.y, got, ok, tc.want, tc.ok)
		}
	}
}

func TestHandleInput(t *testing.T) {
	p, _ := newTestPlayer(t)

	if st := p.game.State(); st.Solve.Active != 1 {
		t.Fatalf("expected word 1 active, got %d", st.Solve.Active)
	}
	p.handleInput(key(tcell.KeyTab, 0))
	if st := p.game.State(); st.Solve.Active != 2 {
		t.Fatalf("tab should move to word 2, got %d", st.Solve.Active)
	}
	p.handleInput(key(tcell.KeyBacktab, 0))
	p.handleInput(key(tcell.KeyBacktab, 0))
	if st := p.game.State(); st.Solve.Active != st.Puzzle.Words[len(st.Puzzle.Words)-1].Number {
		t.Fatalf("backtab should wrap to the last word, got %d", st.Solve.Active)
	}

	p.handleInput(key(tcell.KeyTab, 0))
	p.handleInput(key(tcell.KeyRune, 'x'))
	if st := p.game.State(); len(st.Solve.Filled) != 1 || st.Solve.Filled[0].Letter != "X" {
		t.Fatalf("expected one typed letter, got %+v", st.Solve.Filled)
	}
	p.handleInput(key(tcell.KeyBackspace2, 0))
	if st := p.game.State(); len(st.Solve.Filled) != 0 {
		t.Fatalf("backspace should erase, got %+v", st.Solve.Filled)
	}

	if p.handleInput(key(tcell.KeyEscape, 0)) {
		t.Fatal("escape should quit")
	}
}

func TestHandleMouse(t *testing.T) {
	p, _ := newTestPlayer(t)
	st := p.game.State()
	// The origin of word 2 in the hand-made level 1 layout.
	w, _ := st.Puzzle.Word(2)
	o := w.Origin()

	p.handleInput(tcell.NewEventMouse(gridX+o.Col*cellW+1, gridY+o.Row, tcell.Button1, tcell.ModNone))
	st = p.game.State()
	if st.Solve.Cursor == nil || *st.Solve.Cursor != o {
		t.Fatalf("expected cursor at %v, got %v", o, st.Solve.Cursor)
	}
}

func TestHandleEvent(t *testing.T) {
	p, _ := newTestPlayer(t)
	p.handleEvent(play.Event{Type: play.EventLevelComplete, LevelID: 1, Progress: &progress.Progress{Fruits: 4}})
	if p.fruits != 4 || p.message != "Solved!" {
		t.Fatalf("unexpected player state %q %d", p.message, p.fruits)
	}
	p.handleEvent(play.Event{Type: play.EventLevelStarted, LevelID: 2})
	if p.message != "" {
		t.Fatalf("message should clear on a new level, got %q", p.message)
	}
}

func TestDraw(t *testing.T) {
	p, screen := newTestPlayer(t)
	p.draw()

	cells, w, _ := screen.GetContents()
	line := func(y int) string {
		var b strings.Builder
		for x := range w {
			if r := cells[y*w+x].Runes; len(r) > 0 {
				b.WriteRune(r[0])
			}
		}
		return b.String()
	}

	if title := line(0); !strings.Contains(title, "Level 1/50") {
		t.Fatalf("unexpected title line %q", title)
	}
	clue, _ := p.game.State().Puzzle.Word(1)
	found := false
	for y := gridY; y < gridY+7; y++ {
		if strings.Contains(line(y), "1↓") || strings.Contains(line(y), "1→") {
			found = true
		}
	}
	if !found {
		t.Fatalf("clue for word %d not drawn", clue.Number)
	}
}
