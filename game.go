package main

import (
	"context"
	"time"

	"github.com/bodul/xwlevels/internal/play"
)

// GameSession is one player's run through the levels, reachable over HTTP.
type GameSession struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	game      *play.Game
}

// Start loads a level in the session.
func (g *GameSession) Start(ctx context.Context, levelID int) error {
	return g.game.Start(ctx, levelID)
}

// SelectWord activates a word by number.
func (g *GameSession) SelectWord(n int) bool {
	return g.game.SelectWord(n)
}

// SelectCell moves the cursor to a cell.
func (g *GameSession) SelectCell(row, col int) bool {
	return g.game.SelectCell(row, col)
}

// Input types a burst of text at the cursor.
func (g *GameSession) Input(text string) bool {
	return g.game.Input(text)
}

// Backspace deletes at the cursor.
func (g *GameSession) Backspace() bool {
	return g.game.Backspace()
}

// Close abandons the session; a pending level advance never fires.
func (g *GameSession) Close() {
	g.game.Reset()
}

// View returns the session state for the API.
func (g *GameSession) View() sessionView {
	st := g.game.State()
	v := sessionView{
		ID:      g.ID,
		Status:  st.Status.String(),
		LevelID: st.LevelID,
	}
	if st.Puzzle != nil {
		pv := newPuzzleView(st.Puzzle)
		v.Puzzle = &pv
	}
	v.Solve = st.Solve
	return v
}
