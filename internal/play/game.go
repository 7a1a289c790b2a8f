// Package play runs a player through the level set: it loads levels,
// forwards input to the solve session, records completions and advances to
// the next level after a short settle delay.
package play

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bodul/xwlevels/internal/progress"
	"github.com/bodul/xwlevels/internal/puzzle"
	"github.com/bodul/xwlevels/internal/solve"
)

// DefaultSettleDelay leaves time to show the solved grid before moving on.
const DefaultSettleDelay = 450 * time.Millisecond

var (
	ErrLevelNotFound = puzzle.ErrLevelNotFound
	ErrLevelLocked   = errors.New("level locked")
)

// Status is the lifecycle state of a Game.
type Status int

const (
	Idle Status = iota
	Editing
	Solved
	LevelSetComplete
	LevelNotFound
	LevelLocked
)

var statusNames = [...]string{"idle", "editing", "solved", "level_set_complete", "level_not_found", "level_locked"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("status(%d)", int(s))
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Config wires a Game.
type Config struct {
	Puzzles *puzzle.Cache
	Tracker *progress.Tracker
	// SettleDelay defaults to DefaultSettleDelay when zero.
	SettleDelay time.Duration
	// SkipLockCheck lets Start open any level in the catalog.
	SkipLockCheck bool
	// OnEvent is called outside the game lock. A level's level_complete is
	// delivered before whatever the settle timer emits.
	OnEvent func(Event)
	Log     logrus.FieldLogger
}

// Game is one player's run through the level set. All methods are safe for
// concurrent use.
type Game struct {
	cfg Config

	mu      sync.Mutex
	status  Status
	levelID int
	session *solve.Session
	solved  bool
	// unlocked is the highest threshold seen from completions, so a lost
	// progress write does not lock the player out mid-session.
	unlocked int
	timer    *time.Timer
	// attempt is bumped on every Start and Reset; a settle timer only
	// advances if the attempt it was armed for is still current.
	attempt uint64
}

func New(cfg Config) *Game {
	if cfg.SettleDelay == 0 {
		cfg.SettleDelay = DefaultSettleDelay
	}
	if cfg.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		cfg.Log = l
	}
	if cfg.OnEvent == nil {
		cfg.OnEvent = func(Event) {}
	}
	return &Game{cfg: cfg}
}

// Start loads level id with a fresh solve session, discarding the current
// attempt and any pending advancement.
func (g *Game) Start(ctx context.Context, id int) error {
	g.mu.Lock()
	evs, err := g.start(ctx, id)
	g.mu.Unlock()
	g.emit(evs)
	return err
}

func (g *Game) start(ctx context.Context, id int) ([]Event, error) {
	g.cancelTimer()
	g.session, g.solved = nil, false
	g.levelID = id

	p, err := g.cfg.Puzzles.Get(id)
	if err != nil {
		g.status = LevelNotFound
		g.cfg.Log.WithField("level", id).Info("level not found")
		return []Event{{Type: EventLevelNotFound, LevelID: id}}, err
	}
	if !g.cfg.SkipLockCheck && g.cfg.Tracker != nil && id > g.unlocked && !g.cfg.Tracker.IsUnlocked(ctx, id) {
		g.status = LevelLocked
		return []Event{{Type: EventLevelLocked, LevelID: id}}, fmt.Errorf("%w: %d", ErrLevelLocked, id)
	}

	if len(p.Index.Conflicts) > 0 {
		g.cfg.Log.WithFields(logrus.Fields{
			"level":     id,
			"conflicts": len(p.Index.Conflicts),
		}).Warn("layout has conflicting letters")
	}

	g.cfg.Log.WithFields(logrus.Fields{
		"level":  id,
		"size":   p.Size,
		"manual": p.Manual,
	}).Debugf("level started\n%s", p.Index.Render(p.Size, nil))

	g.session = solve.New(p)
	g.status = Editing
	return []Event{{Type: EventLevelStarted, LevelID: id}}, nil
}

// Reset abandons the current level and cancels any pending advancement.
func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.cancelTimer()
	g.status = Idle
	g.session, g.solved = nil, false
	g.levelID = 0
}

// cancelTimer stops the settle timer and invalidates one that already
// fired but has not taken the lock yet.
func (g *Game) cancelTimer() {
	g.attempt++
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
}

// SelectWord activates word n of the current level.
func (g *Game) SelectWord(n int) bool {
	return g.edit(func(s *solve.Session) bool { return s.SelectWord(n) })
}

// SelectCell moves the cursor to a cell, switching words as needed.
func (g *Game) SelectCell(row, col int) bool {
	return g.edit(func(s *solve.Session) bool {
		s.SelectCell(row, col)
		return true
	})
}

// Input enters the last letter of a typed burst at the cursor.
func (g *Game) Input(text string) bool {
	return g.edit(func(s *solve.Session) bool { return s.Input(text) })
}

// Backspace deletes at or before the cursor.
func (g *Game) Backspace() bool {
	return g.edit(func(s *solve.Session) bool { return s.Backspace() })
}

// edit applies fn while Editing and checks for completion afterwards.
func (g *Game) edit(fn func(*solve.Session) bool) bool {
	g.mu.Lock()
	if g.status != Editing || g.session == nil {
		g.mu.Unlock()
		return false
	}
	changed := fn(g.session)
	var evs []Event
	solved := changed && !g.solved && g.session.IsComplete()
	if solved {
		evs = g.complete()
	}
	attempt := g.attempt
	g.mu.Unlock()
	g.emit(evs)
	if solved {
		g.arm(attempt)
	}
	return changed
}

// complete records the solved level. It runs at most once per attempt.
func (g *Game) complete() []Event {
	g.solved = true
	g.status = Solved
	id := g.levelID

	ev := Event{Type: EventLevelComplete, LevelID: id}
	if g.cfg.Tracker != nil {
		p := g.cfg.Tracker.Complete(context.Background(), id)
		g.unlocked = max(g.unlocked, p.Unlocked)
		ev.Progress = &p
	}
	g.cfg.Log.WithField("level", id).Info("level complete")
	return []Event{ev}
}

// arm starts the settle timer once level_complete has been delivered, so
// the next level's events always follow it.
func (g *Game) arm(attempt uint64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if attempt != g.attempt || g.status != Solved {
		return
	}
	g.timer = time.AfterFunc(g.cfg.SettleDelay, func() { g.advance(attempt) })
}

// advance moves on to the next level once the settle delay has passed.
func (g *Game) advance(attempt uint64) {
	g.mu.Lock()
	if attempt != g.attempt || g.status != Solved {
		g.mu.Unlock()
		return
	}
	g.timer = nil
	next := g.levelID + 1

	var evs []Event
	if _, ok := g.cfg.Puzzles.Catalog().Lookup(next); ok {
		evs, _ = g.start(context.Background(), next)
	} else {
		g.status = LevelSetComplete
		evs = []Event{{Type: EventLevelSetComplete, LevelID: g.levelID}}
	}
	g.mu.Unlock()
	g.emit(evs)
}

func (g *Game) emit(evs []Event) {
	for _, ev := range evs {
		g.cfg.OnEvent(ev)
	}
}

// State returns a copy of the game state.
func (g *Game) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()

	st := State{Status: g.status, LevelID: g.levelID}
	if g.session != nil {
		snap := g.session.Snapshot()
		st.Puzzle = g.session.Puzzle()
		st.Solve = &snap
	}
	return st
}
