package play

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bodul/xwlevels/internal/catalog"
	"github.com/bodul/xwlevels/internal/progress"
	"github.com/bodul/xwlevels/internal/puzzle"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New([]catalog.Level{
		{ID: 1, Title: "One", Clues: []catalog.Clue{{Text: "Pet", Answer: "CAT"}, {Text: "Drive", Answer: "CAR"}}},
		{ID: 2, Title: "Two", Clues: []catalog.Clue{{Text: "Star", Answer: "SUN"}}},
	})
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return c
}

type harness struct {
	game    *Game
	tracker *progress.Tracker
	events  chan Event
}

func newHarness(t *testing.T, delay time.Duration) *harness {
	t.Helper()
	c := testCatalog(t)
	h := &harness{
		tracker: progress.NewTracker(progress.NewMemory(), c.Len(), nil),
		events:  make(chan Event, 16),
	}
	h.game = New(Config{
		Puzzles:     puzzle.NewCache(c, nil),
		Tracker:     h.tracker,
		SettleDelay: delay,
		OnEvent:     func(ev Event) { h.events <- ev },
	})
	return h
}

func (h *harness) next(t *testing.T) Event {
	t.Helper()
	select {
	case ev := <-h.events:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func (h *harness) quiet(t *testing.T, d time.Duration) {
	t.Helper()
	select {
	case ev := <-h.events:
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(d):
	}
}

// solveLevelOne types CAT down, then AR across (C is shared).
func (h *harness) solveLevelOne() {
	for _, s := range []string{"c", "a", "t"} {
		h.game.Input(s)
	}
	h.game.SelectWord(2)
	h.game.Input("a")
	h.game.Input("r")
}

func TestStartUnknownLevel(t *testing.T) {
	h := newHarness(t, 10*time.Millisecond)
	err := h.game.Start(context.Background(), 42)
	if !errors.Is(err, ErrLevelNotFound) {
		t.Fatalf("expected ErrLevelNotFound, got %v", err)
	}
	st := h.game.State()
	if st.Status != LevelNotFound || st.Puzzle != nil {
		t.Fatalf("unexpected state %+v", st)
	}
	if ev := h.next(t); ev.Type != EventLevelNotFound || ev.LevelID != 42 {
		t.Fatalf("unexpected event %+v", ev)
	}
	if h.game.Input("a") {
		t.Fatal("input must be ignored without a level")
	}
}

func TestStartLockedLevel(t *testing.T) {
	h := newHarness(t, 10*time.Millisecond)
	if err := h.game.Start(context.Background(), 2); !errors.Is(err, ErrLevelLocked) {
		t.Fatalf("expected ErrLevelLocked, got %v", err)
	}
	if h.game.State().Status != LevelLocked {
		t.Fatal("expected locked status")
	}
}

func TestCompleteAndAdvance(t *testing.T) {
	h := newHarness(t, 20*time.Millisecond)
	if err := h.game.Start(context.Background(), 1); err != nil {
		t.Fatalf("start: %v", err)
	}
	if ev := h.next(t); ev.Type != EventLevelStarted || ev.LevelID != 1 {
		t.Fatalf("unexpected event %+v", ev)
	}

	h.solveLevelOne()
	ev := h.next(t)
	if ev.Type != EventLevelComplete || ev.LevelID != 1 {
		t.Fatalf("expected level_complete for 1, got %+v", ev)
	}
	if ev.Progress == nil || ev.Progress.Unlocked != 2 || !ev.Progress.IsDone(1) {
		t.Fatalf("unexpected progress %+v", ev.Progress)
	}
	if st := h.game.State(); st.Status != Solved {
		t.Fatalf("expected solved, got %v", st.Status)
	}
	// Further edits are ignored and do not complete twice.
	if h.game.Backspace() {
		t.Fatal("edits must be ignored once solved")
	}

	ev = h.next(t)
	if ev.Type != EventLevelStarted || ev.LevelID != 2 {
		t.Fatalf("expected level 2 to start, got %+v", ev)
	}
	st := h.game.State()
	if st.Status != Editing || st.LevelID != 2 || st.Solve == nil || len(st.Solve.Filled) != 0 {
		t.Fatalf("expected a fresh attempt at level 2, got %+v", st)
	}

	for _, s := range []string{"s", "u", "n"} {
		h.game.Input(s)
	}
	if ev := h.next(t); ev.Type != EventLevelComplete || ev.LevelID != 2 {
		t.Fatalf("unexpected event %+v", ev)
	}
	if ev := h.next(t); ev.Type != EventLevelSetComplete {
		t.Fatalf("expected level_set_complete, got %+v", ev)
	}
	if h.game.State().Status != LevelSetComplete {
		t.Fatal("expected level set complete")
	}
}

func TestCompleteDeliveredBeforeNextLevel(t *testing.T) {
	h := newHarness(t, time.Nanosecond)
	deliver := h.game.cfg.OnEvent
	// A slow listener must still see level_complete before level 2 starts.
	h.game.cfg.OnEvent = func(ev Event) {
		if ev.Type == EventLevelComplete {
			time.Sleep(20 * time.Millisecond)
		}
		deliver(ev)
	}
	if err := h.game.Start(context.Background(), 1); err != nil {
		t.Fatalf("start: %v", err)
	}
	h.next(t)

	h.solveLevelOne()
	if ev := h.next(t); ev.Type != EventLevelComplete || ev.LevelID != 1 {
		t.Fatalf("expected level_complete for 1 first, got %+v", ev)
	}
	if ev := h.next(t); ev.Type != EventLevelStarted || ev.LevelID != 2 {
		t.Fatalf("expected level 2 to start next, got %+v", ev)
	}
}

func TestResetCancelsAdvance(t *testing.T) {
	h := newHarness(t, 30*time.Millisecond)
	h.game.Start(context.Background(), 1)
	h.next(t)

	h.solveLevelOne()
	if ev := h.next(t); ev.Type != EventLevelComplete {
		t.Fatalf("unexpected event %+v", ev)
	}
	h.game.Reset()
	h.quiet(t, 80*time.Millisecond)
	if st := h.game.State(); st.Status != Idle {
		t.Fatalf("expected idle after reset, got %v", st.Status)
	}
}

func TestRestartDuringSettleDiscardsAdvance(t *testing.T) {
	h := newHarness(t, 30*time.Millisecond)
	h.game.Start(context.Background(), 1)
	h.next(t)
	h.solveLevelOne()
	h.next(t)

	// Replaying level 1 before the delay elapses keeps the player there.
	h.game.Start(context.Background(), 1)
	if ev := h.next(t); ev.Type != EventLevelStarted || ev.LevelID != 1 {
		t.Fatalf("unexpected event %+v", ev)
	}
	h.quiet(t, 80*time.Millisecond)
	if st := h.game.State(); st.LevelID != 1 || st.Status != Editing {
		t.Fatalf("expected to stay on level 1, got %+v", st)
	}
}

func TestAdvanceSurvivesLostProgressWrite(t *testing.T) {
	c := testCatalog(t)
	events := make(chan Event, 16)
	g := New(Config{
		Puzzles:     puzzle.NewCache(c, nil),
		Tracker:     progress.NewTracker(brokenStore{}, c.Len(), nil),
		SettleDelay: 10 * time.Millisecond,
		OnEvent:     func(ev Event) { events <- ev },
	})
	g.Start(context.Background(), 1)
	h := &harness{game: g, events: events}
	h.next(t)
	h.solveLevelOne()
	h.next(t)
	if ev := h.next(t); ev.Type != EventLevelStarted || ev.LevelID != 2 {
		t.Fatalf("expected level 2 despite the failed write, got %+v", ev)
	}
}

type brokenStore struct{}

var errBroken = errors.New("broken")

func (brokenStore) Get(context.Context, string) (string, bool, error) { return "", false, errBroken }
func (brokenStore) Set(context.Context, string, string) error         { return errBroken }
func (brokenStore) MultiGet(context.Context, []string) (map[string]string, error) {
	return nil, errBroken
}
func (brokenStore) MultiSet(context.Context, map[string]string) error { return errBroken }
