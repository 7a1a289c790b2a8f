package play

import (
	"github.com/bodul/xwlevels/internal/progress"
	"github.com/bodul/xwlevels/internal/puzzle"
	"github.com/bodul/xwlevels/internal/solve"
)

type EventType string

const (
	EventLevelStarted     EventType = "level_started"
	EventLevelComplete    EventType = "level_complete"
	EventLevelSetComplete EventType = "level_set_complete"
	EventLevelNotFound    EventType = "level_not_found"
	EventLevelLocked      EventType = "level_locked"
)

// Event is a lifecycle notification.
type Event struct {
	Type     EventType          `json:"type"`
	LevelID  int                `json:"level_id"`
	Progress *progress.Progress `json:"progress,omitempty"`
}

// State is a point-in-time copy of a Game.
type State struct {
	Status  Status
	LevelID int
	// Puzzle and Solve are nil unless a level is loaded.
	Puzzle *puzzle.Puzzle
	Solve  *solve.Snapshot
}
