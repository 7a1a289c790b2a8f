package main

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bodul/xwlevels/internal/play"
)

// Notifier receives the lifecycle events of every session.
type Notifier func(sessionID string, ev play.Event)

// Store holds all game sessions in memory.
type Store struct {
	mu    sync.RWMutex
	games map[string]*GameSession

	// base is copied for every new session; OnEvent is set per session.
	base   play.Config
	notify Notifier
}

// NewStore creates an empty store. Sessions are built from cfg.
func NewStore(cfg play.Config, notify Notifier) *Store {
	if notify == nil {
		notify = func(string, play.Event) {}
	}
	return &Store{
		games:  make(map[string]*GameSession),
		base:   cfg,
		notify: notify,
	}
}

// CreateGame starts a new session on a level. The session is only kept if
// the level could be started.
func (s *Store) CreateGame(ctx context.Context, levelID int) (*GameSession, error) {
	id := uuid.NewString()

	cfg := s.base
	cfg.OnEvent = func(ev play.Event) { s.notify(id, ev) }
	if cfg.Log != nil {
		cfg.Log = cfg.Log.WithField("session", id)
	}

	game := &GameSession{
		ID:        id,
		CreatedAt: time.Now(),
		game:      play.New(cfg),
	}
	if err := game.Start(ctx, levelID); err != nil {
		game.Close()
		return nil, err
	}

	s.mu.Lock()
	s.games[id] = game
	s.mu.Unlock()

	return game, nil
}

// GetGame returns a game session by ID, or nil if not found.
func (s *Store) GetGame(id string) *GameSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.games[id]
}

// ListGames returns all game sessions, most recent first.
func (s *Store) ListGames() []*GameSession {
	s.mu.RLock()
	list := make([]*GameSession, 0, len(s.games))
	for _, g := range s.games {
		list = append(list, g)
	}
	s.mu.RUnlock()

	slices.SortFunc(list, func(a, b *GameSession) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return list
}

// DeleteGame closes and forgets a session. It reports whether it existed.
func (s *Store) DeleteGame(id string) bool {
	s.mu.Lock()
	game, ok := s.games[id]
	delete(s.games, id)
	s.mu.Unlock()

	if ok {
		game.Close()
	}
	return ok
}
