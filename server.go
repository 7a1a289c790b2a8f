package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bodul/xwlevels/internal/catalog"
	"github.com/bodul/xwlevels/internal/play"
	"github.com/bodul/xwlevels/internal/progress"
	"github.com/bodul/xwlevels/internal/puzzle"
)

const (
	maxUploadSize = 10 << 20 // 10 MB
	maxInputSize  = 4 << 10
)

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// LevelImporter turns a photographed clue list into a level.
type LevelImporter interface {
	ImportLevel(ctx context.Context, imageData []byte, mimeType string) (string, []catalog.Clue, error)
}

// rateLimiter is a simple per-IP token bucket rate limiter.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*bucket
	rate     int           // tokens per interval
	interval time.Duration // refill interval
}

type bucket struct {
	tokens   int
	lastSeen time.Time
}

func newRateLimiter(rate int, interval time.Duration) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*bucket),
		rate:     rate,
		interval: interval,
	}
	// Cleanup stale entries every minute.
	go func() {
		for {
			time.Sleep(time.Minute)
			rl.mu.Lock()
			for ip, b := range rl.visitors {
				if time.Since(b.lastSeen) > 5*time.Minute {
					delete(rl.visitors, ip)
				}
			}
			rl.mu.Unlock()
		}
	}()
	return rl
}

func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.visitors[ip]
	if !ok {
		rl.visitors[ip] = &bucket{tokens: rl.rate - 1, lastSeen: time.Now()}
		return true
	}

	// Refill tokens based on elapsed time.
	elapsed := time.Since(b.lastSeen)
	refill := int(elapsed / rl.interval)
	if refill > 0 {
		b.tokens = min(rl.rate, b.tokens+refill*rl.rate)
		b.lastSeen = time.Now()
	}

	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

// ServerConfig holds the server's dependencies.
type ServerConfig struct {
	Puzzles *puzzle.Cache
	Tracker *progress.Tracker
	// Importer is optional; without it level import answers 503.
	Importer    LevelImporter
	SettleDelay time.Duration
	Log         logrus.FieldLogger
}

// Server is the main HTTP server.
type Server struct {
	mux      *http.ServeMux
	store    *Store
	puzzles  *puzzle.Cache
	tracker  *progress.Tracker
	importer LevelImporter
	sse      *Broadcaster
	log      logrus.FieldLogger
	uploadRL *rateLimiter
	moveRL   *rateLimiter
}

// NewServer creates a configured HTTP server.
func NewServer(cfg ServerConfig) *Server {
	if cfg.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		cfg.Log = l
	}
	s := &Server{
		mux:      http.NewServeMux(),
		puzzles:  cfg.Puzzles,
		tracker:  cfg.Tracker,
		importer: cfg.Importer,
		sse:      NewBroadcaster(),
		log:      cfg.Log,
		uploadRL: newRateLimiter(5, time.Minute), // 5 imports/min per IP
		moveRL:   newRateLimiter(60, time.Second), // 60 edits/sec per IP
	}
	s.store = NewStore(play.Config{
		Puzzles:     cfg.Puzzles,
		Tracker:     cfg.Tracker,
		SettleDelay: cfg.SettleDelay,
		Log:         cfg.Log,
	}, s.onEvent)
	s.routes()
	return s
}

func (s *Server) routes() {
	// Level API
	s.mux.HandleFunc("GET /api/levels", s.handleListLevels)
	s.mux.HandleFunc("GET /api/levels/{id}", s.handleGetLevel)
	s.mux.HandleFunc("POST /api/levels/import", s.handleImportLevel)

	// Game API
	s.mux.HandleFunc("POST /api/games", s.handleCreateGame)
	s.mux.HandleFunc("GET /api/games/{id}", s.handleGetGame)
	s.mux.HandleFunc("DELETE /api/games/{id}", s.handleDeleteGame)
	s.mux.HandleFunc("POST /api/games/{id}/select", s.handleSelect)
	s.mux.HandleFunc("POST /api/games/{id}/input", s.handleInput)
	s.mux.HandleFunc("POST /api/games/{id}/backspace", s.handleBackspace)
	s.mux.HandleFunc("GET /api/games/{id}/events", s.handleGameEvents)

	s.mux.HandleFunc("GET /healthz", s.handleHealth)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
	s.mux.ServeHTTP(w, r)
}

// onEvent forwards a session's lifecycle event to its SSE clients, followed
// by the resulting state.
func (s *Server) onEvent(sessionID string, ev play.Event) {
	if err := s.sse.Broadcast(sessionID, string(ev.Type), ev); err != nil {
		s.log.WithError(err).Warn("broadcast failed")
	}
	if game := s.store.GetGame(sessionID); game != nil {
		s.broadcastState(game)
	}
}

func (s *Server) broadcastState(game *GameSession) {
	if err := s.sse.Broadcast(game.ID, "state", game.View()); err != nil {
		s.log.WithError(err).Warn("broadcast failed")
	}
}

// --- Level handlers ---

// GET /api/levels: list levels with the player's progress.
func (s *Server) handleListLevels(w http.ResponseWriter, r *http.Request) {
	p := s.tracker.Snapshot(r.Context())
	levels := s.puzzles.Catalog().Levels()

	resp := levelsView{Levels: make([]levelSummary, len(levels)), Progress: p}
	for i, l := range levels {
		resp.Levels[i] = levelSummary{
			ID:       l.ID,
			Title:    l.Title,
			Words:    len(l.Clues),
			Unlocked: l.ID <= p.Unlocked,
			Done:     p.IsDone(l.ID),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// GET /api/levels/{id}: puzzle view of a single level.
func (s *Server) handleGetLevel(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		jsonError(w, "invalid level id", http.StatusBadRequest)
		return
	}
	p, err := s.puzzles.Get(id)
	if err != nil {
		jsonError(w, "level not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, newPuzzleView(p))
}

// POST /api/levels/import: upload a photographed clue list, transcribe it
// with Gemini and append it to the catalog.
func (s *Server) handleImportLevel(w http.ResponseWriter, r *http.Request) {
	if !s.uploadRL.allow(clientIP(r)) {
		jsonError(w, "too many requests, try again later", http.StatusTooManyRequests)
		return
	}

	if s.importer == nil {
		jsonError(w, "level import not configured", http.StatusServiceUnavailable)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		jsonError(w, "image too large (max 10 MB)", http.StatusRequestEntityTooLarge)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		jsonError(w, "field 'image' required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if !allowedMIME[mimeType] {
		jsonError(w, "accepted formats: JPEG or PNG", http.StatusBadRequest)
		return
	}

	imageData, err := io.ReadAll(file)
	if err != nil {
		jsonError(w, "could not read image", http.StatusInternalServerError)
		return
	}

	l, err := s.importLevel(r.Context(), imageData, mimeType)
	if err != nil {
		s.log.WithError(err).Warn("level import failed")
		if errors.Is(err, catalog.ErrInvalidLevel) {
			jsonError(w, "no usable clues found in image", http.StatusUnprocessableEntity)
			return
		}
		jsonError(w, "error while reading the clue list", http.StatusInternalServerError)
		return
	}

	p, err := s.puzzles.Get(l.ID)
	if err != nil {
		jsonError(w, "level not found", http.StatusNotFound)
		return
	}
	s.log.WithFields(logrus.Fields{"level": l.ID, "words": len(l.Clues)}).Info("level imported")
	writeJSON(w, http.StatusCreated, newPuzzleView(p))
}

// importLevel transcribes an image and appends the level to the catalog.
func (s *Server) importLevel(ctx context.Context, imageData []byte, mimeType string) (catalog.Level, error) {
	title, clues, err := s.importer.ImportLevel(ctx, imageData, mimeType)
	if err != nil {
		return catalog.Level{}, err
	}
	l, err := s.puzzles.Catalog().Add(title, clues)
	if err != nil {
		return catalog.Level{}, err
	}
	s.tracker.SetTotal(s.puzzles.Catalog().Len())
	return l, nil
}

// --- Game handlers ---

// POST /api/games: start a session on a level.
func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LevelID int `json:"level_id"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxInputSize)).Decode(&req); err != nil || req.LevelID < 1 {
		jsonError(w, "field 'level_id' required", http.StatusBadRequest)
		return
	}

	game, err := s.store.CreateGame(r.Context(), req.LevelID)
	switch {
	case errors.Is(err, play.ErrLevelNotFound):
		jsonError(w, "level not found", http.StatusNotFound)
		return
	case errors.Is(err, play.ErrLevelLocked):
		jsonError(w, "level locked", http.StatusForbidden)
		return
	case err != nil:
		s.log.WithError(err).Error("create game")
		jsonError(w, "could not start level", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, game.View())
}

// GET /api/games/{id}: current session state.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	game := s.store.GetGame(r.PathValue("id"))
	if game == nil {
		jsonError(w, "game not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, game.View())
}

// DELETE /api/games/{id}: abandon a session.
func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.store.DeleteGame(id) {
		jsonError(w, "game not found", http.StatusNotFound)
		return
	}
	s.sse.CloseSession(id)
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/games/{id}/select: activate a word, or move to a cell.
func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Word *int `json:"word"`
		Row  *int `json:"row"`
		Col  *int `json:"col"`
	}
	s.edit(w, r, &req, func(game *GameSession) (bool, string) {
		switch {
		case req.Word != nil:
			return game.SelectWord(*req.Word), ""
		case req.Row != nil && req.Col != nil:
			return game.SelectCell(*req.Row, *req.Col), ""
		}
		return false, "either 'word' or 'row' and 'col' required"
	})
}

// POST /api/games/{id}/input: type a burst of text.
func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	s.edit(w, r, &req, func(game *GameSession) (bool, string) {
		return game.Input(req.Text), ""
	})
}

// POST /api/games/{id}/backspace: delete at the cursor.
func (s *Server) handleBackspace(w http.ResponseWriter, r *http.Request) {
	s.edit(w, r, nil, func(game *GameSession) (bool, string) {
		return game.Backspace(), ""
	})
}

// edit runs one player action. req, when not nil, receives the JSON body.
// fn returns whether the state changed, or a message for a bad request.
func (s *Server) edit(w http.ResponseWriter, r *http.Request, req any, fn func(*GameSession) (bool, string)) {
	if !s.moveRL.allow(clientIP(r)) {
		jsonError(w, "too many requests, try again later", http.StatusTooManyRequests)
		return
	}

	game := s.store.GetGame(r.PathValue("id"))
	if game == nil {
		jsonError(w, "game not found", http.StatusNotFound)
		return
	}

	if req != nil {
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxInputSize)).Decode(req); err != nil {
			jsonError(w, "invalid request", http.StatusBadRequest)
			return
		}
	}

	changed, msg := fn(game)
	if msg != "" {
		jsonError(w, msg, http.StatusBadRequest)
		return
	}
	if changed {
		s.broadcastState(game)
	}

	writeJSON(w, http.StatusOK, struct {
		sessionView
		Changed bool `json:"changed"`
	}{game.View(), changed})
}

// GET /api/games/{id}/events: SSE stream.
func (s *Server) handleGameEvents(w http.ResponseWriter, r *http.Request) {
	game := s.store.GetGame(r.PathValue("id"))
	if game == nil {
		jsonError(w, "game not found", http.StatusNotFound)
		return
	}

	s.sse.ServeSSE(w, r, game.ID, func() (string, any) {
		return "state", game.View()
	})
}

// GET /healthz
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"levels": s.puzzles.Catalog().Len(),
	})
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// clientIP is the rate limiting key: the remote host without its port.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
