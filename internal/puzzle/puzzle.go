// Package puzzle assembles a catalog level into a placed, indexed grid.
package puzzle

import (
	"errors"
	"fmt"
	"sync"

	"github.com/bodul/xwlevels/internal/catalog"
	"github.com/bodul/xwlevels/internal/grid"
	"github.com/bodul/xwlevels/internal/layout"
)

var ErrLevelNotFound = errors.New("level not found")

// Entry is a placed word together with its clue text.
type Entry struct {
	grid.Word
	Clue string `json:"clue"`
}

// Puzzle is the immutable placement of one level and its lookup tables.
type Puzzle struct {
	LevelID int
	Title   string
	Size    int
	Manual  bool
	Words   []Entry
	Index   grid.Index
}

// New places level l, using its manual layout when manual has one.
func New(l catalog.Level, manual map[int]layout.Manual) *Puzzle {
	_, isManual := manual[l.ID]
	placed := catalog.Layout(l, manual)

	p := &Puzzle{
		LevelID: l.ID,
		Title:   l.Title,
		Size:    placed.Size,
		Manual:  isManual,
		Words:   make([]Entry, len(placed.Words)),
	}
	words := make([]grid.Word, len(placed.Words))
	for i, w := range placed.Words {
		c, _ := l.Clue(w.Number)
		p.Words[i] = Entry{Word: w, Clue: c.Text}
		words[i] = w
	}
	p.Index = grid.Build(words)
	return p
}

// Word returns the placed word numbered n.
func (p *Puzzle) Word(n int) (grid.Word, bool) {
	for _, e := range p.Words {
		if e.Number == n {
			return e.Word, true
		}
	}
	return grid.Word{}, false
}

// Owner returns the first word, in placement order, covering c.
func (p *Puzzle) Owner(c grid.Coord) (grid.Word, bool) {
	for _, e := range p.Words {
		if e.Contains(c) {
			return e.Word, true
		}
	}
	return grid.Word{}, false
}

// Cache memoizes puzzles per level id. Levels are immutable once in the
// catalog, so entries never need invalidating.
type Cache struct {
	catalog *catalog.Catalog
	manual  map[int]layout.Manual

	mu      sync.Mutex
	puzzles map[int]*Puzzle
}

func NewCache(c *catalog.Catalog, manual map[int]layout.Manual) *Cache {
	return &Cache{
		catalog: c,
		manual:  manual,
		puzzles: make(map[int]*Puzzle),
	}
}

// Catalog returns the catalog the cache reads from.
func (c *Cache) Catalog() *catalog.Catalog {
	return c.catalog
}

// Get returns the puzzle for a level id, building it on first use.
func (c *Cache) Get(levelID int) (*Puzzle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.puzzles[levelID]; ok {
		return p, nil
	}
	l, ok := c.catalog.Lookup(levelID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrLevelNotFound, levelID)
	}
	p := New(l, c.manual)
	c.puzzles[levelID] = p
	return p, nil
}
