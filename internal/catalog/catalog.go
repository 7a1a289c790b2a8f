// Package catalog holds the ordered set of crossword levels.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"sync"

	"github.com/bodul/xwlevels/internal/layout"
)

var ErrInvalidLevel = errors.New("invalid level")

// Clue is a clue/answer pair. Number is its 1-based position in the level.
type Clue struct {
	Number int    `json:"number"`
	Text   string `json:"clue"`
	Answer string `json:"answer"`
}

// Level is one crossword of the catalog.
type Level struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Clues []Clue `json:"words"`
}

// Answers returns the level's answers in clue order.
func (l Level) Answers() []string {
	out := make([]string, len(l.Clues))
	for i, c := range l.Clues {
		out[i] = c.Answer
	}
	return out
}

// Clue returns the clue numbered n.
func (l Level) Clue(n int) (Clue, bool) {
	if n < 1 || n > len(l.Clues) {
		return Clue{}, false
	}
	return l.Clues[n-1], true
}

// Catalog is a read-mostly list of levels sorted by id. Add is the only
// mutation and is safe to call concurrently with lookups.
type Catalog struct {
	mu     sync.RWMutex
	levels []Level
}

// New validates levels and builds a catalog. Clue numbers are reassigned
// from list order and answers are upper-cased.
func New(levels []Level) (*Catalog, error) {
	c := &Catalog{levels: make([]Level, 0, len(levels))}
	seen := make(map[int]bool, len(levels))
	for _, l := range levels {
		l, err := normalizeLevel(l)
		if err != nil {
			return nil, err
		}
		if seen[l.ID] {
			return nil, fmt.Errorf("%w: duplicate id %d", ErrInvalidLevel, l.ID)
		}
		seen[l.ID] = true
		c.levels = append(c.levels, l)
	}
	slices.SortFunc(c.levels, func(a, b Level) int { return a.ID - b.ID })
	return c, nil
}

func normalizeLevel(l Level) (Level, error) {
	if l.ID < 1 {
		return l, fmt.Errorf("%w: id %d", ErrInvalidLevel, l.ID)
	}
	if len(l.Clues) == 0 {
		return l, fmt.Errorf("%w: level %d has no words", ErrInvalidLevel, l.ID)
	}
	out := Level{ID: l.ID, Title: strings.TrimSpace(l.Title), Clues: make([]Clue, len(l.Clues))}
	for i, c := range l.Clues {
		answer := strings.ToUpper(strings.TrimSpace(c.Answer))
		if !isLetters(answer) {
			return l, fmt.Errorf("%w: level %d word %d: answer %q must be A-Z", ErrInvalidLevel, l.ID, i+1, c.Answer)
		}
		out.Clues[i] = Clue{Number: i + 1, Text: strings.TrimSpace(c.Text), Answer: answer}
	}
	return out, nil
}

func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return true
}

// Load reads a JSON array of levels.
func Load(r io.Reader) (*Catalog, error) {
	var levels []Level
	if err := json.NewDecoder(r).Decode(&levels); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(levels)
}

// LoadFile reads a JSON catalog from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Lookup returns the level with the given id.
func (c *Catalog) Lookup(id int) (Level, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := slices.BinarySearchFunc(c.levels, id, func(l Level, id int) int { return l.ID - id })
	if !ok {
		return Level{}, false
	}
	return c.levels[i], true
}

// Levels returns a copy of all levels, in id order.
func (c *Catalog) Levels() []Level {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.levels)
}

// Len returns the number of levels.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.levels)
}

// Add appends a level after the current last id and returns it.
func (c *Catalog) Add(title string, clues []Clue) (Level, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := 1
	if n := len(c.levels); n > 0 {
		next = c.levels[n-1].ID + 1
	}
	l, err := normalizeLevel(Level{ID: next, Title: title, Clues: clues})
	if err != nil {
		return Level{}, err
	}
	c.levels = append(c.levels, l)
	return l, nil
}

// Layout returns the placement for a level: the manual layout when one is
// registered, otherwise a generated one.
func Layout(l Level, manual map[int]layout.Manual) layout.Layout {
	if m, ok := manual[l.ID]; ok {
		return m.Resolve(l.Answers())
	}
	return layout.Generate(l.Answers())
}
