package progress

import (
	"context"
	"encoding/json"
	"io"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

const (
	KeyDoneLevels = "crossword_done_levels_v1"
	KeyUnlocked   = "crossword_unlocked_v1"
	KeyFruits     = "spike_fruits_v1"
)

// Progress is the player's standing across the level set.
type Progress struct {
	Done     []int `json:"done"`
	Unlocked int   `json:"unlocked"`
	Fruits   int   `json:"fruits"`
}

// IsDone reports whether level id has been completed.
func (p Progress) IsDone(id int) bool {
	return slices.Contains(p.Done, id)
}

// Tracker reads and updates progress in a Store. Store failures never
// surface: a failed read counts as no progress, a failed write is logged
// and the computed progress is returned anyway.
type Tracker struct {
	store Store
	total atomic.Int64
	log   logrus.FieldLogger

	// mu makes Complete's read-modify-write one unit for this process.
	mu sync.Mutex
}

// NewTracker returns a tracker for a level set of total levels. log may be
// nil.
func NewTracker(store Store, total int, log logrus.FieldLogger) *Tracker {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	t := &Tracker{store: store, log: log}
	t.SetTotal(total)
	return t
}

// Total returns the number of levels in the set.
func (t *Tracker) Total() int {
	return int(t.total.Load())
}

// SetTotal updates the size of the level set, after an import for example.
func (t *Tracker) SetTotal(total int) {
	t.total.Store(int64(max(1, total)))
}

// Snapshot returns the stored progress, with Unlocked clamped to the level
// set. A completed level always unlocks the one after it, so levels added
// after the last one was finished open up.
func (t *Tracker) Snapshot(ctx context.Context) Progress {
	p := t.read(ctx)
	for _, id := range p.Done {
		p.Unlocked = max(p.Unlocked, id+1)
	}
	p.Unlocked = min(t.Total(), max(1, p.Unlocked))
	return p
}

// IsUnlocked reports whether level id may be played.
func (t *Tracker) IsUnlocked(ctx context.Context, id int) bool {
	return id >= 1 && id <= t.Snapshot(ctx).Unlocked
}

// Complete records level id as done and unlocks the level after it.
func (t *Tracker) Complete(ctx context.Context, id int) Progress {
	t.mu.Lock()
	defer t.mu.Unlock()

	p := t.read(ctx)
	if !slices.Contains(p.Done, id) {
		p.Done = append(p.Done, id)
		slices.Sort(p.Done)
	}
	p.Fruits = len(p.Done)
	// The stored threshold never exceeds the level set.
	p.Unlocked = min(t.Total(), max(1, p.Unlocked, id+1))

	done, _ := json.Marshal(p.Done)
	err := t.store.MultiSet(ctx, map[string]string{
		KeyDoneLevels: string(done),
		KeyFruits:     strconv.Itoa(p.Fruits),
		KeyUnlocked:   strconv.Itoa(p.Unlocked),
	})
	if err != nil {
		t.log.WithError(err).WithField("level", id).Warn("progress not saved")
	}
	return p
}

func (t *Tracker) read(ctx context.Context) Progress {
	p := Progress{Done: []int{}, Unlocked: 1}

	vals, err := t.store.MultiGet(ctx, []string{KeyDoneLevels, KeyUnlocked})
	if err != nil {
		t.log.WithError(err).Warn("progress unreadable, starting fresh")
		return p
	}
	p.Done = parseLevels(vals[KeyDoneLevels])
	if n, err := strconv.Atoi(vals[KeyUnlocked]); err == nil {
		p.Unlocked = n
	}
	p.Fruits = len(p.Done)
	return p
}

// parseLevels decodes a JSON array of level ids, ignoring anything that is
// not one.
func parseLevels(raw string) []int {
	out := []int{}
	if raw == "" {
		return out
	}
	var vals []any
	if err := json.Unmarshal([]byte(raw), &vals); err != nil {
		return out
	}
	for _, v := range vals {
		switch n := v.(type) {
		case float64:
			if n == float64(int(n)) {
				out = append(out, int(n))
			}
		case string:
			if i, err := strconv.Atoi(n); err == nil {
				out = append(out, i)
			}
		}
	}
	return out
}
