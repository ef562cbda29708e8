// Package history keeps the most recent distinct search terms.
package history

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/blackwell-systems/filmshelf/internal/catalog"
)

// Limit is the number of entries kept.
const Limit = 5

// Tracker records executed searches. Terms are compared without regard
// to case and only the newest entry for a term survives.
type Tracker struct {
	mu      sync.Mutex
	entries []catalog.SearchEntry
	now     func() time.Time
	limit   int
}

// New creates an empty tracker. A nil clock uses time.Now.
func New(now func() time.Time) *Tracker {
	if now == nil {
		now = time.Now
	}
	return &Tracker{now: now, limit: Limit}
}

// Record adds a search to the front of the history and returns the new
// list. Blank terms are ignored.
func (t *Tracker) Record(term string, resultCount int) []catalog.SearchEntry {
	term = strings.TrimSpace(term)

	t.mu.Lock()
	defer t.mu.Unlock()
	if term == "" {
		return t.copyLocked()
	}
	entry := catalog.SearchEntry{
		ID:          newID(),
		Term:        term,
		ResultCount: resultCount,
		Timestamp:   catalog.FormatTime(t.now()),
	}
	t.entries = normalize(append([]catalog.SearchEntry{entry}, t.entries...), t.limit)
	return t.copyLocked()
}

// Entries returns the history, most recent first.
func (t *Tracker) Entries() []catalog.SearchEntry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.copyLocked()
}

// Restore replaces the history with persisted entries, which are assumed
// to be most recent first. Duplicates and overflow are dropped.
func (t *Tracker) Restore(entries []catalog.SearchEntry) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = normalize(entries, t.limit)
}

func (t *Tracker) copyLocked() []catalog.SearchEntry {
	out := make([]catalog.SearchEntry, len(t.entries))
	copy(out, t.entries)
	return out
}

// normalize keeps the first entry for each term and at most limit
// entries. It always allocates a new slice.
func normalize(entries []catalog.SearchEntry, limit int) []catalog.SearchEntry {
	seen := make(map[string]bool, len(entries))
	out := make([]catalog.SearchEntry, 0, limit)
	for _, e := range entries {
		key := strings.ToLower(strings.TrimSpace(e.Term))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
