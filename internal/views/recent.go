// Package views maintains projections derived from the film list: the
// most recent additions, the films from recent searches, and collection
// statistics.
package views

import (
	"slices"
	"sync"

	"github.com/blackwell-systems/filmshelf/internal/catalog"
	"github.com/blackwell-systems/filmshelf/internal/query"
)

// Limit is the size of each recent list.
const Limit = 5

// RecentAdditions returns the n most recently added films, newest first.
// Films with equal or malformed dates keep their list order.
func RecentAdditions(films []catalog.Film, n int) []catalog.Film {
	sorted := query.Sort(films, query.SortDateAddedDesc)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// MergeRecentSearches puts results ahead of prev, drops repeated IDs and
// keeps at most n films.
func MergeRecentSearches(prev, results []catalog.Film, n int) []catalog.Film {
	out := make([]catalog.Film, 0, n)
	seen := make(map[string]bool, n)
	for _, list := range [][]catalog.Film{results, prev} {
		for _, f := range list {
			if len(out) == n {
				return out
			}
			if seen[f.ID] {
				continue
			}
			seen[f.ID] = true
			out = append(out, f)
		}
	}
	return out
}

// Cache holds the recent-additions and recent-search views. It is never
// authoritative: the store rebuilds it after every mutation.
type Cache struct {
	mu             sync.Mutex
	limit          int
	recentAdded    []catalog.Film
	recentSearched []catalog.Film
}

// NewCache creates an empty cache keeping limit films per view.
func NewCache(limit int) *Cache {
	if limit <= 0 {
		limit = Limit
	}
	return &Cache{
		limit:          limit,
		recentAdded:    []catalog.Film{},
		recentSearched: []catalog.Film{},
	}
}

// Restore seeds both views from persisted lists.
func (c *Cache) Restore(recentAdded, recentSearched []catalog.Film) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recentAdded = MergeRecentSearches(nil, recentAdded, c.limit)
	c.recentSearched = MergeRecentSearches(nil, recentSearched, c.limit)
}

// Recompute rebuilds recent additions from films and reconciles the
// recent searches with it: films no longer present are dropped and the
// rest are refreshed to their current field values.
func (c *Cache) Recompute(films []catalog.Film) {
	byID := make(map[string]catalog.Film, len(films))
	for _, f := range films {
		byID[f.ID] = f
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.recentAdded = RecentAdditions(films, c.limit)
	searched := make([]catalog.Film, 0, len(c.recentSearched))
	for _, f := range c.recentSearched {
		if cur, ok := byID[f.ID]; ok {
			searched = append(searched, cur)
		}
	}
	c.recentSearched = searched
}

// Replace swaps in f wherever a film with its ID appears.
func (c *Cache) Replace(f catalog.Film) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recentAdded = replaced(c.recentAdded, f)
	c.recentSearched = replaced(c.recentSearched, f)
}

// Forget removes the film with id from both views.
func (c *Cache) Forget(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recentAdded = without(c.recentAdded, id)
	c.recentSearched = without(c.recentSearched, id)
}

// RecordSearch merges a search's results into the recent searches.
func (c *Cache) RecordSearch(results []catalog.Film) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.recentSearched = MergeRecentSearches(c.recentSearched, results, c.limit)
}

// RecentAdded returns a copy of the recent additions, newest first.
func (c *Cache) RecentAdded() []catalog.Film {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.recentAdded)
}

// RecentSearched returns a copy of the recent search results.
func (c *Cache) RecentSearched() []catalog.Film {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.recentSearched)
}

func replaced(films []catalog.Film, f catalog.Film) []catalog.Film {
	out := slices.Clone(films)
	out, _ = catalog.Replace(out, f)
	return out
}

func without(films []catalog.Film, id string) []catalog.Film {
	out, _ := catalog.Remove(films, id)
	return out
}
