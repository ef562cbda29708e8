package query

import (
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/blackwell-systems/filmshelf/internal/catalog"
	"github.com/blackwell-systems/filmshelf/internal/logging"
)

// State is the outcome of one search.
type State int

const (
	// StateIdle means nothing has been searched yet.
	StateIdle State = iota
	// StateNoTerm means the term was blank; no search ran.
	StateNoTerm
	// StateEmpty means a term was searched and nothing matched.
	StateEmpty
	// StatePopulated means a term was searched and films matched.
	StatePopulated
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateNoTerm:
		return "no-term"
	case StateEmpty:
		return "empty"
	case StatePopulated:
		return "populated"
	}
	return "unknown"
}

// Result is what Engine.Search returns.
type Result struct {
	Term  string
	State State
	Films []catalog.Film
}

// Listener is told about every search that ran with a term.
type Listener func(term string, results []catalog.Film)

// Default search cache bounds.
const (
	DefaultCacheSize = 64
	DefaultCacheTTL  = 10 * time.Minute
)

// Engine runs searches through a bounded LRU cache keyed by the
// normalized term. Callers must Invalidate it whenever the film list
// changes.
type Engine struct {
	cache  *expirable.LRU[string, []catalog.Film]
	logger *slog.Logger

	mu       sync.Mutex
	listener Listener
}

// NewEngine creates an engine whose cache holds at most size terms for at
// most ttl each. Non-positive values fall back to the defaults.
func NewEngine(size int, ttl time.Duration, logger *slog.Logger) *Engine {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Engine{
		cache:  expirable.NewLRU[string, []catalog.Film](size, nil, ttl),
		logger: logging.OrNull(logger),
	}
}

// SetListener registers l to be called once per search with a term.
func (e *Engine) SetListener(l Listener) {
	e.mu.Lock()
	e.listener = l
	e.mu.Unlock()
}

// Search finds the films matching term. A blank term yields StateNoTerm
// and touches neither the cache nor the listener. Every other call
// notifies the listener, including repeats served from the cache.
func (e *Engine) Search(films []catalog.Film, term string) Result {
	key := cacheKey(term)
	if key == "" {
		return Result{Term: term, State: StateNoTerm, Films: []catalog.Film{}}
	}

	results, hit := e.cache.Get(key)
	if !hit {
		results = Search(films, term)
		e.cache.Add(key, results)
	}
	e.logger.Debug("search", "term", term, "results", len(results), "cached", hit)

	res := Result{Term: term, State: StateEmpty, Films: slices.Clone(results)}
	if len(results) > 0 {
		res.State = StatePopulated
	} else {
		res.Films = []catalog.Film{}
	}

	e.mu.Lock()
	l := e.listener
	e.mu.Unlock()
	if l != nil {
		l(term, slices.Clone(results))
	}
	return res
}

// Invalidate drops every cached result.
func (e *Engine) Invalidate() {
	if n := e.cache.Len(); n > 0 {
		e.logger.Debug("search cache invalidated", "entries", n)
	}
	e.cache.Purge()
}

func cacheKey(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}
