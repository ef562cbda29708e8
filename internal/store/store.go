// Package store owns the canonical film list. Every mutation is saved to
// the local backend before it returns, then fanned out to the derived
// views, the search cache and, in the background, the remote copy.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/blackwell-systems/filmshelf/internal/catalog"
	"github.com/blackwell-systems/filmshelf/internal/history"
	"github.com/blackwell-systems/filmshelf/internal/logging"
	"github.com/blackwell-systems/filmshelf/internal/query"
	"github.com/blackwell-systems/filmshelf/internal/views"
)

// ErrNotFound is returned when no film has the requested ID.
var ErrNotFound = errors.New("film not found")

// ErrNoRemote is returned by Sync when no authenticated remote is attached.
var ErrNoRemote = errors.New("no remote configured")

// Data sources reported in SyncStatus.Source.
const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

// Store is the Record Store. It is safe for concurrent use; mutations are
// applied one at a time.
type Store struct {
	local     Backend
	remote    Remote
	logger    *slog.Logger
	now       func() time.Time
	cacheSize int
	cacheTTL  time.Duration
	observers []Observer

	engine  *query.Engine
	views   *views.Cache
	history *history.Tracker
	syncer  *syncer

	// writeMu serializes mutations and searches end to end, including
	// persistence and observer calls.
	writeMu sync.Mutex

	mu       sync.RWMutex
	films    []catalog.Film
	source   string
	localErr string
}

// Open loads the film list and returns a ready Store. When an
// authenticated remote holds films they win over local data; otherwise
// local data is used and, if any exists, mirrored to the remote.
func Open(local Backend, opts ...Option) (*Store, error) {
	if local == nil {
		return nil, errors.New("store: local backend is required")
	}
	s := &Store{local: local}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrNull(s.logger)
	if s.now == nil {
		s.now = time.Now
	}

	s.engine = query.NewEngine(s.cacheSize, s.cacheTTL, s.logger)
	s.views = views.NewCache(views.Limit)
	s.history = history.New(s.now)
	s.engine.SetListener(s.onSearch)
	s.observers = append([]Observer{s.refreshViews, s.invalidateSearches}, s.observers...)

	if s.remoteReady() {
		s.syncer = newSyncer(s.remote, s.logger, s.now)
	}

	if err := s.load(); err != nil {
		if s.syncer != nil {
			_ = s.syncer.close(context.Background())
		}
		return nil, err
	}
	return s, nil
}

func (s *Store) remoteReady() bool {
	return s.remote != nil && s.remote.Authenticated()
}

func (s *Store) load() error {
	var films []catalog.Film
	source := SourceLocal

	if s.syncer != nil {
		remote, err := s.remote.LoadAll()
		switch {
		case err != nil:
			s.logger.Warn("remote load failed, using local data", "error", err)
			s.syncer.recordFailure(err)
		case len(remote) > 0:
			films, source = remote, SourceRemote
		}
	}

	if source == SourceLocal {
		local, err := s.local.LoadFilms()
		if err != nil {
			return fmt.Errorf("loading films: %w", err)
		}
		films = local
		if s.syncer != nil && len(films) > 0 {
			s.syncer.push(slices.Clone(films))
		}
	} else {
		// Keep the local copy in step with what we are now serving.
		if err := s.local.SaveFilms(films); err != nil {
			s.noteLocalFailure("save films", err)
		}
	}
	if films == nil {
		films = []catalog.Film{}
	}

	s.films = films
	s.source = source
	s.logger.Debug("store opened", "films", len(films), "source", source)

	searched, err := s.local.LoadList(ListRecentSearched)
	if err != nil {
		s.logger.Warn("loading recent searches failed", "error", err)
	}
	s.views.Restore(nil, searched)
	s.views.Recompute(films)

	entries, err := s.local.LoadHistory()
	if err != nil {
		s.logger.Warn("loading search history failed", "error", err)
	}
	s.history.Restore(entries)
	return nil
}

// --- Mutations ---

// Add validates in, assigns an ID and DateAdded, and puts the new film at
// the front of the list.
func (s *Store) Add(in catalog.FilmInput) (catalog.Film, error) {
	if err := in.Validate(); err != nil {
		return catalog.Film{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	f := in.Apply(catalog.Film{ID: newID(nil), DateAdded: catalog.FormatTime(s.now())})
	next := append([]catalog.Film{f}, s.Films()...)
	s.commit(Event{Kind: EventAdded, Film: f, Batch: []catalog.Film{f}}, next)
	return f, nil
}

// AddBatch adds every input in one write, in input order, ahead of the
// existing films. Nothing is added unless every input is valid.
func (s *Store) AddBatch(ins []catalog.FilmInput) ([]catalog.Film, error) {
	for i, in := range ins {
		if err := in.Validate(); err != nil {
			return nil, fmt.Errorf("film %d: %w", i+1, err)
		}
	}
	if len(ins) == 0 {
		return []catalog.Film{}, nil
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	added := catalog.FormatTime(s.now())
	seen := make(map[string]bool, len(ins))
	batch := make([]catalog.Film, len(ins))
	for i, in := range ins {
		batch[i] = in.Apply(catalog.Film{ID: newID(seen), DateAdded: added})
	}

	next := append(slices.Clone(batch), s.Films()...)
	s.commit(Event{Kind: EventBatchAdded, Film: batch[0], Batch: batch}, next)
	return batch, nil
}

// Update replaces every mutable field of the film with id. ID and
// DateAdded are kept.
func (s *Store) Update(id string, in catalog.FilmInput) (catalog.Film, error) {
	if err := in.Validate(); err != nil {
		return catalog.Film{}, err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := s.Films()
	cur := catalog.ByID(next, id)
	if cur == nil {
		return catalog.Film{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	f := in.Apply(*cur)
	next, _ = catalog.Replace(next, f)
	s.commit(Event{Kind: EventUpdated, Film: f, Batch: []catalog.Film{f}}, next)
	return f, nil
}

// Remove deletes the film with id from the list and every derived view.
// It reports whether a film was removed; removing an unknown ID is a
// no-op.
func (s *Store) Remove(id string) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	cur := s.Films()
	f := catalog.ByID(cur, id)
	if f == nil {
		return false
	}
	removed := *f
	next, _ := catalog.Remove(cur, id)
	s.commit(Event{Kind: EventRemoved, Film: removed, Batch: []catalog.Film{removed}}, next)
	return true
}

// commit installs next as the film list and runs the side effects of a
// mutation in order: local save, observers, derived-view save, remote
// push. Persistence failures are logged and reported by Status.
func (s *Store) commit(ev Event, next []catalog.Film) {
	s.mu.Lock()
	s.films = next
	s.mu.Unlock()

	if err := s.local.SaveFilms(next); err != nil {
		s.noteLocalFailure("save films", err)
	} else {
		s.clearLocalFailure()
	}

	ev.Films = slices.Clone(next)
	for _, o := range s.observers {
		o(ev)
	}

	s.saveList(ListRecentAdded, s.views.RecentAdded())
	s.saveList(ListRecentSearched, s.views.RecentSearched())

	if s.syncer != nil {
		s.syncer.push(slices.Clone(next))
	}
	s.logger.Debug("mutation committed", "kind", ev.Kind, "id", ev.Film.ID, "films", len(next))
}

func (s *Store) refreshViews(ev Event) {
	switch ev.Kind {
	case EventUpdated:
		s.views.Replace(ev.Film)
	case EventRemoved:
		s.views.Forget(ev.Film.ID)
	}
	s.views.Recompute(ev.Films)
}

func (s *Store) invalidateSearches(Event) {
	s.engine.Invalidate()
}

func (s *Store) saveList(name string, films []catalog.Film) {
	if err := s.local.SaveList(name, films); err != nil {
		s.noteLocalFailure("save "+name, err)
	}
}

func (s *Store) noteLocalFailure(op string, err error) {
	s.logger.Error("local persistence failed", "op", op, "error", err)
	s.mu.Lock()
	s.localErr = fmt.Sprintf("%s: %v", op, err)
	s.mu.Unlock()
}

func (s *Store) clearLocalFailure() {
	s.mu.Lock()
	s.localErr = ""
	s.mu.Unlock()
}

// --- Reads ---

// Films returns a copy of the film list, newest additions first.
func (s *Store) Films() []catalog.Film {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.films)
}

// Len returns the number of films.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.films)
}

// Get returns the film with id.
func (s *Store) Get(id string) (catalog.Film, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if f := catalog.ByID(s.films, id); f != nil {
		return *f, true
	}
	return catalog.Film{}, false
}

// Query applies q to the current films. It has no side effects.
func (s *Store) Query(q query.Query) []catalog.Film {
	return query.Apply(s.Films(), q)
}

// Search runs a term search. Searches with a term are recorded in the
// history and merged into the recent searches, and both are saved.
func (s *Store) Search(term string) query.Result {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.engine.Search(s.Films(), term)
}

// onSearch runs inside Search, under writeMu.
func (s *Store) onSearch(term string, results []catalog.Film) {
	entries := s.history.Record(term, len(results))
	s.views.RecordSearch(results)

	if err := s.local.SaveHistory(entries); err != nil {
		s.noteLocalFailure("save history", err)
	}
	s.saveList(ListRecentSearched, s.views.RecentSearched())
}

// RecentAdded returns up to five films, newest first.
func (s *Store) RecentAdded() []catalog.Film {
	return s.views.RecentAdded()
}

// RecentSearched returns up to five films from recent search results.
func (s *Store) RecentSearched() []catalog.Film {
	return s.views.RecentSearched()
}

// History returns the search history, most recent first.
func (s *Store) History() []catalog.SearchEntry {
	return s.history.Entries()
}

// Stats summarizes the collection as of now.
func (s *Store) Stats() views.Stats {
	st := views.Compute(s.Films(), s.now())
	if st.Malformed > 0 {
		s.logger.Warn("films with unparseable date_added", "count", st.Malformed)
	}
	return st
}

// Export writes the film list in the catalog YAML format.
func (s *Store) Export(w io.Writer) error {
	return catalog.Export(w, s.Films())
}

// Status reports where the data came from and how persistence is doing.
func (s *Store) Status() SyncStatus {
	var st SyncStatus
	if s.syncer != nil {
		st = s.syncer.snapshot()
		st.RemoteConfigured = true
	}
	s.mu.RLock()
	st.Source = s.source
	st.LocalError = s.localErr
	s.mu.RUnlock()
	return st
}

// Flush waits for queued remote pushes to be attempted.
func (s *Store) Flush(ctx context.Context) error {
	if s.syncer == nil {
		return nil
	}
	return s.syncer.flush(ctx)
}

// Sync queues the current film list for upload and waits for the attempt.
// The upload's own failure is returned so callers can report it.
func (s *Store) Sync(ctx context.Context) error {
	if s.syncer == nil {
		return ErrNoRemote
	}
	s.syncer.push(s.Films())
	if err := s.syncer.flush(ctx); err != nil {
		return err
	}
	if st := s.syncer.snapshot(); st.LastError != "" {
		return fmt.Errorf("remote push: %s", st.LastError)
	}
	return nil
}

// Close flushes pending pushes and stops the sync worker.
func (s *Store) Close(ctx context.Context) error {
	if s.syncer == nil {
		return nil
	}
	return s.syncer.close(ctx)
}

// newID returns a UUIDv7 not already in seen, and records it there.
func newID(seen map[string]bool) string {
	for {
		id, err := uuid.NewV7()
		if err != nil {
			id = uuid.New()
		}
		s := id.String()
		if seen == nil {
			return s
		}
		if !seen[s] {
			seen[s] = true
			return s
		}
	}
}
