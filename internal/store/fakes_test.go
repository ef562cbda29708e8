package store_test

import (
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/blackwell-systems/filmshelf/internal/catalog"
)

var errDiskFull = errors.New("disk full")

// memBackend is an in-memory Backend with switchable failures.
type memBackend struct {
	mu      sync.Mutex
	films   []catalog.Film
	lists   map[string][]catalog.Film
	history []catalog.SearchEntry
	saves   int
	failing bool
}

func newMemBackend() *memBackend {
	return &memBackend{lists: map[string][]catalog.Film{}}
}

func (b *memBackend) setFailing(v bool) {
	b.mu.Lock()
	b.failing = v
	b.mu.Unlock()
}

func (b *memBackend) LoadFilms() ([]catalog.Film, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.films), nil
}

func (b *memBackend) SaveFilms(films []catalog.Film) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failing {
		return errDiskFull
	}
	b.saves++
	b.films = slices.Clone(films)
	return nil
}

func (b *memBackend) LoadList(name string) ([]catalog.Film, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.lists[name]), nil
}

func (b *memBackend) SaveList(name string, films []catalog.Film) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failing {
		return errDiskFull
	}
	b.lists[name] = slices.Clone(films)
	return nil
}

func (b *memBackend) LoadHistory() ([]catalog.SearchEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.history), nil
}

func (b *memBackend) SaveHistory(entries []catalog.SearchEntry) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failing {
		return errDiskFull
	}
	b.history = slices.Clone(entries)
	return nil
}

func (b *memBackend) savedFilms() []catalog.Film {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.films)
}

// fakeRemote is a Remote that records uploads.
type fakeRemote struct {
	mu       sync.Mutex
	auth     bool
	films    []catalog.Film
	loadErr  error
	saveErr  error
	uploads  int
	delay    time.Duration
	lastSave []catalog.Film
}

func (r *fakeRemote) Authenticated() bool { return r.auth }

func (r *fakeRemote) LoadAll() ([]catalog.Film, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	return slices.Clone(r.films), nil
}

func (r *fakeRemote) SaveAll(films []catalog.Film) error {
	time.Sleep(r.delay)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.uploads++
	r.lastSave = slices.Clone(films)
	if r.saveErr != nil {
		return r.saveErr
	}
	r.films = slices.Clone(films)
	return nil
}

func (r *fakeRemote) saved() ([]catalog.Film, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.lastSave), r.uploads
}

// stepClock advances one minute per call.
func stepClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Minute)
		return t
	}
}
