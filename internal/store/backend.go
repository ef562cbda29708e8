package store

import "github.com/blackwell-systems/filmshelf/internal/catalog"

// Names of the derived lists a Backend keeps next to the film list.
const (
	ListRecentAdded    = "recent_added"
	ListRecentSearched = "recent_searched"
)

// Backend is the local persistence medium. Loads of data that was never
// saved return nil and no error.
type Backend interface {
	LoadFilms() ([]catalog.Film, error)
	SaveFilms(films []catalog.Film) error
	LoadList(name string) ([]catalog.Film, error)
	SaveList(name string, films []catalog.Film) error
	LoadHistory() ([]catalog.SearchEntry, error)
	SaveHistory(entries []catalog.SearchEntry) error
}

// Remote is an optional off-machine copy of the film list.
type Remote interface {
	Authenticated() bool
	LoadAll() ([]catalog.Film, error)
	SaveAll(films []catalog.Film) error
}

// EventKind identifies a committed mutation.
type EventKind int

const (
	EventAdded EventKind = iota + 1
	EventBatchAdded
	EventUpdated
	EventRemoved
)

func (k EventKind) String() string {
	switch k {
	case EventAdded:
		return "added"
	case EventBatchAdded:
		return "batch-added"
	case EventUpdated:
		return "updated"
	case EventRemoved:
		return "removed"
	}
	return "unknown"
}

// Event describes a committed mutation. Film is the film added, updated
// or removed (the first of a batch); Films is the whole list afterwards.
type Event struct {
	Kind  EventKind
	Film  catalog.Film
	Batch []catalog.Film
	Films []catalog.Film
}

// Observer is called synchronously after every committed mutation, once
// the film list has been saved locally. Observers may read from the store
// but must not mutate it.
type Observer func(Event)
