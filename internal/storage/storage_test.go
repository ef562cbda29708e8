package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blackwell-systems/filmshelf/internal/catalog"
	"github.com/blackwell-systems/filmshelf/internal/storage"
	"github.com/blackwell-systems/filmshelf/internal/store"
)

var sample = []catalog.Film{
	{ID: "1", Title: "Heat", Director: "Michael Mann", Actors: "Al Pacino, Robert De Niro", IDNumber: "BLU-007", Year: "1995", DateAdded: "2026-01-01T00:00:00Z"},
	{ID: "2", Title: "Alien", IDNumber: "VHS-1", ImageURL: "data:image/png;base64,AAAA", DateAdded: "2026-01-02T00:00:00Z"},
}

func backends(t *testing.T) map[string]storage.Backend {
	t.Helper()
	out := map[string]storage.Backend{}
	for _, driver := range []string{"file", "bolt"} {
		b, err := storage.Open(driver, filepath.Join(t.TempDir(), driver))
		if err != nil {
			t.Fatalf("Open(%s): %v", driver, err)
		}
		t.Cleanup(func() { _ = b.Close() })
		out[driver] = b
	}
	return out
}

func TestBackend_Empty(t *testing.T) {
	for name, b := range backends(t) {
		films, err := b.LoadFilms()
		if err != nil || films != nil {
			t.Errorf("%s: LoadFilms on empty = %v, %v", name, films, err)
		}
		list, err := b.LoadList(store.ListRecentAdded)
		if err != nil || list != nil {
			t.Errorf("%s: LoadList on empty = %v, %v", name, list, err)
		}
		h, err := b.LoadHistory()
		if err != nil || h != nil {
			t.Errorf("%s: LoadHistory on empty = %v, %v", name, h, err)
		}
	}
}

func TestBackend_RoundTrip(t *testing.T) {
	entries := []catalog.SearchEntry{{ID: "e1", Term: "heat", ResultCount: 1, Timestamp: "2026-01-03T00:00:00Z"}}
	for name, b := range backends(t) {
		if err := b.SaveFilms(sample); err != nil {
			t.Fatalf("%s: SaveFilms: %v", name, err)
		}
		if err := b.SaveList(store.ListRecentSearched, sample[1:]); err != nil {
			t.Fatalf("%s: SaveList: %v", name, err)
		}
		if err := b.SaveHistory(entries); err != nil {
			t.Fatalf("%s: SaveHistory: %v", name, err)
		}

		films, err := b.LoadFilms()
		if err != nil || len(films) != 2 || films[0] != sample[0] || films[1] != sample[1] {
			t.Errorf("%s: LoadFilms = %+v, %v", name, films, err)
		}
		list, err := b.LoadList(store.ListRecentSearched)
		if err != nil || len(list) != 1 || list[0].ID != "2" {
			t.Errorf("%s: LoadList = %+v, %v", name, list, err)
		}
		if other, _ := b.LoadList(store.ListRecentAdded); other != nil {
			t.Errorf("%s: lists are not independent: %+v", name, other)
		}
		h, err := b.LoadHistory()
		if err != nil || len(h) != 1 || h[0] != entries[0] {
			t.Errorf("%s: LoadHistory = %+v, %v", name, h, err)
		}

		// Saving an empty list overwrites, not appends.
		if err := b.SaveFilms(nil); err != nil {
			t.Fatal(err)
		}
		if films, _ := b.LoadFilms(); len(films) != 0 {
			t.Errorf("%s: after empty save = %d films", name, len(films))
		}
	}
}

func TestBackend_WithStore(t *testing.T) {
	for name, b := range backends(t) {
		s, err := store.Open(b)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if _, err := s.Add(catalog.FilmInput{Title: "Heat", IDNumber: "B-1"}); err != nil {
			t.Fatal(err)
		}
		s.Search("heat")

		s2, err := store.Open(b)
		if err != nil {
			t.Fatal(err)
		}
		if s2.Len() != 1 || len(s2.History()) != 1 || len(s2.RecentSearched()) != 1 {
			t.Errorf("%s: reopened store = %d films, %d history, %d searched",
				name, s2.Len(), len(s2.History()), len(s2.RecentSearched()))
		}
	}
}

func TestFileBackend_Layout(t *testing.T) {
	dir := t.TempDir()
	b, err := storage.NewFileBackend(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.SaveFilms(sample); err != nil {
		t.Fatal(err)
	}
	if err := b.SaveList(store.ListRecentAdded, sample); err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{"films.yml", "recent_added.yml"} {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			t.Errorf("%s missing: %v", f, err)
		}
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 2 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
	data, err := os.ReadFile(b.FilmsPath())
	if err != nil {
		t.Fatal(err)
	}
	loaded, err := catalog.Parse(data)
	if err != nil || len(loaded) != 2 {
		t.Errorf("films.yml not in catalog format: %v, %v", loaded, err)
	}
}

func TestFileBackend_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "films.yml"), []byte(":: not yaml ["), 0600); err != nil {
		t.Fatal(err)
	}
	b, _ := storage.NewFileBackend(dir)
	if _, err := b.LoadFilms(); err == nil {
		t.Error("expected parse error")
	}
	if _, err := store.Open(b); err == nil {
		t.Error("store opened over a corrupt film list")
	}
}

func TestOpen_UnknownDriver(t *testing.T) {
	if _, err := storage.Open("postgres", t.TempDir()); err == nil {
		t.Error("expected error for unknown driver")
	}
}
