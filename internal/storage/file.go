package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/blackwell-systems/filmshelf/internal/catalog"
	"github.com/blackwell-systems/filmshelf/internal/util"
)

const (
	filmsFile   = "films.yml"
	historyFile = "history.yml"
)

// FileBackend keeps each list in its own YAML file under a directory.
// Writes go to a temp file that is renamed into place.
type FileBackend struct {
	dir string
}

// NewFileBackend creates dir if needed and returns a backend rooted there.
func NewFileBackend(dir string) (*FileBackend, error) {
	if err := util.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	return &FileBackend{dir: dir}, nil
}

// Dir returns the data directory.
func (b *FileBackend) Dir() string { return b.dir }

// FilmsPath returns the path of the main film list.
func (b *FileBackend) FilmsPath() string { return filepath.Join(b.dir, filmsFile) }

// LoadFilms reads the film list. A missing file yields nil.
func (b *FileBackend) LoadFilms() ([]catalog.Film, error) {
	return b.loadFilmFile(filmsFile)
}

// SaveFilms writes the film list.
func (b *FileBackend) SaveFilms(films []catalog.Film) error {
	data, err := catalog.Marshal(films)
	if err != nil {
		return err
	}
	return util.WriteAtomic(filepath.Join(b.dir, filmsFile), data, 0600)
}

// LoadList reads a derived list.
func (b *FileBackend) LoadList(name string) ([]catalog.Film, error) {
	return b.loadFilmFile(name + ".yml")
}

// SaveList writes a derived list.
func (b *FileBackend) SaveList(name string, films []catalog.Film) error {
	data, err := catalog.Marshal(films)
	if err != nil {
		return err
	}
	return util.WriteAtomic(filepath.Join(b.dir, name+".yml"), data, 0600)
}

// LoadHistory reads the search history.
func (b *FileBackend) LoadHistory() ([]catalog.SearchEntry, error) {
	data, err := os.ReadFile(filepath.Join(b.dir, historyFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history: %w", err)
	}
	var entries []catalog.SearchEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing history: %w", err)
	}
	return entries, nil
}

// SaveHistory writes the search history.
func (b *FileBackend) SaveHistory(entries []catalog.SearchEntry) error {
	if entries == nil {
		entries = []catalog.SearchEntry{}
	}
	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	return util.WriteAtomic(filepath.Join(b.dir, historyFile), data, 0600)
}

// Close is a no-op; files are closed after every write.
func (b *FileBackend) Close() error { return nil }

func (b *FileBackend) loadFilmFile(name string) ([]catalog.Film, error) {
	path := filepath.Join(b.dir, name)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	films, err := catalog.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return films, nil
}
