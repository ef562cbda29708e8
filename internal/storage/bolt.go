package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/blackwell-systems/filmshelf/internal/catalog"
	"github.com/blackwell-systems/filmshelf/internal/util"
)

// BoltFile is the database file name inside the data directory.
const BoltFile = "filmshelf.db"

var bucketDocuments = []byte("documents")

const (
	keyFilms   = "films"
	keyHistory = "history"
)

// BoltBackend keeps every list as a JSON value in one bbolt bucket.
type BoltBackend struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the database in dir.
func OpenBolt(dir string) (*BoltBackend, error) {
	if err := util.EnsureDir(dir); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}
	db, err := bolt.Open(filepath.Join(dir, BoltFile), 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketDocuments)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &BoltBackend{db: db}, nil
}

// Close closes the database.
func (b *BoltBackend) Close() error {
	return b.db.Close()
}

func (b *BoltBackend) LoadFilms() ([]catalog.Film, error) {
	var films []catalog.Film
	if err := b.get(keyFilms, &films); err != nil {
		return nil, err
	}
	return films, nil
}

func (b *BoltBackend) SaveFilms(films []catalog.Film) error {
	return b.put(keyFilms, nonNil(films))
}

func (b *BoltBackend) LoadList(name string) ([]catalog.Film, error) {
	var films []catalog.Film
	if err := b.get("list:"+name, &films); err != nil {
		return nil, err
	}
	return films, nil
}

func (b *BoltBackend) SaveList(name string, films []catalog.Film) error {
	return b.put("list:"+name, nonNil(films))
}

func (b *BoltBackend) LoadHistory() ([]catalog.SearchEntry, error) {
	var entries []catalog.SearchEntry
	if err := b.get(keyHistory, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (b *BoltBackend) SaveHistory(entries []catalog.SearchEntry) error {
	if entries == nil {
		entries = []catalog.SearchEntry{}
	}
	return b.put(keyHistory, entries)
}

// get decodes the value under key into dest, leaving dest untouched if
// the key is absent.
func (b *BoltBackend) get(key string, dest interface{}) error {
	var data []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(bucketDocuments)
		if bkt == nil {
			return nil
		}
		if v := bkt.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("reading %s: %w", key, err)
	}
	if data == nil {
		return nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("decoding %s: %w", key, err)
	}
	return nil
}

func (b *BoltBackend) put(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists(bucketDocuments)
		if err != nil {
			return err
		}
		return bkt.Put([]byte(key), data)
	})
}

func nonNil(films []catalog.Film) []catalog.Film {
	if films == nil {
		return []catalog.Film{}
	}
	return films
}
