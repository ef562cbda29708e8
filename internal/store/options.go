package store

import (
	"log/slog"
	"time"
)

// Option configures a Store.
type Option func(*Store)

// WithRemote mirrors every mutation to r when it is authenticated.
func WithRemote(r Remote) Option {
	return func(s *Store) { s.remote = r }
}

// WithLogger sets the logger for persistence and sync failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithClock replaces time.Now for assigning DateAdded and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithSearchCache bounds the search result cache.
func WithSearchCache(size int, ttl time.Duration) Option {
	return func(s *Store) {
		s.cacheSize = size
		s.cacheTTL = ttl
	}
}

// WithObserver registers o to run after the built-in observers.
func WithObserver(o Observer) Option {
	return func(s *Store) { s.observers = append(s.observers, o) }
}
