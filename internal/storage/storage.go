// Package storage provides the local backends for the film store.
package storage

import (
	"fmt"

	"github.com/blackwell-systems/filmshelf/internal/config"
	"github.com/blackwell-systems/filmshelf/internal/store"
)

// Backend is a store.Backend that holds an open resource.
type Backend interface {
	store.Backend
	Close() error
}

// Open returns the backend for driver rooted at path.
func Open(driver, path string) (Backend, error) {
	switch driver {
	case config.DriverFile, "":
		return NewFileBackend(path)
	case config.DriverBolt:
		return OpenBolt(path)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}
