package catalog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/blackwell-systems/filmshelf/internal/github"
)

// Manager keeps the film catalog in a GitHub repository as a single YAML
// document. It tracks the blob SHA of the last read or write so updates go
// through the contents API without an extra round trip.
type Manager struct {
	gh          *github.Client
	owner       string
	repo        string
	catalogPath string

	mu  sync.Mutex
	sha string
}

// NewManager creates a new catalog manager.
func NewManager(gh *github.Client, owner, repo, catalogPath string) *Manager {
	return &Manager{
		gh:          gh,
		owner:       owner,
		repo:        repo,
		catalogPath: catalogPath,
	}
}

// Authenticated reports whether the manager has enough to talk to GitHub.
func (m *Manager) Authenticated() bool {
	return m.gh != nil && m.gh.HasToken() && m.owner != "" && m.repo != ""
}

// LoadAll retrieves and parses the catalog from GitHub.
// Returns an empty slice if the catalog doesn't exist (not an error).
func (m *Manager) LoadAll() ([]Film, error) {
	data, sha, err := m.gh.GetFileContent(m.owner, m.repo, m.catalogPath, "")
	if err != nil {
		if errors.Is(err, github.ErrNotFound) {
			m.setSHA("")
			return []Film{}, nil
		}
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	m.setSHA(sha)

	films, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return films, nil
}

// SaveAll marshals and commits the full catalog to GitHub.
func (m *Manager) SaveAll(films []Film) error {
	data, err := Marshal(films)
	if err != nil {
		return fmt.Errorf("marshaling catalog: %w", err)
	}

	msg := fmt.Sprintf("filmshelf: sync %d films", len(films))
	sha, err := m.gh.PutFileContent(m.owner, m.repo, m.catalogPath, data, m.currentSHA(), msg)
	if github.StaleSHA(err) {
		// Someone else committed since our last read. The local list is
		// authoritative, so refresh the SHA and overwrite.
		if _, fresh, gerr := m.gh.GetFileContent(m.owner, m.repo, m.catalogPath, ""); gerr == nil {
			sha, err = m.gh.PutFileContent(m.owner, m.repo, m.catalogPath, data, fresh, msg)
		}
	}
	if err != nil {
		return fmt.Errorf("committing catalog: %w", err)
	}
	m.setSHA(sha)
	return nil
}

func (m *Manager) currentSHA() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sha
}

func (m *Manager) setSHA(sha string) {
	m.mu.Lock()
	m.sha = sha
	m.mu.Unlock()
}
