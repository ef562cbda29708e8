// Package ingest resolves bulk import sources and reads them into film
// inputs.
package ingest

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/blackwell-systems/filmshelf/internal/github"
)

// Source holds a resolved input ready for reading.
type Source struct {
	// Name is the original filename (no directory), shown in import output.
	Name string
	// Size is the byte count if known in advance (-1 if unknown).
	Size int64
	// Open returns a new ReadCloser. May be called once.
	Open func() (io.ReadCloser, error)
}

// githubPathRe matches "github:owner/repo@ref:path/to/file"
var githubPathRe = regexp.MustCompile(`^github:([^/]+)/([^@]+)@([^:]+):(.+)$`)

// Resolve determines the type of input and returns a Source.
// Supported formats:
//
//	-                          standard input
//	/path/to/films.csv         local file
//	https://example.com/f.csv  HTTP URL
//	github:owner/repo@ref:path GitHub repo path (needs gh)
func Resolve(input string, gh *github.Client) (*Source, error) {
	switch {
	case input == "-":
		return &Source{
			Name: "stdin",
			Size: -1,
			Open: func() (io.ReadCloser, error) { return io.NopCloser(os.Stdin), nil },
		}, nil
	case strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://"):
		return resolveHTTP(input)
	case strings.HasPrefix(input, "github:"):
		return resolveGitHub(input, gh)
	default:
		return resolveFile(input)
	}
}

func resolveFile(path string) (*Source, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%q is a directory", path)
	}
	return &Source{
		Name: filepath.Base(path),
		Size: fi.Size(),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}, nil
}

func resolveHTTP(url string) (*Source, error) {
	client := &http.Client{Timeout: 30 * time.Second}
	return &Source{
		Name: guessFilenameFromURL(url),
		Size: -1,
		Open: func() (io.ReadCloser, error) {
			r, err := client.Get(url)
			if err != nil {
				return nil, err
			}
			if r.StatusCode != http.StatusOK {
				r.Body.Close()
				return nil, fmt.Errorf("GET %s: status %d", url, r.StatusCode)
			}
			return r.Body, nil
		},
	}, nil
}

func resolveGitHub(input string, gh *github.Client) (*Source, error) {
	m := githubPathRe.FindStringSubmatch(input)
	if m == nil {
		return nil, fmt.Errorf("invalid github: path %q: expected github:owner/repo@ref:path/to/file", input)
	}
	if gh == nil {
		return nil, fmt.Errorf("github: sources need a GitHub token")
	}
	owner, repo, ref, path := m[1], m[2], m[3], m[4]

	return &Source{
		Name: filepath.Base(path),
		Size: -1,
		Open: func() (io.ReadCloser, error) {
			data, _, err := gh.GetFileContent(owner, repo, path, ref)
			if err != nil {
				return nil, fmt.Errorf("GitHub contents %s: %w", path, err)
			}
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}, nil
}

func guessFilenameFromURL(rawURL string) string {
	// Strip query string.
	if idx := strings.Index(rawURL, "?"); idx >= 0 {
		rawURL = rawURL[:idx]
	}
	base := filepath.Base(rawURL)
	if base == "" || base == "." || base == "/" {
		return "download"
	}
	return base
}
