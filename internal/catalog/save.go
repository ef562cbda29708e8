package catalog

import (
	"bytes"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Marshal encodes a film list to YAML bytes. Field order follows the Film
// struct, so the output is stable and can be read back with Parse.
func Marshal(films []Film) ([]byte, error) {
	if films == nil {
		films = []Film{}
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(films); err != nil {
		return nil, fmt.Errorf("encoding catalog: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encoding catalog: %w", err)
	}
	return buf.Bytes(), nil
}

// Export writes a full snapshot of films to w.
func Export(w io.Writer, films []Film) error {
	data, err := Marshal(films)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Replace swaps in f for the film with the same ID. The slice is updated in
// place; the second return reports whether a film was replaced.
func Replace(films []Film, f Film) ([]Film, bool) {
	for i := range films {
		if films[i].ID == f.ID {
			films[i] = f
			return films, true
		}
	}
	return films, false
}

// Remove returns a copy of films without the film with the given ID, and
// whether one was removed. The input slice is never modified, since derived
// views may share its backing array.
func Remove(films []Film, id string) ([]Film, bool) {
	for i := range films {
		if films[i].ID == id {
			out := make([]Film, 0, len(films)-1)
			out = append(out, films[:i]...)
			return append(out, films[i+1:]...), true
		}
	}
	return films, false
}

// ByID returns the first film with the given ID, or nil.
func ByID(films []Film, id string) *Film {
	for i := range films {
		if films[i].ID == id {
			return &films[i]
		}
	}
	return nil
}
