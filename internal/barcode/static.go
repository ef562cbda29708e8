package barcode

import (
	"context"
	"strings"

	"github.com/blackwell-systems/filmshelf/internal/catalog"
)

// Demo is the built-in lookup table.
var Demo = map[string]catalog.FilmInput{
	"9780201379624": {
		Title:    "The Matrix",
		Director: "Lana Wachowski, Lilly Wachowski",
		Actors:   "Keanu Reeves, Laurence Fishburne, Carrie-Anne Moss",
		Genre:    "Sci-Fi",
		IDNumber: "DVD-001",
		Year:     "1999",
		Tags:     "action, cyberpunk, dystopian",
	},
	"9780130895929": {
		Title:    "Inception",
		Director: "Christopher Nolan",
		Actors:   "Leonardo DiCaprio, Joseph Gordon-Levitt, Elliot Page",
		Genre:    "Sci-Fi",
		IDNumber: "BLU-002",
		Year:     "2010",
		Tags:     "action, mind-bending, dreams",
	},
}

// StaticService answers from a fixed table.
type StaticService struct {
	table map[string]catalog.FilmInput
}

// NewStatic returns a service over table, or over Demo when table is nil.
func NewStatic(table map[string]catalog.FilmInput) *StaticService {
	if table == nil {
		table = Demo
	}
	return &StaticService{table: table}
}

// Lookup returns the table entry for code.
func (s *StaticService) Lookup(ctx context.Context, code string) (catalog.FilmInput, error) {
	if err := ctx.Err(); err != nil {
		return catalog.FilmInput{}, &LookupError{Code: code, Err: err}
	}
	code = strings.TrimSpace(code)
	if !ValidCode(code) {
		return catalog.FilmInput{}, ErrInvalidCode
	}
	in, ok := s.table[code]
	if !ok {
		return catalog.FilmInput{}, ErrNotFound
	}
	return in, nil
}
