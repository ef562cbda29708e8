package query

import (
	"strings"

	"github.com/blackwell-systems/filmshelf/internal/catalog"
)

// Matches reports whether term occurs, ignoring case, in the film's title,
// director, actors, genre or tags.
func Matches(f catalog.Film, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return false
	}
	return strings.Contains(haystack(f), term)
}

func haystack(f catalog.Film) string {
	return strings.ToLower(f.Title + " " + f.Director + " " + f.Actors + " " + f.Genre + " " + f.Tags)
}

// Search returns the films matching term, in source order. A blank term
// returns no films rather than all of them.
func Search(films []catalog.Film, term string) []catalog.Film {
	term = strings.ToLower(strings.TrimSpace(term))
	out := []catalog.Film{}
	if term == "" {
		return out
	}
	for _, f := range films {
		if strings.Contains(haystack(f), term) {
			out = append(out, f)
		}
	}
	return out
}

// Query combines an optional search term, facet selections and a sort.
type Query struct {
	Term   string
	Facets FacetFilters
	Sort   SortKey
}

// Apply runs q over films. Unlike Search, an empty term places no
// constraint on the result.
func Apply(films []catalog.Film, q Query) []catalog.Film {
	out := films
	if strings.TrimSpace(q.Term) != "" {
		out = Search(out, q.Term)
	}
	out = Filter(out, q.Facets)
	if q.Sort != "" {
		out = Sort(out, q.Sort)
	}
	return out
}
