package query

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/blackwell-systems/filmshelf/internal/catalog"
)

// SortKey names a library ordering.
type SortKey string

const (
	SortTitle         SortKey = "title"
	SortTitleDesc     SortKey = "titleDesc"
	SortYear          SortKey = "year"
	SortYearDesc      SortKey = "yearDesc"
	SortGenre         SortKey = "genre"
	SortIDNumber      SortKey = "idNumber"
	SortIDNumberDesc  SortKey = "idNumberDesc"
	SortDateAdded     SortKey = "dateAdded"
	SortDateAddedDesc SortKey = "dateAddedDesc"
)

// SortKeys lists every supported key.
var SortKeys = []SortKey{
	SortTitle, SortTitleDesc,
	SortYear, SortYearDesc,
	SortGenre,
	SortIDNumber, SortIDNumberDesc,
	SortDateAdded, SortDateAddedDesc,
}

// ParseSortKey matches s against the known keys, ignoring case.
func ParseSortKey(s string) (SortKey, error) {
	for _, k := range SortKeys {
		if strings.EqualFold(string(k), strings.TrimSpace(s)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown sort key %q", s)
}

// newCollator returns a root-locale collator. Collators keep scratch
// buffers, so each sort gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.Und)
}

// Sort returns a sorted copy of films. Films with equal keys keep their
// relative order. An unknown key returns the films in input order.
func Sort(films []catalog.Film, key SortKey) []catalog.Film {
	out := slices.Clone(films)
	if out == nil {
		out = []catalog.Film{}
	}
	cmp := comparator(key)
	if cmp == nil {
		return out
	}
	slices.SortStableFunc(out, cmp)
	return out
}

func comparator(key SortKey) func(a, b catalog.Film) int {
	switch key {
	case SortTitle, SortTitleDesc:
		c := newCollator()
		return direction(key == SortTitleDesc, func(a, b catalog.Film) int {
			return c.CompareString(a.Title, b.Title)
		})
	case SortGenre:
		c := newCollator()
		return func(a, b catalog.Film) int {
			return c.CompareString(a.Genre, b.Genre)
		}
	case SortYear, SortYearDesc:
		return direction(key == SortYearDesc, func(a, b catalog.Film) int {
			return strings.Compare(orZero(a.Year), orZero(b.Year))
		})
	case SortIDNumber, SortIDNumberDesc:
		return direction(key == SortIDNumberDesc, func(a, b catalog.Film) int {
			return strings.Compare(orZero(a.IDNumber), orZero(b.IDNumber))
		})
	case SortDateAdded, SortDateAddedDesc:
		return direction(key == SortDateAddedDesc, func(a, b catalog.Film) int {
			return addedAt(a).Compare(addedAt(b))
		})
	}
	return nil
}

func direction(desc bool, cmp func(a, b catalog.Film) int) func(a, b catalog.Film) int {
	if !desc {
		return cmp
	}
	return func(a, b catalog.Film) int { return cmp(b, a) }
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

// addedAt returns the film's DateAdded, or the zero time if it is
// missing or malformed.
func addedAt(f catalog.Film) time.Time {
	t, _ := f.AddedAt()
	return t
}
