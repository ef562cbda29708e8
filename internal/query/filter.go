// Package query filters, sorts and paginates an in-memory film list.
//
// Everything here except Engine is a pure function of its input: no
// function modifies the slice it is given, and none of them fail.
package query

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/filmshelf/internal/catalog"
)

// Facet is one filterable dimension of a film.
type Facet string

const (
	FacetGenre    Facet = "genre"
	FacetDirector Facet = "director"
	FacetYear     Facet = "year"
	FacetActor    Facet = "actor"
	FacetID       Facet = "id"
)

// Facets lists every facet in canonical order.
var Facets = []Facet{FacetGenre, FacetDirector, FacetYear, FacetActor, FacetID}

// ParseFacet converts a facet name to a Facet.
func ParseFacet(s string) (Facet, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	switch key {
	case "idnumber", "id_number", "id-number":
		key = string(FacetID)
	case "actors":
		key = string(FacetActor)
	}
	for _, f := range Facets {
		if string(f) == key {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown facet %q (want genre, director, year, actor or id)", s)
}

// value returns the single facet value of f. Actor is multi-valued and
// handled separately.
func (fc Facet) value(f catalog.Film) string {
	switch fc {
	case FacetGenre:
		return f.Genre
	case FacetDirector:
		return f.Director
	case FacetYear:
		return f.Year
	case FacetID:
		return f.IDNumber
	}
	return ""
}

// match reports whether f carries value for this facet.
func (fc Facet) match(f catalog.Film, value string) bool {
	if fc == FacetActor {
		for _, a := range f.ActorList() {
			if a == value {
				return true
			}
		}
		return false
	}
	return fc.value(f) == value
}

// FacetFilters holds at most one selected value per facet.
type FacetFilters map[Facet]string

// Set selects value for facet, replacing any earlier selection. An empty
// value clears the facet.
func (ff *FacetFilters) Set(facet Facet, value string) {
	if strings.TrimSpace(value) == "" {
		delete(*ff, facet)
		return
	}
	if *ff == nil {
		*ff = make(FacetFilters)
	}
	(*ff)[facet] = value
}

// Active returns the facets with a selected value, in canonical order.
func (ff FacetFilters) Active() []Facet {
	var out []Facet
	for _, f := range Facets {
		if _, ok := ff[f]; ok {
			out = append(out, f)
		}
	}
	return out
}

// Filter returns the films that satisfy every active facet.
func Filter(films []catalog.Film, ff FacetFilters) []catalog.Film {
	active := ff.Active()
	out := make([]catalog.Film, 0, len(films))
	for _, f := range films {
		ok := true
		for _, fc := range active {
			if !fc.match(f, ff[fc]) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, f)
		}
	}
	return out
}
