package app

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/blackwell-systems/filmshelf/internal/catalog"
	"github.com/blackwell-systems/filmshelf/internal/query"
	"github.com/blackwell-systems/filmshelf/internal/store"
	"github.com/blackwell-systems/filmshelf/internal/util"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// filmFlags binds one flag per editable film field.
type filmFlags struct {
	in catalog.FilmInput
}

func (f *filmFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.in.Title, "title", "", "Film title")
	cmd.Flags().StringVar(&f.in.Director, "director", "", "Director")
	cmd.Flags().StringVar(&f.in.Actors, "actors", "", "Comma-separated cast list")
	cmd.Flags().StringVar(&f.in.Genre, "genre", "", "Genre")
	cmd.Flags().StringVar(&f.in.IDNumber, "id-number", "", "Catalog number on the shelf")
	cmd.Flags().StringVar(&f.in.Year, "year", "", "Release year")
	cmd.Flags().StringVar(&f.in.Tags, "tags", "", "Comma-separated tags")
	cmd.Flags().StringVar(&f.in.ImageURL, "image", "", "Poster image URL")
}

// overlay copies every flag the user actually set onto base.
func (f *filmFlags) overlay(cmd *cobra.Command, base catalog.FilmInput) (catalog.FilmInput, bool) {
	changed := false
	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = strings.TrimSpace(v)
			changed = true
		}
	}
	set("title", &base.Title, f.in.Title)
	set("director", &base.Director, f.in.Director)
	set("actors", &base.Actors, f.in.Actors)
	set("genre", &base.Genre, f.in.Genre)
	set("id-number", &base.IDNumber, f.in.IDNumber)
	set("year", &base.Year, f.in.Year)
	set("tags", &base.Tags, f.in.Tags)
	set("image", &base.ImageURL, f.in.ImageURL)
	return base, changed
}

// queryFlags binds the facet filter and sort flags shared by list-like
// commands.
type queryFlags struct {
	filters []string
	sort    string
}

func (q *queryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&q.filters, "filter", "f", nil,
		"Facet filter as facet=value (genre, director, year, actor, id); repeatable")
	cmd.Flags().StringVarP(&q.sort, "sort", "s", "",
		"Sort order: "+sortKeyList()+" (default: library.default_sort)")
}

func (q *queryFlags) build() (query.Query, error) {
	ff, err := parseFilters(q.filters)
	if err != nil {
		return query.Query{}, err
	}
	key := defaultSort()
	if q.sort != "" {
		if key, err = query.ParseSortKey(q.sort); err != nil {
			return query.Query{}, fmt.Errorf("%w (want one of %s)", err, sortKeyList())
		}
	}
	return query.Query{Facets: ff, Sort: key}, nil
}

// parseFilters turns facet=value pairs into FacetFilters. A later pair for
// the same facet wins; an empty value clears it.
func parseFilters(pairs []string) (query.FacetFilters, error) {
	ff := query.FacetFilters{}
	for _, pair := range pairs {
		name, value, found := strings.Cut(pair, "=")
		if !found {
			return nil, fmt.Errorf("filter %q: want facet=value", pair)
		}
		facet, err := query.ParseFacet(name)
		if err != nil {
			return nil, err
		}
		ff.Set(facet, value)
	}
	return ff, nil
}

func sortKeyList() string {
	keys := make([]string, len(query.SortKeys))
	for i, k := range query.SortKeys {
		keys[i] = string(k)
	}
	return strings.Join(keys, ", ")
}

// defaultSort is the configured library order, or title order when the
// config names an unknown key.
func defaultSort() query.SortKey {
	if cfg != nil {
		if key, err := query.ParseSortKey(cfg.Library.DefaultSort); err == nil {
			return key
		}
	}
	return query.SortTitle
}

// resolveFilm finds a film by full ID, or by an unambiguous ID prefix or
// suffix of at least four characters. Listings print the suffix.
func resolveFilm(ref string) (catalog.Film, error) {
	ref = strings.TrimSpace(ref)
	if f, found := st.Get(ref); found {
		return f, nil
	}
	if len(ref) < 4 {
		return catalog.Film{}, fmt.Errorf("%w: %s", store.ErrNotFound, ref)
	}
	var matches []catalog.Film
	for _, f := range st.Films() {
		if strings.HasPrefix(f.ID, ref) || strings.HasSuffix(f.ID, ref) {
			matches = append(matches, f)
		}
	}
	switch len(matches) {
	case 0:
		return catalog.Film{}, fmt.Errorf("%w: %s", store.ErrNotFound, ref)
	case 1:
		return matches[0], nil
	default:
		return catalog.Film{}, fmt.Errorf("id %q matches %d films", ref, len(matches))
	}
}

// printFilms writes one aligned line per film.
func printFilms(w io.Writer, films []catalog.Film) {
	for _, f := range films {
		meta := ""
		if f.Year != "" {
			meta += " " + color.GreenString("("+f.Year+")")
		}
		if f.Genre != "" {
			meta += " " + color.CyanString("["+f.Genre+"]")
		}
		fmt.Fprintf(w, "  %-8s  %s%s  %s\n",
			color.WhiteString(f.IDNumber),
			f.Title,
			meta,
			color.HiBlackString(shortID(f.ID)),
		)
	}
}

// shortID is the last group of the ID. The leading groups of a UUIDv7 are
// its timestamp, which films added together share; the last group is random.
func shortID(id string) string {
	if i := strings.LastIndexByte(id, '-'); i >= 0 && len(id)-i-1 >= 4 {
		return id[i+1:]
	}
	return id
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// confirm asks a yes/no question on the terminal. Without a terminal it
// returns false so destructive commands need an explicit --yes.
func confirm(prompt string) bool {
	if !util.IsInputTTY() {
		return false
	}
	fmt.Printf("%s (y/N): ", prompt)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// formatStamp renders a stored RFC 3339 time in local time, or the raw
// string when it does not parse.
func formatStamp(s string) string {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return s
	}
	return t.Local().Format("2006-01-02 15:04")
}
