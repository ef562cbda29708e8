package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidFilm is returned when a film lacks a title or catalog number.
var ErrInvalidFilm = errors.New("invalid film")

// Film is one entry in the catalog.
type Film struct {
	ID        string `yaml:"id" json:"id"`
	Title     string `yaml:"title" json:"title"`
	Director  string `yaml:"director,omitempty" json:"director,omitempty"`
	Actors    string `yaml:"actors,omitempty" json:"actors,omitempty"`
	Genre     string `yaml:"genre,omitempty" json:"genre,omitempty"`
	IDNumber  string `yaml:"id_number" json:"id_number"`
	Year      string `yaml:"year,omitempty" json:"year,omitempty"`
	Tags      string `yaml:"tags,omitempty" json:"tags,omitempty"`
	ImageURL  string `yaml:"image_url,omitempty" json:"image_url,omitempty"`
	DateAdded string `yaml:"date_added" json:"date_added"`
}

// FilmInput holds every user-editable field of a Film.
// ID and DateAdded are assigned by the store and never change.
type FilmInput struct {
	Title    string `json:"title"`
	Director string `json:"director,omitempty"`
	Actors   string `json:"actors,omitempty"`
	Genre    string `json:"genre,omitempty"`
	IDNumber string `json:"id_number"`
	Year     string `json:"year,omitempty"`
	Tags     string `json:"tags,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// SearchEntry is one executed search in the history.
type SearchEntry struct {
	ID          string `yaml:"id" json:"id"`
	Term        string `yaml:"term" json:"term"`
	ResultCount int    `yaml:"result_count" json:"result_count"`
	Timestamp   string `yaml:"timestamp" json:"timestamp"`
}

// Validate checks the fields every committed film must carry.
func (in FilmInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidFilm)
	}
	if strings.TrimSpace(in.IDNumber) == "" {
		return fmt.Errorf("%w: id number is required", ErrInvalidFilm)
	}
	return nil
}

// Apply returns f with every mutable field replaced by in.
func (in FilmInput) Apply(f Film) Film {
	f.Title = in.Title
	f.Director = in.Director
	f.Actors = in.Actors
	f.Genre = in.Genre
	f.IDNumber = in.IDNumber
	f.Year = in.Year
	f.Tags = in.Tags
	f.ImageURL = in.ImageURL
	return f
}

// Input returns the mutable fields of f.
func (f Film) Input() FilmInput {
	return FilmInput{
		Title:    f.Title,
		Director: f.Director,
		Actors:   f.Actors,
		Genre:    f.Genre,
		IDNumber: f.IDNumber,
		Year:     f.Year,
		Tags:     f.Tags,
		ImageURL: f.ImageURL,
	}
}

// AddedAt parses DateAdded. Records imported from elsewhere may carry
// garbage, so a parse failure is reported rather than returned as an error.
func (f Film) AddedAt() (time.Time, bool) {
	if f.DateAdded == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, f.DateAdded)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ActorList splits the comma-delimited Actors field.
func (f Film) ActorList() []string {
	var out []string
	for _, a := range strings.Split(f.Actors, ",") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

// FormatTime renders t the way DateAdded and Timestamp are stored.
func FormatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
