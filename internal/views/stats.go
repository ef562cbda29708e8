package views

import (
	"fmt"
	"math"
	"time"

	"github.com/blackwell-systems/filmshelf/internal/catalog"
)

// Storage estimate constants.
const (
	BytesPerFilm    int64 = 2 * 1024 * 1024
	StorageCapacity int64 = 100 * 1024 * 1024 * 1024
)

const (
	uncategorized = "Uncategorized"
	noGenre       = "None"
)

// GenreCount is a genre and how many films carry it.
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// StorageEstimate approximates the space the collection's images take.
type StorageEstimate struct {
	Bytes   int64   `json:"bytes"`
	Percent float64 `json:"percent"`
	Human   string  `json:"human"`
}

// Stats summarizes the collection.
type Stats struct {
	Total              int             `json:"total"`
	DaysSinceLastAdded int             `json:"days_since_last_added"`
	TopGenre           GenreCount      `json:"top_genre"`
	Storage            StorageEstimate `json:"storage"`
	// Malformed counts films whose DateAdded did not parse.
	Malformed int `json:"malformed"`
}

// Compute derives Stats from films as of now. It never fails: malformed
// dates are skipped and counted.
func Compute(films []catalog.Film, now time.Time) Stats {
	if len(films) == 0 {
		return Stats{
			TopGenre: GenreCount{Genre: noGenre},
			Storage:  StorageEstimate{Human: "0 MB"},
		}
	}

	var (
		newest    time.Time
		found     bool
		malformed int
	)
	for _, f := range films {
		t, ok := f.AddedAt()
		if !ok {
			malformed++
			continue
		}
		if !found || t.After(newest) {
			newest, found = t, true
		}
	}
	days := 0
	if found {
		diff := now.Sub(newest)
		if diff < 0 {
			diff = -diff
		}
		days = int(math.Ceil(diff.Hours() / 24))
	}

	return Stats{
		Total:              len(films),
		DaysSinceLastAdded: days,
		TopGenre:           topGenre(films),
		Storage:            estimateStorage(len(films)),
		Malformed:          malformed,
	}
}

// topGenre scans left to right; a genre takes the lead only by passing
// the current leader, so ties go to whichever got there first.
func topGenre(films []catalog.Film) GenreCount {
	counts := make(map[string]int)
	best := GenreCount{Genre: noGenre}
	for _, f := range films {
		g := f.Genre
		if g == "" {
			g = uncategorized
		}
		counts[g]++
		if counts[g] > best.Count {
			best = GenreCount{Genre: g, Count: counts[g]}
		}
	}
	return best
}

func estimateStorage(n int) StorageEstimate {
	total := int64(n) * BytesPerFilm
	pct := float64(total) / float64(StorageCapacity) * 100
	return StorageEstimate{
		Bytes:   total,
		Percent: math.Round(pct*10) / 10,
		Human:   humanBytes(total),
	}
}

// humanBytes formats a size with one decimal, switching unit only once
// the size exceeds the next unit.
func humanBytes(b int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)
	switch {
	case b > gb:
		return fmt.Sprintf("%.1f GB", float64(b)/gb)
	case b > mb:
		return fmt.Sprintf("%.1f MB", float64(b)/mb)
	default:
		return fmt.Sprintf("%.1f KB", float64(b)/kb)
	}
}
