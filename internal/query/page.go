package query

import "github.com/blackwell-systems/filmshelf/internal/catalog"

// Paginate returns the first page*pageSize films, so each page includes
// every page before it. hasMore reports whether films remain beyond it.
// A page below 1 is treated as 1; a non-positive pageSize returns all.
func Paginate(films []catalog.Film, page, pageSize int) ([]catalog.Film, bool) {
	if pageSize <= 0 {
		return films, false
	}
	if page < 1 {
		page = 1
	}
	if page > (len(films)-1)/pageSize {
		return films, false
	}
	n := page * pageSize
	return films[:n:n], true
}
