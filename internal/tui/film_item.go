package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"

	"github.com/blackwell-systems/filmshelf/internal/catalog"
)

// FilmItem wraps a film for the list browser.
type FilmItem struct {
	Film catalog.Film
}

// FilterValue returns a string used for filtering in the list
func (f FilmItem) FilterValue() string {
	return strings.Join([]string{
		f.Film.Title, f.Film.Director, f.Film.Actors,
		f.Film.Genre, f.Film.IDNumber, f.Film.Year, f.Film.Tags,
	}, " ")
}

// Title and Description satisfy list.DefaultItem so the filter and status
// bar can describe the item.
func (f FilmItem) Title() string { return f.Film.Title }

func (f FilmItem) Description() string {
	return strings.TrimSpace(f.Film.Director + " " + f.Film.Year)
}

type filmDelegate struct{}

func (d filmDelegate) Height() int  { return 1 }
func (d filmDelegate) Spacing() int { return 0 }
func (d filmDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd {
	return nil
}

func (d filmDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	fi, ok := item.(FilmItem)
	if !ok {
		return
	}
	_, _ = fmt.Fprint(w, renderFilmLine(fi.Film, index == m.Index(), m.Width()))
}

// renderFilmLine draws one row: catalog number, title, year and genre,
// cut to width when width is positive.
func renderFilmLine(f catalog.Film, selected bool, width int) string {
	idStr := fmt.Sprintf("%-8s", f.IDNumber)

	meta := ""
	if f.Year != "" {
		meta += " " + StyleYear.Render("("+f.Year+")")
	}
	if f.Genre != "" {
		meta += " " + StyleGenre.Render("["+f.Genre+"]")
	}

	var line string
	if selected {
		line = StyleHighlight.Render("› "+idStr+" "+f.Title) + meta
	} else {
		line = "  " + StyleNormal.Render(idStr) + " " + f.Title + meta
	}
	if width > 0 {
		line = xansi.Truncate(line, width, "…")
	}
	return line
}

// truncateText cuts s to maxWidth display cells.
func truncateText(s string, maxWidth int) string {
	return xansi.Truncate(s, maxWidth, "…")
}
