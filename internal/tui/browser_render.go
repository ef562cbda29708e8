package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/blackwell-systems/filmshelf/internal/catalog"
)

const (
	outerPadX = 4
	outerPadY = 2
	minInnerW = 60
	minInnerH = 10
)

// innerSize is the space inside the outer padding and the frame border.
func (m BrowserModel) innerSize() (int, int) {
	w := m.width - outerPadX*2 - 2
	h := m.height - outerPadY*2 - 2
	if w < minInnerW {
		w = minInnerW
	}
	if h < minInnerH {
		h = minInnerH
	}
	return w, h
}

// detailsWidth is 40% of the inner width, never below 30 columns.
func detailsWidth(innerWidth int) int {
	w := innerWidth * 4 / 10
	if w < 30 {
		w = 30
	}
	return w
}

func (m BrowserModel) renderDetailsPane(width int) string {
	item, ok := m.list.SelectedItem().(FilmItem)
	if !ok {
		return ""
	}
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		Render(RenderDetails(item.Film, width-2))
}

// RenderDetails lays out every field of f, values cut to fit width.
func RenderDetails(f catalog.Film, width int) string {
	const labelWidth = 10 // "ID Number:"
	maxText := width - labelWidth - 1
	if maxText < 10 {
		maxText = 10
	}

	var s strings.Builder
	s.WriteString(StyleHeader.Render("Film Details"))
	s.WriteString("\n\n")

	field := func(label, value string) {
		if value == "" {
			return
		}
		s.WriteString(StyleHighlight.Render(label + ": "))
		s.WriteString(truncateText(value, maxText))
		s.WriteString("\n")
	}

	field("Title", f.Title)
	field("Director", f.Director)
	field("Year", f.Year)
	field("Genre", f.Genre)
	field("ID Number", f.IDNumber)

	if actors := f.ActorList(); len(actors) > 0 {
		s.WriteString(StyleHighlight.Render("Actors: "))
		s.WriteString("\n")
		for _, a := range actors {
			s.WriteString("  " + truncateText(a, maxText) + "\n")
		}
	}

	if f.Tags != "" {
		s.WriteString(StyleHighlight.Render("Tags: "))
		s.WriteString("\n")
		for _, t := range strings.Split(f.Tags, ",") {
			if t = strings.TrimSpace(t); t == "" {
				continue
			}
			pill := lipgloss.NewStyle().
				Background(ColorTealDim).Foreground(ColorTealLight).
				Padding(0, 1).Render(t)
			s.WriteString(pill + " ")
		}
		s.WriteString("\n")
	}

	field("Image", f.ImageURL)
	if t, ok := f.AddedAt(); ok {
		field("Added", t.Local().Format("2006-01-02 15:04"))
	} else {
		field("Added", f.DateAdded)
	}
	return strings.TrimRight(s.String(), "\n")
}

// renderFooter creates a footer with all available keyboard shortcuts.
// The shortcut matching activeCmd is rendered with StyleHighlight.
func (m BrowserModel) renderFooter() string {
	return RenderFooterBar([]ShortcutEntry{
		{Key: "", Label: "↑/↓ navigate"},
		{Key: "/", Label: "/ filter"},
		{Key: "", Label: "enter details"},
		{Key: "e", Label: "e edit"},
		{Key: "d", Label: "d delete"},
		{Key: "tab", Label: "tab detail toggle"},
		{Key: "", Label: "q quit"},
	}, m.activeCmd)
}

func (m BrowserModel) View() string {
	if m.quitting {
		return ""
	}

	outerStyle := lipgloss.NewStyle().Padding(outerPadY, outerPadX)
	masterStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorTeal).
		Padding(0)

	innerWidth, innerHeight := m.innerSize()
	if m.width > 0 && m.height > 0 {
		masterStyle = masterStyle.Width(innerWidth).Height(innerHeight)
	}

	mainContent := m.list.View()
	if m.showDetails {
		listStyle := lipgloss.NewStyle().
			BorderRight(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(ColorTeal)
		mainContent = lipgloss.JoinHorizontal(
			lipgloss.Top,
			listStyle.Render(mainContent),
			m.renderDetailsPane(detailsWidth(innerWidth)),
		)
	}

	divider := lipgloss.NewStyle().
		Foreground(ColorTeal).
		Width(innerWidth).
		Render(strings.Repeat("─", innerWidth))

	content := lipgloss.JoinVertical(lipgloss.Left, mainContent, divider, m.renderFooter())
	return outerStyle.Render(masterStyle.Render(content))
}
