package tui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/blackwell-systems/filmshelf/internal/catalog"
)

// ErrNoFilms is returned when the browser is asked to show an empty list.
var ErrNoFilms = errors.New("no films to display")

// BrowserAction represents an action requested from the browser
type BrowserAction string

const (
	ActionNone        BrowserAction = ""
	ActionShowDetails BrowserAction = "details"
	ActionEdit        BrowserAction = "edit"
	ActionDelete      BrowserAction = "delete"
)

// BrowserResult holds the result of a browser session
type BrowserResult struct {
	Action BrowserAction
	Film   *catalog.Film
}

// BrowserModel is the bubbletea model of the film browser.
type BrowserModel struct {
	list        list.Model
	keys        browserKeys
	width       int
	height      int
	showDetails bool
	activeCmd   string
	quitting    bool
	action      BrowserAction
	selected    *catalog.Film
}

// NewBrowser builds a browser over films, shown in the given order.
func NewBrowser(title string, films []catalog.Film) BrowserModel {
	items := make([]list.Item, len(films))
	for i, f := range films {
		items[i] = FilmItem{Film: f}
	}

	k := newBrowserKeys()
	l := list.New(items, filmDelegate{}, 0, 0)
	l.Title = title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("film", "films")
	l.Styles.Title = StyleHeader
	l.Styles.PaginationStyle = StyleHelp
	l.Styles.HelpStyle = StyleHelp
	l.AdditionalShortHelpKeys = k.ShortHelp
	l.AdditionalFullHelpKeys = k.FullHelp

	return BrowserModel{list: l, keys: k, showDetails: true}
}

func (m BrowserModel) Init() tea.Cmd {
	return nil
}

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ClearActiveCmdMsg:
		m.activeCmd = ""
		return m, nil

	case tea.KeyMsg:
		// Don't handle keys when filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Details):
			m.showDetails = !m.showDetails
			m.resize()
			m.activeCmd = "tab"
			return m, HighlightCmd()

		case key.Matches(msg, m.keys.Select):
			return m.finish(ActionShowDetails)

		case key.Matches(msg, m.keys.Edit):
			return m.finish(ActionEdit)

		case key.Matches(msg, m.keys.Delete):
			return m.finish(ActionDelete)
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// finish records action on the selected film and quits. With nothing
// selected the key is ignored.
func (m BrowserModel) finish(action BrowserAction) (tea.Model, tea.Cmd) {
	item, ok := m.list.SelectedItem().(FilmItem)
	if !ok {
		return m, nil
	}
	f := item.Film
	m.action = action
	m.selected = &f
	m.quitting = true
	return m, tea.Quit
}

// resize fits the list into the frame, leaving room for the details pane.
func (m *BrowserModel) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	innerWidth, innerHeight := m.innerSize()
	listWidth := innerWidth
	if m.showDetails {
		listWidth = innerWidth - detailsWidth(innerWidth) - 1
	}
	// divider and footer
	m.list.SetSize(listWidth, innerHeight-2)
}

// Result reports what the user chose.
func (m BrowserModel) Result() *BrowserResult {
	return &BrowserResult{Action: m.action, Film: m.selected}
}

// RunListBrowser launches an interactive film browser.
// Returns the action and selected film, or error if there was a problem.
func RunListBrowser(title string, films []catalog.Film) (*BrowserResult, error) {
	if len(films) == 0 {
		return nil, ErrNoFilms
	}

	p := tea.NewProgram(NewBrowser(title, films), tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running TUI: %w", err)
	}

	if fm, ok := finalModel.(BrowserModel); ok {
		return fm.Result(), nil
	}

	return &BrowserResult{Action: ActionNone}, nil
}
