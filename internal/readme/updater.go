// Package readme keeps the README of the backup repository in step with
// the catalog: a film count, quick stats and the most recently added
// films.
package readme

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/blackwell-systems/filmshelf/internal/catalog"
	"github.com/blackwell-systems/filmshelf/internal/github"
	"github.com/blackwell-systems/filmshelf/internal/views"
)

// FileName is the README path inside the backup repo.
const FileName = "README.md"

const (
	statsHeading  = "## Quick Stats"
	recentHeading = "## Recently Added"
)

// Updater manages README.md updates for the backup repository.
type Updater struct {
	gh    *github.Client
	owner string
	repo  string
	now   func() time.Time
}

// NewUpdater creates a new README updater.
func NewUpdater(gh *github.Client, owner, repo string) *Updater {
	return &Updater{
		gh:    gh,
		owner: owner,
		repo:  repo,
		now:   time.Now,
	}
}

// Update rewrites the README for films, creating it from Template when
// the repo has none. It reports whether a commit was made; an up to date
// README is left alone.
func (u *Updater) Update(films []catalog.Film) (bool, error) {
	data, sha, err := u.gh.GetFileContent(u.owner, u.repo, FileName, "")
	var content string
	switch {
	case errors.Is(err, github.ErrNotFound):
		content, sha = Template(u.repo), ""
	case err != nil:
		return false, fmt.Errorf("reading %s: %w", FileName, err)
	default:
		content = string(data)
	}

	next := Apply(ensureSections(content), films, u.now())
	if next == content {
		return false, nil
	}

	msg := fmt.Sprintf("filmshelf: update README (%d %s)", len(films), plural(len(films)))
	if _, err := u.gh.PutFileContent(u.owner, u.repo, FileName, []byte(next), sha, msg); err != nil {
		return false, fmt.Errorf("writing %s: %w", FileName, err)
	}
	return true, nil
}

// Template is the README written into a repo that has none.
func Template(repo string) string {
	return "# " + repo + "\n\n" +
		"Film catalog maintained by filmshelf: **0 films**.\n\n" +
		statsHeading + "\n\n" +
		recentHeading + "\n\n"
}

// ensureSections appends both managed sections to a README that has
// neither, such as the one GitHub writes for a new repo.
func ensureSections(content string) string {
	if strings.Contains(content, statsHeading) || strings.Contains(content, recentHeading) {
		return content
	}
	return strings.TrimRight(content, "\n") + "\n\n" + statsHeading + "\n\n" + recentHeading + "\n"
}

// Apply returns content with the film count, the Quick Stats section and
// the Recently Added section rewritten for films. Sections the README
// does not have are left out.
func Apply(content string, films []catalog.Film, now time.Time) string {
	content = updateStats(content, len(films))
	content = replaceSection(content, statsHeading, statsLines(views.Compute(films, now), now))
	content = replaceSection(content, recentHeading, recentLines(views.RecentAdditions(films, views.Limit)))
	return content
}

var countRe = regexp.MustCompile(`\*\*\d+ films?\*\*`)

// updateStats updates the inline "**N films**" count.
func updateStats(content string, count int) string {
	return countRe.ReplaceAllString(content, fmt.Sprintf("**%d %s**", count, plural(count)))
}

func plural(n int) string {
	if n == 1 {
		return "film"
	}
	return "films"
}

// replaceSection swaps the body under heading (up to the next "## "
// heading) for lines. Content without the heading is returned unchanged.
func replaceSection(content, heading string, lines []string) string {
	start := strings.Index(content, heading+"\n")
	if start == -1 {
		if !strings.HasSuffix(content, heading) {
			return content
		}
		start = len(content) - len(heading)
		content += "\n"
	}
	bodyStart := start + len(heading) + 1

	end := len(content)
	if next := strings.Index(content[bodyStart:], "\n## "); next != -1 {
		end = bodyStart + next + 1
	}

	body := "\n" + strings.Join(lines, "\n") + "\n"
	if end < len(content) {
		body += "\n"
	}
	return content[:bodyStart] + body + content[end:]
}

func statsLines(s views.Stats, now time.Time) []string {
	lines := []string{fmt.Sprintf("- **Films**: %d", s.Total)}
	if s.Total > 0 {
		lines = append(lines, fmt.Sprintf("- **Top Genre**: %s (%d)", s.TopGenre.Genre, s.TopGenre.Count))
	}
	return append(lines, "- **Last Updated**: "+now.Format("2006-01-02"))
}

func recentLines(films []catalog.Film) []string {
	if len(films) == 0 {
		return []string{"_No films yet._"}
	}
	lines := make([]string, len(films))
	for i, f := range films {
		lines[i] = entry(f)
	}
	return lines
}

// entry formats one film: "- **#17** Heat (1995) by Michael Mann | heist".
func entry(f catalog.Film) string {
	var b strings.Builder
	fmt.Fprintf(&b, "- **#%s** %s", f.IDNumber, f.Title)
	if f.Year != "" {
		fmt.Fprintf(&b, " (%s)", f.Year)
	}
	if f.Director != "" {
		b.WriteString(" by " + f.Director)
	}
	if f.Tags != "" {
		b.WriteString(" | " + f.Tags)
	}
	return b.String()
}
