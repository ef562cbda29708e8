package readme

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/blackwell-systems/filmshelf/internal/catalog"
	"github.com/blackwell-systems/filmshelf/internal/github"
)

var day = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func films() []catalog.Film {
	return []catalog.Film{
		{ID: "b", Title: "Heat", Director: "Michael Mann", Genre: "Crime", IDNumber: "17", Year: "1995",
			Tags: "heist", DateAdded: catalog.FormatTime(day.Add(-time.Hour))},
		{ID: "a", Title: "Alien", Genre: "Horror", IDNumber: "4", DateAdded: catalog.FormatTime(day.Add(-48 * time.Hour))},
	}
}

func TestUpdateStats(t *testing.T) {
	cases := []struct {
		name    string
		content string
		count   int
		want    string
	}{
		{"plural to plural", "# My Films\n\n**5 films** in this repo", 8, "**8 films**"},
		{"plural to singular", "**5 films** in this repo", 1, "**1 film**"},
		{"singular to plural", "**1 film** in this repo", 3, "**3 films**"},
		{"zero", "**1 film**", 0, "**0 films**"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := updateStats(c.content, c.count); !strings.Contains(got, c.want) {
				t.Errorf("got %q, want it to contain %q", got, c.want)
			}
		})
	}
}

func TestUpdateStats_NoMatch(t *testing.T) {
	content := "No stats here"
	if got := updateStats(content, 5); got != content {
		t.Errorf("expected unchanged content, got %q", got)
	}
}

func TestReplaceSection(t *testing.T) {
	cases := []struct {
		name    string
		content string
		want    string
	}{
		{
			"middle section",
			"# R\n\n## A\n\nold\nolder\n\n## B\n\nkeep\n",
			"# R\n\n## A\n\nnew\n\n## B\n\nkeep\n",
		},
		{
			"last section",
			"# R\n\n## A\n\nold\n",
			"# R\n\n## A\n\nnew\n",
		},
		{
			"empty section",
			"## A\n\n## B\n",
			"## A\n\nnew\n\n## B\n",
		},
		{
			"heading at end of file",
			"# R\n\n## A",
			"# R\n\n## A\n\nnew\n",
		},
		{
			"subheadings stay in the section",
			"## A\n\nold\n### sub\nmore\n",
			"## A\n\nnew\n",
		},
		{
			"missing heading",
			"# R\n\n## B\n\nkeep\n",
			"# R\n\n## B\n\nkeep\n",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := replaceSection(c.content, "## A", []string{"new"}); got != c.want {
				t.Errorf("got %q, want %q", got, c.want)
			}
		})
	}
}

func TestApply(t *testing.T) {
	got := Apply(Template("films"), films(), day)

	for _, want := range []string{
		"**2 films**",
		"- **Films**: 2",
		"- **Top Genre**: Crime (1)",
		"- **Last Updated**: 2026-03-10",
		"- **#17** Heat (1995) by Michael Mann | heist\n- **#4** Alien\n",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("README missing %q:\n%s", want, got)
		}
	}
	if strings.Index(got, statsHeading) > strings.Index(got, recentHeading) {
		t.Error("sections reordered")
	}

	if again := Apply(got, films(), day); again != got {
		t.Errorf("Apply is not idempotent:\n%s\n---\n%s", got, again)
	}
}

func TestApply_Empty(t *testing.T) {
	got := Apply(Template("films"), nil, day)
	if !strings.Contains(got, "_No films yet._") || strings.Contains(got, "Top Genre") {
		t.Errorf("empty README:\n%s", got)
	}
}

func TestApply_KeepsUserContent(t *testing.T) {
	content := "# My films\n\nIntro written by hand.\n\n" + recentHeading + "\n\n- stale\n\n## Notes\n\nDo not touch.\n"
	got := Apply(content, films(), day)
	if !strings.Contains(got, "Intro written by hand.") || !strings.Contains(got, "## Notes\n\nDo not touch.\n") {
		t.Errorf("user content lost:\n%s", got)
	}
	if strings.Contains(got, "stale") {
		t.Error("old entries not replaced")
	}
}

// fakeReadme serves one file over the GitHub contents API.
type fakeReadme struct {
	mu   sync.Mutex
	data []byte
	sha  string
	puts int
	msg  string
}

func (f *fakeReadme) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !strings.HasSuffix(r.URL.Path, "/repos/alice/films/contents/README.md") {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	switch r.Method {
	case http.MethodGet:
		if f.data == nil {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"sha":      f.sha,
			"encoding": "base64",
			"content":  base64.StdEncoding.EncodeToString(f.data),
		})
	case http.MethodPut:
		var req struct {
			Message string `json:"message"`
			Content string `json:"content"`
			SHA     string `json:"sha"`
		}
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &req)
		if req.SHA != f.sha {
			w.WriteHeader(http.StatusConflict)
			return
		}
		f.data, _ = base64.StdEncoding.DecodeString(req.Content)
		f.puts++
		f.msg = req.Message
		f.sha = strings.Repeat("s", f.puts)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content": map[string]string{"sha": f.sha},
		})
	}
}

func newTestUpdater(t *testing.T, fake *fakeReadme) *Updater {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	u := NewUpdater(github.New("token", srv.URL), "alice", "films")
	u.now = func() time.Time { return day }
	return u
}

func TestUpdater_CreatesMissingReadme(t *testing.T) {
	fake := &fakeReadme{}
	u := newTestUpdater(t, fake)

	changed, err := u.Update(films())
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !changed || fake.puts != 1 {
		t.Fatalf("changed=%v puts=%d, want one commit", changed, fake.puts)
	}
	if !strings.HasPrefix(string(fake.data), "# films\n") || !strings.Contains(string(fake.data), "**2 films**") {
		t.Errorf("README:\n%s", fake.data)
	}
	if fake.msg != "filmshelf: update README (2 films)" {
		t.Errorf("commit message = %q", fake.msg)
	}

	// Nothing changed: no second commit.
	changed, err = u.Update(films())
	if err != nil {
		t.Fatalf("second Update: %v", err)
	}
	if changed || fake.puts != 1 {
		t.Errorf("changed=%v puts=%d, want no new commit", changed, fake.puts)
	}
}

func TestUpdater_UpdatesExisting(t *testing.T) {
	fake := &fakeReadme{
		data: []byte("# Shelf\n\n**1 film** so far.\n\n" + recentHeading + "\n\n- **#1** Old\n"),
		sha:  "s0",
	}
	u := newTestUpdater(t, fake)

	if _, err := u.Update(films()[:1]); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got := string(fake.data)
	if !strings.Contains(got, "**1 film** so far.") || !strings.Contains(got, "- **#17** Heat") || strings.Contains(got, "Old") {
		t.Errorf("README:\n%s", got)
	}
}

func TestUpdater_ReadError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	u := NewUpdater(github.New("bad", srv.URL), "alice", "films")
	if _, err := u.Update(films()); err == nil {
		t.Error("expected error for unauthorized read")
	}
}

func TestUpdater_AddsSectionsToPlainReadme(t *testing.T) {
	fake := &fakeReadme{data: []byte("# films\n"), sha: "s0"}
	u := newTestUpdater(t, fake)

	changed, err := u.Update(films())
	if err != nil || !changed {
		t.Fatalf("Update: changed=%v err=%v", changed, err)
	}
	got := string(fake.data)
	if !strings.HasPrefix(got, "# films\n\n"+statsHeading) || !strings.Contains(got, recentHeading+"\n\n- **#17** Heat") {
		t.Errorf("README:\n%s", got)
	}
}
