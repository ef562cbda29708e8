package catalog_test

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/blackwell-systems/filmshelf/internal/catalog"
	"github.com/blackwell-systems/filmshelf/internal/github"
)

// fakeContents is a single-file GitHub contents API.
type fakeContents struct {
	mu   sync.Mutex
	data []byte
	sha  string
	puts int
}

func (f *fakeContents) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
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
		f.sha = string(rune('a' + f.puts))
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"content": map[string]string{"sha": f.sha},
		})
	}
}

func TestManager_LoadSave(t *testing.T) {
	fake := &fakeContents{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	m := catalog.NewManager(github.New("tok", srv.URL), "me", "shelf", "films.yml")
	if !m.Authenticated() {
		t.Fatal("Authenticated() = false")
	}

	films, err := m.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll(missing): %v", err)
	}
	if len(films) != 0 {
		t.Fatalf("LoadAll(missing) = %d films", len(films))
	}

	want := []catalog.Film{{ID: "1", Title: "Heat", IDNumber: "BLU-007"}}
	if err := m.SaveAll(want); err != nil {
		t.Fatalf("SaveAll create: %v", err)
	}
	want[0].Title = "Heat (1995)"
	if err := m.SaveAll(want); err != nil {
		t.Fatalf("SaveAll update: %v", err)
	}

	got, err := m.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Title != "Heat (1995)" {
		t.Errorf("LoadAll = %+v", got)
	}
}

func TestManager_SaveAllRecoversFromConflict(t *testing.T) {
	fake := &fakeContents{data: []byte("[]\n"), sha: "remote"}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	// No prior LoadAll, so the manager does not know the current SHA.
	m := catalog.NewManager(github.New("tok", srv.URL), "me", "shelf", "films.yml")
	if err := m.SaveAll([]catalog.Film{{ID: "1", Title: "Alien", IDNumber: "V-1"}}); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}
	if fake.puts != 1 {
		t.Errorf("puts = %d, want 1", fake.puts)
	}
}

func TestManager_NotAuthenticated(t *testing.T) {
	tests := []struct {
		name string
		m    *catalog.Manager
	}{
		{"no token", catalog.NewManager(github.New("", ""), "me", "shelf", "films.yml")},
		{"no owner", catalog.NewManager(github.New("tok", ""), "", "shelf", "films.yml")},
		{"no client", catalog.NewManager(nil, "me", "shelf", "films.yml")},
	}
	for _, tt := range tests {
		if tt.m.Authenticated() {
			t.Errorf("%s: Authenticated() = true", tt.name)
		}
	}
}
