package ingest_test

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blackwell-systems/filmshelf/internal/github"
	"github.com/blackwell-systems/filmshelf/internal/ingest"
)

const csvDoc = "Title,Director,Actors,Genre,ID Number,Year,Tags\nHeat,Michael Mann,,Crime,BLU-007,1995,\nBroken\n"

func TestReader_Size(t *testing.T) {
	r := ingest.NewReader(strings.NewReader("hello, filmshelf"), 0)
	out, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "hello, filmshelf" || r.Size() != 16 {
		t.Errorf("read %q, Size() = %d", out, r.Size())
	}
}

func TestReader_Limit(t *testing.T) {
	r := ingest.NewReader(strings.NewReader(strings.Repeat("x", 100)), 10)
	_, err := io.ReadAll(r)
	if !errors.Is(err, ingest.ErrTooLarge) {
		t.Errorf("err = %v, want ErrTooLarge", err)
	}
}

func TestReadBulk_LocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "films.csv")
	if err := os.WriteFile(path, []byte(csvDoc), 0600); err != nil {
		t.Fatal(err)
	}
	src, err := ingest.Resolve(path, nil)
	if err != nil {
		t.Fatal(err)
	}
	if src.Name != "films.csv" || src.Size != int64(len(csvDoc)) {
		t.Errorf("Source = %q, %d", src.Name, src.Size)
	}
	res, n, err := ingest.ReadBulk(src)
	if err != nil {
		t.Fatal(err)
	}
	if n != int64(len(csvDoc)) {
		t.Errorf("read %d bytes", n)
	}
	if len(res.Films) != 1 || res.Films[0].Title != "Heat" || len(res.Skipped) != 1 {
		t.Errorf("ReadBulk = %+v", res)
	}
}

func TestReadBulk_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/films.csv" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = io.WriteString(w, csvDoc)
	}))
	defer srv.Close()

	src, err := ingest.Resolve(srv.URL+"/films.csv?dl=1", nil)
	if err != nil {
		t.Fatal(err)
	}
	if src.Name != "films.csv" {
		t.Errorf("Name = %q", src.Name)
	}
	res, _, err := ingest.ReadBulk(src)
	if err != nil || len(res.Films) != 1 {
		t.Errorf("ReadBulk = %+v, %v", res, err)
	}

	missing, _ := ingest.Resolve(srv.URL+"/nope.csv", nil)
	if _, _, err := ingest.ReadBulk(missing); err == nil {
		t.Error("expected error for 404")
	}
}

func TestReadBulk_GitHub(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repos/alice/films/contents/import/films.csv" || r.URL.Query().Get("ref") != "main" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"sha":      "abc",
			"encoding": "base64",
			"content":  base64.StdEncoding.EncodeToString([]byte(csvDoc)),
		})
	}))
	defer srv.Close()

	src, err := ingest.Resolve("github:alice/films@main:import/films.csv", github.New("tok", srv.URL))
	if err != nil {
		t.Fatal(err)
	}
	if src.Name != "films.csv" || src.Size != -1 {
		t.Errorf("Source = %q, %d", src.Name, src.Size)
	}
	res, _, err := ingest.ReadBulk(src)
	if err != nil || len(res.Films) != 1 {
		t.Errorf("ReadBulk = %+v, %v", res, err)
	}
}

func TestResolve_LocalFile_NotFound(t *testing.T) {
	_, err := ingest.Resolve("/no/such/file.csv", nil)
	if err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestResolve_LocalFile_IsDirectory(t *testing.T) {
	_, err := ingest.Resolve(t.TempDir(), nil)
	if err == nil {
		t.Error("expected error for directory input, got nil")
	}
}

func TestResolve_GitHubPath_BadFormat(t *testing.T) {
	_, err := ingest.Resolve("github:badformat", github.New("tok", ""))
	if err == nil {
		t.Error("expected error for malformed github: path, got nil")
	}
}

func TestResolve_GitHubPath_NoClient(t *testing.T) {
	_, err := ingest.Resolve("github:alice/films@main:films.csv", nil)
	if err == nil {
		t.Error("expected error without a GitHub client")
	}
}

func TestResolve_Stdin(t *testing.T) {
	src, err := ingest.Resolve("-", nil)
	if err != nil || src.Name != "stdin" {
		t.Errorf("Resolve(-) = %+v, %v", src, err)
	}
}
