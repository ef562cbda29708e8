package ingest

import "testing"

func TestGuessFilenameFromURL_Simple(t *testing.T) {
	got := guessFilenameFromURL("https://example.com/films/heat.csv")
	if got != "heat.csv" {
		t.Errorf("got %q, want %q", got, "heat.csv")
	}
}

func TestGuessFilenameFromURL_WithQueryString(t *testing.T) {
	got := guessFilenameFromURL("https://example.com/films.csv?token=abc123")
	if got != "films.csv" {
		t.Errorf("got %q, want %q", got, "films.csv")
	}
}

func TestGuessFilenameFromURL_TrailingSlash(t *testing.T) {
	got := guessFilenameFromURL("https://example.com/")
	// filepath.Base strips trailing slash, returns host as last component
	if got == "" || got == "." || got == "/" {
		t.Errorf("got %q, want non-empty fallback", got)
	}
}

func TestGuessFilenameFromURL_NoPath(t *testing.T) {
	got := guessFilenameFromURL("https://example.com")
	if got == "" || got == "." || got == "/" {
		t.Errorf("got %q, want non-empty fallback", got)
	}
}
