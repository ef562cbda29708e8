package logging_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blackwell-systems/filmshelf/internal/config"
	"github.com/blackwell-systems/filmshelf/internal/logging"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelWarn,
		"verbose": slog.LevelWarn,
	}
	for in, want := range tests {
		if got := logging.ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetup_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "filmshelf.log")
	logger, err := logging.Setup(&config.LogConfig{Level: "info", File: path})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	logger.Debug("hidden")
	logger.Info("sync failed", "films", 3)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if strings.Contains(out, "hidden") {
		t.Error("debug record written at info level")
	}
	if !strings.Contains(out, `"msg":"sync failed"`) || !strings.Contains(out, `"films":3`) {
		t.Errorf("log output = %s", out)
	}
}

func TestOrNull(t *testing.T) {
	if logging.OrNull(nil) == nil {
		t.Fatal("OrNull(nil) returned nil")
	}
	l := slog.Default()
	if logging.OrNull(l) != l {
		t.Error("OrNull replaced a non-nil logger")
	}
}
