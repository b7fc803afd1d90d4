package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewTeeHandlerCollapses(t *testing.T) {
	if _, ok := newTeeHandler(nil, nil).(NoopHandler); !ok {
		t.Fatal("expected NoopHandler when every handler is nil")
	}
	inner := slog.NewJSONHandler(&bytes.Buffer{}, nil)
	if h := newTeeHandler(nil, inner); h != inner {
		t.Fatal("expected a single handler to be returned unwrapped")
	}
}

func TestTeeHandlerRespectsEachLevel(t *testing.T) {
	var verbose, quiet bytes.Buffer
	h := newTeeHandler(
		slog.NewTextHandler(&verbose, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&quiet, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	logger := slog.New(h).With(slog.String("component", "test"))
	logger.Debug("detail")
	logger.Warn("heads up")

	if !strings.Contains(verbose.String(), "detail") || !strings.Contains(verbose.String(), "heads up") {
		t.Fatalf("verbose handler missing records: %q", verbose.String())
	}
	if strings.Contains(quiet.String(), "detail") || !strings.Contains(quiet.String(), "component=test") {
		t.Fatalf("quiet handler got %q", quiet.String())
	}
	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("tee should be enabled when any handler is")
	}
}

func TestFloorHandlerDropsBelowFloor(t *testing.T) {
	var buf bytes.Buffer
	h := withFloor(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}), slog.LevelError)
	logger := slog.New(h).WithGroup("g")
	logger.Warn("dropped")
	logger.Error("kept")
	if strings.Contains(buf.String(), "dropped") || !strings.Contains(buf.String(), "kept") {
		t.Fatalf("unexpected output %q", buf.String())
	}
	if withFloor(nil, slog.LevelInfo) != nil {
		t.Fatal("nil handler should stay nil")
	}
}

func TestNewEchoesWarningsWhenLoggingToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subfix.log")
	var echo bytes.Buffer
	logger, err := New(Options{Level: "info", Format: "json", OutputPaths: []string{path}, Echo: &echo})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("transcript cached")
	logger.Warn("rule skipped")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "transcript cached") || !strings.Contains(string(data), "rule skipped") {
		t.Fatalf("file log incomplete: %q", data)
	}
	if strings.Contains(echo.String(), "transcript cached") || !strings.Contains(echo.String(), "rule skipped") {
		t.Fatalf("echo should carry only warnings, got %q", echo.String())
	}
}
