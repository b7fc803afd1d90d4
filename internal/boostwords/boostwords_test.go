package boostwords

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"subfix/internal/services"
)

func TestLoad(t *testing.T) {
	input := "\ufeffKubernetes\n  etcd  \r\n\nkubernetes\nStraße\nSTRASSE\nPostgreSQL"
	got, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"Kubernetes", "etcd", "Straße", "PostgreSQL"}
	if !slices.Equal(got, want) {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestLoadEmpty(t *testing.T) {
	got, err := Load(strings.NewReader("\n \n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no words, got %q", got)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boost.txt")
	if err := os.WriteFile(path, []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !slices.Equal(got, []string{"one", "two"}) {
		t.Fatalf("got %q", got)
	}
	if _, err := LoadFile(path + ".missing"); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}
