package rules

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subfix/internal/services"
)

func TestLoadParsesRowsInOrder(t *testing.T) {
	input := "match,replace,flags\n" +
		"colour,color,0\n" +
		"\"um, \",,2\n" +
		"(\\w+) (\\w+),\\2 \\1,\n"

	got, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	want := []Rule{
		{Index: 1, Pattern: "colour", Replacement: "color", Flags: 0},
		{Index: 2, Pattern: "um, ", Replacement: "", Flags: 2},
		{Index: 3, Pattern: `(\w+) (\w+)`, Replacement: `\2 \1`, Flags: 0},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d rules, got %d: %#v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rule %d = %#v, want %#v", i, got[i], want[i])
		}
	}
}

func TestLoadHeaderHandling(t *testing.T) {
	input := "\ufeffnotes, replace ,match\n" +
		"ignored,B,a\n"

	got, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(got))
	}
	if got[0].Pattern != "a" || got[0].Replacement != "B" || got[0].Flags != 0 {
		t.Fatalf("unexpected rule %#v", got[0])
	}
}

func TestLoadDefaultsFlags(t *testing.T) {
	input := "match,replace,flags\n" +
		"a,b,abc\n" +
		"c,d, 8 \n" +
		"e,f,-4\n" +
		"g\n"

	got, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	wantFlags := []int{0, 8, 0, 0}
	if len(got) != len(wantFlags) {
		t.Fatalf("expected %d rules, got %d", len(wantFlags), len(got))
	}
	for i, flags := range wantFlags {
		if got[i].Flags != flags {
			t.Fatalf("rule %d flags = %d, want %d", i+1, got[i].Flags, flags)
		}
	}
	if got[3].Replacement != "" {
		t.Fatalf("short row should read missing replacement as empty, got %q", got[3].Replacement)
	}
}

func TestLoadSkipsBlankRows(t *testing.T) {
	input := "match,replace,flags\n\n,,\na,b,0\n"
	got, err := Load(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(got) != 1 || got[0].Index != 1 {
		t.Fatalf("expected a single rule with index 1, got %#v", got)
	}
}

func TestLoadFatalErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "missing match", input: "replace,flags\nx,0\n"},
		{name: "missing replace", input: "match,flags\nx,0\n"},
		{name: "broken quoting", input: "match,replace,flags\n\"open,b,0\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tc.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, services.ErrConfiguration) {
				t.Fatalf("expected configuration error, got %v", err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "subtitle-fixup.csv")
	if err := os.WriteFile(path, []byte("match,replace,flags\nteh,the,0\n"), 0o644); err != nil {
		t.Fatalf("write rules: %v", err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if len(got) != 1 || got[0].Pattern != "teh" {
		t.Fatalf("unexpected rules %#v", got)
	}

	_, err = LoadFile(filepath.Join(dir, "missing.csv"))
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error for missing file, got %v", err)
	}
}

func TestRuleString(t *testing.T) {
	rule := Rule{Pattern: "colour", Replacement: "color", Flags: 2}
	if got := rule.String(); got != "colour -> color (flag: 2)" {
		t.Fatalf("String() = %q", got)
	}
}
