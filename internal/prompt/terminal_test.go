package prompt

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"subfix/internal/fixup"
	"subfix/internal/rules"
)

func proposal() fixup.Proposal {
	return fixup.Proposal{
		Rule:      rules.Rule{Index: 1, Pattern: "teh", Replacement: "the"},
		Line:      "I teh best",
		Suggested: "I the best",
	}
}

func newTestTerminal(input string, opts Options) (*Terminal, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	if opts.Color == "" {
		opts.Color = ColorNever
	}
	return NewTerminal(strings.NewReader(input), &out, &errOut, opts), &out, &errOut
}

func TestConfirmAnswers(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  fixup.Decision
	}{
		{name: "empty accepts", input: "\n", want: fixup.Accept()},
		{name: "y accepts", input: "y\n", want: fixup.Accept()},
		{name: "anything else accepts", input: "whatever\n", want: fixup.Accept()},
		{name: "N rejects", input: "N\n", want: fixup.Reject()},
		{name: "no rejects", input: "no\n", want: fixup.Reject()},
		{name: "edit with text", input: "e\nI am the best\n", want: fixup.Edit("I am the best")},
		{name: "edit keeps spaces", input: "E\n  padded  \r\n", want: fixup.Edit("  padded  ")},
		{name: "edit empty", input: "E\n\n", want: fixup.Edit("")},
		{name: "answer without newline", input: "n", want: fixup.Reject()},
		{name: "leading space accepts", input: " n\n", want: fixup.Accept()},
		{name: "leading tab before edit accepts", input: "\te\n", want: fixup.Accept()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			term, _, _ := newTestTerminal(tc.input, Options{})
			got, err := term.Confirm(context.Background(), proposal())
			if err != nil {
				t.Fatalf("Confirm returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestConfirmOutputFormat(t *testing.T) {
	term, out, _ := newTestTerminal("e\nfixed\n", Options{})
	if _, err := term.Confirm(context.Background(), proposal()); err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}
	want := "Applying rule teh -> the (flag: 0)\n" +
		" EXISTING: I teh best\n" +
		"SUGGESTED: I the best\n" +
		"[Yne] Enter desired line: "
	if out.String() != want {
		t.Fatalf("output mismatch\n got: %q\nwant: %q", out.String(), want)
	}
}

func TestConfirmShowsDiff(t *testing.T) {
	term, out, _ := newTestTerminal("\n", Options{ShowDiff: true})
	p := proposal()
	p.Line, p.Suggested = "colour", "color"
	if _, err := term.Confirm(context.Background(), p); err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}
	if !strings.Contains(out.String(), "  CHANGES: colo[-u-]r\n") {
		t.Fatalf("expected diff line, got %q", out.String())
	}
}

func TestConfirmEOF(t *testing.T) {
	term, _, _ := newTestTerminal("", Options{})
	if _, err := term.Confirm(context.Background(), proposal()); !errors.Is(err, ErrInputClosed) {
		t.Fatalf("expected ErrInputClosed, got %v", err)
	}

	term, _, _ = newTestTerminal("e\n", Options{})
	if _, err := term.Confirm(context.Background(), proposal()); !errors.Is(err, ErrInputClosed) {
		t.Fatalf("expected ErrInputClosed during edit, got %v", err)
	}
}

func TestConfirmCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	term, out, _ := newTestTerminal("\n", Options{})
	if _, err := term.Confirm(ctx, proposal()); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output after cancellation, got %q", out.String())
	}
}

func TestEditCopiesSuggestion(t *testing.T) {
	term, out, _ := newTestTerminal("e\nmine\n", Options{Clipboard: true})
	var copied string
	term.copyText = func(text string) error {
		copied = text
		return nil
	}
	got, err := term.Confirm(context.Background(), proposal())
	if err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}
	if copied != "I the best" {
		t.Fatalf("clipboard got %q", copied)
	}
	if got != fixup.Edit("mine") {
		t.Fatalf("unexpected decision %+v", got)
	}
	if !strings.Contains(out.String(), "copied to clipboard") {
		t.Fatalf("expected clipboard notice, got %q", out.String())
	}
}

func TestEditIgnoresClipboardFailure(t *testing.T) {
	term, out, _ := newTestTerminal("e\nmine\n", Options{Clipboard: true})
	term.copyText = func(string) error { return errors.New("no display") }
	got, err := term.Confirm(context.Background(), proposal())
	if err != nil {
		t.Fatalf("Confirm returned error: %v", err)
	}
	if got != fixup.Edit("mine") {
		t.Fatalf("unexpected decision %+v", got)
	}
	if strings.Contains(out.String(), "copied to clipboard") {
		t.Fatal("clipboard notice printed after failure")
	}
}

func TestReportInvalidRule(t *testing.T) {
	term, out, errOut := newTestTerminal("", Options{})
	term.ReportInvalidRule(rules.Rule{Pattern: "([a-"}, errors.New("missing closing ]"))
	if got := errOut.String(); got != "Regex error in rule ([a-; skipping: missing closing ]\n" {
		t.Fatalf("unexpected report %q", got)
	}
	if out.Len() != 0 {
		t.Fatalf("report leaked to stdout: %q", out.String())
	}
}

func TestTerminalDrivesEngine(t *testing.T) {
	term, _, errOut := newTestTerminal("\nn\n", Options{})
	table := []rules.Rule{
		{Index: 1, Pattern: "([a-", Replacement: "x"},
		{Index: 2, Pattern: "teh", Replacement: "the"},
	}
	got, _, err := fixup.ApplyRules(context.Background(), []string{"teh one", "teh two"}, table, term, fixup.WithReporter(term))
	if err != nil {
		t.Fatalf("ApplyRules returned error: %v", err)
	}
	if got[0] != "the one" || got[1] != "teh two" {
		t.Fatalf("got %q", got)
	}
	if strings.Count(errOut.String(), "Regex error in rule ([a-; skipping") != 2 {
		t.Fatalf("expected the invalid rule reported once per line, got %q", errOut.String())
	}
}
