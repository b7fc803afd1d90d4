package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/atotto/clipboard"

	"subfix/internal/fixup"
	"subfix/internal/logging"
	"subfix/internal/rules"
)

// ErrInputClosed is returned when the operator's input ends before an answer
// is read.
var ErrInputClosed = errors.New("prompt: input closed")

// Options controls how the terminal prompt renders.
type Options struct {
	// Color is one of auto, always, never.
	Color     string
	ShowDiff  bool
	Clipboard bool
	Logger    *slog.Logger
}

// Terminal asks the operator about each proposal over a line-oriented
// reader/writer pair. It implements fixup.Confirmer and fixup.Reporter.
type Terminal struct {
	reader    *bufio.Reader
	out       io.Writer
	errOut    io.Writer
	colorize  bool
	showDiff  bool
	clipboard bool
	copyText  func(string) error
	logger    *slog.Logger
}

// NewTerminal builds a prompt reading answers from in. Proposals go to out
// and invalid-rule reports to errOut.
func NewTerminal(in io.Reader, out, errOut io.Writer, opts Options) *Terminal {
	if errOut == nil {
		errOut = out
	}
	return &Terminal{
		reader:    bufio.NewReader(in),
		out:       out,
		errOut:    errOut,
		colorize:  ResolveColor(opts.Color, out),
		showDiff:  opts.ShowDiff,
		clipboard: opts.Clipboard,
		copyText:  clipboard.WriteAll,
		logger:    logging.NewComponentLogger(opts.Logger, "prompt"),
	}
}

// Confirm implements fixup.Confirmer.
func (t *Terminal) Confirm(ctx context.Context, p fixup.Proposal) (fixup.Decision, error) {
	if err := ctx.Err(); err != nil {
		return fixup.Decision{}, err
	}

	fmt.Fprintf(t.out, "%s %s\n", paint(t.colorize, ansiBold, "Applying rule"), p.Rule.String())
	fmt.Fprintf(t.out, " EXISTING: %s\n", paint(t.colorize, ansiYellow, p.Line))
	fmt.Fprintf(t.out, "SUGGESTED: %s\n", paint(t.colorize, ansiCyan, p.Suggested))
	if t.showDiff {
		fmt.Fprintf(t.out, "  CHANGES: %s\n", RenderDiff(p.Line, p.Suggested, t.colorize))
	}
	fmt.Fprint(t.out, "[Yne] ")

	answer, err := t.readLine(ctx)
	if err != nil {
		return fixup.Decision{}, err
	}

	switch firstRune(answer) {
	case 'n':
		return fixup.Reject(), nil
	case 'e':
		return t.edit(ctx, p)
	default:
		return fixup.Accept(), nil
	}
}

func (t *Terminal) edit(ctx context.Context, p fixup.Proposal) (fixup.Decision, error) {
	if t.clipboard {
		if err := t.copyText(p.Suggested); err != nil {
			t.logger.Debug("clipboard copy failed", logging.Error(err))
		} else {
			fmt.Fprintln(t.out, "(suggestion copied to clipboard)")
		}
	}
	fmt.Fprint(t.out, "Enter desired line: ")
	text, err := t.readLine(ctx)
	if err != nil {
		return fixup.Decision{}, err
	}
	return fixup.Edit(text), nil
}

// firstRune looks at the answer exactly as typed, so leading whitespace
// falls through to accept.
func firstRune(answer string) rune {
	r, _ := utf8.DecodeRuneInString(strings.ToLower(answer))
	if r == utf8.RuneError {
		return 0
	}
	return r
}

// ReportInvalidRule implements fixup.Reporter.
func (t *Terminal) ReportInvalidRule(rule rules.Rule, err error) {
	msg := fmt.Sprintf("Regex error in rule %s; skipping", rule.Pattern)
	if err != nil {
		msg += ": " + err.Error()
	}
	fmt.Fprintln(t.errOut, paint(t.colorize, ansiRed, msg))
}

// readLine returns the next input line without its terminator. A final line
// without a newline is still an answer; nothing at all is ErrInputClosed.
func (t *Terminal) readLine(ctx context.Context) (string, error) {
	line, err := t.reader.ReadString('\n')
	if cerr := ctx.Err(); cerr != nil {
		return "", cerr
	}
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("prompt: read answer: %w", err)
		}
		if line == "" {
			fmt.Fprintln(t.out)
			return "", ErrInputClosed
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}
