package logging

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// consoleHandler renders one human-readable line per record:
//
//	15:04:05 WARN  [1a2b3c4d fixup rule#3 line 12] fixup: msg key=value
//
// Run, stage, rule, and line attributes are lifted into the bracketed subject
// so the trailing key/value list stays short during an interactive session.
type consoleHandler struct {
	mu        *sync.Mutex
	w         io.Writer
	level     slog.Leveler
	attrs     []slog.Attr
	groups    []string
	addSource bool
}

func newPrettyHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	return &consoleHandler{mu: &sync.Mutex{}, w: w, level: lvl, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// subject holds the attributes promoted out of the key/value tail.
type subject struct {
	component string
	runID     string
	stage     string
	rule      string
	line      string
}

func (s subject) String() string {
	parts := make([]string, 0, 4)
	if s.runID != "" {
		parts = append(parts, shortRunID(s.runID))
	}
	if s.stage != "" {
		parts = append(parts, s.stage)
	}
	if s.rule != "" {
		parts = append(parts, "rule#"+s.rule)
	}
	if s.line != "" {
		parts = append(parts, "line "+s.line)
	}
	return strings.Join(parts, " ")
}

// promote moves a known key into the subject and reports whether it did.
func (s *subject) promote(field kv) bool {
	var dst *string
	switch field.key {
	case FieldComponent:
		dst = &s.component
	case FieldRunID:
		dst = &s.runID
	case FieldStage:
		dst = &s.stage
	case FieldRuleIndex:
		dst = &s.rule
	case FieldLineIndex:
		dst = &s.line
	default:
		return false
	}
	if *dst == "" {
		*dst = attrString(field.value)
	}
	return true
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	if !h.Enabled(context.Background(), record.Level) {
		return nil
	}

	fields := make([]kv, 0, record.NumAttrs()+len(h.attrs))
	flattenAttrs(&fields, h.groups, h.attrs)
	record.Attrs(func(attr slog.Attr) bool {
		flattenAttr(&fields, h.groups, attr)
		return true
	})

	var subj subject
	rest := fields[:0]
	for _, field := range fields {
		if !subj.promote(field) {
			rest = append(rest, field)
		}
	}

	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	var buf bytes.Buffer
	buf.Grow(96 + len(rest)*24)
	buf.WriteString(formatTimestamp(ts))
	buf.WriteByte(' ')
	buf.WriteString(levelLabel(record.Level))
	buf.WriteByte(' ')
	if s := subj.String(); s != "" {
		buf.WriteString("[" + s + "] ")
	}
	if subj.component != "" {
		buf.WriteString(subj.component + ": ")
	}
	msg := strings.TrimSpace(record.Message)
	if msg == "" {
		msg = "(no message)"
	}
	buf.WriteString(msg)

	if h.addSource {
		if src := record.Source(); src != nil {
			buf.WriteString(" [" + filepath.Base(src.File) + ":" + strconv.Itoa(src.Line) + "]")
		}
	}
	for _, field := range rest {
		if field.key == "" {
			continue
		}
		buf.WriteString(" " + field.key + "=" + formatValue(field.value))
	}
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}

// levelLabel pads to five columns so messages line up.
func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN "
	case level >= slog.LevelInfo:
		return "INFO "
	default:
		return "DEBUG"
	}
}

// shortRunID keeps console lines readable; JSON output carries the full ID.
func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
