package workflow

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"subfix/internal/config"
	"subfix/internal/fixup"
	"subfix/internal/logging"
	"subfix/internal/services"
	"subfix/internal/services/assemblyai"
	"subfix/internal/transcache"
)

// Stage names attached to the context and logs.
const (
	StageLoad       = "load"
	StageTranscribe = "transcribe"
	StageFixup      = "fixup"
	StageWrite      = "write"
)

// Transcriber produces SRT captions for a media reference.
type Transcriber interface {
	Transcribe(ctx context.Context, media string, opts assemblyai.Options) (assemblyai.Result, error)
}

// TranscriptCache stores finished transcripts between runs.
type TranscriptCache interface {
	Lookup(ctx context.Context, key transcache.Key) (transcache.Entry, bool, error)
	Save(ctx context.Context, key transcache.Key, entry transcache.Entry) error
}

// Deps are the collaborators a Runner needs. Transcriber and Cache may be nil
// for Apply-only use.
type Deps struct {
	Logger      *slog.Logger
	Out         io.Writer
	Confirmer   fixup.Confirmer
	Reporter    fixup.Reporter
	Transcriber Transcriber
	Cache       TranscriptCache
}

// Runner executes fixup sessions.
type Runner struct {
	cfg         *config.Config
	logger      *slog.Logger
	out         io.Writer
	confirmer   fixup.Confirmer
	reporter    fixup.Reporter
	transcriber Transcriber
	cache       TranscriptCache
}

// NewRunner validates deps and builds a Runner.
func NewRunner(cfg *config.Config, deps Deps) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("workflow: config is required")
	}
	if deps.Confirmer == nil {
		return nil, fmt.Errorf("workflow: confirmer is required")
	}
	out := deps.Out
	if out == nil {
		out = io.Discard
	}
	return &Runner{
		cfg:         cfg,
		logger:      logging.NewComponentLogger(deps.Logger, "workflow"),
		out:         out,
		confirmer:   deps.Confirmer,
		reporter:    deps.Reporter,
		transcriber: deps.Transcriber,
		cache:       deps.Cache,
	}, nil
}

// NewTranscriber builds the AssemblyAI transcriber described by cfg.
func NewTranscriber(cfg *config.Config, logger *slog.Logger) (*assemblyai.Transcriber, error) {
	client, err := assemblyai.New(assemblyai.Config{
		APIKey:     cfg.AssemblyAI.APIKey,
		BaseURL:    cfg.AssemblyAI.BaseURL,
		HTTPClient: newHTTPClient(cfg.RequestTimeout()),
	})
	if err != nil {
		return nil, err
	}
	return assemblyai.NewTranscriber(client, logger), nil
}

// PollPolicy converts the polling section of cfg.
func PollPolicy(cfg *config.Config) assemblyai.PollPolicy {
	return assemblyai.PollPolicy{
		Interval:    cfg.PollInterval(),
		MaxInterval: cfg.PollMaxInterval(),
		Multiplier:  cfg.Polling.Multiplier,
		Timeout:     cfg.PollTimeout(),
	}
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		return nil
	}
	return &http.Client{Timeout: timeout}
}

// beginRun tags ctx with a run id (unless one is present) and the media.
func beginRun(ctx context.Context, media string) context.Context {
	if _, ok := services.RunIDFromContext(ctx); !ok {
		ctx = services.WithRunID(ctx, uuid.NewString())
	}
	return services.WithMedia(ctx, media)
}

func (r *Runner) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

func (r *Runner) engineOptions(ctx context.Context) []fixup.Option {
	opts := []fixup.Option{fixup.WithLogger(logging.WithContext(ctx, r.logger))}
	if r.reporter != nil {
		opts = append(opts, fixup.WithReporter(r.reporter))
	}
	return opts
}
