package assemblyai

import (
	"context"
	"log/slog"
	"strings"

	"subfix/internal/logging"
)

// Options controls one transcription.
type Options struct {
	WordBoost       []string
	BoostParam      string
	CharsPerCaption int
	Policy          PollPolicy
	OnStatus        StatusFunc
}

// Result is a finished transcription.
type Result struct {
	TranscriptID string
	AudioURL     string
	SRT          string
}

// Transcriber turns a media reference into SRT captions.
type Transcriber struct {
	client *Client
	logger *slog.Logger
}

// NewTranscriber wraps client.
func NewTranscriber(client *Client, logger *slog.Logger) *Transcriber {
	return &Transcriber{
		client: client,
		logger: logging.NewComponentLogger(logger, "assemblyai"),
	}
}

// Transcribe uploads media when it is a local path, submits it, polls until
// the job finishes, and exports the captions. http(s) URLs are submitted
// as-is.
func (t *Transcriber) Transcribe(ctx context.Context, media string, opts Options) (Result, error) {
	logger := logging.WithContext(ctx, t.logger)

	audioURL := strings.TrimSpace(media)
	if !isRemote(audioURL) {
		logger.Info("uploading media", logging.String(logging.FieldMedia, media))
		uploaded, err := t.client.UploadFile(ctx, media)
		if err != nil {
			return Result{}, err
		}
		audioURL = uploaded
	}

	request := TranscriptRequest{AudioURL: audioURL}
	if len(opts.WordBoost) > 0 {
		request.WordBoost = opts.WordBoost
		request.BoostParam = opts.BoostParam
	}
	submitted, err := t.client.Submit(ctx, request)
	if err != nil {
		return Result{}, err
	}
	logger.Info("transcript submitted",
		logging.String(logging.FieldTranscriptID, submitted.ID),
		logging.Int("word_boost", len(request.WordBoost)),
	)

	onStatus := func(state State, transcript Transcript) {
		logger.Debug("transcript status",
			logging.String(logging.FieldTranscriptID, transcript.ID),
			logging.String("status", string(transcript.Status)),
			logging.String("state", state.String()),
		)
		if opts.OnStatus != nil {
			opts.OnStatus(state, transcript)
		}
	}
	if _, err := t.client.Poll(ctx, submitted.ID, opts.Policy, onStatus); err != nil {
		return Result{}, err
	}

	srt, err := t.client.ExportSRT(ctx, submitted.ID, opts.CharsPerCaption)
	if err != nil {
		return Result{}, err
	}
	logger.Info("transcript exported",
		logging.String(logging.FieldTranscriptID, submitted.ID),
		logging.Int("bytes", len(srt)),
	)
	return Result{TranscriptID: submitted.ID, AudioURL: audioURL, SRT: srt}, nil
}

func isRemote(media string) bool {
	lower := strings.ToLower(media)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
