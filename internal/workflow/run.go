package workflow

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"subfix/internal/boostwords"
	"subfix/internal/captions"
	"subfix/internal/fileutil"
	"subfix/internal/fixup"
	"subfix/internal/logging"
	"subfix/internal/rules"
	"subfix/internal/services"
	"subfix/internal/services/assemblyai"
	"subfix/internal/transcache"
)

// Request describes one transcribe-and-fix session.
type Request struct {
	Media     string
	RulesPath string
	// BoostPath is optional.
	BoostPath string
	// OutputDir overrides output.dir from config when set.
	OutputDir string
	// BoostParam overrides assemblyai.boost_param when set.
	BoostParam string
	NoCache    bool
}

// Result summarises a finished session.
type Result struct {
	Artifacts    captions.Artifacts
	TranscriptID string
	FromCache    bool
	Cues         captions.CueStats
	Stats        fixup.Stats
}

// Run transcribes req.Media, writes the original captions, walks the operator
// through every rule match, and writes the fixed captions.
func (r *Runner) Run(ctx context.Context, req Request) (Result, error) {
	ctx = beginRun(ctx, req.Media)
	logger := logging.WithContext(ctx, r.logger)

	loadCtx := services.WithStage(ctx, StageLoad)
	table, err := rules.LoadFile(req.RulesPath)
	if err != nil {
		return Result{}, err
	}
	var words []string
	if strings.TrimSpace(req.BoostPath) != "" {
		if words, err = boostwords.LoadFile(req.BoostPath); err != nil {
			return Result{}, err
		}
	}
	logging.WithContext(loadCtx, r.logger).Info("inputs loaded",
		logging.Int("rules", len(table)),
		logging.Int("boost_words", len(words)),
	)

	outputDir := firstNonEmpty(req.OutputDir, r.cfg.Output.Dir)
	artifacts := captions.ArtifactsFor(req.Media, outputDir)
	if err := fileutil.EnsureParent(artifacts.Fixed); err != nil {
		return Result{}, services.Wrap(services.ErrValidation, "workflow", "prepare output", "", err)
	}
	lock, err := captions.AcquireLock(artifacts.Lock())
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Debug("release run lock failed", logging.Error(err))
		}
	}()

	result := Result{Artifacts: artifacts}
	srt, err := r.transcribe(services.WithStage(ctx, StageTranscribe), req, words, &result)
	if err != nil {
		return result, err
	}

	if err := captions.WriteOriginal(artifacts.Original, srt); err != nil {
		return result, err
	}
	result.Cues = captions.Stats(srt)
	logger.Info("original captions written",
		logging.String("path", artifacts.Original),
		logging.Int("cues", result.Cues.Cues),
	)

	r.printf("\nTranscription complete. Validating captions using %s rules.\n", req.RulesPath)
	fixed, stats, err := fixup.ApplyRules(services.WithStage(ctx, StageFixup), captions.Split(srt), table, r.confirmer, r.engineOptions(ctx)...)
	result.Stats = stats
	if err != nil {
		return result, err
	}

	r.printf("Writing output original and fixed caption files.\n")
	if err := captions.WriteFixed(artifacts.Fixed, fixed); err != nil {
		return result, err
	}
	logging.WithContext(services.WithStage(ctx, StageWrite), r.logger).Info("fixed captions written",
		logging.String("path", artifacts.Fixed),
		logging.Int("changed_lines", stats.ChangedLines),
	)
	return result, nil
}

func (r *Runner) transcribe(ctx context.Context, req Request, words []string, result *Result) (string, error) {
	logger := logging.WithContext(ctx, r.logger)
	boostParam := firstNonEmpty(req.BoostParam, r.cfg.AssemblyAI.BoostParam)
	charsPerCaption := r.cfg.AssemblyAI.CharsPerCaption

	var (
		key    transcache.Key
		useKey bool
	)
	if r.cache != nil && !req.NoCache {
		k, err := transcache.KeyFor(req.Media, words, boostParam, charsPerCaption)
		if err != nil {
			logger.Debug("transcript cache key unavailable", logging.Error(err))
		} else {
			key, useKey = k, true
			entry, ok, err := r.cache.Lookup(ctx, key)
			if err != nil {
				logging.WarnWithContext(logger, "transcript cache lookup failed", "cache_lookup_failed",
					logging.Error(err),
					logging.String(logging.FieldImpact, "media will be transcribed again"),
				)
			} else if ok {
				r.printf("Using cached transcript %s.\n", entry.TranscriptID)
				logger.Info("transcript cache hit", logging.String(logging.FieldTranscriptID, entry.TranscriptID))
				result.TranscriptID = entry.TranscriptID
				result.FromCache = true
				return entry.SRT, nil
			}
		}
	}

	if r.transcriber == nil {
		return "", services.Wrap(services.ErrConfiguration, "workflow", "transcribe", "no transcriber configured", nil)
	}
	r.printf("Transcribing.\n")
	transcript, err := r.transcriber.Transcribe(ctx, req.Media, assemblyai.Options{
		WordBoost:       words,
		BoostParam:      boostParam,
		CharsPerCaption: charsPerCaption,
		Policy:          PollPolicy(r.cfg),
		OnStatus: func(state assemblyai.State, t assemblyai.Transcript) {
			if state == assemblyai.StateCompleted {
				return
			}
			r.printf("Transcribing, status: %s. Please wait.\n", t.Status)
			if state == assemblyai.StateFailed {
				r.printf("Error in transcription: %s\n", t.Error)
			}
		},
	})
	if err != nil {
		if errors.Is(err, services.ErrExternalTool) {
			logging.ErrorWithContext(logger, "transcription failed", "transcription_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorKind, services.Kind(err)),
				logging.String(logging.FieldErrorHint, "check the media format and AssemblyAI dashboard"),
			)
		}
		return "", fmt.Errorf("transcribe %s: %w", req.Media, err)
	}
	result.TranscriptID = transcript.TranscriptID

	if useKey {
		if err := r.cache.Save(ctx, key, transcache.Entry{Media: req.Media, TranscriptID: transcript.TranscriptID, SRT: transcript.SRT}); err != nil {
			logging.WarnWithContext(logger, "transcript cache save failed", "cache_save_failed",
				logging.Error(err),
				logging.String(logging.FieldImpact, "next run will transcribe again"),
			)
		}
	}
	return transcript.SRT, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
