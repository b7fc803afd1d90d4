package workflow

import (
	"context"
	"os"

	"subfix/internal/captions"
	"subfix/internal/fileutil"
	"subfix/internal/fixup"
	"subfix/internal/logging"
	"subfix/internal/rules"
	"subfix/internal/services"
)

// ApplyRequest describes a fixup of an existing caption file.
type ApplyRequest struct {
	CaptionsPath string
	RulesPath    string
	OutputDir    string
}

// ApplyResult summarises an Apply session.
type ApplyResult struct {
	FixedPath string
	Cues      captions.CueStats
	Stats     fixup.Stats
}

// Apply runs the rule engine over an existing SRT file and writes
// <captions>-fixed.srt. The input file is left untouched.
func (r *Runner) Apply(ctx context.Context, req ApplyRequest) (ApplyResult, error) {
	ctx = beginRun(ctx, req.CaptionsPath)
	logger := logging.WithContext(ctx, r.logger)

	table, err := rules.LoadFile(req.RulesPath)
	if err != nil {
		return ApplyResult{}, err
	}
	data, err := os.ReadFile(req.CaptionsPath)
	if err != nil {
		return ApplyResult{}, services.Wrap(services.ErrValidation, "workflow", "read captions", req.CaptionsPath, err)
	}
	text := string(data)
	if issues := captions.Validate(text); len(issues) > 0 {
		logging.WarnWithContext(logger, "captions look malformed", "captions_malformed",
			logging.Any("issues", issues),
			logging.String(logging.FieldErrorHint, "confirm the input is an SRT file"),
			logging.String(logging.FieldImpact, "rules still run line by line"),
		)
	}

	fixedPath := captions.FixedPathFor(req.CaptionsPath, firstNonEmpty(req.OutputDir, r.cfg.Output.Dir))
	if err := fileutil.EnsureParent(fixedPath); err != nil {
		return ApplyResult{}, services.Wrap(services.ErrValidation, "workflow", "prepare output", "", err)
	}
	lock, err := captions.AcquireLock(captions.LockPath(fixedPath))
	if err != nil {
		return ApplyResult{}, err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Debug("release run lock failed", logging.Error(err))
		}
	}()

	result := ApplyResult{FixedPath: fixedPath, Cues: captions.Stats(text)}
	r.printf("Validating captions using %s rules.\n", req.RulesPath)
	fixed, stats, err := fixup.ApplyRules(services.WithStage(ctx, StageFixup), captions.Split(text), table, r.confirmer, r.engineOptions(ctx)...)
	result.Stats = stats
	if err != nil {
		return result, err
	}
	r.printf("Writing fixed caption file.\n")
	if err := captions.WriteFixed(fixedPath, fixed); err != nil {
		return result, err
	}
	logger.Info("fixed captions written",
		logging.String("path", fixedPath),
		logging.Int("changed_lines", stats.ChangedLines),
	)
	return result, nil
}
