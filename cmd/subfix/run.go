package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"subfix/internal/config"
	"subfix/internal/logging"
	"subfix/internal/transcache"
	"subfix/internal/workflow"
)

const (
	runUsage          = "Usage: subfix run <media file or URL> <rules.csv> [boost-words.txt]"
	missingKeyMessage = "Must set environment key " + config.APIKeyEnv + " to Assembly AI API key value."
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var outputDir string
	var boostParam string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "run <media> <rules.csv> [boost-words.txt]",
		Short: "Transcribe media, then confirm each rule match interactively",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 || len(args) > 3 {
				return &usageError{msg: runUsage}
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(cfg.AssemblyAI.APIKey) == "" {
				return &usageError{msg: missingKeyMessage}
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			transcriber, err := workflow.NewTranscriber(cfg, logger)
			if err != nil {
				return err
			}
			var cache workflow.TranscriptCache
			if cfg.Cache.Enabled && !noCache {
				store, err := transcache.Open(cfg.Cache.Path)
				if err != nil {
					logging.WarnWithContext(logger, "transcript cache unavailable", "cache_open_failed",
						logging.Error(err),
						logging.String(logging.FieldErrorHint, "check cache.path or pass --no-cache"),
						logging.String(logging.FieldImpact, "media will be transcribed without caching"),
					)
				} else {
					defer store.Close()
					cache = store
				}
			}

			term := newTerminal(cmd, cfg, logger)
			runner, err := workflow.NewRunner(cfg, workflow.Deps{
				Logger:      logger,
				Out:         cmd.OutOrStdout(),
				Confirmer:   term,
				Reporter:    term,
				Transcriber: transcriber,
				Cache:       cache,
			})
			if err != nil {
				return err
			}

			req := workflow.Request{
				Media:      args[0],
				RulesPath:  args[1],
				OutputDir:  outputDir,
				BoostParam: boostParam,
				NoCache:    noCache,
			}
			if len(args) == 3 {
				req.BoostPath = args[2]
			}
			result, err := runner.Run(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderStatsTable(result.Stats))
			fmt.Fprintf(out, "Original: %s\n", result.Artifacts.Original)
			fmt.Fprintf(out, "Fixed:    %s\n", result.Artifacts.Fixed)
			if result.FromCache {
				fmt.Fprintf(out, "Transcript %s reused from cache\n", result.TranscriptID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory for the original and fixed caption files")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Always transcribe, ignoring the transcript cache")
	cmd.Flags().StringVar(&boostParam, "boost-param", "", "Word boost strength (low, default, high)")
	return cmd
}
