package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subfix/internal/workflow"
)

func newApplyCommand(ctx *commandContext) *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "apply <captions.srt> [rules.csv]",
		Short: "Fix an existing caption file without transcribing",
		Long: "Walks the rule table over an existing SRT file and writes <captions>-fixed.srt.\n" +
			"The rule table defaults to rules.default_path from the configuration.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			rulesPath := cfg.Rules.DefaultPath
			if len(args) == 2 {
				rulesPath = args[1]
			}

			term := newTerminal(cmd, cfg, logger)
			runner, err := workflow.NewRunner(cfg, workflow.Deps{
				Logger:    logger,
				Out:       cmd.OutOrStdout(),
				Confirmer: term,
				Reporter:  term,
			})
			if err != nil {
				return err
			}
			result, err := runner.Apply(cmd.Context(), workflow.ApplyRequest{
				CaptionsPath: args[0],
				RulesPath:    rulesPath,
				OutputDir:    outputDir,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderStatsTable(result.Stats))
			fmt.Fprintf(out, "Fixed: %s\n", result.FixedPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory for the fixed caption file")
	return cmd
}
