package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subfix/internal/preflight"
)

func newCheckCommand(ctx *commandContext) *cobra.Command {
	var boostPath string
	var outputDir string
	var offline bool

	cmd := &cobra.Command{
		Use:   "check [rules.csv]",
		Short: "Verify the credential, inputs, and service before a session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			inputs := preflight.Inputs{BoostPath: boostPath, OutputDir: outputDir}
			if len(args) == 1 {
				inputs.RulesPath = args[0]
			}

			results := preflight.RunAll(cmd.Context(), cfg, inputs, preflight.Options{SkipNetwork: offline})

			out := cmd.OutOrStdout()
			failed := writeCheckReport(out, "Preflight", results, colorizeFor(cfg, out))
			if failed > 0 {
				return fmt.Errorf("preflight: %d of %d checks failed", failed, len(results))
			}
			fmt.Fprintln(out, "Ready to run.")
			return nil
		},
	}

	cmd.Flags().StringVar(&boostPath, "boost", "", "Boost-word file to check")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory to check")
	cmd.Flags().BoolVar(&offline, "offline", false, "Skip the AssemblyAI reachability probe")
	return cmd
}
