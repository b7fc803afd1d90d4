package preflight

import (
	"context"
	"path/filepath"
	"strings"

	"subfix/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
	// Warning marks a passed check the operator should still look at.
	Warning bool
}

// Inputs names the files a run will use.
type Inputs struct {
	RulesPath string
	BoostPath string
	OutputDir string
}

// Options tunes which checks run.
type Options struct {
	// SkipNetwork disables the API reachability probe.
	SkipNetwork bool
}

// RunAll executes all applicable preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config, inputs Inputs, opts Options) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckCredential(cfg.AssemblyAI.APIKey)}

	rulesPath := strings.TrimSpace(inputs.RulesPath)
	if rulesPath == "" {
		rulesPath = cfg.Rules.DefaultPath
	}
	results = append(results, CheckRulesFile("Rule table", rulesPath))

	if inputs.BoostPath != "" {
		results = append(results, CheckReadableFile("Boost words", inputs.BoostPath))
	}

	outputDir := strings.TrimSpace(inputs.OutputDir)
	if outputDir == "" {
		outputDir = cfg.Output.Dir
	}
	if outputDir == "" {
		outputDir = "."
	}
	results = append(results, CheckDirectoryAccess("Output directory", outputDir))

	if cfg.Cache.Enabled && cfg.Cache.Path != "" {
		results = append(results, CheckCacheDirectory("Transcript cache", filepath.Dir(cfg.Cache.Path)))
	}

	if !opts.SkipNetwork && cfg.AssemblyAI.APIKey != "" {
		results = append(results, CheckAssemblyAI(ctx, cfg.AssemblyAI.BaseURL, cfg.AssemblyAI.APIKey))
	}
	return results
}

// Failed reports whether any check did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
