package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subfix/internal/testsupport"
)

type cliTestEnv struct {
	fake       *testsupport.FakeAssemblyAI
	configPath string
	baseDir    string
	outputDir  string
}

func setupCLITestEnv(t *testing.T, statuses ...string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	t.Setenv("HOME", filepath.Join(base, "home"))
	t.Setenv("XDG_CACHE_HOME", filepath.Join(base, "cache"))
	t.Setenv("AAIKEY", "")
	t.Setenv("ASSEMBLYAI_API_KEY", "")
	t.Setenv("NO_COLOR", "1")

	fake := testsupport.NewFakeAssemblyAI(t, testsupport.SampleSRT, statuses...)
	env := &cliTestEnv{
		fake:       fake,
		configPath: filepath.Join(base, "subfix.toml"),
		baseDir:    base,
		outputDir:  filepath.Join(base, "out"),
	}
	writeTestConfig(t, env.configPath, fake.APIKey, fake.URL(), env.outputDir, filepath.Join(base, "cache", "transcripts.db"))
	return env
}

func writeTestConfig(t *testing.T, path, apiKey, baseURL, outputDir, cachePath string) {
	t.Helper()
	content := fmt.Sprintf(`[assemblyai]
api_key = %q
base_url = %q

[polling]
interval_seconds = 0.001
max_interval_seconds = 0.005
multiplier = 2.0

[output]
dir = %q

[prompt]
color = "never"
show_diff = false

[cache]
enabled = true
path = %q

[logging]
level = "error"
`, apiKey, baseURL, outputDir, cachePath)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func runCLI(t *testing.T, args []string, configPath, stdin string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
