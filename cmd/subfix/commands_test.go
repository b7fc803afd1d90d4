package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"subfix/internal/testsupport"
)

func TestApplyCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	captionsPath := testsupport.WriteFile(t, env.baseDir, "ep1.srt", testsupport.SampleSRT)
	rulesPath := testsupport.WriteRules(t, env.baseDir, "teh,the,0")

	out, _, err := runCLI(t, []string{"apply", "-o", env.baseDir, captionsPath, rulesPath}, env.configPath, "\n")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	fixedPath := filepath.Join(env.baseDir, "ep1-fixed.srt")
	requireContains(t, out, "Fixed: "+fixedPath)
	if got := testsupport.ReadFile(t, fixedPath); !strings.Contains(got, "I the best") {
		t.Fatalf("unexpected fixed output %q", got)
	}
	if env.fake.Exports() != 0 {
		t.Fatal("apply must not transcribe")
	}
}

func TestRulesListShowsInvalidRules(t *testing.T) {
	dir := t.TempDir()
	rulesPath := testsupport.WriteRules(t, dir, `\bteh\b,the,2`, "(oops,x,0")

	out, _, err := runCLI(t, []string{"rules", "list", rulesPath}, "", "")
	if err != nil {
		t.Fatalf("rules list: %v", err)
	}
	requireContains(t, out, `(?i)\bteh\b`)
	requireContains(t, out, "missing closing )")
	requireContains(t, out, "2 rules, 1 invalid")
}

func TestRulesListMissingFile(t *testing.T) {
	if _, _, err := runCLI(t, []string{"rules", "list", filepath.Join(t.TempDir(), "none.csv")}, "", ""); err == nil {
		t.Fatal("expected error for missing rule table")
	}
}

func TestCheckCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	rulesPath := testsupport.WriteRules(t, env.baseDir, "teh,the,0")

	out, _, err := runCLI(t, []string{"check", rulesPath}, env.configPath, "")
	if err != nil {
		t.Fatalf("check: %v\n%s", err, out)
	}
	requireContains(t, out, "Preflight\n")
	requireContains(t, out, "[ OK ] Rule table:")
	if strings.Contains(out, "[FAIL]") {
		t.Fatalf("unexpected failure:\n%s", out)
	}

	out, _, err = runCLI(t, []string{"check", "--offline", filepath.Join(env.baseDir, "missing.csv")}, env.configPath, "")
	if err == nil {
		t.Fatal("expected check to fail for a missing rule table")
	}
	requireContains(t, out, "[FAIL]")
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath, "")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "API key set: yes")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "", "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, "", ""); err == nil {
		t.Fatal("expected init to refuse overwriting without --overwrite")
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, "", ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
	out, _, err = runCLI(t, []string{"config", "validate"}, target, "")
	if err != nil {
		t.Fatalf("validate sample: %v", err)
	}
	requireContains(t, out, "API key set: no")
}
