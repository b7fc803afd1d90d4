package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// AssemblyAI contains configuration for the transcription service.
type AssemblyAI struct {
	APIKey          string `toml:"api_key"`
	BaseURL         string `toml:"base_url"`
	BoostParam      string `toml:"boost_param"`
	CharsPerCaption int    `toml:"chars_per_caption"`
	RequestTimeout  int    `toml:"request_timeout"`
}

// Polling contains the transcript status polling policy.
type Polling struct {
	IntervalSeconds    float64 `toml:"interval_seconds"`
	MaxIntervalSeconds float64 `toml:"max_interval_seconds"`
	Multiplier         float64 `toml:"multiplier"`
	// TimeoutSeconds bounds the whole poll; 0 waits indefinitely.
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Rules contains rule table defaults.
type Rules struct {
	DefaultPath string `toml:"default_path"`
}

// Output controls where caption artifacts are written.
type Output struct {
	Dir string `toml:"dir"`
}

// Prompt controls the interactive confirmation prompt.
type Prompt struct {
	Color     string `toml:"color"`
	ShowDiff  bool   `toml:"show_diff"`
	Clipboard bool   `toml:"clipboard"`
}

// Cache contains configuration for the transcript cache.
type Cache struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Config encapsulates all configuration values for subfix.
//
// Configuration sections by subsystem:
//   - AssemblyAI: credential, endpoint, and word boost strength
//   - Polling: transcript status polling interval and backoff
//   - Rules: default rule table location
//   - Output: caption artifact directory
//   - Prompt: colour, diff, and clipboard behaviour of the Yne prompt
//   - Cache: SQLite transcript cache
//   - Logging: log format, level, and destination
type Config struct {
	AssemblyAI AssemblyAI `toml:"assemblyai"`
	Polling    Polling    `toml:"polling"`
	Rules      Rules      `toml:"rules"`
	Output     Output     `toml:"output"`
	Prompt     Prompt     `toml:"prompt"`
	Cache      Cache      `toml:"cache"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("subfix.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the configured cache and log file need.
func (c *Config) EnsureDirectories() error {
	if c.Cache.Enabled && strings.TrimSpace(c.Cache.Path) != "" {
		dir := filepath.Dir(c.Cache.Path)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create cache directory %q: %w", dir, err)
		}
	}
	if strings.TrimSpace(c.Logging.File) != "" {
		dir := filepath.Dir(c.Logging.File)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create log directory %q: %w", dir, err)
		}
	}
	if strings.TrimSpace(c.Output.Dir) != "" {
		if err := os.MkdirAll(c.Output.Dir, 0o755); err != nil {
			return fmt.Errorf("create output directory %q: %w", c.Output.Dir, err)
		}
	}
	return nil
}

// PollInterval returns the initial transcript polling interval.
func (c *Config) PollInterval() time.Duration {
	return secondsToDuration(c.Polling.IntervalSeconds)
}

// PollMaxInterval returns the ceiling applied when polling backs off.
func (c *Config) PollMaxInterval() time.Duration {
	return secondsToDuration(c.Polling.MaxIntervalSeconds)
}

// PollTimeout returns the overall polling budget; zero means unbounded.
func (c *Config) PollTimeout() time.Duration {
	return time.Duration(c.Polling.TimeoutSeconds) * time.Second
}

// RequestTimeout returns the per-request HTTP timeout for AssemblyAI calls.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.AssemblyAI.RequestTimeout) * time.Second
}

func secondsToDuration(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultCachePath() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "subfix", "transcripts.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "~/.cache/subfix/transcripts.db"
	}
	return filepath.Join(home, ".cache", "subfix", "transcripts.db")
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
