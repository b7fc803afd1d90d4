package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeAssemblyAI()
	c.normalizePolling()
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizePrompt()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeAssemblyAI() {
	c.AssemblyAI.APIKey = strings.TrimSpace(c.AssemblyAI.APIKey)
	if c.AssemblyAI.APIKey == "" {
		if value := strings.TrimSpace(os.Getenv(primaryAPIKeyEnv)); value != "" {
			c.AssemblyAI.APIKey = value
		} else {
			c.AssemblyAI.APIKey = strings.TrimSpace(os.Getenv(secondaryAPIKeyEnv))
		}
	}
	c.AssemblyAI.BaseURL = strings.TrimRight(strings.TrimSpace(c.AssemblyAI.BaseURL), "/")
	if c.AssemblyAI.BaseURL == "" {
		c.AssemblyAI.BaseURL = defaultAssemblyAIBaseURL
	}
	c.AssemblyAI.BoostParam = strings.ToLower(strings.TrimSpace(c.AssemblyAI.BoostParam))
	if c.AssemblyAI.BoostParam == "" {
		c.AssemblyAI.BoostParam = defaultBoostParam
	}
	if c.AssemblyAI.RequestTimeout <= 0 {
		c.AssemblyAI.RequestTimeout = defaultRequestTimeout
	}
	if c.AssemblyAI.CharsPerCaption < 0 {
		c.AssemblyAI.CharsPerCaption = defaultCharsPerCaption
	}
}

func (c *Config) normalizePolling() {
	if c.Polling.IntervalSeconds <= 0 {
		c.Polling.IntervalSeconds = defaultPollInterval
	}
	if c.Polling.Multiplier <= 0 {
		c.Polling.Multiplier = defaultPollMultiplier
	}
	if c.Polling.MaxIntervalSeconds < c.Polling.IntervalSeconds {
		c.Polling.MaxIntervalSeconds = c.Polling.IntervalSeconds
	}
	if c.Polling.TimeoutSeconds < 0 {
		c.Polling.TimeoutSeconds = 0
	}
}

func (c *Config) normalizePaths() error {
	var err error
	c.Rules.DefaultPath = strings.TrimSpace(c.Rules.DefaultPath)
	if c.Rules.DefaultPath == "" {
		c.Rules.DefaultPath = defaultRulesPath
	}
	if c.Output.Dir, err = expandPath(strings.TrimSpace(c.Output.Dir)); err != nil {
		return fmt.Errorf("output.dir: %w", err)
	}
	if strings.TrimSpace(c.Cache.Path) == "" {
		c.Cache.Path = defaultCachePath()
	}
	if c.Cache.Path, err = expandPath(c.Cache.Path); err != nil {
		return fmt.Errorf("cache.path: %w", err)
	}
	if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}

func (c *Config) normalizePrompt() {
	c.Prompt.Color = strings.ToLower(strings.TrimSpace(c.Prompt.Color))
	if c.Prompt.Color == "" {
		c.Prompt.Color = defaultPromptColor
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
