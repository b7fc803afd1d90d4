package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable. The AssemblyAI credential is
// deliberately not checked here: commands that need it report its absence
// themselves.
func (c *Config) Validate() error {
	if err := c.validateAssemblyAI(); err != nil {
		return err
	}
	if err := c.validatePolling(); err != nil {
		return err
	}
	if err := c.validatePrompt(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAssemblyAI() error {
	parsed, err := url.Parse(c.AssemblyAI.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("assemblyai.base_url %q must be an absolute URL", c.AssemblyAI.BaseURL)
	}
	switch c.AssemblyAI.BoostParam {
	case "low", "default", "high":
	default:
		return fmt.Errorf("assemblyai.boost_param must be one of low, default, high (got %q)", c.AssemblyAI.BoostParam)
	}
	return nil
}

func (c *Config) validatePolling() error {
	if err := ensurePositiveMap(map[string]float64{
		"polling.interval_seconds":     c.Polling.IntervalSeconds,
		"polling.max_interval_seconds": c.Polling.MaxIntervalSeconds,
		"polling.multiplier":           c.Polling.Multiplier,
	}); err != nil {
		return err
	}
	if c.Polling.Multiplier < 1 {
		return errors.New("polling.multiplier must be >= 1")
	}
	return nil
}

func (c *Config) validatePrompt() error {
	switch c.Prompt.Color {
	case "auto", "always", "never":
		return nil
	default:
		return fmt.Errorf("prompt.color must be one of auto, always, never (got %q)", c.Prompt.Color)
	}
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error (got %q)", c.Logging.Level)
	}
}

func ensurePositiveMap(values map[string]float64) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
