package main

import (
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"subfix/internal/config"
	"subfix/internal/logging"
	"subfix/internal/prompt"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		var level string
		if c.logLevelFlag != nil {
			level = strings.TrimSpace(*c.logLevelFlag)
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg, level)
	})
	return c.logger, c.loggerErr
}

// newTerminal builds the operator prompt over the command's streams.
func newTerminal(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) *prompt.Terminal {
	return prompt.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), prompt.Options{
		Color:     cfg.Prompt.Color,
		ShowDiff:  cfg.Prompt.ShowDiff,
		Clipboard: cfg.Prompt.Clipboard,
		Logger:    logger,
	})
}

func colorizeFor(cfg *config.Config, out io.Writer) bool {
	mode := prompt.ColorAuto
	if cfg != nil {
		mode = cfg.Prompt.Color
	}
	return prompt.ResolveColor(mode, out)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
