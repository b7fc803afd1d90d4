package config

const (
	defaultConfigPath        = "~/.config/subfix/config.toml"
	defaultAssemblyAIBaseURL = "https://api.assemblyai.com"
	defaultBoostParam        = "high"
	defaultRequestTimeout    = 120
	defaultPollInterval      = 3
	defaultPollMaxInterval   = 3
	defaultPollMultiplier    = 1
	defaultRulesPath         = "subtitle-fixup.csv"
	defaultPromptColor       = "auto"
	defaultLogFormat         = "console"
	defaultLogLevel          = "warn"
	primaryAPIKeyEnv         = "AAIKEY"
	secondaryAPIKeyEnv       = "ASSEMBLYAI_API_KEY"
	defaultCacheEnabled      = true
	defaultPromptShowDiff    = true
	defaultPromptClipboard   = false
	defaultCharsPerCaption   = 0
)

// APIKeyEnv is the environment variable the AssemblyAI credential is read from.
const APIKeyEnv = primaryAPIKeyEnv

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		AssemblyAI: AssemblyAI{
			BaseURL:         defaultAssemblyAIBaseURL,
			BoostParam:      defaultBoostParam,
			CharsPerCaption: defaultCharsPerCaption,
			RequestTimeout:  defaultRequestTimeout,
		},
		Polling: Polling{
			IntervalSeconds:    defaultPollInterval,
			MaxIntervalSeconds: defaultPollMaxInterval,
			Multiplier:         defaultPollMultiplier,
		},
		Rules: Rules{
			DefaultPath: defaultRulesPath,
		},
		Prompt: Prompt{
			Color:     defaultPromptColor,
			ShowDiff:  defaultPromptShowDiff,
			Clipboard: defaultPromptClipboard,
		},
		Cache: Cache{
			Enabled: defaultCacheEnabled,
			Path:    defaultCachePath(),
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
