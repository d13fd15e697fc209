package Config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"

	ThreadPolicyExcludeMention = "exclude-mention"
	ThreadPolicyIncludeAll     = "include-all"

	PromptModeInline = "inline"
	PromptModeSystem = "system"
)

var defaultModels = map[string]string{
	ProviderGemini:    "gemini-2.0-flash",
	ProviderAnthropic: "claude-3-5-haiku-latest",
	ProviderOpenAI:    "gpt-4o-mini",
}

var apiKeyVars = map[string]string{
	ProviderGemini:    "GEMINI_API_KEY",
	ProviderAnthropic: "ANTHROPIC_API_KEY",
	ProviderOpenAI:    "OPENAI_API_KEY",
}

// Config is read once at startup and shared read-only afterwards.
type Config struct {
	SlackBotToken  string
	SlackAppToken  string
	SummaryChannel string

	CompletionProvider string
	CompletionModel    string
	CompletionAPIKey   string

	ThreadPolicy  string
	PromptMode    string
	PromptFile    string
	SummaryHeader bool

	LogLevel   string
	SlackDebug bool

	HealthPort        string
	DeploymentBaseURI string
}

// Load builds the config from the process environment, falling back to values
// in the given .env files (".env" when none are given) and then to defaults.
// Missing .env files are not an error.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}

	v := viper.New()
	v.SetDefault("completion_provider", ProviderGemini)
	v.SetDefault("thread_policy", ThreadPolicyExcludeMention)
	v.SetDefault("prompt_mode", PromptModeInline)
	v.SetDefault("summary_header", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("slack_debug", false)

	for _, envFile := range envFiles {
		dotEnvValues, dotEnvReadError := godotenv.Read(envFile)
		if dotEnvReadError != nil {
			if errors.Is(dotEnvReadError, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read %s: %w", envFile, dotEnvReadError)
		}
		for key, value := range dotEnvValues {
			v.SetDefault(strings.ToLower(key), value)
		}
	}
	v.AutomaticEnv()

	cfg := &Config{
		SlackBotToken:      v.GetString("slack_bot_token"),
		SlackAppToken:      v.GetString("slack_app_token"),
		SummaryChannel:     v.GetString("summary_channel"),
		CompletionProvider: strings.ToLower(v.GetString("completion_provider")),
		CompletionModel:    v.GetString("completion_model"),
		ThreadPolicy:       strings.ToLower(v.GetString("thread_policy")),
		PromptMode:         strings.ToLower(v.GetString("prompt_mode")),
		PromptFile:         v.GetString("prompt_file"),
		SummaryHeader:      v.GetBool("summary_header"),
		LogLevel:           strings.ToLower(v.GetString("log_level")),
		SlackDebug:         v.GetBool("slack_debug"),
		HealthPort:         v.GetString("health_port"),
		DeploymentBaseURI:  v.GetString("deployment_base_uri"),
	}

	if apiKeyVar, ok := apiKeyVars[cfg.CompletionProvider]; ok {
		cfg.CompletionAPIKey = v.GetString(strings.ToLower(apiKeyVar))
	}
	if cfg.CompletionModel == "" {
		cfg.CompletionModel = defaultModels[cfg.CompletionProvider]
	}

	if validationError := validate(cfg); validationError != nil {
		return nil, fmt.Errorf("validate config: %w", validationError)
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	apiKeyVar, knownProvider := apiKeyVars[cfg.CompletionProvider]
	if !knownProvider {
		return fmt.Errorf("unknown COMPLETION_PROVIDER %q", cfg.CompletionProvider)
	}

	var missing []string
	if cfg.SlackBotToken == "" {
		missing = append(missing, "SLACK_BOT_TOKEN")
	}
	if cfg.SlackAppToken == "" {
		missing = append(missing, "SLACK_APP_TOKEN")
	}
	if cfg.SummaryChannel == "" {
		missing = append(missing, "SUMMARY_CHANNEL")
	}
	if cfg.CompletionAPIKey == "" {
		missing = append(missing, apiKeyVar)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	switch cfg.ThreadPolicy {
	case ThreadPolicyExcludeMention, ThreadPolicyIncludeAll:
	default:
		return fmt.Errorf("unknown THREAD_POLICY %q", cfg.ThreadPolicy)
	}
	switch cfg.PromptMode {
	case PromptModeInline, PromptModeSystem:
	default:
		return fmt.Errorf("unknown PROMPT_MODE %q", cfg.PromptMode)
	}
	if _, logLevelError := cfg.SlogLevel(); logLevelError != nil {
		return logLevelError
	}
	if cfg.PromptFile != "" {
		if _, statError := os.Stat(cfg.PromptFile); statError != nil {
			return fmt.Errorf("PROMPT_FILE: %w", statError)
		}
	}
	return nil
}

func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if unmarshalError := level.UnmarshalText([]byte(c.LogLevel)); unmarshalError != nil {
		return level, fmt.Errorf("unknown LOG_LEVEL %q", c.LogLevel)
	}
	return level, nil
}
