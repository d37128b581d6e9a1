// Package config loads the bot configuration from defaults, an optional YAML
// file, a .env file and BOT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// ErrValidation wraps every configuration validation failure.
var ErrValidation = errors.New("validation error")

// Supported generator backends.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// telegramMessageLimit is the longest text the Bot API accepts in one message.
const telegramMessageLimit = 4096

// Config is the complete application configuration.
type Config struct {
	Logger     LoggerConfig     `mapstructure:"logger"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Telegram   TelegramConfig   `mapstructure:"telegram"`
	AI         AIConfig         `mapstructure:"ai"`
	Gemini     GeminiConfig     `mapstructure:"gemini"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Chat       ChatConfig       `mapstructure:"chat"`
	Onboarding OnboardingConfig `mapstructure:"onboarding"`
	Reset      ResetConfig      `mapstructure:"reset"`
	Messages   MessagesConfig   `mapstructure:"messages"`
	Labels     LabelsConfig     `mapstructure:"labels"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler"`
}

type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type TelegramConfig struct {
	Token string `mapstructure:"token" validate:"required"`
	// PrivateOnly drops updates that do not come from one-on-one chats.
	PrivateOnly bool `mapstructure:"private_only"`
	// PartHeader numbers the second and later chunks of a long reply; it receives the part and the total.
	PartHeader string `mapstructure:"part_header" validate:"required"`
	// TypingInterval is how often the typing indicator is refreshed.
	TypingInterval time.Duration `mapstructure:"typing_interval" validate:"min=1s"`
}

type AIConfig struct {
	Provider string        `mapstructure:"provider" validate:"oneof=gemini openai"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"min=1s,max=10m"`
}

type GeminiConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	ModelName   string        `mapstructure:"model_name" validate:"required"`
	Temperature float32       `mapstructure:"temperature" validate:"min=0,max=2"`
	MaxRetries  int           `mapstructure:"max_retries" validate:"min=0,max=10"`
	RetryDelay  time.Duration `mapstructure:"retry_delay"`
}

type OpenAIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url" validate:"omitempty,url"`
	Model       string  `mapstructure:"model" validate:"required"`
	Temperature float64 `mapstructure:"temperature" validate:"min=0,max=2"`
	// MaxRetries is handed to the SDK, which otherwise retries twice on its own.
	MaxRetries int `mapstructure:"max_retries" validate:"min=0,max=10"`
}

type ChatConfig struct {
	ChunkSize     int           `mapstructure:"chunk_size" validate:"min=100,max=4000"`
	ProgressLimit int           `mapstructure:"progress_limit" validate:"min=1,max=50"`
	SessionTTL    time.Duration `mapstructure:"session_ttl" validate:"min=1m"`
}

type OnboardingConfig struct {
	// NoneTokens are answers to the injuries question meaning "no injuries", compared case-insensitively.
	NoneTokens []string `mapstructure:"none_tokens" validate:"min=1,dive,required"`
}

type ResetConfig struct {
	// CancelTokens abort a pending reset when typed instead of pressing the cancel button.
	CancelTokens []string `mapstructure:"cancel_tokens" validate:"dive,required"`
}

type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks"`
}

type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule"`
}

// Validate checks field constraints and the credentials of the selected provider.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	switch c.AI.Provider {
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("%w: gemini.api_key is required when ai.provider is %q", ErrValidation, ProviderGemini)
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("%w: openai.api_key is required when ai.provider is %q", ErrValidation, ProviderOpenAI)
		}
	}
	// Parts after the first carry the header, which must still fit in one message.
	header := utf8.RuneCountInString(fmt.Sprintf(c.Telegram.PartHeader, 99, 99))
	if c.Chat.ChunkSize+header > telegramMessageLimit {
		return fmt.Errorf("%w: chat.chunk_size %d plus the part header (%d characters) exceeds the Telegram limit of %d",
			ErrValidation, c.Chat.ChunkSize, header, telegramMessageLimit)
	}
	if err := c.Messages.checkTemplates(); err != nil {
		return err
	}
	for name, task := range c.Scheduler.Tasks {
		if task.Enabled && task.Schedule == "" {
			return fmt.Errorf("%w: scheduler task %q is enabled without a schedule", ErrValidation, name)
		}
	}
	return nil
}
