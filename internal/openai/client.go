// Package openai implements the content generator on the OpenAI chat
// completions API or any server compatible with it.
package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/edgard/dualcoach/internal/config"
	"github.com/edgard/dualcoach/internal/generator"
)

// completions is the part of the SDK the client calls.
type completions interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

type client struct {
	completions completions
	log         *slog.Logger
	model       string
	temperature float64
}

// NewClient creates a generator backed by the chat completions API.
func NewClient(cfg config.OpenAIConfig, log *slog.Logger) (generator.Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(cfg.MaxRetries),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	sdk := openai.NewClient(opts...)

	c := newClient(&sdk.Chat.Completions, cfg, log)
	c.log.Info("OpenAI client initialized successfully", "model", cfg.Model, "base_url", cfg.BaseURL, "max_retries", cfg.MaxRetries)
	return c, nil
}

func newClient(comp completions, cfg config.OpenAIConfig, log *slog.Logger) *client {
	return &client{
		completions: comp,
		log:         log.With("component", "openai_client"),
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}
}

// Generate renders the prompt for req and returns the first choice's text.
func (c *client) Generate(ctx context.Context, req generator.Request) (string, error) {
	prompt, err := generator.BuildPrompt(req)
	if err != nil {
		return "", err
	}
	c.log.DebugContext(ctx, "Generating content", "task", req.Task, "user_id", req.Profile.UserID)

	resp, err := c.completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt.System),
			openai.UserMessage(prompt.User),
		},
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("openai API call failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		c.log.WarnContext(ctx, "OpenAI response has no choices", "task", req.Task)
		return "", fmt.Errorf("%s: %w", req.Task, generator.ErrEmptyResponse)
	}
	choice := resp.Choices[0]
	text := strings.TrimSpace(choice.Message.Content)
	if text == "" {
		if choice.Message.Refusal != "" {
			c.log.ErrorContext(ctx, "OpenAI request refused", "task", req.Task, "refusal", choice.Message.Refusal)
			return "", fmt.Errorf("%s refused: %s", req.Task, choice.Message.Refusal)
		}
		return "", fmt.Errorf("%s: %w (finish reason %s)", req.Task, generator.ErrEmptyResponse, choice.FinishReason)
	}
	return text, nil
}
