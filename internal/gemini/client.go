// Package gemini implements the content generator on Google's Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/edgard/dualcoach/internal/config"
	"github.com/edgard/dualcoach/internal/generator"
)

// models is the part of the genai SDK the client calls.
type models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type sdkClient struct {
	models        models
	log           *slog.Logger
	contentConfig *genai.GenerateContentConfig
	modelName     string
	maxRetries    int
	retryDelay    time.Duration
}

// NewClient creates a generator backed by Gemini.
func NewClient(ctx context.Context, cfg config.GeminiConfig, log *slog.Logger) (generator.Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	gi, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	c := newClient(gi.Models, cfg, log)
	c.log.Info("Gemini client initialized successfully", "model", cfg.ModelName)
	return c, nil
}

func newClient(m models, cfg config.GeminiConfig, log *slog.Logger) *sdkClient {
	temperature := cfg.Temperature
	return &sdkClient{
		models: m,
		log:    log.With("component", "gemini_client"),
		contentConfig: &genai.GenerateContentConfig{
			Temperature: &temperature,
		},
		modelName:  cfg.ModelName,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
	}
}

// Generate renders the prompt for req and returns the model's text.
func (c *sdkClient) Generate(ctx context.Context, req generator.Request) (string, error) {
	prompt, err := generator.BuildPrompt(req)
	if err != nil {
		return "", err
	}
	c.log.DebugContext(ctx, "Generating content", "task", req.Task, "user_id", req.Profile.UserID)

	cfg := *c.contentConfig
	cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: prompt.System}}}
	contents := []*genai.Content{genai.NewContentFromText(prompt.User, genai.RoleUser)}

	resp, err := c.generateContentWithRetries(ctx, contents, &cfg)
	if err != nil {
		return "", err
	}
	return c.extractTextFromResponse(ctx, req.Task, resp)
}

func (c *sdkClient) generateContentWithRetries(ctx context.Context, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	var err error
	for i := 0; i <= c.maxRetries; i++ {
		var resp *genai.GenerateContentResponse
		resp, err = c.models.GenerateContent(ctx, c.modelName, contents, cfg)
		if err == nil {
			return resp, nil
		}

		c.log.WarnContext(ctx, "Gemini API call failed, checking for retry", "attempt", i+1, "max_retries", c.maxRetries, "error", err)

		code, ok := apiErrorCode(err)
		if !ok || (code != 500 && code != 503) {
			return nil, fmt.Errorf("gemini API call failed: %w", err)
		}
		if i == c.maxRetries {
			break
		}

		c.log.InfoContext(ctx, "Retrying Gemini API call", "delay", c.retryDelay, "code", code)
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("gemini API call aborted: %w", ctx.Err())
		case <-time.After(c.retryDelay):
		}
	}
	return nil, fmt.Errorf("gemini API call failed after %d retries: %w", c.maxRetries, err)
}

// apiErrorCode returns the HTTP status of a genai API error anywhere in err's chain.
func apiErrorCode(err error) (int, bool) {
	for e := err; e != nil; e = errors.Unwrap(e) {
		switch apiErr := e.(type) {
		case genai.APIError:
			return apiErr.Code, true
		case *genai.APIError:
			return apiErr.Code, true
		}
	}
	return 0, false
}

func (c *sdkClient) extractTextFromResponse(ctx context.Context, task generator.Task, resp *genai.GenerateContentResponse) (string, error) {
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" && fb.BlockReason != genai.BlockedReasonUnspecified {
		reason := string(resp.PromptFeedback.BlockReason)
		if resp.PromptFeedback.BlockReasonMessage != "" {
			reason = resp.PromptFeedback.BlockReasonMessage
		}
		c.log.ErrorContext(ctx, "Gemini request blocked", "task", task, "reason", reason)
		return "", fmt.Errorf("%s blocked by safety filter: %s", task, reason)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		finishReason := "unknown"
		if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason != genai.FinishReasonUnspecified {
			finishReason = string(resp.Candidates[0].FinishReason)
		}
		c.log.WarnContext(ctx, "Gemini response missing candidates or content", "task", task, "finish_reason", finishReason)
		return "", fmt.Errorf("%s: %w (finish reason %s)", task, generator.ErrEmptyResponse, finishReason)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%s: %w", task, generator.ErrEmptyResponse)
	}
	return text, nil
}
