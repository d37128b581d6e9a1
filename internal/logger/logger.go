// Package logger provides structured logging for the coach bot.
// It uses Go's slog package with configurable levels and formats.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const previewLength = 50

// NewLogger creates a new slog Logger with the specified level and format
// and installs it as the default logger.
// If jsonOutput is true, logs will be formatted as JSON, otherwise as text.
func NewLogger(levelStr string, jsonOutput bool) *slog.Logger {
	logger := newLogger(os.Stdout, levelStr, jsonOutput)
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, levelStr string, jsonOutput bool) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(levelStr),
	}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

func parseLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Middleware logs every incoming update before and after it is handled.
// Message text is truncated so that user answers do not flood the log.
func Middleware(log *slog.Logger) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			startTime := time.Now()
			logEntry := updateLogger(log, update)

			logEntry.DebugContext(ctx, "Processing update")

			next(ctx, b, update)

			logEntry.InfoContext(ctx, "Finished processing update", "duration", time.Since(startTime))
		}
	}
}

func updateLogger(log *slog.Logger, update *models.Update) *slog.Logger {
	logEntry := log.With("update_id", update.ID)

	if update.Message == nil {
		return logEntry.With("update_type", "other")
	}

	var userID int64
	if update.Message.From != nil {
		userID = update.Message.From.ID
	}
	return logEntry.With(
		"update_type", "message",
		"message_id", update.Message.ID,
		"chat_id", update.Message.Chat.ID,
		"chat_type", update.Message.Chat.Type,
		"user_id", userID,
		"text_preview", truncateString(update.Message.Text, previewLength),
	)
}

// truncateString shortens s to at most maxLen runes, marking the cut with "...".
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	return string(runes[:maxLen-3]) + "..."
}
