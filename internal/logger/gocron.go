package logger

import (
	"errors"
	"log/slog"

	"github.com/go-co-op/gocron/v2"
)

// gocronLogger forwards gocron's internal log lines to slog.
type gocronLogger struct {
	log *slog.Logger
}

// NewGocronLogger adapts log to the gocron.Logger interface.
//
//nolint:ireturn // gocron.WithLogger takes the interface
func NewGocronLogger(log *slog.Logger) gocron.Logger {
	return &gocronLogger{log: log.With("component", "gocron")}
}

func (l *gocronLogger) Debug(msg string, args ...any) { l.log.Debug(msg, schedulerArgs(args)...) }
func (l *gocronLogger) Info(msg string, args ...any)  { l.log.Info(msg, schedulerArgs(args)...) }
func (l *gocronLogger) Warn(msg string, args ...any)  { l.log.Warn(msg, schedulerArgs(args)...) }
func (l *gocronLogger) Error(msg string, args ...any) { l.log.Error(msg, schedulerArgs(args)...) }

// schedulerArgs tags well-known gocron errors so they can be filtered on.
func schedulerArgs(args []any) []any {
	out := make([]any, 0, len(args)+1)
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			out = append(out, args[i])
			break
		}
		key, val := args[i], args[i+1]
		out = append(out, key, val)

		err, ok := val.(error)
		if !ok {
			continue
		}
		switch {
		case errors.Is(err, gocron.ErrJobNotFound):
			out = append(out, "error_kind", "job_not_found")
		case errors.Is(err, gocron.ErrStopSchedulerTimedOut):
			out = append(out, "error_kind", "shutdown_timeout")
		}
	}
	return out
}
