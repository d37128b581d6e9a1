// Package tasks implements the bot's scheduled maintenance tasks.
package tasks

import (
	"context"
	"log/slog"
	"time"

	"github.com/edgard/dualcoach/internal/config"
)

// Maintainer runs periodic database housekeeping.
type Maintainer interface {
	Ping(ctx context.Context) error
	RunSQLMaintenance(ctx context.Context) error
	DatabaseSize(ctx context.Context) (int64, error)
}

// SessionSweeper evicts conversation sessions idle for longer than ttl.
type SessionSweeper interface {
	Sweep(ttl time.Duration) int
}

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger   *slog.Logger
	Store    Maintainer
	Sessions SessionSweeper
	Config   *config.Config
}
