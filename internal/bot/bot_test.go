package bot

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/edgard/dualcoach/internal/bot/tasks"
	"github.com/edgard/dualcoach/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type blockingListener struct {
	started chan struct{}
}

func (l *blockingListener) Start(ctx context.Context) {
	close(l.started)
	<-ctx.Done()
}

type returningListener struct{}

func (returningListener) Start(context.Context) {}

func TestSchedulerRunsEnabledTasks(t *testing.T) {
	t.Parallel()
	var runs atomic.Int32
	cfg := &config.SchedulerConfig{Tasks: map[string]config.TaskConfig{
		"tick":     {Enabled: true, Schedule: "* * * * * *"},
		"disabled": {Enabled: false, Schedule: "* * * * * *"},
		"missing":  {Enabled: true, Schedule: "* * * * * *"},
		"broken":   {Enabled: true, Schedule: "not a cron"},
	}}
	taskMap := map[string]tasks.ScheduledTaskFunc{
		"tick":     func(context.Context) error { runs.Add(1); return nil },
		"disabled": func(context.Context) error { t.Error("disabled task ran"); return nil },
		"broken":   func(context.Context) error { return nil },
	}

	s, err := NewScheduler(discardLogger(), cfg, taskMap)
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := s.Start(); err == nil {
		t.Error("second Start() succeeded")
	}
	if got := s.Jobs(); got != 1 {
		t.Errorf("Jobs() = %d, want 1", got)
	}

	deadline := time.Now().Add(3 * time.Second)
	for runs.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if runs.Load() == 0 {
		t.Error("enabled task never ran")
	}
	if err := s.Stop(); err != nil {
		t.Errorf("second Stop() error = %v", err)
	}
}

func TestBotRunStopsOnCancel(t *testing.T) {
	t.Parallel()
	s, err := NewScheduler(discardLogger(), &config.SchedulerConfig{}, nil)
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}
	l := &blockingListener{started: make(chan struct{})}
	b := NewBot(discardLogger(), l, s)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()

	<-l.started
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestBotRunFailsWhenListenerExits(t *testing.T) {
	t.Parallel()
	s, err := NewScheduler(discardLogger(), &config.SchedulerConfig{}, nil)
	if err != nil {
		t.Fatalf("NewScheduler() error = %v", err)
	}

	if err := NewBot(discardLogger(), returningListener{}, s).Run(context.Background()); err == nil {
		t.Error("Run() succeeded although the listener stopped on its own")
	}
}
