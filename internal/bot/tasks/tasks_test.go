package tasks

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/edgard/dualcoach/internal/config"
)

type fakeMaintainer struct {
	calls   int
	err     error
	pingErr error
	sizes   []int64
	sizeErr error
}

func (f *fakeMaintainer) Ping(context.Context) error { return f.pingErr }

func (f *fakeMaintainer) RunSQLMaintenance(context.Context) error {
	f.calls++
	return f.err
}

func (f *fakeMaintainer) DatabaseSize(context.Context) (int64, error) {
	if f.sizeErr != nil || len(f.sizes) == 0 {
		return 0, f.sizeErr
	}
	size := f.sizes[0]
	f.sizes = f.sizes[1:]
	return size, nil
}

type fakeSweeper struct {
	ttl     time.Duration
	evicted int
}

func (f *fakeSweeper) Sweep(ttl time.Duration) int {
	f.ttl = ttl
	return f.evicted
}

func newTestDeps() (TaskDeps, *fakeMaintainer, *fakeSweeper) {
	m, s := &fakeMaintainer{sizes: []int64{8192, 4096}}, &fakeSweeper{evicted: 2}
	return TaskDeps{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Store:    m,
		Sessions: s,
		Config:   config.Default(),
	}, m, s
}

func TestRegisterAllTasksMatchesDefaults(t *testing.T) {
	t.Parallel()
	deps, _, _ := newTestDeps()

	tasks := RegisterAllTasks(deps)
	for name := range deps.Config.Scheduler.Tasks {
		if tasks[name] == nil {
			t.Errorf("configured task %q has no implementation", name)
		}
	}
}

func TestSQLMaintenanceTask(t *testing.T) {
	t.Parallel()
	deps, m, _ := newTestDeps()
	task := newSQLMaintenanceTask(deps)

	if err := task(context.Background()); err != nil {
		t.Fatalf("task() error = %v", err)
	}
	boom := errors.New("disk full")
	m.err = boom
	if err := task(context.Background()); !errors.Is(err, boom) {
		t.Errorf("task() error = %v, want %v", err, boom)
	}
	if m.calls != 2 {
		t.Errorf("maintenance ran %d times, want 2", m.calls)
	}
}

func TestSQLMaintenanceTaskSkipsUnreachableDatabase(t *testing.T) {
	t.Parallel()
	deps, m, _ := newTestDeps()
	down := errors.New("database is locked")
	m.pingErr = down

	if err := newSQLMaintenanceTask(deps)(context.Background()); !errors.Is(err, down) {
		t.Errorf("task() error = %v, want %v", err, down)
	}
	if m.calls != 0 {
		t.Errorf("maintenance ran %d times on an unreachable database", m.calls)
	}
}

func TestSQLMaintenanceTaskToleratesSizeErrors(t *testing.T) {
	t.Parallel()
	deps, m, _ := newTestDeps()
	m.sizeErr = errors.New("no such function")

	if err := newSQLMaintenanceTask(deps)(context.Background()); err != nil {
		t.Errorf("task() error = %v, want nil", err)
	}
	if m.calls != 1 {
		t.Errorf("maintenance ran %d times, want 1", m.calls)
	}
}

func TestSessionCleanupTask(t *testing.T) {
	t.Parallel()
	deps, _, s := newTestDeps()
	task := newSessionCleanupTask(deps)

	if err := task(context.Background()); err != nil {
		t.Fatalf("task() error = %v", err)
	}
	if s.ttl != deps.Config.Chat.SessionTTL {
		t.Errorf("swept with ttl %v, want %v", s.ttl, deps.Config.Chat.SessionTTL)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := task(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("task() with cancelled context error = %v", err)
	}
}
