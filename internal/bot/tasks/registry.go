package tasks

import "context"

// ScheduledTaskFunc is the signature of every scheduled task.
// The context provided by the scheduler should be respected for cancellation.
type ScheduledTaskFunc func(ctx context.Context) error

// RegisterAllTasks returns every task keyed by the name used in the
// scheduler.tasks configuration section.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	tasks := map[string]ScheduledTaskFunc{
		"sql_maintenance": newSQLMaintenanceTask(deps),
		"session_cleanup": newSessionCleanupTask(deps),
	}

	deps.Logger.Info("Initialized scheduled tasks", "count", len(tasks))
	return tasks
}
