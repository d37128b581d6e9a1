package tasks

import "context"

// newSessionCleanupTask evicts idle in-memory sessions so abandoned
// onboarding drafts do not accumulate.
func newSessionCleanupTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "session_cleanup")

	return func(ctx context.Context) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		evicted := deps.Sessions.Sweep(deps.Config.Chat.SessionTTL)
		if evicted > 0 {
			log.InfoContext(ctx, "Evicted idle sessions", "count", evicted, "ttl", deps.Config.Chat.SessionTTL)
		} else {
			log.DebugContext(ctx, "No idle sessions to evict")
		}
		return nil
	}
}
