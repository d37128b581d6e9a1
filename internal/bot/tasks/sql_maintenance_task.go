package tasks

import (
	"context"
	"fmt"
	"time"
)

// newSQLMaintenanceTask checks the database is reachable, compacts it and
// logs how much space the compaction reclaimed.
func newSQLMaintenanceTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "sql_maintenance")

	return func(ctx context.Context) error {
		if err := deps.Store.Ping(ctx); err != nil {
			log.ErrorContext(ctx, "Database unreachable, skipping maintenance", "error", err)
			return fmt.Errorf("sql maintenance skipped: %w", err)
		}

		sizeBefore, err := deps.Store.DatabaseSize(ctx)
		if err != nil {
			log.WarnContext(ctx, "Could not read database size before maintenance", "error", err)
		}

		startTime := time.Now()
		if err := deps.Store.RunSQLMaintenance(ctx); err != nil {
			log.ErrorContext(ctx, "SQL maintenance task failed", "error", err, "duration", time.Since(startTime))
			return fmt.Errorf("sql maintenance failed: %w", err)
		}
		duration := time.Since(startTime)

		sizeAfter, err := deps.Store.DatabaseSize(ctx)
		if err != nil {
			log.WarnContext(ctx, "Could not read database size after maintenance", "error", err)
			log.InfoContext(ctx, "SQL maintenance completed", "duration", duration)
			return nil
		}
		log.InfoContext(ctx, "SQL maintenance completed",
			"duration", duration, "size_bytes", sizeAfter, "reclaimed_bytes", max(sizeBefore-sizeAfter, 0))
		return nil
	}
}
