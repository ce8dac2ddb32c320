package tasks

import (
	"context"
	"fmt"
	"time"
)

// sqlMaintenanceTimeout bounds a single checkpoint run.
const sqlMaintenanceTimeout = 2 * time.Minute

// newSQLMaintenanceTask creates the scheduled task function for running database maintenance.
func newSQLMaintenanceTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "sql_maintenance")

	return func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, sqlMaintenanceTimeout)
		defer cancel()

		startTime := time.Now()
		if err := deps.Store.RunSQLMaintenance(ctx); err != nil {
			log.ErrorContext(ctx, "SQL maintenance task failed", "error", err, "duration", time.Since(startTime))
			return fmt.Errorf("sql maintenance failed: %w", err)
		}

		log.InfoContext(ctx, "Scheduled SQL maintenance task completed successfully", "duration", time.Since(startTime))
		return nil
	}
}
