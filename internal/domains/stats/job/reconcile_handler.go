package job

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"inkwell-backend/internal/domains/stats/service"
	"inkwell-backend/pkg/logger"
)

// ReconcileHandler runs the scheduled rollup repair. The engagement
// path writes the lifetime counter first and the daily rollup second
// as two independent statements, so a crash in between leaves the
// rollup short; this task tops it back up to the counter total.
type ReconcileHandler struct {
	statsService service.ServiceInterface
}

func NewReconcileHandler(statsService service.ServiceInterface) *ReconcileHandler {
	return &ReconcileHandler{
		statsService: statsService,
	}
}

// ProcessTask handles stats:reconcile_rollups
func (h *ReconcileHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	started := time.Now()

	corrected, err := h.statsService.Reconcile(ctx)
	if err != nil {
		logger.Error("rollup reconciliation failed", err)
		return err
	}

	logger.Info("rollup reconciliation completed", map[string]interface{}{
		"posts_corrected": corrected,
		"duration_ms":     time.Since(started).Milliseconds(),
	})
	return nil
}
