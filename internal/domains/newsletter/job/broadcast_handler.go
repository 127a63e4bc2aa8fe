package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	"inkwell-backend/internal/domains/newsletter/model"
	"inkwell-backend/internal/domains/newsletter/service"
	"inkwell-backend/pkg/logger"
)

// BroadcastHandler consumes newsletter:broadcast_post tasks
type BroadcastHandler struct {
	broadcastService service.ServiceInterface
}

func NewBroadcastHandler(broadcastService service.ServiceInterface) *BroadcastHandler {
	return &BroadcastHandler{
		broadcastService: broadcastService,
	}
}

// ProcessTask handles one broadcast. A missing post or tenant is
// terminal and skips asynq's retry; transient store errors are
// returned so the task retries.
func (h *BroadcastHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var payload model.BroadcastPostPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("invalid broadcast payload: %w: %w", err, asynq.SkipRetry)
	}

	result, err := h.broadcastService.Broadcast(ctx, payload.PostID)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) || errors.Is(err, model.ErrTenantNotFound) {
			logger.Error("broadcast aborted", err)
			return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
		}
		return err
	}

	logger.Info("broadcast task finished", map[string]interface{}{
		"post_id": payload.PostID.String(),
		"outcome": string(result.Outcome),
		"sent":    result.Sent,
		"failed":  result.Failed,
	})
	return nil
}
