package service

import (
	"context"

	"github.com/google/uuid"

	"inkwell-backend/internal/domains/stats/model"
)

// ServiceInterface records engagement events and serves the author
// dashboard aggregates.
type ServiceInterface interface {
	// Record registers an engagement event without blocking the
	// caller. The writes happen on a detached context; failures are
	// logged and never surface to the reader's request.
	Record(postID uuid.UUID, event model.EventType)

	// GetTenantStats returns the caller's dashboard aggregates.
	GetTenantStats(ctx context.Context, ownerID uuid.UUID) (*model.TenantStats, error)

	// Reconcile repairs counter drift against the daily rollups.
	Reconcile(ctx context.Context) (int64, error)
}
