package repository

import (
	"context"

	"github.com/google/uuid"

	"inkwell-backend/internal/domains/subscriber/model"
)

// SubscriberRepository persists newsletter subscriptions. Deduplication
// relies on the (tenant_id, email) unique constraint rather than a
// read-then-write check.
type SubscriberRepository interface {
	// Subscribe inserts the email, reactivating the row when the
	// unique constraint fires. The bool reports whether the email was
	// already on the list.
	Subscribe(ctx context.Context, tenantID uuid.UUID, email string) (*model.Subscriber, bool, error)

	// Unsubscribe deactivates the subscription. An unknown email is a
	// silent no-op.
	Unsubscribe(ctx context.Context, tenantID uuid.UUID, email string) error

	// ListActive returns up to limit active subscribers, oldest
	// subscription first. limit <= 0 means no cap.
	ListActive(ctx context.Context, tenantID uuid.UUID, limit int) ([]*model.Subscriber, error)

	CountActive(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
