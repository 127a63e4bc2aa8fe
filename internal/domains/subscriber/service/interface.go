package service

import (
	"context"

	"github.com/google/uuid"

	"inkwell-backend/internal/domains/subscriber/model"
)

// ServiceInterface manages newsletter subscriptions
type ServiceInterface interface {
	// Subscribe adds an email to the tenant's list. A duplicate is a
	// success with OutcomeAlreadySubscribed, not an error.
	Subscribe(ctx context.Context, tenantID uuid.UUID, req model.SubscribeRequest) (*model.Subscriber, model.SubscribeOutcome, error)

	// Unsubscribe removes an email; unknown addresses no-op.
	Unsubscribe(ctx context.Context, tenantID uuid.UUID, req model.UnsubscribeRequest) error

	// ListActive returns up to limit active subscribers, oldest first.
	ListActive(ctx context.Context, tenantID uuid.UUID, limit int) ([]*model.Subscriber, error)

	CountActive(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
