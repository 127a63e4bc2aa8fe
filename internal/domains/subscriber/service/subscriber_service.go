package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"inkwell-backend/internal/domains/subscriber/model"
	"inkwell-backend/internal/domains/subscriber/repository"
	"inkwell-backend/pkg/logger"
)

type subscriberService struct {
	repo repository.SubscriberRepository
}

func NewSubscriberService(repo repository.SubscriberRepository) ServiceInterface {
	return &subscriberService{
		repo: repo,
	}
}

// Subscribe validates and stores a subscription. Validation happens
// before any write; the store itself never pre-checks for duplicates
// and instead lets the unique constraint decide.
func (s *subscriberService) Subscribe(ctx context.Context, tenantID uuid.UUID, req model.SubscribeRequest) (*model.Subscriber, model.SubscribeOutcome, error) {
	// Step 1: Normalize, then validate the normalized address
	email := normalizeEmail(req.Email)
	if err := (model.SubscribeRequest{Email: email}).Validate(); err != nil {
		return nil, "", model.NewInvalidEmailError()
	}

	// Step 2: Write through the constraint
	sub, already, err := s.repo.Subscribe(ctx, tenantID, email)
	if err != nil {
		return nil, "", err
	}

	outcome := model.OutcomeSubscribed
	if already {
		outcome = model.OutcomeAlreadySubscribed
	}

	logger.Info("newsletter subscription", map[string]interface{}{
		"tenant_id": tenantID.String(),
		"outcome":   string(outcome),
	})
	return sub, outcome, nil
}

// Unsubscribe deactivates a subscription
func (s *subscriberService) Unsubscribe(ctx context.Context, tenantID uuid.UUID, req model.UnsubscribeRequest) error {
	email := normalizeEmail(req.Email)
	if err := (model.UnsubscribeRequest{Email: email}).Validate(); err != nil {
		return model.NewInvalidEmailError()
	}
	return s.repo.Unsubscribe(ctx, tenantID, email)
}

// ListActive returns active subscribers, oldest first
func (s *subscriberService) ListActive(ctx context.Context, tenantID uuid.UUID, limit int) ([]*model.Subscriber, error) {
	return s.repo.ListActive(ctx, tenantID, limit)
}

// CountActive returns the active list size
func (s *subscriberService) CountActive(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	return s.repo.CountActive(ctx, tenantID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
