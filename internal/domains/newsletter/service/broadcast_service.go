package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"inkwell-backend/internal/domains/newsletter/model"
	postrepository "inkwell-backend/internal/domains/post/repository"
	subscriberrepository "inkwell-backend/internal/domains/subscriber/repository"
	tenantrepository "inkwell-backend/internal/domains/tenant/repository"
	"inkwell-backend/internal/infrastructure/email"
	"inkwell-backend/pkg/logger"
)

// ServiceInterface runs post broadcasts to a tenant's subscriber list
type ServiceInterface interface {
	Broadcast(ctx context.Context, postID uuid.UUID) (*model.BroadcastResult, error)
}

type broadcastService struct {
	postRepo       postrepository.PostRepository
	tenantRepo     tenantrepository.TenantRepository
	subscriberRepo subscriberrepository.SubscriberRepository
	sender         email.Sender
	renderer       *Renderer
	maxRecipients  int
	sendTimeout    time.Duration
}

func NewBroadcastService(
	postRepo postrepository.PostRepository,
	tenantRepo tenantrepository.TenantRepository,
	subscriberRepo subscriberrepository.SubscriberRepository,
	sender email.Sender,
	renderer *Renderer,
	maxRecipients int,
	sendTimeout time.Duration,
) ServiceInterface {
	return &broadcastService{
		postRepo:       postRepo,
		tenantRepo:     tenantRepo,
		subscriberRepo: subscriberRepo,
		sender:         sender,
		renderer:       renderer,
		maxRecipients:  maxRecipients,
		sendTimeout:    sendTimeout,
	}
}

// Broadcast delivers the publish notification for a post. The only
// hard failures are a missing post or tenant; a disabled newsletter,
// an empty list or an unpublished post end the run as a soft no-op,
// and per-recipient send failures never stop the loop.
func (s *broadcastService) Broadcast(ctx context.Context, postID uuid.UUID) (*model.BroadcastResult, error) {
	result := &model.BroadcastResult{PostID: postID}

	// Step 1: Re-read the post; the queue payload only carries its ID
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, model.ErrPostNotFound
	}
	if !post.Published {
		result.Outcome = model.OutcomeUnpublished
		logger.Warn("skipping broadcast for unpublished post", map[string]interface{}{
			"post_id": postID.String(),
		})
		return result, nil
	}

	// Step 2: Load the tenant and its newsletter settings
	tenant, err := s.tenantRepo.GetByID(ctx, post.TenantID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, model.ErrTenantNotFound
	}
	if !tenant.NewsletterEnabled() {
		result.Outcome = model.OutcomeDisabled
		return result, nil
	}

	// Step 3: Take the capped recipient window, oldest subscribers
	// first
	subscribers, err := s.subscriberRepo.ListActive(ctx, tenant.ID, s.maxRecipients)
	if err != nil {
		return nil, err
	}
	if len(subscribers) == 0 {
		result.Outcome = model.OutcomeNoRecipients
		return result, nil
	}

	// Step 4: Render once; every recipient gets the same message
	rendered, err := s.renderer.Render(post, tenant)
	if err != nil {
		return nil, err
	}

	// Step 5: Send per recipient under an independent timeout. One
	// slow or failing mailbox costs its own slot, never the rest of
	// the list.
	from := *tenant.NewsletterEmail
	result.Outcome = model.OutcomeCompleted
	result.Attempted = len(subscribers)
	result.Recipients = make([]model.RecipientResult, 0, len(subscribers))

	for _, sub := range subscribers {
		sendCtx, cancel := context.WithTimeout(ctx, s.sendTimeout)
		messageID, err := s.sender.Send(sendCtx, from, sub.Email, rendered.Subject, rendered.HTML)
		cancel()

		if err != nil {
			result.Failed++
			result.Recipients = append(result.Recipients, model.RecipientResult{
				Email:  sub.Email,
				Status: model.StatusFailed,
				Error:  err.Error(),
			})
			logger.Error("broadcast send failed for recipient", err)
			continue
		}

		result.Sent++
		result.Recipients = append(result.Recipients, model.RecipientResult{
			Email:     sub.Email,
			Status:    model.StatusSent,
			MessageID: messageID,
		})
	}

	logger.Info("broadcast completed", map[string]interface{}{
		"post_id":   postID.String(),
		"tenant_id": tenant.ID.String(),
		"attempted": result.Attempted,
		"sent":      result.Sent,
		"failed":    result.Failed,
	})
	return result, nil
}
