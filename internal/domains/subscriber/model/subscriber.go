package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

// =====================================================
// SUBSCRIBER MODEL
// =====================================================

// Subscriber is one email on a tenant's newsletter list. The pair
// (tenant_id, email) is unique; unsubscribing deactivates the row
// instead of deleting it, so a resubscribe keeps the original history.
type Subscriber struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	TenantID       uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	Email          string     `json:"email" db:"email"`
	Active         bool       `json:"active" db:"active"`
	SubscribedAt   time.Time  `json:"subscribed_at" db:"subscribed_at"`
	UnsubscribedAt *time.Time `json:"unsubscribed_at,omitempty" db:"unsubscribed_at"`
}

// SubscribeOutcome tells the reader how their request ended. A repeat
// subscribe is not an error; the caller sees the same success shape
// with a different outcome.
type SubscribeOutcome string

const (
	OutcomeSubscribed        SubscribeOutcome = "subscribed"
	OutcomeAlreadySubscribed SubscribeOutcome = "already_subscribed"
)

// =====================================================
// REQUEST DTOs
// =====================================================

type SubscribeRequest struct {
	Email string `json:"email"`
}

func (r SubscribeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
	)
}

type UnsubscribeRequest struct {
	Email string `json:"email"`
}

func (r UnsubscribeRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat),
	)
}

// =====================================================
// RESPONSE DTOs
// =====================================================

type SubscriberResponse struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Active       bool      `json:"active"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

func (s *Subscriber) ToResponse() SubscriberResponse {
	return SubscriberResponse{
		ID:           s.ID,
		Email:        s.Email,
		Active:       s.Active,
		SubscribedAt: s.SubscribedAt,
	}
}
