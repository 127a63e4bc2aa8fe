package model

import "github.com/google/uuid"

// BroadcastOutcome classifies how a broadcast ended. Soft outcomes are
// normal terminations, not failures; the task completes either way.
type BroadcastOutcome string

const (
	// OutcomeCompleted means the send loop ran, possibly with some
	// per-recipient failures
	OutcomeCompleted BroadcastOutcome = "completed"

	// OutcomeDisabled means the tenant has no sender address configured
	OutcomeDisabled BroadcastOutcome = "disabled"

	// OutcomeNoRecipients means the active list was empty
	OutcomeNoRecipients BroadcastOutcome = "no_recipients"

	// OutcomeUnpublished means the post was reverted to draft between
	// publish and delivery
	OutcomeUnpublished BroadcastOutcome = "post_unpublished"
)

// RecipientStatus is the per-recipient delivery result
type RecipientStatus string

const (
	StatusSent   RecipientStatus = "sent"
	StatusFailed RecipientStatus = "failed"
)

// RecipientResult records one recipient's outcome. A failure carries
// the error text; a success carries the transport's message ID.
type RecipientResult struct {
	Email     string          `json:"email"`
	Status    RecipientStatus `json:"status"`
	MessageID string          `json:"message_id,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// BroadcastResult summarizes one broadcast run
type BroadcastResult struct {
	PostID     uuid.UUID         `json:"post_id"`
	Outcome    BroadcastOutcome  `json:"outcome"`
	Attempted  int               `json:"attempted"`
	Sent       int               `json:"sent"`
	Failed     int               `json:"failed"`
	Recipients []RecipientResult `json:"recipients,omitempty"`
}
