package model

import "github.com/google/uuid"

// BroadcastPostPayload is the task payload queued when a post is
// published. The worker re-reads post and tenant state at delivery
// time, so the payload only carries the post ID.
type BroadcastPostPayload struct {
	PostID uuid.UUID `json:"post_id"`
}
