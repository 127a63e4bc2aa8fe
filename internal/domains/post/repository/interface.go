package repository

import (
	"context"

	"github.com/google/uuid"

	"inkwell-backend/internal/domains/post/model"
)

// PostRepository persists posts. Lookups return (nil, nil) when the
// row does not exist.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error)

	// GetBySlug returns the newest post matching the slug within the
	// tenant. Slugs are not unique; ties go to the most recent row.
	GetBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*model.Post, error)

	// List returns the tenant's posts, newest first. With publishedOnly
	// the order key is published_at; otherwise drafts are interleaved
	// by creation time.
	List(ctx context.Context, tenantID uuid.UUID, publishedOnly bool) ([]*model.Post, error)

	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id uuid.UUID) error

	// Publish flips a draft to published in one statement, stamping
	// published_at. It returns (nil, nil) when the post was already
	// published, so callers can treat a repeat publish as a no-op.
	Publish(ctx context.Context, id uuid.UUID) (*model.Post, error)

	// Unpublish reverts to draft and clears published_at.
	Unpublish(ctx context.Context, id uuid.UUID) (*model.Post, error)

	SetCoverImage(ctx context.Context, id uuid.UUID, url string) error
}
