package service

import (
	"context"

	"github.com/google/uuid"

	"inkwell-backend/internal/domains/post/model"
)

// ServiceInterface covers both the author-side post lifecycle and the
// public read paths. Author operations take the caller's owner ID and
// enforce that the post belongs to the caller's publication.
type ServiceInterface interface {
	// Author operations
	Create(ctx context.Context, ownerID uuid.UUID, req model.CreatePostRequest) (*model.Post, error)
	ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Post, error)
	GetForOwner(ctx context.Context, ownerID, postID uuid.UUID) (*model.Post, error)
	Update(ctx context.Context, ownerID, postID uuid.UUID, req model.UpdatePostRequest) (*model.Post, error)
	Delete(ctx context.Context, ownerID, postID uuid.UUID) error

	// Publish flips a draft to published and queues the newsletter
	// broadcast. Publishing an already-published post is a no-op and
	// does not queue another broadcast.
	Publish(ctx context.Context, ownerID, postID uuid.UUID) (*model.Post, error)
	Unpublish(ctx context.Context, ownerID, postID uuid.UUID) (*model.Post, error)

	UploadCover(ctx context.Context, ownerID, postID uuid.UUID, data []byte, contentType string) (*model.Post, error)

	// Public read paths
	ListPublished(ctx context.Context, tenantID uuid.UUID) ([]*model.Post, error)
	GetPublishedBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*model.Post, error)
}
