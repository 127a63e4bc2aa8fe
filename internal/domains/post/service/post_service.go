package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	newslettermodel "inkwell-backend/internal/domains/newsletter/model"
	"inkwell-backend/internal/domains/post/model"
	"inkwell-backend/internal/domains/post/repository"
	tenantservice "inkwell-backend/internal/domains/tenant/service"
	"inkwell-backend/internal/shared"
	"inkwell-backend/internal/shared/utils"
	"inkwell-backend/pkg/logger"
)

// Enqueuer is the slice of asynq.Client the service needs
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// CoverStorage holds cover images; Upload returns the public URL
type CoverStorage interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

type postService struct {
	repo          repository.PostRepository
	tenantService tenantservice.ServiceInterface
	queue         Enqueuer
	storage       CoverStorage
}

func NewPostService(
	repo repository.PostRepository,
	tenantService tenantservice.ServiceInterface,
	queue Enqueuer,
	storage CoverStorage,
) ServiceInterface {
	return &postService{
		repo:          repo,
		tenantService: tenantService,
		queue:         queue,
		storage:       storage,
	}
}

// =====================================================
// AUTHOR OPERATIONS
// =====================================================

// Create adds a new draft to the caller's publication
func (s *postService) Create(ctx context.Context, ownerID uuid.UUID, req model.CreatePostRequest) (*model.Post, error) {
	// Step 1: Validate input
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Resolve the caller's tenant
	tenant, err := s.tenantService.EnsureForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	// Step 3: Build the draft with a title-derived slug
	post := &model.Post{
		ID:       uuid.New(),
		TenantID: tenant.ID,
		Title:    req.Title,
		Slug:     s.slugFor(req.Title),
		Content:  req.Content,
		Excerpt:  req.Excerpt,
	}
	if post.Slug == "" {
		post.Slug = "post-" + post.ID.String()[:8]
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}

	// Step 4: Optionally publish right away, same transition as Publish
	if req.Publish {
		published, err := s.repo.Publish(ctx, post.ID)
		if err != nil {
			return nil, err
		}
		if published != nil {
			s.enqueueBroadcast(ctx, published.ID)
			return published, nil
		}
	}
	return post, nil
}

// ListForOwner returns all of the caller's posts, drafts included
func (s *postService) ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Post, error) {
	tenant, err := s.tenantService.EnsureForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, tenant.ID, false)
}

// GetForOwner returns one of the caller's posts
func (s *postService) GetForOwner(ctx context.Context, ownerID, postID uuid.UUID) (*model.Post, error) {
	return s.loadOwned(ctx, ownerID, postID)
}

// Update saves edits to one of the caller's posts. The slug tracks the
// title, so renaming a post re-derives it.
func (s *postService) Update(ctx context.Context, ownerID, postID uuid.UUID, req model.UpdatePostRequest) (*model.Post, error) {
	// Step 1: Validate input
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Load and check ownership
	post, err := s.loadOwned(ctx, ownerID, postID)
	if err != nil {
		return nil, err
	}

	// Step 3: Apply partial updates
	if req.Title != nil {
		post.Title = *req.Title
		if slug := s.slugFor(*req.Title); slug != "" {
			post.Slug = slug
		}
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Excerpt != nil {
		post.Excerpt = req.Excerpt
	}

	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes one of the caller's posts and its stored cover
func (s *postService) Delete(ctx context.Context, ownerID, postID uuid.UUID) error {
	post, err := s.loadOwned(ctx, ownerID, postID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, postID); err != nil {
		return err
	}

	// Cover cleanup is best effort; an orphaned object is a leak, not
	// a reason to fail a delete that already happened.
	if post.CoverImageURL != nil {
		if key := coverKeyFromURL(*post.CoverImageURL); key != "" {
			if err := s.storage.Delete(ctx, key); err != nil {
				logger.Error("cover cleanup failed", err)
			}
		}
	}
	return nil
}

// Publish transitions a draft to published. The repository performs
// the flip conditionally, so the newsletter broadcast is queued exactly
// once per transition even when two publish requests race. A failed
// enqueue is logged but never fails the publish itself.
func (s *postService) Publish(ctx context.Context, ownerID, postID uuid.UUID) (*model.Post, error) {
	// Step 1: Load and check ownership
	post, err := s.loadOwned(ctx, ownerID, postID)
	if err != nil {
		return nil, err
	}

	// Step 2: Already published is a no-op
	if post.Published {
		return post, nil
	}

	// Step 3: Flip the draft
	published, err := s.repo.Publish(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	if published == nil {
		// Lost a race with a concurrent publish; the winner queued
		// the broadcast.
		return s.repo.GetByID(ctx, post.ID)
	}

	// Step 4: Queue the newsletter broadcast for the transition
	s.enqueueBroadcast(ctx, published.ID)

	return published, nil
}

// Unpublish reverts a post to draft
func (s *postService) Unpublish(ctx context.Context, ownerID, postID uuid.UUID) (*model.Post, error) {
	if _, err := s.loadOwned(ctx, ownerID, postID); err != nil {
		return nil, err
	}
	return s.repo.Unpublish(ctx, postID)
}

// UploadCover stores a cover image and records its URL on the post
func (s *postService) UploadCover(ctx context.Context, ownerID, postID uuid.UUID, data []byte, contentType string) (*model.Post, error) {
	// Step 1: Load and check ownership
	post, err := s.loadOwned(ctx, ownerID, postID)
	if err != nil {
		return nil, err
	}

	// Step 2: Upload to object storage
	key := fmt.Sprintf("covers/%s/%s.%s", post.TenantID, post.ID, extensionFor(contentType))
	url, err := s.storage.Upload(ctx, key, data, contentType)
	if err != nil {
		logger.Error("cover upload failed", err)
		return nil, model.NewUploadFailedError()
	}

	// Step 3: Record the URL
	if err := s.repo.SetCoverImage(ctx, post.ID, url); err != nil {
		return nil, err
	}
	post.CoverImageURL = &url
	return post, nil
}

// =====================================================
// PUBLIC READ PATHS
// =====================================================

// ListPublished returns a tenant's published posts, newest first
func (s *postService) ListPublished(ctx context.Context, tenantID uuid.UUID) ([]*model.Post, error) {
	return s.repo.List(ctx, tenantID, true)
}

// GetPublishedBySlug returns the newest published post for a slug
func (s *postService) GetPublishedBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*model.Post, error) {
	post, err := s.repo.GetBySlug(ctx, tenantID, slug)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, model.NewPostNotFoundError()
	}
	return post, nil
}

// =====================================================
// HELPERS
// =====================================================

// loadOwned fetches a post and verifies it belongs to the caller's
// publication
func (s *postService) loadOwned(ctx context.Context, ownerID, postID uuid.UUID) (*model.Post, error) {
	tenant, err := s.tenantService.EnsureForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, model.NewPostNotFoundError()
	}
	if post.TenantID != tenant.ID {
		return nil, model.NewNotOwnerError()
	}
	return post, nil
}

func (s *postService) slugFor(title string) string {
	return utils.GenerateSlug(title)
}

// coverKeyFromURL recovers the object key from a stored cover URL.
// Upload builds URLs as <endpoint>/<bucket>/covers/..., so the key is
// everything from the covers segment on.
func coverKeyFromURL(url string) string {
	if i := strings.Index(url, "covers/"); i >= 0 {
		return url[i:]
	}
	return ""
}

func (s *postService) enqueueBroadcast(ctx context.Context, postID uuid.UUID) {
	payload, err := json.Marshal(newslettermodel.BroadcastPostPayload{PostID: postID})
	if err != nil {
		logger.Error("failed to marshal broadcast payload", err)
		return
	}

	task := asynq.NewTask(shared.TypeBroadcastPost, payload)
	info, err := s.queue.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueNewsletter),
		asynq.MaxRetry(5),
	)
	if err != nil {
		logger.Error("failed to enqueue newsletter broadcast", err)
		return
	}

	logger.Info("queued newsletter broadcast", map[string]interface{}{
		"task_id": info.ID,
		"post_id": postID.String(),
	})
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return "png"
	case "image/jpeg":
		return "jpg"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		return "bin"
	}
}
