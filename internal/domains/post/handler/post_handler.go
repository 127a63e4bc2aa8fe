package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"inkwell-backend/internal/domains/post/model"
	"inkwell-backend/internal/domains/post/service"
	"inkwell-backend/internal/shared/middleware"
	"inkwell-backend/internal/shared/response"
)

// maxCoverSize caps cover uploads at 5 MB
const maxCoverSize = 5 << 20

// =====================================================
// POST HANDLER
// =====================================================

type PostHandler struct {
	postService service.ServiceInterface
}

func NewPostHandler(postService service.ServiceInterface) *PostHandler {
	return &PostHandler{
		postService: postService,
	}
}

// =====================================================
// AUTHOR ENDPOINTS
// =====================================================

// Create adds a new draft
// POST /api/v1/posts
func (h *PostHandler) Create(c *gin.Context) {
	ownerID, ok := middleware.GetOwnerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.postService.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		h.respondPostError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, post.ToResponse())
}

// List returns all of the caller's posts, drafts included
// GET /api/v1/posts
func (h *PostHandler) List(c *gin.Context) {
	ownerID, ok := middleware.GetOwnerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	posts, err := h.postService.ListForOwner(c.Request.Context(), ownerID)
	if err != nil {
		h.respondPostError(c, err)
		return
	}

	summaries := make([]model.PostSummary, 0, len(posts))
	for _, p := range posts {
		summaries = append(summaries, p.ToSummary())
	}

	response.SuccessWithMeta(c, http.StatusOK, summaries, &response.Meta{Total: len(summaries)})
}

// Get returns one of the caller's posts
// GET /api/v1/posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	ownerID, ok := middleware.GetOwnerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid post ID")
		return
	}

	post, err := h.postService.GetForOwner(c.Request.Context(), ownerID, postID)
	if err != nil {
		h.respondPostError(c, err)
		return
	}

	response.Success(c, http.StatusOK, post.ToResponse())
}

// Update saves edits to a post
// PUT /api/v1/posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	ownerID, ok := middleware.GetOwnerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid post ID")
		return
	}

	var req model.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	post, err := h.postService.Update(c.Request.Context(), ownerID, postID, req)
	if err != nil {
		h.respondPostError(c, err)
		return
	}

	response.Success(c, http.StatusOK, post.ToResponse())
}

// Delete removes a post
// DELETE /api/v1/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	ownerID, ok := middleware.GetOwnerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid post ID")
		return
	}

	if err := h.postService.Delete(c.Request.Context(), ownerID, postID); err != nil {
		h.respondPostError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// Publish transitions a draft to published and queues the newsletter
// broadcast. Publishing twice is a no-op.
// POST /api/v1/posts/:id/publish
func (h *PostHandler) Publish(c *gin.Context) {
	ownerID, ok := middleware.GetOwnerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid post ID")
		return
	}

	post, err := h.postService.Publish(c.Request.Context(), ownerID, postID)
	if err != nil {
		h.respondPostError(c, err)
		return
	}

	response.Success(c, http.StatusOK, post.ToResponse())
}

// Unpublish reverts a post to draft
// POST /api/v1/posts/:id/unpublish
func (h *PostHandler) Unpublish(c *gin.Context) {
	ownerID, ok := middleware.GetOwnerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid post ID")
		return
	}

	post, err := h.postService.Unpublish(c.Request.Context(), ownerID, postID)
	if err != nil {
		h.respondPostError(c, err)
		return
	}

	response.Success(c, http.StatusOK, post.ToResponse())
}

// UploadCover accepts a multipart cover image
// POST /api/v1/posts/:id/cover
func (h *PostHandler) UploadCover(c *gin.Context) {
	ownerID, ok := middleware.GetOwnerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid post ID")
		return
	}

	fileHeader, err := c.FormFile("cover")
	if err != nil {
		response.BadRequest(c, "Missing cover file")
		return
	}
	if fileHeader.Size > maxCoverSize {
		response.BadRequest(c, "Cover image exceeds 5MB limit")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.InternalServerError(c, "Failed to read upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.InternalServerError(c, "Failed to read upload")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	post, err := h.postService.UploadCover(c.Request.Context(), ownerID, postID, data, contentType)
	if err != nil {
		h.respondPostError(c, err)
		return
	}

	response.Success(c, http.StatusOK, post.ToResponse())
}

// =====================================================
// PUBLIC ENDPOINTS
// =====================================================

// ListPublished returns a publication's published posts
// GET /api/v1/blogs/:tenantId/posts
func (h *PostHandler) ListPublished(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("tenantId"))
	if err != nil {
		response.BadRequest(c, "Invalid tenant ID")
		return
	}

	posts, err := h.postService.ListPublished(c.Request.Context(), tenantID)
	if err != nil {
		response.InternalServerError(c, "Failed to load posts")
		return
	}

	summaries := make([]model.PostSummary, 0, len(posts))
	for _, p := range posts {
		summaries = append(summaries, p.ToSummary())
	}

	response.SuccessWithMeta(c, http.StatusOK, summaries, &response.Meta{Total: len(summaries)})
}

// GetPublished returns a published post by slug
// GET /api/v1/blogs/:tenantId/posts/:slug
func (h *PostHandler) GetPublished(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("tenantId"))
	if err != nil {
		response.BadRequest(c, "Invalid tenant ID")
		return
	}

	post, err := h.postService.GetPublishedBySlug(c.Request.Context(), tenantID, c.Param("slug"))
	if err != nil {
		h.respondPostError(c, err)
		return
	}

	response.Success(c, http.StatusOK, post.ToResponse())
}

// =====================================================
// ERROR MAPPING
// =====================================================

func (h *PostHandler) respondPostError(c *gin.Context, err error) {
	var vErr validation.Errors
	if errors.As(err, &vErr) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request", vErr)
		return
	}

	var pErr *model.PostError
	if errors.As(err, &pErr) {
		switch {
		case errors.Is(pErr.Err, model.ErrPostNotFound):
			response.ErrorResponse(c, http.StatusNotFound, pErr.Code, pErr.Message)
		case errors.Is(pErr.Err, model.ErrNotOwner):
			response.ErrorResponse(c, http.StatusForbidden, pErr.Code, pErr.Message)
		case errors.Is(pErr.Err, model.ErrUploadFailed):
			response.ErrorResponse(c, http.StatusBadGateway, pErr.Code, pErr.Message)
		default:
			response.ErrorResponse(c, http.StatusInternalServerError, pErr.Code, pErr.Message)
		}
		return
	}

	response.InternalServerError(c, "Internal server error")
}
