package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"inkwell-backend/internal/domains/subscriber/model"
	"inkwell-backend/internal/domains/subscriber/service"
	"inkwell-backend/internal/shared/middleware"
	"inkwell-backend/internal/shared/response"

	tenantservice "inkwell-backend/internal/domains/tenant/service"
)

// =====================================================
// SUBSCRIBER HANDLER
// =====================================================

type SubscriberHandler struct {
	subscriberService service.ServiceInterface
	tenantService     tenantservice.ServiceInterface
}

func NewSubscriberHandler(
	subscriberService service.ServiceInterface,
	tenantService tenantservice.ServiceInterface,
) *SubscriberHandler {
	return &SubscriberHandler{
		subscriberService: subscriberService,
		tenantService:     tenantService,
	}
}

// Subscribe adds a reader's email to a publication's list. A repeat
// subscription returns the same 200 shape with a different outcome.
// POST /api/v1/blogs/:tenantId/subscribe
func (h *SubscriberHandler) Subscribe(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("tenantId"))
	if err != nil {
		response.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req model.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	sub, outcome, err := h.subscriberService.Subscribe(c.Request.Context(), tenantID, req)
	if err != nil {
		h.respondSubscriberError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"outcome":    outcome,
		"subscriber": sub.ToResponse(),
	})
}

// Unsubscribe removes a reader's email
// POST /api/v1/blogs/:tenantId/unsubscribe
func (h *SubscriberHandler) Unsubscribe(c *gin.Context) {
	tenantID, err := uuid.Parse(c.Param("tenantId"))
	if err != nil {
		response.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req model.UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.subscriberService.Unsubscribe(c.Request.Context(), tenantID, req); err != nil {
		h.respondSubscriberError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"unsubscribed": true})
}

// ListSubscribers returns the caller's active list
// GET /api/v1/subscribers
func (h *SubscriberHandler) ListSubscribers(c *gin.Context) {
	ownerID, ok := middleware.GetOwnerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	tenant, err := h.tenantService.EnsureForOwner(c.Request.Context(), ownerID)
	if err != nil {
		response.InternalServerError(c, "Failed to load subscribers")
		return
	}

	subs, err := h.subscriberService.ListActive(c.Request.Context(), tenant.ID, 0)
	if err != nil {
		response.InternalServerError(c, "Failed to load subscribers")
		return
	}

	out := make([]model.SubscriberResponse, 0, len(subs))
	for _, s := range subs {
		out = append(out, s.ToResponse())
	}

	response.SuccessWithMeta(c, http.StatusOK, out, &response.Meta{Total: len(out)})
}

// =====================================================
// ERROR MAPPING
// =====================================================

func (h *SubscriberHandler) respondSubscriberError(c *gin.Context, err error) {
	var sErr *model.SubscriberError
	if errors.As(err, &sErr) {
		if errors.Is(sErr.Err, model.ErrInvalidEmail) {
			response.ErrorResponse(c, http.StatusBadRequest, sErr.Code, sErr.Message)
			return
		}
		response.ErrorResponse(c, http.StatusInternalServerError, sErr.Code, sErr.Message)
		return
	}

	response.InternalServerError(c, "Internal server error")
}
