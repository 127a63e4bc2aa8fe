package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"inkwell-backend/internal/domains/stats/model"
	"inkwell-backend/internal/domains/stats/service"
	"inkwell-backend/internal/shared/middleware"
	"inkwell-backend/internal/shared/response"
)

// =====================================================
// STATS HANDLER
// =====================================================

type StatsHandler struct {
	statsService service.ServiceInterface
}

func NewStatsHandler(statsService service.ServiceInterface) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// RecordView accepts a view ping from a reader. The response is 202
// before any write happens; recording is best effort.
// POST /api/v1/blogs/posts/:id/view
func (h *StatsHandler) RecordView(c *gin.Context) {
	h.record(c, model.EventView)
}

// RecordShare accepts a share ping from a reader
// POST /api/v1/blogs/posts/:id/share
func (h *StatsHandler) RecordShare(c *gin.Context) {
	h.record(c, model.EventShare)
}

func (h *StatsHandler) record(c *gin.Context, event model.EventType) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid post ID")
		return
	}

	h.statsService.Record(postID, event)
	response.Success(c, http.StatusAccepted, gin.H{"accepted": true})
}

// GetTenantStats returns the caller's dashboard aggregates
// GET /api/v1/stats
func (h *StatsHandler) GetTenantStats(c *gin.Context) {
	ownerID, ok := middleware.GetOwnerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	stats, err := h.statsService.GetTenantStats(c.Request.Context(), ownerID)
	if err != nil {
		response.InternalServerError(c, "Failed to load stats")
		return
	}

	response.Success(c, http.StatusOK, stats)
}
