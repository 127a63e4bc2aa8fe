package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"inkwell-backend/internal/domains/tenant/model"
	"inkwell-backend/internal/domains/tenant/service"
	"inkwell-backend/internal/shared/middleware"
	"inkwell-backend/internal/shared/response"
)

// =====================================================
// TENANT HANDLER
// =====================================================

type TenantHandler struct {
	tenantService service.ServiceInterface
	resolver      service.ResolverInterface
}

func NewTenantHandler(tenantService service.ServiceInterface, resolver service.ResolverInterface) *TenantHandler {
	return &TenantHandler{
		tenantService: tenantService,
		resolver:      resolver,
	}
}

// =====================================================
// PUBLIC ENDPOINTS
// =====================================================

// Resolve maps the request's addressing (hostname or ?subdomain=) to a
// tenant. No context is a normal outcome (the landing page), distinct
// from a failed lookup (404).
// GET /api/v1/blogs/resolve
func (h *TenantHandler) Resolve(c *gin.Context) {
	hostname := c.GetHeader("X-Forwarded-Host")
	if hostname == "" {
		hostname = c.Request.Host
	}
	subdomain := c.Query("subdomain")

	tenant, err := h.resolver.Resolve(c.Request.Context(), hostname, subdomain)
	if err != nil {
		if errors.Is(err, model.ErrNoContext) {
			response.Success(c, http.StatusOK, gin.H{"mode": "landing"})
			return
		}
		if errors.Is(err, model.ErrTenantNotFound) {
			response.NotFound(c, "No publication found for this address")
			return
		}
		response.InternalServerError(c, "Failed to resolve publication")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"mode":   "blog",
		"tenant": tenant.ToResponse(),
	})
}

// =====================================================
// AUTHOR ENDPOINTS
// =====================================================

// GetSettings returns the caller's tenant, bootstrapping it on first
// call.
// GET /api/v1/settings
func (h *TenantHandler) GetSettings(c *gin.Context) {
	ownerID, ok := middleware.GetOwnerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	tenant, err := h.tenantService.EnsureForOwner(c.Request.Context(), ownerID)
	if err != nil {
		response.InternalServerError(c, "Failed to load settings")
		return
	}

	response.Success(c, http.StatusOK, tenant.ToResponse())
}

// UpdateSettings saves the author-editable settings
// PUT /api/v1/settings
func (h *TenantHandler) UpdateSettings(c *gin.Context) {
	ownerID, ok := middleware.GetOwnerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tenant, err := h.tenantService.UpdateSettings(c.Request.Context(), ownerID, req)
	if err != nil {
		h.respondTenantError(c, err)
		return
	}

	response.Success(c, http.StatusOK, tenant.ToResponse())
}

// ConnectDomain starts custom-domain verification
// POST /api/v1/settings/domain
func (h *TenantHandler) ConnectDomain(c *gin.Context) {
	ownerID, ok := middleware.GetOwnerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	var req model.ConnectDomainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	tenant, err := h.tenantService.ConnectDomain(c.Request.Context(), ownerID, req)
	if err != nil {
		h.respondTenantError(c, err)
		return
	}

	response.Success(c, http.StatusOK, tenant.ToResponse())
}

// ActivateDomain flips a verified domain to active
// POST /api/v1/settings/domain/activate
func (h *TenantHandler) ActivateDomain(c *gin.Context) {
	ownerID, ok := middleware.GetOwnerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	tenant, err := h.tenantService.ActivateDomain(c.Request.Context(), ownerID)
	if err != nil {
		h.respondTenantError(c, err)
		return
	}

	response.Success(c, http.StatusOK, tenant.ToResponse())
}

// DisconnectDomain removes the custom domain
// DELETE /api/v1/settings/domain
func (h *TenantHandler) DisconnectDomain(c *gin.Context) {
	ownerID, ok := middleware.GetOwnerID(c)
	if !ok {
		response.Unauthorized(c, "Unauthorized")
		return
	}

	tenant, err := h.tenantService.DisconnectDomain(c.Request.Context(), ownerID)
	if err != nil {
		h.respondTenantError(c, err)
		return
	}

	response.Success(c, http.StatusOK, tenant.ToResponse())
}

// =====================================================
// ERROR MAPPING
// =====================================================

func (h *TenantHandler) respondTenantError(c *gin.Context, err error) {
	var vErr validation.Errors
	if errors.As(err, &vErr) {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request", vErr)
		return
	}

	var tErr *model.TenantError
	if errors.As(err, &tErr) {
		switch {
		case errors.Is(tErr.Err, model.ErrTenantNotFound):
			response.ErrorResponse(c, http.StatusNotFound, tErr.Code, tErr.Message)
		case errors.Is(tErr.Err, model.ErrSubdomainTaken),
			errors.Is(tErr.Err, model.ErrCustomDomainTaken):
			response.ErrorResponse(c, http.StatusConflict, tErr.Code, tErr.Message)
		case errors.Is(tErr.Err, model.ErrDomainNotConnected):
			response.ErrorResponse(c, http.StatusBadRequest, tErr.Code, tErr.Message)
		default:
			response.ErrorResponse(c, http.StatusBadGateway, tErr.Code, tErr.Message)
		}
		return
	}

	response.InternalServerError(c, "Internal server error")
}
