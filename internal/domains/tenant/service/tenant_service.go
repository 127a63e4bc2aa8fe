package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"inkwell-backend/internal/domains/tenant/model"
	"inkwell-backend/internal/domains/tenant/repository"
	"inkwell-backend/pkg/logger"
)

// =====================================================
// SERVICE IMPLEMENTATION
// =====================================================

type tenantService struct {
	repo     repository.TenantRepository
	verifier DomainVerifier
}

func NewTenantService(repo repository.TenantRepository, verifier DomainVerifier) ServiceInterface {
	return &tenantService{
		repo:     repo,
		verifier: verifier,
	}
}

// EnsureForOwner implements the first-login bootstrap: every owner
// gets exactly one tenant with a generated subdomain.
func (s *tenantService) EnsureForOwner(ctx context.Context, ownerID uuid.UUID) (*model.Tenant, error) {
	existing, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up tenant for owner: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	tenant := &model.Tenant{
		ID:                 uuid.New(),
		OwnerID:            ownerID,
		DisplayName:        "My Publication",
		Subdomain:          model.DefaultSubdomain(ownerID),
		CustomDomainStatus: model.DomainStatusNone,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}

	created, err := s.repo.Create(ctx, tenant)
	if err != nil {
		// Two concurrent first requests can race here; the loser just
		// reads the winner's row.
		if existing, lookupErr := s.repo.GetByOwner(ctx, ownerID); lookupErr == nil && existing != nil {
			return existing, nil
		}
		return nil, err
	}

	logger.Info("Bootstrapped tenant for owner", map[string]interface{}{
		"tenant_id": created.ID.String(),
		"subdomain": created.Subdomain,
	})

	return created, nil
}

func (s *tenantService) GetByID(ctx context.Context, id uuid.UUID) (*model.Tenant, error) {
	tenant, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, model.NewTenantNotFoundError()
	}
	return tenant, nil
}

func (s *tenantService) UpdateSettings(ctx context.Context, ownerID uuid.UUID, req model.UpdateSettingsRequest) (*model.Tenant, error) {
	// Step 1: Validate request
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Step 2: Ensure the tenant exists (bootstraps on first save)
	tenant, err := s.EnsureForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	// Step 3: Empty subdomain falls back to the generated default
	if req.Subdomain == "" {
		req.Subdomain = model.DefaultSubdomain(ownerID)
	}

	return s.repo.UpdateSettings(ctx, tenant.ID, req)
}

// =====================================================
// CUSTOM DOMAIN LIFECYCLE
// =====================================================

func (s *tenantService) ConnectDomain(ctx context.Context, ownerID uuid.UUID, req model.ConnectDomainRequest) (*model.Tenant, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tenant, err := s.EnsureForOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	// Record the domain as pending before calling out, so a crashed
	// verification leaves a visible pending state instead of nothing.
	if err := s.repo.SetCustomDomain(ctx, tenant.ID, &req.Domain, model.DomainStatusPending); err != nil {
		return nil, err
	}

	verified, err := s.verifier.VerifyDomain(ctx, req.Domain)
	if err != nil {
		if setErr := s.repo.SetCustomDomain(ctx, tenant.ID, &req.Domain, model.DomainStatusFailed); setErr != nil {
			logger.Error("failed to record domain verification failure", setErr)
		}
		return nil, model.NewVerificationFailedError(req.Domain, err)
	}

	status := model.DomainStatusFailed
	if verified {
		status = model.DomainStatusVerified
	}
	if err := s.repo.SetCustomDomain(ctx, tenant.ID, &req.Domain, status); err != nil {
		return nil, err
	}

	logger.Info("Custom domain verification finished", map[string]interface{}{
		"tenant_id": tenant.ID.String(),
		"domain":    req.Domain,
		"status":    string(status),
	})

	return s.GetByID(ctx, tenant.ID)
}

func (s *tenantService) ActivateDomain(ctx context.Context, ownerID uuid.UUID) (*model.Tenant, error) {
	tenant, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, model.NewTenantNotFoundError()
	}
	if tenant.CustomDomain == nil || tenant.CustomDomainStatus != model.DomainStatusVerified {
		return nil, &model.TenantError{
			Code:    model.ErrCodeDomainNotConnected,
			Message: "Domain must be verified before activation",
			Err:     model.ErrDomainNotConnected,
		}
	}

	if err := s.repo.SetCustomDomain(ctx, tenant.ID, tenant.CustomDomain, model.DomainStatusActive); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, tenant.ID)
}

func (s *tenantService) DisconnectDomain(ctx context.Context, ownerID uuid.UUID) (*model.Tenant, error) {
	tenant, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, model.NewTenantNotFoundError()
	}

	if err := s.repo.SetCustomDomain(ctx, tenant.ID, nil, model.DomainStatusNone); err != nil {
		return nil, err
	}

	return s.GetByID(ctx, tenant.ID)
}
