package service

import (
	"context"

	"github.com/google/uuid"

	"inkwell-backend/internal/domains/tenant/model"
)

// ServiceInterface is the tenant settings / lifecycle contract
type ServiceInterface interface {
	// EnsureForOwner returns the owner's tenant, creating the default
	// one (subdomain bootstrapped from the owner id) on first call.
	EnsureForOwner(ctx context.Context, ownerID uuid.UUID) (*model.Tenant, error)

	GetByID(ctx context.Context, id uuid.UUID) (*model.Tenant, error)
	UpdateSettings(ctx context.Context, ownerID uuid.UUID, req model.UpdateSettingsRequest) (*model.Tenant, error)

	// Custom domain lifecycle: connect starts external verification
	// (pending → verified/failed), activate flips verified → active,
	// disconnect clears the domain.
	ConnectDomain(ctx context.Context, ownerID uuid.UUID, req model.ConnectDomainRequest) (*model.Tenant, error)
	ActivateDomain(ctx context.Context, ownerID uuid.UUID) (*model.Tenant, error)
	DisconnectDomain(ctx context.Context, ownerID uuid.UUID) (*model.Tenant, error)
}

// ResolverInterface maps an inbound request to exactly one tenant
type ResolverInterface interface {
	// Resolve applies the addressing precedence: a hostname that is
	// neither the platform's own domain nor local is a custom-domain
	// lookup; otherwise a path subdomain segment is a subdomain
	// lookup; otherwise there is no tenant context.
	// Misses return model.ErrTenantNotFound; absent context returns
	// model.ErrNoContext.
	Resolve(ctx context.Context, hostname, pathSegment string) (*model.Tenant, error)
}

// DomainVerifier is the external provisioning API that attaches a
// custom domain to the platform's edge and reports verification.
type DomainVerifier interface {
	VerifyDomain(ctx context.Context, domain string) (verified bool, err error)
}
