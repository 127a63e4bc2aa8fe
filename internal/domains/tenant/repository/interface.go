package repository

import (
	"context"

	"github.com/google/uuid"

	"inkwell-backend/internal/domains/tenant/model"
)

// TenantRepository is the tenant directory's storage contract.
// Lookups return (nil, nil) on miss; the service layer translates
// misses into domain errors.
type TenantRepository interface {
	Create(ctx context.Context, tenant *model.Tenant) (*model.Tenant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Tenant, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (*model.Tenant, error)
	GetBySubdomain(ctx context.Context, subdomain string) (*model.Tenant, error)
	GetByCustomDomain(ctx context.Context, domain string) (*model.Tenant, error)
	UpdateSettings(ctx context.Context, id uuid.UUID, req model.UpdateSettingsRequest) (*model.Tenant, error)
	SetCustomDomain(ctx context.Context, id uuid.UUID, domain *string, status model.DomainStatus) error
}
