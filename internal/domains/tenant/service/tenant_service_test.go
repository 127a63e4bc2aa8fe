package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell-backend/internal/domains/tenant/model"
)

// statefulTenantRepo is a mutable in-memory store for lifecycle tests
type statefulTenantRepo struct {
	byOwner map[uuid.UUID]*model.Tenant
}

func newStatefulTenantRepo() *statefulTenantRepo {
	return &statefulTenantRepo{byOwner: make(map[uuid.UUID]*model.Tenant)}
}

func (s *statefulTenantRepo) Create(ctx context.Context, tenant *model.Tenant) (*model.Tenant, error) {
	copy := *tenant
	s.byOwner[tenant.OwnerID] = &copy
	return &copy, nil
}

func (s *statefulTenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Tenant, error) {
	for _, t := range s.byOwner {
		if t.ID == id {
			copy := *t
			return &copy, nil
		}
	}
	return nil, nil
}

func (s *statefulTenantRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*model.Tenant, error) {
	t, ok := s.byOwner[ownerID]
	if !ok {
		return nil, nil
	}
	copy := *t
	return &copy, nil
}

func (s *statefulTenantRepo) GetBySubdomain(ctx context.Context, subdomain string) (*model.Tenant, error) {
	return nil, nil
}

func (s *statefulTenantRepo) GetByCustomDomain(ctx context.Context, domain string) (*model.Tenant, error) {
	return nil, nil
}

func (s *statefulTenantRepo) UpdateSettings(ctx context.Context, id uuid.UUID, req model.UpdateSettingsRequest) (*model.Tenant, error) {
	for _, t := range s.byOwner {
		if t.ID == id {
			t.DisplayName = req.DisplayName
			t.Description = req.Description
			t.Subdomain = req.Subdomain
			t.NewsletterEmail = req.NewsletterEmail
			copy := *t
			return &copy, nil
		}
	}
	return nil, model.NewTenantNotFoundError()
}

func (s *statefulTenantRepo) SetCustomDomain(ctx context.Context, id uuid.UUID, domain *string, status model.DomainStatus) error {
	for _, t := range s.byOwner {
		if t.ID == id {
			t.CustomDomain = domain
			t.CustomDomainStatus = status
			return nil
		}
	}
	return model.NewTenantNotFoundError()
}

// stubVerifier answers domain verification without the network
type stubVerifier struct {
	verified bool
	err      error
}

func (v *stubVerifier) VerifyDomain(ctx context.Context, domain string) (bool, error) {
	return v.verified, v.err
}

func TestEnsureForOwnerBootstraps(t *testing.T) {
	repo := newStatefulTenantRepo()
	svc := NewTenantService(repo, &stubVerifier{})
	ownerID := uuid.New()

	tenant, err := svc.EnsureForOwner(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, ownerID, tenant.OwnerID)
	assert.Equal(t, model.DefaultSubdomain(ownerID), tenant.Subdomain)

	// Second call returns the same tenant, no second bootstrap
	again, err := svc.EnsureForOwner(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, tenant.ID, again.ID)
}

func TestUpdateSettingsEmptySubdomainFallsBack(t *testing.T) {
	repo := newStatefulTenantRepo()
	svc := NewTenantService(repo, &stubVerifier{})
	ownerID := uuid.New()

	_, err := svc.UpdateSettings(context.Background(), ownerID, model.UpdateSettingsRequest{
		DisplayName: "Acme Blog",
		Subdomain:   "acme",
	})
	require.NoError(t, err)

	tenant, err := svc.EnsureForOwner(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, "acme", tenant.Subdomain)
}

func TestConnectDomainVerified(t *testing.T) {
	repo := newStatefulTenantRepo()
	svc := NewTenantService(repo, &stubVerifier{verified: true})
	ownerID := uuid.New()

	tenant, err := svc.ConnectDomain(context.Background(), ownerID, model.ConnectDomainRequest{
		Domain: "blog.acme.dev",
	})
	require.NoError(t, err)
	require.NotNil(t, tenant.CustomDomain)
	assert.Equal(t, "blog.acme.dev", *tenant.CustomDomain)
	assert.Equal(t, model.DomainStatusVerified, tenant.CustomDomainStatus)
}

func TestConnectDomainVerificationRejected(t *testing.T) {
	repo := newStatefulTenantRepo()
	svc := NewTenantService(repo, &stubVerifier{verified: false})
	ownerID := uuid.New()

	tenant, err := svc.ConnectDomain(context.Background(), ownerID, model.ConnectDomainRequest{
		Domain: "blog.acme.dev",
	})
	require.NoError(t, err)
	assert.Equal(t, model.DomainStatusFailed, tenant.CustomDomainStatus)
}

func TestConnectDomainVerifierError(t *testing.T) {
	repo := newStatefulTenantRepo()
	svc := NewTenantService(repo, &stubVerifier{err: errors.New("api unreachable")})
	ownerID := uuid.New()

	_, err := svc.ConnectDomain(context.Background(), ownerID, model.ConnectDomainRequest{
		Domain: "blog.acme.dev",
	})
	require.Error(t, err)

	// The failed attempt is visible on the tenant
	tenant, lookupErr := svc.EnsureForOwner(context.Background(), ownerID)
	require.NoError(t, lookupErr)
	assert.Equal(t, model.DomainStatusFailed, tenant.CustomDomainStatus)
}

func TestActivateDomainRequiresVerified(t *testing.T) {
	repo := newStatefulTenantRepo()
	svc := NewTenantService(repo, &stubVerifier{verified: true})
	ownerID := uuid.New()

	// No domain connected yet
	_, err := svc.EnsureForOwner(context.Background(), ownerID)
	require.NoError(t, err)
	_, err = svc.ActivateDomain(context.Background(), ownerID)
	var tErr *model.TenantError
	require.ErrorAs(t, err, &tErr)
	assert.ErrorIs(t, tErr.Err, model.ErrDomainNotConnected)

	// After verification activation succeeds
	_, err = svc.ConnectDomain(context.Background(), ownerID, model.ConnectDomainRequest{
		Domain: "blog.acme.dev",
	})
	require.NoError(t, err)

	tenant, err := svc.ActivateDomain(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, model.DomainStatusActive, tenant.CustomDomainStatus)
}

func TestDisconnectDomain(t *testing.T) {
	repo := newStatefulTenantRepo()
	svc := NewTenantService(repo, &stubVerifier{verified: true})
	ownerID := uuid.New()

	_, err := svc.ConnectDomain(context.Background(), ownerID, model.ConnectDomainRequest{
		Domain: "blog.acme.dev",
	})
	require.NoError(t, err)

	tenant, err := svc.DisconnectDomain(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Nil(t, tenant.CustomDomain)
	assert.Equal(t, model.DomainStatusNone, tenant.CustomDomainStatus)
}
