package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell-backend/internal/domains/tenant/model"
)

// fakeTenantRepo serves tenants from in-memory maps and counts lookups
type fakeTenantRepo struct {
	bySubdomain    map[string]*model.Tenant
	byCustomDomain map[string]*model.Tenant
	customLookups  int
}

func (f *fakeTenantRepo) Create(ctx context.Context, tenant *model.Tenant) (*model.Tenant, error) {
	return tenant, nil
}

func (f *fakeTenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Tenant, error) {
	return nil, nil
}

func (f *fakeTenantRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*model.Tenant, error) {
	return nil, nil
}

func (f *fakeTenantRepo) GetBySubdomain(ctx context.Context, subdomain string) (*model.Tenant, error) {
	return f.bySubdomain[subdomain], nil
}

func (f *fakeTenantRepo) GetByCustomDomain(ctx context.Context, domain string) (*model.Tenant, error) {
	f.customLookups++
	return f.byCustomDomain[domain], nil
}

func (f *fakeTenantRepo) UpdateSettings(ctx context.Context, id uuid.UUID, req model.UpdateSettingsRequest) (*model.Tenant, error) {
	return nil, nil
}

func (f *fakeTenantRepo) SetCustomDomain(ctx context.Context, id uuid.UUID, domain *string, status model.DomainStatus) error {
	return nil
}

// fakeCache is a TTL-less map cache
type fakeCache struct {
	entries map[string]*model.Tenant
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*model.Tenant)}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	t, ok := f.entries[key]
	if !ok {
		return false, nil
	}
	*dest.(*model.Tenant) = *t
	return true, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	f.entries[key] = value.(*model.Tenant)
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error { return nil }
func (f *fakeCache) Ping(ctx context.Context) error                   { return nil }

func newTestResolver() (*fakeTenantRepo, ResolverInterface) {
	acme := &model.Tenant{ID: uuid.New(), Subdomain: "acme"}
	custom := &model.Tenant{ID: uuid.New(), Subdomain: "widgets"}
	repo := &fakeTenantRepo{
		bySubdomain:    map[string]*model.Tenant{"acme": acme, "widgets": custom},
		byCustomDomain: map[string]*model.Tenant{"blog.widgets.dev": custom},
	}
	return repo, NewResolver(repo, nil, "inkwell.pub")
}

func TestResolveCustomDomain(t *testing.T) {
	repo, r := newTestResolver()

	tenant, err := r.Resolve(context.Background(), "blog.widgets.dev", "")
	require.NoError(t, err)
	assert.Equal(t, repo.byCustomDomain["blog.widgets.dev"].ID, tenant.ID)
}

func TestResolveCustomDomainWinsOverPathSegment(t *testing.T) {
	// A request arriving on a custom domain ignores any subdomain
	// segment that happens to be in the path.
	_, r := newTestResolver()

	tenant, err := r.Resolve(context.Background(), "blog.widgets.dev", "acme")
	require.NoError(t, err)
	assert.Equal(t, "widgets", tenant.Subdomain)
}

func TestResolvePathSegmentOnPlatformHost(t *testing.T) {
	_, r := newTestResolver()

	tenant, err := r.Resolve(context.Background(), "inkwell.pub", "acme")
	require.NoError(t, err)
	assert.Equal(t, "acme", tenant.Subdomain)
}

func TestResolvePlatformSubdomainHostIsNotCustom(t *testing.T) {
	// anything.<apex> is still our hosting domain; with no path
	// segment there is no tenant context.
	_, r := newTestResolver()

	_, err := r.Resolve(context.Background(), "app.inkwell.pub", "")
	assert.ErrorIs(t, err, model.ErrNoContext)
}

func TestResolveNoContext(t *testing.T) {
	_, r := newTestResolver()

	_, err := r.Resolve(context.Background(), "inkwell.pub", "")
	assert.ErrorIs(t, err, model.ErrNoContext)

	_, err = r.Resolve(context.Background(), "", "")
	assert.ErrorIs(t, err, model.ErrNoContext)
}

func TestResolveUnknownCustomDomain(t *testing.T) {
	_, r := newTestResolver()

	_, err := r.Resolve(context.Background(), "nobody.example.com", "")
	assert.ErrorIs(t, err, model.ErrTenantNotFound)
}

func TestResolveUnknownSubdomain(t *testing.T) {
	_, r := newTestResolver()

	_, err := r.Resolve(context.Background(), "inkwell.pub", "ghost")
	assert.ErrorIs(t, err, model.ErrTenantNotFound)
}

func TestResolveLocalHostsUsePathSegment(t *testing.T) {
	_, r := newTestResolver()

	tenant, err := r.Resolve(context.Background(), "localhost:8080", "acme")
	require.NoError(t, err)
	assert.Equal(t, "acme", tenant.Subdomain)

	tenant, err = r.Resolve(context.Background(), "127.0.0.1:3000", "acme")
	require.NoError(t, err)
	assert.Equal(t, "acme", tenant.Subdomain)
}

func TestResolveStripsPortAndCase(t *testing.T) {
	_, r := newTestResolver()

	tenant, err := r.Resolve(context.Background(), "Blog.Widgets.DEV:443", "")
	require.NoError(t, err)
	assert.Equal(t, "widgets", tenant.Subdomain)
}

func TestResolveCustomDomainCached(t *testing.T) {
	acme := &model.Tenant{ID: uuid.New(), Subdomain: "widgets"}
	repo := &fakeTenantRepo{
		bySubdomain:    map[string]*model.Tenant{},
		byCustomDomain: map[string]*model.Tenant{"blog.widgets.dev": acme},
	}
	r := NewResolver(repo, newFakeCache(), "inkwell.pub")

	for i := 0; i < 3; i++ {
		tenant, err := r.Resolve(context.Background(), "blog.widgets.dev", "")
		require.NoError(t, err)
		assert.Equal(t, acme.ID, tenant.ID)
	}

	assert.Equal(t, 1, repo.customLookups)
}
