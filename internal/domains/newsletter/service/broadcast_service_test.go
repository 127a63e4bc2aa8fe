package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell-backend/internal/domains/newsletter/model"
	postmodel "inkwell-backend/internal/domains/post/model"
	subscribermodel "inkwell-backend/internal/domains/subscriber/model"
	tenantmodel "inkwell-backend/internal/domains/tenant/model"
)

// =====================================================
// FAKES
// =====================================================

type fakePostRepo struct {
	post *postmodel.Post
}

func (f *fakePostRepo) Create(ctx context.Context, post *postmodel.Post) error { return nil }

func (f *fakePostRepo) GetByID(ctx context.Context, id uuid.UUID) (*postmodel.Post, error) {
	if f.post != nil && f.post.ID == id {
		return f.post, nil
	}
	return nil, nil
}

func (f *fakePostRepo) GetBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*postmodel.Post, error) {
	return nil, nil
}

func (f *fakePostRepo) List(ctx context.Context, tenantID uuid.UUID, publishedOnly bool) ([]*postmodel.Post, error) {
	return nil, nil
}

func (f *fakePostRepo) Update(ctx context.Context, post *postmodel.Post) error { return nil }
func (f *fakePostRepo) Delete(ctx context.Context, id uuid.UUID) error         { return nil }

func (f *fakePostRepo) Publish(ctx context.Context, id uuid.UUID) (*postmodel.Post, error) {
	return nil, nil
}

func (f *fakePostRepo) Unpublish(ctx context.Context, id uuid.UUID) (*postmodel.Post, error) {
	return nil, nil
}

func (f *fakePostRepo) SetCoverImage(ctx context.Context, id uuid.UUID, url string) error {
	return nil
}

type fakeTenantRepo struct {
	tenant *tenantmodel.Tenant
}

func (f *fakeTenantRepo) Create(ctx context.Context, tenant *tenantmodel.Tenant) (*tenantmodel.Tenant, error) {
	return tenant, nil
}

func (f *fakeTenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*tenantmodel.Tenant, error) {
	if f.tenant != nil && f.tenant.ID == id {
		return f.tenant, nil
	}
	return nil, nil
}

func (f *fakeTenantRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*tenantmodel.Tenant, error) {
	return nil, nil
}

func (f *fakeTenantRepo) GetBySubdomain(ctx context.Context, subdomain string) (*tenantmodel.Tenant, error) {
	return nil, nil
}

func (f *fakeTenantRepo) GetByCustomDomain(ctx context.Context, domain string) (*tenantmodel.Tenant, error) {
	return nil, nil
}

func (f *fakeTenantRepo) UpdateSettings(ctx context.Context, id uuid.UUID, req tenantmodel.UpdateSettingsRequest) (*tenantmodel.Tenant, error) {
	return nil, nil
}

func (f *fakeTenantRepo) SetCustomDomain(ctx context.Context, id uuid.UUID, domain *string, status tenantmodel.DomainStatus) error {
	return nil
}

type fakeSubscriberRepo struct {
	subs []*subscribermodel.Subscriber
}

func (f *fakeSubscriberRepo) Subscribe(ctx context.Context, tenantID uuid.UUID, email string) (*subscribermodel.Subscriber, bool, error) {
	return nil, false, nil
}

func (f *fakeSubscriberRepo) Unsubscribe(ctx context.Context, tenantID uuid.UUID, email string) error {
	return nil
}

func (f *fakeSubscriberRepo) ListActive(ctx context.Context, tenantID uuid.UUID, limit int) ([]*subscribermodel.Subscriber, error) {
	if limit > 0 && len(f.subs) > limit {
		return f.subs[:limit], nil
	}
	return f.subs, nil
}

func (f *fakeSubscriberRepo) CountActive(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	return int64(len(f.subs)), nil
}

// fakeSender records every dispatch and can be told to reject
// specific addresses
type fakeSender struct {
	sent    []sentEmail
	failFor map[string]bool
}

type sentEmail struct {
	from, to, subject, html string
}

func (f *fakeSender) Send(ctx context.Context, from, to, subject, html string) (string, error) {
	if f.failFor[to] {
		return "", errors.New("mailbox unavailable")
	}
	f.sent = append(f.sent, sentEmail{from: from, to: to, subject: subject, html: html})
	return "msg-" + to, nil
}

// =====================================================
// TESTS
// =====================================================

func strPtr(s string) *string { return &s }

func newBroadcastFixture(subscriberCount int) (*fakePostRepo, *fakeTenantRepo, *fakeSubscriberRepo, *fakeSender, ServiceInterface) {
	now := time.Now()
	tenant := &tenantmodel.Tenant{
		ID:              uuid.New(),
		DisplayName:     "Acme Blog",
		Subdomain:       "acme",
		NewsletterEmail: strPtr("news@acme.dev"),
	}
	post := &postmodel.Post{
		ID:          uuid.New(),
		TenantID:    tenant.ID,
		Title:       "Shipping v2",
		Slug:        "shipping-v2",
		Published:   true,
		PublishedAt: &now,
	}

	subs := make([]*subscribermodel.Subscriber, 0, subscriberCount)
	for i := 0; i < subscriberCount; i++ {
		subs = append(subs, &subscribermodel.Subscriber{
			ID:       uuid.New(),
			TenantID: tenant.ID,
			Email:    fmt.Sprintf("reader%d@example.com", i),
			Active:   true,
		})
	}

	postRepo := &fakePostRepo{post: post}
	tenantRepo := &fakeTenantRepo{tenant: tenant}
	subscriberRepo := &fakeSubscriberRepo{subs: subs}
	sender := &fakeSender{failFor: map[string]bool{}}

	svc := NewBroadcastService(
		postRepo, tenantRepo, subscriberRepo, sender,
		NewRenderer("https", "inkwell.pub"),
		50, time.Second,
	)
	return postRepo, tenantRepo, subscriberRepo, sender, svc
}

func TestBroadcastSendsToAllRecipients(t *testing.T) {
	postRepo, _, _, sender, svc := newBroadcastFixture(3)

	result, err := svc.Broadcast(context.Background(), postRepo.post.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeCompleted, result.Outcome)
	assert.Equal(t, 3, result.Attempted)
	assert.Equal(t, 3, result.Sent)
	assert.Zero(t, result.Failed)
	assert.Len(t, sender.sent, 3)
}

func TestBroadcastRendersOnce(t *testing.T) {
	postRepo, _, _, sender, svc := newBroadcastFixture(3)

	_, err := svc.Broadcast(context.Background(), postRepo.post.ID)
	require.NoError(t, err)

	require.Len(t, sender.sent, 3)
	for _, s := range sender.sent {
		assert.Equal(t, sender.sent[0].subject, s.subject)
		assert.Equal(t, sender.sent[0].html, s.html)
		assert.Equal(t, "news@acme.dev", s.from)
	}
	assert.Equal(t, "New post on Acme Blog: Shipping v2", sender.sent[0].subject)
}

func TestBroadcastFailureDoesNotStopTheLoop(t *testing.T) {
	postRepo, _, _, sender, svc := newBroadcastFixture(4)
	sender.failFor["reader1@example.com"] = true

	result, err := svc.Broadcast(context.Background(), postRepo.post.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeCompleted, result.Outcome)
	assert.Equal(t, 4, result.Attempted)
	assert.Equal(t, 3, result.Sent)
	assert.Equal(t, 1, result.Failed)

	require.Len(t, result.Recipients, 4)
	assert.Equal(t, model.StatusSent, result.Recipients[0].Status)
	assert.Equal(t, model.StatusFailed, result.Recipients[1].Status)
	assert.NotEmpty(t, result.Recipients[1].Error)
	assert.Equal(t, model.StatusSent, result.Recipients[2].Status)
	assert.Equal(t, model.StatusSent, result.Recipients[3].Status)
}

func TestBroadcastCapsRecipients(t *testing.T) {
	postRepo, _, _, sender, svc := newBroadcastFixture(60)

	result, err := svc.Broadcast(context.Background(), postRepo.post.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, result.Attempted)
	assert.Equal(t, 50, result.Sent)
	assert.Len(t, sender.sent, 50)
}

func TestBroadcastDisabledNewsletter(t *testing.T) {
	postRepo, tenantRepo, _, sender, svc := newBroadcastFixture(3)
	tenantRepo.tenant.NewsletterEmail = nil

	result, err := svc.Broadcast(context.Background(), postRepo.post.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeDisabled, result.Outcome)
	assert.Empty(t, sender.sent)
}

func TestBroadcastNoRecipients(t *testing.T) {
	postRepo, _, subscriberRepo, sender, svc := newBroadcastFixture(0)
	subscriberRepo.subs = nil

	result, err := svc.Broadcast(context.Background(), postRepo.post.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeNoRecipients, result.Outcome)
	assert.Empty(t, sender.sent)
}

func TestBroadcastUnpublishedPostIsSoftSkip(t *testing.T) {
	postRepo, _, _, sender, svc := newBroadcastFixture(3)
	postRepo.post.Published = false
	postRepo.post.PublishedAt = nil

	result, err := svc.Broadcast(context.Background(), postRepo.post.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeUnpublished, result.Outcome)
	assert.Empty(t, sender.sent)
}

func TestBroadcastMissingPostIsHardError(t *testing.T) {
	_, _, _, _, svc := newBroadcastFixture(3)

	_, err := svc.Broadcast(context.Background(), uuid.New())
	assert.ErrorIs(t, err, model.ErrPostNotFound)
}

func TestBroadcastMissingTenantIsHardError(t *testing.T) {
	postRepo, tenantRepo, _, _, svc := newBroadcastFixture(3)
	tenantRepo.tenant = nil

	_, err := svc.Broadcast(context.Background(), postRepo.post.ID)
	assert.ErrorIs(t, err, model.ErrTenantNotFound)
}
