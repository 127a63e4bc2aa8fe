package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell-backend/internal/domains/subscriber/model"
)

// fakeSubscriberRepo keys rows by (tenant, email) like the real
// unique constraint
type fakeSubscriberRepo struct {
	rows  map[string]*model.Subscriber
	calls int
}

func newFakeSubscriberRepo() *fakeSubscriberRepo {
	return &fakeSubscriberRepo{rows: make(map[string]*model.Subscriber)}
}

func key(tenantID uuid.UUID, email string) string {
	return tenantID.String() + "|" + email
}

func (f *fakeSubscriberRepo) Subscribe(ctx context.Context, tenantID uuid.UUID, email string) (*model.Subscriber, bool, error) {
	f.calls++
	k := key(tenantID, email)
	if existing, ok := f.rows[k]; ok {
		existing.Active = true
		existing.UnsubscribedAt = nil
		copy := *existing
		return &copy, true, nil
	}
	sub := &model.Subscriber{
		ID:           uuid.New(),
		TenantID:     tenantID,
		Email:        email,
		Active:       true,
		SubscribedAt: time.Now(),
	}
	f.rows[k] = sub
	copy := *sub
	return &copy, false, nil
}

func (f *fakeSubscriberRepo) Unsubscribe(ctx context.Context, tenantID uuid.UUID, email string) error {
	if existing, ok := f.rows[key(tenantID, email)]; ok {
		now := time.Now()
		existing.Active = false
		existing.UnsubscribedAt = &now
	}
	return nil
}

func (f *fakeSubscriberRepo) ListActive(ctx context.Context, tenantID uuid.UUID, limit int) ([]*model.Subscriber, error) {
	var out []*model.Subscriber
	for _, s := range f.rows {
		if s.TenantID == tenantID && s.Active {
			copy := *s
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (f *fakeSubscriberRepo) CountActive(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	subs, _ := f.ListActive(ctx, tenantID, 0)
	return int64(len(subs)), nil
}

func TestSubscribeNewEmail(t *testing.T) {
	repo := newFakeSubscriberRepo()
	svc := NewSubscriberService(repo)
	tenantID := uuid.New()

	sub, outcome, err := svc.Subscribe(context.Background(), tenantID, model.SubscribeRequest{
		Email: "reader@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeSubscribed, outcome)
	assert.True(t, sub.Active)
}

func TestSubscribeDuplicateIsSuccessShape(t *testing.T) {
	repo := newFakeSubscriberRepo()
	svc := NewSubscriberService(repo)
	tenantID := uuid.New()

	_, _, err := svc.Subscribe(context.Background(), tenantID, model.SubscribeRequest{
		Email: "reader@example.com",
	})
	require.NoError(t, err)

	sub, outcome, err := svc.Subscribe(context.Background(), tenantID, model.SubscribeRequest{
		Email: "reader@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeAlreadySubscribed, outcome)
	assert.True(t, sub.Active)
}

func TestSubscribeValidatesBeforeStore(t *testing.T) {
	repo := newFakeSubscriberRepo()
	svc := NewSubscriberService(repo)

	_, _, err := svc.Subscribe(context.Background(), uuid.New(), model.SubscribeRequest{
		Email: "not-an-email",
	})

	var sErr *model.SubscriberError
	require.ErrorAs(t, err, &sErr)
	assert.ErrorIs(t, sErr.Err, model.ErrInvalidEmail)
	assert.Zero(t, repo.calls, "invalid email must never reach the store")
}

func TestSubscribeNormalizesEmail(t *testing.T) {
	repo := newFakeSubscriberRepo()
	svc := NewSubscriberService(repo)
	tenantID := uuid.New()

	_, _, err := svc.Subscribe(context.Background(), tenantID, model.SubscribeRequest{
		Email: "  Reader@Example.COM ",
	})
	require.NoError(t, err)

	// The differently-cased variant is the same subscription
	_, outcome, err := svc.Subscribe(context.Background(), tenantID, model.SubscribeRequest{
		Email: "reader@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeAlreadySubscribed, outcome)
}

func TestUnsubscribeNormalizesEmail(t *testing.T) {
	repo := newFakeSubscriberRepo()
	svc := NewSubscriberService(repo)
	tenantID := uuid.New()

	_, _, err := svc.Subscribe(context.Background(), tenantID, model.SubscribeRequest{
		Email: "reader@example.com",
	})
	require.NoError(t, err)

	// Padding and casing must not hide the existing subscription
	err = svc.Unsubscribe(context.Background(), tenantID, model.UnsubscribeRequest{
		Email: "  Reader@Example.COM ",
	})
	require.NoError(t, err)

	subs, err := svc.ListActive(context.Background(), tenantID, 0)
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestUnsubscribeThenResubscribe(t *testing.T) {
	repo := newFakeSubscriberRepo()
	svc := NewSubscriberService(repo)
	tenantID := uuid.New()

	_, _, err := svc.Subscribe(context.Background(), tenantID, model.SubscribeRequest{
		Email: "reader@example.com",
	})
	require.NoError(t, err)

	err = svc.Unsubscribe(context.Background(), tenantID, model.UnsubscribeRequest{
		Email: "reader@example.com",
	})
	require.NoError(t, err)

	count, err := svc.CountActive(context.Background(), tenantID)
	require.NoError(t, err)
	assert.Zero(t, count)

	sub, outcome, err := svc.Subscribe(context.Background(), tenantID, model.SubscribeRequest{
		Email: "reader@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, model.OutcomeAlreadySubscribed, outcome)
	assert.True(t, sub.Active)
}

func TestUnsubscribeUnknownEmailIsNoop(t *testing.T) {
	svc := NewSubscriberService(newFakeSubscriberRepo())

	err := svc.Unsubscribe(context.Background(), uuid.New(), model.UnsubscribeRequest{
		Email: "ghost@example.com",
	})
	assert.NoError(t, err)
}
