package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"inkwell-backend/internal/domains/stats/model"
)

// StatsRepository maintains the fast per-post counters and the daily
// rollup rows behind them.
type StatsRepository interface {
	// IncrementCounter bumps the post's lifetime counter. It reports
	// whether a published post actually matched; engagement on drafts
	// or unknown posts is silently dropped.
	IncrementCounter(ctx context.Context, postID uuid.UUID, event model.EventType) (bool, error)

	// UpsertDaily folds one event into the (post, day) rollup row,
	// inserting it if the day is new. The statement is a single atomic
	// upsert, so concurrent events never lose increments.
	UpsertDaily(ctx context.Context, postID uuid.UUID, day time.Time, event model.EventType) error

	// TenantTotals sums lifetime counters across the tenant's
	// published posts.
	TenantTotals(ctx context.Context, tenantID uuid.UUID) (views, shares, published int64, err error)

	// DailySeries returns the tenant's per-day engagement for the last
	// N days, newest first.
	DailySeries(ctx context.Context, tenantID uuid.UUID, days int) ([]model.DailyPoint, error)

	// ReconcileRollups repairs daily rollups that fell behind their
	// post's lifetime counters and returns how many posts were
	// corrected. The counter write lands first in the event path, so
	// it is always the rollup side that can be short.
	ReconcileRollups(ctx context.Context) (int64, error)
}
