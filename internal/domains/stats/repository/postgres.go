package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"inkwell-backend/internal/domains/stats/model"
)

// postgresRepository implements StatsRepository
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new stats repository instance
func NewPostgresRepository(pool *pgxpool.Pool) StatsRepository {
	return &postgresRepository{
		pool: pool,
	}
}

// IncrementCounter bumps the lifetime counter on the post row. The
// published guard drops events for drafts and deleted posts without an
// error; the caller only learns whether something matched.
func (r *postgresRepository) IncrementCounter(ctx context.Context, postID uuid.UUID, event model.EventType) (bool, error) {
	column := counterColumn(event)
	query := fmt.Sprintf(
		`UPDATE posts SET %s = %s + 1 WHERE id = $1 AND published = TRUE`,
		column, column,
	)

	result, err := r.pool.Exec(ctx, query, postID)
	if err != nil {
		return false, fmt.Errorf("failed to increment %s counter: %w", event, err)
	}
	return result.RowsAffected() > 0, nil
}

// UpsertDaily folds one event into the day's rollup row. INSERT ... ON
// CONFLICT keeps the increment atomic under concurrent writers.
func (r *postgresRepository) UpsertDaily(ctx context.Context, postID uuid.UUID, day time.Time, event model.EventType) error {
	views, shares := 0, 0
	if event == model.EventShare {
		shares = 1
	} else {
		views = 1
	}

	query := `
    INSERT INTO daily_post_stats (post_id, stat_date, views, shares)
    VALUES ($1, $2, $3, $4)
    ON CONFLICT (post_id, stat_date)
    DO UPDATE SET
      views = daily_post_stats.views + EXCLUDED.views,
      shares = daily_post_stats.shares + EXCLUDED.shares
  `

	if _, err := r.pool.Exec(ctx, query, postID, day, views, shares); err != nil {
		return fmt.Errorf("failed to upsert daily stats: %w", err)
	}
	return nil
}

// TenantTotals sums the lifetime counters across published posts
func (r *postgresRepository) TenantTotals(ctx context.Context, tenantID uuid.UUID) (int64, int64, int64, error) {
	query := `
    SELECT
      COALESCE(SUM(view_count), 0),
      COALESCE(SUM(share_count), 0),
      COUNT(*)
    FROM posts
    WHERE tenant_id = $1 AND published = TRUE
  `

	var views, shares, published int64
	err := r.pool.QueryRow(ctx, query, tenantID).Scan(&views, &shares, &published)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to sum tenant totals: %w", err)
	}
	return views, shares, published, nil
}

// DailySeries aggregates the tenant's rollup rows per day for the last
// N days, newest first
func (r *postgresRepository) DailySeries(ctx context.Context, tenantID uuid.UUID, days int) ([]model.DailyPoint, error) {
	query := `
    SELECT s.stat_date, SUM(s.views), SUM(s.shares)
    FROM daily_post_stats s
    JOIN posts p ON p.id = s.post_id
    WHERE p.tenant_id = $1 AND s.stat_date >= CURRENT_DATE - $2::int
    GROUP BY s.stat_date
    ORDER BY s.stat_date DESC
  `

	rows, err := r.pool.Query(ctx, query, tenantID, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily series: %w", err)
	}
	defer rows.Close()

	var series []model.DailyPoint
	for rows.Next() {
		var point model.DailyPoint
		if err := rows.Scan(&point.Date, &point.Views, &point.Shares); err != nil {
			return nil, fmt.Errorf("failed to scan daily point: %w", err)
		}
		series = append(series, point)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate daily series: %w", err)
	}
	return series, nil
}

// ReconcileRollups tops up daily rollups that fell behind the lifetime
// counters. Each event writes the counter first and the rollup second,
// so a crash between the two leaves the rollup short, never the
// counter. The deficit is credited to the current day, which loses the
// original date but restores the series total; counters are never
// touched.
func (r *postgresRepository) ReconcileRollups(ctx context.Context) (int64, error) {
	query := `
    INSERT INTO daily_post_stats (post_id, stat_date, views, shares)
    SELECT p.id, CURRENT_DATE,
           GREATEST(p.view_count - COALESCE(s.views, 0), 0),
           GREATEST(p.share_count - COALESCE(s.shares, 0), 0)
    FROM posts p
    LEFT JOIN (
      SELECT post_id, SUM(views) AS views, SUM(shares) AS shares
      FROM daily_post_stats
      GROUP BY post_id
    ) s ON s.post_id = p.id
    WHERE p.view_count > COALESCE(s.views, 0)
       OR p.share_count > COALESCE(s.shares, 0)
    ON CONFLICT (post_id, stat_date)
    DO UPDATE SET views = daily_post_stats.views + EXCLUDED.views,
                  shares = daily_post_stats.shares + EXCLUDED.shares
  `

	result, err := r.pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to reconcile rollups: %w", err)
	}
	return result.RowsAffected(), nil
}

func counterColumn(event model.EventType) string {
	if event == model.EventShare {
		return "share_count"
	}
	return "view_count"
}
