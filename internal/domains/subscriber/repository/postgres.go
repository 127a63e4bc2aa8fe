package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"inkwell-backend/internal/domains/subscriber/model"
)

// postgresRepository implements SubscriberRepository
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new subscriber repository instance
func NewPostgresRepository(pool *pgxpool.Pool) SubscriberRepository {
	return &postgresRepository{
		pool: pool,
	}
}

const subscriberColumns = `
	id, tenant_id, email, active, subscribed_at, unsubscribed_at
`

func scanSubscriber(row pgx.Row) (*model.Subscriber, error) {
	var s model.Subscriber
	err := row.Scan(
		&s.ID,
		&s.TenantID,
		&s.Email,
		&s.Active,
		&s.SubscribedAt,
		&s.UnsubscribedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Subscribe inserts the email and lets the unique constraint arbitrate
// duplicates. Two readers submitting the same address at once both get
// a success shape; the loser's 23505 turns into a reactivating update.
func (r *postgresRepository) Subscribe(ctx context.Context, tenantID uuid.UUID, email string) (*model.Subscriber, bool, error) {
	insert := `
    INSERT INTO subscribers (id, tenant_id, email, active, subscribed_at)
    VALUES ($1, $2, $3, TRUE, NOW())
    RETURNING ` + subscriberColumns

	sub, err := scanSubscriber(r.pool.QueryRow(ctx, insert, uuid.New(), tenantID, email))
	if err == nil {
		return sub, false, nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != "23505" { // unique_violation
		return nil, false, fmt.Errorf("failed to subscribe: %w", err)
	}

	// The row exists. Reactivate it if a previous unsubscribe turned
	// it off; an already-active row is left untouched.
	update := `
    UPDATE subscribers
    SET active = TRUE,
        unsubscribed_at = NULL,
        subscribed_at = CASE WHEN active THEN subscribed_at ELSE NOW() END
    WHERE tenant_id = $1 AND email = $2
    RETURNING ` + subscriberColumns

	sub, err = scanSubscriber(r.pool.QueryRow(ctx, update, tenantID, email))
	if err != nil {
		return nil, false, fmt.Errorf("failed to reactivate subscription: %w", err)
	}
	return sub, true, nil
}

// Unsubscribe deactivates a subscription. Zero rows affected means the
// email was never subscribed, which is not an error.
func (r *postgresRepository) Unsubscribe(ctx context.Context, tenantID uuid.UUID, email string) error {
	query := `
    UPDATE subscribers
    SET active = FALSE, unsubscribed_at = NOW()
    WHERE tenant_id = $1 AND email = $2 AND active = TRUE
  `

	if _, err := r.pool.Exec(ctx, query, tenantID, email); err != nil {
		return fmt.Errorf("failed to unsubscribe: %w", err)
	}
	return nil
}

// ListActive returns active subscribers, oldest first, so a capped
// broadcast always picks the same stable prefix of the list
func (r *postgresRepository) ListActive(ctx context.Context, tenantID uuid.UUID, limit int) ([]*model.Subscriber, error) {
	query := `
    SELECT ` + subscriberColumns + `
    FROM subscribers
    WHERE tenant_id = $1 AND active = TRUE
    ORDER BY subscribed_at ASC
  `
	args := []interface{}{tenantID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer rows.Close()

	var subs []*model.Subscriber
	for rows.Next() {
		s, err := scanSubscriber(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscribers: %w", err)
	}
	return subs, nil
}

// CountActive returns the size of the active list
func (r *postgresRepository) CountActive(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM subscribers WHERE tenant_id = $1 AND active = TRUE`,
		tenantID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}
	return count, nil
}
