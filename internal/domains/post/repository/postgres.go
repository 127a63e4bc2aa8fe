package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inkwell-backend/internal/domains/post/model"
)

// postgresRepository implements PostRepository
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new post repository instance
func NewPostgresRepository(pool *pgxpool.Pool) PostRepository {
	return &postgresRepository{
		pool: pool,
	}
}

const postColumns = `
	id, tenant_id, title, slug, content, excerpt, cover_image_url,
	published, published_at, view_count, share_count, created_at, updated_at
`

func scanPost(row pgx.Row) (*model.Post, error) {
	var p model.Post
	err := row.Scan(
		&p.ID,
		&p.TenantID,
		&p.Title,
		&p.Slug,
		&p.Content,
		&p.Excerpt,
		&p.CoverImageURL,
		&p.Published,
		&p.PublishedAt,
		&p.ViewCount,
		&p.ShareCount,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new draft
func (r *postgresRepository) Create(ctx context.Context, post *model.Post) error {
	query := `
    INSERT INTO posts (id, tenant_id, title, slug, content, excerpt)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING ` + postColumns

	row := r.pool.QueryRow(ctx, query,
		post.ID, post.TenantID, post.Title, post.Slug, post.Content, post.Excerpt,
	)

	created, err := scanPost(row)
	if err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	*post = *created
	return nil
}

// GetByID retrieves a post by ID
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	p, err := scanPost(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get post by id: %w", err)
	}
	return p, nil
}

// GetBySlug retrieves the newest published post matching the slug.
// Slugs are not unique within a tenant, so ties resolve to the most
// recently created row.
func (r *postgresRepository) GetBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*model.Post, error) {
	query := `
    SELECT ` + postColumns + `
    FROM posts
    WHERE tenant_id = $1 AND slug = $2 AND published = TRUE
    ORDER BY created_at DESC
    LIMIT 1
  `

	p, err := scanPost(r.pool.QueryRow(ctx, query, tenantID, slug))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get post by slug: %w", err)
	}
	return p, nil
}

// List retrieves the tenant's posts, newest first
func (r *postgresRepository) List(ctx context.Context, tenantID uuid.UUID, publishedOnly bool) ([]*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE tenant_id = $1`
	if publishedOnly {
		query += ` AND published = TRUE ORDER BY published_at DESC`
	} else {
		query += ` ORDER BY created_at DESC`
	}

	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate posts: %w", err)
	}
	return posts, nil
}

// Update saves the editable fields of a post
func (r *postgresRepository) Update(ctx context.Context, post *model.Post) error {
	query := `
    UPDATE posts
    SET title = $1, slug = $2, content = $3, excerpt = $4, updated_at = NOW()
    WHERE id = $5
    RETURNING ` + postColumns

	row := r.pool.QueryRow(ctx, query,
		post.Title, post.Slug, post.Content, post.Excerpt, post.ID,
	)

	updated, err := scanPost(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.NewPostNotFoundError()
		}
		return fmt.Errorf("failed to update post: %w", err)
	}
	*post = *updated
	return nil
}

// Delete removes a post
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.NewPostNotFoundError()
	}
	return nil
}

// Publish flips a draft to published in a single statement. The
// published guard in the WHERE clause makes the transition happen at
// most once even under concurrent requests; a repeat call scans no row
// and returns (nil, nil).
func (r *postgresRepository) Publish(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	query := `
    UPDATE posts
    SET published = TRUE, published_at = NOW(), updated_at = NOW()
    WHERE id = $1 AND published = FALSE
    RETURNING ` + postColumns

	p, err := scanPost(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to publish post: %w", err)
	}
	return p, nil
}

// Unpublish reverts a post to draft. Published and published_at flip
// together so the pair never disagrees.
func (r *postgresRepository) Unpublish(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	query := `
    UPDATE posts
    SET published = FALSE, published_at = NULL, updated_at = NOW()
    WHERE id = $1
    RETURNING ` + postColumns

	p, err := scanPost(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewPostNotFoundError()
		}
		return nil, fmt.Errorf("failed to unpublish post: %w", err)
	}
	return p, nil
}

// SetCoverImage records the uploaded cover's URL
func (r *postgresRepository) SetCoverImage(ctx context.Context, id uuid.UUID, url string) error {
	result, err := r.pool.Exec(ctx,
		`UPDATE posts SET cover_image_url = $1, updated_at = NOW() WHERE id = $2`,
		url, id,
	)
	if err != nil {
		return fmt.Errorf("failed to set cover image: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.NewPostNotFoundError()
	}
	return nil
}
