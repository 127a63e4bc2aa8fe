package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"inkwell-backend/internal/domains/tenant/model"
)

// postgresRepository implements TenantRepository
// Uses pgxpool for PostgreSQL connection management
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new tenant repository instance
func NewPostgresRepository(pool *pgxpool.Pool) TenantRepository {
	return &postgresRepository{
		pool: pool,
	}
}

const tenantColumns = `
	id, owner_id, display_name,
	COALESCE(description, '') AS description,
	subdomain, custom_domain, custom_domain_status,
	newsletter_email, twitter_link, github_link, linkedin_link, website_link,
	created_at, updated_at
`

func scanTenant(row pgx.Row) (*model.Tenant, error) {
	var t model.Tenant
	err := row.Scan(
		&t.ID,
		&t.OwnerID,
		&t.DisplayName,
		&t.Description,
		&t.Subdomain,
		&t.CustomDomain,
		&t.CustomDomainStatus,
		&t.NewsletterEmail,
		&t.TwitterLink,
		&t.GithubLink,
		&t.LinkedinLink,
		&t.WebsiteLink,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Create inserts a new tenant record
func (r *postgresRepository) Create(ctx context.Context, tenant *model.Tenant) (*model.Tenant, error) {
	query := `
    INSERT INTO tenants (id, owner_id, display_name, description, subdomain, custom_domain_status)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING ` + tenantColumns

	row := r.pool.QueryRow(ctx, query,
		tenant.ID, tenant.OwnerID, tenant.DisplayName, tenant.Description,
		tenant.Subdomain, model.DomainStatusNone,
	)

	created, err := scanTenant(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			if strings.Contains(pgErr.ConstraintName, "subdomain") {
				return nil, model.NewSubdomainTakenError(tenant.Subdomain)
			}
			return nil, model.NewTenantNotFoundError() // owner already has a tenant
		}
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}
	return created, nil
}

// GetByID retrieves a tenant by ID
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`

	t, err := scanTenant(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tenant by id: %w", err)
	}
	return t, nil
}

// GetByOwner retrieves the tenant owned by an account
func (r *postgresRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) (*model.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE owner_id = $1`

	t, err := scanTenant(r.pool.QueryRow(ctx, query, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tenant by owner: %w", err)
	}
	return t, nil
}

// GetBySubdomain retrieves a tenant by its platform subdomain
func (r *postgresRepository) GetBySubdomain(ctx context.Context, subdomain string) (*model.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE subdomain = $1`

	t, err := scanTenant(r.pool.QueryRow(ctx, query, subdomain))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tenant by subdomain: %w", err)
	}
	return t, nil
}

// GetByCustomDomain retrieves a tenant by its custom domain.
// The hostname is matched case-insensitively; DNS names are not case
// sensitive but stored values are normalized to lowercase anyway.
func (r *postgresRepository) GetByCustomDomain(ctx context.Context, domain string) (*model.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE custom_domain = LOWER($1)`

	t, err := scanTenant(r.pool.QueryRow(ctx, query, domain))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get tenant by custom domain: %w", err)
	}
	return t, nil
}

// UpdateSettings updates the author-editable fields
func (r *postgresRepository) UpdateSettings(ctx context.Context, id uuid.UUID, req model.UpdateSettingsRequest) (*model.Tenant, error) {
	query := `
    UPDATE tenants
    SET display_name = $1, description = $2, subdomain = $3,
        newsletter_email = $4, twitter_link = $5, github_link = $6,
        linkedin_link = $7, website_link = $8, updated_at = NOW()
    WHERE id = $9
    RETURNING ` + tenantColumns

	row := r.pool.QueryRow(ctx, query,
		req.DisplayName, req.Description, req.Subdomain,
		req.NewsletterEmail, req.TwitterLink, req.GithubLink,
		req.LinkedinLink, req.WebsiteLink, id,
	)

	t, err := scanTenant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.NewTenantNotFoundError()
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return nil, model.NewSubdomainTakenError(req.Subdomain)
		}
		return nil, fmt.Errorf("failed to update tenant settings: %w", err)
	}
	return t, nil
}

// SetCustomDomain records a custom domain and its verification status.
// Passing a nil domain disconnects it.
func (r *postgresRepository) SetCustomDomain(ctx context.Context, id uuid.UUID, domain *string, status model.DomainStatus) error {
	query := `
    UPDATE tenants
    SET custom_domain = LOWER($1), custom_domain_status = $2, updated_at = NOW()
    WHERE id = $3
  `

	result, err := r.pool.Exec(ctx, query, domain, status, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			d := ""
			if domain != nil {
				d = *domain
			}
			return model.NewCustomDomainTakenError(d)
		}
		return fmt.Errorf("failed to set custom domain: %w", err)
	}

	if result.RowsAffected() == 0 {
		return model.NewTenantNotFoundError()
	}

	return nil
}
