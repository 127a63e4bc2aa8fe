package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// =====================================================
// POST MODEL
// =====================================================

// Post is a single article belonging to a tenant. A post is either a
// draft or published; published is true exactly when PublishedAt is
// set, and both flip together inside a single UPDATE.
type Post struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	TenantID      uuid.UUID  `json:"tenant_id" db:"tenant_id"`
	Title         string     `json:"title" db:"title"`
	Slug          string     `json:"slug" db:"slug"`
	Content       string     `json:"content" db:"content"`
	Excerpt       *string    `json:"excerpt,omitempty" db:"excerpt"`
	CoverImageURL *string    `json:"cover_image_url,omitempty" db:"cover_image_url"`
	Published     bool       `json:"published" db:"published"`
	PublishedAt   *time.Time `json:"published_at,omitempty" db:"published_at"`
	ViewCount     int64      `json:"view_count" db:"view_count"`
	ShareCount    int64      `json:"share_count" db:"share_count"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// IsDraft reports whether the post has never been published or was
// reverted to draft.
func (p *Post) IsDraft() bool {
	return !p.Published
}

// =====================================================
// REQUEST DTOs
// =====================================================

type CreatePostRequest struct {
	Title   string  `json:"title"`
	Content string  `json:"content"`
	Excerpt *string `json:"excerpt"`
	Publish bool    `json:"publish"`
}

func (r CreatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 300)),
		validation.Field(&r.Content, validation.Required),
		validation.Field(&r.Excerpt, validation.Length(0, 500)),
	)
}

type UpdatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Excerpt *string `json:"excerpt"`
}

func (r UpdatePostRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Length(1, 300)),
		validation.Field(&r.Excerpt, validation.Length(0, 500)),
	)
}

// =====================================================
// RESPONSE DTOs
// =====================================================

type PostResponse struct {
	ID            uuid.UUID  `json:"id"`
	TenantID      uuid.UUID  `json:"tenant_id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Content       string     `json:"content"`
	Excerpt       *string    `json:"excerpt,omitempty"`
	CoverImageURL *string    `json:"cover_image_url,omitempty"`
	Published     bool       `json:"published"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	ViewCount     int64      `json:"view_count"`
	ShareCount    int64      `json:"share_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// PostSummary is the list-view shape; it omits the full content body.
type PostSummary struct {
	ID            uuid.UUID  `json:"id"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Excerpt       *string    `json:"excerpt,omitempty"`
	CoverImageURL *string    `json:"cover_image_url,omitempty"`
	Published     bool       `json:"published"`
	PublishedAt   *time.Time `json:"published_at,omitempty"`
	ViewCount     int64      `json:"view_count"`
	ShareCount    int64      `json:"share_count"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (p *Post) ToResponse() PostResponse {
	return PostResponse{
		ID:            p.ID,
		TenantID:      p.TenantID,
		Title:         p.Title,
		Slug:          p.Slug,
		Content:       p.Content,
		Excerpt:       p.Excerpt,
		CoverImageURL: p.CoverImageURL,
		Published:     p.Published,
		PublishedAt:   p.PublishedAt,
		ViewCount:     p.ViewCount,
		ShareCount:    p.ShareCount,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func (p *Post) ToSummary() PostSummary {
	return PostSummary{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.Slug,
		Excerpt:       p.Excerpt,
		CoverImageURL: p.CoverImageURL,
		Published:     p.Published,
		PublishedAt:   p.PublishedAt,
		ViewCount:     p.ViewCount,
		ShareCount:    p.ShareCount,
		CreatedAt:     p.CreatedAt,
	}
}
