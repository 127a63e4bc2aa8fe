package model

import (
	"fmt"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

var subdomainPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// DomainStatus tracks the lifecycle of a tenant's custom domain
type DomainStatus string

const (
	DomainStatusNone     DomainStatus = "none"
	DomainStatusPending  DomainStatus = "pending"
	DomainStatusVerified DomainStatus = "verified"
	DomainStatusActive   DomainStatus = "active"
	DomainStatusFailed   DomainStatus = "failed"
)

// Tenant is one author's publication: branding, addressing, posts and
// subscribers hang off it. At most one tenant may claim a given
// subdomain or custom domain (unique constraints at the store).
type Tenant struct {
	ID                 uuid.UUID    `db:"id"`
	OwnerID            uuid.UUID    `db:"owner_id"`
	DisplayName        string       `db:"display_name"`
	Description        string       `db:"description"`
	Subdomain          string       `db:"subdomain"`
	CustomDomain       *string      `db:"custom_domain"`
	CustomDomainStatus DomainStatus `db:"custom_domain_status"`
	NewsletterEmail    *string      `db:"newsletter_email"`
	TwitterLink        *string      `db:"twitter_link"`
	GithubLink         *string      `db:"github_link"`
	LinkedinLink       *string      `db:"linkedin_link"`
	WebsiteLink        *string      `db:"website_link"`
	CreatedAt          time.Time    `db:"created_at"`
	UpdatedAt          time.Time    `db:"updated_at"`
}

// NewsletterEnabled reports whether publish notifications are
// configured for this tenant. Absence of a sender address disables the
// feature; it is never an error.
func (t *Tenant) NewsletterEnabled() bool {
	return t.NewsletterEmail != nil && *t.NewsletterEmail != ""
}

// PermalinkBase returns the base URL readers should use for this
// tenant's posts. Precedence: custom domain when it is verified or
// active, then the platform subdomain, then the platform apex.
func (t *Tenant) PermalinkBase(scheme, apexDomain string) string {
	if t.CustomDomain != nil && *t.CustomDomain != "" &&
		(t.CustomDomainStatus == DomainStatusActive || t.CustomDomainStatus == DomainStatusVerified) {
		return fmt.Sprintf("%s://%s", scheme, *t.CustomDomain)
	}
	if t.Subdomain != "" {
		return fmt.Sprintf("%s://%s.%s", scheme, t.Subdomain, apexDomain)
	}
	return fmt.Sprintf("%s://%s/blog", scheme, apexDomain)
}

// DefaultSubdomain derives the bootstrap subdomain for a new tenant
// from its owner id, mirroring the first-login bootstrap flow.
func DefaultSubdomain(ownerID uuid.UUID) string {
	return "blog-" + ownerID.String()[:8]
}

// ========================================
// DTOs
// ========================================

// UpdateSettingsRequest carries the author-editable tenant settings
type UpdateSettingsRequest struct {
	DisplayName     string  `json:"display_name"`
	Description     string  `json:"description"`
	Subdomain       string  `json:"subdomain"`
	NewsletterEmail *string `json:"newsletter_email"`
	TwitterLink     *string `json:"twitter_link"`
	GithubLink      *string `json:"github_link"`
	LinkedinLink    *string `json:"linkedin_link"`
	WebsiteLink     *string `json:"website_link"`
}

func (r UpdateSettingsRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DisplayName,
			validation.Required.Error("display name is required"),
			validation.Length(1, 120),
		),
		validation.Field(&r.Description, validation.Length(0, 500)),
		validation.Field(&r.Subdomain,
			validation.Required.Error("subdomain is required"),
			validation.Length(3, 63),
			validation.Match(subdomainPattern).Error("subdomain may contain lowercase letters, digits and hyphens"),
		),
		validation.Field(&r.NewsletterEmail, is.EmailFormat.Error("invalid sender email")),
		validation.Field(&r.TwitterLink, is.URL),
		validation.Field(&r.GithubLink, is.URL),
		validation.Field(&r.LinkedinLink, is.URL),
		validation.Field(&r.WebsiteLink, is.URL),
	)
}

// ConnectDomainRequest starts custom-domain verification
type ConnectDomainRequest struct {
	Domain string `json:"domain"`
}

func (r ConnectDomainRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Domain,
			validation.Required.Error("domain is required"),
			is.DNSName.Error("invalid domain name"),
		),
	)
}

// TenantResponse is the public projection of a tenant
type TenantResponse struct {
	ID                 uuid.UUID    `json:"id"`
	DisplayName        string       `json:"display_name"`
	Description        string       `json:"description"`
	Subdomain          string       `json:"subdomain"`
	CustomDomain       *string      `json:"custom_domain,omitempty"`
	CustomDomainStatus DomainStatus `json:"custom_domain_status"`
	NewsletterEnabled  bool         `json:"newsletter_enabled"`
	TwitterLink        *string      `json:"twitter_link,omitempty"`
	GithubLink         *string      `json:"github_link,omitempty"`
	LinkedinLink       *string      `json:"linkedin_link,omitempty"`
	WebsiteLink        *string      `json:"website_link,omitempty"`
}

func (t *Tenant) ToResponse() *TenantResponse {
	return &TenantResponse{
		ID:                 t.ID,
		DisplayName:        t.DisplayName,
		Description:        t.Description,
		Subdomain:          t.Subdomain,
		CustomDomain:       t.CustomDomain,
		CustomDomainStatus: t.CustomDomainStatus,
		NewsletterEnabled:  t.NewsletterEnabled(),
		TwitterLink:        t.TwitterLink,
		GithubLink:         t.GithubLink,
		LinkedinLink:       t.LinkedinLink,
		WebsiteLink:        t.WebsiteLink,
	}
}
