package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	postmodel "inkwell-backend/internal/domains/post/model"
	tenantmodel "inkwell-backend/internal/domains/tenant/model"
)

func TestRenderUsesCustomDomainPermalink(t *testing.T) {
	r := NewRenderer("https", "inkwell.pub")
	tenant := &tenantmodel.Tenant{
		DisplayName:        "Acme Blog",
		Subdomain:          "acme",
		CustomDomain:       strPtr("blog.acme.dev"),
		CustomDomainStatus: tenantmodel.DomainStatusActive,
	}
	post := &postmodel.Post{Title: "Shipping v2", Slug: "shipping-v2"}

	email, err := r.Render(post, tenant)
	require.NoError(t, err)
	assert.Contains(t, email.HTML, "https://blog.acme.dev/posts/shipping-v2")
	assert.Contains(t, email.HTML, "https://blog.acme.dev/unsubscribe")
}

func TestRenderFallsBackToSubdomain(t *testing.T) {
	r := NewRenderer("https", "inkwell.pub")
	tenant := &tenantmodel.Tenant{
		DisplayName:        "Acme Blog",
		Subdomain:          "acme",
		CustomDomain:       strPtr("blog.acme.dev"),
		CustomDomainStatus: tenantmodel.DomainStatusPending,
	}
	post := &postmodel.Post{Title: "Shipping v2", Slug: "shipping-v2"}

	email, err := r.Render(post, tenant)
	require.NoError(t, err)
	assert.Contains(t, email.HTML, "https://acme.inkwell.pub/posts/shipping-v2")
}

func TestRenderSubjectAndExcerpt(t *testing.T) {
	r := NewRenderer("https", "inkwell.pub")
	tenant := &tenantmodel.Tenant{DisplayName: "Acme Blog", Subdomain: "acme"}
	excerpt := "A short teaser."
	post := &postmodel.Post{Title: "Shipping v2", Slug: "shipping-v2", Excerpt: &excerpt}

	email, err := r.Render(post, tenant)
	require.NoError(t, err)
	assert.Equal(t, "New post on Acme Blog: Shipping v2", email.Subject)
	assert.Contains(t, email.HTML, "A short teaser.")
	assert.Contains(t, email.HTML, "Shipping v2")
}

func TestRenderEscapesHTMLInTitle(t *testing.T) {
	r := NewRenderer("https", "inkwell.pub")
	tenant := &tenantmodel.Tenant{DisplayName: "Acme Blog", Subdomain: "acme"}
	post := &postmodel.Post{Title: "<script>alert(1)</script>", Slug: "x"}

	email, err := r.Render(post, tenant)
	require.NoError(t, err)
	assert.NotContains(t, email.HTML, "<script>")
}
