package service

import (
	"bytes"
	"fmt"
	"html/template"

	postmodel "inkwell-backend/internal/domains/post/model"
	tenantmodel "inkwell-backend/internal/domains/tenant/model"
)

// RenderedEmail is the broadcast message, built once per broadcast and
// reused for every recipient.
type RenderedEmail struct {
	Subject string
	HTML    string
}

var broadcastTemplate = template.Must(template.New("broadcast").Parse(`
<div style="font-family: sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="font-size: 22px;">{{.Title}}</h1>
  {{if .Excerpt}}<p style="color: #555;">{{.Excerpt}}</p>{{end}}
  <p>
    <a href="{{.Permalink}}" style="color: #1a73e8;">Read the full post on {{.BlogName}}</a>
  </p>
  <hr style="border: none; border-top: 1px solid #eee;" />
  <p style="font-size: 12px; color: #999;">
    You are receiving this because you subscribed to {{.BlogName}}.
    <a href="{{.UnsubscribeURL}}" style="color: #999;">Unsubscribe</a>
  </p>
</div>
`))

// Renderer builds the broadcast email for a post
type Renderer struct {
	scheme     string
	apexDomain string
}

func NewRenderer(scheme, apexDomain string) *Renderer {
	return &Renderer{
		scheme:     scheme,
		apexDomain: apexDomain,
	}
}

// Render produces the subject and HTML body. The permalink follows the
// tenant's addressing precedence, so subscribers on a custom-domain
// blog get custom-domain links.
func (r *Renderer) Render(post *postmodel.Post, tenant *tenantmodel.Tenant) (*RenderedEmail, error) {
	base := tenant.PermalinkBase(r.scheme, r.apexDomain)

	excerpt := ""
	if post.Excerpt != nil {
		excerpt = *post.Excerpt
	}

	var body bytes.Buffer
	err := broadcastTemplate.Execute(&body, map[string]interface{}{
		"Title":          post.Title,
		"Excerpt":        excerpt,
		"Permalink":      fmt.Sprintf("%s/posts/%s", base, post.Slug),
		"BlogName":       tenant.DisplayName,
		"UnsubscribeURL": fmt.Sprintf("%s/unsubscribe", base),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render broadcast email: %w", err)
	}

	return &RenderedEmail{
		Subject: fmt.Sprintf("New post on %s: %s", tenant.DisplayName, post.Title),
		HTML:    body.String(),
	}, nil
}
