package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"inkwell-backend/internal/config"
)

// httpDomainVerifier registers a custom domain with the hosting
// provider's project-domains API. DNS mechanics live entirely on the
// provider's side; we only see verified yes/no.
type httpDomainVerifier struct {
	client *http.Client
	cfg    config.DomainConfig
}

func NewHTTPDomainVerifier(cfg config.DomainConfig) DomainVerifier {
	return &httpDomainVerifier{
		client: &http.Client{Timeout: 15 * time.Second},
		cfg:    cfg,
	}
}

type addDomainRequest struct {
	Name string `json:"name"`
}

type addDomainResponse struct {
	Verified bool `json:"verified"`
	Error    *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (v *httpDomainVerifier) VerifyDomain(ctx context.Context, domain string) (bool, error) {
	body, err := json.Marshal(addDomainRequest{Name: domain})
	if err != nil {
		return false, fmt.Errorf("failed to marshal domain request: %w", err)
	}

	url := fmt.Sprintf("%s/v9/projects/%s/domains", v.cfg.ProvisionerURL, v.cfg.ProjectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("failed to build domain request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+v.cfg.APIToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("domain provisioner unreachable: %w", err)
	}
	defer resp.Body.Close()

	var parsed addDomainResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return false, fmt.Errorf("failed to decode provisioner response: %w", err)
	}

	if resp.StatusCode >= 400 {
		// "Already in use" means the domain is attached to the project
		// already (e.g. added manually) - treat as verified so the UI
		// can proceed instead of dead-ending.
		if resp.StatusCode == http.StatusConflict ||
			(parsed.Error != nil && parsed.Error.Code == "domain_already_in_use") {
			return true, nil
		}
		msg := "provisioner rejected domain"
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return false, fmt.Errorf("%s (status %d)", msg, resp.StatusCode)
	}

	return parsed.Verified, nil
}
