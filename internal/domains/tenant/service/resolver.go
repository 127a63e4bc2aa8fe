package service

import (
	"context"
	"net"
	"strings"
	"time"

	"inkwell-backend/internal/domains/tenant/model"
	"inkwell-backend/internal/domains/tenant/repository"
	"inkwell-backend/pkg/cache"
	"inkwell-backend/pkg/logger"
)

// hostCacheTTL is deliberately short: domain verification status can
// change and a stale hit must age out quickly.
const hostCacheTTL = 30 * time.Second

type resolver struct {
	repo       repository.TenantRepository
	cache      cache.Cache
	apexDomain string
}

// NewResolver creates the request resolver. The cache is optional;
// pass nil to resolve straight from the repository on every request.
func NewResolver(repo repository.TenantRepository, c cache.Cache, apexDomain string) ResolverInterface {
	return &resolver{
		repo:       repo,
		cache:      c,
		apexDomain: strings.ToLower(apexDomain),
	}
}

func (r *resolver) Resolve(ctx context.Context, hostname, pathSegment string) (*model.Tenant, error) {
	host := normalizeHost(hostname)

	// Custom domains win: any hostname that is not ours and not a dev
	// host is looked up as a custom domain even when a path segment is
	// also present.
	if host != "" && !r.isPlatformHost(host) && !isLocalHost(host) {
		return r.resolveCustomDomain(ctx, host)
	}

	if pathSegment != "" {
		tenant, err := r.repo.GetBySubdomain(ctx, strings.ToLower(pathSegment))
		if err != nil {
			return nil, err
		}
		if tenant == nil {
			return nil, model.ErrTenantNotFound
		}
		return tenant, nil
	}

	// No addressing context at all: the caller renders the platform
	// landing experience, not a 404.
	return nil, model.ErrNoContext
}

func (r *resolver) resolveCustomDomain(ctx context.Context, host string) (*model.Tenant, error) {
	cacheKey := "tenant:host:" + host

	if r.cache != nil {
		var cached model.Tenant
		found, err := r.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			// Cache trouble must never fail resolution
			logger.Warn("tenant host cache read failed", map[string]interface{}{
				"host":  host,
				"error": err.Error(),
			})
		} else if found {
			return &cached, nil
		}
	}

	tenant, err := r.repo.GetByCustomDomain(ctx, host)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, model.ErrTenantNotFound
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, cacheKey, tenant, hostCacheTTL); err != nil {
			logger.Warn("tenant host cache write failed", map[string]interface{}{
				"host":  host,
				"error": err.Error(),
			})
		}
	}

	return tenant, nil
}

// isPlatformHost covers the apex itself and anything under it -
// subdomain blogs are addressed by path, so acme.<apex> is still our
// hosting domain, never a custom-domain lookup.
func (r *resolver) isPlatformHost(host string) bool {
	return host == r.apexDomain ||
		host == "www."+r.apexDomain ||
		strings.HasSuffix(host, "."+r.apexDomain)
}

func isLocalHost(host string) bool {
	if host == "localhost" || strings.HasSuffix(host, ".localhost") || strings.HasSuffix(host, ".local") {
		return true
	}
	if ip := net.ParseIP(host); ip != nil {
		return ip.IsLoopback()
	}
	return false
}

// normalizeHost lowercases and strips any port
func normalizeHost(hostname string) string {
	host := strings.ToLower(strings.TrimSpace(hostname))
	if host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	// IPv6 literal without port
	return strings.Trim(host, "[]")
}
