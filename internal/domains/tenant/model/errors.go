package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeTenantNotFound     = "TNT001"
	ErrCodeNoContext          = "TNT002"
	ErrCodeSubdomainTaken     = "TNT003"
	ErrCodeCustomDomainTaken  = "TNT004"
	ErrCodeDomainNotConnected = "TNT005"
	ErrCodeVerificationFailed = "TNT006"
)

// Errors
var (
	// ErrTenantNotFound: an addressing key was supplied but no tenant
	// matches it. Distinct from ErrNoContext, which means no key was
	// supplied at all; callers render different fallbacks for each.
	ErrTenantNotFound = errors.New("tenant not found")
	ErrNoContext      = errors.New("no tenant addressing context")

	ErrSubdomainTaken     = errors.New("subdomain already in use")
	ErrCustomDomainTaken  = errors.New("custom domain already in use")
	ErrDomainNotConnected = errors.New("no custom domain connected")
)

// TenantError custom error type
type TenantError struct {
	Code    string
	Message string
	Err     error
}

func (e *TenantError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *TenantError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewTenantNotFoundError() *TenantError {
	return &TenantError{
		Code:    ErrCodeTenantNotFound,
		Message: "Tenant not found",
		Err:     ErrTenantNotFound,
	}
}

func NewSubdomainTakenError(subdomain string) *TenantError {
	return &TenantError{
		Code:    ErrCodeSubdomainTaken,
		Message: fmt.Sprintf("Subdomain %q is already in use", subdomain),
		Err:     ErrSubdomainTaken,
	}
}

func NewCustomDomainTakenError(domain string) *TenantError {
	return &TenantError{
		Code:    ErrCodeCustomDomainTaken,
		Message: fmt.Sprintf("Domain %q is already connected to another publication", domain),
		Err:     ErrCustomDomainTaken,
	}
}

func NewVerificationFailedError(domain string, err error) *TenantError {
	return &TenantError{
		Code:    ErrCodeVerificationFailed,
		Message: fmt.Sprintf("Verification failed for %q", domain),
		Err:     err,
	}
}
