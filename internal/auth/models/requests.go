package models

import (
	"strings"

	"teampulse/pkg/validation"
)

// LoginRequest is the body of POST /api/auth/.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
}

func (r *LoginRequest) Validate() error {
	return validation.Validate(r)
}

// TenantRequestRequest is the body of POST /api/auth/tenant-request/.
type TenantRequestRequest struct {
	TenantName string `json:"tenantName" validate:"notblank,max=100"`
	Email      string `json:"email" validate:"required,emailaddr,max=100"`
	Name       string `json:"name" validate:"notblank,max=100"`
	Domain     string `json:"domain" validate:"notblank,max=100"`
}

func (r *TenantRequestRequest) Normalize() {
	r.TenantName = strings.TrimSpace(r.TenantName)
	r.Email = NormalizeEmail(r.Email)
	r.Name = strings.TrimSpace(r.Name)
	r.Domain = strings.TrimSpace(r.Domain)
}

// Validate reports every invalid field at once.
func (r *TenantRequestRequest) Validate() error {
	return validation.ValidateFields(r)
}
