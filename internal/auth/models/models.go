package models

import (
	"slices"
	"strings"
	"time"

	pulse "teampulse/internal/models"
)

// User is an account as the backend stores it. Superusers may have no tenant.
type User struct {
	ID           int
	TenantID     *int
	Email        string
	Name         string
	Role         pulse.Role
	Teams        []int
	PasswordHash []byte
	CreatedAt    time.Time
}

// InTenant reports whether the user belongs to tenantID.
func (u *User) InTenant(tenantID int) bool {
	return u != nil && u.TenantID != nil && *u.TenantID == tenantID
}

// Clone returns a deep copy so callers never share slices with a store.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	if u.TenantID != nil {
		t := *u.TenantID
		c.TenantID = &t
	}
	c.Teams = slices.Clone(u.Teams)
	c.PasswordHash = slices.Clone(u.PasswordHash)
	return &c
}

// View is the user as the login, refresh and team endpoints return it.
func (u *User) View() pulse.User {
	var tenant *int
	if u.TenantID != nil {
		t := *u.TenantID
		tenant = &t
	}
	teams := slices.Clone(u.Teams)
	if teams == nil {
		teams = []int{}
	}
	return pulse.User{
		ID:     u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Tenant: tenant,
		Teams:  teams,
		Role:   u.Role,
	}
}

// NormalizeEmail lower-cases and trims an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type TenantRequestStatus string

const (
	TenantRequestPending  TenantRequestStatus = "pending"
	TenantRequestApproved TenantRequestStatus = "approved"
	TenantRequestRejected TenantRequestStatus = "rejected"
)

// TenantRequest is a signup request waiting for an operator to create the tenant.
type TenantRequest struct {
	ID         int
	TenantName string
	Email      string
	Name       string
	Domain     string
	Status     TenantRequestStatus
	CreatedAt  time.Time
}
