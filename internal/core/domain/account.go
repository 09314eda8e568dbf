package domain

import (
	"strings"
	"time"
)

// Role identifies which namespace an account authenticates against.
// The set is closed: the salon has exactly three kinds of principals.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleStaff     Role = "STAFF"
	RoleReception Role = "RECEPTION"
)

// ParseRole maps a wire-level role string to the closed Role set.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleStaff:
		return RoleStaff, nil
	case RoleReception:
		return RoleReception, nil
	}
	return "", ErrUnknownRole
}

// Status is the canonical account lifecycle state.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// ParseStatus normalizes a raw stored status value to the canonical enum.
// Legacy records carry free text ("Pending Activation", "deactivated",
// mixed case); the match order is fixed: pending/activation first, then
// inactive/deactivated, then active — "inactive" contains "active", so the
// order matters. An empty value means the record predates the status field
// and defaults to PENDING. Anything unrecognized is a data error.
func ParseStatus(raw string) (Status, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == "":
		return StatusPending, nil
	case strings.Contains(s, "pending") || strings.Contains(s, "activation"):
		return StatusPending, nil
	case strings.Contains(s, "inactive") || strings.Contains(s, "deactivated"):
		return StatusInactive, nil
	case strings.Contains(s, "active"):
		return StatusActive, nil
	}
	return "", ErrUnknownStatus
}

// Profile carries the non-auth fields captured at provisioning time.
// Specialization applies to staff, Shift to reception; both are free text.
type Profile struct {
	Name           string `json:"name"`
	Phone          string `json:"phone,omitempty"`
	Specialization string `json:"specialization,omitempty"`
	Shift          string `json:"shift,omitempty"`
}

// Account models any authenticable principal (admin, staff, reception).
type Account struct {
	ID             string     `json:"id"`
	Email          string     `json:"email"`
	Role           Role       `json:"role"`
	Status         Status     `json:"status"`
	Profile        Profile    `json:"profile"`
	CredentialHash string     `json:"-"`
	HasActivated   bool       `json:"has_activated"`
	ActivatedAt    *time.Time `json:"activated_at,omitempty"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
