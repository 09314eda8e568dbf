package middleware

import (
	"sort"
	"strings"

	"github.com/salonms/backend/internal/core/domain"
)

// RoleAny marks a rule that admits any authenticated identity.
const RoleAny domain.Role = "*"

// PolicyRule binds a path prefix to the role it requires. Rules with
// longer prefixes win over shorter ones, so a specific carve-out like
// /api/staff/auth/ overrides the blanket /api/staff/ rule.
type PolicyRule struct {
	Prefix string
	Roles  []domain.Role
}

// Policy is the ordered path→role table evaluated by the gate, plus the
// public prefixes that skip authentication entirely.
type Policy struct {
	public []string
	rules  []PolicyRule
}

func NewPolicy(publicPrefixes []string, rules []PolicyRule) *Policy {
	sorted := make([]PolicyRule, len(rules))
	copy(sorted, rules)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i].Prefix) > len(sorted[j].Prefix)
	})
	return &Policy{public: publicPrefixes, rules: sorted}
}

// IsPublic reports whether the path bypasses authentication.
func (p *Policy) IsPublic(path string) bool {
	for _, prefix := range p.public {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// RequiredRoles returns the role set for the most specific matching rule.
// A path matching no rule still requires a valid token, but any role.
func (p *Policy) RequiredRoles(path string) []domain.Role {
	for _, rule := range p.rules {
		if strings.HasPrefix(path, rule.Prefix) {
			return rule.Roles
		}
	}
	return []domain.Role{RoleAny}
}

// DefaultPublicPrefixes lists the endpoints reachable without a token:
// probes, login/activation entry points, and the public gallery reads
// served by the collaborating photo service.
func DefaultPublicPrefixes() []string {
	return []string{
		"/api/health",
		"/api/public/",
		"/api/admin/auth/login",
		"/api/admin/auth/init",
		"/api/staff/auth/login",
		"/api/staff/auth/check-status",
		"/api/reception/auth/login",
		"/metrics",
	}
}

// DefaultPolicyRules encodes the salon's access table. Auth subpaths
// (validate, change-password) only need a valid token for any role; staff
// self-service surfaces need STAFF; everything else under an admin or
// management prefix needs ADMIN.
func DefaultPolicyRules() []PolicyRule {
	return []PolicyRule{
		{Prefix: "/api/admin/auth/", Roles: []domain.Role{RoleAny}},
		{Prefix: "/api/admin/", Roles: []domain.Role{domain.RoleAdmin}},
		{Prefix: "/api/staff/auth/", Roles: []domain.Role{RoleAny}},
		{Prefix: "/api/staff/photos", Roles: []domain.Role{domain.RoleStaff}},
		{Prefix: "/api/staff/appointments", Roles: []domain.Role{domain.RoleStaff}},
		{Prefix: "/api/staff/me", Roles: []domain.Role{domain.RoleStaff}},
		{Prefix: "/api/staff", Roles: []domain.Role{domain.RoleAdmin}},
		{Prefix: "/api/reception/auth/", Roles: []domain.Role{RoleAny}},
		{Prefix: "/api/reception/me", Roles: []domain.Role{domain.RoleReception}},
		{Prefix: "/api/reception", Roles: []domain.Role{domain.RoleAdmin}},
	}
}
