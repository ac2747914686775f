package model

import "strings"

// TeamRole is the role a member holds within a team.
type TeamRole string

const (
	// RoleOwner is held by exactly one member, the team owner.
	RoleOwner TeamRole = "owner"
	// RoleAdmin can manage members and most team properties.
	RoleAdmin TeamRole = "admin"
	// RoleMember is a regular team member.
	RoleMember TeamRole = "member"
	// RoleGuest exists only in the permission table; no membership path
	// assigns it, so IsValid rejects it for members.
	RoleGuest TeamRole = "guest"
)

// ParseTeamRole canonicalizes and validates a role label for membership.
func ParseTeamRole(s string) (TeamRole, error) {
	role := TeamRole(strings.ToLower(strings.TrimSpace(s)))
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// IsValid reports whether the role can be held by a team member.
func (r TeamRole) IsValid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember:
		return true
	default:
		return false
	}
}

// String returns the role label.
func (r TeamRole) String() string {
	return string(r)
}
