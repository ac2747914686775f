package model

import "time"

// TeamMember is an immutable membership record. Identity is the UserID;
// a role change replaces the member rather than mutating it.
type TeamMember struct {
	UserID   ID
	Role     TeamRole
	JoinedAt time.Time
}

// NewTeamMember validates and constructs a membership record.
func NewTeamMember(userID ID, role TeamRole, joinedAt time.Time) (TeamMember, error) {
	if userID.IsZero() {
		return TeamMember{}, ErrInvalidID
	}
	if !role.IsValid() {
		return TeamMember{}, ErrInvalidRole
	}
	if joinedAt.IsZero() {
		joinedAt = time.Now().UTC()
	}
	return TeamMember{UserID: userID, Role: role, JoinedAt: joinedAt}, nil
}

// WithRole returns a copy of the member holding a different role,
// preserving the original join time.
func (m TeamMember) WithRole(role TeamRole) TeamMember {
	return TeamMember{UserID: m.UserID, Role: role, JoinedAt: m.JoinedAt}
}
