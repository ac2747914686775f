package model

import "time"

// InvitationStatus is the lifecycle phase of a team invitation.
type InvitationStatus string

const (
	// InvitationPending means the invitation awaits a response.
	InvitationPending InvitationStatus = "pending"
	// InvitationAccepted means the invited user joined the team.
	InvitationAccepted InvitationStatus = "accepted"
	// InvitationDeclined means the invited user declined.
	InvitationDeclined InvitationStatus = "declined"
	// InvitationExpired means the expiry passed before a response.
	InvitationExpired InvitationStatus = "expired"
)

// IsValid reports whether the status label is supported.
func (s InvitationStatus) IsValid() bool {
	switch s {
	case InvitationPending, InvitationAccepted, InvitationDeclined, InvitationExpired:
		return true
	default:
		return false
	}
}

// TeamInvitation is an immutable pending-membership offer. Status moves
// only pending -> accepted|declined|expired, and RespondedAt is set iff
// the status is no longer pending.
type TeamInvitation struct {
	ID          ID
	TeamID      ID
	UserID      ID
	InvitedBy   ID
	Email       string
	Status      InvitationStatus
	ExpiresAt   *time.Time
	CreatedAt   time.Time
	RespondedAt *time.Time
}

// NewTeamInvitation constructs a pending invitation.
func NewTeamInvitation(teamID, userID, invitedBy ID, email string, expiresAt *time.Time) (TeamInvitation, error) {
	if teamID.IsZero() || userID.IsZero() || invitedBy.IsZero() {
		return TeamInvitation{}, ErrInvalidID
	}
	return TeamInvitation{
		ID:        NewID(),
		TeamID:    teamID,
		UserID:    userID,
		InvitedBy: invitedBy,
		Email:     email,
		Status:    InvitationPending,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// IsPending reports whether the invitation still awaits a response.
func (i TeamInvitation) IsPending() bool {
	return i.Status == InvitationPending
}

// IsExpired reports whether the invitation expiry has passed at the given time.
func (i TeamInvitation) IsExpired(now time.Time) bool {
	if i.Status == InvitationExpired {
		return true
	}
	return i.ExpiresAt != nil && now.After(*i.ExpiresAt)
}

// respond returns a copy of the invitation transitioned out of pending.
// Callers must have checked IsPending and IsExpired first.
func (i TeamInvitation) respond(status InvitationStatus, now time.Time) TeamInvitation {
	next := i
	next.Status = status
	next.RespondedAt = &now
	return next
}
