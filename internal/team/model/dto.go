package model

import "time"

// CreateTeamRequest is the request to create a team.
type CreateTeamRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	Settings    *Settings `json:"settings"`
}

// UpdateTeamRequest is a partial team update; absent fields stay unchanged.
type UpdateTeamRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Settings    *Settings `json:"settings"`
}

// AddMemberRequest is the request to add a member to a team.
type AddMemberRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

// ChangeRoleRequest is the request to change a member's role.
type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

// InviteRequest is the request to invite a user to a team.
type InviteRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Email  string `json:"email"`
	// TTLHours bounds the invitation lifetime; zero means no expiry.
	TTLHours int `json:"ttl_hours"`
}

// RespondInvitationRequest is the request to accept or decline the
// responding user's pending invitation.
type RespondInvitationRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Accept *bool  `json:"accept" binding:"required"`
}

// MemberResponse represents a team member in API responses.
type MemberResponse struct {
	UserID   string    `json:"user_id"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// InvitationResponse represents an invitation in API responses.
type InvitationResponse struct {
	ID          string     `json:"id"`
	TeamID      string     `json:"team_id"`
	UserID      string     `json:"user_id"`
	InvitedBy   string     `json:"invited_by"`
	Email       string     `json:"email,omitempty"`
	Status      string     `json:"status"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`
}

// TeamResponse represents a team with its members and invitations.
type TeamResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description,omitempty"`
	OwnerID     string               `json:"owner_id"`
	Members     []MemberResponse     `json:"members"`
	Invitations []InvitationResponse `json:"invitations"`
	Settings    Settings             `json:"settings"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// NewTeamResponse maps an aggregate to its API representation.
func NewTeamResponse(t *Team) *TeamResponse {
	members := make([]MemberResponse, 0, t.MemberCount())
	for _, m := range t.Members() {
		members = append(members, MemberResponse{
			UserID:   m.UserID.String(),
			Role:     m.Role.String(),
			JoinedAt: m.JoinedAt,
		})
	}
	invitations := make([]InvitationResponse, 0, len(t.Invitations()))
	for _, inv := range t.Invitations() {
		invitations = append(invitations, NewInvitationResponse(inv))
	}
	return &TeamResponse{
		ID:          t.ID().String(),
		Name:        t.Name().String(),
		Description: t.Description().String(),
		OwnerID:     t.OwnerID().String(),
		Members:     members,
		Invitations: invitations,
		Settings:    t.Settings(),
		CreatedAt:   t.CreatedAt(),
		UpdatedAt:   t.UpdatedAt(),
	}
}

// NewInvitationResponse maps an invitation to its API representation.
func NewInvitationResponse(inv TeamInvitation) InvitationResponse {
	return InvitationResponse{
		ID:          inv.ID.String(),
		TeamID:      inv.TeamID.String(),
		UserID:      inv.UserID.String(),
		InvitedBy:   inv.InvitedBy.String(),
		Email:       inv.Email,
		Status:      string(inv.Status),
		ExpiresAt:   inv.ExpiresAt,
		CreatedAt:   inv.CreatedAt,
		RespondedAt: inv.RespondedAt,
	}
}
