package model

import "time"

// EventType identifies the type of a team domain event.
type EventType string

const (
	// EventTypeTeamCreated records creation of a team.
	EventTypeTeamCreated EventType = "TEAM_CREATED"
	// EventTypeTeamUpdated records changes to team properties.
	EventTypeTeamUpdated EventType = "TEAM_UPDATED"
	// EventTypeMemberJoined records a user joining the team.
	EventTypeMemberJoined EventType = "MEMBER_JOINED"
	// EventTypeMemberLeft records a member leaving or being removed.
	EventTypeMemberLeft EventType = "MEMBER_LEFT"
	// EventTypeMemberRoleChanged records a member role replacement.
	EventTypeMemberRoleChanged EventType = "MEMBER_ROLE_CHANGED"
	// EventTypeInvitationSent records a new pending invitation.
	EventTypeInvitationSent EventType = "INVITATION_SENT"
	// EventTypeInvitationAccepted records an accepted invitation.
	EventTypeInvitationAccepted EventType = "INVITATION_ACCEPTED"
	// EventTypeInvitationDeclined records a declined invitation.
	EventTypeInvitationDeclined EventType = "INVITATION_DECLINED"
)

// AllEventTypes lists every team event type, for consumers subscribing
// to the whole stream.
func AllEventTypes() []EventType {
	return []EventType{
		EventTypeTeamCreated,
		EventTypeTeamUpdated,
		EventTypeMemberJoined,
		EventTypeMemberLeft,
		EventTypeMemberRoleChanged,
		EventTypeInvitationSent,
		EventTypeInvitationAccepted,
		EventTypeInvitationDeclined,
	}
}

// EventData is the payload of a domain event. The union is closed: only
// the payload types in this package implement it.
type EventData interface {
	EventType() EventType
}

// Event is an immutable record of a state transition inside the Team
// aggregate. Events are appended to the aggregate's in-memory log on
// every successful mutation and published after a successful save.
type Event struct {
	ID         ID
	Type       EventType
	TeamID     ID
	OccurredAt time.Time
	Data       EventData
}

func newEvent(teamID ID, data EventData) Event {
	return Event{
		ID:         NewID(),
		Type:       data.EventType(),
		TeamID:     teamID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// TeamCreatedData is the payload of a team creation event.
type TeamCreatedData struct {
	Name    string `json:"name"`
	OwnerID ID     `json:"owner_id"`
}

// EventType implements EventData.
func (TeamCreatedData) EventType() EventType { return EventTypeTeamCreated }

// TeamUpdatedData lists the team properties that changed.
type TeamUpdatedData struct {
	Fields []string `json:"fields"`
}

// EventType implements EventData.
func (TeamUpdatedData) EventType() EventType { return EventTypeTeamUpdated }

// MemberJoinedData is the payload of a member join event.
type MemberJoinedData struct {
	UserID ID       `json:"user_id"`
	Role   TeamRole `json:"role"`
}

// EventType implements EventData.
func (MemberJoinedData) EventType() EventType { return EventTypeMemberJoined }

// MemberLeftData is the payload of a member removal event.
type MemberLeftData struct {
	UserID ID `json:"user_id"`
}

// EventType implements EventData.
func (MemberLeftData) EventType() EventType { return EventTypeMemberLeft }

// MemberRoleChangedData carries the before and after roles of a member.
type MemberRoleChangedData struct {
	UserID  ID       `json:"user_id"`
	OldRole TeamRole `json:"old_role"`
	NewRole TeamRole `json:"new_role"`
}

// EventType implements EventData.
func (MemberRoleChangedData) EventType() EventType { return EventTypeMemberRoleChanged }

// InvitationSentData is the payload of an invitation creation event.
type InvitationSentData struct {
	InvitationID ID     `json:"invitation_id"`
	UserID       ID     `json:"user_id"`
	InvitedBy    ID     `json:"invited_by"`
	Email        string `json:"email,omitempty"`
}

// EventType implements EventData.
func (InvitationSentData) EventType() EventType { return EventTypeInvitationSent }

// InvitationAcceptedData is the payload of an invitation acceptance event.
type InvitationAcceptedData struct {
	InvitationID ID `json:"invitation_id"`
	UserID       ID `json:"user_id"`
}

// EventType implements EventData.
func (InvitationAcceptedData) EventType() EventType { return EventTypeInvitationAccepted }

// InvitationDeclinedData is the payload of an invitation decline event.
type InvitationDeclinedData struct {
	InvitationID ID `json:"invitation_id"`
	UserID       ID `json:"user_id"`
}

// EventType implements EventData.
func (InvitationDeclinedData) EventType() EventType { return EventTypeInvitationDeclined }
