package model

// Settings holds per-team configuration: notification flags, communication
// flags, permission-delegation flags and an optional membership ceiling.
type Settings struct {
	// EmailNotifications enables member email notifications.
	EmailNotifications bool `json:"email_notifications"`
	// PushNotifications enables member push notifications.
	PushNotifications bool `json:"push_notifications"`
	// OpenDiscussions lets every member start team discussions.
	OpenDiscussions bool `json:"open_discussions"`
	// AllowMemberInvites lets regular members send invitations,
	// in addition to the owner and admins.
	AllowMemberInvites bool `json:"allow_member_invites"`
	// AllowGuestAccess exposes read-only guest capabilities. Guests are
	// never members; see the permission table.
	AllowGuestAccess bool `json:"allow_guest_access"`
	// MaxMembers caps team size when set.
	MaxMembers *int `json:"max_members,omitempty"`
}

// DefaultSettings returns the settings applied when a team is created
// without explicit configuration.
func DefaultSettings() Settings {
	return Settings{
		EmailNotifications: true,
		PushNotifications:  true,
		OpenDiscussions:    true,
		AllowMemberInvites: false,
		AllowGuestAccess:   false,
	}
}
