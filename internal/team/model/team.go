package model

import "time"

// Team is the aggregate root. It owns members, invitations and settings,
// re-validates its invariants after every mutation and appends domain
// events to an internal log. Instances are not safe for concurrent use;
// one use case owns an instance for the duration of one operation.
//
// Every mutator follows the same shape: compute the candidate next state,
// validate it, and only then commit it and append the event. A failing
// validation leaves the aggregate untouched and emits nothing.
type Team struct {
	id          ID
	name        TeamName
	description TeamDescription
	ownerID     ID
	members     []TeamMember
	invitations []TeamInvitation
	settings    Settings
	createdAt   time.Time
	updatedAt   time.Time
	version     int

	events []Event
}

// CreateTeamParams carries the inputs of the Team factory.
type CreateTeamParams struct {
	Name        string
	Description string
	OwnerID     ID
	Members     []TeamMember
	Settings    *Settings
}

// UpdateTeamParams carries a partial update; nil fields are left unchanged.
type UpdateTeamParams struct {
	Name        *string
	Description *string
	Settings    *Settings
}

// NewTeam validates the inputs and constructs a team satisfying all
// invariants, with the owner inserted as a member holding the owner role.
// A TeamCreated event is appended on success.
func NewTeam(p CreateTeamParams) (*Team, error) {
	name, err := NewTeamName(p.Name)
	if err != nil {
		return nil, err
	}
	description, err := NewTeamDescription(p.Description)
	if err != nil {
		return nil, err
	}
	if p.OwnerID.IsZero() {
		return nil, ErrInvalidOwner
	}

	settings := DefaultSettings()
	if p.Settings != nil {
		settings = *p.Settings
	}

	now := time.Now().UTC()
	members := make([]TeamMember, 0, len(p.Members)+1)
	ownerSupplied := false
	for _, m := range p.Members {
		if m.UserID == p.OwnerID {
			// The owner always holds the owner role, whatever was supplied.
			m = m.WithRole(RoleOwner)
			ownerSupplied = true
		}
		members = append(members, m)
	}
	if !ownerSupplied {
		owner, err := NewTeamMember(p.OwnerID, RoleOwner, now)
		if err != nil {
			return nil, ErrInvalidOwner
		}
		members = append([]TeamMember{owner}, members...)
	}

	if err := validateMembers(p.OwnerID, members, settings); err != nil {
		return nil, err
	}

	t := &Team{
		id:          NewID(),
		name:        name,
		description: description,
		ownerID:     p.OwnerID,
		members:     members,
		invitations: []TeamInvitation{},
		settings:    settings,
		createdAt:   now,
		updatedAt:   now,
	}
	t.record(TeamCreatedData{Name: name.String(), OwnerID: p.OwnerID})
	return t, nil
}

// AddMember adds a new member and emits a MemberJoined event.
func (t *Team) AddMember(m TeamMember) error {
	if !m.Role.IsValid() {
		return ErrInvalidRole
	}
	if _, ok := t.Member(m.UserID); ok {
		return ErrMemberAlreadyExists
	}
	if m.Role == RoleOwner && m.UserID != t.ownerID {
		return ErrOnlyOneOwnerAllowed
	}

	next := append(t.copyMembers(), m)
	if err := validateMembers(t.ownerID, next, t.settings); err != nil {
		return err
	}

	t.members = next
	t.touch()
	t.record(MemberJoinedData{UserID: m.UserID, Role: m.Role})
	return nil
}

// RemoveMember removes a member and emits a MemberLeft event.
// The owner can never be removed.
func (t *Team) RemoveMember(userID ID) error {
	member, ok := t.Member(userID)
	if !ok {
		return ErrMemberNotFound
	}
	if member.UserID == t.ownerID {
		return ErrCannotRemoveOwner
	}

	next := make([]TeamMember, 0, len(t.members)-1)
	for _, m := range t.members {
		if m.UserID != userID {
			next = append(next, m)
		}
	}
	if err := validateMembers(t.ownerID, next, t.settings); err != nil {
		return err
	}

	t.members = next
	t.touch()
	t.record(MemberLeftData{UserID: userID})
	return nil
}

// UpdateMemberRole replaces a member with a copy holding the new role,
// preserving the original join time, and emits a MemberRoleChanged event.
// The owner's role cannot be changed and nobody can be promoted to owner.
func (t *Team) UpdateMemberRole(userID ID, newRole TeamRole) error {
	if !newRole.IsValid() {
		return ErrInvalidRole
	}
	member, ok := t.Member(userID)
	if !ok {
		return ErrMemberNotFound
	}
	if member.UserID == t.ownerID {
		return ErrCannotChangeOwnerRole
	}
	if newRole == RoleOwner {
		return ErrOnlyOneOwnerAllowed
	}
	if member.Role == newRole {
		return nil
	}

	next := t.copyMembers()
	for i, m := range next {
		if m.UserID == userID {
			next[i] = m.WithRole(newRole)
		}
	}
	if err := validateMembers(t.ownerID, next, t.settings); err != nil {
		return err
	}

	t.members = next
	t.touch()
	t.record(MemberRoleChangedData{UserID: userID, OldRole: member.Role, NewRole: newRole})
	return nil
}

// AddInvitation appends a pending invitation and emits an InvitationSent
// event. A user with a membership or a pending invitation cannot be
// invited again.
func (t *Team) AddInvitation(inv TeamInvitation) error {
	if inv.TeamID != t.id {
		return ErrInvalidID
	}
	if !inv.IsPending() {
		return ErrInvitationNotPending
	}
	if _, ok := t.Member(inv.UserID); ok {
		return ErrMemberAlreadyExists
	}
	if _, ok := t.pendingInvitationFor(inv.UserID); ok {
		return ErrInvitationAlreadyExists
	}

	t.invitations = append(t.copyInvitations(), inv)
	t.touch()
	t.record(InvitationSentData{
		InvitationID: inv.ID,
		UserID:       inv.UserID,
		InvitedBy:    inv.InvitedBy,
		Email:        inv.Email,
	})
	return nil
}

// RespondToInvitation resolves the user's pending invitation. Accepting
// also adds the user as a regular member in the same logical operation;
// the InvitationAccepted event precedes the MemberJoined event because
// the invitation resolution is causally prior to the membership. A
// non-pending or expired invitation fails without emitting anything.
func (t *Team) RespondToInvitation(userID ID, accept bool) error {
	idx, ok := t.pendingInvitationFor(userID)
	if !ok {
		if t.hasInvitationFor(userID) {
			return ErrInvitationNotPending
		}
		return ErrInvitationNotFound
	}

	now := time.Now().UTC()
	inv := t.invitations[idx]
	if inv.IsExpired(now) {
		return ErrInvitationExpired
	}

	if !accept {
		next := t.copyInvitations()
		next[idx] = inv.respond(InvitationDeclined, now)
		t.invitations = next
		t.touch()
		t.record(InvitationDeclinedData{InvitationID: inv.ID, UserID: userID})
		return nil
	}

	member, err := NewTeamMember(userID, RoleMember, now)
	if err != nil {
		return err
	}
	if _, exists := t.Member(userID); exists {
		return ErrMemberAlreadyExists
	}
	nextMembers := append(t.copyMembers(), member)
	if err := validateMembers(t.ownerID, nextMembers, t.settings); err != nil {
		return err
	}
	nextInvitations := t.copyInvitations()
	nextInvitations[idx] = inv.respond(InvitationAccepted, now)

	t.invitations = nextInvitations
	t.members = nextMembers
	t.touch()
	t.record(InvitationAcceptedData{InvitationID: inv.ID, UserID: userID})
	t.record(MemberJoinedData{UserID: userID, Role: member.Role})
	return nil
}

// Update applies a partial update to name, description and settings and
// emits a TeamUpdated event listing the fields that changed. Lowering the
// member ceiling below the current member count is rejected.
func (t *Team) Update(p UpdateTeamParams) error {
	name := t.name
	description := t.description
	settings := t.settings
	var changed []string

	if p.Name != nil {
		next, err := NewTeamName(*p.Name)
		if err != nil {
			return err
		}
		if next != name {
			name = next
			changed = append(changed, "name")
		}
	}
	if p.Description != nil {
		next, err := NewTeamDescription(*p.Description)
		if err != nil {
			return err
		}
		if next != description {
			description = next
			changed = append(changed, "description")
		}
	}
	if p.Settings != nil {
		if !settingsEqual(*p.Settings, settings) {
			settings = *p.Settings
			changed = append(changed, "settings")
		}
	}

	if len(changed) == 0 {
		return nil
	}
	if err := validateMembers(t.ownerID, t.members, settings); err != nil {
		return err
	}

	t.name = name
	t.description = description
	t.settings = settings
	t.touch()
	t.record(TeamUpdatedData{Fields: changed})
	return nil
}

// CanManageMembers reports whether the user holds a role allowed to
// manage memberships. Non-members simply get false.
func (t *Team) CanManageMembers(userID ID) bool {
	member, ok := t.Member(userID)
	if !ok {
		return false
	}
	return member.Role == RoleOwner || member.Role == RoleAdmin
}

// CanInviteMembers reports whether the user may send invitations, taking
// the member-invite delegation setting into account.
func (t *Team) CanInviteMembers(userID ID) bool {
	if t.HasMemberPermission(userID, PermissionInviteMembers) {
		return true
	}
	_, ok := t.Member(userID)
	return ok && t.settings.AllowMemberInvites
}

// HasMemberPermission looks up the member's role in the permission table
// and checks the requested permission. Non-members get false; permission
// queries never fail.
func (t *Team) HasMemberPermission(userID ID, permission Permission) bool {
	member, ok := t.Member(userID)
	if !ok {
		return false
	}
	return RoleHasPermission(member.Role, permission)
}

// Member returns the membership record for the user, if any.
func (t *Team) Member(userID ID) (TeamMember, bool) {
	for _, m := range t.members {
		if m.UserID == userID {
			return m, true
		}
	}
	return TeamMember{}, false
}

// Invitation returns the invitation with the given id, if any.
func (t *Team) Invitation(id ID) (TeamInvitation, bool) {
	for _, inv := range t.invitations {
		if inv.ID == id {
			return inv, true
		}
	}
	return TeamInvitation{}, false
}

// DomainEvents returns the accumulated events without clearing them.
func (t *Team) DomainEvents() []Event {
	events := make([]Event, len(t.events))
	copy(events, t.events)
	return events
}

// ClearEvents empties the event log. Called by the application layer
// after the events have been published.
func (t *Team) ClearEvents() {
	t.events = nil
}

// ID returns the team identifier.
func (t *Team) ID() ID { return t.id }

// Name returns the team name.
func (t *Team) Name() TeamName { return t.name }

// Description returns the team description.
func (t *Team) Description() TeamDescription { return t.description }

// OwnerID returns the id of the member holding the owner role.
func (t *Team) OwnerID() ID { return t.ownerID }

// Members returns a copy of the membership list.
func (t *Team) Members() []TeamMember { return t.copyMembers() }

// MemberCount returns the number of members.
func (t *Team) MemberCount() int { return len(t.members) }

// Invitations returns a copy of the invitation list.
func (t *Team) Invitations() []TeamInvitation { return t.copyInvitations() }

// Settings returns the team settings.
func (t *Team) Settings() Settings { return t.settings }

// CreatedAt returns the creation time.
func (t *Team) CreatedAt() time.Time { return t.createdAt }

// UpdatedAt returns the last mutation time.
func (t *Team) UpdatedAt() time.Time { return t.updatedAt }

// Version returns the persistence concurrency token the aggregate was
// loaded with. The repository bumps it on save.
func (t *Team) Version() int { return t.version }

func (t *Team) record(data EventData) {
	t.events = append(t.events, newEvent(t.id, data))
}

func (t *Team) touch() {
	t.updatedAt = time.Now().UTC()
}

func (t *Team) copyMembers() []TeamMember {
	members := make([]TeamMember, len(t.members))
	copy(members, t.members)
	return members
}

func (t *Team) copyInvitations() []TeamInvitation {
	invitations := make([]TeamInvitation, len(t.invitations))
	copy(invitations, t.invitations)
	return invitations
}

func (t *Team) pendingInvitationFor(userID ID) (int, bool) {
	for i, inv := range t.invitations {
		if inv.UserID == userID && inv.IsPending() {
			return i, true
		}
	}
	return -1, false
}

func (t *Team) hasInvitationFor(userID ID) bool {
	for _, inv := range t.invitations {
		if inv.UserID == userID {
			return true
		}
	}
	return false
}

// validateMembers checks the structural membership invariants: exactly
// one owner whose id matches ownerID, unique user ids, valid roles and
// the optional member ceiling.
func validateMembers(ownerID ID, members []TeamMember, settings Settings) error {
	owners := 0
	seen := make(map[ID]struct{}, len(members))
	for _, m := range members {
		if !m.Role.IsValid() {
			return ErrInvalidRole
		}
		if _, dup := seen[m.UserID]; dup {
			return ErrMemberAlreadyExists
		}
		seen[m.UserID] = struct{}{}
		if m.Role == RoleOwner {
			if m.UserID != ownerID {
				return ErrOnlyOneOwnerAllowed
			}
			owners++
		}
	}
	if owners != 1 {
		return ErrInvalidOwner
	}
	if settings.MaxMembers != nil && len(members) > *settings.MaxMembers {
		return ErrTeamFull
	}
	return nil
}

func settingsEqual(a, b Settings) bool {
	if a.EmailNotifications != b.EmailNotifications ||
		a.PushNotifications != b.PushNotifications ||
		a.OpenDiscussions != b.OpenDiscussions ||
		a.AllowMemberInvites != b.AllowMemberInvites ||
		a.AllowGuestAccess != b.AllowGuestAccess {
		return false
	}
	if (a.MaxMembers == nil) != (b.MaxMembers == nil) {
		return false
	}
	return a.MaxMembers == nil || *a.MaxMembers == *b.MaxMembers
}
