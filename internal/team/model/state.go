package model

import "time"

// TeamState is the persistence snapshot of a team. The repository maps
// it to and from storage rows; the aggregate itself never sees storage.
type TeamState struct {
	ID          ID
	Name        string
	Description string
	OwnerID     ID
	Members     []TeamMember
	Invitations []TeamInvitation
	Settings    Settings
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Version     int
}

// RehydrateTeam rebuilds an aggregate from a persisted snapshot. The
// invariants are re-checked so a corrupted snapshot cannot produce an
// invalid aggregate. The event log starts empty.
func RehydrateTeam(s TeamState) (*Team, error) {
	name, err := NewTeamName(s.Name)
	if err != nil {
		return nil, err
	}
	description, err := NewTeamDescription(s.Description)
	if err != nil {
		return nil, err
	}
	if s.ID.IsZero() {
		return nil, ErrInvalidID
	}
	if s.OwnerID.IsZero() {
		return nil, ErrInvalidOwner
	}
	if err := validateMembers(s.OwnerID, s.Members, s.Settings); err != nil {
		return nil, err
	}
	for _, inv := range s.Invitations {
		if !inv.Status.IsValid() {
			return nil, ErrInvitationNotFound
		}
	}

	members := make([]TeamMember, len(s.Members))
	copy(members, s.Members)
	invitations := make([]TeamInvitation, len(s.Invitations))
	copy(invitations, s.Invitations)

	return &Team{
		id:          s.ID,
		name:        name,
		description: description,
		ownerID:     s.OwnerID,
		members:     members,
		invitations: invitations,
		settings:    s.Settings,
		createdAt:   s.CreatedAt,
		updatedAt:   s.UpdatedAt,
		version:     s.Version,
	}, nil
}

// State returns a persistence snapshot of the aggregate.
func (t *Team) State() TeamState {
	return TeamState{
		ID:          t.id,
		Name:        t.name.String(),
		Description: t.description.String(),
		OwnerID:     t.ownerID,
		Members:     t.copyMembers(),
		Invitations: t.copyInvitations(),
		Settings:    t.settings,
		CreatedAt:   t.createdAt,
		UpdatedAt:   t.updatedAt,
		Version:     t.version,
	}
}
