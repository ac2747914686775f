package model

import "errors"

// Closed set of domain error variants. Callers match with errors.Is and
// decide how to surface each one; the aggregate never logs or swallows them.
var (
	// ErrInvalidID indicates an empty or malformed entity identifier.
	ErrInvalidID = errors.New("invalid id")
	// ErrInvalidOwner indicates the owner id is missing or malformed.
	ErrInvalidOwner = errors.New("invalid owner")
	// ErrInvalidRole indicates a role outside owner/admin/member.
	ErrInvalidRole = errors.New("invalid role")
	// ErrNameTooShort indicates an empty or whitespace-only team name.
	ErrNameTooShort = errors.New("team name too short")
	// ErrNameTooLong indicates a team name above the length limit.
	ErrNameTooLong = errors.New("team name too long")
	// ErrDescriptionTooLong indicates a description above the length limit.
	ErrDescriptionTooLong = errors.New("team description too long")

	// ErrMemberAlreadyExists indicates the user already holds a role in the team.
	ErrMemberAlreadyExists = errors.New("member already exists")
	// ErrMemberNotFound indicates the user is not a member of the team.
	ErrMemberNotFound = errors.New("member not found")
	// ErrOnlyOneOwnerAllowed indicates an attempt to hold the owner role
	// by anyone other than the team owner.
	ErrOnlyOneOwnerAllowed = errors.New("only one owner allowed")
	// ErrCannotRemoveOwner indicates an attempt to remove the team owner.
	ErrCannotRemoveOwner = errors.New("cannot remove team owner")
	// ErrCannotChangeOwnerRole indicates an attempt to change the owner's role.
	ErrCannotChangeOwnerRole = errors.New("cannot change owner role")
	// ErrTeamFull indicates the membership ceiling would be exceeded.
	ErrTeamFull = errors.New("team member limit reached")

	// ErrInvitationNotFound indicates no invitation exists for the user.
	ErrInvitationNotFound = errors.New("invitation not found")
	// ErrInvitationNotPending indicates the invitation was already responded to.
	ErrInvitationNotPending = errors.New("invitation is not pending")
	// ErrInvitationExpired indicates the invitation expiry has passed.
	ErrInvitationExpired = errors.New("invitation expired")
	// ErrInvitationAlreadyExists indicates a pending invitation already
	// exists for the user.
	ErrInvitationAlreadyExists = errors.New("invitation already exists")

	// ErrTeamNotFound indicates the requested team does not exist.
	ErrTeamNotFound = errors.New("team not found")
	// ErrTeamConflict indicates a concurrent modification was detected at
	// save time (version mismatch).
	ErrTeamConflict = errors.New("team was modified concurrently")
	// ErrPermissionDenied indicates the acting user lacks the required
	// permission for the operation.
	ErrPermissionDenied = errors.New("permission denied")
)
