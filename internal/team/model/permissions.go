package model

// Permission identifies a single team capability.
type Permission string

const (
	// PermissionViewTeam allows reading team details.
	PermissionViewTeam Permission = "team:view"
	// PermissionUpdateTeam allows editing team name and description.
	PermissionUpdateTeam Permission = "team:update"
	// PermissionDeleteTeam allows deleting the team.
	PermissionDeleteTeam Permission = "team:delete"
	// PermissionManageSettings allows editing team settings.
	PermissionManageSettings Permission = "settings:manage"
	// PermissionInviteMembers allows sending invitations.
	PermissionInviteMembers Permission = "members:invite"
	// PermissionRemoveMembers allows removing members.
	PermissionRemoveMembers Permission = "members:remove"
	// PermissionChangeRoles allows changing member roles.
	PermissionChangeRoles Permission = "members:change_role"
)

// defaultRolePermissions is the static role capability matrix. It is
// immutable, process-wide data; concurrent reads are safe.
var defaultRolePermissions = map[TeamRole]map[Permission]struct{}{
	RoleOwner: permissionSet(
		PermissionViewTeam,
		PermissionUpdateTeam,
		PermissionDeleteTeam,
		PermissionManageSettings,
		PermissionInviteMembers,
		PermissionRemoveMembers,
		PermissionChangeRoles,
	),
	RoleAdmin: permissionSet(
		PermissionViewTeam,
		PermissionUpdateTeam,
		PermissionManageSettings,
		PermissionInviteMembers,
		PermissionRemoveMembers,
		PermissionChangeRoles,
	),
	RoleMember: permissionSet(
		PermissionViewTeam,
	),
	RoleGuest: permissionSet(
		PermissionViewTeam,
	),
}

func permissionSet(perms ...Permission) map[Permission]struct{} {
	set := make(map[Permission]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// RoleHasPermission reports whether the role grants the permission.
// Unknown roles grant nothing.
func RoleHasPermission(role TeamRole, permission Permission) bool {
	set, ok := defaultRolePermissions[role]
	if !ok {
		return false
	}
	_, ok = set[permission]
	return ok
}

// RolePermissions returns the permissions granted to a role.
func RolePermissions(role TeamRole) []Permission {
	set, ok := defaultRolePermissions[role]
	if !ok {
		return nil
	}
	perms := make([]Permission, 0, len(set))
	for p := range set {
		perms = append(perms, p)
	}
	return perms
}

// AllPermissions returns every permission in the table.
func AllPermissions() []Permission {
	return []Permission{
		PermissionViewTeam,
		PermissionUpdateTeam,
		PermissionDeleteTeam,
		PermissionManageSettings,
		PermissionInviteMembers,
		PermissionRemoveMembers,
		PermissionChangeRoles,
	}
}
