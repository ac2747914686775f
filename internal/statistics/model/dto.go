// Package model provides data transfer objects for statistics module.
package model

// RoleCount represents the number of members holding one role.
type RoleCount struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

// TeamStatistics represents aggregate statistics over all teams.
type TeamStatistics struct {
	TotalTeams            int     `json:"total_teams"`
	TotalMembers          int     `json:"total_members"`
	AverageMembersPerTeam float64 `json:"average_members_per_team"`
	LargestTeamSize       int     `json:"largest_team_size"`
}

// TeamStatisticsResponse represents response for team statistics.
type TeamStatisticsResponse struct {
	Statistics TeamStatistics `json:"statistics"`
	Roles      []RoleCount    `json:"roles"`
}

// InvitationStatistics represents aggregate statistics over invitations.
type InvitationStatistics struct {
	TotalInvitations int     `json:"total_invitations"`
	Pending          int     `json:"pending"`
	Accepted         int     `json:"accepted"`
	Declined         int     `json:"declined"`
	PendingExpired   int     `json:"pending_expired"`
	AcceptanceRate   float64 `json:"acceptance_rate"`
}

// InvitationStatisticsResponse represents response for invitation statistics.
type InvitationStatisticsResponse struct {
	Statistics InvitationStatistics `json:"statistics"`
}
