// Package repository provides data access layer for statistics module.
package repository

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/team_service/internal/statistics/model"
)

// Repository defines the interface for statistics data access operations.
type Repository interface {
	// GetTeamStatistics returns aggregate statistics over all teams.
	GetTeamStatistics(ctx context.Context) (*model.TeamStatistics, error)

	// GetRoleCounts returns how many members hold each role.
	GetRoleCounts(ctx context.Context) ([]model.RoleCount, error)

	// GetInvitationStatistics returns aggregate statistics over invitations.
	GetInvitationStatistics(ctx context.Context) (*model.InvitationStatistics, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new statistics repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// GetTeamStatistics returns aggregate statistics over all teams.
func (r *repository) GetTeamStatistics(ctx context.Context) (*model.TeamStatistics, error) {
	r.logger.Debugw("GetTeamStatistics called")

	var result struct {
		TotalTeams      int64   `gorm:"column:total_teams"`
		TotalMembers    int64   `gorm:"column:total_members"`
		AvgMembers      float64 `gorm:"column:avg_members"`
		LargestTeamSize int64   `gorm:"column:largest_team_size"`
	}

	err := r.db.WithContext(ctx).
		Table("teams").
		Select(`
			COUNT(*) as total_teams,
			COALESCE(SUM(member_counts.member_count), 0) as total_members,
			COALESCE(AVG(member_counts.member_count), 0) as avg_members,
			COALESCE(MAX(member_counts.member_count), 0) as largest_team_size
		`).
		Joins(`
			LEFT JOIN (
				SELECT team_id, CAST(COUNT(*) AS REAL) as member_count
				FROM team_members
				GROUP BY team_id
			) member_counts ON teams.id = member_counts.team_id
		`).
		Scan(&result).Error

	if err != nil {
		r.logger.Errorw("GetTeamStatistics database error", "error", err)
		return nil, err
	}

	stats := &model.TeamStatistics{
		TotalTeams:            int(result.TotalTeams),
		TotalMembers:          int(result.TotalMembers),
		AverageMembersPerTeam: result.AvgMembers,
		LargestTeamSize:       int(result.LargestTeamSize),
	}

	r.logger.Debugw("GetTeamStatistics completed", "total_teams", stats.TotalTeams)
	return stats, nil
}

// GetRoleCounts returns how many members hold each role.
func (r *repository) GetRoleCounts(ctx context.Context) ([]model.RoleCount, error) {
	r.logger.Debugw("GetRoleCounts called")

	var counts []model.RoleCount

	err := r.db.WithContext(ctx).
		Table("team_members").
		Select("role, COUNT(*) as count").
		Group("role").
		Order("count DESC, role ASC").
		Scan(&counts).Error

	if err != nil {
		r.logger.Errorw("GetRoleCounts database error", "error", err)
		return nil, err
	}

	if counts == nil {
		counts = []model.RoleCount{}
	}

	r.logger.Debugw("GetRoleCounts completed", "roles", len(counts))
	return counts, nil
}

// GetInvitationStatistics returns aggregate statistics over invitations.
// Pending invitations past their deadline are reported separately; the
// rows themselves only change when the invitee responds.
func (r *repository) GetInvitationStatistics(ctx context.Context) (*model.InvitationStatistics, error) {
	r.logger.Debugw("GetInvitationStatistics called")

	var result struct {
		Total          int64 `gorm:"column:total"`
		Pending        int64 `gorm:"column:pending"`
		Accepted       int64 `gorm:"column:accepted"`
		Declined       int64 `gorm:"column:declined"`
		PendingExpired int64 `gorm:"column:pending_expired"`
	}

	err := r.db.WithContext(ctx).
		Table("team_invitations").
		Select(`
			COUNT(*) as total,
			SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END) as pending,
			SUM(CASE WHEN status = 'accepted' THEN 1 ELSE 0 END) as accepted,
			SUM(CASE WHEN status = 'declined' THEN 1 ELSE 0 END) as declined,
			SUM(CASE WHEN status = 'pending' AND expires_at IS NOT NULL AND expires_at < ? THEN 1 ELSE 0 END) as pending_expired
		`, time.Now().UTC()).
		Scan(&result).Error

	if err != nil {
		r.logger.Errorw("GetInvitationStatistics database error", "error", err)
		return nil, err
	}

	stats := &model.InvitationStatistics{
		TotalInvitations: int(result.Total),
		Pending:          int(result.Pending),
		Accepted:         int(result.Accepted),
		Declined:         int(result.Declined),
		PendingExpired:   int(result.PendingExpired),
	}
	if answered := stats.Accepted + stats.Declined; answered > 0 {
		stats.AcceptanceRate = float64(stats.Accepted) / float64(answered)
	}

	r.logger.Debugw("GetInvitationStatistics completed", "total", stats.TotalInvitations)
	return stats, nil
}
