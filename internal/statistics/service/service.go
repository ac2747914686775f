// Package service provides business logic layer for statistics module.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/festy23/team_service/internal/statistics/model"
	"github.com/festy23/team_service/internal/statistics/repository"
)

// Service defines the interface for statistics business logic operations.
type Service interface {
	// GetTeamStatistics returns aggregate statistics over all teams.
	GetTeamStatistics(ctx context.Context) (*model.TeamStatisticsResponse, error)

	// GetInvitationStatistics returns aggregate statistics over invitations.
	GetInvitationStatistics(ctx context.Context) (*model.InvitationStatisticsResponse, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new statistics service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

// GetTeamStatistics returns aggregate statistics over all teams.
func (s *service) GetTeamStatistics(ctx context.Context) (*model.TeamStatisticsResponse, error) {
	s.logger.Debugw("GetTeamStatistics called")

	stats, err := s.repo.GetTeamStatistics(ctx)
	if err != nil {
		s.logger.Errorw("GetTeamStatistics failed", "error", err)
		return nil, err
	}

	roles, err := s.repo.GetRoleCounts(ctx)
	if err != nil {
		s.logger.Errorw("GetRoleCounts failed", "error", err)
		return nil, err
	}
	if roles == nil {
		roles = []model.RoleCount{}
	}

	s.logger.Infow("GetTeamStatistics completed", "total_teams", stats.TotalTeams)
	return &model.TeamStatisticsResponse{
		Statistics: *stats,
		Roles:      roles,
	}, nil
}

// GetInvitationStatistics returns aggregate statistics over invitations.
func (s *service) GetInvitationStatistics(ctx context.Context) (*model.InvitationStatisticsResponse, error) {
	s.logger.Debugw("GetInvitationStatistics called")

	stats, err := s.repo.GetInvitationStatistics(ctx)
	if err != nil {
		s.logger.Errorw("GetInvitationStatistics failed", "error", err)
		return nil, err
	}

	s.logger.Infow("GetInvitationStatistics completed", "total", stats.TotalInvitations)
	return &model.InvitationStatisticsResponse{
		Statistics: *stats,
	}, nil
}
