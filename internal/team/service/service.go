// Package service provides the application layer for the team aggregate:
// load, mutate, persist, publish.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/festy23/team_service/internal/event"
	teamModel "github.com/festy23/team_service/internal/team/model"
	"github.com/festy23/team_service/internal/team/repository"
)

// Service defines the team use cases. Every mutating use case follows
// the same pipeline: load the aggregate, authorize the actor through the
// aggregate's permission queries, mutate, save, and only after a
// successful save publish the drained events in emission order.
type Service interface {
	// CreateTeam creates a team owned by the requesting user.
	CreateTeam(ctx context.Context, req *teamModel.CreateTeamRequest) (*teamModel.TeamResponse, error)

	// GetTeam returns a team with members and invitations.
	GetTeam(ctx context.Context, teamID string) (*teamModel.TeamResponse, error)

	// ListTeamsByMember returns every team the user belongs to.
	ListTeamsByMember(ctx context.Context, userID string) ([]*teamModel.TeamResponse, error)

	// UpdateTeam applies a partial update to team properties.
	UpdateTeam(ctx context.Context, teamID, actorID string, req *teamModel.UpdateTeamRequest) (*teamModel.TeamResponse, error)

	// DeleteTeam removes the team entirely. Owner only.
	DeleteTeam(ctx context.Context, teamID, actorID string) error

	// AddMember adds a user to the team directly.
	AddMember(ctx context.Context, teamID, actorID string, req *teamModel.AddMemberRequest) (*teamModel.TeamResponse, error)

	// RemoveMember removes a member; members may remove themselves.
	RemoveMember(ctx context.Context, teamID, actorID, userID string) error

	// ChangeMemberRole changes a member's role.
	ChangeMemberRole(ctx context.Context, teamID, actorID, userID string, req *teamModel.ChangeRoleRequest) error

	// InviteUser sends a team invitation.
	InviteUser(ctx context.Context, teamID, actorID string, req *teamModel.InviteRequest) (*teamModel.InvitationResponse, error)

	// RespondToInvitation accepts or declines the user's pending invitation.
	RespondToInvitation(ctx context.Context, teamID string, req *teamModel.RespondInvitationRequest) (*teamModel.TeamResponse, error)
}

type service struct {
	repo      repository.Repository
	publisher event.Publisher
	logger    *zap.SugaredLogger
}

// New creates a new team service instance.
func New(repo repository.Repository, publisher event.Publisher, logger *zap.SugaredLogger) Service {
	return &service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateTeam creates a team owned by the requesting user.
func (s *service) CreateTeam(ctx context.Context, req *teamModel.CreateTeamRequest) (*teamModel.TeamResponse, error) {
	ownerID, err := teamModel.ParseID(req.OwnerID)
	if err != nil {
		return nil, teamModel.ErrInvalidOwner
	}

	team, err := teamModel.NewTeam(teamModel.CreateTeamParams{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     ownerID,
		Settings:    req.Settings,
	})
	if err != nil {
		return nil, err
	}

	if err := s.commit(ctx, team); err != nil {
		return nil, err
	}
	return teamModel.NewTeamResponse(team), nil
}

// GetTeam returns a team with members and invitations.
func (s *service) GetTeam(ctx context.Context, teamID string) (*teamModel.TeamResponse, error) {
	id, err := teamModel.ParseID(teamID)
	if err != nil {
		return nil, err
	}
	team, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return teamModel.NewTeamResponse(team), nil
}

// ListTeamsByMember returns every team the user belongs to.
func (s *service) ListTeamsByMember(ctx context.Context, userID string) ([]*teamModel.TeamResponse, error) {
	id, err := teamModel.ParseID(userID)
	if err != nil {
		return nil, err
	}
	teams, err := s.repo.FindByMemberID(ctx, id)
	if err != nil {
		return nil, err
	}
	responses := make([]*teamModel.TeamResponse, 0, len(teams))
	for _, team := range teams {
		responses = append(responses, teamModel.NewTeamResponse(team))
	}
	return responses, nil
}

// UpdateTeam applies a partial update to team properties.
func (s *service) UpdateTeam(ctx context.Context, teamID, actorID string, req *teamModel.UpdateTeamRequest) (*teamModel.TeamResponse, error) {
	team, actor, err := s.loadForActor(ctx, teamID, actorID)
	if err != nil {
		return nil, err
	}
	if !team.HasMemberPermission(actor, teamModel.PermissionUpdateTeam) {
		return nil, teamModel.ErrPermissionDenied
	}
	if req.Settings != nil && !team.HasMemberPermission(actor, teamModel.PermissionManageSettings) {
		return nil, teamModel.ErrPermissionDenied
	}

	err = team.Update(teamModel.UpdateTeamParams{
		Name:        req.Name,
		Description: req.Description,
		Settings:    req.Settings,
	})
	if err != nil {
		return nil, err
	}

	if err := s.commit(ctx, team); err != nil {
		return nil, err
	}
	return teamModel.NewTeamResponse(team), nil
}

// DeleteTeam removes the team entirely.
func (s *service) DeleteTeam(ctx context.Context, teamID, actorID string) error {
	team, actor, err := s.loadForActor(ctx, teamID, actorID)
	if err != nil {
		return err
	}
	if !team.HasMemberPermission(actor, teamModel.PermissionDeleteTeam) {
		return teamModel.ErrPermissionDenied
	}
	return s.repo.Delete(ctx, team.ID())
}

// AddMember adds a user to the team directly.
func (s *service) AddMember(ctx context.Context, teamID, actorID string, req *teamModel.AddMemberRequest) (*teamModel.TeamResponse, error) {
	team, actor, err := s.loadForActor(ctx, teamID, actorID)
	if err != nil {
		return nil, err
	}
	if !team.CanManageMembers(actor) {
		return nil, teamModel.ErrPermissionDenied
	}

	userID, err := teamModel.ParseID(req.UserID)
	if err != nil {
		return nil, err
	}
	role, err := teamModel.ParseTeamRole(req.Role)
	if err != nil {
		return nil, err
	}
	member, err := teamModel.NewTeamMember(userID, role, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if err := team.AddMember(member); err != nil {
		return nil, err
	}
	if err := s.commit(ctx, team); err != nil {
		return nil, err
	}
	return teamModel.NewTeamResponse(team), nil
}

// RemoveMember removes a member; members may remove themselves.
func (s *service) RemoveMember(ctx context.Context, teamID, actorID, userID string) error {
	team, actor, err := s.loadForActor(ctx, teamID, actorID)
	if err != nil {
		return err
	}
	target, err := teamModel.ParseID(userID)
	if err != nil {
		return err
	}
	leavingSelf := target == actor
	if !leavingSelf && !team.HasMemberPermission(actor, teamModel.PermissionRemoveMembers) {
		return teamModel.ErrPermissionDenied
	}

	if err := team.RemoveMember(target); err != nil {
		return err
	}
	return s.commit(ctx, team)
}

// ChangeMemberRole changes a member's role.
func (s *service) ChangeMemberRole(ctx context.Context, teamID, actorID, userID string, req *teamModel.ChangeRoleRequest) error {
	team, actor, err := s.loadForActor(ctx, teamID, actorID)
	if err != nil {
		return err
	}
	if !team.HasMemberPermission(actor, teamModel.PermissionChangeRoles) {
		return teamModel.ErrPermissionDenied
	}

	target, err := teamModel.ParseID(userID)
	if err != nil {
		return err
	}
	role, err := teamModel.ParseTeamRole(req.Role)
	if err != nil {
		return err
	}

	if err := team.UpdateMemberRole(target, role); err != nil {
		return err
	}
	return s.commit(ctx, team)
}

// InviteUser sends a team invitation.
func (s *service) InviteUser(ctx context.Context, teamID, actorID string, req *teamModel.InviteRequest) (*teamModel.InvitationResponse, error) {
	team, actor, err := s.loadForActor(ctx, teamID, actorID)
	if err != nil {
		return nil, err
	}
	if !team.CanInviteMembers(actor) {
		return nil, teamModel.ErrPermissionDenied
	}

	userID, err := teamModel.ParseID(req.UserID)
	if err != nil {
		return nil, err
	}
	var expiresAt *time.Time
	if req.TTLHours > 0 {
		expiry := time.Now().UTC().Add(time.Duration(req.TTLHours) * time.Hour)
		expiresAt = &expiry
	}

	invitation, err := teamModel.NewTeamInvitation(team.ID(), userID, actor, req.Email, expiresAt)
	if err != nil {
		return nil, err
	}
	if err := team.AddInvitation(invitation); err != nil {
		return nil, err
	}
	if err := s.commit(ctx, team); err != nil {
		return nil, err
	}

	response := teamModel.NewInvitationResponse(invitation)
	return &response, nil
}

// RespondToInvitation accepts or declines the user's pending invitation.
func (s *service) RespondToInvitation(ctx context.Context, teamID string, req *teamModel.RespondInvitationRequest) (*teamModel.TeamResponse, error) {
	id, err := teamModel.ParseID(teamID)
	if err != nil {
		return nil, err
	}
	userID, err := teamModel.ParseID(req.UserID)
	if err != nil {
		return nil, err
	}
	team, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	accept := req.Accept != nil && *req.Accept
	if err := team.RespondToInvitation(userID, accept); err != nil {
		return nil, err
	}
	if err := s.commit(ctx, team); err != nil {
		return nil, err
	}
	return teamModel.NewTeamResponse(team), nil
}

// loadForActor loads the aggregate and parses the acting user id.
func (s *service) loadForActor(ctx context.Context, teamID, actorID string) (*teamModel.Team, teamModel.ID, error) {
	id, err := teamModel.ParseID(teamID)
	if err != nil {
		return nil, "", err
	}
	actor, err := teamModel.ParseID(actorID)
	if err != nil {
		return nil, "", err
	}
	team, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return team, actor, nil
}

// commit persists the aggregate and publishes its events. A failed save
// leaves the event log intact so the caller may retry without dropping
// events. Publish failures after a successful save are logged and do not
// fail the operation; the state change is already durable.
func (s *service) commit(ctx context.Context, team *teamModel.Team) error {
	if err := s.repo.Save(ctx, team); err != nil {
		return err
	}

	for _, ev := range team.DomainEvents() {
		if err := s.publisher.Publish(ctx, ev); err != nil {
			s.logger.Errorw("failed to publish domain event",
				"event_id", ev.ID,
				"event_type", ev.Type,
				"team_id", ev.TeamID,
				"error", err,
			)
		}
	}
	team.ClearEvents()
	return nil
}
