// Package repository provides data access layer for the team aggregate.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	teamModel "github.com/festy23/team_service/internal/team/model"
)

// Repository defines the persistence contract consumed by the team
// application layer. The aggregate itself never touches it.
type Repository interface {
	// FindByID loads a team aggregate by its id.
	FindByID(ctx context.Context, id teamModel.ID) (*teamModel.Team, error)

	// FindByMemberID loads every team the user is a member of.
	FindByMemberID(ctx context.Context, userID teamModel.ID) ([]*teamModel.Team, error)

	// Save persists the aggregate snapshot. Concurrent modification of
	// the same team is detected with an optimistic version check and
	// surfaces as ErrTeamConflict.
	Save(ctx context.Context, team *teamModel.Team) error

	// Delete removes a team with its members and invitations.
	Delete(ctx context.Context, id teamModel.ID) error

	// FindInvitationByID loads a single invitation.
	FindInvitationByID(ctx context.Context, id teamModel.ID) (teamModel.TeamInvitation, error)

	// FindPendingInvitationsByUserID lists the user's pending invitations
	// across all teams.
	FindPendingInvitationsByUserID(ctx context.Context, userID teamModel.ID) ([]teamModel.TeamInvitation, error)
}

type repository struct {
	db *gorm.DB
}

// New creates a new team repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

// AutoMigrate creates the team tables. Production deployments use the
// SQL migrations; this covers sqlite-backed tests and local runs.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&teamRecord{}, &memberRecord{}, &invitationRecord{})
}

// teamRecord matches the teams table schema. Settings are stored as a
// JSON column.
type teamRecord struct {
	ID          string         `gorm:"primaryKey;column:id;type:varchar(64)"`
	Name        string         `gorm:"column:name;type:varchar(255);not null"`
	Description string         `gorm:"column:description;type:text"`
	OwnerID     string         `gorm:"column:owner_id;type:varchar(64);not null"`
	Settings    datatypes.JSON `gorm:"column:settings"`
	Version     int            `gorm:"column:version;not null"`
	CreatedAt   time.Time      `gorm:"column:created_at;not null"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;not null"`
}

// TableName specifies the table name for GORM.
func (teamRecord) TableName() string {
	return "teams"
}

// memberRecord matches the team_members table schema.
type memberRecord struct {
	TeamID   string    `gorm:"primaryKey;column:team_id;type:varchar(64)"`
	UserID   string    `gorm:"primaryKey;column:user_id;type:varchar(64)"`
	Role     string    `gorm:"column:role;type:varchar(16);not null"`
	JoinedAt time.Time `gorm:"column:joined_at;not null"`
}

// TableName specifies the table name for GORM.
func (memberRecord) TableName() string {
	return "team_members"
}

// invitationRecord matches the team_invitations table schema.
type invitationRecord struct {
	ID          string     `gorm:"primaryKey;column:id;type:varchar(64)"`
	TeamID      string     `gorm:"column:team_id;type:varchar(64);not null;index"`
	UserID      string     `gorm:"column:user_id;type:varchar(64);not null;index"`
	InvitedBy   string     `gorm:"column:invited_by;type:varchar(64);not null"`
	Email       string     `gorm:"column:email;type:varchar(255)"`
	Status      string     `gorm:"column:status;type:varchar(16);not null"`
	ExpiresAt   *time.Time `gorm:"column:expires_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;not null"`
	RespondedAt *time.Time `gorm:"column:responded_at"`
}

// TableName specifies the table name for GORM.
func (invitationRecord) TableName() string {
	return "team_invitations"
}

// FindByID loads a team aggregate by its id.
func (r *repository) FindByID(ctx context.Context, id teamModel.ID) (*teamModel.Team, error) {
	return loadTeam(r.db.WithContext(ctx), id)
}

// FindByMemberID loads every team the user is a member of.
func (r *repository) FindByMemberID(ctx context.Context, userID teamModel.ID) ([]*teamModel.Team, error) {
	db := r.db.WithContext(ctx)

	var teamIDs []string
	err := db.Model(&memberRecord{}).
		Where("user_id = ?", userID.String()).
		Order("team_id ASC").
		Pluck("team_id", &teamIDs).Error
	if err != nil {
		return nil, err
	}

	teams := make([]*teamModel.Team, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		team, err := loadTeam(db, teamModel.ID(teamID))
		if err != nil {
			// A membership row without its team means the team was
			// deleted between the two queries; skip it.
			if errors.Is(err, teamModel.ErrTeamNotFound) {
				continue
			}
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, nil
}

// Save persists the aggregate snapshot inside a transaction.
func (r *repository) Save(ctx context.Context, team *teamModel.Team) error {
	state := team.State()

	settingsJSON, err := json.Marshal(state.Settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := teamRecord{
			ID:          state.ID.String(),
			Name:        state.Name,
			Description: state.Description,
			OwnerID:     state.OwnerID.String(),
			Settings:    datatypes.JSON(settingsJSON),
			Version:     state.Version + 1,
			CreatedAt:   state.CreatedAt,
			UpdatedAt:   state.UpdatedAt,
		}

		if state.Version == 0 {
			if err := tx.Create(&record).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return teamModel.ErrTeamConflict
				}
				return err
			}
		} else {
			res := tx.Model(&teamRecord{}).
				Where("id = ? AND version = ?", record.ID, state.Version).
				Updates(map[string]interface{}{
					"name":        record.Name,
					"description": record.Description,
					"owner_id":    record.OwnerID,
					"settings":    record.Settings,
					"version":     record.Version,
					"updated_at":  record.UpdatedAt,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return teamModel.ErrTeamConflict
			}
		}

		if err := saveMembers(tx, state); err != nil {
			return err
		}
		return saveInvitations(tx, state)
	})
}

// Delete removes a team with its members and invitations.
func (r *repository) Delete(ctx context.Context, id teamModel.ID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("team_id = ?", id.String()).Delete(&invitationRecord{}).Error; err != nil {
			return err
		}
		if err := tx.Where("team_id = ?", id.String()).Delete(&memberRecord{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id.String()).Delete(&teamRecord{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return teamModel.ErrTeamNotFound
		}
		return nil
	})
}

// FindInvitationByID loads a single invitation.
func (r *repository) FindInvitationByID(ctx context.Context, id teamModel.ID) (teamModel.TeamInvitation, error) {
	var record invitationRecord
	err := r.db.WithContext(ctx).
		Where("id = ?", id.String()).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return teamModel.TeamInvitation{}, teamModel.ErrInvitationNotFound
		}
		return teamModel.TeamInvitation{}, err
	}
	return invitationFromRecord(record), nil
}

// FindPendingInvitationsByUserID lists the user's pending invitations.
func (r *repository) FindPendingInvitationsByUserID(ctx context.Context, userID teamModel.ID) ([]teamModel.TeamInvitation, error) {
	var records []invitationRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID.String(), string(teamModel.InvitationPending)).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	invitations := make([]teamModel.TeamInvitation, 0, len(records))
	for _, record := range records {
		invitations = append(invitations, invitationFromRecord(record))
	}
	return invitations, nil
}

func loadTeam(db *gorm.DB, id teamModel.ID) (*teamModel.Team, error) {
	var record teamRecord
	err := db.Where("id = ?", id.String()).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, teamModel.ErrTeamNotFound
		}
		return nil, err
	}

	var memberRecords []memberRecord
	err = db.Where("team_id = ?", id.String()).
		Order("joined_at ASC, user_id ASC").
		Find(&memberRecords).Error
	if err != nil {
		return nil, err
	}

	var invitationRecords []invitationRecord
	err = db.Where("team_id = ?", id.String()).
		Order("created_at ASC, id ASC").
		Find(&invitationRecords).Error
	if err != nil {
		return nil, err
	}

	var settings teamModel.Settings
	if len(record.Settings) > 0 {
		if err := json.Unmarshal(record.Settings, &settings); err != nil {
			return nil, fmt.Errorf("failed to decode settings for team %s: %w", record.ID, err)
		}
	} else {
		settings = teamModel.DefaultSettings()
	}

	members := make([]teamModel.TeamMember, 0, len(memberRecords))
	for _, m := range memberRecords {
		members = append(members, teamModel.TeamMember{
			UserID:   teamModel.ID(m.UserID),
			Role:     teamModel.TeamRole(m.Role),
			JoinedAt: m.JoinedAt,
		})
	}

	invitations := make([]teamModel.TeamInvitation, 0, len(invitationRecords))
	for _, inv := range invitationRecords {
		invitations = append(invitations, invitationFromRecord(inv))
	}

	return teamModel.RehydrateTeam(teamModel.TeamState{
		ID:          teamModel.ID(record.ID),
		Name:        record.Name,
		Description: record.Description,
		OwnerID:     teamModel.ID(record.OwnerID),
		Members:     members,
		Invitations: invitations,
		Settings:    settings,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
		Version:     record.Version,
	})
}

func saveMembers(tx *gorm.DB, state teamModel.TeamState) error {
	userIDs := make([]string, 0, len(state.Members))
	records := make([]memberRecord, 0, len(state.Members))
	for _, m := range state.Members {
		userIDs = append(userIDs, m.UserID.String())
		records = append(records, memberRecord{
			TeamID:   state.ID.String(),
			UserID:   m.UserID.String(),
			Role:     m.Role.String(),
			JoinedAt: m.JoinedAt,
		})
	}

	// Remove memberships dropped from the aggregate.
	del := tx.Where("team_id = ?", state.ID.String())
	if len(userIDs) > 0 {
		del = del.Where("user_id NOT IN ?", userIDs)
	}
	if err := del.Delete(&memberRecord{}).Error; err != nil {
		return err
	}

	if len(records) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "team_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "joined_at"}),
	}).Create(&records).Error
}

func saveInvitations(tx *gorm.DB, state teamModel.TeamState) error {
	if len(state.Invitations) == 0 {
		return nil
	}
	records := make([]invitationRecord, 0, len(state.Invitations))
	for _, inv := range state.Invitations {
		records = append(records, invitationRecord{
			ID:          inv.ID.String(),
			TeamID:      inv.TeamID.String(),
			UserID:      inv.UserID.String(),
			InvitedBy:   inv.InvitedBy.String(),
			Email:       inv.Email,
			Status:      string(inv.Status),
			ExpiresAt:   inv.ExpiresAt,
			CreatedAt:   inv.CreatedAt,
			RespondedAt: inv.RespondedAt,
		})
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "responded_at", "expires_at"}),
	}).Create(&records).Error
}

func invitationFromRecord(record invitationRecord) teamModel.TeamInvitation {
	return teamModel.TeamInvitation{
		ID:          teamModel.ID(record.ID),
		TeamID:      teamModel.ID(record.TeamID),
		UserID:      teamModel.ID(record.UserID),
		InvitedBy:   teamModel.ID(record.InvitedBy),
		Email:       record.Email,
		Status:      teamModel.InvitationStatus(record.Status),
		ExpiresAt:   record.ExpiresAt,
		CreatedAt:   record.CreatedAt,
		RespondedAt: record.RespondedAt,
	}
}
