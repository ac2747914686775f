// Package router provides team module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/team_service/internal/event"
	"github.com/festy23/team_service/internal/team/handler"
	"github.com/festy23/team_service/internal/team/repository"
	"github.com/festy23/team_service/internal/team/service"
)

// RegisterRoutes wires the team module: repository over the database,
// service publishing to the bus, handlers on the engine.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, publisher event.Publisher, logger *zap.SugaredLogger) {
	repo := repository.New(db)
	svc := service.New(repo, publisher, logger)
	h := handler.New(svc, logger)

	teams := r.Group("/teams")
	{
		teams.POST("", h.CreateTeam)
		teams.GET("", h.ListTeams)
		teams.GET("/:id", h.GetTeam)
		teams.PATCH("/:id", h.UpdateTeam)
		teams.DELETE("/:id", h.DeleteTeam)

		teams.POST("/:id/members", h.AddMember)
		teams.DELETE("/:id/members/:user_id", h.RemoveMember)
		teams.PUT("/:id/members/:user_id/role", h.ChangeMemberRole)

		teams.POST("/:id/invitations", h.InviteUser)
		teams.POST("/:id/invitations/respond", h.RespondToInvitation)
	}
}
