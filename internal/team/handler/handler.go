// Package handler provides HTTP handlers for team endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	teamModel "github.com/festy23/team_service/internal/team/model"
	"github.com/festy23/team_service/internal/team/service"
)

// actorHeader carries the acting user id, set by the API gateway in
// front of this service.
const actorHeader = "X-User-ID"

// Handler handles HTTP requests for team endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new team handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

func (h *Handler) actor(c *gin.Context) (string, bool) {
	actor := c.GetHeader(actorHeader)
	if actor == "" {
		errorResponse(c, "MISSING_ACTOR", "X-User-ID header is required", http.StatusUnauthorized)
		return "", false
	}
	return actor, true
}

func (h *Handler) fail(c *gin.Context, operation string, err error) {
	if writeDomainError(c, err) {
		return
	}
	h.logger.Errorw("team operation failed", "operation", operation, "error", err)
	errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
}

// CreateTeam handles POST /teams.
func (h *Handler) CreateTeam(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req teamModel.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}
	// The creator becomes the owner; a mismatching owner_id is rejected
	// instead of silently overridden.
	if req.OwnerID == "" {
		req.OwnerID = actor
	} else if req.OwnerID != actor {
		errorResponse(c, "INVALID_OWNER", "owner_id must match the acting user", http.StatusBadRequest)
		return
	}

	resp, err := h.service.CreateTeam(c.Request.Context(), &req)
	if err != nil {
		h.fail(c, "create team", err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetTeam handles GET /teams/:id.
func (h *Handler) GetTeam(c *gin.Context) {
	resp, err := h.service.GetTeam(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "get team", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListTeams handles GET /teams?member_id=... .
func (h *Handler) ListTeams(c *gin.Context) {
	memberID := c.Query("member_id")
	if memberID == "" {
		errorResponse(c, "INVALID_REQUEST", "member_id parameter is required", http.StatusBadRequest)
		return
	}

	teams, err := h.service.ListTeamsByMember(c.Request.Context(), memberID)
	if err != nil {
		h.fail(c, "list teams", err)
		return
	}
	c.JSON(http.StatusOK, map[string]interface{}{
		"teams": teams,
	})
}

// UpdateTeam handles PATCH /teams/:id.
func (h *Handler) UpdateTeam(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req teamModel.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.UpdateTeam(c.Request.Context(), c.Param("id"), actor, &req)
	if err != nil {
		h.fail(c, "update team", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteTeam handles DELETE /teams/:id.
func (h *Handler) DeleteTeam(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	if err := h.service.DeleteTeam(c.Request.Context(), c.Param("id"), actor); err != nil {
		h.fail(c, "delete team", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddMember handles POST /teams/:id/members.
func (h *Handler) AddMember(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req teamModel.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.AddMember(c.Request.Context(), c.Param("id"), actor, &req)
	if err != nil {
		h.fail(c, "add member", err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RemoveMember handles DELETE /teams/:id/members/:user_id.
func (h *Handler) RemoveMember(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	err := h.service.RemoveMember(c.Request.Context(), c.Param("id"), actor, c.Param("user_id"))
	if err != nil {
		h.fail(c, "remove member", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ChangeMemberRole handles PUT /teams/:id/members/:user_id/role.
func (h *Handler) ChangeMemberRole(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req teamModel.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	err := h.service.ChangeMemberRole(c.Request.Context(), c.Param("id"), actor, c.Param("user_id"), &req)
	if err != nil {
		h.fail(c, "change member role", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// InviteUser handles POST /teams/:id/invitations.
func (h *Handler) InviteUser(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req teamModel.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.InviteUser(c.Request.Context(), c.Param("id"), actor, &req)
	if err != nil {
		h.fail(c, "invite user", err)
		return
	}
	c.JSON(http.StatusCreated, map[string]interface{}{
		"invitation": resp,
	})
}

// RespondToInvitation handles POST /teams/:id/invitations/respond.
func (h *Handler) RespondToInvitation(c *gin.Context) {
	actor, ok := h.actor(c)
	if !ok {
		return
	}

	var req teamModel.RespondInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "INVALID_REQUEST", "invalid request body", http.StatusBadRequest)
		return
	}
	if req.UserID != actor {
		errorResponse(c, "PERMISSION_DENIED", "only the invited user may respond", http.StatusForbidden)
		return
	}

	resp, err := h.service.RespondToInvitation(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.fail(c, "respond to invitation", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
