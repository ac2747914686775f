package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	teamModel "github.com/festy23/team_service/internal/team/model"
)

// ErrorResponse represents the error response envelope.
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// errorResponse writes an error envelope with the given code and status.
func errorResponse(c *gin.Context, code string, message string, statusCode int) {
	resp := ErrorResponse{}
	resp.Error.Code = code
	resp.Error.Message = message
	c.JSON(statusCode, resp)
}

// domainError maps one domain error variant to its HTTP representation.
type domainError struct {
	target error
	code   string
	status int
}

// domainErrors is the closed mapping from the domain error surface to
// HTTP codes. Order matters only for readability; targets are disjoint.
var domainErrors = []domainError{
	{teamModel.ErrInvalidID, "INVALID_REQUEST", http.StatusBadRequest},
	{teamModel.ErrInvalidOwner, "INVALID_OWNER", http.StatusBadRequest},
	{teamModel.ErrInvalidRole, "INVALID_ROLE", http.StatusBadRequest},
	{teamModel.ErrNameTooShort, "NAME_TOO_SHORT", http.StatusBadRequest},
	{teamModel.ErrNameTooLong, "NAME_TOO_LONG", http.StatusBadRequest},
	{teamModel.ErrDescriptionTooLong, "DESCRIPTION_TOO_LONG", http.StatusBadRequest},
	{teamModel.ErrPermissionDenied, "PERMISSION_DENIED", http.StatusForbidden},
	{teamModel.ErrTeamNotFound, "TEAM_NOT_FOUND", http.StatusNotFound},
	{teamModel.ErrMemberNotFound, "MEMBER_NOT_FOUND", http.StatusNotFound},
	{teamModel.ErrInvitationNotFound, "INVITATION_NOT_FOUND", http.StatusNotFound},
	{teamModel.ErrMemberAlreadyExists, "MEMBER_EXISTS", http.StatusConflict},
	{teamModel.ErrInvitationAlreadyExists, "INVITATION_EXISTS", http.StatusConflict},
	{teamModel.ErrOnlyOneOwnerAllowed, "ONLY_ONE_OWNER", http.StatusConflict},
	{teamModel.ErrCannotRemoveOwner, "CANNOT_REMOVE_OWNER", http.StatusConflict},
	{teamModel.ErrCannotChangeOwnerRole, "CANNOT_CHANGE_OWNER_ROLE", http.StatusConflict},
	{teamModel.ErrTeamFull, "TEAM_FULL", http.StatusConflict},
	{teamModel.ErrInvitationNotPending, "INVITATION_NOT_PENDING", http.StatusConflict},
	{teamModel.ErrInvitationExpired, "INVITATION_EXPIRED", http.StatusConflict},
	{teamModel.ErrTeamConflict, "CONCURRENT_MODIFICATION", http.StatusConflict},
}

// writeDomainError maps a service error to its HTTP response, reporting
// whether the error was part of the domain surface.
func writeDomainError(c *gin.Context, err error) bool {
	for _, de := range domainErrors {
		if errors.Is(err, de.target) {
			errorResponse(c, de.code, de.target.Error(), de.status)
			return true
		}
	}
	return false
}
