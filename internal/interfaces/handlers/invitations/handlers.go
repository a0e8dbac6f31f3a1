package invitations

import (
	"errors"
	"fmt"
	"strings"

	invsvc "huddle-backend/internal/application/invitations"
	invitepolicies "huddle-backend/internal/application/policies/invitations"
	"huddle-backend/internal/middleware"
	"huddle-backend/internal/pkg/constants"
	"huddle-backend/internal/pkg/response"
	"huddle-backend/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Handlers holds dependencies for invitation endpoints.
type Handlers struct {
	Service *invsvc.Service
}

type InviteRequest struct {
	Invitees    []string `json:"invitees"`
	MeetingID   string   `json:"meetingId"`
	MutatorID   string   `json:"mutatorId"`
	OperationID string   `json:"operationId"`
}

type TokenRequest struct {
	Token string `json:"token"`
}

// InviteToTeam POST /api/v1/teams/:teamId/invitations
func (h *Handlers) InviteToTeam(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	teamID, err := uuid.Parse(c.Params("teamId"))
	if err != nil {
		return response.Error(c, "Invalid team id", fiber.StatusBadRequest, nil)
	}

	var req InviteRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if len(req.Invitees) == 0 {
		return response.Error(c, "At least one invitee is required", fiber.StatusBadRequest, nil)
	}
	if len(req.Invitees) > constants.MaxInviteesPerRequest {
		return response.Error(c, fmt.Sprintf("At most %d invitees per request", constants.MaxInviteesPerRequest), fiber.StatusBadRequest, nil)
	}
	invitees := make([]string, 0, len(req.Invitees))
	for _, email := range req.Invitees {
		email = strings.TrimSpace(email)
		if !validation.IsValidEmail(email) {
			return response.Error(c, "Invalid email: "+email, fiber.StatusBadRequest, nil)
		}
		invitees = append(invitees, email)
	}

	in := invsvc.InviteToTeamInput{
		Invitees:    invitees,
		TeamID:      teamID,
		ViewerID:    user.ID(),
		MutatorID:   req.MutatorID,
		OperationID: req.OperationID,
	}
	if req.MeetingID != "" {
		meetingID, err := uuid.Parse(req.MeetingID)
		if err != nil {
			return response.Error(c, "Invalid meeting id", fiber.StatusBadRequest, nil)
		}
		in.MeetingID = &meetingID
	}

	result, err := h.Service.InviteToTeam(c.UserContext(), in)
	switch {
	case errors.Is(err, invitepolicies.ErrEmailInvitesDisabled):
		return response.Error(c, err.Error(), fiber.StatusForbidden, fiber.Map{"invitees": []string{}})
	case errors.Is(err, invsvc.ErrInviterNotFound), errors.Is(err, invsvc.ErrTeamNotFound), errors.Is(err, invsvc.ErrOrgNotFound):
		return response.NotFound(c, err.Error())
	case err != nil:
		log.Error().Err(err).Str("team_id", teamID.String()).Msg("invite to team failed")
		return response.Internal(c)
	}
	return response.Success(c, "Invitations sent", result, nil)
}

// ListTeamInvitations GET /api/v1/teams/:teamId/invitations
func (h *Handlers) ListTeamInvitations(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	teamID, err := uuid.Parse(c.Params("teamId"))
	if err != nil {
		return response.Error(c, "Invalid team id", fiber.StatusBadRequest, nil)
	}
	list, err := h.Service.ListTeamInvitations(c.UserContext(), teamID, user.ID())
	if err != nil {
		if errors.Is(err, invsvc.ErrNotTeamMember) {
			return response.Error(c, err.Error(), fiber.StatusForbidden, nil)
		}
		log.Error().Err(err).Str("team_id", teamID.String()).Msg("list team invitations failed")
		return response.Internal(c)
	}
	return response.Success(c, "Invitations fetched", list, fiber.Map{"count": len(list)})
}

// CheckToken POST /api/v1/invitations/public/check-token
func (h *Handlers) CheckToken(c *fiber.Ctx) error {
	var req TokenRequest
	_ = c.BodyParser(&req)
	res, err := h.Service.CheckToken(c.UserContext(), req.Token)
	if err != nil {
		return tokenError(c, err)
	}
	return response.Success(c, "Invitation is valid", res, nil)
}

// AcceptInvitation POST /api/v1/invitations/accept
func (h *Handlers) AcceptInvitation(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return response.Unauthorized(c, "Unauthorized")
	}
	var req TokenRequest
	_ = c.BodyParser(&req)
	res, err := h.Service.AcceptInvitation(c.UserContext(), req.Token, user.ID())
	if err != nil {
		return tokenError(c, err)
	}
	return response.Success(c, "Invitation accepted", res, nil)
}

func tokenError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, invsvc.ErrTokenRequired),
		errors.Is(err, invsvc.ErrInvalidToken),
		errors.Is(err, invsvc.ErrInvitationExpired),
		errors.Is(err, invsvc.ErrInvitationAccepted):
		return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
	case errors.Is(err, invsvc.ErrEmailMismatch):
		return response.Error(c, err.Error(), fiber.StatusForbidden, nil)
	case errors.Is(err, invsvc.ErrUserNotFound), errors.Is(err, invsvc.ErrTeamNotFound):
		return response.NotFound(c, err.Error())
	default:
		log.Error().Err(err).Msg("invitation token operation failed")
		return response.Internal(c)
	}
}
