package controller

import (
	"tempus/core/controller"
	"tempus/core/errors"
	"tempus/core/params"
	"tempus/modules/team/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TeamController handles team HTTP requests
type TeamController struct {
	controller.BaseController
	TeamService service.TeamServiceInterface
}

func NewTeamController(svc service.TeamServiceInterface) *TeamController {
	return &TeamController{
		BaseController: controller.NewBaseController(),
		TeamService:    svc,
	}
}

type createTeamRequest struct {
	Name           string `json:"name" validate:"required"`
	Description    string `json:"description"`
	OrganizationID string `json:"organization_id"`
}

type memberRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// CreateTeam handles POST /teams
func (c *TeamController) CreateTeam(ctx echo.Context) error {
	var req createTeamRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	var orgID *uuid.UUID
	if req.OrganizationID != "" {
		id, err := uuid.Parse(req.OrganizationID)
		if err != nil {
			return c.BadRequest(errors.ErrInvalidInput, "Invalid organization ID")
		}
		orgID = &id
	}

	result, appErr := c.TeamService.CreateTeam(ctx.Request().Context(), req.Name, req.Description, orgID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Team created successfully")
}

// GetTeams handles GET /teams
func (c *TeamController) GetTeams(ctx echo.Context) error {
	result, appErr := c.TeamService.GetTeams(ctx.Request().Context(), params.FromContext(ctx))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// GetTeam handles GET /teams/:id
func (c *TeamController) GetTeam(ctx echo.Context) error {
	teamID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid team ID")
	}

	result, appErr := c.TeamService.GetTeamByID(ctx.Request().Context(), teamID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, result, "Success")
}

// AddMember handles POST /teams/:id/members
func (c *TeamController) AddMember(ctx echo.Context) error {
	teamID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid team ID")
	}

	var req memberRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid user ID")
	}

	if appErr := c.TeamService.AddMember(ctx.Request().Context(), teamID, userID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Member added")
}

// RemoveMember handles DELETE /teams/:id/members/:userId
func (c *TeamController) RemoveMember(ctx echo.Context) error {
	teamID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid team ID")
	}

	userID, err := uuid.Parse(ctx.Param("userId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid user ID")
	}

	if appErr := c.TeamService.RemoveMember(ctx.Request().Context(), teamID, userID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Member removed")
}
