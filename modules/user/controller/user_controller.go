package controller

import (
	"tempus/core/constants"
	"tempus/core/controller"
	"tempus/core/errors"
	"tempus/core/utils"
	"tempus/modules/user/dto"
	"tempus/modules/user/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// UserController handles directory HTTP requests
type UserController struct {
	controller.BaseController
	UserService service.UserServiceInterface
}

func NewUserController(svc service.UserServiceInterface) *UserController {
	return &UserController{
		BaseController: controller.NewBaseController(),
		UserService:    svc,
	}
}

func (c *UserController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	tokenData := ctx.Get(constants.ContextTokenData)
	if tokenData == nil {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "User not authenticated", nil)
	}

	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return uuid.Nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid token data", nil)
	}

	return claims.UserID, nil
}

// CreateUser handles POST /users
// @Summary Provision a directory user
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User details"
// @Success 200 {object} dto.UserResponse
// @Router /private/users [post]
func (c *UserController) CreateUser(ctx echo.Context) error {
	var req dto.CreateUserRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	result, appErr := c.UserService.CreateUser(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "User created successfully")
}

// GetUser handles GET /users/:id
func (c *UserController) GetUser(ctx echo.Context) error {
	userID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid user ID")
	}

	result, appErr := c.UserService.GetUserByID(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, result, "Success")
}

// UpdateSharing handles PUT /users/me/sharing
func (c *UserController) UpdateSharing(ctx echo.Context) error {
	userID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req dto.UpdateSharingRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	if appErr := c.UserService.UpdateCalendarSharing(ctx.Request().Context(), userID, req.CalendarSharing); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return c.SuccessResponse(ctx, nil, "Sharing level updated")
}
