package controller

import (
	"tempus/core/constants"
	"tempus/core/controller"
	"tempus/core/errors"
	"tempus/core/utils"
	"tempus/modules/sharing/entity"
	"tempus/modules/sharing/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SharingController handles calendar share HTTP requests
type SharingController struct {
	controller.BaseController
	PolicyService service.PolicyServiceInterface
}

func NewSharingController(svc service.PolicyServiceInterface) *SharingController {
	return &SharingController{
		BaseController: controller.NewBaseController(),
		PolicyService:  svc,
	}
}

func (c *SharingController) getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
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

type grantShareRequest struct {
	GranteeID string `json:"grantee_id" validate:"required"`
	Level     string `json:"level" validate:"required"` // free_busy_only | full_details
}

func parseLevel(level string) (entity.PermissionLevel, bool) {
	switch level {
	case "free_busy_only":
		return entity.PermissionFreeBusyOnly, true
	case "full_details":
		return entity.PermissionFullDetails, true
	}
	return entity.PermissionNone, false
}

// GrantShare handles POST /shares
func (c *SharingController) GrantShare(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	var req grantShareRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid request body")
	}

	granteeID, err := uuid.Parse(req.GranteeID)
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid grantee ID")
	}

	level, ok := parseLevel(req.Level)
	if !ok {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid permission level")
	}

	if appErr := c.PolicyService.GrantShare(ctx.Request().Context(), ownerID, granteeID, level); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Calendar shared")
}

// RevokeShare handles DELETE /shares/:granteeId
func (c *SharingController) RevokeShare(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	granteeID, err := uuid.Parse(ctx.Param("granteeId"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidInput, "Invalid grantee ID")
	}

	if appErr := c.PolicyService.RevokeShare(ctx.Request().Context(), ownerID, granteeID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Share revoked")
}

// ListShares handles GET /shares
func (c *SharingController) ListShares(ctx echo.Context) error {
	ownerID, err := c.getUserIDFromContext(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "User not authenticated")
	}

	shares, appErr := c.PolicyService.ListShares(ctx.Request().Context(), ownerID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, shares, "Success")
}
